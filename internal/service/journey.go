package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blossomapp/blossom-server/internal/domain"
	domainerrors "github.com/blossomapp/blossom-server/internal/errors"
	"github.com/blossomapp/blossom-server/internal/id"
	"github.com/blossomapp/blossom-server/internal/store"
)

// JourneyService manages the pregnancy-journey timeline: milestone
// updates, their comment threads, and per-viewer likes.
type JourneyService struct {
	store     store.EntityStore
	reactions store.ReactionStore
	logger    *slog.Logger
}

// NewJourneyService creates a new journey service.
func NewJourneyService(entityStore store.EntityStore, reactions store.ReactionStore, logger *slog.Logger) *JourneyService {
	return &JourneyService{
		store:     entityStore,
		reactions: reactions,
		logger:    logger,
	}
}

// ListUpdates returns journey updates, newest first.
func (s *JourneyService) ListUpdates(ctx context.Context) ([]*domain.Update, error) {
	updates, err := s.store.ListUpdates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list updates: %w", err)
	}
	return updates, nil
}

// ToggleUpdateLike flips a viewer's like on an update. Unlike tips,
// updates have no dislike dimension. A missing update is a no-op and
// returns nil, nil.
func (s *JourneyService) ToggleUpdateLike(ctx context.Context, viewerID, updateID string) (*domain.Update, error) {
	update, err := s.store.GetUpdate(ctx, updateID)
	if errors.Is(err, store.ErrUpdateNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get update: %w", err)
	}

	reactions, err := s.reactions.GetUpdateReactions(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get reactions: %w", err)
	}

	if reactions.HasLiked(updateID) {
		update.AdjustLikes(-1)
		reactions.Clear(updateID)
	} else {
		update.AdjustLikes(1)
		reactions.SetLiked(updateID)
	}

	if err := s.store.SaveUpdate(ctx, update); err != nil {
		return nil, fmt.Errorf("save update: %w", err)
	}
	if err := s.reactions.SaveUpdateReactions(ctx, viewerID, reactions); err != nil {
		return nil, fmt.Errorf("save reactions: %w", err)
	}

	return update, nil
}

// UpdateReactions returns the viewer's liked set for the timeline.
func (s *JourneyService) UpdateReactions(ctx context.Context, viewerID string) (*domain.UpdateReactions, error) {
	return s.reactions.GetUpdateReactions(ctx, viewerID)
}

// AddUpdateComment appends a comment to an update's thread.
// A missing update is a no-op and returns nil, nil.
func (s *JourneyService) AddUpdateComment(ctx context.Context, updateID, name, text string) (*domain.Comment, error) {
	if len(text) > domain.MaxMessageLength {
		return nil, domainerrors.Validation("comment is too long")
	}

	update, err := s.store.GetUpdate(ctx, updateID)
	if errors.Is(err, store.ErrUpdateNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get update: %w", err)
	}

	commentID, err := id.New(id.PrefixComment)
	if err != nil {
		return nil, fmt.Errorf("generate comment ID: %w", err)
	}

	now := time.Now()
	comment := domain.Comment{
		ID:        commentID,
		Name:      name,
		Text:      text,
		Date:      domain.DisplayDate(now),
		CreatedAt: now,
	}

	update.AddComment(comment)

	if err := s.store.SaveUpdate(ctx, update); err != nil {
		return nil, fmt.Errorf("save update: %w", err)
	}

	s.logger.Info("update comment added", "update_id", updateID, "comment_id", commentID)
	return &comment, nil
}

// DeleteUpdateComment removes a comment from an update's thread.
// Missing update or missing comment are both no-ops.
func (s *JourneyService) DeleteUpdateComment(ctx context.Context, updateID, commentID string) error {
	update, err := s.store.GetUpdate(ctx, updateID)
	if errors.Is(err, store.ErrUpdateNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get update: %w", err)
	}

	if !update.RemoveComment(commentID) {
		return nil
	}

	if err := s.store.SaveUpdate(ctx, update); err != nil {
		return fmt.Errorf("save update: %w", err)
	}

	s.logger.Info("update comment deleted", "update_id", updateID, "comment_id", commentID)
	return nil
}
