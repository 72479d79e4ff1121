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
	"github.com/blossomapp/blossom-server/internal/search"
	"github.com/blossomapp/blossom-server/internal/store"
)

// AdviceService orchestrates the advice board: tips, their comment
// threads, per-viewer reactions, and the search index.
type AdviceService struct {
	store     store.EntityStore
	reactions store.ReactionStore
	index     *search.SearchIndex // May be nil when search is disabled.
	logger    *slog.Logger
}

// NewAdviceService creates a new advice service.
func NewAdviceService(entityStore store.EntityStore, reactions store.ReactionStore, index *search.SearchIndex, logger *slog.Logger) *AdviceService {
	return &AdviceService{
		store:     entityStore,
		reactions: reactions,
		index:     index,
		logger:    logger,
	}
}

// ListTips returns tips, newest first, optionally filtered by category.
func (s *AdviceService) ListTips(ctx context.Context, category domain.TipCategory) ([]*domain.Tip, error) {
	tips, err := s.store.ListTips(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}

	if category == "" {
		return tips, nil
	}

	filtered := make([]*domain.Tip, 0, len(tips))
	for _, tip := range tips {
		if tip.Category == category {
			filtered = append(filtered, tip)
		}
	}
	return filtered, nil
}

// AddTipParams holds input for a new tip.
type AddTipParams struct {
	Name        string
	Category    domain.TipCategory
	RelatedItem string
	Message     string
}

// AddTip validates and stores a new advice tip. Counters start at zero
// and the server stamps the display date.
func (s *AdviceService) AddTip(ctx context.Context, params AddTipParams) (*domain.Tip, error) {
	if !params.Category.Valid() {
		return nil, domainerrors.Validation("unknown tip category")
	}
	if len(params.Message) > domain.MaxMessageLength {
		return nil, domainerrors.Validation("message is too long")
	}

	tipID, err := id.New(id.PrefixTip)
	if err != nil {
		return nil, fmt.Errorf("generate tip ID: %w", err)
	}

	now := time.Now()
	tip := &domain.Tip{
		ID:          tipID,
		Name:        params.Name,
		Category:    params.Category,
		RelatedItem: params.RelatedItem,
		Message:     params.Message,
		Date:        domain.DisplayDate(now),
		CreatedAt:   now,
	}

	if err := s.store.CreateTip(ctx, tip); err != nil {
		return nil, fmt.Errorf("create tip: %w", err)
	}

	s.indexTip(tip)

	s.logger.Info("tip added",
		"tip_id", tipID,
		"author", params.Name,
		"category", params.Category,
	)

	return tip, nil
}

// DeleteTip removes a tip, its comment thread, and every viewer's
// reaction to it. A missing tip is a no-op.
func (s *AdviceService) DeleteTip(ctx context.Context, tipID string) error {
	err := s.store.DeleteTip(ctx, tipID)
	if errors.Is(err, store.ErrTipNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete tip: %w", err)
	}

	if err := s.reactions.PurgeTipReactions(ctx, tipID); err != nil {
		// The tip itself is gone; stale reaction entries only cost a
		// little storage, so log and continue.
		s.logger.Warn("failed to purge tip reactions", "tip_id", tipID, "error", err)
	}

	if s.index != nil {
		if err := s.index.DeleteDocument(tipID); err != nil {
			s.logger.Warn("failed to remove tip from search index", "tip_id", tipID, "error", err)
		}
	}

	s.logger.Info("tip deleted", "tip_id", tipID)
	return nil
}

// ToggleTipLike cycles a viewer's like on a tip: none becomes liked,
// liked becomes none, disliked switches to liked (adjusting both
// counters). Counters never go below zero. A missing tip is a no-op
// and returns nil, nil.
func (s *AdviceService) ToggleTipLike(ctx context.Context, viewerID, tipID string) (*domain.Tip, error) {
	return s.toggleTip(ctx, viewerID, tipID, true)
}

// ToggleTipDislike cycles a viewer's dislike on a tip, mirroring
// ToggleTipLike.
func (s *AdviceService) ToggleTipDislike(ctx context.Context, viewerID, tipID string) (*domain.Tip, error) {
	return s.toggleTip(ctx, viewerID, tipID, false)
}

func (s *AdviceService) toggleTip(ctx context.Context, viewerID, tipID string, like bool) (*domain.Tip, error) {
	tip, err := s.store.GetTip(ctx, tipID)
	if errors.Is(err, store.ErrTipNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tip: %w", err)
	}

	reactions, err := s.reactions.GetTipReactions(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get reactions: %w", err)
	}

	state := reactions.TipState(tipID)

	if like {
		switch state {
		case domain.ReactionLiked:
			tip.AdjustLikes(-1)
			reactions.Clear(tipID)
		case domain.ReactionDisliked:
			tip.AdjustDislikes(-1)
			tip.AdjustLikes(1)
			reactions.SetLiked(tipID)
		default:
			tip.AdjustLikes(1)
			reactions.SetLiked(tipID)
		}
	} else {
		switch state {
		case domain.ReactionDisliked:
			tip.AdjustDislikes(-1)
			reactions.Clear(tipID)
		case domain.ReactionLiked:
			tip.AdjustLikes(-1)
			tip.AdjustDislikes(1)
			reactions.SetDisliked(tipID)
		default:
			tip.AdjustDislikes(1)
			reactions.SetDisliked(tipID)
		}
	}

	// Persist counters before the viewer's reaction set. If the second
	// write fails the viewer can re-toggle, which self-corrects.
	if err := s.store.SaveTip(ctx, tip); err != nil {
		return nil, fmt.Errorf("save tip: %w", err)
	}
	if err := s.reactions.SaveTipReactions(ctx, viewerID, reactions); err != nil {
		return nil, fmt.Errorf("save reactions: %w", err)
	}

	return tip, nil
}

// TipReactions returns the viewer's reaction state for the whole board.
func (s *AdviceService) TipReactions(ctx context.Context, viewerID string) (*domain.Reactions, error) {
	return s.reactions.GetTipReactions(ctx, viewerID)
}

// AddTipComment appends a comment to a tip's thread.
// A missing tip is a no-op and returns nil, nil.
func (s *AdviceService) AddTipComment(ctx context.Context, tipID, name, text string) (*domain.Comment, error) {
	if len(text) > domain.MaxMessageLength {
		return nil, domainerrors.Validation("comment is too long")
	}

	tip, err := s.store.GetTip(ctx, tipID)
	if errors.Is(err, store.ErrTipNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get tip: %w", err)
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

	tip.AddComment(comment)

	if err := s.store.SaveTip(ctx, tip); err != nil {
		return nil, fmt.Errorf("save tip: %w", err)
	}

	s.logger.Info("tip comment added", "tip_id", tipID, "comment_id", commentID)
	return &comment, nil
}

// DeleteTipComment removes a comment from a tip's thread. Missing tip
// or missing comment are both no-ops.
func (s *AdviceService) DeleteTipComment(ctx context.Context, tipID, commentID string) error {
	tip, err := s.store.GetTip(ctx, tipID)
	if errors.Is(err, store.ErrTipNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get tip: %w", err)
	}

	if !tip.RemoveComment(commentID) {
		return nil
	}

	if err := s.store.SaveTip(ctx, tip); err != nil {
		return fmt.Errorf("save tip: %w", err)
	}

	s.logger.Info("tip comment deleted", "tip_id", tipID, "comment_id", commentID)
	return nil
}

// Search runs a full-text query over tips and journey updates.
func (s *AdviceService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	if s.index == nil {
		return nil, domainerrors.Internal("search is not enabled", nil)
	}
	return s.index.Search(ctx, params)
}

// Reindex rebuilds the search index from the store. Called at startup
// so the index always reflects the current data, and after backend
// switches.
func (s *AdviceService) Reindex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}

	tips, err := s.store.ListTips(ctx)
	if err != nil {
		return fmt.Errorf("list tips: %w", err)
	}
	updates, err := s.store.ListUpdates(ctx)
	if err != nil {
		return fmt.Errorf("list updates: %w", err)
	}

	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	docs := make([]*search.SearchDocument, 0, len(tips)+len(updates))
	for _, tip := range tips {
		docs = append(docs, search.TipToSearchDocument(tip))
	}
	for _, update := range updates {
		docs = append(docs, search.UpdateToSearchDocument(update))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index documents: %w", err)
	}

	s.logger.Info("search index rebuilt", "documents", len(docs))
	return nil
}

func (s *AdviceService) indexTip(tip *domain.Tip) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexDocument(search.TipToSearchDocument(tip)); err != nil {
		s.logger.Warn("failed to index tip", "tip_id", tip.ID, "error", err)
	}
}
