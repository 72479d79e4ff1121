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

// CardService orchestrates the well-wish card wall.
type CardService struct {
	store  store.EntityStore
	logger *slog.Logger
}

// NewCardService creates a new card service.
func NewCardService(entityStore store.EntityStore, logger *slog.Logger) *CardService {
	return &CardService{
		store:  entityStore,
		logger: logger,
	}
}

// ListCards returns all cards, newest first.
func (s *CardService) ListCards(ctx context.Context) ([]*domain.Card, error) {
	cards, err := s.store.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// SendCardParams holds input for a new card.
type SendCardParams struct {
	SenderName string
	Message    string
	TemplateID int
	Decoration string
}

// SendCard validates and stores a new well-wish card. The server stamps
// the display date; clients never supply it.
func (s *CardService) SendCard(ctx context.Context, params SendCardParams) (*domain.Card, error) {
	if len(params.Message) > domain.MaxMessageLength {
		return nil, domainerrors.Validation("message is too long")
	}
	if !domain.ValidTemplateID(params.TemplateID) {
		return nil, domainerrors.Validation("unknown card template")
	}

	cardID, err := id.New(id.PrefixCard)
	if err != nil {
		return nil, fmt.Errorf("generate card ID: %w", err)
	}

	now := time.Now()
	card := &domain.Card{
		ID:         cardID,
		SenderName: params.SenderName,
		Message:    params.Message,
		TemplateID: params.TemplateID,
		Decoration: params.Decoration,
		Date:       domain.DisplayDate(now),
		CreatedAt:  now,
	}

	if err := s.store.CreateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}

	s.logger.Info("card sent",
		"card_id", cardID,
		"sender", params.SenderName,
		"template_id", params.TemplateID,
	)

	return card, nil
}

// DeleteCard removes a card from the wall. Cards are write-once, so
// removal is the only mutation. A missing card is a no-op.
func (s *CardService) DeleteCard(ctx context.Context, cardID string) error {
	err := s.store.DeleteCard(ctx, cardID)
	if errors.Is(err, store.ErrCardNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	s.logger.Info("card deleted", "card_id", cardID)
	return nil
}
