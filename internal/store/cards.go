package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/blossomapp/blossom-server/internal/domain"
	"github.com/blossomapp/blossom-server/internal/sse"
	"github.com/dgraph-io/badger/v4"
)

// Key prefix for card storage.
const cardPrefix = "card:"

// CreateCard stores a new well-wish card. Cards are immutable once sent.
func (s *Store) CreateCard(ctx context.Context, card *domain.Card) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(cardPrefix + card.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(card)
		if err != nil {
			return fmt.Errorf("marshal card: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewCardCreatedEvent(card))
	return nil
}

// GetCard retrieves a card by ID.
func (s *Store) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var card domain.Card
	err := s.get([]byte(cardPrefix+id), &card)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// ListCards returns all cards, newest first.
func (s *Store) ListCards(ctx context.Context) ([]*domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cards, err := listPrefix[domain.Card](s, cardPrefix)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(cards, func(a, b *domain.Card) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return cards, nil
}

// DeleteCard removes a card from the wall.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(cardPrefix + id)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrCardNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewCardDeletedEvent(id, time.Now()))
	return nil
}
