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

// Key prefix for tip storage.
const tipPrefix = "tip:"

// CreateTip stores a new advice tip.
func (s *Store) CreateTip(ctx context.Context, tip *domain.Tip) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(tipPrefix + tip.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(tip)
		if err != nil {
			return fmt.Errorf("marshal tip: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewTipCreatedEvent(tip))
	return nil
}

// GetTip retrieves a tip by ID.
func (s *Store) GetTip(ctx context.Context, id string) (*domain.Tip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tip domain.Tip
	err := s.get([]byte(tipPrefix+id), &tip)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrTipNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tip, nil
}

// ListTips returns all tips, newest first.
func (s *Store) ListTips(ctx context.Context) ([]*domain.Tip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tips, err := listPrefix[domain.Tip](s, tipPrefix)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(tips, func(a, b *domain.Tip) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return tips, nil
}

// SaveTip persists modifications to an existing tip (reaction counters,
// comment threads).
func (s *Store) SaveTip(ctx context.Context, tip *domain.Tip) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(tipPrefix + tip.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTipNotFound
		} else if err != nil {
			return err
		}

		data, err := json.Marshal(tip)
		if err != nil {
			return fmt.Errorf("marshal tip: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewTipUpdatedEvent(tip))
	return nil
}

// DeleteTip removes a tip along with its embedded comment thread.
func (s *Store) DeleteTip(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(tipPrefix + id)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrTipNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewTipDeletedEvent(id, time.Now()))
	return nil
}
