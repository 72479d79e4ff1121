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

// Key prefix for journey update storage.
const updatePrefix = "upd:"

// CreateUpdate stores a new journey update.
func (s *Store) CreateUpdate(ctx context.Context, update *domain.Update) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(updatePrefix + update.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(update)
		if err != nil {
			return fmt.Errorf("marshal update: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewUpdateCreatedEvent(update))
	return nil
}

// GetUpdate retrieves a journey update by ID.
func (s *Store) GetUpdate(ctx context.Context, id string) (*domain.Update, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var update domain.Update
	err := s.get([]byte(updatePrefix+id), &update)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrUpdateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &update, nil
}

// ListUpdates returns all journey updates, newest first.
func (s *Store) ListUpdates(ctx context.Context) ([]*domain.Update, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	updates, err := listPrefix[domain.Update](s, updatePrefix)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(updates, func(a, b *domain.Update) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return updates, nil
}

// SaveUpdate persists modifications to an existing journey update
// (like counter, comment thread).
func (s *Store) SaveUpdate(ctx context.Context, update *domain.Update) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(updatePrefix + update.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUpdateNotFound
		} else if err != nil {
			return err
		}

		data, err := json.Marshal(update)
		if err != nil {
			return fmt.Errorf("marshal update: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewUpdateUpdatedEvent(update))
	return nil
}

// DeleteUpdate removes a journey update.
func (s *Store) DeleteUpdate(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(updatePrefix + id)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUpdateNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewUpdateDeletedEvent(id, time.Now()))
	return nil
}
