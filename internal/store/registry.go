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

// Key prefix for registry item storage.
const itemPrefix = "item:"

// CreateItem stores a new registry item.
func (s *Store) CreateItem(ctx context.Context, item *domain.RegistryItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(itemPrefix + item.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshal item: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewItemCreatedEvent(item))
	return nil
}

// GetItem retrieves a registry item by ID.
func (s *Store) GetItem(ctx context.Context, id string) (*domain.RegistryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var item domain.RegistryItem
	err := s.get([]byte(itemPrefix+id), &item)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems returns all registry items, newest first.
func (s *Store) ListItems(ctx context.Context) ([]*domain.RegistryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, err := listPrefix[domain.RegistryItem](s, itemPrefix)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(items, func(a, b *domain.RegistryItem) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return items, nil
}

// UpdateItem overwrites an existing registry item.
func (s *Store) UpdateItem(ctx context.Context, item *domain.RegistryItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(itemPrefix + item.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrItemNotFound
		} else if err != nil {
			return err
		}

		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshal item: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewItemUpdatedEvent(item))
	return nil
}

// DeleteItem removes a registry item.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := []byte(itemPrefix + id)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrItemNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewItemDeletedEvent(id, time.Now()))
	return nil
}
