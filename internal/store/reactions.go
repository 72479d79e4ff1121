package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"slices"

	"github.com/blossomapp/blossom-server/internal/domain"
	"github.com/dgraph-io/badger/v4"
)

// Key prefixes for per-viewer reaction sets. These always live in the
// local Badger store, even when entities are kept in SQLite, because
// reactions track what a particular browser has clicked rather than
// shared data.
const (
	tipReactionPrefix    = "reaction:tips:"
	updateReactionPrefix = "reaction:updates:"
)

// GetTipReactions returns the tip reaction set for a viewer.
// An unknown viewer gets an empty set, not an error.
func (s *Store) GetTipReactions(ctx context.Context, viewerID string) (*domain.Reactions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var r domain.Reactions
	err := s.get([]byte(tipReactionPrefix+viewerID), &r)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return &domain.Reactions{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SaveTipReactions persists the tip reaction set for a viewer.
func (s *Store) SaveTipReactions(ctx context.Context, viewerID string, r *domain.Reactions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(tipReactionPrefix+viewerID), r)
}

// GetUpdateReactions returns the journey update reaction set for a viewer.
// An unknown viewer gets an empty set, not an error.
func (s *Store) GetUpdateReactions(ctx context.Context, viewerID string) (*domain.UpdateReactions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var r domain.UpdateReactions
	err := s.get([]byte(updateReactionPrefix+viewerID), &r)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return &domain.UpdateReactions{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SaveUpdateReactions persists the journey update reaction set for a viewer.
func (s *Store) SaveUpdateReactions(ctx context.Context, viewerID string, r *domain.UpdateReactions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.set([]byte(updateReactionPrefix+viewerID), r)
}

// PurgeTipReactions removes a deleted tip from every viewer's reaction
// set, so reaction state never references entities that no longer exist.
func (s *Store) PurgeTipReactions(ctx context.Context, tipID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prefix := []byte(tipReactionPrefix)

	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			var r domain.Reactions
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				continue
			}

			if !slices.Contains(r.Liked, tipID) && !slices.Contains(r.Disliked, tipID) {
				continue
			}

			r.Clear(tipID)
			data, err := json.Marshal(&r)
			if err != nil {
				return err
			}
			if err := txn.Set(item.KeyCopy(nil), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// PurgeUpdateReactions removes a deleted journey update from every
// viewer's reaction set.
func (s *Store) PurgeUpdateReactions(ctx context.Context, updateID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	prefix := []byte(updateReactionPrefix)

	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			var r domain.UpdateReactions
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				continue
			}

			if !r.HasLiked(updateID) {
				continue
			}

			r.Clear(updateID)
			data, err := json.Marshal(&r)
			if err != nil {
				return err
			}
			if err := txn.Set(item.KeyCopy(nil), data); err != nil {
				return err
			}
		}
		return nil
	})
}
