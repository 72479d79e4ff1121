package store

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/blossomapp/blossom-server/internal/seed"
)

// Seed marker keys. A collection is seeded at most once per database;
// the marker survives deletes so removed seed data stays removed.
const (
	seededRegistryKey = "seeded:registry"
	seededUpdatesKey  = "seeded:updates"
	seededTipsKey     = "seeded:tips"
)

// SeedDefaults populates any collection that has never been seeded.
func (s *Store) SeedDefaults(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.seedRegistry(ctx); err != nil {
		return fmt.Errorf("seed registry: %w", err)
	}
	if err := s.seedUpdates(ctx); err != nil {
		return fmt.Errorf("seed updates: %w", err)
	}
	if err := s.seedTips(ctx); err != nil {
		return fmt.Errorf("seed tips: %w", err)
	}
	return nil
}

// ResetSeedMarkers clears the seeded markers so the next SeedDefaults call
// repopulates every collection. Used by the seed tool's --reset mode.
func (s *Store) ResetSeedMarkers(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{seededRegistryKey, seededUpdatesKey, seededTipsKey} {
			if err := txn.Delete([]byte(key)); err != nil {
				return fmt.Errorf("delete marker %s: %w", key, err)
			}
		}
		return nil
	})
}

func (s *Store) seedRegistry(ctx context.Context) error {
	done, err := s.exists([]byte(seededRegistryKey))
	if err != nil || done {
		return err
	}

	items := seed.RegistryItems()
	for _, item := range items {
		if err := s.CreateItem(ctx, item); err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("Seeded registry items", "count", len(items))
	}
	return s.set([]byte(seededRegistryKey), true)
}

func (s *Store) seedUpdates(ctx context.Context) error {
	done, err := s.exists([]byte(seededUpdatesKey))
	if err != nil || done {
		return err
	}

	updates := seed.Updates()
	for _, u := range updates {
		if err := s.CreateUpdate(ctx, u); err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("Seeded journey updates", "count", len(updates))
	}
	return s.set([]byte(seededUpdatesKey), true)
}

func (s *Store) seedTips(ctx context.Context) error {
	done, err := s.exists([]byte(seededTipsKey))
	if err != nil || done {
		return err
	}

	tips := seed.Tips()
	for _, tip := range tips {
		if err := s.CreateTip(ctx, tip); err != nil {
			return err
		}
	}

	if s.logger != nil {
		s.logger.Info("Seeded advice tips", "count", len(tips))
	}
	return s.set([]byte(seededTipsKey), true)
}
