package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/blossomapp/blossom-server/internal/seed"
)

// Seed marker collection names.
const (
	seedCollectionRegistry = "registry"
	seedCollectionUpdates  = "updates"
	seedCollectionTips     = "tips"
)

// SeedDefaults populates any collection that has never been seeded.
// Markers in seed_markers survive deletes, so emptied collections are
// not reseeded on restart.
func (s *Store) SeedDefaults(ctx context.Context) error {
	seeded, err := s.isSeeded(ctx, seedCollectionRegistry)
	if err != nil {
		return err
	}
	if !seeded {
		for _, item := range seed.RegistryItems() {
			if err := s.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("seed registry: %w", err)
			}
		}
		if err := s.markSeeded(ctx, seedCollectionRegistry); err != nil {
			return err
		}
	}

	seeded, err = s.isSeeded(ctx, seedCollectionUpdates)
	if err != nil {
		return err
	}
	if !seeded {
		for _, u := range seed.Updates() {
			if err := s.CreateUpdate(ctx, u); err != nil {
				return fmt.Errorf("seed updates: %w", err)
			}
		}
		if err := s.markSeeded(ctx, seedCollectionUpdates); err != nil {
			return err
		}
	}

	seeded, err = s.isSeeded(ctx, seedCollectionTips)
	if err != nil {
		return err
	}
	if !seeded {
		for _, tip := range seed.Tips() {
			if err := s.CreateTip(ctx, tip); err != nil {
				return fmt.Errorf("seed tips: %w", err)
			}
		}
		if err := s.markSeeded(ctx, seedCollectionTips); err != nil {
			return err
		}
	}

	return nil
}

// ResetSeedMarkers clears the seed_markers table so the next SeedDefaults
// call repopulates every collection. Used by the seed tool's --reset mode.
func (s *Store) ResetSeedMarkers(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM seed_markers`)
	if err != nil {
		return fmt.Errorf("reset seed markers: %w", err)
	}
	return nil
}

func (s *Store) isSeeded(ctx context.Context, collection string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seed_markers WHERE collection = ?`, collection).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) markSeeded(ctx context.Context, collection string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO seed_markers (collection, seeded_at) VALUES (?, ?)
		ON CONFLICT(collection) DO NOTHING`,
		collection, formatTime(time.Now()))
	return err
}
