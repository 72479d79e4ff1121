// Package main provides a tool to seed the database with the default
// registry items, journey updates, and advice tips.
//
// Seeding is normally done once on server startup; this tool exists for
// filling a fresh database without running the server, and for wiping a
// database back to its defaults during development.
//
// Usage:
//
//	go run ./cmd/seed --data-path ~/blossom
//	go run ./cmd/seed --data-path ~/blossom --reset   # Wipe and reseed
//	go run ./cmd/seed --store-backend sqlite --reset
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/blossomapp/blossom-server/internal/config"
	"github.com/blossomapp/blossom-server/internal/store"
	"github.com/blossomapp/blossom-server/internal/store/sqlite"
)

var reset = flag.Bool("reset", false, "Delete all existing data and reseed from defaults")

func main() {
	// config.Load parses flags, including --reset above.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	entities, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer entities.Close()

	if *reset {
		fmt.Println("Resetting database...")
		if err := wipe(ctx, entities); err != nil {
			log.Fatalf("Failed to wipe existing data: %v", err)
		}
		if err := entities.ResetSeedMarkers(ctx); err != nil {
			log.Fatalf("Failed to reset seed markers: %v", err)
		}
	}

	if err := entities.SeedDefaults(ctx); err != nil {
		log.Fatalf("Failed to seed defaults: %v", err)
	}

	items, _ := entities.ListItems(ctx)
	updates, _ := entities.ListUpdates(ctx)
	tips, _ := entities.ListTips(ctx)
	fmt.Printf("Database at %s (%s) now holds %d registry items, %d updates, %d tips\n",
		cfg.Data.BasePath, cfg.Data.Backend, len(items), len(updates), len(tips))
}

// openBackend opens the configured entity store directly, without SSE
// wiring. Nobody is listening for events while the server is down.
func openBackend(cfg *config.Config) (store.EntityStore, error) {
	switch cfg.Data.Backend {
	case config.BackendSQLite:
		path := filepath.Join(cfg.Data.BasePath, "blossom.db")
		fmt.Printf("Opening SQLite database at: %s\n", path)
		return sqlite.Open(path, nil)
	default:
		path := filepath.Join(cfg.Data.BasePath, "db")
		fmt.Printf("Opening Badger database at: %s\n", path)
		return store.New(path, nil, store.NewNoopEmitter())
	}
}

// wipe deletes every registry item, card, tip, and journey update.
func wipe(ctx context.Context, entities store.EntityStore) error {
	items, err := entities.ListItems(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := entities.DeleteItem(ctx, item.ID); err != nil {
			return err
		}
	}
	fmt.Printf("  Deleted %d registry items\n", len(items))

	cards, err := entities.ListCards(ctx)
	if err != nil {
		return err
	}
	for _, card := range cards {
		if err := entities.DeleteCard(ctx, card.ID); err != nil {
			return err
		}
	}
	fmt.Printf("  Deleted %d cards\n", len(cards))

	tips, err := entities.ListTips(ctx)
	if err != nil {
		return err
	}
	for _, tip := range tips {
		if err := entities.DeleteTip(ctx, tip.ID); err != nil {
			return err
		}
	}
	fmt.Printf("  Deleted %d tips\n", len(tips))

	updates, err := entities.ListUpdates(ctx)
	if err != nil {
		return err
	}
	for _, u := range updates {
		if err := entities.DeleteUpdate(ctx, u.ID); err != nil {
			return err
		}
	}
	fmt.Printf("  Deleted %d journey updates\n", len(updates))

	return nil
}
