package store

import (
	"context"

	"github.com/blossomapp/blossom-server/internal/domain"
)

// EntityStore is the persistence surface the services depend on.
// Both the Badger store and the SQLite store implement it, so the data
// backend is swappable via configuration.
type EntityStore interface {
	// Registry items.
	CreateItem(ctx context.Context, item *domain.RegistryItem) error
	GetItem(ctx context.Context, id string) (*domain.RegistryItem, error)
	ListItems(ctx context.Context) ([]*domain.RegistryItem, error)
	UpdateItem(ctx context.Context, item *domain.RegistryItem) error
	DeleteItem(ctx context.Context, id string) error

	// Well-wish cards.
	CreateCard(ctx context.Context, card *domain.Card) error
	GetCard(ctx context.Context, id string) (*domain.Card, error)
	ListCards(ctx context.Context) ([]*domain.Card, error)
	DeleteCard(ctx context.Context, id string) error

	// Advice tips.
	CreateTip(ctx context.Context, tip *domain.Tip) error
	GetTip(ctx context.Context, id string) (*domain.Tip, error)
	ListTips(ctx context.Context) ([]*domain.Tip, error)
	SaveTip(ctx context.Context, tip *domain.Tip) error
	DeleteTip(ctx context.Context, id string) error

	// Journey updates.
	CreateUpdate(ctx context.Context, update *domain.Update) error
	GetUpdate(ctx context.Context, id string) (*domain.Update, error)
	ListUpdates(ctx context.Context) ([]*domain.Update, error)
	SaveUpdate(ctx context.Context, update *domain.Update) error
	DeleteUpdate(ctx context.Context, id string) error

	// Seeding. Each collection is seeded at most once per database,
	// tracked by marker keys so deleted seed data stays deleted.
	SeedDefaults(ctx context.Context) error
	ResetSeedMarkers(ctx context.Context) error

	Close() error
}

// ReactionStore persists per-viewer reaction sets. Reaction sets always
// live in the local Badger store regardless of the entity backend.
type ReactionStore interface {
	GetTipReactions(ctx context.Context, viewerID string) (*domain.Reactions, error)
	SaveTipReactions(ctx context.Context, viewerID string, r *domain.Reactions) error
	GetUpdateReactions(ctx context.Context, viewerID string) (*domain.UpdateReactions, error)
	SaveUpdateReactions(ctx context.Context, viewerID string, r *domain.UpdateReactions) error
	PurgeTipReactions(ctx context.Context, tipID string) error
	PurgeUpdateReactions(ctx context.Context, updateID string) error
}

var _ EntityStore = (*Store)(nil)
var _ ReactionStore = (*Store)(nil)
