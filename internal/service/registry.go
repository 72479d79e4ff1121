// Package service implements the mutation and read operations of the
// registry, card wall, advice board, and journey timeline.
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

// RegistryService orchestrates registry item operations.
type RegistryService struct {
	store  store.EntityStore
	logger *slog.Logger
}

// NewRegistryService creates a new registry service.
func NewRegistryService(entityStore store.EntityStore, logger *slog.Logger) *RegistryService {
	return &RegistryService{
		store:  entityStore,
		logger: logger,
	}
}

// ItemFilter narrows a registry listing. Zero values mean "no filter".
type ItemFilter struct {
	Category  domain.ItemCategory
	MaxPrice  float64
	Available bool // Only unclaimed items.
}

// ListItems returns registry items matching the filter, newest first.
func (s *RegistryService) ListItems(ctx context.Context, filter ItemFilter) ([]*domain.RegistryItem, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	filtered := make([]*domain.RegistryItem, 0, len(items))
	for _, item := range items {
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.MaxPrice > 0 && item.Price > filter.MaxPrice {
			continue
		}
		if filter.Available && item.Claimed {
			continue
		}
		filtered = append(filtered, item)
	}

	return filtered, nil
}

// GetItem retrieves a single registry item.
func (s *RegistryService) GetItem(ctx context.Context, itemID string) (*domain.RegistryItem, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if errors.Is(err, store.ErrItemNotFound) {
		return nil, domainerrors.NotFound("registry item not found")
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Stats summarizes registry progress for the header banner.
func (s *RegistryService) Stats(ctx context.Context) (*domain.RegistryStats, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	stats := &domain.RegistryStats{Total: len(items)}
	for _, item := range items {
		if item.Claimed {
			stats.Claimed++
		}
	}
	stats.Remaining = stats.Total - stats.Claimed

	return stats, nil
}

// AddItemParams holds input for a new registry item.
type AddItemParams struct {
	Name     string
	Category domain.ItemCategory
	Price    float64
	Image    string
	Priority domain.Priority
}

// AddItem adds a new item to the registry.
func (s *RegistryService) AddItem(ctx context.Context, params AddItemParams) (*domain.RegistryItem, error) {
	if !params.Category.Valid() {
		return nil, domainerrors.Validation("unknown item category")
	}
	if !params.Priority.Valid() {
		return nil, domainerrors.Validation("unknown item priority")
	}

	itemID, err := id.New(id.PrefixItem)
	if err != nil {
		return nil, fmt.Errorf("generate item ID: %w", err)
	}

	now := time.Now()
	item := &domain.RegistryItem{
		ID:        itemID,
		Name:      params.Name,
		Category:  params.Category,
		Price:     params.Price,
		Image:     params.Image,
		Priority:  params.Priority,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.logger.Info("registry item added",
		"item_id", itemID,
		"name", params.Name,
		"category", params.Category,
	)

	return item, nil
}

// ClaimItem marks an item as claimed by the named gift-giver. There is
// no reservation step: the last claim wins, even over an existing claim.
// A missing item is a no-op and returns nil, nil.
func (s *RegistryService) ClaimItem(ctx context.Context, itemID, claimerName string) (*domain.RegistryItem, error) {
	item, err := s.store.GetItem(ctx, itemID)
	if errors.Is(err, store.ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	item.Claim(claimerName)

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.logger.Info("registry item claimed",
		"item_id", itemID,
		"claimed_by", claimerName,
	)

	return item, nil
}

// DeleteItem removes an item from the registry.
// A missing item is a no-op.
func (s *RegistryService) DeleteItem(ctx context.Context, itemID string) error {
	err := s.store.DeleteItem(ctx, itemID)
	if errors.Is(err, store.ErrItemNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.logger.Info("registry item deleted", "item_id", itemID)
	return nil
}
