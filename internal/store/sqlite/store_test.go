package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blossomapp/blossom-server/internal/domain"
	"github.com/blossomapp/blossom-server/internal/id"
	"github.com/blossomapp/blossom-server/internal/store"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestItemRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now()
	item := &domain.RegistryItem{
		ID:        id.MustNew(id.PrefixItem),
		Name:      "Twin Stroller",
		Category:  domain.CategoryGear,
		Price:     450,
		Image:     "🚼",
		Priority:  domain.PriorityHigh,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateItem(ctx, item))

	got, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Twin Stroller", got.Name)
	assert.Equal(t, domain.CategoryGear, got.Category)
	assert.InDelta(t, 450, got.Price, 0.001)
	assert.False(t, got.Claimed)
	assert.Empty(t, got.ClaimedBy)

	got.Claim("Aunt Maria")
	require.NoError(t, s.UpdateItem(ctx, got))

	claimed, err := s.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, claimed.Claimed)
	assert.Equal(t, "Aunt Maria", claimed.ClaimedBy)

	require.NoError(t, s.DeleteItem(ctx, item.ID))
	_, err = s.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}

func TestItemNotFoundErrors(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.GetItem(ctx, "item-missing")
	assert.ErrorIs(t, err, store.ErrItemNotFound)

	err = s.UpdateItem(ctx, &domain.RegistryItem{ID: "item-missing", CreatedAt: time.Now(), UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, store.ErrItemNotFound)

	assert.ErrorIs(t, s.DeleteItem(ctx, "item-missing"), store.ErrItemNotFound)
}

func TestListItems_NewestFirst(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now()
	for i, name := range []string{"Oldest", "Middle", "Newest"} {
		item := &domain.RegistryItem{
			ID:        id.MustNew(id.PrefixItem),
			Name:      name,
			Category:  domain.CategoryToys,
			Priority:  domain.PriorityLow,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
			UpdatedAt: now.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.CreateItem(ctx, item))
	}

	items, err := s.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Newest", items[0].Name)
	assert.Equal(t, "Oldest", items[2].Name)
}

func TestCardRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	card := &domain.Card{
		ID:         id.MustNew(id.PrefixCard),
		SenderName: "Emma",
		Message:    "Congratulations!",
		TemplateID: domain.TemplateLavenderDreams,
		Decoration: "🦋",
		Date:       "2026-02-01",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, s.CreateCard(ctx, card))

	got, err := s.GetCard(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, "Emma", got.SenderName)
	assert.Equal(t, domain.TemplateLavenderDreams, got.TemplateID)

	cards, err := s.ListCards(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	_, err = s.GetCard(ctx, "card-missing")
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestTipCommentThread(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	tip := &domain.Tip{
		ID:          id.MustNew(id.PrefixTip),
		Name:        "Sarah",
		Category:    domain.TipCategoryRegistry,
		RelatedItem: "Twin Stroller",
		Message:     "Get a narrow one.",
		Date:        "2026-01-23",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, s.CreateTip(ctx, tip))

	tip.AddComment(domain.Comment{
		ID:        id.MustNew(id.PrefixComment),
		Name:      "Emma",
		Text:      "Which brand?",
		Date:      "2026-01-24",
		CreatedAt: time.Now(),
	})
	tip.AdjustLikes(1)
	require.NoError(t, s.SaveTip(ctx, tip))

	got, err := s.GetTip(ctx, tip.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Likes)
	assert.Equal(t, "Twin Stroller", got.RelatedItem)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "Which brand?", got.Comments[0].Text)

	// Removing the comment and saving empties the thread.
	require.True(t, got.RemoveComment(got.Comments[0].ID))
	require.NoError(t, s.SaveTip(ctx, got))

	again, err := s.GetTip(ctx, tip.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Comments)

	// Delete cascades comments.
	require.NoError(t, s.DeleteTip(ctx, tip.ID))
	_, err = s.GetTip(ctx, tip.ID)
	assert.ErrorIs(t, err, store.ErrTipNotFound)
}

func TestTipCommentsScopedToTip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	newTip := func(name, message string) *domain.Tip {
		tip := &domain.Tip{
			ID:        id.MustNew(id.PrefixTip),
			Name:      name,
			Category:  domain.TipCategoryParenting,
			Message:   message,
			Date:      "2026-01-23",
			CreatedAt: time.Now(),
		}
		require.NoError(t, s.CreateTip(ctx, tip))
		return tip
	}

	first := newTip("Sarah", "Sleep when the babies sleep.")
	second := newTip("Emma", "Accept every offer of help.")

	second.AddComment(domain.Comment{
		ID:        id.MustNew(id.PrefixComment),
		Name:      "Maria",
		Text:      "Truer words.",
		Date:      "2026-01-24",
		CreatedAt: time.Now(),
	})
	require.NoError(t, s.SaveTip(ctx, second))

	// SaveTip replaces the tip's comment rows wholesale; saving the
	// first tip with a fresh thread must only replace rows keyed to it.
	first.AddComment(domain.Comment{
		ID:        id.MustNew(id.PrefixComment),
		Name:      "Joe",
		Text:      "Easier said than done.",
		Date:      "2026-01-24",
		CreatedAt: time.Now(),
	})
	require.NoError(t, s.SaveTip(ctx, first))

	got, err := s.GetTip(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "Truer words.", got.Comments[0].Text)

	// Emptying the first thread leaves the second untouched as well.
	first.Comments = nil
	require.NoError(t, s.SaveTip(ctx, first))

	got, err = s.GetTip(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)

	gotFirst, err := s.GetTip(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, gotFirst.Comments)
}

func TestUpdateRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	update := &domain.Update{
		ID:        id.MustNew(id.PrefixUpdate),
		Date:      "2026-01-20",
		Title:     "We're Having Twins!",
		Content:   "Twin girls!",
		Image:     "👶👶",
		Likes:     24,
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateUpdate(ctx, update))

	update.AddComment(domain.Comment{
		ID:        id.MustNew(id.PrefixComment),
		Name:      "Grandpa Joe",
		Text:      "Wonderful news!",
		Date:      "2026-01-21",
		CreatedAt: time.Now(),
	})
	update.AdjustLikes(1)
	require.NoError(t, s.SaveUpdate(ctx, update))

	got, err := s.GetUpdate(ctx, update.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Likes)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "Grandpa Joe", got.Comments[0].Name)

	updates, err := s.ListUpdates(ctx)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Len(t, updates[0].Comments, 1)

	require.NoError(t, s.DeleteUpdate(ctx, update.ID))
	_, err = s.GetUpdate(ctx, update.ID)
	assert.ErrorIs(t, err, store.ErrUpdateNotFound)
}

func TestSeedDefaults(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SeedDefaults(ctx))

	items, err := s.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 16)

	tips, err := s.ListTips(ctx)
	require.NoError(t, err)
	require.Len(t, tips, 4)

	// Second seed is a no-op even after deletes.
	for _, tip := range tips {
		require.NoError(t, s.DeleteTip(ctx, tip.ID))
	}
	require.NoError(t, s.SeedDefaults(ctx))

	tips, err = s.ListTips(ctx)
	require.NoError(t, err)
	assert.Empty(t, tips)
}
