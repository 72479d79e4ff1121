package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blossomapp/blossom-server/internal/domain"
	domainerrors "github.com/blossomapp/blossom-server/internal/errors"
	"github.com/blossomapp/blossom-server/internal/logger"
	"github.com/blossomapp/blossom-server/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	dir, err := os.MkdirTemp("", "blossom-service-test-*")
	require.NoError(t, err)

	s, err := store.New(dir, nil, store.NewNoopEmitter())
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
		os.RemoveAll(dir)
	})

	return s
}

func testLogger() *logger.Logger {
	return logger.Discard()
}

func TestRegistryService_AddAndClaim(t *testing.T) {
	s := setupTestStore(t)
	svc := NewRegistryService(s, testLogger().Logger)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, AddItemParams{
		Name:     "Bottle Warmer",
		Category: domain.CategoryFeeding,
		Price:    45,
		Image:    "🍼",
		Priority: domain.PriorityMedium,
	})
	require.NoError(t, err)
	assert.False(t, item.Claimed)

	claimed, err := svc.ClaimItem(ctx, item.ID, "Maria")
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.True(t, claimed.Claimed)
	assert.Equal(t, "Maria", claimed.ClaimedBy)

	// Last claim wins, even over an existing one.
	reclaimed, err := svc.ClaimItem(ctx, item.ID, "Joe")
	require.NoError(t, err)
	assert.Equal(t, "Joe", reclaimed.ClaimedBy)
}

func TestRegistryService_ClaimMissingIsNoop(t *testing.T) {
	s := setupTestStore(t)
	svc := NewRegistryService(s, testLogger().Logger)

	item, err := svc.ClaimItem(context.Background(), "item-missing", "Maria")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestRegistryService_AddRejectsUnknownCategory(t *testing.T) {
	s := setupTestStore(t)
	svc := NewRegistryService(s, testLogger().Logger)

	_, err := svc.AddItem(context.Background(), AddItemParams{
		Name:     "Mystery Box",
		Category: "gadgets",
		Priority: domain.PriorityLow,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestRegistryService_StatsAndFilter(t *testing.T) {
	s := setupTestStore(t)
	svc := NewRegistryService(s, testLogger().Logger)
	ctx := context.Background()

	a, err := svc.AddItem(ctx, AddItemParams{
		Name: "Crib", Category: domain.CategoryNursery, Price: 300, Priority: domain.PriorityHigh,
	})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, AddItemParams{
		Name: "Onesies", Category: domain.CategoryClothing, Price: 30, Priority: domain.PriorityLow,
	})
	require.NoError(t, err)

	_, err = svc.ClaimItem(ctx, a.ID, "Grandpa Joe")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Claimed)
	assert.Equal(t, 1, stats.Remaining)

	available, err := svc.ListItems(ctx, ItemFilter{Available: true})
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Onesies", available[0].Name)

	cheap, err := svc.ListItems(ctx, ItemFilter{MaxPrice: 50})
	require.NoError(t, err)
	require.Len(t, cheap, 1)
	assert.Equal(t, "Onesies", cheap[0].Name)
}

func TestRegistryService_DeleteMissingIsNoop(t *testing.T) {
	s := setupTestStore(t)
	svc := NewRegistryService(s, testLogger().Logger)

	require.NoError(t, svc.DeleteItem(context.Background(), "item-missing"))
}

func TestCardService_SendStampsDate(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCardService(s, testLogger().Logger)

	card, err := svc.SendCard(context.Background(), SendCardParams{
		SenderName: "Emma",
		Message:    "Congratulations to you both!",
		TemplateID: domain.TemplateGoldenHour,
		Decoration: "🦋",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DisplayDate(time.Now()), card.Date)
	assert.NotEmpty(t, card.ID)
}

func TestCardService_SendRejectsBadTemplate(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCardService(s, testLogger().Logger)
	ctx := context.Background()

	_, err := svc.SendCard(ctx, SendCardParams{SenderName: "Emma", Message: "hi", TemplateID: 0})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.SendCard(ctx, SendCardParams{SenderName: "Emma", Message: "hi", TemplateID: 7})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCardService_DeleteMissingIsNoop(t *testing.T) {
	s := setupTestStore(t)
	svc := NewCardService(s, testLogger().Logger)

	require.NoError(t, svc.DeleteCard(context.Background(), "card-missing"))
}

func newAdviceService(t *testing.T) (*AdviceService, *store.Store) {
	t.Helper()
	s := setupTestStore(t)
	return NewAdviceService(s, s, nil, testLogger().Logger), s
}

func TestAdviceService_ToggleLikeRoundtrip(t *testing.T) {
	svc, _ := newAdviceService(t)
	ctx := context.Background()

	tip, err := svc.AddTip(ctx, AddTipParams{
		Name:     "Sarah",
		Category: domain.TipCategoryTwins,
		Message:  "Sleep when they sleep. Both of them.",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, tip.Likes)

	liked, err := svc.ToggleTipLike(ctx, "viewer-1", tip.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	reactions, err := svc.TipReactions(ctx, "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionLiked, reactions.TipState(tip.ID))

	// Toggling again undoes the like completely.
	unliked, err := svc.ToggleTipLike(ctx, "viewer-1", tip.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.Likes)

	reactions, err = svc.TipReactions(ctx, "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionNone, reactions.TipState(tip.ID))
}

func TestAdviceService_DislikeSwitchesToLike(t *testing.T) {
	svc, entities := newAdviceService(t)
	ctx := context.Background()

	tip := &domain.Tip{
		ID:        "tip-switch",
		Name:      "Sarah",
		Category:  domain.TipCategoryRegistry,
		Message:   "Get the double stroller.",
		Likes:     8,
		Dislikes:  1,
		CreatedAt: time.Now(),
	}
	require.NoError(t, entities.CreateTip(ctx, tip))

	_, err := svc.ToggleTipDislike(ctx, "viewer-1", tip.ID)
	require.NoError(t, err)

	switched, err := svc.ToggleTipLike(ctx, "viewer-1", tip.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, switched.Likes)
	assert.Equal(t, 1, switched.Dislikes)

	reactions, err := svc.TipReactions(ctx, "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionLiked, reactions.TipState(tip.ID))
}

func TestAdviceService_ViewersAreIndependent(t *testing.T) {
	svc, _ := newAdviceService(t)
	ctx := context.Background()

	tip, err := svc.AddTip(ctx, AddTipParams{
		Name:     "Grandpa Joe",
		Category: domain.TipCategoryParenting,
		Message:  "Take more photos than you think you need.",
	})
	require.NoError(t, err)

	_, err = svc.ToggleTipLike(ctx, "viewer-1", tip.ID)
	require.NoError(t, err)
	counted, err := svc.ToggleTipLike(ctx, "viewer-2", tip.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, counted.Likes)

	reactions, err := svc.TipReactions(ctx, "viewer-2")
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionLiked, reactions.TipState(tip.ID))
}

func TestAdviceService_ToggleMissingTipIsNoop(t *testing.T) {
	svc, _ := newAdviceService(t)

	tip, err := svc.ToggleTipLike(context.Background(), "viewer-1", "tip-missing")
	require.NoError(t, err)
	assert.Nil(t, tip)
}

func TestAdviceService_CountersNeverGoNegative(t *testing.T) {
	svc, entities := newAdviceService(t)
	ctx := context.Background()

	// Counter already at zero even though this viewer has a recorded
	// like, for example after a backend switch dropped the tip data.
	tip := &domain.Tip{
		ID:        "tip-zero",
		Name:      "Emma",
		Category:  domain.TipCategoryRecommendations,
		Message:   "The white noise machine is magic.",
		CreatedAt: time.Now(),
	}
	require.NoError(t, entities.CreateTip(ctx, tip))

	reactions, err := svc.TipReactions(ctx, "viewer-1")
	require.NoError(t, err)
	reactions.SetLiked(tip.ID)
	require.NoError(t, entities.SaveTipReactions(ctx, "viewer-1", reactions))

	unliked, err := svc.ToggleTipLike(ctx, "viewer-1", tip.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.Likes)
}

func TestAdviceService_DeletePurgesReactions(t *testing.T) {
	svc, _ := newAdviceService(t)
	ctx := context.Background()

	tip, err := svc.AddTip(ctx, AddTipParams{
		Name:     "Sarah",
		Category: domain.TipCategoryTwins,
		Message:  "Color-code everything.",
	})
	require.NoError(t, err)

	_, err = svc.ToggleTipLike(ctx, "viewer-1", tip.ID)
	require.NoError(t, err)
	_, err = svc.ToggleTipDislike(ctx, "viewer-2", tip.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTip(ctx, tip.ID))

	for _, viewer := range []string{"viewer-1", "viewer-2"} {
		reactions, err := svc.TipReactions(ctx, viewer)
		require.NoError(t, err)
		assert.Equal(t, domain.ReactionNone, reactions.TipState(tip.ID))
	}

	// Deleting again is a no-op.
	require.NoError(t, svc.DeleteTip(ctx, tip.ID))
}

func TestAdviceService_Comments(t *testing.T) {
	svc, _ := newAdviceService(t)
	ctx := context.Background()

	tip, err := svc.AddTip(ctx, AddTipParams{
		Name:     "Emma",
		Category: domain.TipCategoryRecommendations,
		Message:  "Muslin blankets over everything else.",
	})
	require.NoError(t, err)

	comment, err := svc.AddTipComment(ctx, tip.ID, "Maria", "Which brand?")
	require.NoError(t, err)
	require.NotNil(t, comment)
	assert.NotEmpty(t, comment.ID)

	got, err := svc.ListTips(ctx, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Comments, 1)
	assert.Equal(t, "Which brand?", got[0].Comments[0].Text)

	require.NoError(t, svc.DeleteTipComment(ctx, tip.ID, comment.ID))
	require.NoError(t, svc.DeleteTipComment(ctx, tip.ID, comment.ID))

	got, err = svc.ListTips(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, got[0].Comments)

	// Commenting on a missing tip is a no-op.
	missing, err := svc.AddTipComment(ctx, "tip-missing", "Maria", "hello?")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAdviceService_CommentsStayOnTheirTip(t *testing.T) {
	svc, _ := newAdviceService(t)
	ctx := context.Background()

	first, err := svc.AddTip(ctx, AddTipParams{
		Name:     "Sarah",
		Category: domain.TipCategoryTwins,
		Message:  "Two of everything except the stroller.",
	})
	require.NoError(t, err)

	second, err := svc.AddTip(ctx, AddTipParams{
		Name:     "Emma",
		Category: domain.TipCategoryRegistry,
		Message:  "Register for more diapers than feels sane.",
	})
	require.NoError(t, err)

	existing, err := svc.AddTipComment(ctx, second.ID, "Maria", "Seconded.")
	require.NoError(t, err)
	require.NotNil(t, existing)

	// Commenting on the first tip must not touch the second tip's thread.
	_, err = svc.AddTipComment(ctx, first.ID, "Joe", "What about bottles?")
	require.NoError(t, err)

	got, err := svc.store.GetTip(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, existing.ID, got.Comments[0].ID)
	assert.Equal(t, "Seconded.", got.Comments[0].Text)

	// Deleting the first tip's comment leaves the second thread alone too.
	gotFirst, err := svc.store.GetTip(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, gotFirst.Comments, 1)
	require.NoError(t, svc.DeleteTipComment(ctx, first.ID, gotFirst.Comments[0].ID))

	got, err = svc.store.GetTip(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
}

func TestAdviceService_ListFiltersByCategory(t *testing.T) {
	svc, _ := newAdviceService(t)
	ctx := context.Background()

	_, err := svc.AddTip(ctx, AddTipParams{Name: "Sarah", Category: domain.TipCategoryTwins, Message: "a"})
	require.NoError(t, err)
	_, err = svc.AddTip(ctx, AddTipParams{Name: "Emma", Category: domain.TipCategoryRegistry, Message: "b"})
	require.NoError(t, err)

	twins, err := svc.ListTips(ctx, domain.TipCategoryTwins)
	require.NoError(t, err)
	require.Len(t, twins, 1)
	assert.Equal(t, "Sarah", twins[0].Name)

	all, err := svc.ListTips(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func newJourneyService(t *testing.T) (*JourneyService, *store.Store) {
	t.Helper()
	s := setupTestStore(t)
	return NewJourneyService(s, s, testLogger().Logger), s
}

func seedUpdate(t *testing.T, s *store.Store, id string, likes int) *domain.Update {
	t.Helper()
	update := &domain.Update{
		ID:        id,
		Title:     "Nursery Progress",
		Content:   "The cribs are assembled!",
		Likes:     likes,
		Date:      "2026-01-15",
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateUpdate(context.Background(), update))
	return update
}

func TestJourneyService_ToggleLike(t *testing.T) {
	svc, entities := newJourneyService(t)
	ctx := context.Background()

	update := seedUpdate(t, entities, "upd-1", 18)

	liked, err := svc.ToggleUpdateLike(ctx, "viewer-1", update.ID)
	require.NoError(t, err)
	assert.Equal(t, 19, liked.Likes)

	reactions, err := svc.UpdateReactions(ctx, "viewer-1")
	require.NoError(t, err)
	assert.True(t, reactions.HasLiked(update.ID))

	unliked, err := svc.ToggleUpdateLike(ctx, "viewer-1", update.ID)
	require.NoError(t, err)
	assert.Equal(t, 18, unliked.Likes)

	reactions, err = svc.UpdateReactions(ctx, "viewer-1")
	require.NoError(t, err)
	assert.False(t, reactions.HasLiked(update.ID))
}

func TestJourneyService_ToggleMissingIsNoop(t *testing.T) {
	svc, _ := newJourneyService(t)

	update, err := svc.ToggleUpdateLike(context.Background(), "viewer-1", "upd-missing")
	require.NoError(t, err)
	assert.Nil(t, update)
}

func TestJourneyService_Comments(t *testing.T) {
	svc, entities := newJourneyService(t)
	ctx := context.Background()

	update := seedUpdate(t, entities, "upd-2", 0)

	comment, err := svc.AddUpdateComment(ctx, update.ID, "Aunt Maria", "So exciting!")
	require.NoError(t, err)
	require.NotNil(t, comment)

	updates, err := svc.ListUpdates(ctx)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.Len(t, updates[0].Comments, 1)

	require.NoError(t, svc.DeleteUpdateComment(ctx, update.ID, comment.ID))

	updates, err = svc.ListUpdates(ctx)
	require.NoError(t, err)
	assert.Empty(t, updates[0].Comments)

	missing, err := svc.AddUpdateComment(ctx, "upd-missing", "Maria", "hi")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
