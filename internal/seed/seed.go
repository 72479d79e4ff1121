// Package seed holds the default datasets a fresh database is populated
// with: the starter registry, the announcement updates, and the first
// round of family advice.
package seed

import (
	"time"

	"github.com/blossomapp/blossom-server/internal/domain"
	"github.com/blossomapp/blossom-server/internal/id"
)

type itemSeed struct {
	name     string
	category domain.ItemCategory
	price    float64
	image    string
	priority domain.Priority
}

var itemSeeds = []itemSeed{
	{"Twin Stroller", domain.CategoryGear, 450, "🚼", domain.PriorityHigh},
	{"Matching Crib Set (2)", domain.CategoryNursery, 350, "🛏️", domain.PriorityHigh},
	{"Diaper Bag Backpack", domain.CategoryGear, 85, "🎒", domain.PriorityMedium},
	{"Baby Monitor", domain.CategoryElectronics, 200, "📱", domain.PriorityHigh},
	{"Swaddle Blankets Set", domain.CategoryClothing, 45, "🧣", domain.PriorityMedium},
	{"Bottle Sterilizer", domain.CategoryFeeding, 75, "🍼", domain.PriorityMedium},
	{"Twin Nursing Pillow", domain.CategoryFeeding, 65, "💝", domain.PriorityHigh},
	{"Matching Onesies Pack", domain.CategoryClothing, 35, "👶", domain.PriorityLow},
	{"Baby Swing", domain.CategoryGear, 180, "🎠", domain.PriorityMedium},
	{"Night Light Projector", domain.CategoryNursery, 40, "🌙", domain.PriorityLow},
	{"Baby Bath Tub (2)", domain.CategoryBath, 55, "🛁", domain.PriorityMedium},
	{"Sound Machine", domain.CategoryNursery, 50, "🎵", domain.PriorityMedium},
	{"Baby Books Collection", domain.CategoryToys, 30, "📚", domain.PriorityLow},
	{"Play Mat", domain.CategoryToys, 90, "🎪", domain.PriorityMedium},
	{"Car Seats (2)", domain.CategoryGear, 300, "🚗", domain.PriorityHigh},
	{"Diaper Subscription", domain.CategoryEssentials, 100, "📦", domain.PriorityHigh},
}

// RegistryItems returns the starter registry with fresh IDs.
// Items are stamped with descending creation times so newest-first
// listings keep the curated order.
func RegistryItems() []*domain.RegistryItem {
	now := time.Now()
	items := make([]*domain.RegistryItem, 0, len(itemSeeds))
	for i, s := range itemSeeds {
		items = append(items, &domain.RegistryItem{
			ID:        id.MustNew(id.PrefixItem),
			Name:      s.name,
			Category:  s.category,
			Price:     s.price,
			Image:     s.image,
			Priority:  s.priority,
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
			UpdatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}
	return items
}

// Updates returns the announcement posts a fresh journey page starts with.
func Updates() []*domain.Update {
	now := time.Now()
	return []*domain.Update{
		{
			ID:        id.MustNew(id.PrefixUpdate),
			Date:      "2026-01-20",
			Title:     "We're Having Twins! 🎀🎀",
			Content:   "We are beyond thrilled to announce that we're expecting twin girls! Our hearts are so full, and we can't wait to meet our little blossoms. Thank you all for your love and support on this incredible journey.",
			Image:     "👶👶",
			Likes:     24,
			CreatedAt: now,
		},
		{
			ID:        id.MustNew(id.PrefixUpdate),
			Date:      "2026-01-15",
			Title:     "Nursery Progress",
			Content:   "The nursery is coming together beautifully! We've chosen a soft rose and cream theme with touches of gold. Two little cribs side by side, waiting for their tiny occupants. 💕",
			Image:     "🏠",
			Likes:     18,
			CreatedAt: now.Add(-time.Minute),
		},
	}
}

// Tips returns the advice board's starter tips.
func Tips() []*domain.Tip {
	now := time.Now()
	return []*domain.Tip{
		{
			ID:        id.MustNew(id.PrefixTip),
			Name:      "Aunt Maria",
			Category:  domain.TipCategoryTwins,
			Message:   "With twins, the best advice I got was to keep them on the same schedule! When one wakes up to feed, wake the other too. It'll save your sanity and help you get some rest. Trust me on this one! 💪",
			Likes:     12,
			Date:      "2026-01-24",
			CreatedAt: now,
		},
		{
			ID:          id.MustNew(id.PrefixTip),
			Name:        "Sarah (mom of twins)",
			Category:    domain.TipCategoryRegistry,
			RelatedItem: "Twin Stroller",
			Message:     "For the twin stroller, I'd highly recommend one that's narrow enough to fit through standard doorways. Also look for one where both seats fully recline for those newborn days! The side-by-side is great for interaction between the babies.",
			Likes:       8,
			Dislikes:    1,
			Comments: []domain.Comment{
				{
					ID:        id.MustNew(id.PrefixComment),
					Name:      "Emma",
					Text:      "Great tip! Which brand did you end up going with?",
					Date:      "2026-01-24",
					CreatedAt: now,
				},
			},
			Date:      "2026-01-23",
			CreatedAt: now.Add(-time.Minute),
		},
		{
			ID:        id.MustNew(id.PrefixTip),
			Name:      "Grandpa Joe",
			Category:  domain.TipCategoryParenting,
			Message:   "Remember to take lots of photos and videos - they grow up so fast! And don't forget to take care of yourselves too. Accept help when it's offered, and don't try to be perfect. You've got this! ❤️",
			Likes:     15,
			Date:      "2026-01-22",
			CreatedAt: now.Add(-2 * time.Minute),
		},
		{
			ID:        id.MustNew(id.PrefixTip),
			Name:      "Emma",
			Category:  domain.TipCategoryRecommendations,
			Message:   "Get a good white noise machine - twins can easily wake each other up! Also, the Hatch sound machine is amazing because you can control it from your phone. Game changer for nap time! 🎵",
			Likes:     6,
			Date:      "2026-01-21",
			CreatedAt: now.Add(-3 * time.Minute),
		},
	}
}
