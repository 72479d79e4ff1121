package domain

import "time"

// ItemCategory groups registry items for filtering.
type ItemCategory string

// Registry item categories.
const (
	CategoryGear        ItemCategory = "gear"
	CategoryNursery     ItemCategory = "nursery"
	CategoryFeeding     ItemCategory = "feeding"
	CategoryClothing    ItemCategory = "clothing"
	CategoryElectronics ItemCategory = "electronics"
	CategoryBath        ItemCategory = "bath"
	CategoryToys        ItemCategory = "toys"
	CategoryEssentials  ItemCategory = "essentials"
)

// Valid checks if the category is a known value.
func (c ItemCategory) Valid() bool {
	switch c {
	case CategoryGear, CategoryNursery, CategoryFeeding, CategoryClothing,
		CategoryElectronics, CategoryBath, CategoryToys, CategoryEssentials:
		return true
	default:
		return false
	}
}

// Priority indicates how much the parents want an item.
type Priority string

// Item priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid checks if the priority is a known value.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// RegistryItem is a gift on the baby registry. Items are created at
// seed time and never deleted; guests claim them by name.
//
// Invariant: ClaimedBy is non-empty if and only if Claimed is true.
type RegistryItem struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Category  ItemCategory `json:"category"`
	Price     float64      `json:"price"` // Non-negative, in whole currency units
	Claimed   bool         `json:"claimed"`
	ClaimedBy string       `json:"claimed_by,omitempty"`
	Image     string       `json:"image"` // Display glyph, not a URL
	Priority  Priority     `json:"priority"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Claim marks the item as pledged by the given guest. There is no guard
// against re-claiming: a later claim overwrites the earlier name
// (first-come with no reservation lock, last writer wins).
func (i *RegistryItem) Claim(name string) {
	i.Claimed = true
	i.ClaimedBy = name
	i.UpdatedAt = time.Now()
}

// RegistryStats summarizes claim progress across the registry.
type RegistryStats struct {
	Total     int `json:"total"`
	Claimed   int `json:"claimed"`
	Remaining int `json:"remaining"`
}
