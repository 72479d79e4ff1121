// Package search provides full-text search over the advice board and
// journey timeline using Bleve, with fuzzy matching and category facets.
package search

import (
	"github.com/blossomapp/blossom-server/internal/domain"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeTip    DocType = "tip"
	DocTypeUpdate DocType = "update"
)

// SearchDocument is the unified document structure for the Bleve index.
// Tips and journey updates are indexed together with type discrimination
// so one query searches the whole site.
type SearchDocument struct {
	// Identity
	ID   string  `json:"id"`
	Type DocType `json:"type"`

	// Author (tips) or title (updates); primary searchable text.
	Name string `json:"name"`

	// Body text. Tip message or update content.
	Message string `json:"message"`

	// Tip-specific fields (empty for updates).
	Category    string `json:"category,omitempty"`
	RelatedItem string `json:"related_item,omitempty"`

	// Display date ("2026-01-24").
	Date string `json:"date"`

	// Timestamps for sorting, Unix millis.
	CreatedAt int64 `json:"created_at"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"type":       string(d.Type),
		"name":       d.Name,
		"message":    d.Message,
		"date":       d.Date,
		"created_at": d.CreatedAt,
	}

	if d.Category != "" {
		m["category"] = d.Category
	}
	if d.RelatedItem != "" {
		m["related_item"] = d.RelatedItem
	}

	return m
}

// TipToSearchDocument converts a domain Tip to a SearchDocument.
func TipToSearchDocument(tip *domain.Tip) *SearchDocument {
	return &SearchDocument{
		ID:          tip.ID,
		Type:        DocTypeTip,
		Name:        tip.Name,
		Message:     tip.Message,
		Category:    string(tip.Category),
		RelatedItem: tip.RelatedItem,
		Date:        tip.Date,
		CreatedAt:   tip.CreatedAt.UnixMilli(),
	}
}

// UpdateToSearchDocument converts a domain Update to a SearchDocument.
func UpdateToSearchDocument(u *domain.Update) *SearchDocument {
	return &SearchDocument{
		ID:        u.ID,
		Type:      DocTypeUpdate,
		Name:      u.Title,
		Message:   u.Content,
		Date:      u.Date,
		CreatedAt: u.CreatedAt.UnixMilli(),
	}
}
