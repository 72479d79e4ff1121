package domain

import "time"

// TipCategory groups advice tips for filtering.
type TipCategory string

// Tip categories.
const (
	TipCategoryTwins           TipCategory = "twins"
	TipCategoryRegistry        TipCategory = "registry"
	TipCategoryParenting       TipCategory = "parenting"
	TipCategoryRecommendations TipCategory = "recommendations"
)

// Valid checks if the tip category is a known value.
func (c TipCategory) Valid() bool {
	switch c {
	case TipCategoryTwins, TipCategoryRegistry, TipCategoryParenting,
		TipCategoryRecommendations:
		return true
	default:
		return false
	}
}

// Tip is a piece of advice posted by a guest on the community board.
// Likes and dislikes are independent non-negative counters; a single
// viewer's contribution to them is tracked in their Reactions, not here.
type Tip struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Category TipCategory `json:"category"`
	// RelatedItem optionally names a registry item this tip is about.
	// It is free text, not a foreign key: if the item is renamed or
	// removed the reference dangles silently.
	RelatedItem string    `json:"related_item,omitempty"`
	Message     string    `json:"message"`
	Likes       int       `json:"likes"`
	Dislikes    int       `json:"dislikes"`
	Date        string    `json:"date"` // Display date, YYYY-MM-DD
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
}

// AddComment appends a comment to the tip.
func (t *Tip) AddComment(c Comment) {
	t.Comments = append(t.Comments, c)
}

// RemoveComment deletes the comment with the given ID. Returns false if
// no such comment exists.
func (t *Tip) RemoveComment(commentID string) bool {
	for i, c := range t.Comments {
		if c.ID == commentID {
			t.Comments = append(t.Comments[:i], t.Comments[i+1:]...)
			return true
		}
	}
	return false
}

// AdjustLikes adds delta to the like counter, clamping at zero.
func (t *Tip) AdjustLikes(delta int) {
	t.Likes += delta
	if t.Likes < 0 {
		t.Likes = 0
	}
}

// AdjustDislikes adds delta to the dislike counter, clamping at zero.
func (t *Tip) AdjustDislikes(delta int) {
	t.Dislikes += delta
	if t.Dislikes < 0 {
		t.Dislikes = 0
	}
}
