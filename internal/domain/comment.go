package domain

import "time"

// Comment is a short reply on a tip or a journey update. Comments are
// owned by their parent: deleting the parent deletes them.
type Comment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	Date      string    `json:"date"` // Display date, YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}

// DisplayDate formats a time as the YYYY-MM-DD string used in the
// Date fields of cards, tips, updates, and comments.
func DisplayDate(t time.Time) string {
	return t.Format("2006-01-02")
}
