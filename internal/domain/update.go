package domain

import "time"

// Update is a post on the pregnancy-journey timeline. Updates are
// created at seed time only; guests can like them and leave comments.
type Update struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // Display date, YYYY-MM-DD
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"` // Display glyph, not a URL
	Likes     int       `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// AddComment appends a comment to the update.
func (u *Update) AddComment(c Comment) {
	u.Comments = append(u.Comments, c)
}

// RemoveComment deletes the comment with the given ID. Returns false if
// no such comment exists.
func (u *Update) RemoveComment(commentID string) bool {
	for i, c := range u.Comments {
		if c.ID == commentID {
			u.Comments = append(u.Comments[:i], u.Comments[i+1:]...)
			return true
		}
	}
	return false
}

// AdjustLikes adds delta to the like counter, clamping at zero.
func (u *Update) AdjustLikes(delta int) {
	u.Likes += delta
	if u.Likes < 0 {
		u.Likes = 0
	}
}
