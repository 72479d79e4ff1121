package domain

import "time"

// MaxMessageLength caps card and tip messages, matching the form limit.
const MaxMessageLength = 500

// Card template IDs. The visual definitions (gradients, text colors)
// live in the web client; the server only validates and stores the ID.
const (
	TemplateRoseGarden     = 1
	TemplateSoftBlush      = 2
	TemplateGoldenHour     = 3
	TemplateLavenderDreams = 4
	TemplateMintFresh      = 5
	TemplatePeachyKeen     = 6
)

// ValidTemplateID checks that a template ID references a built-in card style.
func ValidTemplateID(id int) bool {
	return id >= TemplateRoseGarden && id <= TemplatePeachyKeen
}

// Card is a well-wishes card sent by a guest. Cards are immutable after
// creation except for deletion.
type Card struct {
	ID         string    `json:"id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	TemplateID int       `json:"template_id"`
	Decoration string    `json:"decoration"` // Accent glyph chosen by the sender
	Date       string    `json:"date"`       // Display date, YYYY-MM-DD
	CreatedAt  time.Time `json:"created_at"`
}
