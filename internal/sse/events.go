// Package sse implements Server-Sent Events for pushing registry and
// well-wishes changes to connected browsers.
package sse

import (
	"time"

	"github.com/blossomapp/blossom-server/internal/domain"
)

// EventType represents the type of SSE event.
type EventType string

const (
	// EventItemCreated represents a registry item creation event.
	EventItemCreated EventType = "registry.item_created"
	// EventItemUpdated represents a registry item update event.
	// Claims and unclaims are updates, so guests watching the registry
	// see availability flip in real time.
	EventItemUpdated EventType = "registry.item_updated"
	// EventItemDeleted represents a registry item deletion event.
	EventItemDeleted EventType = "registry.item_deleted"

	// EventCardCreated represents a new well-wish card event.
	EventCardCreated EventType = "card.created"
	// EventCardDeleted represents a card removal event.
	EventCardDeleted EventType = "card.deleted"

	// EventTipCreated represents a tip creation event.
	EventTipCreated EventType = "tip.created"
	// EventTipUpdated represents a tip update event (reactions, comments).
	EventTipUpdated EventType = "tip.updated"
	// EventTipDeleted represents a tip deletion event.
	EventTipDeleted EventType = "tip.deleted"

	// EventUpdateCreated represents a journey update creation event.
	EventUpdateCreated EventType = "journey.update_created"
	// EventUpdateUpdated represents a journey update modification event.
	EventUpdateUpdated EventType = "journey.update_updated"
	// EventUpdateDeleted represents a journey update deletion event.
	EventUpdateDeleted EventType = "journey.update_deleted"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object so clients
// can render the change without a follow-up fetch.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// ItemEventData is the data payload for registry item events.
type ItemEventData struct {
	Item *domain.RegistryItem `json:"item"`
}

// ItemDeletedEventData is the data payload for registry item delete events.
type ItemDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	ItemID    string    `json:"item_id"`
}

// CardEventData is the data payload for card events.
type CardEventData struct {
	Card *domain.Card `json:"card"`
}

// CardDeletedEventData is the data payload for card delete events.
type CardDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	CardID    string    `json:"card_id"`
}

// TipEventData is the data payload for tip events.
type TipEventData struct {
	Tip *domain.Tip `json:"tip"`
}

// TipDeletedEventData is the data payload for tip delete events.
type TipDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	TipID     string    `json:"tip_id"`
}

// UpdateEventData is the data payload for journey update events.
type UpdateEventData struct {
	Update *domain.Update `json:"update"`
}

// UpdateDeletedEventData is the data payload for journey update delete events.
type UpdateDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	UpdateID  string    `json:"update_id"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewItemCreatedEvent creates a registry.item_created event.
func NewItemCreatedEvent(item *domain.RegistryItem) Event {
	return Event{
		Type:      EventItemCreated,
		Data:      ItemEventData{Item: item},
		Timestamp: time.Now(),
	}
}

// NewItemUpdatedEvent creates a registry.item_updated event.
func NewItemUpdatedEvent(item *domain.RegistryItem) Event {
	return Event{
		Type:      EventItemUpdated,
		Data:      ItemEventData{Item: item},
		Timestamp: time.Now(),
	}
}

// NewItemDeletedEvent creates a registry.item_deleted event.
func NewItemDeletedEvent(itemID string, deletedAt time.Time) Event {
	return Event{
		Type: EventItemDeleted,
		Data: ItemDeletedEventData{
			ItemID:    itemID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewCardCreatedEvent creates a card.created event.
func NewCardCreatedEvent(card *domain.Card) Event {
	return Event{
		Type:      EventCardCreated,
		Data:      CardEventData{Card: card},
		Timestamp: time.Now(),
	}
}

// NewCardDeletedEvent creates a card.deleted event.
func NewCardDeletedEvent(cardID string, deletedAt time.Time) Event {
	return Event{
		Type: EventCardDeleted,
		Data: CardDeletedEventData{
			CardID:    cardID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewTipCreatedEvent creates a tip.created event.
func NewTipCreatedEvent(tip *domain.Tip) Event {
	return Event{
		Type:      EventTipCreated,
		Data:      TipEventData{Tip: tip},
		Timestamp: time.Now(),
	}
}

// NewTipUpdatedEvent creates a tip.updated event.
func NewTipUpdatedEvent(tip *domain.Tip) Event {
	return Event{
		Type:      EventTipUpdated,
		Data:      TipEventData{Tip: tip},
		Timestamp: time.Now(),
	}
}

// NewTipDeletedEvent creates a tip.deleted event.
func NewTipDeletedEvent(tipID string, deletedAt time.Time) Event {
	return Event{
		Type: EventTipDeleted,
		Data: TipDeletedEventData{
			TipID:     tipID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewUpdateCreatedEvent creates a journey.update_created event.
func NewUpdateCreatedEvent(update *domain.Update) Event {
	return Event{
		Type:      EventUpdateCreated,
		Data:      UpdateEventData{Update: update},
		Timestamp: time.Now(),
	}
}

// NewUpdateUpdatedEvent creates a journey.update_updated event.
func NewUpdateUpdatedEvent(update *domain.Update) Event {
	return Event{
		Type:      EventUpdateUpdated,
		Data:      UpdateEventData{Update: update},
		Timestamp: time.Now(),
	}
}

// NewUpdateDeletedEvent creates a journey.update_deleted event.
func NewUpdateDeletedEvent(updateID string, deletedAt time.Time) Event {
	return Event{
		Type: EventUpdateDeleted,
		Data: UpdateDeletedEventData{
			UpdateID:  updateID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type: EventHeartbeat,
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
		Timestamp: time.Now(),
	}
}
