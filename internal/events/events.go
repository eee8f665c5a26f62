package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// TypeFlashcardSetCreated is emitted after a flashcard set is saved.
	// Its payload is a FlashcardSetCreated.
	TypeFlashcardSetCreated = "flashcard_set.created"
)

// Event is a typed notification with a JSON payload.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewEvent creates an Event of the given type with payload encoded as JSON.
func NewEvent(eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   data,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// UnmarshalPayload decodes the event payload into v.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// FlashcardSetCreated describes a newly saved set and how its cards were produced.
type FlashcardSetCreated struct {
	SetID          uuid.UUID `json:"set_id"`
	UserID         uuid.UUID `json:"user_id"`
	Topic          string    `json:"topic"`
	Source         string    `json:"source"`
	RequestedCount int       `json:"requested_count"`
	CardCount      int       `json:"card_count"`
	Partial        bool      `json:"partial"`
	FallbackReason string    `json:"fallback_reason,omitempty"`
}

// EventHandler processes events delivered by an emitter.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter publishes events to whoever is listening.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *Event) error
}
