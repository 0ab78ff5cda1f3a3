package domain

import "time"

// EventType categorizes notifier events.
type EventType string

const (
	EventEvolution EventType = "evolution"
	EventAging     EventType = "aging"
	EventDecay     EventType = "decay"
	EventMilestone EventType = "milestone"
	EventSummary   EventType = "summary"
)

// Event is a fire-and-forget message for a pet's owner. Delivery failure
// never affects the action that produced it.
type Event struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	PetID     string    `json:"pet_id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Shown     bool      `json:"shown"`
}

// Notifier is the event sink consumed by the keeper. Implementations must
// treat Emit as best-effort.
type Notifier interface {
	Emit(ownerID string, ev Event)
}
