package domain

import "time"

// InteractionRecord is one append-only log entry per accepted action.
// Owner actions carry the owner id; anonymous visitors carry a per-device
// pseudonymous id. Records are never mutated or deleted.
type InteractionRecord struct {
	ID         int64      `json:"id"`
	PetID      string     `json:"pet_id"`
	ActorID    string     `json:"actor_id"`
	ActionType ActionType `json:"action_type"`
	Timestamp  time.Time  `json:"timestamp"`
}

// InteractionStats summarizes the log for one pet.
type InteractionStats struct {
	Total        int `json:"total"`
	UniqueActors int `json:"unique_actors"` // distinct non-owner actors
}
