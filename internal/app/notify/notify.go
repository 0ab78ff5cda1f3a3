// Package notify implements the owner-facing event sink. Emission is
// fire-and-forget: a failed write is logged and dropped, never propagated
// to the action that produced it.
package notify

import (
	"fmt"
	"log"
	"time"

	"github.com/pawden-app/pawden/internal/domain"
	"github.com/pawden-app/pawden/internal/infra/sqlite"
)

// Service stores events in the database for later delivery.
type Service struct {
	db *sqlite.DB

	// maxSummariesPerDay caps the daily-summary digest; action-driven
	// events (evolution, aging, milestones) are never capped.
	maxSummariesPerDay int
}

// NewService creates a notifier with the default digest policy.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db, maxSummariesPerDay: 1}
}

// Emit records one event, best-effort.
func (s *Service) Emit(ownerID string, ev domain.Event) {
	ev.OwnerID = ownerID
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if _, err := s.db.InsertEvent(ev); err != nil {
		log.Printf("notify: drop %s event for owner %s: %v", ev.Type, ownerID, err)
	}
}

// EmitSummary records a daily-summary digest unless one was already sent
// today (UTC).
func (s *Service) EmitSummary(ownerID, petID, message string) error {
	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	n, err := s.db.EventCountSince(ownerID, domain.EventSummary, midnight)
	if err != nil {
		return fmt.Errorf("count summaries: %w", err)
	}
	if n >= s.maxSummariesPerDay {
		return nil // Suppressed, daily limit reached
	}

	s.Emit(ownerID, domain.Event{
		PetID:   petID,
		Type:    domain.EventSummary,
		Message: message,
	})
	return nil
}

// Pending returns an owner's undelivered events.
func (s *Service) Pending(ownerID string, limit int) ([]domain.Event, error) {
	return s.db.ListPendingEvents(ownerID, limit)
}

// MarkShown marks an event as delivered.
func (s *Service) MarkShown(id int64) error {
	return s.db.MarkEventShown(id)
}
