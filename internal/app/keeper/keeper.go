// Package keeper orchestrates pet actions around the pure simulation
// engine: it loads snapshots, runs the engine, commits the result with an
// optimistic compare-and-set, appends the interaction record, and fans
// out notifications. It also owns the pet lifecycle operations that sit
// outside the simulation core (create, delete, sharing, shop).
package keeper

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pawden-app/pawden/internal/app/sim"
	"github.com/pawden-app/pawden/internal/domain"
	"github.com/pawden-app/pawden/internal/infra/metrics"
	"github.com/pawden-app/pawden/internal/infra/sqlite"
)

// Service wires the engine to its collaborators.
type Service struct {
	db       *sqlite.DB
	notifier domain.Notifier
}

// NewService creates a keeper service.
func NewService(db *sqlite.DB, notifier domain.Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

// PerformOwner runs one owner-channel action against a pet.
func (s *Service) PerformOwner(petID string, action domain.ActionType, now time.Time) (*sim.ActionResult, error) {
	pet, err := s.db.GetPet(petID)
	if err != nil {
		metrics.ActionsRejected.WithLabelValues("not_found").Inc()
		return nil, err
	}
	req := sim.ActionRequest{
		Channel: domain.ChannelOwner,
		Action:  action,
		ActorID: pet.OwnerID,
	}
	return s.perform(pet, req, now)
}

// PerformShared runs one visitor-channel action against a pet resolved by
// its public shareable id. The visitor id is a per-device pseudonym.
func (s *Service) PerformShared(shareID string, action domain.ActionType, visitorID string, now time.Time) (*sim.ActionResult, error) {
	pet, err := s.db.GetPetByShareID(shareID)
	if err != nil {
		metrics.ActionsRejected.WithLabelValues("not_found").Inc()
		return nil, err
	}
	if !pet.SharingEnabled {
		metrics.ActionsRejected.WithLabelValues("not_shared").Inc()
		return nil, domain.ErrSharingDisabled
	}
	req := sim.ActionRequest{
		Channel: domain.ChannelVisitor,
		Action:  action,
		ActorID: visitorID,
	}
	return s.perform(pet, req, now)
}

// perform runs the engine against a loaded snapshot and commits. A lost
// compare-and-set is retried exactly once against a fresh snapshot; the
// retry re-runs the cooldown gate, so a racing duplicate comes back as a
// cooldown rejection rather than a double apply.
func (s *Service) perform(pet *domain.Pet, req sim.ActionRequest, now time.Time) (*sim.ActionResult, error) {
	started := time.Now()

	result, err := s.attempt(pet, req, now)
	if errors.Is(err, domain.ErrWriteConflict) {
		metrics.WriteConflicts.Inc()
		fresh, loadErr := s.db.GetPet(pet.ID)
		if loadErr != nil {
			return nil, loadErr
		}
		result, err = s.attempt(fresh, req, now)
	}
	if err != nil {
		s.countRejection(err)
		return nil, err
	}

	// The committed state is the source of truth; everything after it is
	// best-effort bookkeeping.
	rec := domain.InteractionRecord{
		PetID:      result.Pet.ID,
		ActorID:    req.ActorID,
		ActionType: req.Action,
		Timestamp:  now,
	}
	if err := s.db.AppendInteraction(rec); err != nil {
		return nil, fmt.Errorf("append interaction: %w", err)
	}

	for _, n := range result.Notices {
		s.notifier.Emit(result.Pet.OwnerID, domain.Event{
			PetID:     result.Pet.ID,
			Type:      n.Type,
			Message:   n.Message,
			CreatedAt: now,
		})
	}

	metrics.ActionsAccepted.WithLabelValues(string(req.Action), string(req.Channel)).Inc()
	if result.Evolved {
		metrics.Evolutions.WithLabelValues(result.Pet.Stage.String()).Inc()
	}
	if result.Decayed {
		metrics.DecayPoints.Add(float64(result.DecayPoints))
	}
	if result.Milestone > 0 {
		metrics.StreakMilestones.WithLabelValues(strconv.Itoa(result.Milestone)).Inc()
	}
	metrics.ActionLatency.Observe(time.Since(started).Seconds())

	return result, nil
}

// attempt runs the engine once against one snapshot and tries to commit.
func (s *Service) attempt(pet *domain.Pet, req sim.ActionRequest, now time.Time) (*sim.ActionResult, error) {
	env, err := s.channelSnapshot(pet, req)
	if err != nil {
		return nil, err
	}

	result, err := sim.Perform(*pet, req, env, now)
	if err != nil {
		return nil, err
	}

	if err := s.db.CompareAndSetPet(result.Pet); err != nil {
		return nil, err
	}
	result.Pet.Version++
	return &result, nil
}

// channelSnapshot gathers the interaction-log readings for one request:
// the social audience (only while sharing is on) and, for visitors, that
// actor's own most recent interaction.
func (s *Service) channelSnapshot(pet *domain.Pet, req sim.ActionRequest) (sim.ChannelSnapshot, error) {
	var env sim.ChannelSnapshot

	if pet.SharingEnabled {
		stats, err := s.db.InteractionStats(pet.ID, pet.OwnerID)
		if err != nil {
			return env, fmt.Errorf("interaction stats: %w", err)
		}
		env.UniqueInteractors = stats.UniqueActors
	}

	if req.Channel == domain.ChannelVisitor {
		last, err := s.db.MostRecentInteraction(pet.ID, req.ActorID)
		if err != nil {
			return env, fmt.Errorf("most recent interaction: %w", err)
		}
		env.LastVisitorAction = last
	}

	return env, nil
}

func (s *Service) countRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAction):
		metrics.ActionsRejected.WithLabelValues("invalid_action").Inc()
	case errors.Is(err, domain.ErrPetNotFound):
		metrics.ActionsRejected.WithLabelValues("not_found").Inc()
	case errors.Is(err, domain.ErrWriteConflict):
		metrics.ActionsRejected.WithLabelValues("conflict").Inc()
	default:
		if _, ok := domain.IsCooldown(err); ok {
			metrics.ActionsRejected.WithLabelValues("cooldown").Inc()
		}
	}
}
