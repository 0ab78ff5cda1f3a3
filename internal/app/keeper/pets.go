package keeper

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pawden-app/pawden/internal/app/sim"
	"github.com/pawden-app/pawden/internal/domain"
	"github.com/pawden-app/pawden/internal/infra/metrics"
)

// CreateParams describes a new pet.
type CreateParams struct {
	OwnerID    string
	OwnerLabel string
	Name       string
	Species    string
	Breed      string
	Color      string
	Notes      string
}

// Create stores a new pet: all vitals at the default, no XP, baby stage,
// no streak, sharing disabled, a freshly generated shareable token.
func (s *Service) Create(p CreateParams, now time.Time) (*domain.Pet, error) {
	pet := domain.Pet{
		ID:         uuid.NewString(),
		OwnerID:    p.OwnerID,
		OwnerLabel: p.OwnerLabel,
		Name:       p.Name,
		Species:    p.Species,
		Breed:      p.Breed,
		Color:      p.Color,
		Notes:      p.Notes,
		Vitals: domain.Vitals{
			Fullness:    domain.DefaultVital,
			Happiness:   domain.DefaultVital,
			Cleanliness: domain.DefaultVital,
			Energy:      domain.DefaultVital,
		},
		Stage:        domain.StageBaby,
		CreatedAt:    now,
		LastAgeCheck: now,
		ShareableID:  uuid.NewString(),
		Version:      1,
	}

	if err := s.db.InsertPet(pet); err != nil {
		return nil, fmt.Errorf("insert pet: %w", err)
	}
	metrics.Pets.Inc()
	return &pet, nil
}

// Get loads one pet by id.
func (s *Service) Get(petID string) (*domain.Pet, error) {
	return s.db.GetPet(petID)
}

// List returns an owner's pets.
func (s *Service) List(ownerID string) ([]domain.Pet, error) {
	return s.db.ListPets(ownerID)
}

// Delete removes a pet. Its interaction records stay behind, orphaned.
func (s *Service) Delete(petID string) error {
	if err := s.db.DeletePet(petID); err != nil {
		return err
	}
	metrics.Pets.Dec()
	return nil
}

// SetSharing toggles the pet's public shared link.
func (s *Service) SetSharing(petID string, enabled bool) (*domain.Pet, error) {
	return s.mutate(petID, func(p *domain.Pet) error {
		p.SharingEnabled = enabled
		return nil
	})
}

// History returns a pet's most recent interaction records.
func (s *Service) History(petID string, limit int) ([]domain.InteractionRecord, error) {
	if _, err := s.db.GetPet(petID); err != nil {
		return nil, err
	}
	return s.db.ListInteractions(petID, limit)
}

// mutate applies an orthogonal owner mutation under the same
// compare-and-set discipline as actions, retrying a lost race once.
// Mutations here must not touch vitals or XP; those move only through
// the action engine.
func (s *Service) mutate(petID string, fn func(*domain.Pet) error) (*domain.Pet, error) {
	for attempt := 0; ; attempt++ {
		pet, err := s.db.GetPet(petID)
		if err != nil {
			return nil, err
		}
		if err := fn(pet); err != nil {
			return nil, err
		}
		err = s.db.CompareAndSetPet(*pet)
		if err == nil {
			pet.Version++
			return pet, nil
		}
		if errors.Is(err, domain.ErrWriteConflict) && attempt == 0 {
			metrics.WriteConflicts.Inc()
			continue
		}
		return nil, err
	}
}

// ─── Status Views ───────────────────────────────────────────────────────────

// Status is the owner's full view of a pet: current state plus the
// derived progression, cooldown, and social readings.
type Status struct {
	Pet      domain.Pet          `json:"pet"`
	Progress sim.StageProgress   `json:"progress"`
	Cooldown sim.CooldownState   `json:"cooldown"`
	Social   sim.SocialBonus     `json:"social"`
	Actions  []domain.ActionType `json:"actions"`
}

// Status resolves the owner-channel view for one pet at the given time.
func (s *Service) Status(petID string, now time.Time) (*Status, error) {
	pet, err := s.db.GetPet(petID)
	if err != nil {
		return nil, err
	}

	unique := 0
	if pet.SharingEnabled {
		stats, err := s.db.InteractionStats(pet.ID, pet.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("interaction stats: %w", err)
		}
		unique = stats.UniqueActors
	}

	return &Status{
		Pet:      *pet,
		Progress: sim.ProgressToNextStage(pet.XP),
		Cooldown: sim.RemainingCooldown(pet.LastActionAt, now, pet.CurrentStreak, unique),
		Social:   sim.SocialBonusFor(unique),
		Actions:  domain.ActionsFor(domain.ChannelOwner),
	}, nil
}

// SharedStatus is the public view behind a shareable link. It hides the
// owner's identity details and scopes the cooldown to the asking visitor.
type SharedStatus struct {
	Name        string              `json:"name"`
	Species     string              `json:"species"`
	Stage       string              `json:"stage"`
	OwnerLabel  string              `json:"owner_label"`
	Vitals      domain.Vitals       `json:"vitals"`
	Accessories []string            `json:"accessories,omitempty"`
	Cooldown    sim.CooldownState   `json:"cooldown"`
	Actions     []domain.ActionType `json:"actions"`
}

// SharedStatus resolves the visitor view for a shareable id. Accessories
// appear only once the pet is an adult.
func (s *Service) SharedStatus(shareID, visitorID string, now time.Time) (*SharedStatus, error) {
	pet, err := s.db.GetPetByShareID(shareID)
	if err != nil {
		return nil, err
	}
	if !pet.SharingEnabled {
		return nil, domain.ErrSharingDisabled
	}

	stats, err := s.db.InteractionStats(pet.ID, pet.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("interaction stats: %w", err)
	}
	last, err := s.db.MostRecentInteraction(pet.ID, visitorID)
	if err != nil {
		return nil, fmt.Errorf("most recent interaction: %w", err)
	}

	view := &SharedStatus{
		Name:       pet.Name,
		Species:    pet.Species,
		Stage:      pet.Stage.String(),
		OwnerLabel: pet.OwnerLabel,
		Vitals:     pet.Vitals,
		Cooldown:   sim.RemainingCooldown(last, now, pet.CurrentStreak, stats.UniqueActors),
		Actions:    domain.ActionsFor(domain.ChannelVisitor),
	}
	if pet.AccessoriesVisible() {
		view.Accessories = pet.EquippedAccessories
	}
	return view, nil
}
