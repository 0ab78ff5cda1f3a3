// Package domain holds the pure Pawden types: pets, interactions, actions,
// events, and sentinel errors. Nothing in this package touches I/O.
package domain

import "time"

// Stage is a pet's life phase, derived from accumulated XP.
type Stage int

const (
	StageBaby  Stage = 1
	StageTeen  Stage = 2
	StageAdult Stage = 3
)

// String returns the display name for a stage.
func (s Stage) String() string {
	switch s {
	case StageBaby:
		return "Baby"
	case StageTeen:
		return "Teen"
	case StageAdult:
		return "Adult"
	}
	return "Unknown"
}

// DefaultVital is the starting value for every vital stat.
const DefaultVital = 50

// Vitals are the four 0–100 well-being stats.
type Vitals struct {
	Fullness    int `json:"fullness"`
	Happiness   int `json:"happiness"`
	Cleanliness int `json:"cleanliness"`
	Energy      int `json:"energy"`
}

// Item is an owned inventory entry.
type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Kind     string `json:"kind"` // "food", "toy", "accessory"
}

// Pet is the persistent pet record. Version is the optimistic-concurrency
// token compared on every write.
type Pet struct {
	ID         string `json:"id"`
	OwnerID    string `json:"owner_id"`
	OwnerLabel string `json:"owner_label"`

	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed,omitempty"`
	Color   string `json:"color,omitempty"`
	Notes   string `json:"notes,omitempty"`

	Vitals Vitals `json:"vitals"`

	XP    int64 `json:"xp"`
	Stage Stage `json:"stage"`

	// AgeMonths counts elapsed in-world months. The original record kept
	// this under a "years" column; the unit is months.
	AgeMonths int `json:"age_months"`

	LastActionAt time.Time `json:"last_action_at"`
	LastAgeCheck time.Time `json:"last_age_check"`
	CreatedAt    time.Time `json:"created_at"`

	// Streak state covers owner actions only. LastInteractionDate is a
	// "YYYY-MM-DD" calendar date in UTC.
	LastInteractionDate string `json:"last_interaction_date,omitempty"`
	CurrentStreak       int    `json:"current_streak"`
	LongestStreak       int    `json:"longest_streak"`

	Coins int64  `json:"coins"`
	Items []Item `json:"items,omitempty"`

	SharingEnabled      bool     `json:"sharing_enabled"`
	ShareableID         string   `json:"shareable_id"`
	EquippedAccessories []string `json:"equipped_accessories,omitempty"`

	Version int64 `json:"version"`
}

// Normalize repairs a freshly loaded record so every consumer sees
// in-range vitals and populated timestamps. Applied once at the storage
// boundary, never inside computations. Missing vitals (NULL columns) are
// filled with DefaultVital by the store before this runs; Normalize only
// clamps stragglers and back-fills derived fields.
func (p *Pet) Normalize() {
	clampTo := func(v *int) {
		if *v < 0 {
			*v = 0
		}
		if *v > 100 {
			*v = 100
		}
	}
	clampTo(&p.Vitals.Fullness)
	clampTo(&p.Vitals.Happiness)
	clampTo(&p.Vitals.Cleanliness)
	clampTo(&p.Vitals.Energy)

	if p.Stage < StageBaby {
		p.Stage = StageBaby
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.Coins < 0 {
		p.Coins = 0
	}
	if p.LastAgeCheck.IsZero() {
		p.LastAgeCheck = p.CreatedAt
	}
}

// AccessoriesVisible reports whether equipped accessories take effect.
// Accessories only show once the pet reaches the adult stage.
func (p *Pet) AccessoriesVisible() bool {
	return p.Stage == StageAdult
}

// HasItem returns the quantity held of a named item.
func (p *Pet) HasItem(name string) int {
	for _, it := range p.Items {
		if it.Name == name {
			return it.Quantity
		}
	}
	return 0
}
