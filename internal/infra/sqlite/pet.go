package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pawden-app/pawden/internal/domain"
)

const petColumns = `id, owner_id, owner_label, name, species, breed, color, notes,
	fullness, happiness, cleanliness, energy,
	xp, stage, age_months, last_action_at, last_age_check, created_at,
	last_interaction_date, current_streak, longest_streak,
	coins, items, sharing_enabled, shareable_id, accessories, version`

// InsertPet stores a newly created pet at version 1.
func (d *DB) InsertPet(p domain.Pet) error {
	items, err := json.Marshal(p.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	accessories, err := json.Marshal(p.EquippedAccessories)
	if err != nil {
		return fmt.Errorf("marshal accessories: %w", err)
	}

	_, err = d.db.Exec(
		`INSERT INTO pets (`+petColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`,
		p.ID, p.OwnerID, p.OwnerLabel, p.Name, p.Species, p.Breed, p.Color, p.Notes,
		p.Vitals.Fullness, p.Vitals.Happiness, p.Vitals.Cleanliness, p.Vitals.Energy,
		p.XP, int(p.Stage), p.AgeMonths,
		nullableUnix(p.LastActionAt), nullableUnix(p.LastAgeCheck), p.CreatedAt.Unix(),
		p.LastInteractionDate, p.CurrentStreak, p.LongestStreak,
		p.Coins, string(items), p.SharingEnabled, p.ShareableID, string(accessories),
	)
	return err
}

// GetPet loads one pet by id. Returns domain.ErrPetNotFound when absent.
func (d *DB) GetPet(id string) (*domain.Pet, error) {
	row := d.db.QueryRow(`SELECT `+petColumns+` FROM pets WHERE id = ?`, id)
	return scanPet(row)
}

// GetPetByShareID resolves a public shareable token to its pet.
func (d *DB) GetPetByShareID(shareID string) (*domain.Pet, error) {
	row := d.db.QueryRow(`SELECT `+petColumns+` FROM pets WHERE shareable_id = ?`, shareID)
	return scanPet(row)
}

// ListPets returns an owner's pets ordered by creation time.
func (d *DB) ListPets(ownerID string) ([]domain.Pet, error) {
	rows, err := d.db.Query(
		`SELECT `+petColumns+` FROM pets WHERE owner_id = ? ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pets []domain.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		pets = append(pets, *p)
	}
	return pets, rows.Err()
}

// DeletePet removes a pet record. Interaction records referencing it are
// left orphaned.
func (d *DB) DeletePet(id string) error {
	result, err := d.db.Exec(`DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrPetNotFound
	}
	return nil
}

// CompareAndSetPet writes the full mutable state of p, guarded by the
// version it was loaded at. The row's version advances by one on commit.
// Returns domain.ErrWriteConflict when another writer got there first and
// domain.ErrPetNotFound when the pet was deleted underneath.
func (d *DB) CompareAndSetPet(p domain.Pet) error {
	items, err := json.Marshal(p.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	accessories, err := json.Marshal(p.EquippedAccessories)
	if err != nil {
		return fmt.Errorf("marshal accessories: %w", err)
	}

	result, err := d.db.Exec(
		`UPDATE pets SET
			name = ?, species = ?, breed = ?, color = ?, notes = ?,
			fullness = ?, happiness = ?, cleanliness = ?, energy = ?,
			xp = ?, stage = ?, age_months = ?,
			last_action_at = ?, last_age_check = ?,
			last_interaction_date = ?, current_streak = ?, longest_streak = ?,
			coins = ?, items = ?, sharing_enabled = ?, accessories = ?,
			version = version + 1
		 WHERE id = ? AND version = ?`,
		p.Name, p.Species, p.Breed, p.Color, p.Notes,
		p.Vitals.Fullness, p.Vitals.Happiness, p.Vitals.Cleanliness, p.Vitals.Energy,
		p.XP, int(p.Stage), p.AgeMonths,
		nullableUnix(p.LastActionAt), nullableUnix(p.LastAgeCheck),
		p.LastInteractionDate, p.CurrentStreak, p.LongestStreak,
		p.Coins, string(items), p.SharingEnabled, string(accessories),
		p.ID, p.Version,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 1 {
		return nil
	}

	// Distinguish a lost race from a deleted pet.
	var one int
	err = d.db.QueryRow(`SELECT 1 FROM pets WHERE id = ?`, p.ID).Scan(&one)
	if err == sql.ErrNoRows {
		return domain.ErrPetNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrWriteConflict
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (*domain.Pet, error) {
	var p domain.Pet
	var fullness, happiness, cleanliness, energy sql.NullInt64
	var lastAction, lastAgeCheck sql.NullInt64
	var createdAt int64
	var stage int
	var items, accessories string

	err := s.Scan(&p.ID, &p.OwnerID, &p.OwnerLabel, &p.Name, &p.Species,
		&p.Breed, &p.Color, &p.Notes,
		&fullness, &happiness, &cleanliness, &energy,
		&p.XP, &stage, &p.AgeMonths, &lastAction, &lastAgeCheck, &createdAt,
		&p.LastInteractionDate, &p.CurrentStreak, &p.LongestStreak,
		&p.Coins, &items, &p.SharingEnabled, &p.ShareableID, &accessories,
		&p.Version)
	if err == sql.ErrNoRows {
		return nil, domain.ErrPetNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Vitals.Fullness = vitalOrDefault(fullness)
	p.Vitals.Happiness = vitalOrDefault(happiness)
	p.Vitals.Cleanliness = vitalOrDefault(cleanliness)
	p.Vitals.Energy = vitalOrDefault(energy)
	p.Stage = domain.Stage(stage)
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	if lastAction.Valid {
		p.LastActionAt = time.Unix(lastAction.Int64, 0).UTC()
	}
	if lastAgeCheck.Valid {
		p.LastAgeCheck = time.Unix(lastAgeCheck.Int64, 0).UTC()
	}
	if err := json.Unmarshal([]byte(items), &p.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if err := json.Unmarshal([]byte(accessories), &p.EquippedAccessories); err != nil {
		return nil, fmt.Errorf("unmarshal accessories: %w", err)
	}

	p.Normalize()
	return &p, nil
}

// vitalOrDefault maps a NULL vital column to the data-model default.
func vitalOrDefault(v sql.NullInt64) int {
	if !v.Valid {
		return domain.DefaultVital
	}
	return int(v.Int64)
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
