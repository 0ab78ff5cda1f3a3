package sqlite

import (
	"database/sql"
	"time"

	"github.com/pawden-app/pawden/internal/domain"
)

// AppendInteraction adds one record to the append-only log.
func (d *DB) AppendInteraction(rec domain.InteractionRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO interactions (pet_id, actor_id, action_type, timestamp)
		 VALUES (?, ?, ?, ?)`,
		rec.PetID, rec.ActorID, string(rec.ActionType), rec.Timestamp.Unix(),
	)
	return err
}

// InteractionStats returns the total record count for a pet and the
// number of distinct actors other than the owner. The latter drives the
// social cooldown bonus.
func (d *DB) InteractionStats(petID, ownerID string) (domain.InteractionStats, error) {
	var stats domain.InteractionStats
	err := d.db.QueryRow(
		`SELECT COUNT(*),
		        COUNT(DISTINCT CASE WHEN actor_id != ? THEN actor_id END)
		 FROM interactions WHERE pet_id = ?`,
		ownerID, petID,
	).Scan(&stats.Total, &stats.UniqueActors)
	return stats, err
}

// MostRecentInteraction returns the timestamp of an actor's latest record
// for a pet, or the zero time when the actor has never interacted.
func (d *DB) MostRecentInteraction(petID, actorID string) (time.Time, error) {
	var ts int64
	err := d.db.QueryRow(
		`SELECT timestamp FROM interactions
		 WHERE pet_id = ? AND actor_id = ?
		 ORDER BY timestamp DESC LIMIT 1`,
		petID, actorID,
	).Scan(&ts)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(ts, 0).UTC(), nil
}

// ListInteractions returns a pet's most recent records, newest first.
func (d *DB) ListInteractions(petID string, limit int) ([]domain.InteractionRecord, error) {
	rows, err := d.db.Query(
		`SELECT id, pet_id, actor_id, action_type, timestamp
		 FROM interactions WHERE pet_id = ?
		 ORDER BY timestamp DESC, id DESC LIMIT ?`,
		petID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.InteractionRecord
	for rows.Next() {
		var rec domain.InteractionRecord
		var action string
		var ts int64
		if err := rows.Scan(&rec.ID, &rec.PetID, &rec.ActorID, &action, &ts); err != nil {
			return nil, err
		}
		rec.ActionType = domain.ActionType(action)
		rec.Timestamp = time.Unix(ts, 0).UTC()
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
