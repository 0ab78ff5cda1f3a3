package sqlite

import (
	"time"

	"github.com/pawden-app/pawden/internal/domain"
)

// InsertEvent stores one owner-facing event and returns its id.
func (d *DB) InsertEvent(ev domain.Event) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO events (owner_id, pet_id, type, message, created_at, shown)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		ev.OwnerID, ev.PetID, string(ev.Type), ev.Message, ev.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListPendingEvents returns an owner's unshown events, oldest first.
func (d *DB) ListPendingEvents(ownerID string, limit int) ([]domain.Event, error) {
	rows, err := d.db.Query(
		`SELECT id, owner_id, pet_id, type, message, created_at, shown
		 FROM events WHERE owner_id = ? AND shown = 0
		 ORDER BY created_at, id LIMIT ?`,
		ownerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var ev domain.Event
		var typ string
		var created int64
		if err := rows.Scan(&ev.ID, &ev.OwnerID, &ev.PetID, &typ, &ev.Message, &created, &ev.Shown); err != nil {
			return nil, err
		}
		ev.Type = domain.EventType(typ)
		ev.CreatedAt = time.Unix(created, 0).UTC()
		events = append(events, ev)
	}
	return events, rows.Err()
}

// MarkEventShown flags an event as delivered.
func (d *DB) MarkEventShown(id int64) error {
	_, err := d.db.Exec(`UPDATE events SET shown = 1 WHERE id = ?`, id)
	return err
}

// EventCountSince counts an owner's events of one type created at or
// after the cutoff.
func (d *DB) EventCountSince(ownerID string, typ domain.EventType, cutoff time.Time) (int, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM events WHERE owner_id = ? AND type = ? AND created_at >= ?`,
		ownerID, string(typ), cutoff.Unix(),
	).Scan(&n)
	return n, err
}
