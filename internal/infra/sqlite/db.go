// Package sqlite provides SQLite-based persistent storage for Pawden.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/pawden.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "pawden.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Pet records. Vitals are nullable: NULL means "never written"
		// and reads back as the default of 50; a stored 0 is a real 0.
		// version is the optimistic-concurrency token compared on every
		// write.
		`CREATE TABLE IF NOT EXISTS pets (
			id                    TEXT PRIMARY KEY,
			owner_id              TEXT NOT NULL,
			owner_label           TEXT NOT NULL DEFAULT '',
			name                  TEXT NOT NULL,
			species               TEXT NOT NULL,
			breed                 TEXT NOT NULL DEFAULT '',
			color                 TEXT NOT NULL DEFAULT '',
			notes                 TEXT NOT NULL DEFAULT '',
			fullness              INTEGER,
			happiness             INTEGER,
			cleanliness           INTEGER,
			energy                INTEGER,
			xp                    INTEGER NOT NULL DEFAULT 0,
			stage                 INTEGER NOT NULL DEFAULT 1,
			age_months            INTEGER NOT NULL DEFAULT 0,
			last_action_at        INTEGER,
			last_age_check        INTEGER,
			created_at            INTEGER NOT NULL,
			last_interaction_date TEXT NOT NULL DEFAULT '',
			current_streak        INTEGER NOT NULL DEFAULT 0,
			longest_streak        INTEGER NOT NULL DEFAULT 0,
			coins                 INTEGER NOT NULL DEFAULT 0,
			items                 TEXT NOT NULL DEFAULT '[]',
			sharing_enabled       BOOLEAN NOT NULL DEFAULT 0,
			shareable_id          TEXT NOT NULL UNIQUE,
			accessories           TEXT NOT NULL DEFAULT '[]',
			version               INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pets_owner ON pets(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pets_share ON pets(shareable_id)`,

		// Append-only interaction log. Queried two ways: per-actor
		// most-recent (visitor cooldowns) and distinct non-owner actor
		// counts (social bonus). Never mutated or deleted.
		`CREATE TABLE IF NOT EXISTS interactions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			pet_id      TEXT NOT NULL,
			actor_id    TEXT NOT NULL,
			action_type TEXT NOT NULL,
			timestamp   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_pet ON interactions(pet_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_actor ON interactions(pet_id, actor_id, timestamp)`,

		// Owner-facing event log (fire-and-forget notifier sink).
		`CREATE TABLE IF NOT EXISTS events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id   TEXT NOT NULL,
			pet_id     TEXT NOT NULL,
			type       TEXT NOT NULL,
			message    TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_owner ON events(owner_id, shown)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
