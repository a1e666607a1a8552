package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// One connection, so transactions never interleave.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    salt TEXT NOT NULL
);
`

// Timestamps are stored as fixed-width UTC RFC3339 text so that string
// comparison orders them chronologically.
const schemaRooms = `
CREATE TABLE IF NOT EXISTS rooms (
    id INTEGER PRIMARY KEY,
    occupied INTEGER NOT NULL DEFAULT 0,
    ac_on INTEGER NOT NULL DEFAULT 0,
    occupant_id INTEGER REFERENCES users(id),
    checkin_time TEXT,
    ac_interval_start TEXT,
    temperature INTEGER NOT NULL,
    fan_speed TEXT NOT NULL,
    mode TEXT NOT NULL,
    CHECK (ac_on = 0 OR occupied = 1),
    CHECK (occupied = (occupant_id IS NOT NULL)),
    CHECK ((occupant_id IS NULL) = (checkin_time IS NULL)),
    CHECK (ac_on = (ac_interval_start IS NOT NULL))
);
`

const schemaRoomsOccupantIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_rooms_occupant ON rooms (occupant_id) WHERE occupant_id IS NOT NULL;
`

const schemaUsageRecords = `
CREATE TABLE IF NOT EXISTS usage_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id),
    room_id INTEGER NOT NULL REFERENCES rooms(id),
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    temperature INTEGER NOT NULL,
    fan_speed TEXT NOT NULL,
    mode TEXT NOT NULL,
    cost REAL NOT NULL,
    CHECK (end_time >= start_time),
    CHECK (cost >= 0)
);
`

const schemaUsageIndexes = `
CREATE INDEX IF NOT EXISTS idx_usage_user_start ON usage_records (user_id, start_time);
CREATE INDEX IF NOT EXISTS idx_usage_room_start ON usage_records (room_id, start_time);
`

const schemaCheckins = `
CREATE TABLE IF NOT EXISTS checkins (
    user_id INTEGER PRIMARY KEY REFERENCES users(id),
    room_id INTEGER NOT NULL REFERENCES rooms(id),
    in_time TEXT NOT NULL
);
`

const schemaRoomEvents = `
CREATE TABLE IF NOT EXISTS room_events (
    id TEXT PRIMARY KEY,
    room_id INTEGER NOT NULL,
    occurred_at TEXT NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    meta TEXT
);
CREATE INDEX IF NOT EXISTS idx_room_events_occurred ON room_events (occurred_at);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaUsers,
		schemaRooms,
		schemaRoomsOccupantIndex,
		schemaUsageRecords,
		schemaUsageIndexes,
		schemaCheckins,
		schemaRoomEvents,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
