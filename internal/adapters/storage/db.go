package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// IsNotFound reports whether err came from a lookup that matched no row.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite surfaces these as plain errors, so the message is the
// only discriminator available.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables and indexes are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables. References between aggregates are plain id columns,
	// indexed but not FK-enforced; join tables reference their owner.
	schema := `
	CREATE TABLE IF NOT EXISTS role (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		permissions TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS user (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role_id TEXT,
		approved INTEGER NOT NULL DEFAULT 0,
		avatar TEXT NOT NULL DEFAULT '',
		birth TEXT NOT NULL DEFAULT '',
		club_id TEXT,
		boat_id TEXT,
		gender TEXT NOT NULL DEFAULT '',
		height REAL NOT NULL DEFAULT 0,
		weight REAL NOT NULL DEFAULT 0,
		competition_results TEXT NOT NULL DEFAULT '[]',
		deleted_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_user_role ON user(role_id);
	CREATE INDEX IF NOT EXISTS idx_user_club ON user(club_id);

	CREATE TABLE IF NOT EXISTS club (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		location TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS club_member (
		club_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		member_role TEXT NOT NULL,
		PRIMARY KEY (club_id, user_id, member_role),
		FOREIGN KEY (club_id) REFERENCES club(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS boat (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS discipline (
		id TEXT PRIMARY KEY,
		distance REAL NOT NULL,
		unit TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS training_type (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		variant TEXT NOT NULL,
		categories TEXT NOT NULL DEFAULT '[]',
		exercises TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS training_plan (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		exercises TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE TABLE IF NOT EXISTS training_session (
		id TEXT PRIMARY KEY,
		plan_id TEXT NOT NULL,
		athlete_id TEXT NOT NULL,
		coach_id TEXT NOT NULL,
		date TEXT NOT NULL,
		iteration INTEGER NOT NULL DEFAULT 1,
		status TEXT NOT NULL DEFAULT 'upcoming',
		results TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_session_athlete ON training_session(athlete_id);
	CREATE INDEX IF NOT EXISTS idx_session_coach ON training_session(coach_id);

	CREATE TABLE IF NOT EXISTS team (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		coach_id TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_team_coach ON team(coach_id);

	CREATE TABLE IF NOT EXISTS team_member (
		team_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		PRIMARY KEY (team_id, user_id),
		FOREIGN KEY (team_id) REFERENCES team(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS mental_health (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		mood_rating INTEGER NOT NULL,
		sleep_quality INTEGER,
		pulse INTEGER,
		entry_date TEXT NOT NULL,
		admin_override INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_mental_health_user ON mental_health(user_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
