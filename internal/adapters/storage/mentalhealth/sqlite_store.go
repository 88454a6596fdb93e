package mentalhealth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"paddletrack/internal/adapters/storage"
	domain "paddletrack/internal/domain/mentalhealth"
)

const entryColumns = "id, user_id, mood_rating, sleep_quality, pulse, entry_date, admin_override, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new mental health store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.Entry, error) {
	var entity domain.Entry
	var sleepQuality, pulse sql.NullInt64
	var adminOverride int
	var entryDate, createdAt string
	var updatedAt sql.NullString

	err := row.Scan(
		&entity.ID,
		&entity.UserID,
		&entity.MoodRating,
		&sleepQuality,
		&pulse,
		&entryDate,
		&adminOverride,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Entry{}, err
	}
	if sleepQuality.Valid {
		v := int(sleepQuality.Int64)
		entity.SleepQuality = &v
	}
	if pulse.Valid {
		v := int(pulse.Int64)
		entity.Pulse = &v
	}
	entity.AdminOverride = adminOverride != 0
	entity.Date, _ = time.Parse(time.RFC3339, entryDate)
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}
	return entity, nil
}

// GetByID retrieves an Entry by its ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM mental_health WHERE id = ?", id)
	entity, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return domain.Entry{}, fmt.Errorf("mental health entry not found: %w", err)
	}
	return entity, err
}

// Save persists an Entry (insert or update).
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Entry) error {
	var sleepQuality, pulse any
	if entity.SleepQuality != nil {
		sleepQuality = *entity.SleepQuality
	}
	if entity.Pulse != nil {
		pulse = *entity.Pulse
	}
	adminOverride := 0
	if entity.AdminOverride {
		adminOverride = 1
	}
	var updatedAt any
	if !entity.UpdatedAt.IsZero() {
		updatedAt = entity.UpdatedAt.Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mental_health (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id, mood_rating=excluded.mood_rating,
			sleep_quality=excluded.sleep_quality, pulse=excluded.pulse, entry_date=excluded.entry_date,
			admin_override=excluded.admin_override, updated_at=excluded.updated_at`,
		entity.ID,
		entity.UserID,
		entity.MoodRating,
		sleepQuality,
		pulse,
		entity.Date.Format(time.RFC3339),
		adminOverride,
		entity.CreatedAt.Format(time.RFC3339),
		updatedAt,
	)
	return err
}

// Delete removes an Entry.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM mental_health WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("mental health entry not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List returns all entries, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Entry, error) {
	return s.queryList(ctx, "SELECT "+entryColumns+" FROM mental_health ORDER BY entry_date DESC")
}

// ListByUser returns one user's entries, newest first.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.Entry, error) {
	return s.queryList(ctx, "SELECT "+entryColumns+" FROM mental_health WHERE user_id = ? ORDER BY entry_date DESC", userID)
}

func (s *SQLiteStore) queryList(ctx context.Context, query string, args ...any) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Entry
	for rows.Next() {
		entity, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
