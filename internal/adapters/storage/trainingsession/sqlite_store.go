package trainingsession

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"paddletrack/internal/adapters/storage"
	domain "paddletrack/internal/domain/trainingsession"
)

const sessionColumns = "id, plan_id, athlete_id, coach_id, date, iteration, status, results, created_at, updated_at"

// SQLiteStore implements Store using SQLite. The results record is stored as
// a nullable JSON column: NULL until the athlete reports.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new training session store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.TrainingSession, error) {
	var entity domain.TrainingSession
	var date, createdAt string
	var results, updatedAt sql.NullString

	err := row.Scan(
		&entity.ID,
		&entity.PlanID,
		&entity.AthleteID,
		&entity.CoachID,
		&date,
		&entity.Iteration,
		&entity.Status,
		&results,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.TrainingSession{}, err
	}
	entity.Date, _ = time.Parse(time.RFC3339, date)
	if results.Valid {
		var r domain.Results
		if err := json.Unmarshal([]byte(results.String), &r); err != nil {
			return domain.TrainingSession{}, fmt.Errorf("failed to decode results: %w", err)
		}
		entity.Results = &r
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}
	return entity, nil
}

// GetByID retrieves a TrainingSession by its ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.TrainingSession, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM training_session WHERE id = ?", id)
	entity, err := scanSession(row)
	if err == sql.ErrNoRows {
		return domain.TrainingSession{}, fmt.Errorf("training session not found: %w", err)
	}
	return entity, err
}

// Save persists a TrainingSession (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted; Results nil maps to NULL
func (s *SQLiteStore) Save(ctx context.Context, entity domain.TrainingSession) error {
	var results any
	if entity.Results != nil {
		b, err := json.Marshal(entity.Results)
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		results = string(b)
	}

	var updatedAt any
	if !entity.UpdatedAt.IsZero() {
		updatedAt = entity.UpdatedAt.Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO training_session (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET plan_id=excluded.plan_id, athlete_id=excluded.athlete_id,
			coach_id=excluded.coach_id, date=excluded.date, iteration=excluded.iteration,
			status=excluded.status, results=excluded.results, updated_at=excluded.updated_at`,
		entity.ID,
		entity.PlanID,
		entity.AthleteID,
		entity.CoachID,
		entity.Date.Format(time.RFC3339),
		entity.Iteration,
		entity.Status,
		results,
		entity.CreatedAt.Format(time.RFC3339),
		updatedAt,
	)
	return err
}

// Delete removes a TrainingSession.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM training_session WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("training session not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List returns sessions matching the filter, newest date first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.TrainingSession, error) {
	query := "SELECT " + sessionColumns + " FROM training_session WHERE 1=1"
	var args []any
	if filter.PlanID != "" {
		query += " AND plan_id = ?"
		args = append(args, filter.PlanID)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}
	return s.queryList(ctx, query, args...)
}

// ListByAthlete returns the sessions assigned to one athlete, newest first.
func (s *SQLiteStore) ListByAthlete(ctx context.Context, athleteID string) ([]domain.TrainingSession, error) {
	return s.queryList(ctx, "SELECT "+sessionColumns+" FROM training_session WHERE athlete_id = ? ORDER BY date DESC", athleteID)
}

// ListByCoach returns the sessions a coach has assigned, newest first.
func (s *SQLiteStore) ListByCoach(ctx context.Context, coachID string) ([]domain.TrainingSession, error) {
	return s.queryList(ctx, "SELECT "+sessionColumns+" FROM training_session WHERE coach_id = ? ORDER BY date DESC", coachID)
}

func (s *SQLiteStore) queryList(ctx context.Context, query string, args ...any) ([]domain.TrainingSession, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TrainingSession
	for rows.Next() {
		entity, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
