package trainingplan

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"paddletrack/internal/adapters/storage"
	domain "paddletrack/internal/domain/trainingplan"
)

// SQLiteStore implements Store using SQLite. The exercise list (a tagged
// union per element) round-trips through one JSON column; the variant
// discriminant is preserved verbatim.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new training plan store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (domain.TrainingPlan, error) {
	var entity domain.TrainingPlan
	var exercises, createdAt string
	var updatedAt sql.NullString

	if err := row.Scan(&entity.ID, &entity.Name, &exercises, &createdAt, &updatedAt); err != nil {
		return domain.TrainingPlan{}, err
	}
	if err := json.Unmarshal([]byte(exercises), &entity.Exercises); err != nil {
		return domain.TrainingPlan{}, fmt.Errorf("failed to decode exercises: %w", err)
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}
	return entity, nil
}

// GetByID retrieves a TrainingPlan by its ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.TrainingPlan, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, exercises, created_at, updated_at FROM training_plan WHERE id = ?", id)
	entity, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return domain.TrainingPlan{}, fmt.Errorf("training plan not found: %w", err)
	}
	return entity, err
}

// Save persists a TrainingPlan (insert or update).
// PRE: entity has been validated (every exercise matches its variant)
// POST: Entity is persisted with the exercise union JSON-encoded
func (s *SQLiteStore) Save(ctx context.Context, entity domain.TrainingPlan) error {
	exercises, err := json.Marshal(entity.Exercises)
	if err != nil {
		return fmt.Errorf("failed to encode exercises: %w", err)
	}
	if entity.Exercises == nil {
		exercises = []byte("[]")
	}

	var updatedAt any
	if !entity.UpdatedAt.IsZero() {
		updatedAt = entity.UpdatedAt.Format(time.RFC3339)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO training_plan (id, name, exercises, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, exercises=excluded.exercises, updated_at=excluded.updated_at`,
		entity.ID, entity.Name, string(exercises), entity.CreatedAt.Format(time.RFC3339), updatedAt)
	return err
}

// Delete removes a TrainingPlan.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM training_plan WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("training plan not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List returns all training plans ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.TrainingPlan, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, exercises, created_at, updated_at FROM training_plan ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TrainingPlan
	for rows.Next() {
		entity, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
