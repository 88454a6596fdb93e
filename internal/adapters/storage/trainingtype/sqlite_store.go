package trainingtype

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"paddletrack/internal/adapters/storage"
	domain "paddletrack/internal/domain/trainingtype"
)

// SQLiteStore implements Store using SQLite. Categories and Exercises are
// stored as JSON text columns.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new training type store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrainingType(row rowScanner) (domain.TrainingType, error) {
	var entity domain.TrainingType
	var categories, exercises, createdAt string
	var updatedAt sql.NullString

	if err := row.Scan(&entity.ID, &entity.Name, &entity.Variant, &categories, &exercises, &createdAt, &updatedAt); err != nil {
		return domain.TrainingType{}, err
	}
	if err := json.Unmarshal([]byte(categories), &entity.Categories); err != nil {
		return domain.TrainingType{}, fmt.Errorf("failed to decode categories: %w", err)
	}
	if err := json.Unmarshal([]byte(exercises), &entity.Exercises); err != nil {
		return domain.TrainingType{}, fmt.Errorf("failed to decode exercises: %w", err)
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}
	return entity, nil
}

// GetByID retrieves a TrainingType by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.TrainingType, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, variant, categories, exercises, created_at, updated_at FROM training_type WHERE id = ?", id)
	entity, err := scanTrainingType(row)
	if err == sql.ErrNoRows {
		return domain.TrainingType{}, fmt.Errorf("training type not found: %w", err)
	}
	return entity, err
}

// Save persists a TrainingType (insert or update).
// PRE: entity has been validated (variant/exercises invariant holds)
// POST: Entity is persisted with JSON-encoded lists
func (s *SQLiteStore) Save(ctx context.Context, entity domain.TrainingType) error {
	categories, err := jsonList(entity.Categories)
	if err != nil {
		return err
	}
	exercises, err := jsonList(entity.Exercises)
	if err != nil {
		return err
	}

	var updatedAt any
	if !entity.UpdatedAt.IsZero() {
		updatedAt = entity.UpdatedAt.Format(time.RFC3339)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO training_type (id, name, variant, categories, exercises, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, variant=excluded.variant,
			categories=excluded.categories, exercises=excluded.exercises, updated_at=excluded.updated_at`,
		entity.ID, entity.Name, entity.Variant, categories, exercises, entity.CreatedAt.Format(time.RFC3339), updatedAt)
	return err
}

// Delete removes a TrainingType.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM training_type WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("training type not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List returns all training types ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.TrainingType, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, variant, categories, exercises, created_at, updated_at FROM training_type ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.TrainingType
	for rows.Next() {
		entity, err := scanTrainingType(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// jsonList encodes a string slice, mapping nil to the empty JSON array.
func jsonList(list []string) (string, error) {
	if list == nil {
		return "[]", nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(b), nil
}
