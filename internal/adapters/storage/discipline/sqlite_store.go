package discipline

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"paddletrack/internal/adapters/storage"
	domain "paddletrack/internal/domain/discipline"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new discipline store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDiscipline(row rowScanner) (domain.Discipline, error) {
	var entity domain.Discipline
	var createdAt string
	var updatedAt sql.NullString
	if err := row.Scan(&entity.ID, &entity.Distance, &entity.Unit, &createdAt, &updatedAt); err != nil {
		return domain.Discipline{}, err
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}
	return entity, nil
}

// GetByID retrieves a Discipline by its ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Discipline, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, distance, unit, created_at, updated_at FROM discipline WHERE id = ?", id)
	entity, err := scanDiscipline(row)
	if err == sql.ErrNoRows {
		return domain.Discipline{}, fmt.Errorf("discipline not found: %w", err)
	}
	return entity, err
}

// Save persists a Discipline (insert or update).
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Discipline) error {
	var updatedAt any
	if !entity.UpdatedAt.IsZero() {
		updatedAt = entity.UpdatedAt.Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO discipline (id, distance, unit, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET distance=excluded.distance, unit=excluded.unit, updated_at=excluded.updated_at`,
		entity.ID, entity.Distance, entity.Unit, entity.CreatedAt.Format(time.RFC3339), updatedAt)
	return err
}

// Delete removes a Discipline.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM discipline WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("discipline not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List returns all disciplines ordered by distance.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Discipline, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, distance, unit, created_at, updated_at FROM discipline ORDER BY unit, distance")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Discipline
	for rows.Next() {
		entity, err := scanDiscipline(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
