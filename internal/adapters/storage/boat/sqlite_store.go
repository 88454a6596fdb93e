package boat

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"paddletrack/internal/adapters/storage"
	domain "paddletrack/internal/domain/boat"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new boat store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Boat by its ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Boat, error) {
	var entity domain.Boat
	var createdAt string
	err := s.db.QueryRowContext(ctx, "SELECT id, name, created_at FROM boat WHERE id = ?", id).
		Scan(&entity.ID, &entity.Name, &createdAt)
	if err == sql.ErrNoRows {
		return domain.Boat{}, fmt.Errorf("boat not found: %w", err)
	}
	if err != nil {
		return domain.Boat{}, err
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return entity, nil
}

// Save persists a Boat (insert or update).
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Boat) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO boat (id, name, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name`,
		entity.ID, entity.Name, entity.CreatedAt.Format(time.RFC3339))
	return err
}

// Delete removes a Boat.
// POST: Entity with given id is removed; returns sql.ErrNoRows if absent
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM boat WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("boat not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List returns all boats ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Boat, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, created_at FROM boat ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Boat
	for rows.Next() {
		var entity domain.Boat
		var createdAt string
		if err := rows.Scan(&entity.ID, &entity.Name, &createdAt); err != nil {
			return nil, err
		}
		entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		results = append(results, entity)
	}
	return results, rows.Err()
}
