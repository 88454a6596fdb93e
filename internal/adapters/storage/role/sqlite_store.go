package role

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"paddletrack/internal/adapters/storage"
	domain "paddletrack/internal/domain/role"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new role store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(row rowScanner) (domain.Role, error) {
	var entity domain.Role
	var permissions, createdAt string
	var updatedAt sql.NullString

	if err := row.Scan(&entity.ID, &entity.Name, &permissions, &createdAt, &updatedAt); err != nil {
		return domain.Role{}, err
	}
	if permissions != "" {
		if err := json.Unmarshal([]byte(permissions), &entity.Permissions); err != nil {
			return domain.Role{}, fmt.Errorf("failed to decode permissions: %w", err)
		}
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}
	return entity, nil
}

// GetByID retrieves a Role by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Role, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, permissions, created_at, updated_at FROM role WHERE id = ?", id)
	entity, err := scanRole(row)
	if err == sql.ErrNoRows {
		return domain.Role{}, fmt.Errorf("role not found: %w", err)
	}
	return entity, err
}

// GetByName retrieves a Role by its unique name.
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Role, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, permissions, created_at, updated_at FROM role WHERE name = ?", name)
	entity, err := scanRole(row)
	if err == sql.ErrNoRows {
		return domain.Role{}, fmt.Errorf("role not found: %w", err)
	}
	return entity, err
}

// Save persists a Role (insert or update).
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Role) error {
	permissions, err := json.Marshal(entity.Permissions)
	if err != nil {
		return fmt.Errorf("failed to encode permissions: %w", err)
	}
	if entity.Permissions == nil {
		permissions = []byte("[]")
	}

	var updatedAt any
	if !entity.UpdatedAt.IsZero() {
		updatedAt = entity.UpdatedAt.Format(time.RFC3339)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO role (id, name, permissions, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, permissions=excluded.permissions, updated_at=excluded.updated_at`,
		entity.ID, entity.Name, string(permissions), entity.CreatedAt.Format(time.RFC3339), updatedAt)
	return err
}

// Delete removes a Role from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed; returns sql.ErrNoRows if absent
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM role WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("role not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List returns all roles ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, permissions, created_at, updated_at FROM role ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Role
	for rows.Next() {
		entity, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
