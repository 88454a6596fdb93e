package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"paddletrack/internal/adapters/storage"
	domain "paddletrack/internal/domain/user"
)

const userColumns = "id, first_name, last_name, email, password_hash, role_id, approved, avatar, birth, club_id, boat_id, gender, height, weight, competition_results, deleted_at, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new user store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanUser.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one user row into a domain.User.
func scanUser(row rowScanner) (domain.User, error) {
	var entity domain.User
	var roleID, clubID, boatID, deletedAt, updatedAt sql.NullString
	var approved int
	var results string
	var createdAt string

	err := row.Scan(
		&entity.ID,
		&entity.FirstName,
		&entity.LastName,
		&entity.Email,
		&entity.PasswordHash,
		&roleID,
		&approved,
		&entity.Avatar,
		&entity.Birth,
		&clubID,
		&boatID,
		&entity.Gender,
		&entity.Height,
		&entity.Weight,
		&results,
		&deletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	entity.RoleID = roleID.String
	entity.ClubID = clubID.String
	entity.BoatID = boatID.String
	entity.Approved = approved != 0
	if results != "" {
		if err := json.Unmarshal([]byte(results), &entity.CompetitionResults); err != nil {
			return domain.User{}, fmt.Errorf("failed to decode competition results: %w", err)
		}
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if deletedAt.Valid {
		entity.DeletedAt, _ = time.Parse(time.RFC3339, deletedAt.String)
	}
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}
	return entity, nil
}

// GetByID retrieves a User by its ID. Soft-deleted users are still returned
// by direct lookup.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM user WHERE id = ?", id)
	entity, err := scanUser(row)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves a User by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM user WHERE email = ?", email)
	entity, err := scanUser(row)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return entity, err
}

// Save persists a User to the database (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.User) error {
	results, err := json.Marshal(entity.CompetitionResults)
	if err != nil {
		return fmt.Errorf("failed to encode competition results: %w", err)
	}
	if entity.CompetitionResults == nil {
		results = []byte("[]")
	}

	query := `INSERT INTO user (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name=excluded.first_name, last_name=excluded.last_name,
			email=excluded.email, password_hash=excluded.password_hash,
			role_id=excluded.role_id, approved=excluded.approved,
			avatar=excluded.avatar, birth=excluded.birth,
			club_id=excluded.club_id, boat_id=excluded.boat_id,
			gender=excluded.gender, height=excluded.height, weight=excluded.weight,
			competition_results=excluded.competition_results,
			deleted_at=excluded.deleted_at, updated_at=excluded.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		entity.ID,
		entity.FirstName,
		entity.LastName,
		entity.Email,
		entity.PasswordHash,
		nullable(entity.RoleID),
		boolToInt(entity.Approved),
		entity.Avatar,
		entity.Birth,
		nullable(entity.ClubID),
		nullable(entity.BoatID),
		entity.Gender,
		entity.Height,
		entity.Weight,
		string(results),
		nullableTime(entity.DeletedAt),
		entity.CreatedAt.Format(time.RFC3339),
		nullableTime(entity.UpdatedAt),
	)
	return err
}

// List returns approved, non-deleted users matching the filter, ordered by
// last name then first name.
// PRE: filter.Limit >= 0
// POST: Returns matching users; soft-deleted rows are excluded
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.User, error) {
	query := "SELECT " + userColumns + " FROM user WHERE deleted_at IS NULL AND approved = 1"
	var args []any
	if filter.RoleID != "" {
		query += " AND role_id = ?"
		args = append(args, filter.RoleID)
	}
	query += " ORDER BY last_name, first_name"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resultsList []domain.User
	for rows.Next() {
		entity, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		resultsList = append(resultsList, entity)
	}
	return resultsList, rows.Err()
}

// ListUnapproved returns registrations waiting for admin approval.
func (s *SQLiteStore) ListUnapproved(ctx context.Context) ([]domain.User, error) {
	query := "SELECT " + userColumns + " FROM user WHERE deleted_at IS NULL AND approved = 0 ORDER BY created_at"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resultsList []domain.User
	for rows.Next() {
		entity, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		resultsList = append(resultsList, entity)
	}
	return resultsList, rows.Err()
}

// Count returns the total number of user rows, including soft-deleted ones.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user").Scan(&count)
	return count, err
}

// nullable maps "" to NULL for optional reference columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableTime maps the zero time to NULL.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

// boolToInt maps a bool to the 0/1 SQLite convention.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
