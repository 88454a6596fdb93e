package club

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"paddletrack/internal/adapters/storage"
	domain "paddletrack/internal/domain/club"
)

// SQLiteStore implements Store using SQLite. Membership is kept in
// club_member join rows and loaded alongside the club row.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new club store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Club by its ID.
// PRE: id is non-empty
// POST: Returns the entity with membership lists, or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Club, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, location, created_at, updated_at FROM club WHERE id = ?", id)

	entity, err := scanClub(row)
	if err == sql.ErrNoRows {
		return domain.Club{}, fmt.Errorf("club not found: %w", err)
	}
	if err != nil {
		return domain.Club{}, err
	}
	if err := s.loadMembers(ctx, &entity); err != nil {
		return domain.Club{}, err
	}
	return entity, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClub(row rowScanner) (domain.Club, error) {
	var entity domain.Club
	var createdAt string
	var updatedAt sql.NullString
	if err := row.Scan(&entity.ID, &entity.Name, &entity.Location, &createdAt, &updatedAt); err != nil {
		return domain.Club{}, err
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}
	return entity, nil
}

// loadMembers populates AthleteIDs and CoachIDs from club_member rows.
func (s *SQLiteStore) loadMembers(ctx context.Context, entity *domain.Club) error {
	rows, err := s.db.QueryContext(ctx, "SELECT user_id, member_role FROM club_member WHERE club_id = ? ORDER BY user_id", entity.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var userID, memberRole string
		if err := rows.Scan(&userID, &memberRole); err != nil {
			return err
		}
		switch memberRole {
		case domain.MemberCoach:
			entity.CoachIDs = append(entity.CoachIDs, userID)
		default:
			entity.AthleteIDs = append(entity.AthleteIDs, userID)
		}
	}
	return rows.Err()
}

// Save persists a Club and replaces its membership rows.
// PRE: entity has been validated
// POST: Club row upserted; club_member rows match AthleteIDs/CoachIDs exactly
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Club) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var updatedAt any
	if !entity.UpdatedAt.IsZero() {
		updatedAt = entity.UpdatedAt.Format(time.RFC3339)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO club (id, name, location, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, location=excluded.location, updated_at=excluded.updated_at`,
		entity.ID, entity.Name, entity.Location, entity.CreatedAt.Format(time.RFC3339), updatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM club_member WHERE club_id = ?", entity.ID); err != nil {
		return err
	}
	for _, userID := range entity.AthleteIDs {
		if _, err := tx.ExecContext(ctx, "INSERT INTO club_member (club_id, user_id, member_role) VALUES (?, ?, ?)", entity.ID, userID, domain.MemberAthlete); err != nil {
			return err
		}
	}
	for _, userID := range entity.CoachIDs {
		if _, err := tx.ExecContext(ctx, "INSERT INTO club_member (club_id, user_id, member_role) VALUES (?, ?, ?)", entity.ID, userID, domain.MemberCoach); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes a Club; membership rows cascade.
// PRE: id is non-empty
// POST: Entity with given id is removed; returns sql.ErrNoRows if absent
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM club WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("club not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List returns all clubs with membership lists, ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Club, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, location, created_at, updated_at FROM club ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Club
	for rows.Next() {
		entity, err := scanClub(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		if err := s.loadMembers(ctx, &results[i]); err != nil {
			return nil, err
		}
	}
	return results, nil
}
