package team

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"paddletrack/internal/adapters/storage"
	domain "paddletrack/internal/domain/team"
)

// SQLiteStore implements Store using SQLite. Members are kept in team_member
// join rows and loaded alongside the team row.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new team store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (domain.Team, error) {
	var entity domain.Team
	var createdAt string
	var updatedAt sql.NullString
	if err := row.Scan(&entity.ID, &entity.Name, &entity.CoachID, &createdAt, &updatedAt); err != nil {
		return domain.Team{}, err
	}
	entity.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if updatedAt.Valid {
		entity.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt.String)
	}
	return entity, nil
}

// GetByID retrieves a Team by its ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Team, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, coach_id, created_at, updated_at FROM team WHERE id = ?", id)
	entity, err := scanTeam(row)
	if err == sql.ErrNoRows {
		return domain.Team{}, fmt.Errorf("team not found: %w", err)
	}
	if err != nil {
		return domain.Team{}, err
	}
	if err := s.loadMembers(ctx, &entity); err != nil {
		return domain.Team{}, err
	}
	return entity, nil
}

func (s *SQLiteStore) loadMembers(ctx context.Context, entity *domain.Team) error {
	rows, err := s.db.QueryContext(ctx, "SELECT user_id FROM team_member WHERE team_id = ? ORDER BY user_id", entity.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return err
		}
		entity.MemberIDs = append(entity.MemberIDs, userID)
	}
	return rows.Err()
}

// Save persists a Team and replaces its member rows.
// PRE: entity has been validated
// POST: Team row upserted; team_member rows match MemberIDs exactly
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Team) error {
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
		`INSERT INTO team (id, name, coach_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, coach_id=excluded.coach_id, updated_at=excluded.updated_at`,
		entity.ID, entity.Name, entity.CoachID, entity.CreatedAt.Format(time.RFC3339), updatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM team_member WHERE team_id = ?", entity.ID); err != nil {
		return err
	}
	for _, userID := range entity.MemberIDs {
		if _, err := tx.ExecContext(ctx, "INSERT INTO team_member (team_id, user_id) VALUES (?, ?)", entity.ID, userID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes a Team; member rows cascade.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM team WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("team not found: %w", sql.ErrNoRows)
	}
	return nil
}

// List returns all teams with member lists, ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Team, error) {
	return s.queryList(ctx, "SELECT id, name, coach_id, created_at, updated_at FROM team ORDER BY name")
}

// ListByCoach returns the teams owned by one coach.
func (s *SQLiteStore) ListByCoach(ctx context.Context, coachID string) ([]domain.Team, error) {
	return s.queryList(ctx, "SELECT id, name, coach_id, created_at, updated_at FROM team WHERE coach_id = ? ORDER BY name", coachID)
}

func (s *SQLiteStore) queryList(ctx context.Context, query string, args ...any) ([]domain.Team, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Team
	for rows.Next() {
		entity, err := scanTeam(rows)
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
