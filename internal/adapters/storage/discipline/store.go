package discipline

import (
	"context"

	domain "paddletrack/internal/domain/discipline"
)

// Store persists Discipline state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Discipline, error)
	Save(ctx context.Context, value domain.Discipline) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Discipline, error)
}
