package club

import (
	"context"

	domain "paddletrack/internal/domain/club"
)

// Store persists Club state, including athlete/coach membership rows.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Club, error)
	Save(ctx context.Context, value domain.Club) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Club, error)
}
