package boat

import (
	"context"

	domain "paddletrack/internal/domain/boat"
)

// Store persists Boat state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Boat, error)
	Save(ctx context.Context, value domain.Boat) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Boat, error)
}
