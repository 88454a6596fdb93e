package role

import (
	"context"

	domain "paddletrack/internal/domain/role"
)

// Store persists Role state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Role, error)
	GetByName(ctx context.Context, name string) (domain.Role, error)
	Save(ctx context.Context, value domain.Role) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Role, error)
}
