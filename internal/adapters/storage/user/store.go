package user

import (
	"context"

	domain "paddletrack/internal/domain/user"
)

// Store persists User state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Save(ctx context.Context, value domain.User) error
	List(ctx context.Context, filter ListFilter) ([]domain.User, error)
	ListUnapproved(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List operations. RoleID narrows
// to one role; Limit/Offset page the result. Soft-deleted users are always
// excluded from List.
type ListFilter struct {
	RoleID string
	Limit  int
	Offset int
}
