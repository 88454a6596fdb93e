package mentalhealth

import (
	"context"

	domain "paddletrack/internal/domain/mentalhealth"
)

// Store persists MentalHealth entries.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Entry, error)
	Save(ctx context.Context, value domain.Entry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Entry, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Entry, error)
}
