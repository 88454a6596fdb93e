package trainingtype

import (
	"context"

	domain "paddletrack/internal/domain/trainingtype"
)

// Store persists TrainingType state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.TrainingType, error)
	Save(ctx context.Context, value domain.TrainingType) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.TrainingType, error)
}
