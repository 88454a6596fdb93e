package trainingplan

import (
	"context"

	domain "paddletrack/internal/domain/trainingplan"
)

// Store persists TrainingPlan state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.TrainingPlan, error)
	Save(ctx context.Context, value domain.TrainingPlan) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.TrainingPlan, error)
}
