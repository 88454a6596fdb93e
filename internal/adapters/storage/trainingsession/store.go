package trainingsession

import (
	"context"

	domain "paddletrack/internal/domain/trainingsession"
)

// Store persists TrainingSession state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.TrainingSession, error)
	Save(ctx context.Context, value domain.TrainingSession) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.TrainingSession, error)
	ListByAthlete(ctx context.Context, athleteID string) ([]domain.TrainingSession, error)
	ListByCoach(ctx context.Context, coachID string) ([]domain.TrainingSession, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	PlanID string
	Status string
	Limit  int
	Offset int
}
