package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"paddletrack/internal/domain/role"
	"paddletrack/internal/domain/trainingplan"
	"paddletrack/internal/domain/trainingsession"
	"paddletrack/internal/domain/user"

	"github.com/google/uuid"
)

// PlanStoreForAssign defines the plan lookup needed by AssignPlan.
type PlanStoreForAssign interface {
	GetByID(ctx context.Context, id string) (trainingplan.TrainingPlan, error)
}

// UserStoreForAssign defines the user lookup needed by AssignPlan.
type UserStoreForAssign interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

// RoleStoreForAssign resolves role names for competitor checks.
type RoleStoreForAssign interface {
	GetByID(ctx context.Context, id string) (role.Role, error)
}

// SessionStoreForAssign persists the created sessions.
type SessionStoreForAssign interface {
	Save(ctx context.Context, value trainingsession.TrainingSession) error
}

// AssignPlanInput carries input for the bulk assignment orchestrator.
type AssignPlanInput struct {
	PlanID        string
	CompetitorIDs []string
	CoachID       string
	Date          time.Time
	Iteration     int
}

// AssignPlanDeps holds dependencies for AssignPlan.
type AssignPlanDeps struct {
	PlanStore    PlanStoreForAssign
	UserStore    UserStoreForAssign
	RoleStore    RoleStoreForAssign
	SessionStore SessionStoreForAssign
}

// ErrNoCompetitors indicates an assignment call with an empty id list.
var ErrNoCompetitors = errors.New("competitorIds cannot be empty")

// ExecuteAssignPlan creates one upcoming session per valid competitor.
// Ids that do not resolve to an approved competitor are skipped with a
// warning rather than failing the whole call; the response contains only
// the sessions created by this call.
// PRE: PlanID references an existing plan; CoachID is the assigning coach
// POST: One session per valid competitor, all Status=upcoming
// INVARIANT: Creation is sequential and not atomic across competitors
func ExecuteAssignPlan(ctx context.Context, input AssignPlanInput, deps AssignPlanDeps) ([]trainingsession.TrainingSession, error) {
	if len(input.CompetitorIDs) == 0 {
		return nil, ErrNoCompetitors
	}
	if input.Iteration < 1 {
		input.Iteration = 1
	}

	plan, err := deps.PlanStore.GetByID(ctx, input.PlanID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := make([]trainingsession.TrainingSession, 0, len(input.CompetitorIDs))

	for _, competitorID := range input.CompetitorIDs {
		u, err := deps.UserStore.GetByID(ctx, competitorID)
		if err != nil {
			slog.Warn("assign_plan_skipped", "plan_id", plan.ID, "competitor_id", competitorID, "reason", "not_found")
			continue
		}
		if u.IsDeleted() || !u.Approved {
			slog.Warn("assign_plan_skipped", "plan_id", plan.ID, "competitor_id", competitorID, "reason", "inactive_account")
			continue
		}
		r, err := deps.RoleStore.GetByID(ctx, u.RoleID)
		if err != nil || r.Name != role.NameCompetitor {
			slog.Warn("assign_plan_skipped", "plan_id", plan.ID, "competitor_id", competitorID, "reason", "not_a_competitor")
			continue
		}

		s := trainingsession.TrainingSession{
			ID:        uuid.New().String(),
			PlanID:    plan.ID,
			AthleteID: u.ID,
			CoachID:   input.CoachID,
			Date:      input.Date,
			Iteration: input.Iteration,
			Status:    trainingsession.StatusUpcoming,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Validate(); err != nil {
			return created, err
		}
		if err := deps.SessionStore.Save(ctx, s); err != nil {
			// Partial set stays created; there is no compensating rollback.
			return created, err
		}
		created = append(created, s)
	}

	slog.Info("plan_assigned", "plan_id", plan.ID, "requested", len(input.CompetitorIDs), "created", len(created))
	return created, nil
}
