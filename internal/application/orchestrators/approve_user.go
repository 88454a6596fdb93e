package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"paddletrack/internal/adapters/email"
	"paddletrack/internal/domain/role"
	"paddletrack/internal/domain/user"
)

// UserStoreForApprove defines the store interface needed by ApproveUser.
type UserStoreForApprove interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	Save(ctx context.Context, value user.User) error
}

// RoleStoreForApprove validates the role being granted.
type RoleStoreForApprove interface {
	GetByID(ctx context.Context, id string) (role.Role, error)
}

// ApproveUserInput carries input for the approval orchestrator.
type ApproveUserInput struct {
	UserID string
	RoleID string
}

// ApproveUserDeps holds dependencies for ApproveUser.
type ApproveUserDeps struct {
	UserStore UserStoreForApprove
	RoleStore RoleStoreForApprove
	Sender    email.Sender
}

// ExecuteApproveUser marks a pending registration approved with a role and
// notifies the user by email. Email delivery is best-effort: a send failure
// is logged but does not fail the approval.
// PRE: UserID and RoleID reference existing records; user is unapproved
// POST: User has Approved=true and the given role; notification attempted
func ExecuteApproveUser(ctx context.Context, input ApproveUserInput, deps ApproveUserDeps) (user.User, error) {
	r, err := deps.RoleStore.GetByID(ctx, input.RoleID)
	if err != nil {
		return user.User{}, err
	}

	u, err := deps.UserStore.GetByID(ctx, input.UserID)
	if err != nil {
		return user.User{}, err
	}
	if u.IsDeleted() {
		return user.User{}, user.ErrAlreadyDeleted
	}

	if err := u.Approve(r.ID); err != nil {
		return user.User{}, err
	}
	u.UpdatedAt = time.Now().UTC()

	if err := deps.UserStore.Save(ctx, u); err != nil {
		return user.User{}, err
	}
	u.RoleName = r.Name

	slog.Info("user_approved", "user_id", u.ID, "role", r.Name)

	if deps.Sender != nil {
		req, err := email.BuildApprovalEmail(u.Email, u.FullName(), r.Name)
		if err != nil {
			slog.Error("approval_email_compose_failed", "user_id", u.ID, "error", err)
			return u, nil
		}
		if _, err := deps.Sender.Send(ctx, req); err != nil {
			slog.Error("approval_email_send_failed", "user_id", u.ID, "error", err)
		}
	}

	return u, nil
}
