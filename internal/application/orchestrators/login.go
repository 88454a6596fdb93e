package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"paddletrack/internal/adapters/storage"
	"paddletrack/internal/domain/role"
	"paddletrack/internal/domain/user"
)

// UserStoreForLogin defines the store interface needed by Login.
type UserStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// RoleStoreForLogin resolves the user's role name for the token payload.
type RoleStoreForLogin interface {
	GetByID(ctx context.Context, id string) (role.Role, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the authenticated user for token issuance. The role
// name is resolved fresh from the role store, never from a cached claim.
type LoginResult struct {
	User     user.User
	RoleName string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	UserStore UserStoreForLogin
	RoleStore RoleStoreForLogin
}

var (
	// ErrUnknownEmail indicates no account exists for the given email.
	ErrUnknownEmail = errors.New("no account with that email")
	// ErrNotApproved indicates the account exists but has not been
	// approved by an admin yet.
	ErrNotApproved = errors.New("account is awaiting approval")
)

// ExecuteLogin validates credentials for token issuance.
// The failure order is fixed: unknown email, then unapproved account, then
// wrong password. Soft-deleted accounts behave like unknown emails.
// PRE: Email and password provided
// POST: Returns the live user and resolved role name on success
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	u, err := deps.UserStore.GetByEmail(ctx, email)
	if err != nil {
		if storage.IsNotFound(err) {
			slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "not_found")
			return LoginResult{}, ErrUnknownEmail
		}
		return LoginResult{}, err
	}
	if u.IsDeleted() {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "deleted")
		return LoginResult{}, ErrUnknownEmail
	}

	if !u.Approved {
		slog.Info("auth_event", "event", "login_blocked", "email", email, "reason", "unapproved")
		return LoginResult{}, ErrNotApproved
	}

	if err := u.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email, "reason", "wrong_password")
		return LoginResult{}, err
	}

	r, err := deps.RoleStore.GetByID(ctx, u.RoleID)
	if err != nil {
		return LoginResult{}, err
	}
	u.RoleName = r.Name

	slog.Info("auth_event", "event", "login_success", "user_id", u.ID, "role", r.Name)
	return LoginResult{User: u, RoleName: r.Name}, nil
}
