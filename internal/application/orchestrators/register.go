package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"paddletrack/internal/adapters/storage"
	"paddletrack/internal/domain/user"

	"github.com/google/uuid"
)

// UserStoreForRegister defines the store interface needed by Register.
type UserStoreForRegister interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Save(ctx context.Context, value user.User) error
}

// RegisterInput carries input for the registration orchestrator.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	UserStore UserStoreForRegister
}

// ErrEmailTaken indicates a registration attempt with an email that is
// already in use.
var ErrEmailTaken = errors.New("email is already registered")

// ExecuteRegister creates an unapproved user account. No session is issued;
// the account cannot authenticate until an admin approves it.
// PRE: Valid email, non-empty names, password >= 8 characters
// POST: User created with Approved=false and no role
// INVARIANT: Email must be unique (enforced by store)
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (user.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Check for an existing account first so the caller gets a clean
	// duplicate error rather than a constraint violation.
	if _, err := deps.UserStore.GetByEmail(ctx, email); err == nil {
		return user.User{}, ErrEmailTaken
	} else if !storage.IsNotFound(err) {
		return user.User{}, err
	}

	now := time.Now().UTC()
	u := user.User{
		ID:        uuid.New().String(),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Approved:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.SetPassword(input.Password); err != nil {
		return user.User{}, err
	}

	// Validate domain rules
	if err := u.Validate(); err != nil {
		return user.User{}, err
	}

	if err := deps.UserStore.Save(ctx, u); err != nil {
		if storage.IsUniqueViolation(err) {
			return user.User{}, ErrEmailTaken
		}
		return user.User{}, err
	}

	slog.Info("auth_event", "event", "registered", "user_id", u.ID, "email", u.Email)
	return u, nil
}
