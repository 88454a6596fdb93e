package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"paddletrack/internal/domain/user"
)

func approvedUser(t *testing.T, id, email, password, roleID string) user.User {
	t.Helper()
	u := user.User{
		ID:        id,
		FirstName: "Test",
		LastName:  "Paddler",
		Email:     email,
		RoleID:    roleID,
		Approved:  true,
	}
	if err := u.SetPassword(password); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	return u
}

// TestLoginErrorOrdering verifies the fixed failure order: unknown email,
// then unapproved account, then wrong password.
func TestLoginErrorOrdering(t *testing.T) {
	ctx := context.Background()
	roles := seedRoles()

	pending := user.User{ID: "u-pending", FirstName: "P", LastName: "Q", Email: "pending@example.com"}
	if err := pending.SetPassword("password123"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}

	deleted := approvedUser(t, "u-deleted", "gone@example.com", "password123", "role-competitor")
	deleted.DeletedAt = time.Now()

	users := &mockUserStore{users: map[string]user.User{
		"u-active":  approvedUser(t, "u-active", "active@example.com", "password123", "role-competitor"),
		"u-pending": pending,
		"u-deleted": deleted,
	}}
	deps := LoginDeps{UserStore: users, RoleStore: roles}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "unknown email", email: "nonexistent@example.com", password: "whatever", wantErr: ErrUnknownEmail},
		{name: "deleted account behaves like unknown", email: "gone@example.com", password: "password123", wantErr: ErrUnknownEmail},
		{name: "unapproved before password check", email: "pending@example.com", password: "not-the-password", wantErr: ErrNotApproved},
		{name: "wrong password", email: "active@example.com", password: "not-the-password", wantErr: user.ErrWrongPassword},
		{name: "success", email: "active@example.com", password: "password123", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExecuteLogin(ctx, LoginInput{Email: tt.email, Password: tt.password}, deps)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("got error %v, want nil", err)
				}
				if result.User.ID != "u-active" {
					t.Errorf("got user %q, want u-active", result.User.ID)
				}
				if result.RoleName != "competitor" {
					t.Errorf("got role %q, want competitor", result.RoleName)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestLoginNormalizesEmail verifies case and whitespace folding.
func TestLoginNormalizesEmail(t *testing.T) {
	users := &mockUserStore{users: map[string]user.User{
		"u1": approvedUser(t, "u1", "active@example.com", "password123", "role-coach"),
	}}
	deps := LoginDeps{UserStore: users, RoleStore: seedRoles()}

	result, err := ExecuteLogin(context.Background(), LoginInput{
		Email:    "  Active@Example.COM ",
		Password: "password123",
	}, deps)
	if err != nil {
		t.Fatalf("got error %v, want nil", err)
	}
	if result.RoleName != "coach" {
		t.Errorf("got role %q, want coach", result.RoleName)
	}
}
