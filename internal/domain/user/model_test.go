package user_test

import (
	"errors"
	"testing"
	"time"

	"paddletrack/internal/domain/user"
)

// TestUserValidation tests validation of User.
func TestUserValidation(t *testing.T) {
	tests := []struct {
		name    string
		user    user.User
		wantErr error
	}{
		{
			name: "valid unapproved registration",
			user: user.User{
				ID:        "123",
				FirstName: "Aroha",
				LastName:  "Ngata",
				Email:     "aroha@example.com",
			},
			wantErr: nil,
		},
		{
			name: "valid approved competitor",
			user: user.User{
				ID:        "123",
				FirstName: "Aroha",
				LastName:  "Ngata",
				Email:     "aroha@example.com",
				RoleID:    "role-1",
				Approved:  true,
				Gender:    user.GenderFemale,
			},
			wantErr: nil,
		},
		{
			name: "empty first name",
			user: user.User{
				ID:       "123",
				LastName: "Ngata",
				Email:    "aroha@example.com",
			},
			wantErr: user.ErrEmptyFirstName,
		},
		{
			name: "empty last name",
			user: user.User{
				ID:        "123",
				FirstName: "Aroha",
				Email:     "aroha@example.com",
			},
			wantErr: user.ErrEmptyLastName,
		},
		{
			name: "email without at sign",
			user: user.User{
				ID:        "123",
				FirstName: "Aroha",
				LastName:  "Ngata",
				Email:     "not-an-email",
			},
			wantErr: user.ErrInvalidEmail,
		},
		{
			name: "invalid gender",
			user: user.User{
				ID:        "123",
				FirstName: "Aroha",
				LastName:  "Ngata",
				Email:     "aroha@example.com",
				Gender:    "unknown",
			},
			wantErr: user.ErrInvalidGender,
		},
		{
			name: "approved without role",
			user: user.User{
				ID:        "123",
				FirstName: "Aroha",
				LastName:  "Ngata",
				Email:     "aroha@example.com",
				Approved:  true,
			},
			wantErr: user.ErrApprovedNoRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("got error %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestSetAndCheckPassword tests the bcrypt round trip.
func TestSetAndCheckPassword(t *testing.T) {
	u := user.User{}

	if err := u.SetPassword("short"); !errors.Is(err, user.ErrPasswordTooShort) {
		t.Errorf("got error %v, want %v", err, user.ErrPasswordTooShort)
	}
	if err := u.SetPassword(""); !errors.Is(err, user.ErrEmptyPassword) {
		t.Errorf("got error %v, want %v", err, user.ErrEmptyPassword)
	}

	if err := u.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "correct horse battery" {
		t.Errorf("password hash not set or stored in plaintext: %q", u.PasswordHash)
	}

	if err := u.CheckPassword("correct horse battery"); err != nil {
		t.Errorf("got error %v, want nil for correct password", err)
	}
	if err := u.CheckPassword("wrong"); !errors.Is(err, user.ErrWrongPassword) {
		t.Errorf("got error %v, want %v", err, user.ErrWrongPassword)
	}
}

// TestApprove tests the approval transition.
func TestApprove(t *testing.T) {
	u := user.User{ID: "123", FirstName: "Aroha", LastName: "Ngata", Email: "aroha@example.com"}

	if err := u.Approve(""); !errors.Is(err, user.ErrApprovedNoRole) {
		t.Errorf("got error %v, want %v", err, user.ErrApprovedNoRole)
	}

	if err := u.Approve("role-1"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if !u.Approved || u.RoleID != "role-1" {
		t.Errorf("got approved=%v role=%q, want approved=true role=role-1", u.Approved, u.RoleID)
	}

	if err := u.Approve("role-2"); !errors.Is(err, user.ErrAlreadyApproved) {
		t.Errorf("got error %v, want %v", err, user.ErrAlreadyApproved)
	}
}

// TestSoftDelete tests the deletion marker.
func TestSoftDelete(t *testing.T) {
	u := user.User{ID: "123"}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if u.IsDeleted() {
		t.Error("new user should not be deleted")
	}
	if err := u.SoftDelete(now); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if !u.IsDeleted() || !u.DeletedAt.Equal(now) {
		t.Errorf("got deleted=%v deletedAt=%v, want deleted at %v", u.IsDeleted(), u.DeletedAt, now)
	}
	if err := u.SoftDelete(now); !errors.Is(err, user.ErrAlreadyDeleted) {
		t.Errorf("got error %v, want %v", err, user.ErrAlreadyDeleted)
	}
}
