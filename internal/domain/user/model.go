package user

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

// Gender values accepted on profiles. Free-form input is rejected.
const (
	GenderFemale = "female"
	GenderMale   = "male"
	GenderOther  = "other"
)

// Domain errors
var (
	ErrEmptyFirstName   = errors.New("first name cannot be empty")
	ErrEmptyLastName    = errors.New("last name cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("email must contain '@'")
	ErrInvalidGender    = errors.New("gender must be 'female', 'male' or 'other'")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrApprovedNoRole   = errors.New("an approved user must have a role")
	ErrAlreadyApproved  = errors.New("user is already approved")
	ErrAlreadyDeleted   = errors.New("user is already deleted")
)

// CompetitionResult is one past race result recorded on a competitor profile.
type CompetitionResult struct {
	Competition string `json:"competition"`
	Date        string `json:"date"`
	Placement   int    `json:"placement"`
	Notes       string `json:"notes,omitempty"`
}

// User holds state for the User concept. RoleID is empty until an admin
// approves the registration; RoleName is the shallow-populated role name and
// is not persisted on the user row itself.
type User struct {
	ID                 string
	FirstName          string
	LastName           string
	Email              string
	PasswordHash       string
	RoleID             string
	RoleName           string
	Approved           bool
	Avatar             string
	Birth              string
	ClubID             string
	BoatID             string
	Gender             string
	Height             float64
	Weight             float64
	CompetitionResults []CompetitionResult
	DeletedAt          time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Validate checks if the User has valid data.
// PRE: User struct is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: Approved implies RoleID is set
func (u *User) Validate() error {
	if strings.TrimSpace(u.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if len(u.FirstName) > MaxNameLength {
		return errors.New("first name cannot exceed 100 characters")
	}
	if strings.TrimSpace(u.LastName) == "" {
		return ErrEmptyLastName
	}
	if len(u.LastName) > MaxNameLength {
		return errors.New("last name cannot exceed 100 characters")
	}
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	if len(u.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.Gender != "" && u.Gender != GenderFemale && u.Gender != GenderMale && u.Gender != GenderOther {
		return ErrInvalidGender
	}
	if u.Approved && u.RoleID == "" {
		return ErrApprovedNoRole
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 8 characters
// POST: PasswordHash is set to bcrypt hash
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < 8 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: User fields are not mutated
func (u *User) CheckPassword(plaintext string) error {
	if u.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

// Approve marks the user approved with the given role.
// PRE: roleID is non-empty; user is not yet approved
// POST: Approved is true, RoleID is set
func (u *User) Approve(roleID string) error {
	if u.Approved {
		return ErrAlreadyApproved
	}
	if roleID == "" {
		return ErrApprovedNoRole
	}
	u.RoleID = roleID
	u.Approved = true
	return nil
}

// SoftDelete marks the user deleted without removing the row.
// PRE: user is not already deleted
// POST: DeletedAt is set to now
func (u *User) SoftDelete(now time.Time) error {
	if u.IsDeleted() {
		return ErrAlreadyDeleted
	}
	u.DeletedAt = now
	return nil
}

// IsDeleted returns true if the user has been soft-deleted.
// INVARIANT: User fields are not mutated
func (u *User) IsDeleted() bool {
	return !u.DeletedAt.IsZero()
}

// FullName returns the display name for lists and emails.
// INVARIANT: User fields are not mutated
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
