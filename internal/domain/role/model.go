package role

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 50
)

// Well-known role names. Additional roles may be created by admins, but the
// seeded vocabulary is fixed.
const (
	NameAdmin      = "admin"
	NameCoach      = "coach"
	NameCompetitor = "competitor"
)

// SeededNames contains the roles created at bootstrap.
var SeededNames = []string{NameAdmin, NameCoach, NameCompetitor}

// Domain errors
var (
	ErrEmptyName   = errors.New("role name cannot be empty")
	ErrNameTooLong = errors.New("role name cannot exceed 50 characters")
)

// Role holds state for the Role concept.
type Role struct {
	ID          string
	Name        string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks if the Role has valid data.
// PRE: Role struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Role) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if len(r.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
