package club

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Membership role values for club member rows.
const (
	MemberAthlete = "athlete"
	MemberCoach   = "coach"
)

// Domain errors
var (
	ErrEmptyName         = errors.New("club name cannot be empty")
	ErrNameTooLong       = errors.New("club name cannot exceed 100 characters")
	ErrInvalidMemberRole = errors.New("member role must be 'athlete' or 'coach'")
)

// Club holds state for the Club concept. AthleteIDs and CoachIDs are the
// referenced user ids; lists are shallow-populated with names at the HTTP
// boundary.
type Club struct {
	ID         string
	Name       string
	Location   string
	AthleteIDs []string
	CoachIDs   []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks if the Club has valid data.
// PRE: Club struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Club) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// ValidMemberRole reports whether a club membership role value is accepted.
func ValidMemberRole(role string) bool {
	return role == MemberAthlete || role == MemberCoach
}
