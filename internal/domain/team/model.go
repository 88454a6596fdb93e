package team

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyName       = errors.New("team name cannot be empty")
	ErrEmptyCoach      = errors.New("team must have a coach")
	ErrDuplicateMember = errors.New("user is already a member of this team")
	ErrNotMember       = errors.New("user is not a member of this team")
)

// Team holds state for the Team concept. A coach owns at most one team by
// convention; the rule is not enforced by storage.
type Team struct {
	ID        string
	Name      string
	CoachID   string
	MemberIDs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the Team has valid data.
// PRE: Team struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if len(t.Name) > 100 {
		return errors.New("team name cannot exceed 100 characters")
	}
	if t.CoachID == "" {
		return ErrEmptyCoach
	}
	return nil
}

// AddMember appends a user id, rejecting duplicates.
// PRE: userID is non-empty
// POST: userID is in MemberIDs exactly once
func (t *Team) AddMember(userID string) error {
	for _, id := range t.MemberIDs {
		if id == userID {
			return ErrDuplicateMember
		}
	}
	t.MemberIDs = append(t.MemberIDs, userID)
	return nil
}

// RemoveMember drops a user id from the member list.
// PRE: userID is in MemberIDs
// POST: userID is no longer in MemberIDs
func (t *Team) RemoveMember(userID string) error {
	for i, id := range t.MemberIDs {
		if id == userID {
			t.MemberIDs = append(t.MemberIDs[:i], t.MemberIDs[i+1:]...)
			return nil
		}
	}
	return ErrNotMember
}
