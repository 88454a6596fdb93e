package mentalhealth

import (
	"errors"
	"time"
)

// Rating bounds for mood and sleep quality.
const (
	MinRating = 1
	MaxRating = 5
)

// Domain errors
var (
	ErrEmptyUser          = errors.New("entry must reference a user")
	ErrInvalidMood        = errors.New("mood rating must be between 1 and 5")
	ErrInvalidSleep       = errors.New("sleep quality must be between 1 and 5")
	ErrNegativePulse      = errors.New("pulse cannot be negative")
	ErrMissingDate        = errors.New("entry date is required")
)

// Entry holds one daily mood log for a user. SleepQuality and Pulse are
// optional; zero pointers mean "not recorded". The one-entry-per-day rule is
// client convention and is not enforced here.
type Entry struct {
	ID            string
	UserID        string
	MoodRating    int
	SleepQuality  *int
	Pulse         *int
	Date          time.Time
	AdminOverride bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks if the Entry has valid data.
// PRE: Entry struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Entry) Validate() error {
	if e.UserID == "" {
		return ErrEmptyUser
	}
	if e.MoodRating < MinRating || e.MoodRating > MaxRating {
		return ErrInvalidMood
	}
	if e.SleepQuality != nil && (*e.SleepQuality < MinRating || *e.SleepQuality > MaxRating) {
		return ErrInvalidSleep
	}
	if e.Pulse != nil && *e.Pulse < 0 {
		return ErrNegativePulse
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}
