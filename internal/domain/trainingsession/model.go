package trainingsession

import (
	"errors"
	"time"
)

// Session status values.
const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
)

// TimeInZonesLength is the required length of the Results.TimeInZones array:
// one entry per heart-rate zone.
const TimeInZonesLength = 5

// Domain errors
var (
	ErrEmptyPlan        = errors.New("session must reference a training plan")
	ErrEmptyAthlete     = errors.New("session must reference an athlete")
	ErrEmptyCoach       = errors.New("session must reference a coach")
	ErrInvalidStatus    = errors.New("status must be 'upcoming' or 'completed'")
	ErrInvalidIteration = errors.New("iteration must be at least 1")
	ErrAlreadyCompleted = errors.New("session is already completed")
	ErrZonesLength      = errors.New("timeInZones must contain exactly 5 values")
)

// Results is the fixed-shape report a competitor submits after a session.
type Results struct {
	HRRest      float64   `json:"HRrest"`
	Duration    float64   `json:"duration"`
	Distance    float64   `json:"distance"`
	RPE         float64   `json:"RPE"`
	HRAvg       float64   `json:"HRavg"`
	HRMax       float64   `json:"HRmax"`
	TimeInZones []float64 `json:"timeInZones"`
}

// Validate checks the fixed shape of submitted results.
// PRE: Results struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Results) Validate() error {
	if len(r.TimeInZones) != TimeInZonesLength {
		return ErrZonesLength
	}
	if r.Duration < 0 || r.Distance < 0 {
		return errors.New("duration and distance cannot be negative")
	}
	if r.RPE < 0 || r.RPE > 10 {
		return errors.New("RPE must be between 0 and 10")
	}
	return nil
}

// TrainingSession holds state for one scheduled or completed instance of a
// competitor performing a plan on a date. Iteration distinguishes repeat
// assignments of the same plan.
type TrainingSession struct {
	ID        string
	PlanID    string
	AthleteID string
	CoachID   string
	Date      time.Time
	Iteration int
	Status    string
	Results   *Results
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the TrainingSession has valid data.
// PRE: TrainingSession struct is populated
// POST: Returns nil if valid, error otherwise
func (s *TrainingSession) Validate() error {
	if s.PlanID == "" {
		return ErrEmptyPlan
	}
	if s.AthleteID == "" {
		return ErrEmptyAthlete
	}
	if s.CoachID == "" {
		return ErrEmptyCoach
	}
	if s.Status != StatusUpcoming && s.Status != StatusCompleted {
		return ErrInvalidStatus
	}
	if s.Iteration < 1 {
		return ErrInvalidIteration
	}
	return nil
}

// Complete attaches submitted results and flips the status.
// PRE: session is upcoming; results are valid
// POST: Results is set, Status is completed
func (s *TrainingSession) Complete(results Results) error {
	if s.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	if err := results.Validate(); err != nil {
		return err
	}
	s.Results = &results
	s.Status = StatusCompleted
	return nil
}

// IsUpcoming returns true if the session has not been completed yet.
// INVARIANT: Session fields are not mutated
func (s *TrainingSession) IsUpcoming() bool {
	return s.Status == StatusUpcoming
}
