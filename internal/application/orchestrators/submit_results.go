package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"paddletrack/internal/domain/trainingsession"
)

// SessionStoreForResults defines the store interface needed by SubmitResults.
type SessionStoreForResults interface {
	GetByID(ctx context.Context, id string) (trainingsession.TrainingSession, error)
	Save(ctx context.Context, value trainingsession.TrainingSession) error
}

// ResultsInput carries the submitted report. Fields are pointers so a
// missing field can be told apart from an explicit zero.
type ResultsInput struct {
	HRRest      *float64  `json:"HRrest"`
	Duration    *float64  `json:"duration"`
	Distance    *float64  `json:"distance"`
	RPE         *float64  `json:"RPE"`
	HRAvg       *float64  `json:"HRavg"`
	HRMax       *float64  `json:"HRmax"`
	TimeInZones []float64 `json:"timeInZones"`
}

// SubmitResultsInput carries input for the results orchestrator.
// SubmitterID, when set, must match the session's athlete.
type SubmitResultsInput struct {
	SessionID   string
	SubmitterID string
	Results     ResultsInput
}

// SubmitResultsDeps holds dependencies for SubmitResults.
type SubmitResultsDeps struct {
	SessionStore SessionStoreForResults
}

// ErrNotSessionAthlete indicates a submission by someone other than the
// session's assigned athlete.
var ErrNotSessionAthlete = errors.New("only the assigned athlete can submit results")

// MissingFieldsError lists the required result fields absent from a
// submission.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required result fields: %s", strings.Join(e.Fields, ", "))
}

// validateRequired returns an error naming every absent field, so the caller
// sees the full list in one round trip.
func validateRequired(r ResultsInput) error {
	var missing []string
	if r.HRRest == nil {
		missing = append(missing, "HRrest")
	}
	if r.Duration == nil {
		missing = append(missing, "duration")
	}
	if r.Distance == nil {
		missing = append(missing, "distance")
	}
	if r.RPE == nil {
		missing = append(missing, "RPE")
	}
	if r.HRAvg == nil {
		missing = append(missing, "HRavg")
	}
	if r.HRMax == nil {
		missing = append(missing, "HRmax")
	}
	if r.TimeInZones == nil {
		missing = append(missing, "timeInZones")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// ExecuteSubmitResults attaches a results report to an upcoming session and
// marks it completed.
// PRE: Session exists and is upcoming; all result fields present
// POST: Session has Status=completed and the submitted results
func ExecuteSubmitResults(ctx context.Context, input SubmitResultsInput, deps SubmitResultsDeps) (trainingsession.TrainingSession, error) {
	if err := validateRequired(input.Results); err != nil {
		return trainingsession.TrainingSession{}, err
	}

	s, err := deps.SessionStore.GetByID(ctx, input.SessionID)
	if err != nil {
		return trainingsession.TrainingSession{}, err
	}
	if input.SubmitterID != "" && input.SubmitterID != s.AthleteID {
		return trainingsession.TrainingSession{}, ErrNotSessionAthlete
	}

	results := trainingsession.Results{
		HRRest:      *input.Results.HRRest,
		Duration:    *input.Results.Duration,
		Distance:    *input.Results.Distance,
		RPE:         *input.Results.RPE,
		HRAvg:       *input.Results.HRAvg,
		HRMax:       *input.Results.HRMax,
		TimeInZones: input.Results.TimeInZones,
	}
	if err := s.Complete(results); err != nil {
		return trainingsession.TrainingSession{}, err
	}
	s.UpdatedAt = time.Now().UTC()

	if err := deps.SessionStore.Save(ctx, s); err != nil {
		return trainingsession.TrainingSession{}, err
	}

	slog.Info("session_completed", "session_id", s.ID, "athlete_id", s.AthleteID)
	return s, nil
}
