package trainingsession_test

import (
	"errors"
	"testing"
	"time"

	"paddletrack/internal/domain/trainingsession"
)

func validResults() trainingsession.Results {
	return trainingsession.Results{
		HRRest:      52,
		Duration:    3600,
		Distance:    12000,
		RPE:         7,
		HRAvg:       148,
		HRMax:       176,
		TimeInZones: []float64{600, 1200, 900, 600, 300},
	}
}

// TestResultsValidation tests the fixed shape of a results report.
func TestResultsValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*trainingsession.Results)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *trainingsession.Results) {}, wantErr: false},
		{name: "zones of zeros", mutate: func(r *trainingsession.Results) {
			r.TimeInZones = []float64{0, 0, 0, 0, 0}
		}, wantErr: false},
		{name: "four zones", mutate: func(r *trainingsession.Results) {
			r.TimeInZones = []float64{600, 1200, 900, 600}
		}, wantErr: true},
		{name: "six zones", mutate: func(r *trainingsession.Results) {
			r.TimeInZones = append(r.TimeInZones, 100)
		}, wantErr: true},
		{name: "nil zones", mutate: func(r *trainingsession.Results) {
			r.TimeInZones = nil
		}, wantErr: true},
		{name: "RPE above scale", mutate: func(r *trainingsession.Results) {
			r.RPE = 11
		}, wantErr: true},
		{name: "negative distance", mutate: func(r *trainingsession.Results) {
			r.Distance = -1
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResults()
			tt.mutate(&r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("got error %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestSessionValidation tests required references and status values.
func TestSessionValidation(t *testing.T) {
	valid := trainingsession.TrainingSession{
		ID:        "1",
		PlanID:    "plan-1",
		AthleteID: "athlete-1",
		CoachID:   "coach-1",
		Date:      time.Now(),
		Iteration: 1,
		Status:    trainingsession.StatusUpcoming,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("got error %v, want nil", err)
	}

	tests := []struct {
		name    string
		mutate  func(*trainingsession.TrainingSession)
		wantErr error
	}{
		{name: "missing plan", mutate: func(s *trainingsession.TrainingSession) { s.PlanID = "" }, wantErr: trainingsession.ErrEmptyPlan},
		{name: "missing athlete", mutate: func(s *trainingsession.TrainingSession) { s.AthleteID = "" }, wantErr: trainingsession.ErrEmptyAthlete},
		{name: "missing coach", mutate: func(s *trainingsession.TrainingSession) { s.CoachID = "" }, wantErr: trainingsession.ErrEmptyCoach},
		{name: "bad status", mutate: func(s *trainingsession.TrainingSession) { s.Status = "done" }, wantErr: trainingsession.ErrInvalidStatus},
		{name: "zero iteration", mutate: func(s *trainingsession.TrainingSession) { s.Iteration = 0 }, wantErr: trainingsession.ErrInvalidIteration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestComplete tests the upcoming -> completed transition.
func TestComplete(t *testing.T) {
	s := trainingsession.TrainingSession{
		ID:        "1",
		PlanID:    "plan-1",
		AthleteID: "athlete-1",
		CoachID:   "coach-1",
		Iteration: 1,
		Status:    trainingsession.StatusUpcoming,
	}

	short := validResults()
	short.TimeInZones = short.TimeInZones[:4]
	if err := s.Complete(short); !errors.Is(err, trainingsession.ErrZonesLength) {
		t.Errorf("got error %v, want %v", err, trainingsession.ErrZonesLength)
	}
	if s.Status != trainingsession.StatusUpcoming {
		t.Errorf("failed completion must not change status, got %q", s.Status)
	}

	if err := s.Complete(validResults()); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if s.Status != trainingsession.StatusCompleted || s.Results == nil {
		t.Errorf("got status=%q results=%v, want completed with results", s.Status, s.Results)
	}
	if s.Results.HRRest != 52 {
		t.Errorf("got HRrest %v, want 52", s.Results.HRRest)
	}

	if err := s.Complete(validResults()); !errors.Is(err, trainingsession.ErrAlreadyCompleted) {
		t.Errorf("got error %v, want %v", err, trainingsession.ErrAlreadyCompleted)
	}
}
