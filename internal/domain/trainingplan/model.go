package trainingplan

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Exercise variant values. The variant selects which segment fields apply.
const (
	VariantStandard = "standard"
	VariantGym      = "gym"
)

// Intensity type values for standard segments.
const (
	IntensityHeartRate = "heart_rate"
	IntensityPace      = "pace"
	IntensityZone      = "zone"
)

// Domain errors
var (
	ErrEmptyName        = errors.New("training plan name cannot be empty")
	ErrNoExercises      = errors.New("training plan must contain at least one exercise")
	ErrInvalidVariant   = errors.New("exercise variant must be 'standard' or 'gym'")
	ErrMixedSegment     = errors.New("exercise carries fields of the other variant")
	ErrLengthMismatch   = errors.New("durations and intensities must have the same length")
	ErrNegativeDuration = errors.New("durations must be positive")
)

// StandardSegment carries the interval fields of a standard (on-water)
// exercise. Durations and Intensities are parallel arrays: one intensity per
// duration step (a pyramid is expressed by the shape of the arrays).
type StandardSegment struct {
	Unit                   string    `json:"unit"`
	IntensityType          string    `json:"intensityType"`
	Durations              []float64 `json:"durations"`
	Intensities            []string  `json:"intensities"`
	Series                 int       `json:"series"`
	Repetitions            int       `json:"repetitions"`
	RestBetweenSeries      int       `json:"restBetweenSeries"`
	RestBetweenRepetitions int       `json:"restBetweenRepetitions"`
}

// GymSegment carries the fields of a gym exercise.
type GymSegment struct {
	Reps             int     `json:"reps"`
	Weight           float64 `json:"weight"`
	Sets             int     `json:"sets"`
	PauseBetweenSets int     `json:"pauseBetweenSets"`
	Duration         float64 `json:"duration"`
	Distance         float64 `json:"distance"`
	Intensity        string  `json:"intensity"`
}

// Exercise is a tagged union: Variant selects exactly one of Standard/Gym.
type Exercise struct {
	Name     string           `json:"name"`
	Variant  string           `json:"variant"`
	Standard *StandardSegment `json:"standard,omitempty"`
	Gym      *GymSegment      `json:"gym,omitempty"`
}

// Validate checks the exercise variant and the segment it selects.
// PRE: Exercise struct is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: Exactly one segment matches the variant
func (e *Exercise) Validate() error {
	switch e.Variant {
	case VariantStandard:
		if e.Standard == nil || e.Gym != nil {
			return ErrMixedSegment
		}
		return e.Standard.validate()
	case VariantGym:
		if e.Gym == nil || e.Standard != nil {
			return ErrMixedSegment
		}
		return e.Gym.validate()
	default:
		return ErrInvalidVariant
	}
}

func (s *StandardSegment) validate() error {
	if len(s.Durations) != len(s.Intensities) {
		return ErrLengthMismatch
	}
	for _, d := range s.Durations {
		if d <= 0 {
			return ErrNegativeDuration
		}
	}
	if s.Series < 0 || s.Repetitions < 0 || s.RestBetweenSeries < 0 || s.RestBetweenRepetitions < 0 {
		return errors.New("series, repetitions and rests cannot be negative")
	}
	return nil
}

func (g *GymSegment) validate() error {
	if g.Reps < 0 || g.Sets < 0 || g.PauseBetweenSets < 0 {
		return errors.New("reps, sets and pause cannot be negative")
	}
	if g.Weight < 0 || g.Duration < 0 || g.Distance < 0 {
		return errors.New("weight, duration and distance cannot be negative")
	}
	return nil
}

// TrainingPlan holds state for the TrainingPlan concept.
type TrainingPlan struct {
	ID        string
	Name      string
	Exercises []Exercise
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the plan and every exercise in it.
// PRE: TrainingPlan struct is populated
// POST: Returns nil if valid, error naming the offending exercise otherwise
func (p *TrainingPlan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Exercises) == 0 {
		return ErrNoExercises
	}
	for i := range p.Exercises {
		if err := p.Exercises[i].Validate(); err != nil {
			return fmt.Errorf("exercise %d: %w", i, err)
		}
	}
	return nil
}
