package trainingtype

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Variant values select which optional fields apply.
const (
	VariantStandard = "standard"
	VariantStrength = "strength"
	VariantCardio   = "cardio"
)

// ValidVariants contains all accepted variant values.
var ValidVariants = []string{VariantStandard, VariantStrength, VariantCardio}

// Domain errors
var (
	ErrEmptyName          = errors.New("training type name cannot be empty")
	ErrInvalidVariant     = errors.New("variant must be one of: standard, strength, cardio")
	ErrExercisesRequired  = errors.New("exercises are required for strength and cardio variants")
	ErrExercisesForbidden = errors.New("exercises are not allowed for the standard variant")
)

// TrainingType holds state for the TrainingType concept. Exercises is a
// variant-dependent field: required and non-empty for strength/cardio,
// forbidden for standard.
type TrainingType struct {
	ID         string
	Name       string
	Variant    string
	Categories []string
	Exercises  []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks if the TrainingType has valid data, including the
// cross-field variant/exercises rule.
// PRE: TrainingType struct is populated
// POST: Returns nil if valid, error otherwise
func (t *TrainingType) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if len(t.Name) > 100 {
		return errors.New("training type name cannot exceed 100 characters")
	}
	switch t.Variant {
	case VariantStandard:
		if len(t.Exercises) > 0 {
			return ErrExercisesForbidden
		}
	case VariantStrength, VariantCardio:
		if len(t.Exercises) == 0 {
			return ErrExercisesRequired
		}
		for i, ex := range t.Exercises {
			if strings.TrimSpace(ex) == "" {
				return fmt.Errorf("exercise %d cannot be empty", i)
			}
		}
	default:
		return ErrInvalidVariant
	}
	return nil
}
