package discipline

import (
	"errors"
	"time"
)

// Distance units accepted for a discipline.
const (
	UnitMetres     = "m"
	UnitKilometres = "km"
)

// Domain errors
var (
	ErrNonPositiveDistance = errors.New("distance must be greater than zero")
	ErrInvalidUnit         = errors.New("unit must be 'm' or 'km'")
)

// Discipline holds state for the Discipline concept (e.g. 200 m, 5 km).
type Discipline struct {
	ID        string
	Distance  float64
	Unit      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the Discipline has valid data.
// PRE: Discipline struct is populated
// POST: Returns nil if valid, error otherwise
func (d *Discipline) Validate() error {
	if d.Distance <= 0 {
		return ErrNonPositiveDistance
	}
	if d.Unit != UnitMetres && d.Unit != UnitKilometres {
		return ErrInvalidUnit
	}
	return nil
}
