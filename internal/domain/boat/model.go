package boat

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyName   = errors.New("boat name cannot be empty")
	ErrNameTooLong = errors.New("boat name cannot exceed 50 characters")
)

// Boat holds state for the Boat concept (K1, K2, C1, ...).
type Boat struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Validate checks if the Boat has valid data.
func (b *Boat) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return ErrEmptyName
	}
	if len(b.Name) > 50 {
		return ErrNameTooLong
	}
	return nil
}
