package mentalhealth_test

import (
	"errors"
	"testing"
	"time"

	"paddletrack/internal/domain/mentalhealth"
)

func intPtr(v int) *int { return &v }

// TestEntryValidation tests mood-log bounds and optional fields.
func TestEntryValidation(t *testing.T) {
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entry   mentalhealth.Entry
		wantErr error
	}{
		{
			name:    "valid minimal entry",
			entry:   mentalhealth.Entry{ID: "1", UserID: "u1", MoodRating: 3, Date: date},
			wantErr: nil,
		},
		{
			name: "valid full entry",
			entry: mentalhealth.Entry{
				ID: "1", UserID: "u1", MoodRating: 5,
				SleepQuality: intPtr(4), Pulse: intPtr(58), Date: date,
			},
			wantErr: nil,
		},
		{
			name:    "missing user",
			entry:   mentalhealth.Entry{ID: "1", MoodRating: 3, Date: date},
			wantErr: mentalhealth.ErrEmptyUser,
		},
		{
			name:    "mood below range",
			entry:   mentalhealth.Entry{ID: "1", UserID: "u1", MoodRating: 0, Date: date},
			wantErr: mentalhealth.ErrInvalidMood,
		},
		{
			name:    "mood above range",
			entry:   mentalhealth.Entry{ID: "1", UserID: "u1", MoodRating: 6, Date: date},
			wantErr: mentalhealth.ErrInvalidMood,
		},
		{
			name: "sleep quality out of range",
			entry: mentalhealth.Entry{
				ID: "1", UserID: "u1", MoodRating: 3, SleepQuality: intPtr(9), Date: date,
			},
			wantErr: mentalhealth.ErrInvalidSleep,
		},
		{
			name: "negative pulse",
			entry: mentalhealth.Entry{
				ID: "1", UserID: "u1", MoodRating: 3, Pulse: intPtr(-10), Date: date,
			},
			wantErr: mentalhealth.ErrNegativePulse,
		},
		{
			name:    "missing date",
			entry:   mentalhealth.Entry{ID: "1", UserID: "u1", MoodRating: 3},
			wantErr: mentalhealth.ErrMissingDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("got error %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}
