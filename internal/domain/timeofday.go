package domain

import (
	"encoding/json"
	"fmt"
)

// TimeOfDay is a time of day stored as minutes since midnight.
//
// Route departure and arrival times arrive as "HH:MM" strings. Comparing
// those strings lexically only works while every value is zero-padded
// 24-hour format, so they are parsed into this normalized form at the
// boundary and compared as integers everywhere else. Malformed values are
// rejected with ErrValidation instead of being silently mis-ordered.
type TimeOfDay int

// ParseTimeOfDay parses a zero-padded 24-hour "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: time must be in HH:MM format, got %q", ErrValidation, s)
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("%w: time must be in HH:MM format, got %q", ErrValidation, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: time out of range, got %q", ErrValidation, s)
	}
	return TimeOfDay(h*60 + m), nil
}

// String formats the time as zero-padded 24-hour "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON encodes the time as an "HH:MM" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes an "HH:MM" string, rejecting malformed values.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: time must be an HH:MM string", ErrValidation)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
