package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logirate/backend/internal/domain"
)

func TestParseTimeOfDay_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want domain.TimeOfDay
	}{
		{"00:00", 0},
		{"08:05", 8*60 + 5},
		{"14:30", 14*60 + 30},
		{"23:59", 23*60 + 59},
	}

	for _, tt := range tests {
		got, err := domain.ParseTimeOfDay(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.in, got.String())
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"8:00",     // missing zero padding
		"08-00",    // wrong separator
		"24:00",    // hour out of range
		"12:60",    // minute out of range
		"12:345",   // too long
		"ab:cd",    // not numeric
		"08:00:00", // seconds not allowed
	}

	for _, in := range invalid {
		_, err := domain.ParseTimeOfDay(in)
		assert.ErrorIs(t, err, domain.ErrValidation, "input %q", in)
	}
}

// Times inside JSON bodies go through UnmarshalJSON, which must apply the
// same validation as ParseTimeOfDay so malformed times become a 400.
func TestTimeOfDay_UnmarshalJSON(t *testing.T) {
	var tod domain.TimeOfDay

	require.NoError(t, json.Unmarshal([]byte(`"09:15"`), &tod))
	assert.Equal(t, domain.TimeOfDay(9*60+15), tod)

	assert.ErrorIs(t, json.Unmarshal([]byte(`"25:00"`), &tod), domain.ErrValidation)
	assert.ErrorIs(t, json.Unmarshal([]byte(`1230`), &tod), domain.ErrValidation)
}

func TestTimeOfDay_MarshalJSON(t *testing.T) {
	tod := domain.TimeOfDay(6*60 + 5)
	b, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"06:05"`, string(b))
}
