package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name  string
		month string
		start time.Time
		end   time.Time
		days  int
	}{
		{
			name:  "january",
			month: "2025-01",
			start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			days:  31,
		},
		{
			name:  "february in a leap year",
			month: "2024-02",
			start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			days:  29,
		},
		{
			name:  "february in a common year",
			month: "2025-02",
			start: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
			days:  28,
		},
		{
			name:  "thirty day month",
			month: "2025-04",
			start: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
			days:  30,
		},
		{
			name:  "december rolls into the next year correctly",
			month: "2025-12",
			start: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			days:  31,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			period, err := ParsePeriod(tc.month)
			require.NoError(t, err)
			assert.Equal(t, tc.start, period.Start)
			assert.Equal(t, tc.end, period.End)
			assert.Equal(t, tc.days, period.Days())
			assert.Equal(t, tc.month, period.Month())
		})
	}
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, month := range []string{"", "2025", "2025-13", "2025-00", "07-2025", "garbage"} {
		t.Run(month, func(t *testing.T) {
			_, err := ParsePeriod(month)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid billing period")
		})
	}
}
