package domain

import (
	"fmt"
	"time"
)

// Period is one calendar billing month. Start is the first day, End the
// last day, both at UTC midnight.
type Period struct {
	Start time.Time
	End   time.Time
}

// ParsePeriod derives the period bounds from a YYYY-MM month identifier.
func ParsePeriod(month string) (Period, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return Period{}, fmt.Errorf("invalid billing period %q: %w", month, err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}, nil
}

func (p Period) Month() string {
	return p.Start.Format("2006-01")
}

// Days returns the number of calendar days in the period.
func (p Period) Days() int {
	return p.End.Day()
}
