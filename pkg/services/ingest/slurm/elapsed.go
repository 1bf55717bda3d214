package slurm

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseElapsed converts an accounting elapsed value to fractional hours.
// Accepted forms are D-HH:MM:SS, HH:MM:SS and MM:SS.
func ParseElapsed(elapsed string) (float64, error) {
	rest := elapsed
	days := 0

	if i := strings.Index(rest, "-"); i >= 0 {
		d, err := strconv.Atoi(rest[:i])
		if err != nil || d < 0 {
			return 0, fmt.Errorf("invalid elapsed time %q", elapsed)
		}
		days = d
		rest = rest[i+1:]
	}

	parts := strings.Split(rest, ":")

	var hours, minutes, seconds int
	var err error
	switch len(parts) {
	case 3:
		hours, err = parseClockPart(parts[0], -1)
		if err == nil {
			minutes, err = parseClockPart(parts[1], 59)
		}
		if err == nil {
			seconds, err = parseClockPart(parts[2], 59)
		}
	case 2:
		minutes, err = parseClockPart(parts[0], -1)
		if err == nil {
			seconds, err = parseClockPart(parts[1], 59)
		}
	default:
		err = fmt.Errorf("unexpected format")
	}
	if err != nil {
		return 0, fmt.Errorf("invalid elapsed time %q", elapsed)
	}

	return float64(days)*24 + float64(hours) + float64(minutes)/60 + float64(seconds)/3600, nil
}

// parseClockPart parses one clock component. A max of -1 means the leading
// component, which is unbounded.
func parseClockPart(s string, max int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || (max >= 0 && n > max) {
		return 0, fmt.Errorf("out of range: %d", n)
	}
	return n, nil
}
