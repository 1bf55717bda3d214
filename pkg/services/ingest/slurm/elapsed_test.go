package slurm

import (
	"math"
	"testing"
)

func TestParseElapsed(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"00:00:00", 0},
		{"01:00:00", 1},
		{"10:30:00", 10.5},
		{"02:03:04", 2 + 3.0/60 + 4.0/3600},
		{"1-02:03:04", 26 + 3.0/60 + 4.0/3600},
		{"7-00:00:00", 168},
		{"123:00:00", 123},
		{"03:04", 3.0/60 + 4.0/3600},
		{"00:30", 30.0 / 3600},
		{"0-00:00:01", 1.0 / 3600},
	}

	for _, tc := range tests {
		got, err := ParseElapsed(tc.in)
		if err != nil {
			t.Errorf("ParseElapsed(%q): unexpected error %v", tc.in, err)
			continue
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("ParseElapsed(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseElapsed_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"5",
		"1:2:3:4",
		"xx:yy",
		"02:60:00",
		"02:03:60",
		"02:03:-4",
		"-02:03:04",
		"1-",
		"x-02:03:04",
	}

	for _, in := range inputs {
		if _, err := ParseElapsed(in); err == nil {
			t.Errorf("ParseElapsed(%q): expected error, got none", in)
		}
	}
}
