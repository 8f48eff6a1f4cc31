package cmd

import (
	"errors"
	"testing"

	"github.com/papadavis47/mountains-tui/internal/storage"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "2024-03-09"},
		{"today", "2024-03-09"},
		{"yesterday", "2024-03-08"},
		{"2024-02-29", "2024-02-29"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDay(tt.in, testNow)
			if err != nil {
				t.Fatalf("parseDay(%q): %v", tt.in, err)
			}
			if k := got.Format("2006-01-02"); k != tt.want {
				t.Errorf("parseDay(%q) = %s, want %s", tt.in, k, tt.want)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("parseDay(%q) not normalized: %v", tt.in, got)
			}
		})
	}
}

func TestParseDayInvalid(t *testing.T) {
	for _, in := range []string{"03/09/2024", "2024-13-01", "tomorrow"} {
		_, err := parseDay(in, testNow)
		if !errors.Is(err, storage.ErrValidation) {
			t.Errorf("parseDay(%q) error = %v, want ErrValidation", in, err)
		}
	}
}
