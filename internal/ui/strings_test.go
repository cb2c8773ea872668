package ui

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "spawn", 10, "spawn"},
		{"trims", "  spawn  ", 10, "spawn"},
		{"ellipsis", "marketplace", 6, "marke…"},
		{"zero", "spawn", 0, ""},
		{"one", "spawn", 1, "s"},
		{"wide runes", "城堡城堡城堡", 5, "城堡…"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestFitPadsToCellWidth(t *testing.T) {
	if got := fit("ab", 5); got != "ab   " {
		t.Fatalf("fit = %q, want %q", got, "ab   ")
	}
	if got := cellWidth(fit("城堡城堡", 5)); got != 5 {
		t.Fatalf("fit wide width = %d, want 5", got)
	}
}

func TestHumanizeAge(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{"zero", time.Time{}, "never"},
		{"just now", now.Add(-2 * time.Second), "just now"},
		{"seconds", now.Add(-12 * time.Second), "12s ago"},
		{"minutes", now.Add(-3 * time.Minute), "3m ago"},
		{"hours", now.Add(-5 * time.Hour), "5h ago"},
		{"days", now.Add(-48 * time.Hour), "2025-02-27 12:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := humanizeAge(now, tc.at); got != tc.want {
				t.Fatalf("humanizeAge = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	if got := percent(1, 0); got != "0%" {
		t.Fatalf("percent empty = %q", got)
	}
	if got := percent(22, 32); got != "69%" {
		t.Fatalf("percent = %q, want 69%%", got)
	}
}
