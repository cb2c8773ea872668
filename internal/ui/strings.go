package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// truncate shortens value to limit terminal cells, adding an ellipsis.
// Player and warp names may contain wide runes, so widths are measured in
// cells rather than bytes.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit == 1 {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, "…")
}

// fit truncates value and pads it to exactly width cells.
func fit(value string, width int) string {
	return runewidth.FillRight(truncate(value, width), width)
}

// cellWidth reports the display width of s.
func cellWidth(s string) int {
	return runewidth.StringWidth(s)
}

// humanizeAge formats how long ago t was.
func humanizeAge(now, t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("2006-01-02 15:04")
	}
}

// percent formats part/total, returning "0%" for an empty total.
func percent(part, total int) string {
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(part)*100/float64(total))
}
