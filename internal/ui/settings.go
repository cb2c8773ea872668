package ui

import (
	"fmt"
	"strings"

	"github.com/five82/warpdeck/internal/prefs"
)

// renderSettings lists the persisted preferences and connection details.
func (m Model) renderSettings(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	row := func(label, value, hint string) string {
		line := bg.Render(fit(label, 16), styles.MutedText) + bg.Render(value, styles.Text)
		if hint != "" {
			line += bg.Spaces(2) + bg.Render(hint, styles.FaintText)
		}
		return bg.FillLine(line, width)
	}

	sizes := make([]string, 0, len(prefs.PageSizes))
	for _, s := range prefs.PageSizes {
		label := fmt.Sprint(s)
		if s == m.vm.PageSize {
			label = "[" + label + "]"
		}
		sizes = append(sizes, label)
	}
	auto := "off"
	if m.vm.AutoRefresh {
		auto = "on"
	}

	wsURL := m.gw.WebSocketURL()
	if wsURL == "" {
		wsURL = "not discovered"
	}

	lines := []string{
		bg.Render("Preferences", styles.AccentText.Bold(true)),
		row("Page size", strings.Join(sizes, " "), "+/- to change"),
		row("Auto-refresh", auto, "a to toggle"),
		row("Theme", m.theme.Name, "T to cycle ("+strings.Join(ThemeNames(), ", ")+")"),
		row("Saved to", truncate(m.prefsPath, max(10, width-20)), ""),
		"",
		bg.Render("Server", styles.AccentText.Bold(true)),
		row("API bind", m.apiBind, ""),
		row("Push endpoint", wsURL, ""),
		row("Connection", m.vm.Connection.String(), ""),
	}
	return strings.Join(lines, "\n")
}
