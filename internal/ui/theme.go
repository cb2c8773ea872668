package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/warpdeck/internal/view"
)

// Theme defines the palette for the dashboard.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Unfocused panels
	FocusBg    string // Focused panel

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Bar is the fill color of chart bars.
	Bar string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),
		BarText:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Bar)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style
	BarText     lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
}

// WithBackground returns a copy of Styles with every style painted on bgColor.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	return Styles{
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),
		BarText:     s.BarText.Background(bg),
		Header:      s.Header.Background(bg),
		Logo:        s.Logo.Background(bg),
		Selected:    s.Selected,
	}
}

// Severity returns the text style for a notice severity.
func (s Styles) Severity(sev view.Severity) lipgloss.Style {
	switch sev {
	case view.SeveritySuccess:
		return s.SuccessText
	case view.SeverityWarning:
		return s.WarningText
	case view.SeverityError:
		return s.DangerText
	default:
		return s.InfoText
	}
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:          "Nightfox",
		Background:    "#131a24", // bg0
		Surface:       "#192330", // bg1
		SurfaceAlt:    "#212e3f", // bg2
		FocusBg:       "#29394f", // bg3
		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1
		Border:        "#39506d", // bg4
		BorderFocus:   "#719cd6", // blue
		Text:          "#cdcecf",
		Muted:         "#738091",
		Faint:         "#71839b",
		Accent:        "#719cd6",
		Success:       "#81b29a",
		Warning:       "#dbc074",
		Danger:        "#c94f6d",
		Info:          "#63cdcf",
		Bar:           "#9d79d6", // magenta
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:          "Kanagawa",
		Background:    "#16161D", // sumiInk0
		Surface:       "#1F1F28", // sumiInk3
		SurfaceAlt:    "#2A2A37", // sumiInk4
		FocusBg:       "#2A2A37",
		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite
		Border:        "#54546D", // sumiInk6
		BorderFocus:   "#7E9CD8", // crystalBlue
		Text:          "#DCD7BA",
		Muted:         "#C8C093", // oldWhite
		Faint:         "#727169", // fujiGray
		Accent:        "#7E9CD8",
		Success:       "#98BB6C", // springGreen
		Warning:       "#E6C384", // carpYellow
		Danger:        "#E46876", // waveRed
		Info:          "#7FB4CA", // springBlue
		Bar:           "#957FB8", // oniViolet
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name:          "Slate",
		Background:    "#020617", // slate-950
		Surface:       "#0f172a", // slate-900
		SurfaceAlt:    "#1e293b", // slate-800
		FocusBg:       "#283548",
		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50
		Border:        "#334155", // slate-700
		BorderFocus:   "#38bdf8", // sky-400
		Text:          "#f1f5f9",
		Muted:         "#94a3b8",
		Faint:         "#64748b",
		Accent:        "#38bdf8",
		Success:       "#22c55e",
		Warning:       "#f59e0b",
		Danger:        "#ef4444",
		Info:          "#06b6d4",
		Bar:           "#8b5cf6", // violet-500
	}
}
