package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/warpdeck/internal/live"
	"github.com/five82/warpdeck/internal/view"
)

const maxNoticeLines = 3

// renderMain renders header, tabs, banner, the active view, prompt, notices
// and footer.
func (m Model) renderMain() string {
	top := []string{m.renderHeader(), m.renderTabs()}
	if banner := m.renderBanner(); banner != "" {
		top = append(top, banner)
	}
	var bottom []string
	if line := m.promptLine(); line != "" {
		bottom = append(bottom, lipgloss.NewStyle().Width(m.width).Render(line))
	}
	bottom = append(bottom, m.renderNotices()...)
	bottom = append(bottom, m.renderFooter())

	height := max(3, m.height-len(top)-len(bottom))
	parts := append(top, m.renderContent(height))
	parts = append(parts, bottom...)
	return strings.Join(parts, "\n")
}

// contentHeight mirrors the layout in renderMain for components that need
// their size outside View.
func (m Model) contentHeight() int {
	used := 3 // header, tabs, footer
	if m.renderBanner() != "" {
		used++
	}
	if m.mode != modeNone {
		used++
	}
	used += min(len(m.vm.Notices), maxNoticeLines)
	return max(3, m.height-used)
}

func (m Model) renderContent(height int) string {
	switch m.currentView {
	case ViewStats:
		return m.renderTitledBox("Statistics", m.statsPane(m.width-2, height-2), m.width, height, true)
	case ViewSettings:
		return m.renderTitledBox("Settings", m.renderSettings(m.width-2), m.width, height, true)
	default:
		return m.renderTitledBox(m.warpsTitle(), m.renderWarps(m.width-2, height-2), m.width, height, true)
	}
}

// renderHeader renders the status bar: logo, connection, counts and age.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("warpdeck", styles.Logo), m.connectionBadge(styles, bg)}

	general := m.vm.Stats.General
	total, public, private := general.TotalWarps, general.PublicWarps, general.PrivateWarps
	if !m.vm.Stats.HasGeneral {
		total = m.vm.CacheTotal
	}
	parts = append(parts,
		bg.Render("Warps:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprint(total), styles.Text),
		bg.Render("Public:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprint(public), styles.SuccessText),
		bg.Render("Private:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprint(private), styles.WarningText),
	)
	if !m.vm.Stats.LastUpdated.IsZero() {
		parts = append(parts, bg.Render(humanizeAge(m.now, m.vm.Stats.LastUpdated), styles.MutedText))
	}
	if m.vm.AutoRefresh && !m.vm.Disabled {
		parts = append(parts, bg.Render("auto", styles.InfoText))
	}
	if m.vm.Stats.IsOffline() {
		parts = append(parts, bg.Render("API UNREACHABLE", styles.DangerText))
	}
	if m.Busy() {
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText))
	}
	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) connectionBadge(styles Styles, bg BgStyle) string {
	switch {
	case m.vm.Disabled:
		return bg.Render("■ disabled", styles.DangerText)
	case m.vm.Connection == live.Open:
		return bg.Render("● live", styles.SuccessText)
	case m.vm.Connection == live.Connecting:
		return bg.Render("◌ connecting", styles.WarningText)
	default:
		return bg.Render("○ disconnected", styles.DangerText)
	}
}

// renderTabs renders the tab strip and the theme indicator.
func (m Model) renderTabs() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	segments := make([]string, 0, len(viewNames)+1)
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if View(i) == m.currentView {
			segments = append(segments, bg.Render("["+label+"]", styles.AccentText.Bold(true)))
			continue
		}
		segments = append(segments, bg.Render(label, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+bg.Render(":", styles.FaintText)+bg.Render(m.theme.Name, styles.FaintText))
	return styles.Header.Width(m.width).Render(bg.Join(segments, "  "))
}

func (m Model) renderBanner() string {
	var text string
	switch {
	case m.vm.Disabled:
		text = "The web interface has been disabled on the server"
	case m.vm.Banner != "":
		text = m.vm.Banner
	default:
		return ""
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Danger)).
		Foreground(lipgloss.Color(m.theme.Background)).
		Bold(true).
		Width(m.width).
		Padding(0, 1).
		Render(truncate(text, m.width-2))
}

func (m Model) renderNotices() []string {
	notices := m.vm.Notices
	if len(notices) > maxNoticeLines {
		notices = notices[len(notices)-maxNoticeLines:]
	}
	styles := m.theme.Styles()
	lines := make([]string, 0, len(notices))
	for _, n := range notices {
		lines = append(lines, styles.Severity(n.Severity).Render(noticeIcon(n.Severity)+" "+truncate(n.Text, m.width-3)))
	}
	return lines
}

func noticeIcon(sev view.Severity) string {
	switch sev {
	case view.SeveritySuccess:
		return "✓"
	case view.SeverityWarning:
		return "!"
	case view.SeverityError:
		return "✗"
	default:
		return "•"
	}
}

func (m Model) renderFooter() string {
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// renderHelp renders the full key map in a centred modal.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	full := m.help
	full.ShowAll = true
	b.WriteString(full.FullHelpView(m.keys.FullHelp()))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(0, width-2)
	title = truncate(title, max(0, innerWidth-4))
	titleLen := cellWidth(title)
	leftPad := max(0, (innerWidth-titleLen-2)/2)
	rightPad := max(0, innerWidth-titleLen-2-leftPad)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)
	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColor))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(0, height-2)
	lines := make([]string, 0, boxHeight+2)
	lines = append(lines, topBorder)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines, bg.Render("│", borderStyle)+contentStyle.Render(line)+bg.Render("│", borderStyle))
	}
	lines = append(lines, bottomBorder)
	return strings.Join(lines, "\n")
}
