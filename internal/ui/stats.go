package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/warpdeck/internal/signwarp"
)

// bar is one row of a horizontal bar chart.
type bar struct {
	label string
	value int
	note  string
}

const maxChartRows = 10

// statsPane returns the scrolled statistics content.
func (m Model) statsPane(width, height int) string {
	vp := m.stats
	vp.Width, vp.Height = width, height
	return vp.View()
}

// syncStats re-renders the statistics into the viewport so scrolling works
// against current content.
func (m *Model) syncStats() {
	if !m.ready {
		return
	}
	m.stats.Width = max(0, m.width-2)
	m.stats.Height = max(0, m.contentHeight()-2)
	m.stats.SetContent(m.renderStatsContent(m.stats.Width))
}

func (m Model) renderStatsContent(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	snap := m.vm.Stats
	if !snap.HasGeneral && !snap.HasTeleport {
		return styles.MutedText.Render("No statistics loaded yet")
	}

	g := snap.General
	t := snap.Teleport
	if snap.HasEnhanced {
		t = snap.Enhanced.TeleportStats
	}

	var sections []string
	sections = append(sections, m.cards(width, []card{
		{"Total warps", fmt.Sprint(g.TotalWarps), ""},
		{"Public", fmt.Sprint(g.PublicWarps), percent(g.PublicWarps, g.TotalWarps)},
		{"Private", fmt.Sprint(g.PrivateWarps), percent(g.PrivateWarps, g.TotalWarps)},
		{"Live clients", fmt.Sprint(g.Connections), ""},
	}))
	if snap.HasTeleport || snap.HasEnhanced {
		sections = append(sections, m.cards(width, []card{
			{"Teleports", fmt.Sprint(t.TotalTeleports), ""},
			{"Today", fmt.Sprint(t.TodayTeleports), ""},
			{"This week", fmt.Sprint(t.WeekTeleports), ""},
			{"Players", fmt.Sprint(t.UniquePlayers), ""},
		}))
	}

	dims := make([]bar, 0, len(m.vm.Dimensions))
	for _, d := range m.vm.Dimensions {
		dims = append(dims, bar{label: m.vm.Names.Display(d.World), value: d.Warps, note: percent(d.Warps, m.vm.CacheTotal)})
	}
	sections = append(sections, m.barChart("Warps by dimension", dims, width))

	popular := make([]bar, 0, len(t.PopularWarps))
	for _, p := range t.PopularWarps {
		popular = append(popular, bar{label: p.WarpName, value: p.UsageCount})
	}
	sections = append(sections, m.barChart("Popular warps", popular, width))

	active := make([]bar, 0, len(t.ActiveUsers))
	for _, u := range t.ActiveUsers {
		b := bar{label: u.PlayerName, value: u.TeleportCount}
		if snap.Online.Online(u.PlayerName) {
			b.note = "● online"
		}
		active = append(active, b)
	}
	sections = append(sections, m.barChart("Most active players", active, width))

	daily := make([]bar, 0, len(t.DailyStats))
	for _, d := range t.DailyStats {
		daily = append(daily, bar{label: d.Date, value: d.Count})
	}
	sections = append(sections, m.barChart("Daily teleports", daily, width))

	if snap.HasEnhanced {
		sections = append(sections, m.enhancedSections(snap.Enhanced, width)...)
	}
	sections = append(sections, m.recentTeleports(t.RecentTeleports, width))

	return strings.Join(sections, "\n\n")
}

func (m Model) enhancedSections(e signwarp.EnhancedStats, width int) []string {
	var out []string

	a := e.PlayerActivityStats
	out = append(out, m.cards(width, []card{
		{"Active today", fmt.Sprint(a.TodayActivePlayers), ""},
		{"Active week", fmt.Sprint(a.WeekActivePlayers), ""},
		{"Active month", fmt.Sprint(a.MonthActivePlayers), ""},
		{"Avg/day", fmt.Sprintf("%.1f", a.AvgDailyTeleports), ""},
	}))

	hours := make([]bar, 0, len(e.HourlyStats))
	for _, h := range e.HourlyStats {
		hours = append(hours, bar{label: fmt.Sprintf("%02d:00", h.Hour), value: h.Count})
	}
	out = append(out, m.barChartRows("Teleports by hour", hours, width, 24))

	week := append([]signwarp.WeekdayCount(nil), e.WeeklyStats...)
	sort.SliceStable(week, func(i, j int) bool { return week[i].DayNum < week[j].DayNum })
	days := make([]bar, 0, len(week))
	for _, d := range week {
		days = append(days, bar{label: d.DayName, value: d.Count})
	}
	out = append(out, m.barChart("Teleports by weekday", days, width))

	months := make([]bar, 0, len(e.MonthlyStats))
	for _, mo := range e.MonthlyStats {
		months = append(months, bar{label: mo.Month, value: mo.Count})
	}
	out = append(out, m.barChart("Teleports by month", months, width))

	cd := e.CrossDimensionStats
	total := cd.CrossDimensionCount + cd.SameDimensionCount
	routes := []bar{
		{label: "Cross-dimension", value: cd.CrossDimensionCount, note: percent(cd.CrossDimensionCount, total)},
		{label: "Same dimension", value: cd.SameDimensionCount, note: percent(cd.SameDimensionCount, total)},
	}
	for _, r := range cd.PopularRoutes {
		routes = append(routes, bar{
			label: m.vm.Names.Display(r.FromWorld) + " → " + m.vm.Names.Display(r.ToWorld),
			value: r.Count,
		})
	}
	out = append(out, m.barChart("Dimension travel", routes, width))
	return out
}

type card struct {
	label string
	value string
	note  string
}

// cards renders a row of bordered figure cards.
func (m Model) cards(width int, items []card) string {
	cardWidth := max(12, width/len(items)-2)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Width(cardWidth).
		Padding(0, 1)
	styles := m.theme.Styles()
	rendered := make([]string, 0, len(items))
	for _, c := range items {
		value := styles.Text.Bold(true).Render(c.value)
		if c.note != "" {
			value += " " + styles.MutedText.Render(c.note)
		}
		rendered = append(rendered, box.Render(styles.MutedText.Render(c.label)+"\n"+value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) barChart(title string, rows []bar, width int) string {
	return m.barChartRows(title, rows, width, maxChartRows)
}

// barChartRows renders a titled horizontal bar chart scaled to the largest
// value, showing at most limit rows.
func (m Model) barChartRows(title string, rows []bar, width, limit int) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	if len(rows) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("  no data"))
		return b.String()
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	labelWidth, peak := 0, 0
	for _, r := range rows {
		labelWidth = max(labelWidth, cellWidth(r.label))
		peak = max(peak, r.value)
	}
	labelWidth = min(labelWidth, 24)
	barWidth := max(4, width-labelWidth-20)

	for _, r := range rows {
		n := 0
		if peak > 0 {
			n = r.value * barWidth / peak
		}
		if r.value > 0 && n == 0 {
			n = 1
		}
		b.WriteString("\n  ")
		b.WriteString(styles.Text.Render(fit(r.label, labelWidth)))
		b.WriteString(" ")
		b.WriteString(styles.BarText.Render(strings.Repeat("█", n)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(fmt.Sprint(r.value)))
		if r.note != "" {
			b.WriteString(" ")
			b.WriteString(styles.MutedText.Render(r.note))
		}
	}
	return b.String()
}

func (m Model) recentTeleports(recent []signwarp.Teleport, width int) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Recent teleports"))
	if len(recent) == 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("  no data"))
		return b.String()
	}
	for i, tp := range recent {
		if i == maxChartRows {
			break
		}
		line := fmt.Sprintf("%s  %s → %s (%s → %s)", tp.TeleportedAt, tp.PlayerName, tp.WarpName,
			m.vm.Names.Display(tp.FromWorld), m.vm.Names.Display(tp.ToWorld))
		b.WriteString("\n  ")
		b.WriteString(styles.Text.Render(truncate(line, width-2)))
	}
	return b.String()
}
