package ui

import (
	"fmt"
	"strings"

	"github.com/five82/warpdeck/internal/engine"
	"github.com/five82/warpdeck/internal/signwarp"
	"github.com/five82/warpdeck/internal/view"
)

type column struct {
	title string
	width int
	cell  func(signwarp.Warp) string
}

// warpsTitle shows the result count, with the cache size while filtering.
func (m Model) warpsTitle() string {
	if m.vm.Filtering {
		return fmt.Sprintf("Warps (%d/%d)", m.vm.Page.TotalElements, m.vm.CacheTotal)
	}
	return fmt.Sprintf("Warps (%d)", m.vm.CacheTotal)
}

// renderWarps renders the filter bar, the warp table, the selected warp's
// details and the pagination bar.
func (m Model) renderWarps(width, height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	lines := []string{m.filterBar(styles, bg, width), ""}
	if empty := m.emptyMessage(); empty != "" {
		lines = append(lines, bg.Render(empty, styles.MutedText))
		return strings.Join(lines, "\n")
	}

	cols := warpColumns(width, m)
	header := make([]string, 0, len(cols))
	for _, c := range cols {
		header = append(header, fit(c.title, c.width))
	}
	lines = append(lines, bg.Render(strings.Join(header, " "), styles.MutedText.Bold(true)))

	for i, w := range m.vm.Page.Items {
		cells := make([]string, 0, len(cols))
		for _, c := range cols {
			cells = append(cells, fit(c.cell(w), c.width))
		}
		row := strings.Join(cells, " ")
		if i == m.cursor {
			lines = append(lines, styles.Selected.Width(width).Render(row))
			continue
		}
		style := styles.Text
		if private, _ := w.Private(); private {
			style = styles.WarningText
		}
		lines = append(lines, bg.Render(row, style))
	}

	footer := []string{""}
	if detail := m.selectedDetail(width); detail != "" {
		footer = append(footer, bg.Render(detail, styles.InfoText))
	}
	footer = append(footer, m.paginationBar(styles, bg))

	for len(lines)+len(footer) < height {
		lines = append(lines, "")
	}
	return strings.Join(append(lines, footer...), "\n")
}

func (m Model) emptyMessage() string {
	switch {
	case !m.vm.Loaded && !m.vm.Initialized && m.vm.Banner != "":
		return "Waiting for the warp server (press r to retry)"
	case !m.vm.Loaded:
		return "Loading warps…"
	case m.vm.CacheTotal == 0:
		return "No warps have been created yet"
	case m.vm.Page.TotalElements == 0:
		return "No warps match the current filters (x to clear)"
	}
	return ""
}

// filterBar summarises the active criteria.
func (m Model) filterBar(styles Styles, bg BgStyle, width int) string {
	c := m.vm.Criteria
	search := c.Search
	if search == "" {
		search = "—"
	}
	parts := []string{
		bg.Render("Search:", styles.MutedText) + bg.Space() + bg.Render(truncate(search, 20), styles.Text),
		bg.Render("Visibility:", styles.MutedText) + bg.Space() + bg.Render(visibilityLabel(c.Visibility), styles.Text),
		bg.Render("World:", styles.MutedText) + bg.Space() + bg.Render(optionLabel(m.vm.WorldOptions, c.World), styles.Text),
		bg.Render("Creator:", styles.MutedText) + bg.Space() + bg.Render(truncate(optionLabel(m.vm.CreatorOptions, c.Creator), 16), styles.Text),
	}
	if m.vm.Filtering {
		parts = append(parts, bg.Render(fmt.Sprintf("showing %d of %d warps", m.vm.Page.TotalElements, m.vm.CacheTotal), styles.AccentText))
	}
	if m.vm.Skipped > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d malformed skipped", m.vm.Skipped), styles.WarningText))
	}
	return bg.FillLine(bg.Join(parts, "  "), width)
}

func visibilityLabel(v engine.Visibility) string {
	switch v {
	case engine.VisibilityPublic:
		return "Public"
	case engine.VisibilityPrivate:
		return "Private"
	default:
		return "All"
	}
}

func optionLabel(options []view.Option, id string) string {
	for _, o := range options {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

// warpColumns sizes the table to width, dropping coordinates on narrow
// terminals.
func warpColumns(width int, m Model) []column {
	visibility := column{title: "Visibility", width: 10, cell: warpVisibility}
	coords := column{title: "Coordinates", width: 20, cell: signwarp.Warp.Coordinates}
	world := column{title: "World", width: 12, cell: func(w signwarp.Warp) string { return m.vm.Names.Display(w.World) }}
	creator := column{title: "Creator", width: 16, cell: func(w signwarp.Warp) string { return w.Creator }}

	fixed := []column{creator, world, coords, visibility}
	rest := width - 4 // separators
	for _, c := range fixed {
		rest -= c.width + 1
	}
	if rest < 24 {
		fixed = []column{creator, world, visibility}
		rest += coords.width + 1
	}
	nameWidth := max(8, rest*3/5)
	invitedWidth := max(6, rest-nameWidth)

	cols := []column{{title: "Name", width: nameWidth, cell: func(w signwarp.Warp) string { return w.Name }}}
	cols = append(cols, fixed...)
	cols = append(cols, column{title: "Invited", width: invitedWidth, cell: func(w signwarp.Warp) string {
		if len(w.InvitedPlayers) == 0 {
			return "—"
		}
		return strings.Join(w.InvitedPlayers, ", ")
	}})
	return cols
}

func warpVisibility(w signwarp.Warp) string {
	private, known := w.Private()
	switch {
	case known && private:
		return "private"
	case known:
		return "public"
	case w.Visibility != "":
		return strings.ToLower(w.Visibility)
	default:
		return "?"
	}
}

// selectedDetail describes the highlighted warp, marking online invitees.
func (m Model) selectedDetail(width int) string {
	w, ok := m.vm.Selected(m.cursor)
	if !ok {
		return ""
	}
	parts := []string{fmt.Sprintf("%s by %s", w.Name, w.Creator)}
	if w.CreatedAt != "" {
		parts = append(parts, "created "+w.CreatedAt)
	}
	if len(w.InvitedPlayers) > 0 {
		names := make([]string, 0, len(w.InvitedPlayers))
		for _, p := range w.InvitedPlayers {
			if m.vm.Stats.Online.Online(p) {
				p += " ●"
			}
			names = append(names, p)
		}
		parts = append(parts, "invited: "+strings.Join(names, ", "))
	}
	return truncate(strings.Join(parts, " · "), width)
}

// paginationBar renders ‹ 1 2 [3] 4 5 › plus the "start–end of total" label.
func (m Model) paginationBar(styles Styles, bg BgStyle) string {
	page := m.vm.Page
	if page.TotalPages == 0 {
		return bg.Render("No results", styles.MutedText)
	}
	prevStyle, nextStyle := styles.AccentText, styles.AccentText
	if page.EffectivePage == 0 {
		prevStyle = styles.FaintText
	}
	if page.EffectivePage >= page.TotalPages-1 {
		nextStyle = styles.FaintText
	}

	parts := []string{bg.Render("‹", prevStyle)}
	if len(m.vm.Window) > 0 && m.vm.Window[0] > 0 {
		parts = append(parts, bg.Render("…", styles.FaintText))
	}
	for _, p := range m.vm.Window {
		if p == page.EffectivePage {
			parts = append(parts, bg.Render(fmt.Sprintf("[%d]", p+1), styles.AccentText.Bold(true)))
			continue
		}
		parts = append(parts, bg.Render(fmt.Sprint(p+1), styles.Text))
	}
	if n := len(m.vm.Window); n > 0 && m.vm.Window[n-1] < page.TotalPages-1 {
		parts = append(parts, bg.Render("…", styles.FaintText))
	}
	parts = append(parts, bg.Render("›", nextStyle))

	label := fmt.Sprintf("%d–%d of %d · page %d/%d", page.Start, page.End, page.TotalElements, page.EffectivePage+1, page.TotalPages)
	return bg.Join(parts, " ") + bg.Spaces(3) + bg.Render(label, styles.MutedText)
}
