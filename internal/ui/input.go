package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/warpdeck/internal/prefs"
	"github.com/five82/warpdeck/internal/view"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeInvite:
		return m.handleInviteKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		return m.switchView((m.currentView + 1) % View(len(viewNames)))
	case key.Matches(msg, m.keys.ViewWarps):
		return m.switchView(ViewWarps)
	case key.Matches(msg, m.keys.ViewStats):
		return m.switchView(ViewStats)
	case key.Matches(msg, m.keys.ViewConfig):
		return m.switchView(ViewSettings)
	case key.Matches(msg, m.keys.Refresh):
		return m.apply(m.sync.Refresh())
	case key.Matches(msg, m.keys.CycleTheme):
		name := NextTheme(m.theme.Name)
		m.theme = GetTheme(name)
		return m.apply(m.sync.SetTheme(name))
	}

	switch m.currentView {
	case ViewWarps:
		return m.handleWarpsKey(msg)
	case ViewStats:
		var cmd tea.Cmd
		m.stats, cmd = m.stats.Update(msg)
		return m, cmd
	case ViewSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	if v == m.currentView {
		return m, nil
	}
	m.currentView = v
	if v == ViewStats {
		return m.apply(m.sync.StatsOpened())
	}
	return m, nil
}

// apply runs a plan produced by a user action and refreshes the view-model.
func (m Model) apply(plan view.Plan) (tea.Model, tea.Cmd) {
	cmd := m.runPlan(plan)
	m.refresh()
	return m, cmd
}

func (m Model) handleWarpsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.prompt.Placeholder = "warp name"
		m.prompt.ShowSuggestions = false
		m.prompt.SetSuggestions(nil)
		m.prompt.SetValue(m.vm.Criteria.Search)
		m.prompt.CursorEnd()
		return m, m.prompt.Focus()
	case key.Matches(msg, m.keys.Visibility):
		m.sync.CycleVisibility()
	case key.Matches(msg, m.keys.World):
		m.sync.CycleWorld()
	case key.Matches(msg, m.keys.Creator):
		m.sync.CycleCreator()
	case key.Matches(msg, m.keys.ClearFilters):
		m.sync.ClearFilters()
	case key.Matches(msg, m.keys.PrevPage):
		m.movePage(m.sync.PrevPage)
	case key.Matches(msg, m.keys.NextPage):
		m.movePage(m.sync.NextPage)
	case key.Matches(msg, m.keys.FirstPage):
		m.movePage(m.sync.FirstPage)
	case key.Matches(msg, m.keys.LastPage):
		m.movePage(m.sync.LastPage)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.vm.Page.Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Invite):
		return m.beginPrompt(view.ActionInvite)
	case key.Matches(msg, m.keys.Uninvite):
		return m.beginPrompt(view.ActionUninvite)
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

func (m *Model) movePage(move func() bool) {
	before := m.vm.Page.EffectivePage
	if move() && m.sync.Model().Page.EffectivePage != before {
		m.cursor = 0
	}
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PageSizeUp):
		return m.apply(m.sync.SetPageSize(prefs.NextPageSize(m.vm.PageSize, 1)))
	case key.Matches(msg, m.keys.PageSizeDown):
		return m.apply(m.sync.SetPageSize(prefs.NextPageSize(m.vm.PageSize, -1)))
	case key.Matches(msg, m.keys.AutoRefresh):
		return m.apply(m.sync.ToggleAutoRefresh())
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.endPrompt()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.endPrompt()
		m.sync.SetSearch("")
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	if m.prompt.Value() != m.vm.Criteria.Search {
		m.sync.SetSearch(m.prompt.Value())
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

// beginPrompt opens the player prompt for the selected warp.
func (m Model) beginPrompt(action view.MutationAction) (tea.Model, tea.Cmd) {
	warp, ok := m.vm.Selected(m.cursor)
	if !ok {
		return m, nil
	}
	m.mode = modeInvite
	m.promptAction = action
	m.promptWarp = warp.Name
	m.prompt.Placeholder = "player name"
	m.prompt.ShowSuggestions = true
	m.prompt.SetValue("")

	var plan view.Plan
	if action == view.ActionInvite {
		m.prompt.SetSuggestions(m.vm.Players)
		plan = m.sync.BeginInvite()
	} else {
		m.prompt.SetSuggestions(warp.InvitedPlayers)
	}
	cmd := m.runPlan(plan)
	m.refresh()
	return m, tea.Batch(m.prompt.Focus(), cmd)
}

func (m Model) handleInviteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.endPrompt()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		player := m.prompt.Value()
		warp, action := m.promptWarp, m.promptAction
		m.endPrompt()
		if action == view.ActionInvite {
			return m.apply(m.sync.Invite(warp, player))
		}
		return m.apply(m.sync.Uninvite(warp, player))
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) endPrompt() {
	m.mode = modeNone
	m.prompt.Blur()
	m.prompt.SetSuggestions(nil)
	m.promptWarp = ""
}

// promptLine renders the active prompt, or "" when none is open.
func (m Model) promptLine() string {
	switch m.mode {
	case modeSearch:
		return "Search " + m.prompt.View()
	case modeInvite:
		verb := "Invite to"
		if m.promptAction == view.ActionUninvite {
			verb = "Remove from"
		}
		return verb + " " + truncate(m.promptWarp, 24) + " " + m.prompt.View()
	}
	return ""
}
