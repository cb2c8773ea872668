package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	Tab        key.Binding
	ViewWarps  key.Binding
	ViewStats  key.Binding
	ViewConfig key.Binding
	Refresh    key.Binding
	CycleTheme key.Binding

	// Warps
	Search       key.Binding
	Visibility   key.Binding
	World        key.Binding
	Creator      key.Binding
	ClearFilters key.Binding
	PrevPage     key.Binding
	NextPage     key.Binding
	FirstPage    key.Binding
	LastPage     key.Binding
	Up           key.Binding
	Down         key.Binding
	Invite       key.Binding
	Uninvite     key.Binding

	// Settings
	PageSizeUp   key.Binding
	PageSizeDown key.Binding
	AutoRefresh  key.Binding

	// Prompts
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		ViewWarps: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "warps"),
		),
		ViewStats: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "stats"),
		),
		ViewConfig: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "settings"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Visibility: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "visibility"),
		),
		World: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "world"),
		),
		Creator: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "creator"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←/[", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→/]", "next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last page"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Invite: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "invite"),
		),
		Uninvite: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "uninvite"),
		),

		PageSizeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "larger pages"),
		),
		PageSizeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "smaller pages"),
		),
		AutoRefresh: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "auto-refresh"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one column per group.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Visibility, k.World, k.Creator, k.ClearFilters},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage, k.Up, k.Down},
		{k.Invite, k.Uninvite, k.Refresh},
		{k.PageSizeUp, k.PageSizeDown, k.AutoRefresh, k.CycleTheme},
		{k.ViewWarps, k.ViewStats, k.ViewConfig, k.Tab, k.Help, k.Quit},
	}
}
