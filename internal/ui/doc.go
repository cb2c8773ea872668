// Package ui renders the warpdeck dashboard with Bubble Tea.
//
// The Model is a thin shell around a view.Synchronizer. Key presses, fetch
// results, push events and timers are handed to the synchronizer, and the
// Plans it returns are turned into tea.Cmds:
//
//   - fetches run as a chain, one command per fetch, so results are applied
//     in order and a disabled interface stops the chain early
//   - timers become tea.Tick commands that come back as timerMsg
//   - Rebase and Retarget move the gateway and the push channel to a new
//     port, StopLive closes the channel, SavePrefs writes prefs.toml
//
// Three tabs are available: Warps (filterable, paginated table with invite
// prompts), Stats (cards and bar charts in a scrolling viewport) and
// Settings (page size, auto-refresh and theme). Themes follow the Nightfox,
// Kanagawa and Slate palettes; widths are measured with go-runewidth so wide
// player names do not break the table.
package ui
