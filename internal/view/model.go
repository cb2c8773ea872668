package view

import (
	"github.com/five82/warpdeck/internal/engine"
	"github.com/five82/warpdeck/internal/live"
	"github.com/five82/warpdeck/internal/signwarp"
	"github.com/five82/warpdeck/internal/state"
	"github.com/five82/warpdeck/internal/worlds"
)

// PageWindow is how many page numbers the pagination bar shows.
const PageWindow = 5

// Option is one entry of a filter selector.
type Option struct {
	ID    string
	Label string
}

// Model is everything the renderers need, derived from the synchronizer. It
// is a value; renderers never reach back into the synchronizer.
type Model struct {
	Page       engine.Result
	PageSize   int
	Window     []int
	Criteria   engine.Criteria
	Filtering  bool
	CacheTotal int
	Loaded     bool
	Skipped    int

	WorldOptions   []Option
	CreatorOptions []Option

	Stats      state.Snapshot
	Dimensions []worlds.Count
	Players    []string

	Connection  live.State
	Initialized bool
	Banner      string
	Disabled    bool
	Notices     []Notice

	AutoRefresh bool
	Theme       string
	Names       worlds.Names
}

// Model builds the current view-model.
func (s *Synchronizer) Model() Model {
	m := Model{
		Page:        s.page,
		PageSize:    s.pager.Page().Size,
		Window:      engine.Window(s.page.EffectivePage, s.page.TotalPages, PageWindow),
		Criteria:    s.criteria,
		Filtering:   s.criteria.Active(),
		CacheTotal:  s.cache.Len(),
		Loaded:      s.cache.Loaded(),
		Skipped:     s.cache.Skipped(),
		Stats:       s.stats.Snapshot(),
		Dimensions:  worlds.Tally(s.cache.WorldIDs()),
		Players:     append([]string(nil), s.players.Players...),
		Connection:  s.conn,
		Initialized: s.initialized,
		Disabled:    s.disabled,
		Notices:     s.liveNotices(),
		AutoRefresh: s.prefs.AutoRefresh,
		Theme:       s.prefs.Theme,
		Names:       s.names,
	}
	m.WorldOptions = s.options(s.cache.Worlds(), "All worlds", s.names.Display)
	m.CreatorOptions = s.options(s.cache.Creators(), "All creators", func(id string) string { return id })
	if !s.initialized && s.discoverErr != nil {
		m.Banner = "Not initialized: " + signwarp.ServerMessage(s.discoverErr) + " (press r to retry)"
	}
	return m
}

// Selected returns the warp at index i of the current page.
func (m Model) Selected(i int) (signwarp.Warp, bool) {
	if i < 0 || i >= len(m.Page.Items) {
		return signwarp.Warp{}, false
	}
	return m.Page.Items[i], true
}

func (s *Synchronizer) options(ids []string, allLabel string, label func(string) string) []Option {
	out := make([]Option, 0, len(ids)+1)
	out = append(out, Option{ID: engine.All, Label: allLabel})
	for _, id := range ids {
		out = append(out, Option{ID: id, Label: label(id)})
	}
	return out
}
