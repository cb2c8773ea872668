package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/warpdeck/internal/engine"
	"github.com/five82/warpdeck/internal/live"
	"github.com/five82/warpdeck/internal/logging"
	"github.com/five82/warpdeck/internal/prefs"
	"github.com/five82/warpdeck/internal/signwarp"
	"github.com/five82/warpdeck/internal/state"
	"github.com/five82/warpdeck/internal/worlds"
)

// Options configures a Synchronizer.
type Options struct {
	Prefs     prefs.Prefs
	Names     worlds.Names
	PollEvery time.Duration
	Logger    logrus.FieldLogger
	// Now is the clock used for notices. Defaults to time.Now.
	Now func() time.Time
}

const (
	defaultPollEvery = 30 * time.Second
	disableNotice    = 2 * time.Second
	disableQuit      = 5 * time.Second
	portHintDelay    = 3 * time.Second
)

// Synchronizer is the dashboard's application state. It owns the warp cache,
// the statistics store, the filter criteria and the paginator, and turns user
// actions, fetch results, push events and timers into Plans. It is not safe
// for concurrent use; all calls come from the UI loop.
type Synchronizer struct {
	cache    *state.Cache
	stats    *state.Store
	pager    *engine.Paginator
	criteria engine.Criteria
	page     engine.Result

	prefs     prefs.Prefs
	names     worlds.Names
	pollEvery time.Duration
	log       logrus.FieldLogger
	now       func() time.Time

	notices     []Notice
	conn        live.State
	initialized bool
	discoverErr error
	disabled    bool
	autoGen     int
	wsURL       string
	players     signwarp.OnlinePlayers
	portHint    int
}

// New builds a Synchronizer with an empty cache.
func New(opts Options) *Synchronizer {
	if opts.PollEvery <= 0 {
		opts.PollEvery = defaultPollEvery
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Prefs.PageSize <= 0 {
		opts.Prefs = prefs.Defaults()
	}
	return &Synchronizer{
		cache:     &state.Cache{},
		stats:     &state.Store{},
		pager:     engine.NewPaginator(opts.Prefs.PageSize),
		criteria:  engine.DefaultCriteria(),
		prefs:     opts.Prefs,
		names:     opts.Names,
		pollEvery: opts.PollEvery,
		log:       opts.Logger.WithField("component", "view"),
		now:       opts.Now,
		conn:      live.Closed,
	}
}

// Init is the startup plan: discovery, then warps, then teleport stats, plus
// the first auto-refresh tick when enabled.
func (s *Synchronizer) Init() Plan {
	plan := Plan{Fetches: []Fetch{FetchDiscover, FetchWarps, FetchTeleport}}
	if s.prefs.AutoRefresh {
		plan.Timers = append(plan.Timers, s.scheduleAuto())
	}
	return plan
}

// Refresh is the manual refresh. Before discovery has succeeded it retries
// discovery instead of the plain stats fetch.
func (s *Synchronizer) Refresh() Plan {
	if s.disabled {
		return Plan{}
	}
	first := FetchStats
	if !s.initialized {
		first = FetchDiscover
	}
	return Plan{Fetches: []Fetch{first, FetchWarps, FetchTeleport, FetchEnhanced}}
}

// StatsOpened loads the enhanced statistics shown on the stats view.
func (s *Synchronizer) StatsOpened() Plan {
	if s.disabled || !s.initialized {
		return Plan{}
	}
	return Plan{Fetches: []Fetch{FetchEnhanced}}
}

// Apply folds a fetch or mutation result into the state.
func (s *Synchronizer) Apply(r Result) Plan {
	if s.disabled {
		return Plan{}
	}
	switch r := r.(type) {
	case DiscoverResult:
		return s.applyDiscover(r)
	case StatsResult:
		s.stats.UpdateGeneral(r.Stats, r.Err)
		s.readFailure("statistics", r.Err)
	case WarpsResult:
		s.applyWarps(r)
	case TeleportResult:
		s.stats.UpdateTeleport(r.Stats, r.Online, r.Err)
		s.readFailure("teleport statistics", r.Err)
		if r.OnlineErr != nil {
			s.log.WithError(r.OnlineErr).Warn("online status fetch failed")
		}
	case EnhancedResult:
		s.stats.UpdateEnhanced(r.Stats, r.Err)
		s.readFailure("enhanced statistics", r.Err)
	case PlayersResult:
		if r.Err != nil {
			s.stats.RecordFailure(r.Err)
			s.readFailure("online players", r.Err)
			break
		}
		s.players = r.Players
	case MutationResult:
		return s.applyMutation(r)
	}
	return Plan{}
}

func (s *Synchronizer) applyDiscover(r DiscoverResult) Plan {
	if r.Err != nil {
		s.initialized = false
		s.discoverErr = r.Err
		s.log.WithError(r.Err).Error("endpoint discovery failed")
		return Plan{}
	}
	s.initialized = true
	s.discoverErr = nil
	s.stats.UpdateGeneral(r.Stats, nil)
	if r.WSURL != "" && r.WSURL != s.wsURL {
		s.wsURL = r.WSURL
		return Plan{Retarget: true}
	}
	return Plan{}
}

func (s *Synchronizer) applyWarps(r WarpsResult) {
	if r.Err != nil {
		s.readFailure("warps", r.Err)
		return
	}
	s.cache.Replace(r.Warps, r.Skipped)
	if r.Skipped > 0 {
		s.log.WithField("skipped", r.Skipped).Warn("skipped malformed warp records")
	}
	s.criteria.World = s.cache.ReconcileWorld(s.criteria.World)
	s.criteria.Creator = s.cache.ReconcileCreator(s.criteria.Creator)
	s.rederive()
}

func (s *Synchronizer) applyMutation(r MutationResult) Plan {
	m := r.Mutation
	if r.Err != nil {
		s.log.WithError(r.Err).WithFields(logrus.Fields{"warp": m.Warp, "player": m.Player, "action": m.Action}).Warn("invite change failed")
		s.notify(SeverityError, signwarp.ServerMessage(r.Err))
		return Plan{}
	}
	text := r.Reply.Message
	if text == "" {
		if m.Action == ActionInvite {
			text = fmt.Sprintf("Invited %s to %s", m.Player, m.Warp)
		} else {
			text = fmt.Sprintf("Removed %s from %s", m.Player, m.Warp)
		}
	}
	s.notify(SeveritySuccess, text)
	return Plan{Fetches: []Fetch{FetchWarps}}
}

// readFailure logs a failed read and raises a low-severity notice. Calls
// refused for lack of discovery stay silent; the banner already covers them.
func (s *Synchronizer) readFailure(what string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, signwarp.ErrNotInitialized) {
		return
	}
	s.log.WithError(err).WithField("resource", what).Warn("fetch failed")
	s.notify(SeverityWarning, "Could not load "+what)
}

// BeginInvite loads the online players offered as invite suggestions.
func (s *Synchronizer) BeginInvite() Plan {
	if s.disabled || !s.initialized {
		return Plan{}
	}
	return Plan{Fetches: []Fetch{FetchPlayers}}
}

// Invite asks the server to invite player to warp.
func (s *Synchronizer) Invite(warp, player string) Plan {
	return s.mutate(ActionInvite, warp, player)
}

// Uninvite asks the server to revoke player's invite to warp.
func (s *Synchronizer) Uninvite(warp, player string) Plan {
	return s.mutate(ActionUninvite, warp, player)
}

func (s *Synchronizer) mutate(action MutationAction, warp, player string) Plan {
	if s.disabled {
		return Plan{}
	}
	if !s.initialized {
		s.notify(SeverityError, "Not connected to the warp server")
		return Plan{}
	}
	player = strings.TrimSpace(player)
	if player == "" {
		s.notify(SeverityError, "Enter a player name")
		return Plan{}
	}
	if strings.TrimSpace(warp) == "" {
		s.notify(SeverityError, "Select a warp first")
		return Plan{}
	}
	return Plan{Mutation: &Mutation{Action: action, Warp: warp, Player: player}}
}

// SetSearch updates the name query.
func (s *Synchronizer) SetSearch(query string) {
	s.criteria.Search = query
	s.rederive()
}

// CycleVisibility advances all → public → private.
func (s *Synchronizer) CycleVisibility() {
	s.criteria.Visibility = s.criteria.Visibility.Next()
	s.rederive()
}

// SetVisibility selects a visibility filter directly.
func (s *Synchronizer) SetVisibility(v engine.Visibility) {
	s.criteria.Visibility = v
	s.rederive()
}

// CycleWorld advances through all and the cached worlds.
func (s *Synchronizer) CycleWorld() {
	s.criteria.World = engine.CycleOption(s.cache.Worlds(), s.criteria.World)
	s.rederive()
}

// SetWorld selects a world filter; unknown worlds fall back to all.
func (s *Synchronizer) SetWorld(world string) {
	s.criteria.World = s.cache.ReconcileWorld(world)
	s.rederive()
}

// CycleCreator advances through all and the cached creators.
func (s *Synchronizer) CycleCreator() {
	s.criteria.Creator = engine.CycleOption(s.cache.Creators(), s.criteria.Creator)
	s.rederive()
}

// ClearFilters resets every criterion.
func (s *Synchronizer) ClearFilters() {
	s.criteria = engine.DefaultCriteria()
	s.rederive()
}

// Criteria returns the active filter criteria.
func (s *Synchronizer) Criteria() engine.Criteria {
	return s.criteria
}

// GoToPage moves to target through the paginator's single-flight gate. It
// reports false when another page change is still being applied.
func (s *Synchronizer) GoToPage(target int) bool {
	applied, err := s.pager.Navigate(s.cache.Snapshot(), s.criteria, target, func(res engine.Result) error {
		s.page = res
		return nil
	})
	if err != nil {
		s.log.WithError(err).Warn("page change failed")
	}
	return applied
}

// NextPage, PrevPage, FirstPage and LastPage are GoToPage shorthands.
func (s *Synchronizer) NextPage() bool  { return s.GoToPage(s.page.EffectivePage + 1) }
func (s *Synchronizer) PrevPage() bool  { return s.GoToPage(s.page.EffectivePage - 1) }
func (s *Synchronizer) FirstPage() bool { return s.GoToPage(0) }
func (s *Synchronizer) LastPage() bool  { return s.GoToPage(s.page.TotalPages - 1) }

// SetPageSize changes and persists the page size.
func (s *Synchronizer) SetPageSize(size int) Plan {
	if size <= 0 || size == s.prefs.PageSize {
		return Plan{}
	}
	s.prefs.PageSize = size
	s.pager.SetSize(size)
	s.rederive()
	return Plan{SavePrefs: true}
}

// ToggleAutoRefresh flips and persists auto-refresh. Turning it on schedules
// a fresh tick; turning it off invalidates the pending one.
func (s *Synchronizer) ToggleAutoRefresh() Plan {
	s.prefs.AutoRefresh = !s.prefs.AutoRefresh
	plan := Plan{SavePrefs: true}
	if s.prefs.AutoRefresh && !s.disabled {
		plan.Timers = []Delay{s.scheduleAuto()}
	} else {
		s.autoGen++
	}
	return plan
}

// SetTheme records and persists the theme name.
func (s *Synchronizer) SetTheme(name string) Plan {
	if name == "" || name == s.prefs.Theme {
		return Plan{}
	}
	s.prefs.Theme = name
	return Plan{SavePrefs: true}
}

// Prefs returns the current preferences record.
func (s *Synchronizer) Prefs() prefs.Prefs {
	return s.prefs
}

// Disabled reports whether the server turned the web interface off.
func (s *Synchronizer) Disabled() bool {
	return s.disabled
}

// Initialized reports whether endpoint discovery has succeeded.
func (s *Synchronizer) Initialized() bool {
	return s.initialized
}

func (s *Synchronizer) scheduleAuto() Delay {
	s.autoGen++
	return Delay{After: s.pollEvery, Timer: TimerAutoRefresh, Generation: s.autoGen}
}

func (s *Synchronizer) rederive() {
	s.page = s.pager.Derive(s.cache.Snapshot(), s.criteria)
}
