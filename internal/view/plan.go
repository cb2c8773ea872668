package view

import "time"

// Fetch names one gateway read. A plan's fetches run in order and each one
// fails independently.
type Fetch int

const (
	// FetchDiscover loads /api/stats and adopts the advertised endpoints.
	FetchDiscover Fetch = iota
	FetchStats
	FetchWarps
	// FetchTeleport loads teleport stats together with online status.
	FetchTeleport
	FetchEnhanced
	FetchPlayers
)

func (f Fetch) String() string {
	switch f {
	case FetchDiscover:
		return "discover"
	case FetchStats:
		return "stats"
	case FetchWarps:
		return "warps"
	case FetchTeleport:
		return "teleport-stats"
	case FetchEnhanced:
		return "enhanced-stats"
	case FetchPlayers:
		return "online-players"
	default:
		return "unknown"
	}
}

// fullCycle is the refresh triggered by warp changes and auto-refresh ticks.
var fullCycle = []Fetch{FetchStats, FetchWarps, FetchTeleport}

// Timer names a delayed callback into the synchronizer.
type Timer int

const (
	TimerAutoRefresh Timer = iota
	TimerDisableCountdown
	TimerQuit
	TimerPortHint
)

// Delay asks the caller to call Fire after the given duration. Generation
// lets the synchronizer ignore ticks from a cancelled schedule.
type Delay struct {
	After      time.Duration
	Timer      Timer
	Generation int
}

// Mutation is an invite or uninvite request.
type Mutation struct {
	Action MutationAction
	Warp   string
	Player string
}

// MutationAction selects the invite endpoint.
type MutationAction string

const (
	ActionInvite   MutationAction = "invite"
	ActionUninvite MutationAction = "uninvite"
)

// Plan is the work a synchronizer step asks its caller to perform. The zero
// Plan means nothing to do.
type Plan struct {
	Fetches  []Fetch
	Mutation *Mutation
	Timers   []Delay
	// Rebase moves the gateway to a new port before anything else runs.
	Rebase int
	// Retarget points the push channel at the gateway's current wsUrl.
	Retarget  bool
	StopLive  bool
	SavePrefs bool
	Quit      bool
}

// Empty reports whether the plan asks for nothing.
func (p Plan) Empty() bool {
	return len(p.Fetches) == 0 && p.Mutation == nil && len(p.Timers) == 0 &&
		p.Rebase == 0 && !p.Retarget && !p.StopLive && !p.SavePrefs && !p.Quit
}

func (p Plan) merge(other Plan) Plan {
	p.Fetches = append(p.Fetches, other.Fetches...)
	p.Timers = append(p.Timers, other.Timers...)
	if other.Mutation != nil {
		p.Mutation = other.Mutation
	}
	if other.Rebase != 0 {
		p.Rebase = other.Rebase
	}
	p.Retarget = p.Retarget || other.Retarget
	p.StopLive = p.StopLive || other.StopLive
	p.SavePrefs = p.SavePrefs || other.SavePrefs
	p.Quit = p.Quit || other.Quit
	return p
}
