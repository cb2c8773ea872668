package view

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/five82/warpdeck/internal/live"
)

// HandleEvent reacts to a push channel event.
func (s *Synchronizer) HandleEvent(ev live.Event) Plan {
	if s.disabled {
		return Plan{}
	}
	switch {
	case ev.Kind == live.KindState:
		s.conn = ev.State
		if ev.Err != nil {
			s.log.WithError(ev.Err).WithField("state", ev.State).Debug("push channel state")
		}
		return Plan{}

	case ev.Kind.WarpChanged():
		name := "(unnamed)"
		if ev.Warp != nil {
			name = ev.Warp.Name
		}
		s.log.WithFields(logrus.Fields{"warp": name, "action": ev.Kind}).Info("warp changed")
		s.notify(warpSeverity(ev.Kind), fmt.Sprintf("Warp %s %s", name, warpVerb(ev.Kind)))
		return s.cycle()

	case ev.Kind == live.KindStatsUpdate:
		s.stats.ApplyCounts(ev.TotalWarps, ev.PublicWarps, ev.PrivateWarps)
		return Plan{Fetches: []Fetch{FetchStats}}

	case ev.Disabled():
		return s.disable(ev.Message)

	case ev.PortChanged():
		s.log.WithFields(logrus.Fields{"old_port": ev.OldPort, "new_port": ev.NewPort}).Info("server port changed")
		s.notify(SeverityInfo, fmt.Sprintf("Server port changed (%d → %d), reconnecting", ev.OldPort, ev.NewPort))
		s.portHint = ev.NewPort
		return Plan{
			Rebase:   ev.NewPort,
			Retarget: true,
			Timers:   []Delay{{After: portHintDelay, Timer: TimerPortHint}},
		}

	case ev.Kind == live.KindConfigReload:
		s.log.Info("server configuration reloaded")
		s.notify(SeveritySuccess, "Configuration reloaded, data refreshed")
		return Plan{Fetches: []Fetch{FetchDiscover, FetchWarps, FetchTeleport}}
	}
	return Plan{}
}

// Fire handles a timer requested through Plan.Timers.
func (s *Synchronizer) Fire(d Delay) Plan {
	switch d.Timer {
	case TimerAutoRefresh:
		if s.disabled || !s.prefs.AutoRefresh || d.Generation != s.autoGen {
			return Plan{}
		}
		next := Plan{Timers: []Delay{s.scheduleAuto()}}
		if !s.initialized {
			return next
		}
		return s.cycle().merge(next)

	case TimerDisableCountdown:
		s.notify(SeverityInfo, fmt.Sprintf("Closing in %d seconds", int(disableQuit.Seconds())))
		return Plan{Timers: []Delay{{After: disableQuit, Timer: TimerQuit}}}

	case TimerQuit:
		return Plan{Quit: true}

	case TimerPortHint:
		if s.disabled || s.portHint == 0 {
			return Plan{}
		}
		s.notify(SeverityInfo, fmt.Sprintf("If updates stop, set api_bind to port %d", s.portHint))
	}
	return Plan{}
}

func (s *Synchronizer) cycle() Plan {
	return Plan{Fetches: append([]Fetch(nil), fullCycle...)}
}

func (s *Synchronizer) disable(message string) Plan {
	s.disabled = true
	s.autoGen++
	s.conn = live.Closed
	s.log.WithField("message", message).Warn("web interface disabled by server")
	s.notify(SeverityWarning, "The web interface was disabled by the server administrator")
	return Plan{
		StopLive: true,
		Timers:   []Delay{{After: disableNotice, Timer: TimerDisableCountdown}},
	}
}

func warpVerb(k live.Kind) string {
	switch k {
	case live.KindCreate:
		return "created"
	case live.KindUpdate:
		return "updated"
	case live.KindDelete:
		return "deleted"
	default:
		return "changed"
	}
}

func warpSeverity(k live.Kind) Severity {
	switch k {
	case live.KindCreate:
		return SeveritySuccess
	case live.KindDelete:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
