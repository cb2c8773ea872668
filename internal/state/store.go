package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/warpdeck/internal/signwarp"
)

// Snapshot holds the read-only statistics shown beside the warp list.
type Snapshot struct {
	General             signwarp.GeneralStats
	HasGeneral          bool
	Teleport            signwarp.TeleportStats
	HasTeleport         bool
	Enhanced            signwarp.EnhancedStats
	HasEnhanced         bool
	Online              signwarp.OnlineStatus
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsOffline returns true when the API has been unreachable for multiple fetches.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the statistics snapshot. Each
// resource is replaced independently; a failed fetch keeps the previous data
// and records the error.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// UpdateGeneral records the result of an /api/stats fetch.
func (s *Store) UpdateGeneral(stats *signwarp.GeneralStats, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail(err) {
		return
	}
	if stats != nil {
		s.snapshot.General = cloneGeneral(*stats)
		s.snapshot.HasGeneral = true
	}
	s.succeed()
}

// ApplyCounts overwrites the warp totals from a stats_update push frame
// without touching the rest of the general stats.
func (s *Store) ApplyCounts(total, public, private int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.General.TotalWarps = total
	s.snapshot.General.PublicWarps = public
	s.snapshot.General.PrivateWarps = private
	s.snapshot.HasGeneral = true
}

// UpdateTeleport records teleport stats together with the online status map
// fetched alongside them.
func (s *Store) UpdateTeleport(stats *signwarp.TeleportStats, online signwarp.OnlineStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail(err) {
		return
	}
	if stats != nil {
		s.snapshot.Teleport = *stats
		s.snapshot.HasTeleport = true
	}
	if online != nil {
		s.snapshot.Online = cloneOnline(online)
	}
	s.succeed()
}

// UpdateEnhanced records an /enhanced-stats fetch.
func (s *Store) UpdateEnhanced(stats *signwarp.EnhancedStats, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail(err) {
		return
	}
	if stats != nil {
		s.snapshot.Enhanced = *stats
		s.snapshot.HasEnhanced = true
	}
	s.succeed()
}

// RecordFailure notes a failed fetch that has no snapshot slot of its own.
func (s *Store) RecordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail(err)
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.General = cloneGeneral(s.snapshot.General)
	snap.Online = cloneOnline(s.snapshot.Online)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func (s *Store) fail(err error) bool {
	if err == nil {
		return false
	}
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
	return true
}

func (s *Store) succeed() {
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

func cloneGeneral(g signwarp.GeneralStats) signwarp.GeneralStats {
	if g.WorldStats != nil {
		worlds := make(map[string]int, len(g.WorldStats))
		for k, v := range g.WorldStats {
			worlds[k] = v
		}
		g.WorldStats = worlds
	}
	return g
}

func cloneOnline(o signwarp.OnlineStatus) signwarp.OnlineStatus {
	if o == nil {
		return nil
	}
	dup := make(signwarp.OnlineStatus, len(o))
	for k, v := range o {
		dup[k] = v
	}
	return dup
}
