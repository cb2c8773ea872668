package state

import (
	"errors"
	"testing"

	"github.com/five82/warpdeck/internal/signwarp"
)

func TestStore_UpdateGeneralAndFailures(t *testing.T) {
	var s Store

	s.UpdateGeneral(&signwarp.GeneralStats{TotalWarps: 3, WorldStats: map[string]int{"world": 3}}, nil)
	snap := s.Snapshot()
	if !snap.HasGeneral || snap.General.TotalWarps != 3 || snap.LastError != nil {
		t.Fatalf("snapshot after success = %+v", snap)
	}

	s.UpdateGeneral(nil, errors.New("timeout"))
	s.UpdateGeneral(nil, errors.New("timeout"))
	snap = s.Snapshot()
	if snap.General.TotalWarps != 3 {
		t.Fatal("failed update discarded previous stats")
	}
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() || snap.LastError == nil {
		t.Fatalf("failures = %d offline = %v err = %v", snap.ConsecutiveFailures, snap.IsOffline(), snap.LastError)
	}

	s.UpdateGeneral(&signwarp.GeneralStats{TotalWarps: 4}, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatal("success did not reset failure count")
	}
}

func TestStore_SnapshotCopiesMaps(t *testing.T) {
	var s Store
	s.UpdateGeneral(&signwarp.GeneralStats{WorldStats: map[string]int{"world": 1}}, nil)
	s.UpdateTeleport(&signwarp.TeleportStats{TotalTeleports: 5}, signwarp.OnlineStatus{"Alex": true}, nil)

	snap := s.Snapshot()
	snap.General.WorldStats["world"] = 99
	snap.Online["Steve"] = true

	again := s.Snapshot()
	if again.General.WorldStats["world"] != 1 || again.Online.Online("Steve") {
		t.Fatal("Snapshot shares maps with the store")
	}
	if !again.HasTeleport || again.Teleport.TotalTeleports != 5 || !again.Online.Online("Alex") {
		t.Fatalf("teleport snapshot = %+v", again)
	}
}

func TestStore_ApplyCountsKeepsOtherFields(t *testing.T) {
	var s Store
	s.UpdateGeneral(&signwarp.GeneralStats{TotalWarps: 1, Connections: 4}, nil)
	s.ApplyCounts(10, 7, 3)

	snap := s.Snapshot()
	if snap.General.TotalWarps != 10 || snap.General.PublicWarps != 7 || snap.General.PrivateWarps != 3 {
		t.Fatalf("counts = %+v", snap.General)
	}
	if snap.General.Connections != 4 {
		t.Fatal("ApplyCounts cleared unrelated fields")
	}
}

func TestStore_EnhancedAndRecordFailure(t *testing.T) {
	var s Store
	s.UpdateEnhanced(&signwarp.EnhancedStats{HourlyStats: []signwarp.HourlyCount{{Hour: 1, Count: 2}}}, nil)
	s.RecordFailure(errors.New("online players unavailable"))

	snap := s.Snapshot()
	if !snap.HasEnhanced || len(snap.Enhanced.HourlyStats) != 1 {
		t.Fatalf("enhanced = %+v", snap.Enhanced)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("failures = %d, want 1", snap.ConsecutiveFailures)
	}
	s.RecordFailure(nil)
	if s.Snapshot().ConsecutiveFailures != 1 {
		t.Fatal("nil error counted as a failure")
	}
}
