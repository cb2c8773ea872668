package state

import (
	"reflect"
	"testing"

	"github.com/five82/warpdeck/internal/engine"
	"github.com/five82/warpdeck/internal/signwarp"
)

func warp(name, world, creator string) signwarp.Warp {
	private := false
	return signwarp.Warp{Name: name, World: world, Creator: creator, IsPrivate: &private, InvitedPlayers: []string{"Alex"}}
}

func TestCache_ReplaceRecomputesWorldsAndCreators(t *testing.T) {
	var c Cache
	if c.Loaded() || c.Len() != 0 || c.Snapshot() != nil {
		t.Fatal("zero cache should be empty and not loaded")
	}

	c.Replace([]signwarp.Warp{
		warp("a", "world_nether", "Steve"),
		warp("b", "world", "Alex"),
		warp("c", "world_nether", "Alex"),
		warp("d", "", ""),
	}, 2)

	if !c.Loaded() || c.Len() != 4 || c.Skipped() != 2 {
		t.Fatalf("loaded=%v len=%d skipped=%d", c.Loaded(), c.Len(), c.Skipped())
	}
	if got := c.Worlds(); !reflect.DeepEqual(got, []string{"world", "world_nether"}) {
		t.Fatalf("Worlds = %v", got)
	}
	if got := c.Creators(); !reflect.DeepEqual(got, []string{"Alex", "Steve"}) {
		t.Fatalf("Creators = %v", got)
	}
	if got := c.WorldIDs(); !reflect.DeepEqual(got, []string{"world_nether", "world", "world_nether", ""}) {
		t.Fatalf("WorldIDs = %v", got)
	}
	if c.UpdatedAt().IsZero() {
		t.Fatal("UpdatedAt not set")
	}
}

func TestCache_SnapshotIsACopy(t *testing.T) {
	var c Cache
	source := []signwarp.Warp{warp("a", "world", "Alex")}
	c.Replace(source, 0)

	source[0].Name = "mutated"
	snap := c.Snapshot()
	if snap[0].Name != "a" {
		t.Fatal("Replace kept a reference to the caller's slice")
	}

	snap[0].InvitedPlayers[0] = "Steve"
	*snap[0].IsPrivate = true
	again := c.Snapshot()
	if again[0].InvitedPlayers[0] != "Alex" || *again[0].IsPrivate {
		t.Fatal("Snapshot shares state with the cache")
	}

	worlds := c.Worlds()
	worlds[0] = "mutated"
	if c.Worlds()[0] != "world" {
		t.Fatal("Worlds shares its backing array")
	}
}

func TestCache_ReplaceWithEmptySet(t *testing.T) {
	var c Cache
	c.Replace([]signwarp.Warp{warp("a", "world", "Alex")}, 0)
	c.Replace(nil, 0)
	if c.Len() != 0 || len(c.Worlds()) != 0 || !c.Loaded() {
		t.Fatalf("empty replace: len=%d worlds=%v", c.Len(), c.Worlds())
	}
}

func TestCache_ReconcileWorld(t *testing.T) {
	var c Cache
	c.Replace([]signwarp.Warp{warp("a", "world", "Alex"), warp("b", "world_nether", "Steve")}, 0)

	if got := c.ReconcileWorld("world_nether"); got != "world_nether" {
		t.Fatalf("ReconcileWorld kept = %q", got)
	}
	if got := c.ReconcileWorld(engine.All); got != engine.All {
		t.Fatalf("ReconcileWorld(all) = %q", got)
	}

	c.Replace([]signwarp.Warp{warp("a", "world", "Alex")}, 0)
	if got := c.ReconcileWorld("world_nether"); got != engine.All {
		t.Fatalf("ReconcileWorld vanished = %q, want all", got)
	}
	if got := c.ReconcileCreator("Steve"); got != engine.All {
		t.Fatalf("ReconcileCreator vanished = %q, want all", got)
	}
	if got := c.ReconcileCreator("Alex"); got != "Alex" {
		t.Fatalf("ReconcileCreator kept = %q", got)
	}
}
