package state

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/five82/warpdeck/internal/engine"
	"github.com/five82/warpdeck/internal/signwarp"
)

// Cache holds the latest full warp set. Every refresh replaces it wholesale;
// records are never patched in place.
type Cache struct {
	mu       sync.RWMutex
	warps    []signwarp.Warp
	worlds   []string
	creators []string
	skipped  int
	loaded   bool
	updated  time.Time
}

// Replace swaps in a new warp set and recomputes the distinct world and
// creator lists. skipped is the number of records dropped while decoding.
func (c *Cache) Replace(warps []signwarp.Warp, skipped int) {
	dup := cloneWarps(warps)
	worlds := distinct(dup, func(w signwarp.Warp) string { return w.World })
	creators := distinct(dup, func(w signwarp.Warp) string { return w.Creator })

	c.mu.Lock()
	defer c.mu.Unlock()
	c.warps = dup
	c.worlds = worlds
	c.creators = creators
	c.skipped = skipped
	c.loaded = true
	c.updated = time.Now()
}

// Snapshot returns a copy of the cached warps in server order.
func (c *Cache) Snapshot() []signwarp.Warp {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneWarps(c.warps)
}

// Len returns the number of cached warps.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.warps)
}

// Loaded reports whether Replace has been called at least once.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Skipped returns how many records the last refresh dropped.
func (c *Cache) Skipped() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.skipped
}

// UpdatedAt returns the time of the last Replace.
func (c *Cache) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.updated
}

// Worlds returns the sorted distinct world ids, blanks excluded.
func (c *Cache) Worlds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.worlds...)
}

// Creators returns the sorted distinct creator names, blanks excluded.
func (c *Cache) Creators() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.creators...)
}

// WorldIDs returns the world of every cached warp, in order, for tallying.
func (c *Cache) WorldIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, len(c.warps))
	for i, w := range c.warps {
		ids[i] = w.World
	}
	return ids
}

// ReconcileWorld keeps selected if it is still present, otherwise falls back
// to engine.All.
func (c *Cache) ReconcileWorld(selected string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return reconcile(c.worlds, selected)
}

// ReconcileCreator is ReconcileWorld for the creator filter.
func (c *Cache) ReconcileCreator(selected string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return reconcile(c.creators, selected)
}

func reconcile(options []string, selected string) string {
	if selected == engine.All {
		return engine.All
	}
	idx := sort.SearchStrings(options, selected)
	if idx < len(options) && options[idx] == selected {
		return selected
	}
	return engine.All
}

func distinct(warps []signwarp.Warp, field func(signwarp.Warp) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range warps {
		v := field(w)
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func cloneWarps(warps []signwarp.Warp) []signwarp.Warp {
	if len(warps) == 0 {
		return nil
	}
	dup := make([]signwarp.Warp, len(warps))
	for i, w := range warps {
		dup[i] = w.Clone()
	}
	return dup
}
