// Package state holds the data warpdeck has fetched from the plugin.
//
// # Overview
//
// Two containers live here, both replaced wholesale and never patched:
//
//   - Cache: the full warp set, the single source of truth for filtering
//   - Store: the statistics snapshots shown beside the list
//
// Statistics never flow into the warp cache and vice versa.
//
// # Cache
//
// Replace swaps the whole set and recomputes the sorted distinct world and
// creator lists that populate the filter options. Snapshot hands out a deep
// copy in server order. After a replace, callers run their selected world
// through ReconcileWorld: a world that vanished from the set falls back to
// engine.All so the filter never points at nothing.
//
//	cache.Replace(warps, skipped)
//	criteria.World = cache.ReconcileWorld(criteria.World)
//
// # Store
//
// Each resource (general stats, teleport stats with online status, enhanced
// stats) has its own update method. A failed fetch keeps the previous data,
// records the error and bumps ConsecutiveFailures; IsOffline reports two or
// more failures in a row. A success clears both.
//
// # Concurrency
//
// Both types guard their fields with a sync.RWMutex and copy on the way in and
// out, so they are safe to share between the UI loop and background commands.
// The zero value of each is ready to use.
package state
