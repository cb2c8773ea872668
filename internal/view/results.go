package view

import (
	"context"
	"fmt"

	"github.com/five82/warpdeck/internal/signwarp"
)

// Result is the outcome of a Fetch or Mutation, applied with Apply.
type Result interface {
	result()
}

type DiscoverResult struct {
	Stats *signwarp.GeneralStats
	WSURL string
	Err   error
}

type StatsResult struct {
	Stats *signwarp.GeneralStats
	Err   error
}

type WarpsResult struct {
	Warps   []signwarp.Warp
	Skipped int
	Err     error
}

type TeleportResult struct {
	Stats     *signwarp.TeleportStats
	Online    signwarp.OnlineStatus
	Err       error
	OnlineErr error
}

type EnhancedResult struct {
	Stats *signwarp.EnhancedStats
	Err   error
}

type PlayersResult struct {
	Players signwarp.OnlinePlayers
	Err     error
}

type MutationResult struct {
	Mutation Mutation
	Reply    signwarp.InviteResult
	Err      error
}

func (DiscoverResult) result() {}
func (StatsResult) result()    {}
func (WarpsResult) result()    {}
func (TeleportResult) result() {}
func (EnhancedResult) result() {}
func (PlayersResult) result()  {}
func (MutationResult) result() {}

// Execute performs one fetch against the gateway.
func Execute(ctx context.Context, gw signwarp.Gateway, f Fetch) Result {
	switch f {
	case FetchDiscover:
		stats, err := gw.Discover(ctx)
		return DiscoverResult{Stats: stats, WSURL: gw.WebSocketURL(), Err: err}
	case FetchStats:
		stats, err := gw.FetchGeneralStats(ctx)
		return StatsResult{Stats: stats, Err: err}
	case FetchWarps:
		warps, skipped, err := gw.FetchAllWarps(ctx)
		return WarpsResult{Warps: warps, Skipped: skipped, Err: err}
	case FetchTeleport:
		stats, err := gw.FetchTeleportStats(ctx)
		res := TeleportResult{Stats: stats, Err: err}
		if err == nil {
			res.Online, res.OnlineErr = gw.FetchOnlineStatus(ctx)
		}
		return res
	case FetchEnhanced:
		stats, err := gw.FetchEnhancedStats(ctx)
		return EnhancedResult{Stats: stats, Err: err}
	case FetchPlayers:
		players, err := gw.FetchOnlinePlayers(ctx)
		return PlayersResult{Players: players, Err: err}
	default:
		return StatsResult{Err: fmt.Errorf("unknown fetch %d", f)}
	}
}

// ExecuteMutation performs an invite or uninvite call.
func ExecuteMutation(ctx context.Context, gw signwarp.Gateway, m Mutation) Result {
	var (
		reply signwarp.InviteResult
		err   error
	)
	switch m.Action {
	case ActionInvite:
		reply, err = gw.InviteToWarp(ctx, m.Warp, m.Player)
	case ActionUninvite:
		reply, err = gw.UninviteFromWarp(ctx, m.Warp, m.Player)
	default:
		err = fmt.Errorf("unknown action %q", m.Action)
	}
	return MutationResult{Mutation: m, Reply: reply, Err: err}
}
