package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/warpdeck/internal/engine"
	"github.com/five82/warpdeck/internal/signwarp"
	"github.com/five82/warpdeck/internal/worlds"
)

const discoverTimeout = 5 * time.Second

// Session is a discovered connection used by the one-shot CLI commands.
type Session struct {
	env   *environment
	stats *signwarp.GeneralStats
}

// WarpListing is one derived page plus the totals it was derived from.
type WarpListing struct {
	engine.Result
	Loaded  int
	Skipped int
}

// Open loads configuration and runs endpoint discovery against the server.
func Open(ctx context.Context, opts Options) (*Session, error) {
	env, err := boot(opts)
	if err != nil {
		return nil, err
	}

	discoverCtx, cancel := context.WithTimeout(ctx, discoverTimeout)
	defer cancel()
	stats, err := env.client.Discover(discoverCtx)
	if err != nil {
		env.log.WithError(err).WithField("api_bind", env.cfg.APIBind).Error("discovery failed")
		env.close()
		return nil, fmt.Errorf("cannot reach warp server at %s: %w", env.cfg.APIBind, err)
	}
	env.log.WithField("api", env.client.APIBase()).Info("discovered endpoints")
	return &Session{env: env, stats: stats}, nil
}

// Close releases the session's log file.
func (s *Session) Close() {
	if s == nil || s.env == nil {
		return
	}
	s.env.close()
}

// Names returns the world display table.
func (s *Session) Names() worlds.Names {
	return s.env.names
}

// Stats returns the statistics fetched during discovery.
func (s *Session) Stats() signwarp.GeneralStats {
	if s.stats == nil {
		return signwarp.GeneralStats{}
	}
	return *s.stats
}

// Warps fetches the full warp set and derives the requested page.
func (s *Session) Warps(ctx context.Context, criteria engine.Criteria, page engine.Page) (WarpListing, error) {
	warps, skipped, err := s.env.client.FetchAllWarps(ctx)
	if err != nil {
		return WarpListing{}, fmt.Errorf("fetch warps: %w", err)
	}
	if skipped > 0 {
		s.env.log.WithField("skipped", skipped).Warn("malformed warp records skipped")
	}
	return WarpListing{
		Result:  engine.Derive(warps, criteria, page),
		Loaded:  len(warps),
		Skipped: skipped,
	}, nil
}

// Invite grants player access to a private warp.
func (s *Session) Invite(ctx context.Context, warp, player string) (signwarp.InviteResult, error) {
	return s.mutate(ctx, "invite", warp, player, s.env.client.InviteToWarp)
}

// Uninvite revokes player access to a private warp.
func (s *Session) Uninvite(ctx context.Context, warp, player string) (signwarp.InviteResult, error) {
	return s.mutate(ctx, "uninvite", warp, player, s.env.client.UninviteFromWarp)
}

func (s *Session) mutate(ctx context.Context, action, warp, player string, call func(context.Context, string, string) (signwarp.InviteResult, error)) (signwarp.InviteResult, error) {
	warp = strings.TrimSpace(warp)
	player = strings.TrimSpace(player)
	if warp == "" {
		return signwarp.InviteResult{}, errors.New("warp name is required")
	}
	if player == "" {
		return signwarp.InviteResult{}, errors.New("player name is required")
	}

	log := s.env.log.WithFields(logrus.Fields{"action": action, "warp": warp, "player": player})
	result, err := call(ctx, warp, player)
	if err != nil {
		log.WithError(err).Warn("invite change failed")
		return signwarp.InviteResult{}, fmt.Errorf("%s %s on %s: %w", action, player, warp, err)
	}
	log.Info("invite change applied")
	return result, nil
}
