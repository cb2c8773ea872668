package signwarp_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/five82/warpdeck/internal/signwarp"
	"github.com/five82/warpdeck/internal/testutil"
)

func newClient(t *testing.T, srv *testutil.Server) *signwarp.Client {
	t.Helper()
	c, err := signwarp.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestClient_CallsBeforeDiscoveryReturnNotInitialized(t *testing.T) {
	srv := testutil.NewServer(t)
	c := newClient(t, srv)
	ctx := testContext(t)

	if _, err := c.FetchWarps(ctx, 0, 10); !errors.Is(err, signwarp.ErrNotInitialized) {
		t.Fatalf("FetchWarps error = %v, want ErrNotInitialized", err)
	}
	if _, err := c.FetchTeleportStats(ctx); !errors.Is(err, signwarp.ErrNotInitialized) {
		t.Fatalf("FetchTeleportStats error = %v, want ErrNotInitialized", err)
	}
	if _, err := c.InviteToWarp(ctx, "vault", "Alex"); !errors.Is(err, signwarp.ErrNotInitialized) {
		t.Fatalf("InviteToWarp error = %v, want ErrNotInitialized", err)
	}
	if srv.Hits("/api/warps") != 0 {
		t.Fatal("uninitialized client reached the server")
	}
	if c.Initialized() || c.WebSocketURL() != "" {
		t.Fatal("client reports endpoints before discovery")
	}
}

func TestClient_DiscoverAdoptsEndpoints(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.SetStats(map[string]any{"totalWarps": 3, "publicWarps": 2, "privateWarps": 1})
	c := newClient(t, srv)

	stats, err := c.Discover(testContext(t))
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if stats.TotalWarps != 3 || stats.PrivateWarps != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if !c.Initialized() {
		t.Fatal("client not initialized after Discover")
	}
	if got := c.WebSocketURL(); got != srv.WSURL() {
		t.Fatalf("WebSocketURL = %q, want %q", got, srv.WSURL())
	}
	if got := c.APIBase(); got != srv.URL+"/api" {
		t.Fatalf("APIBase = %q, want %q", got, srv.URL+"/api")
	}
}

func TestClient_DiscoverFallsBackWhenEndpointsMissing(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.SetStats(map[string]any{"apiUrl": "", "wsUrl": "not a url"})
	c := newClient(t, srv)

	if _, err := c.Discover(testContext(t)); err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if got := c.WebSocketURL(); got != srv.WSURL() {
		t.Fatalf("WebSocketURL = %q, want %q", got, srv.WSURL())
	}
	if got := c.APIBase(); got != srv.URL+"/api" {
		t.Fatalf("APIBase = %q, want %q", got, srv.URL+"/api")
	}
}

func TestClient_DiscoverFailureLeavesClientUninitialized(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Fail("/api/stats", http.StatusInternalServerError, `{"error":"database locked"}`)
	c := newClient(t, srv)

	_, err := c.Discover(testContext(t))
	var apiErr *signwarp.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Discover error = %v, want *APIError", err)
	}
	if apiErr.Message != "database locked" || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("APIError = %+v", apiErr)
	}
	if c.Initialized() {
		t.Fatal("client initialized after failed discovery")
	}
}

func TestClient_FetchAllWarpsFollowsPagesAndSkipsBadRecords(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.SetMaxPageSize(2)
	srv.SetWarps(
		testutil.Warp("alpha", "world", "Alex", false),
		testutil.Warp("bravo", "world_nether", "Steve", true, "Alex"),
		testutil.Warp("charlie", "world", "Alex", false),
	)
	srv.AddRawWarp(`{"name": 42}`)
	srv.AddRawWarp(`{"world": "world"}`)
	c := newClient(t, srv)
	ctx := testContext(t)
	if _, err := c.Discover(ctx); err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}

	warps, skipped, err := c.FetchAllWarps(ctx)
	if err != nil {
		t.Fatalf("FetchAllWarps returned error: %v", err)
	}
	if skipped != 2 {
		t.Fatalf("skipped = %d, want 2", skipped)
	}
	names := make([]string, 0, len(warps))
	for _, w := range warps {
		names = append(names, w.Name)
	}
	if strings.Join(names, ",") != "alpha,bravo,charlie" {
		t.Fatalf("warps = %v, want server order", names)
	}
	if private, known := warps[1].Private(); !private || !known {
		t.Fatal("bravo should decode as private")
	}
	if !warps[1].IsInvited("Alex") {
		t.Fatal("bravo invite set not decoded")
	}
	if srv.Hits("/api/warps") != 3 {
		t.Fatalf("warps hits = %d, want 3 pages", srv.Hits("/api/warps"))
	}
}

func TestClient_ReadEndpoints(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.SetOnline("Alex", "Steve")
	srv.SetTeleportStats(map[string]any{
		"totalTeleports": 12,
		"popularWarps":   []map[string]any{{"warpName": "shop", "usageCount": 9}},
		"activeUsers":    []map[string]any{{"playerName": "Alex", "playerUuid": "u1", "teleportCount": 7}},
	})
	srv.SetEnhancedStats(map[string]any{
		"totalTeleports":      12,
		"hourlyStats":         []map[string]any{{"hour": 13, "count": 4}},
		"weeklyStats":         []map[string]any{{"dayName": "Mon", "dayNum": 1, "count": 2}},
		"crossDimensionStats": map[string]any{"crossDimensionCount": 3, "sameDimensionCount": 9},
		"playerActivityStats": map[string]any{"todayActivePlayers": 2, "avgDailyTeleports": 1.5},
	})
	c := newClient(t, srv)
	ctx := testContext(t)
	if _, err := c.Discover(ctx); err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}

	tp, err := c.FetchTeleportStats(ctx)
	if err != nil {
		t.Fatalf("FetchTeleportStats returned error: %v", err)
	}
	if tp.TotalTeleports != 12 || len(tp.PopularWarps) != 1 || tp.PopularWarps[0].UsageCount != 9 {
		t.Fatalf("teleport stats = %+v", tp)
	}

	en, err := c.FetchEnhancedStats(ctx)
	if err != nil {
		t.Fatalf("FetchEnhancedStats returned error: %v", err)
	}
	if en.TotalTeleports != 12 || en.HourlyStats[0].Hour != 13 || en.CrossDimensionStats.CrossDimensionCount != 3 {
		t.Fatalf("enhanced stats = %+v", en)
	}
	if en.PlayerActivityStats.AvgDailyTeleports != 1.5 {
		t.Fatalf("avg daily = %v", en.PlayerActivityStats.AvgDailyTeleports)
	}

	status, err := c.FetchOnlineStatus(ctx)
	if err != nil {
		t.Fatalf("FetchOnlineStatus returned error: %v", err)
	}
	if !status.Online("Alex") || status.Online("Herobrine") {
		t.Fatalf("online status = %v", status)
	}

	players, err := c.FetchOnlinePlayers(ctx)
	if err != nil {
		t.Fatalf("FetchOnlinePlayers returned error: %v", err)
	}
	if players.Count != 2 || len(players.Players) != 2 {
		t.Fatalf("online players = %+v", players)
	}
}

func TestClient_InviteAndUninvite(t *testing.T) {
	srv := testutil.NewServer(t)
	c := newClient(t, srv)
	ctx := testContext(t)
	if _, err := c.Discover(ctx); err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}

	res, err := c.InviteToWarp(ctx, "secret base", "Alex")
	if err != nil {
		t.Fatalf("InviteToWarp returned error: %v", err)
	}
	if !res.Success || res.WarpName != "secret base" || res.PlayerName != "Alex" {
		t.Fatalf("invite result = %+v", res)
	}
	if _, err := c.UninviteFromWarp(ctx, "secret base", " Alex "); err != nil {
		t.Fatalf("UninviteFromWarp returned error: %v", err)
	}

	calls := srv.Invites()
	want := []testutil.InviteCall{
		{Action: "invite", Warp: "secret base", Player: "Alex"},
		{Action: "uninvite", Warp: "secret base", Player: "Alex"},
	}
	if len(calls) != len(want) || calls[0] != want[0] || calls[1] != want[1] {
		t.Fatalf("invite calls = %+v, want %+v", calls, want)
	}

	if _, err := c.InviteToWarp(ctx, "secret base", "   "); !errors.Is(err, signwarp.ErrEmptyPlayer) {
		t.Fatalf("blank player error = %v, want ErrEmptyPlayer", err)
	}
}

func TestClient_MutationFailureCarriesServerMessage(t *testing.T) {
	srv := testutil.NewServer(t)
	c := newClient(t, srv)
	ctx := testContext(t)
	if _, err := c.Discover(ctx); err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	srv.Fail("/api/warps/shop/invite", http.StatusBadRequest, `{"error":"Only private warps accept invites"}`)

	_, err := c.InviteToWarp(ctx, "shop", "Alex")
	if got := signwarp.ServerMessage(err); got != "Only private warps accept invites" {
		t.Fatalf("ServerMessage = %q", got)
	}
	if len(srv.Invites()) != 0 {
		t.Fatal("failed mutation should not reach the handler")
	}
}

func TestClient_RebaseMovesEndpoints(t *testing.T) {
	srv := testutil.NewServer(t)
	c := newClient(t, srv)
	if _, err := c.Discover(testContext(t)); err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}

	if err := c.Rebase(25600); err != nil {
		t.Fatalf("Rebase returned error: %v", err)
	}
	if got := c.WebSocketURL(); got != "ws://127.0.0.1:25600/ws" {
		t.Fatalf("WebSocketURL = %q", got)
	}
	if got := c.APIBase(); got != "http://127.0.0.1:25600/api" {
		t.Fatalf("APIBase = %q", got)
	}
	if err := c.Rebase(0); err == nil {
		t.Fatal("Rebase(0) returned nil error")
	}
}
