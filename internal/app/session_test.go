package app

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/warpdeck/internal/engine"
	"github.com/five82/warpdeck/internal/testutil"
)

func writeConfig(t *testing.T, apiBind string) (Options, string) {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "warpdeck.log")
	cfgPath := filepath.Join(dir, "config.toml")
	content := "api_bind = \"" + apiBind + "\"\n" +
		"log_file = \"" + logPath + "\"\n" +
		"worlds_file = \"" + filepath.Join(dir, "worlds.yaml") + "\"\n" +
		"poll_seconds = 7\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return Options{ConfigPath: cfgPath, PrefsPath: filepath.Join(dir, "prefs.toml")}, logPath
}

func TestBoot_AppliesPollOverride(t *testing.T) {
	opts, _ := writeConfig(t, "127.0.0.1:9")

	env, err := boot(opts)
	if err != nil {
		t.Fatalf("boot: %v", err)
	}
	defer env.close()
	if env.cfg.PollEvery != 7*time.Second {
		t.Fatalf("poll = %v, want 7s from config", env.cfg.PollEvery)
	}
	if got := env.names.Display("world_nether"); got != "Nether" {
		t.Fatalf("names fell back incorrectly: %q", got)
	}

	opts.PollEvery = 3 * time.Second
	env2, err := boot(opts)
	if err != nil {
		t.Fatalf("boot: %v", err)
	}
	defer env2.close()
	if env2.cfg.PollEvery != 3*time.Second {
		t.Fatalf("poll = %v, want 3s override", env2.cfg.PollEvery)
	}
}

func TestBoot_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_bind = [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := boot(Options{ConfigPath: path}); err == nil {
		t.Fatal("expected error for invalid toml")
	}
}

func TestOpen_UnreachableServer(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.Fail("/api/stats", http.StatusServiceUnavailable, `{"error":"down"}`)
	opts, logPath := writeConfig(t, srv.URL)

	if _, err := Open(context.Background(), opts); err == nil {
		t.Fatal("expected discovery error")
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "discovery failed") {
		t.Fatalf("log missing discovery failure:\n%s", data)
	}
}

func TestSession_Warps(t *testing.T) {
	srv := testutil.NewServer(t)
	var records []map[string]any
	for i := 0; i < 12; i++ {
		name := "spawn" + string(rune('a'+i))
		records = append(records, testutil.Warp(name, "world", "Alex", i%3 == 0))
	}
	srv.SetWarps(records...)
	srv.AddRawWarp(`{"creator":"nobody"}`)
	srv.SetMaxPageSize(5)
	opts, _ := writeConfig(t, srv.URL)

	session, err := Open(context.Background(), opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer session.Close()

	if session.Stats().TotalWarps != 13 {
		t.Fatalf("discovered stats total = %d, want 13", session.Stats().TotalWarps)
	}

	listing, err := session.Warps(context.Background(), engine.DefaultCriteria(), engine.Page{Current: 1, Size: 5})
	if err != nil {
		t.Fatalf("Warps: %v", err)
	}
	if listing.Loaded != 12 || listing.Skipped != 1 {
		t.Fatalf("loaded/skipped = %d/%d, want 12/1", listing.Loaded, listing.Skipped)
	}
	if listing.TotalPages != 3 || listing.EffectivePage != 1 {
		t.Fatalf("pages = %d effective = %d, want 3 and 1", listing.TotalPages, listing.EffectivePage)
	}
	if listing.Start != 6 || listing.End != 10 {
		t.Fatalf("range = %d-%d, want 6-10", listing.Start, listing.End)
	}

	criteria := engine.DefaultCriteria()
	criteria.Visibility = engine.VisibilityPrivate
	listing, err = session.Warps(context.Background(), criteria, engine.Page{Current: 9, Size: 5})
	if err != nil {
		t.Fatalf("Warps: %v", err)
	}
	if listing.TotalElements != 4 || listing.EffectivePage != 0 {
		t.Fatalf("private total = %d effective = %d, want 4 and 0", listing.TotalElements, listing.EffectivePage)
	}
}

func TestSession_InviteAndUninvite(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.SetWarps(testutil.Warp("vault", "world", "Steve", true))
	opts, _ := writeConfig(t, srv.URL)

	session, err := Open(context.Background(), opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer session.Close()

	if _, err := session.Invite(context.Background(), "vault", " Alex "); err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if _, err := session.Uninvite(context.Background(), "vault", "Alex"); err != nil {
		t.Fatalf("Uninvite: %v", err)
	}
	if _, err := session.Invite(context.Background(), "vault", "  "); err == nil {
		t.Fatal("expected error for blank player")
	}

	calls := srv.Invites()
	if len(calls) != 2 {
		t.Fatalf("invite calls = %d, want 2", len(calls))
	}
	if calls[0].Action != "invite" || calls[0].Player != "Alex" || calls[0].Warp != "vault" {
		t.Fatalf("first call = %+v", calls[0])
	}
	if calls[1].Action != "uninvite" {
		t.Fatalf("second call = %+v", calls[1])
	}
}

func TestSession_InviteFailureIsWrapped(t *testing.T) {
	srv := testutil.NewServer(t)
	opts, _ := writeConfig(t, srv.URL)

	session, err := Open(context.Background(), opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer session.Close()

	srv.Fail("/api/warps/vault/invite", http.StatusNotFound, `{"error":"Warp not found"}`)
	_, err = session.Invite(context.Background(), "vault", "Alex")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invite Alex on vault") {
		t.Fatalf("error = %v", err)
	}
}
