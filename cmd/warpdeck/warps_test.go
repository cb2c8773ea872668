package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/five82/warpdeck/internal/app"
	"github.com/five82/warpdeck/internal/engine"
	"github.com/five82/warpdeck/internal/signwarp"
	"github.com/five82/warpdeck/internal/worlds"
)

func boolPtr(v bool) *bool { return &v }

func TestPrintListing(t *testing.T) {
	warps := []signwarp.Warp{
		{Name: "spawn", Creator: "Alex", World: "world", X: 1, Y: 64, Z: -3, IsPrivate: boolPtr(false)},
		{Name: "vault", Creator: "Steve", World: "world_nether", IsPrivate: boolPtr(true)},
		{Name: "mystery", Creator: "Steve", World: "custom"},
	}
	criteria := engine.DefaultCriteria()
	criteria.Creator = "Steve"
	listing := app.WarpListing{
		Result:  engine.Derive(warps, criteria, engine.Page{Current: 0, Size: 10}),
		Loaded:  len(warps),
		Skipped: 2,
	}

	var buf bytes.Buffer
	printListing(&buf, listing, criteria, worlds.Default())
	out := buf.String()

	for _, want := range []string{"NAME", "vault", "Nether", "private", "mystery", "custom", "unknown", "1–2 of 2 · page 1/1", "showing 2 of 3 warps", "2 malformed skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "spawn") {
		t.Errorf("filtered warp printed:\n%s", out)
	}
}

func TestPrintListing_Empty(t *testing.T) {
	tests := []struct {
		name   string
		loaded int
		want   string
	}{
		{"no warps", 0, "No warps on this server."},
		{"filtered out", 4, "No warps match the filters (4 loaded)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printListing(&buf, app.WarpListing{Loaded: tt.loaded}, engine.DefaultCriteria(), worlds.Default())
			if got := strings.TrimSpace(buf.String()); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPad(t *testing.T) {
	if got := pad("spawn", 8); got != "spawn   " {
		t.Fatalf("pad short = %q", got)
	}
	if got := pad("averyverylongname", 6); got != "avery…" {
		t.Fatalf("pad long = %q", got)
	}
}
