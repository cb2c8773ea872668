package live

import "testing"

func TestDecode_WarpEvents(t *testing.T) {
	ev, err := Decode([]byte(`{"type":"create","warp":{"name":"shop","world":"world","isPrivate":false},"timestamp":1700000000000}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if ev.Kind != KindCreate || !ev.Kind.WarpChanged() {
		t.Fatalf("kind = %q", ev.Kind)
	}
	if ev.Warp == nil || ev.Warp.Name != "shop" || ev.Timestamp != 1700000000000 {
		t.Fatalf("event = %+v", ev)
	}
}

func TestDecode_ConfigReloadVariants(t *testing.T) {
	tests := []struct {
		name        string
		frame       string
		disabled    bool
		portChanged bool
		wantNewPort int
	}{
		{"disable", `{"type":"config_reload","webEnabled":false,"message":"Web interface disabled"}`, true, false, 0},
		{"port", `{"type":"config_reload","webEnabled":true,"oldPort":8080,"newPort":9090,"message":"Port changed"}`, false, true, 9090},
		{"same port", `{"type":"config_reload","webEnabled":true,"oldPort":8080,"newPort":8080}`, false, false, 8080},
		{"plain", `{"type":"config_reload","webEnabled":true,"message":"Configuration reloaded"}`, false, false, 0},
		{"no flag", `{"type":"config_reload"}`, false, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := Decode([]byte(tt.frame))
			if err != nil {
				t.Fatalf("Decode returned error: %v", err)
			}
			if ev.Disabled() != tt.disabled || ev.PortChanged() != tt.portChanged {
				t.Fatalf("disabled=%v portChanged=%v", ev.Disabled(), ev.PortChanged())
			}
			if ev.NewPort != tt.wantNewPort {
				t.Fatalf("new port = %d, want %d", ev.NewPort, tt.wantNewPort)
			}
		})
	}
}

func TestDecode_StatsUpdate(t *testing.T) {
	ev, err := Decode([]byte(`{"type":"stats_update","totalWarps":12,"publicWarps":8,"privateWarps":4}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if ev.Kind != KindStatsUpdate || ev.TotalWarps != 12 || ev.PublicWarps != 8 || ev.PrivateWarps != 4 {
		t.Fatalf("event = %+v", ev)
	}
	if ev.Kind.WarpChanged() {
		t.Fatal("stats_update reported as warp change")
	}
}

func TestDecode_RejectsMalformedFrames(t *testing.T) {
	frames := map[string]string{
		"not json":       `{"type":`,
		"array":          `["create"]`,
		"missing type":   `{"warp":{"name":"shop"}}`,
		"unknown type":   `{"type":"explode"}`,
		"create no warp": `{"type":"create"}`,
		"blank name":     `{"type":"delete","warp":{"name":""}}`,
		"bad port":       `{"type":"config_reload","oldPort":0,"newPort":70000}`,
		"string flag":    `{"type":"config_reload","webEnabled":"no"}`,
		"negative count": `{"type":"stats_update","totalWarps":-1}`,
	}
	for name, frame := range frames {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(frame)); err == nil {
				t.Fatalf("Decode(%s) returned nil error", frame)
			}
		})
	}
}
