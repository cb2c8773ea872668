package signwarp

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBind {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBind)
	}

	u, err = parseBaseURL("https://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
}

func TestWithPort_KeepsHostAndPath(t *testing.T) {
	u, err := parseEndpoint("ws://play.example.com:8080/ws")
	if err != nil {
		t.Fatalf("parseEndpoint returned error: %v", err)
	}
	got := withPort(u, 9090).String()
	if got != "ws://play.example.com:9090/ws" {
		t.Fatalf("withPort = %q", got)
	}
	if u.Port() != "8080" {
		t.Fatalf("withPort mutated its input: %q", u.String())
	}
}

func TestParseEndpoint_RejectsRelative(t *testing.T) {
	for _, raw := range []string{"", "  ", "/api", "localhost"} {
		if _, err := parseEndpoint(raw); err == nil {
			t.Errorf("parseEndpoint(%q) returned nil error", raw)
		}
	}
}

func TestDecodeAPIError_PrefersMessageThenError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message", `{"message":"warp is public","error":"ignored"}`, "warp is public"},
		{"error", `{"error":"player offline"}`, "player offline"},
		{"not json", `<html>oops</html>`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rec.WriteHeader(http.StatusBadRequest)
			_, _ = rec.WriteString(tt.body)

			err := decodeAPIError("/api/warps/x/invite", rec.Result())
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error %T is not *APIError", err)
			}
			if apiErr.Status != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", apiErr.Status)
			}
			if apiErr.Message != tt.want {
				t.Fatalf("message = %q, want %q", apiErr.Message, tt.want)
			}
		})
	}
}

func TestServerMessage(t *testing.T) {
	if got := ServerMessage(nil); got != "" {
		t.Fatalf("ServerMessage(nil) = %q", got)
	}
	wrapped := errors.Join(errors.New("context"), &APIError{Path: "/api", Status: 400, Message: "already invited"})
	if got := ServerMessage(wrapped); got != "already invited" {
		t.Fatalf("ServerMessage = %q, want server text", got)
	}
	if got := ServerMessage(errors.New("dial tcp: refused")); !strings.Contains(got, "refused") {
		t.Fatalf("ServerMessage = %q, want error text", got)
	}
}

func TestWarp_PrivateAndInvites(t *testing.T) {
	yes := true
	w := Warp{Name: "vault", IsPrivate: &yes, InvitedPlayers: []string{"Alex"}}
	if private, known := w.Private(); !private || !known {
		t.Fatalf("Private() = %v, %v", private, known)
	}
	if _, known := (Warp{}).Private(); known {
		t.Fatal("Private() reported a missing flag as known")
	}
	if !w.IsInvited("Alex") || w.IsInvited("alex") {
		t.Fatal("IsInvited should match exact names only")
	}

	dup := w.Clone()
	*dup.IsPrivate = false
	dup.InvitedPlayers[0] = "Steve"
	if !*w.IsPrivate || w.InvitedPlayers[0] != "Alex" {
		t.Fatal("Clone shares state with the original")
	}
}

func TestOnlinePlayers_Matching(t *testing.T) {
	players := OnlinePlayers{Players: []string{"Alex", "alice", "Steve"}}
	got := players.Matching("al")
	if len(got) != 2 || got[0] != "Alex" || got[1] != "alice" {
		t.Fatalf("Matching = %v", got)
	}
	if len(players.Matching("")) != 3 {
		t.Fatal("empty prefix should match everyone")
	}
}
