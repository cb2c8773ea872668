// Package testutil provides a fake SignWarpX web server for gateway, push
// channel and synchronizer tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// DefaultMaxPageSize matches the plugin's cap on /api/warps page sizes.
const DefaultMaxPageSize = 100

// InviteCall records one invite or uninvite request.
type InviteCall struct {
	Action string
	Warp   string
	Player string
}

type failure struct {
	status int
	body   string
}

// Server is an in-memory SignWarpX API with a websocket push endpoint.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	warps       []json.RawMessage
	stats       map[string]any
	teleport    map[string]any
	enhanced    map[string]any
	online      []string
	failures    map[string]failure
	hits        map[string]int
	invites     []InviteCall
	maxPageSize int
	pings       int

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}
	joined    chan struct{}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// NewServer starts a fake server that is closed with the test.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		stats:       map[string]any{},
		teleport:    map[string]any{"totalTeleports": 0},
		enhanced:    map[string]any{"totalTeleports": 0},
		failures:    map[string]failure{},
		hits:        map[string]int{},
		maxPageSize: DefaultMaxPageSize,
		clients:     map[*websocket.Conn]struct{}{},
		joined:      make(chan struct{}, 64),
	}

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/warps", s.handleWarps).Methods(http.MethodGet)
	api.HandleFunc("/teleport-stats", s.handleStatic(func() map[string]any { return s.teleport })).Methods(http.MethodGet)
	api.HandleFunc("/enhanced-stats", s.handleStatic(func() map[string]any { return s.enhanced })).Methods(http.MethodGet)
	api.HandleFunc("/players/online-status", s.handleOnlineStatus).Methods(http.MethodGet)
	api.HandleFunc("/players/online", s.handleOnline).Methods(http.MethodGet)
	api.HandleFunc("/warps/{name}/{action:invite|uninvite}", s.handleInvite).Methods(http.MethodPost)
	api.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "API endpoint not found"})
	})
	r.HandleFunc("/ws", s.handleWS)

	s.Server = httptest.NewServer(s.track(r))
	t.Cleanup(func() {
		s.DropClients()
		s.Server.Close()
	})
	return s
}

// WSURL returns the push endpoint address.
func (s *Server) WSURL() string {
	return "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
}

// Warp builds a well-formed warp record.
func Warp(name, world, creator string, private bool, invited ...string) map[string]any {
	if invited == nil {
		invited = []string{}
	}
	visibility := "public"
	if private {
		visibility = "private"
	}
	return map[string]any{
		"name":           name,
		"creator":        creator,
		"creatorUuid":    "uuid-" + creator,
		"world":          world,
		"x":              10,
		"y":              64,
		"z":              -20,
		"createdAt":      "2025-01-01 12:00:00",
		"isPrivate":      private,
		"visibility":     visibility,
		"invitedPlayers": invited,
	}
}

// SetWarps replaces the warp set with well-formed records.
func (s *Server) SetWarps(records ...map[string]any) {
	raw := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		data, _ := json.Marshal(rec)
		raw = append(raw, data)
	}
	s.mu.Lock()
	s.warps = raw
	s.mu.Unlock()
}

// AddRawWarp appends a record verbatim, which may be malformed.
func (s *Server) AddRawWarp(raw string) {
	s.mu.Lock()
	s.warps = append(s.warps, json.RawMessage(raw))
	s.mu.Unlock()
}

// SetStats overrides fields of the /api/stats payload.
func (s *Server) SetStats(fields map[string]any) {
	s.mu.Lock()
	for k, v := range fields {
		s.stats[k] = v
	}
	s.mu.Unlock()
}

// SetTeleportStats replaces the /api/teleport-stats payload.
func (s *Server) SetTeleportStats(payload map[string]any) {
	s.mu.Lock()
	s.teleport = payload
	s.mu.Unlock()
}

// SetEnhancedStats replaces the /api/enhanced-stats payload.
func (s *Server) SetEnhancedStats(payload map[string]any) {
	s.mu.Lock()
	s.enhanced = payload
	s.mu.Unlock()
}

// SetOnline replaces the online player list.
func (s *Server) SetOnline(players ...string) {
	s.mu.Lock()
	s.online = append([]string(nil), players...)
	s.mu.Unlock()
}

// SetMaxPageSize changes the server-side page size cap.
func (s *Server) SetMaxPageSize(n int) {
	s.mu.Lock()
	s.maxPageSize = n
	s.mu.Unlock()
}

// Fail makes every request to path answer with status and a JSON error body.
// An empty body leaves the response without content.
func (s *Server) Fail(path string, status int, body string) {
	s.mu.Lock()
	s.failures[path] = failure{status: status, body: body}
	s.mu.Unlock()
}

// Recover clears a failure set with Fail.
func (s *Server) Recover(path string) {
	s.mu.Lock()
	delete(s.failures, path)
	s.mu.Unlock()
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// Invites returns the recorded invite and uninvite calls.
func (s *Server) Invites() []InviteCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]InviteCall(nil), s.invites...)
}

// Pings returns how many "ping" frames the push endpoint received.
func (s *Server) Pings() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pings
}

// Push writes a text frame to every connected push client.
func (s *Server) Push(frame string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(frame))
	}
}

// Clients returns the number of connected push clients.
func (s *Server) Clients() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

// WaitForClient blocks until a push client connects or timeout elapses.
func (s *Server) WaitForClient(timeout time.Duration) bool {
	select {
	case <-s.joined:
		return true
	case <-time.After(timeout):
		return false
	}
}

// DropClients closes every push connection from the server side.
func (s *Server) DropClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		_ = conn.Close()
		delete(s.clients, conn)
	}
}

func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		f, failing := s.failures[r.URL.Path]
		s.mu.Unlock()
		if failing {
			if f.body == "" {
				w.WriteHeader(f.status)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(f.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	payload := map[string]any{
		"totalWarps":   len(s.warps),
		"publicWarps":  0,
		"privateWarps": 0,
		"worldStats":   map[string]int{},
		"connections":  s.Clients(),
		"lastUpdated":  time.Now().UnixMilli(),
		"apiUrl":       "http://" + r.Host + "/api",
		"wsUrl":        "ws://" + r.Host + "/ws",
	}
	for k, v := range s.stats {
		payload[k] = v
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleWarps(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil {
		size = 45
	}

	s.mu.Lock()
	page = max(0, page)
	size = max(1, min(s.maxPageSize, size))
	total := len(s.warps)
	totalPages := (total + size - 1) / size
	start := min(page*size, total)
	end := min(start+size, total)
	records := append([]json.RawMessage(nil), s.warps[start:end]...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"warps":         records,
		"currentPage":   page,
		"totalPages":    totalPages,
		"totalElements": total,
		"pageSize":      size,
		"hasNext":       page < totalPages-1,
		"hasPrevious":   page > 0,
	})
}

func (s *Server) handleStatic(payload func() map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		body := payload()
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, body)
	}
}

func (s *Server) handleOnlineStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := make(map[string]bool, len(s.online))
	for _, name := range s.online {
		status[name] = true
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"onlineStatus": status})
}

func (s *Server) handleOnline(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	players := append([]string{}, s.online...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"players":   players,
		"count":     len(players),
		"timestamp": time.Now().UnixMilli(),
	})
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name, _ := url.PathUnescape(vars["name"])
	action := vars["action"]

	var body struct {
		Player string `json:"player"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Player) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "player name must not be empty"})
		return
	}

	s.mu.Lock()
	s.invites = append(s.invites, InviteCall{Action: action, Warp: name, Player: body.Player})
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    action + "d " + body.Player + " on " + name,
		"warpName":   name,
		"playerName": body.Player,
		"timestamp":  time.Now().UnixMilli(),
	})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	s.clientsMu.Unlock()
	select {
	case s.joined <- struct{}{}:
	default:
	}

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
		_ = conn.Close()
	}()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if string(msg) == "ping" {
			s.mu.Lock()
			s.pings++
			s.mu.Unlock()
			s.clientsMu.Lock()
			_ = conn.WriteMessage(websocket.TextMessage, []byte("pong"))
			s.clientsMu.Unlock()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
