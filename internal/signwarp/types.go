package signwarp

import (
	"fmt"
	"strings"
	"time"
)

// Warp mirrors one record of /api/warps. Records are never mutated locally.
type Warp struct {
	Name           string   `json:"name"`
	Creator        string   `json:"creator"`
	CreatorUUID    string   `json:"creatorUuid"`
	World          string   `json:"world"`
	X              int64    `json:"x"`
	Y              int64    `json:"y"`
	Z              int64    `json:"z"`
	CreatedAt      string   `json:"createdAt"`
	IsPrivate      *bool    `json:"isPrivate"`
	Visibility     string   `json:"visibility"`
	InvitedPlayers []string `json:"invitedPlayers"`
}

// Private reports the warp's privacy flag and whether the server sent one.
func (w Warp) Private() (private, known bool) {
	if w.IsPrivate == nil {
		return false, false
	}
	return *w.IsPrivate, true
}

// IsInvited reports whether player is in the invite set.
func (w Warp) IsInvited(player string) bool {
	for _, name := range w.InvitedPlayers {
		if name == player {
			return true
		}
	}
	return false
}

// Coordinates formats the block position for display.
func (w Warp) Coordinates() string {
	return fmt.Sprintf("%d, %d, %d", w.X, w.Y, w.Z)
}

// Clone returns a copy that shares no slices with w.
func (w Warp) Clone() Warp {
	dup := w
	if w.IsPrivate != nil {
		flag := *w.IsPrivate
		dup.IsPrivate = &flag
	}
	if w.InvitedPlayers != nil {
		dup.InvitedPlayers = append([]string(nil), w.InvitedPlayers...)
	}
	return dup
}

// WarpPage mirrors /api/warps. Skipped counts records that failed to decode.
type WarpPage struct {
	Warps         []Warp `json:"-"`
	CurrentPage   int    `json:"currentPage"`
	TotalPages    int    `json:"totalPages"`
	TotalElements int    `json:"totalElements"`
	PageSize      int    `json:"pageSize"`
	HasNext       bool   `json:"hasNext"`
	HasPrevious   bool   `json:"hasPrevious"`
	Skipped       int    `json:"-"`
}

// GeneralStats mirrors /api/stats. APIURL and WSURL are the discovery
// endpoints every other call is built on.
type GeneralStats struct {
	TotalWarps   int            `json:"totalWarps"`
	PublicWarps  int            `json:"publicWarps"`
	PrivateWarps int            `json:"privateWarps"`
	WorldStats   map[string]int `json:"worldStats"`
	Connections  int            `json:"connections"`
	LastUpdated  int64          `json:"lastUpdated"`
	APIURL       string         `json:"apiUrl"`
	WSURL        string         `json:"wsUrl"`
}

// UpdatedAt converts LastUpdated (epoch millis) to a time.
func (s GeneralStats) UpdatedAt() time.Time {
	return millis(s.LastUpdated)
}

// PopularWarp is one entry of the most used warps ranking.
type PopularWarp struct {
	WarpName   string `json:"warpName"`
	UsageCount int    `json:"usageCount"`
}

// ActiveUser is one entry of the most active players ranking.
type ActiveUser struct {
	PlayerName    string `json:"playerName"`
	PlayerUUID    string `json:"playerUuid"`
	TeleportCount int    `json:"teleportCount"`
}

// DailyCount is the number of teleports on one date.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WorldRoute counts teleports between two worlds.
type WorldRoute struct {
	FromWorld string `json:"fromWorld"`
	ToWorld   string `json:"toWorld"`
	Count     int    `json:"count"`
}

// Teleport is one entry of the recent teleport log.
type Teleport struct {
	PlayerName   string `json:"playerName"`
	WarpName     string `json:"warpName"`
	FromWorld    string `json:"fromWorld"`
	ToWorld      string `json:"toWorld"`
	TeleportedAt string `json:"teleportedAt"`
}

// TeleportStats mirrors /api/teleport-stats.
type TeleportStats struct {
	TotalTeleports  int           `json:"totalTeleports"`
	TodayTeleports  int           `json:"todayTeleports"`
	WeekTeleports   int           `json:"weekTeleports"`
	UniquePlayers   int           `json:"uniquePlayers"`
	PopularWarps    []PopularWarp `json:"popularWarps"`
	ActiveUsers     []ActiveUser  `json:"activeUsers"`
	DailyStats      []DailyCount  `json:"dailyStats"`
	WorldStats      []WorldRoute  `json:"worldStats"`
	RecentTeleports []Teleport    `json:"recentTeleports"`
	LastUpdated     int64         `json:"lastUpdated"`
}

// HourlyCount is the number of teleports in one hour of the day.
type HourlyCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// WeekdayCount is the number of teleports on one day of the week.
type WeekdayCount struct {
	DayName string `json:"dayName"`
	DayNum  int    `json:"dayNum"`
	Count   int    `json:"count"`
}

// MonthlyCount is the number of teleports in one month.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// CrossDimension splits teleports by whether they changed world.
type CrossDimension struct {
	CrossDimensionCount int          `json:"crossDimensionCount"`
	SameDimensionCount  int          `json:"sameDimensionCount"`
	PopularRoutes       []WorldRoute `json:"popularRoutes"`
}

// PlayerActivity summarises distinct active players.
type PlayerActivity struct {
	TodayActivePlayers int     `json:"todayActivePlayers"`
	WeekActivePlayers  int     `json:"weekActivePlayers"`
	MonthActivePlayers int     `json:"monthActivePlayers"`
	AvgDailyTeleports  float64 `json:"avgDailyTeleports"`
}

// EnhancedStats mirrors /api/enhanced-stats.
type EnhancedStats struct {
	TeleportStats
	HourlyStats         []HourlyCount  `json:"hourlyStats"`
	WeeklyStats         []WeekdayCount `json:"weeklyStats"`
	MonthlyStats        []MonthlyCount `json:"monthlyStats"`
	CrossDimensionStats CrossDimension `json:"crossDimensionStats"`
	PlayerActivityStats PlayerActivity `json:"playerActivityStats"`
}

// OnlineStatus maps player names to their online flag.
type OnlineStatus map[string]bool

// Online reports whether player is currently online.
func (o OnlineStatus) Online(player string) bool {
	return o[player]
}

type onlineStatusResponse struct {
	OnlineStatus OnlineStatus `json:"onlineStatus"`
}

// OnlinePlayers mirrors /api/players/online.
type OnlinePlayers struct {
	Players   []string `json:"players"`
	Count     int      `json:"count"`
	Timestamp int64    `json:"timestamp"`
}

// Matching returns online players whose name starts with prefix, ignoring case.
func (o OnlinePlayers) Matching(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []string
	for _, name := range o.Players {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			out = append(out, name)
		}
	}
	return out
}

// InviteResult mirrors the invite/uninvite success payload.
type InviteResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	WarpName   string `json:"warpName"`
	PlayerName string `json:"playerName"`
	Timestamp  int64  `json:"timestamp"`
}

type invitePayload struct {
	Player string `json:"player"`
}

type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func millis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
