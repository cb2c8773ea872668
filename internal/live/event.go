package live

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/five82/warpdeck/internal/signwarp"
)

// Kind discriminates push events.
type Kind string

const (
	KindCreate       Kind = "create"
	KindUpdate       Kind = "update"
	KindDelete       Kind = "delete"
	KindConfigReload Kind = "config_reload"
	KindStatsUpdate  Kind = "stats_update"
	// KindState is synthesised locally whenever the channel changes state.
	KindState Kind = "state"
)

// WarpChanged reports whether k is one of create, update or delete.
func (k Kind) WarpChanged() bool {
	return k == KindCreate || k == KindUpdate || k == KindDelete
}

// Event is a decoded push frame or a local state change.
type Event struct {
	Kind Kind

	// Warp is set for create, update and delete.
	Warp *signwarp.Warp

	// Set for config_reload. WebEnabled is nil when the frame omits it.
	WebEnabled *bool
	OldPort    int
	NewPort    int
	Message    string

	// Set for stats_update.
	TotalWarps   int
	PublicWarps  int
	PrivateWarps int

	Timestamp int64

	// Set for KindState.
	State State
	Err   error
}

// Disabled reports a config_reload that turned the web interface off.
func (e Event) Disabled() bool {
	return e.Kind == KindConfigReload && e.WebEnabled != nil && !*e.WebEnabled
}

// PortChanged reports a config_reload that moved the server to another port.
func (e Event) PortChanged() bool {
	return e.Kind == KindConfigReload && e.OldPort > 0 && e.NewPort > 0 && e.OldPort != e.NewPort
}

const frameSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["type"],
  "properties": {
    "type": {"enum": ["create", "update", "delete", "config_reload", "stats_update"]},
    "warp": {
      "type": "object",
      "required": ["name"],
      "properties": {"name": {"type": "string", "minLength": 1}}
    },
    "webEnabled": {"type": "boolean"},
    "oldPort": {"type": "integer", "minimum": 1, "maximum": 65535},
    "newPort": {"type": "integer", "minimum": 1, "maximum": 65535},
    "message": {"type": "string"},
    "totalWarps": {"type": "integer", "minimum": 0},
    "publicWarps": {"type": "integer", "minimum": 0},
    "privateWarps": {"type": "integer", "minimum": 0},
    "timestamp": {"type": "integer"}
  },
  "if": {"properties": {"type": {"enum": ["create", "update", "delete"]}}},
  "then": {"required": ["warp"]}
}`

var frameValidator = jsonschema.MustCompileString("warpdeck-frame.json", frameSchema)

type frame struct {
	Type         Kind           `json:"type"`
	Warp         *signwarp.Warp `json:"warp"`
	WebEnabled   *bool          `json:"webEnabled"`
	OldPort      int            `json:"oldPort"`
	NewPort      int            `json:"newPort"`
	Message      string         `json:"message"`
	TotalWarps   int            `json:"totalWarps"`
	PublicWarps  int            `json:"publicWarps"`
	PrivateWarps int            `json:"privateWarps"`
	Timestamp    int64          `json:"timestamp"`
}

// Decode validates a text frame and converts it into an Event.
func Decode(data []byte) (Event, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Event{}, fmt.Errorf("parse frame: %w", err)
	}
	if err := frameValidator.Validate(doc); err != nil {
		return Event{}, fmt.Errorf("invalid frame: %w", err)
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Event{}, fmt.Errorf("decode frame: %w", err)
	}
	return Event{
		Kind:         f.Type,
		Warp:         f.Warp,
		WebEnabled:   f.WebEnabled,
		OldPort:      f.OldPort,
		NewPort:      f.NewPort,
		Message:      f.Message,
		TotalWarps:   f.TotalWarps,
		PublicWarps:  f.PublicWarps,
		PrivateWarps: f.PrivateWarps,
		Timestamp:    f.Timestamp,
	}, nil
}
