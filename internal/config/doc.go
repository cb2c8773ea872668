// Package config loads warpdeck's TOML configuration.
//
// # Overview
//
// The config file tells warpdeck where the SignWarpX web server listens and
// where to keep its own log and world-name table. Every field is optional; a
// missing file yields the defaults below.
//
// # Default Values
//
//   - Config file: ~/.config/warpdeck/config.toml
//   - API bind: 127.0.0.1:8080
//   - Log file: ~/.local/state/warpdeck/warpdeck.log
//   - Worlds file: ~/.config/warpdeck/worlds.yaml
//   - Auto-refresh interval: 30 seconds
//   - Push reconnect delay: 5 seconds
//   - Push keepalive interval: 30 seconds
//
// # TOML Format
//
//	api_bind = "127.0.0.1:8080"
//	log_file = "~/.local/state/warpdeck/warpdeck.log"
//	worlds_file = "~/.config/warpdeck/worlds.yaml"
//	poll_seconds = 30
//	reconnect_seconds = 5
//	keepalive_seconds = 30
//
// Tilde expansion is performed for path fields. Non-positive durations fall
// back to their defaults.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors.
package config
