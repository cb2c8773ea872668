// Package app provides the orchestration layer for warpdeck.
//
// # Overview
//
// This package wires together configuration, logging, the SignWarpX gateway,
// the push channel, the view synchronizer and the Bubble Tea UI. It is the
// composition root where every dependency is built and connected.
//
// # Startup
//
//  1. Load ~/.config/warpdeck/config.toml (defaults when absent)
//  2. Open the file logger; the TUI owns the terminal
//  3. Load the world display-name table, falling back to the built-in one
//  4. Build the HTTP gateway against api_bind
//  5. Start the push channel with no address; discovery supplies it
//  6. Build the synchronizer from saved preferences and run the UI
//
// Discovery itself happens inside the UI's first refresh cycle, so an
// unreachable server produces a banner rather than a startup failure.
//
// # One-shot commands
//
// Open builds the same environment and runs discovery up front. The returned
// Session lists a filtered page of warps through the same engine the UI uses
// and applies invite changes. Unlike Run, an unreachable server is an error.
//
// # Errors
//
// Fatal errors returned from Run and Open:
//   - config file present but not valid TOML
//   - log file cannot be created
//   - api_bind cannot be parsed
//
// Everything after startup is reported inside the UI as notifications.
package app
