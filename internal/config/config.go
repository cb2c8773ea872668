package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings warpdeck needs to reach the plugin web server.
type Config struct {
	APIBind    string
	LogFile    string
	WorldsFile string
	PollEvery  time.Duration
	Reconnect  time.Duration
	Keepalive  time.Duration
}

const (
	defaultConfigPath = "~/.config/warpdeck/config.toml"
	defaultLogFile    = "~/.local/state/warpdeck/warpdeck.log"
	defaultWorldsFile = "~/.config/warpdeck/worlds.yaml"
	defaultAPIBind    = "127.0.0.1:8080"

	defaultPollEvery = 30 * time.Second
	defaultReconnect = 5 * time.Second
	defaultKeepalive = 30 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBind:    defaultAPIBind,
		LogFile:    mustExpand(defaultLogFile),
		WorldsFile: mustExpand(defaultWorldsFile),
		PollEvery:  defaultPollEvery,
		Reconnect:  defaultReconnect,
		Keepalive:  defaultKeepalive,
	}
}

// Load locates and parses the warpdeck config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBind          string `toml:"api_bind"`
		LogFile          string `toml:"log_file"`
		WorldsFile       string `toml:"worlds_file"`
		PollSeconds      int    `toml:"poll_seconds"`
		ReconnectSeconds int    `toml:"reconnect_seconds"`
		KeepaliveSeconds int    `toml:"keepalive_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if bind := strings.TrimSpace(raw.APIBind); bind != "" {
		cfg.APIBind = bind
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if worlds := strings.TrimSpace(raw.WorldsFile); worlds != "" {
		cfg.WorldsFile = mustExpand(worlds)
	}
	cfg.PollEvery = secondsOr(raw.PollSeconds, defaultPollEvery)
	cfg.Reconnect = secondsOr(raw.ReconnectSeconds, defaultReconnect)
	cfg.Keepalive = secondsOr(raw.KeepaliveSeconds, defaultKeepalive)

	return cfg, nil
}

func secondsOr(value int, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}
	return time.Duration(value) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}
