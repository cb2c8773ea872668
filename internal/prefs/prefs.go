// Package prefs handles warpdeck user preferences persistence.
// Preferences are stored in ~/.config/warpdeck/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for warpdeck. The record is written wholesale
// on every change.
type Prefs struct {
	PageSize    int    `toml:"page_size"`
	AutoRefresh bool   `toml:"auto_refresh"`
	Theme       string `toml:"theme"`
}

const (
	defaultPrefsPath = "~/.config/warpdeck/prefs.toml"
	defaultPageSize  = 15
	defaultTheme     = "Nightfox"
)

// PageSizes lists the page sizes offered in the settings view.
var PageSizes = []int{5, 10, 15, 20, 30, 50}

// Defaults returns the hardcoded preference defaults.
func Defaults() Prefs {
	return Prefs{PageSize: defaultPageSize, AutoRefresh: false, Theme: defaultTheme}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if missing.
// Fields absent from the file keep their default values.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), nil
	}

	prefs := Defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Defaults(), nil // Graceful degradation
	}

	return prefs.normalized(), nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// NextPageSize returns the offered page size after current, wrapping when
// step moves past either end.
func NextPageSize(current, step int) int {
	idx := -1
	for i, size := range PageSizes {
		if size == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return defaultPageSize
	}
	n := len(PageSizes)
	return PageSizes[((idx+step)%n+n)%n]
}

func (p Prefs) normalized() Prefs {
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
