// Package worlds maps Minecraft world identifiers to display names and
// tallies per-world warp counts for the dimension chart.
package worlds

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unknown is shown for warps whose world is missing.
const Unknown = "Unknown world"

// Names resolves world ids to display labels. Ids without an entry are shown
// verbatim.
type Names struct {
	table map[string]string
}

type file struct {
	Names map[string]string `yaml:"names"`
}

var builtin = map[string]string{
	"world":         "Overworld",
	"world_nether":  "Nether",
	"world_the_end": "The End",
	"DIM-1":         "Nether",
	"DIM1":          "The End",
}

// Default returns the built-in table.
func Default() Names {
	table := make(map[string]string, len(builtin))
	for id, label := range builtin {
		table[id] = label
	}
	return Names{table: table}
}

// Load reads a YAML overrides file of the form
//
//	names:
//	  world: Overworld
//	  creative: Creative Plots
//
// and merges it over the built-in table. A missing file is not an error.
func Load(path string) (Names, error) {
	names := Default()
	if strings.TrimSpace(path) == "" {
		return names, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return names, nil
		}
		return names, fmt.Errorf("read worlds file: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return names, fmt.Errorf("worlds.yaml: %w", err)
	}
	for id, label := range f.Names {
		id = strings.TrimSpace(id)
		label = strings.TrimSpace(label)
		if id == "" || label == "" {
			continue
		}
		names.table[id] = label
	}
	return names, nil
}

// Display returns the label for a world id.
func (n Names) Display(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return Unknown
	}
	table := n.table
	if table == nil {
		table = builtin
	}
	if label, ok := table[id]; ok {
		return label
	}
	return id
}

// Count is one bar of the dimension distribution.
type Count struct {
	World string
	Warps int
}

// Tally counts occurrences of each world id, most populated first. Ties are
// ordered by id so the chart is stable between refreshes.
func Tally(ids []string) []Count {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]int)
	for _, id := range ids {
		seen[strings.TrimSpace(id)]++
	}
	out := make([]Count, 0, len(seen))
	for id, n := range seen {
		out = append(out, Count{World: id, Warps: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Warps != out[j].Warps {
			return out[i].Warps > out[j].Warps
		}
		return out[i].World < out[j].World
	})
	return out
}
