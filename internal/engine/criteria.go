package engine

import (
	"fmt"
	"strings"
)

// All is the catch-all value of the world and creator filters.
const All = "all"

// Visibility selects warps by their privacy flag.
type Visibility string

const (
	VisibilityAll     Visibility = "all"
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

var visibilityCycle = []Visibility{VisibilityAll, VisibilityPublic, VisibilityPrivate}

// ParseVisibility accepts all, public or private in any case. Blank means all.
func ParseVisibility(raw string) (Visibility, error) {
	switch v := Visibility(strings.ToLower(strings.TrimSpace(raw))); v {
	case "", VisibilityAll:
		return VisibilityAll, nil
	case VisibilityPublic, VisibilityPrivate:
		return v, nil
	default:
		return VisibilityAll, fmt.Errorf("unknown visibility %q (want all, public or private)", raw)
	}
}

// Next returns the following value in the all → public → private cycle.
func (v Visibility) Next() Visibility {
	for i, candidate := range visibilityCycle {
		if candidate == v {
			return visibilityCycle[(i+1)%len(visibilityCycle)]
		}
	}
	return VisibilityAll
}

// Criteria is the conjunction of the active list filters.
type Criteria struct {
	Search     string
	Visibility Visibility
	World      string
	Creator    string
}

// DefaultCriteria matches every warp.
func DefaultCriteria() Criteria {
	return Criteria{Visibility: VisibilityAll, World: All, Creator: All}
}

// Normalized maps blank selections to their catch-all values.
func (c Criteria) Normalized() Criteria {
	if c.Visibility == "" {
		c.Visibility = VisibilityAll
	}
	if strings.TrimSpace(c.World) == "" {
		c.World = All
	}
	if strings.TrimSpace(c.Creator) == "" {
		c.Creator = All
	}
	return c
}

// Active reports whether any filter narrows the list.
func (c Criteria) Active() bool {
	c = c.Normalized()
	return strings.TrimSpace(c.Search) != "" ||
		c.Visibility != VisibilityAll ||
		c.World != All ||
		c.Creator != All
}

// CycleOption returns the option after current in [All, options...], wrapping.
// A current value missing from options restarts at All.
func CycleOption(options []string, current string) string {
	if current == All || current == "" {
		if len(options) == 0 {
			return All
		}
		return options[0]
	}
	for i, opt := range options {
		if opt == current {
			if i+1 < len(options) {
				return options[i+1]
			}
			return All
		}
	}
	return All
}
