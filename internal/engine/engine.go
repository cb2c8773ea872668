package engine

import (
	"strings"

	"github.com/five82/warpdeck/internal/signwarp"
)

// Page is the pagination request: a zero-based page index and a page size.
type Page struct {
	Current int
	Size    int
}

// Result is one derived page of the filtered warp list.
type Result struct {
	Items         []signwarp.Warp
	TotalElements int
	TotalPages    int
	EffectivePage int
	// Start and End form the one-based "start–end of total" label; both are
	// zero when the filtered list is empty.
	Start int
	End   int
}

// Filter applies the criteria in fixed order: visibility, name substring,
// creator, world. Server order is preserved.
func Filter(warps []signwarp.Warp, criteria Criteria) []signwarp.Warp {
	criteria = criteria.Normalized()
	query := strings.ToLower(strings.TrimSpace(criteria.Search))

	out := make([]signwarp.Warp, 0, len(warps))
	for _, w := range warps {
		if !matchVisibility(w, criteria.Visibility) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(w.Name), query) {
			continue
		}
		if criteria.Creator != All && w.Creator != criteria.Creator {
			continue
		}
		if criteria.World != All && w.World != criteria.World {
			continue
		}
		out = append(out, w)
	}
	return out
}

func matchVisibility(w signwarp.Warp, v Visibility) bool {
	if v == VisibilityAll {
		return true
	}
	private, known := w.Private()
	if !known {
		return false
	}
	if v == VisibilityPrivate {
		return private
	}
	return !private
}

// TotalPages returns ceil(total/size), or 0 for an empty list.
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Clamp moves page into [0, max(0, totalPages-1)].
func Clamp(page, totalPages int) int {
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}
	return page
}

// Derive filters warps and slices out the requested page. It never fails:
// out-of-range pages are clamped and an empty result is a valid state.
func Derive(warps []signwarp.Warp, criteria Criteria, page Page) Result {
	size := page.Size
	if size <= 0 {
		size = 1
	}
	filtered := Filter(warps, criteria)
	total := len(filtered)
	pages := TotalPages(total, size)
	current := Clamp(page.Current, pages)

	res := Result{
		TotalElements: total,
		TotalPages:    pages,
		EffectivePage: current,
	}
	if total == 0 {
		return res
	}
	start := current * size
	end := min(start+size, total)
	res.Items = filtered[start:end]
	res.Start = start + 1
	res.End = end
	return res
}

// Window returns up to width page indices centred on current, clipped to the
// valid range. With width 5 this is [current-2, current+2].
func Window(current, totalPages, width int) []int {
	if totalPages <= 0 || width <= 0 {
		return nil
	}
	current = Clamp(current, totalPages)
	half := width / 2
	first := max(0, current-half)
	last := min(totalPages-1, current+half)
	out := make([]int, 0, last-first+1)
	for i := first; i <= last; i++ {
		out = append(out, i)
	}
	return out
}
