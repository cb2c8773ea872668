package engine

import (
	"sync/atomic"

	"github.com/five82/warpdeck/internal/signwarp"
)

// Gate is a single-flight flag: at most one holder at a time.
type Gate struct {
	busy atomic.Bool
}

// TryAcquire takes the gate and reports whether it was free.
func (g *Gate) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release frees the gate.
func (g *Gate) Release() {
	g.busy.Store(false)
}

// Busy reports whether the gate is held.
func (g *Gate) Busy() bool {
	return g.busy.Load()
}

// Paginator owns the pagination state and serialises page changes through a
// Gate, dropping a page change requested while another is being rendered.
type Paginator struct {
	gate Gate
	page Page
}

// NewPaginator starts on page 0 with the given size.
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = 1
	}
	return &Paginator{page: Page{Size: size}}
}

// Page returns the current pagination state.
func (p *Paginator) Page() Page {
	return p.page
}

// SetSize changes the page size. The current index is kept and clamped on the
// next derive.
func (p *Paginator) SetSize(size int) {
	if size > 0 {
		p.page.Size = size
	}
}

// Derive recomputes the current page without moving and stores the clamped
// index.
func (p *Paginator) Derive(warps []signwarp.Warp, criteria Criteria) Result {
	res := Derive(warps, criteria, p.page)
	p.page.Current = res.EffectivePage
	return res
}

// Navigate moves to target, derives the page and hands it to render. It
// returns false without doing anything when another navigation holds the
// gate. The gate is released even if render fails or panics.
func (p *Paginator) Navigate(warps []signwarp.Warp, criteria Criteria, target int, render func(Result) error) (bool, error) {
	if !p.gate.TryAcquire() {
		return false, nil
	}
	defer p.gate.Release()

	res := Derive(warps, criteria, Page{Current: target, Size: p.page.Size})
	p.page.Current = res.EffectivePage
	if render == nil {
		return true, nil
	}
	return true, render(res)
}
