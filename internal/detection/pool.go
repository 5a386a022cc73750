package detection

import (
	"sync"

	"github.com/ironsheep/stripe-locator/internal/imaging"
)

// gridPool recycles score buffers between scales and between images.
// Buffers are bucketed by size so a Get never returns a grid of the wrong
// shape.
type gridPool struct {
	mu    sync.RWMutex
	pools map[[2]int]*sync.Pool
}

var scoreBuffers = &gridPool{
	pools: make(map[[2]int]*sync.Pool),
}

// Get returns a zeroed width×height grid, reusing a released one when
// available.
func (p *gridPool) Get(width, height int) *imaging.FloatGrid {
	key := [2]int{width, height}
	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()

	if !ok {
		p.mu.Lock()
		pool, ok = p.pools[key]
		if !ok {
			pool = &sync.Pool{
				New: func() any {
					return imaging.NewFloatGrid(width, height)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	g := pool.Get().(*imaging.FloatGrid)
	g.Zero()
	return g
}

// Put releases g for reuse. The caller must not touch g afterwards.
func (p *gridPool) Put(g *imaging.FloatGrid) {
	if g == nil {
		return
	}
	key := [2]int{g.Width, g.Height}
	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()

	if ok {
		pool.Put(g)
	}
}
