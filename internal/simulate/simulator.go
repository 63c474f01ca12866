package simulate

import (
	"sync"

	"github.com/nao1215/contrastscan/internal/model"
)

// Simulator converts a color to its appearance under a color vision
// deficiency. Implementations must be deterministic pure functions of
// (color, deficiency).
//
// Passing a vision type that is not one of the three deficiencies is a
// programming error and panics; it is not a user-recoverable condition.
type Simulator interface {
	Simulate(c model.RGB, deficiency model.Vision) model.RGB
}

// cacheKey identifies one simulation result.
type cacheKey struct {
	c model.RGB
	v model.Vision
}

// Cache memoizes a Simulator. The same handful of colors recurs across
// many style tokens while the underlying simulation is comparatively
// expensive, so results are kept for the lifetime of one run. The cache
// is unbounded within a run and discarded with the run.
//
// A mutex guards the map: the simulation itself is idempotent and
// side-effect free, so a lost concurrent write would only cost a
// recomputation, but batch analysis shares one cache across sites and a
// guarded map keeps that sharing effective.
type Cache struct {
	sim Simulator

	mu      sync.Mutex
	entries map[cacheKey]model.RGB
}

// NewCache wraps a Simulator with memoization.
func NewCache(sim Simulator) *Cache {
	return &Cache{
		sim:     sim,
		entries: make(map[cacheKey]model.RGB),
	}
}

// Simulate returns the cached result for (c, deficiency), computing and
// storing it on first use.
func (c *Cache) Simulate(rgb model.RGB, deficiency model.Vision) model.RGB {
	key := cacheKey{c: rgb, v: deficiency}

	c.mu.Lock()
	if cached, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	// Compute outside the lock; duplicate computation is harmless.
	result := c.sim.Simulate(rgb, deficiency)

	c.mu.Lock()
	c.entries[key] = result
	c.mu.Unlock()

	return result
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
