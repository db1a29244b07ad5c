package backend

import "sync/atomic"

// Tracker hands out input generations. A response is applied only while its
// generation is still the latest one; anything older is stale and dropped.
type Tracker struct {
	gen atomic.Uint64
}

// Begin starts a new generation and returns it.
func (t *Tracker) Begin() uint64 { return t.gen.Add(1) }

// Current returns the latest generation.
func (t *Tracker) Current() uint64 { return t.gen.Load() }

// IsCurrent reports whether gen is still the latest generation.
func (t *Tracker) IsCurrent(gen uint64) bool { return gen == t.gen.Load() }
