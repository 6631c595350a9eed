package app

import "time"

// IntervalGate rate-limits classifier calls so the sidecar is not
// invoked on every frame at the active capture rate. It is used from
// the pipeline goroutine only and carries no locking.
type IntervalGate struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewIntervalGate creates a gate that opens at most once per interval.
// The first Allow call always passes.
func NewIntervalGate(interval time.Duration) *IntervalGate {
	return &IntervalGate{interval: interval, now: time.Now}
}

// Allow reports whether enough time has passed since the last allowed
// call, and arms the gate when it has.
func (g *IntervalGate) Allow() bool {
	t := g.now()
	if !g.last.IsZero() && t.Sub(g.last) < g.interval {
		return false
	}
	g.last = t
	return true
}

// Reset reopens the gate.
func (g *IntervalGate) Reset() {
	g.last = time.Time{}
}
