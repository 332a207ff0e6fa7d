// Package host drives a scene interactively: frame timing, keyboard
// controls and the terminal front end.
package host

import "time"

// MaxDelta caps a single frame step in seconds so a stalled terminal
// does not teleport cubes across the exit plane.
const MaxDelta = 0.1

// Clock measures frame deltas.
type Clock struct {
	now  func() time.Time
	last time.Time
}

// NewClock starts a clock. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, last: now()}
}

// Tick returns the seconds since the previous tick, capped at MaxDelta.
func (c *Clock) Tick() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 {
		return 0
	}
	if dt > MaxDelta {
		dt = MaxDelta
	}
	return dt
}

// FrameDuration converts a target frame rate to a ticker period.
func FrameDuration(fps int) time.Duration {
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}
