package frame

import "time"

// DefaultMaxDelta caps a single frame so a stalled window does not make
// animations jump to their end.
const DefaultMaxDelta = 0.06

// Clock measures wall-clock time between frames
type Clock struct {
	last     time.Time
	MaxDelta float64
	now      func() time.Time
}

// NewClock creates a clock starting now
func NewClock() *Clock {
	c := &Clock{MaxDelta: DefaultMaxDelta, now: time.Now}
	c.last = c.now()
	return c
}

// Delta returns the seconds since the previous call, clamped to MaxDelta
func (c *Clock) Delta() float64 {
	now := c.now()
	dt := now.Sub(c.last).Seconds()
	c.last = now

	if dt < 0 {
		dt = 0
	}
	if c.MaxDelta > 0 && dt > c.MaxDelta {
		dt = c.MaxDelta
	}
	return dt
}

// FixedStep returns the frame duration for a frame rate
func FixedStep(fps int) float64 {
	if fps <= 0 {
		return 0
	}
	return 1.0 / float64(fps)
}
