package app

import "time"

// Clock turns variable frame times into a whole number of fixed ticks.
type Clock struct {
	step     time.Duration
	maxTicks int
	lag      time.Duration
}

// NewClock ticks rate times per second and runs at most maxTicks per frame.
func NewClock(rate, maxTicks int) *Clock {
	return &Clock{step: time.Second / time.Duration(rate), maxTicks: maxTicks}
}

func (c *Clock) Step() time.Duration { return c.step }

// Advance adds elapsed to the backlog and returns how many ticks to run now
// plus how far the leftover backlog is into the next tick, in [0, 1). When
// the frame fell too far behind, the ticks beyond maxTicks are dropped.
func (c *Clock) Advance(elapsed time.Duration) (int, float32) {
	c.lag += elapsed
	ticks := int(c.lag / c.step)
	if ticks > c.maxTicks {
		ticks = c.maxTicks
		c.lag %= c.step
	} else {
		c.lag -= time.Duration(ticks) * c.step
	}
	return ticks, float32(c.lag) / float32(c.step)
}
