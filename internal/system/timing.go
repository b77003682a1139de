package system

import (
	"math/rand/v2"
	"time"
)

// cooldown fires once every period of accumulated tick time.
type cooldown struct {
	period  float32
	elapsed float32
}

func newCooldown(d time.Duration) cooldown {
	return cooldown{period: float32(d.Seconds())}
}

// tick adds dt and reports whether the period has run out. The counter starts
// over from zero when it fires.
func (c *cooldown) tick(dt float32) bool {
	c.elapsed += dt
	if c.elapsed < c.period {
		return false
	}
	c.elapsed = 0
	return true
}

func (c *cooldown) reset() { c.elapsed = 0 }

// newRand returns a PCG source. Seed 0 picks a time based seed.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>17|1))
}

// uniform draws from [lo, hi).
func uniform(r *rand.Rand, lo, hi float32) float32 {
	return lo + r.Float32()*(hi-lo)
}
