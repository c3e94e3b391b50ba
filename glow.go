package honeycomb

import (
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
)

// GlowPhase is the derived state of one cell's glow.
type GlowPhase uint8

const (
	GlowDormant GlowPhase = iota // intensity 0, nothing pending
	GlowRising                   // moving up toward its target
	GlowHolding                  // at target while the pointer stays near
	GlowFading                   // deadline elapsed, moving down to 0
)

// String returns the phase name.
func (p GlowPhase) String() string {
	switch p {
	case GlowDormant:
		return "dormant"
	case GlowRising:
		return "rising"
	case GlowHolding:
		return "holding"
	case GlowFading:
		return "fading"
	default:
		return "unknown"
	}
}

// GlowStates holds the glow state of every cell as parallel slices indexed by
// seed. All slices have the same length.
type GlowStates struct {
	Intensity    []float64
	Target       []float64
	LastCheck    []time.Time
	FadeDeadline []time.Time
}

// NewGlowStates allocates dormant state for n cells.
func NewGlowStates(n int) GlowStates {
	return GlowStates{
		Intensity:    make([]float64, n),
		Target:       make([]float64, n),
		LastCheck:    make([]time.Time, n),
		FadeDeadline: make([]time.Time, n),
	}
}

// Len returns the number of cells.
func (g *GlowStates) Len() int {
	return len(g.Intensity)
}

// Phase derives cell i's phase.
func (g *GlowStates) Phase(i int) GlowPhase {
	in, tg := g.Intensity[i], g.Target[i]
	switch {
	case in == 0 && tg == 0:
		return GlowDormant
	case in < tg:
		return GlowRising
	case in > tg:
		return GlowFading
	default:
		return GlowHolding
	}
}

// activationFalloff maps the normalized closeness (1 - d/radius) to the
// activation weight, a cubic ease-in so cells right under the pointer light
// far more often than those at the rim.
func activationFalloff(closeness float64) float64 {
	return float64(ease.InCubic(float32(clamp01(closeness)), 0, 1, 1))
}

// Step advances every cell by one frame. pointer may be OffSurface. Rates are
// per-frame deltas, so Step is meant to run exactly once per frame.
func (g *GlowStates) Step(points []Vec2, pointer Vec2, now time.Time, cfg GlowConfig, rng *rand.Rand) {
	present := PointerPresent(pointer) && cfg.GlowRadius > 0
	interval := cfg.SampleInterval()
	delayMin, delayMax := cfg.FadeDelay()
	up := max(cfg.GlowSpeed, 0)
	down := max(cfg.FadeSpeed, 0)

	n := min(len(points), g.Len())
	for i := 0; i < n; i++ {
		inside := false
		var d float64
		if present {
			d = points[i].Dist(pointer)
			inside = d < cfg.GlowRadius
		}

		if inside {
			if g.LastCheck[i].IsZero() || now.Sub(g.LastCheck[i]) >= interval {
				g.LastCheck[i] = now
				chance := cfg.ActivationChance * activationFalloff(1-d/cfg.GlowRadius)
				if chance > 0 && randFloat(rng) < chance {
					g.Target[i] = min(1, g.Target[i]+cfg.Boost.Random(rng))
				}
			}
			// Renewal holds whatever has been reached so far.
			if g.Target[i] < g.Intensity[i] {
				g.Target[i] = g.Intensity[i]
			}
			delay := delayMin
			if delayMax > delayMin {
				delay += time.Duration(randFloat(rng) * float64(delayMax-delayMin))
			}
			g.FadeDeadline[i] = now.Add(delay)
		} else if g.Target[i] > 0 && now.After(g.FadeDeadline[i]) {
			g.Target[i] = 0
		}

		in := g.Intensity[i]
		tg := clamp01(g.Target[i])
		g.Target[i] = tg
		switch {
		case in < tg:
			in = min(tg, in+up)
		case in > tg:
			in = max(tg, in-down)
		}
		g.Intensity[i] = clamp01(in)
	}
}

// Clock supplies the current time to the glow model.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only moves when told to. Used by scripted runs
// and tests.
type ManualClock struct {
	current time.Time
}

// NewManualClock returns a clock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
