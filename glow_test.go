package honeycomb

import (
	"math/rand/v2"
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

func certainGlow() GlowConfig {
	return GlowConfig{
		GlowRadius:       100,
		ActivationChance: 1,
		GlowSpeed:        0.04,
		FadeSpeed:        0.02,
		Boost:            Range{Min: 0.5, Max: 0.5},
		FadeDelayMs:      Range{Min: 200, Max: 200},
		SampleIntervalMs: 100,
	}
}

func TestGlowActivationUnderPointer(t *testing.T) {
	g := NewGlowStates(1)
	pts := []Vec2{{50, 50}}
	now := time.Unix(0, 0)
	rng := rand.New(rand.NewPCG(1, 1))

	g.Step(pts, Vec2{50, 50}, now, certainGlow(), rng)
	assertNear(t, "target", g.Target[0], 0.5)
	assertNear(t, "intensity", g.Intensity[0], 0.04)
	if g.Phase(0) != GlowRising {
		t.Errorf("phase = %v, want rising", g.Phase(0))
	}

	// Within the sample interval no further boost is drawn.
	g.Step(pts, Vec2{50, 50}, now.Add(50*time.Millisecond), certainGlow(), rng)
	assertNear(t, "target after 50ms", g.Target[0], 0.5)

	g.Step(pts, Vec2{50, 50}, now.Add(120*time.Millisecond), certainGlow(), rng)
	assertNear(t, "target after 120ms", g.Target[0], 1)
}

func TestGlowOffSurfaceNeverActivates(t *testing.T) {
	g := NewGlowStates(3)
	pts := []Vec2{{0, 0}, {10, 0}, {20, 0}}
	now := time.Unix(0, 0)
	for i := 0; i < 100; i++ {
		now = now.Add(frame)
		g.Step(pts, OffSurface, now, certainGlow(), nil)
	}
	for i := range pts {
		if g.Intensity[i] != 0 || g.Target[i] != 0 {
			t.Errorf("cell %d: intensity=%v target=%v, want dormant", i, g.Intensity[i], g.Target[i])
		}
		if g.Phase(i) != GlowDormant {
			t.Errorf("cell %d phase = %v", i, g.Phase(i))
		}
	}
}

func TestGlowMonotonicWhilePointerInside(t *testing.T) {
	cfg := DefaultGlow()
	cfg.ActivationChance = 0.8
	rng := rand.New(rand.NewPCG(7, 7))
	pts := GeneratePointField(300, 300, 80, 0.3, 0, rng).Rest
	g := NewGlowStates(len(pts))
	pointer := Vec2{150, 150}
	now := time.Unix(0, 0)

	prev := make([]float64, len(pts))
	for f := 0; f < 300; f++ {
		now = now.Add(frame)
		g.Step(pts, pointer, now, cfg, rng)
		for i := range pts {
			in := g.Intensity[i]
			if in < 0 || in > 1 {
				t.Fatalf("frame %d cell %d: intensity %v outside [0, 1]", f, i, in)
			}
			if pts[i].Dist(pointer) < cfg.GlowRadius && in < prev[i] {
				t.Fatalf("frame %d cell %d: intensity fell from %v to %v while pointer inside", f, i, prev[i], in)
			}
			prev[i] = in
		}
	}
}

func TestGlowStaysInUnitRange(t *testing.T) {
	tests := []struct {
		name                     string
		chance, speedUp, speedDn float64
		boost                    Range
	}{
		{"defaults", 0.35, 0.04, 0.015, Range{Min: 0.35, Max: 0.7}},
		{"extreme rates", 10, 5, 5, Range{Min: 0.35, Max: 0.7}},
		{"oversized boost", 1, 0.5, 0.5, Range{Min: 3, Max: 9}},
		{"zero rates", 0, 0, 0, Range{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGlow()
			cfg.ActivationChance = tt.chance
			cfg.GlowSpeed = tt.speedUp
			cfg.FadeSpeed = tt.speedDn
			cfg.Boost = tt.boost
			rng := rand.New(rand.NewPCG(3, 3))
			pts := GeneratePointField(300, 300, 60, 0.3, 0, rng).Rest
			g := NewGlowStates(len(pts))
			now := time.Unix(0, 0)

			for f := 0; f < 400; f++ {
				now = now.Add(frame)
				// Sweep in for a while, then leave so cells fade.
				pointer := OffSurface
				if f < 200 {
					pointer = Vec2{X: float64(f) * 1.5, Y: 150}
				}
				g.Step(pts, pointer, now, cfg, rng)
				for i := range pts {
					if in := g.Intensity[i]; in < 0 || in > 1 {
						t.Fatalf("frame %d cell %d: intensity %v outside [0, 1]", f, i, in)
					}
					if tg := g.Target[i]; tg < 0 || tg > 1 {
						t.Fatalf("frame %d cell %d: target %v outside [0, 1]", f, i, tg)
					}
				}
			}
			for i := range pts {
				if g.Phase(i) == GlowRising || g.Phase(i) == GlowHolding {
					if tt.speedDn > 0 {
						t.Errorf("cell %d still %v long after the pointer left", i, g.Phase(i))
					}
				}
			}
		})
	}
}

func TestGlowFadesAfterDeadline(t *testing.T) {
	cfg := certainGlow()
	g := NewGlowStates(1)
	pts := []Vec2{{0, 0}}
	now := time.Unix(0, 0)

	// Build up while the pointer sits on the cell.
	for f := 0; f < 40; f++ {
		now = now.Add(frame)
		g.Step(pts, Vec2{0, 0}, now, cfg, nil)
	}
	peak := g.Intensity[0]
	if peak <= 0 {
		t.Fatal("cell never lit")
	}
	left := now

	// Until the deadline passes the target holds.
	for now.Add(frame).Sub(left) <= 200*time.Millisecond {
		now = now.Add(frame)
		g.Step(pts, OffSurface, now, cfg, nil)
		if g.Intensity[0] < peak {
			t.Fatalf("faded before the deadline at %v", now.Sub(left))
		}
		peak = g.Intensity[0]
	}

	prev := g.Intensity[0]
	for f := 0; f < 200; f++ {
		now = now.Add(frame)
		g.Step(pts, OffSurface, now, cfg, nil)
		if g.Intensity[0] > prev {
			t.Fatalf("intensity rose while fading: %v -> %v", prev, g.Intensity[0])
		}
		prev = g.Intensity[0]
	}
	if g.Intensity[0] != 0 || g.Phase(0) != GlowDormant {
		t.Errorf("intensity = %v phase = %v, want dormant", g.Intensity[0], g.Phase(0))
	}
}

func TestGlowReentryHoldsIntensity(t *testing.T) {
	cfg := certainGlow()
	cfg.ActivationChance = 0 // re-entry alone must not drop the level
	g := NewGlowStates(1)
	g.Intensity[0] = 0.6
	g.Target[0] = 0
	pts := []Vec2{{0, 0}}

	g.Step(pts, Vec2{1, 1}, time.Unix(0, 0), cfg, nil)
	if g.Intensity[0] < 0.6 {
		t.Errorf("intensity dropped to %v on re-entry", g.Intensity[0])
	}
	assertNear(t, "target", g.Target[0], 0.6)
}

func TestGlowTargetCapped(t *testing.T) {
	cfg := certainGlow()
	g := NewGlowStates(1)
	pts := []Vec2{{0, 0}}
	now := time.Unix(0, 0)
	for i := 0; i < 20; i++ {
		now = now.Add(150 * time.Millisecond)
		g.Step(pts, Vec2{0, 0}, now, cfg, nil)
	}
	if g.Target[0] > 1 {
		t.Errorf("target = %v, want <= 1", g.Target[0])
	}
}

func TestActivationFalloff(t *testing.T) {
	assertNear(t, "0", activationFalloff(0), 0)
	assertNear(t, "1", activationFalloff(1), 1)
	assertNear(t, "0.5", activationFalloff(0.5), 0.125)
	if activationFalloff(-1) != 0 || activationFalloff(2) != 1 {
		t.Error("falloff should clamp its input")
	}
}

func TestGlowPhaseString(t *testing.T) {
	names := map[GlowPhase]string{
		GlowDormant: "dormant",
		GlowRising:  "rising",
		GlowHolding: "holding",
		GlowFading:  "fading",
	}
	for p, want := range names {
		if p.String() != want {
			t.Errorf("%d.String() = %q, want %q", p, p.String(), want)
		}
	}
}

func TestManualClock(t *testing.T) {
	start := time.Unix(100, 0)
	c := NewManualClock(start)
	c.Advance(2 * time.Second)
	if got := c.Now(); !got.Equal(start.Add(2 * time.Second)) {
		t.Errorf("Now = %v", got)
	}
}
