package honeycomb

import (
	"testing"
	"time"
)

func testPoints() []Vec2 {
	return GeneratePointField(320, 240, 60, 0.3, 0.1, newRand(4)).Rest
}

func newTestColorModel(clock Clock) *ColorModel {
	cfg := DefaultConfig()
	return NewColorModel(cfg.Muted, cfg.Vibrant, cfg.Glow, 99, clock)
}

func TestSampleStaticIdempotent(t *testing.T) {
	m := newTestColorModel(nil)
	pts := testPoints()

	first := append([]ColorSample(nil), m.SampleStatic(pts, nil)...)
	second := m.SampleStatic(pts, nil)
	if len(first) != len(pts) {
		t.Fatalf("samples = %d, want %d", len(first), len(pts))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d changed between calls", i)
		}
	}
}

func TestSampleStaticDeterministicPerSeed(t *testing.T) {
	pts := testPoints()
	a := newTestColorModel(nil).SampleStatic(pts, nil)
	b := newTestColorModel(nil).SampleStatic(pts, nil)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs for equal seeds", i)
		}
	}
}

func TestColorModelResetRedrawsOffsets(t *testing.T) {
	m := newTestColorModel(nil)
	pts := testPoints()
	before := append([]ColorSample(nil), m.SampleStatic(pts, nil)...)

	m.Reset(len(pts))
	after := m.SampleStatic(pts, nil)
	changed := false
	for i := range before {
		if before[i].Offset != after[i].Offset {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("Reset should draw new lightness offsets")
	}
	if m.Glow().Len() != len(pts) {
		t.Errorf("glow len = %d, want %d", m.Glow().Len(), len(pts))
	}
}

func TestSampleMorphEndpoints(t *testing.T) {
	m := newTestColorModel(nil)
	pts := testPoints()
	muted := append([]ColorSample(nil), m.SampleStatic(pts, nil)...)
	vibrant := append([]ColorSample(nil), m.SampleVibrant(pts, nil)...)

	zero := m.SampleMorph(pts, nil, 0)
	for i := range zero {
		if zero[i] != muted[i] {
			t.Fatalf("t=0 sample %d is not muted", i)
		}
	}
	one := m.SampleMorph(pts, nil, 1)
	for i := range one {
		if one[i] != vibrant[i] {
			t.Fatalf("t=1 sample %d is not vibrant", i)
		}
	}
}

func TestSampleGlowWithoutPointerStaysMuted(t *testing.T) {
	clock := NewManualClock(time.Unix(1000, 0))
	m := newTestColorModel(clock)
	pts := testPoints()
	muted := append([]ColorSample(nil), m.SampleStatic(pts, nil)...)

	for f := 0; f < 30; f++ {
		clock.Advance(16 * time.Millisecond)
		got := m.SampleGlow(pts, OffSurface, nil, 0)
		for i := range got {
			if got[i] != muted[i] {
				t.Fatalf("frame %d: sample %d glowed without a pointer", f, i)
			}
		}
	}
}

func TestSampleGlowFloorRaisesAlpha(t *testing.T) {
	m := newTestColorModel(NewManualClock(time.Unix(1000, 0)))
	pts := testPoints()
	vibrant := append([]ColorSample(nil), m.SampleVibrant(pts, nil)...)

	got := m.SampleGlow(pts, OffSurface, nil, 1)
	for i := range got {
		if got[i] != vibrant[i] {
			t.Fatalf("floor 1: sample %d is not vibrant", i)
		}
	}
	for i := range pts {
		if m.Glow().Intensity[i] != 0 {
			t.Fatalf("floor must not touch glow state (cell %d)", i)
		}
	}
}

func TestSampleGlowLightsCellsNearPointer(t *testing.T) {
	clock := NewManualClock(time.Unix(1000, 0))
	cfg := DefaultConfig()
	cfg.Glow.ActivationChance = 1
	m := NewColorModel(cfg.Muted, cfg.Vibrant, cfg.Glow, 5, clock)
	pts := testPoints()
	pointer := Vec2{160, 120}

	for f := 0; f < 60; f++ {
		clock.Advance(16 * time.Millisecond)
		m.SampleGlow(pts, pointer, nil, 0)
	}
	g := m.Glow()
	lit := 0
	for i, p := range pts {
		d := p.Dist(pointer)
		if d >= cfg.Glow.GlowRadius && g.Intensity[i] != 0 {
			t.Errorf("cell %d outside the radius glows (%v)", i, g.Intensity[i])
		}
		if g.Intensity[i] > 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("no cells lit near the pointer")
	}
}
