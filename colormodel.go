package honeycomb

import (
	"math/rand/v2"
)

// ColorModel derives per-cell colors from seed positions. It owns the cached
// random lightness offsets, the glow state and the sample buffers; returned
// slices are reused by the next call of the same method and MUST NOT be
// retained or mutated by callers.
type ColorModel struct {
	muted   compiledPalette
	vibrant compiledPalette
	glowCfg GlowConfig

	noise noiseField
	rng   *rand.Rand
	clock Clock

	units []float64 // per-seed uniform draws behind the lightness offset
	glow  GlowStates

	mutedBuf   []ColorSample
	vibrantBuf []ColorSample
	outBuf     []ColorSample
}

// NewColorModel creates a color model for the given palettes. seed fixes
// both the noise field and the random offsets; clock may be nil for the
// wall clock.
func NewColorModel(muted, vibrant Palette, glow GlowConfig, seed uint64, clock Clock) *ColorModel {
	if clock == nil {
		clock = SystemClock{}
	}
	rng := newRand(seed)
	return &ColorModel{
		muted:   compilePalette(muted),
		vibrant: compilePalette(vibrant),
		glowCfg: glow,
		noise:   newNoiseField(rng.Int64()),
		rng:     rng,
		clock:   clock,
	}
}

// SetPalettes swaps both palettes. Cached offsets and glow state are kept.
func (m *ColorModel) SetPalettes(muted, vibrant Palette) {
	m.muted = compilePalette(muted)
	m.vibrant = compilePalette(vibrant)
}

// SetGlow replaces the glow constants.
func (m *ColorModel) SetGlow(cfg GlowConfig) {
	m.glowCfg = cfg
}

// Reset drops cached offsets and glow state and sizes them for n cells.
// Call after the point field is regenerated.
func (m *ColorModel) Reset(n int) {
	m.units = m.units[:0]
	m.ensure(n)
	m.glow = NewGlowStates(n)
}

// Glow exposes the per-cell glow state.
func (m *ColorModel) Glow() *GlowStates {
	return &m.glow
}

// ensure draws offsets for any seed index not seen yet. Existing draws are
// never replaced, which keeps repeated sampling idempotent.
func (m *ColorModel) ensure(n int) {
	for len(m.units) < n {
		m.units = append(m.units, m.rng.Float64())
	}
	if m.glow.Len() < n {
		grown := NewGlowStates(n)
		copy(grown.Intensity, m.glow.Intensity)
		copy(grown.Target, m.glow.Target)
		copy(grown.LastCheck, m.glow.LastCheck)
		copy(grown.FadeDeadline, m.glow.FadeDeadline)
		m.glow = grown
	}
}

func (m *ColorModel) sampleInto(buf []ColorSample, p *compiledPalette, points []Vec2, edgeDist []float64) []ColorSample {
	m.ensure(len(points))
	if cap(buf) < len(points) {
		buf = make([]ColorSample, len(points))
	}
	buf = buf[:len(points)]
	for i, pt := range points {
		d := -1.0
		if i < len(edgeDist) {
			d = edgeDist[i]
		}
		buf[i] = sampleCell(p, m.noise, pt, m.units[i], d)
	}
	return buf
}

// SampleStatic derives the muted palette colors. edgeDist may be nil;
// otherwise edgeDist[i] is seed i's distance to its nearest cell edge (see
// EdgeDistances). The result depends only on the points and the cached
// offsets, so repeated calls on an unchanged slice are identical.
func (m *ColorModel) SampleStatic(points []Vec2, edgeDist []float64) []ColorSample {
	m.mutedBuf = m.sampleInto(m.mutedBuf, &m.muted, points, edgeDist)
	return m.mutedBuf
}

// SampleVibrant derives the vibrant palette colors.
func (m *ColorModel) SampleVibrant(points []Vec2, edgeDist []float64) []ColorSample {
	m.vibrantBuf = m.sampleInto(m.vibrantBuf, &m.vibrant, points, edgeDist)
	return m.vibrantBuf
}

// SampleGlow advances the glow state machine by one frame and blends the
// muted and vibrant palettes per cell, using the glow intensity as alpha.
// floor raises every cell's alpha to at least that value without touching
// the glow state; pass 0 for plain glow.
func (m *ColorModel) SampleGlow(points []Vec2, pointer Vec2, edgeDist []float64, floor float64) []ColorSample {
	muted := m.SampleStatic(points, edgeDist)
	vibrant := m.SampleVibrant(points, edgeDist)
	m.glow.Step(points, pointer, m.clock.Now(), m.glowCfg, m.rng)

	if cap(m.outBuf) < len(points) {
		m.outBuf = make([]ColorSample, len(points))
	}
	m.outBuf = m.outBuf[:len(points)]
	for i := range points {
		m.outBuf[i] = blendSamples(muted[i], vibrant[i], max(m.glow.Intensity[i], floor))
	}
	return m.outBuf
}

// SampleMorph cross-fades the whole field from muted (t=0) to vibrant (t=1)
// without advancing any glow state.
func (m *ColorModel) SampleMorph(points []Vec2, edgeDist []float64, t float64) []ColorSample {
	muted := m.SampleStatic(points, edgeDist)
	if t <= 0 {
		return muted
	}
	vibrant := m.SampleVibrant(points, edgeDist)
	if cap(m.outBuf) < len(points) {
		m.outBuf = make([]ColorSample, len(points))
	}
	m.outBuf = m.outBuf[:len(points)]
	for i := range points {
		m.outBuf[i] = blendSamples(muted[i], vibrant[i], t)
	}
	return m.outBuf
}
