package honeycomb

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// blendLightnessPivot is the lightness at which a cell gets no shadow blend.
// Darker cells are pulled toward the shadow color proportionally.
const blendLightnessPivot = 80

// hsl is a color with hue in degrees and saturation/lightness in [0, 100].
type hsl struct {
	H, S, L float64
}

func hslOf(c colorful.Color) hsl {
	h, s, l := c.Hsl()
	return hsl{H: h, S: s * 100, L: l * 100}
}

func (c hsl) color() Color {
	rgb := colorful.Hsl(mod360(c.H), clamp01(c.S/100), clamp01(c.L/100)).Clamped()
	return Color{R: rgb.R, G: rgb.G, B: rgb.B, A: 1}
}

// mixHSL interpolates a toward b by t, taking the short way around the hue
// circle. An achromatic b keeps a's hue.
func mixHSL(a, b hsl, t float64) hsl {
	t = clamp01(t)
	h := b.H
	if b.S < 1e-6 {
		h = a.H
	}
	dh := math.Mod(h-a.H+540, 360) - 180
	return hsl{
		H: mod360(a.H + dh*t),
		S: lerp(a.S, b.S, t),
		L: lerp(a.L, b.L, t),
	}
}

func mod360(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// mixRGB alpha-blends a toward b in RGB.
func mixRGB(a, b Color, t float64) Color {
	t = clamp01(t)
	ca := colorful.Color{R: a.R, G: a.G, B: a.B}
	cb := colorful.Color{R: b.R, G: b.G, B: b.B}
	m := ca.BlendRgb(cb, t)
	return Color{R: m.R, G: m.G, B: m.B, A: lerp(a.A, b.A, t)}
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

// Hex returns the color as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
}

// compiledPalette is a Palette with its string colors resolved.
type compiledPalette struct {
	Palette
	shadow hsl
	edge   Color
}

func compilePalette(p Palette) compiledPalette {
	p = p.withDefaults()
	edge := resolveColor(p.Edge, colorful.Color{})
	return compiledPalette{
		Palette: p,
		shadow:  hslOf(resolveColor(p.Shadow, DefaultShadow)),
		edge:    Color{R: edge.R, G: edge.G, B: edge.B, A: clamp01(p.EdgeAlpha)},
	}
}

// ColorSample is the derived color state of one cell.
type ColorSample struct {
	BaseHue        float64
	BaseSaturation float64
	BaseLightness  float64
	// Noise is the coherent noise value in [-1, 1] the base was derived from.
	Noise float64
	// Offset is the cell's cached random lightness offset.
	Offset float64

	Inner Color
	Outer Color
	Edge  Color
}

// base returns the sample's base color as hsl.
func (s ColorSample) base() hsl {
	return hsl{H: s.BaseHue, S: s.BaseSaturation, L: s.BaseLightness}
}

// sampleCell derives one cell's sample from palette p. unit is the cell's
// cached uniform draw in [0, 1); edgeDist is the seed's distance to its
// nearest cell edge, or a negative value when unknown.
func sampleCell(p *compiledPalette, noise noiseField, pt Vec2, unit, edgeDist float64) ColorSample {
	n := noise.at(pt.X/p.NoiseScale, pt.Y/p.NoiseScale)
	offset := lerp(p.LightnessOffset.Min, p.LightnessOffset.Max, unit)

	base := hsl{
		H: mod360(p.Hue.Base + n*p.Hue.Variation),
		S: p.SaturationRange.Clamp(p.Saturation.Base + n*p.Saturation.Variation),
		L: p.LightnessRange.Clamp(p.Lightness.Base + n*p.Lightness.Variation + offset),
	}

	blend := clamp01(1 - base.L/blendLightnessPivot)
	if edgeDist >= 0 && p.EdgeBlend > 0 && p.EdgeDistance > 0 {
		blend = clamp01(blend + p.EdgeBlend*clamp01(1-edgeDist/p.EdgeDistance))
	}

	return ColorSample{
		BaseHue:        base.H,
		BaseSaturation: base.S,
		BaseLightness:  base.L,
		Noise:          n,
		Offset:         offset,
		Inner:          mixHSL(base, p.shadow, blend).color(),
		Outer:          mixHSL(base, p.shadow, math.Min(1, blend+p.OuterBlendOffset)).color(),
		Edge:           p.edge,
	}
}

// blendSamples alpha-blends two samples of the same cell by t.
func blendSamples(a, b ColorSample, t float64) ColorSample {
	t = clamp01(t)
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	base := mixHSL(a.base(), b.base(), t)
	return ColorSample{
		BaseHue:        base.H,
		BaseSaturation: base.S,
		BaseLightness:  base.L,
		Noise:          lerp(a.Noise, b.Noise, t),
		Offset:         lerp(a.Offset, b.Offset, t),
		Inner:          mixRGB(a.Inner, b.Inner, t),
		Outer:          mixRGB(a.Outer, b.Outer, t),
		Edge:           mixRGB(a.Edge, b.Edge, t),
	}
}
