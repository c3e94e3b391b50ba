package honeycomb

import (
	"math"
	"math/rand/v2"
)

// PointField is a generated hexagonal lattice of seed points together with
// the margin-extended rectangle it covers.
type PointField struct {
	// Rest holds the undisplaced seed positions, indexed by seed.
	Rest []Vec2

	Width, Height float64
	Margin        float64
	Spacing       float64
	RowHeight     float64
	// Rows is the number of lattice rows laid out, including empty ones.
	Rows int
}

// Bounds returns the extended rectangle (-margin, -margin) to
// (width+margin, height+margin).
func (f *PointField) Bounds() Rect {
	return Rect{
		X:      -f.Margin,
		Y:      -f.Margin,
		Width:  f.Width + 2*f.Margin,
		Height: f.Height + 2*f.Margin,
	}
}

// Viewport returns the unextended surface rectangle.
func (f *PointField) Viewport() Rect {
	return Rect{Width: f.Width, Height: f.Height}
}

// Len returns the number of seed points.
func (f *PointField) Len() int {
	return len(f.Rest)
}

// GeneratePointField lays out a jittered hexagonal lattice over a
// width x height surface. The lattice covers the surface plus a margin of
// max(width, height) * marginRatio on every side, at a density that puts
// roughly targetCount points in that extended area. Each point is moved by
// uniform noise of up to spacing * jitter on each axis and then kept inside
// the extended bounds.
//
// Degenerate input (non-positive size or count) yields an empty field.
func GeneratePointField(width, height float64, targetCount int, jitter, marginRatio float64, rng *rand.Rand) *PointField {
	if marginRatio < 0 {
		marginRatio = 0
	}
	if jitter < 0 {
		jitter = 0
	}
	f := &PointField{Width: math.Max(width, 0), Height: math.Max(height, 0)}
	if width <= 0 || height <= 0 || targetCount <= 0 {
		return f
	}

	f.Margin = math.Max(width, height) * marginRatio
	extW := width + 2*f.Margin
	extH := height + 2*f.Margin

	// spacing = sqrt(2 / (sqrt(3) * density)), factored so extW*extH never
	// has to be formed and cannot overflow.
	spacing := math.Sqrt(2/math.Sqrt(3)) * math.Sqrt(extW) * math.Sqrt(extH) / math.Sqrt(float64(targetCount))
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return f
	}
	f.Spacing = spacing
	f.RowHeight = f.Spacing * math.Sqrt(3) / 2

	bounds := f.Bounds()
	amp := f.Spacing * jitter

	// One extra row and column of slack so the far edges are covered even
	// when the spacing does not divide the extent.
	cols := int(math.Floor(extW/f.Spacing)) + 1
	f.Rows = int(math.Floor(extH/f.RowHeight)) + 1
	f.Rest = make([]Vec2, 0, cols*f.Rows)

	for row := 0; row < f.Rows; row++ {
		y := bounds.Y + float64(row)*f.RowHeight
		offset := 0.0
		if row%2 == 1 {
			offset = f.Spacing / 2
		}
		for col := 0; col < cols; col++ {
			x := bounds.X + offset + float64(col)*f.Spacing
			if x > bounds.MaxX() {
				break
			}
			p := Vec2{X: x, Y: y}
			if amp > 0 {
				p.X += (randFloat(rng)*2 - 1) * amp
				p.Y += (randFloat(rng)*2 - 1) * amp
				p.X = clamp(p.X, bounds.X, bounds.MaxX())
				p.Y = clamp(p.Y, bounds.Y, bounds.MaxY())
			}
			f.Rest = append(f.Rest, p)
		}
	}
	return f
}

func randFloat(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

// newRand returns a PCG source seeded from seed, or a randomly seeded one
// when seed is zero.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
