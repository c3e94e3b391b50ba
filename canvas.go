package honeycomb

import "math"

// Canvas is a drawing surface in logical (device-independent) coordinates.
// Implementations scale to physical pixels themselves and clip to their own
// extent, which is the viewport.
type Canvas interface {
	// Size returns the logical size.
	Size() (w, h float64)
	Clear(c Color)
	FillPolygon(pts []Vec2, c Color)
	StrokePolygon(pts []Vec2, width float64, c Color)
	StrokeLine(a, b Vec2, width float64, c Color)
	FillCircle(center Vec2, r float64, c Color)
	StrokeCircle(center Vec2, r, width float64, c Color)
	// Flush submits any batched geometry.
	Flush()
}

// circleSegments is the polygon resolution used for circles by canvases
// without a native circle primitive.
const circleSegments = 32

// segmentQuad returns the four corners of a line segment of the given width.
func segmentQuad(a, b Vec2, width float64) ([4]Vec2, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	ln := math.Hypot(dx, dy)
	if ln < 1e-10 || width <= 0 {
		return [4]Vec2{}, false
	}
	hw := width / 2
	nx, ny := -dy/ln*hw, dx/ln*hw
	return [4]Vec2{
		{a.X + nx, a.Y + ny},
		{b.X + nx, b.Y + ny},
		{b.X - nx, b.Y - ny},
		{a.X - nx, a.Y - ny},
	}, true
}

// circlePoints appends a circleSegments-gon approximating the circle to dst.
func circlePoints(dst []Vec2, center Vec2, r float64) []Vec2 {
	dst = dst[:0]
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		dst = append(dst, Vec2{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)})
	}
	return dst
}
