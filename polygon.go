package honeycomb

import "math"

// polygonAABB returns the axis-aligned bounding box of pts.
func polygonAABB(pts []Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// polygonArea returns the signed shoelace area.
func polygonArea(pts []Vec2) float64 {
	var a float64
	n := len(pts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return a / 2
}

// PolygonCentroid returns the area centroid of a simple polygon, falling
// back to the vertex mean for degenerate (zero-area) input.
func PolygonCentroid(pts []Vec2) Vec2 {
	n := len(pts)
	if n == 0 {
		return Vec2{}
	}
	a := polygonArea(pts)
	if math.Abs(a) < 1e-9 {
		var c Vec2
		for _, p := range pts {
			c.X += p.X
			c.Y += p.Y
		}
		return Vec2{X: c.X / float64(n), Y: c.Y / float64(n)}
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
		cx += (pts[i].X + pts[j].X) * cross
		cy += (pts[i].Y + pts[j].Y) * cross
	}
	return Vec2{X: cx / (6 * a), Y: cy / (6 * a)}
}

// scalePolygon writes src scaled about center by s into dst and returns it.
func scalePolygon(dst, src []Vec2, center Vec2, s float64) []Vec2 {
	dst = dst[:0]
	for _, p := range src {
		dst = append(dst, Vec2{
			X: center.X + (p.X-center.X)*s,
			Y: center.Y + (p.Y-center.Y)*s,
		})
	}
	return dst
}

// clipHalfPlane clips the convex polygon src to the half-plane
// nx*x + ny*y <= c (Sutherland-Hodgman), writing into dst.
func clipHalfPlane(dst, src []Vec2, nx, ny, c float64) []Vec2 {
	dst = dst[:0]
	n := len(src)
	if n == 0 {
		return dst
	}
	prev := src[n-1]
	prevD := nx*prev.X + ny*prev.Y - c
	for _, cur := range src {
		curD := nx*cur.X + ny*cur.Y - c
		if curD <= 0 {
			if prevD > 0 {
				dst = append(dst, intersect(prev, cur, prevD, curD))
			}
			dst = append(dst, cur)
		} else if prevD <= 0 {
			dst = append(dst, intersect(prev, cur, prevD, curD))
		}
		prev, prevD = cur, curD
	}
	return dst
}

func intersect(a, b Vec2, da, db float64) Vec2 {
	t := da / (da - db)
	return Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// clipToRect clips a convex polygon to r. scratch is working space; both
// buffers are returned for reuse.
func clipToRect(dst, scratch, src []Vec2, r Rect) (out, buf []Vec2) {
	scratch = clipHalfPlane(scratch, src, -1, 0, -r.X)
	dst = clipHalfPlane(dst, scratch, 1, 0, r.MaxX())
	scratch = clipHalfPlane(scratch, dst, 0, -1, -r.Y)
	dst = clipHalfPlane(dst, scratch, 0, 1, r.MaxY())
	return dst, scratch
}

// segmentDist returns the distance from p to the segment ab.
func segmentDist(p, a, b Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 < 1e-18 {
		return p.Dist(a)
	}
	t := clamp01(((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2)
	return p.Dist(Vec2{X: a.X + dx*t, Y: a.Y + dy*t})
}

// edgeDistance returns the distance from p to the nearest edge of pts.
func edgeDistance(p Vec2, pts []Vec2) float64 {
	best := math.Inf(1)
	n := len(pts)
	for i := 0; i < n; i++ {
		best = math.Min(best, segmentDist(p, pts[i], pts[(i+1)%n]))
	}
	return best
}
