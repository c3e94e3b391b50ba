package honeycomb

import "math"

// Tessellator computes Voronoi cells by clipping the bounds rectangle with
// the perpendicular bisector of each neighbour, visiting neighbours ring by
// ring through a uniform bucket grid. A ring search stops once no unvisited
// point can be close enough to cut the cell, so the result is exact.
//
// Cell slices are reused between calls; the returned cells are only valid
// until the next Tessellate.
type Tessellator struct {
	// bucket grid, compressed: bucket b holds order[start[b]:start[b+1]]
	cols, rows int
	size       float64
	origin     Vec2
	start      []int
	order      []int

	cells   [][]Vec2
	a, b    []Vec2
	scratch []Vec2
}

// Tessellate returns one convex polygon per point, clipped to bounds. A cell
// is nil when it degenerates (fewer than three vertices), which can happen
// for coincident seeds or seeds pushed outside the bounds.
func Tessellate(points []Vec2, bounds Rect) [][]Vec2 {
	var t Tessellator
	return t.Tessellate(points, bounds)
}

// Tessellate is the buffer-reusing form of the package-level Tessellate.
func (t *Tessellator) Tessellate(points []Vec2, bounds Rect) [][]Vec2 {
	n := len(points)
	for len(t.cells) < n {
		t.cells = append(t.cells, nil)
	}
	t.cells = t.cells[:n]
	if n == 0 || bounds.Empty() {
		for i := range t.cells {
			t.cells[i] = nil
		}
		return t.cells
	}

	t.buildGrid(points, bounds)
	corners := bounds.Corners()
	maxRing := max(t.cols, t.rows)

	for i, p := range points {
		poly := append(t.a[:0], corners...)
		bx, by := t.bucketOf(p)

		for k := 0; k <= maxRing && len(poly) >= 3; k++ {
			poly = t.clipRing(poly, points, i, bx, by, k)
			if len(poly) < 3 {
				break
			}
			var r2 float64
			for _, v := range poly {
				dx, dy := v.X-p.X, v.Y-p.Y
				r2 = math.Max(r2, dx*dx+dy*dy)
			}
			// Points beyond ring k are at least k*size away; a bisector
			// only cuts the cell if the neighbour is within 2r.
			reach := float64(k) * t.size
			if reach*reach >= 4*r2 {
				break
			}
		}
		t.a = poly

		if len(poly) < 3 {
			t.cells[i] = nil
			continue
		}
		t.cells[i] = append(t.cells[i][:0], poly...)
	}
	return t.cells
}

// clipRing clips poly by every point in the ring of buckets at Chebyshev
// distance k from (bx, by).
func (t *Tessellator) clipRing(poly, points []Vec2, self, bx, by, k int) []Vec2 {
	p := points[self]
	for y := by - k; y <= by+k; y++ {
		if y < 0 || y >= t.rows {
			continue
		}
		step := 1
		if y != by-k && y != by+k {
			// Interior rows of the ring only contribute their two ends.
			step = max(2*k, 1)
		}
		for x := bx - k; x <= bx+k; x += step {
			if x < 0 || x >= t.cols {
				continue
			}
			b := y*t.cols + x
			for _, j := range t.order[t.start[b]:t.start[b+1]] {
				if j == self {
					continue
				}
				q := points[j]
				nx, ny := q.X-p.X, q.Y-p.Y
				if nx == 0 && ny == 0 {
					continue
				}
				c := nx*(p.X+q.X)/2 + ny*(p.Y+q.Y)/2
				t.b = clipHalfPlane(t.b, poly, nx, ny, c)
				poly, t.b = t.b, poly
				if len(poly) < 3 {
					return poly
				}
			}
		}
	}
	return poly
}

func (t *Tessellator) buildGrid(points []Vec2, bounds Rect) {
	n := len(points)
	t.origin = Vec2{X: bounds.X, Y: bounds.Y}
	t.size = math.Sqrt(bounds.Width * bounds.Height / float64(n))
	if !(t.size > 0) {
		t.size = math.Max(bounds.Width, bounds.Height)
	}
	t.cols = max(1, int(math.Ceil(bounds.Width/t.size)))
	t.rows = max(1, int(math.Ceil(bounds.Height/t.size)))

	buckets := t.cols * t.rows
	if cap(t.start) < buckets+1 {
		t.start = make([]int, buckets+1)
	}
	t.start = t.start[:buckets+1]
	clear(t.start)
	if cap(t.order) < n {
		t.order = make([]int, n)
	}
	t.order = t.order[:n]

	for _, p := range points {
		bx, by := t.bucketOf(p)
		t.start[by*t.cols+bx+1]++
	}
	for b := 1; b <= buckets; b++ {
		t.start[b] += t.start[b-1]
	}
	// Fill using a running cursor per bucket; scratch-free by walking
	// start[b] forward and restoring afterwards.
	for i, p := range points {
		bx, by := t.bucketOf(p)
		b := by*t.cols + bx
		t.order[t.start[b]] = i
		t.start[b]++
	}
	for b := buckets; b > 0; b-- {
		t.start[b] = t.start[b-1]
	}
	t.start[0] = 0
}

func (t *Tessellator) bucketOf(p Vec2) (int, int) {
	bx := int(math.Floor((p.X - t.origin.X) / t.size))
	by := int(math.Floor((p.Y - t.origin.Y) / t.size))
	if bx < 0 || math.IsNaN(p.X) {
		bx = 0
	}
	if by < 0 || math.IsNaN(p.Y) {
		by = 0
	}
	return min(bx, t.cols-1), min(by, t.rows-1)
}

// EdgeDistances returns each seed's distance to the nearest edge of its own
// cell, or -1 for seeds without a cell. dst is reused when large enough.
func EdgeDistances(dst []float64, points []Vec2, cells [][]Vec2) []float64 {
	if cap(dst) < len(points) {
		dst = make([]float64, len(points))
	}
	dst = dst[:len(points)]
	for i, p := range points {
		if i >= len(cells) || len(cells[i]) < 3 {
			dst[i] = -1
			continue
		}
		dst[i] = edgeDistance(p, cells[i])
	}
	return dst
}
