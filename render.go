package honeycomb

// Debug overlay colors.
var (
	debugCurrentColor = Color{R: 1, G: 0.3, B: 0.3, A: 0.9}
	debugRestColor    = Color{R: 0.3, G: 1, B: 0.5, A: 0.9}
	debugLinkColor    = Color{R: 1, G: 1, B: 1, A: 0.35}
	debugPointerColor = Color{R: 1, G: 0.85, B: 0.2, A: 1}
)

const debugMarkerRadius = 2.5

// Renderer paints honeycomb cells. Besides the stroke settings and debug
// flag it caches from the palette, it only keeps scratch buffers.
type Renderer struct {
	strokeWidth float64
	innerScale  float64
	debug       bool

	tess      Tessellator
	inner     []Vec2
	outerClip []Vec2
	innerClip []Vec2
	scratch   []Vec2
}

// NewRenderer creates a renderer using p's stroke width and inner scale.
func NewRenderer(p Palette, debug bool) *Renderer {
	r := &Renderer{}
	r.SetPalette(p)
	r.debug = debug
	return r
}

// SetPalette re-reads the stroke width and inner scale.
func (r *Renderer) SetPalette(p Palette) {
	p = p.withDefaults()
	r.strokeWidth = p.StrokeWidth
	r.innerScale = p.InnerScale
}

// SetDebug toggles the debug overlay drawn by Engine.
func (r *Renderer) SetDebug(enabled bool) {
	r.debug = enabled
}

// Debug reports whether the debug overlay is on.
func (r *Renderer) Debug() bool {
	return r.debug
}

// Render tessellates points within bounds and paints the cells. It returns
// the number of cells drawn.
func (r *Renderer) Render(c Canvas, points []Vec2, bounds Rect, samples []ColorSample) int {
	cells := r.tess.Tessellate(points, bounds)
	return r.RenderCells(c, cells, samples)
}

// RenderCells paints already tessellated cells. Each cell is filled with its
// outer color, overlaid with a copy shrunk toward its centroid by the inner
// scale in the inner color, and outlined with the edge color. Fills of cells
// crossing the canvas border are clipped to the canvas; the outline keeps the
// full cell so no stroke runs along the border. Cells without a polygon,
// without a sample, or entirely off the canvas are skipped.
func (r *Renderer) RenderCells(c Canvas, cells [][]Vec2, samples []ColorSample) int {
	w, h := c.Size()
	viewport := Rect{Width: w, Height: h}
	drawn := 0
	for i, cell := range cells {
		if len(cell) < 3 || i >= len(samples) {
			continue
		}
		box := polygonAABB(cell)
		if !box.Intersects(viewport) {
			continue
		}
		clip := !viewport.ContainsRect(box)
		outer := cell
		if clip {
			r.outerClip, r.scratch = clipToRect(r.outerClip, r.scratch, cell, viewport)
			if len(r.outerClip) < 3 {
				continue
			}
			outer = r.outerClip
		}

		s := &samples[i]
		c.FillPolygon(outer, s.Outer)
		r.inner = scalePolygon(r.inner, cell, PolygonCentroid(cell), r.innerScale)
		inner := r.inner
		if clip {
			r.innerClip, r.scratch = clipToRect(r.innerClip, r.scratch, r.inner, viewport)
			inner = r.innerClip
		}
		if len(inner) >= 3 {
			c.FillPolygon(inner, s.Inner)
		}
		if r.strokeWidth > 0 {
			c.StrokePolygon(cell, r.strokeWidth, s.Edge)
		}
		drawn++
	}
	c.Flush()
	return drawn
}

// DebugOverlay is the data drawn by RenderDebug.
type DebugOverlay struct {
	Positions []Vec2
	Rest      []Vec2
	Pointer   Vec2
	// Radius is the pointer's effect radius (mouse or glow radius).
	Radius float64
}

// RenderDebug draws, for every point, a marker at its current position, a
// marker at its rest position and a line between them, then the pointer and
// a ring at its effect radius.
func (r *Renderer) RenderDebug(c Canvas, o DebugOverlay) {
	for i, p := range o.Positions {
		if i < len(o.Rest) {
			rest := o.Rest[i]
			if rest != p {
				c.StrokeLine(rest, p, 1, debugLinkColor)
			}
			c.StrokeCircle(rest, debugMarkerRadius, 1, debugRestColor)
		}
		c.FillCircle(p, debugMarkerRadius, debugCurrentColor)
	}
	if PointerPresent(o.Pointer) {
		c.FillCircle(o.Pointer, 4, debugPointerColor)
		if o.Radius > 0 {
			c.StrokeCircle(o.Pointer, o.Radius, 1, debugPointerColor)
		}
	}
	c.Flush()
}
