package honeycomb

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxBatchVertices keeps batch indices inside uint16.
const maxBatchVertices = math.MaxUint16 - 64

// EbitenCanvas draws onto an *ebiten.Image. Polygon fills and strokes are
// accumulated into one triangle batch and submitted with a single
// DrawTriangles call on Flush (or when the batch fills up); circles and
// debug lines go through ebiten's vector package after flushing.
type EbitenCanvas struct {
	dst   *ebiten.Image
	scale float64

	verts []ebiten.Vertex
	inds  []uint16
	quad  []Vec2
}

// NewEbitenCanvas wraps dst. scale converts logical units to pixels
// (ebiten.Monitor().DeviceScaleFactor() for HiDPI surfaces).
func NewEbitenCanvas(dst *ebiten.Image, scale float64) *EbitenCanvas {
	c := &EbitenCanvas{}
	c.Reset(dst, scale)
	return c
}

// Reset retargets the canvas, keeping its batch buffers.
func (c *EbitenCanvas) Reset(dst *ebiten.Image, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	c.dst = dst
	c.scale = scale
	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
}

// Image returns the target image.
func (c *EbitenCanvas) Image() *ebiten.Image {
	return c.dst
}

// Size implements Canvas.
func (c *EbitenCanvas) Size() (w, h float64) {
	if c.dst == nil {
		return 0, 0
	}
	b := c.dst.Bounds()
	return float64(b.Dx()) / c.scale, float64(b.Dy()) / c.scale
}

// Clear implements Canvas.
func (c *EbitenCanvas) Clear(col Color) {
	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
	c.dst.Fill(col.toRGBA())
}

// FillPolygon implements Canvas using fan triangulation; pts must be convex.
func (c *EbitenCanvas) FillPolygon(pts []Vec2, col Color) {
	n := len(pts)
	if n < 3 {
		return
	}
	if len(c.verts)+n > maxBatchVertices {
		c.Flush()
	}
	base := uint16(len(c.verts))
	r, g, b, a := premultiplied(col)
	for _, p := range pts {
		c.verts = append(c.verts, ebiten.Vertex{
			DstX:   float32(p.X * c.scale),
			DstY:   float32(p.Y * c.scale),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	// Fan triangulation: vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		c.inds = append(c.inds, base, base+uint16(i+1), base+uint16(i+2))
	}
}

// StrokePolygon implements Canvas. Each edge becomes a quad in the batch.
func (c *EbitenCanvas) StrokePolygon(pts []Vec2, width float64, col Color) {
	n := len(pts)
	for i := 0; i < n; i++ {
		q, ok := segmentQuad(pts[i], pts[(i+1)%n], width)
		if !ok {
			continue
		}
		c.quad = append(c.quad[:0], q[:]...)
		c.FillPolygon(c.quad, col)
	}
}

// StrokeLine implements Canvas.
func (c *EbitenCanvas) StrokeLine(a, b Vec2, width float64, col Color) {
	c.Flush()
	s := float32(c.scale)
	vector.StrokeLine(c.dst, float32(a.X)*s, float32(a.Y)*s, float32(b.X)*s, float32(b.Y)*s,
		float32(width)*s, col.toRGBA(), true)
}

// FillCircle implements Canvas.
func (c *EbitenCanvas) FillCircle(center Vec2, r float64, col Color) {
	c.Flush()
	s := float32(c.scale)
	vector.DrawFilledCircle(c.dst, float32(center.X)*s, float32(center.Y)*s, float32(r)*s, col.toRGBA(), true)
}

// StrokeCircle implements Canvas.
func (c *EbitenCanvas) StrokeCircle(center Vec2, r, width float64, col Color) {
	c.Flush()
	s := float32(c.scale)
	vector.StrokeCircle(c.dst, float32(center.X)*s, float32(center.Y)*s, float32(r)*s, float32(width)*s, col.toRGBA(), true)
}

// Flush implements Canvas.
func (c *EbitenCanvas) Flush() {
	if len(c.inds) == 0 {
		c.verts = c.verts[:0]
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	c.dst.DrawTriangles(c.verts, c.inds, ensureWhitePixel(), &op)
	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
}

func premultiplied(col Color) (r, g, b, a float32) {
	a = float32(clamp01(col.A))
	return float32(clamp01(col.R)) * a, float32(clamp01(col.G)) * a, float32(clamp01(col.B)) * a, a
}

// --- White pixel singleton (no sync.Once, the engine is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// as the source of untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
