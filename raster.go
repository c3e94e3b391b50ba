package honeycomb

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/vector"
)

// RasterCanvas draws onto an in-memory *image.RGBA with an anti-aliasing
// software rasterizer. It backs the terminal surface, PNG export and
// headless tests, none of which have a GPU context.
type RasterCanvas struct {
	img   *image.RGBA
	scale float64
	z     *vector.Rasterizer

	quad []Vec2
	ring []Vec2
}

// NewRasterCanvas allocates a canvas of w x h pixels. scale converts
// logical units to pixels.
func NewRasterCanvas(w, h int, scale float64) *RasterCanvas {
	if scale <= 0 {
		scale = 1
	}
	w, h = max(w, 0), max(h, 0)
	return &RasterCanvas{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: scale,
		z:     vector.NewRasterizer(w, h),
	}
}

// Resize reallocates the backing image when the pixel size changes.
func (c *RasterCanvas) Resize(w, h int, scale float64) {
	if scale > 0 {
		c.scale = scale
	}
	b := c.img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return
	}
	w, h = max(w, 0), max(h, 0)
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.z.Reset(w, h)
}

// Image returns the backing image.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

// Size implements Canvas.
func (c *RasterCanvas) Size() (w, h float64) {
	b := c.img.Bounds()
	return float64(b.Dx()) / c.scale, float64(b.Dy()) / c.scale
}

// Clear implements Canvas.
func (c *RasterCanvas) Clear(col Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col.toRGBA()), image.Point{}, draw.Src)
}

// FillPolygon implements Canvas.
func (c *RasterCanvas) FillPolygon(pts []Vec2, col Color) {
	if len(pts) < 3 {
		return
	}
	b := c.img.Bounds()
	if b.Empty() {
		return
	}
	c.z.Reset(b.Dx(), b.Dy())
	c.z.DrawOp = draw.Over
	c.z.MoveTo(float32(pts[0].X*c.scale), float32(pts[0].Y*c.scale))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p.X*c.scale), float32(p.Y*c.scale))
	}
	c.z.ClosePath()
	c.z.Draw(c.img, b, image.NewUniform(col.toRGBA()), image.Point{})
}

// StrokePolygon implements Canvas.
func (c *RasterCanvas) StrokePolygon(pts []Vec2, width float64, col Color) {
	n := len(pts)
	for i := 0; i < n; i++ {
		c.StrokeLine(pts[i], pts[(i+1)%n], width, col)
	}
}

// StrokeLine implements Canvas.
func (c *RasterCanvas) StrokeLine(a, b Vec2, width float64, col Color) {
	q, ok := segmentQuad(a, b, width)
	if !ok {
		return
	}
	c.quad = append(c.quad[:0], q[:]...)
	c.FillPolygon(c.quad, col)
}

// FillCircle implements Canvas.
func (c *RasterCanvas) FillCircle(center Vec2, r float64, col Color) {
	c.ring = circlePoints(c.ring, center, r)
	c.FillPolygon(c.ring, col)
}

// StrokeCircle implements Canvas.
func (c *RasterCanvas) StrokeCircle(center Vec2, r, width float64, col Color) {
	c.ring = circlePoints(c.ring, center, r)
	c.StrokePolygon(c.ring, width, col)
}

// Flush implements Canvas. Raster drawing is immediate.
func (c *RasterCanvas) Flush() {}

// EncodePNG writes the current image as PNG.
func (c *RasterCanvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
