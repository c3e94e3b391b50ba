package honeycomb

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderTexture is a persistent offscreen image the static variant paints
// its single frame into. It is owned by the engine and blitted to the
// screen every ebiten Draw until the field changes.
type RenderTexture struct {
	image  *ebiten.Image
	w, h   int
	canvas *EbitenCanvas
}

// NewRenderTexture creates a persistent offscreen image of the given size.
func NewRenderTexture(w, h int) *RenderTexture {
	return &RenderTexture{
		image: ebiten.NewImage(max(w, 1), max(h, 1)),
		w:     w,
		h:     h,
	}
}

// Image returns the underlying *ebiten.Image for direct manipulation.
func (rt *RenderTexture) Image() *ebiten.Image {
	return rt.image
}

// Width returns the texture width in pixels.
func (rt *RenderTexture) Width() int {
	return rt.w
}

// Height returns the texture height in pixels.
func (rt *RenderTexture) Height() int {
	return rt.h
}

// Canvas returns a Canvas drawing into the texture at the given device
// scale. The canvas is reused between calls.
func (rt *RenderTexture) Canvas(scale float64) *EbitenCanvas {
	if rt.canvas == nil {
		rt.canvas = NewEbitenCanvas(rt.image, scale)
	} else {
		rt.canvas.Reset(rt.image, scale)
	}
	return rt.canvas
}

// DrawTo draws the texture onto dst at the origin.
func (rt *RenderTexture) DrawTo(dst *ebiten.Image) {
	dst.DrawImage(rt.image, nil)
}

// Resize reallocates the image if the size changed and reports whether it
// did. The new image is transparent.
func (rt *RenderTexture) Resize(width, height int) bool {
	if width == rt.w && height == rt.h && rt.image != nil {
		return false
	}
	if rt.image != nil {
		rt.image.Deallocate()
	}
	rt.image = ebiten.NewImage(max(width, 1), max(height, 1))
	rt.w = width
	rt.h = height
	return true
}

// Dispose deallocates the underlying image. The texture should not be used
// after calling Dispose.
func (rt *RenderTexture) Dispose() {
	if rt.image != nil {
		rt.image.Deallocate()
		rt.image = nil
	}
	rt.canvas = nil
}
