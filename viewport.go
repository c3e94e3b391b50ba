package honeycomb

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ViewportAdapter tracks the surface size and the latest pointer position
// relative to it. Pointer reads use latest-value semantics: there is no
// queue, and a missing pointer reads as OffSurface.
type ViewportAdapter struct {
	width, height float64 // logical
	scale         float64 // device pixels per logical unit

	pointer      Vec2
	injected     bool // pointer comes from Inject*, skip device polling
	prevTouchIDs []ebiten.TouchID
}

// NewViewportAdapter creates an adapter for a logical width x height
// surface at the given device scale factor.
func NewViewportAdapter(width, height, scale float64) *ViewportAdapter {
	v := &ViewportAdapter{pointer: OffSurface}
	v.Resize(width, height, scale)
	return v
}

// Resize records a new logical size and scale. It reports whether anything
// changed.
func (v *ViewportAdapter) Resize(width, height, scale float64) bool {
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	width, height = math.Max(width, 0), math.Max(height, 0)
	if width == v.width && height == v.height && scale == v.scale {
		return false
	}
	v.width, v.height, v.scale = width, height, scale
	return true
}

// Size returns the logical size.
func (v *ViewportAdapter) Size() (w, h float64) {
	return v.width, v.height
}

// Scale returns the device scale factor.
func (v *ViewportAdapter) Scale() float64 {
	return v.scale
}

// PhysicalSize returns the size in device pixels.
func (v *ViewportAdapter) PhysicalSize() (w, h int) {
	return int(math.Ceil(v.width * v.scale)), int(math.Ceil(v.height * v.scale))
}

// Rect returns the logical surface rectangle.
func (v *ViewportAdapter) Rect() Rect {
	return Rect{Width: v.width, Height: v.height}
}

// Pointer returns the latest pointer position, or OffSurface.
func (v *ViewportAdapter) Pointer() Vec2 {
	return v.pointer
}

// SetPointer records a pointer position in surface-local logical
// coordinates. Positions outside the surface are recorded as OffSurface.
func (v *ViewportAdapter) SetPointer(x, y float64) {
	if !v.Rect().Contains(x, y) {
		v.pointer = OffSurface
		return
	}
	v.pointer = Vec2{X: x, Y: y}
}

// ClearPointer marks the pointer as off the surface.
func (v *ViewportAdapter) ClearPointer() {
	v.pointer = OffSurface
}

// InjectPointer sets the pointer and stops device polling until
// ReleaseInjection, so scripted runs are not overridden by the real mouse.
func (v *ViewportAdapter) InjectPointer(x, y float64) {
	v.injected = true
	v.SetPointer(x, y)
}

// InjectLeave marks the pointer as gone while keeping injection mode.
func (v *ViewportAdapter) InjectLeave() {
	v.injected = true
	v.pointer = OffSurface
}

// ReleaseInjection returns control of the pointer to Poll.
func (v *ViewportAdapter) ReleaseInjection() {
	v.injected = false
}

// Poll reads the current cursor (or the first active touch) from ebiten.
// Called from Engine.Update once per tick.
func (v *ViewportAdapter) Poll() {
	if v.injected {
		return
	}
	touchIDs := ebiten.AppendTouchIDs(v.prevTouchIDs[:0])
	v.prevTouchIDs = touchIDs
	if len(touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(touchIDs[0])
		v.SetPointer(float64(tx)/v.scale, float64(ty)/v.scale)
		return
	}
	// Layout reports the screen in device pixels, so cursor coordinates
	// come back in device pixels too.
	mx, my := ebiten.CursorPosition()
	v.SetPointer(float64(mx)/v.scale, float64(my)/v.scale)
}
