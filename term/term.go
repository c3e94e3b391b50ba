// Package term hosts a honeycomb Engine in a terminal. Cells are painted
// with the upper half block, so every terminal cell shows two vertically
// stacked pixels: the top pixel as foreground and the bottom as background.
package term

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/honeycomb"
)

// DefaultUnit is the default number of logical units per terminal pixel.
const DefaultUnit = 6

const halfBlock = '▀'

// Host pumps an Engine on a tcell screen.
type Host struct {
	screen tcell.Screen
	engine *honeycomb.Engine
	canvas *honeycomb.RasterCanvas
	unit   float64

	cols, rows int
}

// New creates a host drawing e onto screen. unit is the number of logical
// units one terminal pixel covers; zero means DefaultUnit. screen must be
// initialized.
func New(screen tcell.Screen, e *honeycomb.Engine, unit float64) *Host {
	if unit <= 0 {
		unit = DefaultUnit
	}
	h := &Host{
		screen: screen,
		engine: e,
		canvas: honeycomb.NewRasterCanvas(0, 0, 1/unit),
		unit:   unit,
	}
	h.Resize()
	return h
}

// Engine returns the hosted engine.
func (h *Host) Engine() *honeycomb.Engine {
	return h.engine
}

// Image returns the pixels of the last drawn frame.
func (h *Host) Image() *image.RGBA {
	return h.canvas.Image()
}

// Resize re-reads the screen size and resizes the engine to match.
func (h *Host) Resize() {
	h.cols, h.rows = h.screen.Size()
	h.canvas.Resize(h.cols, h.rows*2, 1/h.unit)
	h.engine.Resize(float64(h.cols)*h.unit, float64(h.rows*2)*h.unit, 1)
}

// cellCenter converts a terminal cell to logical surface coordinates.
func (h *Host) cellCenter(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * h.unit, (float64(y) + 0.5) * 2 * h.unit
}

// HandleEvent applies one tcell event. It reports false when the event asks
// the host to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		if x < 0 || y < 0 || x >= h.cols || y >= h.rows {
			h.engine.ClearPointer()
			break
		}
		h.engine.SetPointer(h.cellCenter(x, y))
	case *tcell.EventFocus:
		if !ev.Focused {
			h.engine.ClearPointer()
		}
	case *tcell.EventResize:
		h.Resize()
		h.screen.Sync()
	}
	return true
}

// Frame advances the engine one frame, paints it and shows the screen.
func (h *Host) Frame() {
	h.engine.Tick()
	h.engine.Draw(h.canvas)
	h.blit()
	h.screen.Show()
}

// blit copies the raster into half-block cells.
func (h *Host) blit() {
	img := h.canvas.Image()
	for y := 0; y < h.rows; y++ {
		for x := 0; x < h.cols; x++ {
			top := rgbAt(img, x, 2*y)
			bottom := rgbAt(img, x, 2*y+1)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			h.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

func rgbAt(img *image.RGBA, x, y int) tcell.Color {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return tcell.ColorBlack
	}
	i := img.PixOffset(x, y)
	return tcell.NewRGBColor(int32(img.Pix[i]), int32(img.Pix[i+1]), int32(img.Pix[i+2]))
}

// Run starts the engine and pumps frames at fps until ctx is done or a quit
// key is pressed. The engine is destroyed on return.
func (h *Host) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	h.screen.EnableMouse()
	h.screen.EnableFocus()
	h.engine.Start()
	defer h.engine.Destroy()

	events := make(chan tcell.Event, 100)
	go func() {
		defer close(events)
		for {
			// PollEvent returns nil once the screen is finalized.
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("term: screen closed")
			}
			if !h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.Frame()
		}
	}
}
