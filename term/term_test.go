package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/honeycomb"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func testConfig() honeycomb.Config {
	cfg := honeycomb.DefaultConfig()
	cfg.Seed = 7
	cfg.NumPoints = 40
	cfg.IntroMs = 0
	return cfg
}

func TestHostSizesEngineFromScreen(t *testing.T) {
	screen := newSimScreen(t, 40, 12)
	e := honeycomb.NewEngine(testConfig(), honeycomb.VariantStatic, 1, 1)
	h := New(screen, e, 4)

	w, ht := e.Viewport().Size()
	if w != 160 || ht != 96 {
		t.Errorf("engine size = (%v, %v), want (160, 96)", w, ht)
	}
	b := h.Image().Bounds()
	if b.Dx() != 40 || b.Dy() != 24 {
		t.Errorf("raster = %v, want 40x24", b)
	}
}

func TestHostFramePaintsHalfBlocks(t *testing.T) {
	screen := newSimScreen(t, 20, 8)
	e := honeycomb.NewEngine(testConfig(), honeycomb.VariantStatic, 1, 1)
	e.ClearColor = honeycomb.Color{R: 1, A: 1}
	h := New(screen, e, 4)
	e.Start()
	h.Frame()

	painted := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 20; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			if r == halfBlock {
				painted++
			}
		}
	}
	if painted != 20*8 {
		t.Errorf("painted %d cells, want %d", painted, 20*8)
	}
	if len(e.Samples()) == 0 {
		t.Error("static engine should have computed its frame")
	}
}

func TestHostMouseMovesPointer(t *testing.T) {
	screen := newSimScreen(t, 20, 8)
	e := honeycomb.NewEngine(testConfig(), honeycomb.VariantGlowing, 1, 1)
	h := New(screen, e, 4)

	h.HandleEvent(tcell.NewEventMouse(5, 2, tcell.ButtonNone, tcell.ModNone))
	p := e.Viewport().Pointer()
	if p.X != 22 || p.Y != 20 {
		t.Errorf("pointer = %+v, want (22, 20)", p)
	}

	h.HandleEvent(tcell.NewEventFocus(false))
	if honeycomb.PointerPresent(e.Viewport().Pointer()) {
		t.Error("losing focus should clear the pointer")
	}
}

func TestHostQuitKeys(t *testing.T) {
	screen := newSimScreen(t, 10, 4)
	e := honeycomb.NewEngine(testConfig(), honeycomb.VariantStatic, 1, 1)
	h := New(screen, e, 0)

	tests := []struct {
		name string
		ev   tcell.Event
		want bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), false},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.HandleEvent(tt.ev); got != tt.want {
				t.Errorf("HandleEvent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHostResizeRegeneratesField(t *testing.T) {
	screen := newSimScreen(t, 20, 8)
	e := honeycomb.NewEngine(testConfig(), honeycomb.VariantStatic, 1, 1)
	h := New(screen, e, 4)
	before := e.Field()

	screen.SetSize(30, 10)
	h.HandleEvent(tcell.NewEventResize(30, 10))

	if e.Field() == before {
		t.Error("resize should swap in a new field")
	}
	if w, ht := e.Viewport().Size(); w != 120 || ht != 80 {
		t.Errorf("engine size = (%v, %v), want (120, 80)", w, ht)
	}
}
