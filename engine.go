package honeycomb

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// fieldState is everything derived from one point field. Regeneration
// builds a new fieldState and swaps it in whole, so a frame never sees the
// positions of one field with the cells of another.
type fieldState struct {
	field   *PointField
	physics *PhysicsEngine // nil unless VariantDynamic

	cells      [][]Vec2
	edgeDist   []float64
	cellsValid bool
}

// positions returns the points the current frame is drawn from.
func (s *fieldState) positions() []Vec2 {
	if s.physics != nil {
		return s.physics.Positions()
	}
	return s.field.Rest
}

// Engine is one honeycomb surface: a point field, its colors and motion,
// and the frame loop that paints it. The variant fixes which of the three
// behaviors it runs. Game adapts it for ebiten; terminal and headless hosts
// drive it through Tick and Draw instead.
type Engine struct {
	variant Variant
	cfg     Config
	rng     *rand.Rand

	viewport *ViewportAdapter
	clock    Clock
	state    *fieldState

	colors   *ColorModel
	renderer *Renderer
	tess     Tessellator
	samples  []ColorSample

	queue  FrameQueue
	driver *AnimationDriver
	intro  *IntroFade

	// Static variant caches its single frame here.
	staticTex   *RenderTexture
	staticDirty bool
	canvas      *EbitenCanvas

	// ClearColor fills the surface before cells are drawn.
	ClearColor Color
	// ScreenshotDir is where queued screenshots are written. Defaults to
	// "screenshots".
	ScreenshotDir string
	// ShowFPS draws the FPS/TPS label in the top-left corner.
	ShowFPS bool

	screenshotQueue []string
	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	stats           debugStats
	started         bool
	destroyed       bool
}

// engineClock lets SetClock take effect on an existing color model.
type engineClock struct{ e *Engine }

func (c engineClock) Now() time.Time { return c.e.clock.Now() }

// NewEngine creates an engine for a width x height logical surface. The
// field is generated immediately; call Start to begin animating.
func NewEngine(cfg Config, variant Variant, width, height float64) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		variant:       variant,
		cfg:           cfg,
		rng:           newRand(cfg.Seed),
		viewport:      NewViewportAdapter(width, height, 1),
		clock:         SystemClock{},
		renderer:      NewRenderer(cfg.Muted, cfg.Debug),
		ClearColor:    ColorBlack,
		ScreenshotDir: "screenshots",
	}
	e.colors = NewColorModel(cfg.Muted, cfg.Vibrant, cfg.Glow, cfg.Seed, engineClock{e})
	e.driver = NewAnimationDriver(&e.queue)
	e.regenerate()
	return e
}

// SetClock replaces the time source used by the glow model. nil restores
// the wall clock.
func (e *Engine) SetClock(c Clock) {
	if c == nil {
		c = SystemClock{}
	}
	e.clock = c
}

// Variant returns the engine's variant.
func (e *Engine) Variant() Variant { return e.variant }

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// Viewport returns the viewport adapter.
func (e *Engine) Viewport() *ViewportAdapter { return e.viewport }

// Field returns the current point field.
func (e *Engine) Field() *PointField {
	if e.state == nil {
		return nil
	}
	return e.state.field
}

// Physics returns the physics engine, or nil for non-dynamic variants.
func (e *Engine) Physics() *PhysicsEngine {
	if e.state == nil {
		return nil
	}
	return e.state.physics
}

// ColorModel returns the engine's color model.
func (e *Engine) ColorModel() *ColorModel { return e.colors }

// Positions returns the points the last frame was computed from.
func (e *Engine) Positions() []Vec2 {
	if e.state == nil {
		return nil
	}
	return e.state.positions()
}

// Cells returns the cell polygons of the last computed frame.
func (e *Engine) Cells() [][]Vec2 {
	if e.state == nil {
		return nil
	}
	return e.state.cells
}

// Samples returns the colors of the last computed frame. The slice is
// reused by the next frame.
func (e *Engine) Samples() []ColorSample { return e.samples }

// Running reports whether the frame loop is scheduled.
func (e *Engine) Running() bool { return e.driver.Active() }

// Frames returns how many frames the loop has run.
func (e *Engine) Frames() uint64 { return e.driver.Frames() }

// Destroyed reports whether Destroy has been called.
func (e *Engine) Destroyed() bool { return e.destroyed }

// regenerate rebuilds the point field for the current viewport and swaps it
// in together with fresh physics and color state.
func (e *Engine) regenerate() {
	w, h := e.viewport.Size()
	field := GeneratePointField(w, h, e.cfg.NumPoints, e.cfg.NoiseAmount, e.cfg.MarginRatio, e.rng)
	st := &fieldState{field: field}
	if e.variant == VariantDynamic {
		st.physics = NewPhysicsEngine(e.cfg.Physics)
		st.physics.Initialize(field.Rest)
	}
	e.colors.Reset(field.Len())
	e.state = st
	e.samples = nil
	e.staticDirty = true

	if e.cfg.Debug {
		_, _ = fmt.Fprintf(os.Stderr, "[honeycomb] field: %d points, spacing %.1f, %d rows (%s)\n",
			field.Len(), field.Spacing, field.Rows, e.variant)
	}
	// The static loop has already stopped; recompute its one frame now.
	if e.variant == VariantStatic && e.started {
		e.Step()
	}
}

// Resize updates the surface size and device scale. Any change regenerates
// the field before the next frame.
func (e *Engine) Resize(width, height, scale float64) {
	if e.destroyed {
		return
	}
	if e.viewport.Resize(width, height, scale) {
		e.regenerate()
	}
}

// SetPointer records the pointer position in surface-local logical units.
func (e *Engine) SetPointer(x, y float64) {
	e.viewport.SetPointer(x, y)
}

// ClearPointer marks the pointer as off the surface.
func (e *Engine) ClearPointer() {
	e.viewport.ClearPointer()
}

// Apply merges a partial configuration. Changes to the field shape
// regenerate the field; everything else takes effect on the next frame.
func (e *Engine) Apply(p ConfigPatch) {
	if e.destroyed {
		return
	}
	cfg, regen := p.Apply(e.cfg)
	e.cfg = cfg.withDefaults()
	if regen && p.Seed != nil {
		// Same generators NewEngine would build for this seed.
		e.rng = newRand(e.cfg.Seed)
		e.colors = NewColorModel(e.cfg.Muted, e.cfg.Vibrant, e.cfg.Glow, e.cfg.Seed, engineClock{e})
	} else {
		e.colors.SetPalettes(e.cfg.Muted, e.cfg.Vibrant)
		e.colors.SetGlow(e.cfg.Glow)
	}
	e.renderer.SetPalette(e.cfg.Muted)
	e.renderer.SetDebug(e.cfg.Debug)
	if e.state != nil && e.state.physics != nil {
		e.state.physics.SetConfig(e.cfg.Physics)
	}
	if regen {
		e.regenerate()
		return
	}
	e.staticDirty = true
	if e.variant == VariantStatic && e.started {
		// Colors changed, cells did not.
		e.samples = nil
		e.Step()
	}
}

// ApplyJSON parses a JSON patch against the active configuration and
// applies it.
func (e *Engine) ApplyJSON(data []byte) error {
	p, err := ParsePatch(data, e.cfg)
	if err != nil {
		return err
	}
	e.Apply(p)
	return nil
}

// Start begins the frame loop. An earlier loop is cancelled first, so
// calling Start twice still runs one callback per frame. The static variant
// computes its single frame and stops itself.
func (e *Engine) Start() {
	e.StartOn(&e.queue)
}

// StartOn is Start with an external scheduler in place of the engine's own
// frame queue.
func (e *Engine) StartOn(sched FrameScheduler) {
	if e.destroyed {
		return
	}
	e.driver.Stop()
	if sched != e.driver.sched {
		e.driver = NewAnimationDriver(sched)
	}
	e.started = true
	if e.variant != VariantStatic {
		e.intro = NewIntroFade(time.Duration(e.cfg.IntroMs*float64(time.Millisecond)), ease.OutCubic)
	}
	e.driver.Start(e.frame)
}

// Stop cancels the frame loop. Safe to call at any time.
func (e *Engine) Stop() {
	e.driver.Stop()
}

// Destroy stops the loop and releases the field and cached images. The
// engine ignores every later call except the accessors.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.Stop()
	if e.staticTex != nil {
		e.staticTex.Dispose()
		e.staticTex = nil
	}
	e.state = nil
	e.samples = nil
	e.injectQueue = nil
	e.screenshotQueue = nil
	e.destroyed = true
}

// frame is the loop callback.
func (e *Engine) frame() {
	e.Step()
	if e.variant == VariantStatic {
		e.driver.Stop()
	}
}

// Step computes one frame: physics for the dynamic variant, glow for the
// glowing variant, then cells and colors. Rendering is left to Draw.
func (e *Engine) Step() {
	if e.destroyed || e.state == nil {
		return
	}
	st := e.state
	if st.field.Len() == 0 {
		st.cells, st.edgeDist, e.samples = nil, nil, nil
		return
	}

	start := time.Now()
	pointer := e.viewport.Pointer()
	var introWeight float64
	if e.intro != nil {
		introWeight = e.intro.Update(e.frameDelta())
	}

	switch e.variant {
	case VariantDynamic:
		st.physics.Step(pointer)
		st.cellsValid = false
	case VariantStatic:
		if !st.cellsValid || e.samples == nil {
			e.staticDirty = true
		}
	}
	t0 := time.Now()
	e.stats.stepTime = t0.Sub(start)

	pts := st.positions()
	if !st.cellsValid {
		st.cells = e.tess.Tessellate(pts, st.field.Bounds())
		st.edgeDist = EdgeDistances(st.edgeDist, pts, st.cells)
		st.cellsValid = true
	}
	t1 := time.Now()
	e.stats.tessellateTime = t1.Sub(t0)

	switch e.variant {
	case VariantStatic:
		if e.samples == nil {
			e.samples = e.colors.SampleStatic(pts, st.edgeDist)
		}
	case VariantDynamic:
		e.samples = e.colors.SampleMorph(pts, st.edgeDist, introWeight)
	case VariantGlowing:
		e.samples = e.colors.SampleGlow(pts, pointer, st.edgeDist, introWeight)
	}
	e.stats.sampleTime = time.Since(t1)
	e.stats.points = len(pts)
}

func (e *Engine) frameDelta() float32 {
	fps := e.cfg.Physics.FPS
	if fps <= 0 {
		fps = 60
	}
	return float32(1 / float64(fps))
}

// Draw paints the last computed frame onto c.
func (e *Engine) Draw(c Canvas) {
	if e.destroyed {
		return
	}
	start := time.Now()
	c.Clear(e.ClearColor)
	if e.state != nil && len(e.samples) > 0 {
		e.stats.cells = e.renderer.RenderCells(c, e.state.cells, e.samples)
		if e.renderer.Debug() {
			e.renderer.RenderDebug(c, e.debugOverlay())
		}
	}
	c.Flush()
	e.stats.renderTime = time.Since(start)
	e.debugLog()
}

func (e *Engine) debugOverlay() DebugOverlay {
	o := DebugOverlay{
		Positions: e.state.positions(),
		Rest:      e.state.field.Rest,
		Pointer:   e.viewport.Pointer(),
	}
	switch e.variant {
	case VariantDynamic:
		o.Radius = e.cfg.Physics.MouseRadius
	case VariantGlowing:
		o.Radius = e.cfg.Glow.GlowRadius
	}
	return o
}

// Tick runs one host frame without ebiten: it applies scripted input and
// runs the callbacks scheduled on the engine's frame queue.
func (e *Engine) Tick() {
	if e.destroyed {
		return
	}
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.processInjectedInput()
	e.queue.RunFrame()
}

// --- ebiten.Game ---

// Update implements ebiten.Game.
func (e *Engine) Update() error {
	if e.destroyed {
		return ebiten.Termination
	}
	e.viewport.Poll()
	e.Tick()
	return nil
}

// drawScreen paints onto the ebiten screen. The static variant paints into
// a cached texture once and blits it on later frames.
func (e *Engine) drawScreen(screen *ebiten.Image) {
	scale := e.viewport.Scale()
	if e.variant == VariantStatic {
		b := screen.Bounds()
		if e.staticTex == nil {
			e.staticTex = NewRenderTexture(b.Dx(), b.Dy())
			e.staticDirty = true
		} else if e.staticTex.Resize(b.Dx(), b.Dy()) {
			e.staticDirty = true
		}
		e.refreshStatic(e.staticTex.Canvas(scale))
		e.staticTex.DrawTo(screen)
	} else {
		if e.canvas == nil {
			e.canvas = NewEbitenCanvas(screen, scale)
		} else {
			e.canvas.Reset(screen, scale)
		}
		e.Draw(e.canvas)
	}
	if e.ShowFPS || e.cfg.Debug {
		drawFPS(screen, e.stats)
	}
	e.flushScreenshots(screen)
}

// refreshStatic repaints the cached static frame onto c when it is out of
// date and reports whether it did. An empty field repaints as a cleared
// surface.
func (e *Engine) refreshStatic(c Canvas) bool {
	if !e.staticDirty {
		return false
	}
	e.Draw(c)
	e.staticDirty = false
	return true
}

// ebitenGame adapts Engine to ebiten.Game; Engine's own Draw takes a Canvas.
type ebitenGame struct {
	*Engine
}

// Draw implements ebiten.Game.
func (g ebitenGame) Draw(screen *ebiten.Image) {
	g.drawScreen(screen)
}

// Layout implements ebiten.Game.
func (g ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// LayoutF implements ebiten.LayoutFer. The screen is laid out in device
// pixels; the engine keeps working in logical units.
func (g ebitenGame) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	g.Resize(outsideWidth, outsideHeight, scale)
	return outsideWidth * scale, outsideHeight * scale
}

// Game returns an ebiten.Game that drives this engine.
func (e *Engine) Game() ebiten.Game {
	return ebitenGame{e}
}
