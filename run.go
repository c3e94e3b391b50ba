package honeycomb

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS draws the FPS/TPS label.
	ShowFPS bool
	// Fixed disables window resizing.
	Fixed bool
	// ScreenshotDir overrides Engine.ScreenshotDir when non-empty.
	ScreenshotDir string
}

// Run opens a window, starts the engine's frame loop and blocks until the
// window is closed. The engine is destroyed on return.
func Run(e *Engine, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "honeycomb"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Fixed {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if fps := e.cfg.Physics.FPS; fps > 0 {
		ebiten.SetTPS(fps)
	}
	e.ShowFPS = cfg.ShowFPS
	if cfg.ScreenshotDir != "" {
		e.ScreenshotDir = cfg.ScreenshotDir
	}

	e.Resize(float64(cfg.Width), float64(cfg.Height), e.viewport.Scale())
	e.Start()
	defer e.Destroy()

	if err := ebiten.RunGame(e.Game()); err != nil {
		return fmt.Errorf("run %s: %w", cfg.Title, err)
	}
	return nil
}
