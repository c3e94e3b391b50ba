package honeycomb

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawFPS prints FPS, TPS and the last frame's cell count in the top-left
// corner using ebitenutil.DebugPrintAt.
func drawFPS(screen *ebiten.Image, stats debugStats) {
	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\ncells: %d (%v)",
		ebiten.ActualFPS(), ebiten.ActualTPS(), stats.cells, stats.total().Round(10_000))
	ebitenutil.DebugPrintAt(screen, msg, 4, 4)
}
