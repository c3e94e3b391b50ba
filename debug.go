package honeycomb

import (
	"fmt"
	"os"
	"time"
)

// debugLogInterval is how many drawn frames pass between stats lines.
const debugLogInterval = 60

// debugStats holds per-frame timings. Only logged when Config.Debug is set.
type debugStats struct {
	stepTime       time.Duration
	tessellateTime time.Duration
	sampleTime     time.Duration
	renderTime     time.Duration
	points         int
	cells          int
	drawn          uint64
}

func (s debugStats) total() time.Duration {
	return s.stepTime + s.tessellateTime + s.sampleTime + s.renderTime
}

// debugLog prints timing stats to stderr every debugLogInterval frames.
func (e *Engine) debugLog() {
	e.stats.drawn++
	if !e.cfg.Debug || e.stats.drawn%debugLogInterval != 0 {
		return
	}
	s := e.stats
	_, _ = fmt.Fprintf(os.Stderr,
		"[honeycomb] step: %v | tessellate: %v | sample: %v | render: %v | total: %v\n",
		s.stepTime, s.tessellateTime, s.sampleTime, s.renderTime, s.total())
	_, _ = fmt.Fprintf(os.Stderr,
		"[honeycomb] points: %d | cells drawn: %d | frames: %d\n",
		s.points, s.cells, e.driver.Frames())
}
