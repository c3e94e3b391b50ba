package honeycomb

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugStatsTotal(t *testing.T) {
	s := debugStats{
		stepTime:       time.Millisecond,
		tessellateTime: 2 * time.Millisecond,
		sampleTime:     3 * time.Millisecond,
		renderTime:     4 * time.Millisecond,
	}
	if s.total() != 10*time.Millisecond {
		t.Errorf("total = %v, want 10ms", s.total())
	}
}

func TestDebugLogInterval(t *testing.T) {
	cfg := testEngineConfig()
	cfg.Debug = true
	var e *Engine
	out := captureStderr(t, func() {
		e = NewEngine(cfg, VariantStatic, 400, 300)
	})
	defer e.Destroy()
	if !strings.Contains(out, "[honeycomb] field:") {
		t.Errorf("expected field line, got %q", out)
	}

	e.Start()
	e.Tick()
	c := &recordCanvas{w: 400, h: 300}
	out = captureStderr(t, func() {
		for i := 0; i < debugLogInterval-1; i++ {
			e.Draw(c)
		}
	})
	if out != "" {
		t.Errorf("logged before the interval: %q", out)
	}
	out = captureStderr(t, func() { e.Draw(c) })
	if !strings.Contains(out, "[honeycomb] step:") || !strings.Contains(out, "cells drawn:") {
		t.Errorf("expected stats lines, got %q", out)
	}
}

func TestDebugLogQuietWithoutDebug(t *testing.T) {
	e := newTestEngine(t, VariantStatic)
	e.Start()
	e.Tick()
	c := &recordCanvas{w: 400, h: 300}
	out := captureStderr(t, func() {
		for i := 0; i < debugLogInterval; i++ {
			e.Draw(c)
		}
	})
	if out != "" {
		t.Errorf("unexpected output %q", out)
	}
	if e.stats.drawn != debugLogInterval {
		t.Errorf("drawn = %d, want %d", e.stats.drawn, debugLogInterval)
	}
}
