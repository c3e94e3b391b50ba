package honeycomb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "move", "x": 100, "y": 200},
			{"action": "sweep", "fromX": 0, "fromY": 10, "toX": 300, "toY": 10, "frames": 12},
			{"action": "wait", "frames": 3},
			{"action": "resize", "w": 640, "h": 480},
			{"action": "leave"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if st := runner.steps[2]; st.ToX != 300 || st.Frames != 12 {
		t.Errorf("step 2 mismatch: %+v", st)
	}
	if st := runner.steps[4]; st.W != 640 || st.H != 480 {
		t.Errorf("step 4 mismatch: %+v", st)
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `not json`, "parse test script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}]}`, `unknown action "click"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadTestScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.json")
	if err := os.WriteFile(path, []byte(`{"steps": [{"action": "leave"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTestScriptFile(path); err != nil {
		t.Errorf("LoadTestScriptFile: %v", err)
	}
	if _, err := LoadTestScriptFile(path + ".missing"); err == nil {
		t.Error("missing file should fail")
	}
}

func mustRunner(t *testing.T, data string) *TestRunner {
	t.Helper()
	r, err := LoadTestScript([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRunnerStepMove(t *testing.T) {
	e := newTestEngine(t, VariantGlowing)
	e.SetTestRunner(mustRunner(t, `{"steps": [{"action": "move", "x": 50, "y": 60}]}`))

	// Tick queues the move and consumes it in the same frame.
	e.Tick()
	if p := e.Viewport().Pointer(); p != (Vec2{X: 50, Y: 60}) {
		t.Errorf("pointer = %v, want (50, 60)", p)
	}
	// The runner finishes once its queued move has drained.
	e.Tick()
	if !e.testRunner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerWaitsForSweep(t *testing.T) {
	e := newTestEngine(t, VariantDynamic)
	r := mustRunner(t, `{"steps": [
		{"action": "sweep", "fromX": 0, "fromY": 50, "toX": 100, "toY": 50, "frames": 4},
		{"action": "leave"}
	]}`)
	e.SetTestRunner(r)

	for i := 0; i < 4; i++ {
		e.Tick()
		if !PointerPresent(e.Viewport().Pointer()) {
			t.Fatalf("frame %d: leave ran before the sweep finished", i)
		}
	}
	if e.Viewport().Pointer().X != 100 {
		t.Errorf("sweep ended at %v", e.Viewport().Pointer())
	}
	e.Tick()
	if PointerPresent(e.Viewport().Pointer()) {
		t.Error("leave step did not run")
	}
	e.Tick()
	if !r.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerWait(t *testing.T) {
	e := newTestEngine(t, VariantGlowing)
	r := mustRunner(t, `{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "move", "x": 10, "y": 10}
	]}`)
	e.SetTestRunner(r)

	for i := 0; i < 3; i++ {
		e.Tick()
	}
	if PointerPresent(e.Viewport().Pointer()) {
		t.Fatal("move ran during the wait")
	}
	e.Tick()
	if !PointerPresent(e.Viewport().Pointer()) {
		t.Error("move did not run after the wait")
	}
}

func TestRunnerResize(t *testing.T) {
	e := newTestEngine(t, VariantGlowing)
	field := e.Field()
	e.SetTestRunner(mustRunner(t, `{"steps": [{"action": "resize", "w": 640, "h": 480}]}`))
	e.Tick()
	if w, h := e.Viewport().Size(); w != 640 || h != 480 {
		t.Errorf("size = %v x %v", w, h)
	}
	if e.Field() == field {
		t.Error("resize step should regenerate the field")
	}
}

func TestRunnerScreenshotQueues(t *testing.T) {
	e := newTestEngine(t, VariantStatic)
	e.SetTestRunner(mustRunner(t, `{"steps": [{"action": "screenshot", "label": "first"}]}`))
	e.Tick()
	if len(e.screenshotQueue) != 1 || e.screenshotQueue[0] != "first" {
		t.Errorf("queue = %v", e.screenshotQueue)
	}
}
