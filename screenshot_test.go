package honeycomb

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-sweep", "after-sweep"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	e := newTestEngine(t, VariantStatic)
	e.Screenshot("a")
	e.Screenshot("b")
	if len(e.screenshotQueue) != 2 || e.screenshotQueue[0] != "a" || e.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", e.screenshotQueue)
	}
}

func TestSaveScreenshot(t *testing.T) {
	e := newTestEngine(t, VariantStatic)
	e.ScreenshotDir = filepath.Join(t.TempDir(), "shots")

	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.NRGBA{R: 200, A: 255})
	e.Screenshot("queued")

	path, err := e.SaveScreenshot("final frame", img)
	if err != nil {
		t.Fatalf("SaveScreenshot: %v", err)
	}
	if !strings.HasSuffix(path, "_final_frame.png") {
		t.Errorf("path = %q", path)
	}
	entries, err := os.ReadDir(e.ScreenshotDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("files = %d, want 2 (queued + final)", len(entries))
	}
	if len(e.screenshotQueue) != 0 {
		t.Error("queue not drained")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v", b)
	}
	if r, _, _, _ := decoded.At(1, 1).RGBA(); r>>8 != 200 {
		t.Errorf("pixel red = %d, want 200", r>>8)
	}
}

func TestSaveScreenshotBadDir(t *testing.T) {
	e := newTestEngine(t, VariantStatic)
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	e.ScreenshotDir = filepath.Join(file, "sub")
	if _, err := e.SaveScreenshot("x", image.NewNRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected error when the directory cannot be created")
	}
}
