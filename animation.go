package honeycomb

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// IntroFade eases a value from 1 down to 0 over a fixed duration. The engine
// uses it as the vibrant-palette weight when an animated surface starts, so
// the field opens saturated and settles into the muted palette.
//
// There is no global animation manager; the owner calls Update each frame.
type IntroFade struct {
	tween *gween.Tween
	value float64
	Done  bool
}

// NewIntroFade creates a fade over d using fn. A non-positive d yields a
// fade that is already done and reads 0.
func NewIntroFade(d time.Duration, fn ease.TweenFunc) *IntroFade {
	if d <= 0 {
		return &IntroFade{Done: true}
	}
	if fn == nil {
		fn = ease.OutCubic
	}
	return &IntroFade{
		tween: gween.New(1, 0, float32(d.Seconds()), fn),
		value: 1,
	}
}

// Update advances the fade by dt seconds and returns the new value.
func (f *IntroFade) Update(dt float32) float64 {
	if f.Done {
		return f.value
	}
	v, finished := f.tween.Update(dt)
	f.value = clamp01(float64(v))
	if finished {
		f.value = 0
		f.Done = true
	}
	return f.value
}

// Value returns the current weight in [0, 1].
func (f *IntroFade) Value() float64 {
	return f.value
}
