package honeycomb

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme selects light or dark palette presets.
type Theme uint8

const (
	ThemeDark Theme = iota
	ThemeLight
)

// String returns "dark" or "light".
func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// MarshalText implements encoding.TextMarshaler.
func (t Theme) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Theme) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "dark", "":
		*t = ThemeDark
	case "light":
		*t = ThemeLight
	default:
		return fmt.Errorf("unknown theme %q", b)
	}
	return nil
}

// Integrator selects how the physics engine advances spring-back motion.
type Integrator uint8

const (
	// IntegratorEuler applies spring, pointer and damping with one forward
	// Euler step per frame.
	IntegratorEuler Integrator = iota
	// IntegratorSpring solves spring-back with a damped harmonic oscillator
	// and adds the pointer force as a velocity impulse.
	IntegratorSpring
)

func (i Integrator) String() string {
	if i == IntegratorSpring {
		return "spring"
	}
	return "euler"
}

// MarshalText implements encoding.TextMarshaler.
func (i Integrator) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Integrator) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "euler", "":
		*i = IntegratorEuler
	case "spring", "harmonica":
		*i = IntegratorSpring
	default:
		return fmt.Errorf("unknown integrator %q", b)
	}
	return nil
}

// Channel is a base value plus the amount coherent noise may move it.
type Channel struct {
	Base      float64 `json:"base"`
	Variation float64 `json:"variation"`
}

// Palette describes how one family of cell colors is derived. Hue is in
// degrees, saturation and lightness in [0, 100].
type Palette struct {
	Hue        Channel `json:"hue"`
	Saturation Channel `json:"saturation"`
	Lightness  Channel `json:"lightness"`

	// SaturationRange and LightnessRange clamp the derived channels.
	// A zero range means [0, 100].
	SaturationRange Range `json:"saturationRange"`
	LightnessRange  Range `json:"lightnessRange"`

	// LightnessOffset is the range of the per-cell random lightness offset
	// drawn once per seed point.
	LightnessOffset Range `json:"lightnessOffset"`

	// Shadow is the blend target, as "#rrggbb" or "hsl(h, s%, l%)".
	// Unparseable values fall back to DefaultShadow.
	Shadow string `json:"shadow"`
	// Edge is the stroke color in the same formats; EdgeAlpha is its opacity.
	Edge      string  `json:"edge"`
	EdgeAlpha float64 `json:"edgeAlpha"`

	StrokeWidth      float64 `json:"strokeWidth"`
	InnerScale       float64 `json:"innerScale"`
	OuterBlendOffset float64 `json:"outerBlendOffset"`
	NoiseScale       float64 `json:"noiseScale"`

	// EdgeBlend adds extra shadow blend to cells whose seed sits close to a
	// cell edge. Distances at or beyond EdgeDistance contribute nothing.
	EdgeBlend    float64 `json:"edgeBlend"`
	EdgeDistance float64 `json:"edgeDistance"`
}

// PhysicsConfig holds the spring/pointer simulation constants. Forces are
// per-frame velocity deltas.
type PhysicsConfig struct {
	MouseForce     float64 `json:"mouseForce"`
	MouseRadius    float64 `json:"mouseRadius"`
	SpringStrength float64 `json:"springStrength"`
	Damping        float64 `json:"damping"`
	CutoffDistance float64 `json:"cutoffDistance"`
	MinDistance    float64 `json:"minDistance"`

	Integrator Integrator `json:"integrator"`
	// SpringDampingRatio is only used by IntegratorSpring.
	SpringDampingRatio float64 `json:"springDampingRatio"`
	// FPS is the frame rate the spring integrator assumes. Zero means 60.
	FPS int `json:"fps"`
}

// GlowConfig holds the per-cell glow state machine constants.
type GlowConfig struct {
	GlowRadius       float64 `json:"glowRadius"`
	ActivationChance float64 `json:"activationChance"`
	// GlowSpeed and FadeSpeed are per-frame intensity deltas.
	GlowSpeed float64 `json:"glowSpeed"`
	FadeSpeed float64 `json:"fadeSpeed"`
	// Boost is the range added to a cell's target on activation.
	Boost Range `json:"boost"`
	// FadeDelayMs is the range of the re-armed fade deadline, in milliseconds.
	FadeDelayMs Range `json:"fadeDelayMs"`
	// SampleIntervalMs is the minimum time between activation checks of one cell.
	SampleIntervalMs float64 `json:"sampleIntervalMs"`
}

// FadeDelay returns the fade delay range as durations.
func (g GlowConfig) FadeDelay() (min, max time.Duration) {
	return msToDuration(g.FadeDelayMs.Min), msToDuration(g.FadeDelayMs.Max)
}

// SampleInterval returns the activation sampling interval.
func (g GlowConfig) SampleInterval() time.Duration {
	return msToDuration(g.SampleIntervalMs)
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// Config is the configuration bundle an Engine is created with.
type Config struct {
	// NumPoints is the target seed count over the margin-extended area.
	NumPoints int `json:"numPoints"`
	// NoiseAmount is the lattice jitter as a fraction of hex spacing.
	NoiseAmount float64 `json:"noiseAmount"`
	// MarginRatio extends the field beyond the viewport by
	// max(width, height) * MarginRatio on every side.
	MarginRatio float64 `json:"marginRatio"`
	// Seed makes generation reproducible. Zero picks a random seed.
	Seed uint64 `json:"seed"`
	// IntroMs is the length of the vibrant-to-muted fade played when an
	// animated engine starts. Zero disables it.
	IntroMs float64 `json:"introMs"`

	Theme   Theme         `json:"theme"`
	Muted   Palette       `json:"palette"`
	Vibrant Palette       `json:"vibrantPalette"`
	Physics PhysicsConfig `json:"physics"`
	Glow    GlowConfig    `json:"glow"`

	Debug bool `json:"debug"`
}

// DefaultShadow is the neutral shadow used when a palette's shadow color
// cannot be parsed.
var DefaultShadow = colorful.Hsl(220, 0.12, 0.08)

const (
	defaultNumPoints   = 220
	defaultNoiseAmount = 0.3
	defaultMarginRatio = 0.1
	defaultIntroMs     = 900
)

// DefaultConfig returns the dark-theme defaults.
func DefaultConfig() Config {
	return ThemeConfig(ThemeDark)
}

// ThemeConfig returns the defaults for the given theme.
func ThemeConfig(theme Theme) Config {
	return Config{
		NumPoints:   defaultNumPoints,
		NoiseAmount: defaultNoiseAmount,
		MarginRatio: defaultMarginRatio,
		IntroMs:     defaultIntroMs,
		Theme:       theme,
		Muted:       MutedPalette(theme),
		Vibrant:     VibrantPalette(theme),
		Physics:     DefaultPhysics(),
		Glow:        DefaultGlow(),
	}
}

// Lightness clamps for the vibrant palette. Dark surfaces need a higher floor
// so glowing cells do not sink into the background; light surfaces need a
// lower ceiling so they do not wash out. Tunable, not load-bearing.
var (
	VibrantLightnessDark  = Range{Min: 38, Max: 62}
	VibrantLightnessLight = Range{Min: 45, Max: 72}
)

// MutedPalette returns the resting palette for a theme.
func MutedPalette(theme Theme) Palette {
	p := Palette{
		Hue:              Channel{Base: 222, Variation: 14},
		Saturation:       Channel{Base: 22, Variation: 8},
		Lightness:        Channel{Base: 20, Variation: 7},
		LightnessRange:   Range{Min: 8, Max: 38},
		LightnessOffset:  Range{Min: -3, Max: 3},
		Shadow:           "#0b0d12",
		Edge:             "#000000",
		EdgeAlpha:        0.35,
		StrokeWidth:      1.5,
		InnerScale:       0.86,
		OuterBlendOffset: 0.22,
		NoiseScale:       260,
		EdgeBlend:        0,
		EdgeDistance:     24,
	}
	if theme == ThemeLight {
		p.Saturation = Channel{Base: 18, Variation: 6}
		p.Lightness = Channel{Base: 88, Variation: 5}
		p.LightnessRange = Range{Min: 76, Max: 97}
		p.Shadow = "#c4cad6"
		p.Edge = "#ffffff"
		p.EdgeAlpha = 0.5
	}
	return p
}

// VibrantPalette returns the glow palette for a theme.
func VibrantPalette(theme Theme) Palette {
	p := MutedPalette(theme)
	p.Hue = Channel{Base: 262, Variation: 38}
	p.Saturation = Channel{Base: 72, Variation: 14}
	p.Lightness = Channel{Base: 50, Variation: 10}
	p.LightnessRange = VibrantLightnessDark
	if theme == ThemeLight {
		p.LightnessRange = VibrantLightnessLight
		p.Lightness.Base = 60
	}
	return p
}

// DefaultPhysics returns the default spring/pointer constants.
func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		MouseForce:         0.6,
		MouseRadius:        180,
		SpringStrength:     0.02,
		Damping:            0.9,
		CutoffDistance:     120,
		MinDistance:        10,
		SpringDampingRatio: 0.55,
		FPS:                60,
	}
}

// DefaultGlow returns the default glow constants.
func DefaultGlow() GlowConfig {
	return GlowConfig{
		GlowRadius:       160,
		ActivationChance: 0.35,
		GlowSpeed:        0.04,
		FadeSpeed:        0.015,
		Boost:            Range{Min: 0.35, Max: 0.7},
		FadeDelayMs:      Range{Min: 400, Max: 1400},
		SampleIntervalMs: 100,
	}
}

// withDefaults fills zero-valued fields that have no meaningful zero.
// NumPoints and NoiseAmount are left alone: zero is a valid request.
func (c Config) withDefaults() Config {
	if c.MarginRatio < 0 {
		c.MarginRatio = 0
	}
	if c.IntroMs < 0 {
		c.IntroMs = 0
	}
	c.Muted = c.Muted.withDefaults()
	c.Vibrant = c.Vibrant.withDefaults()
	if c.Physics.CutoffDistance <= 0 {
		c.Physics.CutoffDistance = DefaultPhysics().CutoffDistance
	}
	if c.Physics.MinDistance <= 0 {
		c.Physics.MinDistance = 1
	}
	if c.Physics.MinDistance > c.Physics.CutoffDistance {
		c.Physics.MinDistance = c.Physics.CutoffDistance
	}
	if c.Physics.FPS <= 0 {
		c.Physics.FPS = 60
	}
	if c.Glow.Boost.Max < c.Glow.Boost.Min {
		c.Glow.Boost.Min, c.Glow.Boost.Max = c.Glow.Boost.Max, c.Glow.Boost.Min
	}
	if c.Glow.FadeDelayMs.Max < c.Glow.FadeDelayMs.Min {
		c.Glow.FadeDelayMs.Min, c.Glow.FadeDelayMs.Max = c.Glow.FadeDelayMs.Max, c.Glow.FadeDelayMs.Min
	}
	return c
}

func (p Palette) withDefaults() Palette {
	if p.SaturationRange == (Range{}) {
		p.SaturationRange = Range{Min: 0, Max: 100}
	}
	if p.LightnessRange == (Range{}) {
		p.LightnessRange = Range{Min: 0, Max: 100}
	}
	if p.NoiseScale <= 0 {
		p.NoiseScale = 260
	}
	if p.InnerScale <= 0 || p.InnerScale > 1 {
		p.InnerScale = 0.86
	}
	if p.EdgeAlpha <= 0 {
		p.EdgeAlpha = 1
	}
	return p
}

// LoadConfig parses a JSON configuration. Fields missing from the document
// keep their DefaultConfig (or ThemeConfig, when "theme" is set) values.
func LoadConfig(jsonData []byte) (Config, error) {
	var themeOnly struct {
		Theme Theme `json:"theme"`
	}
	if err := json.Unmarshal(jsonData, &themeOnly); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg := ThemeConfig(themeOnly.Theme)
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads and parses a JSON config file. An empty path yields
// DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return LoadConfig(data)
}

// ConfigPatch replaces parts of a running engine's Config. Nil fields are
// left unchanged and a non-nil section replaces the whole section.
// ParsePatch merges partial JSON sections into the current values.
type ConfigPatch struct {
	NumPoints   *int     `json:"numPoints,omitempty"`
	NoiseAmount *float64 `json:"noiseAmount,omitempty"`
	MarginRatio *float64 `json:"marginRatio,omitempty"`
	Seed        *uint64  `json:"seed,omitempty"`

	Muted   *Palette       `json:"palette,omitempty"`
	Vibrant *Palette       `json:"vibrantPalette,omitempty"`
	Physics *PhysicsConfig `json:"physics,omitempty"`
	Glow    *GlowConfig    `json:"glow,omitempty"`
	Debug   *bool          `json:"debug,omitempty"`
}

// ParsePatch decodes a JSON config patch against base. Sections present in
// the document ("palette", "glow", ...) are decoded on top of base's values,
// so a patch naming one field of a section keeps that section's other fields.
func ParsePatch(jsonData []byte, base Config) (ConfigPatch, error) {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(jsonData, &present); err != nil {
		return ConfigPatch{}, fmt.Errorf("parse config patch: %w", err)
	}
	muted, vibrant := base.Muted, base.Vibrant
	physics, glow := base.Physics, base.Glow
	p := ConfigPatch{Muted: &muted, Vibrant: &vibrant, Physics: &physics, Glow: &glow}
	if err := json.Unmarshal(jsonData, &p); err != nil {
		return ConfigPatch{}, fmt.Errorf("parse config patch: %w", err)
	}
	if _, ok := present["palette"]; !ok {
		p.Muted = nil
	}
	if _, ok := present["vibrantPalette"]; !ok {
		p.Vibrant = nil
	}
	if _, ok := present["physics"]; !ok {
		p.Physics = nil
	}
	if _, ok := present["glow"]; !ok {
		p.Glow = nil
	}
	return p, nil
}

// Apply returns cfg with the patch applied. regenerate reports whether a
// geometry field changed and the point field must be rebuilt.
func (p ConfigPatch) Apply(cfg Config) (out Config, regenerate bool) {
	if p.NumPoints != nil && *p.NumPoints != cfg.NumPoints {
		cfg.NumPoints = *p.NumPoints
		regenerate = true
	}
	if p.NoiseAmount != nil && *p.NoiseAmount != cfg.NoiseAmount {
		cfg.NoiseAmount = *p.NoiseAmount
		regenerate = true
	}
	if p.MarginRatio != nil && *p.MarginRatio != cfg.MarginRatio {
		cfg.MarginRatio = *p.MarginRatio
		regenerate = true
	}
	if p.Seed != nil && *p.Seed != cfg.Seed {
		cfg.Seed = *p.Seed
		regenerate = true
	}
	if p.Muted != nil {
		cfg.Muted = *p.Muted
	}
	if p.Vibrant != nil {
		cfg.Vibrant = *p.Vibrant
	}
	if p.Physics != nil {
		cfg.Physics = *p.Physics
	}
	if p.Glow != nil {
		cfg.Glow = *p.Glow
	}
	if p.Debug != nil {
		cfg.Debug = *p.Debug
	}
	return cfg, regenerate
}

// resolveColor parses "#rgb", "#rrggbb" or "hsl(h, s%, l%)". Anything else
// yields fallback.
func resolveColor(s string, fallback colorful.Color) colorful.Color {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return fallback
		}
		return c
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "hsl(") {
		var h, sat, l float64
		inner := strings.NewReplacer("hsl(", "", ")", "", "%", "", ",", " ").Replace(lower)
		if n, err := fmt.Sscan(inner, &h, &sat, &l); err != nil || n != 3 {
			return fallback
		}
		return colorful.Hsl(h, clamp01(sat/100), clamp01(l/100))
	}
	return fallback
}
