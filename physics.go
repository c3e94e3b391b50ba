package honeycomb

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// PhysicsEngine moves seed points under a spring pulling each back to its
// rest position and an attraction toward the pointer. State is held as
// parallel slices indexed by seed.
type PhysicsEngine struct {
	cfg    PhysicsConfig
	spring harmonica.Spring

	rest []Vec2
	pos  []Vec2
	vel  []Vec2
}

// NewPhysicsEngine creates an engine with the given constants. Call
// Initialize before stepping.
func NewPhysicsEngine(cfg PhysicsConfig) *PhysicsEngine {
	e := &PhysicsEngine{}
	e.SetConfig(cfg)
	return e
}

// SetConfig replaces the constants without disturbing positions.
func (e *PhysicsEngine) SetConfig(cfg PhysicsConfig) {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.CutoffDistance <= 0 {
		cfg.CutoffDistance = DefaultPhysics().CutoffDistance
	}
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = 1
	}
	e.cfg = cfg
	// SpringStrength is a per-frame stiffness; the oscillator wants an
	// angular frequency in radians per second.
	omega := math.Sqrt(max(cfg.SpringStrength, 0)) * float64(cfg.FPS)
	e.spring = harmonica.NewSpring(harmonica.FPS(cfg.FPS), omega, max(cfg.SpringDampingRatio, 0))
}

// Config returns the current constants.
func (e *PhysicsEngine) Config() PhysicsConfig {
	return e.cfg
}

// Initialize captures rest positions, copies them as current positions and
// zeroes all velocities.
func (e *PhysicsEngine) Initialize(points []Vec2) {
	n := len(points)
	e.rest = append(e.rest[:0], points...)
	e.pos = append(e.pos[:0], points...)
	if cap(e.vel) < n {
		e.vel = make([]Vec2, n)
	}
	e.vel = e.vel[:n]
	clear(e.vel)
}

// Positions returns the current positions. MUST NOT be mutated.
func (e *PhysicsEngine) Positions() []Vec2 {
	return e.pos
}

// RestPositions returns the rest positions. MUST NOT be mutated.
func (e *PhysicsEngine) RestPositions() []Vec2 {
	return e.rest
}

// Velocities returns the current velocities. MUST NOT be mutated.
func (e *PhysicsEngine) Velocities() []Vec2 {
	return e.vel
}

// Reset puts every point back on its rest position with zero velocity.
func (e *PhysicsEngine) Reset() {
	copy(e.pos, e.rest)
	clear(e.vel)
}

// Step advances the simulation by one frame. pointer may be OffSurface, in
// which case only the spring acts.
func (e *PhysicsEngine) Step(pointer Vec2) {
	present := PointerPresent(pointer) && e.cfg.MouseRadius > 0
	for i := range e.pos {
		p := e.pos[i]
		var fx, fy float64
		if present {
			fx, fy = e.pointerForce(p, pointer)
		}

		switch e.cfg.Integrator {
		case IntegratorSpring:
			fps := float64(e.cfg.FPS)
			vx := e.vel[i].X + fx
			vy := e.vel[i].Y + fy
			nx, nvx := e.spring.Update(p.X, vx*fps, e.rest[i].X)
			ny, nvy := e.spring.Update(p.Y, vy*fps, e.rest[i].Y)
			e.pos[i] = Vec2{X: nx, Y: ny}
			e.vel[i] = Vec2{X: nvx / fps, Y: nvy / fps}

		default:
			sx := (e.rest[i].X - p.X) * e.cfg.SpringStrength
			sy := (e.rest[i].Y - p.Y) * e.cfg.SpringStrength
			v := Vec2{
				X: (e.vel[i].X + sx + fx) * e.cfg.Damping,
				Y: (e.vel[i].Y + sy + fy) * e.cfg.Damping,
			}
			e.vel[i] = v
			e.pos[i] = Vec2{X: p.X + v.X, Y: p.Y + v.Y}
		}
	}
}

// pointerForce is the attraction on a point at p. Inside MouseRadius its
// magnitude is MouseForce * (radius-d)/radius scaled by d clamped to
// [MinDistance, CutoffDistance] over CutoffDistance, which keeps the force
// finite as d approaches 0.
func (e *PhysicsEngine) pointerForce(p, pointer Vec2) (fx, fy float64) {
	dx := pointer.X - p.X
	dy := pointer.Y - p.Y
	d := math.Hypot(dx, dy)
	if d >= e.cfg.MouseRadius {
		return 0, 0
	}
	falloff := (e.cfg.MouseRadius - d) / e.cfg.MouseRadius
	dc := clamp(d, e.cfg.MinDistance, e.cfg.CutoffDistance)
	mag := e.cfg.MouseForce * falloff * dc / e.cfg.CutoffDistance
	if d < 1e-9 {
		return 0, 0
	}
	return dx / d * mag, dy / d * mag
}
