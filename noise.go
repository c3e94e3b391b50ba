package honeycomb

import "github.com/aquilax/go-perlin"

// Perlin parameters: alpha is the weight falloff between octaves, beta the
// frequency step, octaves the number of layers summed.
const (
	noiseAlpha   = 2
	noiseBeta    = 2
	noiseOctaves = 3
)

// noiseField is a deterministic 2D coherent noise source returning values
// in [-1, 1].
type noiseField struct {
	p *perlin.Perlin
}

func newNoiseField(seed int64) noiseField {
	return noiseField{p: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)}
}

// at samples the field. Perlin output already sits inside [-1, 1] for these
// parameters; the clamp guards the few octave sums that overshoot.
func (n noiseField) at(x, y float64) float64 {
	return clamp(n.p.Noise2D(x, y), -1, 1)
}
