package heightfield

import (
	perlin "github.com/aquilax/go-perlin"
)

// NoiseConfig controls Perlin height generation.
type NoiseConfig struct {
	Octaves   int32   `yaml:"octaves"`
	Alpha     float64 `yaml:"alpha"`     // weight falloff per octave
	Beta      float64 `yaml:"beta"`      // frequency harmonic scaling
	Scale     float64 `yaml:"scale"`     // grid cells per noise unit
	Amplitude float64 `yaml:"amplitude"` // peak elevation swing
	Offset    float64 `yaml:"offset"`    // added to every sample
}

// DefaultNoiseConfig returns settings that produce rolling terrain with
// both sea and mountains at the default sea level.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Octaves:   4,
		Alpha:     2,
		Beta:      2,
		Scale:     128,
		Amplitude: 100,
		Offset:    10,
	}
}

// GeneratePerlin fills a new grid with fractal Perlin noise.
func GeneratePerlin(width, height int, cfg NoiseConfig, seed int64) (*Grid, error) {
	g, err := New(width, height)
	if err != nil {
		return nil, err
	}

	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	p := perlin.NewPerlin(cfg.Alpha, cfg.Beta, cfg.Octaves, seed)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := p.Noise2D(float64(x)/scale, float64(y)/scale)
			g.Values[y*width+x] = float32(n*cfg.Amplitude + cfg.Offset)
		}
	}
	return g, nil
}
