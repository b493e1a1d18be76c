package elements

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Texture is a seeded noise field over the garden. It clumps stones and moss into
// natural drifts instead of an even sprinkle.
type Texture struct {
	noise opensimplex.Noise
}

// textureSeedOffset keeps the noise stream independent of the placement stream.
const textureSeedOffset = 3

// NewTexture builds the field for a run seed.
func NewTexture(seed int64) *Texture {
	return &Texture{noise: opensimplex.NewNormalized(seed + textureSeedOffset)}
}

// At returns the field value at a cell, in [0, 1].
func (t *Texture) At(row, col int) float64 {
	return octaveNoise(t.noise, float64(col), float64(row), 3, 0.12, 0.5)
}

// Modulate maps the field to a probability multiplier in [0.6, 1.4].
// A nil texture is neutral.
func (t *Texture) Modulate(row, col int) float64 {
	if t == nil {
		return 1
	}
	return 0.6 + 0.8*t.At(row, col)
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
