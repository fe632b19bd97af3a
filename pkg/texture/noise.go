package texture

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// turbulenceDepth is the number of noise octaves in the marble phase
const turbulenceDepth = 7

// NoiseTexture is a marble-like pattern: a sine along Z phase-shifted by turbulence
type NoiseTexture struct {
	noise *Perlin
	scale float64
}

// NewNoiseTexture creates a noise texture; higher scale gives finer veins
func NewNoiseTexture(scale float64, noise *Perlin) *NoiseTexture {
	return &NoiseTexture{noise: noise, scale: scale}
}

// Value returns a grey level in [0, 1]
func (n *NoiseTexture) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	phase := n.scale*point.Z + 10*n.noise.Turbulence(point, turbulenceDepth)
	return core.NewVec3(0.5, 0.5, 0.5).Multiply(1 + math.Sin(phase))
}
