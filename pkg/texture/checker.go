package texture

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Checker alternates between two textures on a 3D grid of cubes
type Checker struct {
	invScale float64
	Even     Texture
	Odd      Texture
}

// NewChecker creates a checker of cubes with edge length scale
func NewChecker(scale float64, even, odd Texture) *Checker {
	return &Checker{invScale: 1.0 / scale, Even: even, Odd: odd}
}

// NewCheckerColors creates a checker from two solid colors
func NewCheckerColors(scale float64, even, odd core.Vec3) *Checker {
	return NewChecker(scale, NewSolidColor(even), NewSolidColor(odd))
}

// Value picks Even or Odd by the parity of the summed cell coordinates
func (c *Checker) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	x := int(math.Floor(c.invScale * point.X))
	y := int(math.Floor(c.invScale * point.Y))
	z := int(math.Floor(c.invScale * point.Z))

	if (x+y+z)%2 == 0 {
		return c.Even.Value(uv, point)
	}
	return c.Odd.Value(uv, point)
}
