package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// exitEpsilon separates the entry hit from the search for the exit hit
const exitEpsilon = 1e-4

// ConstantMedium is a homogeneous participating medium (fog, smoke) filling a boundary shape.
// The boundary must be closed and convex for entry/exit detection to be meaningful.
type ConstantMedium struct {
	Boundary      Hittable
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium creates a medium with a textured isotropic phase function
func NewConstantMedium(boundary Hittable, density float64, albedo texture.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
		negInvDensity: -1 / density,
	}
}

// NewConstantMediumColor creates a medium with a solid color isotropic phase function
func NewConstantMediumColor(boundary Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return NewConstantMedium(boundary, density, texture.NewSolidColor(albedo))
}

// Hit samples a scattering distance inside the boundary. A ray that travels
// further than the distance it spends inside the medium passes through.
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	var entry, exit material.HitRecord

	if !m.Boundary.Hit(ray, core.UniverseInterval, sampler, &entry) {
		return false
	}
	if !m.Boundary.Hit(ray, core.NewInterval(entry.T+exitEpsilon, math.Inf(1)), sampler, &exit) {
		return false
	}

	t0, t1 := entry.T, exit.T
	if t0 < rayT.Min {
		t0 = rayT.Min
	}
	if t1 > rayT.Max {
		t1 = rayT.Max
	}
	if t0 >= t1 {
		return false
	}
	if t0 < 0 {
		t0 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t1 - t0) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())

	if hitDistance > distanceInsideBoundary {
		return false
	}

	hit.T = t0 + hitDistance/rayLength
	hit.Point = ray.At(hit.T)
	hit.Normal = core.NewVec3(1, 0, 0) // arbitrary
	hit.FrontFace = true               // also arbitrary
	hit.Material = m.PhaseFunction
	hit.UV = core.Vec2{}

	return true
}

// BoundingBox returns the bounds of the boundary shape
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
