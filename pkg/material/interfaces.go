package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material interface for surfaces and media that interact with rays
type Material interface {
	// Scatter returns the attenuation and continuation ray, or false if the path stops here
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool)

	// Emitted returns radiance leaving the surface; black for everything but lights
	Emitted(uv core.Vec2, point core.Vec3) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, always against the ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object, shared not owned
	UV        core.Vec2 // Surface coordinates for texture lookup
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// nonEmissive is embedded by materials that never emit light
type nonEmissive struct{}

// Emitted returns black
func (nonEmissive) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	return core.Vec3{}
}
