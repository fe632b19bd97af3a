package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Layered represents a material with two layers - an outer and inner material
// Light hits the outer layer first, then if it scatters inward, hits the inner layer
// This simulates coatings, films, or other layered surface treatments
type Layered struct {
	Outer Material // Outer layer material (e.g., coating, surface treatment)
	Inner Material // Inner layer material (e.g., base material)
}

// NewLayered creates a new layered material
func NewLayered(outer, inner Material) *Layered {
	return &Layered{
		Outer: outer,
		Inner: inner,
	}
}

// Scatter implements the Material interface for layered scattering
func (l *Layered) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	outerHit := *hit
	outerHit.Material = l.Outer

	outerResult, outerScatters := l.Outer.Scatter(rayIn, &outerHit, sampler)
	if !outerScatters {
		return ScatterResult{}, false
	}

	// Only rays the outer layer sends into the surface reach the inner layer
	scatteredDirection := outerResult.Scattered.Direction.Normalize()
	if scatteredDirection.Dot(hit.Normal) >= 0 {
		return outerResult, true
	}

	innerRay := core.NewRayAtTime(hit.Point, scatteredDirection, rayIn.Time)
	innerHit := *hit
	innerHit.Material = l.Inner

	innerResult, innerScatters := l.Inner.Scatter(innerRay, &innerHit, sampler)
	if !innerScatters {
		// Inner layer absorbs
		return ScatterResult{}, false
	}

	// Light is filtered through both layers
	return ScatterResult{
		Scattered:   innerResult.Scattered,
		Attenuation: outerResult.Attenuation.MultiplyVec(innerResult.Attenuation),
	}, true
}

// Emitted returns the outer layer's emission; the inner layer is covered
func (l *Layered) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	return l.Outer.Emitted(uv, point)
}
