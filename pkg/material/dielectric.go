package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Common refractive indices
const (
	IndexAir   = 1.0
	IndexWater = 1.33
	IndexGlass = 1.5
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	nonEmissive
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass), relative to the enclosing medium
	Albedo          core.Vec3 // Attenuation per interaction, white for clear glass
}

// NewDielectric creates a new clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Albedo: core.NewVec3(1, 1, 1)}
}

// NewTintedDielectric creates colored glass. Opacity in [0, 1] darkens the tint;
// 1 absorbs everything.
func NewTintedDielectric(refractiveIndex float64, albedo core.Vec3, opacity float64) *Dielectric {
	opacity = math.Max(0, math.Min(opacity, 1))
	return &Dielectric{RefractiveIndex: refractiveIndex, Albedo: albedo.Multiply(1 - opacity)}
}

// Scatter implements the Material interface for dielectric scattering. It always scatters.
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex // entering
	} else {
		refractionRatio = d.RefractiveIndex // exiting
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, refractionRatio)
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: d.Albedo,
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
