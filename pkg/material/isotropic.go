package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// Isotropic is the phase function of a participating medium: scattering is
// uniform over the sphere and ignores the surface normal
type Isotropic struct {
	nonEmissive
	Albedo texture.Texture
}

// NewIsotropic creates an isotropic phase function with solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: texture.NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase function with texture
func NewTexturedIsotropic(albedo texture.Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter picks a uniformly random direction
func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, core.SampleOnUnitSphere(sampler.Get2D()), rayIn.Time),
		Attenuation: i.Albedo.Value(hit.UV, hit.Point),
	}, true
}
