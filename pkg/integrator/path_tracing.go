package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// shadowAcneEpsilon keeps bounce rays from re-hitting the surface they start on
const shadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a fixed bounce limit
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	if sc.World == nil {
		return sc.Background
	}
	return pt.rayColor(ray, sc.World, sc.Background, sampler, pt.config.MaxDepth)
}

// rayColor follows one path: emitted light plus attenuated light from the scattered ray
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world geometry.Hittable, background core.Vec3, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	var hit material.HitRecord
	if !world.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)), sampler, &hit) {
		return background
	}

	colorEmitted := hit.Material.Emitted(hit.UV, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, &hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	colorScattered := scatter.Attenuation.MultiplyVec(
		pt.rayColor(scatter.Scattered, world, background, sampler, depth-1))

	return colorEmitted.Add(colorScattered)
}
