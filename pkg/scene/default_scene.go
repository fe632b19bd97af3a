package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and a sun
func NewDefaultScene(opts Options) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2), // Higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the center sphere
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		DefocusAngle:  1.0,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	sampling := SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50, // Complex glass needs many bounces
	}

	s := newScene("default", cameraConfig, sampling, core.NewVec3(0.7, 0.8, 1.0), opts)

	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(material.IndexGlass)

	// Glass coating over a red base
	coatedRed := material.NewLayered(materialGlass, lambertianRed)
	// Half-and-half blend of silver and blue
	blended := material.NewMix(metalSilver, lambertianBlue, 0.5)

	// Hollow glass sphere: the negative radius flips the inner surface normals
	hollowCenter := core.NewVec3(-0.5, 0.25, -0.5)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, coatedRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, blended),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass),
		geometry.NewSphere(hollowCenter, 0.25, materialGlass),
		geometry.NewSphere(hollowCenter, -0.24, materialGlass),
		geometry.NewSphere(hollowCenter, 0.20, lambertianBlue),
		NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, lambertianGreen),
	)

	s.AddSphereLight(
		core.NewVec3(30, 30.5, 15),     // position
		10,                             // radius
		core.NewVec3(15.0, 14.0, 13.0), // emission
	)

	return s
}
