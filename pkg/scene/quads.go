package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewQuadsScene creates five colored quads arranged around the view axis
func NewQuadsScene(opts Options) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 9),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        80.0,
	}

	sampling := SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := newScene("quads", cameraConfig, sampling, skyBackground, opts)

	leftRed := material.NewLambertian(core.NewVec3(1.0, 0.2, 0.2))
	backGreen := material.NewLambertian(core.NewVec3(0.2, 1.0, 0.2))
	rightBlue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	upperOrange := material.NewLambertian(core.NewVec3(1.0, 0.5, 0.0))
	lowerTeal := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.8))

	s.Add(
		geometry.NewQuad(core.NewVec3(-3, -2, 5), core.NewVec3(0, 0, -4), core.NewVec3(0, 4, 0), leftRed),
		geometry.NewQuad(core.NewVec3(-2, -2, 0), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), backGreen),
		geometry.NewQuad(core.NewVec3(3, -2, 1), core.NewVec3(0, 0, 4), core.NewVec3(0, 4, 0), rightBlue),
		geometry.NewQuad(core.NewVec3(-2, 3, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, 4), upperOrange),
		geometry.NewQuad(core.NewVec3(-2, -3, 5), core.NewVec3(4, 0, 0), core.NewVec3(0, 0, -4), lowerTeal),
	)

	return s
}

// NewSimpleLightScene lights the Perlin spheres with a sphere and a quad emitter
// against a black background
func NewSimpleLightScene(opts Options) *Scene {
	cameraConfig := wideCameraConfig()
	cameraConfig.Center = core.NewVec3(26, 3, 6)
	cameraConfig.LookAt = core.NewVec3(0, 2, 0)

	sampling := SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := newScene("simple-light", cameraConfig, sampling, core.NewVec3(0, 0, 0), opts)
	addPerlinSpheres(s, opts)

	emission := core.NewVec3(4, 4, 4)
	s.AddSphereLight(core.NewVec3(0, 7, 0), 2, emission)
	s.AddQuadLight(core.NewVec3(3, 1, -2), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), emission)

	return s
}
