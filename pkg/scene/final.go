package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// NewFinalScene combines every primitive, material, texture and transform:
// a field of box columns, a moving sphere, glass, metal, a subsurface-like
// glass ball filled with blue fog, global mist, an earth globe, a marble
// sphere and a rotated cluster of small spheres.
func NewFinalScene(opts Options) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(478, 278, -600),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       800,
		AspectRatio: 1.0,
		VFov:        40.0,
	}

	sampling := SamplingConfig{
		SamplesPerPixel: 10000,
		MaxDepth:        40,
	}

	s := newScene("final", cameraConfig, sampling, core.NewVec3(0, 0, 0), opts)
	sampler := core.NewSeededSampler(opts.Seed, sceneStream)

	// Ground of 20x20 box columns with random heights, under its own BVH
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	columns := make([]geometry.Hittable, 0, boxesPerSide*boxesPerSide)
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := randomRange(sampler, 1, 101)
			columns = append(columns, geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	s.Add(geometry.NewBVH(columns))

	s.AddQuadLight(core.NewVec3(123, 554, 147), core.NewVec3(300, 0, 0), core.NewVec3(0, 0, 265), core.NewVec3(7, 7, 7))

	center0 := core.NewVec3(400, 400, 200)
	center1 := center0.Add(core.NewVec3(30, 0, 0))
	s.Add(geometry.NewMovingSphere(center0, center1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	glass := material.NewDielectric(material.IndexGlass)
	s.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, glass),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass shell filled with blue fog
	shell := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, glass)
	s.Add(shell, geometry.NewConstantMediumColor(shell, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin mist over the whole scene
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, glass)
	s.Add(geometry.NewConstantMediumColor(mist, 0.0001, core.NewVec3(1, 1, 1)))

	earth := material.NewTexturedLambertian(loadTexture(opts, EarthTexture))
	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, earth))

	perlin := texture.NewPerlin(sampler)
	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(texture.NewNoiseTexture(0.2, perlin))))

	// Cluster of small spheres in a 165 unit cube, rotated and moved into view
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	const clusterSize = 1000
	cluster := make([]geometry.Hittable, 0, clusterSize)
	for i := 0; i < clusterSize; i++ {
		center := randomColor(sampler, 0, 165)
		cluster = append(cluster, geometry.NewSphere(center, 10, white))
	}
	s.Add(geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBVH(cluster), 15),
		core.NewVec3(-100, 270, 395),
	))

	return s
}
