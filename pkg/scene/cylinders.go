package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// NewCylindersScene stands capped and open cylinders on disc pedestals under a disc light
func NewCylindersScene(opts Options) *Scene {
	s := newMeshStage("cylinders", opts)
	s.Background = core.NewVec3(0.05, 0.05, 0.08)

	glass := material.NewTintedDielectric(material.IndexGlass, core.NewVec3(0.85, 1.0, 0.9), 0.05)
	copper := material.NewMetal(core.NewVec3(0.85, 0.5, 0.3), 0.15)
	perlin := texture.NewPerlin(core.NewSeededSampler(opts.Seed, sceneStream))
	marble := material.NewTexturedLambertian(texture.NewNoiseTexture(3, perlin))
	checker := material.NewTexturedLambertian(
		texture.NewCheckerColors(0.25, core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.9, 0.9, 0.9)))

	s.Add(
		// Pedestals sit just above the ground to avoid coplanar faces
		geometry.NewDisc(core.NewVec3(-2, 0.001, 0), core.NewVec3(0, 1, 0), 0.9, checker),
		geometry.NewDisc(core.NewVec3(2, 0.001, 0), core.NewVec3(0, 1, 0), 0.9, checker),

		geometry.NewCylinder(core.NewVec3(-2, 0, 0), core.NewVec3(-2, 1.6, 0), 0.6, true, glass),
		geometry.NewCylinder(core.NewVec3(0, 0, -0.5), core.NewVec3(0, 2.2, -0.5), 0.5, true, marble),
		// Open tube lying on its side
		geometry.NewCylinder(core.NewVec3(1.4, 0.4, 0.3), core.NewVec3(2.6, 0.4, -0.3), 0.4, false, copper),
	)

	s.AddDiscLight(core.NewVec3(0, 5, 1), core.NewVec3(0, -1, 0), 1.5, core.NewVec3(8, 8, 7))
	return s
}
