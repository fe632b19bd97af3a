package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const cornellSize = 555.0

func cornellCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:        core.NewVec3(278, 278, -800), // Outside the open front of the box
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         600,
		AspectRatio:   1.0,
		VFov:          40.0,
		DefocusAngle:  0.0,
		FocusDistance: 0.0,
	}
}

// addCornellWalls adds the five walls of the box and returns the white material
func addCornellWalls(s *Scene) material.Material {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	s.Add(
		// Right wall (green) at x=555
		geometry.NewQuad(core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, cornellSize, 0), core.NewVec3(0, 0, cornellSize), green),
		// Left wall (red) at x=0
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, cornellSize, 0), core.NewVec3(0, 0, cornellSize), red),
		// Floor
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, 0, cornellSize), white),
		// Ceiling
		geometry.NewQuad(core.NewVec3(cornellSize, cornellSize, cornellSize), core.NewVec3(-cornellSize, 0, 0), core.NewVec3(0, 0, -cornellSize), white),
		// Back wall at z=555
		geometry.NewQuad(core.NewVec3(0, 0, cornellSize), core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, cornellSize, 0), white),
	)

	return white
}

// cornellBoxes returns the tall and short boxes, rotated and placed in the room
func cornellBoxes(tallMat, shortMat material.Material) (geometry.Hittable, geometry.Hittable) {
	tall := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), tallMat)
	tallPlaced := geometry.NewTranslate(geometry.NewRotateY(tall, 15), core.NewVec3(265, 0, 295))

	short := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), shortMat)
	shortPlaced := geometry.NewTranslate(geometry.NewRotateY(short, -18), core.NewVec3(130, 0, 65))

	return tallPlaced, shortPlaced
}

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene(opts Options) *Scene {
	sampling := SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}

	s := newScene("cornell-box", cornellCameraConfig(), sampling, core.NewVec3(0, 0, 0), opts)

	white := addCornellWalls(s)

	// Ceiling light, facing down into the box
	s.AddQuadLight(
		core.NewVec3(343, 554, 332),
		core.NewVec3(-130, 0, 0),
		core.NewVec3(0, 0, -105),
		core.NewVec3(15.0, 15.0, 15.0),
	)

	tall, short := cornellBoxes(white, white)
	s.Add(tall, short)

	return s
}

// NewCornellSmokeScene replaces the Cornell boxes with constant-density smoke and fog
func NewCornellSmokeScene(opts Options) *Scene {
	sampling := SamplingConfig{
		SamplesPerPixel: 200,
		MaxDepth:        50,
	}

	s := newScene("cornell-smoke", cornellCameraConfig(), sampling, core.NewVec3(0, 0, 0), opts)

	white := addCornellWalls(s)

	// Larger, dimmer light
	s.AddQuadLight(
		core.NewVec3(113, 554, 127),
		core.NewVec3(330, 0, 0),
		core.NewVec3(0, 0, 305),
		core.NewVec3(7, 7, 7),
	)

	tall, short := cornellBoxes(white, white)
	s.Add(
		geometry.NewConstantMediumColor(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMediumColor(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	return s
}
