package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to linear RGB, clamped to [0, 1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH -> OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB -> cone response (LMS), cubed
	lms := core.NewVec3(
		l+0.3963377774*a+0.2158037573*b,
		l-0.1055613458*a-0.0638541728*b,
		l-0.0894841775*a-1.2914855480*b,
	)
	lms = lms.MultiplyVec(lms).MultiplyVec(lms)

	// LMS -> linear RGB
	rgb := core.NewVec3(
		+4.0767416621*lms.X-3.3077115913*lms.Y+0.2309699292*lms.Z,
		-1.2684380046*lms.X+2.6097574011*lms.Y-0.3413193965*lms.Z,
		-0.0041960863*lms.X-0.7034186147*lms.Y+1.7076147010*lms.Z,
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a grid of metal spheres with hue varying along x and chroma along z
func NewSphereGridScene(opts Options) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(4.5, 6, 18),    // Back and above the grid
		LookAt:        core.NewVec3(4.5, 0.8, 4.5), // Center of the grid
		Up:            core.NewVec3(0, 1, 0),
		Width:         800,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		DefocusAngle:  0.3,
		FocusDistance: 0.0,
	}

	sampling := SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        40,
	}

	s := newScene("sphere-grid", cameraConfig, sampling, core.NewVec3(0.5, 0.7, 1.0), opts)

	// Warm sun high to the side
	s.AddSphereLight(core.NewVec3(20, 25, 20), 8, core.NewVec3(12.0, 11.5, 10.0))
	s.Add(NewGroundQuad(core.NewVec3(4.5, 0, 4.5), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	gridSize := 20

	// Fit the grid in a 9x9 area regardless of size
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			fuzz := 0.05 + 0.1*float64((i+j)%3)/2.0
			metal := material.NewMetal(oklchToRGB(lightness, chroma, hue), fuzz)

			s.Add(geometry.NewSphere(position, sphereRadius, metal))
		}
	}

	return s
}
