package scene

import (
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
	"go.uber.org/zap"
)

// EarthTexture is the image file looked up in Options.TextureDir
const EarthTexture = "earthmap.jpg"

// sceneStream is the sampler stream used for scene generation, kept apart from
// the per-pixel streams used while rendering
const sceneStream = 1 << 63

// randomRange returns a uniform value in [lo, hi)
func randomRange(sampler core.Sampler, lo, hi float64) float64 {
	return lo + (hi-lo)*sampler.Get1D()
}

// randomColor returns a color with each channel uniform in [lo, hi)
func randomColor(sampler core.Sampler, lo, hi float64) core.Vec3 {
	return core.NewVec3(
		randomRange(sampler, lo, hi),
		randomRange(sampler, lo, hi),
		randomRange(sampler, lo, hi),
	)
}

// wideCameraConfig is the 16:9 view from (13,2,3) shared by the sphere scenes
func wideCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20.0,
		DefocusAngle:  0.0,
		FocusDistance: 0.0,
	}
}

// skyBackground is a flat pale blue
var skyBackground = core.NewVec3(0.70, 0.80, 1.00)

// NewBouncingSpheresScene creates a field of small random spheres around three large ones.
// Diffuse spheres move upward during the exposure.
func NewBouncingSpheresScene(opts Options) *Scene {
	cameraConfig := wideCameraConfig()
	cameraConfig.DefocusAngle = 0.6
	cameraConfig.FocusDistance = 10.0

	sampling := SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := newScene("bouncing-spheres", cameraConfig, sampling, skyBackground, opts)
	sampler := core.NewSeededSampler(opts.Seed, sceneStream)

	checker := texture.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	// Keep the small spheres clear of the big metal one
	clearance := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := randomColor(sampler, 0, 1).MultiplyVec(randomColor(sampler, 0, 1))
				center1 := center.Add(core.NewVec3(0, randomRange(sampler, 0, 0.5), 0))
				s.Add(geometry.NewMovingSphere(center, center1, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := randomColor(sampler, 0.5, 1)
				fuzz := randomRange(sampler, 0, 0.5)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(material.IndexGlass)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(material.IndexGlass)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}

// NewCheckeredSpheresScene creates two large checker-textured spheres touching at the origin
func NewCheckeredSpheresScene(opts Options) *Scene {
	sampling := SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := newScene("checkered-spheres", wideCameraConfig(), sampling, skyBackground, opts)

	checker := texture.NewCheckerColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	mat := material.NewTexturedLambertian(checker)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, mat),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, mat),
	)

	return s
}

// loadTexture loads an image texture from the texture directory. A missing or
// corrupt file is logged and yields a texture that renders magenta.
func loadTexture(opts Options, name string) *texture.ImageTexture {
	path := filepath.Join(opts.TextureDir, name)
	data, err := loaders.LoadImage(path)
	if err != nil {
		opts.logger().Warn("texture unavailable, using placeholder",
			zap.String("path", path),
			zap.Error(err))
		return texture.NewImageTexture(nil)
	}
	return texture.NewImageTexture(data)
}

// NewEarthScene creates a single globe with an image texture
func NewEarthScene(opts Options) *Scene {
	cameraConfig := wideCameraConfig()
	cameraConfig.Center = core.NewVec3(0, 0, 12)

	sampling := SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := newScene("earth", cameraConfig, sampling, skyBackground, opts)

	earth := material.NewTexturedLambertian(loadTexture(opts, EarthTexture))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, earth))

	return s
}

// addPerlinSpheres adds a marble ground and a marble sphere resting on it
func addPerlinSpheres(s *Scene, opts Options) {
	perlin := texture.NewPerlin(core.NewSeededSampler(opts.Seed, sceneStream))
	marble := material.NewTexturedLambertian(texture.NewNoiseTexture(4, perlin))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
}

// NewPerlinSpheresScene creates two spheres with a Perlin marble texture
func NewPerlinSpheresScene(opts Options) *Scene {
	sampling := SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	s := newScene("perlin-spheres", wideCameraConfig(), sampling, skyBackground, opts)
	addPerlinSpheres(s, opts)

	return s
}
