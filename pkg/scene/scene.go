package scene

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"go.uber.org/zap"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Objects        []geometry.Hittable // Objects added with Add, in insertion order
	Background     core.Vec3           // Color returned for rays that hit nothing
	SamplingConfig SamplingConfig
	UseBVH         bool              // Build a BVH over Objects (otherwise a flat list)
	World          geometry.Hittable // Root hittable, set by Build
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// newScene creates an empty scene with the camera config merged with any override
func newScene(name string, cameraConfig geometry.CameraConfig, sampling SamplingConfig, background core.Vec3, opts Options) *Scene {
	cameraConfig = geometry.MergeCameraConfig(cameraConfig, opts.Camera)
	if opts.Sampling.SamplesPerPixel > 0 {
		sampling.SamplesPerPixel = opts.Sampling.SamplesPerPixel
	}
	if opts.Sampling.MaxDepth > 0 {
		sampling.MaxDepth = opts.Sampling.MaxDepth
	}

	return &Scene{
		Name:           name,
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		Objects:        make([]geometry.Hittable, 0),
		Background:     background,
		SamplingConfig: sampling,
		UseBVH:         true,
	}
}

// Add appends objects to the scene. Objects are shared, not copied.
func (s *Scene) Add(objects ...geometry.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// AddSphereLight adds a spherical emitter to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) *geometry.Sphere {
	light := geometry.NewSphere(center, radius, material.NewDiffuseLight(emission))
	s.Add(light)
	return light
}

// AddQuadLight adds a rectangular emitter to the scene
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) *geometry.Quad {
	light := geometry.NewQuad(corner, u, v, material.NewDiffuseLight(emission))
	s.Add(light)
	return light
}

// AddDiscLight adds a circular emitter facing along normal
func (s *Scene) AddDiscLight(center, normal core.Vec3, radius float64, emission core.Vec3) *geometry.Disc {
	light := geometry.NewDisc(center, normal, radius, material.NewDiffuseLight(emission))
	s.Add(light)
	return light
}

// SetCamera replaces the camera, merging override onto the current config
func (s *Scene) SetCamera(override geometry.CameraConfig) {
	s.CameraConfig = geometry.MergeCameraConfig(s.CameraConfig, override)
	s.Camera = geometry.NewCamera(s.CameraConfig)
}

// Build assembles the objects into the world hittable. With UseBVH the
// result is a BVH over a copy of Objects, otherwise a flat list.
func (s *Scene) Build(logger *zap.Logger) geometry.Hittable {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !s.UseBVH {
		s.World = geometry.NewHittableList(s.Objects...)
		logger.Debug("using flat object list",
			zap.String("scene", s.Name),
			zap.Int("objects", len(s.Objects)))
		return s.World
	}

	start := time.Now()
	bvh := geometry.NewBVH(s.Objects)
	stats := bvh.Stats()
	logger.Debug("built BVH",
		zap.String("scene", s.Name),
		zap.Int("objects", len(s.Objects)),
		zap.Int("nodes", stats.TotalNodes),
		zap.Int("leaves", stats.LeafNodes),
		zap.Int("max_depth", stats.MaxDepth),
		zap.Float64("avg_depth", stats.AvgDepth),
		zap.Duration("elapsed", time.Since(start)))

	s.World = bvh
	return s.World
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, object := range s.Objects {
		count += countPrimitives(object)
	}
	return count
}

// countPrimitives counts primitives in a single object, descending into composites
func countPrimitives(object geometry.Hittable) int {
	switch obj := object.(type) {
	case *geometry.HittableList:
		count := 0
		for _, child := range obj.Objects {
			count += countPrimitives(child)
		}
		return count
	case *geometry.BVHNode:
		count := 0
		for _, leaf := range obj.Leaves() {
			count += countPrimitives(leaf)
		}
		return count
	case *geometry.TriangleMesh:
		return obj.GetTriangleCount()
	case *geometry.Translate:
		return countPrimitives(obj.Object)
	case *geometry.RotateY:
		return countPrimitives(obj.Object)
	case *geometry.ConstantMedium:
		return countPrimitives(obj.Boundary)
	default:
		return 1
	}
}

// NewGroundQuad creates a large quad to replace infinite ground planes
// Creates a horizontal quad centered at the given point with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, material material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) points up
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, material)
}
