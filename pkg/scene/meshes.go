package scene

import (
	"errors"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"go.uber.org/zap"
)

// modelSize is the largest extent a loaded model is scaled to
const modelSize = 2.0

var errNoModel = errors.New("no model path configured")

// meshCameraConfig looks at a row of objects standing on the ground at the origin
func meshCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:       core.NewVec3(0, 2, 6),
		LookAt:       core.NewVec3(0, 1, 0),
		Up:           core.NewVec3(0, 1, 0),
		Width:        600,
		AspectRatio:  16.0 / 9.0,
		VFov:         45.0,
		DefocusAngle: 0.5,
	}
}

// newMeshStage creates a lit stage with a grey ground for mesh scenes
func newMeshStage(name string, opts Options) *Scene {
	sampling := SamplingConfig{
		SamplesPerPixel: 150,
		MaxDepth:        40,
	}

	s := newScene(name, meshCameraConfig(), sampling, core.NewVec3(0.5, 0.7, 1.0), opts)
	s.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 40, material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))))

	// Warm key light and a cooler fill
	s.AddSphereLight(core.NewVec3(2, 6, 3), 1.5, core.NewVec3(12, 11, 10))
	s.AddSphereLight(core.NewVec3(-3, 4, 2), 0.8, core.NewVec3(6, 7, 8))
	return s
}

// NewTriangleMeshScene shows a box, a pyramid and an icosahedron built from triangles
func NewTriangleMeshScene(opts Options) *Scene {
	s := newMeshStage("triangle-mesh", opts)

	redMetal := material.NewMetal(core.NewVec3(0.8, 0.2, 0.2), 0.1)
	blueLambertian := material.NewLambertian(core.NewVec3(0.2, 0.3, 0.8))
	goldMetal := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.05)

	s.Add(
		createBoxMesh(core.NewVec3(-2, 0.5, 0), core.NewVec3(1, 1, 1), core.NewVec3(0, math.Pi/6, 0), redMetal),
		createPyramidMesh(core.NewVec3(0, 1, 0), 1.5, 2.0, core.NewVec3(0, math.Pi/4, 0), blueLambertian),
		createIcosahedronMesh(core.NewVec3(2, 0.8, 0), 0.8, core.NewVec3(0, math.Pi/3, 0), goldMetal),
	)
	return s
}

// NewPLYModelScene loads the PLY file at Options.ModelPath, scaled to fit the stage.
// A missing or unreadable model is replaced by an icosahedron.
func NewPLYModelScene(opts Options) *Scene {
	s := newMeshStage("ply-model", opts)
	gold := material.NewMetal(core.NewVec3(0.7, 0.5, 0.2), 0.002)

	model, err := loadModel(opts.ModelPath, gold)
	if err != nil {
		opts.logger().Warn("using placeholder model",
			zap.String("path", opts.ModelPath),
			zap.Error(err))
		s.Add(createIcosahedronMesh(core.NewVec3(0, 1, 0), 1, core.Vec3{}, gold))
		return s
	}

	opts.logger().Debug("loaded model",
		zap.String("path", opts.ModelPath),
		zap.Int("triangles", model.GetTriangleCount()))
	s.Add(model)
	return s
}

// loadModel reads a PLY mesh and fits it on the ground at the origin
func loadModel(path string, mat material.Material) (*geometry.TriangleMesh, error) {
	if path == "" {
		return nil, errNoModel
	}
	data, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, err
	}

	vertices := fitVertices(data.Vertices, modelSize)

	var options *geometry.TriangleMeshOptions
	if len(data.Normals) == len(data.Vertices) {
		options = &geometry.TriangleMeshOptions{Normals: faceNormals(vertices, data.Normals, data.Faces)}
	}
	return geometry.NewTriangleMesh(vertices, data.Faces, mat, options)
}

// fitVertices scales vertices so the largest extent equals size and stands them
// on y=0 centred over the origin
func fitVertices(vertices []core.Vec3, size float64) []core.Vec3 {
	if len(vertices) == 0 {
		return vertices
	}

	lo, hi := vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		lo = core.NewVec3(math.Min(lo.X, v.X), math.Min(lo.Y, v.Y), math.Min(lo.Z, v.Z))
		hi = core.NewVec3(math.Max(hi.X, v.X), math.Max(hi.Y, v.Y), math.Max(hi.Z, v.Z))
	}

	extent := hi.Subtract(lo)
	scale := 1.0
	if largest := math.Max(extent.X, math.Max(extent.Y, extent.Z)); largest > 0 {
		scale = size / largest
	}
	base := core.NewVec3((lo.X+hi.X)/2, lo.Y, (lo.Z+hi.Z)/2)

	fitted := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		fitted[i] = v.Subtract(base).Multiply(scale)
	}
	return fitted
}

// faceNormals averages per-vertex normals into one normal per triangle,
// falling back to the winding normal where they cancel out
func faceNormals(vertices, normals []core.Vec3, faces []int) []core.Vec3 {
	result := make([]core.Vec3, len(faces)/3)
	for i := range result {
		face := faces[i*3 : i*3+3]
		if !validIndices(face, len(vertices)) {
			// NewTriangleMesh reports the bad index
			result[i] = core.NewVec3(0, 1, 0)
			continue
		}

		sum := normals[face[0]].Add(normals[face[1]]).Add(normals[face[2]])
		if sum.NearZero() {
			v0, v1, v2 := vertices[face[0]], vertices[face[1]], vertices[face[2]]
			sum = v1.Subtract(v0).Cross(v2.Subtract(v0))
		}
		if sum.NearZero() {
			sum = core.NewVec3(0, 1, 0)
		}
		result[i] = sum
	}
	return result
}

func validIndices(indices []int, n int) bool {
	for _, index := range indices {
		if index < 0 || index >= n {
			return false
		}
	}
	return true
}

// mustMesh builds a procedural mesh whose indices are known to be valid
func mustMesh(vertices []core.Vec3, faces []int, mat material.Material, rotation, center core.Vec3) *geometry.TriangleMesh {
	var options *geometry.TriangleMeshOptions
	if rotation != (core.Vec3{}) {
		options = &geometry.TriangleMeshOptions{Rotation: &rotation, Center: &center}
	}
	mesh, err := geometry.NewTriangleMesh(vertices, faces, mat, options)
	if err != nil {
		panic(err)
	}
	return mesh
}

// createBoxMesh creates a closed box of 12 triangles
func createBoxMesh(center, size, rotation core.Vec3, mat material.Material) *geometry.TriangleMesh {
	h := size.Multiply(0.5)
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-h.X, -h.Y, -h.Z)), // 0: left-bottom-back
		center.Add(core.NewVec3(+h.X, -h.Y, -h.Z)), // 1: right-bottom-back
		center.Add(core.NewVec3(+h.X, +h.Y, -h.Z)), // 2: right-top-back
		center.Add(core.NewVec3(-h.X, +h.Y, -h.Z)), // 3: left-top-back
		center.Add(core.NewVec3(-h.X, -h.Y, +h.Z)), // 4: left-bottom-front
		center.Add(core.NewVec3(+h.X, -h.Y, +h.Z)), // 5: right-bottom-front
		center.Add(core.NewVec3(+h.X, +h.Y, +h.Z)), // 6: right-top-front
		center.Add(core.NewVec3(-h.X, +h.Y, +h.Z)), // 7: left-top-front
	}

	// Counter-clockwise seen from outside
	faces := []int{
		0, 2, 1, 0, 3, 2, // back (-Z)
		4, 5, 6, 4, 6, 7, // front (+Z)
		0, 4, 7, 0, 7, 3, // left (-X)
		1, 2, 6, 1, 6, 5, // right (+X)
		0, 1, 5, 0, 5, 4, // bottom (-Y)
		3, 7, 6, 3, 6, 2, // top (+Y)
	}

	return mustMesh(vertices, faces, mat, rotation, center)
}

// createPyramidMesh creates a square based pyramid centred on center
func createPyramidMesh(center core.Vec3, baseSize, height float64, rotation core.Vec3, mat material.Material) *geometry.TriangleMesh {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfBase, -halfHeight, -halfBase)), // 0: left-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, -halfBase)), // 1: right-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, +halfBase)), // 2: right-front
		center.Add(core.NewVec3(-halfBase, -halfHeight, +halfBase)), // 3: left-front
		center.Add(core.NewVec3(0, +halfHeight, 0)),                 // 4: apex
	}

	faces := []int{
		0, 1, 2, 0, 2, 3, // base
		1, 0, 4, // back
		2, 1, 4, // right
		3, 2, 4, // front
		0, 3, 4, // left
	}

	return mustMesh(vertices, faces, mat, rotation, center)
}

// createIcosahedronMesh creates a regular icosahedron with the given circumradius
func createIcosahedronMesh(center core.Vec3, radius float64, rotation core.Vec3, mat material.Material) *geometry.TriangleMesh {
	phi := math.Phi
	scale := radius / math.Sqrt(1+phi*phi)

	corners := []core.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	vertices := make([]core.Vec3, len(corners))
	for i, c := range corners {
		vertices[i] = center.Add(c.Multiply(scale))
	}

	faces := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return mustMesh(vertices, faces, mat, rotation, center)
}
