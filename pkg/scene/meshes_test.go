package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const tetrahedronPLY = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
property float nx
property float ny
property float nz
element face 4
property list uchar int vertex_indices
end_header
0 0 0 0 -1 0
10 0 0 0 -1 0
0 10 0 0 1 0
0 0 10 0 0 1
3 0 2 1
3 0 1 3
3 0 3 2
3 1 2 3
`

func TestBoxMeshIsClosed(t *testing.T) {
	box := createBoxMesh(core.Vec3{}, core.NewVec3(2, 2, 2), core.Vec3{}, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	if box.GetTriangleCount() != 12 {
		t.Fatalf("Expected 12 triangles, got %d", box.GetTriangleCount())
	}

	directions := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}
	for _, dir := range directions {
		// Slightly off-axis so no ray runs along a triangle diagonal
		offset := core.NewVec3(0.1, 0.2, 0.3)
		origin := dir.Multiply(-5).Add(offset)
		var hit material.HitRecord
		if !box.Hit(core.NewRay(origin, dir), core.NewInterval(0.001, math.Inf(1)), nil, &hit) {
			t.Errorf("Ray along %v missed the box", dir)
			continue
		}
		if !hit.FrontFace {
			t.Errorf("Ray along %v should hit an outward facing side", dir)
		}
		if expected := 4 - offset.Dot(dir); math.Abs(hit.T-expected) > 1e-9 {
			t.Errorf("Ray along %v: expected t=%f, got %f", dir, expected, hit.T)
		}
	}
}

func TestPyramidFacesPointOutward(t *testing.T) {
	pyramid := createPyramidMesh(core.Vec3{}, 2, 2, core.Vec3{}, nil)

	for i, object := range pyramid.Triangles() {
		triangle := object.(*geometry.Triangle)
		centroid := triangle.V0.Add(triangle.V1).Add(triangle.V2).Multiply(1.0 / 3)
		if triangle.Normal().Dot(centroid) <= 0 {
			t.Errorf("Triangle %d normal %v points into the pyramid", i, triangle.Normal())
		}
	}
}

func TestIcosahedronRadius(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	ico := createIcosahedronMesh(center, 0.8, core.NewVec3(0, math.Pi/3, 0), nil)

	if ico.GetTriangleCount() != 20 {
		t.Fatalf("Expected 20 triangles, got %d", ico.GetTriangleCount())
	}
	for i, object := range ico.Triangles() {
		triangle := object.(*geometry.Triangle)
		for _, v := range []core.Vec3{triangle.V0, triangle.V1, triangle.V2} {
			if d := v.Subtract(center).Length(); math.Abs(d-0.8) > 1e-9 {
				t.Errorf("Triangle %d vertex %v at distance %f, expected 0.8", i, v, d)
			}
		}
	}
}

func TestFitVertices(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(10, 5, -2),
		core.NewVec3(14, 7, 2),
		core.NewVec3(12, 6, 0),
	}

	fitted := fitVertices(vertices, 2)

	expected := []core.Vec3{
		core.NewVec3(-1, 0, -1),
		core.NewVec3(1, 1, 1),
		core.NewVec3(0, 0.5, 0),
	}
	for i := range expected {
		if fitted[i].Subtract(expected[i]).Length() > 1e-12 {
			t.Errorf("Vertex %d: expected %v, got %v", i, expected[i], fitted[i])
		}
	}
	if vertices[0] != core.NewVec3(10, 5, -2) {
		t.Error("fitVertices should not modify its input")
	}

	// A single point has no extent and is only moved
	if got := fitVertices([]core.Vec3{core.NewVec3(3, 3, 3)}, 2); got[0] != (core.Vec3{}) {
		t.Errorf("Expected the point at the origin, got %v", got[0])
	}
}

func TestFaceNormals(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}

	tests := []struct {
		name     string
		normals  []core.Vec3
		faces    []int
		expected core.Vec3
	}{
		{
			name:     "vertex normals averaged",
			normals:  []core.Vec3{{Z: 1}, {Z: 1}, {X: 1}},
			faces:    []int{0, 1, 2},
			expected: core.NewVec3(1, 0, 2),
		},
		{
			name:     "cancelling normals use winding",
			normals:  []core.Vec3{{Z: 1}, {Z: -1}, {}},
			faces:    []int{0, 1, 2},
			expected: core.NewVec3(0, 0, 1),
		},
		{
			name:     "bad index left for mesh validation",
			normals:  []core.Vec3{{Z: 1}, {Z: 1}, {Z: 1}},
			faces:    []int{0, 1, 7},
			expected: core.NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := faceNormals(vertices, tt.normals, tt.faces)
			if len(got) != 1 || got[0] != tt.expected {
				t.Errorf("Expected [%v], got %v", tt.expected, got)
			}
		})
	}
}

func TestPLYModelSceneLoadsModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetrahedron.ply")
	if err := os.WriteFile(path, []byte(tetrahedronPLY), 0644); err != nil {
		t.Fatal(err)
	}

	obsCore, logs := observer.New(zapcore.DebugLevel)
	s, err := Create("ply-model", Options{ModelPath: path, Logger: zap.New(obsCore)})
	if err != nil {
		t.Fatal(err)
	}

	if logs.FilterMessage("using placeholder model").Len() != 0 {
		t.Fatal("Expected the model to load")
	}
	// ground + 2 lights + 4 faces
	if got := s.GetPrimitiveCount(); got != 7 {
		t.Errorf("Expected 7 primitives, got %d", got)
	}

	model := s.Objects[len(s.Objects)-1].BoundingBox()
	if math.Abs(model.Y.Min) > 1e-3 || math.Abs(model.Y.Max-modelSize) > 1e-3 {
		t.Errorf("Expected the model fitted to [0, %v] in Y, got %+v", modelSize, model.Y)
	}
}

func TestPLYModelScenePlaceholder(t *testing.T) {
	corrupt := filepath.Join(t.TempDir(), "corrupt.ply")
	header := "ply\nformat ascii 1.0\nelement vertex 2000000000000000000\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n"
	if err := os.WriteFile(corrupt, []byte(header), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"no path", ""},
		{"missing file", filepath.Join(t.TempDir(), "missing.ply")},
		{"corrupt counts", corrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obsCore, logs := observer.New(zapcore.WarnLevel)
			s, err := Create("ply-model", Options{ModelPath: tt.path, Logger: zap.New(obsCore)})
			if err != nil {
				t.Fatal(err)
			}

			entries := logs.FilterMessage("using placeholder model").All()
			if len(entries) != 1 {
				t.Fatalf("Expected one placeholder warning, got %d", len(entries))
			}
			if entries[0].ContextMap()["path"] != tt.path {
				t.Errorf("Expected path %q in warning, got %v", tt.path, entries[0].ContextMap()["path"])
			}
			if got := s.GetPrimitiveCount(); got != 23 {
				t.Errorf("Expected placeholder icosahedron, got %d primitives", got)
			}
		})
	}
}
