package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	// ErrInvalidMesh is returned for face lists that do not describe triangles over the vertices
	ErrInvalidMesh = errors.New("invalid triangle mesh")
)

// TriangleMesh is a set of triangles sharing a vertex list, intersected through its own BVH
type TriangleMesh struct {
	triangles []Hittable
	bvh       *BVHNode
}

// TriangleMeshOptions contains optional parameters for mesh creation
type TriangleMeshOptions struct {
	Normals   []core.Vec3         // One shading normal per triangle
	Materials []material.Material // One material per triangle, overriding the default
	Rotation  *core.Vec3          // Euler angles in radians, applied X then Y then Z
	Center    *core.Vec3          // Pivot for Rotation (origin when nil)
}

// NewTriangleMesh builds a mesh from vertices and a flat list of face indices,
// three per triangle. options may be nil.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: %d face indices is not a multiple of 3", ErrInvalidMesh, len(faces))
	}
	numTriangles := len(faces) / 3

	if options == nil {
		options = &TriangleMeshOptions{}
	}
	if options.Normals != nil && len(options.Normals) != numTriangles {
		return nil, fmt.Errorf("%w: %d normals for %d triangles", ErrInvalidMesh, len(options.Normals), numTriangles)
	}
	if options.Materials != nil && len(options.Materials) != numTriangles {
		return nil, fmt.Errorf("%w: %d materials for %d triangles", ErrInvalidMesh, len(options.Materials), numTriangles)
	}

	workingVertices := vertices
	if options.Rotation != nil {
		var center core.Vec3
		if options.Center != nil {
			center = *options.Center
		}
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			workingVertices[i] = rotateVertex(vertex.Subtract(center), *options.Rotation).Add(center)
		}
	}

	triangles := make([]Hittable, numTriangles)
	for i := range triangles {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, index := range []int{i0, i1, i2} {
			if index < 0 || index >= len(workingVertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidMesh, i, index, len(workingVertices))
			}
		}

		triangleMaterial := mat
		if options.Materials != nil {
			triangleMaterial = options.Materials[i]
		}

		v0, v1, v2 := workingVertices[i0], workingVertices[i1], workingVertices[i2]
		if options.Normals != nil {
			triangles[i] = NewTriangleWithNormal(v0, v1, v2, options.Normals[i], triangleMaterial)
		} else {
			triangles[i] = NewTriangle(v0, v1, v2, triangleMaterial)
		}
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
	}, nil
}

// Hit tests the ray against the mesh's BVH
func (tm *TriangleMesh) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	return tm.bvh.Hit(ray, rayT, sampler, hit)
}

// BoundingBox returns the box enclosing every triangle
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return len(tm.triangles)
}

// Triangles returns the individual triangles
func (tm *TriangleMesh) Triangles() []Hittable {
	return tm.triangles
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		sin, cos := math.Sincos(rotation.X)
		vertex = core.NewVec3(vertex.X, vertex.Y*cos-vertex.Z*sin, vertex.Y*sin+vertex.Z*cos)
	}
	if rotation.Y != 0 {
		sin, cos := math.Sincos(rotation.Y)
		vertex = core.NewVec3(vertex.X*cos+vertex.Z*sin, vertex.Y, -vertex.X*sin+vertex.Z*cos)
	}
	if rotation.Z != 0 {
		sin, cos := math.Sincos(rotation.Z)
		vertex = core.NewVec3(vertex.X*cos-vertex.Y*sin, vertex.X*sin+vertex.Y*cos, vertex.Z)
	}
	return vertex
}
