package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// triangleEpsilon rejects rays nearly parallel to the triangle plane
const triangleEpsilon = 1e-8

// Triangle is a single flat triangle. UV holds the barycentric
// coordinates of the hit relative to V1 and V2.
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   material.Material
	normal     core.Vec3
	bbox       core.AABB
}

// NewTriangle creates a triangle whose normal follows the winding V0→V1→V2
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	normal := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return NewTriangleWithNormal(v0, v1, v2, normal, mat)
}

// NewTriangleWithNormal creates a triangle shaded with the given normal instead of the geometric one
func NewTriangleWithNormal(v0, v1, v2, normal core.Vec3, mat material.Material) *Triangle {
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
		normal:   normal.Normalize(),
		bbox: core.NewAABB(
			core.NewInterval(min(v0.X, v1.X, v2.X), max(v0.X, v1.X, v2.X)),
			core.NewInterval(min(v0.Y, v1.Y, v2.Y), max(v0.Y, v1.Y, v2.Y)),
			core.NewInterval(min(v0.Z, v1.Z, v2.Z), max(v0.Z, v1.Z, v2.Z)),
		),
	}
}

// Hit tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < triangleEpsilon {
		return false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return false
	}

	root := f * edge2.Dot(q)
	if !rayT.Surrounds(root) {
		return false
	}

	hit.T = root
	hit.Point = ray.At(root)
	hit.Material = t.Material
	hit.UV = core.NewVec2(u, v)
	hit.SetFaceNormal(ray, t.normal)

	return true
}

// BoundingBox returns the padded bounding box of the three vertices
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the shading normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
