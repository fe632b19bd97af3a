package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3         // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Normal   core.Vec3         // Unit normal (U × V normalized)
	Material material.Material // Material of the quad
	D        float64           // Plane equation constant: normal · p = D
	W        core.Vec3         // n / (n · n) with n = U × V, for planar coordinates
	bbox     core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material material.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()

	// Both diagonals, so the box covers all four corners
	diagonal1 := core.NewAABBFromPoints(corner, corner.Add(u).Add(v))
	diagonal2 := core.NewAABBFromPoints(corner.Add(u), corner.Add(v))

	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: material,
		D:        normal.Dot(corner),
		W:        n.Multiply(1.0 / n.Dot(n)),
		bbox:     diagonal1.Union(diagonal2),
	}
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if !rayT.Surrounds(t) {
		return false
	}

	// Planar coordinates of the hit point in the (U, V) basis
	hitPoint := ray.At(t)
	planar := hitPoint.Subtract(q.Corner)
	alpha := q.W.Dot(planar.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(planar))

	if !isInterior(alpha, beta) {
		return false
	}

	hit.T = t
	hit.Point = hitPoint
	hit.Material = q.Material
	hit.UV = core.NewVec2(alpha, beta)
	hit.SetFaceNormal(ray, q.Normal)

	return true
}

// isInterior accepts planar coordinates in [0, 1), so quads sharing an edge do not both claim it
func isInterior(alpha, beta float64) bool {
	return alpha >= 0 && alpha < 1 && beta >= 0 && beta < 1
}

// BoundingBox returns the padded bounding box of the quad
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}
