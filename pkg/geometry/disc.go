package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Disc is a flat circle. UV maps the disc into the unit square.
type Disc struct {
	Center   core.Vec3
	Normal   core.Vec3 // Unit normal, the front side
	Radius   float64
	Material material.Material
	Right    core.Vec3 // In-plane basis vector
	Up       core.Vec3 // In-plane basis vector, Normal × Right
	bbox     core.AABB
}

// NewDisc creates a disc facing along normal
func NewDisc(center, normal core.Vec3, radius float64, mat material.Material) *Disc {
	n := normal.Normalize()

	var right core.Vec3
	if math.Abs(n.X) > 0.1 {
		right = core.NewVec3(0, 1, 0)
	} else {
		right = core.NewVec3(1, 0, 0)
	}
	right = right.Cross(n).Normalize()
	up := n.Cross(right)

	// The disc reaches radius*sqrt(1-n_i²) along each axis
	extent := core.NewVec3(
		radius*math.Sqrt(math.Max(0, 1-n.X*n.X)),
		radius*math.Sqrt(math.Max(0, 1-n.Y*n.Y)),
		radius*math.Sqrt(math.Max(0, 1-n.Z*n.Z)),
	)

	return &Disc{
		Center:   center,
		Normal:   n,
		Radius:   radius,
		Material: mat,
		Right:    right,
		Up:       up,
		bbox:     core.NewAABBFromPoints(center.Subtract(extent), center.Add(extent)),
	}
}

// Hit intersects the disc's plane and keeps points within Radius of Center
func (d *Disc) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return false
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if !rayT.Surrounds(t) {
		return false
	}

	point := ray.At(t)
	offset := point.Subtract(d.Center)
	if offset.LengthSquared() > d.Radius*d.Radius {
		return false
	}

	hit.T = t
	hit.Point = point
	hit.Material = d.Material
	hit.UV = core.NewVec2(
		0.5+offset.Dot(d.Right)/(2*d.Radius),
		0.5+offset.Dot(d.Up)/(2*d.Radius),
	)
	hit.SetFaceNormal(ray, d.Normal)

	return true
}

// BoundingBox returns the padded box around the disc
func (d *Disc) BoundingBox() core.AABB {
	return d.bbox
}
