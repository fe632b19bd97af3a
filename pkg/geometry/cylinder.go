package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Cylinder is a finite cylinder between two points, optionally closed by discs.
// UV is (angle around the axis, height fraction) on the side.
type Cylinder struct {
	BaseCenter core.Vec3
	TopCenter  core.Vec3
	Radius     float64
	Material   material.Material
	Capped     bool

	axis   core.Vec3 // Unit vector from base to top
	height float64
	right  core.Vec3 // Reference direction for the angle
	caps   [2]*Disc
	bbox   core.AABB
}

// NewCylinder creates a cylinder from baseCenter to topCenter
func NewCylinder(baseCenter, topCenter core.Vec3, radius float64, capped bool, mat material.Material) *Cylinder {
	axisVector := topCenter.Subtract(baseCenter)
	axis := axisVector.Normalize()

	c := &Cylinder{
		BaseCenter: baseCenter,
		TopCenter:  topCenter,
		Radius:     radius,
		Material:   mat,
		Capped:     capped,
		axis:       axis,
		height:     axisVector.Length(),
	}

	// Both end discs bound the whole cylinder
	base := NewDisc(baseCenter, axis.Negate(), radius, mat)
	top := NewDisc(topCenter, axis, radius, mat)
	c.right = top.Right
	c.bbox = base.BoundingBox().Union(top.BoundingBox())
	if capped {
		c.caps = [2]*Disc{base, top}
	}

	return c
}

// Hit finds the nearest side or cap intersection
func (c *Cylinder) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	hitAnything := c.hitSide(ray, rayT, hit)
	if hitAnything {
		rayT.Max = hit.T
	}

	for _, end := range c.caps {
		if end != nil && end.Hit(ray, rayT, sampler, hit) {
			hitAnything = true
			rayT.Max = hit.T
		}
	}

	return hitAnything
}

// hitSide solves the quadratic for the infinite cylinder and keeps roots within the height
func (c *Cylinder) hitSide(ray core.Ray, rayT core.Interval, hit *material.HitRecord) bool {
	delta := ray.Origin.Subtract(c.BaseCenter)
	dirAxis := ray.Direction.Dot(c.axis)
	deltaAxis := delta.Dot(c.axis)

	a := ray.Direction.LengthSquared() - dirAxis*dirAxis
	if math.Abs(a) < 1e-8 {
		// Parallel to the axis
		return false
	}
	halfB := delta.Dot(ray.Direction) - deltaAxis*dirAxis
	cc := delta.LengthSquared() - deltaAxis*deltaAxis - c.Radius*c.Radius

	discriminant := halfB*halfB - a*cc
	if discriminant < 0 {
		return false
	}
	sqrtD := math.Sqrt(discriminant)

	for _, t := range []float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if !rayT.Surrounds(t) {
			continue
		}
		point := ray.At(t)
		h := point.Subtract(c.BaseCenter).Dot(c.axis)
		if h < 0 || h > c.height {
			continue
		}

		radial := point.Subtract(c.BaseCenter.Add(c.axis.Multiply(h))).Multiply(1.0 / c.Radius)
		angle := math.Atan2(c.axis.Cross(c.right).Dot(radial), c.right.Dot(radial))
		if angle < 0 {
			angle += 2 * math.Pi
		}

		hit.T = t
		hit.Point = point
		hit.Material = c.Material
		hit.UV = core.NewVec2(angle/(2*math.Pi), h/c.height)
		hit.SetFaceNormal(ray, radial)
		return true
	}
	return false
}

// BoundingBox returns the box around both end discs
func (c *Cylinder) BoundingBox() core.AABB {
	return c.bbox
}
