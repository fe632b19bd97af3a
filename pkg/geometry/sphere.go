package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape. A non-zero Velocity moves the centre
// linearly over the shutter interval, Center at time 0 and Center+Velocity at time 1.
type Sphere struct {
	Center   core.Vec3
	Velocity core.Vec3
	Radius   float64
	Material material.Material
	bbox     core.AABB
}

// NewSphere creates a new stationary sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return NewMovingSphere(center, center, radius, material)
}

// NewMovingSphere creates a sphere whose centre travels from center0 to center1
func NewMovingSphere(center0, center1 core.Vec3, radius float64, material material.Material) *Sphere {
	s := &Sphere{
		Center:   center0,
		Velocity: center1.Subtract(center0),
		Radius:   radius,
		Material: material,
	}

	// Bound the whole swept volume
	r := math.Abs(radius)
	rvec := core.NewVec3(r, r, r)
	box0 := core.NewAABBFromPoints(center0.Subtract(rvec), center0.Add(rvec))
	box1 := core.NewAABBFromPoints(center1.Subtract(rvec), center1.Add(rvec))
	s.bbox = box0.Union(box1)

	return s
}

// centerAt returns the sphere centre at the given ray time
func (s *Sphere) centerAt(time float64) core.Vec3 {
	return s.Center.Add(s.Velocity.Multiply(time))
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	center := s.centerAt(ray.Time)

	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)

	// Find the nearest root that lies in the acceptable range
	root := (-halfB - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (-halfB + sqrtD) / a
		if !rayT.Surrounds(root) {
			return false
		}
	}

	hit.T = root
	hit.Point = ray.At(root)
	hit.Material = s.Material

	// Dividing by the signed radius flips the normal for hollow (negative radius) spheres
	outwardNormal := hit.Point.Subtract(center).Multiply(1.0 / s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.UV = sphereUV(outwardNormal)

	return true
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u: angle around the Y axis from X=-1, v: angle from Y=-1 to Y=+1.
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(math.Max(-1, math.Min(1, -p.Y)))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}

// BoundingBox returns the axis-aligned bounding box for this sphere over the shutter interval
func (s *Sphere) BoundingBox() core.AABB {
	return s.bbox
}
