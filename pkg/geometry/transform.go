package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate moves a wrapped object by a fixed offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so it appears shifted by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Translate(offset),
	}
}

// Hit moves the ray into object space, intersects, and moves the hit point back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	if !t.Object.Hit(offsetRay, rayT, sampler, hit) {
		return false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return true
}

// BoundingBox returns the shifted bounds of the wrapped object
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// RotateY rotates a wrapped object about the Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	bbox     core.AABB
}

// NewRotateY wraps object rotated by angle degrees about the Y axis
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	// Rotate all 8 corners and bound the result
	box := object.BoundingBox()
	lo := core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corner := core.NewVec3(
					pick(i, box.X),
					pick(j, box.Y),
					pick(k, box.Z),
				)
				rotated := r.toWorld(corner)

				lo = core.NewVec3(math.Min(lo.X, rotated.X), math.Min(lo.Y, rotated.Y), math.Min(lo.Z, rotated.Z))
				hi = core.NewVec3(math.Max(hi.X, rotated.X), math.Max(hi.Y, rotated.Y), math.Max(hi.Z, rotated.Z))
			}
		}
	}

	r.bbox = core.NewAABBFromPoints(lo, hi)
	return r
}

func pick(i int, interval core.Interval) float64 {
	if i == 0 {
		return interval.Min
	}
	return interval.Max
}

// toObject rotates a world-space vector by -theta
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates an object-space vector by +theta
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, intersects, and rotates point and normal back
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)

	if !r.Object.Hit(rotated, rayT, sampler, hit) {
		return false
	}

	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return true
}

// BoundingBox returns the bounds of the rotated object
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}
