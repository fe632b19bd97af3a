package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable is anything a ray can intersect: primitives, lists, BVH nodes and transforms.
// Implementations are read-only after construction and safe to share across goroutines.
type Hittable interface {
	// Hit reports whether the ray hits within rayT and, if so, fills in hit.
	// The record is left untouched on a miss.
	Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool
	BoundingBox() core.AABB
}

// HittableList is a flat union of objects tested one after another
type HittableList struct {
	Objects []Hittable
	bbox    core.AABB
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{bbox: core.EmptyAABB}
	for _, object := range objects {
		list.Add(object)
	}
	return list
}

// Add appends an object and grows the bounding box to include it
func (l *HittableList) Add(object Hittable) {
	if len(l.Objects) == 0 {
		l.bbox = core.EmptyAABB
	}
	l.Objects = append(l.Objects, object)
	l.bbox = l.bbox.Union(object.BoundingBox())
}

// Hit returns the closest hit over all objects
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	hitAnything := false
	closestSoFar := rayT.Max

	for _, object := range l.Objects {
		if object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), sampler, hit) {
			hitAnything = true
			closestSoFar = hit.T
		}
	}

	return hitAnything
}

// BoundingBox returns the union of all object bounds
func (l *HittableList) BoundingBox() core.AABB {
	if len(l.Objects) == 0 {
		return core.EmptyAABB
	}
	return l.bbox
}
