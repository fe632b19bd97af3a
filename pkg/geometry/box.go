package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewBox returns the six quad faces of the axis-aligned box with opposite corners a and b.
// Face normals point outward.
func NewBox(a, b core.Vec3, mat material.Material) *HittableList {
	lo := core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
	hi := core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))

	dx := core.NewVec3(hi.X-lo.X, 0, 0)
	dy := core.NewVec3(0, hi.Y-lo.Y, 0)
	dz := core.NewVec3(0, 0, hi.Z-lo.Z)

	return NewHittableList(
		NewQuad(core.NewVec3(lo.X, lo.Y, hi.Z), dx, dy, mat),          // front
		NewQuad(core.NewVec3(hi.X, lo.Y, hi.Z), dz.Negate(), dy, mat), // right
		NewQuad(core.NewVec3(hi.X, lo.Y, lo.Z), dx.Negate(), dy, mat), // back
		NewQuad(core.NewVec3(lo.X, lo.Y, lo.Z), dz, dy, mat),          // left
		NewQuad(core.NewVec3(lo.X, hi.Y, hi.Z), dx, dz.Negate(), mat), // top
		NewQuad(core.NewVec3(lo.X, lo.Y, lo.Z), dx, dz, mat),          // bottom
	)
}
