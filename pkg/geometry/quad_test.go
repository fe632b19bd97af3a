package geometry

import (
	"fmt"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestQuad_Hit_BasicIntersection(t *testing.T) {
	// Create a 1x1 quad in the XZ plane at y=0
	corner := core.NewVec3(0, 0, 0)
	u := core.NewVec3(1, 0, 0) // X direction
	v := core.NewVec3(0, 0, 1) // Z direction
	quad := NewQuad(corner, u, v, nil)

	// Ray shooting down at the quad
	ray := core.NewRay(core.NewVec3(0.25, 1, 0.75), core.NewVec3(0, -1, 0))

	var hit material.HitRecord
	if !quad.Hit(ray, defaultRange, nil, &hit) {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if !vecNear(hit.Point, core.NewVec3(0.25, 0, 0.75), 1e-9) {
		t.Errorf("Expected hit point (0.25, 0, 0.75), got %v", hit.Point)
	}
	if math.Abs(hit.UV.X-0.25) > 1e-9 || math.Abs(hit.UV.Y-0.75) > 1e-9 {
		t.Errorf("Expected uv (0.25, 0.75), got %v", hit.UV)
	}

	// u × v = x × z = -y, so a ray from above hits the back face
	if hit.FrontFace {
		t.Error("Expected back face hit")
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Normal must face the ray, got %v", hit.Normal)
	}
}

func TestQuad_Hit_OutsideBounds(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), nil)

	tests := []struct {
		name      string
		rayOrigin core.Vec3
		rayDir    core.Vec3
	}{
		{"outside X bounds (negative)", core.NewVec3(-0.5, 1, 0.5), core.NewVec3(0, -1, 0)},
		{"outside X bounds (positive)", core.NewVec3(1.5, 1, 0.5), core.NewVec3(0, -1, 0)},
		{"outside Z bounds (negative)", core.NewVec3(0.5, 1, -0.5), core.NewVec3(0, -1, 0)},
		{"outside Z bounds (positive)", core.NewVec3(0.5, 1, 1.5), core.NewVec3(0, -1, 0)},
		{"parallel to plane", core.NewVec3(0.5, 1, 0.5), core.NewVec3(1, 0, 0)},
		{"pointing away", core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit material.HitRecord
			if quad.Hit(core.NewRay(tt.rayOrigin, tt.rayDir), defaultRange, nil, &hit) {
				t.Errorf("Expected miss, but got hit at t=%f", hit.T)
			}
		})
	}
}

func TestQuad_Hit_Parallelogram(t *testing.T) {
	// Skewed edges: the interior test works in the (u, v) basis, not axis-aligned
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(1, 1, 0), nil)

	tests := []struct {
		x, y   float64
		expect bool
	}{
		{1.5, 0.5, true},
		{2.9, 0.95, true},
		{0.1, 0.9, false},
		{2.5, 0.1, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("(%.2f,%.2f)", tt.x, tt.y), func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(tt.x, tt.y, 1), core.NewVec3(0, 0, -1))
			var hit material.HitRecord
			if got := quad.Hit(ray, defaultRange, nil, &hit); got != tt.expect {
				t.Errorf("Expected hit=%t, got %t", tt.expect, got)
			}
		})
	}
}

func TestQuad_BoundingBox(t *testing.T) {
	quad := NewQuad(core.NewVec3(1, 2, 3), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 4), nil)
	bbox := quad.BoundingBox()

	if bbox.X.Min != 1 || bbox.X.Max != 3 || bbox.Z.Min != 3 || bbox.Z.Max != 7 {
		t.Errorf("Unexpected bounds %v", bbox)
	}
	// Flat in Y, padded so the slab test still works
	if bbox.Y.Size() <= 0 || !bbox.Y.Contains(2) {
		t.Errorf("Expected padded Y bounds around 2, got %v", bbox.Y)
	}

	// Skewed quad: the opposite diagonal reaches past the first one
	skew := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(-1, 1, 0), nil)
	if b := skew.BoundingBox(); b.X.Min != -1 || b.X.Max != 1 {
		t.Errorf("Expected X bounds [-1, 1] from both diagonals, got %v", b.X)
	}
}

func TestBox_SixOutwardFaces(t *testing.T) {
	box := NewBox(core.NewVec3(1, 1, 1), core.NewVec3(-1, -1, -1), nil)

	if len(box.Objects) != 6 {
		t.Fatalf("Expected 6 faces, got %d", len(box.Objects))
	}

	// Faces are padded, so the box extends slightly past the corners
	bbox := box.BoundingBox()
	for axis := 0; axis < 3; axis++ {
		if math.Abs(bbox.Axis(axis).Min+1) > 1e-3 || math.Abs(bbox.Axis(axis).Max-1) > 1e-3 {
			t.Errorf("Expected axis %d bounds [-1, 1], got %v", axis, bbox.Axis(axis))
		}
	}

	// Every face seen from outside along its normal is a front face
	directions := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}
	for _, d := range directions {
		ray := core.NewRay(d.Multiply(5), d.Negate())
		var hit material.HitRecord
		if !box.Hit(ray, defaultRange, nil, &hit) {
			t.Errorf("Expected hit from %v", d)
			continue
		}
		if math.Abs(hit.T-4) > 1e-9 {
			t.Errorf("From %v: expected t=4, got %f", d, hit.T)
		}
		if !hit.FrontFace || !vecNear(hit.Normal, d, 1e-9) {
			t.Errorf("From %v: expected outward front face, got normal %v front=%t", d, hit.Normal, hit.FrontFace)
		}
	}
}

func TestQuad_CoplanarKeepsFirstHit(t *testing.T) {
	first := material.NewLambertian(core.NewVec3(1, 0, 0))
	second := material.NewLambertian(core.NewVec3(0, 0, 1))
	qa := NewQuad(core.NewVec3(-1, -1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), first)
	qb := NewQuad(core.NewVec3(-1, -1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), second)

	tests := []struct {
		name  string
		world Hittable
	}{
		{"list", NewHittableList(qa, qb)},
		{"bvh", NewBVH([]Hittable{qa, qb})},
	}

	ray := core.NewRay(core.NewVec3(0.1, 0.2, 0), core.NewVec3(0, 0, -1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit material.HitRecord
			if !tt.world.Hit(ray, defaultRange, nil, &hit) {
				t.Fatal("Expected hit")
			}
			if hit.Material != material.Material(first) {
				t.Errorf("Expected the first quad's material, got %v", hit.Material)
			}
			if math.Abs(hit.T-1) > 1e-9 {
				t.Errorf("Expected t=1, got %f", hit.T)
			}
		})
	}
}

func TestQuad_RejectsHitAtRangeEnd(t *testing.T) {
	quad := NewQuad(core.NewVec3(-1, -1, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	var hit material.HitRecord
	if quad.Hit(ray, core.NewInterval(0.001, 1), nil, &hit) {
		t.Error("Expected a hit exactly at rayT.Max to be rejected")
	}
	if !quad.Hit(ray, core.NewInterval(0.001, 1.5), nil, &hit) {
		t.Error("Expected a hit inside the range")
	}
}
