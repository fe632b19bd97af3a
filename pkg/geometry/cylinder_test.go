package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestCylinder_BoundingBox(t *testing.T) {
	tests := []struct {
		name       string
		baseCenter core.Vec3
		topCenter  core.Vec3
		radius     float64
		wantMin    core.Vec3
		wantMax    core.Vec3
	}{
		{"axis-aligned Y", core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 1, core.NewVec3(-1, 0, -1), core.NewVec3(1, 2, 1)},
		{"axis-aligned Z", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 3), 0.5, core.NewVec3(-0.5, -0.5, 0), core.NewVec3(0.5, 0.5, 3)},
		{"offset position", core.NewVec3(5, 5, 5), core.NewVec3(5, 8, 5), 2, core.NewVec3(3, 5, 3), core.NewVec3(7, 8, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bbox := NewCylinder(tt.baseCenter, tt.topCenter, tt.radius, false, nil).BoundingBox()

			// Axes along the cylinder are padded by the flat end discs
			const tolerance = 2e-4
			if bbox.Min().Subtract(tt.wantMin).Length() > tolerance || bbox.Max().Subtract(tt.wantMax).Length() > tolerance {
				t.Errorf("Expected [%v, %v], got [%v, %v]", tt.wantMin, tt.wantMax, bbox.Min(), bbox.Max())
			}
		})
	}
}

func TestCylinder_HitSide(t *testing.T) {
	cyl := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 1, false, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	tests := []struct {
		name      string
		origin    core.Vec3
		dir       core.Vec3
		wantHit   bool
		wantT     float64
		wantFront bool
	}{
		{"hit from outside", core.NewVec3(2, 1, 0), core.NewVec3(-1, 0, 0), true, 1, true},
		{"hit from inside", core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0), true, 1, false},
		{"miss above", core.NewVec3(2, 3, 0), core.NewVec3(-1, 0, 0), false, 0, false},
		{"miss below", core.NewVec3(2, -1, 0), core.NewVec3(-1, 0, 0), false, 0, false},
		{"parallel to axis", core.NewVec3(0.5, -1, 0), core.NewVec3(0, 1, 0), false, 0, false},
		{"pointing away", core.NewVec3(2, 1, 0), core.NewVec3(1, 0, 0), false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit material.HitRecord
			got := cyl.Hit(core.NewRay(tt.origin, tt.dir), core.NewInterval(0.001, 1000), nil, &hit)
			if got != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, got)
			}
			if !got {
				return
			}
			if !approxEqual(hit.T, tt.wantT, 1e-9) {
				t.Errorf("Expected t=%f, got %f", tt.wantT, hit.T)
			}
			if hit.FrontFace != tt.wantFront {
				t.Errorf("Expected front face %v, got %v", tt.wantFront, hit.FrontFace)
			}
			if !approxEqual(hit.UV.Y, 0.5, 1e-9) {
				t.Errorf("Expected v=0.5 at mid height, got %f", hit.UV.Y)
			}
		})
	}
}

func TestCylinder_Caps(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	down := core.NewRay(core.NewVec3(0.3, 5, 0.2), core.NewVec3(0, -1, 0))

	tests := []struct {
		name    string
		capped  bool
		wantHit bool
		wantT   float64
	}{
		{"open cylinder passes through", false, false, 0},
		{"capped cylinder hits top", true, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cyl := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 1, tt.capped, mat)

			var hit material.HitRecord
			got := cyl.Hit(down, core.NewInterval(0.001, 1000), nil, &hit)
			if got != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, got)
			}
			if got {
				if !approxEqual(hit.T, tt.wantT, 1e-9) || !hit.FrontFace {
					t.Errorf("Expected front-face cap hit at t=%f, got t=%f front=%v", tt.wantT, hit.T, hit.FrontFace)
				}
			}
		})
	}
}

func TestCylinder_CapOccludesFarSide(t *testing.T) {
	cyl := NewCylinder(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 1, true, nil)

	// Enters through the top cap before reaching the side wall
	ray := core.NewRay(core.NewVec3(0, 2.5, 0), core.NewVec3(1, -1, 0).Normalize())
	var hit material.HitRecord
	if !cyl.Hit(ray, core.NewInterval(0.001, 1000), nil, &hit) {
		t.Fatal("Expected a hit")
	}
	if !approxEqual(hit.Point.Y, 2, 1e-9) {
		t.Errorf("Expected the top cap at y=2, got %v", hit.Point)
	}
}
