package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestDisc_Hit(t *testing.T) {
	disc := NewDisc(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
		frontFace bool
	}{
		{"center from above", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), true, 1, true},
		{"inside edge", core.NewRay(core.NewVec3(0.99, 1, 0), core.NewVec3(0, -1, 0)), true, 1, true},
		{"from below", core.NewRay(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0)), true, 2, false},
		{"outside radius", core.NewRay(core.NewVec3(1.5, 1, 0), core.NewVec3(0, -1, 0)), false, 0, false},
		{"parallel", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)), false, 0, false},
		{"behind origin", core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)), false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit material.HitRecord
			got := disc.Hit(tt.ray, core.NewInterval(0.001, 10), nil, &hit)
			if got != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, got)
			}
			if !got {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.frontFace {
				t.Errorf("Expected front face %v, got %v", tt.frontFace, hit.FrontFace)
			}
		})
	}
}

func TestDisc_UV(t *testing.T) {
	disc := NewDisc(core.NewVec3(1, 2, 3), core.NewVec3(0, 0, 1), 2, nil)

	var hit material.HitRecord
	if !disc.Hit(core.NewRay(core.NewVec3(1, 2, 5), core.NewVec3(0, 0, -1)), core.NewInterval(0.001, 10), nil, &hit) {
		t.Fatal("Expected a hit at the centre")
	}
	if math.Abs(hit.UV.X-0.5) > 1e-9 || math.Abs(hit.UV.Y-0.5) > 1e-9 {
		t.Errorf("Expected centre UV (0.5, 0.5), got %v", hit.UV)
	}
}

func TestDisc_BoundingBox(t *testing.T) {
	tests := []struct {
		name    string
		normal  core.Vec3
		wantMin core.Vec3
		wantMax core.Vec3
	}{
		{"facing up", core.NewVec3(0, 1, 0), core.NewVec3(-2, -1e-4, -2), core.NewVec3(2, 1e-4, 2)},
		{"facing x", core.NewVec3(3, 0, 0), core.NewVec3(-1e-4, -2, -2), core.NewVec3(1e-4, 2, 2)},
		{"diagonal", core.NewVec3(1, 1, 0), core.NewVec3(-math.Sqrt2, -math.Sqrt2, -2), core.NewVec3(math.Sqrt2, math.Sqrt2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bbox := NewDisc(core.Vec3{}, tt.normal, 2, nil).BoundingBox()
			if bbox.Min().Subtract(tt.wantMin).Length() > 1e-9 || bbox.Max().Subtract(tt.wantMax).Length() > 1e-9 {
				t.Errorf("Expected [%v, %v], got [%v, %v]", tt.wantMin, tt.wantMax, bbox.Min(), bbox.Max())
			}
		})
	}
}
