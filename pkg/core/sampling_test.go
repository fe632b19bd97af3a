package core

import (
	"math"
	"testing"
)

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(42, 3)
	b := NewSeededSampler(42, 3)
	c := NewSeededSampler(42, 4)

	differs := false
	for i := 0; i < 100; i++ {
		va, vb, vc := a.Get1D(), b.Get1D(), c.Get1D()
		if va != vb {
			t.Fatalf("Same seed and stream diverged at %d: %f vs %f", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("Sample out of range: %f", va)
		}
		if va != vc {
			differs = true
		}
	}
	if !differs {
		t.Error("Different streams should produce different sequences")
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(1, 0)
	var mean Vec3
	const n = 20000

	for i := 0; i < n; i++ {
		dir := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(dir.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit length, got %f", dir.Length())
		}
		mean = mean.Add(dir)
	}

	mean = mean.Multiply(1.0 / n)
	if mean.Length() > 0.05 {
		t.Errorf("Uniform sphere samples should average to ~0, got %v", mean)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(2, 0)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.Z != 0 {
			t.Fatalf("Disk sample should lie in the XY plane, got %v", p)
		}
		if p.Length() > 1+1e-9 {
			t.Fatalf("Disk sample outside unit disk: %v", p)
		}
	}
}

func TestSamplePointInUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(3, 0)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1+1e-9 {
			t.Fatalf("Sphere sample outside unit sphere: %v", p)
		}
	}
}
