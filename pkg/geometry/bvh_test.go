package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MockShape for testing
type MockShape struct {
	id          int
	boundingBox core.AABB
	hitFn       func(ray core.Ray, rayT core.Interval) (float64, bool)
}

func (m *MockShape) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	if m.hitFn == nil {
		return false
	}
	t, ok := m.hitFn(ray, rayT)
	if !ok {
		return false
	}
	hit.T = t
	return true
}

func (m *MockShape) BoundingBox() core.AABB {
	return m.boundingBox
}

func unitBoxAt(x float64) core.AABB {
	return core.NewAABBFromPoints(core.NewVec3(x, 0, 0), core.NewVec3(x+1, 1, 1))
}

// randomSpheres scatters n spheres over a grid with one sphere per cell, so bounds never overlap
func randomSpheres(n int, seed uint64) []Hittable {
	sampler := core.NewSeededSampler(seed, 0)
	side := int(math.Ceil(math.Cbrt(float64(n))))
	objects := make([]Hittable, 0, n)

	for i := 0; i < n; i++ {
		cell := core.NewVec3(float64(i%side), float64((i/side)%side), float64(i/(side*side))).Multiply(2)
		jitter := sampler.Get3D().Multiply(0.4)
		radius := 0.2 + 0.3*sampler.Get1D()
		mat := material.NewLambertian(sampler.Get3D())
		objects = append(objects, NewSphere(cell.Add(jitter).Add(core.NewVec3(0.8, 0.8, 0.8)), radius, mat))
	}
	return objects
}

// checkBounds verifies every node's box is exactly the union of its children's boxes
func checkBounds(t *testing.T, node *BVHNode) {
	t.Helper()

	expected := node.Left().BoundingBox()
	if node.Right() != nil {
		expected = expected.Union(node.Right().BoundingBox())
	}
	if node.BoundingBox() != expected {
		t.Fatalf("Node bounds %v differ from union of children %v", node.BoundingBox(), expected)
	}

	for _, child := range []Hittable{node.Left(), node.Right()} {
		if inner, ok := child.(*BVHNode); ok {
			checkBounds(t, inner)
		}
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	var hit material.HitRecord
	if bvh.Hit(ray, defaultRange, nil, &hit) {
		t.Error("Expected no hit for empty BVH")
	}
	if stats := bvh.Stats(); stats != (BVHStats{}) {
		t.Errorf("Expected zero stats for empty BVH, got %+v", stats)
	}
	if len(bvh.Leaves()) != 0 {
		t.Errorf("Expected no leaves, got %d", len(bvh.Leaves()))
	}
}

func TestBVH_SingleAndPair(t *testing.T) {
	shape := &MockShape{
		boundingBox: unitBoxAt(0),
		hitFn: func(ray core.Ray, rayT core.Interval) (float64, bool) {
			return 1.0, rayT.Contains(1.0)
		},
	}

	bvh := NewBVH([]Hittable{shape})
	if bvh.Left() != shape || bvh.Right() != nil {
		t.Fatal("Single object should be stored as the only child")
	}
	stats := bvh.Stats()
	if stats.TotalNodes != 1 || stats.LeafNodes != 1 || stats.TotalShapes != 1 {
		t.Errorf("Unexpected stats for single shape: %+v", stats)
	}

	ray := core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1))
	var hit material.HitRecord
	if !bvh.Hit(ray, defaultRange, nil, &hit) || hit.T != 1.0 {
		t.Errorf("Expected hit at t=1 through single-child node, got t=%f", hit.T)
	}

	other := &MockShape{boundingBox: unitBoxAt(3)}
	pair := NewBVH([]Hittable{shape, other})
	if pair.Left() != shape || pair.Right() != other {
		t.Error("Two objects should be stored directly as children")
	}
	checkBounds(t, pair)
}

func TestBVH_Stats(t *testing.T) {
	objects := []Hittable{
		&MockShape{boundingBox: unitBoxAt(0)},
		&MockShape{boundingBox: unitBoxAt(2)},
		&MockShape{boundingBox: unitBoxAt(4)},
		&MockShape{boundingBox: unitBoxAt(6)},
	}

	stats := NewBVH(objects).Stats()
	expected := BVHStats{TotalNodes: 3, LeafNodes: 2, MaxDepth: 1, AvgDepth: 1, TotalShapes: 4}
	if stats != expected {
		t.Errorf("Expected %+v, got %+v", expected, stats)
	}
}

func TestBVH_BoundsAreUnionOfChildren(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 64, 257} {
		bvh := NewBVH(randomSpheres(n, uint64(n)))
		checkBounds(t, bvh)
	}
}

func TestBVH_LeavesRoundTrip(t *testing.T) {
	objects := randomSpheres(200, 3)
	bvh := NewBVH(objects)

	leaves := bvh.Leaves()
	if len(leaves) != len(objects) {
		t.Fatalf("Expected %d leaves, got %d", len(objects), len(leaves))
	}

	seen := make(map[Hittable]int)
	for _, leaf := range leaves {
		seen[leaf]++
	}
	for i, object := range objects {
		if seen[object] != 1 {
			t.Errorf("Object %d appears %d times in the tree", i, seen[object])
		}
	}

	if stats := bvh.Stats(); stats.TotalShapes != len(objects) {
		t.Errorf("Expected %d shapes in stats, got %d", len(objects), stats.TotalShapes)
	}
}

func TestBVH_DoesNotReorderInput(t *testing.T) {
	objects := []Hittable{
		&MockShape{id: 0, boundingBox: unitBoxAt(5)},
		&MockShape{id: 1, boundingBox: unitBoxAt(1)},
		&MockShape{id: 2, boundingBox: unitBoxAt(3)},
		&MockShape{id: 3, boundingBox: unitBoxAt(0)},
	}
	NewBVH(objects)

	for i, object := range objects {
		if object.(*MockShape).id != i {
			t.Fatalf("Input slice was reordered at index %d", i)
		}
	}
}

func TestBVH_StableOrderForEqualKeys(t *testing.T) {
	objects := make([]Hittable, 5)
	for i := range objects {
		objects[i] = &MockShape{id: i, boundingBox: unitBoxAt(0)}
	}

	for i, leaf := range NewBVH(objects).Leaves() {
		if leaf.(*MockShape).id != i {
			t.Errorf("Equal keys should keep input order: position %d holds %d", i, leaf.(*MockShape).id)
		}
	}
}

func TestBVH_MultipleHitsFindsClosest(t *testing.T) {
	makeHitFn := func(tValue float64) func(ray core.Ray, rayT core.Interval) (float64, bool) {
		return func(ray core.Ray, rayT core.Interval) (float64, bool) {
			return tValue, rayT.Contains(tValue)
		}
	}

	// Overlapping boxes so every shape is tested
	box := core.NewAABBFromPoints(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))
	objects := []Hittable{
		&MockShape{boundingBox: box, hitFn: makeHitFn(2.0)},
		&MockShape{boundingBox: box, hitFn: makeHitFn(1.5)},
		&MockShape{boundingBox: box, hitFn: makeHitFn(3.0)},
		&MockShape{boundingBox: box, hitFn: makeHitFn(0.75)},
		&MockShape{boundingBox: box, hitFn: makeHitFn(2.5)},
	}

	ray := core.NewRay(core.NewVec3(0.5, 0.5, -1), core.NewVec3(0, 0, 1))
	var hit material.HitRecord
	if !NewBVH(objects).Hit(ray, defaultRange, nil, &hit) {
		t.Fatal("Expected hit")
	}
	if hit.T != 0.75 {
		t.Errorf("Expected closest hit t=0.75, got %f", hit.T)
	}
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	// 2000 objects also exercises the concurrent subtree build
	for _, n := range []int{10, 150, 2000} {
		objects := randomSpheres(n, uint64(100+n))
		bvh := NewBVH(objects)
		list := NewHittableList(objects...)

		if bvh.BoundingBox() != list.BoundingBox() {
			t.Errorf("n=%d: BVH bounds %v differ from list bounds %v", n, bvh.BoundingBox(), list.BoundingBox())
		}

		sampler := core.NewSeededSampler(uint64(n), 1)
		extent := list.BoundingBox().Max()
		for i := 0; i < 2000; i++ {
			origin := sampler.Get3D().MultiplyVec(extent.Multiply(1.5)).Subtract(extent.Multiply(0.25))
			direction := core.SampleOnUnitSphere(sampler.Get2D())
			ray := core.NewRay(origin, direction)

			var bvhHit, listHit material.HitRecord
			gotBVH := bvh.Hit(ray, defaultRange, nil, &bvhHit)
			gotList := list.Hit(ray, defaultRange, nil, &listHit)

			if gotBVH != gotList {
				t.Fatalf("n=%d ray %d: BVH hit=%t, linear scan hit=%t", n, i, gotBVH, gotList)
			}
			if !gotBVH {
				continue
			}
			if math.Abs(bvhHit.T-listHit.T) > 1e-9 || bvhHit.Material != listHit.Material {
				t.Fatalf("n=%d ray %d: BVH t=%f, linear scan t=%f", n, i, bvhHit.T, listHit.T)
			}
		}
	}
}

func TestHittableList(t *testing.T) {
	list := NewHittableList()
	if list.BoundingBox() != core.EmptyAABB {
		t.Errorf("Empty list should have empty bounds, got %v", list.BoundingBox())
	}

	var hit material.HitRecord
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if list.Hit(ray, defaultRange, nil, &hit) {
		t.Error("Empty list should never hit")
	}

	near := NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	far := NewSphere(core.NewVec3(0, 0, -5), 1, nil)
	list.Add(far)
	list.Add(near)

	if !list.Hit(ray, defaultRange, nil, &hit) || math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected nearest hit at t=4, got %f", hit.T)
	}

	bbox := list.BoundingBox()
	if bbox.Z.Min != -6 || bbox.Z.Max != 1 {
		t.Errorf("Expected Z bounds [-6, 1], got %v", bbox.Z)
	}

	var zero HittableList
	zero.Add(near)
	if zero.BoundingBox() != near.BoundingBox() {
		t.Errorf("Zero-value list should bound its first object, got %v", zero.BoundingBox())
	}
}
