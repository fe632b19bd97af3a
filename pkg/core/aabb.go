package core

// aabbPadding is the minimum extent of any AABB axis, so flat shapes stay intersectable
const aabbPadding = 1e-4

// AABB represents an axis-aligned bounding box as one interval per axis
type AABB struct {
	X, Y, Z Interval
}

var (
	// EmptyAABB bounds nothing and is the identity for Union
	EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}
	// UniverseAABB bounds all of space
	UniverseAABB = AABB{X: UniverseInterval, Y: UniverseInterval, Z: UniverseInterval}
)

// NewAABB creates an AABB from per-axis ranges. Reversed ranges are swapped and
// axes thinner than aabbPadding are widened by aabbPadding on each side.
func NewAABB(x, y, z Interval) AABB {
	aabb := AABB{X: ordered(x), Y: ordered(y), Z: ordered(z)}
	aabb.pad()
	return aabb
}

// NewAABBFromPoints creates an AABB with a and b as opposite corners
func NewAABBFromPoints(a, b Vec3) AABB {
	return NewAABB(
		NewInterval(a.X, b.X),
		NewInterval(a.Y, b.Y),
		NewInterval(a.Z, b.Z),
	)
}

func ordered(i Interval) Interval {
	if i.Min > i.Max {
		return Interval{Min: i.Max, Max: i.Min}
	}
	return i
}

func (aabb *AABB) pad() {
	if aabb.X.Size() < aabbPadding {
		aabb.X = aabb.X.Expand(aabbPadding)
	}
	if aabb.Y.Size() < aabbPadding {
		aabb.Y = aabb.Y.Expand(aabbPadding)
	}
	if aabb.Z.Size() < aabbPadding {
		aabb.Z = aabb.Z.Expand(aabbPadding)
	}
}

// Axis returns the interval for axis index 0=X, 1=Y, 2=Z
func (aabb AABB) Axis(i int) Interval {
	switch i {
	case 0:
		return aabb.X
	case 1:
		return aabb.Y
	default:
		return aabb.Z
	}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		X: aabb.X.Union(other.X),
		Y: aabb.Y.Union(other.Y),
		Z: aabb.Z.Union(other.Z),
	}
}

// Translate returns the AABB shifted by offset
func (aabb AABB) Translate(offset Vec3) AABB {
	return AABB{
		X: aabb.X.Shift(offset.X),
		Y: aabb.Y.Shift(offset.Y),
		Z: aabb.Z.Shift(offset.Z),
	}
}

// Min returns the minimum corner
func (aabb AABB) Min() Vec3 {
	return NewVec3(aabb.X.Min, aabb.Y.Min, aabb.Z.Min)
}

// Max returns the maximum corner
func (aabb AABB) Max() Vec3 {
	return NewVec3(aabb.X.Max, aabb.Y.Max, aabb.Z.Max)
}

// Hit tests if a ray intersects with this AABB using the slab method.
// A zero direction component yields infinite slab bounds; NaN bounds
// (origin exactly on a slab plane) fail both comparisons and leave rayT untouched.
func (aabb AABB) Hit(ray Ray, rayT Interval) bool {
	for axis := 0; axis < 3; axis++ {
		slab := aabb.Axis(axis)
		invDirection := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (slab.Min - origin) * invDirection
		t1 := (slab.Max - origin) * invDirection
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > rayT.Min {
			rayT.Min = t0
		}
		if t1 < rayT.Max {
			rayT.Max = t1
		}

		if rayT.Max <= rayT.Min {
			return false
		}
	}

	return true
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties resolve toward the earlier axis.
func (aabb AABB) LongestAxis() int {
	x, y, z := aabb.X.Size(), aabb.Y.Size(), aabb.Z.Size()
	if x >= y && x >= z {
		return 0
	}
	if y >= z {
		return 1
	}
	return 2
}

// Contains reports whether other lies entirely inside this AABB
func (aabb AABB) Contains(other AABB) bool {
	return aabb.X.Min <= other.X.Min && other.X.Max <= aabb.X.Max &&
		aabb.Y.Min <= other.Y.Min && other.Y.Max <= aabb.Y.Max &&
		aabb.Z.Min <= other.Z.Min && other.Z.Max <= aabb.Z.Max
}
