package geometry

import (
	"sync"

	"golang.org/x/exp/slices"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// parallelBuildThreshold: ranges at least this large build their two halves concurrently
const parallelBuildThreshold = 1024

// BVHNode is a node in a binary Bounding Volume Hierarchy. Children are either
// further nodes or the primitives themselves. A node built over a single
// object holds it in left and leaves right nil.
type BVHNode struct {
	left  Hittable
	right Hittable
	bbox  core.AABB
}

// NewBVH constructs a BVH over objects. The input slice is copied, never reordered.
// An empty input yields a node that never reports a hit.
func NewBVH(objects []Hittable) *BVHNode {
	if len(objects) == 0 {
		return &BVHNode{bbox: core.EmptyAABB}
	}

	// Sorting happens in place on disjoint sub-slices of this copy
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy)
}

// buildBVH splits objects at the median along the longest axis of their bounds
func buildBVH(objects []Hittable) *BVHNode {
	bbox := core.EmptyAABB
	for _, object := range objects {
		bbox = bbox.Union(object.BoundingBox())
	}
	axis := bbox.LongestAxis()

	node := &BVHNode{}
	switch len(objects) {
	case 1:
		node.left = objects[0]
	case 2:
		node.left = objects[0]
		node.right = objects[1]
	default:
		// Stable: equal keys keep their input order
		slices.SortStableFunc(objects, func(a, b Hittable) bool {
			return a.BoundingBox().Axis(axis).Min < b.BoundingBox().Axis(axis).Min
		})

		mid := len(objects) / 2
		if len(objects) >= parallelBuildThreshold {
			var wg sync.WaitGroup
			var left *BVHNode
			wg.Add(1)
			go func() {
				defer wg.Done()
				left = buildBVH(objects[:mid])
			}()
			right := buildBVH(objects[mid:])
			wg.Wait()
			node.left, node.right = left, right
		} else {
			node.left = buildBVH(objects[:mid])
			node.right = buildBVH(objects[mid:])
		}
	}

	// Recompute from the children actually stored
	node.bbox = node.left.BoundingBox()
	if node.right != nil {
		node.bbox = node.bbox.Union(node.right.BoundingBox())
	}

	return node
}

// Hit prunes on the node bounds, then tests the right child only for hits closer than the left one
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler, hit *material.HitRecord) bool {
	if n.left == nil || !n.bbox.Hit(ray, rayT) {
		return false
	}

	hitLeft := n.left.Hit(ray, rayT, sampler, hit)
	if n.right == nil {
		return hitLeft
	}

	if hitLeft {
		rayT.Max = hit.T
	}
	hitRight := n.right.Hit(ray, rayT, sampler, hit)

	return hitLeft || hitRight
}

// BoundingBox returns the union of the children's bounds
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// Left returns the left child, nil for an empty tree
func (n *BVHNode) Left() Hittable {
	return n.left
}

// Right returns the right child, nil for single-object nodes
func (n *BVHNode) Right() Hittable {
	return n.right
}

// Leaves returns the primitives stored in the tree, in traversal order
func (n *BVHNode) Leaves() []Hittable {
	var leaves []Hittable
	n.collectLeaves(&leaves)
	return leaves
}

func (n *BVHNode) collectLeaves(leaves *[]Hittable) {
	for _, child := range []Hittable{n.left, n.right} {
		if child == nil {
			continue
		}
		if node, ok := child.(*BVHNode); ok {
			node.collectLeaves(leaves)
		} else {
			*leaves = append(*leaves, child)
		}
	}
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int     // Interior and leaf nodes
	LeafNodes   int     // Nodes whose children are all primitives
	MaxDepth    int     // Depth of the deepest node, root at 0
	AvgDepth    float64 // Mean depth of leaf nodes
	TotalShapes int     // Primitives reachable from the root
}

// Stats returns statistics about the BVH structure
func (n *BVHNode) Stats() BVHStats {
	if n.left == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	n.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	leaf := true
	for _, child := range []Hittable{n.left, n.right} {
		if child == nil {
			continue
		}
		if node, ok := child.(*BVHNode); ok {
			leaf = false
			node.collectStats(depth+1, stats)
		} else {
			stats.TotalShapes++
		}
	}

	if leaf {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
	}
}
