package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Every node has exactly two children; a leaf's children are the objects themselves.
type BVHNode struct {
	NotLight
	Left  core.Hittable
	Right core.Hittable
	bbox  core.AABB
	empty bool
}

// NewBVH constructs a BVH over objects. The input slice is not modified.
// An empty input produces a node that never reports a hit.
func NewBVH(objects []core.Hittable) *BVHNode {
	if len(objects) == 0 {
		return &BVHNode{bbox: core.EmptyAABB, empty: true}
	}

	// Sorting happens in place, so work on a copy
	objectsCopy := make([]core.Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy)
}

// buildBVH recursively splits the span at the midpoint along the longest axis of its bounds
func buildBVH(objects []core.Hittable) *BVHNode {
	bbox := core.EmptyAABB
	for _, object := range objects {
		bbox = core.SurroundingBox(bbox, object.BoundingBox())
	}

	node := &BVHNode{bbox: bbox}
	switch len(objects) {
	case 1:
		node.Left, node.Right = objects[0], objects[0]
	case 2:
		node.Left, node.Right = objects[0], objects[1]
	default:
		sortByAxis(objects, bbox.LongestAxis())
		mid := len(objects) / 2
		node.Left = buildBVH(objects[:mid])
		node.Right = buildBVH(objects[mid:])
	}
	return node
}

// sortByAxis orders objects by the lower bound of their boxes along axis
func sortByAxis(objects []core.Hittable, axis int) {
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].BoundingBox().AxisInterval(axis).Min < objects[j].BoundingBox().AxisInterval(axis).Min
	})
}

// Hit returns the nearest hit among both children. The right child is only
// searched up to the left child's hit distance.
func (n *BVHNode) Hit(ray core.Ray, rayT core.Interval, sampler core.Sampler) (*core.HitRecord, bool) {
	if n.empty || !n.bbox.Hit(ray, rayT) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, rayT, sampler)

	rightMax := rayT.Max
	if hitLeft {
		rightMax = leftHit.T
	}
	rightHit, hitRight := n.Right.Hit(ray, core.NewInterval(rayT.Min, rightMax), sampler)

	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the union of both children's boxes
func (n *BVHNode) BoundingBox() core.AABB {
	return n.bbox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int // Interior nodes including the root
	LeafSlots  int // Child slots holding objects rather than nodes
	MaxDepth   int
	AvgDepth   float64 // Mean depth of leaf slots
}

// Stats walks the tree and returns its shape
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	if n.empty {
		return stats
	}

	n.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafSlots > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafSlots)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for _, child := range []core.Hittable{n.Left, n.Right} {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
		} else {
			stats.LeafSlots++
			stats.AvgDepth += float64(depth + 1)
		}
	}
}
