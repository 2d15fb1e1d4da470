package geometry

import (
	"math"
	"sort"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Leaves hold exactly one primitive, internal nodes exactly two children.
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Primitive   Primitive // Leaf payload (nil for internal nodes)
}

// IsLeaf reports whether the node holds a primitive
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BVH is a binary tree of bounding boxes built by incremental insertion.
// It references primitives but does not own them, and it is never rebalanced.
type BVH struct {
	Root  *BVHNode
	count int
}

// NewBVH creates an empty BVH, optionally inserting the given primitives in order
func NewBVH(primitives ...Primitive) *BVH {
	bvh := &BVH{}
	for _, p := range primitives {
		bvh.Insert(p)
	}
	return bvh
}

// Len returns the number of inserted primitives
func (bvh *BVH) Len() int {
	return bvh.count
}

// Insert adds a primitive, descending greedily into the child whose box grows
// the least in surface area and splitting the leaf it lands on. Boxes along the
// visited path are refit bottom-up, so the cost is O(depth).
func (bvh *BVH) Insert(p Primitive) {
	leaf := &BVHNode{BoundingBox: p.BoundingBox(), Primitive: p}
	bvh.count++

	if bvh.Root == nil {
		bvh.Root = leaf
		return
	}

	path := make([]*BVHNode, 0, 32)
	node := bvh.Root
	for !node.IsLeaf() {
		path = append(path, node)
		if surfaceAreaIncrease(node.Left.BoundingBox, leaf.BoundingBox) <=
			surfaceAreaIncrease(node.Right.BoundingBox, leaf.BoundingBox) {
			node = node.Left
		} else {
			node = node.Right
		}
	}

	// The visited leaf becomes internal; its primitive moves down into a new leaf
	existing := &BVHNode{BoundingBox: node.BoundingBox, Primitive: node.Primitive}
	node.Primitive = nil
	node.Left = existing
	node.Right = leaf
	node.BoundingBox = existing.BoundingBox.Union(leaf.BoundingBox)

	for i := len(path) - 1; i >= 0; i-- {
		path[i].BoundingBox = path[i].Left.BoundingBox.Union(path[i].Right.BoundingBox)
	}
}

func surfaceAreaIncrease(box, added core.AABB) float64 {
	return box.Union(added).SurfaceArea() - box.SurfaceArea()
}

// Traverse returns every hit of ray against the primitives whose boxes the ray
// crosses, sorted ascending by distance. Nodes are visited with an explicit stack.
func (bvh *BVH) Traverse(ray core.Ray) []Intersection {
	if bvh.Root == nil {
		return nil
	}

	var hits []Intersection
	stack := make([]*BVHNode, 0, 64)
	stack = append(stack, bvh.Root)

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !node.BoundingBox.Hit(ray, 0, math.Inf(1)) {
			continue
		}

		if node.IsLeaf() {
			start := len(hits)
			hits = node.Primitive.Intersect(ray, hits)
			for i := start; i < len(hits); i++ {
				hits[i].Primitive = node.Primitive
			}
			continue
		}

		stack = append(stack, node.Right, node.Left)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].T < hits[j].T
	})
	return hits
}

// Walk visits every node depth-first, parents before children
func (bvh *BVH) Walk(visit func(node *BVHNode, depth int)) {
	if bvh.Root == nil {
		return
	}

	type entry struct {
		node  *BVHNode
		depth int
	}
	stack := []entry{{bvh.Root, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		visit(e.node, e.depth)
		if !e.node.IsLeaf() {
			stack = append(stack, entry{e.node.Right, e.depth + 1}, entry{e.node.Left, e.depth + 1})
		}
	}
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	depthSum := 0

	bvh.Walk(func(node *BVHNode, depth int) {
		stats.TotalNodes++
		stats.MaxDepth = max(stats.MaxDepth, depth)
		if node.IsLeaf() {
			stats.LeafNodes++
			depthSum += depth
		}
	})

	if stats.LeafNodes > 0 {
		stats.AvgDepth = float64(depthSum) / float64(stats.LeafNodes)
	}
	return stats
}
