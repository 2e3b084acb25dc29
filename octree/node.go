package octree

import (
	"github.com/golang/geo/r3"

	"github.com/meshtree/meshtree/mesh"
	"github.com/meshtree/meshtree/spatialmath"
	"github.com/meshtree/meshtree/utils"
)

// relativeMinFaceExtent steers how deep faces sink: a face keeps descending
// into children while its extent is at most this fraction of the node width.
// Must stay below 0.5.
const relativeMinFaceExtent = 0.1

// faceToInsert carries a face through the insertion descent with its centroid
// and extent computed once up front.
type faceToInsert struct {
	id             mesh.FaceID
	tri            *spatialmath.Triangle
	center         r3.Vector
	extent         float64
	cachePrimitive bool
}

func newFaceToInsert(id mesh.FaceID, tri *spatialmath.Triangle, cachePrimitive bool) faceToInsert {
	return faceToInsert{
		id:             id,
		tri:            tri,
		center:         tri.Centroid(),
		extent:         tri.Extent(),
		cachePrimitive: cachePrimitive,
	}
}

// node is one cube of the octree. Its geometry is fixed at construction; only
// the children, resident faces and cached primitives change over its life.
type node struct {
	center r3.Vector
	width  float64
	depth  int
	parent *node

	// children is nil or holds all eight octants in the order childIndex addresses.
	children []*node

	// faceIDs is slot addressed; the octree's location index records slots and
	// is repaired on every swap-remove.
	faceIDs    []mesh.FaceID
	primitives map[mesh.FaceID]*spatialmath.Triangle
}

func newNode(center r3.Vector, width float64, depth int, parent *node) *node {
	return &node{center: center, width: width, depth: depth, parent: parent}
}

// exactBounds is the node's own cube. Children exactly partition it.
func (n *node) exactBounds() spatialmath.AABox {
	return spatialmath.NewAABoxFromCenter(n.center, r3.Vector{X: n.width, Y: n.width, Z: n.width})
}

// looseBounds is the doubled cube any resident face is guaranteed to fit in.
// Queries prune against it instead of the exact bounds.
func (n *node) looseBounds() spatialmath.AABox {
	looseWidth := n.width * 2
	return spatialmath.NewAABoxFromCenter(n.center, r3.Vector{X: looseWidth, Y: looseWidth, Z: looseWidth})
}

// approxContains reports whether a face belongs in this node: centroid inside
// the exact bounds (boundaries included) and extent no wider than the node.
func (n *node) approxContains(f faceToInsert) bool {
	return n.exactBounds().Contains(f.center) && f.extent <= n.width
}

// childIndex maps a position to the octant holding it. A coordinate strictly
// greater than the center sets the bit; ties go to the minus side.
func (n *node) childIndex(pos r3.Vector) int {
	index := 0
	if n.center.X < pos.X {
		index += 4
	}
	if n.center.Y < pos.Y {
		index += 2
	}
	if n.center.Z < pos.Z {
		index++
	}
	return index
}

func (n *node) makeChildren() {
	q := n.width * 0.25
	childWidth := n.width * 0.5
	childDepth := n.depth + 1

	add := func(offX, offY, offZ float64) *node {
		center := r3.Vector{X: n.center.X + offX, Y: n.center.Y + offY, Z: n.center.Z + offZ}
		return newNode(center, childWidth, childDepth, n)
	}

	// the order is crucial: childIndex addresses into exactly this layout
	n.children = []*node{
		add(-q, -q, -q),
		add(-q, -q, q),
		add(-q, q, -q),
		add(-q, q, q),
		add(q, -q, -q),
		add(q, -q, q),
		add(q, q, -q),
		add(q, q, q),
	}
}

// insertFace places the face in this subtree and returns the node and slot it
// came to rest in. Small faces keep descending toward the octant holding
// their centroid; everything else resides here.
func (n *node) insertFace(f faceToInsert) (*node, int) {
	if f.extent <= n.width*relativeMinFaceExtent {
		if n.children == nil {
			n.makeChildren()
		}
		return n.children[n.childIndex(f.center)].insertFace(f)
	}
	if f.cachePrimitive {
		n.storePrimitive(f.id, f.tri)
	}
	n.faceIDs = append(n.faceIDs, f.id)
	return n, len(n.faceIDs) - 1
}

// deleteFaceAt swap-removes the resident face at the given slot, returning the
// id that moved into the slot when the removed face was not the last one. A
// node emptied by the removal reports itself to its parent.
func (n *node) deleteFaceAt(slot int) (mesh.FaceID, bool) {
	last := len(n.faceIDs) - 1
	moved, swapped := n.faceIDs[last], slot != last
	n.faceIDs[slot] = moved
	n.faceIDs = n.faceIDs[:last]
	if n.isEmpty() && n.parent != nil {
		n.parent.childEmptyNotification()
	}
	return moved, swapped
}

// childEmptyNotification drops the children once all eight are empty and
// keeps propagating upward while that empties the notified node too.
func (n *node) childEmptyNotification() {
	for _, c := range n.children {
		if !c.isEmpty() {
			return
		}
	}
	n.children = nil
	if n.isEmpty() && n.parent != nil {
		n.parent.childEmptyNotification()
	}
}

func (n *node) isEmpty() bool {
	return len(n.faceIDs) == 0 && n.children == nil
}

func (n *node) storePrimitive(id mesh.FaceID, tri *spatialmath.Triangle) {
	if n.primitives == nil {
		n.primitives = map[mesh.FaceID]*spatialmath.Triangle{}
	}
	n.primitives[id] = tri
}

func (n *node) deletePrimitive(id mesh.FaceID) {
	delete(n.primitives, id)
}

// intersectsRay resolves every resident face through src and offers hits to
// the accumulator, then recurses. The loose bounds gate the whole subtree.
func (n *node) intersectsRay(src mesh.TriangleSource, ray spatialmath.Ray, intersection *FaceIntersection) bool {
	if spatialmath.RayIntersectsAABox(ray, n.looseBounds()) {
		for _, id := range n.faceIDs {
			tri := src.Triangle(id)
			if pt, hit := spatialmath.RayIntersectsTriangle(ray, tri); hit {
				intersection.UpdateFace(pt.Sub(ray.Origin).Norm(), pt, tri.Normal(), id)
			}
		}
		for _, c := range n.children {
			c.intersectsRay(src, ray, intersection)
		}
	}
	return intersection.IsHit()
}

// intersectsRayCached is intersectsRay over the cached primitives, with no
// mesh in the loop and no face identity in the result.
func (n *node) intersectsRayCached(ray spatialmath.Ray, intersection *spatialmath.Intersection) bool {
	if spatialmath.RayIntersectsAABox(ray, n.looseBounds()) {
		for _, tri := range n.primitives {
			if pt, hit := spatialmath.RayIntersectsTriangle(ray, tri); hit {
				intersection.Update(pt.Sub(ray.Origin).Norm(), pt, tri.Normal())
			}
		}
		for _, c := range n.children {
			c.intersectsRayCached(ray, intersection)
		}
	}
	return intersection.IsHit()
}

func (n *node) facesIntersectingSphere(src mesh.TriangleSource, sphere spatialmath.Sphere, ids []mesh.FaceID) []mesh.FaceID {
	if spatialmath.SphereIntersectsAABox(sphere, n.looseBounds()) {
		for _, id := range n.faceIDs {
			if spatialmath.SphereIntersectsTriangle(sphere, src.Triangle(id)) {
				ids = append(ids, id)
			}
		}
		for _, c := range n.children {
			ids = c.facesIntersectingSphere(src, sphere, ids)
		}
	}
	return ids
}

func (n *node) updateStatistics(stats *Statistics) {
	numFaces := len(n.faceIDs)
	stats.NumNodes++
	stats.NumFaces += numFaces
	stats.MinDepth = utils.MinInt(stats.MinDepth, n.depth)
	stats.MaxDepth = utils.MaxInt(stats.MaxDepth, n.depth)
	stats.MaxFacesPerNode = utils.MaxInt(stats.MaxFacesPerNode, numFaces)
	stats.NumFacesPerDepth[n.depth] += numFaces
	stats.NumNodesPerDepth[n.depth]++
	stats.facesPerNode = append(stats.facesPerNode, float64(numFaces))
	for _, c := range n.children {
		c.updateStatistics(stats)
	}
}

// walk visits this node and every descendant, parents first.
func (n *node) walk(fn func(*node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

// corners lists the node cube's corners indexed like childIndex octants.
func (n *node) corners() [8]r3.Vector {
	half := n.width * 0.5
	var out [8]r3.Vector
	for i := range out {
		c := n.center
		if i&4 != 0 {
			c.X += half
		} else {
			c.X -= half
		}
		if i&2 != 0 {
			c.Y += half
		} else {
			c.Y -= half
		}
		if i&1 != 0 {
			c.Z += half
		} else {
			c.Z -= half
		}
		out[i] = c
	}
	return out
}
