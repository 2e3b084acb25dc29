// Package octree implements a dynamic loose octree over the faces of a
// triangle mesh for fast ray casts, sphere range queries and incremental
// updates while faces move.
package octree

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/meshtree/meshtree/mesh"
	"github.com/meshtree/meshtree/spatialmath"
)

// rootWidthEpsilon pads the first face's extent when the root is sized from it.
const rootWidthEpsilon = 1e-6

// faceLocation pins a face to the node and slot it currently occupies.
type faceLocation struct {
	node *node
	slot int
}

// Octree indexes mesh faces by octant so rays and spheres only ever visit a
// sliver of the mesh. Faces are inserted, deleted and realigned one at a time
// as the mesh deforms; membership checks are a single map lookup. The tree is
// loose: a node's faces may stick out up to half a node width beyond its
// bounds, and queries prune against the doubled cube instead. It is not safe
// for concurrent use.
type Octree struct {
	logger golog.Logger
	root   *node

	// index is the single source of truth for membership.
	index map[mesh.FaceID]faceLocation

	cachePrimitives bool

	rootWasSetup bool
	setupCenter  r3.Vector
	setupWidth   float64
}

// FaceRef locates a face inside the octree for diagnostics.
type FaceRef struct {
	ID         mesh.FaceID
	NodeCenter r3.Vector
	NodeWidth  float64
	NodeDepth  int
}

func (n *node) faceRef(id mesh.FaceID) FaceRef {
	return FaceRef{ID: id, NodeCenter: n.center, NodeWidth: n.width, NodeDepth: n.depth}
}

// New creates an empty octree. When cachePrimitives is set, every node keeps
// a copy of its resident faces' triangles so rays can be cast without
// resolving geometry through the mesh.
func New(logger golog.Logger, cachePrimitives bool) *Octree {
	return &Octree{
		logger:          logger,
		index:           map[mesh.FaceID]faceLocation{},
		cachePrimitives: cachePrimitives,
	}
}

// SetupRoot fixes the position and size of the root created by the next
// insertion. Without it the root is sized around the first face, which makes
// rebuilding a large mesh start from a tiny root and grow repeatedly.
func (o *Octree) SetupRoot(center r3.Vector, width float64) error {
	if width <= 0 {
		return errors.Errorf("invalid width (%.2f) for octree root", width)
	}
	if o.root != nil {
		return errors.New("octree already has a root")
	}
	o.rootWasSetup = true
	o.setupCenter = center
	o.setupWidth = width
	return nil
}

// HasRoot reports whether the octree currently holds any nodes.
func (o *Octree) HasRoot() bool {
	return o.root != nil
}

// NumFaces returns the number of indexed faces.
func (o *Octree) NumFaces() int {
	return len(o.index)
}

// HasFace reports whether the face is indexed.
func (o *Octree) HasFace(id mesh.FaceID) bool {
	_, ok := o.index[id]
	return ok
}

// Face returns the face's current location, or false when it is not indexed.
func (o *Octree) Face(id mesh.FaceID) (FaceRef, bool) {
	loc, ok := o.index[id]
	if !ok {
		return FaceRef{}, false
	}
	return loc.node.faceRef(id), true
}

// ForEachFace calls fn for every indexed face in no particular order.
func (o *Octree) ForEachFace(fn func(ref FaceRef)) {
	for id, loc := range o.index {
		fn(loc.node.faceRef(id))
	}
}

// InsertFace indexes a face under the given id and returns where it came to
// rest. The root is created on first use and doubled in width as often as
// needed until it approximately contains the face. Inserting an id that is
// already indexed is a programmer error.
func (o *Octree) InsertFace(id mesh.FaceID, tri *spatialmath.Triangle) FaceRef {
	if _, ok := o.index[id]; ok {
		panic(errors.Errorf("face %d is already indexed", id))
	}
	f := newFaceToInsert(id, tri, o.cachePrimitives)
	if o.root == nil {
		o.initRoot(f)
	}
	for !o.root.approxContains(f) {
		o.makeParent(f)
	}
	n, slot := o.root.insertFace(f)
	o.index[id] = faceLocation{node: n, slot: slot}
	return n.faceRef(id)
}

// DeleteFace removes an indexed face. Nodes emptied by the removal collapse,
// an emptied tree drops its root and a lopsided tree shrinks. Deleting an id
// that is not indexed is a programmer error.
func (o *Octree) DeleteFace(id mesh.FaceID) {
	loc, ok := o.index[id]
	if !ok {
		panic(errors.Errorf("face %d is not indexed", id))
	}
	loc.node.deletePrimitive(id)
	if moved, swapped := loc.node.deleteFaceAt(loc.slot); swapped {
		o.index[moved] = faceLocation{node: loc.node, slot: loc.slot}
	}
	delete(o.index, id)

	if o.root.isEmpty() {
		o.root = nil
	} else {
		o.ShrinkRoot()
	}
}

// RealignFace reindexes a face whose geometry changed and reports whether it
// stayed in the same node. Realigning an id that is not indexed is a
// programmer error.
func (o *Octree) RealignFace(id mesh.FaceID, tri *spatialmath.Triangle) (FaceRef, bool) {
	loc, ok := o.index[id]
	if !ok {
		panic(errors.Errorf("face %d is not indexed", id))
	}
	formerNode := loc.node
	o.DeleteFace(id)
	ref := o.InsertFace(id, tri)
	return ref, formerNode == o.index[id].node
}

// ShrinkRoot promotes the root's single non-empty child while the root holds
// no faces of its own, cutting away shell levels left over from growth.
func (o *Octree) ShrinkRoot() {
	for o.root != nil && len(o.root.faceIDs) == 0 && o.root.children != nil {
		promote := -1
		for i, c := range o.root.children {
			if !c.isEmpty() {
				if promote != -1 {
					return
				}
				promote = i
			}
		}
		if promote == -1 {
			return
		}
		o.root = o.root.children[promote]
		o.root.parent = nil
	}
}

// Reset drops the whole tree, the index and any pending root configuration.
func (o *Octree) Reset() {
	o.root = nil
	o.index = map[mesh.FaceID]faceLocation{}
	o.rootWasSetup = false
	o.setupCenter = r3.Vector{}
	o.setupWidth = 0
}

// IntersectsRay casts a ray against the indexed faces, resolving geometry
// through src, and records the nearest hit in the accumulator. The return
// value reflects the accumulator, so a hit recorded by an earlier cast with
// the same accumulator keeps it true.
func (o *Octree) IntersectsRay(src mesh.TriangleSource, ray spatialmath.Ray, intersection *FaceIntersection) bool {
	if o.root != nil {
		return o.root.intersectsRay(src, ray, intersection)
	}
	return intersection.IsHit()
}

// IntersectsRayCached casts a ray against the per-node primitive caches
// instead of the mesh. Hits carry no face identity and reflect the geometry
// at insertion time. Without primitive caching there is nothing to hit.
func (o *Octree) IntersectsRayCached(ray spatialmath.Ray, intersection *spatialmath.Intersection) bool {
	if o.root != nil {
		return o.root.intersectsRayCached(ray, intersection)
	}
	return intersection.IsHit()
}

// FacesIntersectingSphere collects the ids of every indexed face whose
// triangle, resolved through src, intersects the sphere.
func (o *Octree) FacesIntersectingSphere(src mesh.TriangleSource, sphere spatialmath.Sphere) []mesh.FaceID {
	if o.root == nil {
		return nil
	}
	return o.root.facesIntersectingSphere(src, sphere, nil)
}

func (o *Octree) initRoot(f faceToInsert) {
	center := o.setupCenter
	width := o.setupWidth
	if !o.rootWasSetup {
		center = f.center
		width = f.extent + rootWidthEpsilon
	}
	o.logger.Debugf("creating octree root at %v with width %v", center, width)
	o.root = newNode(center, width, 0, nil)
}

// makeParent grows the tree upward: the new root has double the width, sits
// half a width toward the face on each axis and adopts the old root as the
// matching octant child.
func (o *Octree) makeParent(f faceToInsert) {
	rootCenter := o.root.center
	halfRootWidth := o.root.width * 0.5

	var parentCenter r3.Vector
	index := 0
	if rootCenter.X < f.center.X {
		parentCenter.X = rootCenter.X + halfRootWidth
	} else {
		parentCenter.X = rootCenter.X - halfRootWidth
		index += 4
	}
	if rootCenter.Y < f.center.Y {
		parentCenter.Y = rootCenter.Y + halfRootWidth
	} else {
		parentCenter.Y = rootCenter.Y - halfRootWidth
		index += 2
	}
	if rootCenter.Z < f.center.Z {
		parentCenter.Z = rootCenter.Z + halfRootWidth
	} else {
		parentCenter.Z = rootCenter.Z - halfRootWidth
		index++
	}

	newRoot := newNode(parentCenter, o.root.width*2, o.root.depth-1, nil)
	newRoot.makeChildren()
	newRoot.children[index] = o.root
	o.root.parent = newRoot
	o.root = newRoot
	o.logger.Debugf("grew octree root to width %v", o.root.width)
}
