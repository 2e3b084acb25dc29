package octree

import (
	"sort"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/meshtree/meshtree/mesh"
	"github.com/meshtree/meshtree/spatialmath"
)

// triangleStore is a minimal TriangleSource for tests that do not need a full mesh.
type triangleStore map[mesh.FaceID]*spatialmath.Triangle

func (s triangleStore) Triangle(id mesh.FaceID) *spatialmath.Triangle {
	return s[id]
}

// makeTestTriangle builds a right triangle in the xy plane with the given
// centroid and an extent of exactly leg.
func makeTestTriangle(center r3.Vector, leg float64) *spatialmath.Triangle {
	third := leg / 3.
	return spatialmath.NewTriangle(
		r3.Vector{X: center.X - third, Y: center.Y - third, Z: center.Z},
		r3.Vector{X: center.X + 2*third, Y: center.Y - third, Z: center.Z},
		r3.Vector{X: center.X - third, Y: center.Y + 2*third, Z: center.Z},
	)
}

func sortedIDs(ids []mesh.FaceID) []mesh.FaceID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// bruteForceNearestRayHit scans every triangle in the store, bypassing the octree.
func bruteForceNearestRayHit(store triangleStore, ray spatialmath.Ray) (mesh.FaceID, float64, bool) {
	var nearest mesh.FaceID
	var nearestDist float64
	hit := false
	for id, tri := range store {
		pt, ok := spatialmath.RayIntersectsTriangle(ray, tri)
		if !ok {
			continue
		}
		dist := pt.Sub(ray.Origin).Norm()
		if !hit || dist < nearestDist {
			nearest, nearestDist, hit = id, dist, true
		}
	}
	return nearest, nearestDist, hit
}

// bruteForceSphereHits scans every triangle in the store, bypassing the octree.
func bruteForceSphereHits(store triangleStore, sphere spatialmath.Sphere) []mesh.FaceID {
	var ids []mesh.FaceID
	for id, tri := range store {
		if spatialmath.SphereIntersectsTriangle(sphere, tri) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Helper function that recursively checks the octree's structure, geometry and
// index integrity, returning the number of resident faces found. The source
// must reflect the geometry the faces were inserted or last realigned with.
func validateOctree(t *testing.T, oct *Octree, src mesh.TriangleSource) int {
	t.Helper()

	if oct.root == nil {
		test.That(t, oct.NumFaces(), test.ShouldEqual, 0)
		return 0
	}
	test.That(t, oct.root.parent, test.ShouldBeNil)
	counted := validateNode(t, oct, oct.root, oct.root.center, oct.root.width, oct.root.depth, src)
	test.That(t, counted, test.ShouldEqual, oct.NumFaces())
	return counted
}

func validateNode(t *testing.T, oct *Octree, n *node, center r3.Vector, width float64, depth int, src mesh.TriangleSource) int {
	t.Helper()

	// growth re-parents the old root, so expected centers can be an ulp off
	test.That(t, spatialmath.R3VectorAlmostEqual(n.center, center, 1e-9), test.ShouldBeTrue)
	test.That(t, n.width, test.ShouldAlmostEqual, width)
	test.That(t, n.depth, test.ShouldEqual, depth)

	bounds := n.exactBounds()
	for slot, id := range n.faceIDs {
		loc, ok := oct.index[id]
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, loc.node, test.ShouldEqual, n)
		test.That(t, loc.slot, test.ShouldEqual, slot)

		tri := src.Triangle(id)
		test.That(t, bounds.Contains(tri.Centroid()), test.ShouldBeTrue)
		test.That(t, tri.Extent(), test.ShouldBeLessThanOrEqualTo, width)
		test.That(t, tri.Extent(), test.ShouldBeGreaterThan, width*relativeMinFaceExtent)
	}

	if oct.cachePrimitives {
		test.That(t, len(n.primitives), test.ShouldEqual, len(n.faceIDs))
		for _, id := range n.faceIDs {
			_, ok := n.primitives[id]
			test.That(t, ok, test.ShouldBeTrue)
		}
	} else {
		test.That(t, n.primitives, test.ShouldBeNil)
	}

	counted := len(n.faceIDs)
	if n.children == nil {
		return counted
	}

	test.That(t, len(n.children), test.ShouldEqual, 8)
	for c, child := range n.children {
		var i, j, k float64
		if c%8 < 4 {
			i = -1
		} else {
			i = 1
		}
		if c%4 < 2 {
			j = -1
		} else {
			j = 1
		}
		if c%2 < 1 {
			k = -1
		} else {
			k = 1
		}

		test.That(t, child.parent, test.ShouldEqual, n)
		counted += validateNode(t, oct, child, r3.Vector{
			X: center.X + i*width/4.,
			Y: center.Y + j*width/4.,
			Z: center.Z + k*width/4.,
		}, width/2., depth+1, src)
	}
	return counted
}
