package octree

import (
	"github.com/golang/geo/r3"

	"github.com/meshtree/meshtree/mesh"
	"github.com/meshtree/meshtree/spatialmath"
)

// FaceIntersection is a nearest-hit accumulator that also remembers which
// face produced the hit.
type FaceIntersection struct {
	spatialmath.Intersection
	faceID mesh.FaceID
}

// UpdateFace offers a candidate hit; the face id is recorded only when the
// candidate is the nearest seen so far.
func (i *FaceIntersection) UpdateFace(distance float64, point, normal r3.Vector, id mesh.FaceID) bool {
	if i.Intersection.Update(distance, point, normal) {
		i.faceID = id
		return true
	}
	return false
}

// Face returns the id of the face behind the recorded hit. Only meaningful
// when IsHit reports true.
func (i *FaceIntersection) Face() mesh.FaceID {
	return i.faceID
}

// Reset clears the accumulator for reuse.
func (i *FaceIntersection) Reset() {
	i.Intersection.Reset()
	i.faceID = 0
}
