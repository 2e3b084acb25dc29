package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// floatEpsilon is the tolerance used for near-zero comparisons in intersection math.
const floatEpsilon = 1e-6

// PlaneNormal returns the plane normal of the plane defined by three points.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// ClosestPointSegmentPoint takes a line segment defined by pt1 and pt2, and returns
// the closest point on that segment to the given point.
func ClosestPointSegmentPoint(pt1, pt2, point r3.Vector) r3.Vector {
	segment := pt2.Sub(pt1)
	segLen2 := segment.Norm2()
	if segLen2 == 0 {
		return pt1
	}
	t := point.Sub(pt1).Dot(segment) / segLen2
	if t <= 0 {
		return pt1
	}
	if t >= 1 {
		return pt2
	}
	return pt1.Add(segment.Mul(t))
}

// R3VectorAlmostEqual compares two r3 vectors and returns whether all of their
// components are within epsilon of each other.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}
