package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/meshtree/meshtree/utils"
)

// Intersection accumulates the nearest hit found across intersection queries.
// Updates farther than the recorded hit are ignored, so one accumulator can be
// shared across several queries and keeps the overall nearest hit.
type Intersection struct {
	distance float64
	point    r3.Vector
	normal   r3.Vector
	hit      bool
}

// Update records a hit at the given distance if it is nearer than any recorded
// so far, and reports whether it was accepted.
func (i *Intersection) Update(distance float64, point, normal r3.Vector) bool {
	if i.hit && distance >= i.distance {
		return false
	}
	i.distance = distance
	i.point = point
	i.normal = normal
	i.hit = true
	return true
}

// IsHit reports whether any hit has been recorded.
func (i *Intersection) IsHit() bool {
	return i.hit
}

// Distance returns the distance from the query origin to the nearest recorded hit.
func (i *Intersection) Distance() float64 {
	return i.distance
}

// Point returns the position of the nearest recorded hit.
func (i *Intersection) Point() r3.Vector {
	return i.point
}

// Normal returns the surface normal at the nearest recorded hit.
func (i *Intersection) Normal() r3.Vector {
	return i.normal
}

// Reset clears any recorded hit.
func (i *Intersection) Reset() {
	*i = Intersection{}
}

// RayIntersectsTriangle runs the Möller-Trumbore test between a ray and a
// triangle. It returns the hit point and whether the ray hits strictly in
// front of its origin. Backfaces are not culled.
func RayIntersectsTriangle(ray Ray, tri *Triangle) (r3.Vector, bool) {
	e0 := tri.p1.Sub(tri.p0)
	e1 := tri.p2.Sub(tri.p0)
	pvec := ray.Direction.Cross(e1)
	det := e0.Dot(pvec)
	if det > -floatEpsilon && det < floatEpsilon {
		return r3.Vector{}, false
	}
	invDet := 1.0 / det
	tvec := ray.Origin.Sub(tri.p0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return r3.Vector{}, false
	}
	qvec := tvec.Cross(e0)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return r3.Vector{}, false
	}
	dist := e1.Dot(qvec) * invDet
	if dist <= floatEpsilon {
		return r3.Vector{}, false
	}
	return ray.PointAt(dist), true
}

// RayIntersectsAABox runs a slab test between a ray and an axis-aligned box.
// A ray whose origin lies inside the box intersects it.
func RayIntersectsAABox(ray Ray, box AABox) bool {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	origin := [3]float64{ray.Origin.X, ray.Origin.Y, ray.Origin.Z}
	dir := [3]float64{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	boxMin := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	boxMax := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if math.Abs(dir[axis]) < floatEpsilon {
			// parallel to this slab, must already be within it
			if origin[axis] < boxMin[axis] || origin[axis] > boxMax[axis] {
				return false
			}
			continue
		}
		t1 := (boxMin[axis] - origin[axis]) / dir[axis]
		t2 := (boxMax[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return false
		}
	}
	return tmax >= 0
}

// SphereIntersectsAABox reports whether a sphere overlaps an axis-aligned box,
// comparing the sphere's radius against the closest point on the box to its
// center.
func SphereIntersectsAABox(sphere Sphere, box AABox) bool {
	closest := r3.Vector{
		X: math.Min(math.Max(sphere.Center.X, box.Min.X), box.Max.X),
		Y: math.Min(math.Max(sphere.Center.Y, box.Min.Y), box.Max.Y),
		Z: math.Min(math.Max(sphere.Center.Z, box.Min.Z), box.Max.Z),
	}
	return closest.Sub(sphere.Center).Norm2() <= utils.Square(sphere.Radius)
}

// SphereIntersectsTriangle reports whether a sphere overlaps a triangle,
// comparing the sphere's radius against the closest point on the triangle to
// its center.
func SphereIntersectsTriangle(sphere Sphere, tri *Triangle) bool {
	closest := tri.ClosestPointToPoint(sphere.Center)
	return closest.Sub(sphere.Center).Norm2() <= utils.Square(sphere.Radius)
}
