package spatialmath

import (
	"github.com/golang/geo/r3"

	"github.com/meshtree/meshtree/utils"
)

// Sphere is a sphere with a center point and a radius.
type Sphere struct {
	Center r3.Vector
	Radius float64
}

// NewSphere returns a Sphere with the given center and radius.
func NewSphere(center r3.Vector, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Contains reports whether the given point lies within the sphere, boundary included.
func (s Sphere) Contains(pt r3.Vector) bool {
	return pt.Sub(s.Center).Norm2() <= utils.Square(s.Radius)
}
