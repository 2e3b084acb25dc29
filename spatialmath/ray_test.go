package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestRay(t *testing.T) {
	t.Run("direction is normalized", func(t *testing.T) {
		ray := NewRay(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{X: 0, Y: 0, Z: -5})
		test.That(t, ray.Origin, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
		test.That(t, ray.Direction, test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: -1})
	})

	t.Run("point at distance", func(t *testing.T) {
		ray := NewRay(r3.Vector{X: 1, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 1, Z: 0})
		test.That(t, ray.PointAt(0), test.ShouldResemble, r3.Vector{X: 1, Y: 0, Z: 0})
		test.That(t, ray.PointAt(2.5), test.ShouldResemble, r3.Vector{X: 1, Y: 2.5, Z: 0})
	})
}
