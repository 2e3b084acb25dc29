package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestSphereContains(t *testing.T) {
	sphere := NewSphere(r3.Vector{X: 1, Y: 0, Z: 0}, 2)

	test.That(t, sphere.Contains(r3.Vector{X: 1, Y: 0, Z: 0}), test.ShouldBeTrue)
	test.That(t, sphere.Contains(r3.Vector{X: 2, Y: 1, Z: -1}), test.ShouldBeTrue)
	// the boundary counts
	test.That(t, sphere.Contains(r3.Vector{X: 3, Y: 0, Z: 0}), test.ShouldBeTrue)
	test.That(t, sphere.Contains(r3.Vector{X: 3.001, Y: 0, Z: 0}), test.ShouldBeFalse)
	test.That(t, sphere.Contains(r3.Vector{X: -2, Y: 2, Z: 0}), test.ShouldBeFalse)
}
