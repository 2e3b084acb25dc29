package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestAABox(t *testing.T) {
	t.Run("from min and max", func(t *testing.T) {
		box := NewAABox(r3.Vector{X: -1, Y: -2, Z: -3}, r3.Vector{X: 1, Y: 2, Z: 3})
		test.That(t, box.Center(), test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0})
		test.That(t, box.Dims(), test.ShouldResemble, r3.Vector{X: 2, Y: 4, Z: 6})
	})

	t.Run("from center and dims", func(t *testing.T) {
		box := NewAABoxFromCenter(r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 4, Y: 2, Z: 6})
		test.That(t, box.Min, test.ShouldResemble, r3.Vector{X: -1, Y: 0, Z: -2})
		test.That(t, box.Max, test.ShouldResemble, r3.Vector{X: 3, Y: 2, Z: 4})
	})

	t.Run("from points", func(t *testing.T) {
		box := NewAABoxFromPoints(r3.Vector{X: 1, Y: 5, Z: -2}, r3.Vector{X: -3, Y: 0, Z: 4}, r3.Vector{X: 2, Y: 2, Z: 2})
		test.That(t, box.Min, test.ShouldResemble, r3.Vector{X: -3, Y: 0, Z: -2})
		test.That(t, box.Max, test.ShouldResemble, r3.Vector{X: 2, Y: 5, Z: 4})

		empty := NewAABoxFromPoints()
		test.That(t, empty, test.ShouldResemble, AABox{})
	})

	t.Run("contains", func(t *testing.T) {
		box := NewAABoxFromCenter(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 2, Y: 2, Z: 2})
		test.That(t, box.Contains(r3.Vector{X: 0, Y: 0, Z: 0}), test.ShouldBeTrue)
		test.That(t, box.Contains(r3.Vector{X: 1, Y: 1, Z: 1}), test.ShouldBeTrue)
		test.That(t, box.Contains(r3.Vector{X: -1, Y: 0.5, Z: -0.5}), test.ShouldBeTrue)
		test.That(t, box.Contains(r3.Vector{X: 1.001, Y: 0, Z: 0}), test.ShouldBeFalse)
		test.That(t, box.Contains(r3.Vector{X: 0, Y: -2, Z: 0}), test.ShouldBeFalse)
	})
}
