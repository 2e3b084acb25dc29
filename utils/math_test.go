package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1.0, 1.0, 1e-6), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1.0, 1.0000001, 1e-6), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1.0, 1.0001, 1e-6), test.ShouldBeFalse)
	test.That(t, Float64AlmostEqual(-1.0, 1.0, 1.5), test.ShouldBeFalse)
	test.That(t, Float64AlmostEqual(-1.0, 1.0, 2.5), test.ShouldBeTrue)
}

func TestSquare(t *testing.T) {
	test.That(t, Square(2.5), test.ShouldEqual, 6.25)
	test.That(t, Square(-3), test.ShouldEqual, 9)
	test.That(t, Square(0), test.ShouldEqual, 0)
}

func TestMinMaxInt(t *testing.T) {
	test.That(t, MaxInt(5, -2), test.ShouldEqual, 5)
	test.That(t, MaxInt(-2, 5), test.ShouldEqual, 5)
	test.That(t, MaxInt(3, 3), test.ShouldEqual, 3)
	test.That(t, MinInt(5, -2), test.ShouldEqual, -2)
	test.That(t, MinInt(-2, 5), test.ShouldEqual, -2)
	test.That(t, MinInt(3, 3), test.ShouldEqual, 3)
}
