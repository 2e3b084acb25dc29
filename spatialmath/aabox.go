package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// AABox is an axis-aligned box spanning the volume between a min and a max corner.
type AABox struct {
	Min r3.Vector
	Max r3.Vector
}

// NewAABox returns the axis-aligned box delimited by the two given corners.
func NewAABox(min, max r3.Vector) AABox {
	return AABox{Min: min, Max: max}
}

// NewAABoxFromCenter returns the axis-aligned box centered at center with the
// given side lengths.
func NewAABoxFromCenter(center, dims r3.Vector) AABox {
	half := dims.Mul(0.5)
	return AABox{Min: center.Sub(half), Max: center.Add(half)}
}

// NewAABoxFromPoints returns the smallest axis-aligned box containing all of
// the given points.
func NewAABoxFromPoints(pts ...r3.Vector) AABox {
	if len(pts) == 0 {
		return AABox{}
	}
	box := AABox{Min: pts[0], Max: pts[0]}
	for _, pt := range pts[1:] {
		box.Min.X = math.Min(box.Min.X, pt.X)
		box.Min.Y = math.Min(box.Min.Y, pt.Y)
		box.Min.Z = math.Min(box.Min.Z, pt.Z)
		box.Max.X = math.Max(box.Max.X, pt.X)
		box.Max.Y = math.Max(box.Max.Y, pt.Y)
		box.Max.Z = math.Max(box.Max.Z, pt.Z)
	}
	return box
}

// Center returns the center point of the box.
func (b AABox) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Dims returns the box's side lengths along each axis.
func (b AABox) Dims() r3.Vector {
	return b.Max.Sub(b.Min)
}

// Contains reports whether the given point lies within the box, boundary included.
func (b AABox) Contains(pt r3.Vector) bool {
	return b.Min.X <= pt.X && pt.X <= b.Max.X &&
		b.Min.Y <= pt.Y && pt.Y <= b.Max.Y &&
		b.Min.Z <= pt.Z && pt.Z <= b.Max.Z
}
