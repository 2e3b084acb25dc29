// Package mesh implements a flat triangle mesh with stable face identity and PLY file I/O.
package mesh

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/meshtree/meshtree/spatialmath"
)

// FaceID identifies a face of a mesh. Ids are handed out as a dense sequence
// starting at zero and stay stable across vertex edits.
type FaceID uint32

// TriangleSource resolves a face id to its current triangle. *Mesh satisfies
// it; queries that take a TriangleSource always see up-to-date geometry.
type TriangleSource interface {
	Triangle(id FaceID) *spatialmath.Triangle
}

// Mesh is a triangle mesh stored as vertex positions plus per-face index
// triples. It is not safe for concurrent use.
type Mesh struct {
	vertices []r3.Vector
	faces    [][3]int
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v r3.Vector) int {
	m.vertices = append(m.vertices, v)
	return len(m.vertices) - 1
}

// AddFace appends a face over three existing vertices and returns its id.
// Referencing a vertex that does not exist is a programmer error.
func (m *Mesh) AddFace(a, b, c int) FaceID {
	for _, i := range []int{a, b, c} {
		if i < 0 || i >= len(m.vertices) {
			panic(errors.Errorf("face vertex index %d out of range [0, %d)", i, len(m.vertices)))
		}
	}
	m.faces = append(m.faces, [3]int{a, b, c})
	return FaceID(len(m.faces) - 1)
}

// SetVertexPosition moves a vertex. Faces referencing it resolve to the new
// geometry on their next Triangle call.
func (m *Mesh) SetVertexPosition(i int, v r3.Vector) {
	m.vertices[i] = v
}

// VertexPosition returns the current position of vertex i.
func (m *Mesh) VertexPosition(i int) r3.Vector {
	return m.vertices[i]
}

// Triangle resolves the face's current geometry.
func (m *Mesh) Triangle(id FaceID) *spatialmath.Triangle {
	f := m.faces[id]
	return spatialmath.NewTriangle(m.vertices[f[0]], m.vertices[f[1]], m.vertices[f[2]])
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int {
	return len(m.vertices)
}

// NumFaces returns the number of faces.
func (m *Mesh) NumFaces() int {
	return len(m.faces)
}

// BoundingBox returns the axis-aligned bounds of all vertices.
func (m *Mesh) BoundingBox() spatialmath.AABox {
	return spatialmath.NewAABoxFromPoints(m.vertices...)
}

// Centroid returns the mean vertex position, or the zero vector for an empty mesh.
func (m *Mesh) Centroid() r3.Vector {
	if len(m.vertices) == 0 {
		return r3.Vector{}
	}
	var sum r3.Vector
	for _, v := range m.vertices {
		sum = sum.Add(v)
	}
	return sum.Mul(1. / float64(len(m.vertices)))
}
