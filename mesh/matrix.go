package mesh

import "gonum.org/v1/gonum/mat"

// VertexMatrix returns the vertex positions as an N x 3 dense matrix, or nil
// for an empty mesh.
func VertexMatrix(m *Mesh) *mat.Dense {
	if m.NumVertices() == 0 {
		return nil
	}
	out := mat.NewDense(m.NumVertices(), 3, nil)
	for i, v := range m.vertices {
		out.Set(i, 0, v.X)
		out.Set(i, 1, v.Y)
		out.Set(i, 2, v.Z)
	}
	return out
}
