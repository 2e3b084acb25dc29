package mesh

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chenzhekl/goply"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// NewFromFile returns a mesh read in from the given file.
func NewFromFile(fn string, logger golog.Logger) (*Mesh, error) {
	switch filepath.Ext(fn) {
	case ".ply":
		return NewFromPLYFile(fn, logger)
	default:
		return nil, errors.Errorf("do not know how to read file %q", fn)
	}
}

// NewFromPLYFile returns a mesh read in from the given PLY file. Only
// triangular faces are supported.
func NewFromPLYFile(fn string, logger golog.Logger) (*Mesh, error) {
	//nolint:gosec
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	return ReadPLY(f, logger)
}

// ReadPLY reads a mesh from PLY data. Malformed data is an error, never a panic.
func ReadPLY(r io.Reader, logger golog.Logger) (m *Mesh, err error) {
	// goply panics on malformed input
	defer func() {
		if rec := recover(); rec != nil {
			m = nil
			err = errors.Errorf("malformed PLY data: %v", rec)
		}
	}()

	ply := goply.New(r)
	vertices := ply.Elements("vertex")
	faces := ply.Elements("face")

	m = NewMesh()
	for i, vertex := range vertices {
		x, xok := plyFloat(vertex["x"])
		y, yok := plyFloat(vertex["y"])
		z, zok := plyFloat(vertex["z"])
		if !xok || !yok || !zok {
			return nil, errors.Errorf("vertex %d is missing a coordinate", i)
		}
		m.AddVertex(r3.Vector{X: x, Y: y, Z: z})
	}
	for i, face := range faces {
		raw, ok := face["vertex_indices"].([]interface{})
		if !ok {
			return nil, errors.Errorf("face %d has no vertex_indices list", i)
		}
		if len(raw) != 3 {
			return nil, errors.Errorf("face %d has %d vertices; only triangles are supported", i, len(raw))
		}
		var idx [3]int
		for j, v := range raw {
			n, ok := plyInt(v)
			if !ok || n < 0 || n >= m.NumVertices() {
				return nil, errors.Errorf("face %d references vertex %v out of range", i, v)
			}
			idx[j] = n
		}
		m.faces = append(m.faces, idx)
	}
	logger.Debugf("read PLY mesh with %d vertices and %d faces", m.NumVertices(), m.NumFaces())
	return m, nil
}

// WriteToPLYFile writes the mesh out to an ASCII PLY file.
func WriteToPLYFile(m *Mesh, fn string) (err error) {
	//nolint:gosec
	f, err := os.Create(fn)
	if err != nil {
		return
	}
	defer func() {
		cerr := f.Close()
		err = multierr.Combine(err, cerr)
	}()
	return ToPLY(m, f)
}

// ToPLY writes the mesh to out in ASCII PLY format.
func ToPLY(m *Mesh, out io.Writer) error {
	var err error
	_, err = fmt.Fprintf(out, "ply\n"+
		"format ascii 1.0\n"+
		"element vertex %d\n"+
		"property float x\n"+
		"property float y\n"+
		"property float z\n"+
		"element face %d\n"+
		"property list uchar int vertex_indices\n"+
		"end_header\n", m.NumVertices(), m.NumFaces())
	if err != nil {
		return err
	}
	for _, v := range m.vertices {
		_, err = fmt.Fprintf(out, "%f %f %f\n", v.X, v.Y, v.Z)
		if err != nil {
			return err
		}
	}
	for _, f := range m.faces {
		_, err = fmt.Fprintf(out, "3 %d %d %d\n", f[0], f[1], f[2])
		if err != nil {
			return err
		}
	}
	return nil
}

// plyFloat converts a scalar PLY property value. Coordinates are float in
// most files but double is legal.
func plyFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// plyInt converts a PLY list element; files disagree on the index type.
func plyInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int8:
		return int(n), true
	case uint8:
		return int(n), true
	case int16:
		return int(n), true
	case uint16:
		return int(n), true
	case int32:
		return int(n), true
	case uint32:
		return int(n), true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}
