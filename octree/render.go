package octree

import (
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// WriteBoundsImage renders every node's bounds as a wireframe cube,
// orthographically projected onto the xy plane, and writes the result to a
// PNG file. It is a debugging aid for eyeballing how faces clustered.
func (o *Octree) WriteBoundsImage(path string, width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf("invalid image size %dx%d", width, height)
	}
	if o.root == nil {
		return errors.New("octree has no nodes to render")
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(0.1, 0.1, 0.12)
	dc.Clear()

	const margin = 10.0
	bounds := o.root.exactBounds()
	dims := bounds.Dims()
	scale := math.Min((float64(width)-2*margin)/dims.X, (float64(height)-2*margin)/dims.Y)
	project := func(v r3.Vector) (float64, float64) {
		return margin + (v.X-bounds.Min.X)*scale, float64(height) - margin - (v.Y-bounds.Min.Y)*scale
	}

	dc.SetRGB(1, 1, 0)
	dc.SetLineWidth(1)
	o.root.walk(func(n *node) {
		corners := n.corners()
		for i := 0; i < 8; i++ {
			for _, bit := range []int{1, 2, 4} {
				j := i | bit
				if j == i {
					continue
				}
				x1, y1 := project(corners[i])
				x2, y2 := project(corners[j])
				dc.DrawLine(x1, y1, x2, y2)
			}
		}
		dc.Stroke()
	})

	return dc.SavePNG(path)
}
