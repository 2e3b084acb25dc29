package octree

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// Statistics is a structural snapshot of the octree. Depths may be negative:
// growing the root upward pushes new roots above depth zero.
type Statistics struct {
	NumNodes         int
	NumFaces         int
	MinDepth         int
	MaxDepth         int
	MaxFacesPerNode  int
	NumFacesPerDepth map[int]int
	NumNodesPerDepth map[int]int

	facesPerNode []float64
}

// MeanFacesPerNode returns the mean resident face count over all nodes.
func (s Statistics) MeanFacesPerNode() float64 {
	mean, err := stats.Mean(s.facesPerNode)
	if err != nil {
		return 0
	}
	return mean
}

// MedianFacesPerNode returns the median resident face count over all nodes.
func (s Statistics) MedianFacesPerNode() float64 {
	median, err := stats.Median(s.facesPerNode)
	if err != nil {
		return 0
	}
	return median
}

// Statistics walks the whole tree and aggregates node and face counts. The
// aggregate face count diverging from the index is a structural defect and
// panics.
func (o *Octree) Statistics() Statistics {
	aggregated := Statistics{
		NumFacesPerDepth: map[int]int{},
		NumNodesPerDepth: map[int]int{},
	}
	if o.root != nil {
		aggregated.MinDepth = math.MaxInt
		aggregated.MaxDepth = math.MinInt
		o.root.updateStatistics(&aggregated)
	}
	if aggregated.NumFaces != len(o.index) {
		panic(errors.Errorf("octree statistics counted %d faces but the index holds %d",
			aggregated.NumFaces, len(o.index)))
	}
	return aggregated
}

// LogStatistics reports the current statistics through the octree's logger,
// one line per populated depth.
func (o *Octree) LogStatistics() {
	s := o.Statistics()
	if s.NumNodes == 0 {
		o.logger.Info("octree is empty")
		return
	}
	o.logger.Infof("octree holds %d faces in %d nodes, depths [%d, %d], max %d faces per node, mean %.2f, median %.1f",
		s.NumFaces, s.NumNodes, s.MinDepth, s.MaxDepth, s.MaxFacesPerNode,
		s.MeanFacesPerNode(), s.MedianFacesPerNode())
	depths := maps.Keys(s.NumNodesPerDepth)
	sort.Ints(depths)
	for _, depth := range depths {
		o.logger.Infof("depth %3d: %6d nodes %6d faces", depth, s.NumNodesPerDepth[depth], s.NumFacesPerDepth[depth])
	}
}
