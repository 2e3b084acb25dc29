// Package main is a command that indexes a mesh file and reports on the result.
package main

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/meshtree/meshtree/mesh"
	"github.com/meshtree/meshtree/octree"
	"github.com/meshtree/meshtree/spatialmath"
)

var logger = golog.NewDevelopmentLogger("octreeview")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	MeshFile        string `flag:"0,usage=mesh file (.ply)"`
	CachePrimitives bool   `flag:"cache,usage=cache triangle primitives inside the octree"`
	BoundsImage     string `flag:"image,usage=write octree node bounds to a PNG file"`
	ImageWidth      int    `flag:"width,default=800,usage=bounds image width"`
	ImageHeight     int    `flag:"height,default=800,usage=bounds image height"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.MeshFile == "" {
		return errors.New("need to specify a mesh file path")
	}
	return viewMesh(argsParsed)
}

func viewMesh(args Arguments) error {
	m, err := mesh.NewFromFile(args.MeshFile, logger)
	if err != nil {
		return err
	}
	logger.Infof("loaded %q with %d vertices and %d faces", args.MeshFile, m.NumVertices(), m.NumFaces())

	oct := octree.New(logger, args.CachePrimitives)
	for id := mesh.FaceID(0); id < mesh.FaceID(m.NumFaces()); id++ {
		oct.InsertFace(id, m.Triangle(id))
	}
	oct.LogStatistics()

	// probe the index with a ray aimed at the centroid from above the mesh
	bounds := m.BoundingBox()
	origin := bounds.Center().Add(r3.Vector{Z: bounds.Dims().Z + 1})
	dir := m.Centroid().Sub(origin)
	if dir.Norm2() > 0 {
		ray := spatialmath.NewRay(origin, dir)
		var isec octree.FaceIntersection
		if oct.IntersectsRay(m, ray, &isec) {
			logger.Infof("probe ray hit face %d at %v, distance %.3f", isec.Face(), isec.Point(), isec.Distance())
		} else {
			logger.Info("probe ray missed the mesh")
		}

		sphere := spatialmath.NewSphere(m.Centroid(), bounds.Dims().Norm()*0.1)
		touched := oct.FacesIntersectingSphere(m, sphere)
		logger.Infof("probe sphere with radius %.3f touches %d faces", sphere.Radius, len(touched))
	}

	if args.BoundsImage != "" {
		if err := oct.WriteBoundsImage(args.BoundsImage, args.ImageWidth, args.ImageHeight); err != nil {
			return err
		}
		logger.Infof("wrote octree node bounds to %q", args.BoundsImage)
	}
	return nil
}
