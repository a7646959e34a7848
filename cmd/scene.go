package cmd

import (
	"fmt"
	"strings"

	"github.com/yassineboubaker/blazert/bvh"
	"github.com/yassineboubaker/blazert/obj"
	"github.com/yassineboubaker/blazert/scene"
	sceneio "github.com/yassineboubaker/blazert/scene/io"
)

// Load a scene from an obj mesh file or a compiled scene archive and return
// it committed. Archives skip the BVH build entirely.
func loadScene(path string, parallel bool) (*scene.Scene[float32], error) {
	if strings.HasSuffix(path, ".blazert") {
		return sceneio.ReadFile(path)
	}
	if !strings.HasSuffix(path, ".obj") {
		return nil, fmt.Errorf("unsupported scene file %s", path)
	}

	mesh, err := obj.ReadFile(path)
	if err != nil {
		return nil, err
	}

	opts := bvh.NewBuildOptions[float32]()
	opts.EnableParallel = parallel

	sc := scene.New(opts)
	if _, err = sc.AddTriangles(mesh.Vertices, mesh.Faces); err != nil {
		return nil, err
	}
	if err = sc.Commit(); err != nil {
		return nil, err
	}

	return sc, nil
}
