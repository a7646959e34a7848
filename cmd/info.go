package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/yassineboubaker/blazert/bvh"
)

// Print per-class hierarchy statistics for a scene.
func Info(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("info: expected a single scene file argument")
	}

	sc, err := loadScene(ctx.Args().First(), ctx.Bool("parallel"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Class", "Geom ID", "Primitives", "Leafs", "Inner Nodes", "Max Depth"})

	appendRow := func(class string, geomID uint32, stats bvh.BuildStats) {
		table.Append([]string{
			class,
			fmt.Sprintf("%d", geomID),
			fmt.Sprintf("%d", stats.Primitives),
			fmt.Sprintf("%d", stats.Leafs),
			fmt.Sprintf("%d", stats.Nodes),
			fmt.Sprintf("%d", stats.MaxDepth),
		})
	}

	if _, tree, geomID := sc.TriangleGeometry(); tree != nil {
		appendRow("triangles", geomID, tree.Stats)
	}
	if _, tree, geomID := sc.SphereGeometry(); tree != nil {
		appendRow("spheres", geomID, tree.Stats)
	}

	table.Render()
	return nil
}
