package cmd

import (
	"errors"
	"strings"

	"github.com/urfave/cli"

	sceneio "github.com/yassineboubaker/blazert/scene/io"
)

// Compile an obj scene into a binary scene archive with prebuilt
// hierarchies.
func Compile(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("compile: expected a single scene file argument")
	}

	sceneFile := ctx.Args().First()
	sc, err := loadScene(sceneFile, ctx.Bool("parallel"))
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		out = strings.TrimSuffix(sceneFile, ".obj") + ".blazert"
	}

	return sceneio.WriteFile(out, sc)
}
