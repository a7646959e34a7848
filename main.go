package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/yassineboubaker/blazert/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "blazert"
	app.Usage = "build and query ray-tracing acceleration structures"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "info",
			Usage: "print hierarchy statistics for a scene",
			Description: `
Load a wavefront obj mesh or a compiled scene archive, build the bounding
volume hierarchies when needed and print per-class statistics.`,
			ArgsUsage: "scene.obj|scene.blazert",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "parallel",
					Usage: "build hierarchies on all cores",
				},
			},
			Action: cmd.Info,
		},
		{
			Name:  "compile",
			Usage: "compile a scene into a binary archive with prebuilt hierarchies",
			Description: `
Parse a wavefront obj mesh, build a BVH over it and write a compressed
binary archive which other commands can load without rebuilding.`,
			ArgsUsage: "scene.obj",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "archive filename (defaults to the scene name with a .blazert suffix)",
				},
				cli.BoolFlag{
					Name:  "parallel",
					Usage: "build hierarchies on all cores",
				},
			},
			Action: cmd.Compile,
		},
		{
			Name:      "bench",
			Usage:     "measure intersection throughput for a scene",
			ArgsUsage: "scene.obj|scene.blazert",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "rays",
					Value: 100000,
					Usage: "number of rays to cast",
				},
				cli.BoolFlag{
					Name:  "any-hit",
					Usage: "cast any-hit rays instead of closest-hit rays",
				},
				cli.BoolFlag{
					Name:  "parallel",
					Usage: "build hierarchies on all cores",
				},
			},
			Action: cmd.Bench,
		},
	}

	app.Run(os.Args)
}
