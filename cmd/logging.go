package cmd

import (
	"github.com/urfave/cli"

	"github.com/yassineboubaker/blazert/log"
)

var logger = log.New("blazert")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
