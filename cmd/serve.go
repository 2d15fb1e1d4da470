package cmd

import (
	"github.com/RLG-UP/Raytracer-RLG-sub000/web/server"
	"github.com/urfave/cli"
)

// Serve renders and inspection results over HTTP until the server stops.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	return server.NewServer(ctx.Int("port"), ctx.String("scene-dir")).Start()
}
