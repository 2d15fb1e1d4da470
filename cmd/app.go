package cmd

import (
	"github.com/urfave/cli"
)

// NewApp assembles the command line interface
func NewApp() *cli.App {
	// The default version flag claims -v, which is the verbose logging switch
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes with a Whitted-style ray tracer"
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
	sceneDirFlag := cli.StringFlag{
		Name:  "scene-dir",
		Value: "scenes",
		Usage: "directory holding JSON scene files",
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a preset scene, a "file:<name>" scene from the scene directory or a
path to a JSON scene description. Width, height and depth stored in a scene
file are used unless overridden on the command line.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "scene ID or path to a JSON scene",
				},
				sceneDirFlag,
				cli.IntFlag{
					Name:  "width",
					Value: 800,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 600,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: 5,
					Usage: "reflection and refraction budget",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of render workers (0 = three quarters of the CPUs)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 0,
					Usage: "tile edge in pixels (0 = one tile per worker)",
				},
				cli.BoolFlag{
					Name:  "overlay",
					Usage: "outline the render tiles on the output image",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list available scenes",
			Flags:  []cli.Flag{sceneDirFlag},
			Action: ListScenes,
		},
		{
			Name:  "serve",
			Usage: "start the HTTP render server",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to listen on",
				},
				sceneDirFlag,
			},
			Action: Serve,
		},
	}
	return app
}
