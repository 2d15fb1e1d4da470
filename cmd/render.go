package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/loaders"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/renderer"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, camera, settings, err := loadScene(ctx.String("scene"), ctx.String("scene-dir"))
	if err != nil {
		return err
	}

	config := renderer.DefaultConfig()
	config.Width = pick(ctx, "width", settings.Width)
	config.Height = pick(ctx, "height", settings.Height)
	config.Integrator.MaxDepth = pick(ctx, "depth", settings.MaxDepth)
	config.NumWorkers = ctx.Int("workers")
	config.TileSize = ctx.Int("tile-size")

	rt, err := renderer.NewRaytracer(sc, camera, config)
	if err != nil {
		return err
	}

	// Interrupts abort the tiles that have not started yet
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Infof("rendering %s at %dx%d with %d tiles", ctx.String("scene"), config.Width, config.Height, len(rt.Tiles()))
	img, stats, err := rt.Render(renderCtx)
	if err != nil {
		return err
	}

	var out image.Image = img
	if ctx.Bool("overlay") {
		out = renderer.DrawTileOverlay(img, rt.Tiles())
	}
	if err := loaders.SavePNG(ctx.String("out"), out); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", ctx.String("out"))

	displayRenderStats(stats)
	return nil
}

// loadScene resolves a scene ID. Scene files also carry optional render settings.
func loadScene(id, dir string) (*scene.Scene, *scene.Camera, scene.RenderDesc, error) {
	path, isFile := scene.DescriptionPath(id, dir)
	if !isFile {
		sc, camera, err := scene.Load(id, dir)
		return sc, camera, scene.RenderDesc{}, err
	}

	desc, err := scene.LoadDescription(path)
	if err != nil {
		return nil, nil, scene.RenderDesc{}, err
	}
	sc, camera, err := desc.Build()
	if err != nil {
		return nil, nil, scene.RenderDesc{}, err
	}
	return sc, camera, desc.Render, nil
}

// pick prefers an explicit flag, then the scene's setting, then the flag default
func pick(ctx *cli.Context, flag string, fromScene int) int {
	if !ctx.IsSet(flag) && fromScene > 0 {
		return fromScene
	}
	return ctx.Int(flag)
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tile", "Bounds", "Pixels", "Hits", "Render time"})
	for _, tile := range stats.TileStats {
		table.Append([]string{
			fmt.Sprintf("%d", tile.TileID),
			tile.Bounds.String(),
			fmt.Sprintf("%d", tile.Pixels),
			fmt.Sprintf("%d", tile.Hits),
			tile.Duration.String(),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%d workers", stats.Workers),
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.PrimaryRays),
		fmt.Sprintf("%02.1f %%", stats.HitRatio()*100),
		stats.Duration.String(),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
