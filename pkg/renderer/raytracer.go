package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/integrator"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/log"
	"github.com/RLG-UP/Raytracer-RLG-sub000/pkg/scene"
)

var ErrInvalidImageSize = errors.New("renderer: invalid image size")

var logger = log.New("renderer")

// Config contains rendering configuration
type Config struct {
	Width      int
	Height     int
	NumWorkers int // Number of parallel workers (0 = DefaultWorkerCount)
	TileSize   int // Fixed tile edge in pixels (0 = one tile per worker)
	Integrator integrator.Options
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:      800,
		Height:     600,
		NumWorkers: 0,
		TileSize:   0,
		Integrator: integrator.DefaultOptions(),
	}
}

// Raytracer renders a frozen scene through a camera into an RGBA image
type Raytracer struct {
	scene      *scene.Scene
	camera     *scene.Camera
	config     Config
	integrator integrator.Integrator
	pool       *WorkerPool
	tiles      []*Tile
}

// NewRaytracer validates the image size, freezes the scene and prepares the
// tile grid. With a zero TileSize the grid has one tile per worker.
func NewRaytracer(s *scene.Scene, camera *scene.Camera, config Config) (*Raytracer, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, config.Width, config.Height)
	}
	if s == nil || camera == nil {
		return nil, errors.New("renderer: scene and camera are required")
	}

	// Workers read the BVH and the lights without locks
	s.Freeze()

	pool := NewWorkerPool(config.NumWorkers)
	config.NumWorkers = pool.NumWorkers()

	var tiles []*Tile
	if config.TileSize > 0 {
		tiles = NewTileGridSized(config.Width, config.Height, config.TileSize)
	} else {
		tiles = NewTileGrid(config.Width, config.Height, config.NumWorkers)
	}

	return &Raytracer{
		scene:      s,
		camera:     camera,
		config:     config,
		integrator: integrator.NewWhittedIntegrator(s, config.Integrator),
		pool:       pool,
		tiles:      tiles,
	}, nil
}

// SetIntegrator replaces the light transport used for primary hits
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// Tiles returns the tile grid used by Render
func (rt *Raytracer) Tiles() []*Tile {
	return rt.tiles
}

// Config returns the effective configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render traces every pixel and waits for all tiles. Any tile failure aborts the
// render and no image is returned.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	width, height := rt.config.Width, rt.config.Height
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	logger.Infof("rendering %dx%d with %d tiles on %d workers", width, height, len(rt.tiles), rt.pool.NumWorkers())
	start := time.Now()

	// Tiles never overlap, so every task writes its own pixels of img
	results, err := rt.pool.Run(ctx, rt.tiles, func(tile *Tile) (TileStats, error) {
		return rt.renderTile(img, tile), nil
	})
	if err != nil {
		logger.Errorf("render aborted: %v", err)
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		Width:   width,
		Height:  height,
		Tiles:   len(rt.tiles),
		Workers: rt.pool.NumWorkers(),
	}
	for _, tileStats := range results {
		stats.add(tileStats)
	}
	stats.Duration = time.Since(start)

	logger.Infof("rendered %d primary rays (%.1f%% hit) in %v", stats.PrimaryRays, 100*stats.HitRatio(), stats.Duration)
	return img, stats, nil
}

// renderTile shades every pixel inside the tile bounds
func (rt *Raytracer) renderTile(img *image.RGBA, tile *Tile) TileStats {
	width, height := rt.config.Width, rt.config.Height
	stats := TileStats{TileID: tile.ID, Bounds: tile.Bounds, Pixels: tile.Bounds.Dx() * tile.Bounds.Dy()}

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			ray := rt.camera.PrimaryRay(x, y, width, height)

			pixel := rt.scene.Background
			if hit, ok := rt.scene.ClosestHit(ray, rt.camera.Near, rt.camera.Far); ok {
				pixel = rt.integrator.PixelColor(ray, hit)
				stats.Hits++
			}
			img.SetRGBA(x, y, pixel.ToRGBA())
		}
	}
	return stats
}

// RenderScene renders with the default configuration and returns the image as
// row-major 8-bit RGB, three bytes per pixel
func RenderScene(width, height int, camera *scene.Camera, s *scene.Scene) ([]byte, error) {
	config := DefaultConfig()
	config.Width, config.Height = width, height

	rt, err := NewRaytracer(s, camera, config)
	if err != nil {
		return nil, err
	}
	img, _, err := rt.Render(context.Background())
	if err != nil {
		return nil, err
	}
	return ToRGB(img), nil
}

// ToRGB packs an RGBA image into row-major RGB bytes, dropping alpha
func ToRGB(img *image.RGBA) []byte {
	bounds := img.Bounds()
	out := make([]byte, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, y):img.PixOffset(bounds.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			out = append(out, row[i], row[i+1], row[i+2])
		}
	}
	return out
}
