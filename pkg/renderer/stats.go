package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width       int
	Height      int
	Tiles       int           // Number of tiles the image was split into
	Workers     int           // Size of the worker pool
	PrimaryRays int           // One per pixel
	PrimaryHits int           // Primary rays that hit geometry
	Duration    time.Duration // Wall time of the whole render
	TileStats   []TileStats   // Per tile, in tile order
}

// TileStats tracks what a single tile task did
type TileStats struct {
	TileID   int
	Bounds   image.Rectangle
	Pixels   int
	Hits     int
	Duration time.Duration
}

// HitRatio returns the fraction of primary rays that hit geometry
func (s RenderStats) HitRatio() float64 {
	if s.PrimaryRays == 0 {
		return 0
	}
	return float64(s.PrimaryHits) / float64(s.PrimaryRays)
}

// add accumulates a finished tile into the totals
func (s *RenderStats) add(tile TileStats) {
	s.PrimaryRays += tile.Pixels
	s.PrimaryHits += tile.Hits
	s.TileStats = append(s.TileStats, tile)
}
