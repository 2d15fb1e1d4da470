package renderer

import (
	"image"
	"math"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Unique tile identifier, also its index in the grid
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{ID: id, Bounds: bounds}
}

// NewTileGrid splits the image into exactly count non-overlapping tiles, or
// width*height tiles when count exceeds the pixel count. The image is cut into
// horizontal bands whose number follows the aspect ratio; the tiles are then
// spread over the bands as evenly as possible.
func NewTileGrid(width, height, count int) []*Tile {
	if width <= 0 || height <= 0 {
		return nil
	}
	count = min(max(count, 1), width*height)

	// Enough bands that no band needs more columns than the image is wide
	rows := int(math.Round(math.Sqrt(float64(count) * float64(height) / float64(width))))
	rows = max(rows, (count+width-1)/width, 1)
	rows = min(rows, height, count)

	tiles := make([]*Tile, 0, count)
	for row := 0; row < rows; row++ {
		cols := count / rows
		if row < count%rows {
			cols++
		}

		y0 := row * height / rows
		y1 := (row + 1) * height / rows
		for col := 0; col < cols; col++ {
			x0 := col * width / cols
			x1 := (col + 1) * width / cols
			tiles = append(tiles, NewTile(len(tiles), image.Rect(x0, y0, x1, y1)))
		}
	}
	return tiles
}

// NewTileGridSized creates a grid of tileSize×tileSize tiles covering the entire
// image. Tiles on the right and bottom edges are clipped to the image.
func NewTileGridSized(width, height, tileSize int) []*Tile {
	if width <= 0 || height <= 0 || tileSize <= 0 {
		return nil
	}

	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}
