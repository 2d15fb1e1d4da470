package renderer

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

// DrawTileOverlay returns a copy of img with every tile outlined and numbered,
// which shows how the image was partitioned between workers
func DrawTileOverlay(img image.Image, tiles []*Tile) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetRGBA(1, 1, 0, 0.6)
	dc.SetLineWidth(1)

	for _, tile := range tiles {
		b := tile.Bounds
		dc.DrawRectangle(float64(b.Min.X)+0.5, float64(b.Min.Y)+0.5, float64(b.Dx())-1, float64(b.Dy())-1)
		dc.Stroke()
		if b.Dx() >= 16 && b.Dy() >= 16 {
			dc.DrawString(fmt.Sprint(tile.ID), float64(b.Min.X)+3, float64(b.Min.Y)+13)
		}
	}
	return dc.Image()
}
