package assets

import (
	"image"
	"image/color"

	"github.com/hubastard/lumen/engine/colors"
)

// Checkerboard draws a size×size image of cells×cells squares alternating
// between a and b, starting with a at the top left.
func Checkerboard(size, cells int, a, b color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if cells < 1 {
		cells = 1
	}
	cell := size / cells
	if cell < 1 {
		cell = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// ProceduralTextures returns n distinct checkerboards for scenes without
// texture files.
func ProceduralTextures(n, size int) []image.Image {
	out := make([]image.Image, n)
	for i := range out {
		fg := colors.Checker[i%len(colors.Checker)]
		cells := 4 + 2*(i/len(colors.Checker))
		out[i] = Checkerboard(size, cells, colors.Paper.NRGBA(), fg.NRGBA())
	}
	return out
}
