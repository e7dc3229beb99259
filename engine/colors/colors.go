// Package colors names the RGBA colours used by the engine defaults and the
// demo scene.
package colors

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is linear RGBA in [0, 1].
type Color [4]float32

var (
	White      = Color{1, 1, 1, 1}
	Black      = Color{0, 0, 0, 1}
	Red        = Color{1, 0, 0, 1}
	Green      = Color{0, 1, 0, 1}
	Blue       = Color{0, 0, 1, 1}
	Background = Color{0.9, 0.9, 0.9, 1}
	Paper      = Color{0.96, 0.96, 0.96, 1}
)

// Checker is the foreground rotation of the procedural textures.
var Checker = []Color{
	{0.90, 0.35, 0.27, 1},
	{0.27, 0.59, 0.90, 1},
	{0.35, 0.78, 0.43, 1},
	{0.94, 0.78, 0.24, 1},
	{0.67, 0.35, 0.82, 1},
	{0.24, 0.78, 0.78, 1},
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// RGB drops alpha, for colour uniforms.
func (c Color) RGB() mgl32.Vec3 { return mgl32.Vec3{c[0], c[1], c[2]} }

// NRGBA converts to 8-bit channels, clamping out-of-range values.
func (c Color) NRGBA() color.NRGBA {
	b := func(v float32) uint8 { return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5) }
	return color.NRGBA{R: b(c[0]), G: b(c[1]), B: b(c[2]), A: b(c[3])}
}
