package gfx

import (
	"fmt"
	"image"
	"image/draw"
	"sync/atomic"
)

var generations atomic.Uint64

// Texture is image data resident on the GPU. Generation is unique per upload,
// so a recycled driver handle never looks like the texture it replaced.
type Texture struct {
	Handle     TextureHandle
	Generation uint64
	Width      int
	Height     int
	Channels   int
}

// NewTexture uploads img. Opaque images are stored as RGB, others as RGBA.
func NewTexture(d Driver, img image.Image) (*Texture, error) {
	desc, err := DescFromImage(img)
	if err != nil {
		return nil, err
	}
	h, err := d.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("create texture %dx%d: %w", desc.Width, desc.Height, err)
	}
	return &Texture{
		Handle:     h,
		Generation: generations.Add(1),
		Width:      desc.Width,
		Height:     desc.Height,
		Channels:   desc.Format.Channels(),
	}, nil
}

// Release deletes the GPU object. The texture must not be drawn afterwards.
func (t *Texture) Release(d Driver) {
	if t == nil || t.Handle == 0 {
		return
	}
	d.DeleteTexture(t.Handle)
	t.Handle = 0
}

// DescFromImage packs img into tight rows flipped to a bottom-left origin.
func DescFromImage(img image.Image) (TextureDesc, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return TextureDesc{}, ErrEmptyImage
	}

	px := toNRGBA(img)
	format := FormatRGBA
	if px.Opaque() {
		format = FormatRGB
	}
	ch := format.Channels()

	out := make([]byte, w*h*ch)
	for y := 0; y < h; y++ {
		src := px.Pix[y*px.Stride : y*px.Stride+w*4]
		dst := out[(h-1-y)*w*ch : (h-y)*w*ch]
		if ch == 4 {
			copy(dst, src)
			continue
		}
		for x := 0; x < w; x++ {
			copy(dst[x*3:x*3+3], src[x*4:x*4+3])
		}
	}
	return TextureDesc{Width: w, Height: h, Format: format, Pixels: out}, nil
}

// toNRGBA gives straight (non-premultiplied) alpha, which is what both
// drivers sample.
func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
