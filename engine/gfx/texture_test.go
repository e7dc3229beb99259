package gfx

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDriver struct {
	next    TextureHandle
	created []TextureDesc
	deleted []TextureHandle
	fail    error
}

func (d *stubDriver) MaxTextureUnits() int { return 16 }
func (d *stubDriver) CreateTexture(desc TextureDesc) (TextureHandle, error) {
	if d.fail != nil {
		return 0, d.fail
	}
	d.next++
	d.created = append(d.created, desc)
	return d.next, nil
}
func (d *stubDriver) DeleteTexture(h TextureHandle)                 { d.deleted = append(d.deleted, h) }
func (d *stubDriver) BindTexture(int, TextureHandle)                {}
func (d *stubDriver) UploadMesh(MeshUpload) BufferHandle            { return 1 }
func (d *stubDriver) DrawIndexed(BufferHandle, int)                 {}
func (d *stubDriver) CompileProgram(ProgramSource) (Program, error) { return nopProgram{}, nil }
func (d *stubDriver) Err() error                                    { return nil }

type nopProgram struct{}

func (nopProgram) Use()                       {}
func (nopProgram) SetInt(string, int32)       {}
func (nopProgram) SetFloat(string, float32)   {}
func (nopProgram) SetVec3(string, mgl32.Vec3) {}
func (nopProgram) SetMat4(string, mgl32.Mat4) {}

func TestDescFromImageFlipsRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{255, 0, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 255, 255})

	desc, err := DescFromImage(img)
	require.NoError(t, err)
	assert.Equal(t, FormatRGB, desc.Format)
	require.Len(t, desc.Pixels, 2*2*3)
	// first stored row is the bottom image row
	assert.Equal(t, []byte{0, 0, 255}, desc.Pixels[0:3])
	assert.Equal(t, []byte{255, 0, 0}, desc.Pixels[6:9])
}

func TestDescFromImageKeepsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{255, 255, 255, 0})

	desc, err := DescFromImage(img)
	require.NoError(t, err)
	assert.Equal(t, FormatRGBA, desc.Format)
	assert.Len(t, desc.Pixels, 4)
	assert.Equal(t, byte(0), desc.Pixels[3])
}

func TestDescFromImageStraightAlpha(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	nrgba.SetNRGBA(0, 0, color.NRGBA{200, 100, 50, 128})
	desc, err := DescFromImage(nrgba)
	require.NoError(t, err)
	assert.Equal(t, []byte{200, 100, 50, 128}, desc.Pixels)

	// premultiplied sources are converted back to straight alpha
	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.SetRGBA(0, 0, color.RGBA{128, 64, 32, 128})
	desc, err = DescFromImage(rgba)
	require.NoError(t, err)
	require.Len(t, desc.Pixels, 4)
	assert.InDelta(t, 255, int(desc.Pixels[0]), 1)
	assert.InDelta(t, 127, int(desc.Pixels[1]), 1)
	assert.InDelta(t, 63, int(desc.Pixels[2]), 1)
	assert.Equal(t, byte(128), desc.Pixels[3])
}

func TestDescFromImageEmpty(t *testing.T) {
	_, err := DescFromImage(image.NewRGBA(image.Rect(0, 0, 0, 4)))
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestNewTextureGenerations(t *testing.T) {
	d := &stubDriver{}
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))

	a, err := NewTexture(d, img)
	require.NoError(t, err)
	b, err := NewTexture(d, img)
	require.NoError(t, err)

	assert.Equal(t, 4, a.Width)
	assert.Equal(t, 2, a.Height)
	assert.Equal(t, 4, a.Channels)
	assert.NotEqual(t, a.Handle, b.Handle)
	assert.Greater(t, b.Generation, a.Generation)
}

func TestNewTextureDriverFailure(t *testing.T) {
	boom := errors.New("out of memory")
	_, err := NewTexture(&stubDriver{fail: boom}, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.ErrorIs(t, err, boom)
}

func TestTextureRelease(t *testing.T) {
	d := &stubDriver{}
	tex, err := NewTexture(d, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	require.NoError(t, err)

	tex.Release(d)
	tex.Release(d)
	assert.Equal(t, []TextureHandle{1}, d.deleted)
	assert.Zero(t, tex.Handle)
}

func TestVertexLayoutAttrib(t *testing.T) {
	l := VertexLayout{Attributes: []VertexAttrib{{Location: 0, Size: 3}, {Location: 2, Size: 2, Offset: 96}}}
	a, ok := l.Attrib(2)
	require.True(t, ok)
	assert.Equal(t, 96, a.Offset)
	_, ok = l.Attrib(1)
	assert.False(t, ok)
}
