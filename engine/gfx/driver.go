// Package gfx holds the contracts between the renderer and a GPU backend.
package gfx

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// TextureHandle and BufferHandle are opaque driver object names; 0 is none.
type (
	TextureHandle uint32
	BufferHandle  uint32
)

var (
	ErrCompile    = errors.New("shader compile failed")
	ErrLink       = errors.New("program link failed")
	ErrEmptyImage = errors.New("image has no pixels")
)

// Driver is the GPU backend. Every call is synchronous and must be issued from
// the thread that owns the graphics context.
type Driver interface {
	// MaxTextureUnits reports how many textures the fragment stage can sample
	// at once.
	MaxTextureUnits() int

	CreateTexture(desc TextureDesc) (TextureHandle, error)
	DeleteTexture(h TextureHandle)
	// BindTexture makes h resident in texture unit `unit` (0-based).
	BindTexture(unit int, h TextureHandle)

	// UploadMesh creates the vertex/index buffers for m and returns the handle
	// used to draw it.
	UploadMesh(m MeshUpload) BufferHandle
	DrawIndexed(b BufferHandle, indexCount int)

	CompileProgram(src ProgramSource) (Program, error)

	// Err drains the driver's error flag.
	Err() error
}

// Program is a linked shading program. Setting an unknown uniform is a no-op.
type Program interface {
	Use()
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)
}

// ProgramSource is the GLSL for one program. Geometry is optional.
type ProgramSource struct {
	Name     string
	Vertex   string
	Geometry string
	Fragment string
}

type TextureFormat int

const (
	FormatRGB TextureFormat = iota
	FormatRGBA
)

// Channels returns the bytes per pixel of f.
func (f TextureFormat) Channels() int {
	if f == FormatRGB {
		return 3
	}
	return 4
}

// TextureDesc describes pixel data with a bottom-left origin, rows tightly packed.
type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte
}

// VertexAttrib places one attribute inside a non-interleaved vertex buffer.
// Offset is in bytes from the start of the buffer.
type VertexAttrib struct {
	Location uint32
	Size     int32 // float components
	Offset   int
}

type VertexLayout struct {
	Attributes []VertexAttrib
}

// Attrib returns the attribute bound to location.
func (l VertexLayout) Attrib(location uint32) (VertexAttrib, bool) {
	for _, a := range l.Attributes {
		if a.Location == location {
			return a, true
		}
	}
	return VertexAttrib{}, false
}

// MeshUpload is one mesh flattened for the GPU: all attribute blocks
// concatenated in Data, triangle indices in Indices.
type MeshUpload struct {
	Data        []float32
	Indices     []uint32
	VertexCount int
	Layout      VertexLayout
}
