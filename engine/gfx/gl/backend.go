// Package glbackend implements gfx.Driver and core.Renderer on OpenGL 4.6
// using direct state access, so creating a texture or a buffer never
// disturbs the texture units the slot manager tracks.
package glbackend

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/hubastard/lumen/engine/core"
	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/logging"
)

var ErrGL = errors.New("gl error")

type glMesh struct {
	vao, vbo, ebo uint32
}

// Backend owns every GL object it creates and frees them on Shutdown. A
// current context is required for all calls.
type Backend struct {
	log      logging.Logger
	units    int
	textures map[gfx.TextureHandle]struct{}
	meshes   map[gfx.BufferHandle]glMesh
	programs map[uint32]*program
	bound    uint32
}

// New configures global GL state for the current context.
func New(cfg core.Config, log logging.Logger) (*Backend, error) {
	b := &Backend{
		log:      logging.OrNop(log),
		textures: make(map[gfx.TextureHandle]struct{}),
		meshes:   make(map[gfx.BufferHandle]glMesh),
		programs: make(map[uint32]*program),
	}

	var units int32
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &units)
	if units < 1 {
		return nil, fmt.Errorf("%w: driver reports %d texture units", ErrGL, units)
	}
	b.units = int(units)

	if cfg.GLDebug {
		enableDebugOutput(b.log)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	if err := b.Err(); err != nil {
		return nil, err
	}
	b.log.Debugf("gl: %d texture units", b.units)
	return b, nil
}

// core.Renderer impl

func (b *Backend) Resize(w, h int) { gl.Viewport(0, 0, int32(w), int32(h)) }

func (b *Backend) Clear(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (b *Backend) SetWireframe(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

func (b *Backend) Shutdown() {
	for h := range b.textures {
		b.DeleteTexture(h)
	}
	for h, m := range b.meshes {
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		gl.DeleteVertexArrays(1, &m.vao)
		delete(b.meshes, h)
	}
	for id := range b.programs {
		gl.DeleteProgram(id)
		delete(b.programs, id)
	}
}

// gfx.Driver impl

func (b *Backend) MaxTextureUnits() int { return b.units }

func (b *Backend) CreateTexture(d gfx.TextureDesc) (gfx.TextureHandle, error) {
	if d.Width < 1 || d.Height < 1 {
		return 0, gfx.ErrEmptyImage
	}
	if want := d.Width * d.Height * d.Format.Channels(); len(d.Pixels) < want {
		return 0, fmt.Errorf("texture %dx%d: have %d bytes, need %d", d.Width, d.Height, len(d.Pixels), want)
	}
	internal, format := uint32(gl.RGBA8), uint32(gl.RGBA)
	if d.Format == gfx.FormatRGB {
		internal, format = gl.RGB8, gl.RGB
	}
	levels := int32(bits.Len(uint(max(d.Width, d.Height))))

	var id uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &id)
	gl.TextureParameteri(id, gl.TEXTURE_WRAP_S, gl.MIRRORED_REPEAT)
	gl.TextureParameteri(id, gl.TEXTURE_WRAP_T, gl.MIRRORED_REPEAT)
	gl.TextureParameteri(id, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_NEAREST)
	gl.TextureParameteri(id, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TextureStorage2D(id, levels, internal, int32(d.Width), int32(d.Height))
	gl.TextureSubImage2D(id, 0, 0, 0, int32(d.Width), int32(d.Height), format, gl.UNSIGNED_BYTE, gl.Ptr(d.Pixels))
	gl.GenerateTextureMipmap(id)

	if err := b.Err(); err != nil {
		gl.DeleteTextures(1, &id)
		return 0, fmt.Errorf("texture %dx%d: %w", d.Width, d.Height, err)
	}
	h := gfx.TextureHandle(id)
	b.textures[h] = struct{}{}
	return h, nil
}

func (b *Backend) DeleteTexture(h gfx.TextureHandle) {
	if _, ok := b.textures[h]; !ok {
		return
	}
	id := uint32(h)
	gl.DeleteTextures(1, &id)
	delete(b.textures, h)
}

func (b *Backend) BindTexture(unit int, h gfx.TextureHandle) {
	gl.BindTextureUnit(uint32(unit), uint32(h))
}

// UploadMesh stores the attributes non-interleaved in one buffer; each
// attribute gets its own binding point at its byte offset.
func (b *Backend) UploadMesh(m gfx.MeshUpload) gfx.BufferHandle {
	var gm glMesh
	gl.CreateVertexArrays(1, &gm.vao)
	gl.CreateBuffers(1, &gm.vbo)
	gl.CreateBuffers(1, &gm.ebo)

	if len(m.Data) > 0 {
		gl.NamedBufferData(gm.vbo, len(m.Data)*4, gl.Ptr(m.Data), gl.STATIC_DRAW)
	}
	if len(m.Indices) > 0 {
		gl.NamedBufferData(gm.ebo, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	for _, a := range m.Layout.Attributes {
		gl.EnableVertexArrayAttrib(gm.vao, a.Location)
		gl.VertexArrayAttribFormat(gm.vao, a.Location, a.Size, gl.FLOAT, false, 0)
		gl.VertexArrayVertexBuffer(gm.vao, a.Location, gm.vbo, a.Offset, a.Size*4)
		gl.VertexArrayAttribBinding(gm.vao, a.Location, a.Location)
	}
	gl.VertexArrayElementBuffer(gm.vao, gm.ebo)

	h := gfx.BufferHandle(gm.vao)
	b.meshes[h] = gm
	return h
}

func (b *Backend) DrawIndexed(h gfx.BufferHandle, indexCount int) {
	if indexCount <= 0 {
		return
	}
	if id := uint32(h); id != b.bound {
		gl.BindVertexArray(id)
		b.bound = id
	}
	gl.DrawElements(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (b *Backend) CompileProgram(src gfx.ProgramSource) (gfx.Program, error) {
	id, err := makeProgram(src)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", src.Name, err)
	}
	p := &program{id: id, name: src.Name, locs: make(map[string]int32)}
	b.programs[id] = p
	return p, nil
}

// DeleteProgram frees a program returned by CompileProgram, typically the
// one replaced by a shader reload. Other programs are ignored.
func (b *Backend) DeleteProgram(p gfx.Program) {
	gp, ok := p.(*program)
	if !ok {
		return
	}
	if _, ok := b.programs[gp.id]; !ok {
		return
	}
	gl.DeleteProgram(gp.id)
	delete(b.programs, gp.id)
}

// Err drains every pending GL error flag.
func (b *Backend) Err() error {
	var names []string
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		names = append(names, errorName(code))
	}
	if len(names) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrGL, strings.Join(names, ", "))
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.STACK_OVERFLOW:
		return "STACK_OVERFLOW"
	case gl.STACK_UNDERFLOW:
		return "STACK_UNDERFLOW"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("0x%04x", code)
}

var (
	_ gfx.Driver    = (*Backend)(nil)
	_ core.Renderer = (*Backend)(nil)
)
