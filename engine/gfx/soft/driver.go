// Package soft is a CPU implementation of gfx.Driver and core.Renderer built
// on fauxgl. It cannot run GLSL; CompileProgram picks one of three built-in
// shaders from the stages and uniforms a source declares.
package soft

import (
	"errors"
	"fmt"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/core"
	"github.com/hubastard/lumen/engine/gfx"
)

const DefaultTextureUnits = 16

var (
	ErrUnknownBuffer = errors.New("unknown buffer")
	ErrNoProgram     = errors.New("no program in use")
	ErrBadUnit       = errors.New("texture unit out of range")
)

// Stats counts driver work since creation.
type Stats struct {
	TextureBinds int
	Uploads      int
	Draws        int
	Triangles    int
	Programs     int // live
}

type meshData struct {
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	uvs       []mgl32.Vec2
	indices   []uint32
}

// Driver renders into an in-memory NRGBA image.
type Driver struct {
	ctx       *fauxgl.Context
	wireframe bool
	units     []gfx.TextureHandle

	textures map[gfx.TextureHandle]fauxgl.Texture
	meshes   map[gfx.BufferHandle]*meshData
	next     uint32
	current  *program
	errs     []error
	stats    Stats
}

// New creates a w x h target with the given number of texture units;
// units < 1 means DefaultTextureUnits.
func New(w, h, units int) *Driver {
	if units < 1 {
		units = DefaultTextureUnits
	}
	d := &Driver{
		units:    make([]gfx.TextureHandle, units),
		textures: make(map[gfx.TextureHandle]fauxgl.Texture),
		meshes:   make(map[gfx.BufferHandle]*meshData),
	}
	d.Resize(w, h)
	return d
}

func (d *Driver) Image() image.Image { return d.ctx.Image() }
func (d *Driver) Stats() Stats       { return d.stats }

// Bound returns the texture resident in unit, 0 if none.
func (d *Driver) Bound(unit int) gfx.TextureHandle {
	if unit < 0 || unit >= len(d.units) {
		return 0
	}
	return d.units[unit]
}

func (d *Driver) fail(err error) { d.errs = append(d.errs, err) }

func (d *Driver) handle() uint32 {
	d.next++
	return d.next
}

// core.Renderer impl

func (d *Driver) Resize(w, h int) {
	if w < 1 || h < 1 {
		return
	}
	if d.ctx != nil && d.ctx.Width == w && d.ctx.Height == h {
		return
	}
	d.ctx = fauxgl.NewContext(w, h)
	d.ctx.Cull = fauxgl.CullNone
	d.ctx.Wireframe = d.wireframe
}

func (d *Driver) Clear(r, g, b, a float32) {
	d.ctx.ClearColorBufferWith(fauxgl.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)})
	d.ctx.ClearDepthBuffer()
}

func (d *Driver) SetWireframe(on bool) {
	d.wireframe = on
	d.ctx.Wireframe = on
}

func (d *Driver) Shutdown() {
	clear(d.textures)
	clear(d.meshes)
	clear(d.units)
	d.current = nil
}

// gfx.Driver impl

func (d *Driver) MaxTextureUnits() int { return len(d.units) }

func (d *Driver) CreateTexture(desc gfx.TextureDesc) (gfx.TextureHandle, error) {
	img, err := imageFromDesc(desc)
	if err != nil {
		return 0, err
	}
	h := gfx.TextureHandle(d.handle())
	d.textures[h] = fauxgl.NewImageTexture(img)
	return h, nil
}

func (d *Driver) DeleteTexture(h gfx.TextureHandle) {
	delete(d.textures, h)
	for i, b := range d.units {
		if b == h {
			d.units[i] = 0
		}
	}
}

func (d *Driver) BindTexture(unit int, h gfx.TextureHandle) {
	if unit < 0 || unit >= len(d.units) {
		d.fail(fmt.Errorf("%w: %d", ErrBadUnit, unit))
		return
	}
	d.units[unit] = h
	d.stats.TextureBinds++
}

func (d *Driver) UploadMesh(m gfx.MeshUpload) gfx.BufferHandle {
	md := &meshData{indices: append([]uint32(nil), m.Indices...)}
	for _, a := range m.Layout.Attributes {
		from := a.Offset / 4
		switch a.Size {
		case 3:
			vs := make([]mgl32.Vec3, m.VertexCount)
			for i := range vs {
				copy(vs[i][:], m.Data[from+i*3:])
			}
			if a.Location == 0 {
				md.positions = vs
			} else {
				md.normals = vs
			}
		case 2:
			vs := make([]mgl32.Vec2, m.VertexCount)
			for i := range vs {
				copy(vs[i][:], m.Data[from+i*2:])
			}
			md.uvs = vs
		}
	}
	h := gfx.BufferHandle(d.handle())
	d.meshes[h] = md
	d.stats.Uploads++
	return h
}

func (d *Driver) DrawIndexed(h gfx.BufferHandle, indexCount int) {
	md, ok := d.meshes[h]
	if !ok {
		d.fail(fmt.Errorf("%w: %d", ErrUnknownBuffer, h))
		return
	}
	if d.current == nil {
		d.fail(ErrNoProgram)
		return
	}
	indexCount = min(indexCount, len(md.indices))
	sh := d.current.shader(d)
	d.ctx.Shader = sh

	tris := make([]*fauxgl.Triangle, 0, indexCount/3)
	for i := 0; i+2 < indexCount; i += 3 {
		tris = append(tris, md.triangle(md.indices[i], md.indices[i+1], md.indices[i+2], sh.kind == kindFlat))
	}
	d.ctx.DrawTriangles(tris)
	d.stats.Draws++
	d.stats.Triangles += len(tris)
}

func (d *Driver) CompileProgram(src gfx.ProgramSource) (gfx.Program, error) {
	k, err := classify(src)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", src.Name, err)
	}
	d.stats.Programs++
	return &program{d: d, kind: k, name: src.Name, u: make(uniforms)}, nil
}

// DeleteProgram retires p; drawing with it afterwards records ErrNoProgram.
func (d *Driver) DeleteProgram(p gfx.Program) {
	sp, ok := p.(*program)
	if !ok || sp.d != d || sp.deleted {
		return
	}
	sp.deleted = true
	d.stats.Programs--
	if d.current == sp {
		d.current = nil
	}
}

// Err returns and clears the errors recorded since the last call.
func (d *Driver) Err() error {
	err := errors.Join(d.errs...)
	d.errs = d.errs[:0]
	return err
}

func (md *meshData) vertex(i uint32) fauxgl.Vertex {
	var v fauxgl.Vertex
	if int(i) < len(md.positions) {
		v.Position = vector(md.positions[i])
	}
	if int(i) < len(md.normals) {
		v.Normal = vector(md.normals[i])
	}
	if int(i) < len(md.uvs) {
		v.Texture = fauxgl.Vector{X: float64(md.uvs[i][0]), Y: float64(md.uvs[i][1])}
	}
	v.Color = fauxgl.White
	return v
}

// triangle builds one face. In flat mode every corner carries the face
// normal, which is what the geometry stage of the flat program computes.
func (md *meshData) triangle(a, b, c uint32, flat bool) *fauxgl.Triangle {
	t := &fauxgl.Triangle{V1: md.vertex(a), V2: md.vertex(b), V3: md.vertex(c)}
	if flat {
		p1, p2, p3 := vec3(t.V1.Position), vec3(t.V2.Position), vec3(t.V3.Position)
		n := vector(normalize(p2.Sub(p1).Cross(p3.Sub(p1))))
		t.V1.Normal, t.V2.Normal, t.V3.Normal = n, n, n
	}
	return t
}

// imageFromDesc undoes the bottom-left row order of desc; fauxgl samples
// images top-down.
func imageFromDesc(desc gfx.TextureDesc) (*image.NRGBA, error) {
	if desc.Width < 1 || desc.Height < 1 {
		return nil, gfx.ErrEmptyImage
	}
	ch := desc.Format.Channels()
	stride := desc.Width * ch
	if len(desc.Pixels) < stride*desc.Height {
		return nil, fmt.Errorf("texture %dx%d: have %d bytes, need %d", desc.Width, desc.Height, len(desc.Pixels), stride*desc.Height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, desc.Width, desc.Height))
	for y := 0; y < desc.Height; y++ {
		src := desc.Pixels[(desc.Height-1-y)*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < desc.Width; x++ {
			s, o := src[x*ch:], x*4
			dst[o], dst[o+1], dst[o+2], dst[o+3] = s[0], s[1], s[2], 255
			if ch == 4 {
				dst[o+3] = s[3]
			}
		}
	}
	return img, nil
}

func vector(v mgl32.Vec3) fauxgl.Vector {
	return fauxgl.Vector{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func vec3(v fauxgl.Vector) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return v
}

var (
	_ gfx.Driver    = (*Driver)(nil)
	_ core.Renderer = (*Driver)(nil)
)
