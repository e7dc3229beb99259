// Package meshcache uploads each mesh to the GPU once and remembers the
// buffers by mesh identity.
package meshcache

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/mesh"
)

// Attribute locations shared with the shaders.
const (
	LocPosition = 0
	LocNormal   = 1
	LocTexCoord = 2
)

type Uploader interface {
	UploadMesh(m gfx.MeshUpload) gfx.BufferHandle
}

type Entry struct {
	Handle     gfx.BufferHandle
	IndexCount int
	Layout     gfx.VertexLayout
}

// Cache is keyed by pointer, not contents, and never invalidates: a mesh
// edited after its first draw keeps its original buffers.
type Cache struct {
	up      Uploader
	entries map[*mesh.Mesh]Entry
	uploads int
}

func New(u Uploader) *Cache {
	return &Cache{up: u, entries: make(map[*mesh.Mesh]Entry)}
}

// GetOrCreate returns the buffers for m, uploading them on first use.
func (c *Cache) GetOrCreate(m *mesh.Mesh) Entry {
	if e, ok := c.entries[m]; ok {
		return e
	}
	up := Pack(m)
	e := Entry{
		Handle:     c.up.UploadMesh(up),
		IndexCount: len(up.Indices),
		Layout:     up.Layout,
	}
	c.uploads++
	c.entries[m] = e
	return e
}

func (c *Cache) Len() int     { return len(c.entries) }
func (c *Cache) Uploads() int { return c.uploads }

// Pack lays out positions, then normals, then texture coordinates in one
// float buffer. Missing normals or texture coordinates are zero filled so
// every attribute spans all vertices.
func Pack(m *mesh.Mesh) gfx.MeshUpload {
	n := len(m.Vertices)
	data := make([]float32, 0, n*8)
	for _, v := range m.Vertices {
		data = append(data, v[:]...)
	}
	normalsAt := len(data) * 4
	for i := 0; i < n; i++ {
		var v mgl32.Vec3
		if i < len(m.Normals) {
			v = m.Normals[i]
		}
		data = append(data, v[:]...)
	}
	uvAt := len(data) * 4
	for i := 0; i < n; i++ {
		var v mgl32.Vec2
		if i < len(m.TexCoords) {
			v = m.TexCoords[i]
		}
		data = append(data, v[:]...)
	}

	return gfx.MeshUpload{
		Data:        data,
		Indices:     m.Indices(),
		VertexCount: n,
		Layout: gfx.VertexLayout{Attributes: []gfx.VertexAttrib{
			{Location: LocPosition, Size: 3, Offset: 0},
			{Location: LocNormal, Size: 3, Offset: normalsAt},
			{Location: LocTexCoord, Size: 2, Offset: uvAt},
		}},
	}
}
