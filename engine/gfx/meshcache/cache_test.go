package meshcache

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/mesh"
)

type countingUploader struct {
	uploads []gfx.MeshUpload
}

func (u *countingUploader) UploadMesh(m gfx.MeshUpload) gfx.BufferHandle {
	u.uploads = append(u.uploads, m)
	return gfx.BufferHandle(len(u.uploads))
}

func TestGetOrCreateUploadsOnce(t *testing.T) {
	u := &countingUploader{}
	c := New(u)
	m := mesh.Cube()

	first := c.GetOrCreate(m)
	second := c.GetOrCreate(m)

	assert.Equal(t, first, second)
	assert.Len(t, u.uploads, 1)
	assert.Equal(t, 1, c.Uploads())
	assert.Equal(t, 36, first.IndexCount)
}

func TestIdentityNotContents(t *testing.T) {
	u := &countingUploader{}
	c := New(u)
	a := &mesh.Mesh{Vertices: []mgl32.Vec3{{0, 0, 0}}, Faces: [][3]uint32{{0, 0, 0}}}
	b := &mesh.Mesh{Vertices: []mgl32.Vec3{{0, 0, 0}}, Faces: [][3]uint32{{0, 0, 0}}}

	ea, eb := c.GetOrCreate(a), c.GetOrCreate(b)
	assert.NotEqual(t, ea.Handle, eb.Handle)
	assert.Equal(t, 2, c.Len())

	a.Vertices[0] = mgl32.Vec3{1, 1, 1}
	assert.Equal(t, ea, c.GetOrCreate(a))
	assert.Len(t, u.uploads, 2)
}

func TestPackLayout(t *testing.T) {
	m := mesh.Square()
	up := Pack(m)

	require.Equal(t, 4, up.VertexCount)
	require.Len(t, up.Data, 4*(3+3+2))
	assert.Equal(t, m.Indices(), up.Indices)

	pos, ok := up.Layout.Attrib(LocPosition)
	require.True(t, ok)
	nor, ok := up.Layout.Attrib(LocNormal)
	require.True(t, ok)
	uv, ok := up.Layout.Attrib(LocTexCoord)
	require.True(t, ok)

	assert.Equal(t, 0, pos.Offset)
	assert.Equal(t, m.VerticesBytes(), nor.Offset)
	assert.Equal(t, m.VerticesBytes()+m.NormalsBytes(), uv.Offset)

	// second vertex of each block
	assert.Equal(t, m.Vertices[1][:], up.Data[3:6])
	assert.Equal(t, m.Normals[1][:], up.Data[nor.Offset/4+3:nor.Offset/4+6])
	assert.Equal(t, m.TexCoords[1][:], up.Data[uv.Offset/4+2:uv.Offset/4+4])
}

func TestPackFillsMissingAttributes(t *testing.T) {
	m := &mesh.Mesh{
		Vertices: []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		Faces:    [][3]uint32{{0, 1, 2}},
	}
	up := Pack(m)
	require.Len(t, up.Data, 3*8)
	for _, f := range up.Data[9:] {
		assert.Zero(t, f)
	}
}
