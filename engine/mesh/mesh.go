// Package mesh holds triangle geometry and the procedural shapes the demo
// draws. Generated meshes are shared: every call to Cube returns the same
// *Mesh, which is what the GPU buffer cache keys on.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	vec3Bytes = 3 * 4
	vec2Bytes = 2 * 4
	faceBytes = 3 * 4
)

// Mesh is indexed triangle geometry. Normals and TexCoords, when present, are
// per vertex.
type Mesh struct {
	Vertices  []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Faces     [][3]uint32
}

func (m *Mesh) VerticesBytes() int  { return len(m.Vertices) * vec3Bytes }
func (m *Mesh) NormalsBytes() int   { return len(m.Normals) * vec3Bytes }
func (m *Mesh) TexCoordsBytes() int { return len(m.TexCoords) * vec2Bytes }
func (m *Mesh) FacesBytes() int     { return len(m.Faces) * faceBytes }

// Size is the byte size of all attribute and index data.
func (m *Mesh) Size() int {
	return m.VerticesBytes() + m.NormalsBytes() + m.TexCoordsBytes() + m.FacesBytes()
}

func (m *Mesh) IndexCount() int { return len(m.Faces) * 3 }

// Indices flattens Faces.
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, 0, m.IndexCount())
	for _, f := range m.Faces {
		out = append(out, f[0], f[1], f[2])
	}
	return out
}

func (m *Mesh) faceNormal(f [3]uint32) mgl32.Vec3 {
	v0, v1, v2 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// UpdateSurfaceNormals gives every vertex the normal of the last face that
// uses it. Only meaningful when faces do not share vertices.
func (m *Mesh) UpdateSurfaceNormals() {
	m.Normals = make([]mgl32.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		n := m.faceNormal(f)
		m.Normals[f[0]], m.Normals[f[1]], m.Normals[f[2]] = n, n, n
	}
}

// UpdateVertexNormals averages the normals of the faces around each vertex.
func (m *Mesh) UpdateVertexNormals() {
	m.Normals = make([]mgl32.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		n := m.faceNormal(f)
		for _, i := range f {
			m.Normals[i] = m.Normals[i].Add(n)
		}
	}
	normalizeAll(m.Normals)
}

func normalizeAll(vs []mgl32.Vec3) {
	for i, v := range vs {
		if v.Len() > 0 {
			vs[i] = v.Normalize()
		}
	}
}
