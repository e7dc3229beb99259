package mesh

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	cubeOnce, squareOnce, icoOnce sync.Once
	cube, square, icosahedron     *Mesh

	spheresMu sync.Mutex
	spheres   = map[int]*Mesh{}
)

// Cube returns the shared unit cube: 24 vertices so each face has its own
// normals and texture coordinates.
func Cube() *Mesh {
	cubeOnce.Do(func() { cube = newCube() })
	return cube
}

// Square returns the shared unit square in the xy plane facing +z.
func Square() *Mesh {
	squareOnce.Do(func() { square = newSquare() })
	return square
}

// Icosahedron returns the shared regular icosahedron with edge length 1.
func Icosahedron() *Mesh {
	icoOnce.Do(func() { icosahedron = newIcosahedron() })
	return icosahedron
}

// Icosphere returns the shared unit sphere made by subdividing an icosahedron
// level times. Negative levels are treated as 0.
func Icosphere(level int) *Mesh {
	if level < 0 {
		level = 0
	}
	spheresMu.Lock()
	defer spheresMu.Unlock()
	if m, ok := spheres[level]; ok {
		return m
	}
	m := newIcosphere(level)
	spheres[level] = m
	return m
}

func newCube() *Mesh {
	type face struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
	}
	const h = 0.5
	faces := []face{
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{h, h, h}, {h, -h, h}, {-h, -h, h}, {-h, h, h}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{h, h, -h}, {h, h, h}, {-h, h, h}, {-h, h, -h}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{h, -h, h}, {h, -h, -h}, {-h, -h, -h}, {-h, -h, h}}},
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{-h, h, -h}, {-h, -h, -h}, {h, -h, -h}, {h, h, -h}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{h, h, -h}, {h, -h, -h}, {h, -h, h}, {h, h, h}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-h, h, h}, {-h, -h, h}, {-h, -h, -h}, {-h, h, -h}}},
	}
	// corners run right-top, right-bottom, left-bottom, left-top seen from outside
	uv := [4]mgl32.Vec2{{1, 1}, {1, 0}, {0, 0}, {0, 1}}

	m := &Mesh{}
	for i, f := range faces {
		base := uint32(i * 4)
		for c := 0; c < 4; c++ {
			m.Vertices = append(m.Vertices, f.corners[c])
			m.Normals = append(m.Normals, f.normal)
			m.TexCoords = append(m.TexCoords, uv[c])
		}
		m.Faces = append(m.Faces, [3]uint32{base, base + 2, base + 1}, [3]uint32{base + 2, base, base + 3})
	}
	return m
}

func newSquare() *Mesh {
	m := &Mesh{
		Vertices: []mgl32.Vec3{
			{-0.5, -0.5, 0},
			{-0.5, 0.5, 0},
			{0.5, 0.5, 0},
			{0.5, -0.5, 0},
		},
		TexCoords: []mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
		Faces:     [][3]uint32{{0, 3, 1}, {1, 3, 2}},
	}
	m.UpdateSurfaceNormals()
	return m
}

// newIcosahedron places the corners of three orthogonal golden rectangles and
// connects each vertex to every pair of its five nearest neighbours that are
// themselves one edge apart.
func newIcosahedron() *Mesh {
	s1 := float32(1)
	s2 := (1 + math32.Sqrt(5)) / 2
	a, b := s1/2, s2/2

	m := &Mesh{Vertices: []mgl32.Vec3{
		{-b, 0, a}, {-b, 0, -a}, {b, 0, -a}, {b, 0, a}, // xz plane
		{-a, b, 0}, {a, b, 0}, {a, -b, 0}, {-a, -b, 0}, // xy plane
		{0, a, b}, {0, a, -b}, {0, -a, -b}, {0, -a, b}, // yz plane
	}}

	seen := map[[3]uint32]bool{}
	for i := range m.Vertices {
		nb := nearest(m.Vertices, i, 5)
		for j := 0; j < len(nb); j++ {
			for k := j + 1; k < len(nb); k++ {
				d := m.Vertices[nb[j]].Sub(m.Vertices[nb[k]]).Len()
				if math32.Abs(d-s1) > 1e-4 {
					continue
				}
				key := sorted3(uint32(i), uint32(nb[j]), uint32(nb[k]))
				if seen[key] {
					continue
				}
				seen[key] = true
				m.Faces = append(m.Faces, m.outward(key))
			}
		}
	}

	m.Normals = make([]mgl32.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		n := m.Vertices[f[0]].Add(m.Vertices[f[1]]).Add(m.Vertices[f[2]]).Normalize()
		for _, i := range f {
			m.Normals[i] = m.Normals[i].Add(n)
		}
	}
	normalizeAll(m.Normals)
	m.TexCoords = sphericalUV(m.Vertices)
	return m
}

func newIcosphere(level int) *Mesh {
	base := newIcosahedron()
	m := &Mesh{
		Vertices: append([]mgl32.Vec3(nil), base.Vertices...),
		Faces:    append([][3]uint32(nil), base.Faces...),
	}
	normalizeAll(m.Vertices)

	for l := 0; l < level; l++ {
		mids := make(map[[2]uint32]uint32, len(m.Faces)*3/2)
		midpoint := func(i, j uint32) uint32 {
			key := [2]uint32{i, j}
			if j < i {
				key = [2]uint32{j, i}
			}
			if idx, ok := mids[key]; ok {
				return idx
			}
			v := m.Vertices[i].Add(m.Vertices[j]).Mul(0.5).Normalize()
			m.Vertices = append(m.Vertices, v)
			idx := uint32(len(m.Vertices) - 1)
			mids[key] = idx
			return idx
		}

		faces := make([][3]uint32, 0, len(m.Faces)*4)
		for _, f := range m.Faces {
			a := midpoint(f[0], f[1])
			b := midpoint(f[1], f[2])
			c := midpoint(f[2], f[0])
			faces = append(faces,
				[3]uint32{f[0], a, c},
				[3]uint32{a, b, c},
				[3]uint32{a, f[1], b},
				[3]uint32{c, b, f[2]},
			)
		}
		m.Faces = faces
	}

	m.Normals = make([]mgl32.Vec3, len(m.Vertices))
	for _, f := range m.Faces {
		n := m.Vertices[f[0]].Add(m.Vertices[f[1]]).Add(m.Vertices[f[2]]).Normalize()
		for _, i := range f {
			m.Normals[i] = m.Normals[i].Add(n)
		}
	}
	normalizeAll(m.Normals)
	m.TexCoords = sphericalUV(m.Vertices)
	return m
}

// outward orders f so its winding faces away from the origin.
func (m *Mesh) outward(f [3]uint32) [3]uint32 {
	v0, v1, v2 := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
	if v1.Sub(v0).Cross(v2.Sub(v0)).Dot(v0.Add(v1).Add(v2)) < 0 {
		f[1], f[2] = f[2], f[1]
	}
	return f
}

// nearest returns the indices of the n vertices closest to vs[k].
func nearest(vs []mgl32.Vec3, k, n int) []int {
	out := make([]int, 0, n)
	taken := map[int]bool{k: true}
	for len(out) < n {
		best, bestDist := -1, float32(math32.MaxFloat32)
		for i, v := range vs {
			if taken[i] {
				continue
			}
			if d := v.Sub(vs[k]).Len(); d < bestDist {
				best, bestDist = i, d
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		out = append(out, best)
	}
	return out
}

func sorted3(a, b, c uint32) [3]uint32 {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]uint32{a, b, c}
}

// sphericalUV maps directions from the origin onto longitude/latitude.
func sphericalUV(vs []mgl32.Vec3) []mgl32.Vec2 {
	out := make([]mgl32.Vec2, len(vs))
	for i, v := range vs {
		d := v.Normalize()
		u := 0.5 + math32.Atan2(d.Z(), d.X())/(2*math32.Pi)
		w := 0.5 + math32.Asin(mgl32.Clamp(d.Y(), -1, 1))/math32.Pi
		out[i] = mgl32.Vec2{u, w}
	}
	return out
}
