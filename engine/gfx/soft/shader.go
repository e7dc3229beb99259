package soft

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/gfx"
)

type kind int

const (
	kindSolid kind = iota
	kindPhong
	kindFlat
)

func (k kind) String() string {
	switch k {
	case kindPhong:
		return "phong"
	case kindFlat:
		return "flat"
	}
	return "solid"
}

// classify maps GLSL onto a built-in shader: a geometry stage means flat
// shading, a material uniform means Phong, anything else draws uObjColor.
func classify(src gfx.ProgramSource) (kind, error) {
	if strings.TrimSpace(src.Vertex) == "" || strings.TrimSpace(src.Fragment) == "" {
		return 0, fmt.Errorf("%w: missing vertex or fragment stage", gfx.ErrCompile)
	}
	switch {
	case src.Geometry != "":
		return kindFlat, nil
	case strings.Contains(src.Fragment, "uMaterial"):
		return kindPhong, nil
	}
	return kindSolid, nil
}

type uniforms map[string]any

func (u uniforms) v3(name string) mgl32.Vec3 {
	v, _ := u[name].(mgl32.Vec3)
	return v
}

func (u uniforms) f32(name string) float32 {
	v, _ := u[name].(float32)
	return v
}

func (u uniforms) i32(name string) int32 {
	v, _ := u[name].(int32)
	return v
}

type program struct {
	d       *Driver
	kind    kind
	name    string
	u       uniforms
	deleted bool
}

func (p *program) Use() {
	if p.deleted {
		p.d.current = nil
		return
	}
	p.d.current = p
}

func (p *program) SetInt(name string, v int32)       { p.u[name] = v }
func (p *program) SetFloat(name string, v float32)   { p.u[name] = v }
func (p *program) SetVec3(name string, v mgl32.Vec3) { p.u[name] = v }
func (p *program) SetMat4(name string, m mgl32.Mat4) { p.u[name] = m }
func (p *program) String() string                    { return p.name + "/" + p.kind.String() }

// shader snapshots the uniforms for one draw. fauxgl shades fragments on
// several goroutines, so the snapshot is never written after creation.
func (p *program) shader(d *Driver) *shader {
	mvp, _ := p.u[gfx.UniformMVP].(mgl32.Mat4)
	s := &shader{
		kind:       p.kind,
		mvp:        matrix(mvp),
		color:      p.u.v3(gfx.UniformObjColor),
		lightColor: p.u.v3(gfx.UniformLightColor),
		lightPos:   p.u.v3(gfx.UniformLightPosObj),
		eye:        p.u.v3(gfx.UniformCameraPosObj),
		matAmb:     p.u.v3(gfx.UniformMaterialAmbient),
		matDiff:    p.u.v3(gfx.UniformMaterialDiffuse),
		matSpec:    p.u.v3(gfx.UniformMaterialSpecular),
		shininess:  p.u.f32(gfx.UniformMaterialShininess),
		lightAmb:   p.u.v3(gfx.UniformLightAmbient),
		lightDiff:  p.u.v3(gfx.UniformLightDiffuse),
		lightSpec:  p.u.v3(gfx.UniformLightSpecular),
	}
	if p.kind != kindSolid && p.u.i32(gfx.UniformHasTexture) == 1 {
		s.tex = d.textures[d.Bound(int(p.u.i32(gfx.UniformTexture)))]
	}
	return s
}

type shader struct {
	kind                           kind
	mvp                            fauxgl.Matrix
	color, lightColor              mgl32.Vec3
	lightPos, eye                  mgl32.Vec3
	matAmb, matDiff, matSpec       mgl32.Vec3
	shininess                      float32
	lightAmb, lightDiff, lightSpec mgl32.Vec3
	tex                            fauxgl.Texture
}

func (s *shader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = s.mvp.MulPositionW(v.Position)
	return v
}

// Fragment mirrors phong/object.frag, lighting in object space.
func (s *shader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	if s.kind == kindSolid {
		return rgb(s.color)
	}
	base := s.color
	if s.tex != nil {
		t := s.tex.Sample(v.Texture.X, v.Texture.Y)
		base = mul(base, mgl32.Vec3{float32(t.R), float32(t.G), float32(t.B)})
	}

	pos := vec3(v.Position)
	n := normalize(vec3(v.Normal))
	l := normalize(s.lightPos.Sub(pos))
	view := normalize(s.eye.Sub(pos))
	r := n.Mul(2 * n.Dot(l)).Sub(l)

	ambient := mul(s.lightAmb, s.matAmb)
	diffuse := mul(s.lightDiff, s.matDiff).Mul(max(n.Dot(l), 0))
	spec := math32.Pow(max(view.Dot(r), 0), max(s.shininess*128, 1))
	specular := mul(s.lightSpec, s.matSpec).Mul(spec)

	return rgb(mul(mul(ambient.Add(diffuse).Add(specular), s.lightColor), base))
}

func mul(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func rgb(c mgl32.Vec3) fauxgl.Color {
	return fauxgl.Color{
		R: float64(mgl32.Clamp(c[0], 0, 1)),
		G: float64(mgl32.Clamp(c[1], 0, 1)),
		B: float64(mgl32.Clamp(c[2], 0, 1)),
		A: 1,
	}
}

// matrix converts column-major mgl32 storage to fauxgl's row fields.
func matrix(m mgl32.Mat4) fauxgl.Matrix {
	return fauxgl.Matrix{
		X00: float64(m[0]), X01: float64(m[4]), X02: float64(m[8]), X03: float64(m[12]),
		X10: float64(m[1]), X11: float64(m[5]), X12: float64(m[9]), X13: float64(m[13]),
		X20: float64(m[2]), X21: float64(m[6]), X22: float64(m[10]), X23: float64(m[14]),
		X30: float64(m[3]), X31: float64(m[7]), X32: float64(m[11]), X33: float64(m[15]),
	}
}
