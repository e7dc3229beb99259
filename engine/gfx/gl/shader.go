package glbackend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/gfx"
)

// program sets uniforms through the DSA entry points, so a value can be set
// without the program being current.
type program struct {
	id   uint32
	name string
	locs map[string]int32
}

func (p *program) Use() { gl.UseProgram(p.id) }

// loc caches lookups, including misses (-1).
func (p *program) loc(name string) int32 {
	if l, ok := p.locs[name]; ok {
		return l
	}
	l := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locs[name] = l
	return l
}

func (p *program) SetInt(name string, v int32) {
	if l := p.loc(name); l >= 0 {
		gl.ProgramUniform1i(p.id, l, v)
	}
}

func (p *program) SetFloat(name string, v float32) {
	if l := p.loc(name); l >= 0 {
		gl.ProgramUniform1f(p.id, l, v)
	}
}

func (p *program) SetVec3(name string, v mgl32.Vec3) {
	if l := p.loc(name); l >= 0 {
		gl.ProgramUniform3f(p.id, l, v[0], v[1], v[2])
	}
}

func (p *program) SetMat4(name string, m mgl32.Mat4) {
	if l := p.loc(name); l >= 0 {
		gl.ProgramUniformMatrix4fv(p.id, l, 1, false, &m[0])
	}
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%w: %s stage: %s", gfx.ErrCompile, stageName(shaderType), strings.TrimRight(log, "\x00\n"))
	}
	return sh, nil
}

func makeProgram(src gfx.ProgramSource) (uint32, error) {
	stages := []struct {
		src string
		typ uint32
	}{
		{src.Vertex, gl.VERTEX_SHADER},
		{src.Geometry, gl.GEOMETRY_SHADER},
		{src.Fragment, gl.FRAGMENT_SHADER},
	}

	var shaders []uint32
	defer func() {
		for _, sh := range shaders {
			gl.DeleteShader(sh)
		}
	}()
	for _, st := range stages {
		if st.src == "" {
			if st.typ == gl.GEOMETRY_SHADER {
				continue
			}
			return 0, fmt.Errorf("%w: %s stage is empty", gfx.ErrCompile, stageName(st.typ))
		}
		sh, err := makeShader(st.src, st.typ)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, sh)
	}

	prog := gl.CreateProgram()
	for _, sh := range shaders {
		gl.AttachShader(prog, sh)
	}
	gl.LinkProgram(prog)
	for _, sh := range shaders {
		gl.DetachShader(prog, sh)
	}

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("%w: %s", gfx.ErrLink, strings.TrimRight(log, "\x00\n"))
	}
	return prog, nil
}

func stageName(t uint32) string {
	switch t {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.GEOMETRY_SHADER:
		return "geometry"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return "unknown"
}
