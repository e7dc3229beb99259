// Package assets loads shader sources and texture images.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/hubastard/lumen/engine/gfx"
)

//go:embed shaders
var embedded embed.FS

var ErrShaderNotFound = errors.New("shader not found")

// ShaderSet resolves shader files from Dir first and falls back to the
// built-in sources. Names are slash separated, relative to the shader root,
// e.g. "phong/object.vert".
type ShaderSet struct {
	Dir string
}

// LoadShader reads one shader source.
func (s ShaderSet) LoadShader(name string) (string, error) {
	if s.Dir != "" {
		b, err := os.ReadFile(filepath.Join(s.Dir, filepath.FromSlash(name)))
		if err == nil {
			return string(b), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("load shader %q: %w", name, err)
		}
	}
	b, err := embedded.ReadFile(path.Join("shaders", name))
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, ErrShaderNotFound)
	}
	return string(b), nil
}

// ProgramSources is the GLSL for the renderer's three programs.
type ProgramSources struct {
	Smooth gfx.ProgramSource
	Flat   gfx.ProgramSource
	Lights gfx.ProgramSource
}

// Programs loads the smooth (phong), flat and light-source programs.
func (s ShaderSet) Programs() (ProgramSources, error) {
	var (
		ps  ProgramSources
		err error
	)
	load := func(name string) string {
		if err != nil {
			return ""
		}
		var src string
		src, err = s.LoadShader(name)
		return src
	}

	objectVert := load("phong/object.vert")
	ps.Smooth = gfx.ProgramSource{Name: "phong", Vertex: objectVert, Fragment: load("phong/object.frag")}
	ps.Lights = gfx.ProgramSource{Name: "light_source", Vertex: objectVert, Fragment: load("phong/light_source.frag")}
	ps.Flat = gfx.ProgramSource{
		Name:     "flat",
		Vertex:   load("flat/flat.vert"),
		Geometry: load("flat/flat.geom"),
		Fragment: load("flat/flat.frag"),
	}
	if err != nil {
		return ProgramSources{}, err
	}
	return ps, nil
}
