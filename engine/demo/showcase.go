// Package demo builds and animates the showcase scene shared by the fly
// demo and the snapshot tool.
package demo

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/assets"
	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/logging"
	"github.com/hubastard/lumen/engine/mesh"
	"github.com/hubastard/lumen/engine/scene"
)

const (
	lineLevels     = 5
	lightOrbit     = 7.5
	proceduralSize = 64
)

// rotation speeds per axis, in degrees of rotation per degree of time
var spin = mgl32.Vec3{0.45, 0.90, 0.15}

type Showcase struct {
	Scene *scene.Scene
	Grid  []*scene.Object
	Line  []*scene.Object
	Cube  *scene.Object
	Ico   *scene.Object
	Light *scene.LightSource
}

// Build lays out the scene. Textures are handed out round-robin to the grid
// spheres, then the cube and the icosahedron; nil or empty leaves everything
// untextured.
func Build(cfg Config, textures []*gfx.Texture) *Showcase {
	s := &Showcase{Scene: scene.New()}
	next := 0
	texture := func(o *scene.Object) {
		if len(textures) == 0 {
			return
		}
		o.Texture = textures[next%len(textures)]
		next++
	}

	r := cfg.GridRadius
	for i := -r; i <= r; i++ {
		for j := -r; j <= r; j++ {
			o := scene.NewObject(mesh.Icosphere(i + r))
			g, b := gridShade(i, r), gridShade(j, r)
			o.SetColor((b+g)/2, g, b)
			o.SetPosition(cfg.GridSpacing*float32(i), cfg.GridSpacing*float32(j), -5)
			o.SetScale(3)
			texture(o)
			s.Grid = append(s.Grid, o)
			s.Scene.AddObject(o)
		}
	}

	if cfg.SphereLine {
		for i := 0; i <= lineLevels; i++ {
			o := scene.NewObject(mesh.Icosphere(i))
			o.SetPosition((float32(i)-3)*2.5, 2.5, -1)
			s.Line = append(s.Line, o)
			s.Scene.AddObject(o)
		}
	}

	s.Cube = scene.NewObject(mesh.Cube())
	s.Cube.SetPosition(3, -1, -2)
	texture(s.Cube)
	s.Scene.AddObject(s.Cube)

	s.Ico = scene.NewObject(mesh.Icosahedron())
	s.Ico.SetPosition(-3, -1, -2)
	texture(s.Ico)
	s.Scene.AddObject(s.Ico)

	s.Light = scene.NewLight(mgl32.Vec3{1, 1, 1}, mesh.Icosahedron())
	s.Light.Model.SetPosition(0, 5, 3)
	s.Light.Ambient = mgl32.Vec3{0.2, 0.2, 0.2}
	s.Light.Diffuse = mgl32.Vec3{0.7, 0.7, 0.7}
	s.Light.Specular = mgl32.Vec3{1, 1, 1}
	s.Scene.AddLight(s.Light)
	return s
}

// gridShade maps a grid index in [-r, r] to [0.1, 0.9].
func gridShade(i, r int) float32 {
	if r == 0 {
		return 0.5
	}
	return float32(i+r)/float32(2*r)*0.8 + 0.1
}

// Animate poses the scene at t seconds: grid, cube and icosahedron spin and
// the light swings along x.
func (s *Showcase) Animate(t float64) {
	deg := mgl32.RadToDeg(float32(t))
	rot := spin.Mul(deg)
	for _, o := range s.Grid {
		o.SetRotation(rot)
	}
	s.Cube.SetRotation(rot)
	s.Ico.SetRotation(rot)
	s.Light.SetPosition(math32.Cos(float32(t))*lightOrbit, 5, 3)
}

// LoadTextures uploads every image in cfg.TextureDir followed by
// cfg.ProceduralTextures checkerboards.
func LoadTextures(d gfx.Driver, cfg Config, log logging.Logger) ([]*gfx.Texture, error) {
	log = logging.OrNop(log)
	var out []*gfx.Texture
	if cfg.TextureDir != "" {
		files, err := assets.ImageFiles(cfg.TextureDir)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			t, err := assets.LoadTexture(d, f)
			if err != nil {
				ReleaseTextures(d, out)
				return nil, err
			}
			log.Debugf("texture %s: %dx%d, %d channels", f, t.Width, t.Height, t.Channels)
			out = append(out, t)
		}
	}
	for i, img := range assets.ProceduralTextures(cfg.ProceduralTextures, proceduralSize) {
		t, err := gfx.NewTexture(d, img)
		if err != nil {
			ReleaseTextures(d, out)
			return nil, fmt.Errorf("procedural texture %d: %w", i, err)
		}
		out = append(out, t)
	}
	log.Infof("loaded %d textures", len(out))
	return out, nil
}

func ReleaseTextures(d gfx.Driver, ts []*gfx.Texture) {
	for _, t := range ts {
		t.Release(d)
	}
}
