// Package render draws a scene: every object with the active shading
// program, then every light with the light program.
package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/gfx/meshcache"
	"github.com/hubastard/lumen/engine/gfx/texslot"
	"github.com/hubastard/lumen/engine/logging"
	"github.com/hubastard/lumen/engine/profiler"
	"github.com/hubastard/lumen/engine/scene"
)

var ErrMissingProgram = errors.New("missing shading program")

type ShadingMode int

const (
	Smooth ShadingMode = iota
	Flat
)

func (m ShadingMode) String() string {
	if m == Flat {
		return "flat"
	}
	return "smooth"
}

// Programs used per frame. Flat may be nil, in which case flat mode draws
// with Smooth.
type Programs struct {
	Smooth gfx.Program
	Flat   gfx.Program
	Lights gfx.Program
}

type FrameStats struct {
	Objects         int
	Lights          int
	DrawCalls       int
	TextureRequests int
	Slots           texslot.Stats
}

// Renderer owns the texture slots and mesh buffers of one graphics context.
// It must only be used from that context's thread.
type Renderer struct {
	drv    gfx.Driver
	progs  Programs
	mode   ShadingMode
	slots  *texslot.Manager
	meshes *meshcache.Cache
	log    logging.Logger

	fallback   *scene.LightSource
	warnedFlat bool
}

// New creates a renderer that hands out up to slots texture units. 0 or a
// number above the driver limit uses the driver limit.
func New(d gfx.Driver, p Programs, slots int, log logging.Logger) (*Renderer, error) {
	if p.Smooth == nil || p.Lights == nil {
		return nil, ErrMissingProgram
	}
	if limit := d.MaxTextureUnits(); slots == 0 || slots > limit {
		slots = limit
	}
	sm, err := texslot.New(slots, d)
	if err != nil {
		return nil, fmt.Errorf("texture slots: %w", err)
	}
	return &Renderer{
		drv:      d,
		progs:    p,
		slots:    sm,
		meshes:   meshcache.New(d),
		log:      logging.OrNop(log),
		fallback: scene.DefaultLight(),
	}, nil
}

func (r *Renderer) ShadingMode() ShadingMode     { return r.mode }
func (r *Renderer) SetShadingMode(m ShadingMode) { r.mode = m }
func (r *Renderer) Slots() *texslot.Manager      { return r.slots }
func (r *Renderer) Meshes() *meshcache.Cache     { return r.meshes }

func (r *Renderer) ToggleShading() ShadingMode {
	if r.mode == Flat {
		r.mode = Smooth
	} else {
		r.mode = Flat
	}
	return r.mode
}

// SetPrograms swaps in new programs, e.g. after a shader reload. Nil fields
// keep the current program.
func (r *Renderer) SetPrograms(p Programs) {
	if p.Smooth != nil {
		r.progs.Smooth = p.Smooth
	}
	if p.Flat != nil {
		r.progs.Flat = p.Flat
		r.warnedFlat = false
	}
	if p.Lights != nil {
		r.progs.Lights = p.Lights
	}
}

func (r *Renderer) Programs() Programs { return r.progs }

func (r *Renderer) objectProgram() gfx.Program {
	if r.mode == Flat {
		if r.progs.Flat != nil {
			return r.progs.Flat
		}
		if !r.warnedFlat {
			r.log.Warnf("render: no flat program, drawing flat mode with smooth shading")
			r.warnedFlat = true
		}
	}
	return r.progs.Smooth
}

// RenderScene draws one frame. Objects go in scene order, lit by the first
// placed light of the scene, then each light is drawn with the light program.
func (r *Renderer) RenderScene(s *scene.Scene, cam *scene.Camera, aspect float32) FrameStats {
	var st FrameStats
	vp := cam.ViewProjection(aspect)

	light := r.lightFor(s)

	endObjects := profiler.Start("render.objects")
	prog := r.objectProgram()
	prog.Use()
	for _, o := range s.Objects() {
		if o.Mesh == nil {
			continue
		}
		if r.drawObject(prog, o, vp, cam.Position, light) {
			st.TextureRequests++
		}
		st.Objects++
		st.DrawCalls++
	}
	endObjects()

	endLights := profiler.Start("render.lights")
	r.progs.Lights.Use()
	for _, l := range s.Lights() {
		if l == nil || l.Model == nil || l.Model.Mesh == nil {
			continue
		}
		r.progs.Lights.SetVec3(gfx.UniformObjColor, l.Model.Color)
		r.progs.Lights.SetMat4(gfx.UniformMVP, vp.Mul4(l.Model.ModelMatrix()))
		r.draw(l.Model)
		st.Lights++
		st.DrawCalls++
	}
	endLights()

	if err := r.drv.Err(); err != nil {
		r.log.Debugf("render: driver reported %v", err)
	}
	st.Slots = r.slots.Stats()
	return st
}

// lightFor picks the first light that has a place in the world.
func (r *Renderer) lightFor(s *scene.Scene) *scene.LightSource {
	for _, l := range s.Lights() {
		if l != nil && l.Model != nil {
			return l
		}
	}
	return r.fallback
}

// drawObject reports whether o requested a texture slot.
func (r *Renderer) drawObject(prog gfx.Program, o *scene.Object, vp mgl32.Mat4, eye mgl32.Vec3, light *scene.LightSource) bool {
	textured := o.Texture != nil && o.Texture.Handle != 0
	if textured {
		slot := r.slots.Bind(o.Texture)
		prog.SetInt(gfx.UniformTexture, int32(slot))
		prog.SetInt(gfx.UniformHasTexture, 1)
	} else {
		prog.SetInt(gfx.UniformHasTexture, 0)
	}

	model, inv := o.ModelMatrixAndInverse()
	prog.SetVec3(gfx.UniformObjColor, o.Color)
	prog.SetVec3(gfx.UniformLightColor, light.Color)
	prog.SetVec3(gfx.UniformLightPosObj, mgl32.TransformCoordinate(light.Position(), inv))
	prog.SetVec3(gfx.UniformCameraPosObj, mgl32.TransformCoordinate(eye, inv))

	prog.SetVec3(gfx.UniformMaterialAmbient, o.Material.Ambient)
	prog.SetVec3(gfx.UniformMaterialDiffuse, o.Material.Diffuse)
	prog.SetVec3(gfx.UniformMaterialSpecular, o.Material.Specular)
	prog.SetFloat(gfx.UniformMaterialShininess, o.Material.Shininess)

	prog.SetVec3(gfx.UniformLightAmbient, light.Ambient)
	prog.SetVec3(gfx.UniformLightDiffuse, light.Diffuse)
	prog.SetVec3(gfx.UniformLightSpecular, light.Specular)

	prog.SetMat4(gfx.UniformMVP, vp.Mul4(model))
	r.draw(o)
	return textured
}

func (r *Renderer) draw(o *scene.Object) {
	e := r.meshes.GetOrCreate(o.Mesh)
	r.drv.DrawIndexed(e.Handle, e.IndexCount)
}
