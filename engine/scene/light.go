package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/mesh"
)

// LightSource is a point light. Model places it in the world and gives it a
// visible mesh for the light pass.
type LightSource struct {
	Color    mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
	Model    *Object
}

func NewLight(color mgl32.Vec3, m *mesh.Mesh) *LightSource {
	model := NewObject(m)
	model.Color = color
	return &LightSource{
		Color:    color,
		Ambient:  mgl32.Vec3{1, 1, 1},
		Diffuse:  mgl32.Vec3{1, 1, 1},
		Specular: mgl32.Vec3{1, 1, 1},
		Model:    model,
	}
}

// DefaultLight is the white light used when a scene has none.
func DefaultLight() *LightSource {
	l := NewLight(mgl32.Vec3{1, 1, 1}, nil)
	l.Model.SetPosition(0, 5, 3)
	l.Ambient = mgl32.Vec3{0.2, 0.2, 0.2}
	l.Diffuse = mgl32.Vec3{0.7, 0.7, 0.7}
	return l
}

// Position is the world position of the light. A light without a Model sits
// at the origin.
func (l *LightSource) Position() mgl32.Vec3 {
	if l.Model == nil {
		return mgl32.Vec3{}
	}
	return mgl32.TransformCoordinate(mgl32.Vec3{}, l.Model.ModelMatrix())
}

func (l *LightSource) SetPosition(x, y, z float32) { l.Model.SetPosition(x, y, z) }
