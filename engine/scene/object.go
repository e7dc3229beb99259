package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/mesh"
)

// Object is one drawable: a shared mesh placed in the world with its own
// transform, colour, material and optional texture. Transforms are relative
// to the parent, if any.
type Object struct {
	ID       uuid.UUID
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // degrees about x, y, z
	Scale    mgl32.Vec3
	Color    mgl32.Vec3
	Material Material
	Mesh     *mesh.Mesh
	Texture  *gfx.Texture

	parent   *Object
	children []*Object
}

func NewObject(m *mesh.Mesh) *Object {
	return &Object{
		ID:       uuid.New(),
		Scale:    mgl32.Vec3{1, 1, 1},
		Color:    mgl32.Vec3{0.99, 0.99, 0.99},
		Material: Silver,
		Mesh:     m,
	}
}

func (o *Object) SetPosition(x, y, z float32) { o.Position = mgl32.Vec3{x, y, z} }
func (o *Object) SetScale(s float32)          { o.Scale = mgl32.Vec3{s, s, s} }
func (o *Object) SetColor(r, g, b float32)    { o.Color = mgl32.Vec3{r, g, b} }

// SetRotation replaces the rotation, in degrees.
func (o *Object) SetRotation(r mgl32.Vec3) {
	o.Rotation = mgl32.Vec3{wrapDegrees(r[0]), wrapDegrees(r[1]), wrapDegrees(r[2])}
}

// Rotate accumulates degrees onto the current rotation.
func (o *Object) Rotate(x, y, z float32) {
	o.SetRotation(o.Rotation.Add(mgl32.Vec3{x, y, z}))
}

func wrapDegrees(d float32) float32 { return math32.Mod(d, 360) }

// ModelMatrix is translate · rotX · rotY · rotZ · scale, composed with the
// parent's model matrix.
func (o *Object) ModelMatrix() mgl32.Mat4 {
	m := mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2])
	if o.Rotation[0] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(o.Rotation[0])))
	}
	if o.Rotation[1] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(o.Rotation[1])))
	}
	if o.Rotation[2] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(o.Rotation[2])))
	}
	m = m.Mul4(mgl32.Scale3D(o.Scale[0], o.Scale[1], o.Scale[2]))
	if o.parent != nil {
		m = o.parent.ModelMatrix().Mul4(m)
	}
	return m
}

func (o *Object) ModelMatrixAndInverse() (model, inverse mgl32.Mat4) {
	model = o.ModelMatrix()
	return model, model.Inv()
}

// AddChild attaches c to o, detaching it from its previous parent first.
func (o *Object) AddChild(c *Object) {
	if c == nil || c == o || c.parent == o {
		return
	}
	c.Detach()
	c.parent = o
	o.children = append(o.children, c)
}

// RemoveChild detaches the child with c's ID. It reports whether one was found.
func (o *Object) RemoveChild(c *Object) bool {
	for i, ch := range o.children {
		if ch.ID == c.ID {
			o.children = append(o.children[:i], o.children[i+1:]...)
			ch.parent = nil
			return true
		}
	}
	return false
}

func (o *Object) Detach() {
	if o.parent != nil {
		o.parent.RemoveChild(o)
	}
}

func (o *Object) Parent() *Object     { return o.parent }
func (o *Object) Children() []*Object { return o.children }
func (o *Object) Equal(other *Object) bool {
	return other != nil && o.ID == other.ID
}
