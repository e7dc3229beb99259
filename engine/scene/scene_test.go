package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/lumen/engine/core"
	"github.com/hubastard/lumen/engine/mesh"
)

func assertVec3Near(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestObjectDefaults(t *testing.T) {
	o := NewObject(mesh.Cube())
	assert.Same(t, mesh.Cube(), o.Mesh)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, o.Scale)
	assert.Equal(t, Silver, o.Material)
	assert.Nil(t, o.Texture)
	assert.NotEqual(t, o.ID, NewObject(nil).ID)
	assert.True(t, mgl32.Ident4().ApproxEqual(o.ModelMatrix()))
}

func TestRotationWraps(t *testing.T) {
	o := NewObject(nil)
	o.Rotate(350, -350, 0)
	o.Rotate(20, -20, 720)
	assert.InDelta(t, 10, o.Rotation[0], 1e-4)
	assert.InDelta(t, -10, o.Rotation[1], 1e-4)
	assert.InDelta(t, 0, o.Rotation[2], 1e-4)

	o.SetRotation(mgl32.Vec3{725, 0, 0})
	assert.InDelta(t, 5, o.Rotation[0], 1e-4)
}

func TestModelMatrixOrder(t *testing.T) {
	o := NewObject(nil)
	o.SetPosition(1, 2, 3)
	o.SetScale(2)
	o.SetRotation(mgl32.Vec3{0, 0, 90})

	// scale, then rotate 90° about z, then translate
	p := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, o.ModelMatrix())
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{1, 4, 3}, 1e-5), "got %v", p)

	m, inv := o.ModelMatrixAndInverse()
	id := m.Mul4(inv)
	want := mgl32.Ident4()
	for i := range want {
		assert.InDelta(t, want[i], id[i], 1e-5, "element %d", i)
	}
}

func TestHierarchy(t *testing.T) {
	a, b, c := NewObject(nil), NewObject(nil), NewObject(nil)
	a.SetPosition(10, 0, 0)
	a.AddChild(c)
	c.SetPosition(1, 0, 0)

	p := mgl32.TransformCoordinate(mgl32.Vec3{}, c.ModelMatrix())
	assert.True(t, p.ApproxEqual(mgl32.Vec3{11, 0, 0}))

	// reparenting removes c from a
	b.AddChild(c)
	assert.Same(t, b, c.Parent())
	assert.Empty(t, a.Children())
	assert.Len(t, b.Children(), 1)

	assert.False(t, a.RemoveChild(c))
	assert.True(t, b.RemoveChild(c))
	assert.Nil(t, c.Parent())

	b.AddChild(c)
	c.Detach()
	assert.Empty(t, b.Children())

	a.AddChild(a)
	assert.Empty(t, a.Children())
}

func TestSceneOrder(t *testing.T) {
	s := New()
	objs := []*Object{NewObject(nil), NewObject(nil), NewObject(nil)}
	for _, o := range objs {
		s.AddObject(o)
	}
	assert.Equal(t, objs, s.Objects())
	assert.True(t, s.RemoveObject(objs[1]))
	assert.False(t, s.RemoveObject(objs[1]))
	assert.Equal(t, []*Object{objs[0], objs[2]}, s.Objects())
	assert.Zero(t, s.Textured())

	l := DefaultLight()
	s.AddLight(l)
	require.Len(t, s.Lights(), 1)
	assert.True(t, l.Position().ApproxEqual(mgl32.Vec3{0, 5, 3}))

	bare := &LightSource{Color: mgl32.Vec3{1, 1, 1}}
	assert.NotPanics(t, func() { assert.Equal(t, mgl32.Vec3{}, bare.Position()) })
}

func TestMaterialByName(t *testing.T) {
	m, ok := MaterialByName("red_plastic")
	require.True(t, ok)
	assert.Equal(t, RedPlastic, m)
	_, ok = MaterialByName("unobtainium")
	assert.False(t, ok)
	assert.Len(t, materials, 24)
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, mgl32.Vec3{0, 0, 10}, c.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.Front())
	assert.Equal(t, float32(45), c.FOV)

	// origin sits in front of the camera
	p := mgl32.TransformCoordinate(mgl32.Vec3{}, c.ViewMatrix())
	assert.True(t, p.ApproxEqual(mgl32.Vec3{0, 0, -10}))
}

func TestCameraAngles(t *testing.T) {
	c := NewCamera()
	c.UpdateAngle(math32.Pi/2, 0)
	assertVec3Near(t, mgl32.Vec3{1, 0, 0}, c.Front())

	// pitch beyond the limit is ignored
	c.UpdateAngle(0, -math32.Pi/4)
	assert.InDelta(t, math32.Pi/4, c.VerticalAngle(), 1e-5)
	c.UpdateAngle(0, -math32.Pi/4)
	assert.InDelta(t, math32.Pi/4, c.VerticalAngle(), 1e-5)

	// yaw leaving (-2π, 2π) snaps back to 0
	c.UpdateAngle(2*math32.Pi, 0)
	assert.Zero(t, c.HorizontalAngle())
}

func TestFlyController(t *testing.T) {
	cam := NewCamera()
	fc := NewFlyController(cam)
	e := &core.Engine{Input: core.NewInput()}

	e.Input.Handle(core.EventKey{Key: core.KeyW, Down: true})
	fc.Update(e, 0.5)
	assert.True(t, cam.Position.ApproxEqual(mgl32.Vec3{0, 0, 7}))

	e.Input.Handle(core.EventKey{Key: core.KeyW, Down: false})
	e.Input.Handle(core.EventKey{Key: core.KeyD, Down: true})
	e.Input.Handle(core.EventKey{Key: core.KeySpace, Down: true})
	fc.Update(e, 0.5)
	assert.True(t, cam.Position.ApproxEqual(mgl32.Vec3{3, 3, 7}), "got %v", cam.Position)

	e.Input.Handle(core.EventMouseMove{X: 0, Y: 0})
	e.Input.Handle(core.EventMouseMove{X: 1000, Y: 0})
	fc.Update(e, 0)
	assert.InDelta(t, 0.5, cam.HorizontalAngle(), 1e-6)
}
