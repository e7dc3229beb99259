package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/lumen/engine/core"
)

// FlyController: WASD moves on the xz plane along the view direction,
// Space/LeftShift move up/down, the mouse turns the camera.
type FlyController struct {
	MoveSpeed float32 // units per second
	LookSpeed float32 // radians per pixel
	Camera    *Camera
}

func NewFlyController(cam *Camera) *FlyController {
	return &FlyController{
		MoveSpeed: 6,
		LookSpeed: 0.0005,
		Camera:    cam,
	}
}

func (fc *FlyController) Update(e *core.Engine, dt float32) {
	in := e.Input
	step := fc.MoveSpeed * dt

	f := fc.Camera.Front()
	fwd := mgl32.Vec2{f.X(), f.Z()}
	if fwd.Len() > 0 {
		fwd = fwd.Normalize()
	}
	move := func(dir mgl32.Vec2) {
		fc.Camera.Translate(mgl32.Vec3{dir.X() * step, 0, dir.Y() * step})
	}

	if in.IsKeyDown(core.KeyW) {
		move(fwd)
	}
	if in.IsKeyDown(core.KeyS) {
		move(fwd.Mul(-1))
	}
	if in.IsKeyDown(core.KeyA) {
		move(mgl32.Vec2{fwd.Y(), -fwd.X()})
	}
	if in.IsKeyDown(core.KeyD) {
		move(mgl32.Vec2{-fwd.Y(), fwd.X()})
	}
	if in.IsKeyDown(core.KeySpace) {
		fc.Camera.Translate(mgl32.Vec3{0, step, 0})
	}
	if in.IsKeyDown(core.KeyLeftShift) {
		fc.Camera.Translate(mgl32.Vec3{0, -step, 0})
	}

	dx, dy := in.MouseDelta()
	fc.Camera.UpdateAngle(float32(dx)*fc.LookSpeed, float32(dy)*fc.LookSpeed)
}
