package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	maxVertical   = math32.Pi / 3
	maxHorizontal = 2 * math32.Pi
)

// Camera is a perspective camera steered by yaw/pitch angles in radians.
// Pitch stays inside (-π/3, π/3); yaw resets to 0 once it would leave
// (-2π, 2π).
type Camera struct {
	Position mgl32.Vec3
	Up       mgl32.Vec3
	FOV      float32 // vertical, degrees
	Near     float32
	Far      float32

	horizontal, vertical float32
	front                mgl32.Vec3
}

func NewCamera() *Camera {
	return &Camera{
		Position: mgl32.Vec3{0, 0, 10},
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      45,
		Near:     0.1,
		Far:      300,
		front:    mgl32.Vec3{0, 0, -1},
	}
}

// UpdateAngle turns the camera by dx radians of yaw and -dy radians of pitch.
// A pitch change that would cross the limit is ignored.
func (c *Camera) UpdateAngle(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	if v := c.vertical - dy; -maxVertical < v && v < maxVertical {
		c.vertical = v
	}
	if h := c.horizontal + dx; -maxHorizontal < h && h < maxHorizontal {
		c.horizontal = h
	} else {
		c.horizontal = 0
	}

	sh, ch := math32.Sincos(c.horizontal)
	sv, cv := math32.Sincos(c.vertical)
	c.front = mgl32.Vec3{sh * cv, sv, -ch * cv}
}

func (c *Camera) Front() mgl32.Vec3        { return c.front }
func (c *Camera) HorizontalAngle() float32 { return c.horizontal }
func (c *Camera) VerticalAngle() float32   { return c.vertical }
func (c *Camera) SetPosition(p mgl32.Vec3) { c.Position = p }
func (c *Camera) Translate(d mgl32.Vec3)   { c.Position = c.Position.Add(d) }

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.Up)
}

func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection is Projection(aspect) · ViewMatrix().
func (c *Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.ViewMatrix())
}
