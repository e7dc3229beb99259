// Package core runs the frame loop and defines what it needs from the
// platform: a window, a renderer and an event stream.
package core

import (
	"time"

	"github.com/hubastard/lumen/engine/logging"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine) error           // called once after window/renderer init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App and its layers.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	Layers   *LayerStack
	Log      logging.Logger
	start    time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Close asks the loop to stop after the current frame.
func (e *Engine) Close() { e.Window.RequestClose() }

// AspectRatio of the framebuffer, 1 if it has no area.
func (e *Engine) AspectRatio() float32 {
	w, h := e.Window.FramebufferSize()
	if w < 1 || h < 1 {
		return 1
	}
	return float32(w) / float32(h)
}

// Window abstraction. Events are delivered through the callback during
// PollEvents.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	CursorPos() (float64, float64)
	SetCursorCaptured(captured bool)
}

// Renderer holds the frame-level state of the graphics backend.
type Renderer interface {
	Resize(w, h int)
	Clear(r, g, b, a float32)
	SetWireframe(on bool)
	Shutdown()
}

type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyW
	KeyA
	KeyS
	KeyD
	KeyLeftShift
	Key1
	Key2
	KeyP
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)
