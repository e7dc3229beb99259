package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	w, h     int
	swaps    int
	maxSwaps int
	closed   bool
	captured bool
	cb       func(Event)
	queue    []Event
	title    string
}

func (f *fakeWindow) PollEvents() {
	q := f.queue
	f.queue = nil
	for _, ev := range q {
		f.cb(ev)
	}
}
func (f *fakeWindow) SwapBuffers()                    { f.swaps++ }
func (f *fakeWindow) ShouldClose() bool               { return f.closed || f.swaps >= f.maxSwaps }
func (f *fakeWindow) RequestClose()                   { f.closed = true }
func (f *fakeWindow) FramebufferSize() (int, int)     { return f.w, f.h }
func (f *fakeWindow) SetTitle(t string)               { f.title = t }
func (f *fakeWindow) SetEventCallback(cb func(Event)) { f.cb = cb }
func (f *fakeWindow) CursorPos() (float64, float64)   { return 0, 0 }
func (f *fakeWindow) SetCursorCaptured(c bool)        { f.captured = c }

type fakeRenderer struct {
	resizes  [][2]int
	clears   int
	color    [4]float32
	shutdown bool
}

func (r *fakeRenderer) Resize(w, h int) { r.resizes = append(r.resizes, [2]int{w, h}) }
func (r *fakeRenderer) Clear(cr, g, b, a float32) {
	r.clears++
	r.color = [4]float32{cr, g, b, a}
}
func (r *fakeRenderer) SetWireframe(bool) {}
func (r *fakeRenderer) Shutdown()         { r.shutdown = true }

type recordingApp struct {
	startErr error
	started  bool
	renders  int
	events   []Event
	shutdown bool
	layer    Layer
}

func (a *recordingApp) OnStart(e *Engine) error {
	a.started = true
	if a.layer != nil {
		e.PushLayer(a.layer)
	}
	return a.startErr
}
func (a *recordingApp) OnUpdate(*Engine, float64)   {}
func (a *recordingApp) OnRender(*Engine, float64)   { a.renders++ }
func (a *recordingApp) OnEvent(_ *Engine, ev Event) { a.events = append(a.events, ev) }
func (a *recordingApp) OnShutdown(*Engine)          { a.shutdown = true }

type swallowLayer struct {
	attached, detached bool
	renders            int
	swallow            Key
}

func (l *swallowLayer) OnAttach(*Engine)          { l.attached = true }
func (l *swallowLayer) OnDetach(*Engine)          { l.detached = true }
func (l *swallowLayer) OnUpdate(*Engine, float64) {}
func (l *swallowLayer) OnRender(*Engine, float64) { l.renders++ }
func (l *swallowLayer) OnEvent(_ *Engine, ev Event) bool {
	k, ok := ev.(EventKey)
	return ok && k.Key == l.swallow
}

func runWith(t *testing.T, app App, win *fakeWindow, rend *fakeRenderer) error {
	t.Helper()
	return Run(app, DefaultConfig(),
		func(Config) (Window, error) { return win, nil },
		func(Window, Config) (Renderer, error) { return rend, nil },
		nil)
}

func TestRunFrames(t *testing.T) {
	win := &fakeWindow{w: 800, h: 600, maxSwaps: 3}
	rend := &fakeRenderer{}
	layer := &swallowLayer{swallow: KeyP}
	app := &recordingApp{layer: layer}
	win.queue = []Event{
		EventKey{Key: KeyW, Down: true},
		EventKey{Key: KeyP, Down: true},
		EventResize{W: 10, H: 10},
	}

	require.NoError(t, runWith(t, app, win, rend))

	assert.True(t, app.started)
	assert.True(t, app.shutdown)
	assert.Equal(t, 3, app.renders)
	assert.Equal(t, 3, layer.renders)
	assert.Equal(t, 3, rend.clears)
	assert.Equal(t, [4]float32(DefaultConfig().ClearColor), rend.color)
	assert.True(t, rend.shutdown)
	assert.True(t, layer.attached)
	assert.True(t, layer.detached)
	// initial size plus the resize event
	assert.Equal(t, [][2]int{{800, 600}, {800, 600}}, rend.resizes)
	// KeyP was swallowed by the layer
	assert.Equal(t, []Event{EventKey{Key: KeyW, Down: true}, EventResize{W: 10, H: 10}}, app.events)
}

func TestRunStartError(t *testing.T) {
	boom := errors.New("shader compile failed")
	rend := &fakeRenderer{}
	err := runWith(t, &recordingApp{startErr: boom}, &fakeWindow{w: 1, h: 1, maxSwaps: 1}, rend)
	assert.ErrorIs(t, err, boom)
	assert.True(t, rend.shutdown)
}

func TestRunWindowError(t *testing.T) {
	boom := errors.New("no display")
	err := Run(&recordingApp{}, DefaultConfig(),
		func(Config) (Window, error) { return nil, boom },
		func(Window, Config) (Renderer, error) { t.Fatal("renderer created"); return nil, nil },
		nil)
	assert.ErrorIs(t, err, boom)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	err := Run(&recordingApp{}, cfg, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEngineClose(t *testing.T) {
	win := &fakeWindow{w: 4, h: 2, maxSwaps: 100}
	e := &Engine{Window: win}
	assert.Equal(t, float32(2), e.AspectRatio())
	e.Close()
	assert.True(t, win.ShouldClose())
}

func TestInputEdges(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: Key2, Down: true})
	assert.True(t, in.IsKeyDown(Key2))
	assert.True(t, in.KeyPressed(Key2))
	assert.False(t, in.KeyPressed(Key2), "one report per press")

	// key repeat while held is not a new press
	in.Handle(EventKey{Key: Key2, Down: true})
	assert.False(t, in.KeyPressed(Key2))

	in.Handle(EventKey{Key: Key2, Down: false})
	assert.False(t, in.IsKeyDown(Key2))
	in.Handle(EventKey{Key: Key2, Down: true})
	assert.True(t, in.KeyPressed(Key2))
}

func TestInputMouseDelta(t *testing.T) {
	in := NewInput()
	dx, dy := in.MouseDelta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)

	in.Handle(EventMouseMove{X: 100, Y: 50})
	dx, dy = in.MouseDelta()
	assert.Zero(t, dx, "first position is the origin")
	assert.Zero(t, dy)

	in.Handle(EventMouseMove{X: 110, Y: 45})
	in.Handle(EventMouseMove{X: 120, Y: 40})
	dx, dy = in.MouseDelta()
	assert.Equal(t, 20.0, dx)
	assert.Equal(t, -10.0, dy)
	x, y := in.Mouse()
	assert.Equal(t, 120.0, x)
	assert.Equal(t, 40.0, y)
}

func TestLayerStack(t *testing.T) {
	var ls LayerStack
	a, b := &swallowLayer{swallow: KeyA}, &swallowLayer{swallow: KeyD}
	ls.Push(a)
	ls.Push(b)
	assert.Equal(t, 2, ls.Len())
	assert.True(t, ls.Dispatch(nil, EventKey{Key: KeyA}))
	assert.False(t, ls.Dispatch(nil, EventKey{Key: KeyS}))

	top, ok := ls.Pop()
	require.True(t, ok)
	assert.Same(t, b, top)
	ls.Pop()
	_, ok = ls.Pop()
	assert.False(t, ok)
}

func TestConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.ClearColor[1] = 2
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.TextureSlots = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

}

func TestFPSCounter(t *testing.T) {
	c := NewFPSCounter(time.Second)
	t0 := time.Unix(1000, 0)
	for i := 0; i < 59; i++ {
		_, ok := c.Frame(t0.Add(time.Duration(i) * time.Second / 60))
		require.False(t, ok)
	}
	fps, ok := c.Frame(t0.Add(time.Second))
	require.True(t, ok)
	assert.InDelta(t, 60, fps, 0.001)
}

func TestTimer(t *testing.T) {
	var tm Timer
	tm.Start()
	time.Sleep(time.Millisecond)
	d := tm.Stop()
	assert.GreaterOrEqual(t, d, time.Millisecond)
	assert.Equal(t, d, tm.Elapsed())
}
