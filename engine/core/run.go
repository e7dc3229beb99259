package core

import (
	"fmt"
	"time"

	"github.com/hubastard/lumen/engine/logging"
)

// PushLayer attaches l on top of the stack.
func (e *Engine) PushLayer(l Layer) {
	e.Layers.Push(l)
	l.OnAttach(e)
}

// Run wires the platform window and renderer and executes the main loop.
// It must be called on the thread that will own the graphics context.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error), log logging.Logger) error {
	log = logging.OrNop(log)
	if err := cfg.Validate(); err != nil {
		return err
	}

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{
		Window:   win,
		Renderer: rend,
		Input:    NewInput(),
		Layers:   &LayerStack{},
		Log:      log,
		start:    time.Now(),
	}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		if _, ok := ev.(EventResize); ok {
			fw, fh := win.FramebufferSize()
			if fw >= 1 && fh >= 1 {
				rend.Resize(fw, fh)
			}
		}
		if eng.Layers.Dispatch(eng, ev) {
			return
		}
		app.OnEvent(eng, ev)
	})

	if err := app.OnStart(eng); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		clear   = cfg.ClearColor
		maxStep = 10 // prevent spiral of death
		dt      = float64(tick) / float64(time.Second)
	)

	for !win.ShouldClose() {
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			app.OnUpdate(eng, dt)
			accum -= tick
			steps++
		}
		if steps == maxStep {
			accum = 0
		}
		alpha := float64(accum) / float64(tick)

		rend.Clear(clear[0], clear[1], clear[2], clear[3])
		app.OnRender(eng, alpha)
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })

		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	for l, ok := eng.Layers.Pop(); ok; l, ok = eng.Layers.Pop() {
		l.OnDetach(eng)
	}
	log.Infof("engine exit after %s", eng.Uptime().Round(time.Millisecond))
	return nil
}
