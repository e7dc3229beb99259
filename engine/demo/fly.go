package demo

import (
	"errors"
	"fmt"
	"time"

	"github.com/hubastard/lumen/engine/assets"
	"github.com/hubastard/lumen/engine/core"
	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/profiler"
	"github.com/hubastard/lumen/engine/render"
	"github.com/hubastard/lumen/engine/scene"
)

// FlyApp is the interactive showcase with a fly camera. Keys:
//
//	1       wireframe
//	2       flat/smooth shading
//	Esc     quit
//	Ctrl+P  dump a profile
//
// The engine renderer must also be a gfx.Driver.
type FlyApp struct {
	cfg   File
	layer *SceneLayer
}

func NewFlyApp(cfg File) *FlyApp { return &FlyApp{cfg: cfg} }

func (a *FlyApp) OnStart(e *core.Engine) error {
	drv, ok := e.Renderer.(gfx.Driver)
	if !ok {
		return fmt.Errorf("renderer %T does not implement gfx.Driver", e.Renderer)
	}
	profiler.Init(1 << 16)

	shaders := assets.ShaderSet{Dir: a.cfg.Demo.ShaderDir}
	progs, err := CompilePrograms(drv, shaders, e.Log)
	if err != nil {
		return err
	}
	r, err := render.New(drv, progs, a.cfg.Engine.TextureSlots, e.Log)
	if err != nil {
		DeletePrograms(drv, progs)
		return err
	}
	textures, err := LoadTextures(drv, a.cfg.Demo, e.Log)
	if err != nil {
		return err
	}

	var watcher *assets.ShaderWatcher
	if a.cfg.Demo.WatchShaders {
		if watcher, err = assets.NewShaderWatcher(a.cfg.Demo.ShaderDir, e.Log); err != nil {
			ReleaseTextures(drv, textures)
			return err
		}
	}

	var tm core.Timer
	tm.Start()
	show := Build(a.cfg.Demo, textures)
	e.Log.Infof("scene built in %s", tm.Stop().Round(time.Microsecond))

	cam := scene.NewCamera()
	cam.FOV = a.cfg.Demo.FOV
	ctrl := scene.NewFlyController(cam)
	ctrl.MoveSpeed = a.cfg.Demo.MoveSpeed
	ctrl.LookSpeed = a.cfg.Demo.LookSpeed

	a.layer = &SceneLayer{
		title:    a.cfg.Engine.Title,
		drv:      drv,
		renderer: r,
		shaders:  shaders,
		watcher:  watcher,
		show:     show,
		textures: textures,
		cam:      cam,
		ctrl:     ctrl,
		fps:      core.NewFPSCounter(time.Second),
	}
	e.PushLayer(a.layer)
	e.Window.SetCursorCaptured(true)

	e.Log.Infof("scene: %d objects, %d lights, %d textures, %d texture slots",
		len(a.layer.show.Scene.Objects()), len(a.layer.show.Scene.Lights()), len(textures), r.Slots().Len())
	return nil
}

func (a *FlyApp) OnUpdate(e *core.Engine, dt float64)    {}
func (a *FlyApp) OnRender(e *core.Engine, alpha float64) {}
func (a *FlyApp) OnEvent(e *core.Engine, ev core.Event)  {}

func (a *FlyApp) OnShutdown(e *core.Engine) {
	if a.layer != nil {
		st := a.layer.renderer.Slots().Stats()
		e.Log.Infof("texture slots: %d hits, %d misses, %d evictions, %d driver binds",
			st.Hits, st.Misses, st.Evictions, st.DriverBinds)
	}
}

// SceneLayer flies the camera through the showcase scene and handles the
// demo keys.
type SceneLayer struct {
	title    string
	drv      gfx.Driver
	renderer *render.Renderer
	shaders  assets.ShaderSet
	watcher  *assets.ShaderWatcher
	show     *Showcase
	textures []*gfx.Texture
	cam      *scene.Camera
	ctrl     *scene.FlyController
	fps      *core.FPSCounter

	wireframe bool
	frames    int
	last      render.FrameStats
}

func (l *SceneLayer) OnAttach(e *core.Engine) {
	e.Window.SetTitle(l.windowTitle())
}

func (l *SceneLayer) OnDetach(e *core.Engine) {
	if l.watcher != nil {
		if err := l.watcher.Close(); err != nil {
			e.Log.Warnf("shader watcher: %v", err)
		}
	}
	ReleaseTextures(l.drv, l.textures)
}

func (l *SceneLayer) OnUpdate(e *core.Engine, dt float64) {
	end := profiler.Start("layer.update")
	defer end()

	in := e.Input
	if in.KeyPressed(core.Key1) {
		l.wireframe = !l.wireframe
		e.Renderer.SetWireframe(l.wireframe)
	}
	if in.KeyPressed(core.Key2) {
		mode := l.renderer.ToggleShading()
		e.Window.SetTitle(l.windowTitle())
		e.Log.Debugf("shading: %s", mode)
	}

	l.ctrl.Update(e, float32(dt))

	if l.watcher != nil {
		if name, ok := l.watcher.Changed(); ok {
			if err := ReloadPrograms(l.renderer, l.drv, l.shaders, e.Log); err != nil {
				e.Log.Warnf("shader reload after %s: %v", name, err)
			} else {
				e.Log.Infof("shaders reloaded after %s changed", name)
			}
		}
	}

	l.show.Animate(e.Uptime().Seconds())
}

func (l *SceneLayer) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("layer.render")
	l.last = l.renderer.RenderScene(l.show.Scene, l.cam, e.AspectRatio())
	l.frames++
	end()

	if fps, ok := l.fps.Frame(time.Now()); ok {
		mx, my := e.Input.Mouse()
		e.Log.Infof("%.1f fps, uptime %s, %d draw calls, mouse (%.0f, %.0f)",
			fps, e.Uptime().Round(time.Second), l.last.DrawCalls, mx, my)
	}
}

func (l *SceneLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return false
	}
	switch {
	case k.Key == core.KeyEscape:
		e.Close()
		return true
	case k.Key == core.KeyP && k.Mods&core.ModCtrl != 0:
		path, err := profiler.DumpTemp()
		switch {
		case errors.Is(err, profiler.ErrDisabled):
			e.Log.Infof("profiling needs a build with -tags profile")
		case err != nil:
			e.Log.Warnf("profile dump: %v", err)
		default:
			e.Log.Infof("profile written to %s", path)
		}
		return true
	}
	return false
}

func (l *SceneLayer) windowTitle() string {
	return fmt.Sprintf("%s [%s]", l.title, l.renderer.ShadingMode())
}
