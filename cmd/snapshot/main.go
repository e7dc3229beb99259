// Command snapshot renders the showcase scene with the software driver and
// writes the last frame as a PNG. It needs no window or GPU.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/hubastard/lumen/engine/assets"
	"github.com/hubastard/lumen/engine/core"
	"github.com/hubastard/lumen/engine/demo"
	"github.com/hubastard/lumen/engine/gfx/soft"
	"github.com/hubastard/lumen/engine/logging"
	"github.com/hubastard/lumen/engine/render"
	"github.com/hubastard/lumen/engine/scene"
)

type options struct {
	config    string
	out       string
	width     int // 0: engine config
	height    int
	frames    int
	start     float64 // animation time of the first frame, seconds
	flat      bool
	wireframe bool
}

func main() {
	var o options
	flag.StringVar(&o.config, "config", "lumen.toml", "TOML config; defaults when missing")
	flag.StringVar(&o.out, "out", "snapshot.png", "output PNG")
	flag.IntVar(&o.width, "width", 0, "image width (default: engine width)")
	flag.IntVar(&o.height, "height", 0, "image height (default: engine height)")
	flag.IntVar(&o.frames, "frames", 1, "frames to render, 1/60 s apart")
	flag.Float64Var(&o.start, "t", 0, "animation time of the first frame in seconds")
	flag.BoolVar(&o.flat, "flat", false, "flat shading")
	flag.BoolVar(&o.wireframe, "wireframe", false, "draw edges only")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	log := logging.NewDefault("snapshot", *debug)
	if err := run(o, log); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(o options, log logging.Logger) error {
	cfg, err := demo.LoadFile(o.config)
	if err != nil {
		return err
	}
	if o.width > 0 {
		cfg.Engine.Width = o.width
	}
	if o.height > 0 {
		cfg.Engine.Height = o.height
	}
	if err := cfg.Engine.Validate(); err != nil {
		return err
	}
	w, h := cfg.Engine.Width, cfg.Engine.Height

	d := soft.New(w, h, soft.DefaultTextureUnits)
	defer d.Shutdown()
	d.SetWireframe(o.wireframe)

	progs, err := demo.CompilePrograms(d, assets.ShaderSet{Dir: cfg.Demo.ShaderDir}, log)
	if err != nil {
		return err
	}
	r, err := render.New(d, progs, cfg.Engine.TextureSlots, log)
	if err != nil {
		return err
	}
	if o.flat {
		r.SetShadingMode(render.Flat)
	}

	textures, err := demo.LoadTextures(d, cfg.Demo, log)
	if err != nil {
		return err
	}
	defer demo.ReleaseTextures(d, textures)

	show := demo.Build(cfg.Demo, textures)
	cam := scene.NewCamera()
	cam.FOV = cfg.Demo.FOV

	var (
		st render.FrameStats
		tm core.Timer
	)
	bg := cfg.Engine.ClearColor
	tm.Start()
	for i := 0; i < max(o.frames, 1); i++ {
		show.Animate(o.start + float64(i)/60)
		d.Clear(bg[0], bg[1], bg[2], bg[3])
		st = r.RenderScene(show.Scene, cam, float32(w)/float32(h))
	}
	log.Infof("rendered %d frames in %s", max(o.frames, 1), tm.Stop().Round(time.Microsecond))
	if err := d.Err(); err != nil {
		log.Warnf("driver: %v", err)
	}

	if err := writePNG(o.out, d); err != nil {
		return err
	}
	ds := d.Stats()
	log.Infof("wrote %s (%dx%d, %s shading): %d draw calls, %d triangles in %d frames",
		o.out, w, h, r.ShadingMode(), st.DrawCalls, ds.Triangles, max(o.frames, 1))
	log.Infof("texture slots (%d): %d hits, %d misses, %d evictions, %d stale drops, %d driver binds",
		r.Slots().Len(), st.Slots.Hits, st.Slots.Misses, st.Slots.Evictions, st.Slots.StaleDrops, st.Slots.DriverBinds)
	return nil
}

func writePNG(path string, d *soft.Driver) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, d.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
