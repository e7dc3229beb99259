// Command flydemo opens a window on the showcase scene with a free-flying
// camera.
//
//	WASD/Space/Shift  move        mouse  look
//	1  wireframe      2  flat/smooth shading
//	Ctrl+P  dump profile (-tags profile)      Esc  quit
package main

import (
	"flag"
	"os"

	"github.com/gopxl/mainthread/v2"

	"github.com/hubastard/lumen/engine/core"
	"github.com/hubastard/lumen/engine/demo"
	glbackend "github.com/hubastard/lumen/engine/gfx/gl"
	"github.com/hubastard/lumen/engine/logging"
	"github.com/hubastard/lumen/engine/platform"
)

func main() {
	var (
		configPath = flag.String("config", "lumen.toml", "TOML config; defaults when missing")
		debug      = flag.Bool("debug", false, "debug logging")
		glDebug    = flag.Bool("gldebug", false, "request a GL debug context and log driver messages")
	)
	flag.Parse()

	log := logging.NewDefault("flydemo", *debug)
	cfg, err := demo.LoadFile(*configPath)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	cfg.Engine.LogDebug = cfg.Engine.LogDebug || *debug
	cfg.Engine.GLDebug = cfg.Engine.GLDebug || *glDebug
	log.SetDebug(cfg.Engine.LogDebug)

	// GLFW and GL must stay on the main OS thread.
	mainthread.Run(func() {
		err = mainthread.CallErr(func() error { return run(cfg, log) })
	})
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg demo.File, log logging.Logger) error {
	var win *platform.GLFWWindow
	defer func() {
		if win != nil {
			win.Destroy()
		}
	}()

	newWindow := func(c core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(c, log)
		if err != nil {
			return nil, err
		}
		win = w
		return w, nil
	}
	newRenderer := func(_ core.Window, c core.Config) (core.Renderer, error) {
		return glbackend.New(c, log)
	}
	return core.Run(demo.NewFlyApp(cfg), cfg.Engine, newWindow, newRenderer, log)
}
