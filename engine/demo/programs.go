package demo

import (
	"github.com/hubastard/lumen/engine/assets"
	"github.com/hubastard/lumen/engine/gfx"
	"github.com/hubastard/lumen/engine/logging"
	"github.com/hubastard/lumen/engine/render"
)

// ProgramDeleter is implemented by drivers that free programs explicitly.
type ProgramDeleter interface {
	DeleteProgram(p gfx.Program)
}

// CompilePrograms builds the renderer programs from s. Smooth and light
// programs are required; a flat program that fails to build is logged and
// left nil so flat mode falls back to smooth shading.
func CompilePrograms(d gfx.Driver, s assets.ShaderSet, log logging.Logger) (render.Programs, error) {
	log = logging.OrNop(log)
	src, err := s.Programs()
	if err != nil {
		return render.Programs{}, err
	}

	var p render.Programs
	if p.Smooth, err = d.CompileProgram(src.Smooth); err != nil {
		return render.Programs{}, err
	}
	if p.Lights, err = d.CompileProgram(src.Lights); err != nil {
		DeletePrograms(d, p)
		return render.Programs{}, err
	}
	flat, err := d.CompileProgram(src.Flat)
	if err != nil {
		log.Warnf("flat shading unavailable: %v", err)
	} else {
		p.Flat = flat
	}
	return p, nil
}

// DeletePrograms frees every non-nil program if d supports it.
func DeletePrograms(d gfx.Driver, p render.Programs) {
	del, ok := d.(ProgramDeleter)
	if !ok {
		return
	}
	for _, prog := range []gfx.Program{p.Smooth, p.Flat, p.Lights} {
		if prog != nil {
			del.DeleteProgram(prog)
		}
	}
}

// ReloadPrograms recompiles s and swaps the result into r, freeing the
// programs it replaced. On error r keeps its current programs.
func ReloadPrograms(r *render.Renderer, d gfx.Driver, s assets.ShaderSet, log logging.Logger) error {
	next, err := CompilePrograms(d, s, log)
	if err != nil {
		return err
	}
	prev := r.Programs()
	r.SetPrograms(next)
	cur := r.Programs()

	var stale render.Programs
	if prev.Smooth != cur.Smooth {
		stale.Smooth = prev.Smooth
	}
	if prev.Flat != cur.Flat {
		stale.Flat = prev.Flat
	}
	if prev.Lights != cur.Lights {
		stale.Lights = prev.Lights
	}
	DeletePrograms(d, stale)
	return nil
}
