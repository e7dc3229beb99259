package assets

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/hubastard/lumen/engine/logging"
)

var shaderExts = map[string]bool{".vert": true, ".frag": true, ".geom": true, ".glsl": true}

// ShaderWatcher reports edits to shader files under a directory tree. Bursts
// of events collapse into one pending notification; the consumer polls
// Changed from the render thread and reloads.
type ShaderWatcher struct {
	w       *fsnotify.Watcher
	changed chan string
	done    chan struct{}
	log     logging.Logger
}

func NewShaderWatcher(dir string, log logging.Logger) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader watcher: %w", err)
	}
	// fsnotify is not recursive; watch the root and the program folders.
	for _, d := range []string{dir, filepath.Join(dir, "phong"), filepath.Join(dir, "flat")} {
		if err := w.Add(d); err != nil && d == dir {
			w.Close()
			return nil, fmt.Errorf("watch %q: %w", d, err)
		}
	}
	sw := &ShaderWatcher{
		w:       w,
		changed: make(chan string, 1),
		done:    make(chan struct{}),
		log:     logging.OrNop(log),
	}
	go sw.loop()
	return sw, nil
}

func (sw *ShaderWatcher) loop() {
	defer close(sw.done)
	for {
		select {
		case ev, ok := <-sw.w.Events:
			if !ok {
				return
			}
			if !shaderExts[filepath.Ext(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			sw.log.Debugf("shader changed: %s", ev.Name)
			select {
			case sw.changed <- ev.Name:
			default:
			}
		case err, ok := <-sw.w.Errors:
			if !ok {
				return
			}
			sw.log.Warnf("shader watcher: %v", err)
		}
	}
}

// Changed returns a changed file name if any arrived since the last call.
func (sw *ShaderWatcher) Changed() (string, bool) {
	select {
	case name := <-sw.changed:
		return name, true
	default:
		return "", false
	}
}

func (sw *ShaderWatcher) Close() error {
	err := sw.w.Close()
	<-sw.done
	return err
}
