//go:build profile

package profiler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const Enabled = true

type event struct {
	at    int64 // unix ns
	frame int
	open  bool
}

// recorder keeps the last cap events in write order.
type recorder struct {
	mu     sync.Mutex
	ready  bool
	events []event
	next   uint64
	names  []string
	ids    map[string]int
}

var rec = recorder{ids: map[string]int{}}

// Init enables recording into a ring of capacity events (scope opens and
// closes count separately). Calling it again drops what was recorded.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.events = make([]event, capacity)
	rec.next = 0
	rec.ready = true
}

// Start opens a scope and returns the func that closes it.
func Start(name string) func() {
	rec.mu.Lock()
	if !rec.ready {
		rec.mu.Unlock()
		return func() {}
	}
	id := rec.intern(name)
	began := time.Now().UnixNano()
	rec.push(event{at: began, frame: id, open: true})
	rec.mu.Unlock()

	return func() {
		end := max(time.Now().UnixNano(), began)
		rec.mu.Lock()
		rec.push(event{at: end, frame: id})
		rec.mu.Unlock()
	}
}

func (r *recorder) intern(name string) int {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := len(r.names)
	r.ids[name] = id
	r.names = append(r.names, name)
	return id
}

func (r *recorder) push(e event) {
	r.events[r.next%uint64(len(r.events))] = e
	r.next++
}

func (r *recorder) snapshot() ([]event, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, size := r.next, uint64(len(r.events))
	var start uint64
	if n > size {
		start = n - size
	}
	out := make([]event, 0, n-start)
	for i := start; i < n; i++ {
		out = append(out, r.events[i%size])
	}
	return out, append([]string(nil), r.names...)
}

// DumpTemp writes the profile to DumpName in the temp dir and returns the path.
func DumpTemp() (string, error) {
	path := filepath.Join(os.TempDir(), DumpName)
	return path, Dump(path)
}

// Dump writes the recorded scopes to path, replacing it atomically.
func Dump(path string) error {
	events, names := rec.snapshot()
	doc, err := speedscope(events, names)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("profiler: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	return os.Rename(tmp, path)
}

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Name     string      `json:"name,omitempty"`
	Exporter string      `json:"exporter,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // O or C
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

// speedscope converts events to an evented profile. Closes that do not
// match the innermost open scope are dropped (their open fell out of the
// ring); scopes still open at the end are closed at the last timestamp.
func speedscope(events []event, names []string) (*ssFile, error) {
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	base := events[0].at
	var (
		out   = make([]ssEvent, 0, len(events))
		stack []int
		last  int64
	)
	for _, e := range events {
		at := max((e.at-base)/1000, last)
		if e.open {
			stack = append(stack, e.frame)
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.frame})
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.frame})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}

	frames := make([]ssFrame, len(names))
	for i, n := range names {
		frames[i] = ssFrame{Name: n}
	}
	return &ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "frame loop",
			Unit:     "microseconds",
			EndValue: last,
			Events:   out,
		}},
		Name:     "lumen capture",
		Exporter: "lumen/profiler",
	}, nil
}
