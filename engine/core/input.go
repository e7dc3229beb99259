package core

// Input tracks held keys, presses since the last check and the cursor.
type Input struct {
	keys    map[Key]bool
	pressed map[Key]bool

	mouseX, mouseY float64
	lastX, lastY   float64
	mouseSeen      bool
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}, pressed: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		if e.Down && !in.keys[e.Key] {
			in.pressed[e.Key] = true
		}
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
		if !in.mouseSeen {
			in.lastX, in.lastY = e.X, e.Y
			in.mouseSeen = true
		}
	}
}

func (in *Input) IsKeyDown(k Key) bool      { return in.keys[k] }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }

// KeyPressed reports a press of k since the previous call, once per press.
func (in *Input) KeyPressed(k Key) bool {
	p := in.pressed[k]
	delete(in.pressed, k)
	return p
}

// MouseDelta returns the cursor movement since the previous call. The first
// position seen only sets the origin.
func (in *Input) MouseDelta() (dx, dy float64) {
	if !in.mouseSeen {
		return 0, 0
	}
	dx, dy = in.mouseX-in.lastX, in.mouseY-in.lastY
	in.lastX, in.lastY = in.mouseX, in.mouseY
	return dx, dy
}
