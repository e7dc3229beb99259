package core

import "time"

// Timer measures one interval at a time.
type Timer struct {
	start, stop time.Time
	running     bool
}

func (t *Timer) Start() {
	t.start = time.Now()
	t.running = true
}

// Stop ends the interval and returns its length.
func (t *Timer) Stop() time.Duration {
	t.stop = time.Now()
	t.running = false
	return t.stop.Sub(t.start)
}

// Elapsed is the length of the running interval, or of the last one.
func (t *Timer) Elapsed() time.Duration {
	if t.running {
		return time.Since(t.start)
	}
	return t.stop.Sub(t.start)
}

// FPSCounter averages frame rate over a reporting interval.
type FPSCounter struct {
	Interval time.Duration

	frames int
	since  time.Time
}

func NewFPSCounter(interval time.Duration) *FPSCounter {
	return &FPSCounter{Interval: interval}
}

// Frame records one frame finished at now. Once per Interval it returns the
// average rate and true.
func (c *FPSCounter) Frame(now time.Time) (float64, bool) {
	if c.since.IsZero() {
		c.since = now
	}
	c.frames++
	el := now.Sub(c.since)
	if el < c.Interval || el <= 0 {
		return 0, false
	}
	fps := float64(c.frames) / el.Seconds()
	c.frames = 0
	c.since = now
	return fps, true
}
