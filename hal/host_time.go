package hal

import "time"

type wallClock struct {
	start time.Time
}

func newWallClock() *wallClock {
	return &wallClock{start: time.Now()}
}

// Millis uses the monotonic reading carried by time.Time.
func (c *wallClock) Millis() uint64 {
	return uint64(time.Since(c.start) / time.Millisecond)
}

// FixedClock advances by a fixed step each frame, independent of wall time.
// Headless runs use it to make every step see the same dt.
type FixedClock struct {
	StepMillis uint64

	now uint64
}

// NewFixedClock returns a clock advancing 1000/hz milliseconds per frame.
func NewFixedClock(hz int) *FixedClock {
	if hz <= 0 {
		hz = 60
	}
	step := uint64(1000 / hz)
	if step == 0 {
		step = 1
	}
	return &FixedClock{StepMillis: step}
}

func (c *FixedClock) Millis() uint64 { return c.now }

// advance moves the clock one frame forward.
func (c *FixedClock) advance() { c.now += c.StepMillis }

// advancer is implemented by clocks stepped by the runner rather than by time.
type advancer interface {
	advance()
}

func (h *hostHAL) advanceClock() {
	if a, ok := h.clock.(advancer); ok {
		a.advance()
	}
}
