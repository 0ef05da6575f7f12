package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz     int
	Ticks  uint64
	Width  int
	Height int

	// Keyboard supplies input; nil means no key is ever held.
	Keyboard Keyboard
	// FixedClock steps the frame clock by 1000/Hz ms per tick instead of
	// reading wall time.
	FixedClock bool
}

// RunHeadless steps the loop on a ticker without opening a window. It
// returns nil after cfg.Ticks steps (0 = run until ctx is done) or when the
// loop returns ErrQuit.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newLoop func(HAL) (Loop, error)) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	hc := HostConfig{Width: cfg.Width, Height: cfg.Height, Keyboard: cfg.Keyboard}
	if hc.Keyboard == nil {
		hc.Keyboard = NewScriptKeyboard(nil, false)
	}
	if cfg.FixedClock {
		hc.Clock = NewFixedClock(cfg.Hz)
	}
	h := New(hc).(*hostHAL)
	loop, err := newLoop(h)
	if err != nil {
		return err
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.pollInput()
			h.advanceClock()
			if err := loop.Step(); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
