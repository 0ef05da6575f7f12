package hal

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingLoop struct {
	h      HAL
	steps  int
	stamps []uint64
	keys   []bool
	quitAt int
}

func (l *countingLoop) Step() error {
	l.steps++
	l.stamps = append(l.stamps, l.h.Clock().Millis())
	l.keys = append(l.keys, l.h.Input().Keyboard().Pressed(KeyW))
	if l.quitAt > 0 && l.steps >= l.quitAt {
		return ErrQuit
	}
	return nil
}

func TestRunHeadlessTickLimit(t *testing.T) {
	var loop *countingLoop
	cfg := HeadlessConfig{
		Hz:         500,
		Ticks:      4,
		FixedClock: true,
		Keyboard:   NewScriptKeyboard([]ScriptStep{{Frames: 2, Keys: []KeyCode{KeyW}}}, false),
	}
	err := RunHeadless(context.Background(), cfg, func(h HAL) (Loop, error) {
		loop = &countingLoop{h: h}
		return loop, nil
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if loop.steps != 4 {
		t.Fatalf("steps = %d, want 4", loop.steps)
	}
	wantStamps := []uint64{2, 4, 6, 8}
	for i, v := range wantStamps {
		if loop.stamps[i] != v {
			t.Fatalf("stamp[%d] = %d, want %d", i, loop.stamps[i], v)
		}
	}
	wantKeys := []bool{true, true, false, false}
	for i, v := range wantKeys {
		if loop.keys[i] != v {
			t.Fatalf("key[%d] = %v, want %v", i, loop.keys[i], v)
		}
	}
}

func TestRunHeadlessQuit(t *testing.T) {
	var loop *countingLoop
	err := RunHeadless(context.Background(), HeadlessConfig{Hz: 1000}, func(h HAL) (Loop, error) {
		loop = &countingLoop{h: h, quitAt: 3}
		return loop, nil
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if loop.steps != 3 {
		t.Fatalf("steps = %d, want 3", loop.steps)
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := RunHeadless(ctx, HeadlessConfig{Hz: 100}, func(h HAL) (Loop, error) {
		return &countingLoop{h: h}, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestRunHeadlessLoopError(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), HeadlessConfig{Hz: 100}, func(h HAL) (Loop, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}
