package hal

// ScriptStep holds a set of keys for a number of frames.
type ScriptStep struct {
	Frames int
	Keys   []KeyCode
}

// ScriptKeyboard replays a fixed key script, one frame per poll.
//
// After the last step every key reads as released. With Loop set, the script
// restarts instead.
type ScriptKeyboard struct {
	Steps []ScriptStep
	Loop  bool

	step  int
	frame int
	held  map[KeyCode]bool
	start bool
}

// NewScriptKeyboard returns a keyboard that replays steps.
func NewScriptKeyboard(steps []ScriptStep, loop bool) *ScriptKeyboard {
	return &ScriptKeyboard{Steps: steps, Loop: loop, held: make(map[KeyCode]bool)}
}

func (k *ScriptKeyboard) Pressed(code KeyCode) bool { return k.held[code] }

// Done reports whether the script ran out (never true when looping).
func (k *ScriptKeyboard) Done() bool {
	return !k.Loop && k.step >= len(k.Steps)
}

func (k *ScriptKeyboard) poll() {
	if k.held == nil {
		k.held = make(map[KeyCode]bool)
	}
	if k.start {
		k.frame++
	}
	k.start = true
	k.skipFinished()

	clear(k.held)
	// A looping script of empty steps can stop on one; it holds nothing.
	if k.step >= len(k.Steps) || k.Steps[k.step].Frames <= 0 {
		return
	}
	for _, code := range k.Steps[k.step].Keys {
		k.held[code] = true
	}
}

func (k *ScriptKeyboard) skipFinished() {
	for guard := 0; guard <= len(k.Steps); guard++ {
		if k.step >= len(k.Steps) {
			if !k.Loop || len(k.Steps) == 0 {
				return
			}
			k.step = 0
		}
		if k.frame < k.Steps[k.step].Frames {
			return
		}
		k.frame = 0
		k.step++
	}
}
