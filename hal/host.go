package hal

// HostConfig selects the host devices. Zero fields fall back to the defaults
// used by the desktop window.
type HostConfig struct {
	Width  int
	Height int

	// Keyboard overrides the ebiten keyboard (scripted input for headless runs).
	Keyboard Keyboard
	// Clock overrides the wall clock.
	Clock Clock
}

type hostHAL struct {
	fb    *hostFramebuffer
	kbd   Keyboard
	clock Clock
}

// poller is implemented by keyboards that refresh their snapshot once per frame.
type poller interface {
	poll()
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	h := &hostHAL{
		fb:    newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:   cfg.Keyboard,
		clock: cfg.Clock,
	}
	if h.kbd == nil {
		h.kbd = newHostKeyboard()
	}
	if h.clock == nil {
		h.clock = newWallClock()
	}
	return h
}

func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Clock() Clock     { return h.clock }

// pollInput refreshes the key snapshot before a step.
func (h *hostHAL) pollInput() {
	if p, ok := h.kbd.(poller); ok {
		p.poll()
	}
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd Keyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
