package hal

import "testing"

func TestFramebufferClearAndExpand(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	fb.ClearRGB(0xFF, 0x00, 0xFF)

	dst := make([]byte, 2*2*4)
	fb.expandRGBA(dst)
	for i := 0; i < len(dst); i += 4 {
		if dst[i] != 0xFF || dst[i+1] != 0 || dst[i+2] != 0xFF || dst[i+3] != 0xFF {
			t.Fatalf("pixel %d = %v", i/4, dst[i:i+4])
		}
	}
}

func TestFramebufferPresentCounts(t *testing.T) {
	fb := newHostFramebuffer(1, 1)
	_ = fb.Present()
	_ = fb.Present()
	if fb.frames() != 2 {
		t.Fatalf("frames = %d, want 2", fb.frames())
	}
}
