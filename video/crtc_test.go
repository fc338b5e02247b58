package video

import (
	"testing"

	"github.com/dingusdev/dingusppc-sub001/timer"
)

func TestVBLCyclicTimer(t *testing.T) {
	tm := timer.New()
	tm.SetDeterministic(true)
	c := New(tm)
	c.RefreshHz = 60
	fires := 0
	c.OnVBL = func() { fires++ }
	c.StartVBL()

	tm.Advance(1000000000) // 1 second -> ~60 VBLs
	if fires < 59 || fires > 60 {
		t.Fatalf("fires = %d, want ~60", fires)
	}
}

func TestRenderIndexed8bpp(t *testing.T) {
	c := &CRTC{Width: 2, Height: 1, Depth: Depth8bpp, Stride: 2, Mem: []byte{1, 2}}
	c.CLUT[1] = [3]uint8{10, 20, 30}
	c.CLUT[2] = [3]uint8{40, 50, 60}
	out := make([]byte, 2*1*4)
	c.RenderRGBA(out)
	if out[0] != 10 || out[1] != 20 || out[2] != 30 || out[3] != 0xFF {
		t.Fatalf("pixel0 = %v", out[:4])
	}
	if out[4] != 40 {
		t.Fatalf("pixel1 = %v", out[4:8])
	}
}

func TestRenderIndexed4bpp(t *testing.T) {
	c := &CRTC{Width: 2, Height: 1, Depth: Depth4bpp, Stride: 1, Mem: []byte{0x12}}
	c.CLUT[1] = [3]uint8{1, 1, 1}
	c.CLUT[2] = [3]uint8{2, 2, 2}
	out := make([]byte, 2*1*4)
	c.RenderRGBA(out)
	if out[0] != 1 || out[4] != 2 {
		t.Fatalf("got %v", out)
	}
}

func TestRender32bppBigEndianXRGB(t *testing.T) {
	c := &CRTC{Width: 1, Height: 1, Depth: Depth32bpp, Stride: 4, Mem: []byte{0x00, 0xAA, 0xBB, 0xCC}}
	out := make([]byte, 4)
	c.RenderRGBA(out)
	if out[0] != 0xAA || out[1] != 0xBB || out[2] != 0xCC || out[3] != 0xFF {
		t.Fatalf("got %v", out)
	}
}
