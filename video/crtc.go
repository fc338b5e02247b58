// Package video implements a contract-level CRTC (Control/ATI/AMIC-PDM
// /Sixty6 family) timing generator, depth converters, and VBL cyclic
// timer wiring (spec 4.8).
//
// Grounded on the timer package's cyclic-callback shape for VBL, and
// on emu/model1403's buffered-output idea turned into a framebuffer
// scanout: convert once per refresh, hand the caller a ready RGBA
// buffer.
package video

import (
	"github.com/dingusdev/dingusppc-sub001/iobus"
	"github.com/dingusdev/dingusppc-sub001/timer"
)

// CRTC register file offsets: a depth select plus an indexed
// palette-DAC pair (index register, then three successive R/G/B
// writes auto-advancing the index), the standard way indexed video
// hardware exposes its CLUT.
const (
	RegDepth    = iota
	RegCLUTIndex
	RegCLUTData
)

// Depth identifies the framebuffer pixel format the CRTC is
// programmed for.
type Depth int

const (
	Depth1bpp Depth = iota
	Depth2bpp
	Depth4bpp
	Depth8bpp
	Depth15bpp // 1:5:5:5 big-endian
	Depth24bpp
	Depth32bpp // big-endian XRGB
)

// CLUT is an 8-bit indexed color lookup table (used by 1/2/4/8bpp
// modes).
type CLUT [256][3]uint8

// CRTC is the timing generator: resolution, depth, refresh rate, and
// the VBL cyclic timer it drives.
type CRTC struct {
	Width, Height int
	Depth         Depth
	Stride        int
	RefreshHz     int
	CLUT          CLUT

	Mem       []byte // framebuffer backing store, caller-owned
	FBOffset  uint32

	clutIndex     uint8
	clutComponent int // 0=R, 1=G, 2=B; advances the index after B

	Timers *timer.Manager
	vblID   timer.ID

	// OnVBL fires once per refresh interval (spec's "refresh-rate
	// cyclic timer -> ... -> VBL").
	OnVBL func()
}

func New(timers *timer.Manager) *CRTC {
	return &CRTC{RefreshHz: 60, Timers: timers}
}

// StartVBL arms the cyclic VBL timer at the configured refresh rate.
func (c *CRTC) StartVBL() {
	if c.Timers == nil || c.RefreshHz <= 0 {
		return
	}
	period := int64(1000000000 / c.RefreshHz)
	c.vblID = c.Timers.Cyclic(period, func(int64) {
		if c.OnVBL != nil {
			c.OnVBL()
		}
	})
}

func (c *CRTC) StopVBL() {
	if c.Timers != nil {
		c.Timers.Cancel(c.vblID)
	}
}

// ReadReg/WriteReg expose Depth and the indexed CLUT as a byte
// register file. Writing RegCLUTData stores one of R, G, or B at
// clutIndex and advances clutComponent, wrapping clutIndex to the
// next palette entry once all three land — the same index-then-burst
// programming sequence real palette DACs use.
func (c *CRTC) ReadReg(reg int) uint8 {
	switch reg {
	case RegDepth:
		return uint8(c.Depth)
	case RegCLUTIndex:
		return c.clutIndex
	case RegCLUTData:
		v := c.CLUT[c.clutIndex][c.clutComponent]
		c.advanceCLUT()
		return v
	}
	return 0
}

func (c *CRTC) WriteReg(reg int, v uint8) {
	switch reg {
	case RegDepth:
		c.Depth = Depth(v)
	case RegCLUTIndex:
		c.clutIndex = v
		c.clutComponent = 0
	case RegCLUTData:
		c.CLUT[c.clutIndex][c.clutComponent] = v
		c.advanceCLUT()
	}
}

func (c *CRTC) advanceCLUT() {
	c.clutComponent++
	if c.clutComponent == 3 {
		c.clutComponent = 0
		c.clutIndex++
	}
}

// Read/Write implement the MMIO device contract (spec section 6) over
// the byte register file above.
func (c *CRTC) Read(offset uint32, size int) uint32 {
	return iobus.ComposeBE(func(off uint32) uint8 { return c.ReadReg(int(off)) }, offset, size)
}

func (c *CRTC) Write(offset uint32, size int, value uint32) {
	iobus.SplitBE(func(off uint32, b uint8) { c.WriteReg(int(off), b) }, offset, size, value)
}

// RenderRGBA converts the framebuffer into a caller-provided RGBA8888
// buffer of Width*Height*4 bytes, dispatching on Depth (spec's "depth
// converter").
func (c *CRTC) RenderRGBA(out []byte) {
	switch c.Depth {
	case Depth8bpp, Depth4bpp, Depth2bpp, Depth1bpp:
		c.renderIndexed(out)
	case Depth15bpp:
		c.render15(out)
	case Depth24bpp:
		c.render24(out)
	case Depth32bpp:
		c.render32(out)
	}
}

func (c *CRTC) pixelsPerByte() int {
	switch c.Depth {
	case Depth1bpp:
		return 8
	case Depth2bpp:
		return 4
	case Depth4bpp:
		return 2
	default:
		return 1
	}
}

func (c *CRTC) renderIndexed(out []byte) {
	ppb := c.pixelsPerByte()
	bitsPerPixel := 8 / ppb
	mask := uint8(1<<uint(bitsPerPixel)) - 1
	for y := 0; y < c.Height; y++ {
		rowOff := int(c.FBOffset) + y*c.Stride
		for x := 0; x < c.Width; x++ {
			var idx uint8
			if c.Depth == Depth8bpp {
				idx = c.Mem[rowOff+x]
			} else {
				byteOff := rowOff + x/ppb
				shift := uint(8 - bitsPerPixel*(x%ppb+1))
				idx = (c.Mem[byteOff] >> shift) & mask
			}
			rgb := c.CLUT[idx]
			o := (y*c.Width + x) * 4
			out[o], out[o+1], out[o+2], out[o+3] = rgb[0], rgb[1], rgb[2], 0xFF
		}
	}
}

func (c *CRTC) render15(out []byte) {
	for y := 0; y < c.Height; y++ {
		rowOff := int(c.FBOffset) + y*c.Stride
		for x := 0; x < c.Width; x++ {
			byteOff := rowOff + x*2
			v := uint16(c.Mem[byteOff])<<8 | uint16(c.Mem[byteOff+1])
			r := uint8((v >> 10) & 0x1F)
			g := uint8((v >> 5) & 0x1F)
			b := uint8(v & 0x1F)
			o := (y*c.Width + x) * 4
			out[o], out[o+1], out[o+2], out[o+3] = expand5(r), expand5(g), expand5(b), 0xFF
		}
	}
}

func expand5(v uint8) uint8 { return (v << 3) | (v >> 2) }

func (c *CRTC) render24(out []byte) {
	for y := 0; y < c.Height; y++ {
		rowOff := int(c.FBOffset) + y*c.Stride
		for x := 0; x < c.Width; x++ {
			byteOff := rowOff + x*3
			o := (y*c.Width + x) * 4
			out[o], out[o+1], out[o+2], out[o+3] = c.Mem[byteOff], c.Mem[byteOff+1], c.Mem[byteOff+2], 0xFF
		}
	}
}

func (c *CRTC) render32(out []byte) {
	for y := 0; y < c.Height; y++ {
		rowOff := int(c.FBOffset) + y*c.Stride
		for x := 0; x < c.Width; x++ {
			byteOff := rowOff + x*4
			o := (y*c.Width + x) * 4
			// big-endian XRGB: byte0=X, byte1=R, byte2=G, byte3=B.
			out[o], out[o+1], out[o+2], out[o+3] = c.Mem[byteOff+1], c.Mem[byteOff+2], c.Mem[byteOff+3], 0xFF
		}
	}
}
