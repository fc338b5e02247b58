// Package serial implements a contract-level Zilog 85C30 ESCC
// 2-channel serial controller (spec 4.8).
//
// Grounded on the teacher's emu/model1403's buffered block-transfer
// shape (fill a buffer, signal ready, let the DMA/channel layer drain
// it) combined with emu/modelTape's byte-count-driven IRQ. Register
// names follow original_source/devices/common/escc.cpp.
package serial

import "github.com/dingusdev/dingusppc-sub001/iobus"

// WR/RR register indices, matching the Z85C30's indirect addressing
// scheme (a channel's command register selects which WRn/RRn a
// following access targets).
const (
	WR0 = iota
	WR1
	WR2
	WR3
	WR4
	WR5
	WR9 = 9
	WR12 = 12
	WR13 = 13
	WR14 = 14
	WR15 = 15
)

const (
	RR0 = iota
	RR1
	RR2
	RR3
)

// RR0 status bits.
const (
	RR0RxAvail   = 1 << 0
	RR0TxEmpty   = 1 << 2
	RR0DCD       = 1 << 3
	RR0CTS       = 1 << 5
)

// Channel is one ESCC serial channel (A or B).
type Channel struct {
	Name string

	wr [16]uint8
	rr [4]uint8

	selected int // register pointer set by the last WR0 access

	rxFIFO []byte
	txOut  []byte // bytes written by the guest, drained via TxBytes

	// OnIRQ fires when RxAvail goes from clear to set; TxEmpty changes
	// raise no interrupt (full interrupt-vector-and-priority logic is
	// out of scope per spec).
	OnIRQ func()
}

func NewChannel(name string) *Channel {
	c := &Channel{Name: name}
	c.rr[RR0] = RR0TxEmpty | RR0DCD | RR0CTS
	return c
}

// WriteControl writes the control (register-select) port. Writing a
// register-pointer command into WR0 (bits 0-2) selects which
// register the NEXT control write/read targets; any other value
// writes directly into the register WR0 last pointed at.
func (c *Channel) WriteControl(val uint8) {
	if c.selected == 0 {
		ptr := val & 0x7
		if ptr != 0 {
			c.selected = int(ptr)
			return
		}
		c.wr[WR0] = val
		return
	}
	c.wr[c.selected] = val
	c.selected = 0
}

func (c *Channel) ReadControl() uint8 {
	if c.selected == 0 {
		return c.rr[RR0]
	}
	r := c.selected
	c.selected = 0
	if r < len(c.rr) {
		return c.rr[r]
	}
	return 0
}

// WriteData pushes one transmitted byte from the guest (spec 4.8 DMA
// push endpoint).
func (c *Channel) WriteData(b uint8) {
	c.txOut = append(c.txOut, b)
}

// ReadData pops the oldest received byte, clearing RxAvail when the
// FIFO drains.
func (c *Channel) ReadData() uint8 {
	if len(c.rxFIFO) == 0 {
		return 0
	}
	b := c.rxFIFO[0]
	c.rxFIFO = c.rxFIFO[1:]
	if len(c.rxFIFO) == 0 {
		c.rr[RR0] &^= RR0RxAvail
	}
	return b
}

// PushRx delivers host-side received bytes into the channel's FIFO
// (the DMA pull endpoint's data source, spec 4.8).
func (c *Channel) PushRx(b []byte) {
	c.rxFIFO = append(c.rxFIFO, b...)
	before := c.rr[RR0]&RR0RxAvail != 0
	c.rr[RR0] |= RR0RxAvail
	if !before && c.OnIRQ != nil {
		c.OnIRQ()
	}
}

// TxBytes drains and returns everything the guest has written since
// the last drain (spec 4.8 DMA pull from the guest side).
func (c *Channel) TxBytes() []byte {
	out := c.txOut
	c.txOut = nil
	return out
}

// channelRegControl and channelRegData are the channel's own 2-byte
// port pair (control/register-select, then data), the shape real
// Z85C30 hardware exposes at a channel's base address.
const (
	channelRegControl = 0
	channelRegData    = 1
)

// ReadReg/WriteReg expose the channel's control/data port pair by
// index, so the MMIO dispatcher can address A and B the same way.
func (c *Channel) ReadReg(reg int) uint8 {
	switch reg {
	case channelRegControl:
		return c.ReadControl()
	case channelRegData:
		return c.ReadData()
	}
	return 0
}

func (c *Channel) WriteReg(reg int, v uint8) {
	switch reg {
	case channelRegControl:
		c.WriteControl(v)
	case channelRegData:
		c.WriteData(v)
	}
}

// PushData implements dbdma.Sink for an output channel bound to this
// serial port.
func (c *Channel) PushData(b []byte) (int, uint16) {
	for _, v := range b {
		c.WriteData(v)
	}
	return len(b), 0
}

// PullData implements dbdma.Source for an input channel.
func (c *Channel) PullData(b []byte) (int, uint16) {
	n := 0
	for n < len(b) && len(c.rxFIFO) > 0 {
		b[n] = c.ReadData()
		n++
	}
	return n, 0
}

// ESCC is the two-channel controller.
type ESCC struct {
	A, B *Channel
}

func New() *ESCC {
	return &ESCC{A: NewChannel("A"), B: NewChannel("B")}
}

// Read/Write implement the MMIO device contract (spec section 6):
// channel B's control/data pair at offsets 0-1, channel A's at 2-3,
// matching the real Z85C30's B-before-A addressing order.
func (e *ESCC) Read(offset uint32, size int) uint32 {
	return iobus.ComposeBE(e.readByte, offset, size)
}

func (e *ESCC) Write(offset uint32, size int, value uint32) {
	iobus.SplitBE(e.writeByte, offset, size, value)
}

func (e *ESCC) readByte(off uint32) uint8 {
	if off < 2 {
		return e.B.ReadReg(int(off))
	}
	return e.A.ReadReg(int(off - 2))
}

func (e *ESCC) writeByte(off uint32, v uint8) {
	if off < 2 {
		e.B.WriteReg(int(off), v)
		return
	}
	e.A.WriteReg(int(off-2), v)
}
