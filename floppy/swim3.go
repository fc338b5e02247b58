// Package floppy implements a contract-level SWIM3 floppy controller
// register bank driving a DBDMA output channel (spec 4.8).
//
// Grounded on emu/modelTape's byte-counter-driven IRQ: a transfer
// counts down a request length and raises an interrupt at zero,
// exactly the shape SWIM3's sector-length countdown needs.
package floppy

import "github.com/dingusdev/dingusppc-sub001/iobus"

// SWIM3 register offsets (original_source/devices/floppy/swim3.cpp).
const (
	RegData = iota
	RegTimer
	RegError
	RegParamDataH
	RegPhase
	RegSetup
	RegModeH
	RegHandshakeH
	RegInterrupt
	RegModeL
	RegHandshakeL
)

// Interrupt status bits.
const (
	IntSenseReq   = 1 << 0
	IntTransferDone = 1 << 1
	IntError      = 1 << 4
)

// Controller is the SWIM3 register bank plus its active transfer
// state.
type Controller struct {
	regs [16]uint8

	sectorLen  int
	remaining  int
	buf        []byte

	OnIRQ func()
}

func New() *Controller { return &Controller{} }

func (c *Controller) ReadReg(reg int) uint8 {
	if reg < len(c.regs) {
		return c.regs[reg]
	}
	return 0
}

func (c *Controller) WriteReg(reg int, v uint8) {
	if reg < len(c.regs) {
		c.regs[reg] = v
	}
}

// Read/Write implement the MMIO device contract (spec section 6)
// over the same register file ReadReg/WriteReg expose, one byte per
// address.
func (c *Controller) Read(offset uint32, size int) uint32 {
	return iobus.ComposeBE(func(off uint32) uint8 { return c.ReadReg(int(off)) }, offset, size)
}

func (c *Controller) Write(offset uint32, size int, value uint32) {
	iobus.SplitBE(func(off uint32, b uint8) { c.WriteReg(int(off), b) }, offset, size, value)
}

// StartRead begins a DMA-backed sector read of n bytes from data,
// counting down and raising TransferDone at zero — SWIM3's
// byte-counter IRQ shape (spec 4.8).
func (c *Controller) StartRead(data []byte) {
	c.buf = append([]byte(nil), data...)
	c.remaining = len(data)
	c.regs[RegInterrupt] &^= IntTransferDone
}

// PullData implements dbdma.Source, feeding the active transfer's
// remaining bytes and raising the completion IRQ when it drains.
func (c *Controller) PullData(b []byte) (int, uint16) {
	n := 0
	for n < len(b) && c.remaining > 0 {
		b[n] = c.buf[len(c.buf)-c.remaining]
		c.remaining--
		n++
	}
	if c.remaining == 0 && n > 0 {
		c.regs[RegInterrupt] |= IntTransferDone
		if c.OnIRQ != nil {
			c.OnIRQ()
		}
	}
	return n, 0
}

// PushData implements dbdma.Sink for a write transfer: bytes from the
// guest are simply buffered (no backing disk image — out of scope
// per spec).
func (c *Controller) PushData(b []byte) (int, uint16) {
	c.buf = append(c.buf, b...)
	c.regs[RegInterrupt] |= IntTransferDone
	if c.OnIRQ != nil {
		c.OnIRQ()
	}
	return len(b), 0
}
