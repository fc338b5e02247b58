// Package ether implements a contract-level BigMac/MACE Ethernet MAC:
// MII register window, SROM-sourced station address, and frame
// queues driving DBDMA transmit/receive channels (spec 4.8).
//
// Grounded on emu/modelTape's multi-state device shape (queued
// records drained on demand) generalized from one tape record to an
// Ethernet frame queue.
package ether

import "github.com/dingusdev/dingusppc-sub001/iobus"

// Controller byte-register file offsets: the station address, a
// write-1-to-clear status byte, and an indirect MII select/data pair
// (mirroring the real MACE's MIICFG/MIISTAT addressing).
const (
	RegMAC0 = iota
	RegMAC1
	RegMAC2
	RegMAC3
	RegMAC4
	RegMAC5
	RegStatus
	RegMIISelect
	RegMIIDataHigh
	RegMIIDataLow
)

// MII register indices (a small subset; full PHY negotiation is out
// of scope).
const (
	MIIControl = iota
	MIIStatus
	MIIPhyIDHigh
	MIIPhyIDLow
)

// MACE/BigMac transmit and receive status bits.
const (
	StatusTxDone = 1 << 0
	StatusRxDone = 1 << 1
	StatusTxUnderrun = 1 << 2
)

// Controller is the MAC: station address (from SROM), MII window,
// and frame queues.
type Controller struct {
	MAC [6]byte

	mii       [4]uint16
	miiSelect int

	rxQueue [][]byte
	txOut   [][]byte

	Status uint8
	OnIRQ  func()
}

// New builds a controller seeded with a station address read from an
// SROM image (spec's SROM bit-state machine, simplified here to a
// direct 6-byte read at the conventional offset).
func New(srom []byte) *Controller {
	c := &Controller{}
	if len(srom) >= 6 {
		copy(c.MAC[:], srom[:6])
	}
	return c
}

func (c *Controller) ReadMII(reg int) uint16 {
	if reg < len(c.mii) {
		return c.mii[reg]
	}
	return 0
}

func (c *Controller) WriteMII(reg int, v uint16) {
	if reg < len(c.mii) {
		c.mii[reg] = v
	}
}

// ReadReg/WriteReg expose the station address, status, and indirect
// MII window as a byte register file, so the MMIO dispatcher can
// address this controller the same way as every other device.
func (c *Controller) ReadReg(reg int) uint8 {
	switch {
	case reg >= RegMAC0 && reg <= RegMAC5:
		return c.MAC[reg-RegMAC0]
	case reg == RegStatus:
		return c.Status
	case reg == RegMIISelect:
		return uint8(c.miiSelect)
	case reg == RegMIIDataHigh:
		return uint8(c.ReadMII(c.miiSelect) >> 8)
	case reg == RegMIIDataLow:
		return uint8(c.ReadMII(c.miiSelect))
	}
	return 0
}

func (c *Controller) WriteReg(reg int, v uint8) {
	switch {
	case reg >= RegMAC0 && reg <= RegMAC5:
		c.MAC[reg-RegMAC0] = v
	case reg == RegStatus:
		c.Status &^= v
	case reg == RegMIISelect:
		c.miiSelect = int(v) & 0x3
	case reg == RegMIIDataHigh:
		cur := c.ReadMII(c.miiSelect)
		c.WriteMII(c.miiSelect, uint16(v)<<8|cur&0xFF)
	case reg == RegMIIDataLow:
		cur := c.ReadMII(c.miiSelect)
		c.WriteMII(c.miiSelect, cur&0xFF00|uint16(v))
	}
}

// Read/Write implement the MMIO device contract (spec section 6) over
// the byte register file above.
func (c *Controller) Read(offset uint32, size int) uint32 {
	return iobus.ComposeBE(func(off uint32) uint8 { return c.ReadReg(int(off)) }, offset, size)
}

func (c *Controller) Write(offset uint32, size int, value uint32) {
	iobus.SplitBE(func(off uint32, b uint8) { c.WriteReg(int(off), b) }, offset, size, value)
}

// QueueRxFrame delivers a host-received frame into the receive queue
// (spec's "frame queues"), raising RxDone.
func (c *Controller) QueueRxFrame(frame []byte) {
	c.rxQueue = append(c.rxQueue, append([]byte(nil), frame...))
	c.Status |= StatusRxDone
	if c.OnIRQ != nil {
		c.OnIRQ()
	}
}

// PullData implements dbdma.Source for the receive channel: drains
// one queued frame per call, truncating to the caller's buffer size.
func (c *Controller) PullData(b []byte) (int, uint16) {
	if len(c.rxQueue) == 0 {
		return 0, 0
	}
	frame := c.rxQueue[0]
	c.rxQueue = c.rxQueue[1:]
	n := copy(b, frame)
	if len(c.rxQueue) == 0 {
		c.Status &^= StatusRxDone
	}
	return n, 0
}

// PushData implements dbdma.Sink for the transmit channel: buffers
// the guest's outgoing frame for a host bridge to pick up via
// TxFrames, and raises TxDone.
func (c *Controller) PushData(b []byte) (int, uint16) {
	c.txOut = append(c.txOut, append([]byte(nil), b...))
	c.Status |= StatusTxDone
	if c.OnIRQ != nil {
		c.OnIRQ()
	}
	return len(b), 0
}

// TxFrames drains frames queued for transmission since the last
// call.
func (c *Controller) TxFrames() [][]byte {
	out := c.txOut
	c.txOut = nil
	return out
}
