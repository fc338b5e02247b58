// Package scsi implements a contract-level MESH/53C94 SCSI controller:
// a request/response register file driving data through a DBDMA
// channel (spec 4.8).
//
// Grounded on emu/model1403's buffered block-transfer device (fill a
// buffer, post channel-end/device-end, let the caller drain it).
// Register layout follows original_source/devices/common/mesh.cpp.
package scsi

import "github.com/dingusdev/dingusppc-sub001/iobus"

// MESH register offsets.
const (
	RegXferCount0 = iota
	RegXferCount1
	RegFIFO
	RegSeqence
	RegBusStatus0
	RegBusStatus1
	RegFIFOCount
	RegIntStatus
	RegSrcID
	RegDstID
	RegSyncPeriod
	RegSyncOffset
)

// Interrupt status bits.
const (
	IntCmdDone  = 1 << 0
	IntError    = 1 << 3
	IntReselect = 1 << 4
)

// SCSI phase values, matching the bus's own signaling lines.
const (
	PhaseCommand = iota
	PhaseData
	PhaseStatus
	PhaseMsgIn
)

// Target is the contract a SCSI peripheral (disk, CD-ROM) implements;
// out-of-scope disk-image formats mean command execution here is
// minimal: a target answers a command block with a response and a
// completion status.
type Target interface {
	ID() int
	Execute(cdb []byte) (response []byte, status uint8)
}

// Controller is the MESH register bank plus the active command's
// transfer state.
type Controller struct {
	regs [16]uint8

	targets map[int]Target

	fifo []byte
	resp []byte

	OnIRQ func()
}

func New() *Controller { return &Controller{targets: map[int]Target{}} }

func (c *Controller) AttachTarget(t Target) { c.targets[t.ID()] = t }

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

// Read/Write implement the MMIO device contract (spec section 6) over
// the same register file ReadReg/WriteReg expose.
func (c *Controller) Read(offset uint32, size int) uint32 {
	return iobus.ComposeBE(func(off uint32) uint8 { return c.ReadReg(int(off)) }, offset, size)
}

func (c *Controller) Write(offset uint32, size int, value uint32) {
	iobus.SplitBE(func(off uint32, b uint8) { c.WriteReg(int(off), b) }, offset, size, value)
}

// WriteFIFO appends a command byte (a CDB built up one byte at a
// time, as the real register interface demands).
func (c *Controller) WriteFIFO(b uint8) { c.fifo = append(c.fifo, b) }

// IssueCommand dispatches the accumulated FIFO as a CDB to the target
// selected in RegDstID, posting the response into an internal buffer
// drained via PullData and raising CmdDone.
func (c *Controller) IssueCommand() {
	target, ok := c.targets[int(c.regs[RegDstID])]
	cdb := c.fifo
	c.fifo = nil
	if !ok {
		c.regs[RegIntStatus] |= IntError
		if c.OnIRQ != nil {
			c.OnIRQ()
		}
		return
	}
	resp, status := target.Execute(cdb)
	c.resp = resp
	c.regs[RegBusStatus0] = status
	c.regs[RegIntStatus] |= IntCmdDone
	if c.OnIRQ != nil {
		c.OnIRQ()
	}
}

// PullData implements dbdma.Source, draining the pending response.
func (c *Controller) PullData(b []byte) (int, uint16) {
	n := copy(b, c.resp)
	c.resp = c.resp[n:]
	return n, uint16(c.regs[RegBusStatus0])
}

// PushData implements dbdma.Sink for a write command's data-out
// phase: bytes are appended to the FIFO for the next IssueCommand.
func (c *Controller) PushData(b []byte) (int, uint16) {
	c.fifo = append(c.fifo, b...)
	return len(b), 0
}
