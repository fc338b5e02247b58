// Package dbdma implements Apple's Descriptor-Based DMA engine: a
// per-channel register bank plus an in-memory descriptor chain walk
// (spec 4.6).
//
// Grounded directly on the teacher's emu/sys_channel/channel.go CCW
// chain walker: fetch command, execute, chain-or-stop on flags, post
// completion status, raise an IRQ edge. DBDMA's int/branch/wait
// selects play the role of CCW's chain-data/chain-command/SLI flags.
package dbdma

import (
	"log/slog"

	"github.com/dingusdev/dingusppc-sub001/internal/bus"
	"github.com/dingusdev/dingusppc-sub001/iobus"
	"github.com/dingusdev/dingusppc-sub001/physmap"
)

// Channel register offsets (spec section 6: "ctrl, status, cmd_ptr,
// int_select, branch_select, wait_select, data, flush"); this
// contract-level model exposes the subset that drives descriptor
// execution from the CPU's load/store path.
const (
	regControl = 0x00
	regStatus  = 0x04
	regCmdPtr  = 0x08
)

// ctrlRun is the start bit in the control register (spec 4.6 "a start
// bit in ctrl begins descriptor execution from cmd_ptr").
const ctrlRun = 1 << 0

// Command encodes the low 3 bits of a descriptor's cmd_key_flags
// word (spec section 6).
type Command uint16

const (
	CmdOutputMore Command = 0x0
	CmdOutputLast Command = 0x1
	CmdInputMore  Command = 0x2
	CmdInputLast  Command = 0x3
	CmdStoreQuad  Command = 0x4
	CmdLoadQuad   Command = 0x5
	CmdNOP        Command = 0x6
	CmdStop       Command = 0x7
)

// Select encodes a 2-bit condition test against live status bits
// (spec 4.6 int_select/branch_select/wait_select).
type Select uint8

const (
	SelNever Select = iota
	SelIfSet
	SelIfClear
	SelAlways
)

func (s Select) match(bit bool) bool {
	switch s {
	case SelIfSet:
		return bit
	case SelIfClear:
		return !bit
	case SelAlways:
		return true
	default:
		return false
	}
}

// Descriptor is the 16-byte, little-endian in-memory command record
// (spec section 6).
type Descriptor struct {
	Command      Command
	Key          uint8
	IntSelect    Select
	BranchSelect Select
	WaitSelect   Select
	ReqCount     uint16
	Address      uint32
	CmdDep       uint32
	ResCount     uint16
	XferStatus   uint16
}

const descriptorSize = 16

func decodeDescriptor(b []byte) Descriptor {
	ckf := bus.LoadLE16(b, 0)
	return Descriptor{
		Command:      Command(ckf & 0x7),
		Key:          uint8((ckf >> 4) & 0x7),
		IntSelect:    Select((ckf >> 6) & 0x3),
		BranchSelect: Select((ckf >> 8) & 0x3),
		WaitSelect:   Select((ckf >> 10) & 0x3),
		ReqCount:     bus.LoadLE16(b, 2),
		Address:      bus.LoadLE32(b, 4),
		CmdDep:       bus.LoadLE32(b, 8),
		ResCount:     bus.LoadLE16(b, 12),
		XferStatus:   bus.LoadLE16(b, 14),
	}
}

func encodeResult(b []byte, resCount, xferStatus uint16) {
	bus.StoreLE16(b, 12, resCount)
	bus.StoreLE16(b, 14, xferStatus)
}

// Sink/Source are the device ends of a DMA channel (spec 4.6 "push
// to the device sink" / "pull from the device source").
type Sink interface {
	PushData(b []byte) (n int, status uint16)
}
type Source interface {
	PullData(b []byte) (n int, status uint16)
}

// Channel is one DBDMA register bank plus its descriptor-chain
// cursor.
type Channel struct {
	Name string
	Mem  *physmap.Map
	Sink Sink
	Src  Source

	Running   bool
	Paused    bool
	CmdPtr    uint32
	IntSelect Select
	Status    uint16

	// live status bits evaluated by int/branch/wait selects; bit 0
	// is "device ready", the only bit this contract-level model
	// tracks (spec 4.6 leaves per-device status bits to the
	// peripheral).
	deviceReady bool

	OnIRQ func()
}

// SetDeviceReady updates the live status bit wait_select polls.
func (c *Channel) SetDeviceReady(ready bool) { c.deviceReady = ready }

// Start begins descriptor execution from cmdPtr (spec 4.6 "a start
// bit in ctrl begins descriptor execution").
func (c *Channel) Start(cmdPtr uint32) {
	c.CmdPtr = cmdPtr
	c.Running = true
	c.Paused = false
	c.Run()
}

// Run walks descriptors until STOP or a descriptor whose wait select
// matches, which pauses the channel (spec 4.6). A short transfer does
// not stop the walk; it only shows up in that descriptor's res_count.
func (c *Channel) Run() {
	for c.Running && !c.Paused {
		c.step()
	}
}

func (c *Channel) step() {
	raw := make([]byte, descriptorSize)
	for i := 0; i < descriptorSize; i++ {
		raw[i] = byte(c.Mem.Read8(c.CmdPtr + uint32(i)))
	}
	d := decodeDescriptor(raw)

	switch d.Command {
	case CmdStop:
		c.Running = false
		return
	case CmdNOP:
		// no transfer; selects still apply below.
	case CmdOutputMore, CmdOutputLast:
		c.doOutput(&d)
	case CmdInputMore, CmdInputLast:
		c.doInput(&d)
	case CmdStoreQuad:
		c.Mem.Write32(d.CmdDep, c.Mem.Read32(d.Address))
	case CmdLoadQuad:
		c.Mem.Write32(d.Address, c.Mem.Read32(d.CmdDep))
	}

	encodeResult(raw, d.ResCount, d.XferStatus)
	for i := 12; i < 16; i++ {
		c.Mem.Write8(c.CmdPtr+uint32(i), raw[i])
	}

	if d.IntSelect.match(c.deviceReady) {
		c.Status |= 1
		if c.OnIRQ != nil {
			c.OnIRQ()
		}
	}
	if d.BranchSelect.match(c.deviceReady) {
		c.CmdPtr = d.CmdDep
		return
	}
	if d.WaitSelect.match(c.deviceReady) {
		c.Paused = true
		return
	}
	c.CmdPtr += descriptorSize
}

func (c *Channel) doOutput(d *Descriptor) {
	buf := make([]byte, d.ReqCount)
	for i := range buf {
		buf[i] = byte(c.Mem.Read8(d.Address + uint32(i)))
	}
	n, status := 0, uint16(0)
	if c.Sink != nil {
		n, status = c.Sink.PushData(buf)
	} else {
		slog.Warn("dbdma: output descriptor with no sink", slog.String("channel", c.Name))
	}
	d.ResCount = d.ReqCount - uint16(n)
	d.XferStatus = status
}

func (c *Channel) doInput(d *Descriptor) {
	buf := make([]byte, d.ReqCount)
	n, status := 0, uint16(0)
	if c.Src != nil {
		n, status = c.Src.PullData(buf)
	} else {
		slog.Warn("dbdma: input descriptor with no source", slog.String("channel", c.Name))
	}
	for i := 0; i < n; i++ {
		c.Mem.Write8(d.Address+uint32(i), buf[i])
	}
	d.ResCount = d.ReqCount - uint16(n)
	d.XferStatus = status
}

// Read/Write implement the MMIO device contract (spec section 6),
// putting descriptor execution within the CPU's load/store reach:
// CONTROL at +0x0 (writing bit0=1 starts the chain at CmdPtr, bit0=0
// halts it), STATUS at +0x4 (read-only), CMD_PTR at +0x8.
func (c *Channel) Read(offset uint32, size int) uint32 {
	return iobus.ComposeBE(c.readByte, offset, size)
}

func (c *Channel) Write(offset uint32, size int, value uint32) {
	iobus.SplitBE(c.writeByte, offset, size, value)
}

func (c *Channel) readByte(off uint32) uint8 {
	shift := uint(8 * (3 - off%4))
	switch off &^ 3 {
	case regControl:
		var v uint32
		if c.Running {
			v = ctrlRun
		}
		return byte(v >> shift)
	case regStatus:
		return byte(uint32(c.Status) >> shift)
	case regCmdPtr:
		return byte(c.CmdPtr >> shift)
	}
	return 0
}

// writeByte only acts on the control register's low-order byte (the
// one carrying ctrlRun): with the register addressed big-endian, that
// byte lands last regardless of whether the guest issues one 4-byte
// store or four single-byte stores, so the start/stop decision fires
// exactly once per logical write.
func (c *Channel) writeByte(off uint32, v uint8) {
	switch off &^ 3 {
	case regControl:
		if off%4 != 3 {
			return
		}
		if v&ctrlRun != 0 {
			if !c.Running {
				c.Start(c.CmdPtr)
			}
		} else {
			c.Running = false
			c.Paused = false
		}
	case regCmdPtr:
		shift := uint(8 * (3 - off%4))
		c.CmdPtr = (c.CmdPtr &^ (0xFF << shift)) | uint32(v)<<shift
	}
}

// Resume continues a paused channel after the device signals
// readiness (spec 4.6 "pausing halts descriptor advance...").
func (c *Channel) Resume() {
	if !c.Paused {
		return
	}
	c.Paused = false
	c.CmdPtr += descriptorSize
	c.Run()
}
