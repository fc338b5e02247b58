// Package via implements the VIA6522 interface cell and the Cuda MCU
// (ADB host, PRAM, RTC) built on top of it (spec 4.7).
//
// Grounded on the teacher's emu/model1052/model1052.go: a buffered
// device driving its own internal handshake state machine, scheduled
// through timer callbacks rather than free-running goroutines.
package via

import (
	"github.com/dingusdev/dingusppc-sub001/iobus"
	"github.com/dingusdev/dingusppc-sub001/timer"
)

// VIA6522 register offsets, named as in the PowerPC Mac source.
const (
	RegORB = iota
	RegORA
	RegDDRB
	RegDDRA
	RegT1CL
	RegT1CH
	RegT1LL
	RegT1LH
	RegT2CL
	RegT2CH
	RegSR
	RegACR
	RegPCR
	RegIFR
	RegIER
	RegORAnh
)

// IFR/IER bit positions.
const (
	ifrCA2 = 1 << 0
	ifrCA1 = 1 << 1
	ifrSR  = 1 << 2
	ifrCB2 = 1 << 3
	ifrCB1 = 1 << 4
	ifrT2  = 1 << 5
	ifrT1  = 1 << 6
	ifrAny = 1 << 7
)

const acrT1ContinuousBit = 1 << 6

// VIACLOCKHZ is the fixed VIA timer tick rate (spec 4.7).
const VIACLOCKHZ = 1000000

// VIA6522 is the cell: ports A/B with DDR masks, T1/T2, SR, and the
// ACR/PCR/IFR/IER control registers.
type VIA6522 struct {
	ORA, ORB   uint8
	DDRA, DDRB uint8
	T1C, T1L   uint16
	T2C, T2L   uint16
	SR         uint8
	ACR, PCR   uint8
	IFR, IER   uint8

	Timers *timer.Manager
	t1ID, t2ID timer.ID

	// OnIRQ is invoked whenever (IFR & IER & 0x7F) transitions
	// between zero and nonzero, mirroring ifrAny's role as the CPU
	// interrupt summary bit.
	OnIRQ func(level int)

	// CB1Edge lets an attached device (Cuda) observe port B
	// handshake transitions.
	CB1Edge func(rising bool)
}

func New(timers *timer.Manager) *VIA6522 {
	v := &VIA6522{Timers: timers}
	v.armT1()
	return v
}

func (v *VIA6522) setIFR(bit uint8, level bool) {
	before := v.IFR&v.IER&0x7F != 0
	if level {
		v.IFR |= bit
	} else {
		v.IFR &^= bit
	}
	after := v.IFR&v.IER&0x7F != 0
	if after != before && v.OnIRQ != nil {
		v.OnIRQ(boolToLevel(after))
	}
}

func boolToLevel(v bool) int {
	if v {
		return 1
	}
	return 0
}

func (v *VIA6522) armT1() {
	if v.Timers == nil {
		return
	}
	delay := int64(v.T1C) * (1000000000 / VIACLOCKHZ)
	v.t1ID = v.Timers.OneShot(delay, v.onT1Underflow)
}

func (v *VIA6522) onT1Underflow(now int64) {
	v.setIFR(ifrT1, true)
	if v.ACR&acrT1ContinuousBit != 0 {
		v.T1C = v.T1L
		v.armT1()
	}
}

// WriteReg/ReadReg implement the byte-wide register file. Offset is
// the register index (RegORB..RegIER); real hardware repeats the
// 16-register bank across its whole page, handled by the caller
// masking offset before calling in.
func (v *VIA6522) ReadReg(reg int) uint8 {
	switch reg {
	case RegORB:
		return v.ORB
	case RegORA, RegORAnh:
		return v.ORA
	case RegDDRB:
		return v.DDRB
	case RegDDRA:
		return v.DDRA
	case RegT1CL:
		v.setIFR(ifrT1, false)
		return uint8(v.T1C)
	case RegT1CH:
		return uint8(v.T1C >> 8)
	case RegT1LL:
		return uint8(v.T1L)
	case RegT1LH:
		return uint8(v.T1L >> 8)
	case RegT2CL:
		v.setIFR(ifrT2, false)
		return uint8(v.T2C)
	case RegT2CH:
		return uint8(v.T2C >> 8)
	case RegSR:
		v.setIFR(ifrSR, false)
		return v.SR
	case RegACR:
		return v.ACR
	case RegPCR:
		return v.PCR
	case RegIFR:
		return v.IFR
	case RegIER:
		return v.IER | 0x80
	}
	return 0
}

// Read/Write implement the MMIO device contract (spec section 6) over
// the same byte-wide register file ReadReg/WriteReg expose, one
// register per address the way the real VIA decodes its address
// lines (real hardware spaces registers 0x200 apart; that spacing is
// the iobus window's job, not this register file's).
func (v *VIA6522) Read(offset uint32, size int) uint32 {
	return iobus.ComposeBE(func(off uint32) uint8 { return v.ReadReg(int(off)) }, offset, size)
}

func (v *VIA6522) Write(offset uint32, size int, value uint32) {
	iobus.SplitBE(func(off uint32, b uint8) { v.WriteReg(int(off), b) }, offset, size, value)
}

func (v *VIA6522) WriteReg(reg int, val uint8) {
	switch reg {
	case RegORB:
		v.ORB = val
	case RegORA, RegORAnh:
		v.ORA = val
	case RegDDRB:
		v.DDRB = val
	case RegDDRA:
		v.DDRA = val
	case RegT1CL:
		v.T1L = (v.T1L & 0xFF00) | uint16(val)
	case RegT1CH:
		v.T1L = (v.T1L & 0x00FF) | uint16(val)<<8
		v.T1C = v.T1L
		v.setIFR(ifrT1, false)
		v.armT1()
	case RegT1LL:
		v.T1L = (v.T1L & 0xFF00) | uint16(val)
	case RegT1LH:
		v.T1L = (v.T1L & 0x00FF) | uint16(val)<<8
	case RegT2CL:
		v.T2L = (v.T2L & 0xFF00) | uint16(val)
	case RegT2CH:
		v.T2C = (v.T2L & 0x00FF) | uint16(val)<<8
		v.setIFR(ifrT2, false)
	case RegSR:
		v.SR = val
	case RegACR:
		v.ACR = val
	case RegPCR:
		v.PCR = val
	case RegIFR:
		v.IFR &^= val & 0x7F
	case RegIER:
		if val&0x80 != 0 {
			v.IER |= val & 0x7F
		} else {
			v.IER &^= val & 0x7F
		}
	}
}
