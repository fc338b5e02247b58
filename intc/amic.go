package intc

import "github.com/dingusdev/dingusppc-sub001/iobus"

// AMIC cascades slot interrupts into a VIA2-style slot register,
// which folds into the CPU-level register alongside a gathered
// ALL_DMA source (spec 4.5). Layout follows original_source's
// amic.cpp cascade.
type AMIC struct {
	CPULevel uint32
	CPUMask  uint32
	Slot     uint32
	SlotMask uint32
	DMA      uint32
	DMAMask  uint32
	CPU      CPUPin
}

// AMIC CPU-level bit assignments.
const (
	amicBitSlot   = 0
	amicBitDMA    = 1
	amicBitVIA2   = 2
	amicBitVIACuda = 3
	amicBitSCC    = 4
	amicBitSWIM3  = 5
	amicBitVBL    = 6
)

var amicCPUBits = map[Source]int{
	SrcVIACuda: amicBitVIACuda,
	SrcSCCA:    amicBitSCC,
	SrcSCCB:    amicBitSCC,
	SrcSWIM3:   amicBitSWIM3,
	SrcVBL:     amicBitVBL,
}

var amicSlotBits = map[Source]int{
	SrcSlot0: 0, SrcSlot1: 1, SrcSlot2: 2, SrcSlot3: 3, SrcSlot4: 4, SrcSlot5: 5,
}

var amicDMABits = map[Source]int{
	SrcDMACurio: 0, SrcDMAFloppy: 1, SrcDMAEnetTx: 2, SrcDMAEnetRx: 3,
	SrcDMASCCATx: 4, SrcDMASCCARx: 5, SrcDMASCCBTx: 6, SrcDMASCCBRx: 7,
	SrcDMASoundOut: 8, SrcDMAMesh: 9,
}

// AMIC IRQID layer tags, packed into the high byte so AckInt can tell
// which layer a given id belongs to without a side table.
const (
	amicLayerCPU  = 0 << 8
	amicLayerSlot = 1 << 8
	amicLayerDMA  = 2 << 8
)

func NewAMIC(cpu CPUPin) *AMIC { return &AMIC{CPU: cpu} }

func (a *AMIC) RegisterSource(src Source) IRQID {
	if bit, ok := amicSlotBits[src]; ok {
		return IRQID(amicLayerSlot | bit)
	}
	if bit, ok := amicDMABits[src]; ok {
		return IRQID(amicLayerDMA | bit)
	}
	if bit, ok := amicCPUBits[src]; ok {
		return IRQID(amicLayerCPU | bit)
	}
	return -1
}

func (a *AMIC) AckDMAInt(id IRQID, level int) { a.AckInt(id, level) }

// AckInt inspects the shift region of id to determine which layer it
// targets, then cascades upward: a DMA bit gathers into ALL_DMA
// (cpu bit 1); a slot bit gathers into the VIA2 slot summary (cpu
// bit 0); either change re-evaluates the CPU-level register (spec
// 4.5 "ack_int inspects the shift region of irq_id").
func (a *AMIC) AckInt(id IRQID, level int) {
	if id < 0 {
		return
	}
	layer, bit := int(id)&0xFF00, int(id)&0xFF
	before := a.CPULevel&a.CPUMask != 0
	switch layer {
	case amicLayerDMA:
		setBit32(&a.DMA, bit, level)
		setBit32(&a.CPULevel, amicBitDMA, boolToInt(a.DMA&a.DMAMask != 0))
	case amicLayerSlot:
		setBit32(&a.Slot, bit, level)
		setBit32(&a.CPULevel, amicBitSlot, boolToInt(a.Slot&a.SlotMask != 0))
	default:
		setBit32(&a.CPULevel, bit, level)
	}
	after := a.CPULevel&a.CPUMask != 0
	if after && !before {
		a.CPU.AssertExtInt()
	} else if !after && before {
		a.CPU.ReleaseExtInt()
	}
}

func setBit32(reg *uint32, bit int, level int) {
	if level != 0 {
		*reg |= 1 << uint(bit)
	} else {
		*reg &^= 1 << uint(bit)
	}
}

// Read/Write implement the MMIO device contract (spec section 6):
// CPULevel, CPUMask, Slot, SlotMask, DMA, DMAMask as six consecutive
// 32-bit registers, following original_source's amic.cpp layout.
func (a *AMIC) Read(offset uint32, size int) uint32 {
	return iobus.ComposeBE(a.readByte, offset, size)
}

func (a *AMIC) Write(offset uint32, size int, value uint32) {
	iobus.SplitBE(a.writeByte, offset, size, value)
}

func (a *AMIC) regPtr(off uint32) *uint32 {
	switch off / 4 {
	case 0:
		return &a.CPULevel
	case 1:
		return &a.CPUMask
	case 2:
		return &a.Slot
	case 3:
		return &a.SlotMask
	case 4:
		return &a.DMA
	case 5:
		return &a.DMAMask
	}
	return nil
}

func (a *AMIC) readByte(off uint32) uint8 {
	reg := a.regPtr(off)
	if reg == nil {
		return 0
	}
	return byte(*reg >> uint(8*(3-off%4)))
}

// writeByte stores the byte then recomputes the slot/DMA cascade
// into CPULevel exactly as AckInt does, so a direct register poke
// and a device-driven interrupt leave the same state.
func (a *AMIC) writeByte(off uint32, v uint8) {
	reg := a.regPtr(off)
	if reg == nil {
		return
	}
	shift := uint(8 * (3 - off%4))
	before := a.CPULevel&a.CPUMask != 0
	*reg = (*reg &^ (0xFF << shift)) | uint32(v)<<shift
	setBit32(&a.CPULevel, amicBitSlot, boolToInt(a.Slot&a.SlotMask != 0))
	setBit32(&a.CPULevel, amicBitDMA, boolToInt(a.DMA&a.DMAMask != 0))
	after := a.CPULevel&a.CPUMask != 0
	if after && !before {
		a.CPU.AssertExtInt()
	} else if !after && before {
		a.CPU.ReleaseExtInt()
	}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
