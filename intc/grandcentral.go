package intc

import (
	"log/slog"

	"github.com/dingusdev/dingusppc-sub001/iobus"
)

// grandCentralBits assigns each Source to one of the 32 IFR/IER bits
// (spec 4.5: "bit layout assigns SCSI, MACE, SCCA/SCCB, DAVBUS, VIA,
// SWIM3, NMI, and nine external PCI/slot lines; DMA channels occupy
// the low eleven bits"), following the device/DMA register-space
// split documented in original_source's grandcentral.cpp.
var grandCentralBits = map[Source]int{
	SrcDMACurio:    0,
	SrcDMAFloppy:   1,
	SrcDMAEnetTx:   2,
	SrcDMAEnetRx:   3,
	SrcDMASCCATx:   4,
	SrcDMASCCARx:   5,
	SrcDMASCCBTx:   6,
	SrcDMASCCBRx:   7,
	SrcDMASoundOut: 8,
	SrcDMAMesh:     9,
	SrcSCSICurio:   11,
	SrcSCSIMesh:    12,
	SrcMACE:        13,
	SrcSCCA:        15,
	SrcSCCB:        16,
	SrcDAVBus:      17,
	SrcVIACuda:     18,
	SrcSWIM3:       19,
	SrcNMI:         20,
	SrcSlot0:       21,
	SrcSlot1:       22,
	SrcSlot2:       23,
	SrcSlot3:       24,
	SrcSlot4:       25,
	SrcSlot5:       26,
	SrcVBL:         27,
}

// GrandCentral is a 32-bit IFR/IER cascaded controller (spec 4.5).
type GrandCentral struct {
	IFR, IER uint32
	CPU      CPUPin
}

// NewGrandCentral returns a controller wired to assert/release cpu's
// external interrupt pin as IFR&IER transitions between zero and
// nonzero.
func NewGrandCentral(cpu CPUPin) *GrandCentral {
	return &GrandCentral{CPU: cpu}
}

func (g *GrandCentral) RegisterSource(src Source) IRQID {
	bit, ok := grandCentralBits[src]
	if !ok {
		slog.Warn("grandcentral: unmapped interrupt source", slog.Int("source", int(src)))
		return -1
	}
	return IRQID(bit)
}

func (g *GrandCentral) AckInt(id IRQID, level int) {
	g.setBit(id, level)
}

func (g *GrandCentral) AckDMAInt(id IRQID, level int) {
	g.setBit(id, level)
}

func (g *GrandCentral) setBit(id IRQID, level int) {
	if id < 0 {
		return
	}
	before := g.IFR&g.IER != 0
	if level != 0 {
		g.IFR |= 1 << uint(id)
	} else {
		g.IFR &^= 1 << uint(id)
	}
	g.reevaluate(before)
}

func (g *GrandCentral) reevaluate(before bool) {
	after := g.IFR&g.IER != 0
	if after && !before {
		g.CPU.AssertExtInt()
	} else if !after && before {
		g.CPU.ReleaseExtInt()
	}
}

// ReadIER / WriteIER / ReadIFR expose the MMIO register pair so an
// iobus dispatcher can map them at their documented offsets.
func (g *GrandCentral) ReadIER() uint32 { return g.IER }
func (g *GrandCentral) WriteIER(v uint32) {
	before := g.IFR&g.IER != 0
	g.IER = v
	g.reevaluate(before)
}
func (g *GrandCentral) ReadIFR() uint32 { return g.IFR }

// Read/Write implement the MMIO device contract (spec section 6):
// IFR at offset 0 (read-only, events clear as their source acks), IER
// at offset 4.
func (g *GrandCentral) Read(offset uint32, size int) uint32 {
	return iobus.ComposeBE(g.readByte, offset, size)
}

func (g *GrandCentral) Write(offset uint32, size int, value uint32) {
	iobus.SplitBE(g.writeByte, offset, size, value)
}

func (g *GrandCentral) readByte(off uint32) uint8 {
	switch {
	case off < 4:
		return byte(g.IFR >> uint(8*(3-off)))
	case off < 8:
		return byte(g.IER >> uint(8*(3-(off-4))))
	}
	return 0
}

func (g *GrandCentral) writeByte(off uint32, b uint8) {
	if off < 4 || off >= 8 {
		return
	}
	shift := uint(8 * (3 - (off - 4)))
	g.WriteIER((g.IER &^ (0xFF << shift)) | uint32(b)<<shift)
}
