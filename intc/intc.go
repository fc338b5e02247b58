// Package intc implements the cascaded interrupt controller
// hierarchy (Grand Central, Heathrow/O'Hare, AMIC) that latches
// device interrupt sources and asserts the CPU's external interrupt
// pin (spec 4.5).
//
// Grounded on the teacher's emu/sys_channel status-bit bookkeeping
// and emu/core.PostExtIrq CPU-assert call shape.
package intc

// CPUPin is the narrow contract a controller needs on the CPU: raise
// or lower the external interrupt input (spec 4.1 assert_ext_int/
// release_ext_int).
type CPUPin interface {
	AssertExtInt()
	ReleaseExtInt()
}

// Source is a closed interrupt source id (spec section 3). Each
// controller maps sources to its own bit positions; the mapping is
// local to the controller, so the same Source constant can mean a
// different bit in GrandCentral vs Heathrow.
type Source int

const (
	SrcSCSICurio Source = iota
	SrcSCSIMesh
	SrcMACE
	SrcSCCA
	SrcSCCB
	SrcDAVBus
	SrcVIACuda
	SrcVIA2
	SrcSWIM3
	SrcNMI
	SrcVBL
	SrcSlot0
	SrcSlot1
	SrcSlot2
	SrcSlot3
	SrcSlot4
	SrcSlot5
	SrcDMACurio
	SrcDMAFloppy
	SrcDMAEnetTx
	SrcDMAEnetRx
	SrcDMASCCATx
	SrcDMASCCARx
	SrcDMASCCBTx
	SrcDMASCCBRx
	SrcDMASoundOut
	SrcDMAMesh
)

// IRQID is the opaque handle register_source returns (spec 4.5): a
// controller-local bit index.
type IRQID int

// Controller is the contract every concrete interrupt controller
// satisfies (spec 4.5).
type Controller interface {
	RegisterSource(src Source) IRQID
	AckInt(id IRQID, level int)
	AckDMAInt(id IRQID, level int)
}
