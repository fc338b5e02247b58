package machine

import (
	"fmt"
	"log/slog"

	"github.com/dingusdev/dingusppc-sub001/iobus"
	"github.com/dingusdev/dingusppc-sub001/physmap"
)

// Physical address map (spec section 6). RAM/ROM/MIRROR regions are
// added directly from Config; everything below is MMIO and goes
// through an iobus.Bus demultiplexer except the handful of stub
// regions that have no documented behavior beyond "exists".
const (
	amicBase, amicSize               = 0x50F00000, 0x00040000
	hmcBase, hmcSize                 = 0x50F40000, 0x00010000
	cpuIDBase, cpuIDSize             = 0x5FFFFFFC, 0x00000004
	pciMemBase, pciMemSize           = 0x80000000, 0x7E000000
	grackleAddrBase, grackleAddrSize = 0xFEC00000, 0x00200000
	grackleDataBase, grackleDataSize = 0xFEE00000, 0x00100000
)

// Sub-offsets within the AMIC window. Real Old-World hardware spreads
// these ASICs across several physically distinct register pages; the
// physical map's single "AMIC registers" entry (spec section 6)
// collapses them into one iobus-demultiplexed window the same way
// iobus itself demultiplexes a controller's own register space (spec
// 4.5/4.6, 3.10).
const (
	offVIACuda    = 0x00000
	offIntc       = 0x00200
	offSCC        = 0x01000
	offSWIM3      = 0x01100
	offMESH       = 0x01200
	offBigMac     = 0x01300
	offCRTC       = 0x01400
	offDMABase    = 0x02000
	dmaChannelSpan = 0x100
)

// buildIOMap wires every peripheral's register file into the AMIC
// MMIO window and adds the documented stub regions, so a guest load
// or store actually reaches a device instead of stopping at physmap's
// unmapped-address warning (spec 4.1's MMU->physmap->device path).
func (m *Machine) buildIOMap() error {
	amic := iobus.New()
	amic.Register(offVIACuda, 16, m.VIA)
	if h, ok := m.Intc.(iobus.Handler); ok {
		amic.Register(offIntc, 0x20, h)
	} else {
		slog.Warn("machine: interrupt controller does not expose an MMIO register file")
	}
	amic.Register(offSCC, 4, m.Serial)
	amic.Register(offSWIM3, 16, m.Floppy)
	amic.Register(offMESH, 16, m.SCSI)
	amic.Register(offBigMac, 16, m.Ether)
	amic.Register(offCRTC, 16, m.Video)

	dmaOrder := []string{"floppy", "mesh", "enet_tx", "enet_rx", "scca_tx", "scca_rx", "sccb_tx", "sccb_rx"}
	for i, name := range dmaOrder {
		ch, ok := m.DMA[name]
		if !ok {
			continue
		}
		amic.Register(uint32(offDMABase+i*dmaChannelSpan), dmaChannelSpan, ch)
	}
	amic.Seal()

	if err := m.Mem.AddRegion(&physmap.Region{Name: "amic", Start: amicBase, End: amicBase + amicSize - 1, Kind: physmap.MMIO, Handler: amic}); err != nil {
		return fmt.Errorf("machine: add amic region: %w", err)
	}

	stubs := []struct {
		name        string
		base, size  uint32
		handler physmap.Handler
	}{
		{"hmc", hmcBase, hmcSize, stubHandler{}},
		{"cpu_id", cpuIDBase, cpuIDSize, fixedValueHandler(cpuMachineID)},
		{"pci_mem", pciMemBase, pciMemSize, stubHandler{}},
		{"grackle_config_addr", grackleAddrBase, grackleAddrSize, &grackleConfigAddr{}},
		{"grackle_config_data", grackleDataBase, grackleDataSize, stubHandler{}},
	}
	for _, s := range stubs {
		if err := m.Mem.AddRegion(&physmap.Region{Name: s.name, Start: s.base, End: s.base + s.size - 1, Kind: physmap.MMIO, Handler: s.handler}); err != nil {
			return fmt.Errorf("machine: add %s region: %w", s.name, err)
		}
	}
	return nil
}

// cpuMachineID is an arbitrary but fixed machine-ID value for the
// 4-byte CPU ID/machine ID region (spec section 6); nothing in
// SPEC_FULL.md names a specific value, and no guest code this repo
// runs reads it for a real decision, so a stable placeholder is
// enough to keep the address populated.
const cpuMachineID uint32 = 0xBABE0001

// fixedValueHandler answers every read with the same value and
// ignores writes, for regions the map names but that carry no
// further documented behavior.
type fixedValueHandler uint32

func (h fixedValueHandler) Read(offset uint32, size int) uint32 {
	return iobus.ComposeBE(func(off uint32) uint8 {
		if off > 3 {
			return 0
		}
		return byte(uint32(h) >> uint(8*(3-off)))
	}, offset, size)
}
func (h fixedValueHandler) Write(offset uint32, size int, value uint32) {}

// stubHandler answers reads with all-ones (physmap's own convention
// for "nothing here") and discards writes; used for regions spec
// section 6 lists in the address map without specifying behavior
// (HMC, PCI memory, Grackle CONFIG_DATA).
type stubHandler struct{}

func (stubHandler) Read(offset uint32, size int) uint32 {
	switch size {
	case 1:
		return 0xFF
	case 2:
		return 0xFFFF
	default:
		return 0xFFFFFFFF
	}
}
func (stubHandler) Write(offset uint32, size int, value uint32) {}

// grackleConfigAddr latches the last CONFIG_ADDR write (real PCI
// config-cycle addressing); no PCI devices are enumerated behind it,
// so CONFIG_DATA reads are handled by stubHandler rather than this
// type dereferencing the latch into an actual config space.
type grackleConfigAddr struct{ v uint32 }

func (g *grackleConfigAddr) Read(offset uint32, size int) uint32 {
	return iobus.ComposeBE(func(off uint32) uint8 { return byte(g.v >> uint(8*(3-off))) }, offset, size)
}
func (g *grackleConfigAddr) Write(offset uint32, size int, value uint32) {
	iobus.SplitBE(func(off uint32, b uint8) {
		shift := uint(8 * (3 - off))
		g.v = (g.v &^ (0xFF << shift)) | uint32(b)<<shift
	}, offset, size, value)
}
