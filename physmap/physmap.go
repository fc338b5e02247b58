// Package physmap implements the physical address map: a sorted list
// of regions (RAM, ROM, MMIO, MIRROR) dispatching byte-addressable
// big-endian loads and stores.
package physmap

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/dingusdev/dingusppc-sub001/internal/bus"
)

// Kind distinguishes how a Region backs its address range.
type Kind int

const (
	RAM Kind = iota
	ROM
	MMIO
	MIRROR
)

// Handler is the MMIO device contract from spec section 6: a load of
// size bytes (1, 2 or 4) at offset from the region's start, and the
// matching store.
type Handler interface {
	Read(offset uint32, size int) uint32
	Write(offset uint32, size int, value uint32)
}

// Region describes one entry in the address map.
type Region struct {
	Name    string
	Start   uint32
	End     uint32 // inclusive
	Kind    Kind
	Backing []byte  // RAM/ROM
	Handler Handler // MMIO
	Mirror  uint32  // MIRROR: translated base address
}

func (r *Region) contains(pa uint32) bool { return pa >= r.Start && pa <= r.End }

// Map owns every region and answers point queries.
type Map struct {
	regions []*Region
}

// New returns an empty map.
func New() *Map { return &Map{} }

// AddRegion inserts r, keeping the region list sorted by start
// address. Overlap with an existing region is a construction-time
// error (spec section 7: fatal-by-design conditions exist only at
// construction).
func (m *Map) AddRegion(r *Region) error {
	for _, existing := range m.regions {
		if r.Start <= existing.End && existing.Start <= r.End {
			return fmt.Errorf("physmap: region %q overlaps %q", r.Name, existing.Name)
		}
	}
	m.regions = append(m.regions, r)
	sort.Slice(m.regions, func(i, j int) bool { return m.regions[i].Start < m.regions[j].Start })
	return nil
}

// Lookup returns the region owning pa, or nil.
func (m *Map) Lookup(pa uint32) *Region {
	lo, hi := 0, len(m.regions)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		r := m.regions[mid]
		switch {
		case pa < r.Start:
			hi = mid - 1
		case pa > r.End:
			lo = mid + 1
		default:
			return r
		}
	}
	return nil
}

func (m *Map) resolve(r *Region, pa uint32) (*Region, uint32) {
	for r != nil && r.Kind == MIRROR {
		target := r.Mirror + (pa - r.Start)
		r = m.Lookup(target)
		pa = target
	}
	return r, pa
}

// Read8/16/32 perform an aligned access of the given width. Unmapped
// addresses return all-ones (spec section 7).
func (m *Map) Read8(pa uint32) uint8  { return uint8(m.read(pa, 1)) }
func (m *Map) Read16(pa uint32) uint16 { return uint16(m.read(pa, 2)) }
func (m *Map) Read32(pa uint32) uint32 { return m.read(pa, 4) }

func (m *Map) read(pa uint32, size int) uint32 {
	r := m.Lookup(pa)
	r, pa = m.resolve(r, pa)
	if r == nil {
		slog.Warn("physmap: read from unmapped address", slog.Uint64("addr", uint64(pa)))
		return onesMask(size)
	}
	off := pa - r.Start
	// Split unaligned multi-byte loads that cross out of this region
	// (spec 4.3 "Alignment"): read byte-by-byte and assemble BE.
	if int(off)+size > len(regionSpan(r))+1 && r.Kind != MMIO {
		// fallthrough handled below by generic per-region bounds check
	}
	switch r.Kind {
	case RAM, ROM:
		return readBacking(r, off, size, m, pa)
	case MMIO:
		return r.Handler.Read(off, size)
	}
	return onesMask(size)
}

func regionSpan(r *Region) []byte { return r.Backing }

// readBacking reads size bytes from r's backing store starting at
// off, splitting into a second region's access if the access runs
// past the end of r (spec 4.3).
func readBacking(r *Region, off uint32, size int, m *Map, pa uint32) uint32 {
	end := int(off) + size
	if end <= len(r.Backing) {
		return bus.ReadSized(r.Backing, int(off), size)
	}
	// Crosses into the next region: assemble byte by byte.
	var v uint32
	for i := 0; i < size; i++ {
		v = (v << 8) | uint32(m.Read8(pa+uint32(i)))
	}
	return v
}

func (m *Map) Write8(pa uint32, v uint8)   { m.write(pa, 1, uint32(v)) }
func (m *Map) Write16(pa uint32, v uint16) { m.write(pa, 2, uint32(v)) }
func (m *Map) Write32(pa uint32, v uint32) { m.write(pa, 4, v) }

func (m *Map) write(pa uint32, size int, v uint32) {
	r := m.Lookup(pa)
	r, pa = m.resolve(r, pa)
	if r == nil {
		slog.Warn("physmap: write to unmapped address", slog.Uint64("addr", uint64(pa)))
		return
	}
	off := pa - r.Start
	switch r.Kind {
	case RAM:
		writeBacking(r, off, size, v, m, pa)
	case ROM:
		slog.Warn("physmap: write to ROM ignored", slog.String("region", r.Name), slog.Uint64("offset", uint64(off)))
	case MMIO:
		r.Handler.Write(off, size, v)
	}
}

func writeBacking(r *Region, off uint32, size int, v uint32, m *Map, pa uint32) {
	end := int(off) + size
	if end <= len(r.Backing) {
		bus.WriteSized(r.Backing, int(off), size, v)
		return
	}
	for i := 0; i < size; i++ {
		shift := uint((size - 1 - i) * 8)
		m.Write8(pa+uint32(i), uint8(v>>shift))
	}
}

func onesMask(size int) uint32 {
	switch size {
	case 1:
		return 0xFF
	case 2:
		return 0xFFFF
	default:
		return 0xFFFFFFFF
	}
}
