// Package iobus implements the per-controller MMIO demultiplexer that
// Grand Central/Heathrow/O'Hare/AMIC each use to split one contiguous
// register window into subdevice windows (spec 4.5, 4.6).
//
// Grounded on physmap's own range-dispatch design applied one level
// down: instead of a sorted region list over the whole physical
// space, a small offset-sorted handler table built once every
// subdevice has registered (the controller's own "post_init" step,
// mirroring original_source/grandcentral.cpp's read/write switch
// generalized away from a hardcoded C++ switch).
package iobus

import "sort"

// Handler answers reads/writes inside its registered window, offsets
// relative to the window's own start.
type Handler interface {
	Read(offset uint32, size int) uint32
	Write(offset uint32, size int, value uint32)
}

type window struct {
	start, end uint32
	h          Handler
}

// Bus is one controller's demultiplexed MMIO window.
type Bus struct {
	windows []window
	sealed  bool
}

func New() *Bus { return &Bus{} }

// Register adds a subdevice window. Must be called before Seal;
// windows may not overlap.
func (b *Bus) Register(start, size uint32, h Handler) {
	if b.sealed {
		panic("iobus: Register after Seal")
	}
	b.windows = append(b.windows, window{start: start, end: start + size, h: h})
}

// Seal sorts the registered windows for binary-search dispatch,
// mirroring the controller's post_init cross-reference resolution
// (spec's device lifecycle).
func (b *Bus) Seal() {
	sort.Slice(b.windows, func(i, j int) bool { return b.windows[i].start < b.windows[j].start })
	b.sealed = true
}

func (b *Bus) lookup(addr uint32) (window, bool) {
	i := sort.Search(len(b.windows), func(i int) bool { return b.windows[i].end > addr })
	if i < len(b.windows) && addr >= b.windows[i].start {
		return b.windows[i], true
	}
	return window{}, false
}

func (b *Bus) Read(addr uint32, size int) uint32 {
	w, ok := b.lookup(addr)
	if !ok {
		return 0xFFFFFFFF >> uint(32-8*size)
	}
	return w.h.Read(addr-w.start, size)
}

func (b *Bus) Write(addr uint32, size int, value uint32) {
	w, ok := b.lookup(addr)
	if !ok {
		return
	}
	w.h.Write(addr-w.start, size, value)
}

// ComposeBE assembles size (1, 2, or 4) consecutive bytes, fetched
// one at a time from get starting at offset, into a big-endian
// uint32 — the same shape spec section 6's MMIO contract specifies
// for a device register, built once here instead of in every device
// package that has a byte-wide register file.
func ComposeBE(get func(off uint32) uint8, offset uint32, size int) uint32 {
	var v uint32
	for i := 0; i < size; i++ {
		v = v<<8 | uint32(get(offset+uint32(i)))
	}
	return v
}

// SplitBE is ComposeBE's inverse: it delivers the size bytes of value,
// big-endian, one at a time to set starting at offset.
func SplitBE(set func(off uint32, b uint8), offset uint32, size int, value uint32) {
	for i := 0; i < size; i++ {
		shift := uint(8 * (size - 1 - i))
		set(offset+uint32(i), uint8(value>>shift))
	}
}
