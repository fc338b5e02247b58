// Package bus holds the explicit byte-order load/store helpers used
// at every boundary between guest memory (big-endian) and the DBDMA
// descriptor format (little-endian).
package bus

import "encoding/binary"

// LoadBE16 reads a big-endian 16-bit value at b[off:].
func LoadBE16(b []byte, off int) uint16 { return binary.BigEndian.Uint16(b[off:]) }

// LoadBE32 reads a big-endian 32-bit value at b[off:].
func LoadBE32(b []byte, off int) uint32 { return binary.BigEndian.Uint32(b[off:]) }

// StoreBE16 writes v big-endian at b[off:].
func StoreBE16(b []byte, off int, v uint16) { binary.BigEndian.PutUint16(b[off:], v) }

// StoreBE32 writes v big-endian at b[off:].
func StoreBE32(b []byte, off int, v uint32) { binary.BigEndian.PutUint32(b[off:], v) }

// LoadLE16 reads a little-endian 16-bit value at b[off:].
func LoadLE16(b []byte, off int) uint16 { return binary.LittleEndian.Uint16(b[off:]) }

// LoadLE32 reads a little-endian 32-bit value at b[off:].
func LoadLE32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off:]) }

// StoreLE16 writes v little-endian at b[off:].
func StoreLE16(b []byte, off int, v uint16) { binary.LittleEndian.PutUint16(b[off:], v) }

// StoreLE32 writes v little-endian at b[off:].
func StoreLE32(b []byte, off int, v uint32) { binary.LittleEndian.PutUint32(b[off:], v) }

// ReadSized reads a big-endian value of the given size (1, 2, or 4
// bytes) from b[off:] into the low bits of a uint32.
func ReadSized(b []byte, off, size int) uint32 {
	switch size {
	case 1:
		return uint32(b[off])
	case 2:
		return uint32(LoadBE16(b, off))
	default:
		return LoadBE32(b, off)
	}
}

// WriteSized writes the low size bytes of v, big-endian, to b[off:].
func WriteSized(b []byte, off, size int, v uint32) {
	switch size {
	case 1:
		b[off] = byte(v)
	case 2:
		StoreBE16(b, off, uint16(v))
	default:
		StoreBE32(b, off, v)
	}
}
