// Package nvram implements Open Firmware / CHRP NVRAM partition
// encode/decode over a caller-owned byte slice (spec 4.9). No file
// I/O: persistence is the host's problem, explicitly out of scope.
package nvram

import "github.com/dingusdev/dingusppc-sub001/internal/bus"

// Partition signature bytes, matching original_source's ofnvram.cpp.
const (
	SigFreeSpace = 0x7F
	SigConfig    = 0x70
	SigSystem    = 0x71
	SigMacOS     = 0x80
	SigCommonCfg = 0xFF
)

const headerSize = 16

// PartitionHeader is the 16-byte CHRP partition record: signature,
// checksum, length (in 16-byte blocks), name, free byte.
type PartitionHeader struct {
	Signature uint8
	Checksum  uint8
	Len       uint16 // in 16-byte blocks, including the header
	Name      string // 12 bytes, NUL-padded
}

func checksum(raw []byte) uint8 {
	// CHRP partition checksum: sum of header bytes excluding the
	// checksum byte itself, taken mod 256, with carry folded in —
	// matches the original implementation's running-sum-with-carry.
	var sum uint16
	sum = uint16(raw[0])
	for i := 2; i < headerSize; i++ {
		sum += uint16(raw[i])
		if sum > 0xFF {
			sum = (sum & 0xFF) + 1
		}
	}
	return uint8(sum)
}

func decodeHeader(raw []byte) PartitionHeader {
	h := PartitionHeader{
		Signature: raw[0],
		Checksum:  raw[1],
		Len:       bus.LoadBE16(raw, 2),
	}
	end := 4
	for end < 16 && raw[end] != 0 {
		end++
	}
	h.Name = string(raw[4:end])
	return h
}

func encodeHeader(h PartitionHeader) []byte {
	raw := make([]byte, headerSize)
	raw[0] = h.Signature
	bus.StoreBE16(raw, 2, h.Len)
	copy(raw[4:16], h.Name)
	raw[1] = checksum(raw)
	return raw
}

// Partition is a decoded NVRAM partition: header plus its payload
// (Len*16 - headerSize bytes).
type Partition struct {
	Header  PartitionHeader
	Payload []byte
}

// Parse walks a raw NVRAM image, splitting it into partitions by
// walking each header's Len field forward, stopping at the image end
// or a free-space partition that consumes the remainder.
func Parse(image []byte) ([]Partition, error) {
	var parts []Partition
	off := 0
	for off+headerSize <= len(image) {
		h := decodeHeader(image[off:])
		if h.Len == 0 {
			break
		}
		size := int(h.Len) * 16
		if off+size > len(image) {
			size = len(image) - off
		}
		parts = append(parts, Partition{
			Header:  h,
			Payload: image[off+headerSize : off+size],
		})
		off += size
	}
	return parts, nil
}

// Write serializes partitions back into image, overwriting it in
// place. Callers are responsible for sizing image to fit; Write
// returns the number of bytes used.
func Write(image []byte, parts []Partition) int {
	off := 0
	for _, p := range parts {
		h := p.Header
		h.Len = uint16((headerSize + len(p.Payload) + 15) / 16)
		raw := encodeHeader(h)
		copy(image[off:], raw)
		copy(image[off+headerSize:], p.Payload)
		off += int(h.Len) * 16
	}
	return off
}

// ValidateChecksum reports whether a partition header's stored
// checksum matches its computed value.
func ValidateChecksum(raw []byte) bool {
	return raw[1] == checksum(raw)
}
