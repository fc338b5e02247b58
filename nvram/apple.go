package nvram

import "github.com/dingusdev/dingusppc-sub001/internal/bus"

// Apple's older NVRAM format (pre-CHRP, Old-World ROM) lays out a
// single fixed partition: a name/value byte-code interpreter's
// generation counter, a checksum, then raw PRAM contents. Grounded on
// original_source/devices/common/ofnvram.cpp's Apple-format branch.
const (
	appleHeaderSize = 8
	appleChecksumOff = 6
)

// AppleNVRAM is the decoded Old-World layout.
type AppleNVRAM struct {
	Generation uint8
	Data       []byte // remainder of the image after the 8-byte header
}

// ParseApple decodes an Old-World NVRAM image.
func ParseApple(image []byte) AppleNVRAM {
	return AppleNVRAM{
		Generation: image[0],
		Data:       append([]byte(nil), image[appleHeaderSize:]...),
	}
}

// appleChecksum mirrors the original's additive checksum over the
// generation byte and the data that follows it, stored as a 16-bit
// big-endian value at offset 6.
func appleChecksum(generation uint8, data []byte) uint16 {
	sum := uint16(generation)
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}

// WriteApple serializes an AppleNVRAM back into image, which must be
// at least appleHeaderSize+len(a.Data) bytes.
func WriteApple(image []byte, a AppleNVRAM) {
	image[0] = a.Generation
	for i := 1; i < appleHeaderSize; i++ {
		image[i] = 0
	}
	copy(image[appleHeaderSize:], a.Data)
	cksum := appleChecksum(a.Generation, a.Data)
	bus.StoreBE16(image, appleChecksumOff, cksum)
}

// ValidateAppleChecksum reports whether the stored checksum in an
// Old-World image matches the computed value.
func ValidateAppleChecksum(image []byte) bool {
	a := ParseApple(image)
	got := bus.LoadBE16(image, appleChecksumOff)
	return got == appleChecksum(a.Generation, a.Data)
}
