package nvram

import "testing"

func TestPartitionRoundTrip(t *testing.T) {
	image := make([]byte, 256)
	parts := []Partition{
		{Header: PartitionHeader{Signature: SigConfig, Name: "common"}, Payload: []byte("hello=world")},
		{Header: PartitionHeader{Signature: SigFreeSpace, Name: "free"}, Payload: make([]byte, 64)},
	}
	n := Write(image, parts)
	if n == 0 {
		t.Fatalf("Write wrote 0 bytes")
	}

	got, err := Parse(image[:n])
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("Parse got %d partitions, want 2", len(got))
	}
	if got[0].Header.Name != "common" {
		t.Fatalf("partition 0 name = %q", got[0].Header.Name)
	}
	if string(got[0].Payload[:11]) != "hello=world" {
		t.Fatalf("partition 0 payload = %q", got[0].Payload[:11])
	}
	if !ValidateChecksum(image) {
		t.Fatalf("checksum did not validate")
	}
}

func TestChecksumDetectsCorruption(t *testing.T) {
	image := make([]byte, 64)
	Write(image, []Partition{{Header: PartitionHeader{Signature: SigSystem, Name: "sys"}, Payload: make([]byte, 32)}})
	if !ValidateChecksum(image) {
		t.Fatalf("checksum should validate before corruption")
	}
	image[5] ^= 0xFF
	if ValidateChecksum(image) {
		t.Fatalf("checksum should fail after corruption")
	}
}

func TestAppleNVRAMRoundTrip(t *testing.T) {
	image := make([]byte, 64)
	a := AppleNVRAM{Generation: 3, Data: make([]byte, 56)}
	a.Data[0] = 0xAB
	WriteApple(image, a)
	if !ValidateAppleChecksum(image) {
		t.Fatalf("apple checksum did not validate")
	}
	got := ParseApple(image)
	if got.Generation != 3 || got.Data[0] != 0xAB {
		t.Fatalf("got %+v", got)
	}
	image[10] ^= 0xFF
	if ValidateAppleChecksum(image) {
		t.Fatalf("checksum should fail after corruption")
	}
}
