package physmap

import "testing"

func TestRAMRoundTrip(t *testing.T) {
	m := New()
	if err := m.AddRegion(&Region{Name: "ram", Start: 0, End: 0xFFFF, Kind: RAM, Backing: make([]byte, 0x10000)}); err != nil {
		t.Fatal(err)
	}
	m.Write32(0x100, 0xDEADBEEF)
	if got := m.Read32(0x100); got != 0xDEADBEEF {
		t.Fatalf("got %#x", got)
	}
	if b := m.Read8(0x100); b != 0xDE {
		t.Fatalf("big-endian byte 0 = %#x, want 0xDE", b)
	}
}

func TestROMIgnoresWrites(t *testing.T) {
	m := New()
	rom := make([]byte, 0x10000)
	rom[0] = 0xAA
	if err := m.AddRegion(&Region{Name: "rom", Start: 0, End: 0xFFFF, Kind: ROM, Backing: rom}); err != nil {
		t.Fatal(err)
	}
	m.Write8(0, 0x55)
	if got := m.Read8(0); got != 0xAA {
		t.Fatalf("ROM write was not ignored, got %#x", got)
	}
}

func TestUnmappedReadsAllOnes(t *testing.T) {
	m := New()
	if got := m.Read32(0x1234); got != 0xFFFFFFFF {
		t.Fatalf("got %#x", got)
	}
}

type stubDevice struct{ regs [4]uint32 }

func (s *stubDevice) Read(offset uint32, size int) uint32  { return s.regs[offset/4] }
func (s *stubDevice) Write(offset uint32, size int, v uint32) { s.regs[offset/4] = v }

func TestMMIODispatch(t *testing.T) {
	m := New()
	dev := &stubDevice{}
	if err := m.AddRegion(&Region{Name: "dev", Start: 0x1000, End: 0x100F, Kind: MMIO, Handler: dev}); err != nil {
		t.Fatal(err)
	}
	m.Write32(0x1004, 42)
	if got := m.Read32(0x1004); got != 42 {
		t.Fatalf("got %d", got)
	}
}

func TestMirrorRegion(t *testing.T) {
	m := New()
	rom := make([]byte, 0x1000)
	rom[0] = 0x4B
	if err := m.AddRegion(&Region{Name: "rom", Start: 0x1000, End: 0x1FFF, Kind: ROM, Backing: rom}); err != nil {
		t.Fatal(err)
	}
	if err := m.AddRegion(&Region{Name: "mirror", Start: 0x4000, End: 0x4FFF, Kind: MIRROR, Mirror: 0x1000}); err != nil {
		t.Fatal(err)
	}
	if got := m.Read8(0x4000); got != 0x4B {
		t.Fatalf("got %#x", got)
	}
}
