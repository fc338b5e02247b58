package iobus

import "testing"

type fakeDevice struct {
	reads  []uint32
	stored uint32
}

func (f *fakeDevice) Read(offset uint32, size int) uint32 {
	f.reads = append(f.reads, offset)
	return f.stored
}
func (f *fakeDevice) Write(offset uint32, size int, value uint32) { f.stored = value }

func TestDispatchByWindow(t *testing.T) {
	b := New()
	devA := &fakeDevice{stored: 0xAA}
	devB := &fakeDevice{stored: 0xBB}
	b.Register(0x1000, 0x100, devA)
	b.Register(0x2000, 0x100, devB)
	b.Seal()

	if v := b.Read(0x1010, 1); v != 0xAA {
		t.Fatalf("got %#x, want 0xAA", v)
	}
	if v := b.Read(0x2020, 1); v != 0xBB {
		t.Fatalf("got %#x, want 0xBB", v)
	}
	if devA.reads[0] != 0x10 {
		t.Fatalf("offset = %#x, want 0x10 (relative to window start)", devA.reads[0])
	}
}

func TestUnmappedReadAllOnes(t *testing.T) {
	b := New()
	b.Seal()
	if v := b.Read(0x5000, 2); v != 0xFFFF {
		t.Fatalf("got %#x, want 0xFFFF", v)
	}
}
