package dbdma

import (
	"testing"

	"github.com/dingusdev/dingusppc-sub001/internal/bus"
	"github.com/dingusdev/dingusppc-sub001/physmap"
)

type recordingSink struct {
	got    []byte
	status uint16
}

func (s *recordingSink) PushData(b []byte) (int, uint16) {
	s.got = append(s.got, b...)
	return len(b), s.status
}

func newMem(t *testing.T) *physmap.Map {
	t.Helper()
	m := physmap.New()
	ram := make([]byte, 0x10000)
	if err := m.AddRegion(&physmap.Region{Name: "ram", Start: 0, End: 0xFFFF, Kind: physmap.RAM, Backing: ram}); err != nil {
		t.Fatal(err)
	}
	return m
}

func writeDescriptor(m *physmap.Map, addr uint32, cmd Command, key uint8, intSel, branchSel, waitSel Select, reqCount uint16, address, cmdDep uint32) {
	raw := make([]byte, descriptorSize)
	ckf := uint16(cmd) | uint16(key)<<4 | uint16(intSel)<<6 | uint16(branchSel)<<8 | uint16(waitSel)<<10
	bus.StoreLE16(raw, 0, ckf)
	bus.StoreLE16(raw, 2, reqCount)
	bus.StoreLE32(raw, 4, address)
	bus.StoreLE32(raw, 8, cmdDep)
	for i, b := range raw {
		m.Write8(addr+uint32(i), b)
	}
}

// Scenario 6: OUTPUT_LAST moving 16 bytes then STOP.
func TestOutputLastThenStop(t *testing.T) {
	m := newMem(t)
	for i := 0; i < 16; i++ {
		m.Write8(0x2000+uint32(i), uint8(i))
	}
	writeDescriptor(m, 0x100, CmdOutputLast, 0, SelAlways, SelNever, SelNever, 16, 0x2000, 0)
	writeDescriptor(m, 0x110, CmdStop, 0, SelNever, SelNever, SelNever, 0, 0, 0)

	sink := &recordingSink{status: 0xAB}
	irqs := 0
	ch := &Channel{Name: "test", Mem: m, Sink: sink, OnIRQ: func() { irqs++ }}
	ch.Start(0x100)

	if len(sink.got) != 16 {
		t.Fatalf("sink got %d bytes, want 16", len(sink.got))
	}
	for i, b := range sink.got {
		if b != uint8(i) {
			t.Fatalf("byte %d = %#x, want %#x", i, b, i)
		}
	}
	if irqs != 1 {
		t.Fatalf("irqs = %d, want 1", irqs)
	}
	resCount := bus.LoadLE16(readDescriptorBytes(m, 0x100), 12)
	if resCount != 0 {
		t.Fatalf("res_count = %d, want 0", resCount)
	}
	xferStatus := bus.LoadLE16(readDescriptorBytes(m, 0x100), 14)
	if xferStatus != 0xAB {
		t.Fatalf("xfer_status = %#x, want 0xAB", xferStatus)
	}
}

func readDescriptorBytes(m *physmap.Map, addr uint32) []byte {
	b := make([]byte, descriptorSize)
	for i := range b {
		b[i] = byte(m.Read8(addr + uint32(i)))
	}
	return b
}
