package machine

import (
	"testing"

	"github.com/dingusdev/dingusppc-sub001/intc"
)

func TestNewBuildsLeavesAndWiresIRQs(t *testing.T) {
	m, err := New(Config{IntcModel: "heathrow", RAMSize: 0x10000})
	if err != nil {
		t.Fatal(err)
	}
	if m.CPU == nil || m.Mem == nil || m.Intc == nil {
		t.Fatalf("core leaves not constructed")
	}

	// Floppy IRQ should latch into Heathrow's event register (the
	// source is masked, so the CPU pin is not raised).
	m.Floppy.StartRead([]byte{1, 2})
	buf := make([]byte, 2)
	m.Floppy.PullData(buf)
	h := m.Intc.(*intc.Heathrow)
	id := m.Intc.RegisterSource(intc.SrcSWIM3)
	if h.Events[int(id)>>8]&(1<<uint(int(id)&0xFF)) == 0 {
		t.Fatalf("SWIM3 event not latched in Heathrow")
	}
}

func TestUnknownIntcModelErrors(t *testing.T) {
	_, err := New(Config{IntcModel: "bogus", RAMSize: 0x1000})
	if err == nil {
		t.Fatalf("expected error for unknown interrupt controller model")
	}
}

func TestAddDMAChannelWiresIRQ(t *testing.T) {
	m, err := New(Config{IntcModel: "grandcentral", RAMSize: 0x10000})
	if err != nil {
		t.Fatal(err)
	}
	id := m.Intc.RegisterSource(intc.SrcDMAFloppy)
	m.DMA["floppy"].OnIRQ()
	if gc := m.Intc.(*intc.GrandCentral); gc.IFR&(1<<uint(id)) == 0 {
		t.Fatalf("floppy DMA IRQ not latched in Grand Central IFR")
	}
}

func TestVBLEmitsEvent(t *testing.T) {
	m, err := New(Config{IntcModel: "amic", RAMSize: 0x10000})
	if err != nil {
		t.Fatal(err)
	}
	vbls := 0
	m.Events.Subscribe(EventVBL, func(Event) { vbls++ })
	m.Timers.Advance(1000000000 / 60)
	if vbls != 1 {
		t.Fatalf("vbls = %d, want 1", vbls)
	}
}
