package intc

import "testing"

type fakeCPU struct{ asserted, released int }

func (f *fakeCPU) AssertExtInt()  { f.asserted++ }
func (f *fakeCPU) ReleaseExtInt() { f.released++ }

func TestGrandCentralSingleTransition(t *testing.T) {
	cpu := &fakeCPU{}
	gc := NewGrandCentral(cpu)
	id := gc.RegisterSource(SrcVIACuda)
	gc.WriteIER(1 << uint(id))

	gc.AckInt(id, 1)
	gc.AckInt(id, 0)
	if cpu.asserted != 1 || cpu.released != 1 {
		t.Fatalf("asserted=%d released=%d, want 1/1", cpu.asserted, cpu.released)
	}
}

func TestGrandCentralMaskedSourceNoAssert(t *testing.T) {
	cpu := &fakeCPU{}
	gc := NewGrandCentral(cpu)
	id := gc.RegisterSource(SrcSWIM3)
	gc.AckInt(id, 1) // IER still 0: masked out
	if cpu.asserted != 0 {
		t.Fatalf("masked source asserted CPU pin")
	}
}

func TestHeathrowTwoWindows(t *testing.T) {
	cpu := &fakeCPU{}
	h := NewHeathrow(cpu)
	idA := h.RegisterSource(SrcVIACuda) // window 0
	idB := h.RegisterSource(SrcSlot0)   // window 1
	h.WriteMask(0, 1<<uint(int(idA)&0xFF))
	h.WriteMask(1, 1<<uint(int(idB)&0xFF))

	h.AckInt(idA, 1)
	if cpu.asserted != 1 {
		t.Fatalf("window 0 event did not assert")
	}
	h.AckInt(idB, 1)
	h.AckInt(idA, 0)
	if cpu.released != 0 {
		t.Fatalf("pin released while window 1 still pending")
	}
}

func TestHeathrowClearAll(t *testing.T) {
	cpu := &fakeCPU{}
	h := NewHeathrow(cpu)
	id := h.RegisterSource(SrcVBL)
	h.WriteMask(0, intModeBit|(1<<uint(int(id)&0xFF)))
	h.AckInt(id, 1)
	h.WriteClear(0, 0) // INT_MODE set: clears whole window regardless of v
	if h.Events[0] != 0 {
		t.Fatalf("clear-all did not clear window")
	}
}

func TestAMICCascade(t *testing.T) {
	cpu := &fakeCPU{}
	a := NewAMIC(cpu)
	a.CPUMask = 0xFF
	a.DMAMask = 0xFF
	id := a.RegisterSource(SrcDMAFloppy)
	a.AckInt(id, 1)
	if cpu.asserted != 1 {
		t.Fatalf("DMA interrupt did not cascade to CPU level")
	}
	if a.CPULevel&(1<<amicBitDMA) == 0 {
		t.Fatalf("ALL_DMA bit not set")
	}
}
