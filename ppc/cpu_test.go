package ppc

import (
	"testing"

	"github.com/dingusdev/dingusppc-sub001/physmap"
)

func newTestCPU(t *testing.T) (*CPU, *physmap.Map) {
	t.Helper()
	mem := physmap.New()
	ram := make([]byte, 0x10000)
	if err := mem.AddRegion(&physmap.Region{Name: "ram", Start: 0, End: 0xFFFF, Kind: physmap.RAM, Backing: ram}); err != nil {
		t.Fatal(err)
	}
	rom := make([]byte, 0x100000)
	if err := mem.AddRegion(&physmap.Region{Name: "rom", Start: 0xFFF00000, End: 0xFFFFFFFF, Kind: physmap.ROM, Backing: rom}); err != nil {
		t.Fatal(err)
	}
	return New(mem), mem
}

func putInsn(mem *physmap.Map, addr uint32, word uint32) {
	mem.Write32(addr, word)
}

// Scenario 1: reset to first fetch.
func TestResetToFirstFetch(t *testing.T) {
	c, mem := newTestCPU(t)
	// ROM's first word, at the reset vector. ROM drops stores, so the
	// word goes straight into the region's backing bytes.
	copy(mem.Lookup(0xFFF00100).Backing[0x100:], []byte{0x60, 0x00, 0x00, 0x00}) // nop (ori r0,r0,0)
	c.MSR = MSRIP
	c.PC = 0xFFF00100
	c.Step()
	if c.PC != 0xFFF00104 {
		t.Fatalf("PC = %#x, want 0xFFF00104", c.PC)
	}
}

// Scenario 2: addi, cmpwi, beq.
func TestAddiCmpwiBeq(t *testing.T) {
	c, mem := newTestCPU(t)
	c.PC = 0x1000
	c.GPR[3] = 5
	putInsn(mem, 0x1000, 0x3883FFFB) // addi r4,r3,-5
	putInsn(mem, 0x1004, 0x2C040000) // cmpwi cr0,r4,0
	putInsn(mem, 0x1008, 0x41820008) // beq .+8

	c.Step()
	if c.GPR[4] != 0 {
		t.Fatalf("GPR4 = %#x, want 0", c.GPR[4])
	}
	c.Step()
	if c.CR>>28 != 0x2 { // EQ bit
		t.Fatalf("CR0 = %#x, want EQ set", c.CR>>28)
	}
	c.Step()
	if c.PC != 0x1000+16 {
		t.Fatalf("PC = %#x, want %#x", c.PC, 0x1000+16)
	}
}

// Scenario 3: lwarx/stwcx. success.
func TestLwarxStwcxSuccess(t *testing.T) {
	c, mem := newTestCPU(t)
	mem.Write32(0x1000, 0xDEADBEEF)
	c.GPR[3] = 0x1000
	c.PC = 0x2000
	putInsn(mem, 0x2000, (31<<26)|(5<<21)|(0<<16)|(3<<11)|(20<<1)) // lwarx r5,0,r3
	c.Step()
	if c.GPR[5] != 0xDEADBEEF {
		t.Fatalf("GPR5 = %#x", c.GPR[5])
	}
	c.GPR[6] = 0x01020304
	putInsn(mem, 0x2004, (31<<26)|(6<<21)|(0<<16)|(3<<11)|(150<<1)|1) // stwcx. r6,0,r3
	c.Step()
	if mem.Read32(0x1000) != 0x01020304 {
		t.Fatalf("mem = %#x", mem.Read32(0x1000))
	}
	if c.CR>>28&2 == 0 {
		t.Fatalf("CR0[EQ] not set after successful stwcx.")
	}
}

// Scenario 4: BAT translation.
func TestBATTranslation(t *testing.T) {
	c, _ := newTestCPU(t)
	c.SPR[sprIBAT0U] = 0x00001FFE
	c.SPR[sprIBAT0L] = 0x10000002
	c.MMU.Invalidate(sprIBAT0U)
	c.MSR = MSRIR
	pa, fault := c.MMU.TranslateIFetch(0x00001000)
	if fault != FaultNone {
		t.Fatalf("fault = %v", fault)
	}
	if pa != 0x10001000 {
		t.Fatalf("pa = %#x, want 0x10001000", pa)
	}
}
