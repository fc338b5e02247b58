package ppc

// MMU implements the BAT pass, segment pass, and hashed page table
// walk (spec 4.2). Grounded on the teacher's transAddr: a small cache
// checked first, falling back to a full walk that refills the cache.
type MMU struct {
	cpu *CPU

	// ibat/dbat hold the decoded form of all 8 BATs (4 I + 4 D),
	// re-derived whenever the matching SPR is written (spec 3's BAT
	// invariant), mirroring transAddr's tlb-refill-on-miss shape but
	// applied eagerly at write time since BATs are few and static
	// between writes.
	ibat [4]batEntry
	dbat [4]batEntry
}

type batEntry struct {
	valid    bool
	bepi     uint32
	mask     uint32 // block mask: 1 bits cover the block
	validSup bool
	validUsr bool
	brpn     uint32
	pp       uint32
}

// Fault is the outcome of a translation attempt.
type Fault int

const (
	FaultNone Fault = iota
	FaultMiss
	FaultProtection
	FaultDirectStore
)

// decodeBAT extracts {BEPI, BL, Vs, Vp} from the upper word and
// {BRPN, PP} from the lower word (spec 3 "BAT entry"). BL selects a
// block of (BL+1)*128 KiB; its low-order bits become don't-care bits
// of BEPI for matching, exactly as real PowerPC BAT hardware treats
// the EPI/RPN fields for blocks larger than one page.
func decodeBAT(upper, lower uint32) batEntry {
	bl := (upper >> 2) & 0xFF
	mask := (bl << 17) | 0x1FFFF
	return batEntry{
		valid:    upper&3 != 0,
		bepi:     upper & 0xFFFE0000 &^ mask,
		mask:     mask,
		validSup: upper&2 != 0,
		validUsr: upper&1 != 0,
		brpn:     lower & 0xFFFE0000,
		pp:       lower & 3,
	}
}

// Invalidate re-derives the cached BAT entry for spr (called from
// mtspr) and otherwise does nothing for non-BAT SPRs.
func (m *MMU) Invalidate(spr int) {
	switch {
	case spr >= sprIBAT0U && spr <= sprIBAT3L:
		idx := (spr - sprIBAT0U) / 2
		m.ibat[idx] = decodeBAT(m.cpu.SPR[sprIBAT0U+idx*2], m.cpu.SPR[sprIBAT0L+idx*2])
	case spr >= sprDBAT0U && spr <= sprDBAT3L:
		idx := (spr - sprDBAT0U) / 2
		m.dbat[idx] = decodeBAT(m.cpu.SPR[sprDBAT0U+idx*2], m.cpu.SPR[sprDBAT0L+idx*2])
	}
}

func (m *MMU) batLookup(bats *[4]batEntry, ea uint32, write, userMode bool) (uint32, Fault, bool) {
	for i := range bats {
		b := &bats[i]
		if !b.valid {
			continue
		}
		if ea&^b.mask != b.bepi {
			continue
		}
		if userMode && !b.validUsr {
			continue
		}
		if !userMode && !b.validSup {
			continue
		}
		pa := (b.brpn &^ b.mask) | (ea & b.mask)
		if b.pp == 0 {
			return 0, FaultProtection, true
		}
		if write && b.pp == 1 {
			return 0, FaultProtection, true
		}
		return pa, FaultNone, true
	}
	return 0, FaultNone, false
}

// translate is the shared BAT+segment+PTEG walk for both instruction
// fetch and data access (spec 4.2).
func (m *MMU) translate(ea uint32, write bool, ifetch bool, relocate bool) (uint32, Fault) {
	if !relocate {
		return ea, FaultNone
	}
	userMode := m.cpu.MSR&MSRPR != 0
	var bats *[4]batEntry
	if ifetch {
		bats = &m.ibat
	} else {
		bats = &m.dbat
	}
	if pa, fault, hit := m.batLookup(bats, ea, write, userMode); hit {
		return pa, fault
	}

	sr := m.cpu.SR[ea>>28]
	if sr&0x80000000 != 0 {
		return 0, FaultDirectStore
	}
	vsid := sr & 0x00FFFFFF
	pageIndex := (ea >> 12) & 0xFFFF
	api := (ea >> 22) & 0x3F

	h1 := (vsid & 0x7FFFF) ^ pageIndex
	h2 := ^h1

	sdr1 := m.cpu.SPR[sprSDR1]
	htaborg := sdr1 & 0xFFFF0000
	htabmask := sdr1 & 0x1FF

	for hashIdx, h := range []uint32{h1, h2} {
		ptegAddr := (htaborg & 0xFE000000) |
			((htaborg >> 16) & htabmask & ((h >> 10) & htabmask)) |
			((h & 0x3FF) << 6)
		for slot := 0; slot < 8; slot++ {
			w0 := m.cpu.Mem.Read32(ptegAddr + uint32(slot)*8)
			if w0&0x80000000 == 0 {
				continue
			}
			hBit := (w0 >> 6) & 1
			entryVSID := (w0 >> 7) & 0xFFFFFF
			entryAPI := w0 & 0x3F
			if hBit != uint32(hashIdx) || entryVSID != vsid || entryAPI != api {
				continue
			}
			w1Addr := ptegAddr + uint32(slot)*8 + 4
			w1 := m.cpu.Mem.Read32(w1Addr)
			pp := w1 & 3
			if pp == 0 {
				return 0, FaultProtection
			}
			if write && pp == 1 && userMode {
				return 0, FaultProtection
			}
			w1 |= 1 << 8 // R bit
			if write {
				w1 |= 1 << 7 // C bit
			}
			m.cpu.Mem.Write32(ptegAddr+uint32(slot)*8, w0)
			m.cpu.Mem.Write32(w1Addr, w1)
			rpn := w1 & 0xFFFFF000
			return rpn | (ea & 0xFFF), FaultNone
		}
	}
	return 0, FaultMiss
}

// TranslateIFetch implements translate_ifetch (spec 4.2).
func (m *MMU) TranslateIFetch(ea uint32) (uint32, Fault) {
	return m.translate(ea, false, true, m.cpu.MSR&MSRIR != 0)
}

// TranslateData implements translate_data (spec 4.2).
func (m *MMU) TranslateData(ea uint32, write bool) (uint32, Fault) {
	return m.translate(ea, write, false, m.cpu.MSR&MSRDR != 0)
}
