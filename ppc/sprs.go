package ppc

// Named SPR slots (spec section 3).
const (
	sprXER = 1
	sprLR  = 8
	sprCTR = 9
	sprDSISR = 18
	sprDAR   = 19
	sprDEC = 22
	sprSDR1 = 25
	sprSRR0 = 26
	sprSRR1 = 27
	sprSPRG0 = 272
	sprSPRG1 = 273
	sprSPRG2 = 274
	sprSPRG3 = 275
	sprIBAT0U = 528
	sprIBAT0L = 529
	sprIBAT1U = 530
	sprIBAT1L = 531
	sprIBAT2U = 532
	sprIBAT2L = 533
	sprIBAT3U = 534
	sprIBAT3L = 535
	sprDBAT0U = 536
	sprDBAT0L = 537
	sprDBAT1U = 538
	sprDBAT1L = 539
	sprDBAT2U = 540
	sprDBAT2L = 541
	sprDBAT3U = 542
	sprDBAT3L = 543
	sprHID0 = 1008
	sprPVR  = 287
)

// sprIndex decodes the split spr field (5 low bits : 5 high bits) of
// mfspr/mtspr into a linear SPR number.
func sprIndex(field uint32) int {
	return int(((field & 0x1F) << 5) | (field >> 5))
}

// isBATSpr reports whether spr is one of the 16 IBAT/DBAT registers,
// whose writes must re-evaluate the MMU's BAT cache immediately
// (spec 3/4.2 invariant).
func isBATSpr(spr int) bool {
	return spr >= sprIBAT0U && spr <= sprDBAT3L
}
