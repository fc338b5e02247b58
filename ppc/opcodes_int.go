package ppc

// installIntOpcodes fills the primary table and opcode-31 extended
// table with the integer arithmetic, logical, compare, rotate,
// load/store, and system-register instruction families named in
// spec section 4.1.
func installIntOpcodes() {
	primaryTable[3] = opTWI
	primaryTable[7] = opMULLI
	primaryTable[8] = opSUBFIC
	primaryTable[10] = opCMPLI
	primaryTable[11] = opCMPI
	primaryTable[12] = opADDIC
	primaryTable[13] = opADDICDot
	primaryTable[14] = opADDI
	primaryTable[15] = opADDIS
	primaryTable[20] = opRLWIMI
	primaryTable[21] = opRLWINM
	primaryTable[23] = opRLWNM
	primaryTable[24] = opORI
	primaryTable[25] = opORIS
	primaryTable[26] = opXORI
	primaryTable[27] = opXORIS
	primaryTable[28] = opANDIDot
	primaryTable[29] = opANDISDot

	primaryTable[32] = opLWZ
	primaryTable[33] = opLWZU
	primaryTable[34] = opLBZ
	primaryTable[35] = opLBZU
	primaryTable[36] = opSTW
	primaryTable[37] = opSTWU
	primaryTable[38] = opSTB
	primaryTable[39] = opSTBU
	primaryTable[40] = opLHZ
	primaryTable[41] = opLHZU
	primaryTable[42] = opLHA
	primaryTable[43] = opLHAU
	primaryTable[44] = opSTH
	primaryTable[45] = opSTHU
	primaryTable[46] = opLMW
	primaryTable[47] = opSTMW
	primaryTable[48] = opLFS
	primaryTable[50] = opLFD
	primaryTable[52] = opSTFS
	primaryTable[54] = opSTFD

	table31[266] = opADD
	table31[10] = opADDC
	table31[138] = opADDE
	table31[40] = opSUBF
	table31[8] = opSUBFC
	table31[136] = opSUBFE
	table31[104] = opNEG
	table31[28] = opAND
	table31[444] = opOR
	table31[316] = opXOR
	table31[476] = opNAND
	table31[124] = opNOR
	table31[60] = opANDC
	table31[412] = opORC
	table31[284] = opEQV
	table31[0] = opCMP
	table31[32] = opCMPL
	table31[235] = opMULLW
	table31[75] = opMULHW
	table31[11] = opMULHWU
	table31[491] = opDIVW
	table31[459] = opDIVWU
	table31[24] = opSLW
	table31[536] = opSRW
	table31[792] = opSRAW
	table31[824] = opSRAWI
	table31[954] = opEXTSB
	table31[922] = opEXTSH
	table31[20] = opLWARX
	table31[150] = opSTWCXDot
	table31[339] = opMFSPR
	table31[467] = opMTSPR
	table31[83] = opMFMSR
	table31[146] = opMTMSR
	table31[4] = opTW
	table31[19] = opMFCR
	table31[144] = opMTCRF
	table31[598] = opSYNC
	table31[854] = opEIEIO
	table31[23] = opLWZX
	table31[88] = opSTWX
	table31[87] = opLBZX
	table31[215] = opSTBX
	table31[279] = opLHZX
	table31[343] = opLHAX
	table31[407] = opSTHX
}

func (c *CPU) gpr(n int) uint32       { return c.GPR[n] }
func (c *CPU) setGPR(n int, v uint32) { c.GPR[n] = v }

// ra0 returns GPR[ra] or 0 when ra names r0, per the "RA|0" form used
// throughout load/store and addi.
func (c *CPU) ra0(ra int) uint32 {
	if ra == 0 {
		return 0
	}
	return c.GPR[ra]
}

func opADDI(c *CPU, i insn) {
	c.setGPR(i.rt(), c.ra0(i.ra())+i.simm())
}

func opADDIS(c *CPU, i insn) {
	c.setGPR(i.rt(), c.ra0(i.ra())+(i.simm()<<16))
}

func opADDIC(c *CPU, i insn) {
	a := c.gpr(i.ra())
	r := a + i.simm()
	c.setGPR(i.rt(), r)
	c.setXERCA(r < a)
}

func opADDICDot(c *CPU, i insn) {
	opADDIC(c, i)
	c.setCR0(c.gpr(i.rt()))
}

func opSUBFIC(c *CPU, i insn) {
	a := c.gpr(i.ra())
	r := i.simm() - a
	c.setGPR(i.rt(), r)
	c.setXERCA(r <= i.simm() || a == 0)
}

func opMULLI(c *CPU, i insn) {
	c.setGPR(i.rt(), uint32(int32(c.gpr(i.ra()))*int32(i.simm())))
}

func opCMPI(c *CPU, i insn) {
	a := int32(c.gpr(i.ra()))
	b := int32(i.simm())
	c.cmpWrite(i.crfD(), a < b, a > b, a == b)
}

func opCMPLI(c *CPU, i insn) {
	a := c.gpr(i.ra())
	b := i.uimm()
	c.cmpWrite(i.crfD(), a < b, a > b, a == b)
}

func (c *CPU) cmpWrite(field int, lt, gt, eq bool) {
	c.setCRField(field, crField0(lt, gt, eq, c.SPR[sprXER]&xerSO != 0)>>28)
}

func opORI(c *CPU, i insn)  { c.setGPR(i.ra(), c.gpr(i.rs())|i.uimm()) }
func opORIS(c *CPU, i insn) { c.setGPR(i.ra(), c.gpr(i.rs())|(i.uimm()<<16)) }
func opXORI(c *CPU, i insn) { c.setGPR(i.ra(), c.gpr(i.rs())^i.uimm()) }
func opXORIS(c *CPU, i insn) { c.setGPR(i.ra(), c.gpr(i.rs())^(i.uimm()<<16)) }

func opANDIDot(c *CPU, i insn) {
	r := c.gpr(i.rs()) & i.uimm()
	c.setGPR(i.ra(), r)
	c.setCR0(r)
}

func opANDISDot(c *CPU, i insn) {
	r := c.gpr(i.rs()) & (i.uimm() << 16)
	c.setGPR(i.ra(), r)
	c.setCR0(r)
}

// rotateMask builds the (mb,me) wraparound mask per spec 4.1.
func rotateMask(mb, me uint32) uint32 {
	var mask uint32
	if mb <= me {
		for b := mb; b <= me; b++ {
			mask |= 1 << (31 - b)
		}
	} else {
		for b := uint32(0); b <= me; b++ {
			mask |= 1 << (31 - b)
		}
		for b := mb; b <= 31; b++ {
			mask |= 1 << (31 - b)
		}
	}
	return mask
}

func rotl32(v, sh uint32) uint32 { return (v << (sh & 31)) | (v >> ((32 - sh) & 31)) }

func opRLWINM(c *CPU, i insn) {
	r := rotl32(c.gpr(i.rs()), i.sh()) & rotateMask(i.mb(), i.me())
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}

func opRLWIMI(c *CPU, i insn) {
	mask := rotateMask(i.mb(), i.me())
	r := (rotl32(c.gpr(i.rs()), i.sh()) & mask) | (c.gpr(i.ra()) &^ mask)
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}

func opRLWNM(c *CPU, i insn) {
	sh := c.gpr(i.rb()) & 0x1F
	r := rotl32(c.gpr(i.rs()), sh) & rotateMask(i.mb(), i.me())
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}

func addOverflows(a, b, r int32) bool {
	return (a >= 0) == (b >= 0) && (r >= 0) != (a >= 0)
}

// subOverflows reports signed overflow for r = b - a, computed
// directly from the operands' sign bits rather than by negating a
// (negating INT32_MIN wraps back to INT32_MIN and would mask the
// overflow it's supposed to detect).
func subOverflows(b, a, r int32) bool {
	return (b >= 0) != (a >= 0) && (r >= 0) != (b >= 0)
}

func opADD(c *CPU, i insn) {
	a, b := c.gpr(i.ra()), c.gpr(i.rb())
	r := a + b
	c.setGPR(i.rt(), r)
	if i.oe() {
		c.setXEROV(addOverflows(int32(a), int32(b), int32(r)))
	}
	if i.rc() {
		c.setCR0(r)
	}
}

func opADDC(c *CPU, i insn) {
	a, b := c.gpr(i.ra()), c.gpr(i.rb())
	r := a + b
	c.setGPR(i.rt(), r)
	c.setXERCA(r < a)
	if i.oe() {
		c.setXEROV(addOverflows(int32(a), int32(b), int32(r)))
	}
	if i.rc() {
		c.setCR0(r)
	}
}

func opADDE(c *CPU, i insn) {
	a, b := c.gpr(i.ra()), c.gpr(i.rb())
	ci := c.SPR[sprXER] & xerCA
	var carryIn uint32
	if ci != 0 {
		carryIn = 1
	}
	r := a + b + carryIn
	c.setGPR(i.rt(), r)
	c.setXERCA(r < a || (carryIn == 1 && r == a))
	if i.oe() {
		c.setXEROV(addOverflows(int32(a), int32(b), int32(r)))
	}
	if i.rc() {
		c.setCR0(r)
	}
}

func opSUBF(c *CPU, i insn) {
	a, b := c.gpr(i.ra()), c.gpr(i.rb())
	r := b - a
	c.setGPR(i.rt(), r)
	if i.oe() {
		c.setXEROV(subOverflows(int32(b), int32(a), int32(r)))
	}
	if i.rc() {
		c.setCR0(r)
	}
}

func opSUBFC(c *CPU, i insn) {
	a, b := c.gpr(i.ra()), c.gpr(i.rb())
	r := b - a
	c.setGPR(i.rt(), r)
	c.setXERCA(b >= a)
	if i.oe() {
		c.setXEROV(subOverflows(int32(b), int32(a), int32(r)))
	}
	if i.rc() {
		c.setCR0(r)
	}
}

func opSUBFE(c *CPU, i insn) {
	a, b := c.gpr(i.ra()), c.gpr(i.rb())
	ci := c.SPR[sprXER] & xerCA
	var carryIn uint32
	if ci != 0 {
		carryIn = 1
	}
	r := b + ^a + carryIn
	c.setGPR(i.rt(), r)
	sum := uint64(b) + uint64(^a) + uint64(carryIn)
	c.setXERCA(sum > 0xFFFFFFFF)
	if i.oe() {
		c.setXEROV(subOverflows(int32(b), int32(a), int32(r)))
	}
	if i.rc() {
		c.setCR0(r)
	}
}

func opNEG(c *CPU, i insn) {
	a := c.gpr(i.ra())
	r := ^a + 1
	c.setGPR(i.rt(), r)
	if i.oe() {
		c.setXEROV(a == 0x80000000)
	}
	if i.rc() {
		c.setCR0(r)
	}
}

func opAND(c *CPU, i insn) {
	r := c.gpr(i.rs()) & c.gpr(i.rb())
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}
func opANDC(c *CPU, i insn) {
	r := c.gpr(i.rs()) &^ c.gpr(i.rb())
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}
func opOR(c *CPU, i insn) {
	r := c.gpr(i.rs()) | c.gpr(i.rb())
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}
func opORC(c *CPU, i insn) {
	r := c.gpr(i.rs()) | ^c.gpr(i.rb())
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}
func opXOR(c *CPU, i insn) {
	r := c.gpr(i.rs()) ^ c.gpr(i.rb())
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}
func opNAND(c *CPU, i insn) {
	r := ^(c.gpr(i.rs()) & c.gpr(i.rb()))
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}
func opNOR(c *CPU, i insn) {
	r := ^(c.gpr(i.rs()) | c.gpr(i.rb()))
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}
func opEQV(c *CPU, i insn) {
	r := ^(c.gpr(i.rs()) ^ c.gpr(i.rb()))
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}

func opCMP(c *CPU, i insn) {
	a, b := int32(c.gpr(i.ra())), int32(c.gpr(i.rb()))
	c.cmpWrite(i.crfD(), a < b, a > b, a == b)
}
func opCMPL(c *CPU, i insn) {
	a, b := c.gpr(i.ra()), c.gpr(i.rb())
	c.cmpWrite(i.crfD(), a < b, a > b, a == b)
}

func opMULLW(c *CPU, i insn) {
	a, b := int64(int32(c.gpr(i.ra()))), int64(int32(c.gpr(i.rb())))
	p := a * b
	r := uint32(p)
	c.setGPR(i.rt(), r)
	if i.oe() {
		c.setXEROV(p != int64(int32(p)))
	}
	if i.rc() {
		c.setCR0(r)
	}
}

func opMULHW(c *CPU, i insn) {
	a, b := int64(int32(c.gpr(i.ra()))), int64(int32(c.gpr(i.rb())))
	p := a * b
	r := uint32(p >> 32)
	c.setGPR(i.rt(), r)
	if i.rc() {
		c.setCR0(r)
	}
}

func opMULHWU(c *CPU, i insn) {
	a, b := uint64(c.gpr(i.ra())), uint64(c.gpr(i.rb()))
	p := a * b
	r := uint32(p >> 32)
	c.setGPR(i.rt(), r)
	if i.rc() {
		c.setCR0(r)
	}
}

func opDIVW(c *CPU, i insn) {
	a, b := int32(c.gpr(i.ra())), int32(c.gpr(i.rb()))
	var r int32
	overflow := b == 0 || (a == -2147483648 && b == -1)
	if overflow {
		r = 0
	} else {
		r = a / b
	}
	c.setGPR(i.rt(), uint32(r))
	if i.oe() {
		c.setXEROV(overflow)
	}
	if i.rc() {
		c.setCR0(uint32(r))
	}
}

func opDIVWU(c *CPU, i insn) {
	a, b := c.gpr(i.ra()), c.gpr(i.rb())
	var r uint32
	overflow := b == 0
	if !overflow {
		r = a / b
	}
	c.setGPR(i.rt(), r)
	if i.oe() {
		c.setXEROV(overflow)
	}
	if i.rc() {
		c.setCR0(r)
	}
}

func opSLW(c *CPU, i insn) {
	sh := c.gpr(i.rb()) & 0x3F
	var r uint32
	if sh < 32 {
		r = c.gpr(i.rs()) << sh
	}
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}

func opSRW(c *CPU, i insn) {
	sh := c.gpr(i.rb()) & 0x3F
	var r uint32
	if sh < 32 {
		r = c.gpr(i.rs()) >> sh
	}
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}

func opSRAW(c *CPU, i insn) {
	sh := c.gpr(i.rb()) & 0x3F
	s := int32(c.gpr(i.rs()))
	var r int32
	carry := false
	if sh >= 32 {
		if s < 0 {
			r = -1
			carry = true
		}
	} else {
		r = s >> sh
		carry = s < 0 && (uint32(s)<<(32-sh)) != 0
	}
	c.setGPR(i.ra(), uint32(r))
	c.setXERCA(carry)
	if i.rc() {
		c.setCR0(uint32(r))
	}
}

func opSRAWI(c *CPU, i insn) {
	sh := i.sh()
	s := int32(c.gpr(i.rs()))
	r := s >> sh
	carry := s < 0 && (uint32(s)<<(32-sh)) != 0
	c.setGPR(i.ra(), uint32(r))
	c.setXERCA(carry)
	if i.rc() {
		c.setCR0(uint32(r))
	}
}

func opEXTSB(c *CPU, i insn) {
	r := uint32(int32(int8(c.gpr(i.rs()))))
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}

func opEXTSH(c *CPU, i insn) {
	r := uint32(int32(int16(c.gpr(i.rs()))))
	c.setGPR(i.ra(), r)
	if i.rc() {
		c.setCR0(r)
	}
}

// --- reservation / load-reserve store-conditional (spec 4.1, 5) ---

func opLWARX(c *CPU, i insn) {
	ea := c.ra0(i.ra()) + c.gpr(i.rb())
	pa, fault := c.MMU.TranslateData(ea, false)
	if fault != FaultNone {
		c.raiseMMUFault(fault, VecDSI, false)
		return
	}
	c.setGPR(i.rt(), c.Mem.Read32(pa))
	c.Reserve = Reservation{Valid: true, Addr: ea}
}

func opSTWCXDot(c *CPU, i insn) {
	ea := c.ra0(i.ra()) + c.gpr(i.rb())
	ok := c.Reserve.Valid && c.Reserve.Addr == ea
	if ok {
		pa, fault := c.MMU.TranslateData(ea, true)
		if fault != FaultNone {
			c.raiseMMUFault(fault, VecDSI, false)
			return
		}
		c.Mem.Write32(pa, c.gpr(i.rs()))
	}
	c.Reserve.Valid = false
	c.cmpWrite(0, false, false, ok)
}

// --- system register moves ---

func opMFSPR(c *CPU, i insn) {
	c.setGPR(i.rt(), c.SPR[sprIndex(i.spr())])
}

func opMTSPR(c *CPU, i insn) {
	n := sprIndex(i.spr())
	c.SPR[n] = c.gpr(i.rs())
	if isBATSpr(n) {
		c.MMU.Invalidate(n)
	}
}

func opMFMSR(c *CPU, i insn) { c.setGPR(i.rt(), c.MSR) }
func opMTMSR(c *CPU, i insn) { c.MSR = c.gpr(i.rs()) }

func opMFCR(c *CPU, i insn) { c.setGPR(i.rt(), c.CR) }

func opMTCRF(c *CPU, i insn) {
	mask := (uint32(i) >> 12) & 0xFF
	var full uint32
	for b := 0; b < 8; b++ {
		if mask&(1<<b) != 0 {
			full |= 0xF << (b * 4)
		}
	}
	c.CR = (c.CR &^ full) | (c.gpr(i.rs()) & full)
}

func opTW(c *CPU, i insn) {
	a, b := int32(c.gpr(i.ra())), int32(c.gpr(i.rb()))
	if trapConditionMet(i.to(), a, b) {
		c.HandleException(VecProgram, SRR1Trap)
	}
}

func opTWI(c *CPU, i insn) {
	a, b := int32(c.gpr(i.ra())), int32(i.simm())
	if trapConditionMet(i.to(), a, b) {
		c.HandleException(VecProgram, SRR1Trap)
	}
}

func trapConditionMet(to uint32, a, b int32) bool {
	return (to&0x10 != 0 && a < b) ||
		(to&0x08 != 0 && a > b) ||
		(to&0x04 != 0 && a == b) ||
		(to&0x02 != 0 && uint32(a) < uint32(b)) ||
		(to&0x01 != 0 && uint32(a) > uint32(b))
}

func opSYNC(c *CPU, i insn)  {}
func opEIEIO(c *CPU, i insn) {}

// --- load/store ---

func (c *CPU) loadSized(ea uint32, size int, signExtend bool) (uint32, bool) {
	pa, fault := c.MMU.TranslateData(ea, false)
	if fault != FaultNone {
		c.raiseMMUFault(fault, VecDSI, false)
		return 0, false
	}
	var v uint32
	switch size {
	case 1:
		v = uint32(c.Mem.Read8(pa))
	case 2:
		v = uint32(c.Mem.Read16(pa))
	default:
		v = c.Mem.Read32(pa)
	}
	if signExtend {
		switch size {
		case 1:
			v = uint32(int32(int8(v)))
		case 2:
			v = uint32(int32(int16(v)))
		}
	}
	return v, true
}

func (c *CPU) storeSized(ea uint32, size int, v uint32) bool {
	pa, fault := c.MMU.TranslateData(ea, true)
	if fault != FaultNone {
		c.raiseMMUFault(fault, VecDSI, false)
		return false
	}
	switch size {
	case 1:
		c.Mem.Write8(pa, uint8(v))
	case 2:
		c.Mem.Write16(pa, uint16(v))
	default:
		c.Mem.Write32(pa, v)
	}
	return true
}

func opLWZ(c *CPU, i insn) {
	if v, ok := c.loadSized(c.ra0(i.ra())+i.d(), 4, false); ok {
		c.setGPR(i.rt(), v)
	}
}
func opLWZU(c *CPU, i insn) {
	ea := c.gpr(i.ra()) + i.d()
	if v, ok := c.loadSized(ea, 4, false); ok {
		c.setGPR(i.rt(), v)
		c.GPR[i.ra()] = ea
	}
}
func opLBZ(c *CPU, i insn) {
	if v, ok := c.loadSized(c.ra0(i.ra())+i.d(), 1, false); ok {
		c.setGPR(i.rt(), v)
	}
}
func opLBZU(c *CPU, i insn) {
	ea := c.gpr(i.ra()) + i.d()
	if v, ok := c.loadSized(ea, 1, false); ok {
		c.setGPR(i.rt(), v)
		c.GPR[i.ra()] = ea
	}
}
func opLHZ(c *CPU, i insn) {
	if v, ok := c.loadSized(c.ra0(i.ra())+i.d(), 2, false); ok {
		c.setGPR(i.rt(), v)
	}
}
func opLHZU(c *CPU, i insn) {
	ea := c.gpr(i.ra()) + i.d()
	if v, ok := c.loadSized(ea, 2, false); ok {
		c.setGPR(i.rt(), v)
		c.GPR[i.ra()] = ea
	}
}
func opLHA(c *CPU, i insn) {
	if v, ok := c.loadSized(c.ra0(i.ra())+i.d(), 2, true); ok {
		c.setGPR(i.rt(), v)
	}
}
func opLHAU(c *CPU, i insn) {
	ea := c.gpr(i.ra()) + i.d()
	if v, ok := c.loadSized(ea, 2, true); ok {
		c.setGPR(i.rt(), v)
		c.GPR[i.ra()] = ea
	}
}
func opSTW(c *CPU, i insn) { c.storeSized(c.ra0(i.ra())+i.d(), 4, c.gpr(i.rs())) }
func opSTWU(c *CPU, i insn) {
	ea := c.gpr(i.ra()) + i.d()
	if c.storeSized(ea, 4, c.gpr(i.rs())) {
		c.GPR[i.ra()] = ea
	}
}
func opSTB(c *CPU, i insn) { c.storeSized(c.ra0(i.ra())+i.d(), 1, c.gpr(i.rs())) }
func opSTBU(c *CPU, i insn) {
	ea := c.gpr(i.ra()) + i.d()
	if c.storeSized(ea, 1, c.gpr(i.rs())) {
		c.GPR[i.ra()] = ea
	}
}
func opSTH(c *CPU, i insn) { c.storeSized(c.ra0(i.ra())+i.d(), 2, c.gpr(i.rs())) }
func opSTHU(c *CPU, i insn) {
	ea := c.gpr(i.ra()) + i.d()
	if c.storeSized(ea, 2, c.gpr(i.rs())) {
		c.GPR[i.ra()] = ea
	}
}

func opLWZX(c *CPU, i insn) {
	if v, ok := c.loadSized(c.ra0(i.ra())+c.gpr(i.rb()), 4, false); ok {
		c.setGPR(i.rt(), v)
	}
}
func opLBZX(c *CPU, i insn) {
	if v, ok := c.loadSized(c.ra0(i.ra())+c.gpr(i.rb()), 1, false); ok {
		c.setGPR(i.rt(), v)
	}
}
func opLHZX(c *CPU, i insn) {
	if v, ok := c.loadSized(c.ra0(i.ra())+c.gpr(i.rb()), 2, false); ok {
		c.setGPR(i.rt(), v)
	}
}
func opLHAX(c *CPU, i insn) {
	if v, ok := c.loadSized(c.ra0(i.ra())+c.gpr(i.rb()), 2, true); ok {
		c.setGPR(i.rt(), v)
	}
}
func opSTWX(c *CPU, i insn) { c.storeSized(c.ra0(i.ra())+c.gpr(i.rb()), 4, c.gpr(i.rs())) }
func opSTBX(c *CPU, i insn) { c.storeSized(c.ra0(i.ra())+c.gpr(i.rb()), 1, c.gpr(i.rs())) }
func opSTHX(c *CPU, i insn) { c.storeSized(c.ra0(i.ra())+c.gpr(i.rb()), 2, c.gpr(i.rs())) }

func opLMW(c *CPU, i insn) {
	ea := c.ra0(i.ra()) + i.d()
	for r := i.rt(); r <= 31; r++ {
		if v, ok := c.loadSized(ea, 4, false); ok {
			c.GPR[r] = v
		}
		ea += 4
	}
}

func opSTMW(c *CPU, i insn) {
	ea := c.ra0(i.ra()) + i.d()
	for r := i.rt(); r <= 31; r++ {
		c.storeSized(ea, 4, c.GPR[r])
		ea += 4
	}
}
