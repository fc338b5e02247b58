package ppc

// installBranchOpcodes fills the primary b/bc/sc slots and the
// opcode-19 secondary table (bclr, bcctr, rfi, condition-register
// logicals) per spec 4.1.
func installBranchOpcodes() {
	primaryTable[16] = opBC
	primaryTable[18] = opB
	primaryTable[17] = opSC

	table19[16] = opBCLR
	table19[528] = opBCCTR
	table19[50] = opRFI
	table19[150] = opISYNC
	table19[0] = opMCRF
	table19[193] = opCRXOR
	table19[449] = opCROR
	table19[257] = opCRAND
	table19[129] = opCRANDC
	table19[417] = opCRORC
	table19[289] = opCREQV
	table19[225] = opCRNAND
	table19[33] = opCRNOR
}

// ctrOK / condOK implement the BO/BI branch-condition evaluation
// (spec 4.1).
func (c *CPU) ctrOK(bo uint32) bool {
	if bo&0x04 != 0 {
		return true
	}
	c.SPR[sprCTR]--
	zero := c.SPR[sprCTR] == 0
	if bo&0x02 != 0 {
		return zero
	}
	return !zero
}

func (c *CPU) condOK(bo, bi uint32) bool {
	if bo&0x10 != 0 {
		return true
	}
	bit := (c.CR >> (31 - bi)) & 1
	if bo&0x08 != 0 {
		return bit == 1
	}
	return bit == 0
}

func (c *CPU) branchTo(target uint32, lk bool) {
	if lk {
		c.SPR[sprLR] = c.PC + 4
	}
	c.NIA = target
	c.branched = true
}

func opB(c *CPU, i insn) {
	var target uint32
	if i.aa() {
		target = i.li()
	} else {
		target = c.PC + i.li()
	}
	c.branchTo(target, i.lk())
}

func opBC(c *CPU, i insn) {
	bo, bi := i.bo(), i.bi()
	ctr := c.ctrOK(bo)
	cond := c.condOK(bo, bi)
	if !ctr || !cond {
		return
	}
	var target uint32
	if i.aa() {
		target = i.bd()
	} else {
		target = c.PC + i.bd()
	}
	c.branchTo(target, i.lk())
}

func opBCLR(c *CPU, i insn) {
	bo, bi := i.bo(), i.bi()
	ctr := c.ctrOK(bo)
	cond := c.condOK(bo, bi)
	if !ctr || !cond {
		return
	}
	c.branchTo(c.SPR[sprLR]&^3, i.lk())
}

func opBCCTR(c *CPU, i insn) {
	bo, bi := i.bo(), i.bi()
	if !c.condOK(bo, bi) {
		return
	}
	c.branchTo(c.SPR[sprCTR]&^3, i.lk())
}

func opSC(c *CPU, i insn) {
	c.HandleException(VecSyscall, 0)
}

// opRFI returns from an exception: MSR is restored from SRR1 (with
// reserved bits masked) and NIA from SRR0 (spec 4.1).
func opRFI(c *CPU, i insn) {
	c.MSR = c.SPR[sprSRR1] & 0x87C0FF73
	c.NIA = c.SPR[sprSRR0] &^ 3
	c.branched = true
}

func opISYNC(c *CPU, i insn) {}

func opMCRF(c *CPU, i insn) {
	c.setCRField(i.crfD(), c.crFieldVal(i.crfS()))
}

func crBit(c *CPU, n uint32) uint32 { return (c.CR >> (31 - n)) & 1 }
func setCRBit(c *CPU, n uint32, v uint32) {
	shift := 31 - n
	if v != 0 {
		c.CR |= 1 << shift
	} else {
		c.CR &^= 1 << shift
	}
}

func crLogical(c *CPU, i insn, f func(a, b uint32) uint32) {
	bt := (uint32(i) >> 21) & 0x1F
	ba := (uint32(i) >> 16) & 0x1F
	bb := (uint32(i) >> 11) & 0x1F
	setCRBit(c, bt, f(crBit(c, ba), crBit(c, bb)))
}

func opCRAND(c *CPU, i insn)  { crLogical(c, i, func(a, b uint32) uint32 { return a & b }) }
func opCRANDC(c *CPU, i insn) { crLogical(c, i, func(a, b uint32) uint32 { return a &^ b }) }
func opCROR(c *CPU, i insn)   { crLogical(c, i, func(a, b uint32) uint32 { return a | b }) }
func opCRORC(c *CPU, i insn)  { crLogical(c, i, func(a, b uint32) uint32 { return a | (1 - b) }) }
func opCRXOR(c *CPU, i insn)  { crLogical(c, i, func(a, b uint32) uint32 { return a ^ b }) }
func opCREQV(c *CPU, i insn)  { crLogical(c, i, func(a, b uint32) uint32 { return 1 - (a ^ b) }) }
func opCRNAND(c *CPU, i insn) { crLogical(c, i, func(a, b uint32) uint32 { return 1 - (a & b) }) }
func opCRNOR(c *CPU, i insn)  { crLogical(c, i, func(a, b uint32) uint32 { return 1 - (a | b) }) }
