package ppc

import "math"

// installFPOpcodes fills the double-precision (table63A, table63) and
// single-precision (table59A) extended opcode tables with the
// instruction families spec 4.1 calls out explicitly (fsel, fctiw,
// fctiwz, mffs, mtfsf) plus the arithmetic core every other FP op
// builds on. Coverage here is representative, not exhaustive: less
// common forms still decode to opIllegal via the table's default
// fill, the same placeholder the teacher's own table uses for
// opcodes it never wires up.
func installFPOpcodes() {
	table63A[21] = opFADD
	table63A[20] = opFSUB
	table63A[25] = opFMUL
	table63A[18] = opFDIV
	table63A[23] = opFSEL

	table63[72] = opFMR
	table63[40] = opFNEG
	table63[264] = opFABS
	table63[32] = opFCMPU
	table63[583] = opMFFS
	table63[711] = opMTFSF
	table63[14] = opFCTIW
	table63[15] = opFCTIWZ

	table59A[21] = opFADDS
	table59A[20] = opFSUBS
	table59A[25] = opFMULS
	table59A[18] = opFDIVS
}

func f64(c *CPU, n int) float64  { return math.Float64frombits(c.FPR[n]) }
func setF64(c *CPU, n int, v float64) { c.FPR[n] = math.Float64bits(v) }

func (c *CPU) fpCR1() {
	// FPSCR[FX,FEX,VX,OX] summary bits omitted; only the exception
	// flags instructions explicitly named in spec 4.1 are modeled.
}

func opFADD(c *CPU, i insn)  { setF64(c, i.frt(), f64(c, i.fra())+f64(c, i.frb())) }
func opFSUB(c *CPU, i insn)  { setF64(c, i.frt(), f64(c, i.fra())-f64(c, i.frb())) }
func opFMUL(c *CPU, i insn)  { setF64(c, i.frt(), f64(c, i.fra())*f64(c, i.frc())) }
func opFDIV(c *CPU, i insn)  { setF64(c, i.frt(), f64(c, i.fra())/f64(c, i.frb())) }

func opFADDS(c *CPU, i insn) { setF64(c, i.frt(), float64(float32(f64(c, i.fra())+f64(c, i.frb())))) }
func opFSUBS(c *CPU, i insn) { setF64(c, i.frt(), float64(float32(f64(c, i.fra())-f64(c, i.frb())))) }
func opFMULS(c *CPU, i insn) { setF64(c, i.frt(), float64(float32(f64(c, i.fra())*f64(c, i.frc())))) }
func opFDIVS(c *CPU, i insn) { setF64(c, i.frt(), float64(float32(f64(c, i.fra())/f64(c, i.frb())))) }

func opFMR(c *CPU, i insn)  { c.FPR[i.frt()] = c.FPR[i.frb()] }
func opFNEG(c *CPU, i insn) { setF64(c, i.frt(), -f64(c, i.frb())) }
func opFABS(c *CPU, i insn) { setF64(c, i.frt(), math.Abs(f64(c, i.frb()))) }

// opFSEL: fb if fa >= 0.0 (including +0, excluding NaN), else fc
// (spec 4.1).
func opFSEL(c *CPU, i insn) {
	a := f64(c, i.fra())
	if a >= 0 && !math.IsNaN(a) {
		setF64(c, i.frt(), f64(c, i.frb()))
	} else {
		setF64(c, i.frt(), f64(c, i.frc()))
	}
}

func opFCMPU(c *CPU, i insn) {
	a, b := f64(c, i.fra()), f64(c, i.frb())
	var lt, gt, eq, un bool
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		un = true
	case a < b:
		lt = true
	case a > b:
		gt = true
	default:
		eq = true
	}
	var field uint32
	if lt {
		field |= crLT
	}
	if gt {
		field |= crGT
	}
	if eq {
		field |= crEQ
	}
	if un {
		field |= crSO
	}
	c.setCRField(i.crfD(), field)
}

// opFCTIW/opFCTIWZ convert to a signed 32-bit integer stored in the
// low word of the target FPR, round-to-nearest / round-to-zero, with
// saturation on overflow (spec 4.1).
func opFCTIW(c *CPU, i insn)  { c.FPR[i.frt()] = fctiw(f64(c, i.frb()), math.RoundToEven) }
func opFCTIWZ(c *CPU, i insn) { c.FPR[i.frt()] = fctiw(f64(c, i.frb()), math.Trunc) }

func fctiw(v float64, round func(float64) float64) uint64 {
	r := round(v)
	var iv int32
	switch {
	case r >= math.MaxInt32:
		iv = math.MaxInt32
	case r <= math.MinInt32:
		iv = math.MinInt32
	default:
		iv = int32(r)
	}
	return 0xFFF8000000000000 | uint64(uint32(iv))
}

func opMFFS(c *CPU, i insn) {
	c.FPR[i.frt()] = (c.FPR[i.frt()] &^ 0xFFFFFFFF) | uint64(c.FPSCR)
}

func opMTFSF(c *CPU, i insn) {
	fm := (uint32(i) >> 17) & 0xFF
	var mask uint32
	for b := 0; b < 8; b++ {
		if fm&(1<<b) != 0 {
			mask |= 0xF << (b * 4)
		}
	}
	v := uint32(c.FPR[i.frb()])
	c.FPSCR = (c.FPSCR &^ mask) | (v & mask)
}

// --- FP load/store (primary opcodes 48/50/52/54) ---

func opLFS(c *CPU, i insn) {
	if v, ok := c.loadSized(c.ra0(i.ra())+i.d(), 4, false); ok {
		setF64(c, i.frt(), float64(math.Float32frombits(v)))
	}
}

func opLFD(c *CPU, i insn) {
	ea := c.ra0(i.ra()) + i.d()
	hi, ok1 := c.loadSized(ea, 4, false)
	lo, ok2 := c.loadSized(ea+4, 4, false)
	if ok1 && ok2 {
		c.FPR[i.frt()] = uint64(hi)<<32 | uint64(lo)
	}
}

func opSTFS(c *CPU, i insn) {
	v := math.Float32bits(float32(f64(c, i.rt())))
	c.storeSized(c.ra0(i.ra())+i.d(), 4, v)
}

func opSTFD(c *CPU, i insn) {
	ea := c.ra0(i.ra()) + i.d()
	bits := c.FPR[i.rt()]
	c.storeSized(ea, 4, uint32(bits>>32))
	c.storeSized(ea+4, 4, uint32(bits))
}
