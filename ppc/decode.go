package ppc

// insn wraps one 32-bit instruction word with the field extractors
// used throughout the opcode table. Grounded on the teacher's
// stepInfo: a small value carrying the fetched word plus decoded
// field accessors consulted by each table entry.
type insn uint32

func (i insn) opcode() uint32 { return uint32(i) >> 26 }
func (i insn) rt() int        { return int((i >> 21) & 0x1F) }
func (i insn) rs() int        { return int((i >> 21) & 0x1F) }
func (i insn) ra() int        { return int((i >> 16) & 0x1F) }
func (i insn) rb() int        { return int((i >> 11) & 0x1F) }
func (i insn) simm() uint32   { return signExt16(uint16(i)) }
func (i insn) uimm() uint32   { return uint32(uint16(i)) }
func (i insn) d() uint32      { return signExt16(uint16(i)) }
func (i insn) rc() bool       { return i&1 != 0 }
func (i insn) oe() bool       { return (i>>10)&1 != 0 }
func (i insn) extOp() uint32  { return (uint32(i) >> 1) & 0x3FF }
func (i insn) crfD() int      { return int((i >> 23) & 7) }
func (i insn) crfS() int      { return int((i >> 18) & 7) }
func (i insn) li() uint32     { return signExt26(uint32(i) & 0x03FFFFFC) }
func (i insn) aa() bool       { return i&2 != 0 }
func (i insn) lk() bool       { return i&1 != 0 }
func (i insn) bo() uint32     { return (uint32(i) >> 21) & 0x1F }
func (i insn) bi() uint32     { return (uint32(i) >> 16) & 0x1F }
func (i insn) bd() uint32     { return signExt16(uint16(uint32(i) & 0xFFFC)) }
func (i insn) sh() uint32     { return (uint32(i) >> 11) & 0x1F }
func (i insn) mb() uint32     { return (uint32(i) >> 6) & 0x1F }
func (i insn) me() uint32     { return (uint32(i) >> 1) & 0x1F }
func (i insn) spr() uint32    { return (uint32(i) >> 11) & 0x3FF }
func (i insn) to() uint32     { return (uint32(i) >> 21) & 0x1F }
func (i insn) frt() int       { return int((i >> 21) & 0x1F) }
func (i insn) fra() int       { return int((i >> 16) & 0x1F) }
func (i insn) frb() int       { return int((i >> 11) & 0x1F) }
func (i insn) frc() int       { return int((i >> 6) & 0x1F) }

// opFunc executes one decoded instruction against c.
type opFunc func(c *CPU, i insn)

// primaryTable has 64 slots indexed by the 6-bit primary opcode
// (spec 4.1). Opcodes 19, 31, 59, 63 redirect to secondary tables
// keyed by the 10-bit extended opcode; slots this table never fills
// default to opIllegal, the same placeholder the teacher's
// createTable uses for reserved/undefined opcodes.
var primaryTable [64]opFunc

// table19, table31, table63 are the secondary dense tables
// (spec 4.1/9 "prefer dense arrays").
var table19 [1024]opFunc
var table31 [1024]opFunc
var table63 [1024]opFunc

// table59A and table63A hold the A-form floating-point instructions
// (fadd/fsub/fmul/fdiv/fsel), keyed by the 5-bit extended opcode at
// bits 26..30. A-form reuses the FRC field (bits 6..10) as a real
// operand, so these opcodes cannot share the 10-bit X-form tables
// above: masking to 10 bits would fold FRC's value into the opcode
// key. A nil entry means "not an A-form opcode"; for opcode 63
// execute() then falls back to the 10-bit X-form table, and for
// opcode 59, which has no X-form table, it raises opIllegal.
var table59A [32]opFunc
var table63A [32]opFunc

func (i insn) extOpA() uint32 { return (uint32(i) >> 1) & 0x1F }

func init() {
	for i := range primaryTable {
		primaryTable[i] = opIllegal
	}
	for i := range table19 {
		table19[i] = opIllegal
	}
	for i := range table31 {
		table31[i] = opIllegal
	}
	for i := range table63 {
		table63[i] = opIllegal
	}
	installIntOpcodes()
	installBranchOpcodes()
	installFPOpcodes()
}

func (c *CPU) execute(word uint32) {
	i := insn(word)
	op := i.opcode()
	switch op {
	case 19:
		table19[i.extOp()](c, i)
	case 31:
		table31[i.extOp()](c, i)
	case 59:
		if fn := table59A[i.extOpA()]; fn != nil {
			fn(c, i)
			return
		}
		opIllegal(c, i)
	case 63:
		if fn := table63A[i.extOpA()]; fn != nil {
			fn(c, i)
			return
		}
		table63[i.extOp()](c, i)
	default:
		primaryTable[op](c, i)
	}
}

func opIllegal(c *CPU, i insn) {
	c.HandleException(VecProgram, SRR1IllegalOp)
}
