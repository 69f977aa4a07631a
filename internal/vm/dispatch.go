package vm

import "github.com/vmx32/vmx32/internal/isa"

// handlerFunc executes one decoded instruction. c.pc already points past
// the prefix byte; the handler is solely responsible for consuming the
// rest of its own encoding and advancing c.pc accordingly, per spec
// §4.1's dispatch contract.
type handlerFunc func(c *Core, width byte, modeReg bool)

// instruction is the tagged-variant table entry spec §9's "dynamic
// dispatch" design note calls for: {opcode, name, handler}.
type instruction struct {
	opcode  byte
	name    string
	handler handlerFunc
}

// primaryTable, secondaryTable and diagnosticTable must be declared in
// strict opcode order; checkInstructionTables verifies this at startup
// and NewCore refuses to build a Core if it does not hold, exactly
// reproducing core_fnCheckInstructionList's self-check.
var primaryTable = [isa.MaxPrimaryOpcode + 1]instruction{
	isa.NOP:  {isa.NOP, "NOP", opNop},
	isa.LOD:  {isa.LOD, "LOD", opLod},
	isa.STR:  {isa.STR, "STR", opStr},
	isa.MOV:  {isa.MOV, "MOV", opMov},
	isa.ADD:  {isa.ADD, "ADD", opAdd},
	isa.SUB:  {isa.SUB, "SUB", opSub},
	isa.MUL:  {isa.MUL, "MUL", opMul},
	isa.DIV:  {isa.DIV, "DIV", opDiv},
	isa.AND:  {isa.AND, "AND", opAnd},
	isa.OR:   {isa.OR, "OR", opOr},
	isa.NOT:  {isa.NOT, "NOT", opNot},
	isa.SHR:  {isa.SHR, "SHR", opShr},
	isa.SHL:  {isa.SHL, "SHL", opShl},
	isa.JMP:  {isa.JMP, "JMP", opJmp},
	isa.JZR:  {isa.JZR, "JZR", opJzr},
	isa.JNZ:  {isa.JNZ, "JNZ", opJnz},
	isa.JNE:  {isa.JNE, "JNE", opJne},
	isa.JPO:  {isa.JPO, "JPO", opJpo},
	isa.JCA:  {isa.JCA, "JCA", opJca},
	isa.JNC:  {isa.JNC, "JNC", opJnc},
	isa.CAL:  {isa.CAL, "CAL", opCal},
	isa.RET:  {isa.RET, "RET", opRet},
	isa.CMP:  {isa.CMP, "CMP", opCmp},
	isa.TOF:  {isa.TOF, "TOF", opTof},
	isa.TOI:  {isa.TOI, "TOI", opToi},
	isa.PSH:  {isa.PSH, "PSH", opPsh},
	isa.POP:  {isa.POP, "POP", opPop},
	isa.HLT:  {isa.HLT, "HLT", opHlt},
	isa.EXT:  {isa.EXT, "EXT", opExt},
	isa.GET:  {isa.GET, "GET", opGet},
	isa.SET:  {isa.SET, "SET", opSet},
	isa.NEXT: {isa.NEXT, "NEXT", opNextSecondary},
}

var secondaryTable = [isa.MaxSecondaryOpcode + 1]instruction{
	isa.OPS: {isa.OPS, "OPS", opOps},
	isa.CPS: {isa.CPS, "CPS", opCps},
	isa.WRS: {isa.WRS, "WRS", opWrs},
	isa.CSB: {isa.CSB, "CSB", opCsb},
	isa.ZSB: {isa.ZSB, "ZSB", opZsb},
	isa.WSB: {isa.WSB, "WSB", opWsb},
	isa.ASS: {isa.ASS, "ASS", opAss},
	isa.ASB: {isa.ASB, "ASB", opAsb},
	isa.ASN: {isa.ASN, "ASN", opAsn},
	isa.ASC: {isa.ASC, "ASC", opAsc},
	isa.ASF: {isa.ASF, "ASF", opAsf},
	isa.RDC: {isa.RDC, "RDC", opRdc},
	isa.RDN: {isa.RDN, "RDN", opRdn},
	isa.WRF: {isa.WRF, "WRF", opWrf},
	isa.WRN: {isa.WRN, "WRN", opWrn},
	isa.WRC: {isa.WRC, "WRC", opWrc},
	isa.DLY: {isa.DLY, "DLY", opDly},
	isa.STM: {isa.STM, "STM", opStm},
	isa.CTM: {isa.CTM, "CTM", opCtm},
	isa.NFY: {isa.NFY, "NFY", opNfy},
	isa.WFS: {isa.WFS, "WFS", opWfs},
	isa.EVS: {isa.EVS, "EVS", opEvs},
	isa.EVE: {isa.EVE, "EVE", opEve},
	isa.SBL: {isa.SBL, "SBL", opSbl},
	isa.SBO: {isa.SBO, "SBO", opSbo},
	isa.SCO: {isa.SCO, "SCO", opSco},
	isa.GCO: {isa.GCO, "GCO", opGco},
	isa.OFD: {isa.OFD, "OFD", opOfd},
	isa.CFD: {isa.CFD, "CFD", opCfd},
	isa.SFD: {isa.SFD, "SFD", opSfd},
	isa.EXE: {isa.EXE, "EXE", opExe},
}

var diagnosticTable = [isa.MaxDiagnosticOpcode + 1]instruction{
	isa.MDUMP: {isa.MDUMP, "MDUMP", opMdump},
	isa.RDUMP: {isa.RDUMP, "RDUMP", opRdump},
}

// checkInstructionTables reproduces core_fnCheckInstructionList: every
// slot's stored opcode must equal its array index, or the dispatch
// tables have drifted out of the order the spec requires.
func checkInstructionTables() error {
	for i, e := range primaryTable {
		if e.opcode != byte(i) {
			return ErrTableOrder
		}
	}
	for i, e := range secondaryTable {
		if e.opcode != byte(i) {
			return ErrTableOrder
		}
	}
	for i, e := range diagnosticTable {
		if e.opcode != byte(i) {
			return ErrTableOrder
		}
	}
	return nil
}

func init() {
	if err := checkInstructionTables(); err != nil {
		panic(err)
	}
}

// opNextSecondary is the NEXT trampoline out of the primary table.
func opNextSecondary(c *Core, _ byte, _ bool) {
	prefix := c.fetch8()
	width := prefix & isa.WidthMask
	modeReg := prefix&isa.ModeReg != 0
	op := prefix & isa.OpMask
	if op == isa.NEXT {
		opNextDiagnostic(c, width, modeReg)
		return
	}
	if int(op) >= len(secondaryTable) {
		c.fatal(ErrIllegalOpcode)
		return
	}
	secondaryTable[op].handler(c, width, modeReg)
}

// opNextDiagnostic is the further NEXT trampoline into the diagnostic
// table, matching spec §8's "dispatch to 0x1F again... falls through to
// the diagnostic table" boundary behavior.
func opNextDiagnostic(c *Core, _ byte, _ bool) {
	prefix := c.fetch8()
	width := prefix & isa.WidthMask
	modeReg := prefix&isa.ModeReg != 0
	op := prefix & isa.OpMask
	if int(op) >= len(diagnosticTable) {
		c.fatal(ErrIllegalOpcode)
		return
	}
	diagnosticTable[op].handler(c, width, modeReg)
}

// Execute runs the fetch-decode-dispatch loop from the current PC until a
// halt opcode or a fatal error. Blocking opcodes (RDC/RDN reads, WFS,
// DLY) block inside Execute itself, which runs to completion in one
// goroutine, as spec §5 requires.
func (c *Core) Execute() error {
	c.running = true
	c.hadError = false
	for c.running {
		if !c.checkPC() {
			break
		}
		prefix := c.fetch8()
		width := prefix & isa.WidthMask
		modeReg := prefix&isa.ModeReg != 0
		op := prefix & isa.OpMask
		primaryTable[op].handler(c, width, modeReg)
	}
	if c.hadError {
		return c.lastErr
	}
	return nil
}
