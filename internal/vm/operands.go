package vm

import "github.com/vmx32/vmx32/internal/isa"

// regPair decodes the register-register operand byte (dst<<4)|src.
func (c *Core) regPair() (dst, src byte) {
	b := c.fetch8()
	return (b >> 4) & 0x0F, b & 0x0F
}

// singleReg decodes a lone 4-bit register index out of the low nibble of
// the next byte, the encoding single-operand register-mode instructions
// (CAL, PSH, POP, NOT, TOF, TOI...) use.
func (c *Core) singleReg() byte {
	return c.fetch8() & 0x0F
}

// literalSize reproduces the reference core's immediate-size dispatch,
// which tests only bits 7 and 6 of the width tag (datatype = *instr &
// (BYTE|WORD)) rather than the full three-bit width field. BYTE (0x80)
// and WORD (0x40) match themselves; FLOAT32 (0xC0) and LONG (0x00) both
// fall to the 4-byte case; HANDLE (0x60) masks down to 0x40 and is
// therefore read as a 2-byte value, identically to WORD. This is a
// genuine quirk of the original encoding, not a LONG-like 4-byte read,
// and every width-tagged immediate/address operand in the instruction
// set inherits it.
func literalSize(width byte) int {
	switch width & (isa.BYTE | isa.WORD) {
	case isa.BYTE:
		return 1
	case isa.WORD: // also matches HANDLE
		return 2
	default: // LONG, FLOAT32
		return 4
	}
}

// immediate reads a width-sized immediate operand per literalSize, and
// returns its raw 32-bit bit pattern.
func (c *Core) immediate(width byte) uint32 {
	switch literalSize(width) {
	case 1:
		return uint32(c.fetch8())
	case 2:
		return uint32(c.fetch16())
	default:
		return c.fetch32()
	}
}

// signedImmediate sign-extends a 1- or 2-byte immediate; 4-byte values
// are already full width.
func (c *Core) signedImmediate(width byte) int32 {
	switch literalSize(width) {
	case 1:
		return int32(int8(c.fetch8()))
	case 2:
		return int32(int16(c.fetch16()))
	default:
		return int32(c.fetch32())
	}
}

// aluOperand resolves the second operand of a two-operand ALU/MOV/CMP
// instruction: register-register mode reads (dst,src) and returns
// (dst, REG[src]); immediate mode reads a destination register followed
// by a width-sized immediate. The immediate is zero-extended, which is
// only correct for the unsigned-view shifts (SHR, SHL) and for the float
// paths of ADD/SUB/MUL/DIV/CMP, which reinterpret the raw bits; the
// integer paths use aluOperandSigned below.
func (c *Core) aluOperand(width byte, modeReg bool) (dst byte, value uint32) {
	if modeReg {
		d, s := c.regPair()
		return d, c.regs.Uint(s)
	}
	d := c.singleReg()
	return d, c.immediate(width)
}

// aluOperandSigned is aluOperand's sign-extending counterpart, matching
// core.c's core_fnGetSignedData used by opADD/opSUB/opMUL/opDIV/opAND/
// opOR/opCMP. Register mode is unaffected (REG[src]'s bit pattern
// reinterprets the same either way); only the immediate form differs.
func (c *Core) aluOperandSigned(width byte, modeReg bool) (dst byte, value int32) {
	if modeReg {
		d, s := c.regPair()
		return d, c.regs.Int(s)
	}
	d := c.singleReg()
	return d, c.signedImmediate(width)
}
