package vm

import "github.com/vmx32/vmx32/internal/isa"

// transferWidth resolves how many bytes a LOD/STR memory<->register
// transfer moves, using the same (BYTE|WORD) masked rule literalSize
// applies to instruction-stream immediates. See operands.go's literalSize
// doc comment for why HANDLE-width transfers are 2 bytes, not 4.
func transferWidth(width byte) int { return literalSize(width) }

// loadFromMemory reads a width-sized big-endian value out of memory and
// zero-extends it to a full register value, per spec §4.1: "the register
// is rewritten wholesale in big-endian byte order then reinterpreted in
// host byte order."
func (c *Core) loadFromMemory(addr uint32, width byte) uint32 {
	switch transferWidth(width) {
	case 1:
		return uint32(c.mem.Read8(addr))
	case 2:
		return uint32(c.mem.Read16(addr))
	default:
		return c.mem.Read32(addr)
	}
}

// storeToMemory writes the low width-sized bytes of v to memory,
// big-endian.
func (c *Core) storeToMemory(addr uint32, v uint32, width byte) {
	switch transferWidth(width) {
	case 1:
		c.mem.Write8(addr, byte(v))
	case 2:
		c.mem.Write16(addr, uint16(v))
	default:
		c.mem.Write32(addr, v)
	}
}

// opLod implements LOD: load a register from a memory address held
// either in a register (register mode) or as an operand literal
// (immediate mode). Grounded on core.c's opLOD.
func opLod(c *Core, width byte, modeReg bool) {
	var dst byte
	var addr uint32
	if modeReg {
		d, s := c.regPair()
		dst = d
		addr = c.regs.Uint(s)
	} else {
		dst = c.singleReg()
		addr = c.immediate(width)
	}
	if addr >= c.mem.Len() {
		c.fatal(ErrPCOutOfBounds)
		return
	}
	c.regs.SetUint(dst, c.loadFromMemory(addr, width))
}

// opStr implements STR: store a register's low width-sized bytes to a
// memory address held in a register or as a literal.
func opStr(c *Core, width byte, modeReg bool) {
	var src byte
	var addr uint32
	if modeReg {
		d, s := c.regPair()
		addr = c.regs.Uint(d)
		src = s
	} else {
		src = c.singleReg()
		addr = c.immediate(width)
	}
	if addr >= c.mem.Len() {
		c.fatal(ErrPCOutOfBounds)
		return
	}
	c.storeToMemory(addr, c.regs.Uint(src), width)
}

// opMov implements MOV: register-register copy, or load-immediate.
func opMov(c *Core, width byte, modeReg bool) {
	if modeReg {
		dst, src := c.regPair()
		c.regs.SetUint(dst, c.regs.Uint(src))
		return
	}
	dst := c.singleReg()
	if width == isa.FLOAT32 {
		c.regs.SetUint(dst, c.immediate(width))
		return
	}
	c.regs.SetInt(dst, c.signedImmediate(width))
}
