package vm

import "github.com/vmx32/vmx32/internal/isa"

func opNop(c *Core, _ byte, _ bool) {}

// aluInt applies a binary integer operation and sets Z/N/C from the
// destination's old and new values, per spec §4.2's flag rule.
func (c *Core) aluInt(dst byte, op func(a, b int32) int32, rhs int32) {
	old := c.regs.Uint(dst)
	result := op(c.regs.Int(dst), rhs)
	c.regs.SetInt(dst, result)
	c.flags.setInt(old, uint32(result))
}

func (c *Core) aluFloat(dst byte, op func(a, b float32) float32, rhs float32) {
	result := op(c.regs.Float(dst), rhs)
	c.regs.SetFloat(dst, result)
	c.flags.setFloat(result)
}

func opAdd(c *Core, width byte, modeReg bool) {
	if width == isa.FLOAT32 {
		dst, rhsBits := c.aluOperand(width, modeReg)
		c.aluFloat(dst, func(a, b float32) float32 { return a + b }, bitsToFloat(rhsBits, width, modeReg))
		return
	}
	dst, rhs := c.aluOperandSigned(width, modeReg)
	c.aluInt(dst, func(a, b int32) int32 { return a + b }, rhs)
}

func opSub(c *Core, width byte, modeReg bool) {
	if width == isa.FLOAT32 {
		dst, rhsBits := c.aluOperand(width, modeReg)
		c.aluFloat(dst, func(a, b float32) float32 { return a - b }, bitsToFloat(rhsBits, width, modeReg))
		return
	}
	dst, rhs := c.aluOperandSigned(width, modeReg)
	c.aluInt(dst, func(a, b int32) int32 { return a - b }, rhs)
}

func opMul(c *Core, width byte, modeReg bool) {
	if width == isa.FLOAT32 {
		dst, rhsBits := c.aluOperand(width, modeReg)
		c.aluFloat(dst, func(a, b float32) float32 { return a * b }, bitsToFloat(rhsBits, width, modeReg))
		return
	}
	dst, rhs := c.aluOperandSigned(width, modeReg)
	c.aluInt(dst, func(a, b int32) int32 { return a * b }, rhs)
}

func opDiv(c *Core, width byte, modeReg bool) {
	if width == isa.FLOAT32 {
		dst, rhsBits := c.aluOperand(width, modeReg)
		rhs := bitsToFloat(rhsBits, width, modeReg)
		if rhs == 0 {
			c.regs.SetFloat(dst, 0)
			c.flags.setFloat(0)
			return
		}
		c.aluFloat(dst, func(a, b float32) float32 { return a / b }, rhs)
		return
	}
	dst, rhs := c.aluOperandSigned(width, modeReg)
	if rhs == 0 {
		c.aluInt(dst, func(a, b int32) int32 { return 0 }, 0)
		return
	}
	c.aluInt(dst, func(a, b int32) int32 { return a / b }, rhs)
}

func opAnd(c *Core, width byte, modeReg bool) {
	dst, rhs := c.aluOperandSigned(width, modeReg)
	c.aluInt(dst, func(a, b int32) int32 { return a & b }, rhs)
}

func opOr(c *Core, width byte, modeReg bool) {
	dst, rhs := c.aluOperandSigned(width, modeReg)
	c.aluInt(dst, func(a, b int32) int32 { return a | b }, rhs)
}

// opNot is the sole unary ALU instruction: single-register bitwise
// complement.
func opNot(c *Core, width byte, modeReg bool) {
	dst := c.singleReg()
	old := c.regs.Uint(dst)
	result := ^old
	c.regs.SetUint(dst, result)
	c.flags.setInt(old, result)
}

// opShr/opShl use the unsigned view, per spec §4.2: shifting does not
// preserve the sign bit on the right.
func opShr(c *Core, width byte, modeReg bool) {
	dst, rhs := c.aluOperand(width, modeReg)
	old := c.regs.Uint(dst)
	result := old >> (rhs & 31)
	c.regs.SetUint(dst, result)
	c.flags.setInt(old, result)
}

func opShl(c *Core, width byte, modeReg bool) {
	dst, rhs := c.aluOperand(width, modeReg)
	old := c.regs.Uint(dst)
	result := old << (rhs & 31)
	c.regs.SetUint(dst, result)
	c.flags.setInt(old, result)
}

// opCmp computes (lhs - rhs) without writing back; float mode sets Z/N
// only, matching opCMP's two branches in core.c.
func opCmp(c *Core, width byte, modeReg bool) {
	if width == isa.FLOAT32 {
		dst, rhsBits := c.aluOperand(width, modeReg)
		lhs := c.regs.Float(dst)
		rhs := bitsToFloat(rhsBits, width, modeReg)
		c.flags.setFloat(lhs - rhs)
		return
	}
	dst, rhs := c.aluOperandSigned(width, modeReg)
	old := c.regs.Uint(dst)
	result := uint32(c.regs.Int(dst) - rhs)
	c.flags.setInt(old, result)
}

func opTof(c *Core, _ byte, _ bool) {
	dst := c.singleReg()
	c.regs.SetFloat(dst, float32(c.regs.Int(dst)))
}

func opToi(c *Core, _ byte, _ bool) {
	dst := c.singleReg()
	c.regs.SetInt(dst, int32(c.regs.Float(dst)))
}

func opHlt(c *Core, _ byte, _ bool) {
	c.running = false
}

// opExt is a no-op hook reserved for host-extension trapping in the
// reference core; retained as a documented no-op rather than invented
// behavior, since neither spec.md nor original_source assigns it any
// further semantics beyond "exists in the primary table".
func opExt(c *Core, _ byte, _ bool) {}

// bitsToFloat reinterprets an aluOperand result as a float: register mode
// already carries the register's raw bits (so reinterpret them via the
// float view), immediate mode already decoded four raw IEEE-754 bytes.
func bitsToFloat(bits uint32, width byte, modeReg bool) float32 {
	return float32FromBits(bits)
}
