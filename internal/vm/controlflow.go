package vm

// jumpTargets are always WORD-sized (label addresses are 16-bit per spec
// §3's label table), so every jump instruction is a fixed 3 bytes:
// prefix + 2-byte big-endian address, matching the not-taken INC_PC(3)
// path in core.c's conditional jump handlers.
func (c *Core) jumpTarget() uint32 {
	return uint32(c.fetch16())
}

func opJmp(c *Core, _ byte, _ bool) {
	c.pc = c.jumpTarget()
}

func opJzr(c *Core, _ byte, _ bool) {
	if c.flags.Zero() {
		opJmp(c, 0, false)
	} else {
		c.pc += 2
	}
}

func opJnz(c *Core, _ byte, _ bool) {
	if !c.flags.Zero() {
		opJmp(c, 0, false)
	} else {
		c.pc += 2
	}
}

func opJne(c *Core, _ byte, _ bool) {
	if c.flags.Negative() {
		opJmp(c, 0, false)
	} else {
		c.pc += 2
	}
}

func opJpo(c *Core, _ byte, _ bool) {
	if !c.flags.Negative() {
		opJmp(c, 0, false)
	} else {
		c.pc += 2
	}
}

func opJca(c *Core, _ byte, _ bool) {
	if c.flags.Carry() {
		opJmp(c, 0, false)
	} else {
		c.pc += 2
	}
}

// opJnc tests the Z flag, not C, preserved exactly as
// original_source/libvmcore/src/core.c's opJNC: `if (!(STATUS & ZFLAG))`.
// This is open question #1 in spec.md §9 and SPEC_FULL.md's resolution:
// kept as-is rather than "fixed" to test carry.
func opJnc(c *Core, _ byte, _ bool) {
	if !c.flags.Zero() {
		opJmp(c, 0, false)
	} else {
		c.pc += 2
	}
}

// opCal: register mode reads the call target from a register (index in
// the low nibble of the next byte); immediate mode reads a WORD literal.
// Either way the return address (PC after this instruction) is pushed,
// call depth is incremented, and the string-buffer manager is informed
// of the new level.
func opCal(c *Core, width byte, modeReg bool) {
	var target uint32
	if modeReg {
		r := c.singleReg()
		target = c.regs.Uint(r)
	} else {
		target = c.jumpTarget()
	}
	if !c.pushStack(c.pc) {
		return
	}
	c.pc = target
	c.callDepth++
	c.strbufs.setLevel(c.callDepth)
}

// opRet pops the return address, then releases every string buffer that
// belongs to the outgoing call-depth level before decrementing it.
func opRet(c *Core, _ byte, _ bool) {
	target, ok := c.popStack()
	if !ok {
		return
	}
	c.pc = target
	c.strbufs.free(c.callDepth)
	if c.callDepth > 0 {
		c.callDepth--
	}
}

func opPsh(c *Core, _ byte, _ bool) {
	r := c.singleReg()
	c.pushStack(c.regs.Uint(r))
}

func opPop(c *Core, _ byte, _ bool) {
	r := c.singleReg()
	if v, ok := c.popStack(); ok {
		c.regs.SetUint(r, v)
	}
}
