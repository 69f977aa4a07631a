package vm

// Secondary-table string-buffer opcodes: CSB/ZSB/WSB/ASS/ASB/ASN/ASC/ASF/
// SBL/SBO/SCO/GCO/EXE/WRS. Grounded on core.c's opCSB..opEXE family.
// Every two-register form here decodes the same (dst<<4)|src byte via
// regPair; every single-register form uses singleReg.

func opCsb(c *Core, _ byte, _ bool) {
	id := c.regs.Uint(c.singleReg())
	c.strbufs.create(id)
}

func opZsb(c *Core, _ byte, _ bool) {
	id := c.regs.Uint(c.singleReg())
	c.strbufs.get(id).clear()
}

func opWsb(c *Core, _ byte, _ bool) {
	id := c.regs.Uint(c.singleReg())
	c.writeToActiveFile(c.strbufs.get(id).String())
}

// opAss: Ra,Rb -> append the NUL-terminated string at memory address
// REG[Rb] to string buffer REG[Ra].
func opAss(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	id := c.regs.Uint(dst)
	addr := c.regs.Uint(src)
	c.strbufs.get(id).appendString(c.readCString(addr))
}

// opAsb: Ra,Rb -> append string buffer Rb's contents to string buffer Ra.
// core.c reads both operands through REG[], i.e. the register holds the
// buffer id directly, same as every other string-buffer instruction.
func opAsb(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	dstID := c.regs.Uint(dst)
	srcID := c.regs.Uint(src)
	c.strbufs.get(dstID).appendString(c.strbufs.get(srcID).String())
}

func opAsn(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	id := c.regs.Uint(dst)
	c.strbufs.get(id).appendNumber(c.regs.Int(src))
}

func opAsc(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	id := c.regs.Uint(dst)
	c.strbufs.get(id).appendChar(byte(c.regs.Int(src)))
}

func opAsf(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	id := c.regs.Uint(dst)
	c.strbufs.get(id).appendFloat(c.regs.Float(src))
}

func opSbl(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	id := c.regs.Uint(src)
	c.regs.SetUint(dst, uint32(len(c.strbufs.get(id).String())))
}

func opSbo(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	id := c.regs.Uint(dst)
	offset := c.regs.Uint(src)
	c.strbufs.get(id).setRWOffset(int(offset))
}

func opGco(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	id := c.regs.Uint(src)
	c.regs.SetInt(dst, int32(int8(c.strbufs.get(id).getCharAtCursor())))
}

// opSco: register mode reads the character from Rb; immediate mode reads
// a literal byte that follows the instruction. Grounded on core.c's
// opSCO, which (unusually among this family) advances PC *before*
// performing the write in both branches.
func opSco(c *Core, _ byte, modeReg bool) {
	if modeReg {
		dst, src := c.regPair()
		id := c.regs.Uint(dst)
		c.strbufs.get(id).setCharAtCursor(byte(c.regs.Int(src)))
		return
	}
	dst := c.singleReg()
	id := c.regs.Uint(dst)
	ch := c.fetch8()
	c.strbufs.get(id).setCharAtCursor(ch)
}

// opExe runs a string buffer's contents as a shell command via os/exec,
// the sandboxed idiomatic stand-in for core.c's raw system() call, and
// stores the command's exit code in Ra. Grounded on opEXE.
func opExe(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	id := c.regs.Uint(src)
	cmd := c.strbufs.get(id).String()
	c.regs.SetInt(dst, runShellCommand(cmd))
}

// opWrs writes the NUL-terminated string at memory address REG[Rs] to
// the active output file descriptor.
func opWrs(c *Core, _ byte, _ bool) {
	src := c.singleReg()
	addr := c.regs.Uint(src)
	c.writeToActiveFile(c.readCString(addr))
}

// readCString scans memory from addr for a terminating NUL, mirroring
// opWRS/opASS's direct pointer-into-MEMORY usage in the reference core.
func (c *Core) readCString(addr uint32) string {
	end := addr
	for end < c.mem.Len() && c.mem.bytes[end] != 0 {
		end++
	}
	return string(c.mem.bytes[addr:end])
}
