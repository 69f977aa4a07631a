package vm

import (
	"fmt"
	"os/exec"

	"github.com/vmx32/vmx32/internal/extvars"
)

// writeToActiveFile and the WriteNum/WriteChar/WriteFloat helpers below
// are the portable rendition of core.c's global WriteNum/WriteChar/
// WriteFloat/WriteString, which always target whatever file the active
// output file descriptor names.
func (c *Core) writeToActiveFile(s string) {
	fmt.Fprint(c.files.activeWriteFile(), s)
}

func (c *Core) writeNum(n int32)     { fmt.Fprintf(c.files.activeWriteFile(), "%d", n) }
func (c *Core) writeChar(ch byte)    { c.files.activeWriteFile().Write([]byte{ch}) }
func (c *Core) writeFloat(f float32) { fmt.Fprintf(c.files.activeWriteFile(), "%g", f) }

// runShellCommand is the sandboxed EXE backend: os/exec via a shell,
// returning the process exit code the way system() does, rather than
// calling system() directly.
func runShellCommand(cmd string) int32 {
	if cmd == "" {
		return -1
	}
	c := exec.Command("/bin/sh", "-c", cmd)
	err := c.Run()
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return int32(exitErr.ExitCode())
	}
	return -1
}

// opRdc reads one byte from the active input file descriptor into Rd.
// Grounded on core.c's opRDC / files.c's ReadChar.
func opRdc(c *Core, _ byte, _ bool) {
	dst := c.singleReg()
	var one [1]byte
	if n, _ := c.files.activeReadFile().Read(one[:]); n != 1 {
		c.regs.SetInt(dst, -1)
		return
	}
	c.regs.SetInt(dst, int32(int8(one[0])))
}

// opRdn reads a whitespace-delimited integer from the active input file
// descriptor into Rd, mirroring ReadNum's scanf("%d", ...) behavior.
func opRdn(c *Core, _ byte, _ bool) {
	dst := c.singleReg()
	var n int32
	if _, err := fmt.Fscan(c.files.activeReadFile(), &n); err != nil {
		c.regs.SetInt(dst, 0)
		return
	}
	c.regs.SetInt(dst, n)
}

// opWrn writes a number to the active output file descriptor, either
// from a register (register mode) or a signed memory literal (immediate
// mode, per core.c's core_fnGetSignedData(..., 1) call — a 1-byte
// literal, not width-tagged).
func opWrn(c *Core, _ byte, modeReg bool) {
	if modeReg {
		src := c.singleReg()
		c.writeNum(c.regs.Int(src))
		return
	}
	c.writeNum(int32(int8(c.fetch8())))
}

func opWrc(c *Core, _ byte, modeReg bool) {
	if modeReg {
		src := c.singleReg()
		c.writeChar(byte(c.regs.Int(src)))
		return
	}
	c.writeChar(c.fetch8())
}

// opWrf writes a float: register mode reads REGF[Rs]; immediate mode
// reads a literal IEEE-754 byte count of 1 via core_fnGetFloatData,
// which in the reference implementation means the literal is actually
// a 1-byte value promoted to float — preserved here rather than
// "corrected" to a 4-byte float literal.
func opWrf(c *Core, _ byte, modeReg bool) {
	if modeReg {
		src := c.singleReg()
		c.writeFloat(c.regs.Float(src))
		return
	}
	c.writeFloat(float32(int8(c.fetch8())))
}

// opOfd opens a file named by string buffer Ra in the mode given by Rb
// (register mode) or a literal mode character (immediate mode), writing
// the new fd (or -1 on failure) back to Ra.
func opOfd(c *Core, _ byte, modeReg bool) {
	var bufReg, modeSrc byte
	var mode byte
	if modeReg {
		bufReg, modeSrc = c.regPair()
		mode = byte(c.regs.Int(modeSrc))
	} else {
		bufReg = c.singleReg()
		mode = c.fetch8()
	}
	id := c.regs.Uint(bufReg)
	path := c.strbufs.get(id).String()
	fd, err := c.files.open(path, mode)
	if err != nil {
		c.regs.SetInt(bufReg, -1)
		return
	}
	c.regs.SetInt(bufReg, int32(fd))
}

func opCfd(c *Core, _ byte, _ bool) {
	src := c.singleReg()
	fd := int(c.regs.Int(src))
	_ = c.files.close(fd)
}

func opSfd(c *Core, _ byte, _ bool) {
	src := c.singleReg()
	fd := int(c.regs.Int(src))
	_ = c.files.setActive(fd)
}

// opDly sleeps for a millisecond count held in a register or a
// 1-byte unsigned memory literal, matching core.c's opDLY exactly
// (including the 1-byte literal width, not a width-tagged one).
func opDly(c *Core, _ byte, modeReg bool) {
	var ms uint32
	if modeReg {
		src := c.singleReg()
		ms = c.regs.Uint(src)
	} else {
		ms = uint32(c.fetch8())
	}
	sleepMS(ms)
}

// opStm arms timer Rd with interval Rs milliseconds.
func opStm(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	id := int(c.regs.Int(dst))
	ms := c.regs.Uint(src)
	if err := c.timers.arm(id, ms); err != nil {
		c.fatal(ErrInvalidTimerID)
	}
}

// opCtm disarms timer Rs.
func opCtm(c *Core, _ byte, _ bool) {
	src := c.singleReg()
	id := int(c.regs.Int(src))
	if err := c.timers.disarm(id); err != nil {
		c.fatal(ErrInvalidTimerID)
	}
}

// opNfy requests a notification of kind Rs for external variable handle
// Rd. A bridge-reported failure halts the VM, matching opNFY's
// STOP-on-nonzero-return behavior.
func opNfy(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	h := extvars.Handle(c.regs.Uint(dst))
	kind := extvars.NotifyKind(c.regs.Int(src))
	if _, err := c.bridge.Notify(h, kind); err != nil {
		c.fatal(ErrNotificationError)
	}
}

// opWfs blocks until an event arrives on the core's signal queue, writing
// the signal kind into Ra and its payload into Rb. Timer fires are the
// only events posted to that queue; no bridge backend posts variable
// notifications to it. This is the channel-based rendition of
// waitSignal's sigwaitinfo call.
func opWfs(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	ev := <-c.signalQueue
	c.regs.SetInt(dst, int32(ev.kind))
	c.regs.SetInt(src, ev.payload)
}

// opEvs starts validation for the request id in Rb, writing the handle
// under validation into Ra and recording the request so GET can observe
// its captured value while validation is in flight.
func opEvs(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	requestID := int(c.regs.Int(src))
	req, err := c.bridge.ValidateStart(requestID)
	if err != nil {
		c.fatal(ErrValidationFailed)
		return
	}
	c.activeValidation[requestID] = req
	c.regs.SetUint(dst, uint32(req.Handle))
}

// opEve ends validation: Ra is the variable handle, Rb the result code
// (0 = allow). Grounded on opEVE, which takes the handle directly rather
// than a request id; the matching in-flight request is looked up by
// handle to recover the request id the bridge expects.
func opEve(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	h := extvars.Handle(c.regs.Uint(dst))
	result := int(c.regs.Int(src))
	for id, req := range c.activeValidation {
		if req.Handle == h {
			_ = c.bridge.ValidateEnd(id, result)
			delete(c.activeValidation, id)
			return
		}
	}
}

// opOps opens a print session for the notification handle in Ra,
// returning the output fd in Ra and the variable handle in Rb, or
// (0,0) on failure, per opOPS.
func opOps(c *Core, _ byte, _ bool) {
	dst, other := c.regPair()
	requestID := int(c.regs.Int(dst))
	sess, err := c.bridge.OpenPrintSession(requestID)
	if err != nil {
		c.regs.SetInt(dst, 0)
		c.regs.SetInt(other, 0)
		return
	}
	_ = c.files.registerWriteFD(sess.FD, 'w')
	_ = c.files.setActive(sess.FD)
	c.regs.SetUint(other, uint32(sess.Handle))
	c.regs.SetInt(dst, int32(sess.FD))
}

// opCps closes the print session named by the notification handle in Ra
// and the fd in Rb.
func opCps(c *Core, _ byte, _ bool) {
	dst, src := c.regPair()
	requestID := int(c.regs.Int(dst))
	fd := int(c.regs.Int(src))
	_ = c.bridge.ClosePrintSession(requestID, fd)
	_ = c.files.releaseFD(fd)
}
