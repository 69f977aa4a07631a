package vm

import (
	"github.com/vmx32/vmx32/internal/extvars"
	"github.com/vmx32/vmx32/internal/isa"
)

// opGet implements GET: Rd = bridge.Get(handle in Rs), with the string
// case appending into the string buffer named by Rd instead of writing a
// register. Grounded on core.c's opGET.
//
// width is the prefix's already-decoded width field; masking it down to
// (BYTE|WORD) reproduces core.c's "datatype = MEMORY[PC] & (BYTE|WORD)",
// which only ever yields {0x00,0x80,0xC0} plus WORD/HANDLE both
// collapsing to 0x40. The switch below has no case for that 0x40 value:
// a WORD (or HANDLE, which aliases WORD under this mask) datatype
// therefore falls to default and is treated as a plain int fetch. This
// is open question #3 in SPEC_FULL.md's resolutions, preserved rather
// than given its own case.
func opGet(c *Core, width byte, _ bool) {
	datatype := width & (isa.BYTE | isa.WORD)
	regs := c.fetch8()
	src := regs & 0x0F
	dst := (regs >> 4) & 0x0F

	h := extvars.Handle(c.regs.Uint(src))
	switch datatype {
	case isa.BYTE:
		s := c.getExternString(h)
		buf := c.strbufs.get(c.regs.Uint(dst))
		buf.clear()
		buf.appendString(s)
	case isa.FLOAT32:
		c.regs.SetFloat(dst, c.getExternFloat(h))
	default:
		c.regs.SetInt(dst, c.getExternInt(h))
	}
}

// opSet implements SET: bridge.Set(handle in Rd, value in Rs).
//
// The datatype mask is identical to opGet's. The reference switch reads:
//
//	case HANDLE:
//	case BYTE:
//	    ... SetString ...
//	    // no break: falls into FLOAT32
//	case FLOAT32:
//	    ... SetFloat ...
//	    break
//	default:
//	    ... SetInt ...
//
// Because datatype can only ever be {0x00,0x40,0x80,0xC0}, the literal
// "case HANDLE" (0x60) label is unreachable dead code in the original —
// it never fires on its own, since HANDLE's byte masks down to the same
// 0x40 that WORD does, and 0x40 falls to default just like GET's WORD
// case. The real, reachable quirk is BYTE falling through into FLOAT32
// with no break: every string SET also performs a float SET immediately
// after. This is open question #4, preserved via an explicit
// fallthrough.
func opSet(c *Core, width byte, _ bool) {
	datatype := width & (isa.BYTE | isa.WORD)
	regs := c.fetch8()
	src := regs & 0x0F
	dst := (regs >> 4) & 0x0F
	h := extvars.Handle(c.regs.Uint(dst))

	switch datatype {
	case isa.BYTE:
		buf := c.strbufs.get(c.regs.Uint(src))
		c.bridge.SetString(h, buf.String())
		fallthrough
	case isa.FLOAT32:
		c.bridge.SetFloat(h, c.regs.Float(src))
	default:
		c.bridge.Set(h, c.regs.Int(src))
	}
}

// getExternString serves GET's string case: if h is the subject of an
// in-flight validation request, the captured proposed value is returned
// in place of the committed one, matching libvarvm.c's
// hValidationVar/validationData substitution (SPEC_FULL supplemented
// feature #6). Otherwise the bridge is asked directly.
func (c *Core) getExternString(h extvars.Handle) string {
	for _, req := range c.activeValidation {
		if req.Handle == h {
			return req.CapturedString
		}
	}
	return c.bridge.GetString(h)
}

func (c *Core) getExternInt(h extvars.Handle) int32 {
	for _, req := range c.activeValidation {
		if req.Handle == h {
			return req.CapturedInt
		}
	}
	return c.bridge.Get(h)
}

func (c *Core) getExternFloat(h extvars.Handle) float32 {
	for _, req := range c.activeValidation {
		if req.Handle == h {
			return req.CapturedFloat
		}
	}
	return c.bridge.GetFloat(h)
}
