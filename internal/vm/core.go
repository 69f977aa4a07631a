// Package vm implements the execution core: registers, flags, memory,
// call frames, the string-buffer subsystem, the file-descriptor table,
// the timer subsystem, and the external-variable bridge dispatch.
//
// Grounded on _examples/IntuitionAmiga-IntuitionEngine/cpu_ie32.go (the
// register/flag/dispatch shape) and on original_source/libvmcore/src/
// core.c (the exact opcode semantics, including the preserved quirks
// documented in SPEC_FULL.md's "Open questions — resolutions").
package vm

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/vmx32/vmx32/internal/extvars"
)

// Core is one VM instance: its memory image, registers, flags, and the
// four pieces of process-wide-in-the-original state that this port scopes
// to the instance (string buffers, files, timers, external bridge).
type Core struct {
	mem   *memory
	regs  registerFile
	flags flags

	pc         uint32
	callDepth  uint32
	running    bool
	hadError   bool
	lastErr    error
	programSize uint32

	strbufs *strbufManager
	files   *fileTable
	timers  *timerTable
	bridge  extvars.Bridge

	signalQueue chan signalEvent

	// activeValidation tracks, per bridge request id, the captured value
	// GET must substitute for the committed value while validation for
	// that handle is in progress. Grounded on libvarvm.c's
	// hValidationVar/validationData instance fields (SPEC_FULL point 6).
	activeValidation map[int]*extvars.ValidationRequest

	log zerolog.Logger
}

// Config bundles the construction-time parameters spec §6's CLIs expose
// as -c/-s/-L flags.
type Config struct {
	CoreSize  uint32
	StackSize uint32
	Bridge    extvars.Bridge
	Logger    zerolog.Logger
}

// NewCore allocates a VM instance with the given image and stack sizes.
// If cfg.Bridge is nil, the in-process Default bridge is installed,
// matching the reference CORE_fnCreate/CORE_fnInitExternalsLib pair when
// no -L externals library is given.
func NewCore(cfg Config) (*Core, error) {
	if cfg.StackSize >= cfg.CoreSize {
		return nil, fmt.Errorf("stack size %d must be smaller than core size %d", cfg.StackSize, cfg.CoreSize)
	}
	if err := checkInstructionTables(); err != nil {
		return nil, err
	}
	bridge := cfg.Bridge
	if bridge == nil {
		bridge = extvars.NewDefault()
	}
	queue := make(chan signalEvent, 64)
	c := &Core{
		mem:              newMemory(cfg.CoreSize, cfg.StackSize),
		strbufs:          newStrbufManager(),
		files:            newFileTable(),
		timers:           newTimerTable(queue),
		bridge:           bridge,
		signalQueue:      queue,
		activeValidation: make(map[int]*extvars.ValidationRequest),
		log:              cfg.Logger,
	}
	c.regs.SetUint(spReg, cfg.CoreSize)
	return c, nil
}

const (
	spReg = 14
	pcReg = 15
	r0Reg = 0
	r1Reg = 1
)

// Memory exposes the raw image, e.g. for the loader and the disassembler.
func (c *Core) Memory() []byte { return c.mem.bytes }

// ProgramSize returns the configured code+literal region size.
func (c *Core) ProgramSize() uint32 { return c.programSize }

// SetProgramSize records how much of the image the loader/assembler
// filled in, matching CORE_fnSetProgramSize.
func (c *Core) SetProgramSize(n uint32) { c.programSize = n }

// Load copies a flat VM image into the core, refusing images that would
// overrun the stack region (spec §6's loader contract).
func (c *Core) Load(image []byte) error {
	limit := c.mem.Len() - c.mem.stackSize
	if uint32(len(image)) > limit {
		return fmt.Errorf("program of %d bytes exceeds usable region of %d bytes", len(image), limit)
	}
	copy(c.mem.bytes, image)
	c.programSize = uint32(len(image))
	return nil
}

// Save writes the full image to path.
func (c *Core) Save(path string) error {
	return os.WriteFile(path, c.mem.bytes, 0o644)
}

// Registers/Flags accessors used by coredump and disasm.
func (c *Core) RegisterValue(i byte) uint32 { return c.regs.Uint(i) }
func (c *Core) FlagsWord() uint32           { return c.flags.status }
func (c *Core) PC() uint32                  { return c.pc }
func (c *Core) SP() uint32                  { return c.regs.Uint(spReg) }
func (c *Core) StackBytes() []byte          { return c.mem.bytes[c.SP():] }
func (c *Core) LastError() error            { return c.lastErr }
func (c *Core) HadError() bool              { return c.hadError }

func (c *Core) fatal(err error) {
	c.running = false
	c.hadError = true
	c.lastErr = err
	c.log.Error().Err(err).Uint32("pc", c.pc).Msg("vm halted")
}

// checkPC validates PC is within [0, programSize] on entry to the next
// instruction, per spec §4.1's bounds contract.
func (c *Core) checkPC() bool {
	if c.pc > c.programSize {
		c.fatal(ErrPCOutOfBounds)
		return false
	}
	return true
}

func (c *Core) fetch8() byte {
	b := c.mem.Read8(c.pc)
	c.pc++
	return b
}

func (c *Core) fetch16() uint16 {
	v := c.mem.Read16(c.pc)
	c.pc += 2
	return v
}

func (c *Core) fetch32() uint32 {
	v := c.mem.Read32(c.pc)
	c.pc += 4
	return v
}

// pushStack implements the PSH/CAL big-endian "decrement then store"
// discipline, with the overflow check from spec §3/§8.
func (c *Core) pushStack(v uint32) bool {
	sp := c.regs.Uint(spReg) - 4
	if sp < c.mem.stackFloor() {
		c.fatal(ErrStackOverflow)
		return false
	}
	c.regs.SetUint(spReg, sp)
	c.mem.Write32(sp, v)
	return true
}

// popStack implements the POP/RET "load then increment" discipline, with
// the underflow check.
func (c *Core) popStack() (uint32, bool) {
	sp := c.regs.Uint(spReg)
	if sp+4 > c.mem.Len() {
		c.fatal(ErrStackUnderflow)
		return 0, false
	}
	v := c.mem.Read32(sp)
	c.regs.SetUint(spReg, sp+4)
	return v, true
}
