// Package coredump assembles internal/vm's three independent dump views
// (registers, memory, stack) into the combined post-mortem report
// cmd/vm's -p flag writes to a diagnostic file, and the registers-only
// report its -r flag writes to stdout.
//
// Grounded on original_source/libvmcore/src/core.c's
// CORE_fnDumpRegisters/CORE_fnDumpMemory/CORE_fnDumpStack (kept as
// separate views rather than folded into one function, per SPEC_FULL's
// supplemented-features list) and vm/src/vm.c's -r/-p flag handling,
// which writes the post-mortem report to a file rather than stdout.
package coredump

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmx32/vmx32/internal/vm"
)

// Registers writes only the register/flag/PC/SP view, for -r.
func Registers(w io.Writer, c *vm.Core) {
	c.DumpRegisters(w)
}

// Full writes registers, stack, and the whole program region of memory,
// the combined view -p writes on a fatal error.
func Full(w io.Writer, c *vm.Core) {
	c.DumpRegisters(w)
	fmt.Fprintln(w)
	c.DumpStack(w)
	fmt.Fprintln(w)
	c.DumpMemory(w, 0, 0)
	fmt.Fprintln(w)
}

// PostMortem writes Full plus the fatal reason to path, creating or
// truncating it, matching vm.c's -p behavior of writing the post-mortem
// report to a named diagnostic file rather than stdout.
func PostMortem(path string, c *vm.Core, cause error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("post-mortem dump: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(f, "vmx32 post-mortem dump, %s\n", time.Now().UTC().Format(time.RFC3339))
	if cause != nil {
		fmt.Fprintf(f, "fatal: %v\n", cause)
	}
	Full(f, c)
	return nil
}
