package coredump

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vmx32/vmx32/internal/extvars"
	"github.com/vmx32/vmx32/internal/vm"
)

func newTestCore(t *testing.T) *vm.Core {
	t.Helper()
	core, err := vm.NewCore(vm.Config{
		CoreSize:  64,
		StackSize: 16,
		Bridge:    extvars.NewDefault(),
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)
	return core
}

func TestRegistersWritesRegisterDump(t *testing.T) {
	core := newTestCore(t)
	var buf bytes.Buffer
	Registers(&buf, core)
	require.Contains(t, buf.String(), "registers:")
	require.Contains(t, buf.String(), "R00:")
}

func TestFullIncludesAllThreeViews(t *testing.T) {
	core := newTestCore(t)
	var buf bytes.Buffer
	Full(&buf, core)
	out := buf.String()
	require.Contains(t, out, "registers:")
	require.Contains(t, out, "STATUS")
}

func TestPostMortemWritesCauseToFile(t *testing.T) {
	core := newTestCore(t)
	path := filepath.Join(t.TempDir(), "crash.txt")

	err := PostMortem(path, core, vm.ErrIllegalOpcode)
	require.NoError(t, err)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "post-mortem")
	require.Contains(t, string(contents), "illegal opcode")
}
