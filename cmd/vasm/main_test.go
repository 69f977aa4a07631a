package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmx32/vmx32/internal/vmconfig"
)

func TestRunAssemblesAndWritesImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.v")
	require.NoError(t, os.WriteFile(src, []byte("HLT\n"), 0o644))
	out := filepath.Join(dir, "a.bin")

	cfg := vmconfig.Config{CoreSize: vmconfig.DefaultCoreSize, StackSize: vmconfig.DefaultStackSize}
	require.NoError(t, run(src, out, cfg))

	bytes, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NotEmpty(t, bytes)
}

func TestRunFailsOnMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := vmconfig.Config{CoreSize: vmconfig.DefaultCoreSize, StackSize: vmconfig.DefaultStackSize}
	err := run(filepath.Join(dir, "nope.v"), filepath.Join(dir, "a.bin"), cfg)
	require.Error(t, err)
}

func TestRunRejectsImageLargerThanUsableCore(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.v")
	require.NoError(t, os.WriteFile(src, []byte("DAT 1,2,3,4,5,6,7,8\n"), 0o644))
	out := filepath.Join(dir, "a.bin")

	cfg := vmconfig.Config{CoreSize: 8, StackSize: 4}
	err := run(src, out, cfg)
	require.Error(t, err)
}
