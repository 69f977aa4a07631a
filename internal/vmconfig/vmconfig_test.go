package vmconfig

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/vmx32/vmx32/internal/extvars"
)

func noopWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: io.Discard}
}

func TestBindCommonAppliesDefaults(t *testing.T) {
	var cfg Config
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindCommon(fs, &cfg)
	require.NoError(t, fs.Parse([]string{}))

	require.Equal(t, uint32(DefaultCoreSize), cfg.CoreSize)
	require.Equal(t, uint32(DefaultStackSize), cfg.StackSize)
	require.False(t, cfg.Verbose)
}

func TestBindCommonParsesOverrides(t *testing.T) {
	var cfg Config
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindCommon(fs, &cfg)
	require.NoError(t, fs.Parse([]string{"-c", "4096", "-s", "512", "-v"}))

	require.Equal(t, uint32(4096), cfg.CoreSize)
	require.Equal(t, uint32(512), cfg.StackSize)
	require.True(t, cfg.Verbose)
}

func TestBridgeWithNoExternalsPathReturnsDefault(t *testing.T) {
	cfg := Config{}
	bridge, err := cfg.Bridge()
	require.NoError(t, err)
	require.IsType(t, &extvars.Default{}, bridge)
}

func TestBridgeDispatchesLuaExtensionToScripted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collaborator.lua")
	require.NoError(t, os.WriteFile(path, []byte("function on_get(name) return 0 end\n"), 0o644))

	cfg := Config{Externals: path}
	bridge, err := cfg.Bridge()
	require.NoError(t, err)
	require.IsType(t, &extvars.Scripted{}, bridge)
	require.NoError(t, bridge.Close())
}

func TestLoggerLevelGatedByVerbose(t *testing.T) {
	quiet := Config{Verbose: false}.Logger(noopWriter())
	require.Equal(t, "warn", quiet.GetLevel().String())

	loud := Config{Verbose: true}.Logger(noopWriter())
	require.Equal(t, "debug", loud.GetLevel().String())
}
