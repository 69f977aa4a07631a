// Package vmconfig binds the flags every vmx32 CLI shares (core size,
// stack size, externals library path, verbosity) to pflag and resolves
// the externals path into an internal/extvars.Bridge.
//
// Grounded on SPEC_FULL.md's "Configuration" section: there is no
// config-file format anywhere in the retrieval pack for a tool at this
// scale, so flags bound directly to a plain struct are the idiomatic
// surface, the same shape original_source/vm/src/vm.c's getopt loop used.
package vmconfig

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/vmx32/vmx32/internal/extvars"
)

const (
	DefaultCoreSize  = 64 * 1024
	DefaultStackSize = 4 * 1024
)

// Config is the flag-bound surface shared by vasm/vexe/vm, per
// spec.md §6's `-c`/`-s`/`-L`/`-v` conventions.
type Config struct {
	CoreSize   uint32
	StackSize  uint32
	Externals  string
	Verbose    bool
	OutputPath string
}

// BindCommon registers -c/-s/-L/-v on fs, the flag set every vmx32
// binary shares.
func BindCommon(fs *pflag.FlagSet, cfg *Config) {
	fs.Uint32VarP(&cfg.CoreSize, "core-size", "c", DefaultCoreSize, "VM core memory size in bytes")
	fs.Uint32VarP(&cfg.StackSize, "stack-size", "s", DefaultStackSize, "stack region size in bytes, carved out of core-size")
	fs.StringVarP(&cfg.Externals, "externals", "L", "", "path to an externals collaborator (.so plugin or .lua script)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "raise log level to debug")
}

// Logger builds the zerolog.Logger every vmx32 binary and internal/vm
// Core shares, level gated by -v per SPEC_FULL.md's logging section.
func (cfg Config) Logger(w zerolog.ConsoleWriter) zerolog.Logger {
	level := zerolog.WarnLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Bridge resolves -L into a concrete extvars.Bridge: no path installs
// the in-process Default bridge; a ".lua" path loads the Scripted
// backend; anything else is treated as a native plugin for LoadDynamic,
// matching the original's single dlopen() path generalized into the two
// idiomatic Go collaborator shapes SPEC_FULL.md's domain-stack table
// describes.
func (cfg Config) Bridge() (extvars.Bridge, error) {
	if cfg.Externals == "" {
		return extvars.NewDefault(), nil
	}
	if strings.EqualFold(filepath.Ext(cfg.Externals), ".lua") {
		return extvars.LoadScripted(cfg.Externals)
	}
	return extvars.LoadDynamic(cfg.Externals)
}
