// vexe executes a vmx32 machine-code image to completion.
//
// Grounded on original_source/vexe/src/vexe.c's getopt loop
// (-c/-s/-L/-v/-h) and its exit-code contract: the process exit code is
// R0's value on a clean HLT, or -1 on a fatal runtime error.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vmx32/vmx32/internal/vm"
	"github.com/vmx32/vmx32/internal/vmconfig"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	var cfg vmconfig.Config
	var exitCode int

	cmd := &cobra.Command{
		Use:   "vexe [flags] program.bin",
		Short: "run a vmx32 machine-code image to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := run(args[0], cfg)
			exitCode = code
			return err
		},
		SilenceUsage: true,
	}
	vmconfig.BindCommon(cmd.Flags(), &cfg)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitCode == 0 {
			exitCode = -1
		}
	}
	return exitCode
}

func run(path string, cfg vmconfig.Config) (int, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return -1, fmt.Errorf("read %s: %w", path, err)
	}

	bridge, err := cfg.Bridge()
	if err != nil {
		return -1, err
	}
	defer bridge.Close()

	logger := cfg.Logger(zerolog.ConsoleWriter{Out: os.Stderr})

	core, err := vm.NewCore(vm.Config{
		CoreSize:  cfg.CoreSize,
		StackSize: cfg.StackSize,
		Bridge:    bridge,
		Logger:    logger,
	})
	if err != nil {
		return -1, err
	}
	if err := core.Load(image); err != nil {
		return -1, err
	}

	if err := core.Execute(); err != nil {
		if cfg.Verbose {
			fmt.Fprintf(os.Stderr, "vexe: %v\n", err)
		}
		return -1, nil
	}
	return int(int32(core.RegisterValue(0))), nil
}
