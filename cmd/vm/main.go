// vm is the combined assemble/execute/disassemble tool. With no mode
// flags given it behaves as `-a -e`: assemble then run.
//
// Grounded on original_source/vm/src/vm.c, which supports a superset of
// the three flags spec.md's CLI table mentions (see SPEC_FULL.md's
// supplemented-features list: -d disassemble-only and -l show-labels are
// carried over from the original even though spec.md's own table omits
// them).
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vmx32/vmx32/internal/asm"
	"github.com/vmx32/vmx32/internal/coredump"
	"github.com/vmx32/vmx32/internal/disasm"
	"github.com/vmx32/vmx32/internal/vm"
	"github.com/vmx32/vmx32/internal/vmconfig"
)

type flags struct {
	assemble    bool
	execute     bool
	disassemble bool
	showLabels  bool
	showRegs    bool
	postMortem  string
	outPath     string
}

func main() {
	os.Exit(runMain())
}

func runMain() int {
	var cfg vmconfig.Config
	var f flags
	exitCode := 0

	cmd := &cobra.Command{
		Use:   "vm [flags] input",
		Short: "assemble, execute, and/or disassemble a vmx32 program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !f.assemble && !f.execute && !f.disassemble {
				f.assemble, f.execute = true, true
			}
			code, err := run(args[0], f, cfg)
			exitCode = code
			return err
		},
		SilenceUsage: true,
	}
	vmconfig.BindCommon(cmd.Flags(), &cfg)
	cmd.Flags().BoolVarP(&f.assemble, "assemble", "a", false, "assemble the input as vmx32 source")
	cmd.Flags().BoolVarP(&f.execute, "execute", "e", false, "execute the resulting image")
	cmd.Flags().BoolVarP(&f.disassemble, "disassemble", "d", false, "disassemble instead of executing")
	cmd.Flags().BoolVarP(&f.showLabels, "show-labels", "l", false, "print the label table while linking")
	cmd.Flags().BoolVarP(&f.showRegs, "show-regs", "r", false, "dump registers after execution")
	cmd.Flags().StringVarP(&f.postMortem, "post-mortem", "p", "", "write a post-mortem dump to this path on a fatal error")
	cmd.Flags().StringVarP(&f.outPath, "output", "o", "", "save the assembled image to this path")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitCode == 0 {
			exitCode = -1
		}
	}
	return exitCode
}

func run(path string, f flags, cfg vmconfig.Config) (int, error) {
	var image []byte

	if f.assemble {
		src, err := os.Open(path)
		if err != nil {
			return -1, fmt.Errorf("open %s: %w", path, err)
		}
		result, err := asm.Assemble(src)
		src.Close()
		if err != nil {
			return -1, fmt.Errorf("assemble %s: %w", path, err)
		}
		image = result.Image
		if f.showLabels {
			printLabels(result)
		}
		if f.outPath != "" {
			if err := os.WriteFile(f.outPath, image, 0o644); err != nil {
				return -1, fmt.Errorf("write %s: %w", f.outPath, err)
			}
		}
	} else {
		raw, err := os.ReadFile(path)
		if err != nil {
			return -1, fmt.Errorf("read %s: %w", path, err)
		}
		image = raw
	}

	if f.disassemble {
		for _, line := range disasm.Listing(image, uint32(len(image))) {
			fmt.Println(disasm.Format(line))
		}
	}

	if !f.execute {
		return 0, nil
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

	runErr := core.Execute()

	if f.showRegs {
		coredump.Registers(os.Stdout, core)
	}
	if runErr != nil {
		if f.postMortem != "" {
			if err := coredump.PostMortem(f.postMortem, core, runErr); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		if cfg.Verbose {
			fmt.Fprintf(os.Stderr, "vm: %v\n", runErr)
		}
		return -1, nil
	}
	return int(int32(core.RegisterValue(0))), nil
}

// printLabels prints the final address of every label the assembler
// resolved, matching LinkLabels(..., showLabels)'s diagnostic listing.
func printLabels(result *asm.Assembler) {
	fmt.Fprintln(os.Stderr, "labels:")
	for _, name := range result.LabelNames() {
		addr, _ := result.Labels.Address(name)
		fmt.Fprintf(os.Stderr, "  %-24s 0x%04X\n", name, addr)
	}
}
