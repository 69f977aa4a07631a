// vasm assembles a vmx32 source file into a flat machine-code image.
//
// Grounded on original_source/vasm/src/vasm.c's getopt loop
// (-c/-s/-o/-h), reimplemented as a cobra command per SPEC_FULL.md's CLI
// framework section.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmx32/vmx32/internal/asm"
	"github.com/vmx32/vmx32/internal/vmconfig"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var outPath string
	var cfg vmconfig.Config

	cmd := &cobra.Command{
		Use:   "vasm [flags] input.v",
		Short: "assemble a vmx32 program into a flat machine-code image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], outPath, cfg)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "a.bin", "output image path")
	cmd.Flags().Uint32VarP(&cfg.CoreSize, "core-size", "c", vmconfig.DefaultCoreSize, "target VM core size in bytes, validated against the assembled image")
	cmd.Flags().Uint32VarP(&cfg.StackSize, "stack-size", "s", vmconfig.DefaultStackSize, "target VM stack size in bytes")
	return cmd
}

func run(inputPath, outPath string, cfg vmconfig.Config) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inputPath, err)
	}
	defer f.Close()

	result, err := asm.Assemble(f)
	if err != nil {
		return fmt.Errorf("assemble %s: %w", inputPath, err)
	}

	limit := cfg.CoreSize - cfg.StackSize
	if uint32(len(result.Image)) > limit {
		return fmt.Errorf("assembled image of %d bytes exceeds usable core region of %d bytes", len(result.Image), limit)
	}

	if err := os.WriteFile(outPath, result.Image, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Printf("%s: %d bytes\n", outPath, len(result.Image))
	return nil
}
