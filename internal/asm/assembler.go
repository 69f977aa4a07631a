package asm

import (
	"fmt"
	"io"

	"github.com/vmx32/vmx32/internal/isa"
	"github.com/vmx32/vmx32/internal/linker"
)

// Assembler drives one source-to-image assembly run. Exported mainly so
// cmd/vm can inspect the label table afterward (for its -l label
// listing).
type Assembler struct {
	Labels *linker.Table
	Image  []byte
}

// Assemble reads an entire program, assigns every instruction an
// address in one forward pass (label references are resolved by
// backpatching afterward, since every operand shape has a static byte
// length independent of what a referenced label resolves to), and
// returns the finished machine-code image. Grounded on asm.c's overall
// assemble-then-link structure; label bookkeeping itself lives in
// internal/linker.
func Assemble(source io.Reader) (*Assembler, error) {
	raw, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}
	lines := splitLines(string(raw))

	asmr := &Assembler{Labels: linker.New()}
	var image []byte

	for _, line := range lines {
		addr := uint16(len(image))
		if line.label != "" {
			if err := asmr.Labels.Define(line.label, addr); err != nil {
				return nil, err
			}
		}
		if line.mnemonic == "" {
			continue
		}
		if line.mnemonic == "DAT" {
			bytes, err := encodeDAT(line.operands, line.lineno)
			if err != nil {
				return nil, err
			}
			image = append(image, bytes...)
			continue
		}

		encoded, err := asmr.encodeLine(line, addr)
		if err != nil {
			return nil, err
		}
		image = append(image, encoded...)
	}

	if err := asmr.Labels.Link(image); err != nil {
		return nil, err
	}
	asmr.Image = image
	return asmr, nil
}

// LabelNames returns every label name this run saw, sorted, for
// diagnostic listings such as cmd/vm's -l flag.
func (asmr *Assembler) LabelNames() []string {
	return asmr.Labels.Names()
}

func (asmr *Assembler) encodeLine(line sourceLine, addr uint16) ([]byte, error) {
	m, ok := mnemonicLookup(line.mnemonic)
	if !ok {
		return nil, fmt.Errorf("line %d: unknown mnemonic %q", line.lineno, line.mnemonic)
	}
	shape, ok := mnemonicShape[line.mnemonic]
	if !ok {
		return nil, fmt.Errorf("line %d: mnemonic %q has no operand shape", line.lineno, line.mnemonic)
	}
	if line.suffix != 0 && !m.HasWidth {
		return nil, fmt.Errorf("line %d: %s does not accept a width suffix", line.lineno, line.mnemonic)
	}
	if line.suffix != 0 {
		if _, ok := isa.WidthSuffix[line.suffix]; !ok {
			return nil, fmt.Errorf("line %d: unknown width suffix %q", line.lineno, line.suffix)
		}
	}

	operands := make([]operand, len(line.operands))
	for i, tok := range line.operands {
		op, err := parseOperand(tok, line.lineno)
		if err != nil {
			return nil, err
		}
		operands[i] = op
	}

	lead := nextTrampolineBytes(m.Table)
	body, err := encodeInstruction(m, shape, line.suffix, operands, line.lineno, addr+uint16(len(lead)), asmr.Labels)
	if err != nil {
		return nil, err
	}
	return append(lead, body...), nil
}
