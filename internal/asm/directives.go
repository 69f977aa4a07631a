package asm

import "fmt"

// encodeDAT renders a DAT directive's operand list to raw bytes: each
// string-literal operand contributes its decoded bytes followed by a
// terminating NUL (matching the NUL-terminated strings opASS/opWRS scan
// memory for), and each numeric or char operand contributes its
// auto-sized width's worth of big-endian bytes. Grounded on spec.md's
// description of DAT as a literal-data directive; original_source has no
// DAT-equivalent of its own since the reference assembler's grammar
// files are not part of the retrieval pack.
func encodeDAT(operands []string, lineno int) ([]byte, error) {
	var out []byte
	for _, tok := range operands {
		op, err := parseOperand(tok, lineno)
		if err != nil {
			return nil, err
		}
		switch op.kind {
		case operandString:
			out = append(out, []byte(op.text)...)
			out = append(out, 0)
		case operandChar:
			out = append(out, op.ch)
		case operandNumber:
			switch op.num.width {
			case 1:
				out = append(out, byte(op.num.bits))
			case 2:
				out = append(out, byte(op.num.bits>>8), byte(op.num.bits))
			default:
				out = append(out, byte(op.num.bits>>24), byte(op.num.bits>>16), byte(op.num.bits>>8), byte(op.num.bits))
			}
		default:
			return nil, fmt.Errorf("line %d: DAT operand %q is not a literal", lineno, tok)
		}
	}
	return out, nil
}
