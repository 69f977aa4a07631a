package asm

import (
	"fmt"

	"github.com/vmx32/vmx32/internal/isa"
	"github.com/vmx32/vmx32/internal/linker"
)

// literalSize mirrors internal/vm/operands.go's literalSize exactly, so
// the assembler and the execution core agree on how many bytes a
// width-tagged immediate occupies, HANDLE/WORD collision included. Kept
// as a small independent copy rather than an import, since internal/vm
// and internal/asm share no other dependency and the rule is a single
// three-way switch grounded on the wire format itself, not on any
// particular package's internals.
func literalSize(width byte) int {
	switch width & (isa.BYTE | isa.WORD) {
	case isa.BYTE:
		return 1
	case isa.WORD:
		return 2
	default:
		return 4
	}
}

// resolveWidth picks the width tag for a dual-form instruction: an
// explicit .suffix wins; otherwise the operand's own auto-sized width
// (from encodeValue) or kind picks a default.
func resolveWidth(suffix byte, operands []operand) byte {
	if w, ok := isa.WidthSuffix[suffix]; ok {
		return w
	}
	if len(operands) < 2 {
		return isa.LONG
	}
	switch operands[1].kind {
	case operandLabel:
		return isa.WORD
	case operandChar:
		return isa.BYTE
	case operandNumber:
		switch operands[1].num.width {
		case 1:
			return isa.BYTE
		case 2:
			return isa.WORD
		default:
			return isa.LONG
		}
	default:
		return isa.LONG
	}
}

// nextTrampolineBytes returns the NEXT-opcode prefix bytes needed to
// reach a secondary- or diagnostic-table instruction, mirroring
// dispatch.go's opNextSecondary/opNextDiagnostic: one NEXT byte to leave
// the primary table, and a second NEXT byte (itself opcode 0x1F within
// the secondary table) to leave that and reach the diagnostic table.
func nextTrampolineBytes(table isa.Table) []byte {
	switch table {
	case isa.Secondary:
		return []byte{prefixByte(isa.NEXT, isa.LONG, false)}
	case isa.Diagnostic:
		return []byte{
			prefixByte(isa.NEXT, isa.LONG, false),
			prefixByte(isa.NEXT, isa.LONG, false),
		}
	default:
		return nil
	}
}

func prefixByte(opcode, width byte, modeReg bool) byte {
	b := opcode & isa.OpMask
	b |= width & isa.WidthMask
	if modeReg {
		b |= isa.ModeReg
	}
	return b
}

// emitLabelOperand appends a 2-byte placeholder for a label reference at
// the current image position and registers the backpatch site, or writes
// the literal value directly when the operand is already a resolved
// number.
func emitLabelOperand(buf *[]byte, op operand, baseAddr uint16, tbl *linker.Table) error {
	switch op.kind {
	case operandLabel:
		tbl.Reference(op.text, baseAddr+uint16(len(*buf)))
		*buf = append(*buf, 0, 0)
		return nil
	case operandNumber:
		v := op.num.bits
		*buf = append(*buf, byte(v>>8), byte(v))
		return nil
	default:
		return fmt.Errorf("expected a label or address, got %v", op.kind)
	}
}

func appendImmediate(buf *[]byte, op operand, width byte) error {
	var bits uint32
	switch op.kind {
	case operandNumber:
		bits = op.num.bits
	case operandChar:
		bits = uint32(op.ch)
	default:
		return fmt.Errorf("expected an immediate value, got %v", op.kind)
	}
	switch literalSize(width) {
	case 1:
		*buf = append(*buf, byte(bits))
	case 2:
		*buf = append(*buf, byte(bits>>8), byte(bits))
	default:
		*buf = append(*buf, byte(bits>>24), byte(bits>>16), byte(bits>>8), byte(bits))
	}
	return nil
}

// encodeInstruction renders one non-DAT statement to machine code.
// addr is the statement's own address, needed so label operands register
// their backpatch site at the right offset within the growing image.
func encodeInstruction(m isa.Mnemonic, shape operandShape, suffix byte, operands []operand, lineno int, addr uint16, tbl *linker.Table) ([]byte, error) {
	switch shape {
	case shapeNone:
		return []byte{prefixByte(m.Opcode, isa.LONG, false)}, nil

	case shapeReg1:
		if len(operands) != 1 || operands[0].kind != operandRegister {
			return nil, fmt.Errorf("line %d: expected one register operand", lineno)
		}
		return []byte{prefixByte(m.Opcode, isa.LONG, false), operands[0].reg}, nil

	case shapeRegPair:
		if len(operands) != 2 || operands[0].kind != operandRegister || operands[1].kind != operandRegister {
			return nil, fmt.Errorf("line %d: expected two register operands", lineno)
		}
		width := isa.LONG
		if m.HasWidth {
			if w, ok := isa.WidthSuffix[suffix]; ok {
				width = w
			}
		}
		buf := []byte{
			prefixByte(m.Opcode, width, true),
			(operands[0].reg << 4) | operands[1].reg,
		}
		return buf, nil

	case shapeDual:
		if len(operands) != 2 || operands[0].kind != operandRegister {
			return nil, fmt.Errorf("line %d: expected a register and a second operand", lineno)
		}
		width := resolveWidth(suffix, operands)
		if operands[1].kind == operandRegister {
			buf := []byte{
				prefixByte(m.Opcode, width, true),
				(operands[0].reg << 4) | operands[1].reg,
			}
			return buf, nil
		}
		buf := []byte{prefixByte(m.Opcode, width, false), operands[0].reg}
		if operands[1].kind == operandLabel {
			if err := emitLabelOperand(&buf, operands[1], addr, tbl); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			return buf, nil
		}
		if err := appendImmediate(&buf, operands[1], width); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		return buf, nil

	case shapeJump:
		if len(operands) != 1 {
			return nil, fmt.Errorf("line %d: expected one label operand", lineno)
		}
		buf := []byte{prefixByte(m.Opcode, isa.LONG, false)}
		if err := emitLabelOperand(&buf, operands[0], addr, tbl); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		return buf, nil

	case shapeCall:
		if len(operands) != 1 {
			return nil, fmt.Errorf("line %d: expected a register or label operand", lineno)
		}
		if operands[0].kind == operandRegister {
			return []byte{prefixByte(m.Opcode, isa.LONG, true), operands[0].reg}, nil
		}
		buf := []byte{prefixByte(m.Opcode, isa.LONG, false)}
		if err := emitLabelOperand(&buf, operands[0], addr, tbl); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		return buf, nil

	case shapeLiteral1:
		if len(operands) != 1 {
			return nil, fmt.Errorf("line %d: expected a register or literal operand", lineno)
		}
		if operands[0].kind == operandRegister {
			return []byte{prefixByte(m.Opcode, isa.LONG, true), operands[0].reg}, nil
		}
		buf := []byte{prefixByte(m.Opcode, isa.LONG, false)}
		if err := appendImmediate(&buf, operands[0], isa.BYTE); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		return buf, nil

	case shapeScoLike:
		if len(operands) != 2 || operands[0].kind != operandRegister {
			return nil, fmt.Errorf("line %d: expected a register and a second operand", lineno)
		}
		if operands[1].kind == operandRegister {
			buf := []byte{
				prefixByte(m.Opcode, isa.LONG, true),
				(operands[0].reg << 4) | operands[1].reg,
			}
			return buf, nil
		}
		buf := []byte{prefixByte(m.Opcode, isa.LONG, false), operands[0].reg}
		if err := appendImmediate(&buf, operands[1], isa.BYTE); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		return buf, nil

	case shapeMemDump:
		if len(operands) != 2 || operands[0].kind != operandRegister || operands[1].kind != operandNumber {
			return nil, fmt.Errorf("line %d: expected a register and a length literal", lineno)
		}
		buf := []byte{prefixByte(m.Opcode, isa.LONG, false), operands[0].reg}
		v := operands[1].num.bits
		buf = append(buf, byte(v>>8), byte(v))
		return buf, nil

	default:
		return nil, fmt.Errorf("line %d: unhandled operand shape", lineno)
	}
}
