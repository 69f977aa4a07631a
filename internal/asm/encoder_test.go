package asm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vmx32/vmx32/internal/isa"
	"github.com/vmx32/vmx32/internal/linker"
)

func TestLiteralSizeMatchesBitWidthQuirk(t *testing.T) {
	require.Equal(t, 1, literalSize(isa.BYTE))
	require.Equal(t, 2, literalSize(isa.WORD))
	require.Equal(t, 2, literalSize(isa.HANDLE)) // HANDLE masks down to WORD's bit
	require.Equal(t, 4, literalSize(isa.LONG))
	require.Equal(t, 4, literalSize(isa.FLOAT32))
}

func TestNextTrampolineBytesPerTable(t *testing.T) {
	require.Nil(t, nextTrampolineBytes(isa.Primary))
	require.Equal(t, []byte{isa.NEXT}, nextTrampolineBytes(isa.Secondary))
	require.Equal(t, []byte{isa.NEXT, isa.NEXT}, nextTrampolineBytes(isa.Diagnostic))
}

func TestPrefixByteCombinesOpcodeWidthAndMode(t *testing.T) {
	b := prefixByte(isa.MOV, isa.WORD, true)
	require.Equal(t, isa.MOV, b&isa.OpMask)
	require.Equal(t, isa.WORD, b&isa.WidthMask&^isa.ModeReg)
	require.NotZero(t, b&isa.ModeReg)
}

// MOV R0, R1 in register mode: prefix with ModeReg set, LONG width
// (no suffix, register operand), then the packed register-pair byte.
func TestEncodeInstructionMovRegisterToRegister(t *testing.T) {
	m := isa.Mnemonics["MOV"]
	operands := []operand{
		{kind: operandRegister, reg: 0},
		{kind: operandRegister, reg: 1},
	}
	buf, err := encodeInstruction(m, shapeDual, 0, operands, 1, 0, linker.New())
	require.NoError(t, err)
	require.Equal(t, []byte{isa.MOV | isa.LONG | isa.ModeReg, 0x01}, buf)
}

// MOV R0, 300 auto-sizes its immediate to WORD (300 > 0x7F) and the
// instruction carries no ModeReg bit.
func TestEncodeInstructionMovRegisterImmediateAutoSizesWidth(t *testing.T) {
	m := isa.Mnemonics["MOV"]
	num, err := encodeValue("300", 1)
	require.NoError(t, err)
	operands := []operand{
		{kind: operandRegister, reg: 2},
		{kind: operandNumber, num: num},
	}
	buf, err := encodeInstruction(m, shapeDual, 0, operands, 1, 0, linker.New())
	require.NoError(t, err)
	require.Equal(t, isa.MOV|isa.WORD, buf[0])
	require.Equal(t, byte(2), buf[1])
	require.Equal(t, []byte{0x01, 0x2C}, buf[2:4]) // 300 = 0x012C
}

// An explicit .W suffix always wins over the operand's own auto-sized
// width.
func TestEncodeInstructionExplicitSuffixOverridesAutoSize(t *testing.T) {
	m := isa.Mnemonics["MOV"]
	num, err := encodeValue("5", 1) // auto-sizes to BYTE
	require.NoError(t, err)
	operands := []operand{
		{kind: operandRegister, reg: 0},
		{kind: operandNumber, num: num},
	}
	buf, err := encodeInstruction(m, shapeDual, 'W', operands, 1, 0, linker.New())
	require.NoError(t, err)
	require.Equal(t, isa.MOV|isa.WORD, buf[0])
	require.Len(t, buf, 4) // prefix + reg + 2-byte immediate
}

func TestEncodeInstructionJumpToLabelRegistersBackpatch(t *testing.T) {
	m := isa.Mnemonics["JMP"]
	tbl := linker.New()
	operands := []operand{{kind: operandLabel, text: "target"}}

	buf, err := encodeInstruction(m, shapeJump, 0, operands, 1, 0, tbl)
	require.NoError(t, err)
	require.Len(t, buf, 3)
	require.Equal(t, isa.JMP|isa.LONG, buf[0])

	require.NoError(t, tbl.Define("target", 0x0200))
	image := append([]byte{}, buf...)
	require.NoError(t, tbl.Link(image))
	require.Equal(t, []byte{0x02, 0x00}, image[1:3])
}

func TestEncodeInstructionShapeNone(t *testing.T) {
	m := isa.Mnemonics["HLT"]
	buf, err := encodeInstruction(m, shapeNone, 0, nil, 1, 0, linker.New())
	require.NoError(t, err)
	require.Equal(t, []byte{isa.HLT}, buf)
}

func TestEncodeInstructionShapeReg1(t *testing.T) {
	m := isa.Mnemonics["PSH"]
	buf, err := encodeInstruction(m, shapeReg1, 0, []operand{{kind: operandRegister, reg: 5}}, 1, 0, linker.New())
	require.NoError(t, err)
	require.Equal(t, []byte{isa.PSH, 5}, buf)
}

// CAL's register form sets ModeReg; its label form does not.
func TestEncodeInstructionCallBothForms(t *testing.T) {
	m := isa.Mnemonics["CAL"]

	regBuf, err := encodeInstruction(m, shapeCall, 0, []operand{{kind: operandRegister, reg: 4}}, 1, 0, linker.New())
	require.NoError(t, err)
	require.Equal(t, []byte{isa.CAL | isa.ModeReg, 4}, regBuf)

	tbl := linker.New()
	require.NoError(t, tbl.Define("sub", 0x50))
	labelBuf, err := encodeInstruction(m, shapeCall, 0, []operand{{kind: operandLabel, text: "sub"}}, 1, 0, tbl)
	require.NoError(t, err)
	require.NoError(t, tbl.Link(labelBuf))
	require.Equal(t, []byte{isa.CAL, 0x00, 0x50}, labelBuf)
}

// WRN's immediate form has no register at all, unlike shapeDual/shapeScoLike.
func TestEncodeInstructionLiteral1ImmediateForm(t *testing.T) {
	m := isa.Mnemonics["WRN"]
	ch, err := encodeValue("7", 1)
	require.NoError(t, err)
	buf, err := encodeInstruction(m, shapeLiteral1, 0, []operand{{kind: operandNumber, num: ch}}, 1, 0, linker.New())
	require.NoError(t, err)
	require.Equal(t, []byte{isa.WRN, 7}, buf)
}

// SCO/OFD's register form reads a pair; its immediate form reads one
// register plus an untagged literal byte.
func TestEncodeInstructionScoLikeBothForms(t *testing.T) {
	m := isa.Mnemonics["SCO"]

	regBuf, err := encodeInstruction(m, shapeScoLike, 0, []operand{
		{kind: operandRegister, reg: 1}, {kind: operandRegister, reg: 2},
	}, 1, 0, linker.New())
	require.NoError(t, err)
	require.Equal(t, []byte{isa.SCO | isa.ModeReg, 0x12}, regBuf)

	lit, err := encodeValue("9", 1)
	require.NoError(t, err)
	immBuf, err := encodeInstruction(m, shapeScoLike, 0, []operand{
		{kind: operandRegister, reg: 1}, {kind: operandNumber, num: lit},
	}, 1, 0, linker.New())
	require.NoError(t, err)
	require.Equal(t, []byte{isa.SCO, 1, 9}, immBuf)
}

func TestEncodeInstructionMemDump(t *testing.T) {
	m := isa.Mnemonics["MDUMP"]
	length, err := encodeValue("256", 1)
	require.NoError(t, err)
	buf, err := encodeInstruction(m, shapeMemDump, 0, []operand{
		{kind: operandRegister, reg: 0}, {kind: operandNumber, num: length},
	}, 1, 0, linker.New())
	require.NoError(t, err)
	require.Equal(t, []byte{isa.MDUMP, 0, 0x01, 0x00}, buf)
}
