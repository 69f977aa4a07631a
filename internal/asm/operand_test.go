package asm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOperandRegister(t *testing.T) {
	op, err := parseOperand("r3", 1)
	require.NoError(t, err)
	require.Equal(t, operandRegister, op.kind)
	require.Equal(t, byte(3), op.reg)
}

func TestParseOperandSPAndPCAliases(t *testing.T) {
	op, err := parseOperand("sp", 1)
	require.NoError(t, err)
	require.Equal(t, byte(14), op.reg)

	op, err = parseOperand("R15", 1)
	require.NoError(t, err)
	require.Equal(t, byte(15), op.reg)
}

func TestParseOperandNumber(t *testing.T) {
	op, err := parseOperand("42", 1)
	require.NoError(t, err)
	require.Equal(t, operandNumber, op.kind)
	require.Equal(t, uint32(42), op.num.bits)
}

func TestParseOperandNegativeNumberNotMistakenForLabel(t *testing.T) {
	op, err := parseOperand("-1", 1)
	require.NoError(t, err)
	require.Equal(t, operandNumber, op.kind)
}

func TestParseOperandCharLiteral(t *testing.T) {
	op, err := parseOperand(`'x'`, 1)
	require.NoError(t, err)
	require.Equal(t, operandChar, op.kind)
	require.Equal(t, byte('x'), op.ch)
}

func TestParseOperandStringLiteral(t *testing.T) {
	op, err := parseOperand(`"hi"`, 1)
	require.NoError(t, err)
	require.Equal(t, operandString, op.kind)
	require.Equal(t, "hi", op.text)
}

func TestParseOperandBareWordIsLabel(t *testing.T) {
	op, err := parseOperand("loop_start", 1)
	require.NoError(t, err)
	require.Equal(t, operandLabel, op.kind)
	require.Equal(t, "loop_start", op.text)
}
