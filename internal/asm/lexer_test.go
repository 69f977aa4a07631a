package asm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLinesStripsCommentsAndBlankLines(t *testing.T) {
	src := "; a comment line\nNOP ; trailing comment\n\nHLT\n"
	lines := splitLines(src)
	require.Len(t, lines, 2)
	require.Equal(t, "NOP", lines[0].mnemonic)
	require.Equal(t, "HLT", lines[1].mnemonic)
}

func TestSplitLinesColonLabel(t *testing.T) {
	lines := splitLines("start: MOV R0, 1\n")
	require.Len(t, lines, 1)
	require.Equal(t, "start", lines[0].label)
	require.Equal(t, "MOV", lines[0].mnemonic)
	require.Equal(t, []string{"R0", "1"}, lines[0].operands)
}

// spec.md scenario #6: a label with no colon, defined on the same line
// as the instruction it precedes.
func TestSplitLinesBareLabelWithoutColon(t *testing.T) {
	lines := splitLines("JMP forward\nforward HLT\n")
	require.Len(t, lines, 2)

	require.Equal(t, "", lines[0].label)
	require.Equal(t, "JMP", lines[0].mnemonic)
	require.Equal(t, []string{"forward"}, lines[0].operands)

	require.Equal(t, "forward", lines[1].label)
	require.Equal(t, "HLT", lines[1].mnemonic)
}

func TestSplitLinesLabelOnlyLineDefinesNoMnemonic(t *testing.T) {
	lines := splitLines("loop:\nNOP\n")
	require.Len(t, lines, 2)
	require.Equal(t, "loop", lines[0].label)
	require.Equal(t, "", lines[0].mnemonic)
}

func TestSplitSuffixRecognizesWidthLetter(t *testing.T) {
	m, s := splitSuffix("MOV.W")
	require.Equal(t, "MOV", m)
	require.Equal(t, byte('W'), s)
}

func TestSplitSuffixWithoutDotLeavesSuffixZero(t *testing.T) {
	m, s := splitSuffix("MOV")
	require.Equal(t, "MOV", m)
	require.Equal(t, byte(0), s)
}

func TestTokenizeLineKeepsQuotedStringIntact(t *testing.T) {
	tokens := tokenizeLine(`DAT "hello world", 0`)
	require.Equal(t, []string{"DAT", `"hello world",`, "0"}, tokens)
}

func TestSplitOperandsIgnoresCommasInsideQuotes(t *testing.T) {
	ops := splitOperands(`"a, b", 1`)
	require.Equal(t, []string{`"a, b"`, "1"}, ops)
}

func TestStripCommentIgnoresSemicolonInsideString(t *testing.T) {
	got := stripComment(`DAT "a;b" ; real comment`)
	require.Equal(t, `DAT "a;b" `, got)
}
