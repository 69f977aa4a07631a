package asm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDATStringLiteralIsNulTerminated(t *testing.T) {
	bytes, err := encodeDAT([]string{`"hi"`}, 1)
	require.NoError(t, err)
	require.Equal(t, []byte{'h', 'i', 0}, bytes)
}

func TestEncodeDATMixedOperands(t *testing.T) {
	bytes, err := encodeDAT([]string{`"ok"`, "'!'", "256"}, 1)
	require.NoError(t, err)
	// "ok"+NUL (3) + '!' (1) + 256 auto-sized to WORD (2 big-endian bytes)
	require.Equal(t, []byte{'o', 'k', 0, '!', 0x01, 0x00}, bytes)
}

func TestEncodeDATRejectsLabelOperand(t *testing.T) {
	_, err := encodeDAT([]string{"not_a_literal"}, 1)
	require.Error(t, err)
}
