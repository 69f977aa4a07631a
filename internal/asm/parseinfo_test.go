package asm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeValueDecimalAutoSizing(t *testing.T) {
	cases := []struct {
		text  string
		width int
	}{
		{"0", 1},
		{"127", 1},
		{"-128", 1},
		{"128", 2},
		{"-129", 2},
		{"32767", 2},
		{"32768", 4},
		{"-40000", 4},
	}
	for _, tc := range cases {
		pi, err := encodeValue(tc.text, 1)
		require.NoError(t, err, tc.text)
		require.Equal(t, tc.width, pi.width, tc.text)
	}
}

// Open question #2: hex literals auto-size against the same signed
// int8/int16 boundary as decimal literals, so 0x80 promotes to WORD
// rather than staying a BYTE the way an unsigned 0..255 range would
// suggest.
func TestEncodeValueHexUsesSignedBoundary(t *testing.T) {
	pi, err := encodeValue("0x7F", 1)
	require.NoError(t, err)
	require.Equal(t, 1, pi.width)

	pi, err = encodeValue("0x80", 1)
	require.NoError(t, err)
	require.Equal(t, 2, pi.width)
	require.Equal(t, uint32(0x80), pi.bits)

	pi, err = encodeValue("0xFF", 1)
	require.NoError(t, err)
	require.Equal(t, 2, pi.width)
	require.Equal(t, uint32(0xFF), pi.bits)
}

func TestEncodeValueFloatAlwaysFourBytes(t *testing.T) {
	pi, err := encodeValue("3.5", 1)
	require.NoError(t, err)
	require.Equal(t, kindFloat, pi.kind)
	require.Equal(t, 4, pi.width)
}

func TestEncodeCharEscapes(t *testing.T) {
	cases := map[string]byte{
		`'a'`:  'a',
		`'\n'`: '\n',
		`'\t'`: '\t',
		`'\0'`: 0,
		`'\\'`: '\\',
		`'\''`: '\'',
	}
	for text, want := range cases {
		got, err := encodeChar(text)
		require.NoError(t, err, text)
		require.Equal(t, want, got, text)
	}
}

func TestDecodeStringEscapes(t *testing.T) {
	got, err := decodeString(`"hi\nthere"`)
	require.NoError(t, err)
	require.Equal(t, "hi\nthere", got)
}

func TestEncodeCharFullEscapeSet(t *testing.T) {
	cases := map[string]byte{
		`'\b'`:    '\b',
		`'\f'`:    '\f',
		`'\r'`:    '\r',
		`'\0xFE'`: 0xFE,
		`'\0X0a'`: 0x0A,
		`'\123'`:  123,
		`'\65'`:   65,
	}
	for text, want := range cases {
		got, err := encodeChar(text)
		require.NoError(t, err, text)
		require.Equal(t, want, got, text)
	}
}

func TestEncodeCharUnknownEscapeEmitsZeroWithoutError(t *testing.T) {
	got, err := encodeChar(`'\q'`)
	require.NoError(t, err)
	require.Equal(t, byte(0), got)
}

func TestDecodeStringFullEscapeSet(t *testing.T) {
	got, err := decodeString(`"tab\there\band\fform\rcarriage"`)
	require.NoError(t, err)
	require.Equal(t, "tab\there\band\fform\rcarriage", got)
}

func TestDecodeStringHexEscape(t *testing.T) {
	got, err := decodeString(`"\0xFE end"`)
	require.NoError(t, err)
	require.Equal(t, "\xFE end", got)
}

func TestDecodeStringUnknownEscapeEmitsNulWithoutError(t *testing.T) {
	got, err := decodeString(`"a\qb"`)
	require.NoError(t, err)
	require.Equal(t, "a\x00b", got)
}

func TestDecodeStringDanglingEscapeIsStillAnError(t *testing.T) {
	_, err := decodeString(`"bad\`)
	require.Error(t, err)
}
