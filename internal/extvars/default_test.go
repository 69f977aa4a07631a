package extvars

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultGetHandleIsStablePerName(t *testing.T) {
	d := NewDefault()
	h1 := d.GetHandle("score")
	h2 := d.GetHandle("score")
	require.Equal(t, h1, h2)
	require.NotZero(t, h1)
}

func TestDefaultDistinctNamesGetDistinctHandles(t *testing.T) {
	d := NewDefault()
	h1 := d.GetHandle("a")
	h2 := d.GetHandle("b")
	require.NotEqual(t, h1, h2)
}

func TestDefaultSetThenGetRoundTrips(t *testing.T) {
	d := NewDefault()
	h := d.GetHandle("x")

	d.Set(h, 7)
	require.Equal(t, int32(7), d.Get(h))

	d.SetFloat(h, 1.5)
	require.Equal(t, float32(1.5), d.GetFloat(h))

	d.SetString(h, "hi")
	require.Equal(t, "hi", d.GetString(h))
}

func TestDefaultGetOnUnknownHandleIsZeroValue(t *testing.T) {
	d := NewDefault()
	require.Equal(t, int32(0), d.Get(Handle(999)))
}

func TestDefaultNotifyAndValidateAreUnsupported(t *testing.T) {
	d := NewDefault()
	_, err := d.Notify(1, NotifyModified)
	require.ErrorIs(t, err, ErrNotSupported)

	_, err = d.ValidateStart(1)
	require.ErrorIs(t, err, ErrNotSupported)

	_, err = d.OpenPrintSession(1)
	require.ErrorIs(t, err, ErrNotSupported)
}
