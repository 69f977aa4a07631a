package vm

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileTableStartsWithStdStreamsPopulated(t *testing.T) {
	ft := newFileTable()
	require.Equal(t, 3, ft.numOpen)
	require.Equal(t, byte('r'), ft.slots[0].mode)
	require.Equal(t, byte('w'), ft.slots[1].mode)
	require.Equal(t, byte('w'), ft.slots[2].mode)
}

func TestFileTableOpenWriteThenClose(t *testing.T) {
	ft := newFileTable()
	path := filepath.Join(t.TempDir(), "out.txt")

	fd, err := ft.open(path, 'w')
	require.NoError(t, err)
	require.Equal(t, 4, ft.numOpen)

	require.NoError(t, ft.close(fd))
	require.Equal(t, 3, ft.numOpen)
	require.Equal(t, -1, ft.find(fd))
}

func TestFileTableOpenRejectsInvalidMode(t *testing.T) {
	ft := newFileTable()
	_, err := ft.open("whatever", 'x')
	require.Error(t, err)
}

func TestFileTableCloseUnknownFDErrors(t *testing.T) {
	ft := newFileTable()
	err := ft.close(999)
	require.ErrorIs(t, err, errNotFound)
}

func TestFileTableSetActiveRoutesByMode(t *testing.T) {
	ft := newFileTable()
	path := filepath.Join(t.TempDir(), "out.txt")
	fd, err := ft.open(path, 'w')
	require.NoError(t, err)

	require.NoError(t, ft.setActive(fd))
	require.Equal(t, fd, ft.activeWriteFD)
}

func TestFileTableRegisterWriteFDRejectsDuplicate(t *testing.T) {
	ft := newFileTable()
	err := ft.registerWriteFD(1, 'w')
	require.ErrorIs(t, err, errAlreadyExists)
}

func TestFileTableFreeIndexExhaustion(t *testing.T) {
	ft := newFileTable()
	for i := 0; i < maxOpenFiles-3; i++ {
		require.NoError(t, ft.registerWriteFD(100+i, 'w'))
	}
	err := ft.registerWriteFD(9999, 'w')
	require.ErrorIs(t, err, errNoFreeSlots)
}
