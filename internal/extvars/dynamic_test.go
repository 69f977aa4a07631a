//go:build linux

package extvars

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDynamicFailsOnMissingPlugin(t *testing.T) {
	_, err := LoadDynamic(filepath.Join(t.TempDir(), "nope.so"))
	require.Error(t, err)
}
