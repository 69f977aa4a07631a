//go:build !linux

package extvars

import (
	"fmt"
	"runtime"
)

// LoadDynamic is unavailable outside linux: Go's plugin package only
// supports linux (and, historically, darwin, which it has since dropped).
// Hosts on other platforms use the Scripted Lua collaborator in
// scripted.go instead.
func LoadDynamic(path string) (Bridge, error) {
	return nil, fmt.Errorf("load externals library %s: native plugins are not supported on %s, use a .lua externals script instead", path, runtime.GOOS)
}
