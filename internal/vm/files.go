package vm

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

const maxOpenFiles = 20

// fileSlot mirrors the reference FileDescriptor{fd, mode} struct. mode is
// one of 'r'/'R'/'w'/'W'; lower-case is text, upper-case is binary.
type fileSlot struct {
	fd   int
	mode byte
	file *os.File
	// rawTerm and oldState let close restore a saved terminal state.
	// Nothing in this package sets them: RDC reads without changing the
	// terminal mode, so close never restores anything.
	rawTerm  bool
	oldState *term.State
}

// fileTable is the fixed-capacity slot table described in spec §4.6.
// Slots 0/1/2 are pre-populated for stdin/stdout/stderr, matching
// original_source/libvmcore/src/files.c's InitFiles exactly.
type fileTable struct {
	slots          [maxOpenFiles]fileSlot
	numOpen        int
	activeReadFD   int
	activeWriteFD  int
	stdinReader    *bufio.Reader
}

func newFileTable() *fileTable {
	t := &fileTable{
		activeReadFD:  0,
		activeWriteFD: 1,
		stdinReader:   bufio.NewReader(os.Stdin),
	}
	t.slots[0] = fileSlot{fd: 0, mode: 'r', file: os.Stdin}
	t.slots[1] = fileSlot{fd: 1, mode: 'w', file: os.Stdout}
	t.slots[2] = fileSlot{fd: 2, mode: 'w', file: os.Stderr}
	for i := 3; i < maxOpenFiles; i++ {
		t.slots[i].fd = -1
	}
	t.numOpen = 3
	return t
}

func (t *fileTable) find(fd int) int {
	for i := range t.slots {
		if t.slots[i].fd == fd {
			return i
		}
	}
	return -1
}

func (t *fileTable) freeIndex() int {
	for i := 3; i < maxOpenFiles; i++ {
		if t.slots[i].fd == -1 {
			return i
		}
	}
	return -1
}

// open implements OFD: open a path (read from the given string buffer)
// in the given mode, returning a new VM fd or an error.
func (t *fileTable) open(path string, mode byte) (int, error) {
	idx := t.freeIndex()
	if idx == -1 {
		return -1, fmt.Errorf("open %s: %w", path, errNoFreeSlots)
	}
	var f *os.File
	var err error
	switch mode {
	case 'r', 'R':
		f, err = os.Open(path)
	case 'w', 'W':
		f, err = os.Create(path)
	default:
		return -1, fmt.Errorf("open %s: invalid mode %q", path, mode)
	}
	if err != nil {
		return -1, err
	}
	fd := int(f.Fd())
	t.slots[idx] = fileSlot{fd: fd, mode: mode, file: f}
	t.numOpen++
	return fd, nil
}

// close implements CFD.
func (t *fileTable) close(fd int) error {
	idx := t.find(fd)
	if idx == -1 {
		return errNotFound
	}
	if t.slots[idx].rawTerm && t.slots[idx].oldState != nil {
		_ = term.Restore(fd, t.slots[idx].oldState)
	}
	if t.slots[idx].file != nil && idx >= 3 {
		_ = t.slots[idx].file.Close()
	}
	t.slots[idx] = fileSlot{fd: -1}
	t.numOpen--
	return nil
}

// setActive implements SFD: select the active read or write fd according
// to the slot's own recorded mode.
func (t *fileTable) setActive(fd int) error {
	idx := t.find(fd)
	if idx == -1 {
		return errNotFound
	}
	switch toLower(t.slots[idx].mode) {
	case 'r':
		t.activeReadFD = fd
	case 'w':
		t.activeWriteFD = fd
	default:
		return errNotSupportedMode
	}
	return nil
}

// registerWriteFD implements the host-registration path recovered from
// SetExternWriteFileDescriptor: a bridge-opened fd (e.g. a print-session
// fd) is slotted in without the VM itself opening anything.
func (t *fileTable) registerWriteFD(fd int, mode byte) error {
	if t.find(fd) != -1 {
		return errAlreadyExists
	}
	idx := t.freeIndex()
	if idx == -1 {
		return errNoFreeSlots
	}
	t.slots[idx] = fileSlot{fd: fd, mode: mode}
	t.numOpen++
	return nil
}

func (t *fileTable) releaseFD(fd int) error {
	return t.close(fd)
}

func (t *fileTable) activeWriteFile() *os.File {
	idx := t.find(t.activeWriteFD)
	if idx == -1 || t.slots[idx].file == nil {
		return os.Stdout
	}
	return t.slots[idx].file
}

func (t *fileTable) activeReadFile() *os.File {
	idx := t.find(t.activeReadFD)
	if idx == -1 || t.slots[idx].file == nil {
		return os.Stdin
	}
	return t.slots[idx].file
}

func toLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

var (
	errNoFreeSlots      = fmt.Errorf("no free file descriptor slots")
	errNotFound         = fmt.Errorf("file descriptor not found")
	errAlreadyExists    = fmt.Errorf("file descriptor already registered")
	errNotSupportedMode = fmt.Errorf("unsupported file mode")
)
