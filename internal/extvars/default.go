package extvars

import (
	"fmt"
	"sync"
)

// record is one externally-hosted variable. The reference implementation
// keeps these in a singly-linked list and scans it linearly on every
// access (see original_source/libvmcore/src/externvars.c); a Go map
// gives the same "keyed by name, stable handle for process lifetime"
// behavior without hand-rolling list traversal, so that is the one place
// this port departs from the original's literal data structure.
type record struct {
	name   string
	ival   int32
	fval   float32
	sval   string
}

// Default is the in-process external-variable backend used when no
// collaborator library is configured. It has no notification, validation,
// or print-session support — those callbacks are simply absent in the
// original's default vtable, and every wrapper in externvars.c checks for
// a nil callback before invoking it, reporting "not supported" otherwise.
type Default struct {
	mu      sync.Mutex
	byName  map[string]Handle
	records map[Handle]*record
	next    Handle
}

// NewDefault constructs the in-process bridge. Handle 0 is never issued,
// matching the reference implementation's use of 0 as a sentinel.
func NewDefault() *Default {
	return &Default{
		byName:  make(map[string]Handle),
		records: make(map[Handle]*record),
		next:    1,
	}
}

func (d *Default) GetHandle(name string) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	if h, ok := d.byName[name]; ok {
		return h
	}
	h := d.next
	d.next++
	d.byName[name] = h
	d.records[h] = &record{name: name}
	return h
}

func (d *Default) find(h Handle) *record {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.records[h]
	if !ok {
		return &record{}
	}
	return r
}

func (d *Default) Get(h Handle) int32        { return d.find(h).ival }
func (d *Default) GetFloat(h Handle) float32 { return d.find(h).fval }
func (d *Default) GetString(h Handle) string { return d.find(h).sval }

func (d *Default) Set(h Handle, v int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if r, ok := d.records[h]; ok {
		r.ival = v
	}
}

func (d *Default) SetFloat(h Handle, v float32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if r, ok := d.records[h]; ok {
		r.fval = v
	}
}

func (d *Default) SetString(h Handle, v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if r, ok := d.records[h]; ok {
		r.sval = v
	}
}

// Notify, ValidateStart, ValidateEnd, OpenPrintSession and
// ClosePrintSession are all unsupported in the default backend: there is
// no collaborator to raise a request id against. This mirrors
// EXTERNVAR_fnNotify and friends returning ENOTSUP when the installed
// API has no callback registered for that function.
func (d *Default) Notify(h Handle, kind NotifyKind) (int, error) {
	return 0, fmt.Errorf("notify: %w", ErrNotSupported)
}

func (d *Default) ValidateStart(requestID int) (*ValidationRequest, error) {
	return nil, fmt.Errorf("validate start: %w", ErrNotSupported)
}

func (d *Default) ValidateEnd(requestID int, result int) error {
	return fmt.Errorf("validate end: %w", ErrNotSupported)
}

func (d *Default) OpenPrintSession(requestID int) (*PrintSession, error) {
	return nil, fmt.Errorf("open print session: %w", ErrNotSupported)
}

func (d *Default) ClosePrintSession(requestID int, fd int) error {
	return fmt.Errorf("close print session: %w", ErrNotSupported)
}

func (d *Default) Close() error { return nil }
