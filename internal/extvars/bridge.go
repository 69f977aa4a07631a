// Package extvars implements the externally-hosted variable bridge: an
// indirection table of twelve functions that let VM programs read,
// write, and be notified about state that lives outside the VM image.
//
// Grounded on original_source/libvmcore/inc/externvars.h (the tzEXTVARAPI
// vtable) and libvarvm/src/libvarvm.c (the dynamically-loaded reference
// collaborator).
package extvars

// NotifyKind is the small, fixed set of events a variable can raise.
type NotifyKind int

const (
	NotifyModified NotifyKind = iota + 1
	NotifyCalc
	NotifyValidate
	NotifyPrint
)

// Handle is an opaque, process-lifetime-stable reference to an external
// variable, assigned on first reference to its name.
type Handle uint32

// ValidationRequest carries the state opened by ValidateStart and closed
// by ValidateEnd: the handle under validation and its captured proposed
// value, which GET must return in place of the committed value for the
// duration of the validation.
type ValidationRequest struct {
	Handle Handle
	// CapturedInt/CapturedFloat/CapturedString hold whichever payload
	// the variable's kind uses; only one is meaningful at a time.
	CapturedInt    int32
	CapturedFloat  float32
	CapturedString string
}

// PrintSession is the state opened by OpenPrintSession and closed by
// ClosePrintSession: the variable handle and the host fd the VM should
// register as an external write-fd.
type PrintSession struct {
	Handle Handle
	FD     int
}

// Bridge is the twelve-function vtable the VM dispatches GET/SET/NFY/
// EVS/EVE/OPS/CPS through. Implementations: Default (in-process), Dynamic
// (native plugin), Scripted (Lua collaborator).
type Bridge interface {
	GetHandle(name string) Handle

	Get(h Handle) int32
	Set(h Handle, v int32)
	GetFloat(h Handle) float32
	SetFloat(h Handle, v float32)
	GetString(h Handle) string
	SetString(h Handle, v string)

	// Notify reports kind for h and returns a request id used by
	// ValidateStart/ValidateEnd/OpenPrintSession to resume the flow.
	Notify(h Handle, kind NotifyKind) (requestID int, err error)

	// ValidateStart begins validation for a request raised by a
	// NotifyValidate notification.
	ValidateStart(requestID int) (*ValidationRequest, error)
	// ValidateEnd ends validation; result 0 means allow, nonzero means
	// deny (an errno-style code reported back to the collaborator).
	ValidateEnd(requestID int, result int) error

	OpenPrintSession(requestID int) (*PrintSession, error)
	ClosePrintSession(requestID int, fd int) error

	// Close tears down any bridge-owned resources (plugin handles,
	// script interpreters, sockets). Called once at VM shutdown.
	Close() error
}
