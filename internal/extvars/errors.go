package extvars

import "errors"

// ErrNotSupported is returned by any bridge callback the active backend
// does not implement, matching the reference externvars.c wrappers'
// ENOTSUP behavior when the installed vtable leaves a callback nil.
var ErrNotSupported = errors.New("not supported")

// ErrUnknownRequest is returned when a validate/print-session call names
// a request id the bridge never issued via Notify.
var ErrUnknownRequest = errors.New("unknown request id")
