//go:build linux

package extvars

import (
	"fmt"
	"plugin"
)

// Collaborator is the symbol a dynamic external-variable library exports.
// It mirrors the getapi()/init() pair from
// original_source/libvarvm/src/libvarvm.c: the VM loads the library,
// calls Init once, and then dispatches every subsequent GET/SET/NFY/EVS/
// EVE/OPS/CPS straight through the returned Bridge until Shutdown.
type Collaborator interface {
	Init() (Bridge, error)
	Shutdown(Bridge) error
}

// Dynamic loads a Go plugin (the idiomatic Go analog of the original's
// dlopen("libvarvm.so")) and forwards every bridge call to whatever
// Bridge its Init returns. Go plugins only load on linux, which is why
// this file carries the linux build tag; the scripted Lua backend in
// scripted.go is the portable alternative used on platforms without
// plugin support.
type Dynamic struct {
	collab Collaborator
	bridge Bridge
}

// LoadDynamic opens path, looks up the exported "Collaborator" symbol,
// and initializes it. The exported symbol must implement Collaborator.
func LoadDynamic(path string) (*Dynamic, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load externals library %s: %w", path, err)
	}
	sym, err := p.Lookup("Collaborator")
	if err != nil {
		return nil, fmt.Errorf("externals library %s missing Collaborator symbol: %w", path, err)
	}
	collab, ok := sym.(Collaborator)
	if !ok {
		return nil, fmt.Errorf("externals library %s: Collaborator symbol has wrong type", path)
	}
	bridge, err := collab.Init()
	if err != nil {
		return nil, fmt.Errorf("externals library %s: init failed: %w", path, err)
	}
	return &Dynamic{collab: collab, bridge: bridge}, nil
}

func (d *Dynamic) GetHandle(name string) Handle { return d.bridge.GetHandle(name) }
func (d *Dynamic) Get(h Handle) int32            { return d.bridge.Get(h) }
func (d *Dynamic) Set(h Handle, v int32)          { d.bridge.Set(h, v) }
func (d *Dynamic) GetFloat(h Handle) float32      { return d.bridge.GetFloat(h) }
func (d *Dynamic) SetFloat(h Handle, v float32)   { d.bridge.SetFloat(h, v) }
func (d *Dynamic) GetString(h Handle) string      { return d.bridge.GetString(h) }
func (d *Dynamic) SetString(h Handle, v string)   { d.bridge.SetString(h, v) }

func (d *Dynamic) Notify(h Handle, kind NotifyKind) (int, error) {
	return d.bridge.Notify(h, kind)
}

func (d *Dynamic) ValidateStart(requestID int) (*ValidationRequest, error) {
	return d.bridge.ValidateStart(requestID)
}

func (d *Dynamic) ValidateEnd(requestID int, result int) error {
	return d.bridge.ValidateEnd(requestID, result)
}

func (d *Dynamic) OpenPrintSession(requestID int) (*PrintSession, error) {
	return d.bridge.OpenPrintSession(requestID)
}

func (d *Dynamic) ClosePrintSession(requestID int, fd int) error {
	return d.bridge.ClosePrintSession(requestID, fd)
}

func (d *Dynamic) Close() error {
	return d.collab.Shutdown(d.bridge)
}
