package extvars

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Scripted is an external-variable backend driven by a Lua collaborator
// script, the portable alternative to Dynamic's native-plugin loading for
// hosts where Go's plugin package is unavailable (anything but linux) or
// where the deployment wants to hand-edit variable behavior without a
// compiled artifact. It plays the same role as
// original_source/libvarvm.c's dlopen'd collaborator but resolves
// get/set/notify/validate callbacks as Lua globals instead of C
// symbols. Print sessions are not supported.
//
// Expected script shape:
//
//	function on_get(name) return 0 end
//	function on_set(name, value) end
//	function on_notify(name, kind) return 0 end   -- value captured for ValidateStart
//	function on_validate_end(request, result) end
//	-- any of these may be omitted: without on_notify, Notify reports
//	-- "not supported"; without on_get, reads return zero values; a
//	-- missing on_set or on_validate_end is ignored
type Scripted struct {
	mu     sync.Mutex
	state  *lua.LState
	byName map[string]Handle
	names  map[Handle]string
	next   Handle

	requests map[int]*ValidationRequest
	nextReq  int
}

// LoadScripted loads and runs path as a gopher-lua script, installing it
// as the external-variable collaborator.
func LoadScripted(path string) (*Scripted, error) {
	l := lua.NewState()
	if err := l.DoFile(path); err != nil {
		l.Close()
		return nil, fmt.Errorf("load externals script %s: %w", path, err)
	}
	return &Scripted{
		state:    l,
		byName:   make(map[string]Handle),
		names:    make(map[Handle]string),
		next:     1,
		requests: make(map[int]*ValidationRequest),
		nextReq:  1,
	}, nil
}

func (s *Scripted) GetHandle(name string) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.byName[name]; ok {
		return h
	}
	h := s.next
	s.next++
	s.byName[name] = h
	s.names[h] = name
	return h
}

func (s *Scripted) callFunc(name string, args ...lua.LValue) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn := s.state.GetGlobal(name)
	if fn == lua.LNil {
		return lua.LNil, ErrNotSupported
	}
	if err := s.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		return lua.LNil, fmt.Errorf("lua %s: %w", name, err)
	}
	ret := s.state.Get(-1)
	s.state.Pop(1)
	return ret, nil
}

func (s *Scripted) Get(h Handle) int32 {
	ret, err := s.callFunc("on_get", lua.LString(s.names[h]))
	if err != nil {
		return 0
	}
	return int32(lua.LVAsNumber(ret))
}

func (s *Scripted) GetFloat(h Handle) float32 {
	ret, err := s.callFunc("on_get", lua.LString(s.names[h]))
	if err != nil {
		return 0
	}
	return float32(lua.LVAsNumber(ret))
}

func (s *Scripted) GetString(h Handle) string {
	ret, err := s.callFunc("on_get", lua.LString(s.names[h]))
	if err != nil {
		return ""
	}
	return lua.LVAsString(ret)
}

func (s *Scripted) Set(h Handle, v int32) {
	_, _ = s.callFunc("on_set", lua.LString(s.names[h]), lua.LNumber(v))
}

func (s *Scripted) SetFloat(h Handle, v float32) {
	_, _ = s.callFunc("on_set", lua.LString(s.names[h]), lua.LNumber(v))
}

func (s *Scripted) SetString(h Handle, v string) {
	_, _ = s.callFunc("on_set", lua.LString(s.names[h]), lua.LString(v))
}

func (s *Scripted) Notify(h Handle, kind NotifyKind) (int, error) {
	ret, err := s.callFunc("on_notify", lua.LString(s.names[h]), lua.LNumber(kind))
	if err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	s.mu.Lock()
	id := s.nextReq
	s.nextReq++
	s.requests[id] = &ValidationRequest{Handle: h, CapturedInt: int32(lua.LVAsNumber(ret))}
	s.mu.Unlock()
	return id, nil
}

func (s *Scripted) ValidateStart(requestID int) (*ValidationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok {
		return nil, ErrUnknownRequest
	}
	return req, nil
}

func (s *Scripted) ValidateEnd(requestID int, result int) error {
	_, err := s.callFunc("on_validate_end", lua.LNumber(requestID), lua.LNumber(result))
	s.mu.Lock()
	delete(s.requests, requestID)
	s.mu.Unlock()
	if err == ErrNotSupported {
		return nil
	}
	return err
}

func (s *Scripted) OpenPrintSession(requestID int) (*PrintSession, error) {
	return nil, ErrNotSupported
}

func (s *Scripted) ClosePrintSession(requestID int, fd int) error {
	return ErrNotSupported
}

func (s *Scripted) Close() error {
	s.state.Close()
	return nil
}
