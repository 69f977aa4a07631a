package extvars

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeLuaScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collaborator.lua")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScriptedFailsOnMissingFile(t *testing.T) {
	_, err := LoadScripted(filepath.Join(t.TempDir(), "nope.lua"))
	require.Error(t, err)
}

func TestScriptedGetCallsOnGetWithVariableName(t *testing.T) {
	path := writeLuaScript(t, `
function on_get(name)
  if name == "health" then return 42 end
  return 0
end
`)
	s, err := LoadScripted(path)
	require.NoError(t, err)
	defer s.Close()

	h := s.GetHandle("health")
	require.Equal(t, int32(42), s.Get(h))
}

func TestScriptedGetReturnsZeroWhenOnGetIsAbsent(t *testing.T) {
	path := writeLuaScript(t, "-- no callbacks defined\n")
	s, err := LoadScripted(path)
	require.NoError(t, err)
	defer s.Close()

	h := s.GetHandle("anything")
	require.Equal(t, int32(0), s.Get(h))
}

func TestScriptedSetInvokesOnSetWithNameAndValue(t *testing.T) {
	path := writeLuaScript(t, `
last_name = nil
last_value = nil
function on_set(name, value)
  last_name = name
  last_value = value
end
function on_get(name)
  if name == last_name then return last_value end
  return -1
end
`)
	s, err := LoadScripted(path)
	require.NoError(t, err)
	defer s.Close()

	h := s.GetHandle("volume")
	s.Set(h, 7)
	require.Equal(t, int32(7), s.Get(h))
}

func TestScriptedNotifyReturnsIncreasingRequestIDs(t *testing.T) {
	path := writeLuaScript(t, `
function on_notify(name, kind) return 0 end
`)
	s, err := LoadScripted(path)
	require.NoError(t, err)
	defer s.Close()

	h := s.GetHandle("x")
	id1, err := s.Notify(h, NotifyModified)
	require.NoError(t, err)
	id2, err := s.Notify(h, NotifyModified)
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)
}

func TestScriptedNotifyWithoutCallbackIsNotSupported(t *testing.T) {
	path := writeLuaScript(t, "-- empty\n")
	s, err := LoadScripted(path)
	require.NoError(t, err)
	defer s.Close()

	h := s.GetHandle("x")
	_, err = s.Notify(h, NotifyModified)
	require.ErrorIs(t, err, ErrNotSupported)
}

func TestScriptedValidateStartReturnsCapturedRequest(t *testing.T) {
	path := writeLuaScript(t, `
function on_notify(name, kind) return 99 end
`)
	s, err := LoadScripted(path)
	require.NoError(t, err)
	defer s.Close()

	h := s.GetHandle("x")
	id, err := s.Notify(h, NotifyValidate)
	require.NoError(t, err)

	req, err := s.ValidateStart(id)
	require.NoError(t, err)
	require.Equal(t, h, req.Handle)
	require.Equal(t, int32(99), req.CapturedInt)
}

func TestScriptedValidateStartUnknownRequestErrors(t *testing.T) {
	path := writeLuaScript(t, "-- empty\n")
	s, err := LoadScripted(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.ValidateStart(12345)
	require.ErrorIs(t, err, ErrUnknownRequest)
}

func TestScriptedValidateEndRemovesTheRequest(t *testing.T) {
	path := writeLuaScript(t, `
function on_notify(name, kind) return 1 end
function on_validate_end(request, result) end
`)
	s, err := LoadScripted(path)
	require.NoError(t, err)
	defer s.Close()

	h := s.GetHandle("x")
	id, err := s.Notify(h, NotifyValidate)
	require.NoError(t, err)

	require.NoError(t, s.ValidateEnd(id, 0))
	_, err = s.ValidateStart(id)
	require.ErrorIs(t, err, ErrUnknownRequest)
}

func TestScriptedOpenPrintSessionIsUnsupported(t *testing.T) {
	path := writeLuaScript(t, "-- empty\n")
	s, err := LoadScripted(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.OpenPrintSession(1)
	require.ErrorIs(t, err, ErrNotSupported)
}
