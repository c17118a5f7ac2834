// Package script runs Lua handler scripts in a sandboxed VM. A handler
// spec has the form "file.lua:func,arg1,arg2"; the file is loaded from
// the world directory (or the common directory for $COMMON$/ paths),
// executed once, and its VM cached for later calls. Scripts talk back to
// the engine through the vantage global table registered in api.go.
package script

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/marisk/vantage/engine"
	"github.com/marisk/vantage/types"
)

// CommonPrefix marks a script path as shared across worlds.
const CommonPrefix = "$COMMON$/"

// HandlerError reports a failure in a script handler: a bad spec, a
// missing file or function, or a runtime error inside the script.
type HandlerError struct {
	Script string
	Func   string
	Err    error
}

func (e *HandlerError) Error() string {
	if e.Func == "" {
		return fmt.Sprintf("script %q: %v", e.Script, e.Err)
	}
	return fmt.Sprintf("script %q func %q: %v", e.Script, e.Func, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// Manager loads and calls handler scripts. It implements
// engine.ScriptCaller.
type Manager struct {
	eng       *engine.Engine
	worldDir  string
	commonDir string
	log       *slog.Logger
	states    map[string]*lua.LState

	// pending collects effects emitted through the API during one Call.
	pending *types.Result
}

// NewManager creates a script manager bound to an engine. worldDir is
// the directory world-local scripts load from; commonDir resolves the
// $COMMON$/ prefix.
func NewManager(eng *engine.Engine, worldDir, commonDir string, log *slog.Logger) *Manager {
	return &Manager{
		eng:       eng,
		worldDir:  worldDir,
		commonDir: commonDir,
		log:       log,
		states:    map[string]*lua.LState{},
	}
}

// Close shuts down every cached VM.
func (m *Manager) Close() {
	for _, L := range m.states {
		L.Close()
	}
	m.states = map[string]*lua.LState{}
}

// Call parses and runs a handler spec. Script failures are returned as
// a *HandlerError; they never panic into the engine.
func (m *Manager) Call(spec string) (*types.Result, error) {
	file, fn, args, err := parseSpec(spec)
	if err != nil {
		return nil, err
	}

	L, err := m.state(file)
	if err != nil {
		return nil, &HandlerError{Script: file, Func: fn, Err: err}
	}

	fnVal := L.GetGlobal(fn)
	if fnVal.Type() != lua.LTFunction {
		return nil, &HandlerError{Script: file, Func: fn,
			Err: fmt.Errorf("function not defined")}
	}

	m.pending = &types.Result{}
	defer func() { m.pending = nil }()

	largs := make([]lua.LValue, len(args))
	for i, a := range args {
		largs[i] = lua.LString(a)
	}
	if err := L.CallByParam(lua.P{Fn: fnVal, NRet: 1, Protect: true}, largs...); err != nil {
		m.log.Error("script call failed", "script", file, "func", fn, "err", err)
		return nil, &HandlerError{Script: file, Func: fn, Err: err}
	}

	// A string return value becomes player-visible output.
	ret := L.Get(-1)
	L.Pop(1)
	if s, ok := ret.(lua.LString); ok {
		m.pending.Output = append(m.pending.Output, string(s))
		m.pending.Effects = append(m.pending.Effects, types.Effect{
			Type:   types.EffectText,
			Params: map[string]any{"text": string(s)},
		})
	}
	return m.pending, nil
}

// parseSpec splits "file.lua:func,arg1,arg2" into its parts. Only the
// first colon separates file from function, so Windows-style paths are
// not supported; world scripts are always relative forward-slash paths.
func parseSpec(spec string) (file, fn string, args []string, err error) {
	file, rest, ok := strings.Cut(spec, ":")
	if !ok || file == "" || rest == "" {
		return "", "", nil, &HandlerError{Script: spec,
			Err: fmt.Errorf(`spec missing "file:func" separator`)}
	}
	parts := strings.Split(rest, ",")
	return file, parts[0], parts[1:], nil
}

// state returns the cached VM for a script file, loading and executing
// the file on first use.
func (m *Manager) state(file string) (*lua.LState, error) {
	if L, ok := m.states[file]; ok {
		return L, nil
	}

	path := filepath.Join(m.worldDir, file)
	if rest, ok := strings.CutPrefix(file, CommonPrefix); ok {
		path = filepath.Join(m.commonDir, rest)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no such script: %s", path)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	registerAPI(L, m)

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("executing %s: %w", file, err)
	}
	m.states[file] = L
	m.log.Debug("script loaded", "script", file)
	return L, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed so scripts cannot perturb determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
