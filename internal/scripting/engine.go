package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MTvrimPossible/simulation-game/internal/rules"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for scripted rules and effects.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

var _ rules.ScriptRunner = (*Engine)(nil)

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := newEngine(log)

	// Shared helpers first, then the predicate and effect libraries.
	for _, sub := range []string{"core", "rules", "effects", "legacy"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			e.vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

func newEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	return &Engine{vm: vm, log: log}
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// LoadString runs a chunk of Lua source, typically to define functions.
func (e *Engine) LoadString(src string) error {
	return e.vm.DoString(src)
}

// HasFunction reports whether a global Lua function named fn exists.
func (e *Engine) HasFunction(fn string) bool {
	_, ok := e.vm.GetGlobal(fn).(*lua.LFunction)
	return ok
}

// subjectTable exposes a predicate subject to Lua:
//
//	s.era              current era name
//	s.stat(name)       number or nil
//	s.has_item(id, n)  boolean
func (e *Engine) subjectTable(subject rules.Capabilities) *lua.LTable {
	t := e.vm.NewTable()
	t.RawSetString("era", lua.LString(subject.Era()))
	t.RawSetString("stat", e.vm.NewFunction(func(L *lua.LState) int {
		v, ok := subject.Stat(L.CheckString(1))
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(v))
		return 1
	}))
	t.RawSetString("has_item", e.vm.NewFunction(func(L *lua.LState) int {
		n := L.OptInt(2, 1)
		L.Push(lua.LBool(subject.HasItem(L.CheckString(1), n)))
		return 1
	}))
	return t
}

// call invokes a global function with one argument and returns its single
// result, already popped.
func (e *Engine) call(fn string, arg lua.LValue) (lua.LValue, error) {
	f := e.vm.GetGlobal(fn)
	if f == lua.LNil {
		return nil, fmt.Errorf("lua function %s not found", fn)
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		return nil, fmt.Errorf("lua %s: %w", fn, err)
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return result, nil
}

// Predicate calls fn(subject) and reads the result with Lua truthiness.
func (e *Engine) Predicate(fn string, subject rules.Capabilities) (bool, error) {
	result, err := e.call(fn, e.subjectTable(subject))
	if err != nil {
		return false, err
	}
	return lua.LVAsBool(result), nil
}

// Effect calls fn(subject), which returns a table of stat deltas such as
// { thirst = 40, load = 2 }. Non-numeric entries are ignored; nil means no
// change.
func (e *Engine) Effect(fn string, subject rules.Capabilities) (map[string]float64, error) {
	result, err := e.call(fn, e.subjectTable(subject))
	if err != nil {
		return nil, err
	}
	if result == lua.LNil {
		return nil, nil
	}
	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("lua %s returned %s, want table", fn, result.Type())
	}
	deltas := make(map[string]float64)
	rt.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			return
		}
		if n, ok := v.(lua.LNumber); ok {
			deltas[string(key)] = float64(n)
		}
	})
	return deltas, nil
}

// EpitaphContext describes a finished life for the graveyard.
type EpitaphContext struct {
	Turn  int64
	Day   int
	Load  float64
	Cause string
}

// Epitaph calls the optional Lua epitaph function. It returns "" when the
// function is missing or fails so callers can fall back to plain text.
func (e *Engine) Epitaph(ctx EpitaphContext) string {
	if !e.HasFunction("epitaph") {
		return ""
	}
	t := e.vm.NewTable()
	t.RawSetString("turn", lua.LNumber(ctx.Turn))
	t.RawSetString("day", lua.LNumber(ctx.Day))
	t.RawSetString("load", lua.LNumber(ctx.Load))
	t.RawSetString("cause", lua.LString(ctx.Cause))
	result, err := e.call("epitaph", t)
	if err != nil {
		e.log.Error("lua epitaph error", zap.Error(err))
		return ""
	}
	return lStr(result)
}

func lStr(v lua.LValue) string {
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
