// Package scripting runs Lua reward hooks.
//
// Scripts may define any of these globals:
//
//	area_gold_multiplier(ctx) -> number   ctx = {map_id, tags, default}
//	is_reward_exempt(ctx)     -> boolean  ctx = {vnum, name, level, category, default}
//
// A missing function, a script error or a result of the wrong type keeps
// the built-in value.
package scripting

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/udisondev/battlecore/internal/model"
)

// Hook function names.
const (
	FnAreaGoldMultiplier = "area_gold_multiplier"
	FnIsRewardExempt     = "is_reward_exempt"
)

// Engine wraps a single gopher-lua VM. LState is not goroutine-safe, so
// every call holds mu; kills on different maps resolve concurrently.
type Engine struct {
	mu sync.Mutex
	vm *lua.LState
}

// NewEngine creates a Lua VM and loads every .lua file from dir in name
// order. A missing dir yields an engine without hooks.
func NewEngine(dir string) (*Engine, error) {
	e := &Engine{vm: lua.NewState()}
	e.vm.SetGlobal("API_VERSION", lua.LNumber(1))

	if err := e.loadDir(dir); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("loading scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromString loads a single script. Used by tests and tooling.
func NewEngineFromString(src string) (*Engine, error) {
	e := &Engine{vm: lua.NewState()}
	if err := e.vm.DoString(src); err != nil {
		e.vm.Close()
		return nil, fmt.Errorf("loading script: %w", err)
	}
	return e, nil
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		slog.Debug("loaded lua script", "file", path)
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}

// Has reports whether the script defines the global function name.
func (e *Engine) Has(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.vm.GetGlobal(name).Type() == lua.LTFunction
}

// AreaGoldMultiplier lets scripts override the gold multiplier of a map.
func (e *Engine) AreaGoldMultiplier(mapID int32, tags []string, def float64) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx := e.vm.NewTable()
	ctx.RawSetString("map_id", lua.LNumber(mapID))
	tt := e.vm.NewTable()
	for _, tag := range tags {
		tt.Append(lua.LString(tag))
	}
	ctx.RawSetString("tags", tt)
	ctx.RawSetString("default", lua.LNumber(def))

	ret, ok := e.call(FnAreaGoldMultiplier, ctx)
	if !ok {
		return def
	}
	n, ok := ret.(lua.LNumber)
	if !ok || float64(n) < 0 {
		slog.Warn("lua hook returned invalid value", "hook", FnAreaGoldMultiplier, "value", ret.String())
		return def
	}
	return float64(n)
}

// IsRewardExempt lets scripts decide whether a monster's rewards skip the
// ground and go straight to the killer.
func (e *Engine) IsRewardExempt(tpl *model.MonsterTemplate, def bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx := e.vm.NewTable()
	ctx.RawSetString("vnum", lua.LNumber(tpl.VNum))
	ctx.RawSetString("name", lua.LString(tpl.Name))
	ctx.RawSetString("level", lua.LNumber(tpl.Level))
	ctx.RawSetString("category", lua.LString(tpl.Category.String()))
	ctx.RawSetString("default", lua.LBool(def))

	ret, ok := e.call(FnIsRewardExempt, ctx)
	if !ok {
		return def
	}
	b, ok := ret.(lua.LBool)
	if !ok {
		slog.Warn("lua hook returned invalid value", "hook", FnIsRewardExempt, "value", ret.String())
		return def
	}
	return bool(b)
}

// call invokes a global function with one argument. Caller holds mu.
func (e *Engine) call(name string, arg lua.LValue) (lua.LValue, bool) {
	fn := e.vm.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, false
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, arg); err != nil {
		slog.Error("lua hook failed", "hook", name, "error", err)
		return lua.LNil, false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	if ret == lua.LNil {
		return ret, false
	}
	return ret, true
}
