package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/marisk/vantage/types"
)

// registerAPI registers the vantage global table: the surface scripts
// use to read and mutate the running playthrough. Effects produced by
// API calls accumulate into the result of the script call in progress.
func registerAPI(L *lua.LState, m *Manager) {
	api := L.NewTable()

	// vantage.room() -> current room id
	api.RawSetString("room", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(m.eng.State.CurrentRoom))
		return 1
	}))

	// vantage.funvalue() -> the playthrough fun value
	api.RawSetString("funvalue", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(m.eng.State.FunValue))
		return 1
	}))

	// vantage.go(direction) -> true if the player moved
	api.RawSetString("go", L.NewFunction(func(L *lua.LState) int {
		before := m.eng.State.CurrentRoom
		res, err := m.eng.Navigate(L.CheckString(1))
		if err != nil {
			m.log.Error("script navigation failed", "err", err)
			L.Push(lua.LFalse)
			return 1
		}
		m.merge(res)
		L.Push(lua.LBool(m.eng.State.CurrentRoom != before))
		return 1
	}))

	// vantage.enter(room) -> true if the room exists
	api.RawSetString("enter", L.NewFunction(func(L *lua.LState) int {
		res, err := m.eng.TransitionTo(L.CheckString(1))
		if err != nil {
			m.log.Warn("script transition failed", "err", err)
			L.Push(lua.LFalse)
			return 1
		}
		m.merge(res)
		L.Push(lua.LTrue)
		return 1
	}))

	// vantage.text(message) shows text to the player
	api.RawSetString("text", L.NewFunction(func(L *lua.LState) int {
		msg := L.CheckString(1)
		m.emit(types.Effect{
			Type:   types.EffectText,
			Params: map[string]any{"text": msg},
		}, msg)
		return 0
	}))

	// vantage.get(key) -> stored value or nil
	api.RawSetString("get", L.NewFunction(func(L *lua.LState) int {
		v, ok := m.eng.State.Vars[L.CheckString(1)]
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(toLua(v))
		return 1
	}))

	// vantage.put(key, value) stores a string, number, or boolean
	api.RawSetString("put", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(1)
		v, ok := fromLua(L.CheckAny(2))
		if !ok {
			L.ArgError(2, "value must be a string, number, or boolean")
			return 0
		}
		m.eng.State.Vars[key] = v
		return 0
	}))

	// vantage.remove(key) -> true if the key existed
	api.RawSetString("remove", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(1)
		_, ok := m.eng.State.Vars[key]
		delete(m.eng.State.Vars, key)
		L.Push(lua.LBool(ok))
		return 1
	}))

	// vantage.overlay(image, x, y, persistent) -> overlay id
	api.RawSetString("overlay", L.NewFunction(func(L *lua.LState) int {
		id := m.eng.Overlays.Insert(
			L.CheckString(1), L.CheckInt(2), L.CheckInt(3), L.OptBool(4, false))
		L.Push(lua.LString(id))
		return 1
	}))

	// vantage.remove_overlay(id) -> true if the overlay existed
	api.RawSetString("remove_overlay", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(m.eng.Overlays.Remove(L.CheckString(1))))
		return 1
	}))

	// vantage.reposition_overlay(id, x, y) -> true if the overlay existed
	api.RawSetString("reposition_overlay", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LBool(m.eng.Overlays.Reposition(
			L.CheckString(1), L.CheckInt(2), L.CheckInt(3))))
		return 1
	}))

	// vantage.play_music(track)
	api.RawSetString("play_music", L.NewFunction(func(L *lua.LState) int {
		m.emit(types.Effect{
			Type:   types.EffectMusic,
			Params: map[string]any{"track": L.CheckString(1)},
		})
		return 0
	}))

	// vantage.stop_music(fade?)
	api.RawSetString("stop_music", L.NewFunction(func(L *lua.LState) int {
		params := map[string]any{"stop": true}
		if fade := float64(L.OptNumber(1, 0)); fade > 0 {
			params["fade"] = fade
		}
		m.emit(types.Effect{Type: types.EffectMusic, Params: params})
		return 0
	}))

	// vantage.log(message) writes to the engine log at info level
	api.RawSetString("log", L.NewFunction(func(L *lua.LState) int {
		m.log.Info("script log", "msg", L.CheckString(1))
		return 0
	}))

	L.SetGlobal("vantage", api)
}

// merge folds an engine result into the call in progress. Calls made
// from a script file's top level run outside any handler call, so their
// effects have nowhere to go and are dropped.
func (m *Manager) merge(res *types.Result) {
	if res == nil || m.pending == nil {
		return
	}
	m.pending.Effects = append(m.pending.Effects, res.Effects...)
	m.pending.Output = append(m.pending.Output, res.Output...)
}

func (m *Manager) emit(eff types.Effect, out ...string) {
	if m.pending == nil {
		return
	}
	m.pending.Effects = append(m.pending.Effects, eff)
	m.pending.Output = append(m.pending.Output, out...)
}

func toLua(v any) lua.LValue {
	switch t := v.(type) {
	case string:
		return lua.LString(t)
	case bool:
		return lua.LBool(t)
	case int:
		return lua.LNumber(t)
	case float64:
		return lua.LNumber(t)
	default:
		return lua.LNil
	}
}

func fromLua(v lua.LValue) (any, bool) {
	switch t := v.(type) {
	case lua.LString:
		return string(t), true
	case lua.LBool:
		return bool(t), true
	case lua.LNumber:
		return float64(t), true
	default:
		return nil, false
	}
}
