// keymap_lua.go - Key map overrides loaded from Lua scripts

package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// A key map script sets a global table named keys, mapping key names to Hz,
// and optionally a global number named fallback:
//
//	keys = {
//	    a = note("C4"),
//	    F1 = 55,
//	    Space = 110,
//	    ["1"] = 440 * 2 ^ (3 / 12),
//	}
//	fallback = 330
//
// note(name) converts a note name such as "A4" or "C#5" to Hz.

// LoadKeyMapFile runs the script at path and applies it to km.
func LoadKeyMapFile(km *KeyMap, path string) error {
	L := newKeyMapState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("keymap %s: %w", path, err)
	}
	if err := applyKeyMapGlobals(L, km); err != nil {
		return fmt.Errorf("keymap %s: %w", path, err)
	}
	return nil
}

// LoadKeyMapString runs an in-memory script and applies it to km.
func LoadKeyMapString(km *KeyMap, src string) error {
	L := newKeyMapState()
	defer L.Close()

	if err := L.DoString(src); err != nil {
		return fmt.Errorf("keymap: %w", err)
	}
	return applyKeyMapGlobals(L, km)
}

func newKeyMapState() *lua.LState {
	L := lua.NewState()
	L.SetGlobal("note", L.NewFunction(luaNote))
	return L
}

func luaNote(L *lua.LState) int {
	name := L.CheckString(1)
	hz, err := NoteFrequency(name)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(hz))
	return 1
}

// applyKeyMapGlobals validates the whole keys table before touching km, so a
// bad script leaves the map unchanged.
func applyKeyMapGlobals(L *lua.LState, km *KeyMap) error {
	var bindings []keyBinding
	var firstErr error

	switch keys := L.GetGlobal("keys").(type) {
	case *lua.LNilType:
	case *lua.LTable:
		keys.ForEach(func(k, v lua.LValue) {
			if firstErr != nil {
				return
			}
			var name string
			switch kv := k.(type) {
			case lua.LString:
				name = string(kv)
			case lua.LNumber:
				name = kv.String()
			default:
				firstErr = fmt.Errorf("key %v: expected a key name, got %s", k, k.Type())
				return
			}
			key, err := ParseKeyName(name)
			if err != nil {
				firstErr = err
				return
			}
			hz, ok := v.(lua.LNumber)
			if !ok {
				firstErr = fmt.Errorf("key %q: expected a frequency, got %s", name, v.Type())
				return
			}
			bindings = append(bindings, keyBinding{key: key, hz: float32(hz)})
		})
	default:
		return fmt.Errorf("keys must be a table, got %s", keys.Type())
	}
	if firstErr != nil {
		return firstErr
	}

	var fallback lua.LNumber
	haveFallback := false
	switch fb := L.GetGlobal("fallback").(type) {
	case *lua.LNilType:
	case lua.LNumber:
		fallback, haveFallback = fb, true
	default:
		return fmt.Errorf("fallback must be a number, got %s", fb.Type())
	}

	for _, b := range bindings {
		km.Bind(b.key, b.hz)
	}
	if haveFallback {
		km.SetFallback(float32(fallback))
	}
	return nil
}
