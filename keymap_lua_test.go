// keymap_lua_test.go - Lua key map scripts

package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestKeyMapLua_Overrides(t *testing.T) {
	km := DefaultKeyMap()
	err := LoadKeyMapString(km, `
keys = {
    a = 100,
    F1 = 60,
    Space = note("A3"),
    ["1"] = 440 * 2 ^ (3 / 12),
    Up = note("C#2"),
}
`)
	if err != nil {
		t.Fatalf("LoadKeyMapString: %v", err)
	}
	checks := []struct {
		key  Key
		want float64
	}{
		{RuneKey('a'), 100},
		{SpecialKey(KeyF1), 60},
		{RuneKey(' '), 220},
		{RuneKey('1'), 523.25},
		{SpecialKey(KeyUp), 69.30},
		{RuneKey('s'), 277.18}, // untouched
	}
	for _, c := range checks {
		if got := km.Frequency(c.key); math.Abs(float64(got)-c.want) > 0.01 {
			t.Errorf("%v = %f, want %f", c.key, got, c.want)
		}
	}
}

func TestKeyMapLua_NumericKey(t *testing.T) {
	km := DefaultKeyMap()
	if err := LoadKeyMapString(km, `keys = { [7] = 77 }`); err != nil {
		t.Fatalf("LoadKeyMapString: %v", err)
	}
	if got := km.Frequency(RuneKey('7')); got != 77 {
		t.Fatalf("7 = %f, want 77", got)
	}
}

func TestKeyMapLua_Fallback(t *testing.T) {
	km := DefaultKeyMap()
	if err := LoadKeyMapString(km, `fallback = 330`); err != nil {
		t.Fatalf("LoadKeyMapString: %v", err)
	}
	if got := km.Frequency(RuneKey('Z')); got != 330 {
		t.Fatalf("fallback = %f, want 330", got)
	}
}

// TestKeyMapLua_ErrorsLeaveMapUntouched verifies a rejected script does not
// half-apply its bindings.
func TestKeyMapLua_ErrorsLeaveMapUntouched(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `keys = {`, "keymap"},
		{"unknown_name", `keys = { a = 1, Bogus = 2 }`, "unknown key name"},
		{"bad_value", `keys = { a = 1, s = "loud" }`, "expected a frequency"},
		{"keys_not_table", `keys = 5`, "keys must be a table"},
		{"bad_fallback", `keys = { a = 1 } fallback = "x"`, "fallback must be a number"},
		{"bad_note", `keys = { a = note("H9") }`, "invalid note"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			km := DefaultKeyMap()
			err := LoadKeyMapString(km, tc.src)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
			if got := km.Frequency(RuneKey('a')); got != 261.63 {
				t.Fatalf("a = %f after failed load, want 261.63", got)
			}
		})
	}
}

func TestKeyMapLua_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.lua")
	if err := os.WriteFile(path, []byte(`keys = { z = note("A2") }`), 0o644); err != nil {
		t.Fatal(err)
	}
	km := DefaultKeyMap()
	if err := LoadKeyMapFile(km, path); err != nil {
		t.Fatalf("LoadKeyMapFile: %v", err)
	}
	if got := km.Frequency(RuneKey('z')); math.Abs(float64(got)-110) > 0.01 {
		t.Fatalf("z = %f, want 110", got)
	}

	if err := LoadKeyMapFile(km, filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
