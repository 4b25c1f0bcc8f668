// keymap.go - Key to pitch bindings

package main

import "hash/fnv"

// KeyMap resolves key presses to frequencies. Every key produces a pitch:
// unbound keys fall back to a deterministic tone in [200, 1200) Hz derived
// from the key's name, or to a fixed tone when one is configured.
type KeyMap struct {
	notes        map[Key]float32
	fallback     float32
	haveFallback bool
}

type keyBinding struct {
	key Key
	hz  float32
}

// Equal-tempered pitches (A4 = 440 Hz) laid out across the keyboard:
// function keys and arrows cover the bass, letter rows climb from C3 to C7,
// shifted digits reach C#8.
var defaultKeyBindings = []keyBinding{
	{SpecialKey(KeyF1), 55.00},
	{SpecialKey(KeyF2), 58.27},
	{SpecialKey(KeyF3), 61.74},
	{SpecialKey(KeyF4), 65.41},
	{SpecialKey(KeyF5), 69.30},
	{SpecialKey(KeyF6), 73.42},
	{SpecialKey(KeyF7), 77.78},
	{SpecialKey(KeyF8), 82.41},
	{SpecialKey(KeyF9), 87.31},
	{SpecialKey(KeyF10), 92.50},
	{SpecialKey(KeyF11), 98.00},
	{SpecialKey(KeyF12), 103.83},

	// Number row
	{RuneKey('1'), 1046.50},
	{RuneKey('2'), 1108.73},
	{RuneKey('3'), 1174.66},
	{RuneKey('4'), 1244.51},
	{RuneKey('5'), 1318.51},
	{RuneKey('6'), 1396.91},
	{RuneKey('7'), 1479.98},
	{RuneKey('8'), 1567.98},
	{RuneKey('9'), 1661.22},
	{RuneKey('0'), 1760.00},
	{RuneKey('-'), 1864.66},
	{RuneKey('='), 1975.53},

	// Top row
	{RuneKey('q'), 2093.00},
	{RuneKey('w'), 523.25},
	{RuneKey('e'), 554.37},
	{RuneKey('r'), 587.33},
	{RuneKey('t'), 622.25},
	{RuneKey('y'), 659.25},
	{RuneKey('u'), 698.46},
	{RuneKey('i'), 739.99},
	{RuneKey('o'), 783.99},
	{RuneKey('p'), 830.61},
	{RuneKey('['), 880.00},
	{RuneKey(']'), 932.33},
	{RuneKey('\\'), 987.77},

	// Home row
	{RuneKey('a'), 261.63},
	{RuneKey('s'), 277.18},
	{RuneKey('d'), 293.66},
	{RuneKey('f'), 311.13},
	{RuneKey('g'), 329.63},
	{RuneKey('h'), 349.23},
	{RuneKey('j'), 369.99},
	{RuneKey('k'), 392.00},
	{RuneKey('l'), 415.30},
	{RuneKey(';'), 440.00},
	{RuneKey('\''), 466.16},

	// Bottom row
	{RuneKey('z'), 130.81},
	{RuneKey('x'), 138.59},
	{RuneKey('c'), 146.83},
	{RuneKey('v'), 155.56},
	{RuneKey('b'), 164.81},
	{RuneKey('n'), 174.61},
	{RuneKey('m'), 185.00},
	{RuneKey(','), 196.00},
	{RuneKey('.'), 207.65},
	{RuneKey('/'), 220.00},

	{RuneKey(' '), 110.00},
	{SpecialKey(KeyTab), 116.54},
	{SpecialKey(KeyEnter), 123.47},
	{SpecialKey(KeyBackspace), 233.08},
	{SpecialKey(KeyDelete), 246.94},
	{SpecialKey(KeyInsert), 2217.46},
	{SpecialKey(KeyHome), 2349.32},
	{SpecialKey(KeyEnd), 2489.02},
	{SpecialKey(KeyPageUp), 2637.02},
	{SpecialKey(KeyPageDown), 2793.83},

	{SpecialKey(KeyUp), 41.20},
	{SpecialKey(KeyDown), 43.65},
	{SpecialKey(KeyLeft), 46.25},
	{SpecialKey(KeyRight), 49.00},

	// Shifted punctuation
	{RuneKey('`'), 32.70},
	{RuneKey('~'), 34.65},
	{RuneKey('!'), 36.71},
	{RuneKey('@'), 38.89},
	{RuneKey('#'), 2959.96},
	{RuneKey('$'), 3135.96},
	{RuneKey('%'), 3322.44},
	{RuneKey('^'), 3520.00},
	{RuneKey('&'), 3729.31},
	{RuneKey('*'), 3951.07},
	{RuneKey('('), 4186.01},
	{RuneKey(')'), 4434.92},
}

// DefaultKeyMap returns a fresh copy of the built-in layout.
func DefaultKeyMap() *KeyMap {
	km := &KeyMap{notes: make(map[Key]float32, len(defaultKeyBindings))}
	for _, b := range defaultKeyBindings {
		km.notes[b.key] = b.hz
	}
	return km
}

// Bind maps k to hz, replacing any existing binding.
func (km *KeyMap) Bind(k Key, hz float32) {
	km.notes[k] = hz
}

// SetFallback replaces the hashed fallback with a fixed tone for every
// unbound key.
func (km *KeyMap) SetFallback(hz float32) {
	km.fallback = hz
	km.haveFallback = true
}

// Lookup reports the bound frequency of k.
func (km *KeyMap) Lookup(k Key) (float32, bool) {
	hz, ok := km.notes[k]
	return hz, ok
}

// Frequency returns the bound frequency of k, or its fallback tone.
func (km *KeyMap) Frequency(k Key) float32 {
	if hz, ok := km.notes[k]; ok {
		return hz
	}
	if km.haveFallback {
		return km.fallback
	}
	return fallbackFrequency(k)
}

func (km *KeyMap) Len() int {
	return len(km.notes)
}

// fallbackFrequency folds an FNV-1a hash of the key name into whole Hz in
// [FALLBACK_FREQ_MIN, FALLBACK_FREQ_MIN+FALLBACK_FREQ_SPAN).
func fallbackFrequency(k Key) float32 {
	h := fnv.New32a()
	h.Write([]byte(k.String()))
	return FALLBACK_FREQ_MIN + float32(h.Sum32()%uint32(FALLBACK_FREQ_SPAN))
}
