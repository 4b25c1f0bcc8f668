// keyboard_keys.go - Key identities and raw terminal byte decoding

package main

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type KeyCode uint8

const (
	KeyNone KeyCode = iota
	// KeyRune is a printable character, see Key.Rune.
	KeyRune
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyInterrupt // Ctrl-C while the terminal is raw
	KeyUnknown   // Unrecognised byte or escape sequence, see Key.Seq
)

const (
	ASCII_CTRL_C = 0x03
	ASCII_BS     = 0x08
	ASCII_TAB    = 0x09
	ASCII_LF     = 0x0A
	ASCII_CR     = 0x0D
	ASCII_ESC    = 0x1B
	ASCII_DEL    = 0x7F
)

// Key identifies one physical key press. It is comparable and used directly
// as a map key by KeyMap.
type Key struct {
	Code KeyCode
	Rune rune   // Set when Code == KeyRune
	Seq  string // Raw bytes when Code == KeyUnknown
}

func RuneKey(r rune) Key          { return Key{Code: KeyRune, Rune: r} }
func SpecialKey(code KeyCode) Key { return Key{Code: code} }

var keyCodeNames = map[KeyCode]string{
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyEsc:       "Esc",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
	KeyInterrupt: "Ctrl-C",
}

// String returns the name used in key-map scripts: the character itself for
// printable keys ("Space" for ' '), otherwise the key's name.
func (k Key) String() string {
	switch k.Code {
	case KeyRune:
		if k.Rune == ' ' {
			return "Space"
		}
		return string(k.Rune)
	case KeyUnknown:
		return fmt.Sprintf("Unknown(%q)", k.Seq)
	case KeyNone:
		return "None"
	}
	if name, ok := keyCodeNames[k.Code]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", k.Code)
}

// ParseKeyName is the inverse of Key.String for named and printable keys.
// Single characters are literal; longer names match case-insensitively.
func ParseKeyName(name string) (Key, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return RuneKey(r), nil
	}
	if strings.EqualFold(name, "Space") {
		return RuneKey(' '), nil
	}
	for code, n := range keyCodeNames {
		if strings.EqualFold(name, n) {
			return SpecialKey(code), nil
		}
	}
	return Key{}, fmt.Errorf("unknown key name %q", name)
}

// DecodeKeys splits a complete byte string into key presses. A lone ESC at
// the end is the Esc key; ESC followed by anything other than '[', 'O' or
// another ESC is an Alt chord and decodes as the following key.
func DecodeKeys(data []byte) []Key {
	var keys []Key
	for i := 0; i < len(data); {
		key, n := decodeKey(data[i:])
		keys = append(keys, key)
		i += n
	}
	return keys
}

func decodeKey(data []byte) (Key, int) {
	b := data[0]
	switch {
	case b == ASCII_ESC:
		return decodeEscape(data)
	case b == ASCII_CR || b == ASCII_LF:
		return SpecialKey(KeyEnter), 1
	case b == ASCII_TAB:
		return SpecialKey(KeyTab), 1
	case b == ASCII_DEL || b == ASCII_BS:
		return SpecialKey(KeyBackspace), 1
	case b == ASCII_CTRL_C:
		return SpecialKey(KeyInterrupt), 1
	case b >= 0x01 && b <= 0x1A:
		// Ctrl+letter plays the letter; the modifier is not part of the identity.
		return RuneKey(rune('a' + b - 1)), 1
	case b < 0x20:
		return Key{Code: KeyUnknown, Seq: string(data[:1])}, 1
	}

	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size <= 1 {
		return Key{Code: KeyUnknown, Seq: string(data[:1])}, 1
	}
	return RuneKey(r), size
}

func decodeEscape(data []byte) (Key, int) {
	if len(data) < 2 || data[1] == ASCII_ESC {
		return SpecialKey(KeyEsc), 1
	}
	switch data[1] {
	case '[':
		return decodeCSI(data)
	case 'O':
		if len(data) < 3 {
			return RuneKey('O'), 2
		}
		if code, ok := ss3Keys[data[2]]; ok {
			return SpecialKey(code), 3
		}
		return Key{Code: KeyUnknown, Seq: string(data[:3])}, 3
	}
	// Alt+key arrives as ESC then the key. Like Ctrl, Alt is not part of the
	// key identity.
	key, n := decodeKey(data[1:])
	return key, n + 1
}

// incompleteKey reports whether data starts with a key whose remaining
// bytes may still be in flight: a bare ESC, an unterminated CSI or SS3
// sequence, or a truncated UTF-8 rune.
func incompleteKey(data []byte) bool {
	switch {
	case data[0] >= utf8.RuneSelf:
		return !utf8.FullRune(data)
	case data[0] != ASCII_ESC:
		return false
	case len(data) == 1:
		return true
	}

	switch data[1] {
	case ASCII_ESC:
		return false
	case 'O':
		return len(data) < 3
	case '[':
		if len(data) >= 3 && data[2] == '[' {
			return len(data) < 4
		}
		j := 2
		for j < len(data) && (data[j] >= '0' && data[j] <= '9' || data[j] == ';') {
			j++
		}
		return j >= len(data)
	}
	return data[1] >= utf8.RuneSelf && !utf8.FullRune(data[1:])
}

// KeyDecoder decodes a raw terminal stream in which escape sequences and
// multi-byte runes may be split across reads. Incomplete trailing bytes are
// held until more input arrives or the input goes idle.
type KeyDecoder struct {
	pending []byte
	idle    int
}

// Feed decodes data, prefixed by any bytes held from the previous call.
func (d *KeyDecoder) Feed(data []byte) []Key {
	buf := append(d.pending, data...)
	d.pending = nil
	d.idle = 0

	var keys []Key
	for i := 0; i < len(buf); {
		if incompleteKey(buf[i:]) {
			d.pending = append([]byte(nil), buf[i:]...)
			break
		}
		key, n := decodeKey(buf[i:])
		keys = append(keys, key)
		i += n
	}
	return keys
}

// Idle is called once per poll that returned no bytes. Held bytes are
// decoded as they stand on the second consecutive idle poll, so a bare ESC
// becomes the Esc key once a full poll interval passes with nothing after it.
func (d *KeyDecoder) Idle() []Key {
	if len(d.pending) == 0 {
		return nil
	}
	d.idle++
	if d.idle < 2 {
		return nil
	}
	return d.Flush()
}

// Flush decodes and clears any held bytes.
func (d *KeyDecoder) Flush() []Key {
	buf := d.pending
	d.pending = nil
	d.idle = 0
	return DecodeKeys(buf)
}

func (d *KeyDecoder) Pending() bool {
	return len(d.pending) > 0
}

var ss3Keys = map[byte]KeyCode{
	'P': KeyF1,
	'Q': KeyF2,
	'R': KeyF3,
	'S': KeyF4,
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// Final bytes of parameterless (or modifier-only) CSI sequences.
var csiFinalKeys = ss3Keys

// Parameters of "ESC [ n ~" sequences (vt220 / xterm).
var csiTildeKeys = map[string]KeyCode{
	"1":  KeyHome,
	"2":  KeyInsert,
	"3":  KeyDelete,
	"4":  KeyEnd,
	"5":  KeyPageUp,
	"6":  KeyPageDown,
	"7":  KeyHome,
	"8":  KeyEnd,
	"11": KeyF1,
	"12": KeyF2,
	"13": KeyF3,
	"14": KeyF4,
	"15": KeyF5,
	"17": KeyF6,
	"18": KeyF7,
	"19": KeyF8,
	"20": KeyF9,
	"21": KeyF10,
	"23": KeyF11,
	"24": KeyF12,
}

func decodeCSI(data []byte) (Key, int) {
	// Linux console F1-F5: ESC [ [ A..E
	if len(data) >= 4 && data[2] == '[' {
		if data[3] >= 'A' && data[3] <= 'E' {
			return SpecialKey(KeyF1 + KeyCode(data[3]-'A')), 4
		}
		return Key{Code: KeyUnknown, Seq: string(data[:4])}, 4
	}

	j := 2
	for j < len(data) && (data[j] >= '0' && data[j] <= '9' || data[j] == ';') {
		j++
	}
	if j >= len(data) {
		return Key{Code: KeyUnknown, Seq: string(data)}, len(data)
	}
	final := data[j]
	params := string(data[2:j])
	n := j + 1

	if final == '~' {
		// Modifiers follow the first ';' and do not change the key.
		if semi := strings.IndexByte(params, ';'); semi >= 0 {
			params = params[:semi]
		}
		if code, ok := csiTildeKeys[params]; ok {
			return SpecialKey(code), n
		}
		return Key{Code: KeyUnknown, Seq: string(data[:n])}, n
	}
	if code, ok := csiFinalKeys[final]; ok {
		return SpecialKey(code), n
	}
	return Key{Code: KeyUnknown, Seq: string(data[:n])}, n
}
