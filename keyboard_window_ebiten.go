//go:build !headless

// keyboard_window_ebiten.go - Ebiten window front end for keysynth

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

func init() {
	compiledFeatures = append(compiledFeatures, "window:ebiten")
}

const (
	WINDOW_WIDTH    = 360
	WINDOW_HEIGHT   = 120
	MAX_PASTE_BYTES = 4096
)

var windowBackground = color.RGBA{0x10, 0x10, 0x20, 0xFF}

// KeyboardWindow is an alternative to the terminal: key presses in a small
// window are delivered on Events, exactly like TerminalHost.
type KeyboardWindow struct {
	events chan Key
	closed atomic.Bool

	mutex        sync.RWMutex
	lastKey      Key
	lastHz       float32
	pasteHandler func(string)

	clipboardOnce sync.Once
	clipboardOK   bool
}

func NewKeyboardWindow() (*KeyboardWindow, error) {
	return &KeyboardWindow{
		events: make(chan Key, KEY_EVENT_BUFFER),
	}, nil
}

// Events returns the key press channel. It is closed when Run returns.
func (w *KeyboardWindow) Events() <-chan Key {
	return w.events
}

// SetPasteHandler registers fn for Ctrl+Shift+V with the clipboard text.
func (w *KeyboardWindow) SetPasteHandler(fn func(string)) {
	w.mutex.Lock()
	w.pasteHandler = fn
	w.mutex.Unlock()
}

// ShowNote updates the note display. Safe from any goroutine.
func (w *KeyboardWindow) ShowNote(k Key, hz float32) {
	w.mutex.Lock()
	w.lastKey, w.lastHz = k, hz
	w.mutex.Unlock()
}

// Run opens the window and blocks until it is closed. It must be called from
// the main goroutine.
func (w *KeyboardWindow) Run() error {
	defer close(w.events)

	ebiten.SetWindowSize(WINDOW_WIDTH*2, WINDOW_HEIGHT*2)
	ebiten.SetWindowTitle("keysynth")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// Close asks the game loop to exit on its next update.
func (w *KeyboardWindow) Close() {
	w.closed.Store(true)
}

func (w *KeyboardWindow) Update() error {
	if ebiten.IsWindowBeingClosed() {
		w.emit(SpecialKey(KeyEsc))
		return ebiten.Termination
	}
	if w.closed.Load() {
		return ebiten.Termination
	}
	w.handleKeyboardInput()
	return nil
}

// emit never blocks the game loop; a full queue drops the key.
func (w *KeyboardWindow) emit(k Key) {
	select {
	case w.events <- k:
	default:
	}
}

var windowSpecialKeys = map[ebiten.Key]KeyCode{
	ebiten.KeyEnter:       KeyEnter,
	ebiten.KeyNumpadEnter: KeyEnter,
	ebiten.KeyTab:         KeyTab,
	ebiten.KeyBackspace:   KeyBackspace,
	ebiten.KeyEscape:      KeyEsc,
	ebiten.KeyArrowUp:     KeyUp,
	ebiten.KeyArrowDown:   KeyDown,
	ebiten.KeyArrowLeft:   KeyLeft,
	ebiten.KeyArrowRight:  KeyRight,
	ebiten.KeyHome:        KeyHome,
	ebiten.KeyEnd:         KeyEnd,
	ebiten.KeyInsert:      KeyInsert,
	ebiten.KeyDelete:      KeyDelete,
	ebiten.KeyPageUp:      KeyPageUp,
	ebiten.KeyPageDown:    KeyPageDown,
	ebiten.KeyF1:          KeyF1,
	ebiten.KeyF2:          KeyF2,
	ebiten.KeyF3:          KeyF3,
	ebiten.KeyF4:          KeyF4,
	ebiten.KeyF5:          KeyF5,
	ebiten.KeyF6:          KeyF6,
	ebiten.KeyF7:          KeyF7,
	ebiten.KeyF8:          KeyF8,
	ebiten.KeyF9:          KeyF9,
	ebiten.KeyF10:         KeyF10,
	ebiten.KeyF11:         KeyF11,
	ebiten.KeyF12:         KeyF12,
}

func translateWindowKey(key ebiten.Key) (Key, bool) {
	code, ok := windowSpecialKeys[key]
	if !ok {
		return Key{}, false
	}
	return SpecialKey(code), true
}

// runeToKey accepts printable characters only; control characters arrive
// through the special-key path.
func runeToKey(r rune) (Key, bool) {
	if r < 0x20 || r == ASCII_DEL {
		return Key{}, false
	}
	return RuneKey(r), true
}

func (w *KeyboardWindow) handleKeyboardInput() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	// Clipboard paste: Ctrl+Shift+V plays the text as a melody
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		w.handleClipboardPaste()
		return
	}

	// Printable input path, already shifted by the keyboard layout.
	for _, r := range ebiten.AppendInputChars(nil) {
		if k, ok := runeToKey(r); ok {
			w.emit(k)
		}
	}

	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if k, ok := translateWindowKey(key); ok {
			w.emit(k)
		}
	}
}

func normalizePasteText(raw []byte) []byte {
	norm := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\r' {
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			norm = append(norm, '\n')
			continue
		}
		norm = append(norm, raw[i])
	}
	return norm
}

// capPasteText truncates raw to at most max bytes without splitting a rune.
func capPasteText(raw []byte, max int) []byte {
	if len(raw) <= max {
		return raw
	}
	end := max
	for end > 0 && !utf8.RuneStart(raw[end]) {
		end--
	}
	return raw[:end]
}

func (w *KeyboardWindow) handleClipboardPaste() {
	w.clipboardOnce.Do(func() {
		w.clipboardOK = clipboard.Init() == nil
	})
	if !w.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	data = normalizePasteText(data)
	data = capPasteText(data, MAX_PASTE_BYTES)

	w.mutex.RLock()
	handler := w.pasteHandler
	w.mutex.RUnlock()
	if handler != nil {
		handler(string(data))
	}
}

func (w *KeyboardWindow) statusLines() []string {
	w.mutex.RLock()
	k, hz := w.lastKey, w.lastHz
	w.mutex.RUnlock()

	lines := []string{
		"keysynth: press keys to play, ESC to exit",
		"Ctrl+Shift+V plays the clipboard",
		"",
	}
	if k.Code == KeyNone {
		return append(lines, "Note: -")
	}
	return append(lines, fmt.Sprintf("Key: %-8s Note: %-4s %8.2f Hz", k, NoteName(hz), hz))
}

func (w *KeyboardWindow) Draw(screen *ebiten.Image) {
	screen.Fill(windowBackground)
	face := basicfont.Face7x13
	for i, line := range w.statusLines() {
		text.Draw(screen, line, face, 8, 20+i*face.Height, color.White)
	}
}

func (w *KeyboardWindow) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WINDOW_WIDTH, WINDOW_HEIGHT
}
