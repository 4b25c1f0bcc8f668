// keyboard_controller.go - Routes key presses from any front end to the frequency control

package main

import (
	"context"
	"sync"
)

// IsExitKey reports whether k ends the session.
func IsExitKey(k Key) bool {
	return k.Code == KeyEsc || k.Code == KeyInterrupt
}

// KeyboardController is the input side of the synth: one bounded write into
// the FrequencyControl per key press. It never waits on the audio side.
type KeyboardController struct {
	ctl    *FrequencyControl
	keymap *KeyMap
	seq    *Sequencer

	mutex  sync.RWMutex
	onNote func(Key, float32)
}

func NewKeyboardController(ctl *FrequencyControl, km *KeyMap, seq *Sequencer) *KeyboardController {
	return &KeyboardController{ctl: ctl, keymap: km, seq: seq}
}

// SetNoteHandler registers fn to be called after every note change, for
// status display. fn runs on the input goroutine.
func (kc *KeyboardController) SetNoteHandler(fn func(Key, float32)) {
	kc.mutex.Lock()
	kc.onNote = fn
	kc.mutex.Unlock()
}

// HandleKey applies one key press and reports whether it was an exit key.
// A live key press cancels any melody in progress.
func (kc *KeyboardController) HandleKey(k Key) bool {
	if kc.seq != nil {
		kc.seq.Stop()
	}
	if IsExitKey(k) {
		return true
	}
	hz := kc.keymap.Frequency(k)
	kc.ctl.Set(hz)

	kc.mutex.RLock()
	fn := kc.onNote
	kc.mutex.RUnlock()
	if fn != nil {
		fn(k, hz)
	}
	return false
}

// PlayText plays text as a melody, one key per step.
func (kc *KeyboardController) PlayText(ctx context.Context, text string) {
	if kc.seq == nil || text == "" {
		return
	}
	kc.seq.Play(ctx, DecodeKeys([]byte(text)))
}

// Run consumes key events until an exit key, a closed channel or ctx
// cancellation. Exit keys and a closed channel return nil.
func (kc *KeyboardController) Run(ctx context.Context, events <-chan Key) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case k, ok := <-events:
			if !ok {
				return nil
			}
			if kc.HandleKey(k) {
				return nil
			}
		}
	}
}
