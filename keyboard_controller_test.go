// keyboard_controller_test.go - Key events driving the frequency control

package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestController() (*KeyboardController, *FrequencyControl) {
	ctl := NewFrequencyControl()
	km := DefaultKeyMap()
	return NewKeyboardController(ctl, km, NewSequencer(ctl, km, time.Hour)), ctl
}

func TestKeyboardController_HandleKey(t *testing.T) {
	kc, ctl := newTestController()

	var gotKey Key
	var gotHz float32
	kc.SetNoteHandler(func(k Key, hz float32) {
		gotKey, gotHz = k, hz
	})

	if kc.HandleKey(RuneKey(';')) {
		t.Fatal("';' must not exit")
	}
	if ctl.Get() != 440 {
		t.Fatalf("frequency = %f, want 440", ctl.Get())
	}
	if gotKey != RuneKey(';') || gotHz != 440 {
		t.Fatalf("note handler got %v %f", gotKey, gotHz)
	}

	// Unmapped keys still play, using the fallback tone.
	kc.HandleKey(RuneKey('Q'))
	if want := fallbackFrequency(RuneKey('Q')); ctl.Get() != want {
		t.Fatalf("frequency = %f, want fallback %f", ctl.Get(), want)
	}
}

func TestKeyboardController_ExitKeys(t *testing.T) {
	kc, ctl := newTestController()
	kc.HandleKey(RuneKey('a'))
	for _, k := range []Key{SpecialKey(KeyEsc), SpecialKey(KeyInterrupt)} {
		if !kc.HandleKey(k) {
			t.Fatalf("%v must exit", k)
		}
	}
	if ctl.Get() != 261.63 {
		t.Fatalf("exit key changed the frequency to %f", ctl.Get())
	}
}

func TestKeyboardController_RunStopsOnEsc(t *testing.T) {
	kc, ctl := newTestController()
	events := make(chan Key, 4)
	events <- RuneKey('a')
	events <- RuneKey('s')
	events <- SpecialKey(KeyEsc)
	events <- RuneKey('d') // never consumed

	if err := kc.Run(context.Background(), events); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctl.Get() != 277.18 {
		t.Fatalf("frequency = %f, want 277.18", ctl.Get())
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 unread event, got %d", len(events))
	}
}

func TestKeyboardController_RunClosedChannel(t *testing.T) {
	kc, _ := newTestController()
	events := make(chan Key)
	close(events)
	if err := kc.Run(context.Background(), events); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestKeyboardController_RunCancelled(t *testing.T) {
	kc, _ := newTestController()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := kc.Run(ctx, make(chan Key)); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

// TestKeyboardController_KeyCancelsMelody verifies a live key press takes over
// from a pasted melody.
func TestKeyboardController_KeyCancelsMelody(t *testing.T) {
	kc, ctl := newTestController()
	kc.PlayText(context.Background(), "zzzz")

	deadline := time.Now().Add(5 * time.Second)
	for ctl.Get() != 130.81 {
		if time.Now().After(deadline) {
			t.Fatal("melody never started")
		}
		time.Sleep(time.Millisecond)
	}
	kc.HandleKey(RuneKey('/'))
	time.Sleep(5 * time.Millisecond)
	if ctl.Get() != 220 {
		t.Fatalf("frequency = %f, want 220 from the live key", ctl.Get())
	}
}

// TestKeyboardController_FeedsOscillator wires the input side to a live
// oscillator and checks the next sample uses the new pitch.
func TestKeyboardController_FeedsOscillator(t *testing.T) {
	kc, ctl := newTestController()
	osc := NewWavetableOscillator(SAMPLE_RATE, NewSineTable(DEFAULT_TABLE_SIZE), ctl, DEFAULT_OUTPUT_GAIN)

	if osc.ReadSample() != 0 {
		t.Fatal("expected silence before any key")
	}
	kc.HandleKey(RuneKey(';'))
	osc.ReadSample()
	if want := incrementFor(440, DEFAULT_TABLE_SIZE, SAMPLE_RATE); osc.PhaseIncrement() != want {
		t.Fatalf("increment = %f, want %f", osc.PhaseIncrement(), want)
	}
}
