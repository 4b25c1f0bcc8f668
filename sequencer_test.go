// sequencer_test.go - Melody playback and cancellation

package main

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

type recordingSetter struct {
	mutex sync.Mutex
	notes []float32
}

func (r *recordingSetter) Set(hz float32) {
	r.mutex.Lock()
	r.notes = append(r.notes, hz)
	r.mutex.Unlock()
}

func (r *recordingSetter) snapshot() []float32 {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]float32(nil), r.notes...)
}

func TestPlaySequence_Order(t *testing.T) {
	rec := &recordingSetter{}
	keys := DecodeKeys([]byte("as\x1b;"))
	err := PlaySequence(context.Background(), rec, DefaultKeyMap(), keys, time.Millisecond)
	if err != nil {
		t.Fatalf("PlaySequence: %v", err)
	}
	want := []float32{261.63, 277.18, 0, 440}
	if got := rec.snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("notes = %v, want %v", got, want)
	}
}

func TestPlaySequence_Empty(t *testing.T) {
	rec := &recordingSetter{}
	if err := PlaySequence(context.Background(), rec, DefaultKeyMap(), nil, time.Millisecond); err != nil {
		t.Fatalf("PlaySequence: %v", err)
	}
	if len(rec.snapshot()) != 0 {
		t.Fatal("empty sequence must not touch the frequency")
	}
}

func TestPlaySequence_Cancel(t *testing.T) {
	rec := &recordingSetter{}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	start := time.Now()
	err := PlaySequence(ctx, rec, DefaultKeyMap(), DecodeKeys([]byte("asdf")), time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("cancellation did not interrupt the step wait")
	}
	if got := rec.snapshot(); len(got) != 1 || got[0] != 261.63 {
		t.Fatalf("notes = %v, want only the first", got)
	}
}

// TestSequencer_PlaySustainsLastNote verifies a finished melody leaves its
// final note sounding.
func TestSequencer_PlaySustainsLastNote(t *testing.T) {
	ctl := NewFrequencyControl()
	seq := NewSequencer(ctl, DefaultKeyMap(), time.Millisecond)
	seq.Play(context.Background(), DecodeKeys([]byte("zxc")))

	deadline := time.Now().Add(5 * time.Second)
	for ctl.Get() != 146.83 {
		if time.Now().After(deadline) {
			t.Fatalf("final note = %f, want 146.83", ctl.Get())
		}
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	if got := ctl.Get(); got != 146.83 {
		t.Fatalf("note changed to %f after the melody ended", got)
	}
	seq.Stop()
}

// TestSequencer_NewMelodyReplacesOld verifies only one melody writes at a time.
func TestSequencer_NewMelodyReplacesOld(t *testing.T) {
	ctl := NewFrequencyControl()
	seq := NewSequencer(ctl, DefaultKeyMap(), time.Hour)
	seq.Play(context.Background(), DecodeKeys([]byte("aaaa")))
	seq.Play(context.Background(), DecodeKeys([]byte(";")))

	deadline := time.Now().Add(5 * time.Second)
	for ctl.Get() != 440 {
		if time.Now().After(deadline) {
			t.Fatalf("frequency = %f, want 440 from second melody", ctl.Get())
		}
		time.Sleep(time.Millisecond)
	}
	seq.Stop()
	seq.Stop() // idempotent
	if ctl.Get() != 440 {
		t.Fatalf("frequency changed after Stop: %f", ctl.Get())
	}
}

func TestSequencer_DefaultStep(t *testing.T) {
	seq := NewSequencer(NewFrequencyControl(), DefaultKeyMap(), 0)
	if seq.step != DEFAULT_SEQUENCE_STEP {
		t.Fatalf("step = %v, want %v", seq.step, DEFAULT_SEQUENCE_STEP)
	}
}
