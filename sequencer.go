// sequencer.go - Fixed-tempo playback of key sequences (pasted melodies, -play)

package main

import (
	"context"
	"sync"
	"time"
)

// FrequencySetter is the write side of a FrequencyControl.
type FrequencySetter interface {
	Set(hz float32)
}

// PlaySequence plays keys one per step through ctl and returns when the last
// step has elapsed or ctx is cancelled. Exit keys are rests. The last note
// keeps sounding, like a held key.
func PlaySequence(ctx context.Context, ctl FrequencySetter, km *KeyMap, keys []Key, step time.Duration) error {
	if len(keys) == 0 {
		return nil
	}
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	for _, k := range keys {
		if IsExitKey(k) {
			ctl.Set(0)
		} else {
			ctl.Set(km.Frequency(k))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Sequencer runs at most one melody at a time in the background. Starting a
// new one, or calling Stop, cancels the current one.
type Sequencer struct {
	ctl  *FrequencyControl
	km   *KeyMap
	step time.Duration

	mutex  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSequencer(ctl *FrequencyControl, km *KeyMap, step time.Duration) *Sequencer {
	if step <= 0 {
		step = DEFAULT_SEQUENCE_STEP
	}
	return &Sequencer{ctl: ctl, km: km, step: step}
}

// Play starts keys in the background and returns immediately.
func (s *Sequencer) Play(ctx context.Context, keys []Key) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		defer cancel()
		_ = PlaySequence(runCtx, s.ctl, s.km, keys, s.step)
	}()
}

// Stop cancels the running melody, if any, and waits for it to exit.
func (s *Sequencer) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stopLocked()
}

func (s *Sequencer) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel, s.done = nil, nil
}
