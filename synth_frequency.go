// synth_frequency.go - Shared target frequency between input and audio contexts

package main

import "sync"

// FrequencyControl is the single scalar the input side writes and the
// oscillator reads on every sample. The lock covers one float and is never
// held across I/O. There is no queue: a reader only ever sees the latest write.
type FrequencyControl struct {
	mutex sync.Mutex
	hz    float32
}

// NewFrequencyControl returns a control starting at 0 Hz (silence).
func NewFrequencyControl() *FrequencyControl {
	return &FrequencyControl{}
}

// Set replaces the stored frequency. Any value is accepted, including
// negative and non-finite ones; the oscillator decides what they sound like.
func (fc *FrequencyControl) Set(hz float32) {
	fc.mutex.Lock()
	fc.hz = hz
	fc.mutex.Unlock()
}

// Get returns the latest stored frequency.
func (fc *FrequencyControl) Get() float32 {
	fc.mutex.Lock()
	hz := fc.hz
	fc.mutex.Unlock()
	return hz
}
