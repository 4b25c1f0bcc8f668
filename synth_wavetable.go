// synth_wavetable.go - Single-period wave tables

package main

import "math"

// WaveTable holds exactly one period of a waveform. It is never written after
// construction, so any number of oscillators may read the same table.
type WaveTable []float32

// NewWaveTable samples shape at 2π·i/size for i in [0, size).
// Sizes below 1 are clamped to 1.
func NewWaveTable(size int, shape func(float64) float64) WaveTable {
	if size < 1 {
		size = 1
	}
	table := make(WaveTable, size)
	for i := range table {
		phase := 2 * math.Pi * float64(i) / float64(size)
		table[i] = float32(shape(phase))
	}
	return table
}

// NewSineTable returns a sine period of the given length.
func NewSineTable(size int) WaveTable {
	return NewWaveTable(size, math.Sin)
}

// Len returns the period length in table entries.
func (t WaveTable) Len() int {
	return len(t)
}

// At returns the entry at i, wrapping i into the period. Index len(t) reads
// back entry 0, which is what the interpolator relies on.
func (t WaveTable) At(i int) float32 {
	n := len(t)
	i %= n
	if i < 0 {
		i += n
	}
	return t[i]
}
