// synth_oscillator.go - Table-lookup oscillator pulled by the audio backend

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import "math"

// WavetableOscillator renders one mono sample per ReadSample call by linear
// interpolation through a shared WaveTable. Calls must be sequential; the only
// state shared with other goroutines is the FrequencyControl.
type WavetableOscillator struct {
	// Hot fields, touched every sample
	phase    float32 // Read cursor in table entries, always in [0, len(table))
	phaseInc float32 // Entries advanced per sample at the current frequency
	gain     float32 // Output attenuation (0.0-1.0)

	sampleRate int
	table      WaveTable
	freq       *FrequencyControl
}

// NewWavetableOscillator binds an oscillator to table and freq. A nil freq
// gets a fresh control at 0 Hz, reachable through Frequency. Gain is clamped
// to [0, 1].
func NewWavetableOscillator(sampleRate int, table WaveTable, freq *FrequencyControl, gain float32) *WavetableOscillator {
	if sampleRate <= 0 {
		sampleRate = SAMPLE_RATE
	}
	if len(table) == 0 {
		table = NewSineTable(DEFAULT_TABLE_SIZE)
	}
	if freq == nil {
		freq = NewFrequencyControl()
	}
	return &WavetableOscillator{
		gain:       clampGain(gain),
		sampleRate: sampleRate,
		table:      table,
		freq:       freq,
	}
}

func clampGain(gain float32) float32 {
	switch {
	case gain != gain || gain < 0: // NaN or negative
		return 0
	case gain > MAX_SAMPLE:
		return MAX_SAMPLE
	}
	return gain
}

// Frequency returns the shared control this oscillator reads from.
func (osc *WavetableOscillator) Frequency() *FrequencyControl {
	return osc.freq
}

func (osc *WavetableOscillator) SampleRate() int         { return osc.sampleRate }
func (osc *WavetableOscillator) Channels() int           { return CHANNEL_COUNT }
func (osc *WavetableOscillator) Gain() float32           { return osc.gain }
func (osc *WavetableOscillator) Phase() float32          { return osc.phase }
func (osc *WavetableOscillator) PhaseIncrement() float32 { return osc.phaseInc }

// updateIncrement recomputes the step from the live frequency. It runs every
// sample so a Set is heard on the very next one.
func (osc *WavetableOscillator) updateIncrement() {
	osc.phaseInc = osc.freq.Get() * float32(osc.table.Len()) / float32(osc.sampleRate)
}

// ReadSample returns the next output sample. A zero (or non-finite) increment
// is the note-off state: it returns 0 and leaves the phase where it was.
func (osc *WavetableOscillator) ReadSample() float32 {
	osc.updateIncrement()

	inc := float64(osc.phaseInc)
	if inc == 0 || math.IsNaN(inc) || math.IsInf(inc, 0) {
		return 0
	}

	sample := osc.lerp()
	osc.phase = wrapPhase(osc.phase+osc.phaseInc, osc.table.Len())
	return sample * osc.gain
}

// Read fills buf with consecutive samples. It never fails and never blocks.
func (osc *WavetableOscillator) Read(buf []float32) (int, error) {
	for i := range buf {
		buf[i] = osc.ReadSample()
	}
	return len(buf), nil
}

// lerp blends the two entries straddling the cursor. The upper neighbour of
// the last entry is entry 0.
func (osc *WavetableOscillator) lerp() float32 {
	i0 := int(osc.phase)
	frac := osc.phase - float32(i0)
	return osc.table[i0]*(1-frac) + osc.table.At(i0+1)*frac
}

// wrapPhase folds p into [0, n). Negative increments walk the table
// backwards; a phase that overflowed to a non-finite value restarts at 0.
func wrapPhase(p float32, n int) float32 {
	size := float32(n)
	if p >= 0 && p < size {
		return p
	}
	w := float32(math.Mod(float64(p), float64(n)))
	if w < 0 {
		w += size
	}
	if w != w || w >= size {
		// NaN from an infinite phase, or -ε + n rounding up to n
		return 0
	}
	return w
}
