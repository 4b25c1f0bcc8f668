// synth_constants.go - Defaults shared by the oscillator, backends and front ends

package main

import "time"

const (
	SAMPLE_RATE         = 44100 // Output stream rate in Hz
	CHANNEL_COUNT       = 1     // Mono output
	DEFAULT_TABLE_SIZE  = 64    // Entries in one wave table period
	DEFAULT_OUTPUT_GAIN = 0.3   // Output attenuation to keep the stream below clipping
)

const (
	MIN_TABLE_SIZE = 2
	MAX_SAMPLE     = 1.0
	MIN_SAMPLE     = -1.0
)

const (
	DEFAULT_POLL_INTERVAL = 10 * time.Millisecond  // Terminal input poll period
	DEFAULT_SEQUENCE_STEP = 200 * time.Millisecond // Melody step length
)

const (
	FALLBACK_FREQ_MIN  = 200.0  // Lowest fallback pitch for unmapped keys
	FALLBACK_FREQ_SPAN = 1000.0 // Width of the fallback band in Hz
)

const (
	OTO_BUFFER_SAMPLES = 4096 // Pre-allocated sample buffer for the render callback
	KEY_EVENT_BUFFER   = 64   // Key events queued between a front end and the controller
)
