//go:build !headless

// audio_backend_oto.go - OTO v3 audio output implementation

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:oto")
}

type OtoPlayer struct {
	ctx       *oto.Context
	player    *oto.Player
	source    atomic.Pointer[WavetableOscillator] // Atomic for lock-free Read()
	sampleBuf []float32                           // Pre-allocated sample buffer
	started   bool
	mutex     sync.Mutex // Only for setup/control operations
}

// NewOtoPlayer opens the default output device as a mono float32 stream.
func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: CHANNEL_COUNT,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0, // driver default
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	<-ready

	return &OtoPlayer{
		ctx:     ctx,
		started: false,
	}, nil
}

// SetupPlayer attaches osc as the sample source. Read is then called from
// oto's render goroutine only.
func (op *OtoPlayer) SetupPlayer(osc *WavetableOscillator) {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	op.source.Store(osc)
	op.player = op.ctx.NewPlayer(op)
	// Pre-allocate for typical oto buffer sizes so the render path never allocates
	op.sampleBuf = make([]float32, OTO_BUFFER_SAMPLES)
}

// Read implements io.Reader for oto: one float32 per 4 bytes.
func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	// Load source pointer atomically - no lock needed for the hot path
	osc := op.source.Load()
	numSamples := len(p) / 4
	if osc == nil || numSamples == 0 {
		clear(p)
		return len(p), nil
	}

	// Ensure our pre-allocated buffer is large enough
	// This should rarely happen after initial SetupPlayer
	if len(op.sampleBuf) < numSamples {
		op.sampleBuf = make([]float32, numSamples)
	}
	samples := op.sampleBuf[:numSamples]
	osc.Read(samples)

	written := copy(p, unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), numSamples*4))
	clear(p[written:])
	return len(p), nil
}

func (op *OtoPlayer) Start() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if !op.started && op.player != nil {
		op.player.Play()
		op.started = true
	}
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.started && op.player != nil {
		op.player.Pause()
		op.started = false
	}
}

func (op *OtoPlayer) Close() {
	op.Stop()
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.player != nil {
		op.player.Close()
		op.player = nil
	}
	op.source.Store(nil)
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}
