//go:build headless

package main

import (
	"sync"
	"sync/atomic"
	"time"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:headless")
}

const HEADLESS_PULL_INTERVAL = 10 * time.Millisecond

// OtoPlayer stands in for the device in headless builds. While started, a
// render goroutine pulls one interval's worth of samples per tick at the
// configured rate and discards them.
type OtoPlayer struct {
	sampleRate int
	source     atomic.Pointer[WavetableOscillator]
	scratch    []float32
	pulled     atomic.Int64 // Samples rendered so far

	mutex   sync.Mutex
	started bool
	stop    chan struct{}
	done    chan struct{}
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	if sampleRate <= 0 {
		sampleRate = SAMPLE_RATE
	}
	return &OtoPlayer{sampleRate: sampleRate}, nil
}

func (op *OtoPlayer) SetupPlayer(osc *WavetableOscillator) {
	op.source.Store(osc)
}

func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	clear(p)
	numSamples := len(p) / 4
	if osc := op.source.Load(); osc != nil && numSamples > 0 {
		if len(op.scratch) < numSamples {
			op.scratch = make([]float32, numSamples)
		}
		osc.Read(op.scratch[:numSamples])
		op.pulled.Add(int64(numSamples))
	}
	return len(p), nil
}

func (op *OtoPlayer) render(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	perTick := int(int64(op.sampleRate) * int64(HEADLESS_PULL_INTERVAL) / int64(time.Second))
	buf := make([]byte, 4*max(perTick, 1))
	ticker := time.NewTicker(HEADLESS_PULL_INTERVAL)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			op.Read(buf)
		}
	}
}

func (op *OtoPlayer) Start() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if op.started {
		return
	}
	op.stop = make(chan struct{})
	op.done = make(chan struct{})
	op.started = true
	go op.render(op.stop, op.done)
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	if !op.started {
		return
	}
	close(op.stop)
	<-op.done
	op.started = false
}

func (op *OtoPlayer) Close() {
	op.Stop()
	op.source.Store(nil)
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}
