//go:build !windows

package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// TerminalHost reads raw stdin and delivers decoded key presses on a channel.
// Only instantiated in main.go for interactive use, never in tests.
type TerminalHost struct {
	events       chan Key
	poll         time.Duration
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

// NewTerminalHost creates a host that polls stdin every poll interval when
// no input is pending.
func NewTerminalHost(poll time.Duration) *TerminalHost {
	if poll <= 0 {
		poll = DEFAULT_POLL_INTERVAL
	}
	return &TerminalHost{
		events: make(chan Key, KEY_EVENT_BUFFER),
		poll:   poll,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Events returns the channel key presses are delivered on. It is closed when
// the reader stops.
func (h *TerminalHost) Events() <-chan Key {
	return h.events
}

// Start puts stdin in raw, non-blocking mode and begins reading in a goroutine.
// Call Stop() to restore stdin.
func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	// Raw mode disables echo and line buffering so each key arrives at once.
	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		close(h.events)
		return fmt.Errorf("terminal_host: failed to set raw mode: %w", err)
	}
	h.oldTermState = oldState

	if err := syscall.SetNonblock(h.fd, true); err != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
		close(h.done)
		close(h.events)
		return fmt.Errorf("terminal_host: failed to set nonblocking stdin: %w", err)
	}
	h.nonblockSet = true

	go func() {
		defer close(h.done)
		defer close(h.events)
		// Sequences split across reads are reassembled by the decoder.
		buf := make([]byte, 64)
		var decoder KeyDecoder

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := syscall.Read(h.fd, buf)
			if n > 0 {
				if !h.deliver(decoder.Feed(buf[:n])) {
					return
				}
				if err == nil {
					continue
				}
			}
			if err != nil && err != syscall.EAGAIN && err != syscall.EWOULDBLOCK {
				h.deliver(decoder.Flush())
				return
			}
			if !h.deliver(decoder.Idle()) {
				return
			}
			time.Sleep(h.poll)
		}
	}()
	return nil
}

// deliver sends keys in order and reports false once Stop has been called.
func (h *TerminalHost) deliver(keys []Key) bool {
	for _, k := range keys {
		select {
		case h.events <- k:
		case <-h.stopCh:
			return false
		}
	}
	return true
}

// Stop terminates the stdin reading goroutine and restores stdin to blocking mode.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.nonblockSet {
		_ = syscall.SetNonblock(h.fd, false)
		h.nonblockSet = false
	}
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
