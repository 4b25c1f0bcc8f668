//go:build windows

package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// TerminalHost reads raw stdin and delivers decoded key presses on a channel.
// Only instantiated in main.go for interactive use - never in tests.
type TerminalHost struct {
	events       chan Key
	poll         time.Duration
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	oldTermState *term.State
}

// NewTerminalHost creates a host adapter reading stdin. Console reads block,
// so poll only paces empty reads.
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

func (h *TerminalHost) Events() <-chan Key {
	return h.events
}

// Start sets stdin to raw mode and begins reading in a goroutine.
// Call Stop() to restore stdin.
func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		close(h.events)
		return fmt.Errorf("terminal_host: failed to set raw mode: %w", err)
	}
	h.oldTermState = oldState

	go func() {
		defer close(h.done)
		defer close(h.events)
		buf := make([]byte, 64)

		for {
			select {
			case <-h.stopCh:
				return
			default:
			}

			n, err := os.Stdin.Read(buf)
			if n > 0 {
				for _, k := range DecodeKeys(buf[:n]) {
					select {
					case h.events <- k:
					case <-h.stopCh:
						return
					}
				}
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(h.poll)
			}
		}
	}()
	return nil
}

// Stop signals the reader and restores terminal state. A read blocked in the
// console returns on the next key press; Stop does not wait for it.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
