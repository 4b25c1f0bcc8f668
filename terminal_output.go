// terminal_output.go - Status line for raw-mode terminal sessions

package main

import (
	"fmt"
	"io"
	"sync"
)

// TerminalOutput writes the one-line note display. In raw mode the terminal
// no longer translates LF, so every line ends in CR LF and the status line is
// redrawn in place.
type TerminalOutput struct {
	mutex   sync.Mutex
	out     io.Writer
	enabled bool
}

// NewTerminalOutput creates a status writer on out.
func NewTerminalOutput(out io.Writer) *TerminalOutput {
	return &TerminalOutput{
		out:     out,
		enabled: true,
	}
}

// ShowNote redraws the status line for a key press.
func (t *TerminalOutput) ShowNote(k Key, hz float32) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !t.enabled {
		return
	}
	fmt.Fprintf(t.out, "\r\033[K%-10s %-4s %8.2f Hz", k, NoteName(hz), hz)
}

// Println writes a full line, ending any status line first.
func (t *TerminalOutput) Println(a ...any) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	fmt.Fprint(t.out, "\r\033[K")
	fmt.Fprint(t.out, a...)
	fmt.Fprint(t.out, "\r\n")
}

// Disable disables the status line
func (t *TerminalOutput) Disable() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.enabled = false
}
