package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestTerminalOutput_ShowNote(t *testing.T) {
	var buf bytes.Buffer
	out := NewTerminalOutput(&buf)
	out.ShowNote(RuneKey(';'), 440)

	got := buf.String()
	if !strings.HasPrefix(got, "\r\033[K") {
		t.Fatalf("status line must redraw in place, got %q", got)
	}
	for _, want := range []string{";", "A4", "440.00 Hz"} {
		if !strings.Contains(got, want) {
			t.Errorf("status %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "\n") {
		t.Errorf("status line must not advance the cursor: %q", got)
	}
}

func TestTerminalOutput_Disable(t *testing.T) {
	var buf bytes.Buffer
	out := NewTerminalOutput(&buf)
	out.Disable()
	out.ShowNote(RuneKey('a'), 261.63)
	if buf.Len() != 0 {
		t.Fatalf("disabled output wrote %q", buf.String())
	}
	out.Println("bye")
	if !strings.HasSuffix(buf.String(), "bye\r\n") {
		t.Fatalf("Println must still write after Disable, got %q", buf.String())
	}
}

func TestTerminalOutput_PrintlnUsesCRLF(t *testing.T) {
	var buf bytes.Buffer
	NewTerminalOutput(&buf).Println("Press ESC to exit")
	if got := buf.String(); !strings.HasSuffix(got, "Press ESC to exit\r\n") {
		t.Fatalf("got %q", got)
	}
}
