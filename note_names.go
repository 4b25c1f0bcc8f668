// note_names.go - Equal-tempered note names for status display and key-map scripts

package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	A4_FREQ = 440.0
	A4_MIDI = 69
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteSemitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// NoteName returns the nearest note to hz ("A4", "C#5"), or "-" when hz is
// not a positive finite pitch.
func NoteName(hz float32) string {
	f := float64(hz)
	if !(f > 0) || math.IsInf(f, 0) {
		return "-"
	}
	midi := int(math.Round(A4_MIDI + 12*math.Log2(f/A4_FREQ)))
	semitone := ((midi % 12) + 12) % 12
	octave := (midi-semitone)/12 - 1
	return noteNames[semitone] + strconv.Itoa(octave)
}

// NoteFrequency parses a note name such as "A4", "c#3" or "Bb2" into Hz.
func NoteFrequency(name string) (float32, error) {
	s := strings.TrimSpace(name)
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid note %q", name)
	}
	semitone, ok := noteSemitones[byte(strings.ToUpper(s[:1])[0])]
	if !ok {
		return 0, fmt.Errorf("invalid note %q", name)
	}
	s = s[1:]
	switch s[0] {
	case '#':
		semitone++
		s = s[1:]
	case 'b':
		semitone--
		s = s[1:]
	}
	octave, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note %q", name)
	}
	midi := (octave+1)*12 + semitone
	return float32(A4_FREQ * math.Pow(2, float64(midi-A4_MIDI)/12)), nil
}
