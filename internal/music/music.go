// Package music maps string slots and screen positions to pitches. It holds
// the scale used by the harp experiences and the chord progressions cycled
// by the guitar experience. Pitches are MIDI note numbers until the moment
// they are handed to the synthesizer as frequencies.
package music

import "math"

// Frequency converts a MIDI note number to its frequency in Hz using equal
// temperament with A4 (MIDI 69) at 440 Hz.
func Frequency(midi int) float64 {
	return 440 * math.Pow(2, float64(midi-69)/12)
}

// Scale maps a string slot and a horizontal fraction onto a pitch. Each
// slot raises the register by one octave; the fraction walks the scale
// degrees left to right across the canvas.
type Scale struct {
	Root      int   // MIDI note of the lowest string's first degree
	Intervals []int // semitone offsets of the scale degrees
}

// MinorPentatonic returns the minor pentatonic scale rooted at the given
// MIDI note.
func MinorPentatonic(root int) Scale {
	return Scale{Root: root, Intervals: []int{0, 3, 5, 7, 10}}
}

// Note returns the MIDI note for a string slot and a horizontal fraction
// in [0,1]. Out-of-range fractions clamp to the nearest degree.
func (s Scale) Note(slot int, frac float64) int {
	if len(s.Intervals) == 0 {
		return s.Root + 12*slot
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	idx := int(frac * float64(len(s.Intervals)))
	if idx >= len(s.Intervals) {
		idx = len(s.Intervals) - 1
	}
	return s.Root + 12*slot + s.Intervals[idx]
}

// NoteFrequency returns the frequency for a slot and fraction.
func (s Scale) NoteFrequency(slot int, frac float64) float64 {
	return Frequency(s.Note(slot, frac))
}

// Chord is a named guitar voicing, notes ordered bass to treble.
type Chord struct {
	Name  string
	Notes []int // MIDI note numbers
}

// Frequencies returns the chord's notes as frequencies, preserving the
// bass-to-treble strum order.
func (c Chord) Frequencies() []float64 {
	freqs := make([]float64, len(c.Notes))
	for i, n := range c.Notes {
		freqs[i] = Frequency(n)
	}
	return freqs
}

// Standard open-position guitar voicings.
var (
	ChordAm = Chord{Name: "Am", Notes: []int{45, 52, 57, 60, 64}}
	ChordC  = Chord{Name: "C", Notes: []int{48, 52, 55, 60, 64}}
	ChordD  = Chord{Name: "D", Notes: []int{50, 57, 62, 66}}
	ChordE  = Chord{Name: "E", Notes: []int{40, 47, 52, 56, 59, 64}}
	ChordEm = Chord{Name: "Em", Notes: []int{40, 47, 52, 55, 59, 64}}
	ChordF  = Chord{Name: "F", Notes: []int{41, 48, 53, 57, 60, 65}}
	ChordG  = Chord{Name: "G", Notes: []int{43, 47, 50, 55, 59, 67}}
	ChordA  = Chord{Name: "A", Notes: []int{45, 52, 57, 61, 64}}
)

// Progression is a named sequence of chords laid out left to right across
// the canvas.
type Progression struct {
	Name   string
	Chords []Chord
}

// ChordAt returns the chord under a horizontal fraction in [0,1].
func (p Progression) ChordAt(frac float64) Chord {
	if len(p.Chords) == 0 {
		return Chord{}
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	idx := int(frac * float64(len(p.Chords)))
	if idx >= len(p.Chords) {
		idx = len(p.Chords) - 1
	}
	return p.Chords[idx]
}

// Progressions returns the built-in progression presets in cycle order.
func Progressions() []Progression {
	return []Progression{
		{Name: "Am F C G", Chords: []Chord{ChordAm, ChordF, ChordC, ChordG}},
		{Name: "Em C G D", Chords: []Chord{ChordEm, ChordC, ChordG, ChordD}},
		{Name: "A D E", Chords: []Chord{ChordA, ChordD, ChordE}},
	}
}
