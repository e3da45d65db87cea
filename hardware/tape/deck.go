// This file is part of Gopher1013.
//
// Gopher1013 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher1013 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher1013.  If not, see <https://www.gnu.org/licenses/>.

package tape

// SampleRate of the audio samples generated by the deck.
const SampleRate = 44100

// Deck plays an inserted pulse stream into the machine. The current line
// level is read by the running program through PIO port B; the same signal
// is turned into audio samples for the host.
type Deck struct {
	cyclesPerMicro int64

	pulses []uint16

	// playback position. Index is the half-wave being played, Remaining
	// the cycles left of it. Level toggles as each half-wave completes
	Index     int
	Remaining int64
	Level     bool
	Playing   bool

	// audio sample generation
	cyclesPerSample int64
	sampleClock     int64
	samples         []int16
}

// NewDeck is the preferred method of initialisation for the Deck type. The
// clock rate ties the pulse durations, in microseconds, to the machine
// cycles the deck is ticked with.
func NewDeck(hz int64) *Deck {
	return &Deck{
		cyclesPerMicro:  hz / 1_000_000,
		cyclesPerSample: hz / SampleRate,
	}
}

// Snapshot creates a copy of the deck in its current state. The inserted
// pulse stream is shared with the copy, not duplicated.
func (dk *Deck) Snapshot() *Deck {
	n := *dk
	n.samples = nil
	return &n
}

// Insert a pulse stream and rewind to its start. The deck does not start
// playing until Play is called.
func (dk *Deck) Insert(pulses []uint16) {
	dk.pulses = pulses
	dk.Rewind()
}

// Eject the inserted pulse stream.
func (dk *Deck) Eject() {
	dk.pulses = nil
	dk.Playing = false
	dk.Rewind()
}

// Rewind to the start of the pulse stream.
func (dk *Deck) Rewind() {
	dk.Index = 0
	dk.Remaining = 0
	dk.Level = false
	if len(dk.pulses) > 0 {
		dk.Remaining = int64(dk.pulses[0]) * dk.cyclesPerMicro
	}
}

// Play starts the tape. Playing past the end of the stream stops the deck.
func (dk *Deck) Play() {
	if len(dk.pulses) > 0 {
		dk.Playing = true
	}
}

// Stop the tape without changing the playback position.
func (dk *Deck) Stop() {
	dk.Playing = false
}

// IsInserted returns true if a pulse stream is loaded in the deck.
func (dk *Deck) IsInserted() bool {
	return dk.pulses != nil
}

// Tick advances the tape by the given number of machine cycles.
func (dk *Deck) Tick(cycles int) {
	if !dk.Playing {
		return
	}

	c := int64(cycles)
	for c > 0 {
		if dk.Remaining > c {
			dk.Remaining -= c
			dk.mix(c)
			return
		}

		c -= dk.Remaining
		dk.mix(dk.Remaining)

		dk.Index++
		if dk.Index >= len(dk.pulses) {
			dk.Playing = false
			dk.Level = false
			return
		}
		dk.Level = !dk.Level
		dk.Remaining = int64(dk.pulses[dk.Index]) * dk.cyclesPerMicro
	}
}

// mix generates audio samples covering the given cycle count at the
// current line level.
func (dk *Deck) mix(cycles int64) {
	dk.sampleClock += cycles
	for dk.sampleClock >= dk.cyclesPerSample {
		dk.sampleClock -= dk.cyclesPerSample
		if dk.Level {
			dk.samples = append(dk.samples, 8000)
		} else {
			dk.samples = append(dk.samples, -8000)
		}
	}
}

// DrainAudio returns the audio samples generated since the last drain. The
// returned slice is only valid until the next Tick.
func (dk *Deck) DrainAudio() []int16 {
	s := dk.samples
	dk.samples = dk.samples[:0]
	return s
}
