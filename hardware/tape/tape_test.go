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

package tape_test

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/kaipeter/gopher1013/hardware/tape"
	"github.com/kaipeter/gopher1013/test"
)

func testImage(size int) []uint8 {
	rnd := rand.New(rand.NewSource(833))
	img := make([]uint8, size)
	for i := range img {
		img[i] = uint8(rnd.Intn(256))
	}
	return img
}

func TestRoundTrip(t *testing.T) {
	img := testImage(100)

	pulses, err := tape.Encode(img)
	test.ExpectedSuccess(t, err)

	// the recording opens with the leading silence
	test.Equate(t, pulses[0], tape.LeadSilence)

	out, err := tape.Decode(pulses)
	test.ExpectedSuccess(t, err)

	test.Equate(t, len(out), len(img))
	for i := range img {
		if out[i] != img[i] {
			t.Fatalf("byte %d: decoded %#02x, recorded %#02x", i, out[i], img[i])
		}
	}
}

// expectImpulses checks that the half-waves at pos form n impulses of the
// given duration, returning the position after them.
func expectImpulses(t *testing.T, pulses []uint16, pos int, n int, d uint16) int {
	t.Helper()
	for i := 0; i < n*2; i++ {
		if pulses[pos+i] != d {
			t.Fatalf("half-wave %d: %dµs, want %dµs", pos+i, pulses[pos+i], d)
		}
	}
	return pos + n*2
}

func TestReferenceRecording(t *testing.T) {
	img := testImage(tape.HeaderSize + 8)

	pulses, err := tape.Encode(img)
	test.ExpectedSuccess(t, err)

	// the closed-form length of a recording: one entry of lead silence,
	// the two sync blocks with their marks, and per byte 26 half-waves
	// plus two more for every set bit
	expected := 1 + (tape.HeaderSyncCount+tape.DataSyncCount)*2 + 20
	for _, b := range img {
		expected += 26 + 2*bits.OnesCount8(b)
	}
	test.Equate(t, len(pulses), expected)

	test.Equate(t, pulses[0], tape.LeadSilence)

	// header sync block of exactly 30000 short impulses and its mark
	pos := expectImpulses(t, pulses, 1, tape.HeaderSyncCount, tape.ShortHalfWave)
	pos = expectImpulses(t, pulses, pos, 4, tape.ShortHalfWave)
	pos = expectImpulses(t, pulses, pos, 1, tape.LongHalfWave)

	// every header byte closes with the end-of-byte mark of four short
	// impulses and one long
	for i := 0; i < tape.HeaderSize; i++ {
		pos += 16 + 2*bits.OnesCount8(img[i])
		pos = expectImpulses(t, pulses, pos, 4, tape.ShortHalfWave)
		pos = expectImpulses(t, pulses, pos, 1, tape.LongHalfWave)
	}

	// data sync block of exactly 7200 short impulses and its mark
	pos = expectImpulses(t, pulses, pos, tape.DataSyncCount, tape.ShortHalfWave)
	pos = expectImpulses(t, pulses, pos, 4, tape.ShortHalfWave)
	pos = expectImpulses(t, pulses, pos, 1, tape.LongHalfWave)

	for i := tape.HeaderSize; i < len(img); i++ {
		pos += 16 + 2*bits.OnesCount8(img[i])
		pos = expectImpulses(t, pulses, pos, 4, tape.ShortHalfWave)
		pos = expectImpulses(t, pulses, pos, 1, tape.LongHalfWave)
	}

	// the recording ends with the last byte's mark
	test.Equate(t, pos, len(pulses))
}

func TestHeaderOnlyImage(t *testing.T) {
	img := testImage(tape.HeaderSize)

	pulses, err := tape.Encode(img)
	test.ExpectedSuccess(t, err)

	out, err := tape.Decode(pulses)
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(out), tape.HeaderSize)
}

func TestShortImageRejected(t *testing.T) {
	_, err := tape.Encode(testImage(tape.HeaderSize - 1))
	test.ExpectedFailure(t, err)
}

func TestJitterTolerance(t *testing.T) {
	img := testImage(64)

	pulses, err := tape.Encode(img)
	test.ExpectedSuccess(t, err)

	// stretch and shrink alternate half-waves by 20%, inside the 25%
	// tolerance of the decoder
	for i := range pulses[1:] {
		p := &pulses[i+1]
		if i%2 == 0 {
			*p += *p / 5
		} else {
			*p -= *p / 5
		}
	}

	out, err := tape.Decode(pulses)
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(out), len(img))
	test.Equate(t, out[63], img[63])
}

func TestCorruptStream(t *testing.T) {
	img := testImage(40)

	pulses, err := tape.Encode(img)
	test.ExpectedSuccess(t, err)

	// a half-wave duration far outside any tolerance
	pulses[len(pulses)/2] = 400

	_, err = tape.Decode(pulses)
	test.ExpectedFailure(t, err)
}

func TestDeckPlayback(t *testing.T) {
	dk := tape.NewDeck(1_000_000)

	// at 1MHz a cycle is a microsecond, so half-wave durations are cycle
	// counts directly
	dk.Insert([]uint16{100, 50, 50})
	test.Equate(t, dk.Level, false)
	test.Equate(t, dk.Playing, false)

	// the deck does not move until told to play
	dk.Tick(10)
	test.Equate(t, dk.Index, 0)

	dk.Play()
	dk.Tick(99)
	test.Equate(t, dk.Level, false)
	dk.Tick(1)
	test.Equate(t, dk.Level, true)

	dk.Tick(50)
	test.Equate(t, dk.Level, false)

	// the deck stops at the end of the stream
	dk.Tick(50)
	test.Equate(t, dk.Playing, false)
	test.Equate(t, dk.Level, false)
}

func TestDeckAudio(t *testing.T) {
	dk := tape.NewDeck(2_000_000)

	dk.Insert([]uint16{10000, 10000})
	dk.Play()
	dk.Tick(40000)

	// the sample clock runs at 45 cycles per sample (2MHz over 44.1kHz,
	// truncated), so 40000 cycles of tape produce 888 samples
	samples := dk.DrainAudio()
	test.Equate(t, len(samples), 888)

	// the drain resets the buffer
	test.Equate(t, len(dk.DrainAudio()), 0)
}
