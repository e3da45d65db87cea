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

// Package tape implements the cassette interface of the emulated machine:
// the codec between byte images and the pulse stream recorded on tape, and
// the deck that plays a pulse stream into the PIO.
//
// A pulse stream is a sequence of half-wave durations in microseconds; the
// line level toggles at the end of each half-wave. A short impulse is two
// half-waves of 833µs, a long impulse two of 1666µs. A set bit is recorded
// as two short impulses, a clear bit as one long impulse, bytes LSB first,
// each byte closed by the end-of-byte mark of four short impulses and one
// long. A recording opens with a leading silence, a block of 30000 short
// sync impulses and a mark, the 32 byte header block, a second sync block
// of 7200 impulses and a mark, and then the remaining data.
package tape

import (
	"github.com/kaipeter/gopher1013/curated"
)

// Half-wave durations in microseconds.
const (
	ShortHalfWave = uint16(833)
	LongHalfWave  = uint16(1666)
	LeadSilence   = uint16(17400)
)

// Sync impulse counts before the header block and before the data block.
const (
	HeaderSyncCount = 30000
	DataSyncCount   = 7200
)

// HeaderSize is the size of the header block at the front of every tape
// image.
const HeaderSize = 32

// the decoder accepts half-waves within 25% of the nominal durations.
const jitter = 4

func shortHalfWave(d uint16) bool {
	return d >= ShortHalfWave-ShortHalfWave/jitter && d <= ShortHalfWave+ShortHalfWave/jitter
}

func longHalfWave(d uint16) bool {
	return d >= LongHalfWave-LongHalfWave/jitter && d <= LongHalfWave+LongHalfWave/jitter
}

func appendShort(pulses []uint16) []uint16 {
	return append(pulses, ShortHalfWave, ShortHalfWave)
}

func appendLong(pulses []uint16) []uint16 {
	return append(pulses, LongHalfWave, LongHalfWave)
}

func appendMark(pulses []uint16) []uint16 {
	for i := 0; i < 4; i++ {
		pulses = appendShort(pulses)
	}
	return appendLong(pulses)
}

func appendByte(pulses []uint16, b uint8) []uint16 {
	for i := 0; i < 8; i++ {
		if b&0x01 == 0x01 {
			pulses = appendShort(pulses)
			pulses = appendShort(pulses)
		} else {
			pulses = appendLong(pulses)
		}
		b >>= 1
	}
	return appendMark(pulses)
}

// Encode converts a byte image into the pulse stream of its cassette
// recording. Images smaller than the header block are rejected.
func Encode(data []uint8) ([]uint16, error) {
	if len(data) < HeaderSize {
		return nil, curated.Errorf("tape: image is %d bytes, smaller than the %d byte header", len(data), HeaderSize)
	}

	// worst case is a byte of all clear bits
	pulses := make([]uint16, 0, 1+(HeaderSyncCount+DataSyncCount)*2+len(data)*26)

	pulses = append(pulses, LeadSilence)

	for i := 0; i < HeaderSyncCount; i++ {
		pulses = appendShort(pulses)
	}
	pulses = appendMark(pulses)

	for _, b := range data[:HeaderSize] {
		pulses = appendByte(pulses, b)
	}

	for i := 0; i < DataSyncCount; i++ {
		pulses = appendShort(pulses)
	}
	pulses = appendMark(pulses)

	for _, b := range data[HeaderSize:] {
		pulses = appendByte(pulses, b)
	}

	return pulses, nil
}

// decoder walks a pulse stream impulse by impulse.
type decoder struct {
	pulses []uint16
	pos    int
}

// impulse classification.
const (
	impShort = iota
	impLong
	impSilence
	impEnd
)

// next consumes one impulse, two half-waves of the same class. Anything
// longer than a long half-wave is silence.
func (d *decoder) next() (int, error) {
	if d.pos >= len(d.pulses) {
		return impEnd, nil
	}

	h := d.pulses[d.pos]
	if h > LongHalfWave+LongHalfWave/jitter {
		d.pos++
		return impSilence, nil
	}

	if d.pos+1 >= len(d.pulses) {
		return 0, curated.Errorf("tape: truncated impulse at half-wave %d", d.pos)
	}

	h2 := d.pulses[d.pos+1]
	d.pos += 2

	switch {
	case shortHalfWave(h) && shortHalfWave(h2):
		return impShort, nil
	case longHalfWave(h) && longHalfWave(h2):
		return impLong, nil
	}

	return 0, curated.Errorf("tape: unrecognised impulse [%d %d] at half-wave %d", h, h2, d.pos-2)
}

// sync consumes a run of short impulses and the closing mark. The four
// short impulses of the mark are indistinguishable from the sync run; the
// long impulse ends it.
func (d *decoder) sync() error {
	n := 0
	for {
		imp, err := d.next()
		if err != nil {
			return err
		}
		switch imp {
		case impShort:
			n++
		case impSilence:
			if n > 0 {
				return curated.Errorf("tape: silence inside a sync block")
			}
		case impLong:
			if n < 4 {
				return curated.Errorf("tape: sync block of %d impulses is too short", n)
			}
			return nil
		case impEnd:
			return curated.Errorf("tape: pulse stream ends inside a sync block")
		}
	}
}

// byteValue consumes eight recorded bits and the end-of-byte mark.
func (d *decoder) byteValue() (uint8, error) {
	var b uint8
	for i := 0; i < 8; i++ {
		imp, err := d.next()
		if err != nil {
			return 0, err
		}
		switch imp {
		case impShort:
			// a set bit is two short impulses
			imp, err = d.next()
			if err != nil {
				return 0, err
			}
			if imp != impShort {
				return 0, curated.Errorf("tape: lone short impulse in a byte")
			}
			b |= 1 << i
		case impLong:
			// clear bit
		default:
			return 0, curated.Errorf("tape: pulse stream ends inside a byte")
		}
	}

	// end-of-byte mark
	for i := 0; i < 4; i++ {
		imp, err := d.next()
		if err != nil {
			return 0, err
		}
		if imp != impShort {
			return 0, curated.Errorf("tape: malformed end-of-byte mark")
		}
	}
	imp, err := d.next()
	if err != nil {
		return 0, err
	}
	if imp != impLong {
		return 0, curated.Errorf("tape: malformed end-of-byte mark")
	}

	return b, nil
}

// Decode converts the pulse stream of a cassette recording back into the
// byte image it was made from. The decoder accepts half-wave durations
// within 25% of nominal.
func Decode(pulses []uint16) ([]uint8, error) {
	d := &decoder{pulses: pulses}

	if err := d.sync(); err != nil {
		return nil, err
	}

	data := make([]uint8, 0, HeaderSize)
	for i := 0; i < HeaderSize; i++ {
		b, err := d.byteValue()
		if err != nil {
			return nil, err
		}
		data = append(data, b)
	}

	if err := d.sync(); err != nil {
		return nil, err
	}

	for {
		// peek for the end of the stream before committing to a byte
		if d.pos >= len(pulses) {
			return data, nil
		}

		b, err := d.byteValue()
		if err != nil {
			return nil, err
		}
		data = append(data, b)
	}
}
