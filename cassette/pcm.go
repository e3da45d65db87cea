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

package cassette

import (
	"io"
	"math"
	"path"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/logger"
)

type pcmData struct {
	sampleRate float64

	// mono data. the left channel of a stereo source
	data []float32
}

func getPCM(cl *Loader) (pcmData, error) {
	p := pcmData{
		data: make([]float32, 0),
	}

	switch strings.ToLower(path.Ext(cl.Filename)) {
	case ".wav":
		dec := wav.NewDecoder(cl)
		if dec == nil {
			return p, curated.Errorf("cassette: wav: error decoding")
		}

		if !dec.IsValidFile() {
			return p, curated.Errorf("cassette: wav: not a valid wav file")
		}

		logger.Log("cassette", "loading from wav file")

		buf, err := dec.FullPCMBuffer()
		if err != nil {
			return p, curated.Errorf("cassette: wav: %v", err)
		}
		p.data = monoChannel(buf.AsFloat32Buffer(), int(dec.NumChans))
		p.sampleRate = float64(dec.SampleRate)

	case ".mp3":
		dec, err := mp3.NewDecoder(cl)
		if err != nil {
			return p, curated.Errorf("cassette: mp3: %v", err)
		}

		logger.Log("cassette", "loading from mp3 file")

		// the mp3 stream is always 16bit little endian stereo. two bytes
		// per sample per channel and we want the left channel only
		err = nil
		chunk := make([]byte, 4096)
		for err != io.EOF {
			var chunkLen int
			chunkLen, err = dec.Read(chunk)
			if err != nil && err != io.EOF {
				return p, curated.Errorf("cassette: mp3: %v", err)
			}

			for i := 0; i+1 < chunkLen; i += 4 {
				f := int(chunk[i]) | (int(chunk[i+1]) << 8)
				if f >= 32768 {
					f -= 65536
				}
				p.data = append(p.data, float32(f)/32768)
			}
		}

		p.sampleRate = float64(dec.SampleRate())

	default:
		return p, curated.Errorf("cassette: unsupported sound file [%s]", cl.Filename)
	}

	if p.sampleRate <= 0 || len(p.data) == 0 {
		return p, curated.Errorf("cassette: no usable sound data in %s", cl.Filename)
	}

	return p, nil
}

// monoChannel extracts the first channel from an interleaved buffer.
func monoChannel(buf *audio.Float32Buffer, numChans int) []float32 {
	data := make([]float32, 0, len(buf.Data)/numChans)
	for i := 0; i < len(buf.Data); i += numChans {
		data = append(data, buf.Data[i])
	}
	return data
}

// the fraction of full scale a sample must reach before it counts as a
// level change. keeps tape hiss from registering as crossings.
const crossingThreshold = 0.05

// pcmToPulses converts a sampled recording into a pulse stream by
// measuring the time between zero crossings of the signal.
func pcmToPulses(p pcmData) []uint16 {
	pulses := make([]uint16, 0, len(p.data)/8)

	microsPerSample := 1e6 / p.sampleRate

	level := p.data[0] > 0
	span := 0
	for _, s := range p.data {
		span++

		var next bool
		switch {
		case s > crossingThreshold:
			next = true
		case s < -crossingThreshold:
			next = false
		default:
			continue
		}

		if next != level {
			d := math.Round(float64(span) * microsPerSample)
			if d > math.MaxUint16 {
				d = math.MaxUint16
			}
			pulses = append(pulses, uint16(d))
			level = next
			span = 0
		}
	}

	return pulses
}
