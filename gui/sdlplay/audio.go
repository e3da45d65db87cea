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

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware/tape"
)

// the tape deck is the only sound source so the audio device is opened
// with the deck's sample rate and samples are queued as they arrive.
func (scr *SdlPlay) setupAudio() error {
	spec := &sdl.AudioSpec{
		Freq:     int32(tape.SampleRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  512,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}
	scr.audioDev = dev

	sdl.PauseAudioDevice(scr.audioDev, false)

	return nil
}

func (scr *SdlPlay) endAudio() {
	if scr.audioDev != 0 {
		sdl.CloseAudioDevice(scr.audioDev)
		scr.audioDev = 0
	}
}

// SetAudio implements the television.AudioMixer interface.
func (scr *SdlPlay) SetAudio(samples []int16) error {
	b := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		b = append(b, byte(s), byte(s>>8))
	}

	if err := sdl.QueueAudio(scr.audioDev, b); err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	return nil
}

// EndMixing implements the television.AudioMixer interface.
func (scr *SdlPlay) EndMixing() error {
	scr.endAudio()
	return nil
}
