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

// Package television is the point of connection between the emulated
// machine and whatever is displaying its output. The video chip pushes
// completed frames into the Television type, which fans them out to every
// attached PixelRenderer. Audio level changes from the tape output are
// fanned out to attached AudioMixers the same way.
//
// Implementations of PixelRenderer include the SDL playmode window and the
// frame digester used by the regression tests.
package television

// Dimensions of the generated display. The Z1013 produces a square 32x32
// character screen of 8x8 pixel cells.
const (
	HorizPixels = 256
	VertPixels  = 256
)

// ScanlinesTotal is the number of scanlines in a complete frame, visible or
// not. With the line frequency of the video timing this gives the nominal
// 50Hz frame rate.
const ScanlinesTotal = 312

// FramesPerSecond is the nominal frame rate of the machine.
const FramesPerSecond = 50

// Depth of a pixel in the frame buffer, in bytes (RGBA).
const PixelDepth = 4

// PixelRenderer implementations displays, or otherwise works with, the
// frames produced by the emulated machine.
type PixelRenderer interface {
	// NewFrame is called once per completed frame. The pixels slice is
	// HorizPixels*VertPixels*PixelDepth bytes of RGBA data and is only
	// valid for the duration of the call.
	NewFrame(frameNum int, pixels []uint8) error
}

// AudioMixer implementations play, or otherwise work with, the audio
// output of the emulated machine. The Z1013 has no sound hardware as such;
// the audio signal is the tape output line.
type AudioMixer interface {
	// SetAudio is called with mono PCM samples at the machine's sample
	// rate. The slice is only valid for the duration of the call.
	SetAudio(samples []int16) error

	// EndMixing is called when the machine is finished with the mixer.
	EndMixing() error
}

// Television fans frames and audio out to the attached renderers and
// mixers.
type Television struct {
	renderers []PixelRenderer
	mixers    []AudioMixer
	frameNum  int
}

// NewTelevision is the preferred method of initialisation for the
// Television type.
func NewTelevision() *Television {
	return &Television{}
}

// AddPixelRenderer adds a renderer to the fan-out list.
func (tv *Television) AddPixelRenderer(r PixelRenderer) {
	tv.renderers = append(tv.renderers, r)
}

// AddAudioMixer adds a mixer to the fan-out list.
func (tv *Television) AddAudioMixer(m AudioMixer) {
	tv.mixers = append(tv.mixers, m)
}

// FrameNum returns the number of frames generated since the machine was
// initialised.
func (tv *Television) FrameNum() int {
	return tv.frameNum
}

// NewFrame passes a completed frame to every attached renderer. Called by
// the video chip at the end of the vertical blank.
func (tv *Television) NewFrame(pixels []uint8) error {
	tv.frameNum++
	for _, r := range tv.renderers {
		if err := r.NewFrame(tv.frameNum, pixels); err != nil {
			return err
		}
	}
	return nil
}

// SetAudio passes audio samples to every attached mixer.
func (tv *Television) SetAudio(samples []int16) error {
	for _, m := range tv.mixers {
		if err := m.SetAudio(samples); err != nil {
			return err
		}
	}
	return nil
}

// End stops mixing on every attached mixer.
func (tv *Television) End() error {
	var err error
	for _, m := range tv.mixers {
		if e := m.EndMixing(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
