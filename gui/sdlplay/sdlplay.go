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

// Package sdlplay is a simple SDL implementation of the
// television.PixelRenderer and television.AudioMixer interfaces. All
// functions MUST be called from the main thread.
package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/gui"
	"github.com/kaipeter/gopher1013/performance/limiter"
	"github.com/kaipeter/gopher1013/television"
)

// SdlPlay is a simple SDL implementation of the television interfaces.
type SdlPlay struct {
	tv *television.Television

	// connects the SDL event queue with the parent process
	eventChannel chan gui.Event

	// limit screen updates to a fixed fps
	lmtr   *limiter.FpsLimiter
	fpsCap bool

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	audioDev sdl.AudioDeviceID
}

// NewSdlPlay is the preferred method of initialisation for the SdlPlay
// type.
func NewSdlPlay(tv *television.Television, scale float32) (*SdlPlay, error) {
	scr := &SdlPlay{
		tv:     tv,
		fpsCap: true,
	}

	if scale <= 0 {
		scale = 2.0
	}

	err := sdl.Init(sdl.INIT_EVERYTHING)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.window, err = sdl.CreateWindow("Gopher1013",
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(float32(television.HorizPixels)*scale),
		int32(float32(television.VertPixels)*scale),
		uint32(sdl.WINDOW_HIDDEN))
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	// texture is the same size as the machine's frame. the renderer scales
	// it to fit the window
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		television.HorizPixels, television.VertPixels)
	if err != nil {
		return nil, curated.Errorf("sdlplay: %v", err)
	}

	if err := scr.setupAudio(); err != nil {
		return nil, err
	}

	scr.lmtr = limiter.NewFPSLimiter(television.FramesPerSecond)

	// register ourselves as a television.PixelRenderer
	tv.AddPixelRenderer(scr)

	// register ourselves as a television.AudioMixer
	tv.AddAudioMixer(scr)

	setupService()

	// note that we've elected not to show the window on startup. it is
	// opened with a ShowWindow request once everything else is in place

	return scr, nil
}

// SetEventChannel implements the gui.GUI interface.
func (scr *SdlPlay) SetEventChannel(ch chan gui.Event) {
	scr.eventChannel = ch
}

// SetFPSCap turns frame pacing on or off. With the cap off the emulation
// runs as fast as the host allows.
func (scr *SdlPlay) SetFPSCap(set bool) {
	scr.fpsCap = set
}

// ShowWindow implements the gui.GUI interface.
func (scr *SdlPlay) ShowWindow(show bool) {
	if show {
		scr.window.Show()
	} else {
		scr.window.Hide()
	}
}

// Destroy implements the gui.GUI interface.
func (scr *SdlPlay) Destroy() {
	scr.endAudio()
	_ = scr.texture.Destroy()
	_ = scr.renderer.Destroy()
	_ = scr.window.Destroy()
	sdl.Quit()
}

// NewFrame implements the television.PixelRenderer interface.
func (scr *SdlPlay) NewFrame(frameNum int, pixels []uint8) error {
	err := scr.texture.Update(nil, pixels, television.HorizPixels*television.PixelDepth)
	if err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		return curated.Errorf("sdlplay: %v", err)
	}

	scr.renderer.Present()

	return nil
}
