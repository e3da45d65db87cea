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

// Package playmode is the normal mode of operation: an SDL window showing
// the machine's display, host keyboard wired to the machine's keyboard
// matrix and the emulation paced to the 50Hz of the real machine.
package playmode

import (
	"os"
	"os/signal"

	"github.com/kaipeter/gopher1013/cassette"
	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/gui"
	"github.com/kaipeter/gopher1013/gui/sdlplay"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/rewind"
	"github.com/kaipeter/gopher1013/television"
	"github.com/kaipeter/gopher1013/wavwriter"
)

// host time handed to the machine between services of the event queue.
const frameMicros = 1000000 / television.FramesPerSecond

// Play sets the emulation running.
func Play(config hardware.Config, cartload *cassette.Loader, scale float32, fpsCap bool, wavFile string) error {
	tv := television.NewTelevision()

	scr, err := sdlplay.NewSdlPlay(tv, scale)
	if err != nil {
		return curated.Errorf("playmode: %v", err)
	}
	defer scr.Destroy()
	scr.SetFPSCap(fpsCap)

	// connect gui
	guiChannel := make(chan gui.Event, 2)
	scr.SetEventChannel(guiChannel)

	mc, err := hardware.NewMachine(tv, config)
	if err != nil {
		return curated.Errorf("playmode: %v", err)
	}
	defer mc.Discard()

	// the wavwriter is an additional mixer. the SDL audio keeps running
	if wavFile != "" {
		aw, err := wavwriter.New(wavFile)
		if err != nil {
			return curated.Errorf("playmode: %v", err)
		}
		tv.AddAudioMixer(aw)
	}

	if cartload != nil {
		if err := cassette.Attach(mc, cartload); err != nil {
			return curated.Errorf("playmode: %v", err)
		}
	}

	scr.ShowWindow(true)

	// we need to make sure the deferred Discard() runs even when ctrl-c is
	// pressed. redirect interrupt signal to an os.Signal channel
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	rw := rewind.NewRewind(mc)
	keys := newKeyboardHandler(mc, rw)

	// run and handle gui events
	done := false
	for !done {
		scr.Service()

		select {
		case <-intChan:
			done = true
		case ev := <-guiChannel:
			switch ev := ev.(type) {
			case gui.EventWindowClose:
				done = true
			case gui.EventKeyboard:
				keys.handle(ev)
			}
		default:
		}

		if _, err := mc.Exec(frameMicros); err != nil {
			return curated.Errorf("playmode: %v", err)
		}

		if err := rw.Check(); err != nil {
			return curated.Errorf("playmode: %v", err)
		}
	}

	return nil
}
