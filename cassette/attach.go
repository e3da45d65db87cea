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
	"fmt"

	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/hardware/tape"
	"github.com/kaipeter/gopher1013/logger"
)

// Attach loads the media described by the Loader into the machine.
// Headersave images are poked into memory immediately; tape images and
// sound files are put in the tape deck, ready for Play.
func Attach(mc *hardware.Machine, cl *Loader) error {
	if err := cl.Load(); err != nil {
		return err
	}

	switch cl.Format {
	case FormatHeadersave:
		_, err := quickload(mc, cl.Data)
		return err

	case FormatTapeImage:
		pulses, err := tape.Encode(cl.Data)
		if err != nil {
			return err
		}
		mc.Deck.Insert(pulses)
		logger.Log("cassette", fmt.Sprintf("tape image %s: %d half-waves", cl.Filename, len(pulses)))
		return nil

	case FormatSoundFile:
		pcm, err := getPCM(cl)
		if err != nil {
			return err
		}
		pulses := pcmToPulses(pcm)
		if len(pulses) == 0 {
			return curated.Errorf("cassette: no pulses recovered from %s", cl.Filename)
		}
		mc.Deck.Insert(pulses)
		logger.Log("cassette", fmt.Sprintf("recording %s: %d half-waves", cl.Filename, len(pulses)))
		return nil
	}

	return curated.Errorf("cassette: no format for %s", cl.Filename)
}
