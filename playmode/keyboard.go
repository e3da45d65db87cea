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

package playmode

import (
	"github.com/kaipeter/gopher1013/gui"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/logger"
	"github.com/kaipeter/gopher1013/resources"
	"github.com/kaipeter/gopher1013/rewind"
	"github.com/kaipeter/gopher1013/snapshot"
)

// name of the quicksave state file, relative to the resource path.
const stateFile = "states/quicksave"

// keyboardHandler translates host keyboard events to machine key codes.
// function keys operate the emulator itself.
type keyboardHandler struct {
	mc *hardware.Machine
	rw *rewind.Rewind

	// the machine code sent on key down, remembered per host key so that
	// the matching key up releases the same code even if the shift state
	// has changed in between
	pressed map[string]rune
}

func newKeyboardHandler(mc *hardware.Machine, rw *rewind.Rewind) *keyboardHandler {
	return &keyboardHandler{
		mc:      mc,
		rw:      rw,
		pressed: make(map[string]rune),
	}
}

// host names for keys with no single character representation.
var namedKeys = map[string]rune{
	"Return":    0x0d,
	"Space":     ' ',
	"Backspace": 0x08,
	"Left":      0x08,
	"Right":     0x09,
	"Down":      0x0a,
	"Up":        0x0b,
	"Escape":    0x03,
}

// shifted characters for a US host layout.
var shiftedKeys = map[rune]rune{
	'1': '!', '2': '"', '3': '#', '4': '$', '5': '%',
	'6': '&', '7': '/', '8': '(', '9': ')', '0': '=',
	'-': '_', '=': '+', ';': ':', ',': '<', '.': '>',
	'/': '?', '\'': '*',
}

// machineRune converts a host key name and modifier to a machine key
// code. the machine's unshifted letters are upper case so the host shift
// state is inverted for letters.
func machineRune(key string, mod gui.KeyMod) (rune, bool) {
	if r, ok := namedKeys[key]; ok {
		return r, true
	}

	if len(key) != 1 {
		return 0, false
	}

	r := rune(key[0])
	if r < ' ' || r > '~' {
		return 0, false
	}

	if r >= 'A' && r <= 'Z' {
		if mod == gui.KeyModShift {
			return r + 0x20, true
		}
		return r, true
	}

	if mod == gui.KeyModShift {
		if s, ok := shiftedKeys[r]; ok {
			return s, true
		}
	}

	return r, true
}

func (kh *keyboardHandler) handle(ev gui.EventKeyboard) {
	if ev.Down {
		switch ev.Key {
		case "F1":
			// toggle the tape deck
			if kh.mc.Deck.Playing {
				kh.mc.Deck.Stop()
			} else {
				kh.mc.Deck.Play()
			}
		case "F2":
			kh.mc.Reset()
		case "F3":
			if err := kh.rw.Back(); err != nil {
				logger.Log("playmode", err.Error())
			}
		case "F5":
			if p, err := resources.JoinPath(stateFile); err != nil {
				logger.Log("playmode", err.Error())
			} else if err := snapshot.WriteFile(p, kh.mc); err != nil {
				logger.Log("playmode", err.Error())
			}
		case "F7":
			if p, err := resources.JoinPath(stateFile); err != nil {
				logger.Log("playmode", err.Error())
			} else if err := snapshot.ReadFile(p, kh.mc); err != nil {
				logger.Log("playmode", err.Error())
			}
		default:
			if r, ok := machineRune(ev.Key, ev.Mod); ok {
				kh.pressed[ev.Key] = r
				kh.mc.KeyDown(r)
			}
		}
		return
	}

	if r, ok := kh.pressed[ev.Key]; ok {
		delete(kh.pressed, ev.Key)
		kh.mc.KeyUp(r)
	}
}
