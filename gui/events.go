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

package gui

// KeyMod identifies the modifier key held down when a keyboard event was
// generated.
type KeyMod int

// List of valid KeyMod values.
const (
	KeyModNone KeyMod = iota
	KeyModShift
	KeyModCtrl
	KeyModAlt
)

// Event represents all the different kinds of event sent over the event
// channel.
type Event interface{}

// EventWindowClose is sent when the user closes the window.
type EventWindowClose struct{}

// EventKeyboard is the data for a keyboard event. Key is the host name for
// the key, as returned by the windowing system.
type EventKeyboard struct {
	Key  string
	Mod  KeyMod
	Down bool
}
