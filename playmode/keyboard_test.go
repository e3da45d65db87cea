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
	"testing"

	"github.com/kaipeter/gopher1013/gui"
	"github.com/kaipeter/gopher1013/test"
)

func TestMachineRune(t *testing.T) {
	// letters have their case inverted
	r, ok := machineRune("A", gui.KeyModNone)
	test.Equate(t, ok, true)
	test.Equate(t, string(r), "A")

	r, ok = machineRune("A", gui.KeyModShift)
	test.Equate(t, ok, true)
	test.Equate(t, string(r), "a")

	// named keys
	r, ok = machineRune("Return", gui.KeyModNone)
	test.Equate(t, ok, true)
	test.Equate(t, int(r), 0x0d)

	r, ok = machineRune("Escape", gui.KeyModNone)
	test.Equate(t, ok, true)
	test.Equate(t, int(r), 0x03)

	// shifted digit on a US host layout
	r, ok = machineRune("1", gui.KeyModShift)
	test.Equate(t, ok, true)
	test.Equate(t, string(r), "!")

	// function keys are handled before translation
	_, ok = machineRune("F1", gui.KeyModNone)
	test.Equate(t, ok, false)
}
