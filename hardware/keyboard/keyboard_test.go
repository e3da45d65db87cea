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

package keyboard_test

import (
	"testing"

	"github.com/kaipeter/gopher1013/hardware/keyboard"
	"github.com/kaipeter/gopher1013/test"
)

func TestMatrixScan(t *testing.T) {
	k := keyboard.NewKeyboard(keyboard.Matrix8x8)

	// all lines idle high
	for col := uint8(0); col < 8; col++ {
		k.WritePort(0, col)
		test.Equate(t, k.Lines(), 0x0f)
	}

	// 'A' sits at column 0, line 2
	k.KeyDown('A')

	k.WritePort(0, 0)
	test.Equate(t, k.Lines(), 0x0b)

	// other columns are unaffected
	k.WritePort(0, 1)
	test.Equate(t, k.Lines(), 0x0f)

	k.WritePort(0, 0)
	k.KeyUp('A')
	test.Equate(t, k.Lines(), 0x0f)
}

func TestHighNibbleSelect(t *testing.T) {
	k := keyboard.NewKeyboard(keyboard.Matrix8x8)

	// 'W' sits at column 0, line 5, visible only through the high nibble
	k.KeyDown('W')
	k.WritePort(0, 0)
	test.Equate(t, k.Lines(), 0x0f)

	k.HighNibble = true
	test.Equate(t, k.Lines(), 0x0d)
}

func TestShiftedKey(t *testing.T) {
	k := keyboard.NewKeyboard(keyboard.Matrix8x8)

	// lowercase 'a' is shift plus the 'A' key. the shift key is at
	// column 7, line 6
	k.KeyDown('a')

	k.WritePort(0, 0)
	test.Equate(t, k.Lines(), 0x0b)

	k.WritePort(0, 7)
	k.HighNibble = true
	test.Equate(t, k.Lines(), 0x0b)

	// two shifted keys share the shift crosspoint. releasing one must
	// leave shift held for the other
	k.KeyDown('b')
	k.KeyUp('a')
	test.Equate(t, k.Lines(), 0x0b)

	k.KeyUp('b')
	test.Equate(t, k.Lines(), 0x0f)
}

func TestSmallMatrix(t *testing.T) {
	k := keyboard.NewKeyboard(keyboard.Matrix8x4)

	// 'H' is column 0, line 1
	k.KeyDown('H')
	k.WritePort(0, 0)
	test.Equate(t, k.Lines(), 0x0d)
	k.KeyUp('H')

	// '0' is shift plus 'P' (bit 6 toggled), column 0, line 2
	k.KeyDown('0')
	test.Equate(t, k.Lines(), 0x0b)
	k.WritePort(0, 7)
	test.Equate(t, k.Lines(), 0x07)

	// the high nibble selector means nothing on the 8x4 matrix
	k.HighNibble = true
	test.Equate(t, k.Lines(), 0x07)
}

func TestUnknownCode(t *testing.T) {
	k := keyboard.NewKeyboard(keyboard.Matrix8x4)

	k.KeyDown(0x7f)
	for col := uint8(0); col < 8; col++ {
		k.WritePort(0, col)
		test.Equate(t, k.Lines(), 0x0f)
	}
}
