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

package keyboard

// position is a crosspoint in the matrix, plus whether the shift key must
// be held alongside it.
type position struct {
	column int
	line   int
	shift  bool
}

// the shift keys sit on the matrix like any other key.
var (
	shiftKey8x4 = position{column: 7, line: 3}
	shiftKey8x8 = position{column: 7, line: 6}
)

// The membrane keyboard of the Z1013.01. Three lines of letters with the
// shifted layer reached by toggling bit 6 of the character code, which is
// how the monitor derives the shifted meaning of each key.
var grid8x4 = [4]string{
	"@ABCDEFG",
	"HIJKLMNO",
	"PQRSTUVW",
	"XYZ     ",
}

// The 8x8 keyboard of the later machines. Layout of the commonly fitted
// flat keyboard: odd digits and letters across the low lines, even digits
// and the remaining letters across the high lines.
var grid8x8 = [8]string{
	"13579-  ",
	"QETUO@  ",
	"ADGJL*  ",
	"YCBM.^  ",
	"24680[  ",
	"WRZIP]  ",
	"SFHK+\\  ",
	"XVN,/_  ",
}

var grid8x8Shifted = [8]string{
	"!#%')=  ",
	"qetuo`  ",
	"adgjl:  ",
	"ycbm>~  ",
	"\"$&(;{  ",
	"wrzip}  ",
	"sfhk    ",
	"xvn<?   ",
}

var (
	layout8x4 map[rune]position
	layout8x8 map[rune]position
)

func init() {
	layout8x4 = make(map[rune]position)
	for line, row := range grid8x4 {
		for column, c := range row {
			if c == ' ' {
				continue
			}
			register(layout8x4, c, position{column: column, line: line})

			// the shifted layer is the unshifted character with bit 6
			// toggled: letters become punctuation and digits
			register(layout8x4, c^0x60, position{column: column, line: line, shift: true})
		}
	}

	// control keys on the bottom line
	register(layout8x4, 0x0d, position{column: 3, line: 3}) // enter
	register(layout8x4, 0x08, position{column: 4, line: 3}) // cursor left
	register(layout8x4, 0x09, position{column: 5, line: 3}) // cursor right
	register(layout8x4, 0x03, position{column: 6, line: 3}) // break

	layout8x8 = make(map[rune]position)
	for line := range grid8x8 {
		for column, c := range grid8x8[line] {
			if c != ' ' {
				register(layout8x8, c, position{column: column, line: line})
			}
		}
		for column, c := range grid8x8Shifted[line] {
			if c != ' ' {
				register(layout8x8, c, position{column: column, line: line, shift: true})
			}
		}
	}

	// control keys gathered on column 6
	register(layout8x8, 0x03, position{column: 6, line: 0}) // break
	register(layout8x8, 0x0d, position{column: 6, line: 1}) // enter
	register(layout8x8, 0x08, position{column: 6, line: 2}) // cursor left
	register(layout8x8, 0x09, position{column: 6, line: 3}) // cursor right
	register(layout8x8, ' ', position{column: 6, line: 4})
	register(layout8x8, 0x0b, position{column: 6, line: 6}) // cursor up
	register(layout8x8, 0x0a, position{column: 6, line: 7}) // cursor down
}

func register(layout map[rune]position, code rune, p position) {
	if _, ok := layout[code]; !ok {
		layout[code] = p
	}
}
