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

// Package keyboard emulates the keyboard matrix of the Z1013. The running
// program selects one of eight columns by writing to port 0x08 and reads
// the line state of that column through the low nibble of PIO port B. Lines
// are active low.
//
// The original Z1013.01 membrane keyboard is an 8x4 matrix with a shift
// key; the later machines use an 8x8 matrix where PIO port B bit 4 selects
// which half of the column is presented on the four line inputs.
//
// KeyDown and KeyUp take logical key codes (printable ASCII plus a few
// control codes) and translate them through the matrix layout, holding the
// shift key down alongside the character key where the layout requires it.
package keyboard

import (
	"fmt"
)

// Matrix selects which physical keyboard the emulated machine carries.
type Matrix int

// The two keyboard types fitted to the Z1013 variants.
const (
	Matrix8x4 Matrix = iota
	Matrix8x8
)

func (m Matrix) String() string {
	switch m {
	case Matrix8x4:
		return "8x4"
	case Matrix8x8:
		return "8x8"
	}
	return "undefined"
}

// Keyboard is the keyboard matrix of the Z1013.
type Keyboard struct {
	matrix Matrix
	layout map[rune]position

	// Held is the number of held keys on each crosspoint, indexed by column then line.
	// a count rather than a bool because two held keys can share the shift
	// crosspoint
	Held [8][8]uint8

	// Column is the value last written to the column latch. HighNibble
	// mirrors PIO port B bit 4 and is only meaningful on the 8x8 matrix
	Column     uint8
	HighNibble bool
}

// NewKeyboard is the preferred method of initialisation for the Keyboard
// type.
func NewKeyboard(matrix Matrix) *Keyboard {
	k := &Keyboard{matrix: matrix}
	switch matrix {
	case Matrix8x4:
		k.layout = layout8x4
	default:
		k.layout = layout8x8
	}
	return k
}

// Snapshot creates a copy of the keyboard in its current state.
func (k *Keyboard) Snapshot() *Keyboard {
	n := *k
	return &n
}

// Reset releases all keys and clears the column latch.
func (k *Keyboard) Reset() {
	k.Held = [8][8]uint8{}
	k.Column = 0
	k.HighNibble = false
}

// KeyDown presses the key for the given logical code. Unknown codes are
// ignored. Lowercase letters select the shifted layer of the layout, as
// they do on the real machine.
func (k *Keyboard) KeyDown(code rune) {
	if p, ok := k.layout[code]; ok {
		k.Held[p.column][p.line]++
		if p.shift {
			s := k.shiftPosition()
			k.Held[s.column][s.line]++
		}
	}
}

// KeyUp releases the key for the given logical code, clearing exactly the
// crosspoints the matching KeyDown set.
func (k *Keyboard) KeyUp(code rune) {
	if p, ok := k.layout[code]; ok {
		if k.Held[p.column][p.line] > 0 {
			k.Held[p.column][p.line]--
			if p.shift {
				s := k.shiftPosition()
				if k.Held[s.column][s.line] > 0 {
					k.Held[s.column][s.line]--
				}
			}
		}
	}
}

func (k *Keyboard) shiftPosition() position {
	if k.matrix == Matrix8x4 {
		return shiftKey8x4
	}
	return shiftKey8x8
}

// WritePort latches the column selection. Implements the bus.PortDevice
// interface for the column latch port.
func (k *Keyboard) WritePort(_ uint16, data uint8) {
	k.Column = data & 0x07
}

// ReadPort returns the latched column. Implements the bus.PortDevice
// interface for the column latch port.
func (k *Keyboard) ReadPort(_ uint16) uint8 {
	return k.Column
}

// Lines returns the state of the four line inputs for the latched column,
// active low, in bits 0 to 3. On the 8x8 matrix the HighNibble flag selects
// which half of the column is presented.
func (k *Keyboard) Lines() uint8 {
	base := 0
	if k.matrix == Matrix8x8 && k.HighNibble {
		base = 4
	}

	var v uint8
	for b := 0; b < 4; b++ {
		if k.Held[k.Column][base+b] > 0 {
			v |= 1 << b
		}
	}
	return ^v & 0x0f
}

func (k *Keyboard) String() string {
	return fmt.Sprintf("%s matrix, column %d", k.matrix, k.Column)
}
