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

package cpu

import "strings"

// StatusRegister is the special purpose F register, storing the flags of the
// CPU. The undocumented bits 3 and 5 are modelled individually because the
// monitor ROM's keyboard routines can be observed pushing and testing them.
type StatusRegister struct {
	Sign           bool // bit 7
	Zero           bool // bit 6
	Bit5           bool // bit 5 (undocumented, copies bit 5 of most results)
	HalfCarry      bool // bit 4
	Bit3           bool // bit 3 (undocumented, copies bit 3 of most results)
	ParityOverflow bool // bit 2
	AddSubtract    bool // bit 1
	Carry          bool // bit 0
}

// Value returns the status register as an 8 bit value, suitable for pushing
// onto the stack or for transfer to the shadow register file.
func (sr StatusRegister) Value() uint8 {
	var v uint8

	if sr.Sign {
		v |= 0x80
	}
	if sr.Zero {
		v |= 0x40
	}
	if sr.Bit5 {
		v |= 0x20
	}
	if sr.HalfCarry {
		v |= 0x10
	}
	if sr.Bit3 {
		v |= 0x08
	}
	if sr.ParityOverflow {
		v |= 0x04
	}
	if sr.AddSubtract {
		v |= 0x02
	}
	if sr.Carry {
		v |= 0x01
	}

	return v
}

// Load sets the status register from an 8 bit value, as read from the stack.
func (sr *StatusRegister) Load(v uint8) {
	sr.Sign = v&0x80 == 0x80
	sr.Zero = v&0x40 == 0x40
	sr.Bit5 = v&0x20 == 0x20
	sr.HalfCarry = v&0x10 == 0x10
	sr.Bit3 = v&0x08 == 0x08
	sr.ParityOverflow = v&0x04 == 0x04
	sr.AddSubtract = v&0x02 == 0x02
	sr.Carry = v&0x01 == 0x01
}

// Reset clears every flag.
func (sr *StatusRegister) Reset() {
	sr.Load(0)
}

func (sr StatusRegister) String() string {
	s := strings.Builder{}

	flag := func(set bool, label string) {
		if set {
			s.WriteString(strings.ToUpper(label))
		} else {
			s.WriteString(label)
		}
	}

	flag(sr.Sign, "s")
	flag(sr.Zero, "z")
	flag(sr.Bit5, "y")
	flag(sr.HalfCarry, "h")
	flag(sr.Bit3, "x")
	flag(sr.ParityOverflow, "p")
	flag(sr.AddSubtract, "n")
	flag(sr.Carry, "c")

	return s.String()
}

// setResultFlags sets the flags that simply reflect an 8 bit result: Sign,
// Zero and the undocumented bits 3 and 5.
func (sr *StatusRegister) setResultFlags(result uint8) {
	sr.Sign = result&0x80 == 0x80
	sr.Zero = result == 0
	sr.Bit5 = result&0x20 == 0x20
	sr.Bit3 = result&0x08 == 0x08
}

// setUndocumentedFlags sets bits 3 and 5 from the argument, leaving all the
// documented flags alone.
func (sr *StatusRegister) setUndocumentedFlags(v uint8) {
	sr.Bit5 = v&0x20 == 0x20
	sr.Bit3 = v&0x08 == 0x08
}

// parity returns true if the value has an even number of set bits, which is
// when the Z80 parity flag is set.
func parity(v uint8) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}
