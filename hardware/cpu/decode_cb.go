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

// executeCB executes an opcode from the bit manipulation page: the rotates
// and shifts, BIT, RES and SET.
//
// In index mode the page behaves quite differently: the displacement byte
// sits between the CB byte and the opcode, every operation works on the
// (IX+d) address regardless of the register field, and - except for BIT -
// the result is also copied to the register the field names. That last
// behaviour is undocumented but reliable silicon behaviour on the Z80 and
// U880 alike.
func (mc *CPU) executeCB() int {
	var opcode uint8

	if mc.index != noIndex {
		mc.indexedAddr = true
		mc.disp = int8(mc.fetch())
		// the final byte of a DDCB instruction is not an M1 cycle
		opcode = mc.fetch()
	} else {
		opcode = mc.fetchOpcode()
	}

	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07

	// operand comes from (IX+d) in index mode, whatever the register field
	// says
	src := z
	if mc.index != noIndex {
		src = regIndirect
	}

	switch x {
	case 0: // rotates and shifts
		result := mc.rotate(y, mc.readReg(src))
		mc.writeReg(src, result)
		if mc.index != noIndex {
			if z != regIndirect {
				mc.writeReg(z, result)
			}
			return 19
		}
		if z == regIndirect {
			return 15
		}
		return 8

	case 1: // BIT y,r
		mc.bitTest(y, mc.readReg(src))
		if mc.index != noIndex {
			return 16
		}
		if z == regIndirect {
			return 12
		}
		return 8

	case 2: // RES y,r
		result := mc.readReg(src) &^ (1 << y)
		mc.writeReg(src, result)
		if mc.index != noIndex {
			if z != regIndirect {
				mc.writeReg(z, result)
			}
			return 19
		}
		if z == regIndirect {
			return 15
		}
		return 8

	default: // SET y,r
		result := mc.readReg(src) | 1<<y
		mc.writeReg(src, result)
		if mc.index != noIndex {
			if z != regIndirect {
				mc.writeReg(z, result)
			}
			return 19
		}
		if z == regIndirect {
			return 15
		}
		return 8
	}
}
