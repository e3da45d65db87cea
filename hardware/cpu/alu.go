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

// the arithmetic/logic helpers below change the status register exactly as
// the documented Z80 flag tables require, including the undocumented bits 3
// and 5. flag behaviour is checked against the tables in the Zilog Z80 CPU
// User Manual (UM008011) and Sean Young's "The Undocumented Z80 Documented".

func (mc *CPU) add8(v uint8, carry bool) {
	var c uint8
	if carry {
		c = 1
	}

	result := uint16(mc.A) + uint16(v) + uint16(c)

	mc.Status.HalfCarry = (mc.A&0x0f)+(v&0x0f)+c > 0x0f
	mc.Status.ParityOverflow = (mc.A^v)&0x80 == 0 && (mc.A^uint8(result))&0x80 == 0x80
	mc.Status.Carry = result > 0xff
	mc.Status.AddSubtract = false

	mc.A = uint8(result)
	mc.Status.setResultFlags(mc.A)
}

func (mc *CPU) sub8(v uint8, carry bool) {
	var c uint8
	if carry {
		c = 1
	}

	result := uint16(mc.A) - uint16(v) - uint16(c)

	mc.Status.HalfCarry = (mc.A & 0x0f) < (v&0x0f)+c
	mc.Status.ParityOverflow = (mc.A^v)&0x80 == 0x80 && (mc.A^uint8(result))&0x80 == 0x80
	mc.Status.Carry = result > 0xff
	mc.Status.AddSubtract = true

	mc.A = uint8(result)
	mc.Status.setResultFlags(mc.A)
}

// compare8 is subtraction that discards the result. the undocumented bits 3
// and 5 are taken from the operand, not the result - the one place the Z80
// flag tables are asymmetric.
func (mc *CPU) compare8(v uint8) {
	a := mc.A
	mc.sub8(v, false)
	mc.A = a
	mc.Status.setUndocumentedFlags(v)
}

func (mc *CPU) and8(v uint8) {
	mc.A &= v
	mc.Status.setResultFlags(mc.A)
	mc.Status.HalfCarry = true
	mc.Status.ParityOverflow = parity(mc.A)
	mc.Status.AddSubtract = false
	mc.Status.Carry = false
}

func (mc *CPU) or8(v uint8) {
	mc.A |= v
	mc.Status.setResultFlags(mc.A)
	mc.Status.HalfCarry = false
	mc.Status.ParityOverflow = parity(mc.A)
	mc.Status.AddSubtract = false
	mc.Status.Carry = false
}

func (mc *CPU) xor8(v uint8) {
	mc.A ^= v
	mc.Status.setResultFlags(mc.A)
	mc.Status.HalfCarry = false
	mc.Status.ParityOverflow = parity(mc.A)
	mc.Status.AddSubtract = false
	mc.Status.Carry = false
}

// alu performs one of the eight accumulator operations selected by bits 3-5
// of the arithmetic group opcodes: ADD, ADC, SUB, SBC, AND, XOR, OR, CP.
func (mc *CPU) alu(op uint8, v uint8) {
	switch op {
	case 0:
		mc.add8(v, false)
	case 1:
		mc.add8(v, mc.Status.Carry)
	case 2:
		mc.sub8(v, false)
	case 3:
		mc.sub8(v, mc.Status.Carry)
	case 4:
		mc.and8(v)
	case 5:
		mc.xor8(v)
	case 6:
		mc.or8(v)
	case 7:
		mc.compare8(v)
	}
}

// inc8 and dec8 leave the carry flag alone. overflow is set on the 0x7f/0x80
// boundary only.

func (mc *CPU) inc8(v uint8) uint8 {
	result := v + 1
	mc.Status.setResultFlags(result)
	mc.Status.HalfCarry = v&0x0f == 0x0f
	mc.Status.ParityOverflow = v == 0x7f
	mc.Status.AddSubtract = false
	return result
}

func (mc *CPU) dec8(v uint8) uint8 {
	result := v - 1
	mc.Status.setResultFlags(result)
	mc.Status.HalfCarry = v&0x0f == 0x00
	mc.Status.ParityOverflow = v == 0x80
	mc.Status.AddSubtract = true
	return result
}

// add16 implements ADD HL,rr (and ADD IX,rr / ADD IY,rr). only carry,
// half-carry and the undocumented bits are affected; half-carry comes from
// bit 11.
func (mc *CPU) add16(a uint16, b uint16) uint16 {
	result := uint32(a) + uint32(b)

	mc.Status.HalfCarry = (a&0x0fff)+(b&0x0fff) > 0x0fff
	mc.Status.Carry = result > 0xffff
	mc.Status.AddSubtract = false
	mc.Status.setUndocumentedFlags(uint8(result >> 8))

	return uint16(result)
}

// adc16 implements ADC HL,rr with the full flag set.
func (mc *CPU) adc16(a uint16, b uint16) uint16 {
	var c uint32
	if mc.Status.Carry {
		c = 1
	}

	result := uint32(a) + uint32(b) + c

	mc.Status.HalfCarry = uint32(a&0x0fff)+uint32(b&0x0fff)+c > 0x0fff
	mc.Status.ParityOverflow = (a^b)&0x8000 == 0 && (a^uint16(result))&0x8000 == 0x8000
	mc.Status.Carry = result > 0xffff
	mc.Status.AddSubtract = false
	mc.Status.Sign = result&0x8000 == 0x8000
	mc.Status.Zero = uint16(result) == 0
	mc.Status.setUndocumentedFlags(uint8(result >> 8))

	return uint16(result)
}

// sbc16 implements SBC HL,rr with the full flag set.
func (mc *CPU) sbc16(a uint16, b uint16) uint16 {
	var c uint32
	if mc.Status.Carry {
		c = 1
	}

	result := uint32(a) - uint32(b) - c

	mc.Status.HalfCarry = uint32(a&0x0fff) < uint32(b&0x0fff)+c
	mc.Status.ParityOverflow = (a^b)&0x8000 == 0x8000 && (a^uint16(result))&0x8000 == 0x8000
	mc.Status.Carry = result > 0xffff
	mc.Status.AddSubtract = true
	mc.Status.Sign = result&0x8000 == 0x8000
	mc.Status.Zero = uint16(result) == 0
	mc.Status.setUndocumentedFlags(uint8(result >> 8))

	return uint16(result)
}

// daa decimal-adjusts the accumulator after BCD arithmetic. the correction
// value depends on the flags left by the preceding instruction.
func (mc *CPU) daa() {
	a := mc.A

	var correction uint8
	if mc.Status.HalfCarry || a&0x0f > 0x09 {
		correction |= 0x06
	}
	carry := mc.Status.Carry || a > 0x99
	if carry {
		correction |= 0x60
	}

	if mc.Status.AddSubtract {
		mc.Status.HalfCarry = mc.Status.HalfCarry && a&0x0f < 0x06
		mc.A = a - correction
	} else {
		mc.Status.HalfCarry = a&0x0f > 0x09
		mc.A = a + correction
	}

	mc.Status.Carry = carry
	mc.Status.ParityOverflow = parity(mc.A)
	mc.Status.setResultFlags(mc.A)
}

// the four accumulator rotates of the main opcode page. these only touch
// carry, half-carry, add/subtract and the undocumented bits.

func (mc *CPU) rlca() {
	mc.A = mc.A<<1 | mc.A>>7
	mc.Status.Carry = mc.A&0x01 == 0x01
	mc.Status.HalfCarry = false
	mc.Status.AddSubtract = false
	mc.Status.setUndocumentedFlags(mc.A)
}

func (mc *CPU) rrca() {
	mc.Status.Carry = mc.A&0x01 == 0x01
	mc.A = mc.A>>1 | mc.A<<7
	mc.Status.HalfCarry = false
	mc.Status.AddSubtract = false
	mc.Status.setUndocumentedFlags(mc.A)
}

func (mc *CPU) rla() {
	carry := mc.A&0x80 == 0x80
	mc.A <<= 1
	if mc.Status.Carry {
		mc.A |= 0x01
	}
	mc.Status.Carry = carry
	mc.Status.HalfCarry = false
	mc.Status.AddSubtract = false
	mc.Status.setUndocumentedFlags(mc.A)
}

func (mc *CPU) rra() {
	carry := mc.A&0x01 == 0x01
	mc.A >>= 1
	if mc.Status.Carry {
		mc.A |= 0x80
	}
	mc.Status.Carry = carry
	mc.Status.HalfCarry = false
	mc.Status.AddSubtract = false
	mc.Status.setUndocumentedFlags(mc.A)
}

// rotate performs one of the eight CB page rotate/shift operations: RLC,
// RRC, RL, RR, SLA, SRA, SLL, SRL. SLL is the undocumented shift that feeds
// a one into bit 0.
func (mc *CPU) rotate(op uint8, v uint8) uint8 {
	var result uint8

	switch op {
	case 0: // RLC
		result = v<<1 | v>>7
		mc.Status.Carry = v&0x80 == 0x80
	case 1: // RRC
		result = v>>1 | v<<7
		mc.Status.Carry = v&0x01 == 0x01
	case 2: // RL
		result = v << 1
		if mc.Status.Carry {
			result |= 0x01
		}
		mc.Status.Carry = v&0x80 == 0x80
	case 3: // RR
		result = v >> 1
		if mc.Status.Carry {
			result |= 0x80
		}
		mc.Status.Carry = v&0x01 == 0x01
	case 4: // SLA
		result = v << 1
		mc.Status.Carry = v&0x80 == 0x80
	case 5: // SRA
		result = v>>1 | v&0x80
		mc.Status.Carry = v&0x01 == 0x01
	case 6: // SLL
		result = v<<1 | 0x01
		mc.Status.Carry = v&0x80 == 0x80
	case 7: // SRL
		result = v >> 1
		mc.Status.Carry = v&0x01 == 0x01
	}

	mc.Status.setResultFlags(result)
	mc.Status.HalfCarry = false
	mc.Status.AddSubtract = false
	mc.Status.ParityOverflow = parity(result)

	return result
}

// bitTest implements BIT b,r. the undocumented bits come from the value
// under test.
func (mc *CPU) bitTest(b uint8, v uint8) {
	mc.Status.Zero = v&(1<<b) == 0
	mc.Status.ParityOverflow = mc.Status.Zero
	mc.Status.Sign = b == 7 && !mc.Status.Zero
	mc.Status.HalfCarry = true
	mc.Status.AddSubtract = false
	mc.Status.setUndocumentedFlags(v)
}
