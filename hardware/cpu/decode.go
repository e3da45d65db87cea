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

// decoding works on the three bit fields of the opcode byte, following the
// structure of the instruction set rather than a 256-way table:
//
//	x = opcode[7:6]   y = opcode[5:3]   z = opcode[2:0]
//	p = y[2:1]        q = y[0]
//
// cycle counts returned from the decode functions are for the unprefixed
// form. the 4 cycles of a DD/FD prefix are added by ExecuteInstruction();
// the additional cost of forming the (IX+d) address is added at the operand
// access sites, where indexedAddr is true.

// executeMain executes an opcode from the main page and returns the cycles
// consumed.
func (mc *CPU) executeMain(opcode uint8) int {
	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07
	p := y >> 1
	q := y & 0x01

	switch x {
	case 0:
		switch z {
		case 0:
			switch y {
			case 0: // NOP
				return 4

			case 1: // EX AF,AF'
				mc.A, mc.AltA = mc.AltA, mc.A
				mc.Status, mc.AltStatus = mc.AltStatus, mc.Status
				return 4

			case 2: // DJNZ d
				d := int8(mc.fetch())
				mc.B--
				if mc.B != 0 {
					mc.PC = uint16(int32(mc.PC) + int32(d))
					return 13
				}
				return 8

			case 3: // JR d
				d := int8(mc.fetch())
				mc.PC = uint16(int32(mc.PC) + int32(d))
				return 12

			default: // JR cc,d
				d := int8(mc.fetch())
				if mc.condition(y - 4) {
					mc.PC = uint16(int32(mc.PC) + int32(d))
					return 12
				}
				return 7
			}

		case 1:
			if q == 0 { // LD rp,nn
				mc.writeRP(p, mc.fetch16())
				return 10
			}
			// ADD HL,rp
			mc.setEffHL(mc.add16(mc.effHL(), mc.readRP(p)))
			return 11

		case 2:
			switch y {
			case 0: // LD (BC),A
				mc.mem.Write(mc.BC(), mc.A)
				return 7
			case 1: // LD A,(BC)
				mc.A = mc.mem.Read(mc.BC())
				return 7
			case 2: // LD (DE),A
				mc.mem.Write(mc.DE(), mc.A)
				return 7
			case 3: // LD A,(DE)
				mc.A = mc.mem.Read(mc.DE())
				return 7
			case 4: // LD (nn),HL
				mc.write16(mc.fetch16(), mc.effHL())
				return 16
			case 5: // LD HL,(nn)
				mc.setEffHL(mc.read16(mc.fetch16()))
				return 16
			case 6: // LD (nn),A
				mc.mem.Write(mc.fetch16(), mc.A)
				return 13
			default: // LD A,(nn)
				mc.A = mc.mem.Read(mc.fetch16())
				return 13
			}

		case 3: // INC rp / DEC rp
			if q == 0 {
				mc.writeRP(p, mc.readRP(p)+1)
			} else {
				mc.writeRP(p, mc.readRP(p)-1)
			}
			return 6

		case 4: // INC r
			mc.writeReg(y, mc.inc8(mc.readReg(y)))
			if y == regIndirect {
				if mc.indexedAddr {
					return 19
				}
				return 11
			}
			return 4

		case 5: // DEC r
			mc.writeReg(y, mc.dec8(mc.readReg(y)))
			if y == regIndirect {
				if mc.indexedAddr {
					return 19
				}
				return 11
			}
			return 4

		case 6: // LD r,n
			mc.writeReg(y, mc.fetch())
			if y == regIndirect {
				if mc.indexedAddr {
					return 15
				}
				return 10
			}
			return 7

		default:
			switch y {
			case 0:
				mc.rlca()
			case 1:
				mc.rrca()
			case 2:
				mc.rla()
			case 3:
				mc.rra()
			case 4:
				mc.daa()
			case 5: // CPL
				mc.A = ^mc.A
				mc.Status.HalfCarry = true
				mc.Status.AddSubtract = true
				mc.Status.setUndocumentedFlags(mc.A)
			case 6: // SCF
				mc.Status.Carry = true
				mc.Status.HalfCarry = false
				mc.Status.AddSubtract = false
				mc.Status.setUndocumentedFlags(mc.A)
			default: // CCF
				mc.Status.HalfCarry = mc.Status.Carry
				mc.Status.Carry = !mc.Status.Carry
				mc.Status.AddSubtract = false
				mc.Status.setUndocumentedFlags(mc.A)
			}
			return 4
		}

	case 1:
		if opcode == 0x76 { // HALT
			mc.Halted = true
			return 4
		}

		// LD r,r'
		mc.writeReg(y, mc.readReg(z))
		if y == regIndirect || z == regIndirect {
			if mc.indexedAddr {
				return 15
			}
			return 7
		}
		return 4

	case 2: // arithmetic/logic on the accumulator
		mc.alu(y, mc.readReg(z))
		if z == regIndirect {
			if mc.indexedAddr {
				return 15
			}
			return 7
		}
		return 4
	}

	// x == 3
	switch z {
	case 0: // RET cc
		if mc.condition(y) {
			mc.PC = mc.pop16()
			return 11
		}
		return 5

	case 1:
		if q == 0 { // POP rp2
			mc.writeRP2(p, mc.pop16())
			return 10
		}
		switch p {
		case 0: // RET
			mc.PC = mc.pop16()
			return 10
		case 1: // EXX
			mc.B, mc.AltB = mc.AltB, mc.B
			mc.C, mc.AltC = mc.AltC, mc.C
			mc.D, mc.AltD = mc.AltD, mc.D
			mc.E, mc.AltE = mc.AltE, mc.E
			mc.H, mc.AltH = mc.AltH, mc.H
			mc.L, mc.AltL = mc.AltL, mc.L
			return 4
		case 2: // JP (HL)
			mc.PC = mc.effHL()
			return 4
		default: // LD SP,HL
			mc.SP = mc.effHL()
			return 6
		}

	case 2: // JP cc,nn
		nn := mc.fetch16()
		if mc.condition(y) {
			mc.PC = nn
		}
		return 10

	case 3:
		switch y {
		case 0: // JP nn
			mc.PC = mc.fetch16()
			return 10
		case 1:
			// 0xcb is handled by ExecuteInstruction before we get here
			panic("CB prefix in main decode")
		case 2: // OUT (n),A
			// A supplies the high byte of the port address
			mc.mem.WritePort(uint16(mc.A)<<8|uint16(mc.fetch()), mc.A)
			return 11
		case 3: // IN A,(n)
			mc.A = mc.mem.ReadPort(uint16(mc.A)<<8 | uint16(mc.fetch()))
			return 11
		case 4: // EX (SP),HL
			v := mc.read16(mc.SP)
			mc.write16(mc.SP, mc.effHL())
			mc.setEffHL(v)
			return 19
		case 5: // EX DE,HL - never affected by an index prefix
			de := mc.DE()
			mc.SetDE(mc.HL())
			mc.SetHL(de)
			return 4
		case 6: // DI
			mc.IFF1 = false
			mc.IFF2 = false
			return 4
		default: // EI
			mc.IFF1 = true
			mc.IFF2 = true
			mc.EIDelay = true
			return 4
		}

	case 4: // CALL cc,nn
		nn := mc.fetch16()
		if mc.condition(y) {
			mc.push16(mc.PC)
			mc.PC = nn
			return 17
		}
		return 10

	case 5:
		if q == 0 { // PUSH rp2
			mc.push16(mc.readRP2(p))
			return 11
		}
		// p == 0 is CALL nn. p = 1, 2, 3 are the DD, ED, FD prefixes which
		// are handled by ExecuteInstruction before we get here
		if p != 0 {
			panic("prefix byte in main decode")
		}
		nn := mc.fetch16()
		mc.push16(mc.PC)
		mc.PC = nn
		return 17

	case 6: // arithmetic/logic with immediate operand
		mc.alu(y, mc.fetch())
		return 7

	default: // RST
		mc.push16(mc.PC)
		mc.PC = uint16(y) << 3
		return 11
	}
}
