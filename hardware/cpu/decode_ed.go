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

// executeED executes an opcode from the extended page. Opcodes on this page
// with no assigned operation execute as an 8 cycle no-op, which is the
// documented behaviour of the real part.
func (mc *CPU) executeED() int {
	opcode := mc.fetchOpcode()

	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07
	p := y >> 1
	q := y & 0x01

	switch x {
	case 1:
		switch z {
		case 0: // IN r,(C)
			v := mc.mem.ReadPort(mc.BC())
			if y != 6 {
				// y == 6 is the undocumented IN (C): flags only
				mc.writeReg(y, v)
			}
			mc.Status.setResultFlags(v)
			mc.Status.HalfCarry = false
			mc.Status.AddSubtract = false
			mc.Status.ParityOverflow = parity(v)
			return 12

		case 1: // OUT (C),r
			if y == 6 {
				// undocumented OUT (C),0. the CMOS part outputs 0xff but the
				// NMOS Z80 and the U880 output zero
				mc.mem.WritePort(mc.BC(), 0)
			} else {
				mc.mem.WritePort(mc.BC(), mc.readReg(y))
			}
			return 12

		case 2: // SBC HL,rp / ADC HL,rp
			if q == 0 {
				mc.SetHL(mc.sbc16(mc.HL(), mc.readRP(p)))
			} else {
				mc.SetHL(mc.adc16(mc.HL(), mc.readRP(p)))
			}
			return 15

		case 3: // LD (nn),rp / LD rp,(nn)
			nn := mc.fetch16()
			if q == 0 {
				mc.write16(nn, mc.readRP(p))
			} else {
				mc.writeRP(p, mc.read16(nn))
			}
			return 20

		case 4: // NEG (all eight encodings)
			a := mc.A
			mc.A = 0
			mc.sub8(a, false)
			return 8

		case 5: // RETN / RETI. both restore IFF1 from IFF2
			mc.IFF1 = mc.IFF2
			mc.PC = mc.pop16()
			return 14

		case 6: // IM 0/1/2 (with mirrors)
			switch y & 0x03 {
			case 2:
				mc.IM = 1
			case 3:
				mc.IM = 2
			default:
				mc.IM = 0
			}
			return 8

		default: // z == 7
			switch y {
			case 0: // LD I,A
				mc.I = mc.A
				return 9
			case 1: // LD R,A
				mc.R = mc.A
				return 9
			case 2: // LD A,I
				mc.A = mc.I
				mc.Status.setResultFlags(mc.A)
				mc.Status.HalfCarry = false
				mc.Status.AddSubtract = false
				mc.Status.ParityOverflow = mc.IFF2
				return 9
			case 3: // LD A,R
				mc.A = mc.R
				mc.Status.setResultFlags(mc.A)
				mc.Status.HalfCarry = false
				mc.Status.AddSubtract = false
				mc.Status.ParityOverflow = mc.IFF2
				return 9
			case 4: // RRD
				v := mc.mem.Read(mc.HL())
				mc.mem.Write(mc.HL(), v>>4|mc.A<<4)
				mc.A = mc.A&0xf0 | v&0x0f
				mc.Status.setResultFlags(mc.A)
				mc.Status.HalfCarry = false
				mc.Status.AddSubtract = false
				mc.Status.ParityOverflow = parity(mc.A)
				return 18
			case 5: // RLD
				v := mc.mem.Read(mc.HL())
				mc.mem.Write(mc.HL(), v<<4|mc.A&0x0f)
				mc.A = mc.A&0xf0 | v>>4
				mc.Status.setResultFlags(mc.A)
				mc.Status.HalfCarry = false
				mc.Status.AddSubtract = false
				mc.Status.ParityOverflow = parity(mc.A)
				return 18
			}
		}

	case 2:
		if z <= 3 && y >= 4 {
			return mc.executeBlock(y, z)
		}
	}

	// no assigned operation
	return 8
}

// executeBlock executes the LDI/CPI/INI/OUTI family, including the
// repeating forms which rewind PC so the instruction fetches again on the
// next boundary - keeping the machine interruptible between iterations as
// the real part is.
func (mc *CPU) executeBlock(y uint8, z uint8) int {
	// bit 0 of y selects decrement, bit 1 the repeating form
	delta := int32(1)
	if y&0x01 == 0x01 {
		delta = -1
	}
	repeat := y&0x02 == 0x02

	step := func(addr uint16) uint16 {
		return uint16(int32(addr) + delta)
	}

	switch z {
	case 0: // LDI/LDD/LDIR/LDDR
		v := mc.mem.Read(mc.HL())
		mc.mem.Write(mc.DE(), v)
		mc.SetHL(step(mc.HL()))
		mc.SetDE(step(mc.DE()))
		mc.SetBC(mc.BC() - 1)

		mc.Status.HalfCarry = false
		mc.Status.AddSubtract = false
		mc.Status.ParityOverflow = mc.BC() != 0

		// undocumented: bits 3 and 5 come from A plus the transferred byte,
		// with bit 5 taking bit 1 of the sum
		n := mc.A + v
		mc.Status.Bit3 = n&0x08 == 0x08
		mc.Status.Bit5 = n&0x02 == 0x02

		if repeat && mc.BC() != 0 {
			mc.PC -= 2
			return 21
		}
		return 16

	case 1: // CPI/CPD/CPIR/CPDR
		v := mc.mem.Read(mc.HL())
		result := mc.A - v

		mc.SetHL(step(mc.HL()))
		mc.SetBC(mc.BC() - 1)

		mc.Status.Sign = result&0x80 == 0x80
		mc.Status.Zero = result == 0
		mc.Status.HalfCarry = mc.A&0x0f < v&0x0f
		mc.Status.AddSubtract = true
		mc.Status.ParityOverflow = mc.BC() != 0

		n := result
		if mc.Status.HalfCarry {
			n--
		}
		mc.Status.Bit3 = n&0x08 == 0x08
		mc.Status.Bit5 = n&0x02 == 0x02

		if repeat && mc.BC() != 0 && !mc.Status.Zero {
			mc.PC -= 2
			return 21
		}
		return 16

	case 2: // INI/IND/INIR/INDR
		v := mc.mem.ReadPort(mc.BC())
		mc.mem.Write(mc.HL(), v)
		mc.SetHL(step(mc.HL()))
		mc.B--

		mc.Status.setResultFlags(mc.B)
		mc.Status.AddSubtract = v&0x80 == 0x80
		k := uint16(v) + uint16(uint8(uint16(mc.C)+uint16(uint8(delta))))
		mc.Status.HalfCarry = k > 0xff
		mc.Status.Carry = k > 0xff
		mc.Status.ParityOverflow = parity(uint8(k&0x07) ^ mc.B)

		if repeat && mc.B != 0 {
			mc.PC -= 2
			return 21
		}
		return 16

	default: // OUTI/OUTD/OTIR/OTDR
		v := mc.mem.Read(mc.HL())
		mc.B--
		mc.mem.WritePort(mc.BC(), v)
		mc.SetHL(step(mc.HL()))

		mc.Status.setResultFlags(mc.B)
		mc.Status.AddSubtract = v&0x80 == 0x80
		k := uint16(v) + uint16(mc.L)
		mc.Status.HalfCarry = k > 0xff
		mc.Status.Carry = k > 0xff
		mc.Status.ParityOverflow = parity(uint8(k&0x07) ^ mc.B)

		if repeat && mc.B != 0 {
			mc.PC -= 2
			return 21
		}
		return 16
	}
}
