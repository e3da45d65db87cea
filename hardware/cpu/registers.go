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

// the 8 bit registers pair up into the 16 bit working registers BC, DE and
// HL. the pairs are stored as separate bytes because 8 bit access dominates;
// the functions below build and split the 16 bit views.

func (mc *CPU) BC() uint16 {
	return uint16(mc.B)<<8 | uint16(mc.C)
}

func (mc *CPU) SetBC(v uint16) {
	mc.B = uint8(v >> 8)
	mc.C = uint8(v)
}

func (mc *CPU) DE() uint16 {
	return uint16(mc.D)<<8 | uint16(mc.E)
}

func (mc *CPU) SetDE(v uint16) {
	mc.D = uint8(v >> 8)
	mc.E = uint8(v)
}

func (mc *CPU) HL() uint16 {
	return uint16(mc.H)<<8 | uint16(mc.L)
}

func (mc *CPU) SetHL(v uint16) {
	mc.H = uint8(v >> 8)
	mc.L = uint8(v)
}

// AF builds the 16 bit view of the accumulator and the status register.
func (mc *CPU) AF() uint16 {
	return uint16(mc.A)<<8 | uint16(mc.Status.Value())
}

func (mc *CPU) SetAF(v uint16) {
	mc.A = uint8(v >> 8)
	mc.Status.Load(uint8(v))
}

// indexMode says which register stands in for HL during the current
// instruction. the DD and FD prefixes switch the mode for exactly one
// instruction.
type indexMode int

const (
	noIndex indexMode = iota
	indexIX
	indexIY
)

// idx returns a pointer to the index register selected by the current index
// mode. must not be called when index mode is noIndex.
func (mc *CPU) idx() *uint16 {
	if mc.index == indexIX {
		return &mc.IX
	}
	return &mc.IY
}

// effHL is the value standing in for HL in 16 bit operations: HL, IX or IY
// according to the current index mode.
func (mc *CPU) effHL() uint16 {
	if mc.index == noIndex {
		return mc.HL()
	}
	return *mc.idx()
}

func (mc *CPU) setEffHL(v uint16) {
	if mc.index == noIndex {
		mc.SetHL(v)
	} else {
		*mc.idx() = v
	}
}

// addrHL is the memory address used by (HL) operands: HL itself, or IX/IY
// plus the displacement fetched for the current instruction.
func (mc *CPU) addrHL() uint16 {
	if mc.index == noIndex {
		return mc.HL()
	}
	return uint16(int32(*mc.idx()) + int32(mc.disp))
}

// register operand numbering follows the instruction encoding: B, C, D, E,
// H, L, (HL), A.
const (
	regB = uint8(iota)
	regC
	regD
	regE
	regH
	regL
	regIndirect
	regA
)

// readReg reads an 8 bit register operand. operand 6 reads through the
// memory bus from (HL), or from (IX+d)/(IY+d) in index mode.
//
// in index mode the H and L operands name the halves of the index register,
// except in instructions that also use the indirect operand. that exception
// is what makes LD H,(IX+d) load the real H register.
func (mc *CPU) readReg(r uint8) uint8 {
	switch r {
	case regB:
		return mc.B
	case regC:
		return mc.C
	case regD:
		return mc.D
	case regE:
		return mc.E
	case regH:
		if mc.index != noIndex && !mc.indexedAddr {
			return uint8(*mc.idx() >> 8)
		}
		return mc.H
	case regL:
		if mc.index != noIndex && !mc.indexedAddr {
			return uint8(*mc.idx())
		}
		return mc.L
	case regIndirect:
		return mc.mem.Read(mc.addrHL())
	case regA:
		return mc.A
	}
	panic("illegal register operand")
}

// writeReg writes an 8 bit register operand. see readReg for the treatment
// of operands 4, 5 and 6 in index mode.
func (mc *CPU) writeReg(r uint8, v uint8) {
	switch r {
	case regB:
		mc.B = v
	case regC:
		mc.C = v
	case regD:
		mc.D = v
	case regE:
		mc.E = v
	case regH:
		if mc.index != noIndex && !mc.indexedAddr {
			*mc.idx() = *mc.idx()&0x00ff | uint16(v)<<8
		} else {
			mc.H = v
		}
	case regL:
		if mc.index != noIndex && !mc.indexedAddr {
			*mc.idx() = *mc.idx()&0xff00 | uint16(v)
		} else {
			mc.L = v
		}
	case regIndirect:
		mc.mem.Write(mc.addrHL(), v)
	case regA:
		mc.A = v
	}
}

// readRP reads a 16 bit register pair operand from the BC/DE/HL/SP table.
// HL obeys the current index mode.
func (mc *CPU) readRP(rp uint8) uint16 {
	switch rp {
	case 0:
		return mc.BC()
	case 1:
		return mc.DE()
	case 2:
		return mc.effHL()
	case 3:
		return mc.SP
	}
	panic("illegal register pair operand")
}

func (mc *CPU) writeRP(rp uint8, v uint16) {
	switch rp {
	case 0:
		mc.SetBC(v)
	case 1:
		mc.SetDE(v)
	case 2:
		mc.setEffHL(v)
	case 3:
		mc.SP = v
	}
}

// readRP2 reads a 16 bit register pair operand from the BC/DE/HL/AF table
// used by PUSH and POP.
func (mc *CPU) readRP2(rp uint8) uint16 {
	if rp == 3 {
		return mc.AF()
	}
	return mc.readRP(rp)
}

func (mc *CPU) writeRP2(rp uint8, v uint16) {
	if rp == 3 {
		mc.SetAF(v)
	} else {
		mc.writeRP(rp, v)
	}
}

// condition tests the condition operand used by conditional jumps, calls and
// returns: NZ, Z, NC, C, PO, PE, P, M.
func (mc *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !mc.Status.Zero
	case 1:
		return mc.Status.Zero
	case 2:
		return !mc.Status.Carry
	case 3:
		return mc.Status.Carry
	case 4:
		return !mc.Status.ParityOverflow
	case 5:
		return mc.Status.ParityOverflow
	case 6:
		return !mc.Status.Sign
	case 7:
		return mc.Status.Sign
	}
	panic("illegal condition operand")
}
