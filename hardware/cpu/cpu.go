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

import (
	"fmt"

	"github.com/kaipeter/gopher1013/hardware/memory/bus"
)

// CPU implements the Z80 as found in the Z1013 (the U880, an unlicensed but
// faithful East German clone). One call to ExecuteInstruction() decodes and
// executes exactly one instruction, leaving the consumed cycle count in
// LastResult.
type CPU struct {
	// main register file. the F register is modelled by the StatusRegister
	// type rather than as a plain byte
	A      uint8
	Status StatusRegister
	B, C   uint8
	D, E   uint8
	H, L   uint8

	// shadow register file, exchanged with EX AF,AF' and EXX
	AltA      uint8
	AltStatus StatusRegister
	AltB, AltC uint8
	AltD, AltE uint8
	AltH, AltL uint8

	IX, IY uint16
	SP, PC uint16

	// interrupt vector base and memory refresh registers
	I uint8
	R uint8

	// interrupt enable flip-flops. IFF2 preserves IFF1 across an NMI and is
	// what LD A,I / LD A,R report in the parity flag
	IFF1 bool
	IFF2 bool

	// interrupt mode 0, 1 or 2
	IM uint8

	// the HALT instruction has been executed and no interrupt has woken the
	// CPU yet. while halted the CPU burns 4 cycles per ExecuteInstruction()
	Halted bool

	mem bus.Bus

	// latched interrupt requests. serviced at the next instruction boundary
	PendingINT bool
	IntData    uint8
	PendingNMI bool

	// interrupts are not accepted until one instruction after EI
	EIDelay bool

	// index mode for the instruction currently being decoded, plus the
	// displacement and a note of whether the instruction addresses memory
	// through the index register
	index       indexMode
	disp        int8
	indexedAddr bool

	// LastResult is the summary of the most recent ExecuteInstruction()
	LastResult Result
}

// Result summarises a single call to ExecuteInstruction(). There is no
// allocation involved in updating it.
type Result struct {
	// address of the first byte of the instruction
	Address uint16

	// the opcode byte after any prefix bytes
	Opcode uint8

	// cycles consumed, per the documented timing tables
	Cycles int

	// the instruction boundary serviced an interrupt rather than executing
	// an instruction from memory
	InterruptAck bool
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem bus.Bus) *CPU {
	mc := &CPU{mem: mem}
	mc.Reset()
	return mc
}

// Snapshot creates a copy of the CPU in its current state.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	return &n
}

// Plumb a new bus into the CPU.
func (mc *CPU) Plumb(mem bus.Bus) {
	mc.mem = mem
}

// Reset puts the CPU into the documented power-on state: PC, I, R cleared,
// interrupts disabled, IM 0. Other registers hold 0xffff, as the real part
// does.
func (mc *CPU) Reset() {
	mc.A = 0xff
	mc.Status.Load(0xff)
	mc.SetBC(0xffff)
	mc.SetDE(0xffff)
	mc.SetHL(0xffff)
	mc.AltA = 0xff
	mc.AltStatus.Load(0xff)
	mc.AltB, mc.AltC = 0xff, 0xff
	mc.AltD, mc.AltE = 0xff, 0xff
	mc.AltH, mc.AltL = 0xff, 0xff
	mc.IX = 0xffff
	mc.IY = 0xffff
	mc.SP = 0xffff
	mc.PC = 0x0000
	mc.I = 0
	mc.R = 0
	mc.IFF1 = false
	mc.IFF2 = false
	mc.IM = 0
	mc.Halted = false
	mc.PendingINT = false
	mc.PendingNMI = false
	mc.EIDelay = false
	mc.LastResult = Result{}
}

func (mc *CPU) String() string {
	return fmt.Sprintf("PC=%04x SP=%04x AF=%04x BC=%04x DE=%04x HL=%04x IX=%04x IY=%04x [%s] IM%d",
		mc.PC, mc.SP, mc.AF(), mc.BC(), mc.DE(), mc.HL(), mc.IX, mc.IY, mc.Status, mc.IM)
}

// INT latches a maskable interrupt request, along with the byte the
// interrupting device will place on the data bus during the acknowledge
// cycle. The request is serviced at the next instruction boundary, provided
// interrupts are enabled.
func (mc *CPU) INT(data uint8) {
	mc.PendingINT = true
	mc.IntData = data
}

// ClearINT releases the interrupt request line. A device that has not been
// acknowledged yet withdraws its request this way.
func (mc *CPU) ClearINT() {
	mc.PendingINT = false
}

// NMI latches a non-maskable interrupt request. It is serviced at the next
// instruction boundary regardless of the interrupt flip-flops.
func (mc *CPU) NMI() {
	mc.PendingNMI = true
}

// fetchOpcode reads the next opcode byte. opcode fetches are M1 cycles so
// the refresh register increments, with bit 7 preserved.
func (mc *CPU) fetchOpcode() uint8 {
	mc.R = mc.R&0x80 | (mc.R+1)&0x7f
	v := mc.mem.Read(mc.PC)
	mc.PC++
	return v
}

// fetch reads an operand byte. not an M1 cycle; the refresh register is
// untouched.
func (mc *CPU) fetch() uint8 {
	v := mc.mem.Read(mc.PC)
	mc.PC++
	return v
}

func (mc *CPU) fetch16() uint16 {
	lo := mc.fetch()
	hi := mc.fetch()
	return uint16(hi)<<8 | uint16(lo)
}

func (mc *CPU) read16(address uint16) uint16 {
	lo := mc.mem.Read(address)
	hi := mc.mem.Read(address + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (mc *CPU) write16(address uint16, v uint16) {
	mc.mem.Write(address, uint8(v))
	mc.mem.Write(address+1, uint8(v>>8))
}

func (mc *CPU) push16(v uint16) {
	mc.SP--
	mc.mem.Write(mc.SP, uint8(v>>8))
	mc.SP--
	mc.mem.Write(mc.SP, uint8(v))
}

func (mc *CPU) pop16() uint16 {
	lo := mc.mem.Read(mc.SP)
	mc.SP++
	hi := mc.mem.Read(mc.SP)
	mc.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// ExecuteInstruction decodes and executes a single instruction, servicing
// any latched interrupt first. It returns the number of cycles consumed,
// which is also recorded in LastResult.
//
// Decoding never fails and never allocates. Opcodes without an assigned
// operation execute the documented fallback (see decode_ed.go).
func (mc *CPU) ExecuteInstruction() int {
	mc.LastResult.Address = mc.PC
	mc.LastResult.InterruptAck = false

	// interrupts are accepted at instruction boundaries only. an NMI beats a
	// maskable request
	if mc.PendingNMI {
		mc.PendingNMI = false
		cycles := mc.serviceNMI()
		mc.LastResult.Cycles = cycles
		mc.LastResult.InterruptAck = true
		return cycles
	}

	if mc.PendingINT && mc.IFF1 && !mc.EIDelay {
		mc.PendingINT = false
		cycles := mc.serviceINT()
		mc.LastResult.Cycles = cycles
		mc.LastResult.InterruptAck = true
		return cycles
	}

	// the instruction executed now is the one following EI, so interrupts
	// may be accepted at the next boundary
	mc.EIDelay = false

	if mc.Halted {
		// the halted CPU executes NOPs until an interrupt arrives
		mc.R = mc.R&0x80 | (mc.R+1)&0x7f
		mc.LastResult.Opcode = 0x76
		mc.LastResult.Cycles = 4
		return 4
	}

	mc.index = noIndex
	mc.indexedAddr = false

	cycles := 0
	opcode := mc.fetchOpcode()

	// the DD and FD prefixes select the index mode for the instruction that
	// follows. with repeated prefixes the last one wins, each costing 4
	// cycles
	for opcode == 0xdd || opcode == 0xfd {
		if opcode == 0xdd {
			mc.index = indexIX
		} else {
			mc.index = indexIY
		}
		cycles += 4
		opcode = mc.fetchOpcode()
	}

	switch opcode {
	case 0xcb:
		cycles += mc.executeCB()
	case 0xed:
		// an index prefix before ED has no effect
		mc.index = noIndex
		cycles += mc.executeED()
	default:
		if mc.index != noIndex && usesIndexedAddress(opcode) {
			// the displacement byte follows the opcode. for LD (IX+d),n the
			// immediate operand follows the displacement, which the decode
			// function picks up in the right order
			mc.indexedAddr = true
			mc.disp = int8(mc.fetch())
		}
		cycles += mc.executeMain(opcode)
	}

	mc.LastResult.Opcode = opcode
	mc.LastResult.Cycles = cycles

	return cycles
}

// usesIndexedAddress says whether a main page opcode addresses memory
// through (HL) and therefore needs a displacement byte in index mode. HALT
// (0x76) is the one opcode in the load group that does not.
func usesIndexedAddress(opcode uint8) bool {
	x := opcode >> 6
	y := (opcode >> 3) & 0x07
	z := opcode & 0x07

	switch x {
	case 0:
		// INC (HL), DEC (HL), LD (HL),n
		return y == 6 && z >= 4 && z <= 6
	case 1:
		// the 8 bit load group. LD (HL),(HL) does not exist - it is HALT
		return (y == 6) != (z == 6)
	case 2:
		// arithmetic on (HL)
		return z == 6
	}

	return false
}

// serviceNMI pushes the return address and jumps to the fixed NMI handler
// at 0x0066. IFF1 is preserved in IFF2 for RETN to restore.
func (mc *CPU) serviceNMI() int {
	mc.Halted = false
	mc.R = mc.R&0x80 | (mc.R+1)&0x7f
	mc.IFF2 = mc.IFF1
	mc.IFF1 = false
	mc.push16(mc.PC)
	mc.PC = 0x0066
	return 11
}

// serviceINT acknowledges a maskable interrupt according to the current
// interrupt mode.
func (mc *CPU) serviceINT() int {
	mc.Halted = false
	mc.R = mc.R&0x80 | (mc.R+1)&0x7f
	mc.IFF1 = false
	mc.IFF2 = false

	switch mc.IM {
	case 1:
		// RST 38h
		mc.push16(mc.PC)
		mc.PC = 0x0038
		return 13

	case 2:
		// vector through the table pointed to by I
		mc.push16(mc.PC)
		mc.PC = mc.read16(uint16(mc.I)<<8 | uint16(mc.IntData))
		return 19
	}

	// IM 0 executes the byte placed on the data bus. devices on this machine
	// only ever supply RST opcodes so other bytes fall back to RST 38h
	if mc.IntData&0xc7 == 0xc7 {
		mc.push16(mc.PC)
		mc.PC = uint16(mc.IntData & 0x38)
	} else {
		mc.push16(mc.PC)
		mc.PC = 0x0038
	}
	return 13
}
