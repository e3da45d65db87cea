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

package cpu_test

import (
	"testing"

	"github.com/kaipeter/gopher1013/test"
)

func TestInterruptDisabled(t *testing.T) {
	mc, _ := newTestCPU(0x00, 0x00)

	// interrupts are disabled at power-on so the request stays latched
	mc.INT(0xff)
	step(t, mc, 4)
	test.Equate(t, mc.PC, 1)
	test.Equate(t, mc.LastResult.InterruptAck, false)
}

func TestInterruptMode1(t *testing.T) {
	// LD SP,0x8000 / IM 1 / EI / NOP / NOP
	mc, _ := newTestCPU(0x31, 0x00, 0x80, 0xed, 0x56, 0xfb, 0x00, 0x00)

	step(t, mc, 10)
	step(t, mc, 8)
	test.Equate(t, mc.IM, 1)

	mc.INT(0xff)

	// EI itself and the instruction after it are executed before the
	// request is accepted
	step(t, mc, 4)
	test.Equate(t, mc.LastResult.InterruptAck, false)
	step(t, mc, 4)
	test.Equate(t, mc.LastResult.InterruptAck, false)

	step(t, mc, 13)
	test.Equate(t, mc.LastResult.InterruptAck, true)
	test.Equate(t, mc.PC, 0x0038)
	test.Equate(t, mc.IFF1, false)
}

func TestInterruptMode2(t *testing.T) {
	// LD SP,0x8000 / IM 2 / LD A,0x40 / LD I,A / EI / NOP
	mc, mem := newTestCPU(0x31, 0x00, 0x80, 0xed, 0x5e, 0x3e, 0x40, 0xed, 0x47, 0xfb, 0x00)

	// vector table entry at 0x4010 points to the handler at 0x2000
	mem.ram[0x4010] = 0x00
	mem.ram[0x4011] = 0x20

	step(t, mc, 10)
	step(t, mc, 8)
	step(t, mc, 7)
	step(t, mc, 9)
	step(t, mc, 4) // EI

	mc.INT(0x10)
	step(t, mc, 4) // NOP, the EI grace instruction

	step(t, mc, 19)
	test.Equate(t, mc.PC, 0x2000)

	// return address on the stack is the instruction after the NOP
	test.Equate(t, mem.ram[0x7ffe], 0x0b)
	test.Equate(t, mem.ram[0x7fff], 0x00)
}

func TestNMI(t *testing.T) {
	// LD SP,0x8000 / NOP
	mc, _ := newTestCPU(0x31, 0x00, 0x80, 0x00)

	step(t, mc, 10)

	// NMI is taken regardless of IFF1
	mc.NMI()
	step(t, mc, 11)
	test.Equate(t, mc.PC, 0x0066)
	test.Equate(t, mc.LastResult.InterruptAck, true)
	test.Equate(t, mc.IFF1, false)
}

func TestHaltAndWake(t *testing.T) {
	// LD SP,0x8000 / IM 1 / EI / HALT
	mc, mem := newTestCPU(0x31, 0x00, 0x80, 0xed, 0x56, 0xfb, 0x76)

	step(t, mc, 10)
	step(t, mc, 8)
	step(t, mc, 4)
	step(t, mc, 4)
	test.Equate(t, mc.Halted, true)

	// the halted CPU burns 4 cycles per boundary without advancing PC
	step(t, mc, 4)
	step(t, mc, 4)
	test.Equate(t, mc.PC, 7)

	// an interrupt releases the halt. the pushed return address is the
	// instruction after HALT
	mc.INT(0xff)
	step(t, mc, 13)
	test.Equate(t, mc.Halted, false)
	test.Equate(t, mc.PC, 0x0038)
	test.Equate(t, mem.ram[0x7ffe], 0x07)
}

func TestRETN(t *testing.T) {
	// LD SP,0x8000 / EI / HALT, with RETN in the NMI handler at 0x0066
	mc, mem := newTestCPU(0x31, 0x00, 0x80, 0xfb, 0x76)
	mem.ram[0x0066] = 0xed
	mem.ram[0x0067] = 0x45

	step(t, mc, 10)
	step(t, mc, 4) // EI
	step(t, mc, 4) // HALT

	mc.NMI()
	step(t, mc, 11)
	test.Equate(t, mc.PC, 0x0066)
	test.Equate(t, mc.IFF1, false)
	test.Equate(t, mc.IFF2, true)

	// RETN restores IFF1 from IFF2
	step(t, mc, 14)
	test.Equate(t, mc.PC, 0x0005)
	test.Equate(t, mc.IFF1, true)
}
