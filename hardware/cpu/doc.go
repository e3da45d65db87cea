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

// Package cpu emulates the Z80/U880 processor of the Z1013.
//
// The CPU type steps the processor one instruction at a time with the
// ExecuteInstruction() function, which returns the number of cycles the
// instruction consumed according to the documented timing tables. Putting
// the function in a loop and ticking the other chips by the returned cycle
// count is the basis of the machine's execution schedule (see the hardware
// package).
//
// Maskable interrupts are latched with INT() and serviced at the next
// instruction boundary, honouring the interrupt enable flip-flops, the
// interrupt mode and the one instruction grace period after EI. NMI() is
// serviced unconditionally.
//
// All instruction pages are implemented: main, CB, ED, DD, FD, DDCB and
// FDCB, including the undocumented IXH/IXL register halves, the DDCB
// register-copy forms, SLL, and the undocumented flag bits 3 and 5. Opcodes
// with no assigned operation execute the documented fallback behaviour
// rather than failing: the emulated machine keeps running whatever the
// program does.
package cpu
