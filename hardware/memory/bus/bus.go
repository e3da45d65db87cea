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

// Package bus defines the memory bus interfaces as seen from the different
// components of the emulated machine.
//
// The CPU sees the full 64k address space through CPUBus and the 256 port
// I/O space through PortBus. Reads of unmapped memory and unclaimed ports
// return the fill value 0xff - the Z1013 data bus floats high - and writes
// to unmapped memory or ROM are discarded. None of the access functions can
// fail; the emulated machine keeps running in the face of any access the
// running program cares to make, just like the real hardware.
package bus

// CPUBus defines the operations for the memory system when accessed from the
// CPU. The memory package implements this interface and dispatches the
// address to the correct memory area - the CPU need not care which area it
// is accessing.
type CPUBus interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// PortBus defines the operations for the Z80 I/O port space. The low byte of
// the address argument is the port number as decoded by the Z1013 hardware;
// the high byte is whatever the instruction left on A8-A15.
type PortBus interface {
	ReadPort(address uint16) uint8
	WritePort(address uint16, data uint8)
}

// Bus is the combination of memory and port access required by the CPU.
type Bus interface {
	CPUBus
	PortBus
}

// PortDevice is implemented by peripherals that claim one or more ports in
// the I/O space. The port argument is the full 16 bit port address.
type PortDevice interface {
	ReadPort(port uint16) uint8
	WritePort(port uint16, data uint8)
}

// The fill value returned for unmapped reads. The data bus lines are pulled
// high on the real machine.
const FillValue = uint8(0xff)
