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

// Package memorymap records the fixed points of the Z1013 address space.
//
// The 64k address space divides into main RAM from the bottom of memory,
// the 1k of video RAM at 0xec00 and the 2k monitor ROM at 0xf000. How much
// main RAM there is depends on the machine variant; the area between the
// top of RAM and the video RAM is unmapped and reads as 0xff.
//
// The I/O port space is decoded sparsely: the Z80 PIO occupies ports 0x00
// to 0x03 and the keyboard column latch is at port 0x08.
package memorymap

import "fmt"

// Area represents the different areas of the address space.
type Area int

func (a Area) String() string {
	switch a {
	case RAM:
		return "RAM"
	case VideoRAM:
		return "VideoRAM"
	case ROM:
		return "ROM"
	case Unmapped:
		return "Unmapped"
	}

	return "undefined"
}

// The different areas of the Z1013 address space.
const (
	Undefined Area = iota
	RAM
	VideoRAM
	ROM
	Unmapped
)

// The origin and memtop for the fixed areas of memory. The origin of main
// RAM is always zero; its memtop depends on the machine variant.
const (
	OriginRAM      = uint16(0x0000)
	OriginVideoRAM = uint16(0xec00)
	MemtopVideoRAM = uint16(0xefff)
	OriginROM      = uint16(0xf000)
	MemtopROM      = uint16(0xf7ff)
)

// Memtop is the top most address of the Z1013 address space.
const Memtop = uint16(0xffff)

// Sizes of the fixed memory areas and of the ROM images the machine
// requires at initialisation.
const (
	VideoRAMSize = 0x0400
	ROMSize      = 0x0800
	FontROMSize  = 0x0800
)

// The I/O ports decoded by the machine. The PIO register selection follows
// the chip's two select lines: port A/B in bit 0, data/control in bit 1.
const (
	PortPIOAData    = uint8(0x00)
	PortPIOBData    = uint8(0x01)
	PortPIOAControl = uint8(0x02)
	PortPIOBControl = uint8(0x03)
	PortKeyboard    = uint8(0x08)
)

// MapAddress returns the area an address falls within, given the memtop of
// main RAM for the machine variant being emulated.
func MapAddress(address uint16, ramTop uint16) Area {
	switch {
	case address <= ramTop:
		return RAM
	case address >= OriginVideoRAM && address <= MemtopVideoRAM:
		return VideoRAM
	case address >= OriginROM && address <= MemtopROM:
		return ROM
	}

	return Unmapped
}

// Summary returns a printable description of the memory map.
func Summary(ramTop uint16) string {
	return fmt.Sprintf("RAM: 0000-%04x / VideoRAM: %04x-%04x / ROM: %04x-%04x",
		ramTop, OriginVideoRAM, MemtopVideoRAM, OriginROM, MemtopROM)
}
