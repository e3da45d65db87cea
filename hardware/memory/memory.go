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

// Package memory implements the address space of the Z1013. Every CPU
// access is dispatched through a page table of 256 byte pages, making the
// cost of a read or write constant regardless of which area the address
// falls in.
//
// The page tables are rebuilt whole and swapped in one assignment, so the
// CPU never observes a half applied mapping.
package memory

import (
	"fmt"

	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware/memory/bus"
	"github.com/kaipeter/gopher1013/hardware/memory/memorymap"
)

// the address space divides into 256 pages of 256 bytes. a page table entry
// is a slice over the backing area, or nil for unmapped (reads return the
// fill value, writes are discarded).
const (
	numPages = 256
	pageSize = 256
)

type pageTable [numPages][]uint8

// Memory is the address and port space of the Z1013.
type Memory struct {
	// the backing areas. RAM size depends on the machine variant. ROM is
	// never written through the page tables and is shared between snapshots.
	RAM      []uint8
	VideoRAM []uint8
	ROM      []uint8

	read  *pageTable
	write *pageTable

	// peripherals claiming ports in the I/O space, indexed by the low byte
	// of the port address. the Z1013 does not decode A8-A15 for I/O.
	ports [256]bus.PortDevice
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The ROM image must be exactly the size of the monitor ROM area.
func NewMemory(ramSize int, rom []uint8) (*Memory, error) {
	if ramSize <= 0 || ramSize > 0x10000 || ramSize%pageSize != 0 {
		return nil, curated.Errorf("memory: unsupported RAM size [%d]", ramSize)
	}
	if len(rom) != memorymap.ROMSize {
		return nil, curated.Errorf("memory: ROM image is %d bytes, expected %d", len(rom), memorymap.ROMSize)
	}

	mem := &Memory{
		RAM:      make([]uint8, ramSize),
		VideoRAM: make([]uint8, memorymap.VideoRAMSize),
		ROM:      rom,
	}
	mem.buildPageTables()

	return mem, nil
}

// Snapshot creates a copy of the memory in its current state. The ROM area
// is shared with the copy rather than duplicated.
func (mem *Memory) Snapshot() *Memory {
	n := *mem
	n.RAM = make([]uint8, len(mem.RAM))
	copy(n.RAM, mem.RAM)
	n.VideoRAM = make([]uint8, len(mem.VideoRAM))
	copy(n.VideoRAM, mem.VideoRAM)
	n.buildPageTables()
	return &n
}

// Plumb rebuilds the page tables over the current backing areas. Must be
// called after the backing slices have been replaced wholesale, as happens
// when restoring a snapshot.
func (mem *Memory) Plumb() {
	mem.buildPageTables()
}

// buildPageTables maps the fixed areas of the Z1013 address space into
// fresh page tables and swaps them in.
func (mem *Memory) buildPageTables() {
	read := &pageTable{}
	write := &pageTable{}

	mapRange(read, memorymap.OriginRAM, mem.RAM)
	mapRange(write, memorymap.OriginRAM, mem.RAM)
	mapRange(read, memorymap.OriginVideoRAM, mem.VideoRAM)
	mapRange(write, memorymap.OriginVideoRAM, mem.VideoRAM)

	// ROM appears in the read table only. writes to the ROM area fall
	// through to the nil entry in the write table and are discarded
	mapRange(read, memorymap.OriginROM, mem.ROM)

	mem.read = read
	mem.write = write
}

func mapRange(tbl *pageTable, origin uint16, backing []uint8) {
	for o := 0; o < len(backing); o += pageSize {
		tbl[(int(origin)+o)>>8] = backing[o : o+pageSize]
	}
}

// RAMTop returns the last address of main RAM for the mapped variant.
func (mem *Memory) RAMTop() uint16 {
	return uint16(len(mem.RAM) - 1)
}

// Read is an implementation of the bus.CPUBus interface.
func (mem *Memory) Read(address uint16) uint8 {
	p := mem.read[address>>8]
	if p == nil {
		return bus.FillValue
	}
	return p[address&0xff]
}

// Write is an implementation of the bus.CPUBus interface.
func (mem *Memory) Write(address uint16, data uint8) {
	p := mem.write[address>>8]
	if p == nil {
		return
	}
	p[address&0xff] = data
}

// AttachPort registers a peripheral as the owner of a port in the I/O
// space. Later attachments replace earlier ones.
func (mem *Memory) AttachPort(port uint8, dev bus.PortDevice) {
	mem.ports[port] = dev
}

// ReadPort is an implementation of the bus.PortBus interface.
func (mem *Memory) ReadPort(address uint16) uint8 {
	if d := mem.ports[address&0xff]; d != nil {
		return d.ReadPort(address)
	}
	return bus.FillValue
}

// WritePort is an implementation of the bus.PortBus interface.
func (mem *Memory) WritePort(address uint16, data uint8) {
	if d := mem.ports[address&0xff]; d != nil {
		d.WritePort(address, data)
	}
}

// Reset contents of memory. ROM and port attachments are untouched.
func (mem *Memory) Reset() {
	for i := range mem.RAM {
		mem.RAM[i] = 0x00
	}
	for i := range mem.VideoRAM {
		mem.VideoRAM[i] = 0x00
	}
}

func (mem *Memory) String() string {
	return fmt.Sprintf("%s (%dk RAM)", memorymap.Summary(mem.RAMTop()), len(mem.RAM)/1024)
}
