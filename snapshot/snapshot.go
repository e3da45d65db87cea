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

// Package snapshot serialises a complete machine to a flat binary record
// and back. The record is little endian, has a fixed size for a given
// machine variant and contains no internal pointers, so it can be written
// to disk and restored verbatim in a later session.
//
// Load validates the version, variant and size of a record before touching
// the machine; a machine handed a bad record is left exactly as it was.
// After a successful Load the machine continues as if it were the one that
// was saved: the next instruction executed is the same instruction, with
// the same cycle count, as the saved machine would have executed.
//
// The inserted tape is not part of the record; only the deck's playback
// position is. Restoring a record saved mid-load of a tape requires
// inserting the same tape again first.
package snapshot

import (
	"bytes"
	"encoding/binary"

	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/hardware/cpu"
	"github.com/kaipeter/gopher1013/hardware/memory/memorymap"
	"github.com/kaipeter/gopher1013/hardware/pio"
)

// Version of the record layout. Bumped whenever any record struct changes.
const Version = uint32(1)

type header struct {
	Version uint32
	Variant uint32
}

type cpuRecord struct {
	A, F, B, C, D, E, H, L                 uint8
	AltA, AltF, AltB, AltC, AltD, AltE     uint8
	AltH, AltL                             uint8
	IX, IY, SP, PC                         uint16
	I, R                                   uint8
	IFF1, IFF2, IM, Halted                 uint8
	PendingINT, IntData, PendingNMI        uint8
	EIDelay                                uint8
}

type videoRecord struct {
	Scanline    uint32
	FrameCycles int64
}

type pioPortRecord struct {
	Mode, Vector, IntMask, IOSelect, Output               uint8
	IntEnabled, IntAndMode, IntHigh                       uint8
	ExpectIOSelect, ExpectIntMask, LastCondition, Pending uint8
}

type keyboardRecord struct {
	Column, HighNibble uint8
	Held               [8][8]uint8
}

type tapeRecord struct {
	Index     uint32
	Remaining int64
	Level     uint8
	Playing   uint8
}

// the exec pacing state. without it a restored machine would slice its
// cycle budgets differently from the saved one and the instruction streams
// would drift apart.
type timingRecord struct {
	Overshoot      int64
	ClockRemainder int64
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func byteBool(v uint8) bool {
	return v != 0
}

// RecordSize returns the size in bytes of a record for the given variant.
func RecordSize(variant hardware.Variant) int {
	return binary.Size(header{}) +
		binary.Size(cpuRecord{}) +
		variant.RAMSize() + memorymap.VideoRAMSize +
		binary.Size(videoRecord{}) +
		2*binary.Size(pioPortRecord{}) +
		binary.Size(keyboardRecord{}) +
		binary.Size(tapeRecord{}) +
		binary.Size(timingRecord{})
}

// Save serialises the machine into a fresh record.
func Save(mc *hardware.Machine) ([]byte, error) {
	b := &bytes.Buffer{}
	b.Grow(RecordSize(mc.Variant()))

	w := func(v interface{}) {
		// writing to a bytes.Buffer cannot fail and every record field is
		// of a fixed size type
		_ = binary.Write(b, binary.LittleEndian, v)
	}

	w(header{Version: Version, Variant: uint32(mc.Variant())})
	w(saveCPU(mc.CPU))
	w(mc.Mem.RAM)
	w(mc.Mem.VideoRAM)
	w(videoRecord{
		Scanline:    uint32(mc.Video.Scanline),
		FrameCycles: mc.Video.FrameCycles,
	})
	w(savePort(&mc.PIO.PortA))
	w(savePort(&mc.PIO.PortB))
	w(keyboardRecord{
		Column:     mc.Keyboard.Column,
		HighNibble: boolByte(mc.Keyboard.HighNibble),
		Held:       mc.Keyboard.Held,
	})
	w(tapeRecord{
		Index:     uint32(mc.Deck.Index),
		Remaining: mc.Deck.Remaining,
		Level:     boolByte(mc.Deck.Level),
		Playing:   boolByte(mc.Deck.Playing),
	})
	w(timingRecord{
		Overshoot:      mc.Overshoot,
		ClockRemainder: mc.Clock.Remainder,
	})

	return b.Bytes(), nil
}

// Load restores the machine from a record made by Save. The record must
// have been made by the same version of the codec from a machine of the
// same variant; anything else is rejected with the machine untouched.
func Load(data []byte, mc *hardware.Machine) error {
	b := bytes.NewReader(data)

	var hdr header
	if err := binary.Read(b, binary.LittleEndian, &hdr); err != nil {
		return curated.Errorf("snapshot: record too small for the header")
	}
	if hdr.Version != Version {
		return curated.Errorf("snapshot: record version %d, want %d", hdr.Version, Version)
	}
	if hdr.Variant != uint32(mc.Variant()) {
		return curated.Errorf("snapshot: record is for a %s, machine is a %s",
			hardware.Variant(hdr.Variant), mc.Variant())
	}
	if len(data) != RecordSize(mc.Variant()) {
		return curated.Errorf("snapshot: record is %d bytes, want %d", len(data), RecordSize(mc.Variant()))
	}

	var cpuRec cpuRecord
	ram := make([]uint8, mc.Variant().RAMSize())
	vram := make([]uint8, memorymap.VideoRAMSize)
	var vidRec videoRecord
	var portA, portB pioPortRecord
	var kbdRec keyboardRecord
	var tapeRec tapeRecord
	var timRec timingRecord

	for _, v := range []interface{}{&cpuRec, ram, vram, &vidRec, &portA, &portB, &kbdRec, &tapeRec, &timRec} {
		if err := binary.Read(b, binary.LittleEndian, v); err != nil {
			return curated.Errorf("snapshot: %v", err)
		}
	}

	// the record has been read in full. only now does the machine change
	loadCPU(mc.CPU, &cpuRec)
	copy(mc.Mem.RAM, ram)
	copy(mc.Mem.VideoRAM, vram)
	mc.Video.Scanline = int(vidRec.Scanline)
	mc.Video.FrameCycles = vidRec.FrameCycles
	loadPort(&mc.PIO.PortA, &portA)
	loadPort(&mc.PIO.PortB, &portB)
	mc.Keyboard.Column = kbdRec.Column
	mc.Keyboard.HighNibble = byteBool(kbdRec.HighNibble)
	mc.Keyboard.Held = kbdRec.Held
	mc.Deck.Index = int(tapeRec.Index)
	mc.Deck.Remaining = tapeRec.Remaining
	mc.Deck.Level = byteBool(tapeRec.Level)
	mc.Deck.Playing = byteBool(tapeRec.Playing)
	mc.Overshoot = timRec.Overshoot
	mc.Clock.Remainder = timRec.ClockRemainder

	mc.Plumb()

	return nil
}

func saveCPU(c *cpu.CPU) cpuRecord {
	return cpuRecord{
		A: c.A, F: c.Status.Value(), B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		AltA: c.AltA, AltF: c.AltStatus.Value(), AltB: c.AltB, AltC: c.AltC,
		AltD: c.AltD, AltE: c.AltE, AltH: c.AltH, AltL: c.AltL,
		IX: c.IX, IY: c.IY, SP: c.SP, PC: c.PC,
		I: c.I, R: c.R,
		IFF1: boolByte(c.IFF1), IFF2: boolByte(c.IFF2), IM: c.IM, Halted: boolByte(c.Halted),
		PendingINT: boolByte(c.PendingINT), IntData: c.IntData,
		PendingNMI: boolByte(c.PendingNMI), EIDelay: boolByte(c.EIDelay),
	}
}

func loadCPU(c *cpu.CPU, r *cpuRecord) {
	c.A = r.A
	c.Status.Load(r.F)
	c.B, c.C, c.D, c.E, c.H, c.L = r.B, r.C, r.D, r.E, r.H, r.L
	c.AltA = r.AltA
	c.AltStatus.Load(r.AltF)
	c.AltB, c.AltC, c.AltD, c.AltE, c.AltH, c.AltL = r.AltB, r.AltC, r.AltD, r.AltE, r.AltH, r.AltL
	c.IX, c.IY, c.SP, c.PC = r.IX, r.IY, r.SP, r.PC
	c.I, c.R = r.I, r.R
	c.IFF1, c.IFF2 = byteBool(r.IFF1), byteBool(r.IFF2)
	c.IM = r.IM
	c.Halted = byteBool(r.Halted)
	c.PendingINT = byteBool(r.PendingINT)
	c.IntData = r.IntData
	c.PendingNMI = byteBool(r.PendingNMI)
	c.EIDelay = byteBool(r.EIDelay)
}

func savePort(pt *pio.Port) pioPortRecord {
	return pioPortRecord{
		Mode: pt.Mode, Vector: pt.Vector, IntMask: pt.IntMask,
		IOSelect: pt.IOSelect, Output: pt.Output,
		IntEnabled: boolByte(pt.IntEnabled), IntAndMode: boolByte(pt.IntAndMode),
		IntHigh:        boolByte(pt.IntHigh),
		ExpectIOSelect: boolByte(pt.ExpectIOSelect), ExpectIntMask: boolByte(pt.ExpectIntMask),
		LastCondition:  boolByte(pt.LastCondition), Pending: boolByte(pt.IntPending),
	}
}

func loadPort(pt *pio.Port, r *pioPortRecord) {
	pt.Mode = r.Mode
	pt.Vector = r.Vector
	pt.IntMask = r.IntMask
	pt.IOSelect = r.IOSelect
	pt.Output = r.Output
	pt.IntEnabled = byteBool(r.IntEnabled)
	pt.IntAndMode = byteBool(r.IntAndMode)
	pt.IntHigh = byteBool(r.IntHigh)
	pt.ExpectIOSelect = byteBool(r.ExpectIOSelect)
	pt.ExpectIntMask = byteBool(r.ExpectIntMask)
	pt.LastCondition = byteBool(r.LastCondition)
	pt.IntPending = byteBool(r.Pending)
}
