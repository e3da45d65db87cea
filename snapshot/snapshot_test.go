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

package snapshot_test

import (
	"bytes"
	"testing"

	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/hardware/memory/memorymap"
	"github.com/kaipeter/gopher1013/snapshot"
	"github.com/kaipeter/gopher1013/television"
	"github.com/kaipeter/gopher1013/test"
)

// a monitor ROM that marches a counter through the whole address space,
// touching RAM and video RAM as it goes.
func marchROM() []uint8 {
	rom := make([]uint8, memorymap.ROMSize)
	copy(rom, []uint8{
		0x21, 0x00, 0xec, // LD HL,0xEC00
		0x3e, 0x00, //       LD A,0
		0x77,       //       LD (HL),A
		0x23,       //       INC HL
		0x3c,       //       INC A
		0x18, 0xfb, //       JR -5
	})
	return rom
}

func newTestMachine(t *testing.T, variant hardware.Variant) *hardware.Machine {
	t.Helper()

	mc, err := hardware.NewMachine(television.NewTelevision(), hardware.Config{
		Variant:    variant,
		MonitorROM: marchROM(),
		FontROM:    make([]uint8, memorymap.FontROMSize),
	})
	if err != nil {
		t.Fatal(err)
	}
	return mc
}

func TestRoundTrip(t *testing.T) {
	a := newTestMachine(t, hardware.Z1013_64)

	// run a few thousand instructions before saving
	if _, err := a.Exec(10000); err != nil {
		t.Fatal(err)
	}

	rec, err := snapshot.Save(a)
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(rec), snapshot.RecordSize(hardware.Z1013_64))

	b := newTestMachine(t, hardware.Z1013_64)
	err = snapshot.Load(rec, b)
	test.ExpectedSuccess(t, err)

	// a record saved from the restored machine is bit-identical
	rec2, err := snapshot.Save(b)
	test.ExpectedSuccess(t, err)
	if !bytes.Equal(rec, rec2) {
		t.Fatal("restored machine does not serialise to the same record")
	}

	// and the two machines execute identically from here on
	for i := 0; i < 20; i++ {
		if _, err := a.Exec(5000); err != nil {
			t.Fatal(err)
		}
		if _, err := b.Exec(5000); err != nil {
			t.Fatal(err)
		}
	}
	test.Equate(t, a.CPU.PC, b.CPU.PC)
	test.Equate(t, a.CPU.A, b.CPU.A)
	test.Equate(t, a.CPU.R, b.CPU.R)
	test.Equate(t, a.Video.Scanline, b.Video.Scanline)

	for i := range a.Mem.RAM {
		if a.Mem.RAM[i] != b.Mem.RAM[i] {
			t.Fatalf("RAM diverged at %04x", i)
		}
	}
}

func TestVersionMismatch(t *testing.T) {
	mc := newTestMachine(t, hardware.Z1013_16)

	rec, err := snapshot.Save(mc)
	test.ExpectedSuccess(t, err)

	rec[0] ^= 0xff
	err = snapshot.Load(rec, mc)
	test.ExpectedFailure(t, err)
}

func TestVariantMismatch(t *testing.T) {
	a := newTestMachine(t, hardware.Z1013_16)
	b := newTestMachine(t, hardware.Z1013_64)

	rec, err := snapshot.Save(a)
	test.ExpectedSuccess(t, err)

	err = snapshot.Load(rec, b)
	test.ExpectedFailure(t, err)
}

func TestBadRecordLeavesMachineUntouched(t *testing.T) {
	mc := newTestMachine(t, hardware.Z1013_64)
	if _, err := mc.Exec(3000); err != nil {
		t.Fatal(err)
	}

	before, err := snapshot.Save(mc)
	test.ExpectedSuccess(t, err)

	// truncated record
	err = snapshot.Load(before[:len(before)-100], mc)
	test.ExpectedFailure(t, err)

	// empty record
	err = snapshot.Load(nil, mc)
	test.ExpectedFailure(t, err)

	after, err := snapshot.Save(mc)
	test.ExpectedSuccess(t, err)
	if !bytes.Equal(before, after) {
		t.Fatal("failed load changed the machine")
	}
}
