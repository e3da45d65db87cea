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

package hardware_test

import (
	"testing"

	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/hardware/memory/memorymap"
	"github.com/kaipeter/gopher1013/television"
	"github.com/kaipeter/gopher1013/test"
)

// a monitor ROM that spins on the spot. JR -2 takes 12 cycles.
func spinROM() []uint8 {
	rom := make([]uint8, memorymap.ROMSize)
	rom[0] = 0x18
	rom[1] = 0xfe
	return rom
}

func newTestMachine(t *testing.T, variant hardware.Variant) *hardware.Machine {
	t.Helper()

	mc, err := hardware.NewMachine(television.NewTelevision(), hardware.Config{
		Variant:    variant,
		MonitorROM: spinROM(),
		FontROM:    make([]uint8, memorymap.FontROMSize),
	})
	if err != nil {
		t.Fatal(err)
	}
	return mc
}

func TestBadConfig(t *testing.T) {
	_, err := hardware.NewMachine(television.NewTelevision(), hardware.Config{
		Variant:    hardware.Z1013_64 + 1,
		MonitorROM: spinROM(),
		FontROM:    make([]uint8, memorymap.FontROMSize),
	})
	test.ExpectedFailure(t, err)

	_, err = hardware.NewMachine(television.NewTelevision(), hardware.Config{
		Variant:    hardware.Z1013_64,
		MonitorROM: spinROM()[:16],
		FontROM:    make([]uint8, memorymap.FontROMSize),
	})
	test.ExpectedFailure(t, err)
}

func TestResetEntersMonitor(t *testing.T) {
	mc := newTestMachine(t, hardware.Z1013_64)
	test.Equate(t, mc.CPU.PC, memorymap.OriginROM)

	if _, err := mc.Exec(100); err != nil {
		t.Fatal(err)
	}

	// the spin loop never leaves the first two bytes of ROM
	if mc.CPU.PC != memorymap.OriginROM && mc.CPU.PC != memorymap.OriginROM+2 {
		t.Fatalf("PC escaped the spin loop: %04x", mc.CPU.PC)
	}
}

func TestExecBudget(t *testing.T) {
	mc := newTestMachine(t, hardware.Z1013_64)

	// 1000µs at 2MHz is 2000 cycles. the loop instruction is 12 cycles so
	// the machine overshoots by less than one instruction
	consumed, err := mc.Exec(1000)
	if err != nil {
		t.Fatal(err)
	}
	if consumed < 2000 || consumed >= 2012 {
		t.Fatalf("consumed %d cycles for a 2000 cycle budget", consumed)
	}
}

func TestExecNoDrift(t *testing.T) {
	for _, variant := range []hardware.Variant{hardware.Z1013_01, hardware.Z1013_64} {
		mc := newTestMachine(t, variant)

		// a second of time in frame sized slices. the total cycle count
		// must match the clock rate to within the final overshoot, which
		// is less than one instruction
		var total int64
		for i := 0; i < 50; i++ {
			consumed, err := mc.Exec(20000)
			if err != nil {
				t.Fatal(err)
			}
			total += consumed
		}

		hz := variant.Hz()
		if total < hz || total >= hz+12 {
			t.Fatalf("%s: %d cycles in one second at %dHz", variant, total, hz)
		}
	}
}

func TestFramesGenerated(t *testing.T) {
	mc := newTestMachine(t, hardware.Z1013_16)

	// a second of emulation produces the nominal frame rate
	for i := 0; i < 100; i++ {
		if _, err := mc.Exec(10000); err != nil {
			t.Fatal(err)
		}
	}
	test.Equate(t, mc.TV.FrameNum(), television.FramesPerSecond)
}

func TestKeyboardThroughPorts(t *testing.T) {
	mc := newTestMachine(t, hardware.Z1013_64)

	// 'A' sits at column 0, line 2. select the column through the latch
	// port and read the lines through PIO port B
	mc.KeyDown('A')
	mc.Mem.WritePort(uint16(memorymap.PortKeyboard), 0)
	test.Equate(t, mc.Mem.ReadPort(uint16(memorymap.PortPIOBData)), 0x7b)

	mc.KeyUp('A')
	test.Equate(t, mc.Mem.ReadPort(uint16(memorymap.PortPIOBData)), 0x7f)
}

func TestDeterminism(t *testing.T) {
	a := newTestMachine(t, hardware.Z1013_64)
	b := newTestMachine(t, hardware.Z1013_64)

	for i := 0; i < 10; i++ {
		if _, err := a.Exec(5000); err != nil {
			t.Fatal(err)
		}
		if _, err := b.Exec(5000); err != nil {
			t.Fatal(err)
		}
	}

	test.Equate(t, a.CPU.PC, b.CPU.PC)
	test.Equate(t, a.CPU.R, b.CPU.R)
	test.Equate(t, a.Video.Scanline, b.Video.Scanline)
}

func TestDiscard(t *testing.T) {
	mc := newTestMachine(t, hardware.Z1013_64)

	mc.Discard()
	_, err := mc.Exec(1000)
	test.ExpectedFailure(t, err)

	// discarding again is a no-op
	mc.Discard()
}
