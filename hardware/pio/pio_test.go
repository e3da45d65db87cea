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

package pio_test

import (
	"testing"

	"github.com/kaipeter/gopher1013/hardware/pio"
	"github.com/kaipeter/gopher1013/test"
)

func TestModeWord(t *testing.T) {
	p := pio.NewPIO()

	// output mode for port A
	p.WritePort(pio.RegAControl, 0x0f)
	test.Equate(t, int(p.PortA.Mode), pio.ModeOutput)

	p.WritePort(pio.RegAData, 0x42)
	test.Equate(t, p.ReadPort(pio.RegAData), 0x42)
}

func TestControlModeIOSelect(t *testing.T) {
	p := pio.NewPIO()

	var level uint8
	p.Plumb(nil, nil, func() uint8 { return 0x8f }, func(v uint8) { level = v })

	// control mode. the next control write is the I/O select: low nibble
	// and bit 7 input, the rest output
	p.WritePort(pio.RegBControl, 0xcf)
	test.Equate(t, int(p.PortB.Mode), pio.ModeControl)
	p.WritePort(pio.RegBControl, 0x8f)

	// output bits come from the data latch, input bits from the pins
	p.WritePort(pio.RegBData, 0x70)
	test.Equate(t, level, 0x70)
	test.Equate(t, p.ReadPort(pio.RegBData), 0xff)

	p.WritePort(pio.RegBData, 0x10)
	test.Equate(t, p.ReadPort(pio.RegBData), 0x9f)
}

func TestInterruptVectorAndMask(t *testing.T) {
	p := pio.NewPIO()

	var pins uint8 = 0x00
	p.Plumb(nil, nil, func() uint8 { return pins }, nil)

	p.WritePort(pio.RegBControl, 0xcf) // control mode
	p.WritePort(pio.RegBControl, 0xff) // all pins input
	p.WritePort(pio.RegBControl, 0x20) // vector
	p.WritePort(pio.RegBControl, 0xb7) // int enable, OR, high, mask follows
	p.WritePort(pio.RegBControl, 0xfe) // monitor pin 0 only

	p.Scan()
	_, ok := p.PendingVector()
	test.Equate(t, ok, false)

	pins = 0x01
	p.Scan()
	v, ok := p.PendingVector()
	test.Equate(t, ok, true)
	test.Equate(t, v, 0x20)

	// level interrupts are edge detected: no new request until the
	// condition has gone away and come back
	p.Scan()
	_, ok = p.PendingVector()
	test.Equate(t, ok, false)

	pins = 0x00
	p.Scan()
	pins = 0x01
	p.Scan()
	_, ok = p.PendingVector()
	test.Equate(t, ok, true)
}

func TestControlRegisterIsWriteOnly(t *testing.T) {
	p := pio.NewPIO()
	test.Equate(t, p.ReadPort(pio.RegAControl), 0xff)
	test.Equate(t, p.ReadPort(pio.RegBControl), 0xff)
}

func TestSnapshotDropsCallbacks(t *testing.T) {
	p := pio.NewPIO()
	p.Plumb(nil, nil, func() uint8 { return 0x12 }, nil)

	snap := p.Snapshot()

	// unplumbed pins float high
	test.Equate(t, snap.ReadPort(pio.RegBData), 0xff)
	test.Equate(t, p.ReadPort(pio.RegBData), 0x12)
}
