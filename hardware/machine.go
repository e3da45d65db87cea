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

// Package hardware assembles the chips of the Z1013 into a complete
// machine. The Machine type owns the CPU, the memory, the character
// generator, the PIO, the keyboard matrix and the tape deck, and drives
// them all from the Exec function.
//
// There is no global state anywhere in the machine. Multiple Machine
// instances can coexist, and replacing a machine with a freshly created
// one is the supported way of changing variant or ROMs.
package hardware

import (
	"fmt"
	"strings"

	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware/clocks"
	"github.com/kaipeter/gopher1013/hardware/cpu"
	"github.com/kaipeter/gopher1013/hardware/keyboard"
	"github.com/kaipeter/gopher1013/hardware/memory"
	"github.com/kaipeter/gopher1013/hardware/memory/memorymap"
	"github.com/kaipeter/gopher1013/hardware/pio"
	"github.com/kaipeter/gopher1013/hardware/tape"
	"github.com/kaipeter/gopher1013/hardware/video"
	"github.com/kaipeter/gopher1013/logger"
	"github.com/kaipeter/gopher1013/television"
)

// Variant identifies which model of the Z1013 to emulate.
type Variant uint32

// The Z1013 models. The original Z1013.01 runs at half speed with 16k of
// RAM and the membrane keyboard; the Z1013.16 adds the faster clock and a
// proper keyboard; the Z1013.64 fills out the RAM.
const (
	Z1013_01 Variant = iota
	Z1013_16
	Z1013_64
)

func (v Variant) String() string {
	switch v {
	case Z1013_01:
		return "Z1013.01"
	case Z1013_16:
		return "Z1013.16"
	case Z1013_64:
		return "Z1013.64"
	}
	return "undefined"
}

// ParseVariant converts a model name, as given on the command line, to a
// Variant value.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Z1013.01", "Z1013_01", "01":
		return Z1013_01, nil
	case "Z1013.16", "Z1013_16", "16":
		return Z1013_16, nil
	case "Z1013.64", "Z1013_64", "64":
		return Z1013_64, nil
	}
	return Z1013_64, curated.Errorf("machine: unrecognised model [%s]", s)
}

// Hz returns the CPU clock rate of the variant.
func (v Variant) Hz() int64 {
	if v == Z1013_01 {
		return clocks.HzSlow
	}
	return clocks.HzFast
}

// RAMSize returns the amount of main RAM fitted to the variant.
func (v Variant) RAMSize() int {
	if v == Z1013_64 {
		return 0x10000
	}
	return 0x4000
}

// Matrix returns the keyboard matrix fitted to the variant.
func (v Variant) Matrix() keyboard.Matrix {
	if v == Z1013_01 {
		return keyboard.Matrix8x4
	}
	return keyboard.Matrix8x8
}

// Config gathers everything needed to build a Machine.
type Config struct {
	Variant Variant

	// the monitor and font ROM images. sizes are validated by NewMachine
	MonitorROM []uint8
	FontROM    []uint8
}

// Machine is the complete Z1013.
type Machine struct {
	TV *television.Television

	CPU      *cpu.CPU
	Mem      *memory.Memory
	Video    *video.Video
	PIO      *pio.PIO
	Keyboard *keyboard.Keyboard
	Deck     *tape.Deck
	Clock    *clocks.Clock

	variant Variant

	// Overshoot is the number of cycles the last Exec ran past its budget.
	// the debt is paid off at the start of the next call, keeping long run
	// averages exact
	Overshoot int64

	discarded bool
}

// NewMachine is the preferred method of initialisation for the Machine
// type.
func NewMachine(tv *television.Television, config Config) (*Machine, error) {
	if config.Variant > Z1013_64 {
		return nil, curated.Errorf("machine: undefined variant [%d]", config.Variant)
	}

	mem, err := memory.NewMemory(config.Variant.RAMSize(), config.MonitorROM)
	if err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}

	vid, err := video.NewVideo(tv, mem, config.FontROM, config.Variant.Hz()/television.FramesPerSecond)
	if err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}

	mc := &Machine{
		TV:       tv,
		Mem:      mem,
		Video:    vid,
		PIO:      pio.NewPIO(),
		Keyboard: keyboard.NewKeyboard(config.Variant.Matrix()),
		Deck:     tape.NewDeck(config.Variant.Hz()),
		Clock:    clocks.NewClock(config.Variant.Hz()),
		variant:  config.Variant,
	}
	mc.CPU = cpu.NewCPU(mem)
	mc.plumb()
	mc.Reset()

	logger.Log("machine", fmt.Sprintf("%s: %s", config.Variant, mem))

	return mc, nil
}

// Variant returns the model of Z1013 being emulated.
func (mc *Machine) Variant() Variant {
	return mc.variant
}

// plumb wires the chips together: the port space decoding and the PIO pin
// connections. Called at creation and again after a snapshot restore.
func (mc *Machine) plumb() {
	mc.CPU.Plumb(mc.Mem)
	mc.Video.Plumb(mc.TV, mc.Mem)

	for p := memorymap.PortPIOAData; p <= memorymap.PortPIOBControl; p++ {
		mc.Mem.AttachPort(p, mc.PIO)
	}
	mc.Mem.AttachPort(memorymap.PortKeyboard, mc.Keyboard)

	// PIO port B reads the keyboard lines in its low nibble and the tape
	// level on bit 7. bit 4 of the output drives the high nibble select of
	// the 8x8 keyboard
	inB := func() uint8 {
		v := mc.Keyboard.Lines() | 0x70
		if mc.Deck.Level {
			v |= 0x80
		}
		return v
	}
	outB := func(data uint8) {
		mc.Keyboard.HighNibble = data&0x10 == 0x10
	}
	mc.PIO.Plumb(nil, nil, inB, outB)
}

// Snapshot creates a copy of the machine in its current state. The copy
// shares the television, ROMs and inserted tape with the original.
func (mc *Machine) Snapshot() *Machine {
	n := *mc
	n.CPU = mc.CPU.Snapshot()
	n.Mem = mc.Mem.Snapshot()
	n.Video = mc.Video.Snapshot()
	n.PIO = mc.PIO.Snapshot()
	n.Keyboard = mc.Keyboard.Snapshot()
	n.Deck = mc.Deck.Snapshot()
	n.Clock = mc.Clock.Snapshot()
	n.plumb()
	return &n
}

// Plumb rewires the machine after its chips have been replaced wholesale,
// as happens when a snapshot is restored.
func (mc *Machine) Plumb() {
	mc.Mem.Plumb()
	mc.plumb()
}

// Reset the machine as the reset button would. Memory contents survive; the
// CPU restarts in the monitor.
func (mc *Machine) Reset() {
	mc.CPU.Reset()
	mc.PIO.Reset()
	mc.Video.Reset()
	mc.Keyboard.Reset()
	mc.Overshoot = 0
	mc.Clock.Reset()

	// the reset circuit of the Z1013 starts execution at the monitor ROM
	// rather than address zero
	mc.CPU.PC = memorymap.OriginROM
}

// sentinel error returned by Exec after the machine has been discarded.
const MachineDiscarded = "machine: discarded"

// Exec runs the machine for the given stretch of host time, returning the
// number of CPU cycles that were executed. Instructions are atomic: the
// last one may run past the cycle budget, with the overshoot deducted from
// the next call.
func (mc *Machine) Exec(micros int64) (int64, error) {
	if mc.discarded {
		return 0, curated.Errorf(MachineDiscarded)
	}

	budget := mc.Clock.Cycles(micros) - mc.Overshoot

	var consumed int64
	for consumed < budget {
		cycles := mc.CPU.ExecuteInstruction()
		consumed += int64(cycles)

		mc.Deck.Tick(cycles)
		mc.PIO.Scan()
		if v, ok := mc.PIO.PendingVector(); ok {
			mc.CPU.INT(v)
		}

		if err := mc.Video.Step(cycles); err != nil {
			return consumed, curated.Errorf("machine: %v", err)
		}
	}

	mc.Overshoot = consumed - budget

	if s := mc.Deck.DrainAudio(); len(s) > 0 {
		if err := mc.TV.SetAudio(s); err != nil {
			return consumed, curated.Errorf("machine: %v", err)
		}
	}

	return consumed, nil
}

// KeyDown presses a key on the machine's keyboard.
func (mc *Machine) KeyDown(code rune) {
	mc.Keyboard.KeyDown(code)
}

// KeyUp releases a key on the machine's keyboard.
func (mc *Machine) KeyUp(code rune) {
	mc.Keyboard.KeyUp(code)
}

// Discard releases the machine. Safe to call more than once; every call
// after the first is a no-op. A discarded machine returns an error from
// Exec.
func (mc *Machine) Discard() {
	if mc.discarded {
		return
	}
	mc.discarded = true
	mc.Deck.Eject()
	_ = mc.TV.End()
}
