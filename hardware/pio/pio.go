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

// Package pio emulates the Z80 PIO (U855) of the Z1013. The chip provides
// two 8 bit ports, each with a data and a control register, selected by the
// low two address lines.
//
// On the Z1013, port B carries the keyboard lines in its low nibble, the
// high nibble select for the 8x8 keyboard on bit 4, and the tape lines on
// bit 7. Port A is the user port and is unconnected in the base machine.
//
// The connection to the rest of the machine is through the InputFunc and
// OutputFunc callbacks, wired up by the hardware package. Callbacks are not
// carried by snapshots and must be re-established with Plumb.
package pio

// Register selection, from the low two bits of the port address.
const (
	RegAData = iota
	RegBData
	RegAControl
	RegBControl
)

// The operating modes of a PIO port.
const (
	ModeOutput = iota
	ModeInput
	ModeBidirectional
	ModeControl
)

// InputFunc supplies the level of a port's input pins.
type InputFunc func() uint8

// OutputFunc is handed the level of a port's output pins whenever the
// running program writes the data register.
type OutputFunc func(uint8)

// Port is one half of the PIO.
type Port struct {
	Mode   uint8
	Vector uint8

	// IntEnabled and the condition bits from the last interrupt control
	// word. IntMask selects the monitored pins in control mode, a zero bit
	// meaning monitored
	IntEnabled bool
	IntAndMode bool
	IntHigh    bool
	IntMask    uint8

	// IOSelect gives the pin directions in control mode, a set bit meaning
	// input
	IOSelect uint8

	// Output is the data register latch
	Output uint8

	// the control register is a small state machine: after a mode 3 word
	// the next control write is the I/O select, after an interrupt control
	// word with bit 4 set it is the mask
	ExpectIOSelect bool
	ExpectIntMask  bool

	// LastCondition is the interrupt condition level at the last scan, for
	// edge detection
	LastCondition bool

	// IntPending is set when the monitored condition becomes true and is
	// cleared when the orchestrator takes the vector
	IntPending bool

	input  InputFunc
	output OutputFunc
}

// PIO is the Z80 PIO of the Z1013.
type PIO struct {
	PortA Port
	PortB Port
}

// NewPIO is the preferred method of initialisation for the PIO type.
func NewPIO() *PIO {
	p := &PIO{}
	p.Reset()
	return p
}

// Plumb the ports of the PIO into the machine. Any callback may be nil, in
// which case the input pins read as 0xff and output levels are dropped.
func (p *PIO) Plumb(inA InputFunc, outA OutputFunc, inB InputFunc, outB OutputFunc) {
	p.PortA.input = inA
	p.PortA.output = outA
	p.PortB.input = inB
	p.PortB.output = outB
}

// Snapshot creates a copy of the PIO in its current state. The callbacks
// are not copied; the new instance must be plumbed before use.
func (p *PIO) Snapshot() *PIO {
	n := *p
	n.Plumb(nil, nil, nil, nil)
	return &n
}

// Reset both ports to their power-on state, input mode with interrupts
// disabled.
func (p *PIO) Reset() {
	a := p.PortA
	b := p.PortB
	p.PortA = Port{Mode: ModeInput, input: a.input, output: a.output}
	p.PortB = Port{Mode: ModeInput, input: b.input, output: b.output}
}

// ReadPort reads a PIO register. Implements the bus.PortDevice interface.
func (p *PIO) ReadPort(port uint16) uint8 {
	switch port & 0x03 {
	case RegAData:
		return p.PortA.readData()
	case RegBData:
		return p.PortB.readData()
	}

	// the control registers are write only. reads return the floating bus
	return 0xff
}

// WritePort writes a PIO register. Implements the bus.PortDevice
// interface.
func (p *PIO) WritePort(port uint16, data uint8) {
	switch port & 0x03 {
	case RegAData:
		p.PortA.writeData(data)
	case RegBData:
		p.PortB.writeData(data)
	case RegAControl:
		p.PortA.writeControl(data)
	case RegBControl:
		p.PortB.writeControl(data)
	}
}

// Scan re-evaluates the interrupt condition of both ports against their
// current input levels. Called by the machine at every instruction
// boundary.
func (p *PIO) Scan() {
	p.PortA.scan()
	p.PortB.scan()
}

// PendingVector returns the interrupt vector of the highest priority port
// with a pending interrupt, clearing the request. Port A has priority over
// port B, as on the real chip. The second return value is false if no
// interrupt is pending.
func (p *PIO) PendingVector() (uint8, bool) {
	if p.PortA.IntPending {
		p.PortA.IntPending = false
		return p.PortA.Vector, true
	}
	if p.PortB.IntPending {
		p.PortB.IntPending = false
		return p.PortB.Vector, true
	}
	return 0, false
}

func (pt *Port) pins() uint8 {
	var in uint8 = 0xff
	if pt.input != nil {
		in = pt.input()
	}

	switch pt.Mode {
	case ModeOutput:
		return pt.Output
	case ModeControl:
		// input bits from the pins, output bits from the latch
		return in&pt.IOSelect | pt.Output&^pt.IOSelect
	}
	return in
}

func (pt *Port) readData() uint8 {
	return pt.pins()
}

func (pt *Port) writeData(data uint8) {
	pt.Output = data
	if pt.output != nil && pt.Mode != ModeInput {
		pt.output(data)
	}
}

func (pt *Port) writeControl(data uint8) {
	if pt.ExpectIOSelect {
		pt.IOSelect = data
		pt.ExpectIOSelect = false
		return
	}
	if pt.ExpectIntMask {
		pt.IntMask = data
		pt.ExpectIntMask = false
		return
	}

	if data&0x01 == 0 {
		// interrupt vector word
		pt.Vector = data
		return
	}

	switch data & 0x0f {
	case 0x0f: // mode word
		pt.Mode = data >> 6
		if pt.Mode == ModeControl {
			pt.ExpectIOSelect = true
		}
	case 0x07: // interrupt control word
		pt.IntEnabled = data&0x80 == 0x80
		pt.IntAndMode = data&0x40 == 0x40
		pt.IntHigh = data&0x20 == 0x20
		if data&0x10 == 0x10 {
			pt.ExpectIntMask = true
			pt.IntPending = false
		}
	case 0x03: // interrupt enable flip
		pt.IntEnabled = data&0x80 == 0x80
	}
}

// scan performs edge detection on the monitored interrupt condition. Only
// control mode generates pin interrupts.
func (pt *Port) scan() {
	if pt.Mode != ModeControl || !pt.IntEnabled {
		pt.LastCondition = false
		return
	}

	pins := pt.pins()
	if !pt.IntHigh {
		pins = ^pins
	}

	// a zero mask bit marks a monitored pin
	monitored := ^pt.IntMask

	var condition bool
	if pt.IntAndMode {
		condition = monitored != 0 && pins&monitored == monitored
	} else {
		condition = pins&monitored != 0
	}

	if condition && !pt.LastCondition {
		pt.IntPending = true
	}
	pt.LastCondition = condition
}
