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

// Package clocks defines the clock rates of the Z1013 variants and converts
// host time into machine cycles without accumulating drift.
package clocks

// The CPU clock rates of the Z1013 variants. The original Z1013.01 runs the
// U880 at half the speed of the later models.
const (
	HzSlow = int64(1_000_000)
	HzFast = int64(2_000_000)
)

const microsPerSecond = int64(1_000_000)

// Clock converts elapsed host time into machine cycles. The fractional
// cycle left over by each conversion is carried into the next one, so the
// total cycle count over any span of requests equals the clock rate times
// the total time, exactly.
type Clock struct {
	Hz int64

	// sub-cycle remainder from the last conversion, in Hz*µs units. always
	// less than microsPerSecond
	Remainder int64
}

// NewClock is the preferred method of initialisation for the Clock type.
func NewClock(hz int64) *Clock {
	return &Clock{Hz: hz}
}

// Snapshot creates a copy of the clock in its current state.
func (clk *Clock) Snapshot() *Clock {
	n := *clk
	return &n
}

// Cycles returns the number of machine cycles covered by the given number
// of microseconds, carrying any fractional cycle over to the next call.
func (clk *Clock) Cycles(micros int64) int64 {
	if micros <= 0 {
		return 0
	}
	t := micros*clk.Hz + clk.Remainder
	clk.Remainder = t % microsPerSecond
	return t / microsPerSecond
}

// Reset forgets any carried fraction.
func (clk *Clock) Reset() {
	clk.Remainder = 0
}
