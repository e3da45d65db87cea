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

package clocks_test

import (
	"math/rand"
	"testing"

	"github.com/kaipeter/gopher1013/hardware/clocks"
	"github.com/kaipeter/gopher1013/test"
)

func TestWholeCycles(t *testing.T) {
	clk := clocks.NewClock(clocks.HzFast)

	test.Equate(t, clk.Cycles(1000), int64(2000))
	test.Equate(t, clk.Cycles(0), int64(0))
	test.Equate(t, clk.Cycles(-5), int64(0))
}

func TestFractionCarry(t *testing.T) {
	// at 1MHz a microsecond is exactly one cycle, so use an awkward rate
	clk := clocks.NewClock(1_500_000)

	// 1µs is 1.5 cycles. the fraction must carry, not vanish
	test.Equate(t, clk.Cycles(1), int64(1))
	test.Equate(t, clk.Cycles(1), int64(2))
	test.Equate(t, clk.Cycles(1), int64(1))
	test.Equate(t, clk.Cycles(1), int64(2))
}

func TestNoDriftOverOneSecond(t *testing.T) {
	for _, hz := range []int64{clocks.HzSlow, clocks.HzFast, 1_773_447} {
		clk := clocks.NewClock(hz)
		rnd := rand.New(rand.NewSource(1013))

		// request a second of time in irregular slices. the total cycle
		// count must equal the clock rate exactly
		var total int64
		remaining := int64(1_000_000)
		for remaining > 0 {
			req := rnd.Int63n(20000) + 1
			if req > remaining {
				req = remaining
			}
			total += clk.Cycles(req)
			remaining -= req
		}

		test.Equate(t, total, hz)
	}
}

func TestSnapshot(t *testing.T) {
	clk := clocks.NewClock(1_500_000)
	clk.Cycles(1)

	snap := clk.Snapshot()
	test.Equate(t, clk.Cycles(1), snap.Cycles(1))
}
