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

package crunched_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/kaipeter/gopher1013/crunched"
	"github.com/kaipeter/gopher1013/test"
)

func TestEmptyData(t *testing.T) {
	qa := crunched.NewQuick(100)
	test.Equate(t, qa.IsCrunched(), false)

	before := make([]byte, 100)
	copy(before, *qa.Data())

	// the snapshotted data is crunched, the original is untouched
	qb := qa.Snapshot()
	test.Equate(t, qb.IsCrunched(), true)
	test.Equate(t, qa.IsCrunched(), false)

	// 100 zeroes crunch to a single byte/count pair
	inspection := *qb.(crunched.Inspection).Inspect()
	test.Equate(t, len(inspection), 2)
	test.Equate(t, int(inspection[0]), 0)
	test.Equate(t, int(inspection[1]), 99)

	// obtaining the data from the snapshot decrunches it
	after := *qb.Data()
	test.Equate(t, qb.IsCrunched(), false)
	test.Equate(t, bytes.Equal(before, after), true)
}

func TestRandomData(t *testing.T) {
	rnd := rand.New(rand.NewSource(1013))

	qa := crunched.NewQuick(1000)
	data := *qa.Data()
	for i := range data {
		data[i] = byte(rnd.Intn(256))
	}

	before := make([]byte, len(data))
	copy(before, data)

	// random data does not crunch. the snapshot is a plain copy
	qb := qa.Snapshot()
	test.Equate(t, qb.IsCrunched(), false)
	test.Equate(t, bytes.Equal(before, *qb.Data()), true)

	// mutating the original does not affect the snapshot
	data[0] ^= 0xff
	test.Equate(t, bytes.Equal(before, *qb.Data()), true)
}

func TestFromData(t *testing.T) {
	qa := crunched.NewQuick(100)
	qb := qa.Snapshot()

	// rebuild from the crunched bytes, as if read back from disk
	inspection := *qb.(crunched.Inspection).Inspect()
	uncrunchedSize, _ := qb.Size()
	qc := crunched.NewQuickFromData(inspection, qb.IsCrunched(), uncrunchedSize)

	test.Equate(t, bytes.Equal(*qa.Data(), *qc.Data()), true)
}
