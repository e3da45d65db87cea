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
	"os"
	"path/filepath"
	"testing"

	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/snapshot"
	"github.com/kaipeter/gopher1013/test"
)

func TestFileRoundTrip(t *testing.T) {
	statefile := filepath.Join(t.TempDir(), "quicksave")

	a := newTestMachine(t, hardware.Z1013_16)
	if _, err := a.Exec(10000); err != nil {
		t.Fatal(err)
	}

	test.ExpectedSuccess(t, snapshot.WriteFile(statefile, a))

	// the state file is smaller than the raw record. RAM is mostly empty
	info, err := os.Stat(statefile)
	test.ExpectedSuccess(t, err)
	test.Equate(t, info.Size() < int64(snapshot.RecordSize(hardware.Z1013_16)), true)

	b := newTestMachine(t, hardware.Z1013_16)
	test.ExpectedSuccess(t, snapshot.ReadFile(statefile, b))

	// records from both machines are bit-identical
	recA, err := snapshot.Save(a)
	test.ExpectedSuccess(t, err)
	recB, err := snapshot.Save(b)
	test.ExpectedSuccess(t, err)
	test.Equate(t, bytes.Equal(recA, recB), true)
}

func TestFileDamage(t *testing.T) {
	statefile := filepath.Join(t.TempDir(), "quicksave")

	a := newTestMachine(t, hardware.Z1013_16)
	test.ExpectedSuccess(t, snapshot.WriteFile(statefile, a))

	data, err := os.ReadFile(statefile)
	test.ExpectedSuccess(t, err)

	// truncating the crunch stream is detected before the machine is
	// touched
	test.ExpectedSuccess(t, os.WriteFile(statefile, data[:len(data)-2], 0644))

	b := newTestMachine(t, hardware.Z1013_16)
	before, err := snapshot.Save(b)
	test.ExpectedSuccess(t, err)

	test.ExpectedFailure(t, snapshot.ReadFile(statefile, b))

	after, err := snapshot.Save(b)
	test.ExpectedSuccess(t, err)
	test.Equate(t, bytes.Equal(before, after), true)

	// a file that isn't a state file at all
	test.ExpectedSuccess(t, os.WriteFile(statefile, []byte("not a state file"), 0644))
	test.ExpectedFailure(t, snapshot.ReadFile(statefile, b))
}
