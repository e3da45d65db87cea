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

package snapshot

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/kaipeter/gopher1013/crunched"
	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/logger"
)

// state files carry a short header in front of the crunched record.
var fileMagic = [8]byte{'g', 'o', 'p', 'h', 'e', 'r', '1', '3'}

type fileHeader struct {
	Magic          [8]byte
	Crunched       uint8
	UncrunchedSize uint32
}

// WriteFile saves the state of the machine to disk. The record is
// run-length crunched, RAM being mostly empty in typical use.
func WriteFile(filename string, mc *hardware.Machine) (rerr error) {
	rec, err := Save(mc)
	if err != nil {
		return curated.Errorf("snapshot: %v", err)
	}

	q := crunched.NewQuick(len(rec))
	copy(*q.Data(), rec)
	s := q.Snapshot()

	hdr := fileHeader{
		Magic:          fileMagic,
		UncrunchedSize: uint32(len(rec)),
	}
	if s.IsCrunched() {
		hdr.Crunched = 1
	}

	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("snapshot: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("snapshot: %v", err)
		}
	}()

	if err := binary.Write(f, binary.LittleEndian, hdr); err != nil {
		return curated.Errorf("snapshot: %v", err)
	}
	if _, err := f.Write(*s.(crunched.Inspection).Inspect()); err != nil {
		return curated.Errorf("snapshot: %v", err)
	}

	logger.Logf("snapshot", "state written to %s", filename)

	return nil
}

// ReadFile restores the state of the machine from disk. Like Load, a bad
// state file leaves the machine untouched.
func ReadFile(filename string, mc *hardware.Machine) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return curated.Errorf("snapshot: %v", err)
	}

	r := bytes.NewReader(data)
	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return curated.Errorf("snapshot: %v", err)
	}

	if hdr.Magic != fileMagic {
		return curated.Errorf("snapshot: not a state file [%s]", filename)
	}

	body := data[len(data)-r.Len():]

	// validate the crunch stream before handing it over. the sum of the
	// run lengths must equal the size in the header
	if hdr.Crunched == 1 {
		if len(body)&0x01 == 0x01 {
			return curated.Errorf("snapshot: damaged state file [%s]", filename)
		}
		var total int
		for i := 1; i < len(body); i += 2 {
			total += int(body[i]) + 1
		}
		if total != int(hdr.UncrunchedSize) {
			return curated.Errorf("snapshot: damaged state file [%s]", filename)
		}
	} else if len(body) != int(hdr.UncrunchedSize) {
		return curated.Errorf("snapshot: damaged state file [%s]", filename)
	}

	q := crunched.NewQuickFromData(body, hdr.Crunched == 1, int(hdr.UncrunchedSize))
	rec := *q.Data()

	if err := Load(rec, mc); err != nil {
		return err
	}

	logger.Logf("snapshot", "state read from %s", filename)

	return nil
}
