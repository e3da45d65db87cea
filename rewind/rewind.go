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

// Package rewind keeps a history of machine states so that the emulation
// can be stepped back in time. States are stored as crunched snapshot
// records, RAM being mostly empty in typical use.
package rewind

import (
	"github.com/kaipeter/gopher1013/crunched"
	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/snapshot"
)

// the maximum number of entries to store before the earliest states are
// forgotten.
const maxEntries = 100

// how many frames between automatic snapshots. one second of emulated
// time at the 50Hz frame rate.
const frequency = 50

// Rewind contains a history of machine states for the emulation.
type Rewind struct {
	mc *hardware.Machine

	entries []crunched.Data

	// frame number of the last automatic snapshot
	lastFrame int
}

// NewRewind is the preferred method of initialisation for the Rewind
// type.
func NewRewind(mc *hardware.Machine) *Rewind {
	return &Rewind{
		mc:      mc,
		entries: make([]crunched.Data, 0, maxEntries),
	}
}

// NumEntries returns the number of states in the history.
func (rw *Rewind) NumEntries() int {
	return len(rw.entries)
}

// Record appends the machine's current state to the history, pushing out
// the oldest state once the history is full.
func (rw *Rewind) Record() error {
	rec, err := snapshot.Save(rw.mc)
	if err != nil {
		return curated.Errorf("rewind: %v", err)
	}

	q := crunched.NewQuick(len(rec))
	copy(*q.Data(), rec)

	if len(rw.entries) >= maxEntries {
		rw.entries = rw.entries[1:]
	}
	rw.entries = append(rw.entries, q.Snapshot())

	rw.lastFrame = rw.mc.TV.FrameNum()

	return nil
}

// Check takes an automatic snapshot if enough frames have passed since
// the last one. Intended to be called once per frame.
func (rw *Rewind) Check() error {
	frame := rw.mc.TV.FrameNum()
	if frame-rw.lastFrame < frequency {
		return nil
	}
	return rw.Record()
}

// Back restores the most recent state in the history, removing it. The
// machine is untouched if the history is empty.
func (rw *Rewind) Back() error {
	if len(rw.entries) == 0 {
		return curated.Errorf("rewind: history is empty")
	}

	q := rw.entries[len(rw.entries)-1]
	rw.entries = rw.entries[:len(rw.entries)-1]

	if err := snapshot.Load(*q.Data(), rw.mc); err != nil {
		return curated.Errorf("rewind: %v", err)
	}

	return nil
}
