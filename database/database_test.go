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

package database_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/kaipeter/gopher1013/database"
	"github.com/kaipeter/gopher1013/test"
)

type testEntry struct {
	name string
}

func (ent testEntry) ID() string {
	return "test"
}

func (ent testEntry) String() string {
	return ent.name
}

func (ent testEntry) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{ent.name}, nil
}

func (ent testEntry) CleanUp() error {
	return nil
}

func deserialiseTestEntry(fields database.SerialisedEntry) (database.Entry, error) {
	return testEntry{name: fields[0]}, nil
}

func initTestSession(db *database.Session) error {
	return db.RegisterEntryType("test", deserialiseTestEntry)
}

func TestRoundTrip(t *testing.T) {
	dbfile := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(dbfile, database.ActivityCreating, initTestSession)
	test.ExpectedSuccess(t, err)

	test.ExpectedSuccess(t, db.Add(testEntry{name: "foo"}))
	test.ExpectedSuccess(t, db.Add(testEntry{name: "bar"}))
	test.Equate(t, db.NumEntries(), 2)
	test.ExpectedSuccess(t, db.EndSession(true))

	// reopen and check entries have survived
	db, err = database.StartSession(dbfile, database.ActivityModifying, initTestSession)
	test.ExpectedSuccess(t, err)
	test.Equate(t, db.NumEntries(), 2)

	ent, err := db.Get(0)
	test.ExpectedSuccess(t, err)
	test.Equate(t, ent.String(), "foo")

	test.ExpectedSuccess(t, db.Delete(0))
	test.Equate(t, db.NumEntries(), 1)
	test.ExpectedSuccess(t, db.EndSession(true))

	// only the remaining entry is left on disk
	db, err = database.StartSession(dbfile, database.ActivityReading, initTestSession)
	test.ExpectedSuccess(t, err)
	test.Equate(t, db.NumEntries(), 1)

	s := &strings.Builder{}
	test.ExpectedSuccess(t, db.List(s))
	test.Equate(t, strings.Contains(s.String(), "bar"), true)

	// a read-only session cannot be committed
	test.ExpectedFailure(t, db.EndSession(true))
}

func TestUnrecognisedEntry(t *testing.T) {
	dbfile := filepath.Join(t.TempDir(), "testDB")

	db, err := database.StartSession(dbfile, database.ActivityCreating, initTestSession)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, db.Add(testEntry{name: "foo"}))
	test.ExpectedSuccess(t, db.EndSession(true))

	// an init function that doesn't register the entry type on disk
	_, err = database.StartSession(dbfile, database.ActivityReading, nil)
	test.ExpectedFailure(t, err)
}
