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

package database

import (
	"bufio"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/kaipeter/gopher1013/curated"
)

// Activity describes the type of access required from a database session.
type Activity int

// List of valid Activity values.
const (
	// ActivityReading is for read-only sessions. committing a read-only
	// session is an error
	ActivityReading Activity = iota

	// ActivityModifying expects the database file to exist
	ActivityModifying

	// ActivityCreating creates the database file if it does not exist
	ActivityCreating
)

// Session keeps track of a database open for the duration of the session.
type Session struct {
	dbfile   string
	activity Activity

	entryTypes map[string]Deserialiser
	entries    map[int]Entry
}

// StartSession opens the database file and deserialises every entry. The
// init function should register the entry types the caller expects to
// find.
func StartSession(dbfile string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		dbfile:     dbfile,
		activity:   activity,
		entryTypes: make(map[string]Deserialiser),
		entries:    make(map[int]Entry),
	}

	if init != nil {
		if err := init(db); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(dbfile)
	if err != nil {
		// a missing file is an empty database unless we've been asked to
		// only read it
		if activity != ActivityReading && errors.Is(err, os.ErrNotExist) {
			return db, nil
		}
		return nil, curated.Errorf("database: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, fieldSep)
		if len(fields) < numLeaderFields {
			return nil, curated.Errorf("database: malformed entry [%s]", line)
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return nil, curated.Errorf("database: invalid key [%s]", fields[leaderFieldKey])
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return nil, curated.Errorf("database: unrecognised entry type [%s]", fields[leaderFieldID])
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return nil, curated.Errorf("database: %v", err)
		}

		db.entries[key] = ent
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("database: %v", err)
	}

	return db, nil
}

// EndSession closes the database, writing all entries back to disk if
// commit is true.
func (db *Session) EndSession(commit bool) (rerr error) {
	defer func() {
		db.entries = nil
		db.entryTypes = nil
	}()

	if !commit {
		return nil
	}

	if db.activity == ActivityReading {
		return curated.Errorf("database: cannot commit a read-only session")
	}

	f, err := os.Create(db.dbfile)
	if err != nil {
		return curated.Errorf("database: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("database: %v", err)
		}
	}()

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		ser, err := ent.Serialise()
		if err != nil {
			return curated.Errorf("database: %v", err)
		}

		line := make([]string, 0, len(ser)+numLeaderFields)
		line = append(line, strconv.Itoa(key), ent.ID())
		line = append(line, ser...)

		if _, err := f.WriteString(strings.Join(line, fieldSep) + entrySep); err != nil {
			return curated.Errorf("database: %v", err)
		}
	}

	return nil
}
