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

// Package regression records reference digests of emulation runs in a
// database and checks later runs against them. A regression entry names a
// machine model, a cassette file and a frame count; the test passes when
// the digest over those frames is unchanged.
package regression

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/database"
	"github.com/kaipeter/gopher1013/resources"
)

// the database file name, relative to the resource path.
const regressionDBFile = "regressionDB"

// Regressor represents the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the
	// newRegression flag causes the reference digest to be recorded
	// rather than checked
	regress(newRegression bool, output io.Writer, message string) (bool, error)
}

// when starting a database session we need to register what entries we
// will find in the database.
func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(videoEntryID, deserialiseVideoEntry)
}

func startSession(activity database.Activity) (*database.Session, error) {
	dbfile, err := resources.JoinPath(regressionDBFile)
	if err != nil {
		return nil, curated.Errorf("regression: %v", err)
	}
	return database.StartSession(dbfile, activity, initDBSession)
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer) error {
	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressAdd adds a new regression test to the database. The reference
// digest is recorded by running the test once.
func RegressAdd(output io.Writer, reg Regressor) error {
	db, err := startSession(database.ActivityCreating)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	ok, err := reg.regress(true, output, fmt.Sprintf("adding: %s", reg))
	if !ok || err != nil {
		return err
	}

	fmt.Fprintf(output, "\radded: %s\n", reg)

	return db.Add(reg)
}

// RegressDelete removes an entry from the regression database. The
// confirmation reader should be connected to the user.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) error {
	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf("regression: invalid key [%s]", key)
	}

	db, err := startSession(database.ActivityModifying)
	if err != nil {
		return err
	}
	defer db.EndSession(true)

	reg, err := db.Get(v)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", reg)

	confirm := make([]byte, 32)
	if _, err := confirmation.Read(confirm); err != nil {
		return curated.Errorf("regression: %v", err)
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		if err := db.Delete(v); err != nil {
			return err
		}
		fmt.Fprintf(output, "deleted test #%s from regression database\n", key)
	}

	return nil
}

// RegressRun runs the tests with the specified keys. An empty key list
// runs every test in the database.
func RegressRun(output io.Writer, keys []string) error {
	db, err := startSession(database.ActivityReading)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	keyList := make([]int, 0, len(keys))
	for _, key := range keys {
		v, err := strconv.Atoi(key)
		if err != nil {
			return curated.Errorf("regression: invalid key [%s]", key)
		}
		keyList = append(keyList, v)
	}

	numSucceed := 0
	numFail := 0
	numError := 0

	onSelect := func(ent database.Entry) error {
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf("regression: unexpected entry type [%s]", ent.ID())
		}

		ok, err := reg.regress(false, output, fmt.Sprintf("running: %s", reg))
		switch {
		case err != nil:
			numError++
			fmt.Fprintf(output, "\rerror: %s (%v)\n", reg, err)
		case !ok:
			numFail++
			fmt.Fprintf(output, "\rfailure: %s\n", reg)
		default:
			numSucceed++
			fmt.Fprintf(output, "\rsucceed: %s\n", reg)
		}

		return nil
	}

	if _, err := db.SelectKeys(onSelect, keyList...); err != nil {
		return err
	}

	fmt.Fprintf(output, "regression tests: %d succeed, %d fail, %d error\n", numSucceed, numFail, numError)

	return nil
}
