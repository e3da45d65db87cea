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

package regression

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kaipeter/gopher1013/cassette"
	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/database"
	"github.com/kaipeter/gopher1013/digest"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/roms"
	"github.com/kaipeter/gopher1013/television"
)

const videoEntryID = "video"

const (
	videoFieldCassette int = iota
	videoFieldModel
	videoFieldNumFrames
	videoFieldDigest
	numVideoFields
)

// host time handed to the machine on every iteration of the test loop.
const frameMicros = 1000000 / television.FramesPerSecond

// VideoRegression records the digest of the frames produced over the
// opening seconds of an emulation run.
type VideoRegression struct {
	CassetteFile string
	Model        string
	NumFrames    int
	digestHash   string
}

func deserialiseVideoEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numVideoFields {
		return nil, curated.Errorf("video: wrong number of fields in entry")
	}

	reg := &VideoRegression{
		CassetteFile: fields[videoFieldCassette],
		Model:        fields[videoFieldModel],
		digestHash:   fields[videoFieldDigest],
	}

	var err error
	reg.NumFrames, err = strconv.Atoi(fields[videoFieldNumFrames])
	if err != nil {
		return nil, curated.Errorf("video: invalid numFrames field [%s]", fields[videoFieldNumFrames])
	}

	return reg, nil
}

// ID implements the database.Entry interface.
func (reg VideoRegression) ID() string {
	return videoEntryID
}

// String implements the database.Entry interface.
func (reg VideoRegression) String() string {
	return fmt.Sprintf("[%s] %s [%s] frames=%d", reg.ID(), reg.CassetteFile, reg.Model, reg.NumFrames)
}

// Serialise implements the database.Entry interface.
func (reg VideoRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.CassetteFile,
		reg.Model,
		strconv.Itoa(reg.NumFrames),
		reg.digestHash,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg VideoRegression) CleanUp() error {
	return nil
}

func (reg *VideoRegression) regress(newRegression bool, output io.Writer, message string) (bool, error) {
	output.Write([]byte(message))

	tv := television.NewTelevision()
	dig := digest.NewVideo(tv)

	variant, err := hardware.ParseVariant(reg.Model)
	if err != nil {
		return false, err
	}

	config, err := roms.LoadConfig(variant, "", "")
	if err != nil {
		return false, err
	}

	mc, err := hardware.NewMachine(tv, config)
	if err != nil {
		return false, err
	}
	defer mc.Discard()

	if reg.CassetteFile != "" {
		cl := cassette.NewLoader(reg.CassetteFile, cassette.FormatAuto)
		if err := cassette.Attach(mc, &cl); err != nil {
			return false, err
		}
		mc.Deck.Play()
	}

	for tv.FrameNum() < reg.NumFrames {
		if _, err := mc.Exec(frameMicros); err != nil {
			return false, err
		}
	}

	if newRegression {
		reg.digestHash = dig.Hash()
		return true, nil
	}

	return dig.Hash() == reg.digestHash, nil
}
