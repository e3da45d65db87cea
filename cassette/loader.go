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

// Package cassette loads program media into the machine. Four kinds of
// media are understood: Headersave memory images, which are poked straight
// into RAM; raw tape images, which are encoded to a pulse stream and put in
// the tape deck; and wav or mp3 recordings of real cassettes, which are
// converted to pulse streams by measuring the gaps between zero crossings.
package cassette

import (
	"crypto/sha1"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/kaipeter/gopher1013/curated"
)

// Loader specifies the media file to attach to the machine. The format is
// normally derived from the file extension but can be forced.
type Loader struct {
	// Filename of the media to load
	Filename string

	// one of the Format constants, or empty/FormatAuto to derive the
	// format from the file extension
	Format string

	// hash of the loaded data. computed by Load
	Hash string

	// copy of the loaded data
	Data []byte

	// seek position for the Reader/Seeker implementation
	offset int64
}

// The media formats understood by the Attach function.
const (
	FormatAuto       = "AUTO"
	FormatHeadersave = "Z80"
	FormatTapeImage  = "K7"
	FormatSoundFile  = "PCM"
)

// NewLoader is the preferred method of initialisation for the Loader type.
// An empty or "AUTO" format argument derives the format from the file
// extension: .z80 is a Headersave image; .k7, .tap and .bin are raw tape
// images; .wav and .mp3 are sampled recordings.
func NewLoader(filename string, format string) Loader {
	cl := Loader{
		Filename: filename,
		Format:   FormatAuto,
	}

	format = strings.TrimSpace(strings.ToUpper(format))
	if format != FormatAuto && format != "" {
		cl.Format = format
		return cl
	}

	switch strings.ToUpper(path.Ext(filename)) {
	case ".Z80":
		cl.Format = FormatHeadersave
	case ".K7", ".TAP", ".BIN":
		cl.Format = FormatTapeImage
	case ".WAV", ".MP3":
		cl.Format = FormatSoundFile
	}

	return cl
}

// Load the media file from disk. The data is kept in the Loader for the
// Attach function and for the Reader/Seeker implementation.
func (cl *Loader) Load() error {
	if cl.Data != nil {
		return nil
	}

	data, err := os.ReadFile(cl.Filename)
	if err != nil {
		return curated.Errorf("cassette: %v", err)
	}

	cl.Data = data
	cl.offset = 0
	cl.Hash = fmt.Sprintf("%x", sha1.Sum(cl.Data))

	return nil
}

// Read is an implementation of the io.Reader interface, reading from the
// loaded data. Required by the wav and mp3 decoders.
func (cl *Loader) Read(p []byte) (int, error) {
	if cl.offset >= int64(len(cl.Data)) {
		return 0, io.EOF
	}
	n := copy(p, cl.Data[cl.offset:])
	cl.offset += int64(n)
	return n, nil
}

// Seek is an implementation of the io.Seeker interface over the loaded
// data.
func (cl *Loader) Seek(offset int64, whence int) (int64, error) {
	var o int64
	switch whence {
	case io.SeekStart:
		o = offset
	case io.SeekCurrent:
		o = cl.offset + offset
	case io.SeekEnd:
		o = int64(len(cl.Data)) + offset
	}
	if o < 0 {
		return 0, curated.Errorf("cassette: seek before start of data")
	}
	cl.offset = o
	return o, nil
}
