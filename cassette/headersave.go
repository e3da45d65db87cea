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

package cassette

import (
	"fmt"
	"strings"

	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/logger"
)

// Headersave is the parsed header of a .z80 memory image, the format used
// by the Headersave utility to save programs with their load addresses.
type Headersave struct {
	Load uint16
	End  uint16
	Exec uint16
	Type uint8
	Name string

	payload []uint8
}

const headersaveHeaderSize = 32

// parseHeadersave validates the 32 byte header and the payload length.
func parseHeadersave(data []uint8) (Headersave, error) {
	var hs Headersave

	if len(data) < headersaveHeaderSize {
		return hs, curated.Errorf("headersave: image is %d bytes, smaller than the %d byte header", len(data), headersaveHeaderSize)
	}

	if data[13] != 0xd3 || data[14] != 0xd3 || data[15] != 0xd3 {
		return hs, curated.Errorf("headersave: bad signature")
	}

	hs.Load = uint16(data[0]) | uint16(data[1])<<8
	hs.End = uint16(data[2]) | uint16(data[3])<<8
	hs.Exec = uint16(data[4]) | uint16(data[5])<<8
	hs.Type = data[12]
	hs.Name = strings.TrimRight(string(data[16:32]), "\x00 ")
	hs.payload = data[headersaveHeaderSize:]

	if hs.End < hs.Load {
		return hs, curated.Errorf("headersave: end address %04x before load address %04x", hs.End, hs.Load)
	}

	length := int(hs.End) - int(hs.Load) + 1
	if len(hs.payload) < length {
		return hs, curated.Errorf("headersave: payload is %d bytes, header wants %d", len(hs.payload), length)
	}

	return hs, nil
}

// quickload pokes a Headersave image directly into the machine's memory,
// skipping the tape interface entirely. The machine is not changed at all
// if the image fails validation.
func quickload(mc *hardware.Machine, data []uint8) (Headersave, error) {
	hs, err := parseHeadersave(data)
	if err != nil {
		return hs, err
	}

	length := int(hs.End) - int(hs.Load) + 1
	for i := 0; i < length; i++ {
		mc.Mem.Write(hs.Load+uint16(i), hs.payload[i])
	}

	logger.Log("cassette", fmt.Sprintf("quickload %q: %04x-%04x exec %04x", hs.Name, hs.Load, hs.End, hs.Exec))

	return hs, nil
}
