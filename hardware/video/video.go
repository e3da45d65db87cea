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

// Package video emulates the character generator of the Z1013. The screen
// is 32x32 characters, each an 8x8 cell taken from the font ROM and
// selected by the corresponding byte of video RAM. There are no colours
// and no attributes; a set font bit is a white pixel.
//
// The generator is ticked with the CPU cycle count of each executed
// instruction. Scanlines are rendered as the nominal beam position crosses
// them, so a program racing the beam sees mid-frame changes to video RAM
// in the same place the real machine would show them.
package video

import (
	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware/memory"
	"github.com/kaipeter/gopher1013/hardware/memory/memorymap"
	"github.com/kaipeter/gopher1013/television"
)

const charColumns = television.HorizPixels / 8

// Video is the character generator of the Z1013.
type Video struct {
	mem  *memory.Memory
	tv   *television.Television
	font []uint8

	cyclesPerFrame int64

	// beam position. Scanline counts all lines of the frame, visible and
	// blank. FrameCycles is the cycle count within the current frame
	Scanline    int
	FrameCycles int64

	frame []uint8
}

// NewVideo is the preferred method of initialisation for the Video type.
// The font image must be exactly the size of the font ROM.
func NewVideo(tv *television.Television, mem *memory.Memory, font []uint8, cyclesPerFrame int64) (*Video, error) {
	if len(font) != memorymap.FontROMSize {
		return nil, curated.Errorf("video: font image is %d bytes, expected %d", len(font), memorymap.FontROMSize)
	}

	return &Video{
		mem:            mem,
		tv:             tv,
		font:           font,
		cyclesPerFrame: cyclesPerFrame,
		frame:          make([]uint8, television.HorizPixels*television.VertPixels*television.PixelDepth),
	}, nil
}

// Snapshot creates a copy of the video chip in its current state. The font
// ROM is shared with the copy.
func (vid *Video) Snapshot() *Video {
	n := *vid
	n.frame = make([]uint8, len(vid.frame))
	copy(n.frame, vid.frame)
	return &n
}

// Plumb the video chip into a different memory and television instance.
func (vid *Video) Plumb(tv *television.Television, mem *memory.Memory) {
	vid.tv = tv
	vid.mem = mem
}

// Reset returns the beam to the top of the frame.
func (vid *Video) Reset() {
	vid.Scanline = 0
	vid.FrameCycles = 0
	for i := range vid.frame {
		vid.frame[i] = 0x00
	}
}

// Step advances the beam by the given number of CPU cycles, rendering any
// scanlines crossed and pushing the frame to the television when the
// vertical blank ends.
func (vid *Video) Step(cycles int) error {
	vid.FrameCycles += int64(cycles)

	for {
		// cycle count at which the current scanline is complete. the
		// multiplication distributes the non-integral line length evenly
		// over the frame
		end := int64(vid.Scanline+1) * vid.cyclesPerFrame / television.ScanlinesTotal
		if vid.FrameCycles < end {
			return nil
		}

		if vid.Scanline < television.VertPixels {
			vid.renderScanline(vid.Scanline)
		}

		vid.Scanline++
		if vid.Scanline == television.ScanlinesTotal {
			vid.Scanline = 0
			vid.FrameCycles -= vid.cyclesPerFrame
			if err := vid.tv.NewFrame(vid.frame); err != nil {
				return err
			}
		}
	}
}

func (vid *Video) renderScanline(line int) {
	row := line >> 3
	fontLine := line & 0x07

	o := line * television.HorizPixels * television.PixelDepth
	for col := 0; col < charColumns; col++ {
		ch := vid.mem.VideoRAM[row*charColumns+col]
		bits := vid.font[int(ch)*8+fontLine]

		for px := 0; px < 8; px++ {
			var v uint8
			if bits&(0x80>>px) != 0 {
				v = 0xff
			}
			vid.frame[o] = v
			vid.frame[o+1] = v
			vid.frame[o+2] = v
			vid.frame[o+3] = 0xff
			o += television.PixelDepth
		}
	}
}
