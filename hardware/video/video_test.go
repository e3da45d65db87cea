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

package video_test

import (
	"testing"

	"github.com/kaipeter/gopher1013/hardware/memory"
	"github.com/kaipeter/gopher1013/hardware/memory/memorymap"
	"github.com/kaipeter/gopher1013/hardware/video"
	"github.com/kaipeter/gopher1013/television"
	"github.com/kaipeter/gopher1013/test"
)

type frameCounter struct {
	frames int
	last   []uint8
}

func (f *frameCounter) NewFrame(_ int, pixels []uint8) error {
	f.frames++
	f.last = make([]uint8, len(pixels))
	copy(f.last, pixels)
	return nil
}

const cyclesPerFrame = int64(40000)

func newTestVideo(t *testing.T) (*video.Video, *memory.Memory, *frameCounter) {
	t.Helper()

	mem, err := memory.NewMemory(0x4000, make([]uint8, memorymap.ROMSize))
	if err != nil {
		t.Fatal(err)
	}

	// font with one recognisable glyph. character 0x01 is a solid top line
	font := make([]uint8, memorymap.FontROMSize)
	font[0x01*8] = 0xff

	tv := television.NewTelevision()
	fc := &frameCounter{}
	tv.AddPixelRenderer(fc)

	vid, err := video.NewVideo(tv, mem, font, cyclesPerFrame)
	if err != nil {
		t.Fatal(err)
	}

	return vid, mem, fc
}

func TestFrameCadence(t *testing.T) {
	vid, _, fc := newTestVideo(t)

	// a frame's worth of cycles produces exactly one frame however it is
	// sliced up
	for i := 0; i < 100; i++ {
		if err := vid.Step(400); err != nil {
			t.Fatal(err)
		}
	}
	test.Equate(t, fc.frames, 1)

	if err := vid.Step(int(cyclesPerFrame)); err != nil {
		t.Fatal(err)
	}
	test.Equate(t, fc.frames, 2)
}

func TestCharacterRendering(t *testing.T) {
	vid, mem, fc := newTestVideo(t)

	// character 0x01 in the top-left cell
	mem.VideoRAM[0] = 0x01

	if err := vid.Step(int(cyclesPerFrame)); err != nil {
		t.Fatal(err)
	}
	test.Equate(t, fc.frames, 1)

	// top line of the glyph is solid white
	for px := 0; px < 8; px++ {
		test.Equate(t, fc.last[px*television.PixelDepth], 0xff)
	}

	// pixel 8 belongs to the next cell, which holds character 0
	test.Equate(t, fc.last[8*television.PixelDepth], 0x00)

	// second scanline of the glyph is empty
	o := television.HorizPixels * television.PixelDepth
	test.Equate(t, fc.last[o], 0x00)
}

func TestMidFrameChange(t *testing.T) {
	vid, mem, fc := newTestVideo(t)

	// let the beam pass the top half of the screen, then put a glyph in
	// both the first and last character rows
	if err := vid.Step(int(cyclesPerFrame / 2)); err != nil {
		t.Fatal(err)
	}
	mem.VideoRAM[0] = 0x01
	mem.VideoRAM[31*32] = 0x01

	if err := vid.Step(int(cyclesPerFrame / 2)); err != nil {
		t.Fatal(err)
	}
	test.Equate(t, fc.frames, 1)

	// the top row was rendered before the change, the bottom row after
	test.Equate(t, fc.last[0], 0x00)
	o := 31 * 8 * television.HorizPixels * television.PixelDepth
	test.Equate(t, fc.last[o], 0xff)
}
