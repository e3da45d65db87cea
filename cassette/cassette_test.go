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
	"testing"

	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/hardware/memory/memorymap"
	"github.com/kaipeter/gopher1013/television"
	"github.com/kaipeter/gopher1013/test"
)

func newTestMachine(t *testing.T) *hardware.Machine {
	t.Helper()

	mc, err := hardware.NewMachine(television.NewTelevision(), hardware.Config{
		Variant:    hardware.Z1013_64,
		MonitorROM: make([]uint8, memorymap.ROMSize),
		FontROM:    make([]uint8, memorymap.FontROMSize),
	})
	if err != nil {
		t.Fatal(err)
	}
	return mc
}

func headersaveImage(load uint16, payload []uint8) []uint8 {
	img := make([]uint8, headersaveHeaderSize, headersaveHeaderSize+len(payload))
	end := load + uint16(len(payload)) - 1
	img[0] = uint8(load)
	img[1] = uint8(load >> 8)
	img[2] = uint8(end)
	img[3] = uint8(end >> 8)
	img[4] = uint8(load)
	img[5] = uint8(load >> 8)
	img[12] = 'C'
	img[13] = 0xd3
	img[14] = 0xd3
	img[15] = 0xd3
	copy(img[16:], "DEMO")
	return append(img, payload...)
}

func TestFormatDetection(t *testing.T) {
	test.Equate(t, NewLoader("game.z80", "").Format, FormatHeadersave)
	test.Equate(t, NewLoader("game.Z80", "AUTO").Format, FormatHeadersave)
	test.Equate(t, NewLoader("game.tap", "").Format, FormatTapeImage)
	test.Equate(t, NewLoader("game.k7", "").Format, FormatTapeImage)
	test.Equate(t, NewLoader("game.wav", "").Format, FormatSoundFile)
	test.Equate(t, NewLoader("game.mp3", "").Format, FormatSoundFile)
	test.Equate(t, NewLoader("game.tap", "Z80").Format, FormatHeadersave)
	test.Equate(t, NewLoader("game.xyz", "").Format, FormatAuto)
}

func TestQuickload(t *testing.T) {
	mc := newTestMachine(t)

	payload := []uint8{0x11, 0x22, 0x33, 0x44}
	hs, err := quickload(mc, headersaveImage(0x0100, payload))
	test.ExpectedSuccess(t, err)

	test.Equate(t, hs.Name, "DEMO")
	test.Equate(t, hs.Exec, 0x0100)
	for i, b := range payload {
		test.Equate(t, mc.Mem.Read(0x0100+uint16(i)), b)
	}
}

func TestQuickloadRejection(t *testing.T) {
	mc := newTestMachine(t)

	// too small for the header
	_, err := quickload(mc, make([]uint8, 16))
	test.ExpectedFailure(t, err)

	// bad signature
	img := headersaveImage(0x0100, []uint8{0xaa})
	img[14] = 0x00
	_, err = quickload(mc, img)
	test.ExpectedFailure(t, err)

	// truncated payload
	img = headersaveImage(0x0100, []uint8{0xaa, 0xbb})
	_, err = quickload(mc, img[:len(img)-1])
	test.ExpectedFailure(t, err)

	// none of the rejected images reached memory
	test.Equate(t, mc.Mem.Read(0x0100), 0x00)
}

func TestAttachTapeImage(t *testing.T) {
	mc := newTestMachine(t)

	cl := NewLoader("program.tap", "")
	cl.Data = make([]uint8, 64)

	err := Attach(mc, &cl)
	test.ExpectedSuccess(t, err)
	test.Equate(t, mc.Deck.IsInserted(), true)

	// the deck waits for Play
	test.Equate(t, mc.Deck.Playing, false)
}

func TestPulseRecovery(t *testing.T) {
	// a 600Hz square wave sampled at 48kHz has 40 samples per half-wave,
	// which is 833µs
	p := pcmData{sampleRate: 48000}
	level := float32(0.8)
	for i := 0; i < 100; i++ {
		for j := 0; j < 40; j++ {
			p.data = append(p.data, level)
		}
		level = -level
	}

	pulses := pcmToPulses(p)
	if len(pulses) < 90 {
		t.Fatalf("recovered only %d pulses", len(pulses))
	}

	// interior pulses measure the half-wave width
	test.Equate(t, pulses[10], 833)
}
