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

package digest_test

import (
	"testing"

	"github.com/kaipeter/gopher1013/digest"
	"github.com/kaipeter/gopher1013/television"
	"github.com/kaipeter/gopher1013/test"
)

func TestVideoChaining(t *testing.T) {
	tv := television.NewTelevision()
	dig := digest.NewVideo(tv)

	empty := dig.Hash()

	frame := make([]uint8, television.HorizPixels*television.VertPixels*television.PixelDepth)
	if err := tv.NewFrame(frame); err != nil {
		t.Fatal(err)
	}
	one := dig.Hash()
	if one == empty {
		t.Fatal("fingerprint did not change with the first frame")
	}

	// the same frame again changes the chained fingerprint
	if err := tv.NewFrame(frame); err != nil {
		t.Fatal(err)
	}
	if dig.Hash() == one {
		t.Fatal("identical frames must still advance the chain")
	}

	test.Equate(t, dig.FrameNum(), 2)

	dig.ResetDigest()
	test.Equate(t, dig.Hash(), empty)
}

func TestAudioChaining(t *testing.T) {
	tv := television.NewTelevision()
	dig := digest.NewAudio(tv)

	empty := dig.Hash()

	if err := tv.SetAudio([]int16{0, 8000, -8000}); err != nil {
		t.Fatal(err)
	}
	if dig.Hash() == empty {
		t.Fatal("fingerprint did not change with audio")
	}

	dig.ResetDigest()
	test.Equate(t, dig.Hash(), empty)
}

func TestIdenticalRunsAgree(t *testing.T) {
	frame := make([]uint8, television.HorizPixels*television.VertPixels*television.PixelDepth)
	frame[100] = 0xff

	run := func() string {
		tv := television.NewTelevision()
		dig := digest.NewVideo(tv)
		for i := 0; i < 10; i++ {
			if err := tv.NewFrame(frame); err != nil {
				t.Fatal(err)
			}
		}
		return dig.Hash()
	}

	test.Equate(t, run(), run())
}
