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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/kaipeter/gopher1013/television"
)

// Video is a television.PixelRenderer that folds every frame into a
// chained SHA-1 fingerprint.
type Video struct {
	digest   [sha1.Size]byte
	work     []byte
	frameNum int
}

// NewVideo is the preferred method of initialisation for the Video type.
// The returned instance is already attached to the television.
func NewVideo(tv *television.Television) *Video {
	dig := &Video{
		work: make([]byte, sha1.Size+television.HorizPixels*television.VertPixels*television.PixelDepth),
	}
	tv.AddPixelRenderer(dig)
	return dig
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
}

// FrameNum returns the frame number of the last frame folded into the
// fingerprint.
func (dig *Video) FrameNum() int {
	return dig.frameNum
}

// NewFrame implements the television.PixelRenderer interface. The previous
// fingerprint is prepended to the frame data before hashing, chaining the
// fingerprints together.
func (dig *Video) NewFrame(frameNum int, pixels []uint8) error {
	copy(dig.work, dig.digest[:])
	copy(dig.work[sha1.Size:], pixels)
	dig.digest = sha1.Sum(dig.work)
	dig.frameNum = frameNum
	return nil
}
