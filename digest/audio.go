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

// Audio is a television.AudioMixer that folds every batch of samples into
// a chained SHA-1 fingerprint.
type Audio struct {
	digest [sha1.Size]byte
	work   []byte
}

// NewAudio is the preferred method of initialisation for the Audio type.
// The returned instance is already attached to the television.
func NewAudio(tv *television.Television) *Audio {
	dig := &Audio{}
	tv.AddAudioMixer(dig)
	return dig
}

// Hash implements the Digest interface.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	dig.digest = [sha1.Size]byte{}
}

// SetAudio implements the television.AudioMixer interface.
func (dig *Audio) SetAudio(samples []int16) error {
	dig.work = dig.work[:0]
	dig.work = append(dig.work, dig.digest[:]...)
	for _, s := range samples {
		dig.work = append(dig.work, uint8(s), uint8(s>>8))
	}
	dig.digest = sha1.Sum(dig.work)
	return nil
}

// EndMixing implements the television.AudioMixer interface.
func (dig *Audio) EndMixing() error {
	return nil
}
