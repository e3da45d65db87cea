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

// Package digest fingerprints the output of the emulated machine. The
// Video and Audio types attach to a television and fold every frame or
// audio batch into a chained SHA-1, so a single hash stands for the whole
// history of the machine's output. Two runs of the machine produced the
// same display if and only if they produced the same hash, which is what
// the regression tests compare.
package digest

// Digest is implemented by types that fold a stream of output into a
// single fingerprint.
type Digest interface {
	Hash() string
	ResetDigest()
}
