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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values, like the Errorf() function in
// the fmt package, and returns an error.
//
// The Is() function checks whether an error is a curated error with a
// specific pattern. The Has() function is similar but checks if the pattern
// occurs anywhere in the error chain. The IsAny() function answers whether
// the error is curated at all - useful for distinguishing expected failures
// (snapshot mismatches, malformed tape images) from unexpected ones.
//
// The Error() function implementation for curated errors normalises the
// error chain such that it never contains duplicate adjacent parts. Parts
// are separated by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan).
//
// Sentinel errors are achieved by storing the pattern as a const string and
// testing for it with Is() or Has(). See the snapshot and cassette packages
// for examples.
package curated
