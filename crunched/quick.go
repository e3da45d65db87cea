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

package crunched

type quick struct {
	crunched       bool
	data           []byte
	uncrunchedSize int
}

// NewQuick returns an implementation of the Data interface that is
// intended to perform quickly on both crunching and decrunching.
//
// For simplicity, the minimum amount of data allocated will be 4 bytes.
func NewQuick(size int) Data {
	if size < 4 {
		size = 4
	}
	return &quick{
		data:           make([]byte, size),
		uncrunchedSize: size,
	}
}

// NewQuickFromData returns a Data instance wrapping bytes that have
// previously been obtained from Inspect(). Used when reading crunched
// data back from disk.
func NewQuickFromData(data []byte, crunched bool, uncrunchedSize int) Data {
	c := &quick{
		crunched:       crunched,
		data:           make([]byte, len(data)),
		uncrunchedSize: uncrunchedSize,
	}
	copy(c.data, data)
	return c
}

// IsCrunched implements the Data interface.
func (c *quick) IsCrunched() bool {
	return c.crunched
}

// Size implements the Data interface.
func (c *quick) Size() (int, int) {
	return c.uncrunchedSize, len(c.data)
}

// Data implements the Data interface.
func (c *quick) Data() *[]byte {
	if c.crunched {
		// with the RLE method the number of bytes in the crunched data is
		// always a multiple of two
		if len(c.data)&0x01 == 0x01 {
			panic("crunched data should have an even number of bytes")
		}

		// make a reference to the crunched data before creating space for
		// the uncrunched data
		working := c.data
		c.data = make([]byte, c.uncrunchedSize)

		// undo the RLE process
		var idx int
		for i := 0; i < len(working); i += 2 {
			for r := 0; r <= int(working[i+1]); r++ {
				c.data[idx] = working[i]
				idx++
			}
		}

		c.crunched = false
	}

	return &c.data
}

// Snapshot implements the Data interface.
func (c *quick) Snapshot() Data {
	d := *c

	if !d.crunched {
		working := make([]byte, d.uncrunchedSize)

		var ct int
		var idx int
		working[idx] = c.data[0]

		// assume crunching has succeeded unless told otherwise
		d.crunched = true

		// very basic RLE algorithm:
		// 1) each byte is followed by a count value
		// 2) maximum count value is 255
		for _, v := range c.data[1:] {
			if v == working[idx] && ct < 255 {
				ct++
			} else {
				// two bytes are about to be added to the crunch stream.
				// make sure that won't overflow the working array
				if idx >= len(working)-2 {
					d.crunched = false
					break // for loop
				}

				// output count to the crunch stream
				idx++
				working[idx] = byte(ct)

				// output new byte to crunch stream
				idx++
				working[idx] = v

				// count will begin again with the new byte
				ct = 0
			}
		}

		// if the data has been crunched then allocate just enough memory
		// to store the crunched data before returning
		if d.crunched {
			idx++
			working[idx] = byte(ct)
			d.data = make([]byte, idx+1)
			copy(d.data, working[:idx+1])
			return &d
		}

		// if data is not crunched then we intentionally fall through to
		// the plain data copy below
	}

	// copy data as it exists now. this may be crunched data or uncrunched
	// data. it doesn't matter either way
	d.data = make([]byte, len(c.data))
	copy(d.data, c.data)

	return &d
}

// Inspect implements the Inspection interface.
func (c *quick) Inspect() *[]byte {
	return &c.data
}
