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

// Package memgraph writes a graphviz dot graph of the pointer structure of
// a running machine. Useful when chasing down state that survives a
// snapshot restore when it should not, or vice versa.
//
// Render the output with the dot tool:
//
//	gopher1013 performance -memgraph machine.dot demo.z80
//	dot -Tsvg machine.dot > machine.svg
package memgraph

import (
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/logger"
)

// Write the pointer graph of the machine to the given writer.
func Write(w io.Writer, mc *hardware.Machine) {
	memviz.Map(w, mc)
}

// WriteFile writes the pointer graph of the machine to the named file.
func WriteFile(filename string, mc *hardware.Machine) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("memgraph: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("memgraph: %v", err)
		}
	}()

	Write(f, mc)
	logger.Logf("memgraph", "written to %s", filename)

	return nil
}
