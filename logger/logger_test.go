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

package logger_test

import (
	"strings"
	"testing"

	"github.com/kaipeter/gopher1013/logger"
	"github.com/kaipeter/gopher1013/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	s := &strings.Builder{}
	logger.Write(s)
	test.Equate(t, s.String(), "")

	logger.Log("test", "this is a test")
	logger.Write(s)
	test.Equate(t, s.String(), "test: this is a test\n")

	// identical adjacent entries collapse into one
	logger.Log("test", "this is a test")
	s.Reset()
	logger.Write(s)
	test.Equate(t, s.String(), "test: this is a test (repeat x2)\n")

	logger.Logf("test2", "this is test %d", 2)
	s.Reset()
	logger.Tail(s, 1)
	test.Equate(t, s.String(), "test2: this is test 2\n")
}
