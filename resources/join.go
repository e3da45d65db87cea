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

// Package resources contains functions to prepare paths to gopher1013
// resources, such as ROM images.
//
// The policy of JoinPath() is simple: if the base resource path, currently
// defined to be ".gopher1013", is present in the program's current
// directory then that is the base path that will be used. If it is not,
// then the user's config directory is used. The package uses
// os.UserConfigDir() from the go standard library for this.
package resources

import (
	"os"
	"path/filepath"
	"strings"
)

// the base path for all resources when found in the current directory.
const baseResourcePath = ".gopher1013"

// the base path for all resources when under the user's config directory.
const configDir = "gopher1013"

// JoinPath prepends the supplied path with an OS specific base path. The
// function creates all folders necessary to reach the end of the sub-path.
// It does not otherwise touch or create the file.
func JoinPath(path ...string) (string, error) {
	p := filepath.Join(path...)

	b, err := basePath()
	if err != nil {
		return "", err
	}

	// do not prepend base path if it is already present
	if !strings.HasPrefix(p, b) {
		p = filepath.Join(b, p)
	}

	// check if path already exists
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}

	// create path if necessary
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return "", err
	}

	return p, nil
}

func basePath() (string, error) {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath, nil
	}

	cnf, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(cnf, configDir), nil
}
