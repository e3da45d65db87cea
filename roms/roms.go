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

// Package roms locates and loads the monitor and font ROM images needed
// to build a machine. ROMs are not distributed with the project; they are
// expected in the "roms" directory of the resource path, or named
// explicitly on the command line.
package roms

import (
	"os"

	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/logger"
	"github.com/kaipeter/gopher1013/resources"
)

// default ROM image names, relative to the "roms" resource directory. the
// Z1013.01 shipped with the older monitor program.
const (
	romDir     = "roms"
	monitor202 = "mon_202.rom"
	monitorA2  = "mon_a2.rom"
	fontStd    = "font.rom"
)

// LoadConfig assembles a machine Config for the given variant. Empty
// monitor and font arguments load the variant's default image from the
// resource path.
func LoadConfig(variant hardware.Variant, monitorFile string, fontFile string) (hardware.Config, error) {
	config := hardware.Config{Variant: variant}

	if monitorFile == "" {
		name := monitorA2
		if variant == hardware.Z1013_01 {
			name = monitor202
		}

		var err error
		monitorFile, err = resources.JoinPath(romDir, name)
		if err != nil {
			return config, curated.Errorf("roms: %v", err)
		}
	}

	if fontFile == "" {
		var err error
		fontFile, err = resources.JoinPath(romDir, fontStd)
		if err != nil {
			return config, curated.Errorf("roms: %v", err)
		}
	}

	var err error
	config.MonitorROM, err = os.ReadFile(monitorFile)
	if err != nil {
		return config, curated.Errorf("roms: %v", err)
	}

	config.FontROM, err = os.ReadFile(fontFile)
	if err != nil {
		return config, curated.Errorf("roms: %v", err)
	}

	logger.Logf("roms", "monitor: %s", monitorFile)
	logger.Logf("roms", "font: %s", fontFile)

	return config, nil
}
