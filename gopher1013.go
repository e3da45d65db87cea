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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kaipeter/gopher1013/cassette"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/logger"
	"github.com/kaipeter/gopher1013/modalflag"
	"github.com/kaipeter/gopher1013/performance"
	"github.com/kaipeter/gopher1013/playmode"
	"github.com/kaipeter/gopher1013/regression"
	"github.com/kaipeter/gopher1013/roms"
	"github.com/kaipeter/gopher1013/statsview"
	"github.com/kaipeter/gopher1013/version"
)

// SDL wants its event handling on the main thread so everything runs on
// the main thread.
func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PLAY", "PERFORMANCE", "REGRESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		fallthrough

	case "PLAY":
		err = play(md)

	case "PERFORMANCE":
		err = perform(md)

	case "REGRESS":
		err = regress(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(20)
	}
}

// machineConfig gathers the flags common to every mode that builds a
// machine. call after NewMode() and before Parse().
type machineFlags struct {
	model   *string
	monitor *string
	font    *string
}

func addMachineFlags(md *modalflag.Modes) machineFlags {
	return machineFlags{
		model:   md.AddString("model", "Z1013.64", "machine model: Z1013.01, Z1013.16, Z1013.64"),
		monitor: md.AddString("monitor", "", "monitor ROM image (default: roms directory of resource path)"),
		font:    md.AddString("font", "", "font ROM image (default: roms directory of resource path)"),
	}
}

func (mf machineFlags) config() (hardware.Config, error) {
	variant, err := hardware.ParseVariant(*mf.model)
	if err != nil {
		return hardware.Config{}, err
	}
	return roms.LoadConfig(variant, *mf.monitor, *mf.font)
}

// loaderArg turns the single remaining command line argument, if there is
// one, into a cassette loader.
func loaderArg(md *modalflag.Modes) (*cassette.Loader, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, nil
	case 1:
		cl := cassette.NewLoader(md.GetArg(0), cassette.FormatAuto)
		return &cl, nil
	}
	return nil, fmt.Errorf("too many arguments for %s mode", md)
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	scaling := md.AddFloat64("scale", 2.0, "window scaling")
	fpsCap := md.AddBool("fpscap", true, "cap fps to the 50Hz of the real machine")
	wav := md.AddString("wav", "", "record audio to wav file")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	config, err := mf.config()
	if err != nil {
		return err
	}

	cartload, err := loaderArg(md)
	if err != nil {
		return err
	}

	return playmode.Play(config, cartload, float32(*scaling), *fpsCap, *wav)
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	profile := md.AddString("profile", "none", "run through the profiler: cpu, mem, trace, all")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	stats := md.AddBool("statsview", false, "serve runtime statistics")
	graph := md.AddString("memgraph", "", "write a dot graph of the machine to file")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	prof, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview is not available in this build (rebuild with the statsview tag)")
		}
		statsview.Launch(md.Output)
	}

	config, err := mf.config()
	if err != nil {
		return err
	}

	cartload, err := loaderArg(md)
	if err != nil {
		return err
	}

	return performance.Check(md.Output, prof, config, cartload, *duration, *graph)
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "ADD", "DELETE")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		return regression.RegressRun(md.Output, md.RemainingArgs())

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		return regression.RegressList(md.Output)

	case "ADD":
		md.NewMode()

		model := md.AddString("model", "Z1013.64", "machine model: Z1013.01, Z1013.16, Z1013.64")
		frames := md.AddInt("frames", 250, "number of frames to run")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		var cassetteFile string
		switch len(md.RemainingArgs()) {
		case 0:
		case 1:
			cassetteFile = md.GetArg(0)
		default:
			return fmt.Errorf("too many arguments for %s mode", md)
		}

		reg := &regression.VideoRegression{
			CassetteFile: cassetteFile,
			Model:        *model,
			NumFrames:    *frames,
		}
		return regression.RegressAdd(md.Output, reg)

	case "DELETE":
		md.NewMode()

		yes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}

		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("database key required for %s mode", md)
		}

		var confirmation io.Reader = os.Stdin
		if *yes {
			confirmation = strings.NewReader("y")
		}

		return regression.RegressDelete(md.Output, confirmation, md.GetArg(0))
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	fmt.Printf("%s (%s)\n", version.ApplicationName, version.Version)

	return nil
}
