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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kaipeter/gopher1013/cassette"
	"github.com/kaipeter/gopher1013/curated"
	"github.com/kaipeter/gopher1013/hardware"
	"github.com/kaipeter/gopher1013/memgraph"
	"github.com/kaipeter/gopher1013/television"
)

// sentinel error returned by the Check() run loop.
var timedOut = errors.New("performance timed out")

// host time handed to the machine on every iteration of the run loop. one
// frame's worth keeps the video cadence the same as a paced emulation.
const frameMicros = 1000000 / television.FramesPerSecond

// Check the performance of the emulator using the supplied machine
// configuration.
//
// Emulation will run flat out for the specified duration and will create a
// cpu profile, a memory profile, a trace (or a combination of those) as
// defined by the Profile argument. A cassette is attached and played if a
// loader is supplied. A non-empty graphFile writes a memviz graph of the
// machine before the run begins.
func Check(output io.Writer, profile Profile, config hardware.Config, cartload *cassette.Loader, duration string, graphFile string) error {
	tv := television.NewTelevision()

	mc, err := hardware.NewMachine(tv, config)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	defer mc.Discard()

	if cartload != nil {
		if err := cassette.Attach(mc, cartload); err != nil {
			return curated.Errorf("performance: %v", err)
		}
		mc.Deck.Play()
	}

	if graphFile != "" {
		if err := memgraph.WriteFile(graphFile, mc); err != nil {
			return curated.Errorf("performance: %v", err)
		}
	}

	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	// get starting frame number (should be 0)
	startFrame := tv.FrameNum()

	// run for specified period of time
	runner := func() error {
		// setup trigger that expires when duration has elapsed. signals
		// true when the duration has expired. signals false to indicate
		// that performance measurement should start
		timerChan := make(chan bool)

		// force a two second leadtime to let the caches and the scheduler
		// settle down, then restart the timer for the specified duration
		go func() {
			time.AfterFunc(2*time.Second, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		for {
			if _, err := mc.Exec(frameMicros); err != nil {
				return err
			}

			select {
			case v := <-timerChan:
				// timerChan has returned true, which means the measurement
				// period has finished
				if v {
					return timedOut
				}

				// timerChan has returned false which indicates that the
				// leadtime has concluded. the measurement has begun and we
				// should record the start frame
				startFrame = tv.FrameNum()
			default:
			}
		}
	}

	// launch runner directly or through the profiler, depending on
	// supplied arguments
	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return curated.Errorf("performance: %v", err)
	}

	// get ending frame number
	endFrame := tv.FrameNum()

	// calculate performance
	numFrames := endFrame - startFrame
	fps, accuracy := CalcFPS(numFrames, dur.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)))

	return nil
}
