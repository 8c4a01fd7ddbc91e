// This file is part of Statecodec.
//
// Statecodec is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Statecodec is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Statecodec.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/afero"

	"github.com/jetsetilly/statecodec/digest"
	"github.com/jetsetilly/statecodec/easyterm"
	"github.com/jetsetilly/statecodec/event"
	"github.com/jetsetilly/statecodec/gameshark"
	"github.com/jetsetilly/statecodec/logger"
	"github.com/jetsetilly/statecodec/machine"
	"github.com/jetsetilly/statecodec/modalflag"
	"github.com/jetsetilly/statecodec/paths"
	"github.com/jetsetilly/statecodec/prefs"
	"github.com/jetsetilly/statecodec/recorder"
	"github.com/jetsetilly/statecodec/rewind"
	"github.com/jetsetilly/statecodec/snapshot"
	"github.com/jetsetilly/statecodec/statsview"
	"github.com/jetsetilly/statecodec/version"
)

// exit values
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
)

func main() {
	os.Exit(launch(afero.NewOsFs(), os.Args[1:], os.Stdout))
}

// launch runs the mode selected by args and returns the exit value.
func launch(fs afero.Fs, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("SAVE", "LOAD", "REWIND", "RECORD", "REPLAY", "CHEATS", "EVENTS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	switch md.Mode() {
	case "SAVE":
		err = save(fs, md)
	case "LOAD":
		err = load(fs, md)
	case "REWIND":
		err = rewindMode(fs, md)
	case "RECORD":
		err = record(fs, md)
	case "REPLAY":
		err = replay(fs, md)
	case "CHEATS":
		err = cheats(fs, md)
	case "EVENTS":
		err = events(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return exitModeError
	}

	return exitOK
}

// addLogFlag adds the -log flag common to every mode.
func addLogFlag(md *modalflag.Modes) *bool {
	return md.AddBool("log", false, "echo log to output")
}

func setLogEcho(md *modalflag.Modes, echo bool) {
	if echo {
		logger.SetEcho(md.Output)
	} else {
		logger.SetEcho(nil)
	}
}

// parseMode parses the flags for the mode and checks the number of remaining
// arguments. The returned bool is false if the mode should not continue.
func parseMode(md *modalflag.Modes, log *bool, numArgs int) (bool, error) {
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return false, err
	}

	setLogEcho(md, *log)

	switch n := len(md.RemainingArgs()); {
	case n < numArgs:
		return false, fmt.Errorf("%s mode requires %d argument(s)", md, numArgs)
	case n > numArgs:
		return false, fmt.Errorf("too many arguments for %s mode", md)
	}

	return true, nil
}

// run the machine for the number of frames, applying any events from the
// playback. plb can be nil.
func run(m *machine.Machine, frames int, plb *recorder.Playback, fn func() error) error {
	for f := 0; f < frames; f++ {
		if plb != nil {
			for _, ev := range plb.Next(uint64(f)) {
				m.HandleEvent(ev)
			}
		}
		m.Step()
		if fn != nil {
			if err := fn(); err != nil {
				return err
			}
		}
	}
	return nil
}

func save(fs afero.Fs, md *modalflag.Modes) error {
	md.NewMode()
	md.Usage("<snapshot file>")

	frames := md.AddInt("frames", 60, "number of frames to run before saving")
	replayFile := md.AddString("replay", "", "replay file to apply while running")
	cheatFile := md.AddString("cheats", "", "gameshark cheat file to apply before running")
	log := addLogFlag(md)

	ok, err := parseMode(md, log, 1)
	if !ok {
		return err
	}

	m := machine.NewMachine()

	if *cheatFile != "" {
		ch, err := gameshark.Load(fs, *cheatFile)
		if err != nil {
			return err
		}
		if err := ch.Apply(m); err != nil {
			return err
		}
	}

	var plb *recorder.Playback
	if *replayFile != "" {
		plb, err = recorder.Open(fs, *replayFile)
		if err != nil {
			return err
		}
	}

	if err := run(m, *frames, plb, nil); err != nil {
		return err
	}

	if err := snapshot.Save(fs, md.GetArg(0), m); err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "saved %s\n", md.GetArg(0))
	return printMachine(md.Output, m)
}

func load(fs afero.Fs, md *modalflag.Modes) error {
	md.NewMode()
	md.Usage("<snapshot file>")
	log := addLogFlag(md)

	ok, err := parseMode(md, log, 1)
	if !ok {
		return err
	}

	m := machine.NewMachine()
	if err := snapshot.Load(fs, md.GetArg(0), m); err != nil {
		var verr *snapshot.IncompatibleVersionError
		if errors.As(err, &verr) {
			return fmt.Errorf("%s was made by an incompatible version (%d, expected %d)", md.GetArg(0), verr.Found, verr.Expected)
		}
		return err
	}

	return printMachine(md.Output, m)
}

// printMachine writes the machine state and its fingerprint.
func printMachine(output io.Writer, m *machine.Machine) error {
	h, err := digest.Of(m)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, m)
	fmt.Fprintf(output, "digest %s\n", h)
	return nil
}

func rewindMode(fs afero.Fs, md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("In interactive mode the cursor keys move through the history,\n" +
		"space runs one frame from the current position and q quits.")

	frames := md.AddInt("frames", 300, "number of frames to run")
	back := md.AddInt("back", 0, "number of snapshots to step back after running")
	interactive := md.AddBool("interactive", false, "browse the history with the cursor keys")
	memvizFile := md.AddString("memviz", "", "write a graphviz map of the rewind buffer to file")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	prefsOverride := md.AddString("prefs", "", "rewind preferences for this run (eg. \"rewind.freq::2\")")
	log := addLogFlag(md)

	ok, err := parseMode(md, log, 0)
	if !ok {
		return err
	}

	if *prefsOverride != "" {
		prefs.PushCommandLineStack(*prefsOverride)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "statecodec", "unused preferences: %s", unused)
			}
		}()
	}

	if *stats {
		srv := statsview.Launch(md.Output)
		defer srv.Stop()
	}

	pth, err := paths.ResourcePath(fs, "", prefs.DefaultPrefsFile)
	if err != nil {
		return err
	}

	rp, err := rewind.NewPreferences(fs, pth)
	if err != nil {
		return err
	}

	buf, err := rp.NewBuffer()
	if err != nil {
		return err
	}

	m := machine.NewMachine()
	rw := rewind.NewRewind(buf, rp)

	err = run(m, *frames, nil, func() error {
		return rw.Capture(m)
	})
	if err != nil {
		return err
	}

	if *back > 0 {
		if err := rw.StepBack(m, *back); err != nil {
			return err
		}
	}

	tl, err := rw.GetTimeline()
	if err != nil {
		return err
	}
	fmt.Fprintln(md.Output, tl)
	fmt.Fprintln(md.Output, m)

	if *memvizFile != "" {
		if err := writeMemviz(fs, *memvizFile, buf); err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "rewind buffer map written to %s\n", *memvizFile)
	}

	if *interactive {
		trm, err := easyterm.Open(md.Output)
		if err != nil {
			return err
		}
		defer trm.CleanUp()
		return browse(trm, rw, m)
	}

	return nil
}

// bufferMap is the structure drawn by memviz. the frame data itself is too
// large to draw
type bufferMap struct {
	Capacity  int
	FrameSize int
	Frames    []rewind.FrameInfo
}

func writeMemviz(fs afero.Fs, pth string, buf *rewind.Buffer) (rerr error) {
	f, err := fs.Create(pth)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	memviz.Map(f, &bufferMap{
		Capacity:  buf.Capacity(),
		FrameSize: buf.FrameSize(),
		Frames:    buf.Frames(),
	})

	return nil
}

// browse the rewind history with key presses until the user quits or the
// input is exhausted.
func browse(trm *easyterm.Terminal, rw *rewind.Rewind, m *machine.Machine) error {
	keys := make(chan easyterm.Key)
	keyErr := make(chan error, 1)
	go func() {
		for {
			k, err := trm.ReadKey()
			if err != nil {
				keyErr <- err
				return
			}
			keys <- k
		}
	}()

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	var held easyterm.Key
	var hold int

	for {
		tl, err := rw.GetTimeline()
		if err != nil {
			return err
		}
		trm.Print("\r%s\x1b[K", tl)

		select {
		case <-intChan:
			trm.Print("\n")
			return nil

		case err := <-keyErr:
			trm.Print("\n")
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err

		case k := <-keys:
			if k == held {
				hold++
			} else {
				held = k
				hold = 1
			}

			switch k {
			case easyterm.KeyLeft, 'h':
				if n := rewind.StepsForHold(hold); n > 0 {
					err = rw.StepBack(m, n)
				}
			case easyterm.KeyRight, 'l':
				if n := rewind.StepsForHold(hold); n > 0 {
					err = rw.StepForward(m, n)
				}
			case easyterm.KeyDown:
				err = rw.Goto(m, 0)
			case easyterm.KeyUp:
				err = rw.GotoLast(m)
			case ' ':
				m.Step()
				err = rw.Capture(m)
			case 'm':
				trm.Print("\n%s\n", m)
			case 'q', 'Q', easyterm.KeyEsc:
				trm.Print("\n")
				return nil
			}

			if err != nil {
				trm.Print("\n")
				return err
			}
		}
	}
}

func record(fs afero.Fs, md *modalflag.Modes) error {
	md.NewMode()
	md.Usage("<script file> <replay file>")
	md.AdditionalHelp("Each line of the script is a frame number followed by a colon and a\n" +
		"comma separated list of events. For example:\n\n" +
		"\t10: PRESS_ARROW_RIGHT\n\t20: RELEASE_ARROW_RIGHT, PRESS_BUTTON_A")
	log := addLogFlag(md)

	ok, err := parseMode(md, log, 2)
	if !ok {
		return err
	}

	script, err := afero.ReadFile(fs, md.GetArg(0))
	if err != nil {
		return err
	}

	entries, err := recorder.ParseScript(string(script))
	if err != nil {
		return err
	}

	rec, err := recorder.Create(fs, md.GetArg(1))
	if err != nil {
		return err
	}

	if err := rec.RecordEntries(entries); err != nil {
		_ = rec.End()
		return err
	}

	if err := rec.End(); err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "%d entries written to %s\n", len(entries), md.GetArg(1))

	return nil
}

func replay(fs afero.Fs, md *modalflag.Modes) error {
	md.NewMode()
	md.Usage("<replay file>")
	verbose := md.AddBool("verbose", false, "list every entry in the replay")
	log := addLogFlag(md)

	ok, err := parseMode(md, log, 1)
	if !ok {
		return err
	}

	plb, err := recorder.Open(fs, md.GetArg(0))
	if err != nil {
		return err
	}

	if *verbose {
		for _, e := range plb.Entries() {
			fmt.Fprintln(md.Output, e)
		}
	}

	// the fingerprint of every frame is chained into a single fingerprint
	// for the entire replay
	m := machine.NewMachine()
	dig := digest.NewState()
	err = run(m, int(plb.EndFrame())+1, plb, func() error {
		return dig.Capture(m)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(md.Output, plb)
	fmt.Fprintln(md.Output, m)
	fmt.Fprintf(md.Output, "replay digest %s\n", dig.Hash())

	return nil
}

func cheats(fs afero.Fs, md *modalflag.Modes) error {
	md.NewMode()
	md.Usage("<cheat file>")
	log := addLogFlag(md)

	ok, err := parseMode(md, log, 1)
	if !ok {
		return err
	}

	ch, err := gameshark.Load(fs, md.GetArg(0))
	if err != nil {
		return err
	}

	for _, c := range ch.List() {
		fmt.Fprintln(md.Output, c)
	}

	return nil
}

func events(md *modalflag.Modes) error {
	md.NewMode()
	internal := md.AddBool("internal", false, "include internal events")
	log := addLogFlag(md)

	ok, err := parseMode(md, log, 0)
	if !ok {
		return err
	}

	var s strings.Builder
	for _, ev := range event.List() {
		if ev.Internal() && !*internal {
			continue
		}
		fmt.Fprintf(&s, "%2d %s\n", int(ev), ev)
	}
	io.WriteString(md.Output, s.String())

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information")
	log := addLogFlag(md)

	ok, err := parseMode(md, log, 0)
	if !ok {
		return err
	}

	v, r, _ := version.Version()
	if *revision {
		fmt.Fprintf(md.Output, "%s %s (%s)\n", version.ApplicationName, v, r)
	} else {
		fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, v)
	}

	return nil
}
