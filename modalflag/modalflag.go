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

package modalflag

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const modeSeparator = "/"

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing. if sub-modes were added then
	// Mode() says which one was selected
	ParseContinue ParseResult = iota

	// help was requested and has been printed to the Output
	ParseHelp

	// the error is returned as the second return value of Parse()
	ParseError
)

func (p ParseResult) String() string {
	switch p {
	case ParseContinue:
		return "continue"
	case ParseHelp:
		return "help"
	case ParseError:
		return "error"
	}
	return "unknown"
}

// Modes handles command line arguments for a program with modes. The Output
// field should be set before calling Parse(), otherwise help messages are
// written to os.Stdout.
type Modes struct {
	Output io.Writer

	// the full argument list and the index of the first argument not yet
	// consumed by Parse()
	args    []string
	argsIdx int

	// flag set for the current mode. replaced by NewMode()
	flags *flag.FlagSet

	// sub-modes for the current mode. the first entry is the default
	subModes []string

	// usage line and extended help for the current mode
	usage          string
	additionalHelp string

	parsed bool

	// every mode selected since NewArgs()
	path []string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode. Empty if no mode has been
// selected.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every mode selected since NewArgs(), joined with a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs resets the Modes with a new list of arguments and begins a new mode.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode discards the flags and sub-modes of the current mode. Arguments
// not consumed by the previous Parse() remain available to the new mode.
func (md *Modes) NewMode() {
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.flags.SetOutput(io.Discard)
	md.flags.Usage = func() {}
	md.subModes = md.subModes[:0]
	md.usage = ""
	md.additionalHelp = ""
	md.parsed = false
}

// Usage sets the description of the non-flag arguments expected by the
// current mode. For example, "<snapshot file>".
func (md *Modes) Usage(usage string) {
	md.usage = usage
}

// AdditionalHelp adds text to the help message of the current mode.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns true if Parse() has been called since the most recent call
// to NewArgs() or NewMode(). A Parse() that failed still counts.
func (md *Modes) Parsed() bool {
	return md.parsed
}

// AddSubModes to the list of sub-modes for the next Parse(). The first
// sub-mode added is the default.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddDefaultSubMode adds a sub-mode to the front of the list, making it the
// default.
func (md *Modes) AddDefaultSubMode(subMode string) {
	md.subModes = append([]string{strings.ToUpper(subMode)}, md.subModes...)
}

// Parse the arguments for the current mode.
//
// Flags are parsed up to the first non-flag argument. If sub-modes have been
// added then that argument is compared with them. A match selects the
// sub-mode and the argument is consumed. Anything else selects the default
// sub-mode.
//
// An unrecognised flag is an error unless there are sub-modes, in which case
// the default sub-mode is selected and the arguments are left for it.
func (md *Modes) Parse() (ParseResult, error) {
	md.parsed = true

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			md.printHelp()
			return ParseHelp, nil
		}
		if len(md.subModes) == 0 {
			return ParseError, fmt.Errorf("%s: %w", md.name(), err)
		}
		md.path = append(md.path, md.subModes[0])
		return ParseContinue, nil
	}

	// the flags have been consumed
	md.argsIdx = len(md.args) - md.flags.NArg()

	if len(md.subModes) == 0 {
		return ParseContinue, nil
	}

	mode := md.subModes[0]
	arg := strings.ToUpper(md.flags.Arg(0))
	for _, m := range md.subModes {
		if m == arg {
			mode = m
			md.argsIdx++
			break // for loop
		}
	}
	md.path = append(md.path, mode)

	return ParseContinue, nil
}

// RemainingArgs returns the arguments that are not flags and not a sub-mode
// selector.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.argsIdx:]
}

// GetArg returns the numbered argument from RemainingArgs(). Empty if there
// is no such argument.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddDuration flag for next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// Visit calls fn for every flag that was set by the most recent Parse(), in
// lexicographical order.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}

func (md *Modes) name() string {
	if len(md.path) == 0 {
		return "flags"
	}
	return md.Path()
}

func (md *Modes) output() io.Writer {
	if md.Output == nil {
		return os.Stdout
	}
	return md.Output
}
