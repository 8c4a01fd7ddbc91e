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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes, and sub-modes of those modes, each with
// its own set of flags.
//
// The arguments are given once with NewArgs() and are then consumed by
// successive calls to Parse(). Each call to Parse() processes the flags added
// since the most recent NewMode() and then, if sub-modes have been added,
// looks for one of the sub-modes in the next argument:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("SAVE", "LOAD")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "SAVE":
//		md.NewMode()
//		frames := md.AddInt("frames", 60, "number of frames to run")
//		...
//	}
//
// The first sub-mode is the default. If the next argument is not a sub-mode
// then the default sub-mode is selected and the argument is left for the
// following Parse(). Sub-mode comparisons are case insensitive and the value
// returned by Mode() is always upper case.
//
// The path of modes selected so far is available with Path(). It is used in
// help messages, which are printed automatically when the -help flag is seen.
package modalflag
