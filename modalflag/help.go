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
	"fmt"
	"io"
	"strings"
)

// printHelp writes the help message for the current mode to the Output.
func (md *Modes) printHelp() {
	w := md.output()

	var flags strings.Builder
	md.flags.SetOutput(&flags)
	md.flags.PrintDefaults()
	md.flags.SetOutput(io.Discard)

	if flags.Len() == 0 && len(md.subModes) == 0 && md.usage == "" && md.additionalHelp == "" {
		if len(md.path) == 0 {
			fmt.Fprintln(w, "No help available")
		} else {
			fmt.Fprintf(w, "No help available for %s\n", md.Path())
		}
		return
	}

	var s strings.Builder

	s.WriteString("Usage")
	if len(md.path) > 0 {
		fmt.Fprintf(&s, " for %s mode", md.Path())
	}
	s.WriteString(":")
	if md.usage != "" {
		fmt.Fprintf(&s, " %s", md.usage)
	}
	s.WriteString("\n")

	s.WriteString(flags.String())

	if len(md.subModes) > 0 {
		if flags.Len() > 0 {
			s.WriteString("\n")
		}
		fmt.Fprintf(&s, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(&s, "    default: %s\n", md.subModes[0])
	}

	if md.additionalHelp != "" {
		s.WriteString("\n")
		s.WriteString(md.additionalHelp)
		s.WriteString("\n")
	}

	io.WriteString(w, s.String())
}
