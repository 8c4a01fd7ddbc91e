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

// Package recorder writes and plays back replay files. A replay file is a
// record of the input events sent to the machine and the frame on which each
// event was sent.
//
// Replay files are written and read through the codec. The format is:
//
//	[u32 replay version]
//	[u64 frame][u8 count][count x u8 event]
//	[u64 frame][u8 count][count x u8 event]
//	...
//
// Events are stored as their numeric value. See the event package for why
// those values never change.
//
// Frames must be recorded in increasing order and there is at most one
// entry per frame.
//
// A replay can also be described with a script, parsed by ParseScript(). Each
// line of a script is a frame number followed by a colon and a comma
// separated list of event names:
//
//	# comments and blank lines are ignored
//	10: PRESS_ARROW_UP
//	25: RELEASE_ARROW_UP, PRESS_BUTTON_A
package recorder
