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

package event

import "fmt"

// Unset is the value of a Mouse field that has not been set.
const Unset = -1

// Mouse is an Event with additional information about the mouse.
type Mouse struct {
	Event Event

	WindowID int
	X, Y     int
	ScrollX  int
	ScrollY  int
	Button   int
}

// NewMouse is the preferred method of initialisation for the Mouse type. All
// fields other than the Event are Unset.
func NewMouse(ev Event) Mouse {
	return Mouse{
		Event:    ev,
		WindowID: Unset,
		X:        Unset,
		Y:        Unset,
		ScrollX:  Unset,
		ScrollY:  Unset,
		Button:   Unset,
	}
}

func (m Mouse) String() string {
	return fmt.Sprintf("%s (window %d) at %d,%d scroll %d,%d button %d",
		m.Event, m.WindowID, m.X, m.Y, m.ScrollX, m.ScrollY, m.Button)
}
