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

package rewind

import "fmt"

// Timeline provides a summary of the current state of the rewind system.
//
// Useful for user interfaces, to present the range of frame numbers that are
// available in the rewind history.
type Timeline struct {
	// the earliest and latest frame numbers that are available in the
	// history. both fields are -1 if the history is empty
	AvailableStart int
	AvailableEnd   int

	// the current frame number of the emulation
	Current int

	// number of frames in the history, the position in the history and the
	// maximum number of frames that can be kept
	Len      int
	Position int
	Capacity int
}

func (tl Timeline) String() string {
	if tl.Len == 0 {
		return fmt.Sprintf("frame %d: no history", tl.Current)
	}
	return fmt.Sprintf("frame %d: history %d to %d (%d/%d) at %d",
		tl.Current, tl.AvailableStart, tl.AvailableEnd, tl.Len, tl.Capacity, tl.Position)
}

// GetTimeline returns a summary of the history.
func (r *Rewind) GetTimeline() (Timeline, error) {
	tl := Timeline{
		AvailableStart: -1,
		AvailableEnd:   -1,
		Current:        r.frameNum,
		Len:            r.buf.Len(),
		Position:       r.Position(),
		Capacity:       r.buf.Capacity(),
	}

	if tl.Len == 0 {
		return tl, nil
	}

	var err error
	tl.AvailableStart, err = r.frameNumAt(0)
	if err != nil {
		return tl, err
	}
	tl.AvailableEnd, err = r.frameNumAt(tl.Len - 1)
	if err != nil {
		return tl, err
	}

	return tl, nil
}
