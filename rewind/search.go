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

import (
	"io"

	"github.com/jetsetilly/statecodec/curated"
)

// stateByteAt returns the byte of machine state at offset in the frame at
// index.
func (r *Rewind) stateByteAt(index int, offset int) (uint8, error) {
	if err := r.buf.SeekFrame(index); err != nil {
		return 0, err
	}
	if _, err := r.buf.Seek(int64(StateOffset+offset), io.SeekStart); err != nil {
		return 0, err
	}
	return r.buf.ReadUint8()
}

// SearchState looks backwards through the history, starting at the current
// position, for the frame in which the byte of state at offset most recently
// took on value. The valueMask is applied to both the value and the state
// byte to select specific bits.
//
// Returns the index of the earliest frame in the most recent run of frames
// in which the masked state byte equals the masked value. The returned
// boolean is false if there is no such frame.
//
// Because the history only holds every Prefs.Freq frames the actual change
// may have happened at any point after the frame before the returned index.
func (r *Rewind) SearchState(offset int, value uint8, valueMask uint8) (int, bool, error) {
	if offset < 0 {
		return -1, false, curated.Errorf("rewind: search: negative offset (%d)", offset)
	}

	match := func(index int) (bool, error) {
		v, err := r.stateByteAt(index, offset)
		if err != nil {
			return false, curated.Errorf("rewind: search: %v", err)
		}
		return v&valueMask == value&valueMask, nil
	}

	// find the most recent frame that matches
	i := r.Position()
	for ; i >= 0; i-- {
		ok, err := match(i)
		if err != nil {
			return -1, false, err
		}
		if ok {
			break
		}
	}
	if i < 0 {
		return -1, false, nil
	}

	// and then the start of the run of matching frames
	for i > 0 {
		ok, err := match(i - 1)
		if err != nil {
			return -1, false, err
		}
		if !ok {
			break
		}
		i--
	}

	return i, true, nil
}
