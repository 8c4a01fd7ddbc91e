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
	"github.com/jetsetilly/statecodec/curated"
)

// Difference is a single byte of machine state that differs between the
// comparison frame and another frame. The offset is relative to StateOffset.
type Difference struct {
	Offset int
	Was    uint8
	Now    uint8
}

// ComparisonLocked returns true if the comparison frame is locked.
func (r *Rewind) ComparisonLocked() bool {
	return r.comparisonLocked
}

// SetComparison copies the frame at index for later comparison. The
// comparison frame is set even if it is locked.
func (r *Rewind) SetComparison(index int) error {
	var err error
	r.comparison, err = r.buf.AppendFrame(r.comparison[:0], index)
	if err != nil {
		return curated.Errorf("rewind: comparison: %v", err)
	}
	return nil
}

// UpdateComparison copies the frame at the current position unless the
// comparison frame is locked.
func (r *Rewind) UpdateComparison() error {
	if r.comparisonLocked || r.buf.Len() == 0 {
		return nil
	}
	return r.SetComparison(r.Position())
}

// LockComparison stops the comparison frame from being changed by
// UpdateComparison().
func (r *Rewind) LockComparison(locked bool) {
	r.comparisonLocked = locked
}

// Compare the state in the frame at index with the comparison frame. Bytes
// that are present in one frame but not the other are compared with zero.
func (r *Rewind) Compare(index int) ([]Difference, error) {
	if len(r.comparison) == 0 {
		return nil, curated.Errorf("rewind: comparison: no comparison frame")
	}

	now, err := r.buf.AppendFrame(nil, index)
	if err != nil {
		return nil, curated.Errorf("rewind: comparison: %v", err)
	}

	at := func(data []byte, i int) uint8 {
		if i < len(data) {
			return data[i]
		}
		return 0
	}

	var diffs []Difference
	for i := StateOffset; i < max(len(now), len(r.comparison)); i++ {
		was := at(r.comparison, i)
		n := at(now, i)
		if was != n {
			diffs = append(diffs, Difference{Offset: i - StateOffset, Was: was, Now: n})
		}
	}

	return diffs, nil
}
