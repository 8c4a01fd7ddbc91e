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

package codec

import (
	"github.com/jetsetilly/statecodec/curated"
)

// Stream is the capability contract for a byte stream backend.
type Stream interface {
	// WriteUint8 writes a single byte at the current position. The value must
	// be in the range 0 to 255 or the InvalidByteValue error is returned and
	// the position is unchanged.
	WriteUint8(v int) error

	// ReadUint8 reads a single byte from the current position.
	ReadUint8() (uint8, error)

	// Seek implements the io.Seeker interface. The meaning of offset zero
	// depends on the backend.
	Seek(offset int64, whence int) (int64, error)

	// Tell returns the current position.
	Tell() (int64, error)

	// Flush makes sure all previous writes have reached the underlying
	// medium.
	Flush() error

	// NewFrame allocates a new frame for writing.
	NewFrame() error

	// CommitFrame marks the frame allocated by NewFrame() as valid.
	CommitFrame() error

	// SeekFrame moves the position to the start of the frame at index. Index
	// zero is the oldest frame.
	SeekFrame(index int) error
}

// Unframed can be embedded in a Stream implementation that has no concept of
// frames. The frame functions all return the UnsupportedOperation error.
type Unframed struct{}

// NewFrame implements the Stream interface.
func (Unframed) NewFrame() error {
	return curated.Errorf(UnsupportedOperation, "NewFrame")
}

// CommitFrame implements the Stream interface.
func (Unframed) CommitFrame() error {
	return curated.Errorf(UnsupportedOperation, "CommitFrame")
}

// SeekFrame implements the Stream interface.
func (Unframed) SeekFrame(_ int) error {
	return curated.Errorf(UnsupportedOperation, "SeekFrame")
}

// CheckByte returns the InvalidByteValue error if v is not in the range 0 to
// 255. All Stream implementations should call this at the start of
// WriteUint8().
func CheckByte(v int) error {
	if v < 0 || v > 0xff {
		return curated.Errorf(InvalidByteValue, v)
	}
	return nil
}
