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

package snapshot

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/statecodec/codec"
)

// Version is the snapshot format version. Any change to the layout of the
// state written by the machine must be accompanied by a change to this
// value.
const Version uint32 = 9

// IncompatibleVersionError is returned when a snapshot has a version tag
// other than Version.
type IncompatibleVersionError struct {
	Found    uint32
	Expected uint32
}

func (e *IncompatibleVersionError) Error() string {
	return fmt.Sprintf("snapshot: incompatible version (found %d, expected %d)", e.Found, e.Expected)
}

// IsIncompatibleVersion returns true if the error, or any error it wraps, is
// an IncompatibleVersionError.
func IsIncompatibleVersion(err error) bool {
	var v *IncompatibleVersionError
	return errors.As(err, &v)
}

// WriteVersion writes the version tag at the current position of the stream.
func WriteVersion(s codec.Stream) error {
	return codec.WriteUint32(s, Version)
}

// CheckVersion reads a version tag from the current position of the stream
// and compares it with Version.
func CheckVersion(s codec.Stream) error {
	v, err := codec.ReadUint32(s)
	if err != nil {
		return err
	}
	if v != Version {
		return &IncompatibleVersionError{Found: v, Expected: Version}
	}
	return nil
}
