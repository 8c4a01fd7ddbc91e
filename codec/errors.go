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

// Error patterns for use with curated.Errorf(), curated.Is() and
// curated.Has().
const (
	// value passed to WriteUint8() is not in the range 0 to 255
	InvalidByteValue = "codec: invalid byte value (%d)"

	// fewer bytes are available than have been asked for
	UnexpectedEndOfStream = "codec: unexpected end of stream"

	// the underlying medium failed to read or write
	IOReadError  = "codec: read error: %v"
	IOWriteError = "codec: write error: %v"

	// a write would go beyond the end of the active frame
	FrameOverflow = "codec: frame overflow (frame size is %d bytes)"

	// commit of a frame in which a write has failed
	IncompleteFrame = "codec: incomplete frame: %v"

	// frame index is not in the range of retained frames
	FrameIndexOutOfRange = "codec: frame index out of range (%d with %d frames retained)"

	// frame operation on a backend with no notion of frames
	UnsupportedOperation = "codec: unsupported operation: %s"

	// a write or commit with no frame allocated for writing
	NoWritableFrame = "codec: no frame allocated for writing"

	// seek position is outside the range allowed by the backend
	SeekOutOfRange = "codec: seek out of range (%d)"
)
