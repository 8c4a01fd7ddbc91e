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

package test

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// CappedStream is a seekable in-memory byte stream that will not grow beyond
// a fixed size. Writes that would take the stream beyond that size are
// truncated and return a short count without an error, which is how some
// real devices behave when they are full.
//
// Calls to Flush() and Sync() are counted.
type CappedStream struct {
	buffer []byte
	size   int
	pos    int64

	Flushed int
	Synced  int
}

// NewCappedStream is the preferred method of initialisation for the
// CappedStream type.
func NewCappedStream(size int) (*CappedStream, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid size for CappedStream (%d)", size)
	}
	return &CappedStream{
		size:   size,
		buffer: make([]byte, 0, size),
	}, nil
}

// NewCappedStreamFromBytes creates a CappedStream that is already populated.
// The size of the stream is the length of the data.
func NewCappedStreamFromBytes(data []byte) *CappedStream {
	b := make([]byte, len(data))
	copy(b, data)
	return &CappedStream{
		size:   len(b),
		buffer: b,
	}
}

// Bytes returns a copy of the stream's contents.
func (s *CappedStream) Bytes() []byte {
	b := make([]byte, len(s.buffer))
	copy(b, s.buffer)
	return b
}

// Write implements the io.Writer interface.
func (s *CappedStream) Write(p []byte) (int, error) {
	n := 0
	for _, b := range p {
		if s.pos >= int64(s.size) {
			break
		}
		if s.pos < int64(len(s.buffer)) {
			s.buffer[s.pos] = b
		} else {
			s.buffer = append(s.buffer, b)
		}
		s.pos++
		n++
	}
	return n, nil
}

// Read implements the io.Reader interface.
func (s *CappedStream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if s.pos >= int64(len(s.buffer)) {
		return 0, io.EOF
	}
	n := copy(p, s.buffer[s.pos:])
	s.pos += int64(n)
	return n, nil
}

// Seek implements the io.Seeker interface.
func (s *CappedStream) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = s.pos + offset
	case io.SeekEnd:
		pos = int64(len(s.buffer)) + offset
	default:
		return s.pos, fmt.Errorf("%w: whence value (%d)", os.ErrInvalid, whence)
	}
	if pos < 0 {
		return s.pos, fmt.Errorf("%w: negative seek position (%d)", os.ErrInvalid, pos)
	}

	// seeking beyond the end of the buffer pads the buffer with zeroes, up to
	// the size of the stream
	for int64(len(s.buffer)) < pos && len(s.buffer) < s.size {
		s.buffer = append(s.buffer, 0)
	}

	s.pos = pos
	return s.pos, nil
}

// Flush counts the number of times it is called.
func (s *CappedStream) Flush() error {
	s.Flushed++
	return nil
}

// Sync counts the number of times it is called.
func (s *CappedStream) Sync() error {
	s.Synced++
	return nil
}

// ErrFailingStream is the error returned by a FailingStream with no Err field.
var ErrFailingStream = errors.New("failing stream")

// FailingStream is a byte stream for which every operation fails.
type FailingStream struct {
	Err error
}

func (s FailingStream) err() error {
	if s.Err == nil {
		return ErrFailingStream
	}
	return s.Err
}

// Write implements the io.Writer interface.
func (s FailingStream) Write(p []byte) (int, error) {
	return 0, s.err()
}

// Read implements the io.Reader interface.
func (s FailingStream) Read(p []byte) (int, error) {
	return 0, s.err()
}

// Seek implements the io.Seeker interface.
func (s FailingStream) Seek(offset int64, whence int) (int64, error) {
	return 0, s.err()
}

// Sync always fails.
func (s FailingStream) Sync() error {
	return s.err()
}
