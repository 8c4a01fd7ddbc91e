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

// Package filestream implements the codec.Stream interface over a seekable
// byte resource, usually a file opened for reading and writing.
//
// The File type does not open or close the resource. Scoped acquisition of
// the resource, and making sure it is closed on every exit path, is the
// responsibility of the caller. The snapshot package's Save() and Load()
// functions are examples of such callers.
//
// File has no concept of frames. The frame functions of the codec.Stream
// interface return the codec.UnsupportedOperation error.
package filestream

import (
	"errors"
	"io"
	"os"

	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
)

// Resource is the byte resource wrapped by the File type. If the Resource
// also has a Flush() function and/or a Sync() function they will be called
// by File.Flush(). An *os.File and an afero.File are both suitable
// Resources.
type Resource interface {
	io.Reader
	io.Writer
	io.Seeker
}

type flusher interface {
	Flush() error
}

type syncer interface {
	Sync() error
}

// File bridges the codec.Stream interface onto a Resource.
type File struct {
	codec.Unframed

	res Resource

	// optional capabilities of the resource, decided at construction time
	flush flusher
	sync  syncer

	// scratch space for single byte reads and writes
	scratch [1]byte
}

// NewFile is the preferred method of initialisation for the File type.
func NewFile(res Resource) *File {
	f := &File{res: res}
	f.flush, _ = res.(flusher)
	f.sync, _ = res.(syncer)
	return f
}

// WriteUint8 implements the codec.Stream interface.
func (f *File) WriteUint8(v int) error {
	if err := codec.CheckByte(v); err != nil {
		return err
	}

	f.scratch[0] = uint8(v)
	n, err := f.res.Write(f.scratch[:])
	if err != nil {
		return curated.Errorf(codec.IOWriteError, err)
	}
	if n != 1 {
		return curated.Errorf(codec.IOWriteError, io.ErrShortWrite)
	}

	return nil
}

// ReadUint8 implements the codec.Stream interface.
func (f *File) ReadUint8() (uint8, error) {
	_, err := io.ReadFull(f.res, f.scratch[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, curated.Errorf(codec.UnexpectedEndOfStream)
		}
		return 0, curated.Errorf(codec.IOReadError, err)
	}
	return f.scratch[0], nil
}

// Seek implements the codec.Stream interface. Offset zero is the start of the
// resource.
//
// A seek the resource rejects as invalid, a negative position or an unknown
// whence value, returns the codec.SeekOutOfRange error. Any other failure of
// the resource returns the codec.IOReadError error.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	pos, err := f.res.Seek(offset, whence)
	if err != nil {
		if errors.Is(err, os.ErrInvalid) {
			return pos, curated.Errorf(codec.SeekOutOfRange, offset)
		}
		return pos, curated.Errorf(codec.IOReadError, err)
	}
	return pos, nil
}

// Tell implements the codec.Stream interface.
func (f *File) Tell() (int64, error) {
	pos, err := f.res.Seek(0, io.SeekCurrent)
	if err != nil {
		return pos, curated.Errorf(codec.IOReadError, err)
	}
	return pos, nil
}

// Flush implements the codec.Stream interface. Buffered data is flushed to
// the resource and the resource is then synced with its storage.
func (f *File) Flush() error {
	if f.flush != nil {
		if err := f.flush.Flush(); err != nil {
			return curated.Errorf(codec.IOWriteError, err)
		}
	}
	if f.sync != nil {
		if err := f.sync.Sync(); err != nil {
			return curated.Errorf(codec.IOWriteError, err)
		}
	}
	return nil
}
