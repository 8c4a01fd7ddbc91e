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
	"math"

	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
)

// Buffer implements the codec.Stream interface over a fixed size region of
// memory divided into equally sized frames. The frames form a circular array
// and when the array is full allocating a new frame discards the oldest.
//
// Writing is only possible to a frame allocated with NewFrame(). Reading is
// possible from any frame, up to the number of bytes that were written to it.
// Seek() and Tell() positions are relative to the start of the active frame.
//
// Buffer does no locking. It should be driven by one producer and read by at
// most one consumer at a time.
type Buffer struct {
	// the entire region. allocated once by NewBuffer()
	data []byte

	frameCount int
	frameSize  int

	// physical slot of the oldest committed frame and the number of committed
	// frames. the newest committed frame is at slot (oldest+count-1)%frameCount
	oldest int
	count  int

	// number of bytes written to each slot
	lengths []int

	// the slot being written to or read from. -1 if there is none. frame is
	// the part of data covered by the active slot
	active int
	frame  []byte

	// position in the active frame
	cursor int

	// the active slot has been allocated by NewFrame() and not yet committed
	pending bool

	// first write error in the pending frame
	broken error
}

// NewBuffer is the preferred method of initialisation for the Buffer type.
// The total memory reserved is frameCount * frameSize bytes.
func NewBuffer(frameCount int, frameSize int) (*Buffer, error) {
	if frameCount <= 0 {
		return nil, curated.Errorf("rewind: buffer: frame count must be positive (%d)", frameCount)
	}
	if frameSize <= 0 {
		return nil, curated.Errorf("rewind: buffer: frame size must be positive (%d)", frameSize)
	}
	if frameSize > math.MaxInt/frameCount {
		return nil, curated.Errorf("rewind: buffer: %d frames of %d bytes is too large", frameCount, frameSize)
	}

	return &Buffer{
		data:       make([]byte, frameCount*frameSize),
		frameCount: frameCount,
		frameSize:  frameSize,
		lengths:    make([]int, frameCount),
		active:     -1,
	}, nil
}

// FrameCountForMemory returns the number of frames of frameSize bytes that fit
// in memoryMB megabytes. Returns zero if the arguments are not positive.
func FrameCountForMemory(memoryMB int, frameSize int) int {
	if memoryMB <= 0 || frameSize <= 0 {
		return 0
	}
	return (memoryMB * 1024 * 1024) / frameSize
}

// Len returns the number of committed frames currently retained.
func (b *Buffer) Len() int {
	return b.count
}

// Capacity returns the maximum number of frames that can be retained.
func (b *Buffer) Capacity() int {
	return b.frameCount
}

// FrameSize returns the size of each frame in bytes.
func (b *Buffer) FrameSize() int {
	return b.frameSize
}

// Reset forgets all frames. The memory is not cleared.
func (b *Buffer) Reset() {
	b.oldest = 0
	b.count = 0
	b.deactivate()
}

func (b *Buffer) deactivate() {
	b.active = -1
	b.frame = nil
	b.cursor = 0
	b.pending = false
	b.broken = nil
}

func (b *Buffer) activate(slot int) {
	b.active = slot
	b.frame = b.data[slot*b.frameSize : (slot+1)*b.frameSize]
	b.cursor = 0
}

// slot returns the physical slot of the frame at logical index.
func (b *Buffer) slot(index int) int {
	return (b.oldest + index) % b.frameCount
}

// NewFrame implements the codec.Stream interface.
//
// The new frame follows the newest committed frame. If the buffer is full the
// oldest frame is discarded. A frame allocated by a previous call to
// NewFrame() that was never committed is reused.
func (b *Buffer) NewFrame() error {
	if b.count == b.frameCount {
		b.oldest = (b.oldest + 1) % b.frameCount
		b.count--
	}

	b.activate(b.slot(b.count))
	b.lengths[b.active] = 0
	b.pending = true
	b.broken = nil

	return nil
}

// CommitFrame implements the codec.Stream interface.
//
// The frame allocated by NewFrame() becomes the newest frame. A frame that
// has fewer than FrameSize() bytes written to it is fine but a frame in which
// a write failed is not committed and the IncompleteFrame error is returned.
func (b *Buffer) CommitFrame() error {
	if !b.pending {
		return curated.Errorf(codec.NoWritableFrame)
	}

	if b.broken != nil {
		err := b.broken
		b.deactivate()
		return curated.Errorf(codec.IncompleteFrame, err)
	}

	b.count++
	b.pending = false

	return nil
}

// AbandonFrame discards the frame allocated by NewFrame() without committing
// it. Does nothing if there is no such frame. A frame evicted by the
// NewFrame() call is not restored.
func (b *Buffer) AbandonFrame() {
	if b.pending {
		b.deactivate()
	}
}

// SeekFrame implements the codec.Stream interface.
//
// Index zero is the oldest retained frame and Len()-1 is the newest. A frame
// allocated by NewFrame() that has not been committed is abandoned.
func (b *Buffer) SeekFrame(index int) error {
	if index < 0 || index >= b.count {
		return curated.Errorf(codec.FrameIndexOutOfRange, index, b.count)
	}

	b.deactivate()
	b.activate(b.slot(index))

	return nil
}

// Truncate discards all frames newer than the frame at index.
func (b *Buffer) Truncate(index int) error {
	if index < 0 || index >= b.count {
		return curated.Errorf(codec.FrameIndexOutOfRange, index, b.count)
	}

	// the active frame, if there is one, might have been discarded
	if b.pending || b.active >= 0 {
		b.deactivate()
	}

	b.count = index + 1

	return nil
}

// AppendFrame appends the bytes of the frame at index to dst.
func (b *Buffer) AppendFrame(dst []byte, index int) ([]byte, error) {
	if index < 0 || index >= b.count {
		return dst, curated.Errorf(codec.FrameIndexOutOfRange, index, b.count)
	}
	s := b.slot(index)
	o := s * b.frameSize
	return append(dst, b.data[o:o+b.lengths[s]]...), nil
}

// FrameInfo describes where a retained frame is stored.
type FrameInfo struct {
	Index  int
	Slot   int
	Length int
}

// Frames returns a description of every retained frame, oldest first.
func (b *Buffer) Frames() []FrameInfo {
	fi := make([]FrameInfo, b.count)
	for i := range fi {
		s := b.slot(i)
		fi[i] = FrameInfo{Index: i, Slot: s, Length: b.lengths[s]}
	}
	return fi
}

// WriteUint8 implements the codec.Stream interface.
func (b *Buffer) WriteUint8(v int) error {
	if err := codec.CheckByte(v); err != nil {
		if b.pending && b.broken == nil {
			b.broken = err
		}
		return err
	}

	if !b.pending {
		return curated.Errorf(codec.NoWritableFrame)
	}

	if b.cursor >= b.frameSize {
		err := curated.Errorf(codec.FrameOverflow, b.frameSize)
		if b.broken == nil {
			b.broken = err
		}
		return err
	}

	// a seek beyond the end of the written data leaves a gap. the gap is
	// filled with zero rather than with the bytes of an older frame
	if l := b.lengths[b.active]; b.cursor > l {
		clear(b.frame[l:b.cursor])
	}

	b.frame[b.cursor] = uint8(v)
	b.cursor++
	if b.cursor > b.lengths[b.active] {
		b.lengths[b.active] = b.cursor
	}

	return nil
}

// ReadUint8 implements the codec.Stream interface.
func (b *Buffer) ReadUint8() (uint8, error) {
	if b.active < 0 || b.cursor >= b.lengths[b.active] {
		return 0, curated.Errorf(codec.UnexpectedEndOfStream)
	}
	v := b.frame[b.cursor]
	b.cursor++
	return v, nil
}

// Seek implements the codec.Stream interface. The position is relative to the
// start of the active frame and must be in the range zero to FrameSize().
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	if b.active < 0 {
		return 0, curated.Errorf(codec.SeekOutOfRange, offset)
	}

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = int64(b.cursor) + offset
	case io.SeekEnd:
		pos = int64(b.lengths[b.active]) + offset
	default:
		return int64(b.cursor), curated.Errorf("rewind: buffer: invalid whence value (%d)", whence)
	}

	if pos < 0 || pos > int64(b.frameSize) {
		return int64(b.cursor), curated.Errorf(codec.SeekOutOfRange, pos)
	}

	b.cursor = int(pos)
	return pos, nil
}

// Tell implements the codec.Stream interface.
func (b *Buffer) Tell() (int64, error) {
	return int64(b.cursor), nil
}

// Flush implements the codec.Stream interface. The buffer is memory only and
// there is nothing to flush.
func (b *Buffer) Flush() error {
	return nil
}
