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

package rewind_test

import (
	"io"
	"testing"

	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/rewind"
	"github.com/jetsetilly/statecodec/test"
)

func newBuffer(t *testing.T, frameCount int, frameSize int) *rewind.Buffer {
	t.Helper()
	b, err := rewind.NewBuffer(frameCount, frameSize)
	test.DemandSuccess(t, err)
	return b
}

// writeFrame writes a single frame containing v as a u32
func writeFrame(t *testing.T, b *rewind.Buffer, v uint32) {
	t.Helper()
	test.DemandSuccess(t, b.NewFrame())
	test.DemandSuccess(t, codec.WriteUint32(b, v))
	test.DemandSuccess(t, b.CommitFrame())
}

func readFrame(t *testing.T, b *rewind.Buffer, index int) uint32 {
	t.Helper()
	test.DemandSuccess(t, b.SeekFrame(index))
	v, err := codec.ReadUint32(b)
	test.DemandSuccess(t, err)
	return v
}

func TestBufferImplementsStream(t *testing.T) {
	b := newBuffer(t, 1, 1)
	test.DemandImplements[codec.Stream](t, b)
}

func TestBufferConstruction(t *testing.T) {
	_, err := rewind.NewBuffer(0, 10)
	test.ExpectFailure(t, err)
	_, err = rewind.NewBuffer(10, 0)
	test.ExpectFailure(t, err)
	_, err = rewind.NewBuffer(-1, -1)
	test.ExpectFailure(t, err)

	b := newBuffer(t, 4, 8)
	test.ExpectEquality(t, b.Len(), 0)
	test.ExpectEquality(t, b.Capacity(), 4)
	test.ExpectEquality(t, b.FrameSize(), 8)
}

func TestBufferFrameCountForMemory(t *testing.T) {
	test.ExpectEquality(t, rewind.FrameCountForMemory(1, 1024), 1024)
	test.ExpectEquality(t, rewind.FrameCountForMemory(2, 1000), 2097)
	test.ExpectEquality(t, rewind.FrameCountForMemory(0, 1024), 0)
	test.ExpectEquality(t, rewind.FrameCountForMemory(1, 0), 0)
}

func TestBufferRoundTrip(t *testing.T) {
	b := newBuffer(t, 4, 16)

	test.DemandSuccess(t, b.NewFrame())
	enc := codec.NewEncoder(b)
	enc.Uint8(0x11)
	enc.Uint16(0x2233)
	enc.Uint32(0x44556677)
	enc.Uint64(0x8899aabbccddeeff)
	enc.Bool(true)
	test.DemandSuccess(t, enc.Err())
	test.DemandSuccess(t, b.CommitFrame())

	test.DemandSuccess(t, b.SeekFrame(0))
	dec := codec.NewDecoder(b)
	test.ExpectEquality(t, dec.Uint8(), uint8(0x11))
	test.ExpectEquality(t, dec.Uint16(), uint16(0x2233))
	test.ExpectEquality(t, dec.Uint32(), uint32(0x44556677))
	test.ExpectEquality(t, dec.Uint64(), uint64(0x8899aabbccddeeff))
	test.ExpectEquality(t, dec.Bool(), true)
	test.ExpectSuccess(t, dec.Err())

	// sixteen bytes were written so the next read is beyond the written data
	_, err := b.ReadUint8()
	test.ExpectSuccess(t, curated.Is(err, codec.UnexpectedEndOfStream))
}

func TestBufferLittleEndian(t *testing.T) {
	b := newBuffer(t, 1, 4)
	writeFrame(t, b, 0x01020304)

	data, err := b.AppendFrame(nil, 0)
	test.ExpectSuccess(t, err)
	test.ExpectBytes(t, data, []byte{0x04, 0x03, 0x02, 0x01})
}

func TestBufferEviction(t *testing.T) {
	const frameCount = 3
	b := newBuffer(t, frameCount, 4)

	// one more frame than there is space for
	for i := range frameCount + 1 {
		writeFrame(t, b, uint32(100+i))
	}
	test.ExpectEquality(t, b.Len(), frameCount)

	// the first frame has been discarded
	test.ExpectEquality(t, readFrame(t, b, 0), uint32(101))
	test.ExpectEquality(t, readFrame(t, b, 1), uint32(102))
	test.ExpectEquality(t, readFrame(t, b, 2), uint32(103))

	// the oldest frame is now in the second slot
	fi := b.Frames()
	test.DemandEquality(t, len(fi), frameCount)
	test.ExpectEquality(t, fi[0], rewind.FrameInfo{Index: 0, Slot: 1, Length: 4})
	test.ExpectEquality(t, fi[1], rewind.FrameInfo{Index: 1, Slot: 2, Length: 4})
	test.ExpectEquality(t, fi[2], rewind.FrameInfo{Index: 2, Slot: 0, Length: 4})

	err := b.SeekFrame(frameCount)
	test.ExpectSuccess(t, curated.Is(err, codec.FrameIndexOutOfRange))
	err = b.SeekFrame(-1)
	test.ExpectSuccess(t, curated.Is(err, codec.FrameIndexOutOfRange))

	// many more frames. the buffer wraps around several times
	for i := range 10 {
		writeFrame(t, b, uint32(200+i))
	}
	test.ExpectEquality(t, b.Len(), frameCount)
	test.ExpectEquality(t, readFrame(t, b, 0), uint32(207))
	test.ExpectEquality(t, readFrame(t, b, 2), uint32(209))
}

func TestBufferPartialFrame(t *testing.T) {
	b := newBuffer(t, 2, 16)

	test.DemandSuccess(t, b.NewFrame())
	test.DemandSuccess(t, codec.WriteUint16(b, 0xabcd))
	test.ExpectSuccess(t, b.CommitFrame())

	test.ExpectEquality(t, b.Len(), 1)
	test.DemandSuccess(t, b.SeekFrame(0))
	v, err := codec.ReadUint16(b)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint16(0xabcd))

	// reading beyond the partial frame
	_, err = codec.ReadUint32(b)
	test.ExpectSuccess(t, curated.Is(err, codec.UnexpectedEndOfStream))
}

func TestBufferOverflow(t *testing.T) {
	b := newBuffer(t, 2, 4)
	writeFrame(t, b, 1)

	test.DemandSuccess(t, b.NewFrame())
	test.DemandSuccess(t, codec.WriteUint32(b, 2))
	err := b.WriteUint8(0xff)
	test.ExpectSuccess(t, curated.Is(err, codec.FrameOverflow))

	err = b.CommitFrame()
	test.ExpectSuccess(t, curated.Is(err, codec.IncompleteFrame))
	test.ExpectSuccess(t, curated.Has(err, codec.FrameOverflow))

	// the broken frame has not been committed
	test.ExpectEquality(t, b.Len(), 1)
	test.ExpectEquality(t, readFrame(t, b, 0), uint32(1))

	// the buffer is still usable
	writeFrame(t, b, 3)
	test.ExpectEquality(t, b.Len(), 2)
	test.ExpectEquality(t, readFrame(t, b, 1), uint32(3))
}

func TestBufferInvalidByte(t *testing.T) {
	b := newBuffer(t, 2, 4)

	test.DemandSuccess(t, b.NewFrame())
	err := b.WriteUint8(256)
	test.ExpectSuccess(t, curated.Is(err, codec.InvalidByteValue))

	pos, err := b.Tell()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pos, int64(0))

	err = b.CommitFrame()
	test.ExpectSuccess(t, curated.Is(err, codec.IncompleteFrame))
	test.ExpectEquality(t, b.Len(), 0)
}

func TestBufferNoWritableFrame(t *testing.T) {
	b := newBuffer(t, 2, 4)

	err := b.WriteUint8(1)
	test.ExpectSuccess(t, curated.Is(err, codec.NoWritableFrame))

	err = b.CommitFrame()
	test.ExpectSuccess(t, curated.Is(err, codec.NoWritableFrame))

	// a committed frame can not be written to after a SeekFrame()
	writeFrame(t, b, 10)
	test.DemandSuccess(t, b.SeekFrame(0))
	err = b.WriteUint8(1)
	test.ExpectSuccess(t, curated.Is(err, codec.NoWritableFrame))

	// nor committed twice
	err = b.CommitFrame()
	test.ExpectSuccess(t, curated.Is(err, codec.NoWritableFrame))
	test.ExpectEquality(t, b.Len(), 1)
}

func TestBufferReadWithoutFrame(t *testing.T) {
	b := newBuffer(t, 2, 4)
	_, err := b.ReadUint8()
	test.ExpectSuccess(t, curated.Is(err, codec.UnexpectedEndOfStream))

	_, err = b.Seek(0, io.SeekStart)
	test.ExpectSuccess(t, curated.Is(err, codec.SeekOutOfRange))
}

func TestBufferSeek(t *testing.T) {
	b := newBuffer(t, 2, 8)

	test.DemandSuccess(t, b.NewFrame())
	test.DemandSuccess(t, codec.WriteUint16(b, 0x1122))

	// leave a gap of two bytes and then write another value
	pos, err := b.Seek(2, io.SeekCurrent)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pos, int64(4))
	test.DemandSuccess(t, codec.WriteUint16(b, 0x3344))

	pos, err = b.Tell()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pos, int64(6))
	test.DemandSuccess(t, b.CommitFrame())

	data, err := b.AppendFrame(nil, 0)
	test.ExpectSuccess(t, err)
	test.ExpectBytes(t, data, []byte{0x22, 0x11, 0x00, 0x00, 0x44, 0x33})

	// seek relative to the end of the written data
	test.DemandSuccess(t, b.SeekFrame(0))
	pos, err = b.Seek(-2, io.SeekEnd)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pos, int64(4))
	v, err := codec.ReadUint16(b)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint16(0x3344))

	// seeking to the end of the frame is allowed but beyond it is not
	_, err = b.Seek(8, io.SeekStart)
	test.ExpectSuccess(t, err)
	_, err = b.Seek(9, io.SeekStart)
	test.ExpectSuccess(t, curated.Is(err, codec.SeekOutOfRange))
	_, err = b.Seek(-1, io.SeekStart)
	test.ExpectSuccess(t, curated.Is(err, codec.SeekOutOfRange))

	// a failed seek leaves the position unchanged
	pos, err = b.Tell()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pos, int64(8))
}

func TestBufferGapIsZeroFilled(t *testing.T) {
	b := newBuffer(t, 1, 4)
	writeFrame(t, b, 0xffffffff)

	// the single slot is reused. the gap must not show the older frame
	test.DemandSuccess(t, b.NewFrame())
	_, err := b.Seek(3, io.SeekStart)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.WriteUint8(0x01))
	test.DemandSuccess(t, b.CommitFrame())

	data, err := b.AppendFrame(nil, 0)
	test.ExpectSuccess(t, err)
	test.ExpectBytes(t, data, []byte{0x00, 0x00, 0x00, 0x01})
}

func TestBufferAbandonedFrame(t *testing.T) {
	b := newBuffer(t, 3, 4)
	writeFrame(t, b, 1)

	// a frame that is never committed is abandoned by SeekFrame()
	test.DemandSuccess(t, b.NewFrame())
	test.DemandSuccess(t, codec.WriteUint32(b, 2))
	test.DemandSuccess(t, b.SeekFrame(0))
	test.ExpectEquality(t, b.Len(), 1)

	// and reused by NewFrame()
	test.DemandSuccess(t, b.NewFrame())
	test.DemandSuccess(t, b.NewFrame())
	test.DemandSuccess(t, codec.WriteUint32(b, 3))
	test.DemandSuccess(t, b.CommitFrame())
	test.ExpectEquality(t, b.Len(), 2)
	test.ExpectEquality(t, readFrame(t, b, 1), uint32(3))
}

func TestBufferAbandonFrame(t *testing.T) {
	b := newBuffer(t, 3, 8)
	writeFrame(t, b, 1)

	// a partly written frame is not committed
	test.DemandSuccess(t, b.NewFrame())
	test.DemandSuccess(t, codec.WriteUint32(b, 2))
	b.AbandonFrame()
	test.ExpectEquality(t, b.Len(), 1)
	test.ExpectSuccess(t, curated.Is(b.CommitFrame(), codec.NoWritableFrame))
	test.ExpectSuccess(t, curated.Is(b.WriteUint8(0), codec.NoWritableFrame))
	test.ExpectEquality(t, readFrame(t, b, 0), uint32(1))

	// nothing to abandon
	b.AbandonFrame()
	test.ExpectEquality(t, b.Len(), 1)
}

func TestBufferTruncate(t *testing.T) {
	b := newBuffer(t, 4, 4)
	for i := range 4 {
		writeFrame(t, b, uint32(i))
	}

	test.ExpectSuccess(t, b.Truncate(1))
	test.ExpectEquality(t, b.Len(), 2)
	test.ExpectEquality(t, readFrame(t, b, 1), uint32(1))

	err := b.Truncate(2)
	test.ExpectSuccess(t, curated.Is(err, codec.FrameIndexOutOfRange))

	// new frames follow the truncation point
	writeFrame(t, b, 99)
	test.ExpectEquality(t, b.Len(), 3)
	test.ExpectEquality(t, readFrame(t, b, 2), uint32(99))
}

func TestBufferReset(t *testing.T) {
	b := newBuffer(t, 2, 4)
	writeFrame(t, b, 1)
	writeFrame(t, b, 2)

	b.Reset()
	test.ExpectEquality(t, b.Len(), 0)
	err := b.SeekFrame(0)
	test.ExpectSuccess(t, curated.Is(err, codec.FrameIndexOutOfRange))

	writeFrame(t, b, 3)
	test.ExpectEquality(t, readFrame(t, b, 0), uint32(3))
}

func TestBufferFlush(t *testing.T) {
	b := newBuffer(t, 1, 1)
	test.ExpectSuccess(t, b.Flush())
}
