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

// Package rewind keeps a history of machine states in memory so that the
// emulation can be stepped backwards.
//
// The history is stored in a Buffer, which implements the codec.Stream
// interface over a circular array of fixed size frames. Each frame holds one
// complete snapshot, preceded by the emulated frame number at which the
// snapshot was taken:
//
//	[u64 frame number][u32 snapshot version][machine state ...]
//
// The Rewind type drives the Buffer. Capture() is called once per emulated
// frame and writes a new snapshot at the frequency given by the preferences.
// The StepBack(), StepForward(), Goto() and GotoFrame() functions restore the
// machine from the history. Capturing after a restore discards the history
// newer than the restored frame.
package rewind

import (
	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/logger"
	"github.com/jetsetilly/statecodec/snapshot"
)

// size of the frame number at the start of every frame
const frameNumSize = 8

// StateOffset is the offset in a frame of the first byte written by the
// snapshot.Stater. Offsets given to SearchState() and reported by Compare()
// are relative to this point.
const StateOffset = frameNumSize + 4

// Rewind contains a history of machine states for the emulation.
type Rewind struct {
	Prefs *Preferences

	buf *Buffer

	// the emulated frame number of the machine. incremented on every call
	// to Capture() and changed by a restore
	frameNum int

	// number of calls to Capture() since the last snapshot was taken
	tick int

	// logical index of the most recently restored frame. a value of -1
	// indicates that the emulation is at the leading edge of the history
	position int

	// the comparison frame and whether it is locked. see comparison.go
	comparison       []byte
	comparisonLocked bool
}

// NewRewind is the preferred method of initialisation for the Rewind type.
func NewRewind(buf *Buffer, prefs *Preferences) *Rewind {
	return &Rewind{
		Prefs:    prefs,
		buf:      buf,
		position: -1,
	}
}

// Reset forgets the history. The frame number is not changed.
func (r *Rewind) Reset() {
	r.buf.Reset()
	r.tick = 0
	r.position = -1
	r.comparison = r.comparison[:0]
	logger.Log(logger.Allow, "rewind", "history reset")
}

// Len returns the number of frames in the history.
func (r *Rewind) Len() int {
	return r.buf.Len()
}

// Position returns the logical index of the most recently restored frame. If
// no frame has been restored since the last capture then the index of the
// newest frame is returned. Returns -1 if the history is empty.
func (r *Rewind) Position() int {
	if r.position < 0 {
		return r.buf.Len() - 1
	}
	return r.position
}

// FrameNum returns the current emulated frame number.
func (r *Rewind) FrameNum() int {
	return r.frameNum
}

// Capture should be called once per emulated frame. A snapshot of st is added
// to the history every Prefs.Freq frames.
//
// If a frame has been restored since the last capture the history newer than
// the restored frame is discarded first.
//
// A snapshot that fails to write is never added to the history. However, if
// the history was full the oldest frame has already been discarded to make
// room, so a failed Capture() leaves the history one frame shorter.
func (r *Rewind) Capture(st snapshot.Stater) error {
	r.frameNum++
	r.tick++

	freq := r.Prefs.Freq.Get().(int)
	if r.tick < freq {
		return nil
	}
	r.tick = 0

	if r.position >= 0 {
		if err := r.buf.Truncate(r.position); err != nil {
			return curated.Errorf("rewind: %v", err)
		}
		r.position = -1
	}

	if err := r.buf.NewFrame(); err != nil {
		return curated.Errorf("rewind: %v", err)
	}
	if err := codec.WriteUint64(r.buf, uint64(r.frameNum)); err != nil {
		r.buf.AbandonFrame()
		return curated.Errorf("rewind: %v", err)
	}
	if err := snapshot.Write(r.buf, st); err != nil {
		r.buf.AbandonFrame()
		return curated.Errorf("rewind: %v", err)
	}
	if err := r.buf.CommitFrame(); err != nil {
		return curated.Errorf("rewind: %v", err)
	}

	return nil
}

// frameNumAt returns the frame number stored at the start of the frame at
// index. the read position is left immediately after the frame number.
func (r *Rewind) frameNumAt(index int) (int, error) {
	if err := r.buf.SeekFrame(index); err != nil {
		return 0, err
	}
	fn, err := codec.ReadUint64(r.buf)
	if err != nil {
		return 0, err
	}
	return int(fn), nil
}

// Goto restores st from the frame at index. Index zero is the oldest frame
// in the history.
func (r *Rewind) Goto(st snapshot.Stater, index int) error {
	fn, err := r.frameNumAt(index)
	if err != nil {
		return curated.Errorf("rewind: %v", err)
	}
	if err := snapshot.Read(r.buf, st); err != nil {
		return curated.Errorf("rewind: %v", err)
	}

	r.frameNum = fn
	r.tick = 0
	r.position = index

	return nil
}

// GotoLast restores st from the newest frame in the history.
func (r *Rewind) GotoLast(st snapshot.Stater) error {
	return r.Goto(st, r.buf.Len()-1)
}

// StepBack restores st from the frame n frames older than the current
// position. The oldest frame is used if there are fewer than n older frames.
func (r *Rewind) StepBack(st snapshot.Stater, n int) error {
	if r.buf.Len() == 0 {
		return curated.Errorf("rewind: history is empty")
	}
	return r.Goto(st, max(r.Position()-n, 0))
}

// StepForward restores st from the frame n frames newer than the current
// position. The newest frame is used if there are fewer than n newer frames.
func (r *Rewind) StepForward(st snapshot.Stater, n int) error {
	if r.buf.Len() == 0 {
		return curated.Errorf("rewind: history is empty")
	}
	return r.Goto(st, min(r.Position()+n, r.buf.Len()-1))
}

// GotoFrame restores st from the frame with the frame number closest to, but
// not after, frameNum. If frameNum is older than the oldest frame in the
// history then the oldest frame is used.
func (r *Rewind) GotoFrame(st snapshot.Stater, frameNum int) error {
	if r.buf.Len() == 0 {
		return curated.Errorf("rewind: history is empty")
	}

	// binary search for the last frame with a frame number that is less than
	// or equal to the requested frame number
	lo := 0
	hi := r.buf.Len() - 1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		fn, err := r.frameNumAt(mid)
		if err != nil {
			return curated.Errorf("rewind: %v", err)
		}
		if fn <= frameNum {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	return r.Goto(st, lo)
}

// StepsForHold returns the number of frames to step back for a rewind
// control that has been held for the given number of emulated frames. The
// rate accelerates the longer the control is held.
//
// For the first fifteen frames after the initial step the rewind is slow,
// stepping once every fourth frame. This allows for precise positioning. The
// rate then increases until, after one second, two frames are stepped on
// every frame.
func StepsForHold(frames int) int {
	switch {
	case frames <= 0:
		return 0
	case frames == 1:
		return 1
	case frames <= 15:
		if frames%4 == 0 {
			return 1
		}
		return 0
	case frames <= 30:
		if frames%2 == 0 {
			return 1
		}
		return 0
	case frames <= 60:
		return 1
	}
	return 2
}
