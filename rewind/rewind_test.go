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
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/prefs"
	"github.com/jetsetilly/statecodec/rewind"
	"github.com/jetsetilly/statecodec/test"
)

// counter is a minimal machine. the state is a frame counter and a small
// block of memory
type counter struct {
	count uint32
	mem   [4]uint8
}

// step advances the machine by one frame
func (c *counter) step() {
	c.count++
	c.mem[0] = uint8(c.count / 10)
}

func (c *counter) SaveState(s codec.Stream) error {
	enc := codec.NewEncoder(s)
	enc.Uint32(c.count)
	enc.Bytes(c.mem[:])
	return enc.Err()
}

func (c *counter) LoadState(s codec.Stream) error {
	dec := codec.NewDecoder(s)
	c.count = dec.Uint32()
	dec.Bytes(c.mem[:])
	return dec.Err()
}

func newRewind(t *testing.T, frameCount int, freq int) *rewind.Rewind {
	t.Helper()

	p, err := rewind.NewPreferences(afero.NewMemMapFs(), "preferences")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.FrameCount.Set(frameCount))
	test.DemandSuccess(t, p.FrameSize.Set(64))
	test.DemandSuccess(t, p.Freq.Set(freq))

	buf, err := p.NewBuffer()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, buf.Capacity(), frameCount)

	return rewind.NewRewind(buf, p)
}

// run the machine for a number of frames, capturing after every frame
func run(t *testing.T, r *rewind.Rewind, c *counter, frames int) {
	t.Helper()
	for range frames {
		c.step()
		test.DemandSuccess(t, r.Capture(c))
	}
}

func TestPreferences(t *testing.T) {
	fs := afero.NewMemMapFs()
	p, err := rewind.NewPreferences(fs, "preferences")
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.FrameCount.Get().(int), 100)
	test.ExpectEquality(t, p.FrameSize.Get().(int), 16384)
	test.ExpectEquality(t, p.Freq.Get().(int), 1)

	// the preferences file was created
	data, err := afero.ReadFile(fs, "preferences")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), prefs.WarningBoilerPlate+"\n"+
		"rewind.frameCount :: 100\nrewind.frameSize :: 16384\nrewind.freq :: 1\n")

	// out of range values
	test.ExpectFailure(t, p.Freq.Set(0))
	test.ExpectFailure(t, p.FrameCount.Set(0))
	test.ExpectFailure(t, p.FrameSize.Set(1))

	// changes survive a save and reload
	test.DemandSuccess(t, p.FrameCount.Set(25))
	test.DemandSuccess(t, p.Save())
	q, err := rewind.NewPreferences(fs, "preferences")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.FrameCount.Get().(int), 25)

	test.DemandSuccess(t, q.SetDefaults())
	test.ExpectEquality(t, q.FrameCount.Get().(int), 100)
}

func TestCaptureAndStepBack(t *testing.T) {
	r := newRewind(t, 10, 1)
	c := &counter{}

	test.ExpectEquality(t, r.Position(), -1)
	run(t, r, c, 5)
	test.ExpectEquality(t, r.Len(), 5)
	test.ExpectEquality(t, r.Position(), 4)
	test.ExpectEquality(t, r.FrameNum(), 5)

	test.DemandSuccess(t, r.StepBack(c, 2))
	test.ExpectEquality(t, c.count, uint32(3))
	test.ExpectEquality(t, r.Position(), 2)
	test.ExpectEquality(t, r.FrameNum(), 3)

	// stepping back beyond the start of the history stops at the oldest frame
	test.DemandSuccess(t, r.StepBack(c, 100))
	test.ExpectEquality(t, c.count, uint32(1))
	test.ExpectEquality(t, r.Position(), 0)

	test.DemandSuccess(t, r.StepForward(c, 1))
	test.ExpectEquality(t, c.count, uint32(2))
	test.DemandSuccess(t, r.StepForward(c, 100))
	test.ExpectEquality(t, c.count, uint32(5))

	test.DemandSuccess(t, r.Goto(c, 1))
	test.ExpectEquality(t, c.count, uint32(2))
	test.DemandSuccess(t, r.GotoLast(c))
	test.ExpectEquality(t, c.count, uint32(5))

	err := r.Goto(c, 5)
	test.ExpectSuccess(t, curated.Has(err, codec.FrameIndexOutOfRange))
}

func TestEmptyHistory(t *testing.T) {
	r := newRewind(t, 4, 1)
	c := &counter{}
	test.ExpectFailure(t, r.StepBack(c, 1))
	test.ExpectFailure(t, r.StepForward(c, 1))
	test.ExpectFailure(t, r.GotoFrame(c, 1))
	test.ExpectFailure(t, r.GotoLast(c))

	tl, err := r.GetTimeline()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, tl.Len, 0)
	test.ExpectEquality(t, tl.AvailableStart, -1)
	test.ExpectEquality(t, tl.String(), "frame 0: no history")
}

func TestFutureIsDiscarded(t *testing.T) {
	r := newRewind(t, 10, 1)
	c := &counter{}
	run(t, r, c, 6)

	test.DemandSuccess(t, r.StepBack(c, 3))
	test.ExpectEquality(t, c.count, uint32(3))

	// running from the restored frame replaces the frames that followed it
	c.mem[1] = 0xaa
	run(t, r, c, 1)
	test.ExpectEquality(t, r.Len(), 4)
	test.ExpectEquality(t, r.Position(), 3)
	test.ExpectEquality(t, r.FrameNum(), 4)

	test.DemandSuccess(t, r.GotoLast(c))
	test.ExpectEquality(t, c.count, uint32(4))
	test.ExpectEquality(t, c.mem[1], uint8(0xaa))
}

func TestEviction(t *testing.T) {
	r := newRewind(t, 4, 1)
	c := &counter{}
	run(t, r, c, 10)

	test.ExpectEquality(t, r.Len(), 4)
	tl, err := r.GetTimeline()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tl.AvailableStart, 7)
	test.ExpectEquality(t, tl.AvailableEnd, 10)
	test.ExpectEquality(t, tl.Current, 10)
	test.ExpectEquality(t, tl.Capacity, 4)
	test.ExpectEquality(t, tl.String(), "frame 10: history 7 to 10 (4/4) at 3")

	test.DemandSuccess(t, r.Goto(c, 0))
	test.ExpectEquality(t, c.count, uint32(7))
}

func TestFrequency(t *testing.T) {
	r := newRewind(t, 10, 3)
	c := &counter{}
	run(t, r, c, 10)

	// snapshots at frames 3, 6 and 9
	test.ExpectEquality(t, r.Len(), 3)
	tl, err := r.GetTimeline()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tl.AvailableStart, 3)
	test.ExpectEquality(t, tl.AvailableEnd, 9)

	// nearest frame not after the requested frame
	test.DemandSuccess(t, r.GotoFrame(c, 7))
	test.ExpectEquality(t, c.count, uint32(6))
	test.DemandSuccess(t, r.GotoFrame(c, 9))
	test.ExpectEquality(t, c.count, uint32(9))
	test.DemandSuccess(t, r.GotoFrame(c, 100))
	test.ExpectEquality(t, c.count, uint32(9))
	test.DemandSuccess(t, r.GotoFrame(c, 1))
	test.ExpectEquality(t, c.count, uint32(3))
}

func TestCaptureOverflow(t *testing.T) {
	p, err := rewind.NewPreferences(afero.NewMemMapFs(), "preferences")
	test.DemandSuccess(t, err)

	// room for the frame header and version but not the state
	buf, err := rewind.NewBuffer(4, rewind.StateOffset+2)
	test.DemandSuccess(t, err)
	r := rewind.NewRewind(buf, p)

	c := &counter{}
	c.step()
	err = r.Capture(c)
	test.ExpectSuccess(t, curated.Has(err, codec.FrameOverflow))
	test.ExpectEquality(t, r.Len(), 0)
}

// interrupted writes some of its state and then fails
type interrupted struct{}

var errInterrupted = errors.New("interrupted")

func (interrupted) SaveState(s codec.Stream) error {
	if err := codec.WriteUint32(s, 1); err != nil {
		return err
	}
	return errInterrupted
}

func (interrupted) LoadState(s codec.Stream) error {
	return errInterrupted
}

func TestCaptureInterrupted(t *testing.T) {
	r := newRewind(t, 3, 1)

	// a failed capture on an empty history leaves nothing behind
	err := r.Capture(interrupted{})
	test.ExpectSuccess(t, errors.Is(err, errInterrupted))
	test.ExpectEquality(t, r.Len(), 0)

	c := &counter{}
	run(t, r, c, 2)
	test.ExpectEquality(t, r.Len(), 2)

	// the history is not full so nothing is lost
	err = r.Capture(interrupted{})
	test.ExpectSuccess(t, errors.Is(err, errInterrupted))
	test.ExpectEquality(t, r.Len(), 2)

	// the newest frame is still the last good capture
	d := &counter{}
	test.DemandSuccess(t, r.GotoLast(d))
	test.ExpectEquality(t, d.count, uint32(2))

	// a full history loses its oldest frame to the failed capture
	run(t, r, c, 1)
	test.ExpectEquality(t, r.Len(), 3)
	err = r.Capture(interrupted{})
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, r.Len(), 2)
	test.DemandSuccess(t, r.GotoLast(d))
	test.ExpectEquality(t, d.count, uint32(3))
}

func TestReset(t *testing.T) {
	r := newRewind(t, 4, 1)
	c := &counter{}
	run(t, r, c, 3)

	r.Reset()
	test.ExpectEquality(t, r.Len(), 0)
	test.ExpectEquality(t, r.Position(), -1)
	test.ExpectEquality(t, r.FrameNum(), 3)
}

func TestComparison(t *testing.T) {
	r := newRewind(t, 10, 1)
	c := &counter{}

	_, err := r.Compare(0)
	test.ExpectFailure(t, err)

	run(t, r, c, 12)
	test.DemandSuccess(t, r.SetComparison(0))

	// frame 1 and frame 12: count differs in the low byte and mem[0] differs
	diffs, err := r.Compare(9)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(diffs), 2)
	test.ExpectEquality(t, diffs[0], rewind.Difference{Offset: 0, Was: 3, Now: 12})
	test.ExpectEquality(t, diffs[1], rewind.Difference{Offset: 4, Was: 0, Now: 1})

	// the comparison frame is updated to the current position
	test.DemandSuccess(t, r.UpdateComparison())
	diffs, err = r.Compare(9)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(diffs), 0)

	// unless it is locked
	r.LockComparison(true)
	test.ExpectSuccess(t, r.ComparisonLocked())
	test.DemandSuccess(t, r.StepBack(c, 9))
	test.DemandSuccess(t, r.UpdateComparison())
	diffs, err = r.Compare(0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(diffs), 2)
}

func TestSearchState(t *testing.T) {
	r := newRewind(t, 30, 1)
	c := &counter{}

	// mem[0] is count/10 so it changes to 1 at frame 10 and to 2 at frame 20
	run(t, r, c, 25)

	// offset of mem[0] in the state is after the u32 count
	const offset = 4

	idx, ok, err := r.SearchState(offset, 2, 0xff)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, idx, 19)

	idx, ok, err = r.SearchState(offset, 1, 0xff)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, idx, 9)

	// value 0 runs to the start of the history
	idx, ok, err = r.SearchState(offset, 0, 0xff)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, idx, 0)

	// masked search. the low bit of 3 matches the value 1
	idx, ok, err = r.SearchState(offset, 3, 0x01)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, idx, 9)

	_, ok, err = r.SearchState(offset, 5, 0xff)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, ok)

	// search begins at the current position
	test.DemandSuccess(t, r.Goto(c, 15))
	idx, ok, err = r.SearchState(offset, 1, 0xff)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, idx, 9)

	// offsets beyond the state
	_, _, err = r.SearchState(100, 1, 0xff)
	test.ExpectFailure(t, err)
	_, _, err = r.SearchState(-1, 1, 0xff)
	test.ExpectFailure(t, err)
}

func TestStepsForHold(t *testing.T) {
	test.ExpectEquality(t, rewind.StepsForHold(0), 0)
	test.ExpectEquality(t, rewind.StepsForHold(1), 1)

	// slow to begin with
	total := 0
	for f := 2; f <= 15; f++ {
		total += rewind.StepsForHold(f)
	}
	test.ExpectEquality(t, total, 3)

	total = 0
	for f := 16; f <= 30; f++ {
		total += rewind.StepsForHold(f)
	}
	test.ExpectEquality(t, total, 8)

	test.ExpectEquality(t, rewind.StepsForHold(45), 1)
	test.ExpectEquality(t, rewind.StepsForHold(61), 2)
}
