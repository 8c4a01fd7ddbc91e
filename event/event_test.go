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

package event_test

import (
	"testing"

	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/event"
	"github.com/jetsetilly/statecodec/rewind"
	"github.com/jetsetilly/statecodec/test"
)

func TestStableValues(t *testing.T) {
	// the numeric values are used in replay files and must never change
	test.ExpectEquality(t, int(event.Quit), 0)
	test.ExpectEquality(t, int(event.PressArrowUp), 1)
	test.ExpectEquality(t, int(event.ReleaseArrowUp), 9)
	test.ExpectEquality(t, int(event.InternalToggleDebug), 17)
	test.ExpectEquality(t, int(event.StateSave), 20)
	test.ExpectEquality(t, int(event.PressRewindBack), 27)
	test.ExpectEquality(t, int(event.InternalMouse), 34)
	test.ExpectEquality(t, int(event.FullScreenToggle), 41)
	test.ExpectEquality(t, len(event.List()), 42)
}

func TestNames(t *testing.T) {
	test.ExpectEquality(t, event.Quit.String(), "QUIT")
	test.ExpectEquality(t, event.PressButtonSelect.String(), "PRESS_BUTTON_SELECT")
	test.ExpectEquality(t, event.InternalMarkTile.String(), "_INTERNAL_MARK_TILE")
	test.ExpectEquality(t, event.Event(42).String(), "UNKNOWN")
	test.ExpectEquality(t, event.Event(-1).String(), "UNKNOWN")

	test.ExpectSuccess(t, event.InternalRendererFlush.Internal())
	test.ExpectFailure(t, event.Pause.Internal())

	// every name parses back to the same event
	for _, ev := range event.List() {
		p, err := event.Parse(ev.String())
		test.ExpectSuccess(t, err, ev)
		test.ExpectEquality(t, p, ev)
	}

	p, err := event.Parse(" press_arrow_left ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, event.PressArrowLeft)

	_, err = event.Parse("JUMP")
	test.ExpectSuccess(t, curated.Is(err, event.UnknownEvent))
}

func TestReadWrite(t *testing.T) {
	buf, err := rewind.NewBuffer(1, 8)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, buf.NewFrame())

	test.DemandSuccess(t, event.Write(buf, event.PressButtonA))
	test.DemandSuccess(t, event.Write(buf, event.FullScreenToggle))
	test.ExpectFailure(t, event.Write(buf, event.Event(99)))

	// a byte that is not a known event
	test.DemandSuccess(t, codec.WriteUint8(buf, 200))
	test.DemandSuccess(t, buf.CommitFrame())

	data, err := buf.AppendFrame(nil, 0)
	test.DemandSuccess(t, err)
	test.ExpectBytes(t, data, []byte{5, 41, 200})

	test.DemandSuccess(t, buf.SeekFrame(0))
	ev, err := event.Read(buf)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ev, event.PressButtonA)
	ev, err = event.Read(buf)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, ev, event.FullScreenToggle)
	_, err = event.Read(buf)
	test.ExpectSuccess(t, curated.Is(err, event.UnknownEvent))
	_, err = event.Read(buf)
	test.ExpectSuccess(t, curated.Is(err, codec.UnexpectedEndOfStream))
}

func TestMouse(t *testing.T) {
	m := event.NewMouse(event.InternalMouse)
	test.ExpectEquality(t, m.X, event.Unset)
	test.ExpectEquality(t, m.Button, event.Unset)
	test.ExpectEquality(t, m.String(), "_INTERNAL_MOUSE (window -1) at -1,-1 scroll -1,-1 button -1")

	m.X = 10
	m.Y = 20
	m.Button = 1
	test.ExpectEquality(t, m.String(), "_INTERNAL_MOUSE (window -1) at 10,20 scroll -1,-1 button 1")
}
