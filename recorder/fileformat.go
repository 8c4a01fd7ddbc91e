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

package recorder

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/event"
)

// Version of the replay file format.
const Version uint32 = 1

// Sentinel error patterns.
const (
	RecordingError = "recorder: %v"
	PlaybackError  = "playback: %v"
)

// maximum number of events in a single entry
const maxEventsPerEntry = 0xff

// Entry is the list of events for a single frame.
type Entry struct {
	Frame  uint64
	Events []event.Event
}

func (e Entry) String() string {
	s := make([]string, len(e.Events))
	for i, ev := range e.Events {
		s[i] = ev.String()
	}
	return fmt.Sprintf("%d: %s", e.Frame, strings.Join(s, ", "))
}

func writeHeader(s codec.Stream) error {
	return codec.WriteUint32(s, Version)
}

func readHeader(s codec.Stream) error {
	v, err := codec.ReadUint32(s)
	if err != nil {
		return err
	}
	if v != Version {
		return curated.Errorf("unsupported replay version (%d)", v)
	}
	return nil
}

func writeEntry(s codec.Stream, e Entry) error {
	if len(e.Events) > maxEventsPerEntry {
		return curated.Errorf("too many events for frame %d (%d)", e.Frame, len(e.Events))
	}

	enc := codec.NewEncoder(s)
	enc.Uint64(e.Frame)
	enc.Uint8(uint8(len(e.Events)))
	if err := enc.Err(); err != nil {
		return err
	}

	for _, ev := range e.Events {
		if err := event.Write(s, ev); err != nil {
			return err
		}
	}

	return nil
}

// readEntry returns false if the stream ended cleanly before the entry.
func readEntry(s codec.Stream) (Entry, bool, error) {
	var e Entry

	start, err := s.Tell()
	if err != nil {
		return e, false, err
	}

	e.Frame, err = codec.ReadUint64(s)
	if err != nil {
		if curated.Is(err, codec.UnexpectedEndOfStream) {
			if pos, terr := s.Tell(); terr == nil && pos == start {
				return e, false, nil
			}
		}
		return e, false, err
	}

	n, err := codec.ReadUint8(s)
	if err != nil {
		return e, false, err
	}

	e.Events = make([]event.Event, n)
	for i := range e.Events {
		e.Events[i], err = event.Read(s)
		if err != nil {
			return e, false, err
		}
	}

	return e, true, nil
}
