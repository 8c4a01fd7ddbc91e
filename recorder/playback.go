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

	"github.com/spf13/afero"

	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/event"
	"github.com/jetsetilly/statecodec/filestream"
	"github.com/jetsetilly/statecodec/logger"
)

// Playback is used to reperform the events in a replay.
type Playback struct {
	entries []Entry

	// index of the next entry to be returned by Next()
	seqCt int
}

func (plb *Playback) String() string {
	return fmt.Sprintf("%d/%d entries (last frame %d)", plb.seqCt, len(plb.entries), plb.EndFrame())
}

// NewPlayback is the preferred method of initialisation for the Playback type.
// The entire replay is read from the stream.
func NewPlayback(s codec.Stream) (*Playback, error) {
	if err := readHeader(s); err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}

	plb := &Playback{}

	for {
		e, ok, err := readEntry(s)
		if err != nil {
			return nil, curated.Errorf(PlaybackError, curated.Errorf("entry %d: %v", len(plb.entries), err))
		}
		if !ok {
			break
		}
		if len(plb.entries) > 0 && e.Frame <= plb.entries[len(plb.entries)-1].Frame {
			return nil, curated.Errorf(PlaybackError, curated.Errorf("entry %d: frames out of order", len(plb.entries)))
		}
		plb.entries = append(plb.entries, e)
	}

	return plb, nil
}

// Open a replay file and read it with NewPlayback(). The file is closed
// before the function returns.
func Open(fs afero.Fs, path string) (_ *Playback, rerr error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, curated.Errorf(PlaybackError, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf(PlaybackError, err)
		}
	}()

	plb, err := NewPlayback(filestream.NewFile(f))
	if err != nil {
		return nil, err
	}

	logger.Logf(logger.Allow, "playback", "%d entries read from %s", len(plb.entries), path)

	return plb, nil
}

// Entries returns a copy of the list of entries in the replay.
func (plb *Playback) Entries() []Entry {
	return append([]Entry(nil), plb.entries...)
}

// Next returns the events to be sent on the given frame. Events for earlier
// frames that have not yet been returned are also returned, in order.
func (plb *Playback) Next(frame uint64) []event.Event {
	var events []event.Event
	for plb.seqCt < len(plb.entries) && plb.entries[plb.seqCt].Frame <= frame {
		events = append(events, plb.entries[plb.seqCt].Events...)
		plb.seqCt++
	}
	return events
}

// Done returns true if every entry has been returned by Next().
func (plb *Playback) Done() bool {
	return plb.seqCt >= len(plb.entries)
}

// EndFrame returns the frame of the last entry in the replay.
func (plb *Playback) EndFrame() uint64 {
	if len(plb.entries) == 0 {
		return 0
	}
	return plb.entries[len(plb.entries)-1].Frame
}

// Rewind playback to the beginning.
func (plb *Playback) Rewind() {
	plb.seqCt = 0
}
