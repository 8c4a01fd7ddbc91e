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
	"io"
	"os"

	"github.com/spf13/afero"

	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/event"
	"github.com/jetsetilly/statecodec/filestream"
	"github.com/jetsetilly/statecodec/logger"
)

// Recorder writes events to a replay.
type Recorder struct {
	s codec.Stream

	// closed by End() if the Recorder opened the file
	closer io.Closer

	entries   int
	lastFrame uint64
}

// NewRecorder is the preferred method of initialisation for the Recorder type.
// The replay header is written to the stream immediately.
func NewRecorder(s codec.Stream) (*Recorder, error) {
	if err := writeHeader(s); err != nil {
		return nil, curated.Errorf(RecordingError, err)
	}
	return &Recorder{s: s}, nil
}

// Create a new replay file and return a Recorder for it. The file is closed
// by End().
func Create(fs afero.Fs, path string) (*Recorder, error) {
	f, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, curated.Errorf(RecordingError, err)
	}

	rec, err := NewRecorder(filestream.NewFile(f))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	rec.closer = f

	logger.Logf(logger.Allow, "recorder", "recording to %s", path)

	return rec, nil
}

// Record the events for a frame. Frames must be recorded in increasing
// order. A frame with no events is not recorded.
func (rec *Recorder) Record(frame uint64, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}
	if rec.entries > 0 && frame <= rec.lastFrame {
		return curated.Errorf(RecordingError, curated.Errorf("frame %d recorded after frame %d", frame, rec.lastFrame))
	}

	if err := writeEntry(rec.s, Entry{Frame: frame, Events: events}); err != nil {
		return curated.Errorf(RecordingError, err)
	}

	rec.entries++
	rec.lastFrame = frame

	return nil
}

// RecordEntries records every entry in the list. See ParseScript().
func (rec *Recorder) RecordEntries(entries []Entry) error {
	for _, e := range entries {
		if err := rec.Record(e.Frame, e.Events...); err != nil {
			return err
		}
	}
	return nil
}

// End the recording. The stream is flushed and, if the Recorder was created
// with Create(), the file is closed.
func (rec *Recorder) End() error {
	err := rec.s.Flush()
	if rec.closer != nil {
		if cerr := rec.closer.Close(); err == nil {
			err = cerr
		}
		rec.closer = nil
	}
	if err != nil {
		return curated.Errorf(RecordingError, err)
	}

	logger.Logf(logger.Allow, "recorder", "recording ended after %d entries", rec.entries)

	return nil
}
