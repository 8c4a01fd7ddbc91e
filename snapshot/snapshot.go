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

package snapshot

import (
	"os"

	"github.com/spf13/afero"

	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/filestream"
	"github.com/jetsetilly/statecodec/logger"
)

// Sentinel error patterns returned by the Save() and Load() functions.
const (
	SaveError = "snapshot: save: %v"
	LoadError = "snapshot: load: %v"
)

// Stater is implemented by types that can serialise their state through the
// codec. LoadState() must read the values in exactly the order SaveState()
// writes them.
type Stater interface {
	SaveState(s codec.Stream) error
	LoadState(s codec.Stream) error
}

// Write a version tag and then the state of st to the stream.
func Write(s codec.Stream, st Stater) error {
	if err := WriteVersion(s); err != nil {
		return err
	}
	return st.SaveState(s)
}

// Read and check the version tag and then load the state of st from the
// stream. If the version tag is incorrect the LoadState() function of st is
// never called.
func Read(s codec.Stream, st Stater) error {
	if err := CheckVersion(s); err != nil {
		return err
	}
	return st.LoadState(s)
}

// Save the state of st to the named file. The file is created if necessary
// and truncated if it already exists.
func Save(fs afero.Fs, path string, st Stater) (rerr error) {
	f, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf(SaveError, err)
		}
	}()

	s := filestream.NewFile(f)

	if err := Write(s, st); err != nil {
		return curated.Errorf(SaveError, err)
	}
	if err := s.Flush(); err != nil {
		return curated.Errorf(SaveError, err)
	}

	logger.Logf(logger.Allow, "snapshot", "saved to %s", path)

	return nil
}

// Load the state of st from the named file.
func Load(fs afero.Fs, path string, st Stater) (rerr error) {
	f, err := fs.Open(path)
	if err != nil {
		return curated.Errorf(LoadError, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf(LoadError, err)
		}
	}()

	if err := Read(filestream.NewFile(f), st); err != nil {
		return curated.Errorf(LoadError, err)
	}

	logger.Logf(logger.Allow, "snapshot", "loaded from %s", path)

	return nil
}
