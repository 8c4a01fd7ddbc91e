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

package prefs

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/jetsetilly/statecodec/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file while statecodec is running ***"

// separates the key from the value in the preferences file.
const separator = " :: "

// Disk represents preference values as stored on disk. More than one Disk
// instance can use the same file. Keys saved by one instance are preserved
// when the file is saved by another.
type Disk struct {
	fs   afero.Fs
	path string

	entries map[string]pref

	// keys set from the command line stack. these values are not saved to
	// disk
	commandLine map[string]bool
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(fs afero.Fs, path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf("prefs: no path for preferences file")
	}
	return &Disk{
		fs:          fs,
		path:        path,
		entries:     make(map[string]pref),
		commandLine: make(map[string]bool),
	}, nil
}

func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, dsk.entries[k].String()))
	}
	return s.String()
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Add preference value to list of values to store/load from Disk. The key
// must not be empty or contain the separator used in the preferences file.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.TrimSpace(key) != key || key == "" || strings.Contains(key, strings.TrimSpace(separator)) {
		return curated.Errorf("prefs: invalid key %q", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: key %q has already been added", key)
	}
	dsk.entries[key] = p
	return nil
}

// Reset all preferences to their reset value.
func (dsk *Disk) Reset() error {
	for _, k := range dsk.keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return curated.Errorf("prefs: %v", err)
		}
	}
	return nil
}

// read the preferences file and return the key/value pairs. a missing file
// is not an error. the boolean is false if the file does not exist
func (dsk *Disk) read() (map[string]string, bool, error) {
	data, err := afero.ReadFile(dsk.fs, dsk.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, false, nil
		}
		return nil, false, curated.Errorf("prefs: %v", err)
	}

	values := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if line == WarningBoilerPlate {
			continue
		}
		k, v, ok := strings.Cut(line, separator)
		if !ok {
			continue
		}
		values[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if err := scanner.Err(); err != nil {
		return nil, false, curated.Errorf("prefs: %v", err)
	}

	return values, true, nil
}

// Save current preference values to disk. Values for keys that have not been
// added to this Disk instance are preserved, unless the key is defunct.
// Values set from the command line stack are not saved.
func (dsk *Disk) Save() error {
	values, _, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		if dsk.commandLine[k] {
			continue
		}
		values[k] = p.String()
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if !isDefunct(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, values[k]))
	}

	if err := afero.WriteFile(dsk.fs, dsk.path, []byte(s.String()), 0o600); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Load preference values from disk. If the file does not exist and
// saveIfMissing is true then the current values are saved to a new file.
//
// After the file has been read any matching values in the top group of the
// command line stack are applied.
func (dsk *Disk) Load(saveIfMissing bool) error {
	values, exists, err := dsk.read()
	if err != nil {
		return err
	}

	if !exists && saveIfMissing {
		if err := dsk.Save(); err != nil {
			return err
		}
	}

	for k, v := range values {
		if p, ok := dsk.entries[k]; ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf("prefs: %s: %v", k, err)
			}
		}
	}

	for _, k := range dsk.keys() {
		if ok, v := GetCommandLinePref(k); ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return curated.Errorf("prefs: %s: %v", k, err)
			}
			dsk.commandLine[k] = true
		}
	}

	return nil
}
