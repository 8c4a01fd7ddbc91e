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
	"github.com/spf13/afero"

	"github.com/jetsetilly/statecodec/logger"
	"github.com/jetsetilly/statecodec/prefs"
)

// Preferences for the rewind system.
type Preferences struct {
	dsk *prefs.Disk

	// the number of frames in the history before the oldest frames are
	// forgotten, and the maximum size of each frame. changes take effect
	// the next time a Buffer is created with NewBuffer()
	FrameCount prefs.Int
	FrameSize  prefs.Int

	// how often a snapshot of the machine is taken. the higher the number
	// the more coarse the rewind system will feel
	Freq prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// default values for the rewind preferences
const (
	defaultFrameCount = 100
	defaultFrameSize  = 16384
	defaultFreq       = 1
)

// NewPreferences is the preferred method of initialisation for the
// Preferences type. The preferences are loaded from the named file, which is
// created if it doesn't exist.
func NewPreferences(fs afero.Fs, pth string) (*Preferences, error) {
	p := &Preferences{}

	p.FrameCount.SetRange(1, 1<<20)
	p.FrameSize.SetRange(StateOffset, 1<<24)
	p.Freq.SetRange(1, 60)

	if err := p.SetDefaults(); err != nil {
		return nil, err
	}

	var err error
	p.dsk, err = prefs.NewDisk(fs, pth)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Add("rewind.frameCount", &p.FrameCount); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("rewind.frameSize", &p.FrameSize); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("rewind.freq", &p.Freq); err != nil {
		return nil, err
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, err
	}

	p.Freq.SetHookPost(func(v prefs.Value) error {
		logger.Logf(logger.Allow, "rewind", "snapshot frequency is now every %d frames", v.(int))
		return nil
	})

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() error {
	if err := p.FrameCount.Set(defaultFrameCount); err != nil {
		return err
	}
	if err := p.FrameSize.Set(defaultFrameSize); err != nil {
		return err
	}
	return p.Freq.Set(defaultFreq)
}

// NewBuffer creates a new Buffer with the current FrameCount and FrameSize
// values.
func (p *Preferences) NewBuffer() (*Buffer, error) {
	return NewBuffer(p.FrameCount.Get().(int), p.FrameSize.Get().(int))
}

// Load rewind preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current rewind preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
