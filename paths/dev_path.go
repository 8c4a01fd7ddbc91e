//go:build !release

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

package paths

import (
	"path"

	"github.com/spf13/afero"
)

const baseResourceDir = ".statecodec"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with the base resource directory. The directories leading
// to the resource are created if they do not exist.
func ResourcePath(fs afero.Fs, subPth string, file string) (string, error) {
	pth := path.Join(baseResourceDir, subPth)
	if err := fs.MkdirAll(pth, 0o700); err != nil {
		return "", err
	}
	return path.Join(pth, file), nil
}
