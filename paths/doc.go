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

// Package paths contains functions to prepare paths to statecodec resources.
//
// The ResourcePath() function joins the supplied sub-path and file name with
// the base resource directory, creating the directories if necessary. For
// example, the following will return the path to a snapshot file:
//
//	pth, err := paths.ResourcePath(fs, "snapshots", "save_20260101_120000")
//
// For development builds the base resource directory is ".statecodec" in the
// current working directory. For release builds (built with the release tag)
// the base is the statecodec directory in the user's config directory, as
// returned by os.UserConfigDir().
//
// Directories are created on the afero.Fs given to ResourcePath(). Normal use
// is with afero.NewOsFs() but tests can use an in memory filesystem.
package paths
