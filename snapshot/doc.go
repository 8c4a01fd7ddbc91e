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

// Package snapshot guards the compatibility of serialised machine state. Every
// snapshot begins with a version tag written as a four byte little-endian
// value:
//
//	[u32 version][application defined values ...]
//
// CheckVersion() reads the tag before anything else is read. A snapshot with
// any other version is rejected with the IncompatibleVersionError and no
// further bytes are read. There is no migration between versions.
//
// The layout of the values following the tag is decided by the Stater
// implementation. The snapshot package only defines the order of calls: the
// version first and then the Stater's SaveState() or LoadState() function.
//
// Write() and Read() work with any codec.Stream, including the rewind.Buffer.
// Save() and Load() open a file on an afero.Fs, wrap it with a
// filestream.File and make sure the file is closed however the function
// exits.
package snapshot
