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

// Package digest creates fingerprints of machine state. Two machines with
// the same state produce the same fingerprint.
//
// The State type implements the codec.Stream interface and can be passed to
// any snapshot.Stater in place of a file or rewind buffer. Nothing is stored.
// Every byte written is added to a SHA-1 hash.
//
// Fingerprints can be chained so that a single value represents a sequence
// of states, such as every frame of a replay.
package digest

import (
	"crypto/sha1"
	"fmt"
	"hash"
	"io"

	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/snapshot"
)

// Digest implementations produce a fingerprint.
type Digest interface {
	Hash() string
	ResetDigest()
}

// State produces a fingerprint of machine state.
type State struct {
	codec.Unframed

	hash hash.Hash

	// the most recent fingerprint. included at the start of the next
	// fingerprint when chaining
	digest [sha1.Size]byte

	// bytes written since the most recent call to Capture() or ResetDigest()
	count int64

	scratch [1]byte
}

// NewState is the preferred method of initialisation for the State type.
func NewState() *State {
	return &State{hash: sha1.New()}
}

// Hash implements the Digest interface.
func (dig *State) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *State) ResetDigest() {
	clear(dig.digest[:])
	dig.hash.Reset()
	dig.count = 0
}

// Capture writes the state of st, preceded by the snapshot version, and
// updates the fingerprint. The new fingerprint includes the previous one.
func (dig *State) Capture(st snapshot.Stater) error {
	dig.hash.Reset()
	dig.hash.Write(dig.digest[:])
	dig.count = 0

	if err := snapshot.Write(dig, st); err != nil {
		return curated.Errorf("digest: %v", err)
	}

	copy(dig.digest[:], dig.hash.Sum(nil))

	return nil
}

// WriteUint8 implements the codec.Stream interface.
func (dig *State) WriteUint8(v int) error {
	if err := codec.CheckByte(v); err != nil {
		return err
	}
	dig.scratch[0] = uint8(v)
	dig.hash.Write(dig.scratch[:])
	dig.count++
	return nil
}

// ReadUint8 implements the codec.Stream interface. There is nothing to read.
func (dig *State) ReadUint8() (uint8, error) {
	return 0, curated.Errorf(codec.UnsupportedOperation, "ReadUint8")
}

// Seek implements the codec.Stream interface. The only supported seek is to
// the current position.
func (dig *State) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekCurrent && offset == 0 {
		return dig.count, nil
	}
	if whence == io.SeekStart && offset == dig.count {
		return dig.count, nil
	}
	return dig.count, curated.Errorf(codec.UnsupportedOperation, "Seek")
}

// Tell implements the codec.Stream interface.
func (dig *State) Tell() (int64, error) {
	return dig.count, nil
}

// Flush implements the codec.Stream interface.
func (dig *State) Flush() error {
	return nil
}

// Of returns the fingerprint of a single state.
func Of(st snapshot.Stater) (string, error) {
	dig := NewState()
	if err := dig.Capture(st); err != nil {
		return "", err
	}
	return dig.Hash(), nil
}
