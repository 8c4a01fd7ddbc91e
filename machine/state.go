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

package machine

import (
	"github.com/jetsetilly/statecodec/codec"
)

// SaveState implements the snapshot.Stater interface.
func (m *Machine) SaveState(s codec.Stream) error {
	enc := codec.NewEncoder(s)
	enc.Bytes(m.Regs[:])
	enc.Uint16(m.SP)
	enc.Uint16(m.PC)
	enc.Bytes(m.RAM[:])
	enc.Uint16(m.Divider)
	enc.Uint64(m.Cycles)
	enc.Uint8(m.Joypad)
	return enc.Err()
}

// LoadState implements the snapshot.Stater interface. The machine is only
// changed if the entire state was read successfully.
func (m *Machine) LoadState(s codec.Stream) error {
	var n Machine

	dec := codec.NewDecoder(s)
	dec.Bytes(n.Regs[:])
	n.SP = dec.Uint16()
	n.PC = dec.Uint16()
	dec.Bytes(n.RAM[:])
	n.Divider = dec.Uint16()
	n.Cycles = dec.Uint64()
	n.Joypad = dec.Uint8()
	if err := dec.Err(); err != nil {
		return err
	}

	n.Paused = m.Paused
	*m = n

	return nil
}
