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

// Package codec defines how emulator state is written to and read from a flat
// byte stream.
//
// A backend implements the Stream interface. Only two of the Stream functions
// move data: WriteUint8() and ReadUint8(). Everything else in this package is
// built on top of those two functions. Multi-byte values are always written
// least significant byte first and are reassembled in the same order:
//
//	codec.WriteUint32(s, 0x01020304) // bytes 0x04 0x03 0x02 0x01
//
// The Stream interface also includes the frame functions used by the rewind
// backend. Backends without any notion of frames can embed the Unframed type,
// in which case the frame functions fail with the UnsupportedOperation error.
//
// The Encoder and Decoder types are conveniences for long sequences of values.
// The first error encountered is kept and all subsequent operations do
// nothing. The error should be checked with Err() once the sequence is
// complete.
//
//	enc := codec.NewEncoder(s)
//	enc.Uint16(pc)
//	enc.Uint8(a)
//	enc.Uint64(cycles)
//	if err := enc.Err(); err != nil {
//		return err
//	}
//
// All errors are curated errors (see the curated package). The patterns in
// errors.go identify each failure.
package codec
