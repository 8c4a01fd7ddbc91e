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

package codec

// Encoder writes a sequence of values to a Stream. Once an error occurs no
// further values are written.
type Encoder struct {
	s   Stream
	err error
}

// NewEncoder is the preferred method of initialisation for the Encoder type.
func NewEncoder(s Stream) *Encoder {
	return &Encoder{s: s}
}

// Err returns the first error encountered by the Encoder.
func (e *Encoder) Err() error {
	return e.err
}

// Uint8 writes a single byte.
func (e *Encoder) Uint8(v uint8) {
	if e.err == nil {
		e.err = WriteUint8(e.s, v)
	}
}

// Uint16 writes two bytes.
func (e *Encoder) Uint16(v uint16) {
	if e.err == nil {
		e.err = WriteUint16(e.s, v)
	}
}

// Uint32 writes four bytes.
func (e *Encoder) Uint32(v uint32) {
	if e.err == nil {
		e.err = WriteUint32(e.s, v)
	}
}

// Uint64 writes eight bytes.
func (e *Encoder) Uint64(v uint64) {
	if e.err == nil {
		e.err = WriteUint64(e.s, v)
	}
}

// Bool writes a single byte.
func (e *Encoder) Bool(v bool) {
	if e.err == nil {
		e.err = WriteBool(e.s, v)
	}
}

// Bytes writes every byte in p.
func (e *Encoder) Bytes(p []byte) {
	if e.err == nil {
		e.err = WriteBytes(e.s, p)
	}
}

// Decoder reads a sequence of values from a Stream. Once an error occurs no
// further values are read and every read function returns zero.
type Decoder struct {
	s   Stream
	err error
}

// NewDecoder is the preferred method of initialisation for the Decoder type.
func NewDecoder(s Stream) *Decoder {
	return &Decoder{s: s}
}

// Err returns the first error encountered by the Decoder.
func (d *Decoder) Err() error {
	return d.err
}

// Uint8 reads a single byte.
func (d *Decoder) Uint8() uint8 {
	if d.err != nil {
		return 0
	}
	var v uint8
	v, d.err = ReadUint8(d.s)
	return v
}

// Uint16 reads two bytes.
func (d *Decoder) Uint16() uint16 {
	if d.err != nil {
		return 0
	}
	var v uint16
	v, d.err = ReadUint16(d.s)
	return v
}

// Uint32 reads four bytes.
func (d *Decoder) Uint32() uint32 {
	if d.err != nil {
		return 0
	}
	var v uint32
	v, d.err = ReadUint32(d.s)
	return v
}

// Uint64 reads eight bytes.
func (d *Decoder) Uint64() uint64 {
	if d.err != nil {
		return 0
	}
	var v uint64
	v, d.err = ReadUint64(d.s)
	return v
}

// Bool reads a single byte.
func (d *Decoder) Bool() bool {
	if d.err != nil {
		return false
	}
	var v bool
	v, d.err = ReadBool(d.s)
	return v
}

// Bytes fills p with bytes from the stream.
func (d *Decoder) Bytes(p []byte) {
	if d.err == nil {
		d.err = ReadBytes(d.s, p)
	}
}
