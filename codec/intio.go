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

// widths in bytes of the supported integer types
const (
	width16 = 2
	width32 = 4
	width64 = 8
)

// writeLE writes the lowest width bytes of v, least significant byte first.
func writeLE(s Stream, v uint64, width int) error {
	for i := range width {
		if err := s.WriteUint8(int((v >> (i * 8)) & 0xff)); err != nil {
			return err
		}
	}
	return nil
}

// readLE reads width bytes and reassembles them, least significant byte
// first. on error the partially assembled value is discarded.
func readLE(s Stream, width int) (uint64, error) {
	var v uint64
	for i := range width {
		b, err := s.ReadUint8()
		if err != nil {
			return 0, err
		}
		v |= uint64(b) << (i * 8)
	}
	return v, nil
}

// WriteUint8 writes a single byte to the stream.
func WriteUint8(s Stream, v uint8) error {
	return s.WriteUint8(int(v))
}

// ReadUint8 reads a single byte from the stream.
func ReadUint8(s Stream) (uint8, error) {
	return s.ReadUint8()
}

// WriteUint16 writes v to the stream as two bytes.
func WriteUint16(s Stream, v uint16) error {
	return writeLE(s, uint64(v), width16)
}

// ReadUint16 reads two bytes from the stream.
func ReadUint16(s Stream) (uint16, error) {
	v, err := readLE(s, width16)
	return uint16(v), err
}

// WriteUint32 writes v to the stream as four bytes.
func WriteUint32(s Stream, v uint32) error {
	return writeLE(s, uint64(v), width32)
}

// ReadUint32 reads four bytes from the stream.
func ReadUint32(s Stream) (uint32, error) {
	v, err := readLE(s, width32)
	return uint32(v), err
}

// WriteUint64 writes v to the stream as eight bytes.
func WriteUint64(s Stream, v uint64) error {
	return writeLE(s, v, width64)
}

// ReadUint64 reads eight bytes from the stream.
func ReadUint64(s Stream) (uint64, error) {
	return readLE(s, width64)
}

// WriteBool writes a single byte with a value of one for true and zero for
// false.
func WriteBool(s Stream, v bool) error {
	if v {
		return s.WriteUint8(1)
	}
	return s.WriteUint8(0)
}

// ReadBool reads a single byte. Any value other than zero is true.
func ReadBool(s Stream) (bool, error) {
	b, err := s.ReadUint8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// WriteBytes writes every byte of p to the stream.
func WriteBytes(s Stream, p []byte) error {
	for _, b := range p {
		if err := s.WriteUint8(int(b)); err != nil {
			return err
		}
	}
	return nil
}

// ReadBytes fills p with bytes from the stream. If there is an error the
// contents of p are undefined.
func ReadBytes(s Stream, p []byte) error {
	for i := range p {
		b, err := s.ReadUint8()
		if err != nil {
			return err
		}
		p[i] = b
	}
	return nil
}
