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

package easyterm

import (
	"bufio"
	"fmt"
)

// Key is a single key press. Printable characters and control codes have
// their ASCII value. Cursor keys have a negative value.
type Key int

// list of keys that do not have an ASCII value.
const (
	KeyUp Key = -(iota + 1)
	KeyDown
	KeyRight
	KeyLeft
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyRight:
		return "right"
	case KeyLeft:
		return "left"
	case KeyEsc:
		return "esc"
	case KeyInterrupt:
		return "interrupt"
	case KeyCarriageReturn, KeyLineFeed:
		return "return"
	}
	if k >= ' ' && k < 127 {
		return string(rune(k))
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// decodeKey reads one key from the reader. An escape sequence for a cursor
// key is decoded to the corresponding Key. An escape with nothing following
// it in the buffer is returned as KeyEsc.
func decodeKey(r *bufio.Reader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	if b != KeyEsc || r.Buffered() == 0 {
		return Key(b), nil
	}

	b, err = r.ReadByte()
	if err != nil {
		return KeyEsc, nil
	}
	if b != EscCursor {
		_ = r.UnreadByte()
		return KeyEsc, nil
	}

	b, err = r.ReadByte()
	if err != nil {
		return KeyEsc, nil
	}

	switch b {
	case CursorUp:
		return KeyUp, nil
	case CursorDown:
		return KeyDown, nil
	case CursorForward:
		return KeyRight, nil
	case CursorBackward:
		return KeyLeft, nil
	}

	// unrecognised sequence. the final byte is dropped
	return KeyEsc, nil
}
