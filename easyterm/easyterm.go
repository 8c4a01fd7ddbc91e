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

// Package easyterm is a wrapper for "github.com/pkg/term". It puts the
// controlling terminal into cbreak mode so that single key presses can be
// read without waiting for a newline, and restores the terminal afterwards.
//
// When the standard input is not a terminal the Terminal type falls back to
// reading whatever bytes arrive on the input.
package easyterm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/term"
	xterm "golang.org/x/term"

	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/logger"
)

// TerminalError is the error pattern for failures of the terminal device.
const TerminalError = "easyterm: %v"

// Terminal reads key presses and writes text.
type Terminal struct {
	// nil if the input is not a terminal
	tty *term.Term

	input  *bufio.Reader
	output io.Writer
}

// NewTerminal creates a Terminal that reads keys from input and prints to
// output. The input is used as is, there is no change of terminal mode.
func NewTerminal(input io.Reader, output io.Writer) *Terminal {
	return &Terminal{
		input:  bufio.NewReader(input),
		output: output,
	}
}

// Open the controlling terminal in cbreak mode. If the standard input is not
// a terminal then the Terminal reads from the standard input unchanged.
//
// CleanUp() must be called before the program exits.
func Open(output io.Writer) (*Terminal, error) {
	if !IsTerminal(os.Stdin) {
		logger.Log(logger.Allow, "easyterm", "stdin is not a terminal")
		return NewTerminal(os.Stdin, output), nil
	}

	tty, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}

	t := NewTerminal(tty, output)
	t.tty = tty

	return t, nil
}

// IsTerminal returns true if the file is connected to a terminal.
func IsTerminal(f *os.File) bool {
	return xterm.IsTerminal(int(f.Fd()))
}

// IsInteractive returns true if the Terminal is reading from a real terminal.
func (t *Terminal) IsInteractive() bool {
	return t.tty != nil
}

// CleanUp restores the terminal to the mode it was in when Open() was called
// and closes it.
func (t *Terminal) CleanUp() error {
	if t.tty == nil {
		return nil
	}

	tty := t.tty
	t.tty = nil

	if err := tty.Restore(); err != nil {
		_ = tty.Close()
		return curated.Errorf(TerminalError, err)
	}
	if err := tty.Close(); err != nil {
		return curated.Errorf(TerminalError, err)
	}

	return nil
}

// ReadKey blocks until a key is pressed. Returns io.EOF if the input is
// exhausted.
func (t *Terminal) ReadKey() (Key, error) {
	return decodeKey(t.input)
}

// Print writes the formatted string to the output. In cbreak mode a newline
// does not return the carriage so a lone "\n" is written as "\r\n".
func (t *Terminal) Print(s string, a ...any) {
	s = fmt.Sprintf(s, a...)
	if t.tty != nil {
		s = crlf(s)
	}
	_, _ = io.WriteString(t.output, s)
}

func crlf(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' && (i == 0 || s[i-1] != '\r') {
			b = append(b, '\r')
		}
		b = append(b, s[i])
	}
	return string(b)
}
