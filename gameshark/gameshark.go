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

// Package gameshark reads GameShark cheat codes and applies them to memory.
//
// A cheat file has one cheat per line. Each line is a name for the cheat and
// the code, separated by white space:
//
//	NoWildEncounters 01033CD1
//
// A code has the form ttvvaaaa. The tt field is the code type, usually 01,
// and vv is the value to write. The aaaa field is the address to write to
// with the low byte first. For example, address C056 is written as 56C0.
package gameshark

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/logger"
)

// Sentinel error patterns.
const (
	InvalidCode = "gameshark: invalid code (%s): %s"
	FileError   = "gameshark: %v"
)

// length of a code in characters
const codeLen = 8

// Cheat is a single decoded GameShark code.
type Cheat struct {
	Name     string
	Location string
	Value    uint8
	Address  uint16
}

func (c Cheat) String() string {
	return fmt.Sprintf("%s: %#02x -> %#04x (type %s)", c.Name, c.Value, c.Address, c.Location)
}

// ParseCode decodes a single code.
func ParseCode(name string, code string) (Cheat, error) {
	if len(code) != codeLen {
		return Cheat{}, curated.Errorf(InvalidCode, code, fmt.Sprintf("must be %d characters long", codeLen))
	}

	value, err := strconv.ParseUint(code[2:4], 16, 8)
	if err != nil {
		return Cheat{}, curated.Errorf(InvalidCode, code, "value is not hexadecimal")
	}

	// address is stored with the low byte first
	address, err := strconv.ParseUint(code[6:8]+code[4:6], 16, 16)
	if err != nil {
		return Cheat{}, curated.Errorf(InvalidCode, code, "address is not hexadecimal")
	}

	return Cheat{
		Name:     name,
		Location: code[:2],
		Value:    uint8(value),
		Address:  uint16(address),
	}, nil
}

// Poker is implemented by memory that cheats can be applied to.
type Poker interface {
	Poke(address uint16, value uint8) error
}

// Cheats is a list of cheats with unique names.
type Cheats struct {
	list []Cheat
}

// Len returns the number of cheats in the list.
func (c *Cheats) Len() int {
	return len(c.list)
}

// List returns a copy of the cheats in the order they were added.
func (c *Cheats) List() []Cheat {
	return append([]Cheat(nil), c.list...)
}

// Get the cheat with the given name.
func (c *Cheats) Get(name string) (Cheat, bool) {
	for _, ch := range c.list {
		if ch.Name == name {
			return ch, true
		}
	}
	return Cheat{}, false
}

// Add a cheat to the list. A cheat with the same name as an existing cheat
// replaces it.
func (c *Cheats) Add(ch Cheat) {
	for i := range c.list {
		if c.list[i].Name == ch.Name {
			c.list[i] = ch
			return
		}
	}
	c.list = append(c.list, ch)
}

// Apply writes the value of every cheat to memory.
func (c *Cheats) Apply(mem Poker) error {
	for _, ch := range c.list {
		if err := mem.Poke(ch.Address, ch.Value); err != nil {
			return curated.Errorf("gameshark: %s: %v", ch.Name, err)
		}
	}
	return nil
}

// Parse a list of cheats. Lines that do not have exactly two fields are
// logged and skipped. A line with an invalid code is an error.
func Parse(r io.Reader) (*Cheats, error) {
	c := &Cheats{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) != 2 {
			logger.Logf(logger.Allow, "gameshark", "invalid line in cheats file: %s", scanner.Text())
			continue
		}

		ch, err := ParseCode(parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		c.Add(ch)
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(FileError, err)
	}

	return c, nil
}

// Load cheats from the named file.
func Load(fs afero.Fs, path string) (*Cheats, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, err
	}

	logger.Logf(logger.Allow, "gameshark", "%d cheats loaded from %s", c.Len(), path)

	return c, nil
}
