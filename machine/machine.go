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

// Package machine is a small deterministic machine. It has no instruction
// set. Every call to Step() scrambles the registers and memory in a way that
// depends only on the previous state and the joypad. It exists so that
// snapshots and the rewind system have a realistic amount of state to work
// with.
//
// The Machine type implements the snapshot.Stater interface. The layout of
// the state is:
//
//	[8 x u8 registers][u16 SP][u16 PC][8192 x u8 RAM][u16 divider][u64 cycles][u8 joypad]
package machine

import (
	"fmt"

	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/event"
)

// Memory map.
const (
	RAMOrigin = 0xc000
	RAMSize   = 0x2000
	RAMMemtop = RAMOrigin + RAMSize - 1
)

const numRegisters = 8

// RAMStateOffset is the offset in the serialised state of the first byte of
// RAM.
const RAMStateOffset = numRegisters + 2 + 2

// StateSize is the number of bytes written by SaveState().
const StateSize = RAMStateOffset + RAMSize + 2 + 8 + 1

// number of pseudo instructions executed by every call to Step()
const stepsPerFrame = 64

// Sentinel error patterns.
const (
	AddressError = "machine: address out of range (%#04x)"
)

// Joypad bits.
const (
	JoypadRight uint8 = 1 << iota
	JoypadLeft
	JoypadUp
	JoypadDown
	JoypadA
	JoypadB
	JoypadSelect
	JoypadStart
)

// Machine is the state of the deterministic machine.
type Machine struct {
	Regs    [numRegisters]uint8
	SP      uint16
	PC      uint16
	RAM     [RAMSize]uint8
	Divider uint16
	Cycles  uint64
	Joypad  uint8

	// whether Step() has any effect. not part of the serialised state
	Paused bool
}

// NewMachine is the preferred method of initialisation for the Machine type.
func NewMachine() *Machine {
	m := &Machine{}
	m.Reset()
	return m
}

// Reset the machine to its power on state.
func (m *Machine) Reset() {
	*m = Machine{
		SP: 0xfffe,
		PC: 0x0100,
	}
}

func (m *Machine) String() string {
	return fmt.Sprintf("PC=%04x SP=%04x A=%02x DIV=%04x CY=%d JOY=%08b",
		m.PC, m.SP, m.Regs[0], m.Divider, m.Cycles, m.Joypad)
}

// Step advances the machine by one frame.
func (m *Machine) Step() {
	if m.Paused {
		return
	}

	for i := range stepsPerFrame {
		r := i % numRegisters
		m.PC++
		m.Regs[r] = m.Regs[r]*5 + uint8(m.PC) + m.Regs[(r+1)%numRegisters] + m.Joypad
		m.RAM[(uint16(m.Regs[r])<<5^m.PC)%RAMSize] = m.Regs[r]
		m.Cycles += 4
	}

	m.SP -= uint16(m.Regs[7] & 0x01)
	m.Divider += stepsPerFrame
}

// HandleEvent updates the machine in response to an input event. Events that
// have no meaning for the machine are ignored.
func (m *Machine) HandleEvent(ev event.Event) {
	switch ev {
	case event.PressArrowRight:
		m.Joypad |= JoypadRight
	case event.PressArrowLeft:
		m.Joypad |= JoypadLeft
	case event.PressArrowUp:
		m.Joypad |= JoypadUp
	case event.PressArrowDown:
		m.Joypad |= JoypadDown
	case event.PressButtonA:
		m.Joypad |= JoypadA
	case event.PressButtonB:
		m.Joypad |= JoypadB
	case event.PressButtonSelect:
		m.Joypad |= JoypadSelect
	case event.PressButtonStart:
		m.Joypad |= JoypadStart
	case event.ReleaseArrowRight:
		m.Joypad &^= JoypadRight
	case event.ReleaseArrowLeft:
		m.Joypad &^= JoypadLeft
	case event.ReleaseArrowUp:
		m.Joypad &^= JoypadUp
	case event.ReleaseArrowDown:
		m.Joypad &^= JoypadDown
	case event.ReleaseButtonA:
		m.Joypad &^= JoypadA
	case event.ReleaseButtonB:
		m.Joypad &^= JoypadB
	case event.ReleaseButtonSelect:
		m.Joypad &^= JoypadSelect
	case event.ReleaseButtonStart:
		m.Joypad &^= JoypadStart
	case event.Pause:
		m.Paused = true
	case event.Unpause:
		m.Paused = false
	case event.PauseToggle:
		m.Paused = !m.Paused
	}
}

// Peek returns the value at address. Only RAM can be read.
func (m *Machine) Peek(address uint16) (uint8, error) {
	if address < RAMOrigin || address > RAMMemtop {
		return 0, curated.Errorf(AddressError, address)
	}
	return m.RAM[address-RAMOrigin], nil
}

// Poke writes value to address. Only RAM can be written.
func (m *Machine) Poke(address uint16, value uint8) error {
	if address < RAMOrigin || address > RAMMemtop {
		return curated.Errorf(AddressError, address)
	}
	m.RAM[address-RAMOrigin] = value
	return nil
}
