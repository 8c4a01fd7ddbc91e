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

// Package event defines the window and input events that can be sent to the
// emulation.
//
// The numeric value of each event is stable. Replay files refer to events by
// their numeric value and so new events must only ever be added to the end
// of the list.
package event

import (
	"strings"

	"github.com/jetsetilly/statecodec/codec"
	"github.com/jetsetilly/statecodec/curated"
)

// Event is a window or input event.
type Event int

// List of valid Event values. ONLY ADD NEW EVENTS AT THE END OF THE LIST.
const (
	Quit Event = iota
	PressArrowUp
	PressArrowDown
	PressArrowRight
	PressArrowLeft
	PressButtonA
	PressButtonB
	PressButtonSelect
	PressButtonStart
	ReleaseArrowUp
	ReleaseArrowDown
	ReleaseArrowRight
	ReleaseArrowLeft
	ReleaseButtonA
	ReleaseButtonB
	ReleaseButtonSelect
	ReleaseButtonStart
	InternalToggleDebug
	PressSpeedUp
	ReleaseSpeedUp
	StateSave
	StateLoad
	Pass
	ScreenRecordingToggle
	Pause
	Unpause
	PauseToggle
	PressRewindBack
	PressRewindForward
	ReleaseRewindBack
	ReleaseRewindForward
	WindowFocus
	WindowUnfocus
	InternalRendererFlush
	InternalMouse
	InternalMarkTile
	ScreenshotRecord
	DebugMemoryScrollDown
	DebugMemoryScrollUp
	ModShiftOn
	ModShiftOff
	FullScreenToggle

	numEvents
)

// the names are used in replay scripts and must not change
var names = [numEvents]string{
	"QUIT",
	"PRESS_ARROW_UP",
	"PRESS_ARROW_DOWN",
	"PRESS_ARROW_RIGHT",
	"PRESS_ARROW_LEFT",
	"PRESS_BUTTON_A",
	"PRESS_BUTTON_B",
	"PRESS_BUTTON_SELECT",
	"PRESS_BUTTON_START",
	"RELEASE_ARROW_UP",
	"RELEASE_ARROW_DOWN",
	"RELEASE_ARROW_RIGHT",
	"RELEASE_ARROW_LEFT",
	"RELEASE_BUTTON_A",
	"RELEASE_BUTTON_B",
	"RELEASE_BUTTON_SELECT",
	"RELEASE_BUTTON_START",
	"_INTERNAL_TOGGLE_DEBUG",
	"PRESS_SPEED_UP",
	"RELEASE_SPEED_UP",
	"STATE_SAVE",
	"STATE_LOAD",
	"PASS",
	"SCREEN_RECORDING_TOGGLE",
	"PAUSE",
	"UNPAUSE",
	"PAUSE_TOGGLE",
	"PRESS_REWIND_BACK",
	"PRESS_REWIND_FORWARD",
	"RELEASE_REWIND_BACK",
	"RELEASE_REWIND_FORWARD",
	"WINDOW_FOCUS",
	"WINDOW_UNFOCUS",
	"_INTERNAL_RENDERER_FLUSH",
	"_INTERNAL_MOUSE",
	"_INTERNAL_MARK_TILE",
	"SCREENSHOT_RECORD",
	"DEBUG_MEMORY_SCROLL_DOWN",
	"DEBUG_MEMORY_SCROLL_UP",
	"MOD_SHIFT_ON",
	"MOD_SHIFT_OFF",
	"FULL_SCREEN_TOGGLE",
}

// Sentinel error patterns.
const (
	UnknownEvent = "event: unknown event (%v)"
)

// Valid returns true if the Event is in the list of known events.
func (ev Event) Valid() bool {
	return ev >= 0 && ev < numEvents
}

func (ev Event) String() string {
	if !ev.Valid() {
		return "UNKNOWN"
	}
	return names[ev]
}

// Internal returns true if the event is for use inside the emulator only.
func (ev Event) Internal() bool {
	return ev.Valid() && strings.HasPrefix(names[ev], "_INTERNAL")
}

// Parse returns the Event with the given name. Names are case insensitive.
func Parse(name string) (Event, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for i, s := range names {
		if s == n {
			return Event(i), nil
		}
	}
	return Quit, curated.Errorf(UnknownEvent, name)
}

// List returns every valid Event in numeric order.
func List() []Event {
	l := make([]Event, numEvents)
	for i := range l {
		l[i] = Event(i)
	}
	return l
}

// Write the numeric value of the event to the stream as a single byte.
func Write(s codec.Stream, ev Event) error {
	if !ev.Valid() {
		return curated.Errorf(UnknownEvent, int(ev))
	}
	return codec.WriteUint8(s, uint8(ev))
}

// Read a single byte from the stream and return it as an Event.
func Read(s codec.Stream) (Event, error) {
	v, err := codec.ReadUint8(s)
	if err != nil {
		return Quit, err
	}
	ev := Event(v)
	if !ev.Valid() {
		return Quit, curated.Errorf(UnknownEvent, int(v))
	}
	return ev, nil
}
