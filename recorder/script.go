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

package recorder

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/jetsetilly/statecodec/curated"
	"github.com/jetsetilly/statecodec/event"
)

// ParseScript converts a replay script to a list of entries. See the package
// documentation for the format of a script.
func ParseScript(script string) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(strings.NewReader(script))
	line := 0
	for scanner.Scan() {
		line++

		l := strings.TrimSpace(scanner.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}

		f, evs, ok := strings.Cut(l, ":")
		if !ok {
			return nil, curated.Errorf("recorder: script: line %d: missing colon", line)
		}

		frame, err := strconv.ParseUint(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, curated.Errorf("recorder: script: line %d: %v", line, err)
		}

		e := Entry{Frame: frame}
		for _, name := range strings.Split(evs, ",") {
			ev, err := event.Parse(name)
			if err != nil {
				return nil, curated.Errorf("recorder: script: line %d: %v", line, err)
			}
			e.Events = append(e.Events, ev)
		}

		if len(entries) > 0 && e.Frame <= entries[len(entries)-1].Frame {
			return nil, curated.Errorf("recorder: script: line %d: frames out of order", line)
		}

		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf("recorder: script: %v", err)
	}

	return entries, nil
}
