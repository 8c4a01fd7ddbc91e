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

package paths

import (
	"fmt"
	"strings"
	"time"
)

// UniqueFilename creates a filename that (assuming a functioning clock)
// should not collide with any existing file. The label is optional and is
// placed between the prefix and the timestamp.
//
// Format of the returned filename is:
//
//	prefix_label_YYYYMMDD_HHMMSS
//
// or, when label is empty:
//
//	prefix_YYYYMMDD_HHMMSS
func UniqueFilename(prefix string, label string) string {
	return uniqueFilename(prefix, label, time.Now())
}

func uniqueFilename(prefix string, label string, n time.Time) string {
	timestamp := n.Format("20060102_150405")

	l := strings.TrimSpace(label)
	if len(l) > 0 {
		return fmt.Sprintf("%s_%s_%s", prefix, l, timestamp)
	}
	return fmt.Sprintf("%s_%s", prefix, timestamp)
}
