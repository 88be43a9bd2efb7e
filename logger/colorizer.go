// This file is part of Gopher6502.
//
// Gopher6502 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher6502 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher6502.  If not, see <https://www.gnu.org/licenses/>.

package logger

import (
	"io"
	"strings"
)

// ANSI sequences used by the Colorizer.
const (
	penNormal = "\033[0m"
	penTag    = "\033[2;36m"
	penFault  = "\033[2;31m"
)

// Colorizer applies basic coloring rules to logging output. The tag of each
// entry is dimmed. Entries that report a fault or an error are colored red.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface. The return value is the number of
// bytes of p that were consumed, not the number of bytes written to the
// underlying writer.
func (c Colorizer) Write(p []byte) (int, error) {
	s := strings.Builder{}

	for _, l := range strings.SplitAfter(string(p), "\n") {
		if l == "" {
			continue
		}

		tag, detail, ok := strings.Cut(l, ": ")
		if !ok {
			s.WriteString(l)
			continue
		}

		s.WriteString(penTag)
		s.WriteString(tag)
		s.WriteString(penNormal)
		s.WriteString(": ")

		lower := strings.ToLower(detail)
		if strings.Contains(lower, "fault") || strings.Contains(lower, "error") {
			s.WriteString(penFault)
			s.WriteString(strings.TrimSuffix(detail, "\n"))
			s.WriteString(penNormal)
			if strings.HasSuffix(detail, "\n") {
				s.WriteString("\n")
			}
		} else {
			s.WriteString(detail)
		}
	}

	_, err := io.WriteString(c.out, s.String())
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
