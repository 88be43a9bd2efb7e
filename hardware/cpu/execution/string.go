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

package execution

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher6502/hardware/cpu/instructions"
)

// Style specifies the elements of a Result to include when formatting it as a
// string.
type Style int

// List of valid style flags.
const (
	StyleFlagAddress Style = 0x01 << iota
	StyleFlagByteCode
	StyleFlagColumns
	StyleFlagNotes
)

// List of compound styles.
const (
	StyleBrief = StyleFlagAddress
	StyleFull  = StyleFlagAddress | StyleFlagByteCode | StyleFlagColumns | StyleFlagNotes
)

// Has tests to see if style has the supplied flag in its definition.
func (style Style) Has(flag Style) bool {
	return style&flag == flag
}

func columnise(s string, width int) string {
	if width > len(s) {
		return s + strings.Repeat(" ", width-len(s))
	}
	return s
}

// Operand returns the operand of the instruction decorated according to the
// addressing mode.
func (r Result) Operand() string {
	if r.Defn == nil {
		return ""
	}

	var operand string

	// instructions that didn't get as far as reading all of their operand
	// bytes are shown with question marks
	switch r.Defn.AddressingMode.OperandBytes() {
	case 1:
		if r.ByteCount < 2 {
			operand = "??"
		} else {
			operand = fmt.Sprintf("$%02x", r.InstructionData)
		}
	case 2:
		if r.ByteCount < 3 {
			operand = "????"
		} else {
			operand = fmt.Sprintf("$%04x", r.InstructionData)
		}
	}

	switch r.Defn.AddressingMode {
	case instructions.Accumulator:
		operand = "A"
	case instructions.Immediate:
		operand = fmt.Sprintf("#%s", operand)
	case instructions.Indirect:
		operand = fmt.Sprintf("(%s)", operand)
	case instructions.IndexedIndirect:
		operand = fmt.Sprintf("(%s,X)", operand)
	case instructions.IndirectIndexed:
		operand = fmt.Sprintf("(%s),Y", operand)
	case instructions.AbsoluteIndexedX, instructions.ZeroPageIndexedX:
		operand = fmt.Sprintf("%s,X", operand)
	case instructions.AbsoluteIndexedY, instructions.ZeroPageIndexedY:
		operand = fmt.Sprintf("%s,Y", operand)
	}

	return operand
}

// GetString returns a string representation of the Result according to the
// Style.
func (r Result) GetString(style Style) string {
	var programCounter, hex, operator, operand, notes string

	if style.Has(StyleFlagAddress) {
		programCounter = fmt.Sprintf("0x%04x", r.Address)
	}

	if r.Defn == nil {
		operator = "???"
		if style.Has(StyleFlagByteCode) {
			hex = fmt.Sprintf("%02x", r.Opcode)
		}
	} else {
		operator = r.Defn.Mnemonic
		operand = r.Operand()

		if style.Has(StyleFlagByteCode) {
			b := []string{fmt.Sprintf("%02x", r.Opcode)}
			if r.ByteCount > 1 {
				b = append(b, fmt.Sprintf("%02x", r.InstructionData&0x00ff))
			}
			if r.ByteCount > 2 {
				b = append(b, fmt.Sprintf("%02x", r.InstructionData>>8))
			}
			hex = strings.Join(b, " ")
		}
	}

	if style.Has(StyleFlagNotes) {
		var n []string
		if r.Defn != nil && r.Defn.IsBranch() && r.Final {
			if r.BranchSuccess {
				n = append(n, "branched")
			} else {
				n = append(n, "not branched")
			}
		}
		if r.CPUBug != NoBug {
			n = append(n, fmt.Sprintf("* %s *", r.CPUBug))
		}
		if r.Error != "" {
			n = append(n, fmt.Sprintf("error: %s", r.Error))
		}
		notes = strings.Join(n, " ")
	}

	if style.Has(StyleFlagColumns) {
		programCounter = columnise(programCounter, 6)
		hex = columnise(hex, 8)
		operator = columnise(operator, 3)
		operand = columnise(operand, 9)
	}

	var s strings.Builder
	for _, c := range []string{programCounter, hex, operator, operand, notes} {
		if c == "" && !style.Has(StyleFlagColumns) {
			continue
		}
		if s.Len() > 0 {
			s.WriteString(" ")
		}
		s.WriteString(c)
	}

	return strings.TrimRight(s.String(), " ")
}

func (r Result) String() string {
	return r.GetString(StyleBrief)
}
