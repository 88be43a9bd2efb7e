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

package instructions

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

//go:embed instructions.csv
var definitionsCSV []byte

var (
	tableOnce sync.Once
	table     []*Definition
	tableErr  error
)

// GetDefinitions returns the table of instruction definitions for the 6502.
// The table has 256 entries, indexed by opcode. Undefined opcodes have a nil
// entry.
//
// The table is built once and shared. Callers must not modify it.
func GetDefinitions() ([]*Definition, error) {
	tableOnce.Do(func() {
		table, tableErr = parseCSV(bytes.NewReader(definitionsCSV))
	})
	return table, tableErr
}

func parseCSV(r io.Reader) ([]*Definition, error) {
	csvr := csv.NewReader(r)
	csvr.Comment = rune('#')
	csvr.TrimLeadingSpace = true

	// instruction effect field is optional (defaulting to READ)
	csvr.FieldsPerRecord = -1

	deftable := make([]*Definition, 256)

	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("instructions: %w", err)
		}

		line, _ := csvr.FieldPos(0)

		// check for valid record length
		if !(len(rec) == 5 || len(rec) == 6) {
			return nil, fmt.Errorf("instructions: wrong number of fields in definition (%s) [line %d]", rec, line)
		}

		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}

		defn := &Definition{}

		// field: opcode
		n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(rec[0]), "0x"), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("instructions: invalid opcode (%s) [line %d]", rec[0], line)
		}
		defn.OpCode = uint8(n)

		if deftable[defn.OpCode] != nil {
			return nil, fmt.Errorf("instructions: duplicate opcode (%#02x) [line %d]", defn.OpCode, line)
		}

		// field: mnemonic
		defn.Mnemonic = strings.ToUpper(rec[1])
		var ok bool
		defn.Operator, ok = OperatorFromMnemonic(defn.Mnemonic)
		if !ok {
			return nil, fmt.Errorf("instructions: unknown mnemonic for %#02x (%s) [line %d]", defn.OpCode, rec[1], line)
		}

		// field: cycle count
		defn.Cycles, err = strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("instructions: invalid cycle count for %#02x (%s) [line %d]", defn.OpCode, rec[2], line)
		}

		// field: addressing mode
		//
		// the addressing mode also defines how many bytes an opcode
		// requires
		switch strings.ToUpper(rec[3]) {
		default:
			return nil, fmt.Errorf("instructions: invalid addressing mode for %#02x (%s) [line %d]", defn.OpCode, rec[3], line)
		case "IMPLIED":
			defn.AddressingMode = Implied
		case "ACCUMULATOR":
			defn.AddressingMode = Accumulator
		case "IMMEDIATE":
			defn.AddressingMode = Immediate
		case "RELATIVE":
			defn.AddressingMode = Relative
		case "ABSOLUTE":
			defn.AddressingMode = Absolute
		case "ZERO_PAGE":
			defn.AddressingMode = ZeroPage
		case "INDIRECT":
			defn.AddressingMode = Indirect
		case "PRE_INDEX_INDIRECT":
			defn.AddressingMode = IndexedIndirect
		case "POST_INDEX_INDIRECT":
			defn.AddressingMode = IndirectIndexed
		case "ABSOLUTE_INDEXED_X":
			defn.AddressingMode = AbsoluteIndexedX
		case "ABSOLUTE_INDEXED_Y":
			defn.AddressingMode = AbsoluteIndexedY
		case "INDEXED_ZERO_PAGE_X":
			defn.AddressingMode = ZeroPageIndexedX
		case "INDEXED_ZERO_PAGE_Y":
			defn.AddressingMode = ZeroPageIndexedY
		}
		defn.Bytes = 1 + defn.AddressingMode.OperandBytes()

		// field: page sensitive
		switch strings.ToUpper(rec[4]) {
		default:
			return nil, fmt.Errorf("instructions: invalid page sensitivity for %#02x (%s) [line %d]", defn.OpCode, rec[4], line)
		case "TRUE":
			defn.PageSensitive = true
		case "FALSE":
			defn.PageSensitive = false
		}

		// field: effect category
		if len(rec) == 5 {
			defn.Effect = Read
		} else {
			switch strings.ToUpper(rec[5]) {
			default:
				return nil, fmt.Errorf("instructions: unknown category for %#02x (%s) [line %d]", defn.OpCode, rec[5], line)
			case "READ":
				defn.Effect = Read
			case "WRITE":
				defn.Effect = Write
			case "RMW":
				defn.Effect = RMW
			case "FLOW":
				defn.Effect = Flow
			case "SUB-ROUTINE":
				defn.Effect = Subroutine
			case "INTERRUPT":
				defn.Effect = Interrupt
			}
		}

		deftable[defn.OpCode] = defn
	}

	return deftable, nil
}
