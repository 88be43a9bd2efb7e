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

// Package instructions defines the table of instruction definitions for the
// 6502. Each Definition describes how many bytes an instruction occupies, how
// its operand is addressed and the operation it performs.
//
// The table is specified in the instructions.csv file, which is embedded in
// the package and parsed the first time GetDefinitions() is called. Only the
// documented opcodes are defined. Undefined opcodes have a nil entry in the
// table.
package instructions
