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

// Package registers implements the four types of register found in the 6502.
// The four types are the: program counter, stack pointer, status register and
// the 8 bit general purpose type used for A, X and Y.
//
// The 8 bit registers, implemented as the Register type, define all the basic
// operations available to the 6502: load, add, subtract, logical operations
// and shifts/rotates. In addition it implements the tests required for status
// updates: is the value zero, is the number negative or is the overflow bit
// set.
//
// All arithmetic wraps at the width of the register. Nothing in this package
// returns an error or panics on overflow.
//
// The status register is implemented as a series of flags. Setting of flags
// is done directly. For instance, in the CPU, we might have this sequence of
// function calls:
//
//	a.Load(10)
//	sr.Carry, sr.Overflow = a.Subtract(11, true)
//	sr.Zero = a.IsZero()
//	sr.Sign = a.IsNegative()
//
// In this case, the zero flag in the status register will be false and the
// sign flag will be true.
package registers
