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

// Package script runs Lua scenarios against the CPU. A scenario prepares
// memory and registers, runs a program and then inspects the outcome:
//
//	load(0x0200, {0xa9, 0xff, 0xaa, 0xe8, 0x00})
//	ok, err = run(0x0200)
//	assert(ok, err)
//	assert(reg("X") == 0x00)
//	assert(flag("Z"))
//
// The following functions are available to a scenario:
//
//	reset()                  reset the CPU and replace memory with a flat 64KiB RAM
//	poke(address, value)     write a byte to memory
//	peek(address)            read a byte from memory
//	load(address, {bytes})   write a sequence of bytes to memory
//	map(label, origin, memtop, readonly)
//	                         add an area to memory. once map() has been called
//	                         only mapped addresses are accessible
//	loadfile(filename)       load a program file and return its origin
//	setreg(name, value)      set one of the A, X, Y, SP, PC or SR registers
//	reg(name)                return the value of a register
//	flag(name)               return the state of one of the N, V, B, D, I, Z, C flags
//	run(origin)              run from origin until the program halts
//	step()                   execute a single instruction
//	interpret({bytes})       run a program without the scenario memory
//	last()                   description of the most recent instruction
//	print(...)               write to the harness output
//
// The run(), step() and interpret() functions return true if the CPU has not
// faulted. Otherwise they return false and the error message.
//
// Addresses and byte values must be whole numbers in range.
//
// Programs given to interpret() run in a private memory, as described by
// cpu.Interpret(). Calls to peek() after interpret() do not see that memory.
package script
