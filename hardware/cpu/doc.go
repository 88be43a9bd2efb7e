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

// Package cpu emulates the 6502 microprocessor. Like all 8-bit processors of
// the era, the 6502 executes instructions according to the single byte value
// read from an address pointed to by the program counter. This single byte is
// the opcode and is looked up in the instruction table. The instruction
// definition for that opcode is then used to move execution of the program
// forward.
//
// The CPU type requires an implementation of the cpubus.Memory interface. The
// memory is owned by the host and is the only way the CPU can read program
// data or store results.
//
// The bread-and-butter of the CPU type is the ExecuteInstruction() function.
// Each call decodes and executes exactly one instruction.
//
//	mc := cpu.NewCPU(mem)
//	mc.LoadPC(0x0200)
//
//	for !mc.Halted {
//		err := mc.ExecuteInstruction()
//		if err != nil {
//			return err
//		}
//	}
//
// The Run() function does the same as the loop above. Interpret() is a
// convenience function for programs that don't need a host memory. The
// program is copied into a private 64KiB memory at address zero and run from
// there. The host memory, if any, is untouched and plumbed back in afterwards.
//
// Opcode 0x00 is not treated as an interrupt. It stops the CPU and sets the
// Halted field. The program counter is left pointing at the following byte.
//
// Opcodes that have no definition and memory accesses that the host refuses
// are fatal. The error is returned to the caller and the registers are
// restored to the values they had at the start of the failing instruction.
// The CPU is then marked as Faulted and will refuse to execute any further
// instructions until Reset() is called.
//
// The LastResult field can be probed for information about the last
// instruction executed. See the execution package for more information. Very
// useful for tracing.
package cpu
