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

package cpu

import (
	"github.com/jetsetilly/gopher6502/hardware/cpu/execution"
	"github.com/jetsetilly/gopher6502/hardware/cpu/instructions"
)

// operand is the outcome of resolving the addressing mode of an instruction.
type operand struct {
	// the address to use when accessing memory, after any indexing and
	// indirection. for branches it is the branch target
	address uint16

	// the value to operate on. for immediate addressing it is the byte
	// following the opcode. for accumulator addressing it is the value of the
	// A register. for memory addressing it is the value at address, but only
	// if the instruction reads memory
	value uint8
}

// resolve the addressing mode of the instruction. the PC is advanced past
// the operand bytes.
//
// memory is only read at the effective address if the effect of the
// instruction requires it. store instructions and jumps do not read.
func (mc *CPU) resolve(defn *instructions.Definition) (operand, error) {
	var op operand
	var err error

	switch defn.AddressingMode {
	case instructions.Implied:
		// nothing to resolve

	case instructions.Accumulator:
		op.value = mc.A.Value()

	case instructions.Immediate:
		op.value, err = mc.read8BitPC()
		if err != nil {
			return op, err
		}
		mc.LastResult.InstructionData = uint16(op.value)

	case instructions.Relative:
		// the offset is read as the value. the address is the target of the
		// branch should it be taken
		op.value, err = mc.read8BitPC()
		if err != nil {
			return op, err
		}
		mc.LastResult.InstructionData = uint16(op.value)

		// sign extend the offset and add it to the PC, which by now points to
		// the instruction after the branch
		op.address = mc.PC.Address() + uint16(int16(int8(op.value)))

	case instructions.ZeroPage:
		var zp uint8
		zp, err = mc.read8BitPC()
		if err != nil {
			return op, err
		}
		mc.LastResult.InstructionData = uint16(zp)
		op.address = uint16(zp)

	case instructions.ZeroPageIndexedX, instructions.ZeroPageIndexedY:
		var zp uint8
		zp, err = mc.read8BitPC()
		if err != nil {
			return op, err
		}
		mc.LastResult.InstructionData = uint16(zp)

		idx := mc.X.Value()
		if defn.AddressingMode == instructions.ZeroPageIndexedY {
			idx = mc.Y.Value()
		}

		// indexing never leaves the zero page
		op.address = uint16(zp + idx)
		if uint16(zp)+uint16(idx) > 0xff {
			mc.LastResult.CPUBug = execution.ZeroPageIndexBug
		}

	case instructions.Absolute:
		op.address, err = mc.read16BitPC()
		if err != nil {
			return op, err
		}
		mc.LastResult.InstructionData = op.address

	case instructions.AbsoluteIndexedX, instructions.AbsoluteIndexedY:
		var base uint16
		base, err = mc.read16BitPC()
		if err != nil {
			return op, err
		}
		mc.LastResult.InstructionData = base

		idx := mc.X.Address()
		if defn.AddressingMode == instructions.AbsoluteIndexedY {
			idx = mc.Y.Address()
		}
		op.address = base + idx

	case instructions.Indirect:
		var pointer uint16
		pointer, err = mc.read16BitPC()
		if err != nil {
			return op, err
		}
		mc.LastResult.InstructionData = pointer

		// the high byte of the target is read from the same page as the low
		// byte. the carry from the low byte of the pointer is never applied
		var lo, hi uint8
		lo, err = mc.read8Bit(pointer)
		if err != nil {
			return op, err
		}
		hi, err = mc.read8Bit((pointer & 0xff00) | uint16(uint8(pointer)+1))
		if err != nil {
			return op, err
		}
		op.address = (uint16(hi) << 8) | uint16(lo)

		if pointer&0x00ff == 0x00ff {
			mc.LastResult.CPUBug = execution.JmpIndirectAddressingBug
		}

	case instructions.IndexedIndirect:
		var zp uint8
		zp, err = mc.read8BitPC()
		if err != nil {
			return op, err
		}
		mc.LastResult.InstructionData = uint16(zp)

		pointer := zp + mc.X.Value()
		op.address, err = mc.read16BitZeroPage(pointer)
		if err != nil {
			return op, err
		}

		if uint16(zp)+mc.X.Address() > 0xff || pointer == 0xff {
			mc.LastResult.CPUBug = execution.IndexedIndirectAddressingBug
		}

	case instructions.IndirectIndexed:
		var zp uint8
		zp, err = mc.read8BitPC()
		if err != nil {
			return op, err
		}
		mc.LastResult.InstructionData = uint16(zp)

		var base uint16
		base, err = mc.read16BitZeroPage(zp)
		if err != nil {
			return op, err
		}
		op.address = base + mc.Y.Address()

		if zp == 0xff {
			mc.LastResult.CPUBug = execution.IndirectIndexedAddressingBug
		}
	}

	switch defn.AddressingMode {
	case instructions.Implied, instructions.Accumulator, instructions.Immediate:
	case instructions.Relative:
		mc.LastResult.EffectiveAddress = op.address
	default:
		mc.LastResult.EffectiveAddress = op.address
		if defn.Effect == instructions.Read || defn.Effect == instructions.RMW {
			op.value, err = mc.read8Bit(op.address)
			if err != nil {
				return op, err
			}
		}
	}

	return op, nil
}
