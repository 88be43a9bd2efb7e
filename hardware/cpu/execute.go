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
	"fmt"

	"github.com/jetsetilly/gopher6502/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher6502/hardware/cpu/registers"
)

// execute fetches, decodes and executes one instruction.
func (mc *CPU) execute() error {
	opcode, err := mc.read8BitPC()
	if err != nil {
		return err
	}
	mc.LastResult.Opcode = opcode

	defn := mc.instructions[opcode]
	if defn == nil {
		return fmt.Errorf("%w: opcode 0x%02x at 0x%04x", UnimplementedInstruction, opcode, mc.LastResult.Address)
	}
	mc.LastResult.Defn = defn

	// the terminator. nothing else happens and the PC is left pointing at the
	// next byte
	if defn.IsTerminator() {
		mc.Halted = true
		return nil
	}

	op, err := mc.resolve(defn)
	if err != nil {
		return err
	}

	switch defn.Operator {
	case instructions.Nop:
		// does nothing

	case instructions.Clc:
		mc.Status.Carry = false
	case instructions.Sec:
		mc.Status.Carry = true
	case instructions.Cli:
		mc.Status.InterruptDisable = false
	case instructions.Sei:
		mc.Status.InterruptDisable = true
	case instructions.Clv:
		mc.Status.Overflow = false
	case instructions.Cld:
		mc.Status.DecimalMode = false
	case instructions.Sed:
		mc.Status.DecimalMode = true

	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.Status.SetZN(mc.X.Value())
	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.Status.SetZN(mc.A.Value())
	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.Status.SetZN(mc.Y.Value())
	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.Status.SetZN(mc.A.Value())
	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.Status.SetZN(mc.X.Value())
	case instructions.Txs:
		// no status flags are affected
		mc.SP.Load(mc.X.Value())

	case instructions.Pha:
		err = mc.push(mc.A.Value())
	case instructions.Pla:
		var v uint8
		v, err = mc.pull()
		mc.A.Load(v)
		mc.Status.SetZN(v)
	case instructions.Php:
		// the break bit and unused bit are always set in the pushed value
		err = mc.push(mc.Status.Value() | registers.BreakBit | registers.UnusedBit)
	case instructions.Plp:
		var v uint8
		v, err = mc.pull()
		mc.Status.Load(v)

	case instructions.Inx:
		mc.X.Add(1, false)
		mc.Status.SetZN(mc.X.Value())
	case instructions.Iny:
		mc.Y.Add(1, false)
		mc.Status.SetZN(mc.Y.Value())
	case instructions.Dex:
		mc.X.Subtract(1, true)
		mc.Status.SetZN(mc.X.Value())
	case instructions.Dey:
		mc.Y.Subtract(1, true)
		mc.Status.SetZN(mc.Y.Value())

	case instructions.Lda:
		mc.A.Load(op.value)
		mc.Status.SetZN(op.value)
	case instructions.Ldx:
		mc.X.Load(op.value)
		mc.Status.SetZN(op.value)
	case instructions.Ldy:
		mc.Y.Load(op.value)
		mc.Status.SetZN(op.value)

	case instructions.Sta:
		err = mc.write8Bit(op.address, mc.A.Value())
	case instructions.Stx:
		err = mc.write8Bit(op.address, mc.X.Value())
	case instructions.Sty:
		err = mc.write8Bit(op.address, mc.Y.Value())

	case instructions.Adc:
		mc.Status.Carry, mc.Status.Overflow = mc.A.Add(op.value, mc.Status.Carry)
		mc.Status.SetZN(mc.A.Value())
	case instructions.Sbc:
		mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(op.value, mc.Status.Carry)
		mc.Status.SetZN(mc.A.Value())

	case instructions.Cmp:
		mc.compare(mc.A, op.value)
	case instructions.Cpx:
		mc.compare(mc.X, op.value)
	case instructions.Cpy:
		mc.compare(mc.Y, op.value)

	case instructions.And:
		mc.A.AND(op.value)
		mc.Status.SetZN(mc.A.Value())
	case instructions.Eor:
		mc.A.EOR(op.value)
		mc.Status.SetZN(mc.A.Value())
	case instructions.Ora:
		mc.A.ORA(op.value)
		mc.Status.SetZN(mc.A.Value())

	case instructions.Bit:
		mc.acc8.Load(mc.A.Value())
		mc.acc8.AND(op.value)
		mc.Status.Zero = mc.acc8.IsZero()
		mc.Status.Overflow = op.value&registers.OverflowBit == registers.OverflowBit
		mc.Status.Sign = op.value&registers.SignBit == registers.SignBit

	case instructions.Asl:
		err = mc.modify(defn, op, func(r *registers.Register) {
			mc.Status.Carry = r.ASL()
		})
	case instructions.Lsr:
		err = mc.modify(defn, op, func(r *registers.Register) {
			mc.Status.Carry = r.LSR()
		})
	case instructions.Rol:
		err = mc.modify(defn, op, func(r *registers.Register) {
			mc.Status.Carry = r.ROL(mc.Status.Carry)
		})
	case instructions.Ror:
		err = mc.modify(defn, op, func(r *registers.Register) {
			mc.Status.Carry = r.ROR(mc.Status.Carry)
		})
	case instructions.Inc:
		err = mc.modify(defn, op, func(r *registers.Register) {
			r.Add(1, false)
		})
	case instructions.Dec:
		err = mc.modify(defn, op, func(r *registers.Register) {
			r.Subtract(1, true)
		})

	case instructions.Bpl:
		mc.branch(!mc.Status.Sign, op.address)
	case instructions.Bmi:
		mc.branch(mc.Status.Sign, op.address)
	case instructions.Bvc:
		mc.branch(!mc.Status.Overflow, op.address)
	case instructions.Bvs:
		mc.branch(mc.Status.Overflow, op.address)
	case instructions.Bcc:
		mc.branch(!mc.Status.Carry, op.address)
	case instructions.Bcs:
		mc.branch(mc.Status.Carry, op.address)
	case instructions.Bne:
		mc.branch(!mc.Status.Zero, op.address)
	case instructions.Beq:
		mc.branch(mc.Status.Zero, op.address)

	case instructions.Jmp:
		mc.PC.Load(op.address)

	case instructions.Jsr:
		// the address pushed is the address of the last byte of the JSR
		// instruction. RTS adds one to the pulled address
		err = mc.push16(mc.PC.Address() - 1)
		if err == nil {
			mc.PC.Load(op.address)
		}

	case instructions.Rts:
		var rts uint16
		rts, err = mc.pull16()
		mc.PC.Load(rts + 1)

	case instructions.Rti:
		var v uint8
		v, err = mc.pull()
		if err != nil {
			return err
		}
		mc.Status.Load(v)

		var rti uint16
		rti, err = mc.pull16()
		mc.PC.Load(rti)

	default:
		return fmt.Errorf("cpu: unknown operator (%s)", defn.Operator)
	}

	return err
}

// compare sets the status flags as though the value was subtracted from the
// register. the register is not changed.
func (mc *CPU) compare(r registers.Register, value uint8) {
	mc.acc8.Load(r.Value())
	mc.Status.Carry, _ = mc.acc8.Subtract(value, true)
	mc.Status.SetZN(mc.acc8.Value())
}

// modify applies f to the operand of a shift, rotate, increment or decrement
// instruction. in accumulator mode f is applied to the A register, otherwise
// the modified value is written back to memory.
func (mc *CPU) modify(defn *instructions.Definition, op operand, f func(r *registers.Register)) error {
	if defn.AddressingMode == instructions.Accumulator {
		f(&mc.A)
		mc.Status.SetZN(mc.A.Value())
		return nil
	}

	mc.acc8.Load(op.value)
	f(&mc.acc8)
	mc.Status.SetZN(mc.acc8.Value())

	return mc.write8Bit(op.address, mc.acc8.Value())
}

// branch to address if flag is true.
func (mc *CPU) branch(flag bool, address uint16) {
	mc.LastResult.BranchSuccess = flag
	if flag {
		mc.PC.Load(address)
	}
}
