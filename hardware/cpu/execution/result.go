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

	"github.com/jetsetilly/gopher6502/hardware/cpu/instructions"
)

// Result records the state/result of the most recently executed CPU
// instruction.
type Result struct {
	// the address at which the instruction began
	Address uint16

	// the opcode read from Address. this is valid even if the opcode has no
	// definition
	Opcode uint8

	// instruction definition. will be nil if the opcode is undefined
	Defn *instructions.Definition

	// the number of bytes read during instruction decode. if the instruction
	// completed this value should equal Defn.Bytes
	ByteCount int

	// the operand of the instruction as it appears in the program. for two
	// byte operands this is the little-endian value
	InstructionData uint16

	// the address that the instruction operated on after indexing and
	// indirection. not meaningful for Implied, Accumulator or Immediate
	// addressing
	EffectiveAddress uint16

	// whether a branch instruction resulted in the branch being taken
	BranchSuccess bool

	// whether a known quirk of the CPU was triggered
	CPUBug Bug

	// description of any error that stopped the instruction
	Error string

	// whether this data has been finalised. some fields are undefined unless
	// Final is true
	Final bool
}

// Reset nullifies all members of the Result instance.
func (r *Result) Reset() {
	*r = Result{}
}

// IsValid checks whether the instance of Result contains information
// consistent with the instruction definition.
func (r Result) IsValid() error {
	if !r.Final {
		return fmt.Errorf("execution: result not finalised (bad opcode?)")
	}

	if r.Defn == nil {
		return fmt.Errorf("execution: no definition for opcode %#02x", r.Opcode)
	}

	if r.Defn.OpCode != r.Opcode {
		return fmt.Errorf("execution: opcode %#02x does not match definition %#02x", r.Opcode, r.Defn.OpCode)
	}

	// byte count
	if r.ByteCount != r.Defn.Bytes {
		return fmt.Errorf("execution: unexpected number of bytes read during decode (%d instead of %d)", r.ByteCount, r.Defn.Bytes)
	}

	// only branches can succeed
	if r.BranchSuccess && !r.Defn.IsBranch() {
		return fmt.Errorf("execution: branch success recorded for non-branch instruction %s", r.Defn.Mnemonic)
	}

	return nil
}
