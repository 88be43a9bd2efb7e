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

package registers

import (
	"strings"
)

// Bit masks for the flags in the status register when expressed as a uint8.
const (
	CarryBit            = uint8(0x01)
	ZeroBit             = uint8(0x02)
	InterruptDisableBit = uint8(0x04)
	DecimalModeBit      = uint8(0x08)
	BreakBit            = uint8(0x10)
	UnusedBit           = uint8(0x20)
	OverflowBit         = uint8(0x40)
	SignBit             = uint8(0x80)
)

// StatusRegister is the special purpose register that stores the flags of the CPU.
type StatusRegister struct {
	Sign             bool
	Overflow         bool
	Break            bool
	DecimalMode      bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// NewStatusRegister is the preferred method of initialisation for the status
// register.
func NewStatusRegister() StatusRegister {
	return StatusRegister{}
}

// Label returns the canonical name for the status register.
func (sr StatusRegister) Label() string {
	return "SR"
}

// String returns the flags as a string of eight characters. Upper case
// indicates a set flag. The third character is the unused bit.
func (sr StatusRegister) String() string {
	s := strings.Builder{}

	flag := func(set bool, on, off rune) {
		if set {
			s.WriteRune(on)
		} else {
			s.WriteRune(off)
		}
	}

	flag(sr.Sign, 'S', 's')
	flag(sr.Overflow, 'V', 'v')
	s.WriteRune('-')
	flag(sr.Break, 'B', 'b')
	flag(sr.DecimalMode, 'D', 'd')
	flag(sr.InterruptDisable, 'I', 'i')
	flag(sr.Zero, 'Z', 'z')
	flag(sr.Carry, 'C', 'c')

	return s.String()
}

// Reset status flags to initial state.
func (sr *StatusRegister) Reset() {
	sr.Load(0)
}

// SetZN sets the Zero and Sign flags according to the value. This is the
// shared rule for all flag setting instructions.
func (sr *StatusRegister) SetZN(v uint8) {
	sr.Zero = v == 0
	sr.Sign = v&SignBit == SignBit
}

// Value converts the StatusRegister struct into a value suitable for pushing
// onto the stack.
func (sr StatusRegister) Value() uint8 {
	var v uint8

	if sr.Sign {
		v |= SignBit
	}
	if sr.Overflow {
		v |= OverflowBit
	}
	if sr.Break {
		v |= BreakBit
	}
	if sr.DecimalMode {
		v |= DecimalModeBit
	}
	if sr.InterruptDisable {
		v |= InterruptDisableBit
	}
	if sr.Zero {
		v |= ZeroBit
	}
	if sr.Carry {
		v |= CarryBit
	}

	// unused bit in the status register is always 1. this doesn't matter when
	// we're in normal form but it does matter in uint8 context
	v |= UnusedBit

	return v
}

// Load converts an 8 bit integer (taken from the stack, for example) to
// the StatusRegister struct receiver.
func (sr *StatusRegister) Load(v uint8) {
	sr.Sign = v&SignBit == SignBit
	sr.Overflow = v&OverflowBit == OverflowBit
	sr.Break = v&BreakBit == BreakBit
	sr.DecimalMode = v&DecimalModeBit == DecimalModeBit
	sr.InterruptDisable = v&InterruptDisableBit == InterruptDisableBit
	sr.Zero = v&ZeroBit == ZeroBit
	sr.Carry = v&CarryBit == CarryBit
}
