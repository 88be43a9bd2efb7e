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

// push writes the value to the stack and then moves the stack pointer on.
func (mc *CPU) push(value uint8) error {
	if err := mc.write8Bit(mc.SP.Address(), value); err != nil {
		return err
	}
	mc.SP.Push()
	return nil
}

// pull moves the stack pointer back and then reads the value from the stack.
func (mc *CPU) pull() (uint8, error) {
	mc.SP.Pull()
	return mc.read8Bit(mc.SP.Address())
}

// push16 pushes the high byte of the value followed by the low byte.
func (mc *CPU) push16(value uint16) error {
	if err := mc.push(uint8(value >> 8)); err != nil {
		return err
	}
	return mc.push(uint8(value))
}

// pull16 is the reverse of push16.
func (mc *CPU) pull16() (uint16, error) {
	lo, err := mc.pull()
	if err != nil {
		return 0, err
	}
	hi, err := mc.pull()
	if err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}
