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

package registers_test

import (
	"testing"

	"github.com/jetsetilly/gopher6502/hardware/cpu/registers"
	"github.com/jetsetilly/gopher6502/test"
)

func TestStackPointer(t *testing.T) {
	sp := registers.NewStackPointer(0)
	test.ExpectEquality(t, sp.Label(), "SP")
	test.ExpectEquality(t, sp.Address(), uint16(0x0100))

	// push wraps from zero
	sp.Push()
	test.ExpectEquality(t, sp.Value(), uint8(0xff))
	test.ExpectEquality(t, sp.Address(), uint16(0x01ff))
	test.ExpectEquality(t, sp.String(), "0xff")

	// pull wraps from 0xff
	sp.Pull()
	test.ExpectEquality(t, sp.Value(), uint8(0x00))

	sp.Load(0x80)
	sp.Push()
	sp.Push()
	sp.Pull()
	test.ExpectEquality(t, sp.Address(), uint16(0x017f))
}
