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

import "fmt"

// StackPage is the page of memory the stack pointer addresses.
const StackPage = uint16(0x0100)

// StackPointer is the 8 bit register that indexes the stack page. Unlike the
// general purpose Register type, the Address() function returns the location
// in the stack page and not the raw value.
type StackPointer struct {
	value uint8
}

// NewStackPointer is the preferred method of initialisation for StackPointer.
func NewStackPointer(val uint8) StackPointer {
	return StackPointer{value: val}
}

// Label returns the canonical name for the stack pointer.
func (sp StackPointer) Label() string {
	return "SP"
}

func (sp StackPointer) String() string {
	return fmt.Sprintf("0x%02x", sp.value)
}

// Value returns the 8 bit value of the stack pointer.
func (sp StackPointer) Value() uint8 {
	return sp.value
}

// Address returns the address in the stack page the stack pointer is
// currently pointing to.
func (sp StackPointer) Address() uint16 {
	return StackPage | uint16(sp.value)
}

// Load value into the stack pointer.
func (sp *StackPointer) Load(val uint8) {
	sp.value = val
}

// Push moves the stack pointer on to the next free location. Should be called
// after the data has been written. Wraps from 0x00 to 0xff.
func (sp *StackPointer) Push() {
	sp.value--
}

// Pull moves the stack pointer back to the most recently pushed location.
// Should be called before the data is read. Wraps from 0xff to 0x00.
func (sp *StackPointer) Pull() {
	sp.value++
}
