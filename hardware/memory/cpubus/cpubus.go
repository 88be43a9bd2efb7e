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

package cpubus

import "errors"

// Memory defines the operations for the memory system when accessed from the
// CPU. The host owns the memory and decides how addresses are mapped; the CPU
// issues one access at a time and assumes each completes before the next.
//
// Addresses that the host is not willing to service should result in an error
// that wraps AddressError. The CPU will not mask the error. It stops the
// current run and returns the error to the caller.
type Memory interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// DebugBus defines the meta-operations for memory. Think of these functions
// as "debugging" functions, that is operations outside of the normal
// operation of the CPU. Implementations should not trigger any side effect
// that a normal Read() or Write() would trigger.
type DebugBus interface {
	Peek(address uint16) (uint8, error)
	Poke(address uint16, value uint8) error
}

// AddressError is the sentinel error for memory accesses to an address that
// the memory implementation will not service.
var AddressError = errors.New("inaccessible address")

// Origin and memtop of the zero page and the stack page. The stack pointer
// indexes the stack page.
const (
	OriginZeroPage = uint16(0x0000)
	MemtopZeroPage = uint16(0x00ff)
	OriginStack    = uint16(0x0100)
	MemtopStack    = uint16(0x01ff)
)
