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

package memory

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopher6502/hardware/memory/cpubus"
)

// MemorySize is the number of addressable bytes.
const MemorySize = 0x10000

// RAM is a flat 64KiB memory. All addresses are readable and writable.
type RAM struct {
	memory []uint8
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM() *RAM {
	return &RAM{
		memory: make([]uint8, MemorySize),
	}
}

// Snapshot creates a copy of RAM.
func (ram *RAM) Snapshot() *RAM {
	n := &RAM{
		memory: make([]uint8, len(ram.memory)),
	}
	copy(n.memory, ram.memory)
	return n
}

// Reset clears every byte of memory.
func (ram *RAM) Reset() {
	clear(ram.memory)
}

// Load copies data into memory starting at origin. The data must fit
// entirely inside the address space.
func (ram *RAM) Load(origin uint16, data []uint8) error {
	if int(origin)+len(data) > len(ram.memory) {
		return fmt.Errorf("%w: %d bytes at %#04x exceeds memory", cpubus.AddressError, len(data), origin)
	}
	copy(ram.memory[origin:], data)
	return nil
}

// Read implements the cpubus.Memory interface.
func (ram *RAM) Read(address uint16) (uint8, error) {
	return ram.memory[address], nil
}

// Write implements the cpubus.Memory interface.
func (ram *RAM) Write(address uint16, data uint8) error {
	ram.memory[address] = data
	return nil
}

// Peek implements the cpubus.DebugBus interface.
func (ram *RAM) Peek(address uint16) (uint8, error) {
	return ram.memory[address], nil
}

// Poke implements the cpubus.DebugBus interface.
func (ram *RAM) Poke(address uint16, value uint8) error {
	ram.memory[address] = value
	return nil
}

// Dump returns a hex table of the memory between origin and memtop
// inclusive. The table is aligned to 16 byte rows.
func (ram *RAM) Dump(origin uint16, memtop uint16) string {
	return dump(ram.memory, 0, origin, memtop)
}

func (ram *RAM) String() string {
	return ram.Dump(cpubus.OriginZeroPage, cpubus.MemtopZeroPage)
}

// dump renders data as a hex table. The base argument is the address of the
// first byte in the data slice.
func dump(data []uint8, base uint16, origin uint16, memtop uint16) string {
	if memtop < origin {
		return ""
	}

	s := strings.Builder{}
	s.WriteString("       -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	s.WriteString("     ---- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --\n")

	row := uint32(origin) &^ 0x0f
	for ; row <= uint32(memtop); row += 16 {
		s.WriteString(fmt.Sprintf("%03X- | ", row>>4))
		for x := uint32(0); x < 16; x++ {
			a := row + x
			if a < uint32(origin) || a > uint32(memtop) {
				s.WriteString(" ..")
				continue
			}
			s.WriteString(fmt.Sprintf(" %02x", data[a-uint32(base)]))
		}
		s.WriteString("\n")
	}

	return strings.TrimRight(s.String(), "\n")
}
