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
	"sort"
	"strings"

	"github.com/jetsetilly/gopher6502/hardware/memory/cpubus"
)

// Area is a contiguous region of a Mapped memory.
type Area struct {
	label    string
	origin   uint16
	memtop   uint16
	readOnly bool
	data     []uint8
}

// NewArea creates a read/write area covering origin to memtop inclusive.
func NewArea(label string, origin uint16, memtop uint16) (*Area, error) {
	if memtop < origin {
		return nil, fmt.Errorf("area %s: memtop %#04x is before origin %#04x", label, memtop, origin)
	}
	return &Area{
		label:  label,
		origin: origin,
		memtop: memtop,
		data:   make([]uint8, int(memtop)-int(origin)+1),
	}, nil
}

// NewROM creates a read-only area from data. The area starts at origin and
// is as long as the data.
func NewROM(label string, origin uint16, data []uint8) (*Area, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("area %s: no data", label)
	}
	if int(origin)+len(data) > MemorySize {
		return nil, fmt.Errorf("area %s: %d bytes at %#04x exceeds memory", label, len(data), origin)
	}
	a := &Area{
		label:    label,
		origin:   origin,
		memtop:   uint16(int(origin) + len(data) - 1),
		readOnly: true,
		data:     make([]uint8, len(data)),
	}
	copy(a.data, data)
	return a, nil
}

// Label returns the name of the area.
func (a *Area) Label() string {
	return a.label
}

// Origin returns the first address of the area.
func (a *Area) Origin() uint16 {
	return a.origin
}

// Memtop returns the last address of the area.
func (a *Area) Memtop() uint16 {
	return a.memtop
}

// ReadOnly returns true if the CPU is not allowed to write to the area.
func (a *Area) ReadOnly() bool {
	return a.readOnly
}

func (a *Area) contains(address uint16) bool {
	return address >= a.origin && address <= a.memtop
}

func (a *Area) String() string {
	rw := "rw"
	if a.readOnly {
		rw = "ro"
	}
	return fmt.Sprintf("%s [%#04x-%#04x] %s", a.label, a.origin, a.memtop, rw)
}

// Mapped is a memory made up of non-overlapping areas. Addresses not covered
// by an area are inaccessible.
type Mapped struct {
	areas []*Area
}

// NewMapped is the preferred method of initialisation for the Mapped type.
// Areas must not overlap.
func NewMapped(areas ...*Area) (*Mapped, error) {
	mem := &Mapped{}
	for _, a := range areas {
		if err := mem.Add(a); err != nil {
			return nil, err
		}
	}
	return mem, nil
}

// Add a new area to the memory.
func (mem *Mapped) Add(area *Area) error {
	for _, a := range mem.areas {
		if area.origin <= a.memtop && a.origin <= area.memtop {
			return fmt.Errorf("area %s overlaps area %s", area.label, a.label)
		}
	}
	mem.areas = append(mem.areas, area)
	sort.Slice(mem.areas, func(i, j int) bool {
		return mem.areas[i].origin < mem.areas[j].origin
	})
	return nil
}

// Areas returns the list of areas in address order.
func (mem *Mapped) Areas() []*Area {
	return mem.areas
}

func (mem *Mapped) find(address uint16) *Area {
	for _, a := range mem.areas {
		if a.contains(address) {
			return a
		}
	}
	return nil
}

// Read implements the cpubus.Memory interface.
func (mem *Mapped) Read(address uint16) (uint8, error) {
	a := mem.find(address)
	if a == nil {
		return 0, fmt.Errorf("%w: read %#04x is unmapped", cpubus.AddressError, address)
	}
	return a.data[address-a.origin], nil
}

// Write implements the cpubus.Memory interface.
func (mem *Mapped) Write(address uint16, data uint8) error {
	a := mem.find(address)
	if a == nil {
		return fmt.Errorf("%w: write %#04x is unmapped", cpubus.AddressError, address)
	}
	if a.readOnly {
		return fmt.Errorf("%w: write %#04x is in read-only area %s", cpubus.AddressError, address, a.label)
	}
	a.data[address-a.origin] = data
	return nil
}

// Peek implements the cpubus.DebugBus interface.
func (mem *Mapped) Peek(address uint16) (uint8, error) {
	a := mem.find(address)
	if a == nil {
		return 0, fmt.Errorf("%w: peek %#04x is unmapped", cpubus.AddressError, address)
	}
	return a.data[address-a.origin], nil
}

// Poke implements the cpubus.DebugBus interface. Poking a read-only area is
// allowed.
func (mem *Mapped) Poke(address uint16, value uint8) error {
	a := mem.find(address)
	if a == nil {
		return fmt.Errorf("%w: poke %#04x is unmapped", cpubus.AddressError, address)
	}
	a.data[address-a.origin] = value
	return nil
}

func (mem *Mapped) String() string {
	s := strings.Builder{}
	for _, a := range mem.areas {
		s.WriteString(a.String())
		s.WriteString("\n")
		s.WriteString(dump(a.data, a.origin, a.origin, a.memtop))
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}
