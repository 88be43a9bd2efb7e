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

// Package memory contains host side implementations of the cpubus.Memory
// interface.
//
// RAM is a flat 64KiB address space where every access succeeds. It is the
// memory the interpreter uses by default.
//
// Mapped is assembled from one or more Area instances. Any access that falls
// outside of every area, or any write to a read-only area, results in an error
// that wraps cpubus.AddressError.
//
// Both types also implement the cpubus.DebugBus interface so that tooling can
// inspect and alter memory without it counting as a CPU access.
package memory
