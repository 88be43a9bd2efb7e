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

// Package programloader is used to load 6502 program images from a local file
// or from an http(s) URL. The image can be raw binary or a hex text file.
//
// Raw binary files with the ".prg" extension carry their load address in the
// first two bytes (little-endian). The two bytes are removed from the data and
// used as the origin.
//
// Once loaded, the data can be copied into any memory that implements the
// cpubus.DebugBus interface with the Attach() function.
package programloader
