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

// Package logger is the central log repository for Gopher6502. Log entries
// are tagged with the name of the component that made them.
//
// The package level functions operate on a central log. Independent logs can
// be created with NewLogger().
//
// Every log request is accompanied by a Permission. Use logger.Allow if the
// entry should always be made.
//
//	logger.Logf(logger.Allow, "CPU", "halted at %#04x", address)
//
// Consecutive identical entries are folded into one entry with a repeat
// count.
package logger
