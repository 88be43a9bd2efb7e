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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect functions report a failure with t.Errorf() and return whether
// the test passed, allowing the caller to decide whether to continue. The
// Demand functions are the same except that they call t.Fatalf() on failure.
//
// ExpectSuccess and ExpectFailure test for success and failure under generic
// conditions. A bool value of true is a success and false is a failure. An
// error value of nil is a success and a non-nil value is a failure.
//
// It is worth describing how nil is handled because it is not obvious. A
// plain nil is considered a success. This may not be how we want to
// interpret nil in all situations but because of how errors usually work (nil
// to indicate no error) we *need* to interpret nil in this way.
//
// Optional tags can be provided to all functions. These are printed at the
// head of any failure message and are useful for identifying which iteration
// of a table driven test has failed. If the first tag is a string then it is
// used as a format pattern for the remaining tags.
//
// The RingWriter type implements the io.Writer interface and is useful for
// capturing the most recent output of a process.
package test
