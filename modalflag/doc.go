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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// At its simplest it can be used as a replacement for the flag package, with
// some differences. Instead of defining flags globally, flags are added to a
// Modes instance:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	trace := md.AddBool("trace", false, "print each instruction")
//	origin := md.AddAddress("origin", 0x0200, "load address")
//
// Sub-modes are added with AddSubModes(). After a call to Parse() the
// selected mode is returned by Mode(). The first sub-mode in the list is the
// default and is selected if the first remaining argument names no sub-mode:
//
//	md.AddSubModes("RUN", "SCRIPT")
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		...
//	case "SCRIPT":
//		md.NewMode()
//		...
//	}
//
// Calling NewMode() after Parse() starts a new layer of flags. Path() returns
// every mode encountered so far, separated by a forward slash.
package modalflag
