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

// Package statsview offers runtime statistics over HTTP. The server is only
// available when the program is built with the statsview build tag:
//
//	go build -tags statsview
//
// The statistics are provided by "github.com/go-echarts/statsview". After
// launch, graphs are viewable at:
//
//	localhost:16502/debug/statsview
//
// Standard Go pprof statistics are at:
//
//	localhost:16502/debug/pprof/
//
// Without the build tag Launch() does nothing and Available() returns false.
package statsview
