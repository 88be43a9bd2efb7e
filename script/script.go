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

package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/jetsetilly/gopher6502/hardware/cpu"
	"github.com/jetsetilly/gopher6502/hardware/cpu/execution"
	"github.com/jetsetilly/gopher6502/hardware/memory"
	"github.com/jetsetilly/gopher6502/hardware/memory/cpubus"
	"github.com/jetsetilly/gopher6502/logger"
	"github.com/jetsetilly/gopher6502/programloader"
	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

// Bus is the memory a scenario runs against. Both memory.RAM and
// memory.Mapped satisfy the interface.
type Bus interface {
	cpubus.Memory
	cpubus.DebugBus
}

// Harness is a Lua environment with a CPU and memory attached.
type Harness struct {
	CPU *cpu.CPU

	// a flat 64KiB RAM until the scenario calls map()
	Mem Bus

	// non-nil once the scenario has called map()
	mapped *memory.Mapped

	state  *lua.LState
	output io.Writer
}

// NewHarness creates a Lua environment with the scenario functions
// registered. Output from the print() function is sent to the output
// argument. Close() should be called when the harness is no longer needed.
func NewHarness(output io.Writer) *Harness {
	h := &Harness{
		Mem:    memory.NewRAM(),
		state:  lua.NewState(),
		output: output,
	}
	h.CPU = cpu.NewCPU(h.Mem)

	for name, fn := range map[string]lua.LGFunction{
		"reset":     h.reset,
		"poke":      h.poke,
		"peek":      h.peek,
		"load":      h.load,
		"map":       h.mapArea,
		"loadfile":  h.loadfile,
		"setreg":    h.setreg,
		"reg":       h.reg,
		"flag":      h.flag,
		"run":       h.run,
		"step":      h.step,
		"interpret": h.interpret,
		"last":      h.last,
		"print":     h.print,
	} {
		h.state.SetGlobal(name, h.state.NewFunction(fn))
	}

	return h
}

// Close the Lua environment.
func (h *Harness) Close() {
	h.state.Close()
}

// RunString runs a scenario from a string.
func (h *Harness) RunString(src string) error {
	if err := h.state.DoString(src); err != nil {
		return errors.Wrap(err, "script")
	}
	return nil
}

// RunFile runs the scenario in the named file.
func (h *Harness) RunFile(filename string) error {
	logger.Logf(logger.Allow, "script", "running %s", filename)
	if err := h.state.DoFile(filename); err != nil {
		return errors.Wrapf(err, "script: %s", filename)
	}
	return nil
}

// isInteger returns true if v is a whole number between zero and max
// inclusive. Lua numbers are floating point.
func isInteger(v lua.LNumber, max int) bool {
	return v >= 0 && v <= lua.LNumber(max) && v == lua.LNumber(int(v))
}

func checkAddress(L *lua.LState, n int) uint16 {
	v := L.CheckNumber(n)
	if !isInteger(v, 0xffff) {
		L.ArgError(n, "not an address")
	}
	return uint16(v)
}

func checkByte(L *lua.LState, n int) uint8 {
	v := L.CheckNumber(n)
	if !isInteger(v, 0xff) {
		L.ArgError(n, "not a byte")
	}
	return uint8(v)
}

func checkBytes(L *lua.LState, n int) []uint8 {
	tbl := L.CheckTable(n)
	data := make([]uint8, 0, tbl.Len())
	for i := 1; i <= tbl.Len(); i++ {
		v, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok || !isInteger(v, 0xff) {
			L.ArgError(n, fmt.Sprintf("entry %d is not a byte", i))
		}
		data = append(data, uint8(v))
	}
	return data
}

// pushResult pushes the outcome of a run to the Lua stack.
func pushResult(L *lua.LState, err error) int {
	if err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (h *Harness) reset(L *lua.LState) int {
	h.Mem = memory.NewRAM()
	h.mapped = nil
	h.CPU.Reset()
	h.CPU.Plumb(h.Mem)
	return 0
}

func (h *Harness) poke(L *lua.LState) int {
	address := checkAddress(L, 1)
	value := checkByte(L, 2)
	if err := h.Mem.Poke(address, value); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *Harness) peek(L *lua.LState) int {
	v, err := h.Mem.Peek(checkAddress(L, 1))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (h *Harness) load(L *lua.LState) int {
	origin := checkAddress(L, 1)
	data := checkBytes(L, 2)
	if int(origin)+len(data) > memory.MemorySize {
		L.RaiseError("%d bytes at %#04x exceeds memory", len(data), origin)
	}
	for i, v := range data {
		if err := h.Mem.Poke(origin+uint16(i), v); err != nil {
			L.RaiseError("%v", err)
		}
	}
	return 0
}

// mapArea adds an area to the scenario memory. The first call replaces the
// flat RAM with a memory in which only mapped areas are accessible.
func (h *Harness) mapArea(L *lua.LState) int {
	label := L.CheckString(1)
	origin := checkAddress(L, 2)
	memtop := checkAddress(L, 3)
	readOnly := L.OptBool(4, false)

	if memtop < origin {
		L.ArgError(3, "memtop is before origin")
	}

	var area *memory.Area
	var err error
	if readOnly {
		area, err = memory.NewROM(label, origin, make([]uint8, int(memtop)-int(origin)+1))
	} else {
		area, err = memory.NewArea(label, origin, memtop)
	}
	if err != nil {
		L.RaiseError("%v", err)
	}

	if h.mapped == nil {
		h.mapped, err = memory.NewMapped()
		if err != nil {
			L.RaiseError("%v", err)
		}
		h.Mem = h.mapped
		h.CPU.Plumb(h.Mem)
	}

	if err := h.mapped.Add(area); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *Harness) loadfile(L *lua.LState) int {
	ld := programloader.NewLoader(L.CheckString(1), L.OptString(2, "AUTO"))
	if err := ld.Load(); err != nil {
		L.RaiseError("%v", err)
	}
	if err := ld.Attach(h.Mem); err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(ld.Origin))
	return 1
}

func (h *Harness) setreg(L *lua.LState) int {
	name := strings.ToUpper(L.CheckString(1))
	switch name {
	case "A":
		h.CPU.A.Load(checkByte(L, 2))
	case "X":
		h.CPU.X.Load(checkByte(L, 2))
	case "Y":
		h.CPU.Y.Load(checkByte(L, 2))
	case "SP":
		h.CPU.SP.Load(checkByte(L, 2))
	case "SR":
		h.CPU.Status.Load(checkByte(L, 2))
	case "PC":
		h.CPU.LoadPC(checkAddress(L, 2))
	default:
		L.ArgError(1, fmt.Sprintf("unknown register: %s", name))
	}
	return 0
}

func (h *Harness) reg(L *lua.LState) int {
	name := strings.ToUpper(L.CheckString(1))
	var v int
	switch name {
	case "A":
		v = int(h.CPU.A.Value())
	case "X":
		v = int(h.CPU.X.Value())
	case "Y":
		v = int(h.CPU.Y.Value())
	case "SP":
		v = int(h.CPU.SP.Value())
	case "SR":
		v = int(h.CPU.Status.Value())
	case "PC":
		v = int(h.CPU.PC.Address())
	default:
		L.ArgError(1, fmt.Sprintf("unknown register: %s", name))
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (h *Harness) flag(L *lua.LState) int {
	name := strings.ToUpper(L.CheckString(1))
	var v bool
	switch name {
	case "N":
		v = h.CPU.Status.Sign
	case "V":
		v = h.CPU.Status.Overflow
	case "B":
		v = h.CPU.Status.Break
	case "D":
		v = h.CPU.Status.DecimalMode
	case "I":
		v = h.CPU.Status.InterruptDisable
	case "Z":
		v = h.CPU.Status.Zero
	case "C":
		v = h.CPU.Status.Carry
	default:
		L.ArgError(1, fmt.Sprintf("unknown flag: %s", name))
	}
	L.Push(lua.LBool(v))
	return 1
}

func (h *Harness) run(L *lua.LState) int {
	return pushResult(L, h.CPU.Run(checkAddress(L, 1)))
}

func (h *Harness) step(L *lua.LState) int {
	return pushResult(L, h.CPU.ExecuteInstruction())
}

func (h *Harness) interpret(L *lua.LState) int {
	return pushResult(L, h.CPU.Interpret(checkBytes(L, 1)))
}

func (h *Harness) last(L *lua.LState) int {
	L.Push(lua.LString(h.CPU.LastResult.GetString(execution.StyleFull)))
	return 1
}

func (h *Harness) print(L *lua.LState) int {
	s := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		s = append(s, L.Get(i).String())
	}
	fmt.Fprintln(h.output, strings.Join(s, "\t"))
	return 0
}
