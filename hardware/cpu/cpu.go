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

package cpu

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/gopher6502/hardware/cpu/execution"
	"github.com/jetsetilly/gopher6502/hardware/cpu/instructions"
	"github.com/jetsetilly/gopher6502/hardware/cpu/registers"
	"github.com/jetsetilly/gopher6502/hardware/memory"
	"github.com/jetsetilly/gopher6502/hardware/memory/cpubus"
	"github.com/jetsetilly/gopher6502/logger"
)

// Sentinel errors returned by the CPU. Use errors.Is() to test for them.
var (
	// an opcode was read that has no definition in the instruction table
	UnimplementedInstruction = errors.New("cpu: unimplemented instruction")

	// a previous instruction failed. the CPU must be reset
	ErrFaulted = errors.New("cpu: faulted")

	// the program passed to Interpret() does not fit in memory
	ErrImageTooLarge = errors.New("cpu: program image too large")

	// no memory has been plumbed in
	ErrNoMemory = errors.New("cpu: no memory")
)

// CPU implements the 6502 found in the Commodore 64, the NES and countless
// other machines.
type CPU struct {
	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.StackPointer
	Status registers.StatusRegister

	// some operations only need an accumulator
	acc8 registers.Register

	mem          cpubus.Memory
	instructions []*instructions.Definition

	// last result. valid even if the instruction failed
	LastResult execution.Result

	// the cpu has encountered the terminator opcode. cleared by LoadPC() or
	// Reset()
	Halted bool

	// the cpu has encountered an error. requires a Reset()
	Faulted bool
}

// NewCPU is the preferred method of initialisation for the CPU structure. All
// registers are zero. The mem argument can be nil if the CPU is only to be
// used with Interpret().
func NewCPU(mem cpubus.Memory) *CPU {
	defs, err := instructions.GetDefinitions()
	if err != nil {
		panic(err)
	}

	return &CPU{
		mem:          mem,
		PC:           registers.NewProgramCounter(0),
		A:            registers.NewRegister(0, "A"),
		X:            registers.NewRegister(0, "X"),
		Y:            registers.NewRegister(0, "Y"),
		SP:           registers.NewStackPointer(0),
		Status:       registers.NewStatusRegister(),
		acc8:         registers.NewRegister(0, "accumulator"),
		instructions: defs,
	}
}

// Snapshot creates a copy of the CPU in its current state. The memory is not
// copied.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	return &n
}

// Plumb CPU into a new memory.
func (mc *CPU) Plumb(mem cpubus.Memory) {
	mc.mem = mem
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s %s=%s %s=%s %s=%s",
		mc.PC.Label(), mc.PC, mc.A.Label(), mc.A,
		mc.X.Label(), mc.X, mc.Y.Label(), mc.Y,
		mc.SP.Label(), mc.SP, mc.Status.Label(), mc.Status)
}

// Reset every register to zero and clear the halted and faulted states.
func (mc *CPU) Reset() {
	mc.LastResult.Reset()
	mc.Halted = false
	mc.Faulted = false

	mc.PC.Load(0)
	mc.A.Load(0)
	mc.X.Load(0)
	mc.Y.Load(0)
	mc.SP.Load(0)
	mc.Status.Reset()
	mc.acc8.Load(0)
}

// HasReset checks whether the CPU has recently been reset.
func (mc *CPU) HasReset() bool {
	return mc.LastResult.Address == 0 && mc.LastResult.Defn == nil && !mc.LastResult.Final
}

// LoadPC sets the start address of a run. The halted state is cleared so that
// execution can continue from the new address.
func (mc *CPU) LoadPC(directAddress uint16) {
	mc.PC.Load(directAddress)
	mc.Halted = false
}

// PredictRTS returns the address an RTS instruction would return to if it
// were executed now. The boolean is false if the memory does not support the
// cpubus.DebugBus interface or if the stack cannot be peeked.
func (mc *CPU) PredictRTS() (uint16, bool) {
	dbg, ok := mc.mem.(cpubus.DebugBus)
	if !ok {
		return 0, false
	}

	sp := mc.SP
	sp.Pull()
	lo, err := dbg.Peek(sp.Address())
	if err != nil {
		return 0, false
	}
	sp.Pull()
	hi, err := dbg.Peek(sp.Address())
	if err != nil {
		return 0, false
	}

	return ((uint16(hi) << 8) | uint16(lo)) + 1, true
}

// Run the program from origin until the terminator opcode is reached or an
// error occurs.
func (mc *CPU) Run(origin uint16) error {
	if mc.Faulted {
		return ErrFaulted
	}

	mc.LoadPC(origin)
	for !mc.Halted {
		if err := mc.ExecuteInstruction(); err != nil {
			return err
		}
	}

	return nil
}

// Interpret runs a program without a host memory. The program is copied to
// address zero of a private 64KiB memory and run from there. Registers other
// than the PC are not reset so they can be prepared before calling.
//
// Memory beyond the end of program is zero, so a program that runs off its
// end will halt.
//
// The memory the CPU was plumbed into before the call is plumbed back in
// when Interpret() returns.
func (mc *CPU) Interpret(program []uint8) error {
	if len(program) > memory.MemorySize {
		return fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(program))
	}

	ram := memory.NewRAM()
	if err := ram.Load(0, program); err != nil {
		return err
	}
	prev := mc.mem
	mc.Plumb(ram)
	defer mc.Plumb(prev)

	return mc.Run(0)
}

// the register file as it was at the start of an instruction
type registerFile struct {
	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.StackPointer
	Status registers.StatusRegister
}

func (mc *CPU) saveRegisters() registerFile {
	return registerFile{
		PC:     mc.PC,
		A:      mc.A,
		X:      mc.X,
		Y:      mc.Y,
		SP:     mc.SP,
		Status: mc.Status,
	}
}

func (mc *CPU) restoreRegisters(r registerFile) {
	mc.PC = r.PC
	mc.A = r.A
	mc.X = r.X
	mc.Y = r.Y
	mc.SP = r.SP
	mc.Status = r.Status
}

// ExecuteInstruction steps CPU forward one instruction.
//
// If the instruction fails the registers are restored, the Faulted flag is
// set and the error returned. Memory writes made before the failure are not
// undone.
func (mc *CPU) ExecuteInstruction() error {
	if mc.Faulted {
		return ErrFaulted
	}

	// nothing to do until LoadPC() or Reset() is called
	if mc.Halted {
		return nil
	}

	if mc.mem == nil {
		return ErrNoMemory
	}

	// prepare new round of results
	mc.LastResult.Reset()
	mc.LastResult.Address = mc.PC.Address()

	saved := mc.saveRegisters()

	err := mc.execute()
	mc.LastResult.Final = true

	if err != nil {
		mc.restoreRegisters(saved)
		mc.Faulted = true
		mc.LastResult.Error = err.Error()
		logger.Logf(logger.Allow, "CPU", "fault: %v", err)
		return err
	}

	if mc.Halted {
		logger.Logf(logger.Allow, "CPU", "halted at %#04x", mc.LastResult.Address)
	}

	return nil
}

// read8Bit returns 8bit value from the specified address.
func (mc *CPU) read8Bit(address uint16) (uint8, error) {
	val, err := mc.mem.Read(address)
	if err != nil {
		return 0, fmt.Errorf("cpu: read %#04x: %w", address, err)
	}
	return val, nil
}

// write8Bit writes 8 bits to the specified address.
func (mc *CPU) write8Bit(address uint16, value uint8) error {
	err := mc.mem.Write(address, value)
	if err != nil {
		return fmt.Errorf("cpu: write %#04x: %w", address, err)
	}
	return nil
}

// read16Bit returns a 16bit value from the specified address. The high byte
// is read from the next address, wrapping at the end of memory.
func (mc *CPU) read16Bit(address uint16) (uint16, error) {
	lo, err := mc.read8Bit(address)
	if err != nil {
		return 0, err
	}
	hi, err := mc.read8Bit(address + 1)
	if err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}

// read16BitZeroPage returns a 16bit value from the zero page. The high byte
// is read from the next address in the zero page, wrapping from 0xff to 0x00.
func (mc *CPU) read16BitZeroPage(pointer uint8) (uint16, error) {
	lo, err := mc.read8Bit(uint16(pointer))
	if err != nil {
		return 0, err
	}
	hi, err := mc.read8Bit(uint16(pointer + 1))
	if err != nil {
		return 0, err
	}
	return (uint16(hi) << 8) | uint16(lo), nil
}

// read8BitPC reads 8 bits from the memory location pointed to by PC and
// advances the PC.
func (mc *CPU) read8BitPC() (uint8, error) {
	v, err := mc.read8Bit(mc.PC.Address())
	if err != nil {
		return 0, err
	}

	// ignoring if program counter cycling
	mc.PC.Add(1)

	// bump the number of bytes read during instruction decode
	mc.LastResult.ByteCount++

	return v, nil
}

// read16BitPC reads 16 bits from the memory location pointed to by PC and
// advances the PC by two.
func (mc *CPU) read16BitPC() (uint16, error) {
	lo, err := mc.read8BitPC()
	if err != nil {
		return 0, err
	}

	// update instruction data with partial operand
	mc.LastResult.InstructionData = uint16(lo)

	hi, err := mc.read8BitPC()
	if err != nil {
		return 0, err
	}

	return (uint16(hi) << 8) | uint16(lo), nil
}
