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

package cpu_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/gopher6502/hardware/cpu"
	"github.com/jetsetilly/gopher6502/hardware/cpu/execution"
	"github.com/jetsetilly/gopher6502/hardware/memory/cpubus"
	"github.com/jetsetilly/gopher6502/test"
)

type mockMem struct {
	internal []uint8
}

func newMockMem() *mockMem {
	mem := new(mockMem)

	// the top page of memory is inaccessible to allow testing of invalid
	// memory accesses
	mem.internal = make([]uint8, 0x10000)

	return mem
}

func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.internal[uint16(i)+origin] = b
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) assert(t *testing.T, address uint16, value uint8) {
	t.Helper()
	d := mem.internal[address]
	if d != value {
		t.Errorf("memory assertion failed (%#02x  - wanted %#02x at address %04x)", d, value, address)
	}
}

// Clear sets all bytes in memory to zero
func (mem *mockMem) Clear() {
	clear(mem.internal)
}

func (mem *mockMem) Read(address uint16) (uint8, error) {
	if address&0xff00 == 0xff00 {
		return 0, fmt.Errorf("%w: %#04x", cpubus.AddressError, address)
	}
	return mem.internal[address], nil
}

func (mem *mockMem) Write(address uint16, data uint8) error {
	if address&0xff00 == 0xff00 {
		return fmt.Errorf("%w: %#04x", cpubus.AddressError, address)
	}
	mem.internal[address] = data
	return nil
}

func (mem *mockMem) Peek(address uint16) (uint8, error) {
	return mem.Read(address)
}

func (mem *mockMem) Poke(address uint16, value uint8) error {
	mem.internal[address] = value
	return nil
}

func step(t *testing.T, mc *cpu.CPU) {
	t.Helper()
	err := mc.ExecuteInstruction()
	if err != nil {
		t.Fatal(err)
	}
	err = mc.LastResult.IsValid()
	if err != nil {
		t.Fatal(err)
	}
}

func testStatusInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	var origin uint16
	mem.Clear()
	mc.Reset()

	// SEC; CLC; CLI; SEI; SED; CLD; CLV
	origin = mem.putInstructions(origin, 0x38, 0x18, 0x58, 0x78, 0xf8, 0xd8, 0xb8)
	step(t, mc) // SEC
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizC")
	step(t, mc) // CLC
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")
	step(t, mc) // CLI
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")
	step(t, mc) // SEI
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIzc")
	step(t, mc) // SED
	test.ExpectEquality(t, mc.Status.String(), "sv-bDIzc")
	step(t, mc) // CLD
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIzc")
	mc.Status.Overflow = true
	step(t, mc) // CLV
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIzc")

	// PHP; PLP
	_ = mem.putInstructions(origin, 0x08, 0x28)
	step(t, mc) // PHP
	test.ExpectEquality(t, mc.Status.String(), "sv-bdIzc")
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))

	// break and unused bits are set in the pushed value
	mem.assert(t, 0x0100, 0x34)

	// mangle status register
	mc.Status.Sign = true
	mc.Status.Overflow = true

	// restore status register. the pulled value is loaded verbatim so the
	// break flag is now set
	step(t, mc) // PLP
	test.ExpectEquality(t, mc.SP.Value(), uint8(0x00))
	test.ExpectEquality(t, mc.Status.String(), "sv-BdIzc")
}

func testRegisterArithmetic(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	var origin uint16
	mem.Clear()
	mc.Reset()

	// LDA immediate; ADC immediate
	origin = mem.putInstructions(origin, 0xa9, 1, 0x69, 10)
	step(t, mc) // LDA #1
	step(t, mc) // ADC #10
	test.ExpectEquality(t, mc.A.Value(), uint8(11))

	// SEC; SBC immediate
	origin = mem.putInstructions(origin, 0x38, 0xe9, 8)
	step(t, mc) // SEC
	step(t, mc) // SBC #8
	test.ExpectEquality(t, mc.A.Value(), uint8(3))
	test.ExpectSuccess(t, mc.Status.Carry)

	// carry chain
	origin = mem.putInstructions(origin, 0xa9, 0xff, 0x18, 0x69, 0x01)
	step(t, mc) // LDA #$ff
	step(t, mc) // CLC
	step(t, mc) // ADC #$01
	test.ExpectEquality(t, mc.A.Value(), uint8(0x00))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZC")

	// signed overflow
	origin = mem.putInstructions(origin, 0xa9, 0x7f, 0x18, 0x69, 0x01)
	step(t, mc) // LDA #$7f
	step(t, mc) // CLC
	step(t, mc) // ADC #$01
	test.ExpectEquality(t, mc.A.Value(), uint8(0x80))
	test.ExpectEquality(t, mc.Status.String(), "SV-bdizc")

	// borrow
	_ = mem.putInstructions(origin, 0x38, 0xa9, 0x00, 0xe9, 0x01)
	step(t, mc) // SEC
	step(t, mc) // LDA #$00
	step(t, mc) // SBC #$01
	test.ExpectEquality(t, mc.A.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")
}

func testRegisterBitwiseInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	var origin uint16
	mem.Clear()
	mc.Reset()

	// ORA immediate; EOR immediate; AND immediate
	origin = mem.putInstructions(origin, 0x09, 0xff, 0x49, 0xf0, 0x29, 0x01)
	test.ExpectEquality(t, mc.A.Value(), uint8(0))
	step(t, mc) // ORA #$FF
	test.ExpectEquality(t, mc.A.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")
	step(t, mc) // EOR #$F0
	test.ExpectEquality(t, mc.A.Value(), uint8(0x0f))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")
	step(t, mc) // AND #$01
	test.ExpectEquality(t, mc.A.Value(), uint8(0x01))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")

	// BIT zero page. overflow and sign come from the operand
	mem.internal[0x80] = 0xc0
	_ = mem.putInstructions(origin, 0x24, 0x80, 0xa9, 0x40, 0x2c, 0x80, 0x00)
	step(t, mc) // BIT $80
	test.ExpectEquality(t, mc.A.Value(), uint8(0x01))
	test.ExpectEquality(t, mc.Status.String(), "SV-bdiZc")
	step(t, mc) // LDA #$40
	step(t, mc) // BIT $0080
	test.ExpectEquality(t, mc.Status.String(), "SV-bdizc")
}

func testImmediateImplied(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	var origin uint16
	mem.Clear()
	mc.Reset()

	// LDX immediate; INX; DEX
	origin = mem.putInstructions(origin, 0xa2, 0xff, 0xe8, 0xca)
	step(t, mc) // LDX #$FF
	test.ExpectEquality(t, mc.X.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")
	step(t, mc) // INX
	test.ExpectEquality(t, mc.X.Value(), uint8(0))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZc")
	step(t, mc) // DEX
	test.ExpectEquality(t, mc.X.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")

	// LDY immediate; DEY; INY
	origin = mem.putInstructions(origin, 0xa0, 0x00, 0x88, 0xc8)
	step(t, mc) // LDY #$00
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZc")
	step(t, mc) // DEY
	test.ExpectEquality(t, mc.Y.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")
	step(t, mc) // INY
	test.ExpectEquality(t, mc.Y.Value(), uint8(0x00))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZc")

	// LDA immediate; TAY; LDA; TYA; TAX; LDX; TXA
	_ = mem.putInstructions(origin, 0xa9, 0x80, 0xa8, 0xa9, 0x00, 0x98, 0xaa, 0xa2, 0x01, 0x8a, 0xea)
	step(t, mc) // LDA #$80
	step(t, mc) // TAY
	test.ExpectEquality(t, mc.Y.Value(), uint8(0x80))
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")
	step(t, mc) // LDA #$00
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZc")
	step(t, mc) // TYA
	test.ExpectEquality(t, mc.A.Value(), uint8(0x80))
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")
	step(t, mc) // TAX
	test.ExpectEquality(t, mc.X.Value(), uint8(0x80))
	step(t, mc) // LDX #$01
	step(t, mc) // TXA
	test.ExpectEquality(t, mc.A.Value(), uint8(0x01))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")

	// NOP changes nothing except the PC
	before := mc.Snapshot()
	step(t, mc) // NOP
	test.ExpectEquality(t, mc.A, before.A)
	test.ExpectEquality(t, mc.X, before.X)
	test.ExpectEquality(t, mc.Y, before.Y)
	test.ExpectEquality(t, mc.SP, before.SP)
	test.ExpectEquality(t, mc.Status, before.Status)
	test.ExpectEquality(t, mc.PC.Address(), before.PC.Address()+1)
}

func testOtherAddressing(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	origin := uint16(0x0400)
	mem.Clear()
	mc.Reset()
	mc.LoadPC(origin)

	mem.internal[0x0010] = 0x42
	mem.internal[0x0300] = 0x99

	// zero page
	origin = mem.putInstructions(origin, 0xa5, 0x10)
	step(t, mc) // LDA $10
	test.ExpectEquality(t, mc.A.Value(), uint8(0x42))
	test.ExpectEquality(t, mc.LastResult.EffectiveAddress, uint16(0x0010))

	// zero page indexed wraps within the zero page
	mc.A.Load(0)
	origin = mem.putInstructions(origin, 0xa2, 0x20, 0xb5, 0xf0)
	step(t, mc) // LDX #$20
	step(t, mc) // LDA $F0,X
	test.ExpectEquality(t, mc.A.Value(), uint8(0x42))
	test.ExpectEquality(t, mc.LastResult.EffectiveAddress, uint16(0x0010))
	test.ExpectEquality(t, mc.LastResult.CPUBug, execution.ZeroPageIndexBug)

	// zero page indexed Y
	origin = mem.putInstructions(origin, 0xa0, 0x01, 0xb6, 0x0f)
	step(t, mc) // LDY #$01
	step(t, mc) // LDX $0F,Y
	test.ExpectEquality(t, mc.X.Value(), uint8(0x42))
	test.ExpectEquality(t, mc.LastResult.CPUBug, execution.NoBug)

	// absolute
	mc.A.Load(0)
	origin = mem.putInstructions(origin, 0xad, 0x00, 0x03)
	step(t, mc) // LDA $0300
	test.ExpectEquality(t, mc.A.Value(), uint8(0x99))
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")

	// absolute indexed crosses page boundary
	mc.A.Load(0)
	origin = mem.putInstructions(origin, 0xa2, 0x01, 0xbd, 0xff, 0x02)
	step(t, mc) // LDX #$01
	step(t, mc) // LDA $02FF,X
	test.ExpectEquality(t, mc.A.Value(), uint8(0x99))
	test.ExpectEquality(t, mc.LastResult.EffectiveAddress, uint16(0x0300))

	mc.A.Load(0)
	origin = mem.putInstructions(origin, 0xa0, 0x10, 0xb9, 0xf0, 0x02)
	step(t, mc) // LDY #$10
	step(t, mc) // LDA $02F0,Y
	test.ExpectEquality(t, mc.A.Value(), uint8(0x99))

	// absolute indexed wraps at the end of memory
	mem.internal[0x0001] = 0x77
	origin = mem.putInstructions(origin, 0xa2, 0x02, 0xbd, 0xff, 0xff)
	step(t, mc) // LDX #$02
	step(t, mc) // LDA $FFFF,X
	test.ExpectEquality(t, mc.A.Value(), uint8(0x77))
	test.ExpectEquality(t, mc.LastResult.EffectiveAddress, uint16(0x0001))

	// pre-indexed indirect
	mc.A.Load(0)
	mem.internal[0x0020] = 0x00
	mem.internal[0x0021] = 0x03
	origin = mem.putInstructions(origin, 0xa2, 0x10, 0xa1, 0x10)
	step(t, mc) // LDX #$10
	step(t, mc) // LDA ($10,X)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x99))
	test.ExpectEquality(t, mc.LastResult.EffectiveAddress, uint16(0x0300))
	test.ExpectEquality(t, mc.LastResult.CPUBug, execution.NoBug)

	// pre-indexed indirect pointer wraps within the zero page
	mc.A.Load(0)
	mem.internal[0x00ff] = 0x00
	mem.internal[0x0000] = 0x03
	origin = mem.putInstructions(origin, 0xa2, 0xef, 0xa1, 0x10)
	step(t, mc) // LDX #$EF
	step(t, mc) // LDA ($10,X)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x99))
	test.ExpectEquality(t, mc.LastResult.CPUBug, execution.IndexedIndirectAddressingBug)

	// post-indexed indirect
	mc.A.Load(0)
	mem.internal[0x0030] = 0xf0
	mem.internal[0x0031] = 0x02
	origin = mem.putInstructions(origin, 0xa0, 0x10, 0xb1, 0x30)
	step(t, mc) // LDY #$10
	step(t, mc) // LDA ($30),Y
	test.ExpectEquality(t, mc.A.Value(), uint8(0x99))
	test.ExpectEquality(t, mc.LastResult.EffectiveAddress, uint16(0x0300))

	// post-indexed indirect pointer wraps within the zero page
	mc.A.Load(0)
	_ = mem.putInstructions(origin, 0xa0, 0x00, 0xb1, 0xff)
	step(t, mc) // LDY #$00
	step(t, mc) // LDA ($FF),Y
	test.ExpectEquality(t, mc.A.Value(), uint8(0x99))
	test.ExpectEquality(t, mc.LastResult.CPUBug, execution.IndirectIndexedAddressingBug)
}

func testStorageInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	origin := uint16(0x0400)
	mem.Clear()
	mc.Reset()
	mc.LoadPC(origin)

	// STA zero page; STX absolute; STY zero page indexed
	origin = mem.putInstructions(origin, 0xa9, 0x11, 0x85, 0x80)
	step(t, mc) // LDA #$11
	step(t, mc) // STA $80
	mem.assert(t, 0x80, 0x11)

	origin = mem.putInstructions(origin, 0xa2, 0x22, 0x8e, 0x01, 0x03)
	step(t, mc) // LDX #$22
	step(t, mc) // STX $0301
	mem.assert(t, 0x0301, 0x22)

	origin = mem.putInstructions(origin, 0xa0, 0x33, 0xa2, 0x05, 0x94, 0x80)
	step(t, mc) // LDY #$33
	step(t, mc) // LDX #$05
	step(t, mc) // STY $80,X
	mem.assert(t, 0x85, 0x33)

	// STA post-indexed indirect
	mem.internal[0x0040] = 0x00
	mem.internal[0x0041] = 0x02
	origin = mem.putInstructions(origin, 0x91, 0x40)
	step(t, mc) // STA ($40),Y
	mem.assert(t, 0x0233, 0x11)

	// INC; DEC
	origin = mem.putInstructions(origin, 0xe6, 0x80, 0xc6, 0x90)
	step(t, mc) // INC $80
	mem.assert(t, 0x80, 0x12)
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")
	step(t, mc) // DEC $90
	mem.assert(t, 0x90, 0xff)
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")

	// ASL zero page; LSR absolute
	origin = mem.putInstructions(origin, 0x06, 0x80, 0x4e, 0x01, 0x03)
	step(t, mc) // ASL $80
	mem.assert(t, 0x80, 0x24)
	test.ExpectSuccess(t, !mc.Status.Carry)
	step(t, mc) // LSR $0301
	mem.assert(t, 0x0301, 0x11)
	test.ExpectSuccess(t, !mc.Status.Carry)

	// ROL A; ROR A
	origin = mem.putInstructions(origin, 0x38, 0xa9, 0x80, 0x2a, 0x6a)
	step(t, mc) // SEC
	step(t, mc) // LDA #$80
	step(t, mc) // ROL A
	test.ExpectEquality(t, mc.A.Value(), uint8(0x01))
	test.ExpectSuccess(t, mc.Status.Carry)
	step(t, mc) // ROR A
	test.ExpectEquality(t, mc.A.Value(), uint8(0x80))
	test.ExpectSuccess(t, mc.Status.Carry)
	test.ExpectSuccess(t, mc.Status.Sign)

	// ASL A shifts into carry and sets zero
	_ = mem.putInstructions(origin, 0x0a)
	step(t, mc) // ASL A
	test.ExpectEquality(t, mc.A.Value(), uint8(0x00))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZC")
}

func testBranching(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	origin := uint16(0x0400)
	mem.Clear()
	mc.Reset()
	mc.LoadPC(origin)

	// LDA #$00; BNE +2 (not taken); BEQ +2 (taken)
	mem.putInstructions(origin, 0xa9, 0x00, 0xd0, 0x02, 0xf0, 0x02)
	step(t, mc) // LDA #$00
	step(t, mc) // BNE
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0404))
	test.ExpectFailure(t, mc.LastResult.BranchSuccess)
	step(t, mc) // BEQ
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0408))
	test.ExpectSuccess(t, mc.LastResult.BranchSuccess)

	// BEQ -4 (backwards)
	mem.putInstructions(0x0408, 0xf0, 0xfc)
	step(t, mc) // BEQ
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0406))

	// every branch, taken and not taken
	branches := []struct {
		opcode uint8
		set    func()
		clear  func()
	}{
		{0x10, func() { mc.Status.Sign = false }, func() { mc.Status.Sign = true }},
		{0x30, func() { mc.Status.Sign = true }, func() { mc.Status.Sign = false }},
		{0x50, func() { mc.Status.Overflow = false }, func() { mc.Status.Overflow = true }},
		{0x70, func() { mc.Status.Overflow = true }, func() { mc.Status.Overflow = false }},
		{0x90, func() { mc.Status.Carry = false }, func() { mc.Status.Carry = true }},
		{0xb0, func() { mc.Status.Carry = true }, func() { mc.Status.Carry = false }},
		{0xd0, func() { mc.Status.Zero = false }, func() { mc.Status.Zero = true }},
		{0xf0, func() { mc.Status.Zero = true }, func() { mc.Status.Zero = false }},
	}
	for _, b := range branches {
		mem.putInstructions(0x0500, b.opcode, 0x10)

		mc.LoadPC(0x0500)
		b.set()
		step(t, mc)
		test.ExpectEquality(t, mc.PC.Address(), uint16(0x0512), "%#02x taken", b.opcode)

		mc.LoadPC(0x0500)
		b.clear()
		step(t, mc)
		test.ExpectEquality(t, mc.PC.Address(), uint16(0x0502), "%#02x not taken", b.opcode)
	}

	// countdown loop
	mem.Clear()
	mem.putInstructions(0x0600, 0xa2, 0x03, 0xca, 0xd0, 0xfd, 0x00)
	test.DemandSuccess(t, mc.Run(0x0600))
	test.ExpectEquality(t, mc.X.Value(), uint8(0))
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0606))
}

func testJumps(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	origin := uint16(0x0400)
	mem.Clear()
	mc.Reset()
	mc.LoadPC(origin)

	// JMP absolute
	mem.putInstructions(origin, 0x4c, 0x00, 0x05)
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0500))

	// JMP indirect
	mem.internal[0x0320] = 0x00
	mem.internal[0x0321] = 0x06
	mem.putInstructions(0x0500, 0x6c, 0x20, 0x03)
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0600))
	test.ExpectEquality(t, mc.LastResult.CPUBug, execution.NoBug)

	// JMP indirect with the pointer at the end of a page. the high byte is
	// read from the start of the same page
	mem.internal[0x02ff] = 0x00
	mem.internal[0x0200] = 0x08
	mem.internal[0x0300] = 0x09
	mem.putInstructions(0x0600, 0x6c, 0xff, 0x02)
	step(t, mc)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0800))
	test.ExpectEquality(t, mc.LastResult.CPUBug, execution.JmpIndirectAddressingBug)
}

func testComparisonInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	var origin uint16
	mem.Clear()
	mc.Reset()

	// CMP immediate (equality)
	origin = mem.putInstructions(origin, 0xc9, 0x00)
	step(t, mc) // CMP $00
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZC")

	// LDA immediate; CMP immediate
	origin = mem.putInstructions(origin, 0xa9, 0xf6, 0xc9, 0x18)
	step(t, mc) // LDA #$F6
	step(t, mc) // CMP #$18
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizC")
	test.ExpectEquality(t, mc.A.Value(), uint8(0xf6))

	// LDX immediate; CPX immediate
	origin = mem.putInstructions(origin, 0xa2, 0x06, 0xe0, 0x81)
	step(t, mc) // LDX #$06
	step(t, mc) // CPX #$81
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")

	// LDY immediate; CPY immediate
	origin = mem.putInstructions(origin, 0xa0, 0x10, 0xc0, 0x10)
	step(t, mc) // LDY #$10
	step(t, mc) // CPY #$10
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZC")

	// CPX zero page; CPY absolute
	mem.internal[0x90] = 0x07
	mem.internal[0x0390] = 0x01
	_ = mem.putInstructions(origin, 0xe4, 0x90, 0xcc, 0x90, 0x03)
	step(t, mc) // CPX $90
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")
	step(t, mc) // CPY $0390
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizC")
}

func testSubroutineInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	origin := uint16(0x0400)
	mem.Clear()
	mc.Reset()
	mc.LoadPC(origin)

	// LDX #$FF; TXS; JSR $0500
	mem.putInstructions(origin, 0xa2, 0xff, 0x9a, 0x20, 0x00, 0x05)
	step(t, mc) // LDX #$FF
	step(t, mc) // TXS
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))
	step(t, mc) // JSR $0500
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0500))
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xfd))

	// the address of the last byte of the JSR instruction, high byte first
	mem.assert(t, 0x01ff, 0x04)
	mem.assert(t, 0x01fe, 0x05)

	rts, ok := mc.PredictRTS()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, rts, uint16(0x0406))

	// RTS
	mem.putInstructions(0x0500, 0x60)
	step(t, mc) // RTS
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0406))
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))

	// RTI pulls the status register and then the PC. no adjustment to the PC
	mem.internal[0x01ff] = 0x06
	mem.internal[0x01fe] = 0x00
	mem.internal[0x01fd] = 0xc3
	mc.SP.Load(0xfc)
	mem.putInstructions(0x0406, 0x40)
	step(t, mc) // RTI
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0600))
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.Status.String(), "SV-bdiZC")
}

func testStackInstructions(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	origin := uint16(0x0400)
	mem.Clear()
	mc.Reset()
	mc.LoadPC(origin)

	// LDX #$FF; TXS; LDA #$5A; PHA; LDA #$00; PLA; TSX
	mem.putInstructions(origin, 0xa2, 0xff, 0x9a, 0xa9, 0x5a, 0x48, 0xa9, 0x00, 0x68, 0xba)
	step(t, mc) // LDX #$FF
	step(t, mc) // TXS
	step(t, mc) // LDA #$5A
	step(t, mc) // PHA
	mem.assert(t, 0x01ff, 0x5a)
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xfe))
	step(t, mc) // LDA #$00
	test.ExpectEquality(t, mc.Status.String(), "sv-bdiZc")
	step(t, mc) // PLA
	test.ExpectEquality(t, mc.A.Value(), uint8(0x5a))
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.Status.String(), "sv-bdizc")
	step(t, mc) // TSX
	test.ExpectEquality(t, mc.X.Value(), uint8(0xff))
	test.ExpectEquality(t, mc.Status.String(), "Sv-bdizc")

	// the stack pointer wraps. a freshly reset CPU has a stack pointer of zero
	mc.Reset()
	mc.LoadPC(origin)
	mem.putInstructions(origin, 0xa9, 0x01, 0x48, 0x68)
	step(t, mc) // LDA #$01
	step(t, mc) // PHA
	mem.assert(t, 0x0100, 0x01)
	test.ExpectEquality(t, mc.SP.Value(), uint8(0xff))
	step(t, mc) // PLA
	test.ExpectEquality(t, mc.SP.Value(), uint8(0x00))
}

func testHalt(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	origin := uint16(0x0400)
	mem.Clear()
	mc.Reset()

	mem.putInstructions(origin, 0xa9, 0x05, 0x00, 0xa9, 0x06, 0x00)
	test.DemandSuccess(t, mc.Run(origin))
	test.ExpectSuccess(t, mc.Halted)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x05))
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0403))
	test.ExpectEquality(t, mc.LastResult.Address, uint16(0x0402))
	test.ExpectSuccess(t, mc.LastResult.Defn.IsTerminator())

	// halted CPU does nothing
	test.ExpectSuccess(t, mc.ExecuteInstruction())
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0403))

	// nothing was pushed to the stack
	test.ExpectEquality(t, mc.SP.Value(), uint8(0x00))

	// continue from the following byte
	mc.LoadPC(mc.PC.Address())
	test.ExpectFailure(t, mc.Halted)
	step(t, mc)
	test.ExpectEquality(t, mc.A.Value(), uint8(0x06))
}

func testDecodeFailure(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	origin := uint16(0x0400)
	mem.Clear()
	mc.Reset()
	mc.LoadPC(origin)

	// LDA #$05; undefined opcode
	mem.putInstructions(origin, 0xa9, 0x05, 0x02)
	step(t, mc)

	err := mc.ExecuteInstruction()
	test.ExpectSuccess(t, errors.Is(err, cpu.UnimplementedInstruction))
	test.ExpectEquality(t, err.Error(), "cpu: unimplemented instruction: opcode 0x02 at 0x0402")
	test.ExpectSuccess(t, mc.Faulted)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0402))
	test.ExpectEquality(t, mc.A.Value(), uint8(0x05))
	test.ExpectEquality(t, mc.LastResult.Opcode, uint8(0x02))
	test.ExpectEquality(t, mc.LastResult.Address, uint16(0x0402))
	test.ExpectSuccess(t, mc.LastResult.Defn == nil)
	test.ExpectSuccess(t, mc.LastResult.Final)

	// the run cannot be resumed
	err = mc.ExecuteInstruction()
	test.ExpectSuccess(t, errors.Is(err, cpu.ErrFaulted))
	test.ExpectSuccess(t, errors.Is(mc.Run(origin), cpu.ErrFaulted))

	mc.Reset()
	test.ExpectFailure(t, mc.Faulted)
	test.ExpectSuccess(t, mc.HasReset())
}

func testAddressFailure(t *testing.T, mc *cpu.CPU, mem *mockMem) {
	origin := uint16(0x0400)
	mem.Clear()
	mc.Reset()
	mc.LoadPC(origin)

	// LDX #$05; SEC; LDA $FF00,X
	mem.putInstructions(origin, 0xa2, 0x05, 0x38, 0xbd, 0x00, 0xff)
	step(t, mc) // LDX #$05
	step(t, mc) // SEC
	before := mc.Snapshot()

	err := mc.ExecuteInstruction()
	test.ExpectSuccess(t, errors.Is(err, cpubus.AddressError))
	test.ExpectSuccess(t, mc.Faulted)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0403))
	test.ExpectEquality(t, mc.X, before.X)
	test.ExpectEquality(t, mc.Status, before.Status)
	test.ExpectEquality(t, mc.LastResult.EffectiveAddress, uint16(0xff05))
	test.ExpectInequality(t, mc.LastResult.Error, "")

	// a failed write leaves the register file unchanged
	mc.Reset()
	mc.LoadPC(origin)
	mem.putInstructions(origin, 0xa9, 0x01, 0x8d, 0x10, 0xff)
	step(t, mc) // LDA #$01
	err = mc.ExecuteInstruction()
	test.ExpectSuccess(t, errors.Is(err, cpubus.AddressError))
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0402))

	// a failed read-modify-write doesn't change the status register
	mc.Reset()
	mc.LoadPC(origin)
	mem.putInstructions(origin, 0xe6, 0xff)
	mem.internal[0xff] = 0xff
	mem.internal[0x00] = 0xff
	mem.putInstructions(0x0402, 0xee, 0x00, 0xff)
	step(t, mc) // INC $FF
	mem.assert(t, 0xff, 0x00)
	test.ExpectSuccess(t, mc.Status.Zero)
	err = mc.ExecuteInstruction() // INC $FF00
	test.ExpectSuccess(t, errors.Is(err, cpubus.AddressError))
	test.ExpectSuccess(t, mc.Status.Zero)
	test.ExpectEquality(t, mc.PC.Address(), uint16(0x0402))

	// the instruction itself can't be fetched
	mc.Reset()
	mc.LoadPC(0xff80)
	err = mc.ExecuteInstruction()
	test.ExpectSuccess(t, errors.Is(err, cpubus.AddressError))
	test.ExpectEquality(t, mc.PC.Address(), uint16(0xff80))
}

func TestCPU(t *testing.T) {
	mem := newMockMem()
	mc := cpu.NewCPU(mem)

	testStatusInstructions(t, mc, mem)
	testRegisterArithmetic(t, mc, mem)
	testRegisterBitwiseInstructions(t, mc, mem)
	testImmediateImplied(t, mc, mem)
	testOtherAddressing(t, mc, mem)
	testStorageInstructions(t, mc, mem)
	testBranching(t, mc, mem)
	testJumps(t, mc, mem)
	testComparisonInstructions(t, mc, mem)
	testSubroutineInstructions(t, mc, mem)
	testStackInstructions(t, mc, mem)
	testHalt(t, mc, mem)
	testDecodeFailure(t, mc, mem)
	testAddressFailure(t, mc, mem)
}
