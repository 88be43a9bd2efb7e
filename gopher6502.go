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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopher6502/hardware/cpu"
	"github.com/jetsetilly/gopher6502/hardware/cpu/execution"
	"github.com/jetsetilly/gopher6502/hardware/memory"
	"github.com/jetsetilly/gopher6502/hardware/memory/cpubus"
	"github.com/jetsetilly/gopher6502/logger"
	"github.com/jetsetilly/gopher6502/modalflag"
	"github.com/jetsetilly/gopher6502/programloader"
	"github.com/jetsetilly/gopher6502/script"
	"github.com/jetsetilly/gopher6502/statsview"
	"golang.org/x/term"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// mainSync is used to communicate with the main thread.
type mainSync struct {
	state chan stateRequest
}

func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// ctrl-c ends the program even if the CPU is still running
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate when to quit.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "SCRIPT")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "SCRIPT":
		err = runScript(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// echoLog sets the central log echo. output is colourised if stdout is a
// terminal.
func echoLog(echo bool) {
	if !echo {
		logger.SetEcho(nil, false)
		return
	}

	var w io.Writer = os.Stdout
	if term.IsTerminal(int(os.Stdout.Fd())) {
		w = logger.NewColorizer(os.Stdout)
	}
	logger.SetEcho(w, false)
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	format := md.AddString("format", "AUTO", "program format: BIN, HEX, PRG")
	origin := md.AddAddress("origin", 0x0000, "load address of the program (ignored for PRG files)")
	start := md.AddInt("start", -1, "start address if different to the load address")
	hash := md.AddString("hash", "", "expected SHA1 hash of the program file")
	trace := md.AddBool("trace", false, "print each instruction as it is executed")
	limit := md.AddInt("limit", 0, "maximum number of instructions to execute (0 is unlimited)")
	dump := md.AddBool("dump", false, "print memory after the program has halted (the zero page, or every area with -rom)")
	rom := md.AddBool("rom", false, "attach the program as read-only memory. only the program and the -ram areas are accessible")
	ramAreas := md.AddString("ram", "0x0000:0x01ff", "comma separated list of origin:memtop read/write areas (only valid if -rom=true)")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	viz := md.AddString("memviz", "", "write a graphviz rendering of the CPU to file")
	stats := md.AddBool("statsview", false, "launch statsview server (if available)")

	md.AdditionalHelp("The program halts when it reaches a zero (BRK) opcode.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	echoLog(*log)

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		statsview.Launch(md.Output)
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("a single program file is required for %s mode", md)
	}

	ld := programloader.NewLoader(md.GetArg(0), *format)
	ld.Origin = *origin
	ld.Hash = *hash
	if err := ld.Load(); err != nil {
		return err
	}

	var mem bus
	if *rom {
		mem, err = mappedMemory(ld, *ramAreas)
		if err != nil {
			return err
		}
	} else {
		ram := memory.NewRAM()
		if err := ld.Attach(ram); err != nil {
			return err
		}
		mem = ram
	}

	pc := ld.Origin
	if *start >= 0 {
		if *start > 0xffff {
			return fmt.Errorf("start address out of range (%#x)", *start)
		}
		pc = uint16(*start)
	}

	mc := cpu.NewCPU(mem)
	mc.LoadPC(pc)

	for n := 0; !mc.Halted; n++ {
		if *limit > 0 && n >= *limit {
			fmt.Fprintf(md.Output, "stopped after %d instructions\n", n)
			break // for loop
		}

		err = mc.ExecuteInstruction()
		if *trace {
			fmt.Fprintln(md.Output, mc.LastResult.GetString(execution.StyleFull))
		}
		if err != nil {
			break // for loop
		}
	}

	fmt.Fprintln(md.Output, mc.String())
	if *dump {
		fmt.Fprintln(md.Output, mem.String())
	}

	if *viz != "" {
		f, ferr := os.Create(*viz)
		if ferr != nil {
			return ferr
		}
		defer f.Close()
		memviz.Map(f, mc)
	}

	return err
}

// bus is the memory used by RUN mode.
type bus interface {
	cpubus.Memory
	fmt.Stringer
}

// mappedMemory creates a memory with the loaded program as a read-only area
// and the read/write areas described by the areas argument. Addresses outside
// of those areas are inaccessible to the CPU.
func mappedMemory(ld programloader.Loader, areas string) (*memory.Mapped, error) {
	rom, err := memory.NewROM(ld.ShortName(), ld.Origin, ld.Data)
	if err != nil {
		return nil, err
	}

	mem, err := memory.NewMapped(rom)
	if err != nil {
		return nil, err
	}

	for i, a := range strings.Split(areas, ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue // for loop
		}

		rng := strings.Split(a, ":")
		if len(rng) != 2 {
			return nil, fmt.Errorf("ram area must be origin:memtop (%s)", a)
		}
		origin, err := modalflag.ParseAddress(rng[0])
		if err != nil {
			return nil, err
		}
		memtop, err := modalflag.ParseAddress(rng[1])
		if err != nil {
			return nil, err
		}

		area, err := memory.NewArea(fmt.Sprintf("ram%d", i), origin, memtop)
		if err != nil {
			return nil, err
		}
		if err := mem.Add(area); err != nil {
			return nil, err
		}
	}

	return mem, nil
}

func runScript(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to stdout")

	md.AdditionalHelp("Scenario files are written in Lua. See the script package for the available functions.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	echoLog(*log)

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("a single scenario file is required for %s mode", md)
	}

	h := script.NewHarness(md.Output)
	defer h.Close()

	return h.RunFile(md.GetArg(0))
}
