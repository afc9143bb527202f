// Package main provides the entry point for genesis68k, a thin host
// that loads a flat Genesis ROM image, wires the Main-bus preset, and
// runs the core's step loop until an instruction-count limit or the
// illegal-instruction sentinel is hit.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/genesis68k/bus"
	"github.com/sarchlab/genesis68k/cpu"
	"github.com/sarchlab/genesis68k/genesis"
	"github.com/sarchlab/genesis68k/isa"
	"github.com/sarchlab/genesis68k/timing"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run implements the CLI over an injectable argv and output streams, so
// tests can drive it without touching the process's real os.Args/stdio.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("genesis68k", flag.ContinueOnError)
	fs.SetOutput(stderr)

	maxSteps := fs.Uint64("max-steps", 1_000_000, "stop after this many instructions")
	verbose := fs.Bool("v", false, "print a trace line per step")
	timingConfigPath := fs.String("timing-config", "", "path to a JSON timing.Config overriding the default bus/cycle costs")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(stderr, "Usage: genesis68k [options] <rom.bin>\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
		return 1
	}

	romPath := fs.Arg(0)
	rom, err := os.ReadFile(romPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading ROM: %v\n", err)
		return 1
	}

	cfg := timing.DefaultConfig()
	if *timingConfigPath != "" {
		cfg, err = timing.LoadConfig(*timingConfigPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading timing config: %v\n", err)
			return 1
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid timing config: %v\n", err)
		return 1
	}
	cpu.UseCostConfig(cfg)

	c, b, err := boot(rom)
	if err != nil {
		fmt.Fprintf(stderr, "Error booting: %v\n", err)
		return 1
	}

	if *verbose {
		fmt.Fprintf(stdout, "Loaded: %s (%d bytes)\n", romPath, len(rom))
		fmt.Fprintf(stdout, "Initial SP: 0x%08X\n", c.A[7])
		fmt.Fprintf(stdout, "Initial PC: 0x%08X\n", c.PC)
		fmt.Fprintf(stdout, "Timing: word/byte=%d long=%d indexed-ea=%d bcd=%d arith=%d\n",
			cfg.WordAccessCycles, cfg.LongAccessCycles, cfg.IndexedEACycles, cfg.BCDCycles, cfg.ArithCycles)
	}

	cpu.UseDecoder(isa.BuildDecoder())
	cpu.Prime(c, b)

	var totalCycles uint64
	var steps uint64
	for steps = 0; steps < *maxSteps; steps++ {
		if c.IR == cpu.IllegalOpcode {
			break
		}
		pc := c.PC
		ir := c.IR
		cycles := cpu.Step(c, b)
		totalCycles += cycles
		if *verbose {
			fmt.Fprintf(stdout, "step %6d  pc=0x%06X  ir=0x%04X  clk=+%d\n", steps, pc, ir, cycles)
		}
	}

	fmt.Fprintf(stdout, "\nSteps executed: %d\n", steps)
	fmt.Fprintf(stdout, "Total cycles:   %d\n", totalCycles)
	if c.IR == cpu.IllegalOpcode {
		fmt.Fprintf(stdout, "Halted on illegal opcode at pc=0x%06X\n", c.PC)
	}
	return 0
}

// boot reads the 68000 reset vector (initial SP at offset 0, initial PC
// at offset 4, both big-endian longs) out of rom, maps rom read-only as
// cart ROM and a 64 KiB work-RAM device through bus.MainPreset, and
// returns a CPU primed with the reset vector's register values.
func boot(rom []byte) (*cpu.CPU, *bus.Bus, error) {
	if len(rom) < 8 {
		return nil, nil, fmt.Errorf("genesis68k: ROM too small for a reset vector (%d bytes)", len(rom))
	}

	initialSP := be32(rom[0:4])
	initialPC := be32(rom[4:8])

	b, err := bus.MainPreset(bus.MainDevices{
		CPU:     genesis.Cart(rom),
		WorkRAM: genesis.Ram("work-ram", 0x10000),
	})
	if err != nil {
		return nil, nil, err
	}

	c := cpu.NewCPU()
	c.A[7] = initialSP
	c.PC = initialPC
	return c, b, nil
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
