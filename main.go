// Package main provides a pointer to genesis68k's real entry point.
// genesis68k is a table-driven 68000 instruction decoder and CPU core
// targeting Sega Genesis compatibility.
//
// For the full CLI, use: go run ./cmd/genesis68k
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("genesis68k - 68000 decoder/CPU core")
	fmt.Println("")
	fmt.Println("Usage: genesis68k [options] <rom.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -max-steps  Stop after this many instructions")
	fmt.Println("  -v          Print a trace line per step")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/genesis68k' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/genesis68k' instead.")
	}
}
