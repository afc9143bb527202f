// Command gendecoder is a standalone diagnostic tool: it sweeps the full
// opcode space against the catalog's decoder once, and emits the
// opcode/name/size rows as a Go source file of plain data for tooling
// and inspection. The emitted table holds no handlers, so it is not a
// decode path: isa.BuildDecoder still builds the trie at process start.
// Grounded on scripts/decoder_validation/main.go's role as a
// standalone, non-test entry point that exercises the decoder directly.
package main

import (
	"flag"
	"fmt"
	"go/format"
	"os"
	"sort"
	"strings"

	"github.com/sarchlab/genesis68k/insts"
	"github.com/sarchlab/genesis68k/isa"
)

var outPath = flag.String("out", "internal/gen/decodertable.go", "output path for the generated table")

func main() {
	flag.Parse()

	perms := insts.PermuteAll(isa.All())
	decoder := insts.BuildDecoder(perms)
	table := insts.BuildDecoderTable(decoder)

	sort.Slice(table, func(i, j int) bool { return table[i].Opcode < table[j].Opcode })

	src, err := render(table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gendecoder: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(dir(*outPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "gendecoder: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, src, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "gendecoder: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d entries to %s\n", len(table), *outPath)
}

func dir(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return "."
}

func render(table []insts.DecoderTableEntry) ([]byte, error) {
	var b strings.Builder
	b.WriteString("// Code generated by cmd/gendecoder. DO NOT EDIT.\n\n")
	b.WriteString("package gen\n\n")
	b.WriteString("// DecoderEntry is one opcode-to-name/size row of the build-time-generated\n")
	b.WriteString("// decoder table.\n")
	b.WriteString("type DecoderEntry struct {\n\tOpcode uint16\n\tName   string\n\tSize   uint8\n}\n\n")
	b.WriteString("// DecoderTable is the full opcode-space sweep captured at build time.\n")
	b.WriteString("var DecoderTable = []DecoderEntry{\n")
	for _, e := range table {
		fmt.Fprintf(&b, "\t{Opcode: 0x%04X, Name: %q, Size: %d},\n", e.Opcode, e.Name, uint8(e.Size))
	}
	b.WriteString("}\n")

	return format.Source([]byte(b.String()))
}
