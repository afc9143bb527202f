package main

import (
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/genesis68k/insts"
	"github.com/sarchlab/genesis68k/isa"
)

var _ = Describe("render", func() {
	It("emits valid, gofmt-stable Go source covering every swept opcode", func() {
		perms := insts.PermuteAll(isa.All())
		decoder := insts.BuildDecoder(perms)
		table := insts.BuildDecoderTable(decoder)
		Expect(table).NotTo(BeEmpty())

		src, err := render(table)
		Expect(err).NotTo(HaveOccurred())

		out := string(src)
		Expect(out).To(ContainSubstring("package gen"))
		Expect(out).To(ContainSubstring("var DecoderTable = []DecoderEntry{"))
		Expect(out).To(ContainSubstring("Code generated by cmd/gendecoder"))

		// format.Source already rejects invalid syntax (render would have
		// returned an error above); spot-check that every table row made
		// it into the rendered literal.
		for _, e := range table {
			Expect(out).To(ContainSubstring(e.Name))
		}
	})

	It("derives the output directory from the -out path", func() {
		Expect(dir("internal/gen/decodertable.go")).To(Equal("internal/gen"))
		Expect(dir("decodertable.go")).To(Equal("."))
	})

	It("keeps table rows in ascending opcode order, matching BuildDecoderTable's own sweep order", func() {
		perms := insts.PermuteAll(isa.All())
		decoder := insts.BuildDecoder(perms)
		table := insts.BuildDecoderTable(decoder)

		src, err := render(table)
		Expect(err).NotTo(HaveOccurred())

		lastOpcode := -1
		for _, line := range strings.Split(string(src), "\n") {
			if !strings.Contains(line, "Opcode: 0x") {
				continue
			}
			var opcode int
			_, err := fmt.Sscanf(strings.TrimSpace(line), "{Opcode: 0x%X,", &opcode)
			Expect(err).NotTo(HaveOccurred())
			Expect(opcode).To(BeNumerically(">", lastOpcode))
			lastOpcode = opcode
		}
	})
})
