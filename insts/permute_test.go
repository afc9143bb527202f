package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/genesis68k/insts"
	"github.com/sarchlab/genesis68k/isa"
)

var _ = Describe("Permute", func() {
	It("expands every catalog descriptor into exactly the K permutations its size encoding promises", func() {
		for _, d := range isa.All() {
			perms := insts.Permute(d)

			var want int
			switch d.Size.Kind {
			case insts.SizeDynamic:
				want = d.Size.Dynamic.Enc.Count()
				Expect(len(d.Size.Dynamic.Enc.Sizes())).To(Equal(want), "descriptor %q", d.Name)
			default:
				want = 1
			}

			Expect(perms).To(HaveLen(want), "descriptor %q", d.Name)
			for _, p := range perms {
				Expect(p.Name).To(Equal(d.Name))
			}
		}
	})

	It("refines a dynamic size field to each concrete code, never leaving it wildcarded", func() {
		move := isa.All()[2] // move: dynamic SizeEncMove at bits 13-12
		Expect(move.Name).To(Equal("move"))

		perms := insts.Permute(move)
		Expect(perms).To(HaveLen(move.Size.Dynamic.Enc.Count()))

		seen := map[insts.Size]bool{}
		for _, p := range perms {
			code, ok := move.Size.Dynamic.Enc.Encode(p.Size)
			Expect(ok).To(BeTrue(), "size %v not in encoding", p.Size)
			field := (p.Opcode.Set >> uint(move.Size.Dynamic.Enc.Pos)) & 0x3
			any := (p.Opcode.Any >> uint(move.Size.Dynamic.Enc.Pos)) & 0x3
			Expect(any).To(Equal(uint16(0)), "size field must be concrete, not wildcarded")
			Expect(field).To(Equal(code))
			seen[p.Size] = true
		}
		Expect(seen).To(HaveLen(move.Size.Dynamic.Enc.Count()))
	})
})
