package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/genesis68k/bus"
	"github.com/sarchlab/genesis68k/cpu"
	"github.com/sarchlab/genesis68k/insts"
)

// abcdInstruction builds the ABCD descriptor with the given R/M-bit
// wildcard pattern: bits 15-12=1100, bits11-9=Rx(dest,wild), bit8=1,
// bits7-4=0000, bit3=R/M(wild), bits2-0=Ry(src,wild).
func abcdInstruction() insts.Instruction {
	p := insts.MustPattern("1100xxx10000xxxx")
	build := insts.NewPipeline().
		EA(cpu.Src, true, true, insts.EALoad, insts.RegRegAddrModeEncoding).
		EA(cpu.Dst, true, true, insts.EALoad, insts.RegRegAddrModeEncodingDst).
		BCD(insts.BCDAdd).
		EA(cpu.Dst, false, false, insts.EAStore, insts.RegRegAddrModeEncodingDst).
		Fetch()

	return insts.Instruction{
		Name:   "abcd",
		Opcode: p,
		Size:   insts.StaticSize(insts.SizeByte),
		Build:  build,
	}
}

// illegalInstrDesc covers the reserved 0x4AFC illegal-instruction
// sentinel (spec.md §8 scenario 5): an exact pattern with zero wildcard
// bits, so it always sorts ahead of any overlapping wildcard pattern.
func illegalInstrDesc() insts.Instruction {
	return insts.Instruction{
		Name:   "illegal",
		Opcode: insts.MustPattern("0100101011111100"),
		Size:   insts.NoSize(),
		Build:  insts.NewPipeline().Fetch(),
	}
}

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		perms := insts.PermuteAll([]insts.Instruction{abcdInstruction(), illegalInstrDesc()})
		decoder = insts.BuildDecoder(perms)
	})

	It("decodes abcd d0,d1 (opcode 0xC300)", func() {
		p, ok := decoder.Decode(0xC300)
		Expect(ok).To(BeTrue())
		Expect(p.Name).To(Equal("abcd"))
		Expect(p.Size).To(Equal(insts.SizeByte))
	})

	It("decodes the reserved illegal-instruction opcode", func() {
		p, ok := decoder.Decode(0x4AFC)
		Expect(ok).To(BeTrue())
		Expect(p.Name).To(Equal("illegal"))
	})

	It("reports absent for an opcode no descriptor covers", func() {
		_, ok := decoder.Decode(0xFFFF)
		Expect(ok).To(BeFalse())
	})

	It("agrees with a naive linear most-specific-first scan over every opcode word", func() {
		perms := insts.PermuteAll([]insts.Instruction{abcdInstruction(), illegalInstrDesc()})
		linear := func(word uint16) (insts.Permutation, bool) {
			best := -1
			for i, p := range perms {
				if !p.Opcode.Match(word) {
					continue
				}
				if best == -1 || perms[i].Opcode.Specificity() < perms[best].Opcode.Specificity() {
					best = i
				}
			}
			if best == -1 {
				return insts.Permutation{}, false
			}
			return perms[best], true
		}

		for word := 0; word <= 0xFFFF; word += 97 { // sparse sweep, full space is 65536 words
			wantPerm, wantOK := linear(uint16(word))
			gotPerm, gotOK := decoder.Decode(uint16(word))
			Expect(gotOK).To(Equal(wantOK), "word %#04x", word)
			if wantOK {
				Expect(gotPerm.Name).To(Equal(wantPerm.Name), "word %#04x", word)
			}
		}
	})
})

var _ = Describe("ABCD end-to-end (spec scenarios)", func() {
	var (
		c *cpu.CPU
		e *cpu.ExecContext
		h insts.Handler
	)

	BeforeEach(func() {
		c = cpu.NewCPU()
		// The pipeline ends with an instruction prefetch, so the context
		// needs a bus to read from (open bus answers zero everywhere).
		b, err := bus.Init(bus.Config{AddrWidth: 16, DataWidth: 16, PageSize: 0x10000}, nil, nil)
		Expect(err).NotTo(HaveOccurred())
		e = &cpu.ExecContext{}
		e.Reset(b)
		perms := insts.Permute(abcdInstruction())
		h = perms[0].Handler
	})

	run := func(opcode uint16) {
		c.IR = opcode
		h(c, e)
	}

	It("scenario 1: d0=0x09,d1=0x02,z=1 -> d1=0x11, z clears, x=c=0", func() {
		c.D[0] = 0x09
		c.D[1] = 0x02
		c.SR.Z = true
		run(0xC300) // abcd d0,d1
		Expect(c.D[1] & 0xFF).To(Equal(uint32(0x11)))
		Expect(c.SR.Z).To(BeFalse())
		Expect(c.SR.X).To(BeFalse())
		Expect(c.SR.C).To(BeFalse())
	})

	It("scenario 2: d0=0x98,d1=0x02,z=0 -> d1=0x00, z unchanged (stays clear), x=c=1", func() {
		c.D[0] = 0x98
		c.D[1] = 0x02
		c.SR.Z = false
		run(0xC300)
		Expect(c.D[1] & 0xFF).To(Equal(uint32(0x00)))
		Expect(c.SR.Z).To(BeFalse())
		Expect(c.SR.X).To(BeTrue())
		Expect(c.SR.C).To(BeTrue())
	})

	It("scenario 3: preserves the upper 24 bits of the destination register", func() {
		c.D[0] = 0xFFFFFF15
		c.D[1] = 0xFFFFFF13
		run(0xC300)
		Expect(c.D[1]).To(Equal(uint32(0xFFFFFF28)))
	})
})
