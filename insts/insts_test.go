package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/genesis68k/insts"
)

var _ = Describe("Pattern", func() {
	It("matches set bits and wildcard bits, and rejects a concrete-bit mismatch", func() {
		p := insts.MustPattern("1100xxx10000xxxx")
		Expect(p.Match(0xC300)).To(BeTrue())  // abcd d0,d1: 1100 001 10000 0000
		Expect(p.Match(0xC308)).To(BeTrue())  // abcd -(a0),-(a1): R/M=1
		Expect(p.Match(0xD300)).To(BeFalse()) // wrong top nibble
	})

	It("reports specificity as the wildcard-bit count", func() {
		p := insts.MustPattern("1100xxx10000xxxx")
		Expect(p.Specificity()).To(Equal(7))

		exact := insts.MustPattern("1100001100000000")
		Expect(exact.Specificity()).To(Equal(0))
	})

	It("rejects a malformed template", func() {
		_, err := insts.NewPattern("not16bits")
		Expect(err).To(HaveOccurred())

		_, err = insts.NewPattern("110022221100xxxx")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("SizeEncoding", func() {
	It("round-trips the standard 2-bit encoding", func() {
		enc := insts.SizeEnc2Bit(6)
		for _, s := range []insts.Size{insts.SizeByte, insts.SizeWord, insts.SizeLong} {
			code, ok := enc.Encode(s)
			Expect(ok).To(BeTrue())
			back, ok := enc.Decode(code)
			Expect(ok).To(BeTrue())
			Expect(back).To(Equal(s))
		}
	})

	It("renders mnemonic suffixes", func() {
		Expect(insts.SizeByte.String()).To(Equal("b"))
		Expect(insts.SizeWord.String()).To(Equal("w"))
		Expect(insts.SizeLong.String()).To(Equal("l"))
	})
})

var _ = Describe("AddrModeEncoding", func() {
	It("decodes the default 3-bit/3-bit table's reserved absolute and immediate forms", func() {
		enc := insts.DefaultAddrModeEncoding
		// m=111 n=100 -> immediate; m=111 n=001 -> absolute long.
		mode, ok := enc.Decode(0b000111100)
		Expect(ok).To(BeTrue())
		Expect(mode).To(Equal(insts.ModeImm))

		mode, ok = enc.Decode(0b000111001)
		Expect(ok).To(BeTrue())
		Expect(mode).To(Equal(insts.ModeAbsLong))
	})

	It("decodes the BCD-family 1-bit reg/reg encoding", func() {
		src := insts.RegRegAddrModeEncoding
		mode, ok := src.Decode(0b0000000) // m=0 (bit3=0), n=0
		Expect(ok).To(BeTrue())
		Expect(mode).To(Equal(insts.ModeDataReg))

		mode, ok = src.Decode(0b0001000) // bit3=1 -> predecrement
		Expect(ok).To(BeTrue())
		Expect(mode).To(Equal(insts.ModeAddrDec))
	})
})
