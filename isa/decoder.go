package isa

import (
	"github.com/sarchlab/genesis68k/cpu"
	"github.com/sarchlab/genesis68k/insts"
)

// decoderAdapter satisfies cpu.Decoder by delegating to an *insts.Decoder
// built from this catalog. insts.Handler and cpu.StepHandler share the
// same underlying function type, so the conversion is direct.
type decoderAdapter struct {
	d *insts.Decoder
}

func (a decoderAdapter) Decode(word uint16) (cpu.StepHandler, bool) {
	p, ok := a.d.Decode(word)
	if !ok {
		return nil, false
	}
	return cpu.StepHandler(p.Handler), true
}

// BuildDecoder permutes and decodes the full catalog and returns it as a
// cpu.Decoder, ready for cpu.UseDecoder.
func BuildDecoder() cpu.Decoder {
	perms := insts.PermuteAll(All())
	return decoderAdapter{d: insts.BuildDecoder(perms)}
}
