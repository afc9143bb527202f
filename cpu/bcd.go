package cpu

import "github.com/sarchlab/genesis68k/bits"

// BCDOp selects ABCD (add) or SBCD (subtract) BCD arithmetic.
type BCDOp int

const (
	BCDAdd BCDOp = iota
	BCDSub
)

// DoBCD implements the "bcd(op)" microcode step: decodes src/dst data as
// BCD bytes, computes dst ± src ± x modulo 100 as BCD, writes the result
// back to the destination slot, and updates flags per spec.md §4.3 --
// c = x = overflow, and z only ever clears (it tracks "all zero bytes
// seen so far" across a multi-byte BCD chain, the m68k quirk). Returns
// the cycles to accumulate (BCDStepCycles, 2 by default -- see
// cpu/cost.go).
func DoBCD(op BCDOp, sr *StatusReg, src, dst *EASlot) int {
	s := bits.FromBCD(uint8(src.Data))
	d := bits.FromBCD(uint8(dst.Data))

	x := 0
	if sr.X {
		x = 1
	}

	var raw int
	if op == BCDAdd {
		raw = int(d) + int(s) + x
	} else {
		raw = int(d) - int(s) - x
	}

	overflow := raw < 0 || raw > 99
	mod := ((raw % 100) + 100) % 100

	packed, _ := bits.ToBCD(uint8(mod))
	dst.Data = uint32(packed)

	sr.C = overflow
	sr.X = overflow
	if mod != 0 {
		sr.Z = false
	}

	return BCDStepCycles
}
