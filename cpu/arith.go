package cpu

import "github.com/sarchlab/genesis68k/bits"

// ArithOp selects ADD or SUB two's-complement arithmetic.
type ArithOp int

const (
	ArithAdd ArithOp = iota
	ArithSub
)

// DoArith implements the "arith(op)" microcode step: computes
// dst op src at the given bit width (8/16/32), writes the result back to
// the destination slot, and sets C/V/Z/N from the result (X mirrors C,
// per the m68k convention that ADD/SUB/ADDX/SUBX all feed the same
// extend bit). Returns the base execution cost in cycles
// (ArithStepCycles, 4 by default -- see cpu/cost.go); EA-mode and
// bus-access cost is charged separately by the enclosing pipeline's EA
// steps.
func DoArith(op ArithOp, sr *StatusReg, src, dst *EASlot, width int) int {
	var r bits.OverflowResult
	if op == ArithAdd {
		r = bits.AddOverflow(dst.Data, src.Data, width)
	} else {
		r = bits.SubOverflow(dst.Data, src.Data, width)
	}

	dst.Data = r.Result

	sr.C = r.Carry
	sr.X = r.Carry
	sr.V = r.Overflow
	sr.Z = r.Result == 0
	signBit := uint32(1) << uint(width-1)
	sr.N = r.Result&signBit != 0

	return ArithStepCycles
}
