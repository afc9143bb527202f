// Package isa declares the small, real instruction catalog that
// exercises the insts package's pattern matcher, addressing-mode and
// size encodings, pipeline builder, permutation generator, and decoder
// against genuine 68000 opcode encodings. It is explicitly not a
// complete instruction set: spec.md's subject is the decoder
// infrastructure, not a full ISA implementation.
package isa

import (
	"github.com/sarchlab/genesis68k/cpu"
	"github.com/sarchlab/genesis68k/insts"
)

// Illegal is the reserved illegal-instruction opcode (0x4AFC): a single
// exact, zero-wildcard pattern, used both as a genuine catalog entry and
// as the decoder's "no match" fallback target.
const Illegal uint16 = 0x4AFC

// All returns the full catalog as instruction descriptors, ready for
// insts.PermuteAll.
func All() []insts.Instruction {
	return []insts.Instruction{
		abcd(),
		sbcd(),
		move(),
		movea(),
		add(),
		adda(),
		addq(),
		bcc(),
		illegal(),
	}
}

// abcd is "ABCD Ry,Rx" / "ABCD -(Ay),-(Ax)": opcode 1100 xxx 1 0000 xxxx,
// byte size only, reg/reg addressing via insts.RegRegAddrModeEncoding(Dst).
func abcd() insts.Instruction {
	return insts.Instruction{
		Name:   "abcd",
		Opcode: insts.MustPattern("1100xxx10000xxxx"),
		Size:   insts.StaticSize(insts.SizeByte),
		Build: insts.NewPipeline().
			EA(cpu.Src, true, true, insts.EALoad, insts.RegRegAddrModeEncoding).
			EA(cpu.Dst, true, true, insts.EALoad, insts.RegRegAddrModeEncodingDst).
			BCD(insts.BCDAdd).
			EA(cpu.Dst, false, false, insts.EAStore, insts.RegRegAddrModeEncodingDst).
			Fetch(),
	}
}

// sbcd is "SBCD Ry,Rx" / "SBCD -(Ay),-(Ax)": opcode 1000 xxx 1 0000 xxxx.
func sbcd() insts.Instruction {
	return insts.Instruction{
		Name:   "sbcd",
		Opcode: insts.MustPattern("1000xxx10000xxxx"),
		Size:   insts.StaticSize(insts.SizeByte),
		Build: insts.NewPipeline().
			EA(cpu.Src, true, true, insts.EALoad, insts.RegRegAddrModeEncoding).
			EA(cpu.Dst, true, true, insts.EALoad, insts.RegRegAddrModeEncodingDst).
			BCD(insts.BCDSub).
			EA(cpu.Dst, false, false, insts.EAStore, insts.RegRegAddrModeEncodingDst).
			Fetch(),
	}
}

// moveDestEncoding is MOVE/MOVEA's destination field: register at bits
// 11-9, mode at bits 8-6 (the field order is reversed relative to the
// source operand and to every other two-operand instruction).
var moveDestEncoding = insts.NewDefaultAddrModeEncoding(6, 9)

// move is "MOVE.sz <ea>,<ea>": opcode 00 ss ddd DDD sss rrr, full
// six-bit-by-six-bit addressing matrix on both operands, dynamic size
// via insts.SizeEncMove.
func move() insts.Instruction {
	return insts.Instruction{
		Name:   "move",
		Opcode: insts.MustPattern("00xxxxxxxxxxxxxx"),
		Size:   insts.DynSize(insts.SizeEncMove(12)),
		Build: insts.NewPipeline().
			EA(cpu.Src, true, true, insts.EALoad, insts.DefaultAddrModeEncoding).
			Move().
			TestNZ().
			EA(cpu.Dst, true, true, insts.EAStore, moveDestEncoding).
			Fetch(),
	}
}

// movea is "MOVEA.sz <ea>,An": the same source matrix as MOVE, but the
// destination is always an address register (no condition-code effect)
// and only word/long sizes exist.
func movea() insts.Instruction {
	return insts.Instruction{
		Name:   "movea",
		Opcode: insts.MustPattern("00xxxxx001xxxxxx"),
		Size:   insts.DynSize(insts.SizeEncMovea(12)),
		Build: insts.NewPipeline().
			EA(cpu.Src, true, true, insts.EALoad, insts.DefaultAddrModeEncoding).
			Move().
			StReg(insts.AddrRegClass, 9).
			Fetch(),
	}
}

// add is "ADD.sz <ea>,Dx" (the EA-plus-Dn-into-Dn form only; the
// Dn-into-EA form is out of scope for this catalog): opcode
// 1101 xxx 0 xx xxxxxx, dynamic size via the standard 2-bit encoding.
func add() insts.Instruction {
	return insts.Instruction{
		Name:   "add",
		Opcode: insts.MustPattern("1101xxx0xxxxxxxx"),
		Size:   insts.DynSize(insts.SizeEnc2Bit(6)),
		Build: insts.NewPipeline().
			EA(cpu.Src, true, true, insts.EALoad, insts.DefaultAddrModeEncoding).
			LdReg(cpu.Dst, insts.DataRegClass, 9).
			Arith(cpu.ArithAdd).
			StReg(insts.DataRegClass, 9).
			Fetch(),
	}
}

// adda is "ADDA.sz <ea>,Ax": opcode 1101 xxx x11 xxxxxx, word/long only,
// destination is an address register (no condition-code effect). The
// word-size permutation runs the add at 16 bits like any other dynamic-
// size instruction in this catalog; real hardware always widens ADDA's
// addition to 32 bits first. Reproducing that would need a per-
// instruction width override the permutation generator does not carry,
// so it is left as a known simplification of this catalog entry.
func adda() insts.Instruction {
	return insts.Instruction{
		Name:   "adda",
		Opcode: insts.MustPattern("1101xxxx11xxxxxx"),
		Size:   insts.DynSize(insts.SizeEnc1Bit(8)),
		Build: insts.NewPipeline().
			EA(cpu.Src, true, true, insts.EALoad, insts.DefaultAddrModeEncoding).
			LdReg(cpu.Dst, insts.AddrRegClass, 9).
			Arith(cpu.ArithAdd).
			StReg(insts.AddrRegClass, 9).
			Fetch(),
	}
}

// addq is "ADDQ.sz #data,<ea>": opcode 0101 ddd 0 xx xxxxxx, where ddd
// (bits 11-9) is a 3-bit immediate literal (0 encodes 8), not a register
// field.
func addq() insts.Instruction {
	return insts.Instruction{
		Name:   "addq",
		Opcode: insts.MustPattern("0101xxx0xxxxxxxx"),
		Size:   insts.DynSize(insts.SizeEnc2Bit(6)),
		Build: insts.NewPipeline().
			ImmField(cpu.Src, 9, 3, 8).
			EA(cpu.Dst, true, true, insts.EALoad, insts.DefaultAddrModeEncoding).
			Arith(cpu.ArithAdd).
			EA(cpu.Dst, false, false, insts.EAStore, insts.DefaultAddrModeEncoding).
			Fetch(),
	}
}

// bcc is "Bcc/BRA/BSR <label>": opcode 0110 cccc dddddddd, condition
// nibble wildcarded into the pattern, no size (a static-size-none
// permutation); cond 0000 always branches (BRA), cond 0001 pushes a
// return address first (BSR), 0010-1111 test the standard condition
// codes.
func bcc() insts.Instruction {
	return insts.Instruction{
		Name:   "bcc",
		Opcode: insts.MustPattern("0110xxxxxxxxxxxx"),
		Size:   insts.NoSize(),
		Build:  insts.NewPipeline().Branch().Fetch(),
	}
}

// illegal is the 68000's reserved illegal-instruction opcode. Its
// pipeline is empty: it does no prefetch, so running it leaves PC and IR
// unchanged.
func illegal() insts.Instruction {
	return insts.Instruction{
		Name:   "illegal",
		Opcode: insts.MustPattern("0100101011111100"),
		Size:   insts.NoSize(),
		Build:  insts.NewPipeline(),
	}
}
