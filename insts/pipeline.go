package insts

import (
	"github.com/sarchlab/genesis68k/bits"
	"github.com/sarchlab/genesis68k/cpu"
)

// Handler is a compiled instruction body: it mutates cpu and execution
// context in place. The decoder's build step binds one Handler per
// permutation.
type Handler func(c *cpu.CPU, e *cpu.ExecContext)

// RegClass distinguishes data- from address-register operands for
// ldreg/streg steps.
type RegClass int

const (
	DataRegClass RegClass = iota
	AddrRegClass
)

// TransferKind discriminates an Info sidecar entry: the disassembler
// reads this to render operand text without re-deriving it from the step
// list.
type TransferKind int

const (
	TransferNone TransferKind = iota
	TransferAddrMode
	TransferDataReg
	TransferAddrReg
)

// TransferInfo describes one operand (source or destination) for the
// disassembler.
type TransferInfo struct {
	Kind    TransferKind
	Enc     AddrModeEncoding // valid when Kind == TransferAddrMode
	BitPos  int              // valid when Kind == TransferDataReg/TransferAddrReg
}

// Info is the disassembler sidecar attached to a Pipeline: one
// TransferInfo per operand slot.
type Info struct {
	Src, Dst TransferInfo
}

// BCDArithOp selects the arithmetic performed by a BCD step.
type BCDArithOp = cpu.BCDOp

const (
	BCDAdd = cpu.BCDAdd
	BCDSub = cpu.BCDSub
)

type stepKind int

const (
	stepEA stepKind = iota
	stepLdReg
	stepStReg
	stepFetch
	stepBCD
	stepCycles
	stepBranch
	stepMove
	stepTestNZ
	stepArith
	stepImmField
)

// step is the tagged-union representation of one pipeline operation
// (spec.md §9 "step heterogeneity without dynamic dispatch"): a single
// struct type carries every step kind's fields, and Finalize switches on
// Kind once per step to build a single closure -- no interface, no
// per-step dynamic dispatch.
type step struct {
	kind stepKind

	// stepEA
	transfer  cpu.Transfer
	calc      bool
	chargeClk bool
	eaOp      eaOp
	enc       AddrModeEncoding

	// stepLdReg / stepStReg
	regClass RegClass
	bitPos   int

	// stepImmField
	immPos, immWidth int
	immZeroMeans     int

	// stepBCD
	bcdOp BCDArithOp

	// stepArith
	arithOp cpu.ArithOp

	// stepCycles
	n int
}

// eaOp selects load, store, or no transfer for an ea() step.
type eaOp int

const (
	EANone eaOp = iota
	EALoad
	EAStore
)

// Pipeline is the immutable microcode-pipeline builder: each operation
// returns a new Pipeline with one step appended and, where applicable,
// the Info sidecar updated. Each call copies the step list into a fresh
// slice, so a pipeline used as a shared prefix is never modified by a
// later call (spec.md §9 "builder immutability").
type Pipeline struct {
	steps []step
	info  Info
}

// NewPipeline returns an empty pipeline.
func NewPipeline() Pipeline {
	return Pipeline{}
}

func (p Pipeline) appended(s step) Pipeline {
	out := Pipeline{
		steps: make([]step, len(p.steps), len(p.steps)+1),
		info:  p.info,
	}
	copy(out.steps, p.steps)
	out.steps = append(out.steps, s)
	return out
}

// EA appends an effective-address step: for the given transfer slot,
// optionally compute the address (calc), optionally charge its EA-mode
// cycle penalty (chargeClk), and perform the given transfer (none/load/
// store) under the given addressing-mode encoding.
func (p Pipeline) EA(transfer cpu.Transfer, calc, chargeClk bool, op eaOp, enc AddrModeEncoding) Pipeline {
	out := p.appended(step{
		kind:      stepEA,
		transfer:  transfer,
		calc:      calc,
		chargeClk: chargeClk,
		eaOp:      op,
		enc:       enc,
	})
	ti := TransferInfo{Kind: TransferAddrMode, Enc: enc}
	if transfer == cpu.Src {
		out.info.Src = ti
	} else {
		out.info.Dst = ti
	}
	return out
}

// LdReg appends a step that loads d[n] or sign-extended a[n] (by class)
// into the given transfer slot's data at width precision; n is read from
// the opcode at bitPos (3 bits).
func (p Pipeline) LdReg(transfer cpu.Transfer, class RegClass, bitPos int) Pipeline {
	out := p.appended(step{kind: stepLdReg, transfer: transfer, regClass: class, bitPos: bitPos})
	ti := TransferInfo{BitPos: bitPos}
	if class == DataRegClass {
		ti.Kind = TransferDataReg
	} else {
		ti.Kind = TransferAddrReg
	}
	if transfer == cpu.Src {
		out.info.Src = ti
	} else {
		out.info.Dst = ti
	}
	return out
}

// StReg appends the destination-slot inverse of LdReg.
func (p Pipeline) StReg(class RegClass, bitPos int) Pipeline {
	out := p.appended(step{kind: stepStReg, transfer: cpu.Dst, regClass: class, bitPos: bitPos})
	ti := TransferInfo{BitPos: bitPos}
	if class == DataRegClass {
		ti.Kind = TransferDataReg
	} else {
		ti.Kind = TransferAddrReg
	}
	out.info.Dst = ti
	return out
}

// Fetch appends the standard instruction-prefetch step that ends most
// pipelines: cpu.IR = exec.Fetch(16, cpu).
func (p Pipeline) Fetch() Pipeline {
	return p.appended(step{kind: stepFetch})
}

// BCD appends a binary-coded-decimal add/subtract step.
func (p Pipeline) BCD(op BCDArithOp) Pipeline {
	return p.appended(step{kind: stepBCD, bcdOp: op})
}

// Cycles appends a step that accumulates n cycles with no other effect.
func (p Pipeline) Cycles(n int) Pipeline {
	return p.appended(step{kind: stepCycles, n: n})
}

// Branch appends a PC-relative conditional branch step: it reads the
// condition nibble out of the opcode at bits 11-8, fetches a 16-bit
// sign-extended displacement, and (condition 0001 aside, which pushes a
// return address for bsr) sets PC to the branch target iff the
// condition holds. Not one of the core EA/ldreg/streg/fetch/bcd/cycles
// steps spec.md describes -- added for the bcc/bra/bsr catalog entry,
// the one instruction family whose control flow no existing step kind
// expresses.
func (p Pipeline) Branch() Pipeline {
	return p.appended(step{kind: stepBranch})
}

// Move appends a step that copies the source slot's data (truncated to
// the bound size) into the destination slot's data, with no flag
// effect -- the shared core of MOVE and MOVEA, which differ only in
// their destination step and whether TestNZ follows.
func (p Pipeline) Move() Pipeline {
	return p.appended(step{kind: stepMove})
}

// TestNZ appends a step that sets Z/N from the destination slot's
// current data at the bound width and clears V/C, matching MOVE's
// condition-code effect (MOVEA has none).
func (p Pipeline) TestNZ() Pipeline {
	return p.appended(step{kind: stepTestNZ})
}

// Arith appends a two's-complement add/subtract step over the src/dst
// slots, per cpu.DoArith.
func (p Pipeline) Arith(op cpu.ArithOp) Pipeline {
	return p.appended(step{kind: stepArith, arithOp: op})
}

// ImmField appends a step that reads a width-bit literal directly out
// of the opcode at pos (not a register index) into the given transfer
// slot's data; if zeroMeans is nonzero and the extracted field is 0, the
// slot gets zeroMeans instead (ADDQ/SUBQ's "0 encodes 8").
func (p Pipeline) ImmField(transfer cpu.Transfer, pos, width, zeroMeans int) Pipeline {
	return p.appended(step{
		kind: stepImmField, transfer: transfer,
		immPos: pos, immWidth: width, immZeroMeans: zeroMeans,
	})
}

// Info returns the accumulated disassembler sidecar.
func (p Pipeline) Info() Info { return p.info }

// eaModeExtraCycles is the effective-address-mode cycle penalty table
// from spec.md §4.3: only the indexed modes carry an extension-word
// decode cost on top of the access itself, sourced from
// cpu.IndexedEACycles so a host's timing.Config override reaches this
// table too. Predecrement/postincrement have no overhead beyond their
// register update and the access.
func eaModeExtraCycles(m Mode) int {
	switch m {
	case ModeAddrIdx, ModePCIdx:
		return int(cpu.IndexedEACycles)
	default:
		return 0
	}
}

// Finalize binds a concrete size (or SizeAbsent's zero value for a
// size-less pipeline) and compiles the step list into a single Handler
// closure.
func (p Pipeline) Finalize(size Size) Handler {
	steps := p.steps
	width := int(size)

	return func(c *cpu.CPU, e *cpu.ExecContext) {
		for _, s := range steps {
			switch s.kind {
			case stepEA:
				runEA(c, e, s, width)
			case stepLdReg:
				runLdReg(c, e, s, width)
			case stepStReg:
				runStReg(c, e, s, width)
			case stepFetch:
				c.IR = uint16(e.Fetch(16, c))
			case stepBCD:
				cycles := cpu.DoBCD(s.bcdOp, &c.SR, &e.EA[cpu.Src], &e.EA[cpu.Dst])
				e.Clk += uint64(cycles)
			case stepCycles:
				e.Clk += uint64(s.n)
			case stepBranch:
				runBranch(c, e)
			case stepMove:
				e.EA[cpu.Dst].Data = bits.Truncate(e.EA[cpu.Src].Data, width)
			case stepTestNZ:
				v := bits.Truncate(e.EA[cpu.Dst].Data, width)
				signBit := uint32(1) << uint(width-1)
				c.SR.Z = v == 0
				c.SR.N = v&signBit != 0
				c.SR.V = false
				c.SR.C = false
			case stepArith:
				cycles := cpu.DoArith(s.arithOp, &c.SR, &e.EA[cpu.Src], &e.EA[cpu.Dst], width)
				e.Clk += uint64(cycles)
			case stepImmField:
				v := uint32(extractField(c.IR, s.immPos, s.immWidth))
				if v == 0 && s.immZeroMeans != 0 {
					v = uint32(s.immZeroMeans)
				}
				e.EA[s.transfer].Data = v
			}
		}
	}
}

func runEA(c *cpu.CPU, e *cpu.ExecContext, s step, width int) {
	mode, ok := s.enc.Decode(c.IR)
	if !ok {
		return
	}
	n := int(extractField(c.IR, s.enc.NPos, s.enc.NWidth))

	slot := &e.EA[s.transfer]

	if s.calc && s.chargeClk {
		e.Clk += uint64(eaModeExtraCycles(mode))
	}

	switch mode {
	case ModeAddrDec:
		if s.calc {
			c.A[n] -= uint32(width / 8)
		}
		slot.Addr = c.A[n]
	case ModeAddrInc:
		slot.Addr = c.A[n]
		if s.calc {
			c.A[n] += uint32(width / 8)
		}
	case ModeAddr:
		slot.Addr = c.A[n]
	case ModeAddrDisp:
		if s.calc {
			disp := uint32(int32(int16(uint16(e.Fetch(16, c)))))
			slot.Addr = c.A[n] + disp
		}
	case ModeAddrIdx:
		if s.calc {
			slot.Addr = c.A[n] + e.ExtWord(c)
		}
	case ModePCDisp:
		if s.calc {
			base := c.PC
			disp := uint32(int32(int16(uint16(e.Fetch(16, c)))))
			slot.Addr = base + disp
		}
	case ModePCIdx:
		if s.calc {
			base := c.PC
			slot.Addr = base + e.ExtWord(c)
		}
	case ModeAbsShort:
		if s.calc {
			slot.Addr = uint32(int32(int16(uint16(e.Fetch(16, c)))))
		}
	case ModeAbsLong:
		if s.calc {
			slot.Addr = e.Fetch(32, c)
		}
	}

	switch s.eaOp {
	case EALoad:
		switch mode {
		case ModeDataReg:
			slot.Data = bits.Truncate(c.D[n], width)
		case ModeAddrReg:
			slot.Data = c.A[n]
		case ModeImm:
			slot.Data = e.Fetch(width, c)
		default:
			slot.Data = e.ReadSized(slot.Addr, width)
		}
	case EAStore:
		switch mode {
		case ModeDataReg:
			c.D[n] = bits.Overwrite(c.D[n], slot.Data, width)
		case ModeAddrReg:
			c.A[n] = signExtendTo32(slot.Data, width)
		case ModeImm:
			// no-op, per spec
		default:
			e.WriteSized(slot.Addr, width, slot.Data)
		}
	}
}

func signExtendTo32(v uint32, width int) uint32 {
	switch width {
	case 8:
		return bits.ExtendByte(uint8(v))
	case 16:
		return bits.ExtendWord(uint16(v))
	default:
		return v
	}
}

func runLdReg(c *cpu.CPU, e *cpu.ExecContext, s step, width int) {
	n := int(extractField(c.IR, s.bitPos, 3))
	slot := &e.EA[s.transfer]
	if s.regClass == DataRegClass {
		slot.Data = bits.Truncate(c.D[n], width)
	} else {
		slot.Data = signExtendTo32(c.A[n], width)
	}
}

// evalCondition implements the fourteen true m68k condition codes (2-15);
// 0 (always) and 1 (bsr) are handled by the caller.
func evalCondition(cond uint16, sr cpu.StatusReg) bool {
	switch cond {
	case 2: // HI
		return !sr.C && !sr.Z
	case 3: // LS
		return sr.C || sr.Z
	case 4: // CC
		return !sr.C
	case 5: // CS
		return sr.C
	case 6: // NE
		return !sr.Z
	case 7: // EQ
		return sr.Z
	case 8: // VC
		return !sr.V
	case 9: // VS
		return sr.V
	case 10: // PL
		return !sr.N
	case 11: // MI
		return sr.N
	case 12: // GE
		return sr.N == sr.V
	case 13: // LT
		return sr.N != sr.V
	case 14: // GT
		return !sr.Z && sr.N == sr.V
	case 15: // LE
		return sr.Z || sr.N != sr.V
	default:
		return false
	}
}

func runBranch(c *cpu.CPU, e *cpu.ExecContext) {
	cond := extractField(c.IR, 8, 4)
	base := c.PC
	disp := bits.ExtendWord(uint16(e.Fetch(16, c)))
	target := base + disp

	if cond == 1 { // bsr: push return address, then always branch
		c.A[7] -= 4
		e.WriteLong(c.A[7], c.PC)
		c.PC = target
		return
	}
	if cond == 0 || evalCondition(cond, c.SR) {
		c.PC = target
	}
}

func runStReg(c *cpu.CPU, e *cpu.ExecContext, s step, width int) {
	n := int(extractField(c.IR, s.bitPos, 3))
	slot := &e.EA[cpu.Dst]
	if s.regClass == DataRegClass {
		c.D[n] = bits.Overwrite(c.D[n], slot.Data, width)
	} else {
		c.A[n] = signExtendTo32(slot.Data, width)
	}
}
