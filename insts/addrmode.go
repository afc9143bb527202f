package insts

// Mode is an m68k addressing-mode variant.
type Mode int

// The twelve addressing-mode variants.
const (
	ModeDataReg Mode = iota
	ModeAddrReg
	ModeAddr
	ModeAddrInc
	ModeAddrDec
	ModeAddrDisp
	ModeAddrIdx
	ModePCDisp
	ModePCIdx
	ModeAbsShort
	ModeAbsLong
	ModeImm
	modeCount
)

// bitField is an optional (m,n) constraint: an addressing-mode variant
// may pin m, pin n, both, or neither (both nil means "any word whose (m,n)
// aren't claimed by another variant" — never needed by the default table,
// which is exhaustive over m).
type bitField struct {
	mSet bool
	m    uint16
	nSet bool
	n    uint16
}

// AddrModeEncoding maps the twelve addressing-mode variants to their
// (m,n) bit-field constraints at a configured position/width, and
// provides decode() as a dense lookup table over the concatenated bits.
type AddrModeEncoding struct {
	MPos, MWidth int
	NPos, NWidth int

	constraints [modeCount]bitField
	table       []int // index: (m<<NWidth)|n -> Mode, or -1
}

func newAddrModeEncoding(mPos, mWidth, nPos, nWidth int, constraints [modeCount]bitField) AddrModeEncoding {
	e := AddrModeEncoding{
		MPos: mPos, MWidth: mWidth,
		NPos: nPos, NWidth: nWidth,
		constraints: constraints,
	}
	size := 1 << uint(mWidth+nWidth)
	e.table = make([]int, size)
	for i := range e.table {
		e.table[i] = -1
	}
	mMask := uint16(1)<<uint(mWidth) - 1
	nMask := uint16(1)<<uint(nWidth) - 1
	// Constrained variants claim their slots first; an unconstrained
	// variant then only takes slots no other variant claimed.
	for pass := 0; pass < 2; pass++ {
		for mode := Mode(0); mode < modeCount; mode++ {
			c := constraints[mode]
			unconstrained := !c.mSet && !c.nSet
			if unconstrained != (pass == 1) {
				continue
			}
			for m := uint16(0); m <= mMask; m++ {
				if c.mSet && m != c.m {
					continue
				}
				for n := uint16(0); n <= nMask; n++ {
					if c.nSet && n != c.n {
						continue
					}
					idx := int(m)<<uint(nWidth) | int(n)
					if unconstrained && e.table[idx] != -1 {
						continue
					}
					e.table[idx] = int(mode)
				}
			}
		}
	}
	return e
}

// Decode extracts m and n from word at the configured positions and
// returns the unique matching addressing mode, or reports absent.
func (e AddrModeEncoding) Decode(word uint16) (Mode, bool) {
	m := extractField(word, e.MPos, e.MWidth)
	n := extractField(word, e.NPos, e.NWidth)
	idx := int(m)<<uint(e.NWidth) | int(n)
	if idx < 0 || idx >= len(e.table) || e.table[idx] < 0 {
		return 0, false
	}
	return Mode(e.table[idx]), true
}

func extractField(word uint16, pos, width int) uint16 {
	mask := uint16(1)<<uint(width) - 1
	return (word >> uint(pos)) & mask
}

// NewDefaultAddrModeEncoding builds the canonical 3-bit-m/3-bit-n table
// (the twelve standard addressing-mode variants) with the mode field at
// mPos and the register field at nPos -- most instructions place mode at
// bits 5-3 and register at bits 2-0, but MOVE's destination operand
// reverses the field order (register at 11-9, mode at 8-6), so callers
// name their own positions.
func NewDefaultAddrModeEncoding(mPos, nPos int) AddrModeEncoding {
	var c [modeCount]bitField
	c[ModeDataReg] = bitField{mSet: true, m: 0b000}
	c[ModeAddrReg] = bitField{mSet: true, m: 0b001}
	c[ModeAddr] = bitField{mSet: true, m: 0b010}
	c[ModeAddrInc] = bitField{mSet: true, m: 0b011}
	c[ModeAddrDec] = bitField{mSet: true, m: 0b100}
	c[ModeAddrDisp] = bitField{mSet: true, m: 0b101}
	c[ModeAddrIdx] = bitField{mSet: true, m: 0b110}
	c[ModePCDisp] = bitField{mSet: true, m: 0b111, nSet: true, n: 0b010}
	c[ModePCIdx] = bitField{mSet: true, m: 0b111, nSet: true, n: 0b011}
	c[ModeAbsShort] = bitField{mSet: true, m: 0b111, nSet: true, n: 0b000}
	c[ModeAbsLong] = bitField{mSet: true, m: 0b111, nSet: true, n: 0b001}
	c[ModeImm] = bitField{mSet: true, m: 0b111, nSet: true, n: 0b100}
	return newAddrModeEncoding(mPos, 3, nPos, 3, c)
}

// DefaultAddrModeEncoding is the canonical 3-bit-m-at-3 / 3-bit-n-at-0
// encoding used by most instructions (mode at bits 5-3, register at
// bits 2-0).
var DefaultAddrModeEncoding = NewDefaultAddrModeEncoding(3, 0)

// NewRegRegAddrModeEncoding builds the BCD-family (ABCD/SBCD) 1-bit-m
// encoding with its 3-bit register field at nPos: m=0 selects a
// data-register operand, m=1 selects the "-(An)" memory-to-memory
// operand form. The R/M bit always lives at bit 3; the source and
// destination operands share it but read their own register field
// (source at bits 2-0, destination at bits 11-9), so callers build one
// encoding per side with a different nPos.
func NewRegRegAddrModeEncoding(nPos int) AddrModeEncoding {
	var c [modeCount]bitField
	c[ModeDataReg] = bitField{mSet: true, m: 0}
	c[ModeAddrDec] = bitField{mSet: true, m: 1}
	return newAddrModeEncoding(3, 1, nPos, 3, c)
}

// RegRegAddrModeEncoding is the source-side (bits 2-0) BCD-family
// encoding; see NewRegRegAddrModeEncoding.
var RegRegAddrModeEncoding = NewRegRegAddrModeEncoding(0)

// RegRegAddrModeEncodingDst is the destination-side (bits 11-9)
// BCD-family encoding; see NewRegRegAddrModeEncoding.
var RegRegAddrModeEncodingDst = NewRegRegAddrModeEncoding(9)
