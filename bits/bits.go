// Package bits provides the bit-field and BCD integer primitives the
// decoder and microcode pipeline build on: extract/overwrite/extend/
// truncate, signed/unsigned overflow tuples, and 8-bit<->BCD conversion
// via 256-entry lookup tables.
package bits

// Unsigned is the set of integer widths the pipeline operates on.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Extract returns the width-bit field of x starting at bit position pos.
func Extract(x uint32, pos, width int) uint32 {
	mask := uint32(1)<<uint(width) - 1
	return (x >> uint(pos)) & mask
}

// Overwrite replaces the low width(y) bits of x with y, preserving the
// bits of x above that width.
func Overwrite(x uint32, y uint32, width int) uint32 {
	mask := uint32(1)<<uint(width) - 1
	return (x &^ mask) | (y & mask)
}

// ExtendByte sign-extends an 8-bit value to 32 bits.
func ExtendByte(v uint8) uint32 {
	return uint32(int32(int8(v)))
}

// ExtendWord sign-extends a 16-bit value to 32 bits.
func ExtendWord(v uint16) uint32 {
	return uint32(int32(int16(v)))
}

// Truncate masks x down to the low width bits.
func Truncate(x uint32, width int) uint32 {
	if width >= 32 {
		return x
	}
	return x & (uint32(1)<<uint(width) - 1)
}

// OverflowResult pairs an arithmetic result with its overflow flags.
type OverflowResult struct {
	Result   uint32
	Carry    bool // unsigned overflow
	Overflow bool // signed overflow
}

// AddOverflow adds a and b at the given bit width, reporting both
// unsigned (carry) and signed (overflow) overflow.
func AddOverflow(a, b uint32, width int) OverflowResult {
	mask := uint32(1)<<uint(width) - 1
	sum := (a + b) & mask
	carry := (uint64(a&mask) + uint64(b&mask)) > uint64(mask)

	signBit := uint32(1) << uint(width-1)
	aSign := a&signBit != 0
	bSign := b&signBit != 0
	rSign := sum&signBit != 0
	overflow := aSign == bSign && rSign != aSign

	return OverflowResult{Result: sum, Carry: carry, Overflow: overflow}
}

// SubOverflow subtracts b from a at the given bit width, reporting both
// unsigned (borrow, returned as Carry) and signed overflow.
func SubOverflow(a, b uint32, width int) OverflowResult {
	mask := uint32(1)<<uint(width) - 1
	diff := (a - b) & mask
	borrow := (a & mask) < (b & mask)

	signBit := uint32(1) << uint(width-1)
	aSign := a&signBit != 0
	bSign := b&signBit != 0
	rSign := diff&signBit != 0
	overflow := aSign != bSign && rSign != aSign

	return OverflowResult{Result: diff, Carry: borrow, Overflow: overflow}
}

var toBCDTable [256][2]uint8  // [value] -> (bcd byte, overflow 0/1)
var fromBCDTable [256]uint8   // [bcd byte] -> value (mod 100)

func init() {
	for v := 0; v < 256; v++ {
		m := v % 100
		hi := m / 10
		lo := m % 10
		overflow := uint8(0)
		if v > 99 {
			overflow = 1
		}
		toBCDTable[v] = [2]uint8{uint8(hi<<4 | lo), overflow}
	}
	for b := 0; b < 256; b++ {
		hi := (b >> 4) & 0xF
		lo := b & 0xF
		if hi > 9 {
			hi = 9
		}
		if lo > 9 {
			lo = 9
		}
		fromBCDTable[b] = uint8(hi*10 + lo)
	}
}

// ToBCD converts an integer in [0,255] to a packed BCD byte via a
// 256-entry lookup table. The second return is 1 iff v > 99.
func ToBCD(v uint8) (uint8, uint8) {
	e := toBCDTable[v]
	return e[0], e[1]
}

// FromBCD decodes a packed BCD byte to its integer value (mod 100) via a
// 256-entry lookup table.
func FromBCD(b uint8) uint8 {
	return fromBCDTable[b]
}
