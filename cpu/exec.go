package cpu

import (
	"github.com/sarchlab/genesis68k/bus"
)

// Transfer identifies which effective-address slot a pipeline step
// operates on.
type Transfer int

const (
	Src Transfer = iota
	Dst
)

// EASlot is one effective-address scratch slot: the computed address and,
// if loaded, its data.
type EASlot struct {
	Addr uint32
	Data uint32
}

// ExecContext is the mutable per-instruction scratch: a borrowed bus
// handle, the two effective-address slots, and the running cycle
// counter. Step uses one package-level ExecContext (see step.go) and
// resets it (not reallocates it) before each instruction, keeping the
// hot path allocation-free per spec.md's concurrency/resource model.
type ExecContext struct {
	Bus *bus.Bus
	EA  [2]EASlot
	Clk uint64
}

// Reset clears the execution context for the next instruction, without
// releasing the underlying storage.
func (e *ExecContext) Reset(b *bus.Bus) {
	e.Bus = b
	e.EA[Src] = EASlot{}
	e.EA[Dst] = EASlot{}
	e.Clk = 0
}

// busMask synthesizes the data-width mask for a byte access through the
// 16-bit data bus by inspecting bit 0 of addr: the mask's set bits are
// the positions to *ignore*.
func busMask(addr uint32) uint32 {
	if addr&1 == 1 {
		return 0xFF00
	}
	return 0x00FF
}

// ReadByte reads one byte at addr, charging 4 cycles.
func (e *ExecContext) ReadByte(addr uint32) uint8 {
	e.Clk += CyclesByteOrWord
	v := e.Bus.Read(addr&^1, busMask(addr))
	if addr&1 == 1 {
		return uint8(v)
	}
	return uint8(v >> 8)
}

// WriteByte writes one byte at addr, charging 4 cycles.
func (e *ExecContext) WriteByte(addr uint32, v uint8) {
	e.Clk += CyclesByteOrWord
	var data uint32
	if addr&1 == 1 {
		data = uint32(v)
	} else {
		data = uint32(v) << 8
	}
	e.Bus.Write(addr&^1, busMask(addr), data)
}

// ReadWord reads one 16-bit word at addr (addr is word-aligned),
// charging 4 cycles.
func (e *ExecContext) ReadWord(addr uint32) uint16 {
	e.Clk += CyclesByteOrWord
	return uint16(e.Bus.Read(addr, 0))
}

// WriteWord writes one 16-bit word at addr, charging 4 cycles.
func (e *ExecContext) WriteWord(addr uint32, v uint16) {
	e.Clk += CyclesByteOrWord
	e.Bus.Write(addr, 0, uint32(v))
}

// ReadLong reads one 32-bit long word as two word accesses at addr and
// addr+2, charging 8 cycles total.
func (e *ExecContext) ReadLong(addr uint32) uint32 {
	hi := e.Bus.Read(addr, 0)
	lo := e.Bus.Read(addr+2, 0)
	e.Clk += CyclesLong
	return hi<<16 | (lo & 0xFFFF)
}

// WriteLong writes one 32-bit long word as two word accesses, charging 8
// cycles total.
func (e *ExecContext) WriteLong(addr uint32, v uint32) {
	e.Bus.Write(addr, 0, v>>16)
	e.Bus.Write(addr+2, 0, v&0xFFFF)
	e.Clk += CyclesLong
}

// ReadSized and WriteSized dispatch on a runtime width (8/16/32), used by
// pipeline steps whose width is only known once the permutation's
// concrete size is bound.
func (e *ExecContext) ReadSized(addr uint32, width int) uint32 {
	switch width {
	case 8:
		return uint32(e.ReadByte(addr))
	case 16:
		return uint32(e.ReadWord(addr))
	case 32:
		return e.ReadLong(addr)
	default:
		panic("cpu: unsupported access width")
	}
}

func (e *ExecContext) WriteSized(addr uint32, width int, v uint32) {
	switch width {
	case 8:
		e.WriteByte(addr, uint8(v))
	case 16:
		e.WriteWord(addr, uint16(v))
	case 32:
		e.WriteLong(addr, v)
	default:
		panic("cpu: unsupported access width")
	}
}

// Fetch reads the next value from the PC instruction stream and advances
// PC by max(width,16)/8 bytes -- byte immediates still occupy a full
// word in the stream, per spec.md §4.6/§9.
func (e *ExecContext) Fetch(width int, c *CPU) uint32 {
	streamWidth := width
	if streamWidth < 16 {
		streamWidth = 16
	}
	v := e.ReadSized(c.PC, streamWidth)
	c.PC += uint32(streamWidth / 8)
	if width == 8 {
		return v & 0xFF
	}
	return v
}

// ExtWord decodes one 16-bit extension word as
// { disp:i8, padding:u3, size:u1, n:u3, m:u1 }, selects d[n] (m=0) or
// a[n] (m=1) as the index register, sign-extends that register's low 16
// bits (size=0) or uses its full 32 bits (size=1) per the documented
// m68k behavior (spec.md §9 open question), and returns
// disp + idx (mod 2^32).
func (e *ExecContext) ExtWord(c *CPU) uint32 {
	word := uint16(e.Fetch(16, c))

	disp := uint32(int32(int8(word & 0xFF)))
	size := (word >> 11) & 0x1
	n := (word >> 12) & 0x7
	m := (word >> 15) & 0x1

	var idx uint32
	if m == 0 {
		idx = c.D[n]
	} else {
		idx = c.A[n]
	}
	if size == 0 {
		idx = uint32(int32(int16(idx)))
	}

	return disp + idx
}
