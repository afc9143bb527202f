// Package cpu holds the m68k register file and the per-instruction
// execution context/bus-width transfer helpers the decoder's handlers
// operate on.
package cpu

// CPU is the m68k register file: eight 32-bit data registers, eight
// 32-bit address registers (A[7] is the stack pointer), the program
// counter, instruction register, and packed status register.
type CPU struct {
	D [8]uint32
	A [8]uint32

	PC uint32
	IR uint16

	SR StatusReg
}

// NewCPU returns a CPU with the supervisor flag set, per spec.
func NewCPU() *CPU {
	c := &CPU{}
	c.SR.S = true
	return c
}

// StatusReg is the packed 16-bit m68k status register, unpacked into its
// component fields for convenient access: condition-code flags {c, v, z,
// n, x}, a 3-bit interrupt-priority level, the master flag, the
// supervisor flag, and a 2-bit trace flag.
type StatusReg struct {
	C, V, Z, N, X bool
	IPL           uint8 // 3 bits
	M             bool
	S             bool
	T             uint8 // 2 bits
}

// Pack renders the status register as its 16-bit hardware encoding:
// T(2) S(1) M(1) -(1) IPL(3) -(3) X(1) N(1) Z(1) V(1) C(1).
func (s StatusReg) Pack() uint16 {
	var w uint16
	w |= uint16(s.T&0x3) << 14
	if s.S {
		w |= 1 << 13
	}
	if s.M {
		w |= 1 << 12
	}
	w |= uint16(s.IPL&0x7) << 8
	if s.X {
		w |= 1 << 4
	}
	if s.N {
		w |= 1 << 3
	}
	if s.Z {
		w |= 1 << 2
	}
	if s.V {
		w |= 1 << 1
	}
	if s.C {
		w |= 1 << 0
	}
	return w
}

// Unpack loads the status register from its 16-bit hardware encoding.
func (s *StatusReg) Unpack(w uint16) {
	s.T = uint8((w >> 14) & 0x3)
	s.S = w&(1<<13) != 0
	s.M = w&(1<<12) != 0
	s.IPL = uint8((w >> 8) & 0x7)
	s.X = w&(1<<4) != 0
	s.N = w&(1<<3) != 0
	s.Z = w&(1<<2) != 0
	s.V = w&(1<<1) != 0
	s.C = w&(1<<0) != 0
}

// ReadA sign-extension-free read of an address register; A[7] is SP like
// any other address register (the spec does not model dual user/
// supervisor stack pointers).
func (c *CPU) ReadA(n int) uint32 { return c.A[n] }

// WriteA writes an address register.
func (c *CPU) WriteA(n int, v uint32) { c.A[n] = v }

// ReadD reads a data register.
func (c *CPU) ReadD(n int) uint32 { return c.D[n] }

// WriteD writes a data register.
func (c *CPU) WriteD(n int, v uint32) { c.D[n] = v }
