package cpu

import "github.com/sarchlab/genesis68k/bus"

// StepHandler runs one decoded instruction's pipeline against a CPU and
// its execution context. It has the same underlying type as
// insts.Handler; cpu cannot import insts (insts imports cpu), so the two
// packages are wired together at startup via UseDecoder instead.
type StepHandler func(c *CPU, e *ExecContext)

// Decoder looks up the StepHandler for a fetched opcode word. isa's
// decoder adapter (wrapping an *insts.Decoder) is the only implementation
// this repo ships.
type Decoder interface {
	Decode(word uint16) (StepHandler, bool)
}

// IllegalOpcode is the 68000's reserved illegal-instruction encoding,
// used as Step's fallback when the installed Decoder has no entry for
// the fetched word.
const IllegalOpcode uint16 = 0x4AFC

var activeDecoder Decoder

// UseDecoder installs the decoder Step dispatches through. Called once
// at host startup (cmd/genesis68k/main.go), after the catalog's decoder
// table has been built.
func UseDecoder(d Decoder) { activeDecoder = d }

var stepCtx ExecContext

// Prime fetches the opcode at the current PC into IR without executing
// it, readying c for the first call to Step. Every catalog instruction's
// pipeline except the illegal-opcode entry's ends with its own Fetch
// step that primes IR for the next one, so only the very first
// instruction needs this.
func Prime(c *CPU, b *bus.Bus) {
	stepCtx.Reset(b)
	c.IR = uint16(stepCtx.Fetch(16, c))
}

// Step decodes the opcode already sitting in c.IR, runs its pipeline to
// completion (which both performs the instruction's effect and fetches
// the next opcode into c.IR), and returns the number of bus/execution
// cycles the instruction charged. Falls back to IllegalOpcode's handler,
// without advancing PC further, when the installed Decoder has no match.
func Step(c *CPU, b *bus.Bus) uint64 {
	if activeDecoder == nil {
		panic("cpu: Step called before UseDecoder")
	}

	stepCtx.Reset(b)

	h, ok := activeDecoder.Decode(c.IR)
	if !ok {
		h, ok = activeDecoder.Decode(IllegalOpcode)
		if !ok {
			panic("cpu: no decoder entry for IllegalOpcode")
		}
	}

	h(c, &stepCtx)
	return stepCtx.Clk
}
