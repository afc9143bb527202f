package cpu

import "github.com/sarchlab/genesis68k/timing"

// Bus/cycle-accounting constants, sourced from a timing.Config so a host
// can override the assumed bus timing at startup (cmd/genesis68k's
// -timing-config flag) without recompiling the core. UseCostConfig
// installs timing.DefaultConfig()'s values at package init, so code that
// never calls it (every existing test) sees the same numbers the core
// always used.
var (
	CyclesByteOrWord uint64
	CyclesLong       uint64
	IndexedEACycles  uint64
	BCDStepCycles    int
	ArithStepCycles  int
)

func init() {
	UseCostConfig(timing.DefaultConfig())
}

// UseCostConfig installs cfg as the active cost table for every bus/
// cycle-accounting value the core reads (cpu/exec.go's per-access
// charges, insts/pipeline.go's indexed-addressing-mode penalty, and the
// BCD/arithmetic step costs). Called once at host startup, after
// loading an optional JSON override file; cfg is not retained beyond
// copying its fields out.
func UseCostConfig(cfg *timing.Config) {
	CyclesByteOrWord = cfg.WordAccessCycles
	CyclesLong = cfg.LongAccessCycles
	IndexedEACycles = cfg.IndexedEACycles
	BCDStepCycles = int(cfg.BCDCycles)
	ArithStepCycles = int(cfg.ArithCycles)
}
