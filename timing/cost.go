// Package timing holds the JSON-configurable bus/cycle cost table. A
// host loads a Config (or takes DefaultConfig) and passes it to
// cpu.UseCostConfig, which copies its fields into the package-level
// vars cpu/exec.go's per-access charges, insts/pipeline.go's indexed-
// addressing-mode penalty, and the BCD/arithmetic step costs all read
// from (cpu/cost.go). cmd/genesis68k wires this through its
// -timing-config flag and prints the active table when run verbosely.
package timing

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds m68k bus/cycle costs. cpu.UseCostConfig installs a
// Config's fields as the live values cpu/exec.go, insts/pipeline.go,
// cpu/bcd.go, and cpu/arith.go read cycle costs from, so a host can
// run the core under an alternate assumed timing without recompiling.
type Config struct {
	// WordAccessCycles is the cost of one byte or word bus access.
	// Default: 4.
	WordAccessCycles uint64 `json:"word_access_cycles"`

	// LongAccessCycles is the cost of one long-word bus access (two word
	// accesses). Default: 8.
	LongAccessCycles uint64 `json:"long_access_cycles"`

	// IndexedEACycles is the extra decode cost charged for an indexed
	// addressing mode's extension-word fetch. Default: 2.
	IndexedEACycles uint64 `json:"indexed_ea_cycles"`

	// BCDCycles is the fixed execution cost of one ABCD/SBCD step.
	// Default: 2.
	BCDCycles uint64 `json:"bcd_cycles"`

	// ArithCycles is the fixed execution cost of one ADD/SUB-family
	// arithmetic step. Default: 4.
	ArithCycles uint64 `json:"arith_cycles"`
}

// DefaultConfig returns the standard cost table; cpu seeds its cost vars
// from it at package init.
func DefaultConfig() *Config {
	return &Config{
		WordAccessCycles: 4,
		LongAccessCycles: 8,
		IndexedEACycles:  2,
		BCDCycles:        2,
		ArithCycles:      4,
	}
}

// LoadConfig loads a Config from a JSON file, starting from
// DefaultConfig so an incomplete file still yields sane values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}
	return nil
}

// Validate checks that every cost is nonzero.
func (c *Config) Validate() error {
	if c.WordAccessCycles == 0 {
		return fmt.Errorf("word_access_cycles must be > 0")
	}
	if c.LongAccessCycles == 0 {
		return fmt.Errorf("long_access_cycles must be > 0")
	}
	if c.IndexedEACycles == 0 {
		return fmt.Errorf("indexed_ea_cycles must be > 0")
	}
	if c.BCDCycles == 0 {
		return fmt.Errorf("bcd_cycles must be > 0")
	}
	if c.ArithCycles == 0 {
		return fmt.Errorf("arith_cycles must be > 0")
	}
	return nil
}
