package insts

// Permute expands one Instruction into its concrete Permutations: one per
// mapped size for a dynamic-size descriptor, exactly one for a static or
// absent size. Each permutation's opcode pattern has the size bit field
// (if any) refined from wildcard to the size's concrete code, and its
// Handler is the descriptor's pipeline finalized at that size.
func Permute(d Instruction) []Permutation {
	switch d.Size.Kind {
	case SizeDynamic:
		enc := d.Size.Dynamic.Enc
		sizes := enc.Sizes()
		out := make([]Permutation, 0, len(sizes))
		for _, s := range sizes {
			code, _ := enc.Encode(s)
			out = append(out, Permutation{
				Name:    d.Name,
				Opcode:  d.Opcode.withFieldCleared(enc.Pos, enc.Width, code),
				Size:    s,
				Handler: d.Build.Finalize(s),
				Info:    d.Build.Info(),
			})
		}
		return out

	case SizeStatic:
		return []Permutation{{
			Name:    d.Name,
			Opcode:  d.Opcode,
			Size:    d.Size.Static,
			Handler: d.Build.Finalize(d.Size.Static),
			Info:    d.Build.Info(),
		}}

	default: // SizeAbsent
		return []Permutation{{
			Name:    d.Name,
			Opcode:  d.Opcode,
			Size:    0,
			Handler: d.Build.Finalize(0),
			Info:    d.Build.Info(),
		}}
	}
}

// PermuteAll expands every descriptor in ds and concatenates the results.
func PermuteAll(ds []Instruction) []Permutation {
	var out []Permutation
	for _, d := range ds {
		out = append(out, Permute(d)...)
	}
	return out
}
