package codegen

// Assemble applies trivial-instruction elision to body (recursing into
// any ComboInst), then prepends init.
func Assemble(init Inst, body []Inst) []Inst {
	var kept []Inst
	for _, inst := range body {
		if combo, ok := inst.(*ComboInst); ok {
			combo.RemoveTrivial()
			if len(combo.Children) == 0 {
				continue
			}
			kept = append(kept, combo)
			continue
		}
		if inst.IsTrivial() {
			continue
		}
		kept = append(kept, inst)
	}
	return append([]Inst{init}, kept...)
}

// EmitCompact renders the stream in compact mode (reduced per-instruction
// fields, no state snapshots).
func EmitCompact(stream []Inst) []map[string]any {
	out := make([]map[string]any, len(stream))
	for i, inst := range stream {
		out[i] = inst.Emit()
	}
	return out
}

// EmitFull renders the stream with full per-instruction state snapshots.
func EmitFull(stream []Inst) []map[string]any {
	out := make([]map[string]any, len(stream))
	for i, inst := range stream {
		out[i] = inst.EmitFull()
	}
	return out
}
