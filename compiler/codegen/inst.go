// Package codegen turns routed sub-layers into the hardware instruction
// stream: Init, Move, Activate, Deactivate and Rydberg instructions
// operating on a shared, explicitly-threaded lattice context.
package codegen

import (
	"fmt"

	"github.com/kegliz/nacompile/compiler/hardware"
)

// Kind tags which instruction variant an Inst carries.
type Kind int

const (
	KindInit Kind = iota
	KindMove
	KindActivate
	KindDeactivate
	KindRydberg
	KindCombo
)

func (k Kind) String() string {
	switch k {
	case KindInit:
		return "Init"
	case KindMove:
		return "Move"
	case KindActivate:
		return "Activate"
	case KindDeactivate:
		return "Deactivate"
	case KindRydberg:
		return "Rydberg"
	case KindCombo:
		return "Combo"
	default:
		return "Unknown"
	}
}

// State is a structural snapshot of the lattice, attached to an
// instruction only in full-code mode.
type State struct {
	Qubits []hardware.Qubit
	Cols   []hardware.Col
	Rows   []hardware.Row
}

// Inst is the tagged-variant contract every instruction satisfies: a
// duration, minimal and full emission, and trivial-instruction elision.
// ComboInst implements the same contract recursively over its children,
// so a pipeline stage never needs to type-switch on instruction kind.
type Inst interface {
	Kind() Kind
	Duration() float64
	Emit() map[string]any
	EmitFull() map[string]any
	IsTrivial() bool
}

// base carries the fields and the full/compact snapshot every leaf
// instruction shares.
type base struct {
	kind     Kind
	duration float64
	fields   map[string]any
	snapshot *State
}

func (b base) Kind() Kind        { return b.kind }
func (b base) Duration() float64 { return b.duration }
func (b base) IsTrivial() bool   { return b.duration == 0 }

func (b base) Emit() map[string]any {
	out := make(map[string]any, len(b.fields)+1)
	for k, v := range b.fields {
		out[k] = v
	}
	out["type"] = b.kind.String()
	return out
}

func (b base) EmitFull() map[string]any {
	out := b.Emit()
	if b.snapshot != nil {
		out["state"] = b.snapshot
	}
	return out
}

func snapshotIfFull(ctx *Context) *State {
	if !ctx.FullCode {
		return nil
	}
	return &State{
		Qubits: append([]hardware.Qubit(nil), ctx.Qubits...),
		Cols:   append([]hardware.Col(nil), ctx.Cols...),
		Rows:   append([]hardware.Row(nil), ctx.Rows...),
	}
}

// ComboInst is a recursive ordered sequence of instructions treated as a
// single logical step (Reload, BigMove, Offload are each a ComboInst).
type ComboInst struct {
	name     string
	Children []Inst
}

func NewCombo(name string) *ComboInst { return &ComboInst{name: name} }

func (c *ComboInst) Kind() Kind { return KindCombo }

func (c *ComboInst) Duration() float64 {
	var total float64
	for _, ch := range c.Children {
		total += ch.Duration()
	}
	return total
}

func (c *ComboInst) IsTrivial() bool { return len(c.Children) == 0 }

func (c *ComboInst) Emit() map[string]any {
	items := make([]map[string]any, len(c.Children))
	for i, ch := range c.Children {
		items[i] = ch.Emit()
	}
	return map[string]any{"type": "Combo", "name": c.name, "insts": items}
}

func (c *ComboInst) EmitFull() map[string]any {
	items := make([]map[string]any, len(c.Children))
	for i, ch := range c.Children {
		items[i] = ch.EmitFull()
	}
	return map[string]any{"type": "Combo", "name": c.name, "insts": items}
}

// RemoveTrivial drops every zero-duration child, recursing into nested
// ComboInst children first.
func (c *ComboInst) RemoveTrivial() {
	var kept []Inst
	for _, ch := range c.Children {
		if nested, ok := ch.(*ComboInst); ok {
			nested.RemoveTrivial()
			if len(nested.Children) == 0 {
				continue
			}
			kept = append(kept, nested)
			continue
		}
		if ch.IsTrivial() {
			continue
		}
		kept = append(kept, ch)
	}
	c.Children = kept
}

// ErrInvariantViolation is the sentinel for any geometric precondition
// failure inside Init/Move/Activate/Deactivate. These are implementation
// bugs, not recoverable user errors.
var ErrInvariantViolation = fmt.Errorf("codegen: geometric invariant violated")

func violatedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
