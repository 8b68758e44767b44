// Package model holds the data shared across every compiler stage: gates,
// layers, and the qubit-to-site mapping.
package model

import "fmt"

// Gate is an unordered pair of qubit indices touched by a two-qubit
// interaction. Q0 < Q1 always; use NewGate to normalize.
type Gate struct {
	Q0, Q1 int
}

// NewGate returns a Gate with Q0 < Q1.
func NewGate(a, b int) Gate {
	if a < b {
		return Gate{Q0: a, Q1: b}
	}
	return Gate{Q0: b, Q1: a}
}

func (g Gate) String() string { return fmt.Sprintf("(%d,%d)", g.Q0, g.Q1) }

// Has reports whether q is one of the gate's two qubits.
func (g Gate) Has(q int) bool { return g.Q0 == q || g.Q1 == q }

// Other returns the qubit paired with q, panicking if q is not in the gate.
func (g Gate) Other(q int) int {
	switch q {
	case g.Q0:
		return g.Q1
	case g.Q1:
		return g.Q0
	default:
		panic(fmt.Sprintf("model: qubit %d not in gate %s", q, g))
	}
}

// Program is an ordered sequence of gates, as submitted by a caller.
type Program []Gate

// NumQubits returns one past the largest qubit index referenced by p.
func (p Program) NumQubits() int {
	n := 0
	for _, g := range p {
		if g.Q0+1 > n {
			n = g.Q0 + 1
		}
		if g.Q1+1 > n {
			n = g.Q1 + 1
		}
	}
	return n
}

// Layer is a set of gates, identified by their index into the originating
// Program, that share no qubit and so may be scheduled together.
type Layer []int

// Site is a grid coordinate (x, y) on the chip.
type Site struct {
	X, Y int
}

// Mapping is a bijection from qubit index to Site. Invariant: no two
// qubits share a Site.
type Mapping []Site

// Clone returns an independent copy of m.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	copy(out, m)
	return out
}
