// Package placer assigns qubits to chip sites by simulated annealing over
// a layer-weighted wirelength cost, and re-places a subset of qubits
// while holding the rest fixed.
package placer

import (
	"math"
	"math/rand"

	"github.com/kegliz/nacompile/compiler/model"
)

// Annealing schedule constants, shared by the full and partial placer.
const (
	saTFrozen        = 1e-6
	saP              = 0.987
	saL              = 400
	saK              = 7
	saC              = 100
	saIterLimit      = 10000
	saInitPerturbNum = 100
)

// gateRef locates a gate within the scheduled layer list: layer index and
// position within that layer.
type gateRef struct{ layer, idx int }

// movement is the last qubit swap applied, recorded so it can be undone.
type movement struct {
	qubit          int
	newX, newY     int
	oldX, oldY     int
}

func weight(level int) float64 {
	w := 1 - 0.1*float64(level)
	if w < 0.1 {
		return 0.1
	}
	return w
}

func dist(l2 bool, a, b model.Site) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	if l2 {
		return dx*dx + dy*dy
	}
	return math.Hypot(dx, dy)
}

// sharedState holds the fields and movement mechanics common to the full
// and partial placer, so both can reuse make/recover/cost logic.
type sharedState struct {
	rng      *rand.Rand
	l2       bool
	nQubit   int
	chipDim  [2]int
	listGate [][]model.Gate // scheduled layers, each already resolved to qubit pairs

	listQubitListGate [][]gateRef // per-qubit index into listGate

	mapping      []model.Site // qubit -> site
	physToQubit  [][]int      // [x][y] -> qubit or -1

	lastMovement movement

	currentCostAccum float64

	saDelta        float64
	saDeltaSum     float64
	saDeltaCostCnt int
}

func newSharedState(rng *rand.Rand, l2 bool, nQubit int, chipDim [2]int, listGate [][]model.Gate) *sharedState {
	s := &sharedState{
		rng:      rng,
		l2:       l2,
		nQubit:   nQubit,
		chipDim:  chipDim,
		listGate: listGate,
	}
	s.listQubitListGate = make([][]gateRef, nQubit)
	for li, gates := range listGate {
		for gi, g := range gates {
			s.listQubitListGate[g.Q0] = append(s.listQubitListGate[g.Q0], gateRef{li, gi})
			s.listQubitListGate[g.Q1] = append(s.listQubitListGate[g.Q1], gateRef{li, gi})
		}
	}
	return s
}

// affectedGates returns the deduplicated set of gates touching q0 and
// (when present, i.e. >= 0) q1.
func (s *sharedState) affectedGates(q0, q1 int) []gateRef {
	seen := make(map[gateRef]bool)
	var out []gateRef
	add := func(q int) {
		if q < 0 {
			return
		}
		for _, r := range s.listQubitListGate[q] {
			if !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	add(q0)
	add(q1)
	return out
}

func (s *sharedState) costOf(refs []gateRef) float64 {
	var total float64
	for _, r := range refs {
		g := s.listGate[r.layer][r.idx]
		total += weight(r.layer) * dist(s.l2, s.mapping[g.Q0], s.mapping[g.Q1])
	}
	return total
}

// move relocates qubitToMove to (newX,newY), swapping with whatever qubit
// currently sits there (if any), and records the delta cost over exactly
// the gates touching either qubit.
func (s *sharedState) move(qubitToMove, newX, newY int) {
	oldX, oldY := s.mapping[qubitToMove].X, s.mapping[qubitToMove].Y
	affectedQubit := s.physToQubit[newX][newY]

	s.lastMovement = movement{qubit: qubitToMove, newX: newX, newY: newY, oldX: oldX, oldY: oldY}

	refs := s.affectedGates(qubitToMove, affectedQubit)
	oriCost := s.costOf(refs)

	s.mapping[qubitToMove] = model.Site{X: newX, Y: newY}
	s.physToQubit[newX][newY] = qubitToMove
	s.physToQubit[oldX][oldY] = affectedQubit
	if affectedQubit >= 0 {
		s.mapping[affectedQubit] = model.Site{X: oldX, Y: oldY}
	}

	newCost := s.costOf(refs)
	s.saDelta = newCost - oriCost
}

// recover undoes the most recent move.
func (s *sharedState) recover() {
	m := s.lastMovement
	affectedQubit := s.physToQubit[m.oldX][m.oldY]
	s.mapping[m.qubit] = model.Site{X: m.oldX, Y: m.oldY}
	s.physToQubit[m.oldX][m.oldY] = m.qubit
	s.physToQubit[m.newX][m.newY] = affectedQubit
	if affectedQubit >= 0 {
		s.mapping[affectedQubit] = model.Site{X: m.newX, Y: m.newY}
	}
}

// cost computes the total layer-weighted wirelength cost of the current
// mapping from scratch.
func (s *sharedState) cost() float64 {
	var total float64
	for level, gates := range s.listGate {
		w := weight(level)
		var layerSum float64
		for _, g := range gates {
			layerSum += dist(s.l2, s.mapping[g.Q0], s.mapping[g.Q1])
		}
		total += layerSum * w
	}
	return total
}

func acceptWorse(rng *rand.Rand, delta, temperature float64) bool {
	return rng.Float64() <= math.Exp(-delta/temperature)
}
