// Package scheduler partitions a program's gates into layers of
// pairwise qubit-disjoint gates, either by Misra-Gries edge coloring
// (commutative mode) or by an as-soon-as-possible list schedule
// (dependency mode).
package scheduler

import (
	"errors"
	"fmt"

	"github.com/kegliz/nacompile/compiler/graph"
	"github.com/kegliz/nacompile/compiler/model"
)

// ErrColoringUnsound is returned when the edge coloring exceeds Vizing's
// bound (Delta+1 colors) — an implementation bug, never a consequence of
// bad input.
var ErrColoringUnsound = errors.New("scheduler: edge coloring exceeds Delta+1 colors")

func findMaximalFan(g *graph.Graph, x, f int) []int {
	fan := []int{f}
	inFan := map[int]bool{f: true}
	last := f
	for {
		extended := false
		for _, v := range g.Neighbors(x) {
			if inFan[v] {
				continue
			}
			if g.EdgeIsColored(x, v) && g.ColorIsFreeAtVertex(g.GetEdgeColor(x, v), last) {
				fan = append(fan, v)
				inFan[v] = true
				last = v
				extended = true
			}
		}
		if !extended {
			return fan
		}
	}
}

func findColorsCD(g *graph.Graph, x int, fan []int) (c, d graph.Color) {
	l := fan[len(fan)-1]
	c, d = 1, 1
	for !g.ColorIsFreeAtVertex(c, x) {
		c++
	}
	for !g.ColorIsFreeAtVertex(d, l) {
		d++
	}
	return c, d
}

func findAndInvertCDPath(g *graph.Graph, u int, c, d graph.Color) int {
	seen := map[int]bool{u: true}
	for {
		extended := false
		for _, v := range g.Neighbors(u) {
			if d == g.GetEdgeColor(u, v) && !seen[v] {
				g.SetEdgeColor(u, v, c)
				u = v
				c, d = d, c
				seen[v] = true
				extended = true
				break
			}
		}
		if !extended {
			return len(seen) - 1
		}
	}
}

func findWInFan(g *graph.Graph, d graph.Color, fan []int) (int, int) {
	for i, u := range fan {
		if g.ColorIsFreeAtVertex(d, u) {
			return i, u
		}
	}
	return -1, -1
}

func rotateFan(g *graph.Graph, x int, fan graph.SequenceView) {
	for i := 0; i+1 < fan.Len(); i++ {
		u, uplus := fan.At(i), fan.At(i+1)
		c := g.GetEdgeColor(x, uplus)
		g.SetEdgeColor(x, u, c)
	}
}

// GraphColoring edge-colors the gate graph via Misra-Gries, returning the
// partition of gate indices by color (color order = layer order).
func GraphColoring(nQubit int, gates model.Program) ([]model.Layer, error) {
	g := graph.New(nQubit, len(gates))

	delta := -1
	for _, e := range gates {
		if d := g.AddEdge(e.Q0, e.Q1); d > delta {
			delta = d
		}
	}

	maxColor := graph.Color(-1)
	for _, e := range gates {
		x, f := e.Q0, e.Q1
		fan := findMaximalFan(g, x, f)
		c, d := findColorsCD(g, x, fan)
		pathLen := findAndInvertCDPath(g, x, c, d)

		var wIdx, w int
		if pathLen != 0 {
			wIdx, w = findWInFan(g, d, fan)
		} else {
			wIdx, w = len(fan)-1, fan[len(fan)-1]
		}

		view := graph.NewSequenceView(fan).Slice(0, wIdx+1)
		rotateFan(g, x, view)
		g.SetEdgeColor(x, w, d)
		if d > maxColor {
			maxColor = d
		}
	}

	if maxColor <= 0 {
		return nil, nil
	}
	if int(maxColor) > delta+1 {
		return nil, fmt.Errorf("%w: got %d colors, Delta+1=%d", ErrColoringUnsound, maxColor, delta+1)
	}

	result := make([]model.Layer, maxColor)
	for i, e := range gates {
		c := g.GetEdgeColor(e.Q0, e.Q1)
		result[c-1] = append(result[c-1], i)
	}
	return result, nil
}

// ASAP schedules gates as-soon-as-possible given sequential program order
// dependencies: gate i may not run before either of its qubits is free
// from a prior gate.
func ASAP(nQubit int, gates model.Program) []model.Layer {
	nextFree := make([]int, nQubit)
	var layers []model.Layer
	for i, g := range gates {
		t := nextFree[g.Q0]
		if nextFree[g.Q1] > t {
			t = nextFree[g.Q1]
		}
		for len(layers) <= t {
			layers = append(layers, nil)
		}
		layers[t] = append(layers[t], i)
		nextFree[g.Q0] = t + 1
		nextFree[g.Q1] = t + 1
	}
	return layers
}

// Schedule dispatches to GraphColoring or ASAP depending on dependency.
func Schedule(nQubit int, gates model.Program, dependency bool) ([]model.Layer, error) {
	if dependency {
		return ASAP(nQubit, gates), nil
	}
	return GraphColoring(nQubit, gates)
}

// Diagnostic describes one scheduling-verifier finding. Verifiers report,
// they never abort compilation.
type Diagnostic struct {
	Message string
}

// Verify checks that every gate index appears in exactly one layer and
// that no layer repeats a qubit. It returns the diagnostics found, if any;
// an empty slice means the schedule is sound.
func Verify(gates model.Program, layers []model.Layer) []Diagnostic {
	var diags []Diagnostic
	scheduledAt := make([]int, len(gates))
	for i := range scheduledAt {
		scheduledAt[i] = -1
	}

	for layerIdx, layer := range layers {
		seenQubit := make(map[int]int)
		for _, gi := range layer {
			if scheduledAt[gi] != -1 {
				diags = append(diags, Diagnostic{Message: fmt.Sprintf(
					"gate %d already scheduled in layer %d, reassigned to layer %d", gi, scheduledAt[gi], layerIdx)})
			}
			scheduledAt[gi] = layerIdx

			g := gates[gi]
			for _, q := range [2]int{g.Q0, g.Q1} {
				if prev, ok := seenQubit[q]; ok {
					diags = append(diags, Diagnostic{Message: fmt.Sprintf(
						"qubit %d already used by gate %d, reused by gate %d in layer %d", q, prev, gi, layerIdx)})
				}
				seenQubit[q] = gi
			}
		}
	}

	for gi, t := range scheduledAt {
		if t == -1 {
			diags = append(diags, Diagnostic{Message: fmt.Sprintf("gate %d is not scheduled", gi)})
		}
	}
	return diags
}
