package router

import (
	"fmt"
	"math/rand"

	"github.com/kegliz/nacompile/compiler/model"
	"github.com/kegliz/nacompile/compiler/placer"
)

// SubLayer is one group of simultaneous, mutually compatible_2D motions.
// FiredGates is non-empty only on the last MIS sub-layer of a layer's
// first phase, which carries every gate that layer fires and gets the
// Rydberg pulse attached.
type SubLayer struct {
	Motions    []Motion
	FiredGates []int // indices into the originating Program
}

// Config bundles the per-run routing choices: which MIS strategy to use,
// the seeded PRNG it may consume, whether to truncate the candidate list
// to the 1000-entry window, and which terminal sub-layer policy to run
// once every gate in the layer has fired.
type Config struct {
	Strategy         Strategy
	Rng              *rand.Rand
	UseWindow        bool
	ReverseToInitial bool
}

// ErrNoProgress is returned if a strategy selects nothing while gates
// remain outstanding — a strategy bug, since the two-candidates-per-gate
// construction always admits at least one feasible singleton motion.
var ErrNoProgress = fmt.Errorf("router: strategy made no progress")

type pendingGate struct {
	progIdx int
	gate    model.Gate
}

// RouteLayer resolves one scheduled layer into routing sub-layers plus
// the mapping state at the start of the next input layer. futureLayers,
// when the re-place policy is in effect, are the remaining input layers
// (already resolved to qubit pairs) used to cost the partial placer's
// re-homing of the qubits this layer touched.
func RouteLayer(cfg Config, prog model.Program, layer model.Layer, mapping model.Mapping, futureLayers [][]model.Gate) ([]SubLayer, model.Mapping, error) {
	mapping = mapping.Clone()
	startMapping := mapping.Clone()

	remaining := make([]pendingGate, len(layer))
	for i, gi := range layer {
		remaining[i] = pendingGate{progIdx: gi, gate: model.NewGate(prog[gi].Q0, prog[gi].Q1)}
	}

	var subLayers []SubLayer
	var firedGates []int
	touched := make(map[int]bool)

	for len(remaining) > 0 {
		gates := make([]model.Gate, len(remaining))
		for i, pg := range remaining {
			gates[i] = pg.gate
		}

		candidates := buildCandidates(gates, mapping, cfg.UseWindow)
		edges := buildIncompatibilityEdges(candidates)
		selected, err := cfg.Strategy(candidates, edges, mapping, cfg.Rng)
		if err != nil {
			return nil, nil, fmt.Errorf("router: selecting motions: %w", err)
		}
		if len(selected) == 0 {
			return nil, nil, ErrNoProgress
		}

		sub := SubLayer{}
		consumed := make(map[int]bool, len(selected)*2)
		for _, ci := range selected {
			m := candidates[ci]
			sub.Motions = append(sub.Motions, m)
			mapping[m.Mover] = mapping[m.Partner]
			consumed[m.Mover] = true
			consumed[m.Partner] = true
			touched[m.Mover] = true
			touched[m.Partner] = true
		}

		var next []pendingGate
		for _, pg := range remaining {
			if consumed[pg.gate.Q0] && consumed[pg.gate.Q1] {
				firedGates = append(firedGates, pg.progIdx)
			} else {
				next = append(next, pg)
			}
		}
		subLayers = append(subLayers, sub)
		remaining = next
	}

	// All gates this layer fires are attached to the final sub-layer of
	// this first phase, matching the fact that a gate only actually fires
	// once every motion feeding it has landed, which can take several MIS
	// rounds.
	if len(subLayers) > 0 {
		subLayers[len(subLayers)-1].FiredGates = firedGates
	}

	if cfg.ReverseToInitial {
		subLayers = append(subLayers, reverseMotions(subLayers)...)
		mapping = startMapping.Clone()
		return subLayers, mapping, nil
	}

	target := make([]int, 0, len(touched))
	for q := range touched {
		target = append(target, q)
	}
	if len(target) > 0 && len(futureLayers) > 0 {
		replaced, err := replaceTouched(cfg, mapping, target, futureLayers)
		if err != nil {
			return nil, nil, err
		}
		shuttle := shuttleSubLayer(mapping, replaced, target)
		subLayers = append(subLayers, shuttle)
		mapping = replaced
	}

	return subLayers, mapping, nil
}

// replaceTouched re-homes the layer-touched qubits over the remaining
// input layers via the partial placer, holding every other qubit fixed.
func replaceTouched(cfg Config, mapping model.Mapping, target []int, futureLayers [][]model.Gate) (model.Mapping, error) {
	nx, ny := boundingBox(mapping)
	placed := placer.PlacePartial(cfg.Rng, nx, ny, len(mapping), futureLayers, mapping, target, false)
	return model.Mapping(placed), nil
}

func boundingBox(mapping model.Mapping) (int, int) {
	nx, ny := 0, 0
	for _, s := range mapping {
		if s.X+1 > nx {
			nx = s.X + 1
		}
		if s.Y+1 > ny {
			ny = s.Y + 1
		}
	}
	return nx, ny
}

// shuttleSubLayer emits one direct motion per touched qubit from its
// post-firing site to its re-placed home. These motions are not passed
// through the compatible2D filter (the partial placer's cost is
// wirelength only); the sub-layer is reported as-is for codegen to
// replay.
func shuttleSubLayer(from, to model.Mapping, target []int) SubLayer {
	var sub SubLayer
	for _, q := range target {
		a, b := from[q], to[q]
		if a == b {
			continue
		}
		sub.Motions = append(sub.Motions, Motion{Mover: q, Partner: -1, XS: a.X, XE: b.X, YS: a.Y, YE: b.Y})
	}
	return sub
}

// reverseMotions mirrors the just-generated sub-layers in reverse order
// with each motion inverted, restoring every displaced qubit to its
// pre-layer site.
func reverseMotions(subLayers []SubLayer) []SubLayer {
	var out []SubLayer
	for i := len(subLayers) - 1; i >= 0; i-- {
		sl := subLayers[i]
		var mirrored SubLayer
		for _, m := range sl.Motions {
			mirrored.Motions = append(mirrored.Motions, Motion{
				Mover: m.Mover, Partner: m.Partner,
				XS: m.XE, YS: m.YE, XE: m.XS, YE: m.YS,
			})
		}
		out = append(out, mirrored)
	}
	return out
}
