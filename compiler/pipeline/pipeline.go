// Package pipeline drives scheduling, placement, routing and code
// generation end to end and records per-stage timing, mirroring the
// Enola driver's Solve() sequencing.
package pipeline

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kegliz/nacompile/compiler/codegen"
	"github.com/kegliz/nacompile/compiler/hardware"
	"github.com/kegliz/nacompile/compiler/model"
	"github.com/kegliz/nacompile/compiler/placer"
	"github.com/kegliz/nacompile/compiler/router"
	"github.com/kegliz/nacompile/compiler/scheduler"
	"github.com/rs/zerolog"
)

// Options configures one Solve() run.
type Options struct {
	TrivialLayout    bool
	ReverseToInitial bool
	RoutingStrategy  string
	UseWindow        bool
	L2               bool
	FullCode         bool
	Dependency       bool
	ToVerify         bool
	InitialMapping   model.Mapping
	Seed             int64
	// Constants overrides the hardware physical constants codegen uses.
	// The zero value (RB == 0) falls back to hardware.DefaultConstants().
	Constants hardware.Constants
}

// Timing records wall-clock duration of each stage, in seconds, matching
// the `time/*.json` output contract.
type Timing struct {
	Scheduling float64 `json:"scheduling"`
	Placement  float64 `json:"placement"`
	Routing    float64 `json:"routing"`
	Codegen    float64 `json:"codegen"`
	Total      float64 `json:"total"`
}

// Result is the output of one Solve() run.
type Result struct {
	Compact     []map[string]any
	Full        []map[string]any
	Timing      Timing
	Diagnostics []string
}

// Pipeline sequences the compiler stages for one architecture and one
// program.
type Pipeline struct {
	arch hardware.Architecture
	prog model.Program
	nQ   int

	log zerolog.Logger
}

// New returns a Pipeline with a sub-logger named for the pipeline stage.
func New(log zerolog.Logger) *Pipeline {
	return &Pipeline{log: log.With().Str("component", "pipeline").Logger()}
}

// SetArchitecture sets the chip's grid dimensions.
func (p *Pipeline) SetArchitecture(nx, ny, nc, nr int) {
	p.arch = hardware.Architecture{Nx: nx, Ny: ny, Nc: nc, Nr: nr}
}

// SetProgram sets the gate list. nQubit, when non-zero, overrides the
// qubit count inferred from the highest-indexed gate.
func (p *Pipeline) SetProgram(prog model.Program, nQubit int) {
	p.prog = prog
	if nQubit > 0 {
		p.nQ = nQubit
	} else {
		p.nQ = prog.NumQubits()
	}
}

// Solve runs scheduling, placement, routing and code generation in
// sequence and returns the instruction stream plus per-stage timing.
func (p *Pipeline) Solve(opts Options) (*Result, error) {
	tStart := time.Now()

	if p.nQ > p.arch.Nx*p.arch.Ny {
		p.log.Warn().Int("qubits", p.nQ).Int("sites", p.arch.Nx*p.arch.Ny).
			Msg("more qubits than chip sites")
	}

	var diags []string

	tSched := time.Now()
	var layers []model.Layer
	var err error
	if opts.Dependency {
		layers = scheduler.ASAP(p.nQ, p.prog)
	} else {
		layers, err = scheduler.GraphColoring(p.nQ, p.prog)
		if err != nil {
			return nil, fmt.Errorf("pipeline: scheduling: %w", err)
		}
	}
	if opts.ToVerify {
		for _, d := range scheduler.Verify(p.prog, layers) {
			diags = append(diags, d.Message)
			p.log.Warn().Str("diagnostic", d.Message).Msg("scheduling verifier")
		}
	}
	schedSecs := time.Since(tSched).Seconds()

	listGates := make([][]model.Gate, len(layers))
	for i, layer := range layers {
		for _, gi := range layer {
			listGates[i] = append(listGates[i], p.prog[gi])
		}
	}

	tPlace := time.Now()
	var mapping model.Mapping
	switch {
	case opts.InitialMapping != nil:
		mapping = opts.InitialMapping
	case opts.TrivialLayout:
		mapping = trivialLayout(p.arch.Nx, p.nQ)
	default:
		rng := rand.New(rand.NewSource(opts.Seed))
		mapping = placer.Place(rng, p.arch.Nx, p.arch.Ny, p.nQ, listGates, opts.L2)
	}
	if opts.ToVerify {
		for _, d := range placer.Verify(mapping, p.arch.Nx, p.arch.Ny) {
			diags = append(diags, d.Message)
			p.log.Warn().Str("diagnostic", d.Message).Msg("placement verifier")
		}
	}
	placeSecs := time.Since(tPlace).Seconds()
	startMapping := mapping

	tRoute := time.Now()
	reg := router.NewRegistry()
	strat, err := reg.Get(opts.RoutingStrategy)
	if err != nil {
		return nil, fmt.Errorf("pipeline: routing: %w", err)
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	cfg := router.Config{Strategy: strat, Rng: rng, UseWindow: opts.UseWindow, ReverseToInitial: opts.ReverseToInitial}

	var allSubLayers []router.SubLayer
	for i, layer := range layers {
		var future [][]model.Gate
		if i+1 < len(listGates) {
			future = listGates[i+1:]
		}
		subs, next, err := router.RouteLayer(cfg, p.prog, layer, mapping, future)
		if err != nil {
			return nil, fmt.Errorf("pipeline: routing layer %d: %w", i, err)
		}
		allSubLayers = append(allSubLayers, subs...)
		mapping = next
	}
	routeSecs := time.Since(tRoute).Seconds()

	tCode := time.Now()
	consts := opts.Constants
	if consts.RB == 0 {
		consts = hardware.DefaultConstants()
	}
	ctx := codegen.NewContext(p.nQ, p.arch.Nc, p.arch.Nr, opts.FullCode, consts)
	builder := codegen.NewBuilder(ctx)

	init, err := builder.BuildInit(startMapping)
	if err != nil {
		return nil, fmt.Errorf("pipeline: codegen init: %w", err)
	}

	var body []codegen.Inst
	for _, sub := range allSubLayers {
		insts, err := builder.BuildSubLayer(sub, p.prog)
		if err != nil {
			return nil, fmt.Errorf("pipeline: codegen: %w", err)
		}
		body = append(body, insts...)
	}
	stream := codegen.Assemble(init, body)
	codeSecs := time.Since(tCode).Seconds()

	timing := Timing{
		Scheduling: schedSecs,
		Placement:  placeSecs,
		Routing:    routeSecs,
		Codegen:    codeSecs,
		Total:      time.Since(tStart).Seconds(),
	}

	result := &Result{
		Compact:     codegen.EmitCompact(stream),
		Timing:      timing,
		Diagnostics: diags,
	}
	if opts.FullCode {
		result.Full = codegen.EmitFull(stream)
	}
	return result, nil
}

func trivialLayout(nx, nQubit int) model.Mapping {
	mapping := make(model.Mapping, nQubit)
	x, y := 0, 0
	for i := 0; i < nQubit; i++ {
		mapping[i] = model.Site{X: x, Y: y}
		x++
		if x%nx == 0 {
			x = 0
			y++
		}
	}
	return mapping
}
