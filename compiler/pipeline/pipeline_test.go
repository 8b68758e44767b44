package pipeline

import (
	"testing"

	"github.com/kegliz/nacompile/compiler/hardware"
	"github.com/kegliz/nacompile/compiler/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve_TwoGateLine_ProducesInitAndTwoRydbergs(t *testing.T) {
	require := require.New(t)

	p := New(zerolog.Nop())
	p.SetArchitecture(4, 4, 4, 4)
	p.SetProgram(model.Program{model.NewGate(0, 1), model.NewGate(1, 2)}, 3)

	result, err := p.Solve(Options{
		TrivialLayout:    true,
		ReverseToInitial: true,
		RoutingStrategy:  "maximalis_sorted",
		ToVerify:         true,
	})
	require.NoError(err)
	require.NotEmpty(result.Compact)
	assert.Equal(t, "Init", result.Compact[0]["type"])

	rydbergCount := 0
	for _, inst := range result.Compact {
		if inst["type"] == "Rydberg" {
			rydbergCount++
		}
	}
	assert.Equal(t, 2, rydbergCount)
	assert.Empty(t, result.Diagnostics)
}

func TestSolve_InitReflectsInitialMappingNotFinalMapping(t *testing.T) {
	require := require.New(t)

	p := New(zerolog.Nop())
	p.SetArchitecture(4, 4, 4, 4)
	p.SetProgram(model.Program{model.NewGate(0, 1), model.NewGate(1, 2)}, 3)

	initial := model.Mapping{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 3}}
	result, err := p.Solve(Options{
		InitialMapping:  initial,
		RoutingStrategy: "maximalis_sorted",
	})
	require.NoError(err)
	require.NotEmpty(result.Compact)
	require.Equal("Init", result.Compact[0]["type"])

	xys, ok := result.Compact[0]["slm_qubit_xys"].([][2]float64)
	require.True(ok)
	for q, site := range initial {
		assert.Equal(t, hardware.SiteX(site.X), xys[q][0])
		assert.Equal(t, hardware.SiteY(site.Y), xys[q][1])
	}
}

func TestSolve_DependencyModeUsesASAP(t *testing.T) {
	require := require.New(t)

	p := New(zerolog.Nop())
	p.SetArchitecture(4, 4, 4, 4)
	p.SetProgram(model.Program{model.NewGate(0, 1), model.NewGate(0, 1), model.NewGate(1, 2)}, 3)

	result, err := p.Solve(Options{
		TrivialLayout:    true,
		ReverseToInitial: true,
		RoutingStrategy:  "maximalis_sorted",
		Dependency:       true,
	})
	require.NoError(err)

	rydbergCount := 0
	for _, inst := range result.Compact {
		if inst["type"] == "Rydberg" {
			rydbergCount++
		}
	}
	assert.Equal(t, 3, rydbergCount)
}
