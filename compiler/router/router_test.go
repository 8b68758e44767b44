package router

import (
	"math/rand"
	"testing"

	"github.com/kegliz/nacompile/compiler/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatible2D_EqualStartsMustStayEqual(t *testing.T) {
	a := Motion{XS: 0, XE: 5, YS: 0, YE: 0}
	b := Motion{XS: 0, XE: 3, YS: 0, YE: 0}
	assert.False(t, compatible2D(a, b))
}

func TestCompatible2D_StrictOrderPreserved(t *testing.T) {
	a := Motion{XS: 0, XE: 2, YS: 0, YE: 0}
	b := Motion{XS: 1, XE: 3, YS: 0, YE: 0}
	assert.True(t, compatible2D(a, b))
}

func TestCompatible2D_OrderViolationRejected(t *testing.T) {
	a := Motion{XS: 0, XE: 5, YS: 0, YE: 0}
	b := Motion{XS: 1, XE: 5, YS: 0, YE: 0}
	// a starts before b but ends at-or-after b: violates strict order.
	assert.False(t, compatible2D(a, b))
}

func TestBuildCandidates_WindowTruncatesTo1000(t *testing.T) {
	var gates []model.Gate
	for i := 0; i < 600; i++ {
		gates = append(gates, model.NewGate(2*i, 2*i+1))
	}
	mapping := make(model.Mapping, 1200)
	for i := range mapping {
		mapping[i] = model.Site{X: i, Y: 0}
	}
	candidates := buildCandidates(gates, mapping, true)
	assert.LessOrEqual(t, len(candidates), 1000)
}

func TestRegistry_KnownStrategies(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()
	for _, name := range []string{"mis", "maximalis", "maximalis_sorted"} {
		_, err := reg.Get(name)
		require.NoError(err)
	}
	_, err := reg.Get("nonexistent")
	require.ErrorIs(err, ErrUnknownStrategy)
}

func TestRouteLayer_DisjointGatesFireInOneSubLayer(t *testing.T) {
	require := require.New(t)

	prog := model.Program{model.NewGate(0, 1), model.NewGate(2, 3)}
	mapping := model.Mapping{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 1, Y: 0}, {X: 6, Y: 0}}
	reg := NewRegistry()
	strat, _ := reg.Get("maximalis_sorted")
	cfg := Config{Strategy: strat, Rng: rand.New(rand.NewSource(0)), ReverseToInitial: true}

	subLayers, _, err := RouteLayer(cfg, prog, model.Layer{0, 1}, mapping, nil)
	require.NoError(err)
	require.NotEmpty(subLayers)

	fired := 0
	for _, sl := range subLayers {
		fired += len(sl.FiredGates)
	}
	assert.Equal(t, 2, fired)
}

func TestRouteLayer_MultiRoundLayerFiresGatesOnFinalSubLayerOnly(t *testing.T) {
	require := require.New(t)

	// Gate (0,1)'s candidate motions are geometrically incompatible with
	// gate (2,3)'s, so the MIS selector can only resolve one gate per
	// round: this layer needs two rounds, and the fired-gate indices for
	// both gates must land on the final sub-layer, not split across both.
	prog := model.Program{model.NewGate(0, 1), model.NewGate(2, 3)}
	mapping := model.Mapping{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 0}, {X: 6, Y: 0}}
	reg := NewRegistry()
	strat, _ := reg.Get("maximalis_sorted")
	cfg := Config{Strategy: strat, Rng: rand.New(rand.NewSource(0))}

	subLayers, _, err := RouteLayer(cfg, prog, model.Layer{0, 1}, mapping, nil)
	require.NoError(err)
	require.Len(subLayers, 2)

	assert.Empty(t, subLayers[0].FiredGates)
	assert.ElementsMatch(t, []int{0, 1}, subLayers[1].FiredGates)
}

func TestRouteLayer_ReverseToInitialRestoresMapping(t *testing.T) {
	require := require.New(t)

	prog := model.Program{model.NewGate(0, 1)}
	mapping := model.Mapping{{X: 0, Y: 0}, {X: 3, Y: 0}}
	reg := NewRegistry()
	strat, _ := reg.Get("maximalis_sorted")
	cfg := Config{Strategy: strat, Rng: rand.New(rand.NewSource(0)), ReverseToInitial: true}

	_, newMapping, err := RouteLayer(cfg, prog, model.Layer{0}, mapping, nil)
	require.NoError(err)
	assert.Equal(t, mapping, newMapping)
}
