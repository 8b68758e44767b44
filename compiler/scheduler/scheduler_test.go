package scheduler

import (
	"testing"

	"github.com/kegliz/nacompile/compiler/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphColoring_TwoGateLine(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	prog := model.Program{model.NewGate(0, 1), model.NewGate(1, 2)}
	layers, err := GraphColoring(3, prog)
	require.NoError(err)
	require.Len(layers, 2)
	assert.Len(layers[0], 1)
	assert.Len(layers[1], 1)
	assert.Empty(Verify(prog, layers))
}

func TestGraphColoring_TriangleAllCommutable(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	prog := model.Program{model.NewGate(0, 1), model.NewGate(1, 2), model.NewGate(0, 2)}
	layers, err := GraphColoring(3, prog)
	require.NoError(err)
	// Delta = 2 for a triangle, so Delta+1 = 3 colors.
	assert.Len(layers, 3)
	for _, l := range layers {
		assert.Len(l, 1)
	}
	assert.Empty(Verify(prog, layers))
}

func TestGraphColoring_DisjointGatesPackInOneLayer(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	prog := model.Program{model.NewGate(0, 1), model.NewGate(2, 3)}
	layers, err := GraphColoring(4, prog)
	require.NoError(err)
	require.Len(layers, 1)
	assert.ElementsMatch([]int{0, 1}, layers[0])
}

func TestASAP_PreservesOrderOnRepeatedQubits(t *testing.T) {
	require := require.New(t)

	prog := model.Program{model.NewGate(0, 1), model.NewGate(0, 1), model.NewGate(1, 2)}
	layers := ASAP(3, prog)
	require.Len(layers, 3)
	assert := assert.New(t)
	assert.Equal(model.Layer{0}, layers[0])
	assert.Equal(model.Layer{1}, layers[1])
	assert.Equal(model.Layer{2}, layers[2])
}

func TestVerify_FlagsOverlappingQubitUse(t *testing.T) {
	assert := assert.New(t)

	prog := model.Program{model.NewGate(0, 1), model.NewGate(1, 2)}
	// Both gates wrongly placed in the same layer: qubit 1 is reused.
	bad := []model.Layer{{0, 1}}
	diags := Verify(prog, bad)
	assert.NotEmpty(diags)
}
