package frontend

import (
	"strings"
	"testing"

	"github.com/kegliz/nacompile/compiler/model"
	"github.com/kegliz/nacompile/qc/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromDAG_TopologicalCZOrder(t *testing.T) {
	require := require.New(t)

	b := builder.New(builder.Q(3))
	b.CZ(0, 1).CZ(1, 2)
	d, err := b.BuildDAG()
	require.NoError(err)

	prog := ExtractFromDAG(d)
	assert.Equal(t, model.Program{model.NewGate(0, 1), model.NewGate(1, 2)}, prog)
}

func TestLoadQASMLike_ParsesCZLines(t *testing.T) {
	require := require.New(t)

	input := "# header\ncz q0,q1\n\ncz q1,q2\n"
	prog, err := LoadQASMLike(strings.NewReader(input))
	require.NoError(err)
	assert.Equal(t, model.Program{model.NewGate(0, 1), model.NewGate(1, 2)}, prog)
}

func TestLoadQASMLike_RejectsMalformedLine(t *testing.T) {
	_, err := LoadQASMLike(strings.NewReader("h q0\n"))
	assert.ErrorIs(t, err, ErrMalformedLine)
}
