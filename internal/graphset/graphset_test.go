package graphset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsEmptySet(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestGenerateTen_ProducesTenThreeRegularInstances(t *testing.T) {
	s := Set{}
	GenerateTen(s, 8)

	instances, ok := s["8"]
	require.True(t, ok)
	require.Len(t, instances, 10)

	for _, instance := range instances {
		degree := make(map[int]int)
		for _, e := range instance {
			degree[e[0]]++
			degree[e[1]]++
		}
		for v := 0; v < 8; v++ {
			assert.Equal(t, 3, degree[v], "vertex %d should have degree 3", v)
		}
	}
}

func TestSaveAndLoad_RoundTrips(t *testing.T) {
	s := Set{}
	GenerateTen(s, 6)

	path := filepath.Join(t.TempDir(), "graphs.json")
	require.NoError(t, Save(path, s))

	loaded, err := Load(path)
	require.NoError(t, err)

	instance, ok := loaded.Get(6, 0)
	require.True(t, ok)
	assert.NotEmpty(t, instance)
}

func TestGet_UnknownSizeOrIndex(t *testing.T) {
	s := Set{}
	GenerateTen(s, 6)

	_, ok := s.Get(6, 10)
	assert.False(t, ok)
	_, ok = s.Get(999, 0)
	assert.False(t, ok)
}

func TestToModelProgram_PreservesEdgeOrder(t *testing.T) {
	p := Program{{0, 1}, {1, 2}}
	prog := ToModelProgram(p)
	require.Len(t, prog, 2)
	assert.Equal(t, 0, prog[0].Q0)
	assert.Equal(t, 1, prog[0].Q1)
}

