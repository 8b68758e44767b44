package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddEdge_ReturnsMaxDegree(t *testing.T) {
	assert := assert.New(t)

	g := New(4, 4)
	assert.Equal(1, g.AddEdge(0, 1))
	assert.Equal(2, g.AddEdge(0, 2))
	assert.Equal(2, g.AddEdge(1, 3))
}

func TestColors_SetGetClear(t *testing.T) {
	assert := assert.New(t)

	g := New(3, 1)
	g.AddEdge(0, 1)
	assert.False(g.EdgeIsColored(0, 1))

	g.SetEdgeColor(0, 1, 2)
	assert.True(g.EdgeIsColored(0, 1))
	assert.Equal(Color(2), g.GetEdgeColor(0, 1))
	assert.Equal(Color(2), g.GetEdgeColor(1, 0), "color lookup must be symmetric")

	g.RmEdgeColor(0, 1)
	assert.False(g.EdgeIsColored(0, 1))
}

func TestColorIsFreeAtVertex(t *testing.T) {
	assert := assert.New(t)

	g := New(3, 2)
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.SetEdgeColor(0, 1, 1)

	assert.False(g.ColorIsFreeAtVertex(1, 0), "color 1 is used at vertex 0")
	assert.True(g.ColorIsFreeAtVertex(2, 0))
	assert.True(g.ColorIsFreeAtVertex(1, 2), "vertex 2's only edge is uncolored")
}

func TestSequenceView_SliceDoesNotCopy(t *testing.T) {
	assert := assert.New(t)

	fan := []int{5, 6, 7, 8}
	v := NewSequenceView(fan)
	sub := v.Slice(0, 2)

	assert.Equal(2, sub.Len())
	assert.Equal(5, sub.At(0))
	assert.Equal(6, sub.At(1))

	fan[0] = 99
	assert.Equal(99, sub.At(0), "view must alias the backing slice")
}
