package codegen

import (
	"testing"

	"github.com/kegliz/nacompile/compiler/hardware"
	"github.com/kegliz/nacompile/compiler/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(fullCode bool) *Context {
	return NewContext(2, 2, 2, fullCode, hardware.DefaultConstants())
}

func TestInit_PinsQubitsToStaticSites(t *testing.T) {
	require := require.New(t)

	ctx := newTestContext(false)
	mapping := model.Mapping{{X: 0, Y: 0}, {X: 1, Y: 0}}
	inst, err := NewInit(ctx, mapping)
	require.NoError(err)
	assert.Equal(t, KindInit, inst.Kind())
	assert.Equal(t, hardware.Static, ctx.Qubits[0].Array)
	assert.False(t, inst.IsTrivial())
}

func TestActivate_RejectsNonCoincidentQubit(t *testing.T) {
	ctx := newTestContext(false)
	_, _ = NewInit(ctx, model.Mapping{{X: 0, Y: 0}, {X: 5, Y: 0}})

	_, err := NewActivate(ctx, []Pickup{{Qubit: 0, Col: 0, Row: 0}},
		map[int]float64{0: hardware.SiteX(3)}, map[int]float64{0: hardware.SiteY(0)})
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestActivate_ThenDeactivate_RoundTripsToStaticTrap(t *testing.T) {
	require := require.New(t)

	ctx := newTestContext(false)
	_, err := NewInit(ctx, model.Mapping{{X: 0, Y: 0}, {X: 5, Y: 0}})
	require.NoError(err)

	_, err = NewActivate(ctx, []Pickup{{Qubit: 0, Col: 0, Row: 0}},
		map[int]float64{0: hardware.SiteX(0)}, map[int]float64{0: hardware.SiteY(0)})
	require.NoError(err)
	assert.Equal(t, hardware.Movable, ctx.Qubits[0].Array)

	_, err = NewDeactivate(ctx, []int{0}, []int{0}, []int{0})
	require.NoError(err)
	assert.Equal(t, hardware.Static, ctx.Qubits[0].Array)
	assert.False(t, ctx.Cols[0].Active)
}

func TestRydberg_RejectsOutOfRangePair(t *testing.T) {
	ctx := newTestContext(false)
	_, _ = NewInit(ctx, model.Mapping{{X: 0, Y: 0}, {X: 5, Y: 0}})

	_, err := NewRydberg(ctx, []model.Gate{model.NewGate(0, 1)})
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestComboInst_RemoveTrivialDropsZeroDuration(t *testing.T) {
	combo := NewCombo("reload")
	combo.Children = []Inst{
		&base{kind: KindMove, duration: 0},
		&base{kind: KindActivate, duration: 15},
	}
	combo.RemoveTrivial()
	require.Len(t, combo.Children, 1)
	assert.Equal(t, KindActivate, combo.Children[0].Kind())
}
