package codegen

import (
	"fmt"
	"sort"

	"github.com/kegliz/nacompile/compiler/hardware"
	"github.com/kegliz/nacompile/compiler/model"
	"github.com/kegliz/nacompile/compiler/router"
)

// Builder threads a Context and a pool of unused column/row ids across a
// sequence of routed sub-layers, turning each into a Reload/BigMove/
// Offload/Rydberg sequence. Each moved qubit is assigned its own
// column/row pair for the duration of its sub-layer; this is a
// simplification of the original multi-qubit-per-track packing, chosen
// to keep the instruction contract (and its invariants) exact while
// leaving the track-packing optimization as future work.
type Builder struct {
	ctx      *Context
	nextCol  int
	nextRow  int
	freeCols []int
	freeRows []int
}

func NewBuilder(ctx *Context) *Builder {
	return &Builder{ctx: ctx}
}

func (b *Builder) leaseCol() int {
	if n := len(b.freeCols); n > 0 {
		id := b.freeCols[n-1]
		b.freeCols = b.freeCols[:n-1]
		return id
	}
	id := b.nextCol
	b.nextCol++
	if id >= len(b.ctx.Cols) {
		b.ctx.Cols = append(b.ctx.Cols, hardware.NewCol(id))
	}
	return id
}

func (b *Builder) leaseRow() int {
	if n := len(b.freeRows); n > 0 {
		id := b.freeRows[n-1]
		b.freeRows = b.freeRows[:n-1]
		return id
	}
	id := b.nextRow
	b.nextRow++
	if id >= len(b.ctx.Rows) {
		b.ctx.Rows = append(b.ctx.Rows, hardware.NewRow(id))
	}
	return id
}

func (b *Builder) release(col, row int) {
	b.freeCols = append(b.freeCols, col)
	b.freeRows = append(b.freeRows, row)
}

// BuildInit emits the leading Init instruction for the given starting
// mapping.
func (b *Builder) BuildInit(mapping model.Mapping) (Inst, error) {
	return NewInit(b.ctx, mapping)
}

// BuildSubLayer turns one routed sub-layer into Reload/BigMove/Offload
// ComboInsts plus, when the sub-layer fires gates, a trailing Rydberg
// instruction.
func (b *Builder) BuildSubLayer(sub router.SubLayer, prog model.Program) ([]Inst, error) {
	if len(sub.Motions) == 0 {
		if len(sub.FiredGates) == 0 {
			return nil, nil
		}
		return b.buildRydberg(sub, prog)
	}

	reload := NewCombo("reload")
	bigmove := NewCombo("bigmove")
	offload := NewCombo("offload")

	type track struct {
		qubit    int
		col, row int
	}
	n := len(sub.Motions)

	// Lease one column and one row per motion, then hand them out so that
	// column/row id order matches spatial order (smaller id = smaller X/Y):
	// checkColOrder/checkRowOrder require active ids to be strictly
	// increasing in X/Y, but compatible2D only guarantees a consistent
	// relative order exists, not that leaseCol/leaseRow's pool-reuse order
	// happens to agree with it.
	colIDs := make([]int, n)
	rowIDs := make([]int, n)
	for i := 0; i < n; i++ {
		colIDs[i] = b.leaseCol()
		rowIDs[i] = b.leaseRow()
	}
	sort.Ints(colIDs)
	sort.Ints(rowIDs)

	colOrder := make([]int, n)
	rowOrder := make([]int, n)
	for i := 0; i < n; i++ {
		colOrder[i] = i
		rowOrder[i] = i
	}
	sort.SliceStable(colOrder, func(a, b int) bool {
		return sub.Motions[colOrder[a]].XS < sub.Motions[colOrder[b]].XS
	})
	sort.SliceStable(rowOrder, func(a, b int) bool {
		return sub.Motions[rowOrder[a]].YS < sub.Motions[rowOrder[b]].YS
	})

	col := make([]int, n)
	row := make([]int, n)
	for rank, motionIdx := range colOrder {
		col[motionIdx] = colIDs[rank]
	}
	for rank, motionIdx := range rowOrder {
		row[motionIdx] = rowIDs[rank]
	}

	tracks := make([]track, n)
	colX := make(map[int]float64, n)
	rowY := make(map[int]float64, n)
	var pickups []Pickup

	for i, m := range sub.Motions {
		tracks[i] = track{qubit: m.Mover, col: col[i], row: row[i]}
		colX[col[i]] = hardware.SiteX(m.XS)
		rowY[row[i]] = hardware.SiteY(m.YS)
		pickups = append(pickups, Pickup{Qubit: m.Mover, Col: col[i], Row: row[i]})
	}

	act, err := NewActivate(b.ctx, pickups, colX, rowY)
	if err != nil {
		return nil, fmt.Errorf("codegen: reload: %w", err)
	}
	reload.Children = append(reload.Children, act)

	colTargets := make(map[int]float64, len(tracks))
	rowTargets := make(map[int]float64, len(tracks))
	for i, m := range sub.Motions {
		colTargets[tracks[i].col] = hardware.SiteX(m.XE)
		rowTargets[tracks[i].row] = hardware.SiteY(m.YE)
	}
	mv, err := NewMove(b.ctx, colTargets, rowTargets)
	if err != nil {
		return nil, fmt.Errorf("codegen: bigmove: %w", err)
	}
	bigmove.Children = append(bigmove.Children, mv)

	var cols, rows, qubits []int
	for _, t := range tracks {
		cols = append(cols, t.col)
		rows = append(rows, t.row)
		qubits = append(qubits, t.qubit)
	}
	deact, err := NewDeactivate(b.ctx, cols, rows, qubits)
	if err != nil {
		return nil, fmt.Errorf("codegen: offload: %w", err)
	}
	offload.Children = append(offload.Children, deact)

	for _, t := range tracks {
		b.release(t.col, t.row)
	}

	out := []Inst{reload, bigmove, offload}
	if len(sub.FiredGates) > 0 {
		fired, err := b.buildRydberg(sub, prog)
		if err != nil {
			return nil, err
		}
		out = append(out, fired...)
	}
	return out, nil
}

func (b *Builder) buildRydberg(sub router.SubLayer, prog model.Program) ([]Inst, error) {
	gates := make([]model.Gate, len(sub.FiredGates))
	for i, gi := range sub.FiredGates {
		gates[i] = prog[gi]
	}
	ryd, err := NewRydberg(b.ctx, gates)
	if err != nil {
		return nil, fmt.Errorf("codegen: rydberg: %w", err)
	}
	return []Inst{ryd}, nil
}
